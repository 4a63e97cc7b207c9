package dto

// TimeRangePayload is the wire form of a half-open availability window.
type TimeRangePayload struct {
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end" validate:"required,datetime=15:04"`
}

type CreateReservationRequest struct {
	GuestID    string  `json:"guest_id" validate:"required,uuid"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string  `json:"end_time" validate:"required,datetime=15:04"`
	Price      float64 `json:"price" validate:"gte=0"`
	GuestCount int     `json:"guest_count" validate:"omitempty,gte=1"`
}

// ReplaceAvailabilityRequest carries the full replacement range set for one
// day. An empty list withdraws the day entirely (only possible while no
// active reservation remains on it).
type ReplaceAvailabilityRequest struct {
	Ranges []TimeRangePayload `json:"ranges" validate:"dive"`
}

type DecideReservationRequest struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED REJECTED"`
}
