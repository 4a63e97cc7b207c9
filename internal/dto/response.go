package dto

import (
	"time"

	"github.com/semInDev/beour-be-sub001/internal/models"
	"github.com/semInDev/beour-be-sub001/internal/timeslot"
)

const dateLayout = "2006-01-02"

type ReservationResponse struct {
	ID         uint                     `json:"id"`
	GuestID    string                   `json:"guest_id"`
	HostID     string                   `json:"host_id"`
	SpaceID    uint                     `json:"space_id"`
	Date       string                   `json:"date"`
	StartTime  string                   `json:"start_time"`
	EndTime    string                   `json:"end_time"`
	Status     models.ReservationStatus `json:"status"`
	Price      float64                  `json:"price"`
	GuestCount int                      `json:"guest_count"`
	CreatedAt  time.Time                `json:"created_at"`
}

type AvailabilityResponse struct {
	SpaceID uint               `json:"space_id"`
	Date    string             `json:"date"`
	Ranges  []TimeRangePayload `json:"ranges"`
}

type ErrorResponse struct {
	Message        string `json:"message"`
	ReservationIDs []uint `json:"reservation_ids,omitempty"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         r.ID,
		GuestID:    r.GuestID.String(),
		HostID:     r.HostID.String(),
		SpaceID:    r.SpaceID,
		Date:       time.Time(r.Date).Format(dateLayout),
		StartTime:  r.StartTime.String(),
		EndTime:    r.EndTime.String(),
		Status:     r.Status,
		Price:      r.Price,
		GuestCount: r.GuestCount,
		CreatedAt:  r.CreatedAt,
	}
}

func ToReservationResponses(reservations []models.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(reservations))
	for i := range reservations {
		out[i] = ToReservationResponse(&reservations[i])
	}
	return out
}

func ToAvailabilityResponse(spaceID uint, date time.Time, ranges []timeslot.Range) AvailabilityResponse {
	payload := make([]TimeRangePayload, len(ranges))
	for i, r := range ranges {
		payload[i] = TimeRangePayload{Start: r.Start.String(), End: r.End.String()}
	}
	return AvailabilityResponse{
		SpaceID: spaceID,
		Date:    date.Format(dateLayout),
		Ranges:  payload,
	}
}
