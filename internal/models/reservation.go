package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/semInDev/beour-be-sub001/internal/timeslot"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusAccepted  ReservationStatus = "ACCEPTED"
	StatusRejected  ReservationStatus = "REJECTED"
	StatusCompleted ReservationStatus = "COMPLETED"
)

// Active reports whether the reservation still occupies its window.
// REJECTED and COMPLETED reservations no longer block other bookings.
func (s ReservationStatus) Active() bool {
	return s == StatusPending || s == StatusAccepted
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Reservation is a guest's booking of a space window on a single date.
// Identity fields are immutable after creation; only Status and the
// soft-delete marker change. Rows are never hard-deleted so history
// queries can opt back in via Unscoped.
type Reservation struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	GuestID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"guest_id"`
	HostID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"host_id"`
	SpaceID    uint               `gorm:"not null;index:idx_reservations_space_date" json:"space_id"`
	Date       datatypes.Date     `gorm:"not null;index:idx_reservations_space_date" json:"date"`
	StartTime  timeslot.TimeOfDay `gorm:"type:time;not null" json:"start_time"`
	EndTime    timeslot.TimeOfDay `gorm:"type:time;not null" json:"end_time"`
	Status     ReservationStatus  `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Price      float64            `gorm:"not null" json:"price"`
	GuestCount int                `gorm:"not null;default:1" json:"guest_count"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`
}

// Window returns the reserved [start, end) time-of-day window.
func (r *Reservation) Window() timeslot.Range {
	return timeslot.Range{Start: r.StartTime, End: r.EndTime}
}
