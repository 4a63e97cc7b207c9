package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/semInDev/beour-be-sub001/internal/models"
	"github.com/semInDev/beour-be-sub001/internal/repository"
	"gorm.io/datatypes"
)

var ErrInvalidStatusFilter = errors.New("invalid status filter")

// CalendarService is the read side over the reservation store: host-facing
// day views, optionally narrowed to one status. Pure projection — every call
// re-queries and yields a fresh snapshot ordered by start time.
type CalendarService interface {
	HostCalendar(ctx context.Context, hostID uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error)
}

type calendarService struct {
	reservationRepo repository.ReservationRepository
}

func NewCalendarService(reservationRepo repository.ReservationRepository) CalendarService {
	return &calendarService{reservationRepo: reservationRepo}
}

func (s *calendarService) HostCalendar(ctx context.Context, hostID uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatusFilter
	}
	return s.reservationRepo.FindByHostDate(ctx, hostID, date, status)
}
