package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/semInDev/beour-be-sub001/internal/models"
	"github.com/semInDev/beour-be-sub001/internal/repository"
	"github.com/semInDev/beour-be-sub001/internal/timeslot"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSpaceNotFound       = errors.New("space not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNoAvailability      = errors.New("no availability declared for this space and date")
	ErrOutsideWindow       = errors.New("requested window is outside declared availability")
	ErrSlotBooked          = errors.New("slot already booked")
	ErrInvalidTransition   = errors.New("invalid reservation status transition")
)

// EventPublisher pushes reservation lifecycle events to the message broker.
// A nil publisher disables eventing, which tests rely on.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type CreateReservationInput struct {
	SpaceID    uint
	GuestID    uuid.UUID
	Date       datatypes.Date
	Window     timeslot.Range
	Price      float64
	GuestCount int
}

type ReservationService interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id uint) (*models.Reservation, error)
	DecideReservation(ctx context.Context, id uint, decision models.ReservationStatus) (*models.Reservation, error)
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
}

type reservationService struct {
	reservationRepo  repository.ReservationRepository
	availabilityRepo repository.AvailabilityRepository
	spaceRepo        repository.SpaceRepository
	publisher        EventPublisher
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	availabilityRepo repository.AvailabilityRepository,
	spaceRepo repository.SpaceRepository,
	publisher EventPublisher,
) ReservationService {
	return &reservationService{
		reservationRepo:  reservationRepo,
		availabilityRepo: availabilityRepo,
		spaceRepo:        spaceRepo,
		publisher:        publisher,
	}
}

// CreateReservation books a window for a guest. The availability row for
// (space, date) is locked for the whole check-then-insert sequence, so two
// concurrent requests for overlapping windows serialize: the first inserts,
// the second sees it and fails with ErrSlotBooked.
func (s *reservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	// Rejects zero-length and reversed windows before touching storage.
	if err := timeslot.Validate([]timeslot.Range{in.Window}); err != nil {
		return nil, err
	}
	if in.GuestCount < 1 {
		in.GuestCount = 1
	}

	space, err := s.spaceRepo.FindByID(ctx, in.SpaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, err
	}

	var result *models.Reservation

	err = runInTx(ctx, s.reservationRepo.GetDB(), func(tx *gorm.DB) error {
		// 1. Lock the day's availability row — serializes per (space, date)
		availability, err := s.availabilityRepo.FindBySpaceDateForUpdate(ctx, tx, in.SpaceID, in.Date)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoAvailability
			}
			return err
		}

		// 2-3. Containment and overlap checks against the locked snapshot
		declared, err := availability.TimeRanges()
		if err != nil {
			return err
		}
		active, err := s.reservationRepo.FindActiveBySpaceDate(ctx, tx, in.SpaceID, in.Date)
		if err != nil {
			return err
		}
		if err := checkWindow(declared, active, in.Window); err != nil {
			return err
		}

		// 4. Insert as PENDING; the host decides later
		reservation := &models.Reservation{
			GuestID:    in.GuestID,
			HostID:     space.HostID,
			SpaceID:    in.SpaceID,
			Date:       in.Date,
			StartTime:  in.Window.Start,
			EndTime:    in.Window.End,
			Status:     models.StatusPending,
			Price:      in.Price,
			GuestCount: in.GuestCount,
		}
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
			return err
		}
		result = reservation
		return nil
	})
	if err != nil {
		// The exclusion constraint is a backstop against out-of-band writers.
		if isExclusionViolation(err) {
			return nil, ErrSlotBooked
		}
		return nil, err
	}

	s.publish("reservation.created", result)
	return result, nil
}

// CancelReservation forces the reservation to REJECTED and soft-deletes it.
// There is no path back: a cancelled reservation no longer resolves by id.
func (s *reservationService) CancelReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var result *models.Reservation

	err := runInTx(ctx, s.reservationRepo.GetDB(), func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.Status == models.StatusCompleted {
			return ErrInvalidTransition
		}

		if err := s.reservationRepo.UpdateStatus(ctx, tx, id, models.StatusRejected); err != nil {
			return err
		}
		if err := s.reservationRepo.SoftDelete(ctx, tx, id); err != nil {
			return err
		}

		reservation.Status = models.StatusRejected
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("reservation.cancelled", result)
	return result, nil
}

// DecideReservation records the host's accept/reject decision on a pending
// reservation. A rejected reservation releases its window but the row stays
// visible to both parties.
func (s *reservationService) DecideReservation(ctx context.Context, id uint, decision models.ReservationStatus) (*models.Reservation, error) {
	if decision != models.StatusAccepted && decision != models.StatusRejected {
		return nil, ErrInvalidTransition
	}

	var result *models.Reservation

	err := runInTx(ctx, s.reservationRepo.GetDB(), func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.Status != models.StatusPending {
			return ErrInvalidTransition
		}

		if err := s.reservationRepo.UpdateStatus(ctx, tx, id, decision); err != nil {
			return err
		}

		reservation.Status = decision
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("reservation.decided", result)
	return result, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

// checkWindow decides whether a requested window is bookable: it must sit
// wholly inside a single declared range (spanning two disjoint ranges does
// not count) and must not overlap any active reservation under the
// half-open test. Bookings that merely touch endpoints coexist.
func checkWindow(declared []timeslot.Range, active []models.Reservation, window timeslot.Range) error {
	if !timeslot.AnyContains(declared, window) {
		return ErrOutsideWindow
	}
	for _, reservation := range active {
		if window.Overlaps(reservation.Window()) {
			return ErrSlotBooked
		}
	}
	return nil
}

func (s *reservationService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		log.Printf("[ReservationService] publish %s: %v", routingKey, err)
	}
}
