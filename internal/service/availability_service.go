package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/semInDev/beour-be-sub001/internal/models"
	"github.com/semInDev/beour-be-sub001/internal/repository"
	"github.com/semInDev/beour-be-sub001/internal/timeslot"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrphanedReservationsError rejects an availability edit that would strand
// active reservations outside the new windows. It carries the affected ids
// so the host can cancel or adjust them first.
type OrphanedReservationsError struct {
	ReservationIDs []uint
}

func (e *OrphanedReservationsError) Error() string {
	return fmt.Sprintf("availability update would orphan %d active reservation(s)", len(e.ReservationIDs))
}

// AvailabilityCache is an optional cache-aside store for the read path.
// It is never consulted inside a booking transaction.
type AvailabilityCache interface {
	Get(ctx context.Context, spaceID uint, date datatypes.Date) ([]timeslot.Range, bool)
	Set(ctx context.Context, spaceID uint, date datatypes.Date, ranges []timeslot.Range)
	Invalidate(ctx context.Context, spaceID uint, date datatypes.Date)
}

type AvailabilityService interface {
	ReplaceAvailability(ctx context.Context, spaceID uint, date datatypes.Date, ranges []timeslot.Range) (*models.DayAvailability, error)
	GetAvailability(ctx context.Context, spaceID uint, date datatypes.Date) ([]timeslot.Range, error)
}

type availabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	reservationRepo  repository.ReservationRepository
	spaceRepo        repository.SpaceRepository
	cache            AvailabilityCache
	publisher        EventPublisher
}

func NewAvailabilityService(
	availabilityRepo repository.AvailabilityRepository,
	reservationRepo repository.ReservationRepository,
	spaceRepo repository.SpaceRepository,
	cache AvailabilityCache,
	publisher EventPublisher,
) AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		reservationRepo:  reservationRepo,
		spaceRepo:        spaceRepo,
		cache:            cache,
		publisher:        publisher,
	}
}

// ReplaceAvailability swaps the full range set for (space, date). The edit is
// all-or-nothing: if any active reservation would fall outside the new
// windows the update is rejected and the stored ranges stay untouched.
func (s *availabilityService) ReplaceAvailability(ctx context.Context, spaceID uint, date datatypes.Date, ranges []timeslot.Range) (*models.DayAvailability, error) {
	if err := timeslot.Validate(ranges); err != nil {
		return nil, err
	}

	if _, err := s.spaceRepo.FindByID(ctx, spaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, err
	}

	var result *models.DayAvailability

	err := runInTx(ctx, s.availabilityRepo.GetDB(), func(tx *gorm.DB) error {
		// Lock the existing row so no reservation lands between the orphan
		// check and the write. First declaration for a day has no row to
		// lock; the unique index backstops that insert race.
		_, err := s.availabilityRepo.FindBySpaceDateForUpdate(ctx, tx, spaceID, date)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		active, err := s.reservationRepo.FindActiveBySpaceDate(ctx, tx, spaceID, date)
		if err != nil {
			return err
		}

		if orphaned := findOrphans(ranges, active); len(orphaned) > 0 {
			return &OrphanedReservationsError{ReservationIDs: orphaned}
		}

		availability := &models.DayAvailability{SpaceID: spaceID, Date: date}
		if err := availability.SetTimeRanges(ranges); err != nil {
			return err
		}
		if err := s.availabilityRepo.Upsert(ctx, tx, availability); err != nil {
			return err
		}
		result = availability
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, spaceID, date)
	}
	s.publishUpdated(result)
	return result, nil
}

// GetAvailability returns the declared ranges for (space, date), consulting
// the cache first. Absent declaration maps to ErrNoAvailability.
func (s *availabilityService) GetAvailability(ctx context.Context, spaceID uint, date datatypes.Date) ([]timeslot.Range, error) {
	if s.cache != nil {
		if ranges, ok := s.cache.Get(ctx, spaceID, date); ok {
			return ranges, nil
		}
	}

	availability, err := s.availabilityRepo.FindBySpaceDate(ctx, spaceID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAvailability
		}
		return nil, err
	}

	ranges, err := availability.TimeRanges()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, spaceID, date, ranges)
	}
	return ranges, nil
}

// findOrphans returns the ids of active reservations whose windows would no
// longer be fully contained in the proposed range set.
func findOrphans(newRanges []timeslot.Range, active []models.Reservation) []uint {
	var orphaned []uint
	for _, reservation := range active {
		if !timeslot.AnyContains(newRanges, reservation.Window()) {
			orphaned = append(orphaned, reservation.ID)
		}
	}
	return orphaned
}

func (s *availabilityService) publishUpdated(availability *models.DayAvailability) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish("availability.updated", availability); err != nil {
		log.Printf("[AvailabilityService] publish availability.updated: %v", err)
	}
}
