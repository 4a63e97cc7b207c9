package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/semInDev/beour-be-sub001/internal/models"
	"github.com/semInDev/beour-be-sub001/internal/timeslot"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// --- Mock ReservationRepository ---

type mockReservationRepo struct {
	createFn         func(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	findByIDFn       func(ctx context.Context, id uint) (*models.Reservation, error)
	findActiveFn     func(ctx context.Context, tx *gorm.DB, spaceID uint, date datatypes.Date) ([]models.Reservation, error)
	findByHostDateFn func(ctx context.Context, hostID uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error)
	updateStatusFn   func(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error
	softDeleteFn     func(ctx context.Context, tx *gorm.DB, id uint) error
}

func (m *mockReservationRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
	return m.createFn(ctx, tx, r)
}
func (m *mockReservationRepo) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockReservationRepo) FindActiveBySpaceDate(ctx context.Context, tx *gorm.DB, spaceID uint, date datatypes.Date) ([]models.Reservation, error) {
	return m.findActiveFn(ctx, tx, spaceID, date)
}
func (m *mockReservationRepo) FindByHostDate(ctx context.Context, hostID uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error) {
	return m.findByHostDateFn(ctx, hostID, date, status)
}
func (m *mockReservationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error {
	return m.updateStatusFn(ctx, tx, id, status)
}
func (m *mockReservationRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uint) error {
	return m.softDeleteFn(ctx, tx, id)
}
func (m *mockReservationRepo) GetDB() *gorm.DB { return nil }

// --- Mock AvailabilityRepository ---

type mockAvailabilityRepo struct {
	findFn          func(ctx context.Context, spaceID uint, date datatypes.Date) (*models.DayAvailability, error)
	findForUpdateFn func(ctx context.Context, tx *gorm.DB, spaceID uint, date datatypes.Date) (*models.DayAvailability, error)
	upsertFn        func(ctx context.Context, tx *gorm.DB, availability *models.DayAvailability) error
}

func (m *mockAvailabilityRepo) FindBySpaceDate(ctx context.Context, spaceID uint, date datatypes.Date) (*models.DayAvailability, error) {
	return m.findFn(ctx, spaceID, date)
}
func (m *mockAvailabilityRepo) FindBySpaceDateForUpdate(ctx context.Context, tx *gorm.DB, spaceID uint, date datatypes.Date) (*models.DayAvailability, error) {
	return m.findForUpdateFn(ctx, tx, spaceID, date)
}
func (m *mockAvailabilityRepo) Upsert(ctx context.Context, tx *gorm.DB, availability *models.DayAvailability) error {
	return m.upsertFn(ctx, tx, availability)
}
func (m *mockAvailabilityRepo) GetDB() *gorm.DB { return nil }

// --- Mock SpaceRepository ---

type mockSpaceRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.Space, error)
}

func (m *mockSpaceRepo) FindByID(ctx context.Context, id uint) (*models.Space, error) {
	return m.findByIDFn(ctx, id)
}

// --- Mock AvailabilityCache ---

type mockCache struct {
	entries     map[string][]timeslot.Range
	invalidated []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]timeslot.Range)}
}

func cacheKey(spaceID uint, date datatypes.Date) string {
	return fmt.Sprintf("%d/%s", spaceID, time.Time(date).Format("2006-01-02"))
}

func (m *mockCache) Get(_ context.Context, spaceID uint, date datatypes.Date) ([]timeslot.Range, bool) {
	ranges, ok := m.entries[cacheKey(spaceID, date)]
	return ranges, ok
}
func (m *mockCache) Set(_ context.Context, spaceID uint, date datatypes.Date, ranges []timeslot.Range) {
	m.entries[cacheKey(spaceID, date)] = ranges
}
func (m *mockCache) Invalidate(_ context.Context, spaceID uint, date datatypes.Date) {
	key := cacheKey(spaceID, date)
	delete(m.entries, key)
	m.invalidated = append(m.invalidated, key)
}

// --- Test helpers ---

func mustTime(t *testing.T, s string) timeslot.TimeOfDay {
	t.Helper()
	tod, err := timeslot.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func rng(t *testing.T, start, end string) timeslot.Range {
	t.Helper()
	return timeslot.Range{Start: mustTime(t, start), End: mustTime(t, end)}
}

func dateOf(t *testing.T, s string) datatypes.Date {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return datatypes.Date(parsed)
}

func activeReservation(t *testing.T, id uint, start, end string, status models.ReservationStatus) models.Reservation {
	t.Helper()
	return models.Reservation{
		ID:        id,
		StartTime: mustTime(t, start),
		EndTime:   mustTime(t, end),
		Status:    status,
	}
}
