package repository

import (
	"context"

	"github.com/semInDev/beour-be-sub001/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AvailabilityRepository interface {
	FindBySpaceDate(ctx context.Context, spaceID uint, date datatypes.Date) (*models.DayAvailability, error)
	FindBySpaceDateForUpdate(ctx context.Context, tx *gorm.DB, spaceID uint, date datatypes.Date) (*models.DayAvailability, error)
	Upsert(ctx context.Context, tx *gorm.DB, availability *models.DayAvailability) error
	GetDB() *gorm.DB
}

type availabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *availabilityRepository) FindBySpaceDate(ctx context.Context, spaceID uint, date datatypes.Date) (*models.DayAvailability, error) {
	var availability models.DayAvailability
	err := r.db.WithContext(ctx).
		Where("space_id = ? AND date = ?", spaceID, date).
		First(&availability).Error
	if err != nil {
		return nil, err
	}
	return &availability, nil
}

// FindBySpaceDateForUpdate acquires a row-level lock on the availability row
// within the given transaction. Every check-then-act sequence for a
// (space, date) pair funnels through this lock, so concurrent bookings and
// availability edits for the same day serialize while other days proceed.
func (r *availabilityRepository) FindBySpaceDateForUpdate(ctx context.Context, tx *gorm.DB, spaceID uint, date datatypes.Date) (*models.DayAvailability, error) {
	var availability models.DayAvailability
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("space_id = ? AND date = ?", spaceID, date).
		First(&availability).Error
	if err != nil {
		return nil, err
	}
	return &availability, nil
}

// Upsert replaces the range set for (space_id, date) wholesale, inserting
// the row if the host has not declared that day before.
func (r *availabilityRepository) Upsert(ctx context.Context, tx *gorm.DB, availability *models.DayAvailability) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "space_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"ranges", "updated_at"}),
	}).Create(availability).Error
}
