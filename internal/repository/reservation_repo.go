package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/semInDev/beour-be-sub001/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindActiveBySpaceDate(ctx context.Context, tx *gorm.DB, spaceID uint, date datatypes.Date) ([]models.Reservation, error)
	FindByHostDate(ctx context.Context, hostID uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uint) error
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindActiveBySpaceDate returns the PENDING/ACCEPTED reservations occupying
// windows on the given space and date. Soft-deleted rows are excluded by the
// gorm default scope. Runs on tx so the caller's lock covers the read.
func (r *reservationRepository) FindActiveBySpaceDate(ctx context.Context, tx *gorm.DB, spaceID uint, date datatypes.Date) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := tx.WithContext(ctx).
		Where("space_id = ? AND date = ? AND status IN ?", spaceID, date,
			[]models.ReservationStatus{models.StatusPending, models.StatusAccepted}).
		Order("start_time ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindByHostDate(ctx context.Context, hostID uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error) {
	var reservations []models.Reservation
	q := r.db.WithContext(ctx).Where("host_id = ? AND date = ?", hostID, date)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("start_time ASC, id ASC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// SoftDelete marks the row deleted (sets deleted_at); the row stays behind
// for audit queries through Unscoped.
func (r *reservationRepository) SoftDelete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Reservation{}, id).Error
}
