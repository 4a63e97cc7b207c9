package repository

import (
	"context"

	"github.com/semInDev/beour-be-sub001/internal/models"
	"gorm.io/gorm"
)

type SpaceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Space, error)
}

type spaceRepository struct {
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) SpaceRepository {
	return &spaceRepository{db: db}
}

func (r *spaceRepository) FindByID(ctx context.Context, id uint) (*models.Space, error) {
	var space models.Space
	if err := r.db.WithContext(ctx).First(&space, id).Error; err != nil {
		return nil, err
	}
	return &space, nil
}
