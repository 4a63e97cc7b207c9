package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Space is the rentable unit. Kept minimal here: the reservation core only
// needs the host identity and capacity; listing details live elsewhere.
// Related rows are reached through explicit repository lookups, not ORM
// association preloads.
type Space struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	HostID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"host_id"`
	Name      string         `gorm:"not null" json:"name"`
	Address   string         `json:"address"`
	Capacity  int            `gorm:"not null;default:1" json:"capacity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
