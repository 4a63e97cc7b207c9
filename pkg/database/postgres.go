package database

import (
	"log"

	"github.com/semInDev/beour-be-sub001/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Space{}, &models.DayAvailability{}, &models.Reservation{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Exclusion constraint: backstop against overlapping active reservations
	// on the same space and date, in case a writer bypasses the row lock.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`ALTER TABLE reservations DROP CONSTRAINT IF EXISTS reservations_no_overlap`)
	db.Exec(`
		ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
		EXCLUDE USING gist (
			space_id WITH =,
			date WITH =,
			tsrange(date + start_time, date + end_time) WITH &&
		) WHERE (status IN ('PENDING', 'ACCEPTED') AND deleted_at IS NULL)
	`)

	return db
}
