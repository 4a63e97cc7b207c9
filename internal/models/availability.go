package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/semInDev/beour-be-sub001/internal/timeslot"
	"gorm.io/datatypes"
)

// DayAvailability is a host's declared bookable windows for one space on one
// date. One row per (space_id, date); a host edit replaces the whole range
// set, it never patches individual windows.
type DayAvailability struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SpaceID   uint           `gorm:"not null;uniqueIndex:idx_availability_space_date" json:"space_id"`
	Date      datatypes.Date `gorm:"not null;uniqueIndex:idx_availability_space_date" json:"date"`
	Ranges    datatypes.JSON `gorm:"not null" json:"ranges"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TimeRanges decodes the stored range set. Ranges are persisted sorted and
// non-overlapping; decoding does not re-validate.
func (a *DayAvailability) TimeRanges() ([]timeslot.Range, error) {
	var ranges []timeslot.Range
	if err := json.Unmarshal(a.Ranges, &ranges); err != nil {
		return nil, fmt.Errorf("decode availability ranges: %w", err)
	}
	return ranges, nil
}

// SetTimeRanges stores the range set in ascending start order. Callers are
// expected to have validated the set via timeslot.Validate first.
func (a *DayAvailability) SetTimeRanges(ranges []timeslot.Range) error {
	data, err := json.Marshal(timeslot.Sorted(ranges))
	if err != nil {
		return fmt.Errorf("encode availability ranges: %w", err)
	}
	a.Ranges = data
	return nil
}
