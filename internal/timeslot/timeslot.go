// Package timeslot holds the time-of-day range algebra used by availability
// and reservation checks. All ranges are half-open intervals [Start, End).
package timeslot

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrInvalidRange = errors.New("invalid time range")

// TimeOfDay is a clock time within a single day, stored as minutes since
// midnight. Its wire and database form is "HH:MM".
type TimeOfDay int

const minutesPerDay = 24 * 60

// ParseTimeOfDay parses "HH:MM" (24-hour clock) into a TimeOfDay.
// "24:00" is accepted as the exclusive end-of-day bound.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w: malformed time %q", ErrInvalidRange, s)
	}
	t := TimeOfDay(h*60 + m)
	if h < 0 || m < 0 || m > 59 || t > minutesPerDay || t.String() != s {
		return 0, fmt.Errorf("%w: malformed time %q", ErrInvalidRange, s)
	}
	return t, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= minutesPerDay
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: expected quoted HH:MM", ErrInvalidRange)
	}
	parsed, err := ParseTimeOfDay(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores the time as "HH:MM" so the column works with a TIME type.
func (t TimeOfDay) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidRange, int(t))
	}
	return t.String(), nil
}

func (t *TimeOfDay) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		s = v.Format("15:04")
	default:
		return fmt.Errorf("%w: cannot scan %T into TimeOfDay", ErrInvalidRange, src)
	}
	// Postgres TIME comes back as "HH:MM:SS"; keep only the leading HH:MM.
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Range is a half-open window [Start, End) within one day.
type Range struct {
	Start TimeOfDay `json:"start" validate:"required"`
	End   TimeOfDay `json:"end" validate:"required"`
}

func (r Range) Valid() bool {
	return r.Start.Valid() && r.End.Valid() && r.Start < r.End
}

// Overlaps reports whether the two half-open windows intersect.
// Touching endpoints (a.End == b.Start) do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Contains reports whether other fits entirely inside r.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Validate checks a proposed range set: every range well-formed and no two
// ranges overlapping. The set need not be contiguous or cover the day.
func Validate(ranges []Range) error {
	for _, r := range ranges {
		if !r.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidRange, r)
		}
	}
	for i := range ranges {
		for j := i + 1; j < len(ranges); j++ {
			if ranges[i].Overlaps(ranges[j]) {
				return fmt.Errorf("%w: %s overlaps %s", ErrInvalidRange, ranges[i], ranges[j])
			}
		}
	}
	return nil
}

// Sorted returns a copy of ranges in ascending start order.
func Sorted(ranges []Range) []Range {
	out := make([]Range, len(ranges))
	copy(out, ranges)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// AnyContains reports whether window fits inside a single declared range.
// A window spanning two disjoint ranges does not count as contained.
func AnyContains(ranges []Range, window Range) bool {
	for _, r := range ranges {
		if r.Contains(window) {
			return true
		}
	}
	return false
}
