package utils

import (
	"fmt"
	"time"

	"github.com/chorekeep/chorekeep/internal/constants"
)

// Day is a calendar day with no time-of-day or timezone component. All
// "same day" and "days between" decisions in the application go through
// this type rather than comparing raw timestamps, so two events on the
// same calendar day always compare equal regardless of clock time.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// DayOf truncates a time to its calendar day in the time's own location.
func DayOf(t time.Time) Day {
	return Day{Year: t.Year(), Month: t.Month(), Date: t.Day()}
}

// ParseDay parses a YYYY-MM-DD day key.
func ParseDay(key string) (Day, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return DayOf(t), nil
}

// Key returns the YYYY-MM-DD string form used as the storage key.
func (d Day) Key() string {
	return d.Time(time.UTC).Format(constants.DateFormat)
}

// Time returns midnight of the day in the given location.
func (d Day) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, loc)
}

// Sub returns the number of calendar days from other to d. Consecutive
// days yield 1; the same day yields 0. DST transitions do not affect the
// result because both endpoints are normalized to UTC midnight.
func (d Day) Sub(other Day) int {
	a := d.Time(time.UTC)
	b := other.Time(time.UTC)
	return int(a.Sub(b).Hours() / 24)
}

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Day) Before(other Day) bool {
	return d.Sub(other) < 0
}

func (d Day) String() string {
	return d.Key()
}

// IsZero reports whether d is the zero value.
func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Date == 0
}
