package daykey

import (
	"fmt"
	"time"
)

// Instant is an absolute point in time expressed as nanoseconds since the
// Unix epoch, the wire representation used by the backend for all timestamps.
type Instant int64

// Time converts the instant to a time.Time in the local zone.
func (i Instant) Time() time.Time {
	return time.Unix(0, int64(i))
}

// FromTime converts a time.Time to its wire representation.
func FromTime(t time.Time) Instant {
	// Millisecond precision matches what the backend round-trips; the extra
	// sub-millisecond digits carry no meaning for day bucketing.
	return Instant(t.UnixMilli() * int64(time.Millisecond))
}

// Date is a calendar date with no time-of-day component. All day-level
// grouping compares Date values, never raw instants.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromInstant extracts the local calendar date an instant falls on.
func FromInstant(i Instant) Date {
	y, m, d := i.Time().Local().Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local calendar date.
func Today() Date {
	y, m, d := time.Now().Date()
	return Date{Year: y, Month: m, Day: d}
}

// Instant returns the instant at local midnight on this date.
func (d Date) Instant() Instant {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
	return Instant(t.UnixMilli() * int64(time.Millisecond))
}

// Time returns local midnight on this date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// Key returns the date in YYYY-MM-DD form, the textual key used by
// reflections and cache parameters.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseKey parses a YYYY-MM-DD key back into a Date.
func ParseKey(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date key %q: %w", s, err)
	}
	y, m, day := t.Date()
	return Date{Year: y, Month: m, Day: day}, nil
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	y, m, day := d.Time().AddDate(0, 0, n).Date()
	return Date{Year: y, Month: m, Day: day}
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// SameDay reports whether the instant falls on the given local calendar date.
func SameDay(i Instant, d Date) bool {
	return FromInstant(i) == d
}
