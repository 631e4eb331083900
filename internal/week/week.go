// Package week owns the canonical week boundary: a week runs Sunday 00:00:00
// through the following Saturday 23:59:59.999999999 in the given time's
// location. Every component that needs "the current week" goes through
// BoundsFor so the two date-math variants of the old board can't drift apart.
package week

import (
	"fmt"
	"time"
)

// Bounds is one Sunday..Saturday span.
type Bounds struct {
	Start time.Time // Sunday 00:00:00
	End   time.Time // Saturday 23:59:59.999999999
}

// BoundsFor returns the week containing t.
func BoundsFor(t time.Time) Bounds {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	start := midnight.AddDate(0, 0, -int(midnight.Weekday()))
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return Bounds{Start: start, End: end}
}

// Contains reports whether t falls inside the span.
func (b Bounds) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// Display renders the span the way the board header shows it,
// e.g. "May 18 - May 24".
func (b Bounds) Display() string {
	return fmt.Sprintf("%s - %s", b.Start.Format("Jan 2"), b.End.Format("Jan 2"))
}

// DayKey is the calendar-day key used by the streak tracker and the
// auto-rollover marker.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey tags monthly champions, e.g. "2026-08".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// IsLastDayOfMonth reports whether tomorrow is in a different month.
func IsLastDayOfMonth(t time.Time) bool {
	return t.Month() != t.AddDate(0, 0, 1).Month()
}

// MonthBounds returns the first instant of t's month and the first instant
// of the next month, for half-open range queries.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	year, month, _ := t.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
