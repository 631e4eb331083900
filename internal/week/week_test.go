package week

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh int) time.Time {
	return time.Date(y, m, d, hh, 0, 0, 0, time.UTC)
}

func TestBoundsFor(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid-week thursday",
			in:        date(2026, time.August, 27, 15), // Thursday
			wantStart: date(2026, time.August, 23, 0),  // Sunday
			wantEnd:   date(2026, time.August, 30, 0).Add(-time.Nanosecond),
		},
		{
			name:      "sunday maps to its own week start",
			in:        date(2026, time.August, 23, 0),
			wantStart: date(2026, time.August, 23, 0),
			wantEnd:   date(2026, time.August, 30, 0).Add(-time.Nanosecond),
		},
		{
			name:      "saturday just before midnight stays in week",
			in:        date(2026, time.August, 29, 23),
			wantStart: date(2026, time.August, 23, 0),
			wantEnd:   date(2026, time.August, 30, 0).Add(-time.Nanosecond),
		},
		{
			name:      "week spanning month boundary",
			in:        date(2026, time.September, 1, 9), // Tuesday
			wantStart: date(2026, time.August, 30, 0),
			wantEnd:   date(2026, time.September, 6, 0).Add(-time.Nanosecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BoundsFor(tt.in)
			if !b.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", b.Start, tt.wantStart)
			}
			if !b.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", b.End, tt.wantEnd)
			}
			if !b.Contains(tt.in) {
				t.Errorf("Contains(%v) = false, want true", tt.in)
			}
		})
	}
}

func TestBoundsContainsEdges(t *testing.T) {
	b := BoundsFor(date(2026, time.August, 27, 12))
	if b.Contains(b.Start.Add(-time.Nanosecond)) {
		t.Error("instant before Sunday midnight should be outside the week")
	}
	if b.Contains(b.End.Add(time.Nanosecond)) {
		t.Error("following Sunday midnight should be outside the week")
	}
}

func TestDisplay(t *testing.T) {
	b := BoundsFor(date(2026, time.August, 27, 12))
	if got, want := b.Display(), "Aug 23 - Aug 29"; got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}

func TestIsLastDayOfMonth(t *testing.T) {
	if !IsLastDayOfMonth(date(2026, time.August, 31, 10)) {
		t.Error("Aug 31 should be last day of month")
	}
	if IsLastDayOfMonth(date(2026, time.August, 30, 10)) {
		t.Error("Aug 30 should not be last day of month")
	}
	if !IsLastDayOfMonth(date(2028, time.February, 29, 10)) {
		t.Error("Feb 29 in a leap year should be last day of month")
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(date(2026, time.August, 15, 12))
	if !start.Equal(date(2026, time.August, 1, 0)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(date(2026, time.September, 1, 0)) {
		t.Errorf("end = %v", end)
	}
}
