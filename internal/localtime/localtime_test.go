package localtime

import (
	"testing"
	"time"
)

func TestDayWindowCoversFullLocalDay(t *testing.T) {
	// 2026-01-15 02:30 UTC is still 2026-01-14 21:30 in Toronto (EST).
	utc := time.Date(2026, 1, 15, 2, 30, 0, 0, time.UTC)

	start, end := DayWindow(utc)

	if end.Sub(start).Truncate(time.Hour) != 24*time.Hour {
		t.Errorf("window length = %v, want 24h", end.Sub(start))
	}
	if !utc.Equal(start) && (utc.Before(start) || !utc.Before(end)) {
		t.Errorf("moment %v outside its own window [%v, %v)", utc, start, end)
	}
	// The local date at window start must be the 14th, not the 15th.
	if got := start.In(loc).Day(); got != 14 {
		t.Errorf("window starts on local day %d, want 14", got)
	}
}

func TestDayWindowBoundsAreUTC(t *testing.T) {
	start, end := DayWindow(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC))
	if start.Location() != time.UTC || end.Location() != time.UTC {
		t.Errorf("bounds not in UTC: %v, %v", start.Location(), end.Location())
	}
	// July 1 midnight Toronto is 04:00 UTC under EDT.
	if start.Hour() != 4 {
		t.Errorf("summer window starts at %02d:00 UTC, want 04:00", start.Hour())
	}
}
