// Package localtime anchors day-window queries to the restaurant's
// timezone so "today's orders" means the same thing regardless of where
// the server runs.
package localtime

import "time"

const restaurantTZ = "America/Toronto"

var loc = mustLoad()

func mustLoad() *time.Location {
	l, err := time.LoadLocation(restaurantTZ)
	if err != nil {
		// Fall back to a fixed EST offset if the tz database is absent.
		return time.FixedZone("EST", -5*60*60)
	}
	return l
}

// Now returns the current time in the restaurant's timezone.
func Now() time.Time {
	return time.Now().In(loc)
}

// DayWindow returns the [start, end) bounds of the restaurant-local day
// containing t, expressed in UTC for use in timestamptz comparisons.
func DayWindow(t time.Time) (start, end time.Time) {
	local := t.In(loc)
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC()
}

// TodayWindow is DayWindow for the current moment.
func TodayWindow() (start, end time.Time) {
	return DayWindow(time.Now())
}
