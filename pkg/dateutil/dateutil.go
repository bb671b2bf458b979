package dateutil

import (
	"fmt"
	"math"
	"time"
)

// DayLayout is the canonical calendar-day format used by every date-bucketed
// calculation. Days are always derived in the user's location, never UTC,
// so a completion at 23:30 local time lands on the local day it happened.
const DayLayout = "2006-01-02"

// LocalDay returns the calendar day of t in the given location.
func LocalDay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return t.In(loc).Format(DayLayout)
}

// ParseDay parses a canonical day string back into a midnight time in loc.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation(DayLayout, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", day, err)
	}

	return t, nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}

	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween returns the number of whole calendar days from a to b in loc.
// It compares midnights, so a 1-minute span across midnight counts as 1.
// Rounding absorbs DST transitions, where a calendar day is 23 or 25 hours.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	start := StartOfDay(a, loc)
	end := StartOfDay(b, loc)
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// StartOfWeek returns local midnight of the most recent weekStart day.
func StartOfWeek(t time.Time, weekStart time.Weekday, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns local midnight of the first day of t's month.
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}

	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// TrailingDays returns the last n calendar days ending at t, oldest first.
func TrailingDays(t time.Time, n int, loc *time.Location) []string {
	days := make([]string, 0, n)
	day := StartOfDay(t, loc)
	for i := n - 1; i >= 0; i-- {
		days = append(days, LocalDay(day.AddDate(0, 0, -i), loc))
	}

	return days
}
