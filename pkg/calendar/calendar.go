// Package calendar provides UTC day-key bucketing and week arithmetic shared
// by the tasking, activity, and reports contexts.
package calendar

import "time"

// DayKeyLayout is the canonical calendar-day identifier format.
const DayKeyLayout = "2006-01-02"

// DayKey normalizes a timestamp to its UTC calendar-day identifier
// ("YYYY-MM-DD"). Two timestamps share a key iff they fall on the same UTC
// calendar day.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// ParseDayKey converts a day key back to a UTC midnight timestamp.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(DayKeyLayout, key)
}

// StartOfDay truncates a timestamp to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the most recent Sunday at or before the given time,
// truncated to UTC midnight. Weeks run Sunday through Saturday.
func StartOfWeek(t time.Time) time.Time {
	t = StartOfDay(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// EndOfWeek returns the Saturday of the week containing t, at UTC midnight.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// AddDays shifts a timestamp by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SameDay reports whether two timestamps fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// DateRange returns the window of the given number of calendar days ending
// at the reference time, inclusive of the reference day. A window of one day
// starts and ends on the reference day.
func DateRange(reference time.Time, days int) (start, end time.Time) {
	end = StartOfDay(reference)
	if days < 1 {
		days = 1
	}
	start = end.AddDate(0, 0, -(days - 1))
	return start, end
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}
