package utils

import "time"

const DateLayout = "2006-01-02"

// DateOf returns the calendar day of t as observed in loc, normalized to
// midnight UTC so it compares equal to DATE columns scanned by pgx.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into a midnight UTC day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func IsMonday(day time.Time) bool {
	return day.Weekday() == time.Monday
}

// WeekEnd returns the Sunday closing the week that starts on weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}

// InRange reports whether day falls in [from, to], both inclusive.
func InRange(day, from, to time.Time) bool {
	return !day.Before(from) && !day.After(to)
}

// MondayOf returns the Monday on or before day.
func MondayOf(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
