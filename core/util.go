package core

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used by every record: YYYY-MM-DD.
const DateLayout = "2006-01-02"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseDate parses a calendar date in loc.
// Full RFC3339 timestamps are accepted too, legacy exports carry some.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// IsDate reports whether s is a YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// FormatDate formats t as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SameMonth reports whether t falls in the calendar month and year of `now`, in now's location.
func SameMonth(t, now time.Time) bool {
	t = t.In(now.Location())
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// DateInMonth reports whether the calendar date `date` falls in the month of `now`.
// Unparsable dates are never in the window.
func DateInMonth(date string, now time.Time) bool {
	t, err := ParseDate(date, now.Location())
	if err != nil {
		return false
	}
	return SameMonth(t, now)
}

// MonthLabel returns eg: "January 2024".
func MonthLabel(now time.Time) string {
	return now.Format("January 2006")
}
