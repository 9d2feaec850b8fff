package utils

import (
	"fmt"
	"time"

	"github.com/tallyapp/tally/internal/constants"
)

// ParseDay parses a calendar-day string (YYYY-MM-DD).
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}

// FormatDay formats a time as a calendar-day string (YYYY-MM-DD).
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ValidDay reports whether the string is a well-formed YYYY-MM-DD day.
func ValidDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// AddDays returns the day n calendar days after (or before, for negative n)
// the given day. The day string must be valid; callers validate first.
func AddDays(day string, n int) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return FormatDay(t.AddDate(0, 0, n))
}

// DaysBetween returns the number of calendar days from a to b. Zero when the
// days are equal, negative when b is before a.
func DaysBetween(a, b string) int {
	ta, err := ParseDay(a)
	if err != nil {
		return 0
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// MaxDay returns the later of two day strings. YYYY-MM-DD keys sort
// lexicographically, so plain string comparison is exact.
func MaxDay(a, b string) string {
	if a > b {
		return a
	}
	return b
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// Today returns today's day string (YYYY-MM-DD) in the specified timezone.
// "Today" is determined once at the boundary; the derivation layer treats
// day strings as opaque sortable keys and never does timezone arithmetic.
func Today(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return FormatDay(now), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
