package utils

import (
	"errors"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// DefaultActivityHour is used whenever a backend start time is missing or
// malformed.
const (
	DefaultActivityHour   = 9
	DefaultActivityMinute = 0
)

// ParseDate accepts YYYY-MM-DD or RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.Parse(isoDate, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func FormatISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(isoDate)
}

// ParseClock reads an "HH:MM" string. ok is false for anything else,
// including out-of-range hours and minutes.
func ParseClock(s string) (hour, minute int, ok bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

// DayOfTrip returns the calendar date of the given 1-based trip day at
// hour:minute, in the location of start.
func DayOfTrip(start time.Time, day, hour, minute int) time.Time {
	if day < 1 {
		day = 1
	}
	d := start.AddDate(0, 0, day-1)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, start.Location())
}

// ActivityTime combines DayOfTrip with ParseClock, falling back to 09:00.
func ActivityTime(start time.Time, day int, clock string) time.Time {
	h, m, ok := ParseClock(clock)
	if !ok {
		h, m = DefaultActivityHour, DefaultActivityMinute
	}
	return DayOfTrip(start, day, h, m)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

