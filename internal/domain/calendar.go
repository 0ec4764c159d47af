package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidCalendarDate is returned when a date string has no recognisable calendar components
var ErrInvalidCalendarDate = errors.New("domain: invalid calendar date")

// nonISODateLayouts are accepted in addition to YYYY-MM-DD
var nonISODateLayouts = []string{
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// DateKey returns the YYYY-MM-DD key of t built from its own calendar components.
// The location of t is never changed, so a date never shifts across midnight.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// CalendarDay truncates t to midnight in its own location
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Tomorrow returns the calendar day after now (a calendar step, not a 24 hour offset)
func Tomorrow(now time.Time) time.Time {
	return CalendarDay(now).AddDate(0, 0, 1)
}

// ParseCalendarDate reads the year/month/day components of s and returns that
// day at midnight in loc. ISO strings with a time or zone suffix keep the
// components as written (2025-06-10T23:30:00-05:00 is June 10).
func ParseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidCalendarDate
	}

	if len(s) >= len(DateFormat) {
		if t, err := time.Parse(DateFormat, s[:len(DateFormat)]); err == nil {
			if len(s) == len(DateFormat) || s[len(DateFormat)] == 'T' || s[len(DateFormat)] == ' ' {
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
			}
		}
	}

	for _, layout := range nonISODateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidCalendarDate, s)
}

// CombineDateAndTime builds the local instant of a calendar date and a clock time
func CombineDateAndTime(date time.Time, hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = date.Location()
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc)
}
