// Package dateutil provides date parsing and validation utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Layout is the storage and wire format for calendar dates.
const Layout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrDateInFuture      = errors.New("date is in the future")
)

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a date string in YYYY-MM-DD format in the local zone.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// ParsePastDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Keyword: "yesterday"
//   - Weekday names: "monday" through "sunday" (most recent occurrence, today included)
//   - Last prefixed: "last-monday" through "last-sunday" (strictly before today), "last-week"
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//
// All inputs are case-insensitive.
// Returns ErrDateInFuture if the resulting date is after relativeTo (truncated to day).
// Returns ErrInvalidDateFormat for unrecognized input.
func ParsePastDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "last-week":
		return today.AddDate(0, 0, -7), nil
	}

	if strings.HasPrefix(input, "last-") {
		if target, ok := weekdayMap[strings.TrimPrefix(input, "last-")]; ok {
			return previousWeekday(today, target, false), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if target, ok := weekdayMap[input]; ok {
		return previousWeekday(today, target, true), nil
	}

	result, err := time.ParseInLocation(Layout, input, today.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if result.After(today) {
		return time.Time{}, ErrDateInFuture
	}
	return result, nil
}

// previousWeekday returns the latest occurrence of target on or before today.
// When includeToday is false and today is target, it returns one week ago.
func previousWeekday(today time.Time, target time.Weekday, includeToday bool) time.Time {
	daysBack := int(today.Weekday()) - int(target)
	if daysBack < 0 {
		daysBack += 7
	}
	if daysBack == 0 && !includeToday {
		daysBack = 7
	}
	return today.AddDate(0, 0, -daysBack)
}
