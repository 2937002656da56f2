package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// Date represents a calendar date (midnight UTC, no time-of-day component).
type Date = time.Time

// ToDate converts a time to a Date by normalizing to UTC and truncating the time-of-day.
func ToDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from one date to another,
// rounding any partial day up. It returns 0 when to is not after from.
func DaysBetween(from time.Time, to time.Time) int {
	diff := ToDate(to).Sub(ToDate(from))
	if diff <= 0 {
		return 0
	}

	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}

	return days
}
