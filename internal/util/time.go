package util

import "time"

// Today returns the current calendar day truncated to midnight UTC. Snapshot
// rows are keyed by this value so a repeated valuation pass stays on one row.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
