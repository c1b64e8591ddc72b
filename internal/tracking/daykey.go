package tracking

import "time"

// DayKey identifies one calendar day. Keys are ISO dates ("2006-01-02"),
// so they are stable across locales, usable as map keys, and compare
// lexicographically in chronological order.
type DayKey string

// Timestamped is anything that happened at a point in time.
type Timestamped interface {
	OccurredAt() time.Time
}

// Day returns the day key for t in the given time zone. Two timestamps
// map to the same key if and only if they fall on the same calendar day
// in loc; a timestamp exactly at midnight belongs to the day it starts.
func Day(t time.Time, loc *time.Location) DayKey {
	return DayKey(t.In(loc).Format("2006-01-02"))
}

// FilterByDay returns the items whose timestamp falls on day in loc,
// preserving their original order.
func FilterByDay[T Timestamped](items []T, day DayKey, loc *time.Location) []T {
	var out []T
	for _, it := range items {
		if Day(it.OccurredAt(), loc) == day {
			out = append(out, it)
		}
	}
	return out
}

// ShiftDay moves ref by delta calendar days (negative for the past).
func ShiftDay(ref time.Time, delta int) time.Time {
	return ref.AddDate(0, 0, delta)
}

// After reports whether k is a later calendar day than other. Callers
// paging through the diary use this to refuse navigation past today.
func (k DayKey) After(other DayKey) bool {
	return string(k) > string(other)
}
