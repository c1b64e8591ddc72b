package tracking_test

import (
	"testing"
	"time"

	"github.com/steelo13/WellnessWingman/internal/tracking"
)

func TestDaySameCalendarDay(t *testing.T) {
	t.Parallel()
	loc := time.UTC
	morning := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	night := time.Date(2026, 3, 14, 23, 59, 59, 0, loc)
	nextDay := time.Date(2026, 3, 15, 0, 0, 0, 0, loc)

	if tracking.Day(morning, loc) != tracking.Day(night, loc) {
		t.Error("timestamps on the same calendar day must share a key")
	}
	if tracking.Day(night, loc) == tracking.Day(nextDay, loc) {
		t.Error("midnight starts a new day, keys must differ")
	}
	if got := tracking.Day(morning, loc); got != "2026-03-14" {
		t.Errorf("Day = %q, want 2026-03-14", got)
	}
}

func TestDayRespectsTimeZone(t *testing.T) {
	t.Parallel()
	// 23:30 in UTC is already the next day in Auckland.
	auckland := time.FixedZone("NZST", 12*3600)
	ts := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

	if got := tracking.Day(ts, time.UTC); got != "2026-03-14" {
		t.Errorf("UTC key = %q, want 2026-03-14", got)
	}
	if got := tracking.Day(ts, auckland); got != "2026-03-15" {
		t.Errorf("NZST key = %q, want 2026-03-15", got)
	}
}

func TestFilterByDay(t *testing.T) {
	t.Parallel()
	loc := time.UTC
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	entries := []meal{
		{at: day.Add(8 * time.Hour)},
		{at: day.AddDate(0, 0, -1).Add(20 * time.Hour)},
		{at: day}, // exactly midnight, belongs to this day
		{at: day.Add(19 * time.Hour)},
		{at: day.AddDate(0, 0, 1)},
	}

	key := tracking.Day(day, loc)
	got := tracking.FilterByDay(entries, key, loc)
	if len(got) != 3 {
		t.Fatalf("filtered %d entries, want 3", len(got))
	}
	// Relative order is preserved.
	if !got[0].at.Equal(day.Add(8*time.Hour)) || !got[1].at.Equal(day) || !got[2].at.Equal(day.Add(19*time.Hour)) {
		t.Errorf("order not preserved: %v", got)
	}

	// Filtering twice with the same key is a no-op after the first.
	again := tracking.FilterByDay(got, key, loc)
	if len(again) != len(got) {
		t.Errorf("second filter changed the result: %d != %d", len(again), len(got))
	}
}

func TestShiftDay(t *testing.T) {
	t.Parallel()
	ref := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := tracking.ShiftDay(ref, -1); got.Day() != 28 || got.Month() != time.February {
		t.Errorf("yesterday of Mar 1 = %v, want Feb 28", got)
	}
	if got := tracking.ShiftDay(ref, 1); got.Day() != 2 {
		t.Errorf("tomorrow = %v, want Mar 2", got)
	}
}

func TestDayKeyAfter(t *testing.T) {
	t.Parallel()
	today := tracking.DayKey("2026-03-14")
	tomorrow := tracking.DayKey("2026-03-15")

	if !tomorrow.After(today) {
		t.Error("tomorrow must compare after today")
	}
	if today.After(today) {
		t.Error("a day does not compare after itself")
	}
	if today.After(tomorrow) {
		t.Error("today must not compare after tomorrow")
	}
}
