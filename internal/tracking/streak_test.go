package tracking_test

import (
	"testing"
	"time"

	"github.com/steelo13/WellnessWingman/internal/tracking"
)

const goalML = 2500

func dayAgo(now time.Time, days int) tracking.DayKey {
	return tracking.Day(tracking.ShiftDay(now, -days), time.UTC)
}

func TestWaterStreak(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		history map[tracking.DayKey]int
		want    int
	}{
		{
			name:    "empty history",
			history: map[tracking.DayKey]int{},
			want:    0,
		},
		{
			name: "three prior days met, today not yet",
			history: map[tracking.DayKey]int{
				dayAgo(now, 3): 3000,
				dayAgo(now, 2): 3000,
				dayAgo(now, 1): 3000,
				dayAgo(now, 0): 0,
			},
			want: 3,
		},
		{
			name: "today extends the streak",
			history: map[tracking.DayKey]int{
				dayAgo(now, 3): 3000,
				dayAgo(now, 2): 3000,
				dayAgo(now, 1): 3000,
				dayAgo(now, 0): 2600,
			},
			want: 4,
		},
		{
			name: "gap yesterday stops the walk, only today counts",
			history: map[tracking.DayKey]int{
				dayAgo(now, 2): 3000,
				dayAgo(now, 1): 0,
				dayAgo(now, 0): 3000,
			},
			want: 1,
		},
		{
			name: "missing day treated as not met",
			history: map[tracking.DayKey]int{
				dayAgo(now, 3): 3000,
				dayAgo(now, 1): 3000,
				dayAgo(now, 0): 3000,
			},
			want: 2,
		},
		{
			name: "exactly at goal counts",
			history: map[tracking.DayKey]int{
				dayAgo(now, 1): goalML,
				dayAgo(now, 0): goalML,
			},
			want: 2,
		},
		{
			name: "just under goal does not count",
			history: map[tracking.DayKey]int{
				dayAgo(now, 1): goalML - 1,
				dayAgo(now, 0): goalML,
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tracking.WaterStreak(tt.history, goalML, now, time.UTC)
			if got != tt.want {
				t.Errorf("WaterStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWaterStreakRecomputesAfterRetroactiveEdit(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	history := map[tracking.DayKey]int{
		dayAgo(now, 2): 3000,
		dayAgo(now, 1): 1000,
		dayAgo(now, 0): 3000,
	}

	if got := tracking.WaterStreak(history, goalML, now, time.UTC); got != 1 {
		t.Fatalf("before edit: streak = %d, want 1", got)
	}

	// Backfilling yesterday reconnects the streak to the older days.
	history[dayAgo(now, 1)] = 2800
	if got := tracking.WaterStreak(history, goalML, now, time.UTC); got != 3 {
		t.Errorf("after edit: streak = %d, want 3", got)
	}
}

func TestWaterStreakIsBounded(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	history := make(map[tracking.DayKey]int)
	for i := 0; i < 800; i++ {
		history[dayAgo(now, i)] = 3000
	}

	got := tracking.WaterStreak(history, goalML, now, time.UTC)
	if got != 365 {
		t.Errorf("streak over multi-year history = %d, want capped at 365", got)
	}
}
