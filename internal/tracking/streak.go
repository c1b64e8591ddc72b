package tracking

import "time"

// streakLookbackDays bounds the backward walk so the streak query stays
// O(1)-ish even over years of history. A streak longer than a year will
// read as capped.
const streakLookbackDays = 365

// WaterStreak counts consecutive days on which the hydration goal was
// met, ending at or immediately before today. Walking backward from
// yesterday, a day with intake below the goal (or no record at all)
// stops the count. If today's intake already meets the goal it extends
// the streak by one; a shortfall today does not erase a streak that is
// still intact through yesterday.
//
// The walk always runs over the full history rather than patching a
// stored counter, so retroactive edits to past days are picked up.
func WaterStreak(history map[DayKey]int, goalML int, now time.Time, loc *time.Location) int {
	streak := 0
	for i := 1; i < streakLookbackDays; i++ {
		day := Day(ShiftDay(now, -i), loc)
		if history[day] >= goalML {
			streak++
		} else {
			break
		}
	}
	if history[Day(now, loc)] >= goalML {
		streak++
	}
	return streak
}
