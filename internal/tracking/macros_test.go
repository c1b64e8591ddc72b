package tracking_test

import (
	"testing"
	"time"

	"github.com/steelo13/WellnessWingman/internal/tracking"
)

type meal struct {
	macros tracking.Macros
	at     time.Time
}

func (m meal) Nutrition() tracking.Macros { return m.macros }
func (m meal) OccurredAt() time.Time      { return m.at }

type workout struct {
	burned float64
	at     time.Time
}

func (w workout) Burned() float64       { return w.burned }
func (w workout) OccurredAt() time.Time { return w.at }

func TestSumFoodNetCarbsToggle(t *testing.T) {
	t.Parallel()
	entries := []meal{
		{macros: tracking.Macros{Calories: 105, Carbs: 20, Fat: 0, Protein: 1, Fiber: 5}},
	}

	gross := tracking.SumFood(entries, false)
	if gross.Carbs != 20 {
		t.Errorf("gross carbs = %v, want 20", gross.Carbs)
	}

	net := tracking.SumFood(entries, true)
	if net.Carbs != 15 {
		t.Errorf("net carbs = %v, want 15", net.Carbs)
	}
	if net.Calories != 105 || net.Protein != 1 || net.Fat != 0 {
		t.Errorf("net carbs mode must not touch other fields, got %+v", net)
	}
}

func TestSumFoodMissingFiberDefaultsToZero(t *testing.T) {
	t.Parallel()
	entries := []meal{
		{macros: tracking.Macros{Calories: 120, Carbs: 3, Protein: 24, Fat: 1}},
	}
	got := tracking.SumFood(entries, true)
	if got.Carbs != 3 {
		t.Errorf("carbs = %v, want 3 (no fiber to subtract)", got.Carbs)
	}
}

func TestSumFoodAdditivity(t *testing.T) {
	t.Parallel()
	a := []meal{
		{macros: tracking.Macros{Calories: 105, Carbs: 27, Protein: 1, Fiber: 3}},
		{macros: tracking.Macros{Calories: 120, Carbs: 3, Fat: 1, Protein: 24}},
	}
	b := []meal{
		{macros: tracking.Macros{Calories: 205, Carbs: 45, Protein: 4, Fiber: 1}},
	}

	for _, netCarbs := range []bool{false, true} {
		sumA := tracking.SumFood(a, netCarbs)
		sumB := tracking.SumFood(b, netCarbs)
		sumAB := tracking.SumFood(append(append([]meal{}, a...), b...), netCarbs)

		want := tracking.DailyTotals{
			Calories: sumA.Calories + sumB.Calories,
			Protein:  sumA.Protein + sumB.Protein,
			Carbs:    sumA.Carbs + sumB.Carbs,
			Fat:      sumA.Fat + sumB.Fat,
		}
		if sumAB != want {
			t.Errorf("netCarbs=%v: aggregate(A+B) = %+v, want %+v", netCarbs, sumAB, want)
		}
	}
}

func TestSumFoodEmpty(t *testing.T) {
	t.Parallel()
	for _, netCarbs := range []bool{false, true} {
		got := tracking.SumFood([]meal(nil), netCarbs)
		if got != (tracking.DailyTotals{}) {
			t.Errorf("netCarbs=%v: empty aggregate = %+v, want zero", netCarbs, got)
		}
	}
}

func TestSumBurned(t *testing.T) {
	t.Parallel()
	exercises := []workout{{burned: 300}, {burned: 150.5}}
	if got := tracking.SumBurned(exercises); got != 450.5 {
		t.Errorf("SumBurned = %v, want 450.5", got)
	}
	if got := tracking.SumBurned([]workout(nil)); got != 0 {
		t.Errorf("SumBurned(nil) = %v, want 0", got)
	}
}

func TestComputeRemainingExerciseCredit(t *testing.T) {
	t.Parallel()
	goal := tracking.Macros{Calories: 2200, Carbs: 250, Fat: 70, Protein: 150}
	consumed := tracking.DailyTotals{Calories: 2200, Protein: 100, Carbs: 200, Fat: 50}

	got := tracking.ComputeRemaining(goal, consumed, 300)
	if got.Calories != 300 {
		t.Errorf("calories remaining = %v, want 300 (exercise credit)", got.Calories)
	}
	// Exercise credit applies to calories only.
	if got.Protein != 50 || got.Carbs != 50 || got.Fat != 20 {
		t.Errorf("macro remainders = %+v, want protein 50, carbs 50, fat 20", got)
	}
}

func TestComputeRemainingFloorsAtZero(t *testing.T) {
	t.Parallel()
	goal := tracking.Macros{Calories: 2000, Carbs: 200, Fat: 60, Protein: 150}
	consumed := tracking.DailyTotals{Calories: 2500, Protein: 200, Carbs: 250, Fat: 90}

	got := tracking.ComputeRemaining(goal, consumed, 0)
	if got != (tracking.Remaining{}) {
		t.Errorf("over-goal remaining = %+v, want all zero", got)
	}
}
