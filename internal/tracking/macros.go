// Package tracking holds the pure calculation core of the bot: macro
// aggregation, goal budgets, calendar-day bucketing and the hydration
// streak. Nothing in here touches the database or the network, every
// function takes its full input as arguments and returns a fresh result,
// so all of it is safe to call concurrently.
package tracking

// Macros is a nutritional profile in grams plus calories. It is used for
// goals, single entries and aggregated totals alike.
type Macros struct {
	Calories float64
	Carbs    float64
	Fat      float64
	Protein  float64
	Fiber    float64
}

// DailyTotals is the summed consumption for one day.
type DailyTotals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Remaining is the non-negative gap between a goal and consumption.
type Remaining struct {
	Calories float64
	Carbs    float64
	Fat      float64
	Protein  float64
}

// Nutrient is anything that carries a nutritional profile.
type Nutrient interface {
	Nutrition() Macros
}

// Burner is anything that burned calories.
type Burner interface {
	Burned() float64
}

// SumFood reduces a list of entries into daily totals. When netCarbs is
// set, each entry contributes carbs minus fiber instead of raw carbs
// (entries without fiber contribute raw carbs, since fiber is zero).
// An empty list yields all-zero totals. Inputs are assumed sanitized by
// the caller; nothing is validated here.
func SumFood[T Nutrient](entries []T, netCarbs bool) DailyTotals {
	var total DailyTotals
	for _, e := range entries {
		m := e.Nutrition()
		total.Calories += m.Calories
		total.Protein += m.Protein
		total.Fat += m.Fat
		if netCarbs {
			total.Carbs += m.Carbs - m.Fiber
		} else {
			total.Carbs += m.Carbs
		}
	}
	return total
}

// SumBurned sums the calories burned across a list of exercises.
func SumBurned[T Burner](exercises []T) float64 {
	var total float64
	for _, e := range exercises {
		total += e.Burned()
	}
	return total
}

// ComputeRemaining returns the macro budget left for the day. Exercise
// calories are credited back into the calorie budget only; protein,
// carbs and fat get no exercise credit. Every field is floored at zero,
// so an exceeded goal reads as "0 remaining" rather than negative.
func ComputeRemaining(goal Macros, consumed DailyTotals, caloriesBurned float64) Remaining {
	return Remaining{
		Calories: max(0, (goal.Calories+caloriesBurned)-consumed.Calories),
		Carbs:    max(0, goal.Carbs-consumed.Carbs),
		Fat:      max(0, goal.Fat-consumed.Fat),
		Protein:  max(0, goal.Protein-consumed.Protein),
	}
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
