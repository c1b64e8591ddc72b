package handlers

import (
	"testing"
	"time"

	"github.com/steelo13/WellnessWingman/internal/database"
)

func TestParseManualFood(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		ok       bool
		calories float64
		fiber    float64
	}{
		{
			name:     "full line with fiber",
			text:     "Oatmeal, 1 bowl, 350, 60, 6, 12, 8",
			ok:       true,
			calories: 350,
			fiber:    8,
		},
		{
			name:     "fiber omitted defaults to zero",
			text:     "Chicken breast, 200g, 330, 0, 7, 62",
			ok:       true,
			calories: 330,
			fiber:    0,
		},
		{
			name: "too few fields",
			text: "Apple, 1, 95",
			ok:   false,
		},
		{
			name: "negative number rejected",
			text: "Apple, 1, -95, 25, 0, 0",
			ok:   false,
		},
		{
			name: "non numeric macro rejected",
			text: "Apple, 1, ninety, 25, 0, 0",
			ok:   false,
		},
		{
			name: "empty name rejected",
			text: ", 1 bowl, 350, 60, 6, 12",
			ok:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input, ok := parseManualFood(tt.text)
			if ok != tt.ok {
				t.Fatalf("parseManualFood(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !ok {
				return
			}
			if input.Calories != tt.calories {
				t.Errorf("calories = %v, want %v", input.Calories, tt.calories)
			}
			if input.Fiber != tt.fiber {
				t.Errorf("fiber = %v, want %v", input.Fiber, tt.fiber)
			}
			if input.Source != database.SourceManual {
				t.Errorf("source = %q, want %q", input.Source, database.SourceManual)
			}
		})
	}
}

func TestParseManualExercise(t *testing.T) {
	t.Parallel()

	input, ok := parseManualExercise("Morning run, 30, 320")
	if !ok {
		t.Fatal("expected valid exercise line to parse")
	}
	if input.Name != "Morning run" || input.DurationMin != 30 || input.CaloriesBurned != 320 {
		t.Errorf("unexpected parse result: %+v", input)
	}

	for _, text := range []string{
		"Morning run, 30",
		"Morning run, -5, 320",
		"Morning run, 30, lots",
		", 30, 320",
	} {
		if _, ok := parseManualExercise(text); ok {
			t.Errorf("parseManualExercise(%q) unexpectedly succeeded", text)
		}
	}
}

func TestParsePlanSlot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		weekday time.Weekday
		meal    string
		ok      bool
	}{
		{text: "Monday Dinner", weekday: time.Monday, meal: database.CategoryDinner, ok: true},
		{text: "wed breakfast", weekday: time.Wednesday, meal: database.CategoryBreakfast, ok: true},
		{text: "tue lun", weekday: time.Tuesday, meal: database.CategoryLunch, ok: true},
		{text: "thu sna", weekday: time.Thursday, meal: database.CategorySnacks, ok: true},
		{text: "SATURDAY DINNER", weekday: time.Saturday, meal: database.CategoryDinner, ok: true},
		{text: "Monday", ok: false},
		{text: "Monday Dinner extra", ok: false},
		{text: "someday dinner", ok: false},
		{text: "monday brunch", ok: false},
		{text: "mo dinner", ok: false},
		{text: "monday di", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			weekday, meal, ok := parsePlanSlot(tt.text)
			if ok != tt.ok {
				t.Fatalf("parsePlanSlot(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !ok {
				return
			}
			if weekday != tt.weekday {
				t.Errorf("weekday = %v, want %v", weekday, tt.weekday)
			}
			if meal != tt.meal {
				t.Errorf("meal = %q, want %q", meal, tt.meal)
			}
		})
	}
}
