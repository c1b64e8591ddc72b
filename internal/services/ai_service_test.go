package services

import "testing"

func TestExtractJSON(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"name":"Oatmeal"}`,
			want: `{"name":"Oatmeal"}`,
		},
		{
			name: "fenced code block",
			in:   "```json\n{\"name\":\"Oatmeal\"}\n```",
			want: `{"name":"Oatmeal"}`,
		},
		{
			name: "surrounding prose",
			in:   `Here is your result: {"calories": 95} hope that helps!`,
			want: `{"calories": 95}`,
		},
		{
			name: "no object",
			in:   "sorry, I could not analyze that",
			want: "",
		},
		{
			name: "brace order wrong",
			in:   "} nothing {",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractJSON(tt.in); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	t.Parallel()
	in := "```json\n[{\"title\":\"Bowl\"}]\n```"
	if got := extractJSONArray(in); got != `[{"title":"Bowl"}]` {
		t.Errorf("extractJSONArray = %q", got)
	}
	if got := extractJSONArray("no array here"); got != "" {
		t.Errorf("extractJSONArray on prose = %q, want empty", got)
	}
}

func TestParseFoodRecognitionDefaults(t *testing.T) {
	t.Parallel()
	food, err := parseFoodRecognition(`{"calories": 205, "carbs": 45, "protein": 4, "category": "Brunch"}`)
	if err != nil {
		t.Fatalf("parseFoodRecognition: %v", err)
	}
	if food.Name != "Analyzed Food" {
		t.Errorf("name default = %q", food.Name)
	}
	if food.Amount != "1 serving" {
		t.Errorf("amount default = %q", food.Amount)
	}
	if food.Category != "Lunch" {
		t.Errorf("unknown category should fall back to Lunch, got %q", food.Category)
	}
	if food.Fiber != 0 {
		t.Errorf("missing fiber should default to 0, got %v", food.Fiber)
	}
}

func TestParseFoodRecognitionRejectsProse(t *testing.T) {
	t.Parallel()
	if _, err := parseFoodRecognition("I could not identify this meal."); err == nil {
		t.Error("expected an error for a response without JSON")
	}
}

func TestParseLoggedPayloadNormalizesFood(t *testing.T) {
	t.Parallel()
	parsed, err := parseLoggedPayload(`{"type": "food", "name": "Avocado toast", "calories": 290, "carbs": 25, "category": "Brunch"}`)
	if err != nil {
		t.Fatalf("parseLoggedPayload: %v", err)
	}
	if parsed.Category != "Lunch" {
		t.Errorf("off-enum category should fall back to Lunch, got %q", parsed.Category)
	}
	if parsed.Amount != "1 serving" {
		t.Errorf("amount default = %q", parsed.Amount)
	}
}

func TestParseLoggedPayloadExercise(t *testing.T) {
	t.Parallel()
	parsed, err := parseLoggedPayload(`{"type": "exercise", "name": "Evening run", "duration": 30, "caloriesBurned": 320}`)
	if err != nil {
		t.Fatalf("parseLoggedPayload: %v", err)
	}
	if parsed.Duration != 30 || parsed.CaloriesBurned != 320 {
		t.Errorf("unexpected exercise payload: %+v", parsed)
	}
	if parsed.Category != "" {
		t.Errorf("exercise payload must not get a meal category, got %q", parsed.Category)
	}
}

func TestParseLoggedPayloadRejectsUnknownType(t *testing.T) {
	t.Parallel()
	if _, err := parseLoggedPayload(`{"type": "sleep", "name": "nap"}`); err == nil {
		t.Error("expected an error for an unknown log type")
	}
}
