package interfaces

import (
	"context"
	"time"

	"github.com/steelo13/WellnessWingman/internal/database"
	"github.com/steelo13/WellnessWingman/internal/services"
	"github.com/steelo13/WellnessWingman/internal/tracking"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*database.User, error)
}

// DiaryServiceInterface defines the contract for the food/exercise log
type DiaryServiceInterface interface {
	AddFood(ctx context.Context, userID uint, input services.FoodInput) (*database.FoodEntry, error)
	AddExercise(ctx context.Context, userID uint, input services.ExerciseInput) (*database.ExerciseEntry, error)
	DeleteFood(ctx context.Context, userID, entryID uint) error
	DayEntries(ctx context.Context, userID uint, day tracking.DayKey) ([]database.FoodEntry, []database.ExerciseEntry, error)
	Summarize(ctx context.Context, user *database.User, day tracking.DayKey) (*services.DaySummary, error)
	RemainingToday(ctx context.Context, user *database.User) (tracking.Remaining, error)
}

// WaterServiceInterface defines the contract for hydration tracking
type WaterServiceInterface interface {
	AddWater(ctx context.Context, user *database.User, ml int) (int, int, error)
	ResetToday(ctx context.Context, user *database.User) error
	TodayIntake(ctx context.Context, userID uint) (int, error)
	Streak(ctx context.Context, user *database.User) (int, error)
}

// GoalServiceInterface defines the contract for user settings
type GoalServiceInterface interface {
	SetGoal(ctx context.Context, userID uint, goal tracking.Macros) error
	SetNetCarbsMode(ctx context.Context, userID uint, enabled bool) error
	SetCustomInstructions(ctx context.Context, userID uint, instructions string) error
	SetWaterGoal(ctx context.Context, userID uint, ml int) error
}

// RecipeServiceInterface defines the contract for recipe operations
type RecipeServiceInterface interface {
	Suggest(ctx context.Context, user *database.User, query string, useOpenAI bool) ([]services.RecipeSuggestion, error)
	ToggleSaved(ctx context.Context, userID uint, recipe services.RecipeSuggestion) (bool, error)
	ListSaved(ctx context.Context, userID uint) ([]database.SavedRecipe, error)
}

// PlannerServiceInterface defines the contract for the weekly meal plan
type PlannerServiceInterface interface {
	Assign(ctx context.Context, userID uint, weekday time.Weekday, meal string, savedRecipeID uint) error
	Remove(ctx context.Context, userID uint, weekday time.Weekday, meal string) error
	WeekPlan(ctx context.Context, userID uint) ([]database.MealPlanSlot, error)
}

// AIServiceInterface defines the contract for AI operations
type AIServiceInterface interface {
	AnalyzeFoodImage(ctx context.Context, imageURL string, useOpenAI bool) (*services.FoodRecognition, error)
	LookupBarcode(ctx context.Context, barcode string, useOpenAI bool) (*services.FoodRecognition, error)
	ParseLoggedItem(ctx context.Context, utterance string, useOpenAI bool) (*services.ParsedLog, error)
	CoachReply(ctx context.Context, history []services.CoachMessage, customInstructions string, useOpenAI bool) (string, error)
}
