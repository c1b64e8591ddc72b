package database

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"time"

	"github.com/steelo13/WellnessWingman/internal/config"
	"github.com/steelo13/WellnessWingman/internal/database/migrations"
	"github.com/steelo13/WellnessWingman/internal/tracking"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Meal categories for food entries.
const (
	CategoryBreakfast = "Breakfast"
	CategoryLunch     = "Lunch"
	CategoryDinner    = "Dinner"
	CategorySnacks    = "Snacks"
)

// Entry sources.
const (
	SourceManual  = "manual"
	SourcePhoto   = "photo"
	SourceBarcode = "barcode"
	SourceVoice   = "voice"
)

type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string

	// Daily macro goal. Defaults are the onboarding goal every user starts with.
	GoalCalories float64 `gorm:"default:2200"`
	GoalCarbs    float64 `gorm:"default:250"`
	GoalFat      float64 `gorm:"default:70"`
	GoalProtein  float64 `gorm:"default:150"`
	GoalFiber    float64 `gorm:"default:30"`

	NetCarbsMode       bool   `gorm:"default:false"`
	CustomInstructions string // appended to the coach system prompt
	WaterGoalML        int    `gorm:"default:2500"`
}

// Goal returns the user's macro goal as a tracking profile.
func (u *User) Goal() tracking.Macros {
	return tracking.Macros{
		Calories: u.GoalCalories,
		Carbs:    u.GoalCarbs,
		Fat:      u.GoalFat,
		Protein:  u.GoalProtein,
		Fiber:    u.GoalFiber,
	}
}

type FoodEntry struct {
	gorm.Model
	UserID   uint `gorm:"index"`
	User     User
	Name     string
	Amount   string // free-text serving description, e.g. "1 cup"
	Calories float64
	Carbs    float64
	Fat      float64
	Protein  float64
	Fiber    float64
	Category string    // Breakfast, Lunch, Dinner or Snacks
	Source   string    // manual, photo, barcode or voice
	LoggedAt time.Time `gorm:"index"`
}

// Nutrition implements tracking.Nutrient.
func (e FoodEntry) Nutrition() tracking.Macros {
	return tracking.Macros{
		Calories: e.Calories,
		Carbs:    e.Carbs,
		Fat:      e.Fat,
		Protein:  e.Protein,
		Fiber:    e.Fiber,
	}
}

// OccurredAt implements tracking.Timestamped.
func (e FoodEntry) OccurredAt() time.Time { return e.LoggedAt }

type ExerciseEntry struct {
	gorm.Model
	UserID         uint `gorm:"index"`
	User           User
	Name           string
	DurationMin    int
	CaloriesBurned float64
	LoggedAt       time.Time `gorm:"index"`
}

// Burned implements tracking.Burner.
func (e ExerciseEntry) Burned() float64 { return e.CaloriesBurned }

// OccurredAt implements tracking.Timestamped.
func (e ExerciseEntry) OccurredAt() time.Time { return e.LoggedAt }

// WaterIntake holds one row per user per calendar day. Intake is additive
// within a day and may be reset to zero explicitly.
type WaterIntake struct {
	gorm.Model
	UserID      uint   `gorm:"uniqueIndex:idx_water_user_day"`
	Day         string `gorm:"uniqueIndex:idx_water_user_day"` // tracking.DayKey
	Milliliters int
}

type SavedRecipe struct {
	gorm.Model
	UserID       uint `gorm:"index"`
	User         User
	Title        string
	Description  string
	Calories     float64
	Carbs        float64
	Fat          float64
	Protein      float64
	Fiber        float64
	PrepTime     string
	Ingredients  string // JSON-encoded []string
	Instructions string // JSON-encoded []string
}

// MealPlanSlot assigns one saved recipe to a weekday/meal slot of the
// user's weekly plan. At most one recipe per slot.
type MealPlanSlot struct {
	gorm.Model
	UserID        uint   `gorm:"uniqueIndex:idx_plan_user_slot"`
	Weekday       int    `gorm:"uniqueIndex:idx_plan_user_slot"` // time.Weekday, Sunday = 0
	Meal          string `gorm:"uniqueIndex:idx_plan_user_slot"` // Breakfast, Lunch, Dinner or Snacks
	SavedRecipeID uint
	SavedRecipe   SavedRecipe
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQL migrations live next to this file.
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("failed to get current file path")
	}
	migrationsDir := filepath.Join(filepath.Dir(filename), "migrations")

	if err := migrations.LoadSQLMigrations(db, migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Auto-migrate the schema for models that don't have explicit migrations
	if err := db.AutoMigrate(&User{}, &FoodEntry{}, &ExerciseEntry{}, &WaterIntake{}, &SavedRecipe{}, &MealPlanSlot{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	log.Println("Database connection established and migrations completed")
	return db, nil
}
