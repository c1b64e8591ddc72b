package services

import (
	"context"
	"fmt"
	"time"

	"github.com/steelo13/WellnessWingman/internal/database"
	apperrors "github.com/steelo13/WellnessWingman/internal/errors"
	"github.com/steelo13/WellnessWingman/internal/tracking"
	"gorm.io/gorm"
)

// DiaryService owns the food/exercise log. All mutations go through it;
// the day math itself lives in the tracking package.
type DiaryService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewDiaryService(db *gorm.DB, loc *time.Location) *DiaryService {
	return &DiaryService{db: db, loc: loc}
}

// FoodInput is a sanitized food log request. Callers must default missing
// numeric fields to zero before constructing one.
type FoodInput struct {
	Name     string
	Amount   string
	Calories float64
	Carbs    float64
	Fat      float64
	Protein  float64
	Fiber    float64
	Category string
	Source   string
	LoggedAt time.Time
}

type ExerciseInput struct {
	Name           string
	DurationMin    int
	CaloriesBurned float64
	LoggedAt       time.Time
}

// DaySummary bundles everything the dashboard and diary views need for
// one calendar day.
type DaySummary struct {
	Day       tracking.DayKey
	Totals    tracking.DailyTotals
	Burned    float64
	Remaining tracking.Remaining
	Entries   []database.FoodEntry
	Exercises []database.ExerciseEntry
}

func (s *DiaryService) AddFood(ctx context.Context, userID uint, input FoodInput) (*database.FoodEntry, error) {
	if input.LoggedAt.IsZero() {
		input.LoggedAt = time.Now()
	}
	entry := &database.FoodEntry{
		UserID:   userID,
		Name:     input.Name,
		Amount:   input.Amount,
		Calories: input.Calories,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Protein:  input.Protein,
		Fiber:    input.Fiber,
		Category: input.Category,
		Source:   input.Source,
		LoggedAt: input.LoggedAt,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create food entry: %w", err)
	}
	return entry, nil
}

func (s *DiaryService) AddExercise(ctx context.Context, userID uint, input ExerciseInput) (*database.ExerciseEntry, error) {
	if input.LoggedAt.IsZero() {
		input.LoggedAt = time.Now()
	}
	entry := &database.ExerciseEntry{
		UserID:         userID,
		Name:           input.Name,
		DurationMin:    input.DurationMin,
		CaloriesBurned: input.CaloriesBurned,
		LoggedAt:       input.LoggedAt,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create exercise entry: %w", err)
	}
	return entry, nil
}

func (s *DiaryService) DeleteFood(ctx context.Context, userID, entryID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, entryID).
		Delete(&database.FoodEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete food entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrEntryNotFound
	}
	return nil
}

// DayEntries returns the food and exercise entries logged on the given
// calendar day, oldest first.
func (s *DiaryService) DayEntries(ctx context.Context, userID uint, day tracking.DayKey) ([]database.FoodEntry, []database.ExerciseEntry, error) {
	start, err := time.ParseInLocation("2006-01-02", string(day), s.loc)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid day key %q: %w", day, err)
	}
	end := tracking.ShiftDay(start, 1)

	var entries []database.FoodEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end).
		Order("logged_at ASC").
		Find(&entries).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to get food entries: %w", err)
	}

	var exercises []database.ExerciseEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end).
		Order("logged_at ASC").
		Find(&exercises).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to get exercise entries: %w", err)
	}

	// The range query and the day key agree as long as loc is consistent,
	// but the key comparison is the source of truth.
	entries = tracking.FilterByDay(entries, day, s.loc)
	exercises = tracking.FilterByDay(exercises, day, s.loc)
	return entries, exercises, nil
}

// Summarize aggregates one day of the user's diary: totals, calories
// burned, and the remaining macro budget with exercise credit.
func (s *DiaryService) Summarize(ctx context.Context, user *database.User, day tracking.DayKey) (*DaySummary, error) {
	entries, exercises, err := s.DayEntries(ctx, user.ID, day)
	if err != nil {
		return nil, err
	}

	totals := tracking.SumFood(entries, user.NetCarbsMode)
	burned := tracking.SumBurned(exercises)

	return &DaySummary{
		Day:       day,
		Totals:    totals,
		Burned:    burned,
		Remaining: tracking.ComputeRemaining(user.Goal(), totals, burned),
		Entries:   entries,
		Exercises: exercises,
	}, nil
}

// RemainingToday is a convenience wrapper for the recipe explorer, which
// always works against the current day's budget.
func (s *DiaryService) RemainingToday(ctx context.Context, user *database.User) (tracking.Remaining, error) {
	summary, err := s.Summarize(ctx, user, tracking.Day(time.Now(), s.loc))
	if err != nil {
		return tracking.Remaining{}, err
	}
	return summary.Remaining, nil
}

// Location exposes the calendar time zone the diary is bucketed in.
func (s *DiaryService) Location() *time.Location {
	return s.loc
}
