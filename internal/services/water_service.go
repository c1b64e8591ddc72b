package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/steelo13/WellnessWingman/internal/database"
	"github.com/steelo13/WellnessWingman/internal/tracking"
	"gorm.io/gorm"
)

// DefaultWaterIncrementML is one glass, the amount a single tap logs.
const DefaultWaterIncrementML = 250

// WaterService owns hydration history. Rows are keyed (user, day) and
// only ever increased or reset; the streak is recomputed from the full
// history on every change rather than patched, so retroactive edits
// behave correctly.
type WaterService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewWaterService(db *gorm.DB, loc *time.Location) *WaterService {
	return &WaterService{db: db, loc: loc}
}

// AddWater adds ml to today's intake and returns the new total and the
// recomputed streak.
func (s *WaterService) AddWater(ctx context.Context, user *database.User, ml int) (int, int, error) {
	today := tracking.Day(time.Now(), s.loc)

	var row database.WaterIntake
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", user.ID, string(today)).
		First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = database.WaterIntake{UserID: user.ID, Day: string(today), Milliliters: ml}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return 0, 0, fmt.Errorf("failed to create water intake: %w", err)
		}
	case err != nil:
		return 0, 0, fmt.Errorf("failed to get water intake: %w", err)
	default:
		row.Milliliters += ml
		if err := s.db.WithContext(ctx).Model(&row).Update("milliliters", row.Milliliters).Error; err != nil {
			return 0, 0, fmt.Errorf("failed to update water intake: %w", err)
		}
	}

	streak, err := s.Streak(ctx, user)
	if err != nil {
		return 0, 0, err
	}
	return row.Milliliters, streak, nil
}

// ResetToday zeroes today's intake on explicit user request.
func (s *WaterService) ResetToday(ctx context.Context, user *database.User) error {
	today := tracking.Day(time.Now(), s.loc)
	err := s.db.WithContext(ctx).
		Model(&database.WaterIntake{}).
		Where("user_id = ? AND day = ?", user.ID, string(today)).
		Update("milliliters", 0).Error
	if err != nil {
		return fmt.Errorf("failed to reset water intake: %w", err)
	}
	return nil
}

// TodayIntake returns today's total in milliliters; a missing row is zero.
func (s *WaterService) TodayIntake(ctx context.Context, userID uint) (int, error) {
	today := tracking.Day(time.Now(), s.loc)

	var row database.WaterIntake
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, string(today)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get water intake: %w", err)
	}
	return row.Milliliters, nil
}

// Streak loads the user's hydration history and recomputes the streak
// against their daily goal.
func (s *WaterService) Streak(ctx context.Context, user *database.User) (int, error) {
	history, err := s.History(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	return tracking.WaterStreak(history, user.WaterGoalML, time.Now(), s.loc), nil
}

// History returns the full day-keyed intake map for a user.
func (s *WaterService) History(ctx context.Context, userID uint) (map[tracking.DayKey]int, error) {
	var rows []database.WaterIntake
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get water history: %w", err)
	}

	history := make(map[tracking.DayKey]int, len(rows))
	for _, r := range rows {
		history[tracking.DayKey(r.Day)] = r.Milliliters
	}
	return history, nil
}
