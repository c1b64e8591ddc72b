package services

import (
	"context"
	"fmt"

	"github.com/steelo13/WellnessWingman/internal/database"
	apperrors "github.com/steelo13/WellnessWingman/internal/errors"
	"github.com/steelo13/WellnessWingman/internal/tracking"
	"gorm.io/gorm"
)

// GoalService manages per-user settings: the daily macro goal, net-carbs
// mode, the hydration goal and the coach's custom instructions.
type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) SetGoal(ctx context.Context, userID uint, goal tracking.Macros) error {
	if goal.Calories < 0 || goal.Carbs < 0 || goal.Fat < 0 || goal.Protein < 0 || goal.Fiber < 0 {
		return apperrors.NewValidationError("goal values must be non-negative")
	}

	err := s.db.WithContext(ctx).
		Model(&database.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"goal_calories": goal.Calories,
			"goal_carbs":    goal.Carbs,
			"goal_fat":      goal.Fat,
			"goal_protein":  goal.Protein,
			"goal_fiber":    goal.Fiber,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

func (s *GoalService) SetNetCarbsMode(ctx context.Context, userID uint, enabled bool) error {
	if err := s.db.WithContext(ctx).
		Model(&database.User{}).
		Where("id = ?", userID).
		Update("net_carbs_mode", enabled).Error; err != nil {
		return fmt.Errorf("failed to update net carbs mode: %w", err)
	}
	return nil
}

func (s *GoalService) SetCustomInstructions(ctx context.Context, userID uint, instructions string) error {
	if err := s.db.WithContext(ctx).
		Model(&database.User{}).
		Where("id = ?", userID).
		Update("custom_instructions", instructions).Error; err != nil {
		return fmt.Errorf("failed to update custom instructions: %w", err)
	}
	return nil
}

func (s *GoalService) SetWaterGoal(ctx context.Context, userID uint, ml int) error {
	if ml <= 0 {
		return apperrors.NewValidationError("water goal must be positive")
	}
	if err := s.db.WithContext(ctx).
		Model(&database.User{}).
		Where("id = ?", userID).
		Update("water_goal_ml", ml).Error; err != nil {
		return fmt.Errorf("failed to update water goal: %w", err)
	}
	return nil
}
