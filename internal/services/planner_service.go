package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/steelo13/WellnessWingman/internal/database"
	apperrors "github.com/steelo13/WellnessWingman/internal/errors"
	"gorm.io/gorm"
)

// PlannerService owns the weekly meal plan: saved recipes assigned to
// weekday/meal slots.
type PlannerService struct {
	db *gorm.DB
}

func NewPlannerService(db *gorm.DB) *PlannerService {
	return &PlannerService{db: db}
}

func validateSlot(weekday time.Weekday, meal string) error {
	if weekday < time.Sunday || weekday > time.Saturday {
		return apperrors.NewValidationError("weekday out of range")
	}
	switch meal {
	case database.CategoryBreakfast, database.CategoryLunch,
		database.CategoryDinner, database.CategorySnacks:
		return nil
	default:
		return apperrors.NewValidationError("unknown meal slot")
	}
}

// Assign puts one of the user's saved recipes into the given slot,
// replacing whatever was planned there.
func (s *PlannerService) Assign(ctx context.Context, userID uint, weekday time.Weekday, meal string, savedRecipeID uint) error {
	if err := validateSlot(weekday, meal); err != nil {
		return err
	}

	var recipe database.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", savedRecipeID, userID).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewValidationError("recipe is not in your favorites")
	}
	if err != nil {
		return fmt.Errorf("failed to check saved recipe: %w", err)
	}

	var slot database.MealPlanSlot
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND weekday = ? AND meal = ?", userID, int(weekday), meal).
		First(&slot).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		slot = database.MealPlanSlot{
			UserID:        userID,
			Weekday:       int(weekday),
			Meal:          meal,
			SavedRecipeID: savedRecipeID,
		}
		if err := s.db.WithContext(ctx).Create(&slot).Error; err != nil {
			return fmt.Errorf("failed to create plan slot: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to get plan slot: %w", err)
	default:
		if err := s.db.WithContext(ctx).Model(&slot).Update("saved_recipe_id", savedRecipeID).Error; err != nil {
			return fmt.Errorf("failed to update plan slot: %w", err)
		}
	}
	return nil
}

// Remove clears the slot.
func (s *PlannerService) Remove(ctx context.Context, userID uint, weekday time.Weekday, meal string) error {
	if err := validateSlot(weekday, meal); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND weekday = ? AND meal = ?", userID, int(weekday), meal).
		Delete(&database.MealPlanSlot{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear plan slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewValidationError("nothing planned for that slot")
	}
	return nil
}

// WeekPlan returns the user's slots with their recipes preloaded.
func (s *PlannerService) WeekPlan(ctx context.Context, userID uint) ([]database.MealPlanSlot, error) {
	var slots []database.MealPlanSlot
	if err := s.db.WithContext(ctx).
		Preload("SavedRecipe").
		Where("user_id = ?", userID).
		Order("weekday ASC").
		Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("failed to get week plan: %w", err)
	}
	return slots, nil
}
