package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/steelo13/WellnessWingman/internal/database"
	"gorm.io/gorm"
)

// RecipeService backs the recipe explorer: AI suggestions fitted to the
// remaining daily budget, plus the user's saved favorites.
type RecipeService struct {
	db    *gorm.DB
	ai    *AIService
	diary *DiaryService
}

func NewRecipeService(db *gorm.DB, ai *AIService, diary *DiaryService) *RecipeService {
	return &RecipeService{db: db, ai: ai, diary: diary}
}

// Suggest fetches recipe ideas for what is left of today's macro budget.
func (s *RecipeService) Suggest(ctx context.Context, user *database.User, query string, useOpenAI bool) ([]RecipeSuggestion, error) {
	remaining, err := s.diary.RemainingToday(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.ai.SuggestRecipes(ctx, remaining, query, useOpenAI)
}

// ToggleSaved saves the recipe if the user does not have it yet, or
// removes it if they do. Returns true when the recipe ended up saved.
func (s *RecipeService) ToggleSaved(ctx context.Context, userID uint, recipe RecipeSuggestion) (bool, error) {
	var existing database.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND title = ?", userID, recipe.Title).
		First(&existing).Error

	if err == nil {
		if err := s.db.WithContext(ctx).Delete(&existing).Error; err != nil {
			return false, fmt.Errorf("failed to remove saved recipe: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check saved recipe: %w", err)
	}

	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return false, fmt.Errorf("failed to encode ingredients: %w", err)
	}
	instructions, err := json.Marshal(recipe.Instructions)
	if err != nil {
		return false, fmt.Errorf("failed to encode instructions: %w", err)
	}

	saved := &database.SavedRecipe{
		UserID:       userID,
		Title:        recipe.Title,
		Description:  recipe.Description,
		Calories:     recipe.Calories,
		Carbs:        recipe.Carbs,
		Fat:          recipe.Fat,
		Protein:      recipe.Protein,
		Fiber:        recipe.Fiber,
		PrepTime:     recipe.PrepTime,
		Ingredients:  string(ingredients),
		Instructions: string(instructions),
	}
	if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
		return false, fmt.Errorf("failed to save recipe: %w", err)
	}
	return true, nil
}

// ListSaved returns the user's favorites, newest first.
func (s *RecipeService) ListSaved(ctx context.Context, userID uint) ([]database.SavedRecipe, error) {
	var recipes []database.SavedRecipe
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return recipes, nil
}

// Decode turns a stored recipe row back into its suggestion shape.
func DecodeSavedRecipe(r database.SavedRecipe) RecipeSuggestion {
	var ingredients, instructions []string
	// Rows are written by ToggleSaved, so decoding failures mean manual
	// tampering; an empty list is an acceptable fallback.
	_ = json.Unmarshal([]byte(r.Ingredients), &ingredients)
	_ = json.Unmarshal([]byte(r.Instructions), &instructions)

	return RecipeSuggestion{
		Title:        r.Title,
		Description:  r.Description,
		Calories:     r.Calories,
		Carbs:        r.Carbs,
		Fat:          r.Fat,
		Protein:      r.Protein,
		Fiber:        r.Fiber,
		PrepTime:     r.PrepTime,
		Ingredients:  ingredients,
		Instructions: instructions,
	}
}
