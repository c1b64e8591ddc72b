package keyboards

import (
	"testing"

	"github.com/steelo13/WellnessWingman/internal/database"
	"gorm.io/gorm"
)

func TestDiaryMenuDeleteButtons(t *testing.T) {
	t.Parallel()
	entries := []database.FoodEntry{
		{Model: gorm.Model{ID: 7}, Name: "Oatmeal"},
		{Model: gorm.Model{ID: 12}, Name: "Greek yogurt"},
	}

	kb := DiaryMenu(true, entries)
	if len(kb.InlineKeyboard) != 4 {
		t.Fatalf("rows = %d, want 4 (2 delete + nav + main menu)", len(kb.InlineKeyboard))
	}

	for i, want := range []string{"delete_entry_7", "delete_entry_12"} {
		got := kb.InlineKeyboard[i][0].CallbackData
		if got == nil || *got != want {
			t.Errorf("row %d callback = %v, want %q", i, got, want)
		}
	}
}

func TestDiaryMenuOmitsForwardNavigationOnToday(t *testing.T) {
	t.Parallel()

	today := DiaryMenu(true, nil)
	if len(today.InlineKeyboard[0]) != 1 {
		t.Errorf("today's nav row has %d buttons, want 1", len(today.InlineKeyboard[0]))
	}

	past := DiaryMenu(false, nil)
	if len(past.InlineKeyboard[0]) != 2 {
		t.Fatalf("past day's nav row has %d buttons, want 2", len(past.InlineKeyboard[0]))
	}
	if got := past.InlineKeyboard[0][1].CallbackData; got == nil || *got != "diary_next" {
		t.Errorf("forward button callback = %v, want diary_next", got)
	}
}

func TestFavoritesMenuPlanButtons(t *testing.T) {
	t.Parallel()
	recipes := []database.SavedRecipe{
		{Model: gorm.Model{ID: 3}, Title: "Protein bowl"},
	}

	kb := FavoritesMenu(recipes)
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2 (1 plan + footer)", len(kb.InlineKeyboard))
	}
	if got := kb.InlineKeyboard[0][0].CallbackData; got == nil || *got != "plan_recipe_3" {
		t.Errorf("plan button callback = %v, want plan_recipe_3", got)
	}
}
