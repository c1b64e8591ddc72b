package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/steelo13/WellnessWingman/internal/database"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍽️ Log food", "log_food"),
			tgbotapi.NewInlineKeyboardButtonData("🏃 Log exercise", "log_exercise"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📷 Photo meal", "photo_meal"),
			tgbotapi.NewInlineKeyboardButtonData("🔍 Barcode", "barcode"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💧 Water", "water"),
			tgbotapi.NewInlineKeyboardButtonData("📒 Diary", "diary"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍳 Recipes", "recipes"),
			tgbotapi.NewInlineKeyboardButtonData("⭐ Favorites", "favorites"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗓️ Meal plan", "planner"),
			tgbotapi.NewInlineKeyboardButtonData("💬 Coach", "coach"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", "settings"),
		),
	)
}

// BackToMainMenu is the single-button escape hatch shown while the bot
// waits for user input.
func BackToMainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// WaterMenu creates the hydration view keyboard
func WaterMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ 250 ml", "water_add"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Custom", "water_custom"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Reset today", "water_reset"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// DiaryMenu creates the diary navigation keyboard with one delete button
// per logged food entry. The forward button is omitted on the current
// day, there is nothing to browse in the future.
func DiaryMenu(isToday bool, entries []database.FoodEntry) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, e := range entries {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑️ %s", e.Name), fmt.Sprintf("delete_entry_%d", e.ID),
			),
		))
	}

	nav := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Previous day", "diary_prev"),
	}
	if !isToday {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next day ➡️", "diary_next"))
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(nav...),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// SettingsMenu creates the settings menu keyboard
func SettingsMenu(netCarbsMode bool) tgbotapi.InlineKeyboardMarkup {
	netCarbsLabel := "🌾 Net carbs: off"
	if netCarbsMode {
		netCarbsLabel = "🌾 Net carbs: on"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Macro goals", "edit_goal"),
			tgbotapi.NewInlineKeyboardButtonData(netCarbsLabel, "toggle_net_carbs"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💧 Water goal", "edit_water_goal"),
			tgbotapi.NewInlineKeyboardButtonData("📝 Coach notes", "edit_instructions"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// RecipesMenu creates the recipe explorer keyboard. One save button is
// rendered per suggestion, indexed into the cached suggestion list.
func RecipesMenu(count int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < count; i++ {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("⭐ Save recipe %d", i+1), fmt.Sprintf("save_recipe_%d", i),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔎 Search recipes", "recipe_search"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// FavoritesMenu creates the saved-recipes keyboard. Each recipe gets a
// button that starts the plan-into-slot flow.
func FavoritesMenu(recipes []database.SavedRecipe) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, r := range recipes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗓️ Plan: %s", r.Title), fmt.Sprintf("plan_recipe_%d", r.ID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗓️ Meal plan", "planner"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// PlannerMenu creates the weekly plan keyboard.
func PlannerMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Clear a slot", "plan_clear"),
			tgbotapi.NewInlineKeyboardButtonData("⭐ Favorites", "favorites"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// CoachMenu is shown while a coaching conversation is active.
func CoachMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New conversation", "coach_reset"),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}
