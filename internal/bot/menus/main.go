package menus

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/steelo13/WellnessWingman/internal/bot/keyboards"
	"github.com/steelo13/WellnessWingman/internal/database"
	"github.com/steelo13/WellnessWingman/internal/services"
)

// SendMainMenu sends the dashboard with today's numbers and the main menu
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64, user *database.User, summary *services.DaySummary, waterIntake, streak int) error {
	carbsLabel := "Carbs"
	if user.NetCarbsMode {
		carbsLabel = "Net carbs"
	}

	text := fmt.Sprintf(`🪽 *Wellness Wingman* — your nutrition and fitness copilot

📊 *Today*
• Calories: %.0f / %.0f kcal (%.0f left)
• Protein: %.0f / %.0f g
• %s: %.0f / %.0f g
• Fat: %.0f / %.0f g
• Burned: %.0f kcal

💧 *Water*: %d / %d ml`,
		summary.Totals.Calories, user.GoalCalories, summary.Remaining.Calories,
		summary.Totals.Protein, user.GoalProtein,
		carbsLabel, summary.Totals.Carbs, user.GoalCarbs,
		summary.Totals.Fat, user.GoalFat,
		summary.Burned,
		waterIntake, user.WaterGoalML)

	if streak > 0 {
		text += fmt.Sprintf("\n🔥 *Hydration streak*: %d day(s)", streak)
	}
	text += "\n\nChoose an action:"

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendWaterMenu sends the hydration view
func SendWaterMenu(api *tgbotapi.BotAPI, chatID int64, intake, goalML, streak int) error {
	text := fmt.Sprintf("💧 *Hydration*\n\nToday: %d / %d ml", intake, goalML)
	if intake >= goalML {
		text += "\n✅ Daily goal reached!"
	} else {
		text += fmt.Sprintf("\n%d ml to go", goalML-intake)
	}
	if streak > 0 {
		text += fmt.Sprintf("\n🔥 Streak: %d day(s)", streak)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.WaterMenu()
	_, err := api.Send(msg)
	return err
}

// SendDiaryDay sends one day of the food/exercise diary
func SendDiaryDay(api *tgbotapi.BotAPI, chatID int64, user *database.User, summary *services.DaySummary, isToday bool) error {
	var b strings.Builder
	if isToday {
		b.WriteString("📒 *Diary — Today*\n\n")
	} else {
		fmt.Fprintf(&b, "📒 *Diary — %s*\n\n", summary.Day)
	}

	if len(summary.Entries) == 0 && len(summary.Exercises) == 0 {
		b.WriteString("Nothing logged on this day.\n")
	}

	for _, category := range []string{
		database.CategoryBreakfast, database.CategoryLunch,
		database.CategoryDinner, database.CategorySnacks,
	} {
		var lines []string
		for _, e := range summary.Entries {
			if e.Category != category {
				continue
			}
			line := fmt.Sprintf("• %s (%s) — %.0f kcal", e.Name, e.Amount, e.Calories)
			if user.NetCarbsMode && e.Fiber > 0 {
				line += fmt.Sprintf(" — %.1fg net carbs", e.Carbs-e.Fiber)
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			fmt.Fprintf(&b, "*%s*\n%s\n", category, strings.Join(lines, "\n"))
		}
	}

	if len(summary.Exercises) > 0 {
		b.WriteString("*Exercise*\n")
		for _, e := range summary.Exercises {
			fmt.Fprintf(&b, "• %s — %d min, %.0f kcal burned\n", e.Name, e.DurationMin, e.CaloriesBurned)
		}
	}

	fmt.Fprintf(&b, "\n*Daily summary*: %.0f / %.0f kcal\nP %.0fg · C %.0fg · F %.0fg",
		summary.Totals.Calories, user.GoalCalories,
		summary.Totals.Protein, summary.Totals.Carbs, summary.Totals.Fat)

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.DiaryMenu(isToday, summary.Entries)
	_, err := api.Send(msg)
	return err
}

// SendSettingsMenu sends the settings menu
func SendSettingsMenu(api *tgbotapi.BotAPI, chatID int64, user *database.User) error {
	text := fmt.Sprintf(`⚙️ *Settings*

🎯 Goal: %.0f kcal · P %.0fg · C %.0fg · F %.0fg · fiber %.0fg
💧 Water goal: %d ml
🌾 Net carbs mode: %v`,
		user.GoalCalories, user.GoalProtein, user.GoalCarbs, user.GoalFat, user.GoalFiber,
		user.WaterGoalML, user.NetCarbsMode)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.SettingsMenu(user.NetCarbsMode)
	_, err := api.Send(msg)
	return err
}

// SendRecipeSuggestions renders AI recipe ideas with save buttons
func SendRecipeSuggestions(api *tgbotapi.BotAPI, chatID int64, recipes []services.RecipeSuggestion) error {
	if len(recipes) == 0 {
		msg := tgbotapi.NewMessage(chatID, "No recipes found for your remaining macros. Try a different search.")
		msg.ReplyMarkup = keyboards.BackToMainMenu()
		_, err := api.Send(msg)
		return err
	}

	var b strings.Builder
	b.WriteString("🍳 *Recipe ideas for your remaining macros*\n")
	for i, r := range recipes {
		fmt.Fprintf(&b, "\n*%d. %s* (%s)\n%s\n%.0f kcal · P %.0fg · C %.0fg · F %.0fg\n",
			i+1, r.Title, r.PrepTime, r.Description,
			r.Calories, r.Protein, r.Carbs, r.Fat)
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.RecipesMenu(len(recipes))
	_, err := api.Send(msg)
	return err
}

// SendFavorites renders the saved recipe list
func SendFavorites(api *tgbotapi.BotAPI, chatID int64, recipes []database.SavedRecipe) error {
	if len(recipes) == 0 {
		msg := tgbotapi.NewMessage(chatID, "You have no saved recipes yet. Save some from the recipe explorer!")
		msg.ReplyMarkup = keyboards.BackToMainMenu()
		_, err := api.Send(msg)
		return err
	}

	var b strings.Builder
	b.WriteString("⭐ *Saved recipes*\n")
	for _, r := range recipes {
		suggestion := services.DecodeSavedRecipe(r)
		fmt.Fprintf(&b, "\n*%s* (%s)\n%s\n%.0f kcal · P %.0fg · C %.0fg · F %.0fg\n",
			suggestion.Title, suggestion.PrepTime, suggestion.Description,
			suggestion.Calories, suggestion.Protein, suggestion.Carbs, suggestion.Fat)
		if len(suggestion.Ingredients) > 0 {
			fmt.Fprintf(&b, "_Ingredients:_ %s\n", strings.Join(suggestion.Ingredients, ", "))
		}
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.FavoritesMenu(recipes)
	_, err := api.Send(msg)
	return err
}

// SendWeekPlan renders the weekly meal plan, Monday first, meals in
// their daily order.
func SendWeekPlan(api *tgbotapi.BotAPI, chatID int64, slots []database.MealPlanSlot) error {
	if len(slots) == 0 {
		msg := tgbotapi.NewMessage(chatID, "Your meal plan is empty. Open your favorites and plan a recipe into a slot.")
		msg.ReplyMarkup = keyboards.PlannerMenu()
		_, err := api.Send(msg)
		return err
	}

	byDay := make(map[int][]database.MealPlanSlot)
	for _, s := range slots {
		byDay[s.Weekday] = append(byDay[s.Weekday], s)
	}

	mealOrder := []string{
		database.CategoryBreakfast, database.CategoryLunch,
		database.CategoryDinner, database.CategorySnacks,
	}

	var b strings.Builder
	b.WriteString("🗓️ *Weekly meal plan*\n")
	for i := 0; i < 7; i++ {
		day := (int(time.Monday) + i) % 7
		daySlots := byDay[day]
		if len(daySlots) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n*%s*\n", time.Weekday(day))
		for _, meal := range mealOrder {
			for _, s := range daySlots {
				if s.Meal != meal {
					continue
				}
				fmt.Fprintf(&b, "• %s: %s (%.0f kcal)\n", meal, s.SavedRecipe.Title, s.SavedRecipe.Calories)
			}
		}
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.PlannerMenu()
	_, err := api.Send(msg)
	return err
}
