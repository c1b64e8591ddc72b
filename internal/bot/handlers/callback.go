package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/steelo13/WellnessWingman/internal/bot/keyboards"
	"github.com/steelo13/WellnessWingman/internal/bot/menus"
	"github.com/steelo13/WellnessWingman/internal/bot/state"
	"github.com/steelo13/WellnessWingman/internal/database"
	apperrors "github.com/steelo13/WellnessWingman/internal/errors"
	"github.com/steelo13/WellnessWingman/internal/logger"
	"github.com/steelo13/WellnessWingman/internal/services"
	"github.com/steelo13/WellnessWingman/internal/tracking"
)

const (
	tempKeyDiaryDay    = "diary_day"
	tempKeySuggestions = "recipe_suggestions"
	tempKeyChatHistory = "chat_history"
	tempKeyPlanRecipe  = "plan_recipe_id"
)

// CallbackHandler handles inline keyboard callbacks
type CallbackHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *database.User) error {
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warningf("Failed to answer callback query: %v", err)
	}

	chatID := query.Message.Chat.ID
	data := query.Data

	if strings.HasPrefix(data, "save_recipe_") {
		return h.handleSaveRecipe(ctx, chatID, user, strings.TrimPrefix(data, "save_recipe_"))
	}
	if strings.HasPrefix(data, "delete_entry_") {
		return h.handleDeleteEntry(ctx, chatID, user, strings.TrimPrefix(data, "delete_entry_"))
	}
	if strings.HasPrefix(data, "plan_recipe_") {
		h.stateManager.SetTempData(user.TelegramID, tempKeyPlanRecipe, strings.TrimPrefix(data, "plan_recipe_"))
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForPlanSlot)
		return h.prompt(chatID, "🗓️ Which slot? Send a day and meal, e.g. \"Monday Dinner\" or \"wed breakfast\".")
	}

	switch data {
	case "main_menu":
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return sendDashboard(ctx, h.api, h.deps, chatID, user)

	case "log_food":
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForFoodEntry)
		return h.prompt(chatID, `🍽️ What did you eat?

Either describe it in plain words ("two scrambled eggs and a slice of toast") or send the exact numbers:

`+"`Name, amount, kcal, carbs, fat, protein[, fiber]`")

	case "log_exercise":
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForExercise)
		return h.prompt(chatID, `🏃 What did you do?

Either describe it ("ran 5k in 30 minutes") or send the exact numbers:

`+"`Name, minutes, kcal burned`")

	case "photo_meal":
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForPhoto)
		return h.prompt(chatID, "📷 Send me a photo of your meal and I'll estimate the macros.")

	case "barcode":
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForBarcode)
		return h.prompt(chatID, "🔍 Type the barcode digits from the package (EAN/UPC).")

	case "water":
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return sendWaterView(ctx, h.api, h.deps, chatID, user)

	case "water_add":
		return h.handleAddWater(ctx, chatID, user, services.DefaultWaterIncrementML)

	case "water_custom":
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForWaterAmount)
		return h.prompt(chatID, "💧 How many milliliters? Send a number, e.g. 400.")

	case "water_reset":
		if err := h.deps.WaterSvc.ResetToday(ctx, user); err != nil {
			logger.Errorf("Failed to reset water for user %d: %v", user.ID, err)
			return sendPlain(h.api, chatID, "Could not reset today's water. Please try again.")
		}
		return sendWaterView(ctx, h.api, h.deps, chatID, user)

	case "diary":
		today := tracking.Day(time.Now(), h.deps.Location)
		h.stateManager.SetTempData(user.TelegramID, tempKeyDiaryDay, string(today))
		return h.renderDiary(ctx, chatID, user, today)

	case "diary_prev":
		return h.handleDiaryShift(ctx, chatID, user, -1)

	case "diary_next":
		return h.handleDiaryShift(ctx, chatID, user, 1)

	case "recipes":
		return suggestRecipes(ctx, h.api, h.deps, h.stateManager, chatID, user, "")

	case "recipe_search":
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForRecipeQuery)
		return h.prompt(chatID, "🔎 What kind of recipe are you after? E.g. \"quick high-protein dinner\".")

	case "planner":
		slots, err := h.deps.PlannerSvc.WeekPlan(ctx, user.ID)
		if err != nil {
			logger.Errorf("Failed to load week plan for user %d: %v", user.ID, err)
			return sendPlain(h.api, chatID, "Could not load your meal plan. Please try again.")
		}
		return menus.SendWeekPlan(h.api, chatID, slots)

	case "plan_clear":
		// An empty cached recipe id switches the slot flow to removal.
		h.stateManager.SetTempData(user.TelegramID, tempKeyPlanRecipe, "")
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForPlanSlot)
		return h.prompt(chatID, "🗑️ Which slot should I clear? Send a day and meal, e.g. \"Monday Dinner\".")

	case "favorites":
		saved, err := h.deps.RecipeSvc.ListSaved(ctx, user.ID)
		if err != nil {
			logger.Errorf("Failed to list saved recipes for user %d: %v", user.ID, err)
			return sendPlain(h.api, chatID, "Could not load your saved recipes. Please try again.")
		}
		return menus.SendFavorites(h.api, chatID, saved)

	case "coach", "coach_reset":
		h.stateManager.SetUserState(user.TelegramID, state.Chatting)
		h.stateManager.SetTempData(user.TelegramID, tempKeyChatHistory, "[]")
		msg := tgbotapi.NewMessage(chatID, "💬 I'm listening. Ask me anything about your nutrition, training or today's numbers.")
		msg.ReplyMarkup = keyboards.CoachMenu()
		_, err := h.api.Send(msg)
		return err

	case "settings":
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return menus.SendSettingsMenu(h.api, chatID, user)

	case "edit_goal":
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForGoal)
		return h.prompt(chatID, `🎯 Send your daily goal as five numbers:

`+"`kcal carbs fat protein fiber`"+`

e.g. 2200 250 70 150 30`)

	case "toggle_net_carbs":
		if err := h.deps.GoalSvc.SetNetCarbsMode(ctx, user.ID, !user.NetCarbsMode); err != nil {
			logger.Errorf("Failed to toggle net carbs for user %d: %v", user.ID, err)
			return sendPlain(h.api, chatID, "Could not update the setting. Please try again.")
		}
		user.NetCarbsMode = !user.NetCarbsMode
		return menus.SendSettingsMenu(h.api, chatID, user)

	case "edit_water_goal":
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForWaterGoal)
		return h.prompt(chatID, "💧 Send your daily water goal in milliliters, e.g. 2500.")

	case "edit_instructions":
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForInstructions)
		return h.prompt(chatID, "📝 Tell me anything the coach should always keep in mind (allergies, diet style, training schedule). Send \"clear\" to remove your notes.")

	default:
		logger.Warningf("Unknown callback data: %s", data)
		return sendDashboard(ctx, h.api, h.deps, chatID, user)
	}
}

func (h *CallbackHandler) prompt(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.BackToMainMenu()
	_, err := h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleAddWater(ctx context.Context, chatID int64, user *database.User, ml int) error {
	total, streak, err := h.deps.WaterSvc.AddWater(ctx, user, ml)
	if err != nil {
		logger.Errorf("Failed to add water for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Could not log your water. Please try again.")
	}
	if total >= user.WaterGoalML && total-ml < user.WaterGoalML {
		if err := sendPlain(h.api, chatID, fmt.Sprintf("🎉 Daily water goal reached! Streak: %d day(s).", streak)); err != nil {
			return err
		}
	}
	return menus.SendWaterMenu(h.api, chatID, total, user.WaterGoalML, streak)
}

// handleDeleteEntry removes one food entry and re-renders the diary day
// the user is looking at.
func (h *CallbackHandler) handleDeleteEntry(ctx context.Context, chatID int64, user *database.User, idStr string) error {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return sendPlain(h.api, chatID, "That entry is no longer available.")
	}

	if err := h.deps.DiarySvc.DeleteFood(ctx, user.ID, uint(id)); err != nil {
		if errors.Is(err, apperrors.ErrEntryNotFound) {
			return sendPlain(h.api, chatID, "That entry was already removed.")
		}
		logger.Errorf("Failed to delete entry %d for user %d: %v", id, user.ID, err)
		return sendPlain(h.api, chatID, "Could not delete that entry. Please try again.")
	}

	return h.renderDiary(ctx, chatID, user, h.browsedDay(user.TelegramID))
}

// browsedDay returns the diary day the user is currently paging, falling
// back to today.
func (h *CallbackHandler) browsedDay(telegramID int64) tracking.DayKey {
	day := tracking.Day(time.Now(), h.deps.Location)
	if raw, ok := h.stateManager.GetTempData(telegramID, tempKeyDiaryDay); ok {
		if s, ok := raw.(string); ok && s != "" {
			day = tracking.DayKey(s)
		}
	}
	return day
}

func (h *CallbackHandler) handleDiaryShift(ctx context.Context, chatID int64, user *database.User, delta int) error {
	today := tracking.Day(time.Now(), h.deps.Location)
	current := h.browsedDay(user.TelegramID)

	shifted, err := shiftKey(current, delta, h.deps.Location)
	if err != nil {
		shifted = today
	}
	// Browsing stops at today, the diary has no future.
	if shifted.After(today) {
		shifted = today
	}

	h.stateManager.SetTempData(user.TelegramID, tempKeyDiaryDay, string(shifted))
	return h.renderDiary(ctx, chatID, user, shifted)
}

func (h *CallbackHandler) renderDiary(ctx context.Context, chatID int64, user *database.User, day tracking.DayKey) error {
	summary, err := h.deps.DiarySvc.Summarize(ctx, user, day)
	if err != nil {
		logger.Errorf("Failed to summarize day %s for user %d: %v", day, user.ID, err)
		return sendPlain(h.api, chatID, "Could not load that diary day. Please try again.")
	}
	isToday := day == tracking.Day(time.Now(), h.deps.Location)
	return menus.SendDiaryDay(h.api, chatID, user, summary, isToday)
}

// suggestRecipes asks the AI for ideas matching the user's remaining
// budget and caches them so the save buttons can refer back by index.
func suggestRecipes(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager, chatID int64, user *database.User, query string) error {
	thinking := tgbotapi.NewMessage(chatID, "🍳 Cooking up ideas for your remaining macros...")
	if _, err := api.Send(thinking); err != nil {
		logger.Warningf("Failed to send progress message: %v", err)
	}

	suggestions, err := deps.RecipeSvc.Suggest(ctx, user, query, false)
	if err != nil {
		logger.Warningf("Gemini recipe suggestion failed for user %d, retrying with OpenAI: %v", user.ID, err)
		suggestions, err = deps.RecipeSvc.Suggest(ctx, user, query, true)
	}
	if err != nil {
		logger.Errorf("Failed to suggest recipes for user %d: %v", user.ID, err)
		return sendPlain(api, chatID, "Could not come up with recipes right now. Please try again later.")
	}

	if cached, err := json.Marshal(suggestions); err == nil {
		stateManager.SetTempData(user.TelegramID, tempKeySuggestions, string(cached))
	}
	return menus.SendRecipeSuggestions(api, chatID, suggestions)
}

func (h *CallbackHandler) handleSaveRecipe(ctx context.Context, chatID int64, user *database.User, indexStr string) error {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		return sendPlain(h.api, chatID, "That recipe is no longer available. Ask for fresh suggestions.")
	}

	raw, ok := h.stateManager.GetTempData(user.TelegramID, tempKeySuggestions)
	if !ok {
		return sendPlain(h.api, chatID, "Those suggestions expired. Ask for fresh ones from the recipes menu.")
	}
	cached, _ := raw.(string)

	var suggestions []services.RecipeSuggestion
	if err := json.Unmarshal([]byte(cached), &suggestions); err != nil || index < 0 || index >= len(suggestions) {
		return sendPlain(h.api, chatID, "Those suggestions expired. Ask for fresh ones from the recipes menu.")
	}

	saved, err := h.deps.RecipeSvc.ToggleSaved(ctx, user.ID, suggestions[index])
	if err != nil {
		logger.Errorf("Failed to toggle saved recipe for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Could not save that recipe. Please try again.")
	}
	if saved {
		return sendPlain(h.api, chatID, fmt.Sprintf("⭐ Saved \"%s\" to your favorites.", suggestions[index].Title))
	}
	return sendPlain(h.api, chatID, fmt.Sprintf("Removed \"%s\" from your favorites.", suggestions[index].Title))
}

// shiftKey moves a day key by delta whole days in the given zone.
func shiftKey(day tracking.DayKey, delta int, loc *time.Location) (tracking.DayKey, error) {
	t, err := time.ParseInLocation("2006-01-02", string(day), loc)
	if err != nil {
		return "", fmt.Errorf("invalid day key %q: %w", day, err)
	}
	return tracking.Day(tracking.ShiftDay(t, delta), loc), nil
}
