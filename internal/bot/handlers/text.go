package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/steelo13/WellnessWingman/internal/bot/keyboards"
	"github.com/steelo13/WellnessWingman/internal/bot/menus"
	"github.com/steelo13/WellnessWingman/internal/bot/state"
	"github.com/steelo13/WellnessWingman/internal/database"
	"github.com/steelo13/WellnessWingman/internal/logger"
	"github.com/steelo13/WellnessWingman/internal/services"
	"github.com/steelo13/WellnessWingman/internal/tracking"
)

// TextHandler handles text messages according to the user's current state
type TextHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingForFoodEntry:
		if input, ok := parseManualFood(text); ok {
			h.stateManager.SetUserState(user.TelegramID, state.None)
			return h.logFood(ctx, chatID, user, input)
		}
		// Not the strict format, let the model make sense of it.
		return h.quickLog(ctx, chatID, user, text)

	case state.WaitingForExercise:
		if input, ok := parseManualExercise(text); ok {
			h.stateManager.SetUserState(user.TelegramID, state.None)
			return h.logExercise(ctx, chatID, user, input)
		}
		return h.quickLog(ctx, chatID, user, text)

	case state.WaitingForBarcode:
		return h.handleBarcode(ctx, chatID, user, text)

	case state.WaitingForWaterAmount:
		return h.handleWaterAmount(ctx, chatID, user, text)

	case state.WaitingForGoal:
		return h.handleGoal(ctx, chatID, user, text)

	case state.WaitingForWaterGoal:
		return h.handleWaterGoal(ctx, chatID, user, text)

	case state.WaitingForInstructions:
		return h.handleInstructions(ctx, chatID, user, text)

	case state.WaitingForRecipeQuery:
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return suggestRecipes(ctx, h.api, h.deps, h.stateManager, chatID, user, text)

	case state.WaitingForPlanSlot:
		return h.handlePlanSlot(ctx, chatID, user, text)

	case state.Chatting:
		return h.handleChat(ctx, chatID, user, text)

	default:
		// Free text outside any flow is treated as a quick log attempt.
		return h.quickLog(ctx, chatID, user, text)
	}
}

// parseManualFood parses "Name, amount, kcal, carbs, fat, protein[, fiber]".
func parseManualFood(text string) (services.FoodInput, bool) {
	parts := strings.Split(text, ",")
	if len(parts) != 6 && len(parts) != 7 {
		return services.FoodInput{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	nums := make([]float64, 0, 5)
	for _, p := range parts[2:] {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return services.FoodInput{}, false
		}
		nums = append(nums, v)
	}

	input := services.FoodInput{
		Name:     parts[0],
		Amount:   parts[1],
		Calories: nums[0],
		Carbs:    nums[1],
		Fat:      nums[2],
		Protein:  nums[3],
		Category: database.CategoryLunch,
		Source:   database.SourceManual,
	}
	if len(nums) == 5 {
		input.Fiber = nums[4]
	}
	if input.Name == "" {
		return services.FoodInput{}, false
	}
	return input, true
}

// parseManualExercise parses "Name, minutes, kcal burned".
func parseManualExercise(text string) (services.ExerciseInput, bool) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return services.ExerciseInput{}, false
	}
	name := strings.TrimSpace(parts[0])
	minutes, err1 := strconv.Atoi(strings.TrimSpace(parts[1]))
	burned, err2 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if name == "" || err1 != nil || err2 != nil || minutes < 0 || burned < 0 {
		return services.ExerciseInput{}, false
	}
	return services.ExerciseInput{Name: name, DurationMin: minutes, CaloriesBurned: burned}, true
}

// quickLog runs a free-text utterance through the AI parser and logs the
// result as food or exercise.
func (h *TextHandler) quickLog(ctx context.Context, chatID int64, user *database.User, text string) error {
	parsed, err := h.deps.AISvc.ParseLoggedItem(ctx, text, false)
	if err != nil {
		logger.Warningf("Gemini parse failed for user %d, retrying with OpenAI: %v", user.ID, err)
		parsed, err = h.deps.AISvc.ParseLoggedItem(ctx, text, true)
	}
	if err != nil {
		logger.Errorf("Failed to parse utterance for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "I couldn't make sense of that. Try the menu buttons, or describe a meal or workout in plain words.")
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)

	if parsed.Type == "exercise" {
		return h.logExercise(ctx, chatID, user, services.ExerciseInput{
			Name:           parsed.Name,
			DurationMin:    parsed.Duration,
			CaloriesBurned: parsed.CaloriesBurned,
		})
	}

	return h.logFood(ctx, chatID, user, services.FoodInput{
		Name:     parsed.Name,
		Amount:   parsed.Amount,
		Calories: parsed.Calories,
		Carbs:    parsed.Carbs,
		Fat:      parsed.Fat,
		Protein:  parsed.Protein,
		Fiber:    parsed.Fiber,
		Category: parsed.Category,
		Source:   database.SourceVoice,
	})
}

func (h *TextHandler) logFood(ctx context.Context, chatID int64, user *database.User, input services.FoodInput) error {
	entry, err := h.deps.DiarySvc.AddFood(ctx, user.ID, input)
	if err != nil {
		logger.Errorf("Failed to add food for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Could not save that entry. Please try again.")
	}

	if err := sendPlain(h.api, chatID, fmt.Sprintf(
		"✅ Logged %s (%s): %.0f kcal · P %.0fg · C %.0fg · F %.0fg",
		entry.Name, entry.Amount, entry.Calories, entry.Protein, entry.Carbs, entry.Fat)); err != nil {
		return err
	}
	return sendDashboard(ctx, h.api, h.deps, chatID, user)
}

func (h *TextHandler) logExercise(ctx context.Context, chatID int64, user *database.User, input services.ExerciseInput) error {
	entry, err := h.deps.DiarySvc.AddExercise(ctx, user.ID, input)
	if err != nil {
		logger.Errorf("Failed to add exercise for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Could not save that workout. Please try again.")
	}

	if err := sendPlain(h.api, chatID, fmt.Sprintf(
		"✅ Logged %s: %d min, %.0f kcal burned",
		entry.Name, entry.DurationMin, entry.CaloriesBurned)); err != nil {
		return err
	}
	return sendDashboard(ctx, h.api, h.deps, chatID, user)
}

func (h *TextHandler) handleBarcode(ctx context.Context, chatID int64, user *database.User, text string) error {
	barcode := strings.ReplaceAll(text, " ", "")
	if len(barcode) < 8 || len(barcode) > 14 {
		return sendPlain(h.api, chatID, "That doesn't look like a barcode. Send 8 to 14 digits.")
	}
	for _, r := range barcode {
		if r < '0' || r > '9' {
			return sendPlain(h.api, chatID, "That doesn't look like a barcode. Send 8 to 14 digits.")
		}
	}

	food, err := h.deps.AISvc.LookupBarcode(ctx, barcode, false)
	if err != nil {
		logger.Warningf("Gemini barcode lookup failed for user %d, retrying with OpenAI: %v", user.ID, err)
		food, err = h.deps.AISvc.LookupBarcode(ctx, barcode, true)
	}
	if err != nil {
		logger.Errorf("Failed to look up barcode for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "I couldn't identify that product. Try logging it manually.")
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	return h.logFood(ctx, chatID, user, services.FoodInput{
		Name:     food.Name,
		Amount:   food.Amount,
		Calories: food.Calories,
		Carbs:    food.Carbs,
		Fat:      food.Fat,
		Protein:  food.Protein,
		Fiber:    food.Fiber,
		Category: food.Category,
		Source:   database.SourceBarcode,
	})
}

func (h *TextHandler) handleWaterAmount(ctx context.Context, chatID int64, user *database.User, text string) error {
	ml, err := strconv.Atoi(text)
	if err != nil || ml <= 0 || ml > 5000 {
		return sendPlain(h.api, chatID, "Send a number of milliliters between 1 and 5000.")
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	total, streak, err := h.deps.WaterSvc.AddWater(ctx, user, ml)
	if err != nil {
		logger.Errorf("Failed to add water for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Could not log your water. Please try again.")
	}
	return menus.SendWaterMenu(h.api, chatID, total, user.WaterGoalML, streak)
}

func (h *TextHandler) handleGoal(ctx context.Context, chatID int64, user *database.User, text string) error {
	fields := strings.Fields(text)
	if len(fields) != 5 {
		return sendPlain(h.api, chatID, "Send five numbers: kcal carbs fat protein fiber. E.g. 2200 250 70 150 30")
	}

	nums := make([]float64, 0, 5)
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return sendPlain(h.api, chatID, "Send five numbers: kcal carbs fat protein fiber. E.g. 2200 250 70 150 30")
		}
		nums = append(nums, v)
	}

	goal := tracking.Macros{
		Calories: nums[0],
		Carbs:    nums[1],
		Fat:      nums[2],
		Protein:  nums[3],
		Fiber:    nums[4],
	}
	if err := h.deps.GoalSvc.SetGoal(ctx, user.ID, goal); err != nil {
		logger.Errorf("Failed to set goal for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Could not update your goal. Make sure all numbers are non-negative.")
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	user.GoalCalories = goal.Calories
	user.GoalCarbs = goal.Carbs
	user.GoalFat = goal.Fat
	user.GoalProtein = goal.Protein
	user.GoalFiber = goal.Fiber
	return menus.SendSettingsMenu(h.api, chatID, user)
}

func (h *TextHandler) handleWaterGoal(ctx context.Context, chatID int64, user *database.User, text string) error {
	ml, err := strconv.Atoi(text)
	if err != nil || ml <= 0 {
		return sendPlain(h.api, chatID, "Send your daily goal as a positive number of milliliters, e.g. 2500.")
	}

	if err := h.deps.GoalSvc.SetWaterGoal(ctx, user.ID, ml); err != nil {
		logger.Errorf("Failed to set water goal for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Could not update your water goal. Please try again.")
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	user.WaterGoalML = ml
	return menus.SendSettingsMenu(h.api, chatID, user)
}

func (h *TextHandler) handleInstructions(ctx context.Context, chatID int64, user *database.User, text string) error {
	instructions := text
	if strings.EqualFold(text, "clear") {
		instructions = ""
	}

	if err := h.deps.GoalSvc.SetCustomInstructions(ctx, user.ID, instructions); err != nil {
		logger.Errorf("Failed to set instructions for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Could not save your notes. Please try again.")
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	user.CustomInstructions = instructions
	if instructions == "" {
		return sendPlain(h.api, chatID, "📝 Coach notes cleared.")
	}
	return sendPlain(h.api, chatID, "📝 Noted. The coach will keep that in mind.")
}

// parsePlanSlot parses "Monday Dinner" style slot references. Day and
// meal each match on a prefix of at least three letters, case-insensitive.
func parsePlanSlot(text string) (time.Weekday, string, bool) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) != 2 {
		return 0, "", false
	}

	weekday := time.Weekday(-1)
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if len(fields[0]) >= 3 && strings.HasPrefix(name, fields[0]) {
			weekday = d
			break
		}
	}
	if weekday < time.Sunday {
		return 0, "", false
	}

	for _, meal := range []string{
		database.CategoryBreakfast, database.CategoryLunch,
		database.CategoryDinner, database.CategorySnacks,
	} {
		name := strings.ToLower(meal)
		if len(fields[1]) >= 3 && strings.HasPrefix(name, fields[1]) {
			return weekday, meal, true
		}
	}
	return 0, "", false
}

// handlePlanSlot finishes the planner flow: a cached recipe id means the
// slot gets assigned, an empty one means it gets cleared.
func (h *TextHandler) handlePlanSlot(ctx context.Context, chatID int64, user *database.User, text string) error {
	weekday, meal, ok := parsePlanSlot(text)
	if !ok {
		return sendPlain(h.api, chatID, "Send a day and meal, e.g. \"Monday Dinner\" or \"wed breakfast\".")
	}

	recipeID := ""
	if raw, ok := h.stateManager.GetTempData(user.TelegramID, tempKeyPlanRecipe); ok {
		recipeID, _ = raw.(string)
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)

	if recipeID == "" {
		if err := h.deps.PlannerSvc.Remove(ctx, user.ID, weekday, meal); err != nil {
			logger.Warningf("Failed to clear plan slot for user %d: %v", user.ID, err)
			return sendPlain(h.api, chatID, "Could not clear that slot. Maybe nothing was planned there.")
		}
	} else {
		id, err := strconv.ParseUint(recipeID, 10, 32)
		if err != nil {
			return sendPlain(h.api, chatID, "That recipe is no longer available. Open your favorites again.")
		}
		if err := h.deps.PlannerSvc.Assign(ctx, user.ID, weekday, meal, uint(id)); err != nil {
			logger.Errorf("Failed to plan recipe for user %d: %v", user.ID, err)
			return sendPlain(h.api, chatID, "Could not plan that recipe. Please try again.")
		}
	}

	slots, err := h.deps.PlannerSvc.WeekPlan(ctx, user.ID)
	if err != nil {
		logger.Errorf("Failed to load week plan for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Saved, but the plan view failed to load. Open it from the main menu.")
	}
	return menus.SendWeekPlan(h.api, chatID, slots)
}

func (h *TextHandler) handleChat(ctx context.Context, chatID int64, user *database.User, text string) error {
	history := h.loadChatHistory(user.TelegramID)
	history = append(history, services.CoachMessage{Role: "user", Content: text})

	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := h.api.Request(typing); err != nil {
		logger.Warningf("Failed to send typing action: %v", err)
	}

	reply, err := h.deps.AISvc.CoachReply(ctx, history, user.CustomInstructions, false)
	if err != nil {
		logger.Warningf("Gemini coach reply failed for user %d, retrying with OpenAI: %v", user.ID, err)
		reply, err = h.deps.AISvc.CoachReply(ctx, history, user.CustomInstructions, true)
	}
	if err != nil {
		logger.Errorf("Failed to get coach reply for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "The coach is unavailable right now. Please try again in a moment.")
	}

	history = append(history, services.CoachMessage{Role: "assistant", Content: reply})
	h.storeChatHistory(user.TelegramID, history)

	msg := tgbotapi.NewMessage(chatID, reply)
	msg.ReplyMarkup = keyboards.CoachMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *TextHandler) loadChatHistory(telegramID int64) []services.CoachMessage {
	raw, ok := h.stateManager.GetTempData(telegramID, tempKeyChatHistory)
	if !ok {
		return nil
	}
	encoded, ok := raw.(string)
	if !ok {
		return nil
	}
	var history []services.CoachMessage
	if err := json.Unmarshal([]byte(encoded), &history); err != nil {
		return nil
	}
	return history
}

func (h *TextHandler) storeChatHistory(telegramID int64, history []services.CoachMessage) {
	// Cap the context window we feed back to the model.
	if len(history) > 20 {
		history = history[len(history)-20:]
	}
	encoded, err := json.Marshal(history)
	if err != nil {
		return
	}
	h.stateManager.SetTempData(telegramID, tempKeyChatHistory, string(encoded))
}
