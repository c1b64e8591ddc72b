package handlers

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/steelo13/WellnessWingman/internal/bot/menus"
	"github.com/steelo13/WellnessWingman/internal/bot/state"
	"github.com/steelo13/WellnessWingman/internal/database"
	"github.com/steelo13/WellnessWingman/internal/logger"
	"github.com/steelo13/WellnessWingman/internal/tracking"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             *tgbotapi.BotAPI
	deps            Dependencies
	stateManager    state.StateManager
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
	photoHandler    *PhotoHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	return &UpdateHandler{
		api:             api,
		deps:            deps,
		stateManager:    stateManager,
		callbackHandler: NewCallbackHandler(api, deps, stateManager),
		commandHandler:  NewCommandHandler(api, deps, stateManager),
		textHandler:     NewTextHandler(api, deps, stateManager),
		photoHandler:    NewPhotoHandler(api, deps, stateManager),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	var userID int64
	var username, firstName, lastName string

	if update.Message != nil {
		userID = update.Message.From.ID
		username = update.Message.From.UserName
		firstName = update.Message.From.FirstName
		lastName = update.Message.From.LastName
	} else {
		userID = update.CallbackQuery.From.ID
		username = update.CallbackQuery.From.UserName
		firstName = update.CallbackQuery.From.FirstName
		lastName = update.CallbackQuery.From.LastName
	}

	user, err := h.deps.UserService.RegisterUser(ctx, userID, username, firstName, lastName)
	if err != nil {
		logger.Errorf("Failed to register user %d: %v", userID, err)
		return fmt.Errorf("failed to register user: %w", err)
	}

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, user)
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message, user)
	}

	if len(update.Message.Photo) > 0 {
		return h.photoHandler.Handle(ctx, update.Message, user)
	}

	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message, user)
	}

	return nil
}

// sendDashboard renders the main menu with today's aggregates. Shared by
// the /start command and the main_menu callback.
func sendDashboard(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, chatID int64, user *database.User) error {
	today := tracking.Day(time.Now(), deps.Location)
	summary, err := deps.DiarySvc.Summarize(ctx, user, today)
	if err != nil {
		logger.Errorf("Failed to summarize today for user %d: %v", user.ID, err)
		return sendPlain(api, chatID, "Something went wrong loading your dashboard. Please try again.")
	}

	intake, err := deps.WaterSvc.TodayIntake(ctx, user.ID)
	if err != nil {
		logger.Errorf("Failed to load water intake for user %d: %v", user.ID, err)
		intake = 0
	}
	streak, err := deps.WaterSvc.Streak(ctx, user)
	if err != nil {
		logger.Errorf("Failed to compute streak for user %d: %v", user.ID, err)
		streak = 0
	}

	return menus.SendMainMenu(api, chatID, user, summary, intake, streak)
}

func formatMacroLine(calories, protein, carbs, fat, fiber float64) string {
	line := fmt.Sprintf("%.0f kcal · P %.0fg · C %.0fg · F %.0fg", calories, protein, carbs, fat)
	if fiber > 0 {
		line += fmt.Sprintf(" · fiber %.0fg", fiber)
	}
	return line
}

func sendPlain(api *tgbotapi.BotAPI, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := api.Send(msg)
	return err
}
