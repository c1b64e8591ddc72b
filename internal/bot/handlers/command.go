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

// CommandHandler handles bot commands
type CommandHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a bot command
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	chatID := message.Chat.ID

	// Commands always abort whatever input the bot was waiting for.
	h.stateManager.SetUserState(user.TelegramID, state.None)

	switch message.Command() {
	case "start":
		h.stateManager.ClearTempData(user.TelegramID)
		return sendDashboard(ctx, h.api, h.deps, chatID, user)
	case "help":
		return h.handleHelp(chatID)
	case "today":
		today := tracking.Day(time.Now(), h.deps.Location)
		summary, err := h.deps.DiarySvc.Summarize(ctx, user, today)
		if err != nil {
			logger.Errorf("Failed to summarize today for user %d: %v", user.ID, err)
			return sendPlain(h.api, chatID, "Could not load today's diary. Please try again.")
		}
		return menus.SendDiaryDay(h.api, chatID, user, summary, true)
	case "water":
		return sendWaterView(ctx, h.api, h.deps, chatID, user)
	case "streak":
		streak, err := h.deps.WaterSvc.Streak(ctx, user)
		if err != nil {
			logger.Errorf("Failed to compute streak for user %d: %v", user.ID, err)
			return sendPlain(h.api, chatID, "Could not compute your streak. Please try again.")
		}
		if streak == 0 {
			return sendPlain(h.api, chatID, fmt.Sprintf("No hydration streak yet. Hit %d ml today to start one! 💧", user.WaterGoalML))
		}
		return sendPlain(h.api, chatID, fmt.Sprintf("🔥 Hydration streak: %d day(s). Keep it up!", streak))
	case "cancel":
		h.stateManager.ClearTempData(user.TelegramID)
		return sendDashboard(ctx, h.api, h.deps, chatID, user)
	default:
		return sendPlain(h.api, chatID, "Unknown command. Use /help to see what I can do.")
	}
}

func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `🪽 *Wellness Wingman*

I track your meals, workouts and hydration, and keep an eye on your macro budget.

*Commands*
/start — open the dashboard
/today — today's diary
/water — hydration view
/streak — your hydration streak
/cancel — abort the current input
/help — this message

You can also just send me a photo of your meal and I'll log it.`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	_, err := h.api.Send(msg)
	return err
}

// sendWaterView renders the hydration menu with current numbers. Shared
// by the /water command and water callbacks.
func sendWaterView(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, chatID int64, user *database.User) error {
	intake, err := deps.WaterSvc.TodayIntake(ctx, user.ID)
	if err != nil {
		logger.Errorf("Failed to load water intake for user %d: %v", user.ID, err)
		return sendPlain(api, chatID, "Could not load your hydration data. Please try again.")
	}
	streak, err := deps.WaterSvc.Streak(ctx, user)
	if err != nil {
		logger.Errorf("Failed to compute streak for user %d: %v", user.ID, err)
		streak = 0
	}
	return menus.SendWaterMenu(api, chatID, intake, user.WaterGoalML, streak)
}
