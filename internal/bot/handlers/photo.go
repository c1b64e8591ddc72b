package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/steelo13/WellnessWingman/internal/bot/state"
	"github.com/steelo13/WellnessWingman/internal/database"
	"github.com/steelo13/WellnessWingman/internal/logger"
	"github.com/steelo13/WellnessWingman/internal/services"
)

// PhotoHandler handles meal photos
type PhotoHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *PhotoHandler {
	return &PhotoHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a photo message. Photos are accepted in any state, a
// picture of food is unambiguous enough on its own.
func (h *PhotoHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	chatID := message.Chat.ID

	// Telegram sends several sizes, the last one is the largest.
	photo := message.Photo[len(message.Photo)-1]

	fileURL, err := h.api.GetFileDirectURL(photo.FileID)
	if err != nil {
		logger.Errorf("Failed to get photo URL for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Could not download that photo. Please try again.")
	}

	if err := sendPlain(h.api, chatID, "📷 Analyzing your meal..."); err != nil {
		logger.Warningf("Failed to send progress message: %v", err)
	}

	food, err := h.deps.AISvc.AnalyzeFoodImage(ctx, fileURL, false)
	if err != nil {
		logger.Warningf("Gemini vision failed for user %d, retrying with OpenAI: %v", user.ID, err)
		food, err = h.deps.AISvc.AnalyzeFoodImage(ctx, fileURL, true)
	}
	if err != nil {
		logger.Errorf("Failed to analyze food image for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "I couldn't recognize the food on that photo. Try another angle or log it manually.")
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)

	entry, err := h.deps.DiarySvc.AddFood(ctx, user.ID, services.FoodInput{
		Name:     food.Name,
		Amount:   food.Amount,
		Calories: food.Calories,
		Carbs:    food.Carbs,
		Fat:      food.Fat,
		Protein:  food.Protein,
		Fiber:    food.Fiber,
		Category: food.Category,
		Source:   database.SourcePhoto,
	})
	if err != nil {
		logger.Errorf("Failed to save recognized food for user %d: %v", user.ID, err)
		return sendPlain(h.api, chatID, "Could not save that entry. Please try again.")
	}

	card := tgbotapi.NewMessage(chatID, "")
	card.ParseMode = "Markdown"
	card.Text = "✅ *" + entry.Name + "* (" + entry.Amount + ") logged to " + entry.Category + "\n" +
		formatMacroLine(entry.Calories, entry.Protein, entry.Carbs, entry.Fat, entry.Fiber)
	if _, err := h.api.Send(card); err != nil {
		return err
	}

	return sendDashboard(ctx, h.api, h.deps, chatID, user)
}
