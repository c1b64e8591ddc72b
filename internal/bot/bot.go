package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/steelo13/WellnessWingman/internal/bot/handlers"
	"github.com/steelo13/WellnessWingman/internal/bot/state"
	apperrors "github.com/steelo13/WellnessWingman/internal/errors"
	"github.com/steelo13/WellnessWingman/internal/logger"
)

// Bot wraps the telegram API client and the update dispatch chain.
type Bot struct {
	api        *tgbotapi.BotAPI
	handler    *handlers.UpdateHandler
	errHandler *apperrors.Handler
}

func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Infof("Bot authorized on account %s", api.Self.UserName)
	return &Bot{
		api:        api,
		handler:    handlers.NewUpdateHandler(api, deps, stateManager),
		errHandler: apperrors.NewHandler(logger.GetLogger()),
	}, nil
}

// Start long-polls for updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if err := b.handler.Handle(ctx, update); err != nil {
				b.errHandler.Handle(ctx, err)
			}
		}
	}
}
