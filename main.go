package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/steelo13/WellnessWingman/internal/bot"
	"github.com/steelo13/WellnessWingman/internal/bot/handlers"
	"github.com/steelo13/WellnessWingman/internal/bot/state"
	"github.com/steelo13/WellnessWingman/internal/config"
	"github.com/steelo13/WellnessWingman/internal/database"
	"github.com/steelo13/WellnessWingman/internal/logger"
	"github.com/steelo13/WellnessWingman/internal/services"
)

func main() {
	// .env is optional, production reads real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Info("Starting Wellness Wingman bot")

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatalf("Invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Database connection established and migrations completed")

	// Initialize services
	aiService := services.NewAIService(cfg.GeminiAPIKey, cfg.OpenAIAPIKey)
	userService := services.NewUserService(db)
	diaryService := services.NewDiaryService(db, loc)
	waterService := services.NewWaterService(db, loc)
	goalService := services.NewGoalService(db)
	recipeService := services.NewRecipeService(db, aiService, diaryService)
	plannerService := services.NewPlannerService(db)
	logger.Info("Services initialized successfully")

	// Conversation state lives in Redis when available, otherwise in memory.
	var stateManager state.StateManager
	if cfg.Redis.Host != "" {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Warningf("Redis unavailable, falling back to in-memory state: %v", err)
			stateManager = state.NewManager()
		} else {
			logger.Info("Using Redis-backed conversation state")
			stateManager = redisManager
		}
	} else {
		stateManager = state.NewManager()
	}

	deps := handlers.Dependencies{
		UserService: userService,
		DiarySvc:    diaryService,
		WaterSvc:    waterService,
		GoalSvc:     goalService,
		RecipeSvc:   recipeService,
		PlannerSvc:  plannerService,
		AISvc:       aiService,
		Location:    loc,
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Infof("Received signal %s, shutting down", sig)
		cancel()
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Errorf("Bot stopped with error: %v", err)
			cancel()
		}
	}()

	logger.Info("Bot is running")
	wg.Wait()
}
