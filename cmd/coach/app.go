package main

import (
	"context"
	"fmt"

	"fincoach/internal/config"
	"fincoach/internal/database"
	"fincoach/internal/llm"
	"fincoach/internal/logger"
	"fincoach/internal/services"
)

// app holds the wired services shared by the commands.
type app struct {
	cfg   *config.Config
	db    *database.Manager
	users services.UserServicer
	coach services.CoachServicer
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Get()

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, err
	}
	if err := dbManager.Ping(ctx); err != nil {
		_ = dbManager.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	var client llm.Client
	if cfg.LLMAPIKey == "" {
		logger.Get().Warnw("LLM_API_KEY not set, every run will use the fallback insight")
	} else {
		gemini, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:      cfg.LLMAPIKey,
			Model:       cfg.LLMModel,
			Temperature: cfg.LLMTemperature,
		})
		if err != nil {
			_ = dbManager.Close()
			return nil, err
		}
		client = gemini
	}

	db := dbManager.DB()
	users := services.NewUserService(db)
	coach := services.NewCoachService(
		services.NewMetricsService(users, services.NewLedgerService(db)),
		services.NewInsightGenerator(client, cfg.GenerationTimeout),
		services.NewInsightService(db),
		nil,
	)

	return &app{cfg: cfg, db: dbManager, users: users, coach: coach}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		logger.Get().Warnw("failed to close database", "error", err)
	}
}
