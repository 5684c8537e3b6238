// Package main is the entry point for the Telegram quiz bot webhook service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"telegram-quiz-bot/internal/bot"
	"telegram-quiz-bot/internal/config"
	"telegram-quiz-bot/internal/dialog"
	"telegram-quiz-bot/internal/llm"
	"telegram-quiz-bot/internal/relay"
	"telegram-quiz-bot/internal/session"
	"telegram-quiz-bot/internal/stats"
	"telegram-quiz-bot/internal/telegram"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Optional .env for local runs; real deployments use the environment.
	_ = godotenv.Load()

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log.Info().Msg("Configuration loaded successfully")

	if cfg.Owner.ID == 0 {
		log.Warn().Msg("OWNER_ID not set: operator relay and /reply are disabled")
	}
	if cfg.OpenRouter.APIKey == "" {
		log.Warn().Msg("OPENROUTER_API_KEY not set: generations will fail with a fixed notice")
	}

	client, err := telegram.NewClient(cfg.Bot.Token, false)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram client")
	}

	gateway := llm.NewClient(cfg.OpenRouter)

	sessions := session.NewStore()
	feedback := session.NewFeedbackStore()
	statsStore := stats.NewStore()

	operatorRelay := relay.New(client, cfg.Owner.ID, cfg.Relay.ChunkSize)
	router := dialog.NewRouter(client, gateway, operatorRelay, sessions, feedback, statsStore)

	b := bot.New(&bot.Dependencies{
		Config: cfg,
		Acker:  client,
		Router: router,
		Relay:  operatorRelay,
	})

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- b.Start()
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errChan:
		log.Fatal().Err(err).Msg("Webhook server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Bot stopped gracefully")
}
