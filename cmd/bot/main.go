package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	if err := config.CheckTokens(cfg); err != nil {
		var missingErr *config.MissingTokensError
		if errors.As(err, &missingErr) {
			log.WithField("missing", missingErr.Missing).Fatal(err.Error())
		}
		log.Fatalf("FATAL: Invalid configuration: %v", err)
	}
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	pacer, err := scheduler.NewPollScheduler(cfg.PollSchedule)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	bot, err := telegram.NewBot(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	notifier := app.NewNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramChatID, log)

	api := practicum.NewClient(nil, cfg.PracticumEndpoint, cfg.PracticumToken)

	fromDate := cfg.FromDate
	if fromDate == 0 {
		fromDate = time.Now().Unix()
	}

	poller := app.NewStatusPoller(api, notifier, pacer, homework.DefaultVerdicts(), fromDate, log)
	log.Infof("Polling %s on schedule %q", cfg.PracticumEndpoint, pacer)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("Poller stopped: %v", err)
	}
	log.Info("Application shut down gracefully.")
}
