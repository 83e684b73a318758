package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"vibetune-bot/internal/auth"
	"vibetune-bot/internal/config"
	"vibetune-bot/internal/history"
	"vibetune-bot/internal/llm"
	"vibetune-bot/internal/report"
	"vibetune-bot/internal/scheduler"
	"vibetune-bot/internal/session"
	"vibetune-bot/internal/storage"
	"vibetune-bot/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	authSvc := auth.New(cfg.AllowedUsers)

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	sessions := session.NewManager(session.Defaults{
		ModelID:     cfg.DefaultModelID,
		Temperature: cfg.DefaultTemperature,
		MaxTokens:   cfg.DefaultMaxTokens,
		TopP:        cfg.DefaultTopP,
	})
	hist := history.NewManager(cfg.HistoryLimit)

	var reporter *report.Client
	if cfg.WebAppURL != "" {
		reporter = report.NewClient(cfg.WebAppURL, cfg.ReportTimeout)
	} else {
		log.Printf("WEB_APP_URL not set, /report is disabled")
	}

	var rec storage.Recorder
	if cfg.LogFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.LogFilePath)
		if err != nil {
			log.Printf("failed to init file recorder: %v", err)
		} else {
			rec = fr
		}
	}

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		authSvc,
		llmClient,
		sessions,
		hist,
		reporter,
		rec,
		cfg.AdminUserID,
		cfg.ModalInferenceURL,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.AdminUserID != 0 && rec != nil {
		sched := scheduler.New()
		sched.SetSummaryFunction(bot.SendDailySummary)
		if err := sched.Start(); err != nil {
			log.Printf("failed to start scheduler: %v", err)
		} else {
			defer sched.Stop()
		}
	}

	log.Printf("✅ Bot is ready to receive messages (provider=%s, endpoint=%s)", cfg.LLMProvider, cfg.ModalInferenceURL)
	bot.Start(context.Background())
}
