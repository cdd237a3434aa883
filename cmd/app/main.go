package main

import (
	"context"
	"embed"

	"culturate/internal/ai"
	"culturate/internal/application"
	httpdelivery "culturate/internal/delivery/http"
	"culturate/internal/repository"
	"culturate/internal/scraper"
	"culturate/internal/youtube"
	"culturate/pkg/config"
	"culturate/pkg/logger"
	service "culturate/pkg/services"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	db, err := repository.NewPostgresDB(&cfg.Repo)
	if err != nil {
		log.Error("failed to init db", "error", err.Error())
		return
	}
	defer db.Close()

	log.Info("running migrations")
	if err := repository.RunMigrations(db, migrationFS); err != nil {
		log.Error("failed to run migrations", "error", err.Error())
		return
	}
	log.Info("migrations applied successfully")

	repos := repository.NewRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel)
	if err != nil {
		log.Error("failed to init gemini", "error", err.Error())
		return
	}
	defer gemini.Close()

	youtubeKey := cfg.YouTubeKey
	if youtubeKey == "" {
		youtubeKey = cfg.GeminiKey
	}
	videos, err := youtube.NewClient(ctx, youtubeKey)
	if err != nil {
		log.Error("failed to init youtube client", "error", err.Error())
		return
	}

	commons := scraper.NewCommonsScraper(cfg.DownloadDir, log)

	services := application.NewService(repos, gemini, videos, commons, ai.NewImageProcessor(), application.Config{
		ScrapeThreshold: cfg.ScrapeMinConfidence,
		MaxAttempts:     cfg.ScrapeMaxAttempts,
		AttemptDelay:    cfg.ScrapeAttemptDelay,
		HistoryWindow:   cfg.ChatHistoryWindow,
		MaxReplyRunes:   cfg.ChatMaxReplyRunes,
	}, log)

	server := httpdelivery.NewServer(cfg.HTTPAddr, services, log)

	manager := service.NewManager(log)
	manager.AddService(server)

	if err := manager.Run(ctx); err != nil {
		log.Error("service manager stopped", "error", err.Error())
	}
}
