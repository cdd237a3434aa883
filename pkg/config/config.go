package config

import (
	"time"

	"culturate/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo      repository.Config `envPrefix:"REPO_"`
	GeminiKey string            `env:"GEMINI_KEY" envDefault:""`
	// YouTubeKey defaults to the Gemini key; both are Google API keys.
	YouTubeKey  string `env:"YOUTUBE_KEY" envDefault:""`
	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	LogLevel    string `env:"LOGGER_LEVEL" envDefault:"debug"`

	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DownloadDir string `env:"DOWNLOAD_DIR" envDefault:"downloads/cultural_images"`

	ScrapeMinConfidence float64       `env:"SCRAPE_MIN_CONFIDENCE" envDefault:"0.65"`
	ScrapeMaxAttempts   int           `env:"SCRAPE_MAX_ATTEMPTS" envDefault:"10"`
	ScrapeAttemptDelay  time.Duration `env:"SCRAPE_ATTEMPT_DELAY" envDefault:"1s"`

	ChatHistoryWindow int `env:"CHAT_HISTORY_WINDOW" envDefault:"4"`
	ChatMaxReplyRunes int `env:"CHAT_MAX_REPLY_RUNES" envDefault:"1200"`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}
