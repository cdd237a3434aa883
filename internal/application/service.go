package application

import (
	"context"

	"culturate/internal/models"
	"culturate/internal/repository"
)

// Oracle is the generative-AI capability the whole system treats as a
// black box: given a prompt and optional media, return text.
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithImage(ctx context.Context, prompt, format string, data []byte) (string, error)
	GenerateWithVideoURL(ctx context.Context, prompt, videoURL string) (string, error)
}

// VideoSearcher is the external video index.
type VideoSearcher interface {
	Search(ctx context.Context, query string, maxResults int64) ([]models.VideoInfo, error)
}

// MediaScraper acquires and disposes of image candidates.
type MediaScraper interface {
	SearchCommons(ctx context.Context, query string, maxResults int) ([]string, error)
	ExtractImageURL(ctx context.Context, filePageURL string) (string, error)
	Download(ctx context.Context, imageURL, province, query string) (string, error)
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
	Cleanup(localPath string) error
}

// ImageOptimizer shrinks raw image bytes before inline oracle payloads.
type ImageOptimizer interface {
	OptimizeForAI(data []byte) ([]byte, string, error)
}

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type GameService interface {
	Guess(ctx context.Context, req models.GuessRequest) (*GuessResponse, error)
	Simulate(ctx context.Context, mediaURL, sessionID string) (*SimulateResponse, error)
	Threshold(sessionID string) (float64, error)
}

type ScrapeService interface {
	ScrapeUntilValid(ctx context.Context) (*models.ScrapedMedia, error)
}

type ChatService interface {
	Ask(ctx context.Context, req models.ChatRequest) (string, error)
}

type SummaryService interface {
	Analyze(ctx context.Context, rounds []models.RoundOutcome) (string, error)
	ExportRounds(sessionID string) ([]byte, error)
}

type Service struct {
	Game    GameService
	Scrape  ScrapeService
	Chat    ChatService
	Summary SummaryService
}

func NewService(repos *repository.Repository, oracle Oracle, videos VideoSearcher, scraper MediaScraper, optimizer ImageOptimizer, cfg Config, logger Logger) *Service {
	return &Service{
		Game:    NewGameServiceImpl(repos.Session, oracle, scraper, optimizer, cfg, logger),
		Scrape:  NewScrapeServiceImpl(oracle, videos, scraper, cfg, logger),
		Chat:    NewChatbotServiceImpl(oracle, cfg, logger),
		Summary: NewSummaryServiceImpl(oracle, repos.Session, logger),
	}
}
