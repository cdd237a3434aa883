package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturate/internal/models"
)

// scoringOracle answers every prompt kind the pipeline produces,
// returning score as the validation verdict.
func scoringOracle(score string) *stubOracle {
	return &stubOracle{
		textFunc: func(prompt string) (string, error) {
			switch {
			case strings.Contains(prompt, "Return ONLY a confidence score"):
				return score, nil
			case strings.Contains(prompt, "Return ONLY the search query"):
				return "tari kecak", nil
			default:
				return "Tari Kecak is a Balinese dance performed without instruments.", nil
			}
		},
	}
}

func pipelineScraper(t *testing.T, dir string) *stubScraper {
	t.Helper()
	return &stubScraper{
		searchFunc: func(query string, maxResults int) ([]string, error) {
			return []string{"https://commons.wikimedia.org/wiki/File:Tari_Kecak.jpg"}, nil
		},
		extractFunc: func(filePageURL string) (string, error) {
			return "https://upload.wikimedia.org/wikipedia/commons/a/ab/Tari_Kecak.jpg", nil
		},
		downloadFunc: func(imageURL, province, query string) (string, error) {
			path := filepath.Join(dir, fmt.Sprintf("%s_%d.jpg", strings.ReplaceAll(province, " ", "_"), time.Now().UnixNano()))
			if err := os.WriteFile(path, []byte("image-bytes"), 0o644); err != nil {
				return "", err
			}
			return path, nil
		},
		cleanupFunc: func(localPath string) error {
			return os.Remove(localPath)
		},
	}
}

func pipelineVideos() *stubVideos {
	return &stubVideos{
		searchFunc: func(query string, maxResults int64) ([]models.VideoInfo, error) {
			return []models.VideoInfo{{
				VideoID:      "abc123",
				Title:        "Tari Kecak Bali",
				Description:  "Pertunjukan tari tradisional",
				ChannelTitle: "Budaya",
				VideoURL:     "https://www.youtube.com/watch?v=abc123",
			}}, nil
		},
	}
}

func fastConfig() Config {
	return Config{AttemptDelay: time.Millisecond}
}

func TestScrapeAcceptsFirstValidCandidate(t *testing.T) {
	dir := t.TempDir()
	scraper := pipelineScraper(t, dir)
	videos := pipelineVideos()
	svc := NewScrapeServiceImpl(scoringOracle("0.9"), videos, scraper, fastConfig(), nopLogger{})

	media, err := svc.ScrapeUntilValid(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, media.Province)
	assert.NotEmpty(t, media.MediaURL)
	assert.Equal(t, "tari kecak", media.Query)
	assert.NotEmpty(t, media.FunFact)

	// One attempt total, across both media kinds.
	assert.Equal(t, 1, scraper.searchCalls+videos.searchCalls)

	// No local artifact may survive the pipeline.
	assertNoFiles(t, dir)
}

func TestScrapeExhaustsAfterMaxAttempts(t *testing.T) {
	dir := t.TempDir()
	scraper := pipelineScraper(t, dir)
	videos := pipelineVideos()
	svc := NewScrapeServiceImpl(scoringOracle("0.1"), videos, scraper, fastConfig(), nopLogger{})

	_, err := svc.ScrapeUntilValid(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 attempts")

	assert.Equal(t, 10, scraper.searchCalls+videos.searchCalls)
	assertNoFiles(t, dir)
}

func TestScrapeNormalizesPercentageScores(t *testing.T) {
	dir := t.TempDir()
	svc := NewScrapeServiceImpl(scoringOracle("92"), pipelineVideos(), pipelineScraper(t, dir), fastConfig(), nopLogger{})

	media, err := svc.ScrapeUntilValid(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, media.MediaURL)
	assertNoFiles(t, dir)
}

func TestScrapeRespectsContextCancellation(t *testing.T) {
	dir := t.TempDir()
	svc := NewScrapeServiceImpl(scoringOracle("0.1"), pipelineVideos(), pipelineScraper(t, dir),
		Config{AttemptDelay: time.Hour}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := svc.ScrapeUntilValid(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assertNoFiles(t, dir)
}

func TestScrapeFallsBackToKeywordScoreOnOracleFailure(t *testing.T) {
	dir := t.TempDir()
	oracle := &stubOracle{
		textFunc: func(prompt string) (string, error) {
			if strings.Contains(prompt, "Return ONLY a confidence score") {
				return "", assert.AnError
			}
			if strings.Contains(prompt, "Return ONLY the search query") {
				return "tari kecak", nil
			}
			return "fact", nil
		},
	}
	// Both fallback scorers must clear the 0.65 acceptance bar whichever
	// media kind the attempt draws: the video text scores well past it,
	// the keyword-rich file page saturates the image fallback to exactly
	// its 0.65 ceiling.
	videos := &stubVideos{
		searchFunc: func(string, int64) ([]models.VideoInfo, error) {
			return []models.VideoInfo{{
				VideoID:     "abc",
				Title:       "Tari tradisional Indonesia",
				Description: "Budaya dance musik wayang batik",
				VideoURL:    "https://www.youtube.com/watch?v=abc",
			}}, nil
		},
	}
	scraper := pipelineScraper(t, dir)
	scraper.searchFunc = func(string, int) ([]string, error) {
		return []string{"https://commons.wikimedia.org/wiki/File:Tari_dance_musik_wayang_batik_budaya.jpg"}, nil
	}
	svc := NewScrapeServiceImpl(oracle, videos, scraper, fastConfig(), nopLogger{})

	media, err := svc.ScrapeUntilValid(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, media.MediaURL)
	assertNoFiles(t, dir)
}

func TestKeywordScoreBounds(t *testing.T) {
	// No matches saturate down to the floor.
	assert.InDelta(t, videoFallbackFloor, keywordScore("nothing relevant here", videoFallbackFloor, videoFallbackCeiling), 1e-9)

	// Many matches saturate up to the ceiling.
	loaded := strings.Join(culturalKeywords, " ")
	assert.InDelta(t, videoFallbackCeiling, keywordScore(loaded, videoFallbackFloor, videoFallbackCeiling), 1e-9)
	assert.InDelta(t, imageFallbackCeiling, keywordScore(loaded, imageFallbackFloor, imageFallbackCeiling), 1e-9)

	// Three matches land between the bounds.
	assert.InDelta(t, 0.45, keywordScore("tari dance musik", videoFallbackFloor, videoFallbackCeiling), 1e-9)
}

func TestFallbackQuery(t *testing.T) {
	assert.Equal(t, "dance Bali", fallbackQuery("traditional dance", "Bali"))
	assert.Equal(t, "cultural festival Maluku", fallbackQuery("cultural festival", "Maluku"))
}

func assertNoFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "local artifacts left behind")
}
