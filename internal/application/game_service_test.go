package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturate/internal/ai"
	"culturate/internal/models"
)

func newGameService(oracle *stubOracle, store *memStore, scraper *stubScraper) *GameServiceImpl {
	return NewGameServiceImpl(store, oracle, scraper, passthroughOptimizer{}, Config{}, nopLogger{})
}

func TestDifficultyTier(t *testing.T) {
	assert.Equal(t, ai.DifficultyEasy, DifficultyTier(0.0))
	assert.Equal(t, ai.DifficultyEasy, DifficultyTier(0.5))
	assert.Equal(t, ai.DifficultyEasy, DifficultyTier(0.699))
	assert.Equal(t, ai.DifficultyMedium, DifficultyTier(0.7))
	assert.Equal(t, ai.DifficultyMedium, DifficultyTier(0.849))
	assert.Equal(t, ai.DifficultyHard, DifficultyTier(0.85))
	assert.Equal(t, ai.DifficultyHard, DifficultyTier(1.0))
}

func TestDifficultyTierIsNonDecreasingStep(t *testing.T) {
	rank := map[string]int{ai.DifficultyEasy: 0, ai.DifficultyMedium: 1, ai.DifficultyHard: 2}

	prev := 0
	for i := 0; i <= 100; i++ {
		threshold := float64(i) / 100
		tier := DifficultyTier(threshold)
		r, ok := rank[tier]
		require.True(t, ok, "unexpected tier %q at %v", tier, threshold)
		assert.GreaterOrEqual(t, r, prev, "tier decreased at %v", threshold)
		prev = r
	}
}

func TestGuessCorrectRatchetsDifficulty(t *testing.T) {
	oracle := &stubOracle{
		imageFunc: func(string, string, []byte) (string, error) {
			return `{"province":"Bali","confidence":0.9}`, nil
		},
	}
	store := newMemStore()
	svc := newGameService(oracle, store, &stubScraper{})

	resp, err := svc.Guess(context.Background(), models.GuessRequest{
		InputURL:       "https://example.com/kecak.jpg",
		ActualProvince: "Bali",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bali", resp.AIGuess)
	assert.True(t, resp.AICorrect)
	assert.InDelta(t, 0.9, resp.AIConfidence, 1e-9)
	assert.InDelta(t, 0.55, resp.CurrentDifficulty, 1e-9)
	assert.Empty(t, resp.Error)
}

func TestGuessIncorrectLeavesDifficultyUnchanged(t *testing.T) {
	oracle := &stubOracle{
		imageFunc: func(string, string, []byte) (string, error) {
			return `{"province":"Aceh","confidence":0.6}`, nil
		},
	}
	svc := newGameService(oracle, newMemStore(), &stubScraper{})

	resp, err := svc.Guess(context.Background(), models.GuessRequest{
		InputURL:       "https://example.com/kecak.jpg",
		ActualProvince: "Bali",
	})
	require.NoError(t, err)

	assert.False(t, resp.AICorrect)
	assert.InDelta(t, 0.5, resp.CurrentDifficulty, 1e-9)
}

func TestDifficultyReachesCapAfterTenCorrect(t *testing.T) {
	oracle := &stubOracle{
		imageFunc: func(string, string, []byte) (string, error) {
			return `{"province":"Bali","confidence":0.9}`, nil
		},
	}
	svc := newGameService(oracle, newMemStore(), &stubScraper{})

	var last float64
	for i := 0; i < 10; i++ {
		resp, err := svc.Guess(context.Background(), models.GuessRequest{
			InputURL:       "https://example.com/kecak.jpg",
			ActualProvince: "Bali",
		})
		require.NoError(t, err)
		last = resp.CurrentDifficulty
		assert.LessOrEqual(t, last, 1.0)
	}
	assert.InDelta(t, 1.0, last, 1e-9)

	// Further correct guesses stay pinned at the cap.
	resp, err := svc.Guess(context.Background(), models.GuessRequest{
		InputURL:       "https://example.com/kecak.jpg",
		ActualProvince: "Bali",
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, resp.CurrentDifficulty, 1e-9)
}

func TestSessionsAreIsolated(t *testing.T) {
	oracle := &stubOracle{
		imageFunc: func(string, string, []byte) (string, error) {
			return `{"province":"Bali","confidence":0.9}`, nil
		},
	}
	svc := newGameService(oracle, newMemStore(), &stubScraper{})

	_, err := svc.Guess(context.Background(), models.GuessRequest{
		InputURL:       "https://example.com/kecak.jpg",
		ActualProvince: "Bali",
		SessionID:      "player-one",
	})
	require.NoError(t, err)

	one, err := svc.Threshold("player-one")
	require.NoError(t, err)
	two, err := svc.Threshold("player-two")
	require.NoError(t, err)

	assert.InDelta(t, 0.55, one, 1e-9)
	assert.InDelta(t, 0.5, two, 1e-9)
}

func TestThresholdSurvivesServiceRestart(t *testing.T) {
	oracle := &stubOracle{
		imageFunc: func(string, string, []byte) (string, error) {
			return `{"province":"Bali","confidence":0.9}`, nil
		},
	}
	store := newMemStore()

	svc := newGameService(oracle, store, &stubScraper{})
	_, err := svc.Guess(context.Background(), models.GuessRequest{
		InputURL:       "https://example.com/kecak.jpg",
		ActualProvince: "Bali",
	})
	require.NoError(t, err)

	restarted := newGameService(oracle, store, &stubScraper{})
	threshold, err := restarted.Threshold("")
	require.NoError(t, err)
	assert.InDelta(t, 0.55, threshold, 1e-9)
}

func TestSimulateDoesNotAffectDifficulty(t *testing.T) {
	oracle := &stubOracle{
		imageFunc: func(string, string, []byte) (string, error) {
			return `{"province":"Bali","confidence":0.9}`, nil
		},
	}
	svc := newGameService(oracle, newMemStore(), &stubScraper{})

	resp, err := svc.Simulate(context.Background(), "https://example.com/kecak.jpg", "")
	require.NoError(t, err)
	assert.Equal(t, "Bali", resp.AIGuess)
	assert.Equal(t, ai.DifficultyEasy, resp.Difficulty)

	threshold, err := svc.Threshold("")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, threshold, 1e-9)
}

func TestGuessRecordsUserOutcome(t *testing.T) {
	oracle := &stubOracle{
		imageFunc: func(string, string, []byte) (string, error) {
			return `{"province":"Aceh","confidence":0.6}`, nil
		},
	}
	store := newMemStore()
	svc := newGameService(oracle, store, &stubScraper{})

	resp, err := svc.Guess(context.Background(), models.GuessRequest{
		InputURL:       "https://example.com/kecak.jpg",
		ActualProvince: "Bali",
		UserGuess:      "bali",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.UserCorrect)
	assert.True(t, *resp.UserCorrect)

	rounds, err := store.GetRounds(DefaultSessionID)
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, "Bali", rounds[0].CorrectAnswer)
	assert.True(t, rounds[0].PlayerCorrect)
	assert.False(t, rounds[0].AICorrect)
}

func TestPredictDispatchesVideoByURL(t *testing.T) {
	oracle := &stubOracle{
		videoFunc: func(string, string) (string, error) {
			return `{"province":"Bali","confidence":0.7}`, nil
		},
	}
	svc := newGameService(oracle, newMemStore(), &stubScraper{})

	resp, err := svc.Simulate(context.Background(), "https://www.youtube.com/watch?v=abc", "")
	require.NoError(t, err)
	assert.Equal(t, "Bali", resp.AIGuess)
	assert.Equal(t, 1, oracle.videoCalls)
	assert.Equal(t, 0, oracle.imageCalls)
}

func TestPredictFailureYieldsSentinelNotError(t *testing.T) {
	scraper := &stubScraper{
		fetchFunc: func(string) ([]byte, error) {
			return nil, assert.AnError
		},
	}
	svc := newGameService(&stubOracle{}, newMemStore(), scraper)

	resp, err := svc.Guess(context.Background(), models.GuessRequest{
		InputURL:       "https://example.com/broken.jpg",
		ActualProvince: "Bali",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UnknownProvince, resp.AIGuess)
	assert.Equal(t, 0.0, resp.AIConfidence)
	assert.NotEmpty(t, resp.Error)
	assert.False(t, resp.AICorrect)
	assert.InDelta(t, 0.5, resp.CurrentDifficulty, 1e-9)
}

func TestIsVideoURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://youtu.be/abc", true},
		{"https://m.youtube.com/watch?v=abc", true},
		{"https://example.com/clip.mp4", true},
		{"https://example.com/clip.MOV", true},
		{"https://example.com/photo.jpg", false},
		{"https://upload.wikimedia.org/wikipedia/commons/a/ab/Foo.png", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isVideoURL(tt.url), tt.url)
	}
}
