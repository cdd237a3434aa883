package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"culturate/internal/ai"
	"culturate/internal/models"
	"culturate/internal/repository"
)

type GuessResponse struct {
	ActualProvince    string  `json:"actual_province"`
	AIGuess           string  `json:"ai_guess"`
	AIConfidence      float64 `json:"ai_confidence"`
	AICorrect         bool    `json:"ai_correct"`
	UserGuess         string  `json:"user_guess,omitempty"`
	UserCorrect       *bool   `json:"user_correct,omitempty"`
	CurrentDifficulty float64 `json:"current_difficulty"`
	AIReasoning       string  `json:"ai_reasoning,omitempty"`
	Error             string  `json:"error,omitempty"`
	SessionID         string  `json:"session_id"`
}

type SimulateResponse struct {
	MediaURL     string  `json:"media_url"`
	AIGuess      string  `json:"ai_guess"`
	AIConfidence float64 `json:"ai_confidence"`
	Difficulty   string  `json:"difficulty"`
	AIReasoning  string  `json:"ai_reasoning,omitempty"`
}

// DifficultyTier maps a confidence threshold to its discrete tier. The
// breakpoints are closed below and open above.
func DifficultyTier(threshold float64) string {
	switch {
	case threshold < easyCeiling:
		return ai.DifficultyEasy
	case threshold < mediumCeiling:
		return ai.DifficultyMedium
	default:
		return ai.DifficultyHard
	}
}

// sessionState is the in-memory view of one game session. Its mutex
// serializes difficulty reads and ratchets for that session only.
type sessionState struct {
	mu        sync.Mutex
	threshold float64
}

type GameServiceImpl struct {
	store     repository.Session
	oracle    Oracle
	media     MediaScraper
	optimizer ImageOptimizer
	logger    Logger

	mu       sync.Mutex
	sessions map[string]*sessionState
}

func NewGameServiceImpl(store repository.Session, oracle Oracle, media MediaScraper, optimizer ImageOptimizer, cfg Config, logger Logger) *GameServiceImpl {
	return &GameServiceImpl{
		store:     store,
		oracle:    oracle,
		media:     media,
		optimizer: optimizer,
		logger:    logger,
		sessions:  make(map[string]*sessionState),
	}
}

// session returns the state for id, loading it from the store or creating
// a fresh one at the initial threshold.
func (s *GameServiceImpl) session(id string) (*sessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[id]; ok {
		return st, nil
	}

	st := &sessionState{threshold: initialThreshold}
	stored, err := s.store.Get(id)
	switch {
	case err == nil:
		st.threshold = stored.ConfidenceThreshold
	case errors.Is(err, sql.ErrNoRows):
		if err := s.store.Create(models.GameSession{ID: id, ConfidenceThreshold: initialThreshold}); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.sessions[id] = st
	return st, nil
}

func (s *GameServiceImpl) Guess(ctx context.Context, req models.GuessRequest) (*GuessResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	st, err := s.session(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	st.mu.Lock()
	tier := DifficultyTier(st.threshold)
	st.mu.Unlock()

	result := s.predict(ctx, req.InputURL, tier, true)
	aiCorrect := result.Err == "" && ai.SameProvince(result.ProvinceGuess, req.ActualProvince)

	st.mu.Lock()
	if aiCorrect {
		st.threshold = st.threshold + difficultyStep
		if st.threshold > 1.0 {
			st.threshold = 1.0
		}
		if err := s.store.UpdateThreshold(sessionID, st.threshold); err != nil {
			s.logger.Error("failed to persist difficulty", "session", sessionID, "error", err.Error())
		}
	}
	current := st.threshold
	st.mu.Unlock()

	resp := &GuessResponse{
		ActualProvince:    req.ActualProvince,
		AIGuess:           result.ProvinceGuess,
		AIConfidence:      result.Confidence,
		AICorrect:         aiCorrect,
		CurrentDifficulty: current,
		AIReasoning:       result.Reasoning,
		Error:             result.Err,
		SessionID:         sessionID,
	}

	round := models.RoundOutcome{
		CorrectAnswer: req.ActualProvince,
		AIGuess:       result.ProvinceGuess,
		AICorrect:     aiCorrect,
	}
	if req.UserGuess != "" {
		userCorrect := ai.SameProvince(req.UserGuess, req.ActualProvince)
		resp.UserGuess = req.UserGuess
		resp.UserCorrect = &userCorrect
		round.PlayerAnswer = req.UserGuess
		round.PlayerCorrect = userCorrect
	}

	if err := s.store.AddRound(sessionID, round); err != nil {
		s.logger.Error("failed to persist round", "session", sessionID, "error", err.Error())
	}

	return resp, nil
}

func (s *GameServiceImpl) Simulate(ctx context.Context, mediaURL, sessionID string) (*SimulateResponse, error) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	st, err := s.session(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	st.mu.Lock()
	tier := DifficultyTier(st.threshold)
	st.mu.Unlock()

	result := s.predict(ctx, mediaURL, tier, true)
	return &SimulateResponse{
		MediaURL:     mediaURL,
		AIGuess:      result.ProvinceGuess,
		AIConfidence: result.Confidence,
		Difficulty:   tier,
		AIReasoning:  result.Reasoning,
	}, nil
}

func (s *GameServiceImpl) Threshold(sessionID string) (float64, error) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	st, err := s.session(sessionID)
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.threshold, nil
}

// predict dispatches one oracle call for the media. Failures never become
// errors: the caller always receives a result, possibly the Unknown
// sentinel with Err describing what went wrong.
func (s *GameServiceImpl) predict(ctx context.Context, mediaURL, difficulty string, useReasoning bool) models.LocationGuessResult {
	if mediaURL == "" {
		return models.LocationGuessResult{
			ProvinceGuess: models.UnknownProvince,
			Err:           "no media provided",
		}
	}

	prompt := ai.BuildOriginPrompt(difficulty, useReasoning)

	var raw string
	var err error
	if isVideoURL(mediaURL) {
		raw, err = s.oracle.GenerateWithVideoURL(ctx, prompt, mediaURL)
	} else {
		raw, err = s.predictFromImage(ctx, prompt, mediaURL)
	}
	if err != nil {
		s.logger.Error("province prediction failed", "url", mediaURL, "error", err.Error())
		return models.LocationGuessResult{
			ProvinceGuess: models.UnknownProvince,
			Err:           err.Error(),
		}
	}

	return ai.ParseLocationResponse(raw)
}

func (s *GameServiceImpl) predictFromImage(ctx context.Context, prompt, imageURL string) (string, error) {
	data, err := s.media.FetchImage(ctx, imageURL)
	if err != nil {
		return "", err
	}

	format := "jpeg"
	if optimized, f, err := s.optimizer.OptimizeForAI(data); err == nil {
		data, format = optimized, f
	} else {
		s.logger.Warn("image optimization failed, sending raw bytes", "error", err.Error())
	}

	return s.oracle.GenerateWithImage(ctx, prompt, format, data)
}

var videoExtensions = []string{".mp4", ".webm", ".mov", ".avi", ".mkv"}

// isVideoURL classifies a locator as video-like by host or extension.
func isVideoURL(mediaURL string) bool {
	parsed, err := url.Parse(mediaURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "youtu.be" || host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") {
		return true
	}

	lowerPath := strings.ToLower(parsed.Path)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lowerPath, ext) {
			return true
		}
	}
	return false
}
