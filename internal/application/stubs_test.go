package application

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"culturate/internal/models"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

// stubOracle routes calls to overridable funcs and records every call.
type stubOracle struct {
	mu         sync.Mutex
	textFunc   func(prompt string) (string, error)
	imageFunc  func(prompt, format string, data []byte) (string, error)
	videoFunc  func(prompt, videoURL string) (string, error)
	textCalls  int
	imageCalls int
	videoCalls int
}

func (o *stubOracle) Generate(_ context.Context, prompt string) (string, error) {
	o.mu.Lock()
	o.textCalls++
	o.mu.Unlock()
	if o.textFunc == nil {
		return "", nil
	}
	return o.textFunc(prompt)
}

func (o *stubOracle) GenerateWithImage(_ context.Context, prompt, format string, data []byte) (string, error) {
	o.mu.Lock()
	o.imageCalls++
	o.mu.Unlock()
	if o.imageFunc == nil {
		return "", nil
	}
	return o.imageFunc(prompt, format, data)
}

func (o *stubOracle) GenerateWithVideoURL(_ context.Context, prompt, videoURL string) (string, error) {
	o.mu.Lock()
	o.videoCalls++
	o.mu.Unlock()
	if o.videoFunc == nil {
		return "", nil
	}
	return o.videoFunc(prompt, videoURL)
}

// memStore is an in-memory repository.Session.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]models.GameSession
	rounds   map[string][]models.RoundOutcome
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[string]models.GameSession),
		rounds:   make(map[string][]models.RoundOutcome),
	}
}

func (m *memStore) Get(id string) (*models.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *memStore) Create(session models.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[session.ID]; !ok {
		session.CreatedAt = time.Now()
		m.sessions[session.ID] = session
	}
	return nil
}

func (m *memStore) UpdateThreshold(id string, threshold float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.ConfidenceThreshold = threshold
	s.UpdatedAt = time.Now()
	m.sessions[id] = s
	return nil
}

func (m *memStore) AddRound(sessionID string, round models.RoundOutcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[sessionID] = append(m.rounds[sessionID], round)
	return nil
}

func (m *memStore) GetRounds(sessionID string) ([]models.RoundOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rounds[sessionID], nil
}

// stubScraper is a MediaScraper with overridable funcs; cleanups are
// recorded for artifact-lifetime assertions.
type stubScraper struct {
	mu           sync.Mutex
	searchFunc   func(query string, maxResults int) ([]string, error)
	extractFunc  func(filePageURL string) (string, error)
	downloadFunc func(imageURL, province, query string) (string, error)
	fetchFunc    func(imageURL string) ([]byte, error)
	cleanupFunc  func(localPath string) error
	searchCalls  int
	cleanups     []string
}

func (s *stubScraper) SearchCommons(_ context.Context, query string, maxResults int) ([]string, error) {
	s.mu.Lock()
	s.searchCalls++
	s.mu.Unlock()
	if s.searchFunc == nil {
		return nil, nil
	}
	return s.searchFunc(query, maxResults)
}

func (s *stubScraper) ExtractImageURL(_ context.Context, filePageURL string) (string, error) {
	if s.extractFunc == nil {
		return "", nil
	}
	return s.extractFunc(filePageURL)
}

func (s *stubScraper) Download(_ context.Context, imageURL, province, query string) (string, error) {
	if s.downloadFunc == nil {
		return "", nil
	}
	return s.downloadFunc(imageURL, province, query)
}

func (s *stubScraper) FetchImage(_ context.Context, imageURL string) ([]byte, error) {
	if s.fetchFunc == nil {
		return []byte("fake-image"), nil
	}
	return s.fetchFunc(imageURL)
}

func (s *stubScraper) Cleanup(localPath string) error {
	s.mu.Lock()
	s.cleanups = append(s.cleanups, localPath)
	s.mu.Unlock()
	if s.cleanupFunc == nil {
		return nil
	}
	return s.cleanupFunc(localPath)
}

type stubVideos struct {
	mu          sync.Mutex
	searchFunc  func(query string, maxResults int64) ([]models.VideoInfo, error)
	searchCalls int
}

func (v *stubVideos) Search(_ context.Context, query string, maxResults int64) ([]models.VideoInfo, error) {
	v.mu.Lock()
	v.searchCalls++
	v.mu.Unlock()
	if v.searchFunc == nil {
		return nil, nil
	}
	return v.searchFunc(query, maxResults)
}

// passthroughOptimizer keeps payload bytes untouched.
type passthroughOptimizer struct{}

func (passthroughOptimizer) OptimizeForAI(data []byte) ([]byte, string, error) {
	return data, "jpeg", nil
}
