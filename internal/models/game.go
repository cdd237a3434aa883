package models

import "time"

// LocationGuessResult is the parsed outcome of one province prediction.
// A failed prediction is still a result: ProvinceGuess falls back to
// "Unknown", Confidence to 0 and Err carries the cause.
type LocationGuessResult struct {
	ProvinceGuess string `json:"province_guess"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning,omitempty"`
	Err           string  `json:"error,omitempty"`
}

// UnknownProvince is the sentinel guess used whenever the oracle output
// cannot be parsed into a province.
const UnknownProvince = "Unknown"

type GuessRequest struct {
	InputURL       string `json:"input_url" binding:"required"`
	ActualProvince string `json:"actual_province" binding:"required"`
	UserGuess      string `json:"user_guess,omitempty"`
	SessionID      string `json:"session_id,omitempty"`
}

// GameSession carries the per-session difficulty state. The threshold is
// the only cross-request mutable value in the system.
type GameSession struct {
	ID                  string    `json:"session_id"`
	ConfidenceThreshold float64   `json:"confidence_threshold"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// RoundOutcome is one finished game round, both as the match-summary
// request shape and as the persisted history row.
type RoundOutcome struct {
	CorrectAnswer string        `json:"correctAnswer"`
	PlayerAnswer  string        `json:"playerAnswer"`
	PlayerCorrect bool          `json:"playerCorrect"`
	AIGuess       string        `json:"aiGuess,omitempty"`
	AICorrect     bool          `json:"aiCorrect,omitempty"`
	CulturalData  *CulturalData `json:"culturalData,omitempty"`
	CreatedAt     time.Time     `json:"createdAt,omitempty"`
}

type CulturalData struct {
	Category string `json:"cultural_category"`
	Context  string `json:"cultural_context"`
}
