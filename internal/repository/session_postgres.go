package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"culturate/internal/models"
)

type SessionPostgres struct {
	db *sql.DB
}

func NewSessionPostgres(db *sql.DB) *SessionPostgres {
	return &SessionPostgres{db: db}
}

func (r *SessionPostgres) Get(id string) (*models.GameSession, error) {
	var s models.GameSession
	query := "SELECT id, confidence_threshold, created_at, updated_at FROM game_sessions WHERE id = $1"
	err := r.db.QueryRow(query, id).Scan(&s.ID, &s.ConfidenceThreshold, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

func (r *SessionPostgres) Create(session models.GameSession) error {
	query := `INSERT INTO game_sessions (id, confidence_threshold) VALUES ($1, $2)
              ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.Exec(query, session.ID, session.ConfidenceThreshold); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionPostgres) UpdateThreshold(id string, threshold float64) error {
	query := "UPDATE game_sessions SET confidence_threshold = $2, updated_at = NOW() WHERE id = $1"
	res, err := r.db.Exec(query, id, threshold)
	if err != nil {
		return fmt.Errorf("failed to update session threshold: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SessionPostgres) AddRound(sessionID string, round models.RoundOutcome) error {
	var culturalData []byte
	if round.CulturalData != nil {
		var err error
		culturalData, err = json.Marshal(round.CulturalData)
		if err != nil {
			return fmt.Errorf("failed to marshal cultural data: %w", err)
		}
	}

	query := `INSERT INTO game_rounds (session_id, correct_answer, player_answer, player_correct, ai_guess, ai_correct, cultural_data)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(query, sessionID, round.CorrectAnswer, round.PlayerAnswer, round.PlayerCorrect,
		round.AIGuess, round.AICorrect, culturalData)
	if err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}
	return nil
}

func (r *SessionPostgres) GetRounds(sessionID string) ([]models.RoundOutcome, error) {
	query := `SELECT correct_answer, player_answer, player_correct, ai_guess, ai_correct, cultural_data, created_at
              FROM game_rounds WHERE session_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []models.RoundOutcome
	for rows.Next() {
		var round models.RoundOutcome
		var culturalData []byte
		if err := rows.Scan(&round.CorrectAnswer, &round.PlayerAnswer, &round.PlayerCorrect,
			&round.AIGuess, &round.AICorrect, &culturalData, &round.CreatedAt); err != nil {
			continue
		}
		if len(culturalData) > 0 {
			var cd models.CulturalData
			if err := json.Unmarshal(culturalData, &cd); err == nil {
				round.CulturalData = &cd
			}
		}
		rounds = append(rounds, round)
	}
	return rounds, rows.Err()
}
