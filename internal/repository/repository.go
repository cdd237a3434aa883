package repository

import (
	"database/sql"

	"culturate/internal/models"
)

type Session interface {
	Get(id string) (*models.GameSession, error)
	Create(session models.GameSession) error
	UpdateThreshold(id string, threshold float64) error

	AddRound(sessionID string, round models.RoundOutcome) error
	GetRounds(sessionID string) ([]models.RoundOutcome, error)
}

type Repository struct {
	Session
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Session: NewSessionPostgres(db),
		db:      db,
	}
}
