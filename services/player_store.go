package services

import (
	"context"

	"matchup_server/models"

	"github.com/jmoiron/sqlx"
)

const insertPlayerQuery = `INSERT INTO players (name, elo, avatar) VALUES (?, ?, ?)`

// PlayerStore owns the players table. Rows are append-only: every submission
// creates a fresh player, even when name/elo/avatar repeat.
type PlayerStore struct {
	DB *sqlx.DB
}

// NewPlayerStore creates a PlayerStore on top of the shared pool.
func NewPlayerStore(db *sqlx.DB) *PlayerStore {
	return &PlayerStore{DB: db}
}

// Insert appends one player row and returns the id MySQL assigned to it.
// The executor parameter lets the caller run the insert inside its own
// transaction; pass the store's DB for a standalone write.
func (s *PlayerStore) Insert(ctx context.Context, ex sqlx.ExtContext, player models.Player) (int64, error) {
	result, err := ex.ExecContext(ctx, insertPlayerQuery, player.Name, player.Elo, player.Avatar)
	if err != nil {
		return 0, persistence("player insert", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, persistence("player insert id", err)
	}
	return id, nil
}
