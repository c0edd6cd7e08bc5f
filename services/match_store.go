package services

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const (
	insertMatchQuery = `INSERT INTO matches (label) VALUES (?)`
	matchExistsQuery = `SELECT COUNT(*) FROM matches WHERE label = ?`
)

// mysqlDuplicateEntry is the server errno for a unique-key violation.
const mysqlDuplicateEntry = 1062

// MatchStore owns the matches table, one row per match, keyed by label.
type MatchStore struct {
	DB *sqlx.DB
}

// NewMatchStore creates a MatchStore on top of the shared pool.
func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{DB: db}
}

// Insert appends the match header row. The label is assumed fresh; a
// concurrent creation that picked the same label surfaces here as a
// duplicate-key PersistenceError, which IsDuplicateLabel recognizes.
func (s *MatchStore) Insert(ctx context.Context, ex sqlx.ExtContext, label string) error {
	if _, err := ex.ExecContext(ctx, insertMatchQuery, label); err != nil {
		return persistence("match insert", err)
	}
	return nil
}

// Exists reports whether a match row with the given label is present.
func (s *MatchStore) Exists(ctx context.Context, label string) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, s.DB, &count, matchExistsQuery, label); err != nil {
		return false, persistence("match lookup", err)
	}
	return count > 0, nil
}

// IsDuplicateLabel reports whether err is a unique-key rejection of the match
// label, the signal that label generation collided with an existing match.
func IsDuplicateLabel(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
