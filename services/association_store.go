package services

import (
	"context"
	"fmt"

	"matchup_server/models"

	"github.com/jmoiron/sqlx"
)

// Category names one of the three roster groups a player can belong to within
// a match. Each category is backed by its own relation table.
type Category string

const (
	CategoryFree    Category = "free"
	CategoryTeamOne Category = "team_one"
	CategoryTeamTwo Category = "team_two"
)

// categoryTables maps categories to their relation tables. Table names are
// interpolated into queries, so they must come from this map and never from
// request input.
var categoryTables = map[Category]string{
	CategoryFree:    "free_players",
	CategoryTeamOne: "team_1",
	CategoryTeamTwo: "team_2",
}

// AssociationStore owns the three relation tables mapping match labels to
// player ids. It does not validate that the referenced match or player exist;
// the assembly service sequences writes so that they always do.
type AssociationStore struct {
	DB *sqlx.DB
}

// NewAssociationStore creates an AssociationStore on top of the shared pool.
func NewAssociationStore(db *sqlx.DB) *AssociationStore {
	return &AssociationStore{DB: db}
}

// Insert appends one (match_label, player_id) row to the category's relation
// table, via the caller's executor so it can join a transaction.
func (s *AssociationStore) Insert(ctx context.Context, ex sqlx.ExtContext, category Category, label string, playerID int64) error {
	table, ok := categoryTables[category]
	if !ok {
		return fmt.Errorf("unknown roster category %q", category)
	}
	query := fmt.Sprintf(`INSERT INTO %s (match_label, player_id) VALUES (?, ?)`, table)
	if _, err := ex.ExecContext(ctx, query, label, playerID); err != nil {
		return persistence(string(category)+" association insert", err)
	}
	return nil
}

// ListPlayers returns the category's players for a match, in the order the
// association rows were inserted. An unknown label simply yields an empty list.
func (s *AssociationStore) ListPlayers(ctx context.Context, category Category, label string) ([]models.Player, error) {
	table, ok := categoryTables[category]
	if !ok {
		return nil, fmt.Errorf("unknown roster category %q", category)
	}
	query := fmt.Sprintf(
		`SELECT players.name, players.elo, players.avatar FROM players JOIN %[1]s ON %[1]s.player_id = players.id WHERE %[1]s.match_label = ? ORDER BY %[1]s.id`,
		table,
	)

	players := []models.Player{}
	if err := sqlx.SelectContext(ctx, s.DB, &players, query, label); err != nil {
		return nil, persistence(string(category)+" player listing", err)
	}
	return players, nil
}
