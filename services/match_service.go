package services

import (
	"context"
	"fmt"

	"matchup_server/models"
	"matchup_server/utils"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// maxLabelAttempts bounds how often a create retries with a fresh label after
// a unique-key collision on the matches table.
const maxLabelAttempts = 5

// MatchService orchestrates the stores to create and reconstruct matches. It
// is the only place the cross-table consistency of a match is enforced: the
// whole write sequence of a create runs in one transaction, so a match is
// either fully present with all its players or absent.
type MatchService struct {
	DB           *sqlx.DB
	Matches      *MatchStore
	Players      *PlayerStore
	Associations *AssociationStore

	newLabel func() string
}

// NewMatchService wires a MatchService and its stores onto the shared pool.
func NewMatchService(db *sqlx.DB) *MatchService {
	return &MatchService{
		DB:           db,
		Matches:      NewMatchStore(db),
		Players:      NewPlayerStore(db),
		Associations: NewAssociationStore(db),
		newLabel:     utils.GenerateLabel,
	}
}

// CreateMatch persists a submitted roster under a freshly generated label and
// returns the match view echoing the submitted lists. The header, player and
// association inserts are a single transaction; any failure rolls the whole
// match back. A duplicate-label rejection is retried with a new label up to
// maxLabelAttempts times before surfacing as a PersistenceError.
func (s *MatchService) CreateMatch(ctx context.Context, roster models.Roster) (models.Match, error) {
	roster = normalizeRoster(roster)

	for attempt := 1; attempt <= maxLabelAttempts; attempt++ {
		label := s.newLabel()

		err := s.writeMatch(ctx, label, roster)
		if err == nil {
			return models.Match{
				Label:   label,
				Players: roster.Players,
				TeamOne: roster.TeamOne,
				TeamTwo: roster.TeamTwo,
			}, nil
		}
		if IsDuplicateLabel(err) && attempt < maxLabelAttempts {
			logrus.WithFields(logrus.Fields{"label": label, "attempt": attempt}).
				Warn("Match label collided, retrying with a fresh one")
			continue
		}
		return models.Match{}, err
	}
	return models.Match{}, fmt.Errorf("unreachable: label retry loop exhausted")
}

// writeMatch runs the full write sequence for one label inside a transaction.
func (s *MatchService) writeMatch(ctx context.Context, label string, roster models.Roster) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return persistence("transaction begin", err)
	}

	if err := s.Matches.Insert(ctx, tx, label); err != nil {
		tx.Rollback()
		return err
	}

	groups := []struct {
		category Category
		players  []models.Player
	}{
		{CategoryFree, roster.Players},
		{CategoryTeamOne, roster.TeamOne},
		{CategoryTeamTwo, roster.TeamTwo},
	}
	for _, group := range groups {
		for _, player := range group.players {
			playerID, err := s.Players.Insert(ctx, tx, player)
			if err != nil {
				tx.Rollback()
				return err
			}
			if err := s.Associations.Insert(ctx, tx, group.category, label, playerID); err != nil {
				tx.Rollback()
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return persistence("transaction commit", err)
	}
	return nil
}

// GetMatch reconstructs the match view for a label from the four tables.
// Returns ErrMatchNotFound when no match carries the label.
func (s *MatchService) GetMatch(ctx context.Context, label string) (models.Match, error) {
	exists, err := s.Matches.Exists(ctx, label)
	if err != nil {
		return models.Match{}, err
	}
	if !exists {
		logrus.WithField("label", label).Info("Match not found")
		return models.Match{}, ErrMatchNotFound
	}

	free, err := s.Associations.ListPlayers(ctx, CategoryFree, label)
	if err != nil {
		return models.Match{}, err
	}
	teamOne, err := s.Associations.ListPlayers(ctx, CategoryTeamOne, label)
	if err != nil {
		return models.Match{}, err
	}
	teamTwo, err := s.Associations.ListPlayers(ctx, CategoryTeamTwo, label)
	if err != nil {
		return models.Match{}, err
	}

	return models.Match{
		Label:   label,
		Players: free,
		TeamOne: teamOne,
		TeamTwo: teamTwo,
	}, nil
}

// normalizeRoster replaces nil lists with empty ones so the echoed view
// serializes them as [] rather than null.
func normalizeRoster(roster models.Roster) models.Roster {
	if roster.Players == nil {
		roster.Players = []models.Player{}
	}
	if roster.TeamOne == nil {
		roster.TeamOne = []models.Player{}
	}
	if roster.TeamTwo == nil {
		roster.TeamTwo = []models.Player{}
	}
	return roster
}
