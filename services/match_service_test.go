package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"matchup_server/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, labels ...string) (*MatchService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	svc := NewMatchService(db)
	if len(labels) > 0 {
		next := 0
		svc.newLabel = func() string {
			label := labels[next]
			if next < len(labels)-1 {
				next++
			}
			return label
		}
	}
	return svc, mock
}

func duplicateEntry() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'abcd' for key 'PRIMARY'"}
}

func TestCreateMatchWritesAllTablesInOneTransaction(t *testing.T) {
	svc, mock := newTestService(t, "abcd")

	boAvatar := "url"
	roster := models.Roster{
		Players: []models.Player{{Name: "Ann", Elo: 1200}},
		TeamTwo: []models.Player{{Name: "Bo", Elo: 1500, Avatar: &boAvatar}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertMatchQuery)).
		WithArgs("abcd").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertPlayerQuery)).
		WithArgs("Ann", int32(1200), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO free_players`).
		WithArgs("abcd", int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertPlayerQuery)).
		WithArgs("Bo", int32(1500), &boAvatar).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(`INSERT INTO team_2`).
		WithArgs("abcd", int64(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	match, err := svc.CreateMatch(context.Background(), roster)
	require.NoError(t, err)
	assert.Equal(t, "abcd", match.Label)
	assert.Equal(t, roster.Players, match.Players)
	assert.Empty(t, match.TeamOne)
	assert.Equal(t, roster.TeamTwo, match.TeamTwo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMatchEmptyRoster(t *testing.T) {
	svc, mock := newTestService(t, "wxyz")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertMatchQuery)).
		WithArgs("wxyz").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	match, err := svc.CreateMatch(context.Background(), models.Roster{})
	require.NoError(t, err)
	assert.Equal(t, "wxyz", match.Label)
	assert.NotNil(t, match.Players)
	assert.NotNil(t, match.TeamOne)
	assert.NotNil(t, match.TeamTwo)
	assert.Empty(t, match.Players)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMatchRetriesOnLabelCollision(t *testing.T) {
	svc, mock := newTestService(t, "abcd", "efgh")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertMatchQuery)).
		WithArgs("abcd").
		WillReturnError(duplicateEntry())
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertMatchQuery)).
		WithArgs("efgh").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	match, err := svc.CreateMatch(context.Background(), models.Roster{})
	require.NoError(t, err)
	assert.Equal(t, "efgh", match.Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMatchGivesUpAfterBoundedRetries(t *testing.T) {
	svc, mock := newTestService(t, "abcd")

	for i := 0; i < maxLabelAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertMatchQuery)).
			WithArgs("abcd").
			WillReturnError(duplicateEntry())
		mock.ExpectRollback()
	}

	_, err := svc.CreateMatch(context.Background(), models.Roster{})
	require.Error(t, err)
	assert.True(t, IsDuplicateLabel(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMatchRollsBackOnPlayerFailure(t *testing.T) {
	svc, mock := newTestService(t, "abcd")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertMatchQuery)).
		WithArgs("abcd").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertPlayerQuery)).
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	_, err := svc.CreateMatch(context.Background(), models.Roster{
		Players: []models.Player{{Name: "Ann", Elo: 1200}},
	})
	require.Error(t, err)

	var pe *PersistenceError
	assert.True(t, errors.As(err, &pe))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMatchNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(matchExistsQuery)).
		WithArgs("none").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.GetMatch(context.Background(), "none")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func expectGetMatch(mock sqlmock.Sqlmock, label string) {
	mock.ExpectQuery(regexp.QuoteMeta(matchExistsQuery)).
		WithArgs(label).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`JOIN free_players`).
		WithArgs(label).
		WillReturnRows(sqlmock.NewRows([]string{"name", "elo", "avatar"}).AddRow("Ann", 1200, nil))
	mock.ExpectQuery(`JOIN team_1`).
		WithArgs(label).
		WillReturnRows(sqlmock.NewRows([]string{"name", "elo", "avatar"}))
	mock.ExpectQuery(`JOIN team_2`).
		WithArgs(label).
		WillReturnRows(sqlmock.NewRows([]string{"name", "elo", "avatar"}).AddRow("Bo", 1500, "url"))
}

func TestGetMatchAssemblesCategoriesSeparately(t *testing.T) {
	svc, mock := newTestService(t)

	expectGetMatch(mock, "abcd")

	match, err := svc.GetMatch(context.Background(), "abcd")
	require.NoError(t, err)
	assert.Equal(t, "abcd", match.Label)
	require.Len(t, match.Players, 1)
	assert.Equal(t, "Ann", match.Players[0].Name)
	assert.Empty(t, match.TeamOne)
	require.Len(t, match.TeamTwo, 1)
	assert.Equal(t, "Bo", match.TeamTwo[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMatchIsIdempotent(t *testing.T) {
	svc, mock := newTestService(t)

	expectGetMatch(mock, "abcd")
	expectGetMatch(mock, "abcd")

	first, err := svc.GetMatch(context.Background(), "abcd")
	require.NoError(t, err)
	second, err := svc.GetMatch(context.Background(), "abcd")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
