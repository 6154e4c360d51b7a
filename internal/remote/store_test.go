package remote

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mindease/internal/models"
)

func TestMoodInsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMoodRepository(db)

	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+moods\s*\(user_id,\s*mood_level,\s*note,\s*sentiment_score,\s*ai_tags,\s*ai_response\).*RETURNING\s+id,\s*created_at$`).
		WithArgs("u-1", 2, "rough day at work", 30.0, `["Drained"]`, "Rest up.").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("m-1", at))

	got, err := repo.Insert(context.Background(), models.MoodLog{
		UserID:         "u-1",
		MoodLevel:      2,
		Note:           "rough day at work",
		SentimentScore: ptr(30.0),
		AITags:         []string{"Drained"},
		AIResponse:     "Rest up.",
	})
	require.NoError(t, err)
	assert.Equal(t, "m-1", got.ID)
	assert.Equal(t, at, got.CreatedAt)
}

func TestMoodInsert_NoAnalysis(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMoodRepository(db)

	mock.ExpectQuery(`INSERT\s+INTO\s+moods`).
		WithArgs("u-1", 4, "", nil, `[]`, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("m-2", time.Now()))

	_, err := repo.Insert(context.Background(), models.MoodLog{UserID: "u-1", MoodLevel: 4})
	require.NoError(t, err)
}

func TestStore_DeleteUserData_CommitsAll(t *testing.T) {
	db, mock := newMock(t)
	s := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE\s+FROM\s+journal_entries`).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE\s+FROM\s+moods`).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+profiles`).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.DeleteUserData(context.Background(), "u-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteUserData_RollsBack(t *testing.T) {
	db, mock := newMock(t)
	s := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE\s+FROM\s+journal_entries`).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE\s+FROM\s+moods`).WithArgs("u-1").WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	require.Error(t, s.DeleteUserData(context.Background(), "u-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("offline"))

	s := NewStore(db)
	require.NoError(t, s.Ping(context.Background()))
	require.Error(t, s.Ping(context.Background()))
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestRunMigrations_UsesGoose(t *testing.T) {
	db, _ := newMock(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, d *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, RunMigrations(context.Background(), db))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(ctx context.Context, d *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("bad migration")
	}
	err := RunMigrations(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to migrate cloud schema")
}
