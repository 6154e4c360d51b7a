package remote

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileSelect = `(?s)^SELECT\s+id,\s*name,\s*streak_count,\s*last_check_in\s+FROM\s+profiles\s+WHERE\s+id\s*=\s*\$1$`

func TestProfileGet_Found(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	last := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	mock.ExpectQuery(profileSelect).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "streak_count", "last_check_in"}).AddRow("u-1", "Asha", 4, last))

	p, err := repo.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.ID)
	assert.Equal(t, "Asha", *p.Name)
	assert.Equal(t, 4, p.StreakCount)
	assert.True(t, last.Equal(*p.LastCheckIn))
}

func TestProfileGet_NullColumns(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(profileSelect).
		WithArgs("u-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "streak_count", "last_check_in"}).AddRow("u-2", nil, 0, nil))

	p, err := repo.Get(context.Background(), "u-2")
	require.NoError(t, err)
	assert.Nil(t, p.Name)
	assert.Nil(t, p.LastCheckIn)
}

func TestProfileGet_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(profileSelect).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	_, err := repo.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery(profileSelect).WithArgs("u-1").WillReturnError(errors.New("db err"))
	_, err = repo.Get(context.Background(), "u-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestProfileInsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+profiles\s*\(id,\s*name,\s*streak_count\)\s*VALUES\s*\(\$1,\s*NULL,\s*0\)\s*ON\s+CONFLICT\s*\(id\)\s*DO\s+NOTHING$`).
		WithArgs("u-3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	p, err := repo.Insert(context.Background(), "u-3")
	require.NoError(t, err)
	assert.Equal(t, "u-3", p.ID)
	assert.Nil(t, p.Name)
	assert.Zero(t, p.StreakCount)
	assert.Nil(t, p.LastCheckIn)
}

func TestProfileUpdateStreak(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	at := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	q := `(?s)^UPDATE\s+profiles\s+SET\s+streak_count\s*=\s*\$2,\s*last_check_in\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$1$`

	mock.ExpectExec(q).WithArgs("u-1", 5, at).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStreak(context.Background(), "u-1", 5, at))

	mock.ExpectExec(q).WithArgs("ghost", 1, at).WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.UpdateStreak(context.Background(), "ghost", 1, at), ErrNotFound)

	mock.ExpectExec(q).WillReturnError(errors.New("db err"))
	require.Error(t, repo.UpdateStreak(context.Background(), "u-1", 1, at))
}

func TestProfileUpsertNameAndDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+profiles.*ON\s+CONFLICT\s*\(id\)\s*DO\s+UPDATE\s+SET\s+name\s*=\s*EXCLUDED\.name`).
		WithArgs("u-1", "Asha").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpsertName(context.Background(), "u-1", "Asha"))

	mock.ExpectExec(`^DELETE\s+FROM\s+profiles\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "u-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
