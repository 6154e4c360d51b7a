package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mindease/internal/dbx"
	"github.com/dmitrijs2005/mindease/internal/models"
)

// ProfileRepository stores one profile row per user.
type ProfileRepository struct {
	db dbx.DBTX
}

func NewProfileRepository(db dbx.DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns ErrNotFound when the user has no profile row yet.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	query :=
		`SELECT id, name, streak_count, last_check_in FROM profiles
		 WHERE id = $1`

	var (
		p    models.UserProfile
		name sql.NullString
		last sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.ID, &name, &p.StreakCount, &last)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if name.Valid {
		p.Name = &name.String
	}
	if last.Valid {
		p.LastCheckIn = &last.Time
	}
	return &p, nil
}

// Insert creates the bootstrap row {id, name: null, streak_count: 0}.
func (r *ProfileRepository) Insert(ctx context.Context, userID string) (*models.UserProfile, error) {
	query :=
		`INSERT INTO profiles (id, name, streak_count)
		 VALUES ($1, NULL, 0)
		 ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &models.UserProfile{ID: userID}, nil
}

// UpdateStreak persists the streak counter and last check-in instant.
func (r *ProfileRepository) UpdateStreak(ctx context.Context, userID string, count int, lastCheckIn time.Time) error {
	query :=
		`UPDATE profiles SET streak_count = $2, last_check_in = $3
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, userID, count, lastCheckIn.UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertName sets the display name, creating the row if needed.
func (r *ProfileRepository) UpsertName(ctx context.Context, userID, name string) error {
	query :=
		`INSERT INTO profiles (id, name, streak_count)
		 VALUES ($1, $2, 0)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`

	if _, err := r.db.ExecContext(ctx, query, userID, name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
