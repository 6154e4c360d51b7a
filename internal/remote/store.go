package remote

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mindease/internal/dbx"
)

// Store groups the cloud repositories over one connection pool.
type Store struct {
	db       *sql.DB
	Journal  *JournalRepository
	Profiles *ProfileRepository
	Moods    *MoodRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		Journal:  NewJournalRepository(db),
		Profiles: NewProfileRepository(db),
		Moods:    NewMoodRepository(db),
	}
}

// Ping reports whether the cloud store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DeleteUserData removes every row owned by userID in one transaction:
// journal entries, mood logs, then the profile.
func (s *Store) DeleteUserData(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := NewJournalRepository(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := NewMoodRepository(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return NewProfileRepository(tx).Delete(ctx, userID)
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
