package device

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "device.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_MigratesSchema(t *testing.T) {
	db := openTestDB(t)
	assert.True(t, tableExists(t, db, "kv"))
	assert.True(t, tableExists(t, db, "goose_db_version"))

	require.NoError(t, RunMigrations(context.Background(), db), "migrations must be idempotent")
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"sqlite": NewSQLiteStore(openTestDB(t)),
		"memory": NewMemoryStore(),
	}
}

func TestStore_SetGetOverwrite(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.Set(ctx, KeySessionToken, []byte("old")))
			require.NoError(t, s.Set(ctx, KeySessionToken, []byte("new")))

			v, err := s.Get(ctx, KeySessionToken)
			require.NoError(t, err)
			assert.Equal(t, []byte("new"), v)
		})
	}
}

func TestStore_MissingKeyIsNilNil(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v, err := s.Get(context.Background(), "absent")
			require.NoError(t, err)
			assert.Nil(t, v)
		})
	}
}

func TestStore_DeleteAndClear(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "a", []byte("1")))
			require.NoError(t, s.Set(ctx, "b", []byte("2")))

			require.NoError(t, s.Delete(ctx, "a"))
			require.NoError(t, s.Delete(ctx, "a"))
			v, err := s.Get(ctx, "a")
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, s.Clear(ctx))
			v, err = s.Get(ctx, "b")
			require.NoError(t, err)
			assert.Nil(t, v)
		})
	}
}
