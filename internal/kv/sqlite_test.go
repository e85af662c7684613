package kv

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:kvtest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE storage (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_GetMissingKey(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	v, err := repo.Get(context.Background(), "auth_token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_SetGetOverwrite(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "auth_token", []byte("tok1")))
	v, err := repo.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok1"), v)

	require.NoError(t, repo.Set(ctx, "auth_token", []byte("tok2")))
	v, err = repo.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok2"), v)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "users", []byte("[]")))
	require.NoError(t, repo.Delete(ctx, "users"))

	v, err := repo.Get(ctx, "users")
	require.NoError(t, err)
	require.Nil(t, v)

	// deleting an absent key is not an error
	require.NoError(t, repo.Delete(ctx, "users"))
}
