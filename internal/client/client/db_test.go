package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"goose_db_version", "users", "favorites", "metadata"} {
		require.True(t, tableExists(t, db, table), "table %s must exist", table)
	}
}

func TestInitDatabase_InMemory(t *testing.T) {
	db, err := InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db, "favorites"))
}

func TestInitDatabase_ForeignKeysEnabled(t *testing.T) {
	db, err := InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var on int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	require.Equal(t, 1, on)

	_, err = db.Exec(`INSERT INTO favorites (id, user_id, item_id, item_name, added_at) VALUES ('f1', 'ghost', 1, 'bulbasaur', 1)`)
	require.Error(t, err, "favorite for an unknown user must violate the foreign key")
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.True(t, tableExists(t, db, "users"))
}

func TestWithForeignKeys(t *testing.T) {
	require.Equal(t, "a.db?_pragma=foreign_keys(1)", withForeignKeys("a.db"))
	require.Equal(t, "file:a.db?mode=rwc&_pragma=foreign_keys(1)", withForeignKeys("file:a.db?mode=rwc"))
}
