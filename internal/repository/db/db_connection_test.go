package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesUsersTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")

	conn, err := InitDB(DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var name string
	err = conn.Get(&name, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'users'`)
	require.NoError(t, err)
	assert.Equal(t, "users", name)

	var cols []struct {
		CID       int     `db:"cid"`
		Name      string  `db:"name"`
		Type      string  `db:"type"`
		NotNull   int     `db:"notnull"`
		DfltValue *string `db:"dflt_value"`
		PK        int     `db:"pk"`
	}
	require.NoError(t, conn.Select(&cols, `PRAGMA table_info(users)`))
	require.Len(t, cols, 3)
	assert.Equal(t, "id", cols[0].Name)
	assert.Equal(t, 1, cols[0].PK)
	assert.Equal(t, "name", cols[1].Name)
	assert.Equal(t, "email", cols[2].Name)
}

func TestInitDB_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")

	first, err := InitDB("", path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO users (name, email) VALUES (?, ?)`, "Alice", "a@example.com")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := InitDB(DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	var count int
	require.NoError(t, second.Get(&count, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 1, count)
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, err := InitDB("postgres", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported sqlite driver")
}
