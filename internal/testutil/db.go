// Package testutil provides fixtures for collection databases and engines.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/switchboard/internal/infrastructure/sqlite"
)

// NewTestDB creates an in-memory SQLite database migrated to the current
// collection schema. The pool is limited to one connection so every query
// sees the same in-memory database. The caller is responsible for closing it.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, sqlite.Migrate(db))
	return db
}
