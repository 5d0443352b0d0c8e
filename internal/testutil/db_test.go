package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTestDB_CreatesSchema(t *testing.T) {
	db := NewTestDB(t)
	defer func() { _ = db.Close() }()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('inputs', 'scenes', 'scene_items', 'collection_meta')`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 4, count, "expected 4 tables")
}

func TestNewTestDB_TablesEmpty(t *testing.T) {
	db := NewTestDB(t)
	defer func() { _ = db.Close() }()

	for _, table := range []string{"inputs", "scenes", "scene_items", "collection_meta"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		require.NoError(t, err, "table %s should be queryable", table)
		require.Zero(t, count, "table %s should start empty", table)
	}
}

func TestNewTestDB_ForeignKeys(t *testing.T) {
	db := NewTestDB(t)
	defer func() { _ = db.Close() }()

	_, err := db.Exec(`INSERT INTO scenes (name, position) VALUES ('Main', 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO scene_items (scene_name, item_id, input_name, visible, position) VALUES ('Main', '1', 'Ghost', 1, 0)`)
	require.Error(t, err, "items must reference an existing input")
}
