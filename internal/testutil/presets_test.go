package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreset_StandardCollection(t *testing.T) {
	db := NewTestDB(t)
	defer func() { _ = db.Close() }()

	b := NewBuilder(t).WithStandardCollection()
	b.Insert(db)

	rows, err := db.Query(`SELECT name FROM scenes ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, []string{"Main", "BRB", "Starting Soon"}, names)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM inputs`).Scan(&count))
	require.Equal(t, 3, count, "expected 3 inputs")

	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM scene_items`).Scan(&count))
	require.Equal(t, 4, count, "expected 4 items")

	var visible bool
	require.NoError(t, db.QueryRow(`SELECT visible FROM scene_items WHERE scene_name = 'BRB'`).Scan(&visible))
	require.False(t, visible)

	snap := b.Snapshot()
	require.Equal(t, "Main", snap.CurrentScene)
	require.Len(t, snap.Scenes[0].Items, 3)
	require.Empty(t, snap.Scenes[2].Items)
}

func TestPreset_SharedSourceCollection(t *testing.T) {
	e := NewBuilder(t).WithSharedSourceCollection().Engine()

	first, err := e.SceneItems("Scene")
	require.NoError(t, err)
	second, err := e.SceneItems("Scene 2")
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	for i := range first {
		require.Equal(t, first[i].SourceName, second[i].SourceName)
		require.NotEqual(t, first[i].ID, second[i].ID)
	}
	require.Equal(t, "Scene 2", e.CurrentScene())
}
