package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/switchboard/internal/collection"
	"github.com/zjrosen/switchboard/internal/engine"
)

// setupTestRepo creates a new DB and returns its collection repository.
// The DB is closed when the test completes.
func setupTestRepo(t *testing.T) collection.Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db.CollectionRepository()
}

func sampleCollection() collection.Collection {
	return collection.Collection{
		Snapshot: engine.Snapshot{
			Scenes: []engine.SceneState{
				{Name: "Main", Position: 0, Items: []engine.Item{
					{ID: "1", InputName: "Mic/Aux", Visible: true},
					{ID: "2", InputName: "Desktop Audio", Visible: false},
				}},
				{Name: "BRB", Position: 1},
			},
			Inputs: []engine.Input{
				{Name: "Desktop Audio", Type: "wasapi_output_capture", Hidden: true},
				{Name: "Mic/Aux", Type: "wasapi_input_capture", Hidden: true},
			},
			CurrentScene: "BRB",
		},
		SavedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCollectionRepository_LoadEmpty(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, collection.ErrNotFound)
}

func TestCollectionRepository_SaveLoad(t *testing.T) {
	repo := setupTestRepo(t)
	want := sampleCollection()

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCollectionRepository_SaveReplaces(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleCollection()))

	next := collection.Collection{
		Snapshot: engine.Snapshot{
			Scenes:       []engine.SceneState{{Name: "Only", Position: 0}},
			CurrentScene: "Only",
		},
		SavedAt: time.Date(2025, 3, 2, 8, 30, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, next))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, next, got)
}

func TestCollectionRepository_ItemOrderPreserved(t *testing.T) {
	repo := setupTestRepo(t)
	c := sampleCollection()
	// Item ids that sort differently from their position.
	c.Snapshot.Scenes[0].Items = []engine.Item{
		{ID: "9", InputName: "Mic/Aux", Visible: true},
		{ID: "10", InputName: "Desktop Audio", Visible: true},
	}
	require.NoError(t, repo.Save(context.Background(), c))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, c.Snapshot.Scenes[0].Items, got.Snapshot.Scenes[0].Items)
}

func TestCollectionRepository_SaveRejectsUnknownInput(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleCollection()))

	bad := sampleCollection()
	bad.Snapshot.Scenes[1].Items = []engine.Item{{ID: "3", InputName: "Ghost", Visible: true}}
	require.Error(t, repo.Save(ctx, bad), "foreign keys reject items without an input")

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, sampleCollection(), got, "failed save leaves the previous collection")
}

func TestCollectionRepository_CanceledContext(t *testing.T) {
	repo := setupTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, repo.Save(ctx, sampleCollection()))
}

func TestCollectionRepository_LoadDuringSaves(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	a := sampleCollection()
	b := collection.Collection{
		Snapshot: engine.Snapshot{
			Scenes: []engine.SceneState{
				{Name: "Live", Position: 0, Items: []engine.Item{{ID: "7", InputName: "Camera", Visible: true}}},
			},
			Inputs:       []engine.Input{{Name: "Camera", Type: "dshow_input"}},
			CurrentScene: "Live",
		},
		SavedAt: time.Date(2025, 3, 2, 8, 30, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, a))

	const rounds = 40
	saveErr := make(chan error, 1)
	go func() {
		for i := 0; i < rounds; i++ {
			next := a
			if i%2 == 0 {
				next = b
			}
			if err := repo.Save(ctx, next); err != nil {
				saveErr <- err
				return
			}
		}
		saveErr <- nil
	}()

	for i := 0; i < rounds; i++ {
		got, err := repo.Load(ctx)
		require.NoError(t, err)
		if got.SavedAt.Equal(a.SavedAt) {
			require.Equal(t, a, got, "load %d mixes two saves", i)
		} else {
			require.Equal(t, b, got, "load %d mixes two saves", i)
		}
	}
	require.NoError(t, <-saveErr)
}

func TestCollectionRepository_LoadCanceledContext(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, repo.Save(context.Background(), sampleCollection()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Load(ctx)
	require.Error(t, err)
}

// TestProperty_CollectionRoundTrip saves generated collections and checks
// that Load returns them unchanged.
func TestProperty_CollectionRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)

	rapid.Check(t, func(t *rapid.T) {
		nInputs := rapid.IntRange(0, 5).Draw(t, "inputs")
		var inputs []engine.Input
		var inputNames []string
		for i := 0; i < nInputs; i++ {
			name := fmt.Sprintf("input-%d", i)
			inputNames = append(inputNames, name)
			inputs = append(inputs, engine.Input{
				Name:   name,
				Type:   rapid.SampledFrom([]string{"wasapi_input_capture", "wasapi_output_capture", "dshow_input"}).Draw(t, "type"),
				Hidden: rapid.Bool().Draw(t, "hidden"),
			})
		}

		nScenes := rapid.IntRange(0, 5).Draw(t, "scenes")
		var states []engine.SceneState
		itemID := 0
		for i := 0; i < nScenes; i++ {
			st := engine.SceneState{Name: fmt.Sprintf("scene-%d", i), Position: i}
			if len(inputNames) > 0 {
				nItems := rapid.IntRange(0, 4).Draw(t, "items")
				for j := 0; j < nItems; j++ {
					itemID++
					st.Items = append(st.Items, engine.Item{
						ID:        fmt.Sprint(itemID),
						InputName: rapid.SampledFrom(inputNames).Draw(t, "input"),
						Visible:   rapid.Bool().Draw(t, "visible"),
					})
				}
			}
			states = append(states, st)
		}

		current := ""
		if len(states) > 0 {
			current = states[rapid.IntRange(0, len(states)-1).Draw(t, "current")].Name
		}

		want := collection.Collection{
			Snapshot: engine.Snapshot{Scenes: states, Inputs: inputs, CurrentScene: current},
			SavedAt:  time.Unix(rapid.Int64Range(0, 4_000_000_000).Draw(t, "saved_at"), 0).UTC(),
		}

		require.NoError(t, repo.Save(context.Background(), want))
		got, err := repo.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, want, got)
	})
}
