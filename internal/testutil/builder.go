package testutil

import (
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/switchboard/internal/engine"
)

// Builder accumulates a collection and materializes it as an engine
// snapshot, a live engine, or database rows.
type Builder struct {
	t       *testing.T
	inputs  []inputData
	scenes  []sceneData
	current string
	savedAt time.Time
	nextID  int
}

// NewBuilder creates an empty collection builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t, savedAt: time.Unix(0, 0).UTC()}
}

// WithInput adds a backend input with optional configuration.
func (b *Builder) WithInput(name string, opts ...InputOption) *Builder {
	in := defaultInput(name)
	for _, opt := range opts {
		opt(&in)
	}
	b.inputs = append(b.inputs, in)
	return b
}

// WithScene adds a scene holding items in the given order. The first scene
// added becomes current unless Current is called.
func (b *Builder) WithScene(name string, items ...ItemSpec) *Builder {
	sc := sceneData{name: name}
	for _, spec := range items {
		it := itemData{input: spec.input, visible: true}
		for _, opt := range spec.opts {
			opt(&it)
		}
		if it.id == "" {
			b.nextID++
			it.id = strconv.Itoa(b.nextID)
		}
		sc.items = append(sc.items, it)
	}
	b.scenes = append(b.scenes, sc)
	if b.current == "" {
		b.current = name
	}
	return b
}

// Current sets the current program scene.
func (b *Builder) Current(name string) *Builder {
	b.current = name
	return b
}

// SavedAt sets the timestamp written by Insert.
func (b *Builder) SavedAt(at time.Time) *Builder {
	b.savedAt = at
	return b
}

// Snapshot returns the accumulated collection as an engine snapshot.
func (b *Builder) Snapshot() engine.Snapshot {
	snap := engine.Snapshot{CurrentScene: b.current}
	for _, in := range b.inputs {
		snap.Inputs = append(snap.Inputs, engine.Input{Name: in.name, Type: in.inputType, Hidden: in.hidden})
	}
	for i, sc := range b.scenes {
		st := engine.SceneState{Name: sc.name, Position: i}
		for _, it := range sc.items {
			st.Items = append(st.Items, engine.Item{ID: it.id, InputName: it.input, Visible: it.visible})
		}
		snap.Scenes = append(snap.Scenes, st)
	}
	return snap
}

// Engine returns a new engine restored from the accumulated collection.
func (b *Builder) Engine() *engine.Engine {
	b.t.Helper()
	e := engine.New()
	e.Restore(b.Snapshot())
	return e
}

// Insert writes the accumulated collection into db.
func (b *Builder) Insert(db *sql.DB) {
	b.t.Helper()
	// Insert in dependency order: inputs → scenes → items → meta
	for _, in := range b.inputs {
		b.insertInput(db, in)
	}
	for i, sc := range b.scenes {
		b.insertScene(db, sc.name, i)
		for pos, it := range sc.items {
			b.insertItem(db, sc.name, it, pos)
		}
	}
	b.insertMeta(db)
}

func (b *Builder) insertInput(db *sql.DB, in inputData) {
	b.t.Helper()
	_, err := db.Exec(
		`INSERT INTO inputs (name, input_type, hidden) VALUES (?, ?, ?)`,
		in.name, in.inputType, in.hidden,
	)
	require.NoError(b.t, err)
}

func (b *Builder) insertScene(db *sql.DB, name string, position int) {
	b.t.Helper()
	_, err := db.Exec(`INSERT INTO scenes (name, position) VALUES (?, ?)`, name, position)
	require.NoError(b.t, err)
}

func (b *Builder) insertItem(db *sql.DB, scene string, it itemData, position int) {
	b.t.Helper()
	_, err := db.Exec(
		`INSERT INTO scene_items (scene_name, item_id, input_name, visible, position) VALUES (?, ?, ?, ?, ?)`,
		scene, it.id, it.input, it.visible, position,
	)
	require.NoError(b.t, err)
}

func (b *Builder) insertMeta(db *sql.DB) {
	b.t.Helper()
	_, err := db.Exec(
		`INSERT OR REPLACE INTO collection_meta (id, current_scene, saved_at) VALUES (1, ?, ?)`,
		b.current, b.savedAt.Unix(),
	)
	require.NoError(b.t, err)
}
