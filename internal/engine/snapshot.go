package engine

import (
	"slices"
	"sort"
	"strconv"
)

// SceneState is the persisted form of one scene.
type SceneState struct {
	Name     string
	Position int
	Items    []Item
}

// Snapshot is the complete engine state, as saved to and restored from a collection.
type Snapshot struct {
	Scenes       []SceneState // in listing order
	Inputs       []Input      // sorted by name
	CurrentScene string
}

// Snapshot captures the engine state. Scenes are returned in the order
// ListCurrentSceneNames reports them.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{CurrentScene: e.current}
	for i, name := range e.listNames() {
		sc := e.scenes[name]
		snap.Scenes = append(snap.Scenes, SceneState{
			Name:     name,
			Position: i,
			Items:    slices.Clone(sc.items),
		})
	}
	for _, in := range e.inputs {
		snap.Inputs = append(snap.Inputs, in)
	}
	sort.Slice(snap.Inputs, func(i, j int) bool { return snap.Inputs[i].Name < snap.Inputs[j].Name })
	return snap
}

// Restore replaces the engine state with snap. Scene positions define both
// the creation order and the tabs. Item ids keep counting past the highest
// numeric id restored.
func (e *Engine) Restore(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ordered := slices.Clone(snap.Scenes)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	e.scenes = make(map[string]*scene, len(ordered))
	e.created = e.created[:0]
	e.tabs = nil
	e.inputs = make(map[string]Input, len(snap.Inputs))
	e.nextItemID = 0

	for _, in := range snap.Inputs {
		e.inputs[in.Name] = in
	}
	for _, st := range ordered {
		e.scenes[st.Name] = &scene{name: st.Name, items: slices.Clone(st.Items)}
		e.created = append(e.created, st.Name)
		e.tabs = append(e.tabs, st.Name)
		for _, it := range st.Items {
			if n, err := strconv.Atoi(it.ID); err == nil && n > e.nextItemID {
				e.nextItemID = n
			}
		}
	}

	e.current = ""
	if _, ok := e.scenes[snap.CurrentScene]; ok {
		e.current = snap.CurrentScene
	}
}
