// Package engine is an in-process rendering backend.
//
// It owns the scene graph the scene registry synchronizes with: scenes
// addressed by name, inputs (capture sources) addressed by name, and scene
// items placing an input in a scene. The scene-name tab order and the
// current program scene are kept alongside. Engine is safe for concurrent use.
package engine

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/log"
)

// Engine errors
var (
	ErrSceneExists   = errors.New("scene already exists")
	ErrSceneNotFound = errors.New("scene not found")
	ErrInputExists   = errors.New("input already exists")
	ErrInputNotFound = errors.New("input not found")
	ErrItemNotFound  = errors.New("scene item not found")
)

// Input is a capture source living on the backend.
type Input struct {
	Name   string
	Type   string
	Hidden bool
}

// Item places an input in a scene.
type Item struct {
	ID        string
	InputName string
	Visible   bool
}

type scene struct {
	name  string
	items []Item
}

// Engine is the in-process scene graph.
type Engine struct {
	mu         sync.Mutex
	scenes     map[string]*scene
	created    []string // scene names in creation order
	tabs       []string
	inputs     map[string]Input
	current    string
	nextItemID int
}

var _ scenes.Backend = (*Engine)(nil)

// New creates an empty engine.
func New() *Engine {
	return &Engine{
		scenes: make(map[string]*scene),
		inputs: make(map[string]Input),
	}
}

// CreateScene adds an empty scene.
func (e *Engine) CreateScene(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.scenes[name]; ok {
		return fmt.Errorf("creating scene %q: %w", name, ErrSceneExists)
	}
	e.scenes[name] = &scene{name: name}
	e.created = append(e.created, name)
	log.Debug(log.CatEngine, "scene created", "scene", name)
	return nil
}

// DuplicateScene creates newName with the items of name. In DuplicateRefs
// mode the new items share inputs; in DuplicateCopy mode each input is
// copied under a name suffixed with the new scene's name.
func (e *Engine) DuplicateScene(name, newName string, mode scenes.DuplicateMode) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.scenes[name]
	if !ok {
		return fmt.Errorf("duplicating scene %q: %w", name, ErrSceneNotFound)
	}
	if _, exists := e.scenes[newName]; exists {
		return fmt.Errorf("duplicating scene %q as %q: %w", name, newName, ErrSceneExists)
	}

	dup := &scene{name: newName, items: make([]Item, 0, len(src.items))}
	for _, it := range src.items {
		inputName := it.InputName
		if mode == scenes.DuplicateCopy {
			in := e.inputs[it.InputName]
			in.Name = fmt.Sprintf("%s (%s)", it.InputName, newName)
			if _, taken := e.inputs[in.Name]; !taken {
				e.inputs[in.Name] = in
			}
			inputName = in.Name
		}
		dup.items = append(dup.items, Item{ID: e.allocItemID(), InputName: inputName, Visible: it.Visible})
	}

	e.scenes[newName] = dup
	e.created = append(e.created, newName)
	log.Debug(log.CatEngine, "scene duplicated", "from", name, "to", newName, "mode", mode, "items", len(dup.items))
	return nil
}

// ReleaseScene destroys a scene and its items. Inputs are left alone.
func (e *Engine) ReleaseScene(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.scenes[name]; !ok {
		return fmt.Errorf("releasing scene %q: %w", name, ErrSceneNotFound)
	}
	delete(e.scenes, name)
	e.created = slices.DeleteFunc(e.created, func(n string) bool { return n == name })
	e.tabs = slices.DeleteFunc(e.tabs, func(n string) bool { return n == name })
	if e.current == name {
		e.current = ""
	}
	log.Debug(log.CatEngine, "scene released", "scene", name)
	return nil
}

// SetCurrentScene sets the scene sent to program output.
func (e *Engine) SetCurrentScene(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.scenes[name]; !ok {
		return fmt.Errorf("switching to scene %q: %w", name, ErrSceneNotFound)
	}
	e.current = name
	return nil
}

// CurrentScene returns the program scene name, empty when none is set.
func (e *Engine) CurrentScene() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// ListCurrentSceneNames returns scene names in tab order, followed by any
// scene missing from the tabs in creation order.
func (e *Engine) ListCurrentSceneNames() ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listNames(), nil
}

func (e *Engine) listNames() []string {
	names := make([]string, 0, len(e.scenes))
	seen := make(map[string]bool, len(e.scenes))
	for _, n := range e.tabs {
		if _, ok := e.scenes[n]; ok && !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}
	for _, n := range e.created {
		if !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}
	return names
}

// SetSceneNameTabs records the display order of scene names.
func (e *Engine) SetSceneNameTabs(names []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tabs = slices.Clone(names)
	return nil
}

// SceneItems lists the items of a scene with their input details.
func (e *Engine) SceneItems(sceneName string) ([]scenes.BackendItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sc, ok := e.scenes[sceneName]
	if !ok {
		return nil, fmt.Errorf("listing items of %q: %w", sceneName, ErrSceneNotFound)
	}
	out := make([]scenes.BackendItem, 0, len(sc.items))
	for _, it := range sc.items {
		in := e.inputs[it.InputName]
		out = append(out, scenes.BackendItem{
			ID:           it.ID,
			SourceName:   it.InputName,
			SourceType:   in.Type,
			SourceHidden: in.Hidden,
			Visible:      it.Visible,
		})
	}
	return out, nil
}

// AddSceneItem places an existing input in a scene and returns the new item id.
func (e *Engine) AddSceneItem(sceneName, sourceName string, visible bool) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sc, ok := e.scenes[sceneName]
	if !ok {
		return "", fmt.Errorf("adding %q to %q: %w", sourceName, sceneName, ErrSceneNotFound)
	}
	if _, ok := e.inputs[sourceName]; !ok {
		return "", fmt.Errorf("adding %q to %q: %w", sourceName, sceneName, ErrInputNotFound)
	}
	id := e.allocItemID()
	sc.items = append(sc.items, Item{ID: id, InputName: sourceName, Visible: visible})
	return id, nil
}

// RemoveSceneItem deletes an item from a scene.
func (e *Engine) RemoveSceneItem(sceneName, itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sc, ok := e.scenes[sceneName]
	if !ok {
		return fmt.Errorf("removing item %q: %w", itemID, ErrSceneNotFound)
	}
	i := slices.IndexFunc(sc.items, func(it Item) bool { return it.ID == itemID })
	if i < 0 {
		return fmt.Errorf("removing item %q from %q: %w", itemID, sceneName, ErrItemNotFound)
	}
	sc.items = slices.Delete(sc.items, i, i+1)
	return nil
}

// CreateInput registers a new input.
func (e *Engine) CreateInput(name, inputType string, hidden bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.inputs[name]; ok {
		return fmt.Errorf("creating input %q: %w", name, ErrInputExists)
	}
	e.inputs[name] = Input{Name: name, Type: inputType, Hidden: hidden}
	log.Debug(log.CatEngine, "input created", "input", name, "type", inputType, "hidden", hidden)
	return nil
}

// ReleaseInput destroys an input and every item that uses it.
func (e *Engine) ReleaseInput(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.inputs[name]; !ok {
		return fmt.Errorf("releasing input %q: %w", name, ErrInputNotFound)
	}
	delete(e.inputs, name)
	for _, sc := range e.scenes {
		sc.items = slices.DeleteFunc(sc.items, func(it Item) bool { return it.InputName == name })
	}
	log.Debug(log.CatEngine, "input released", "input", name)
	return nil
}

// Input looks an input up by name.
func (e *Engine) Input(name string) (Input, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	in, ok := e.inputs[name]
	return in, ok
}

// caller holds e.mu
func (e *Engine) allocItemID() string {
	e.nextItemID++
	return strconv.Itoa(e.nextItemID)
}
