// Package sources tracks the capture sources known to switchboard and keeps
// them in step with the rendering backend's inputs.
package sources

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/log"
)

// ErrSourceNotFound is returned for unknown source ids.
var ErrSourceNotFound = scenes.ErrSourceNotFound

// Backend is the part of the rendering backend that manages inputs.
type Backend interface {
	CreateInput(name, inputType string, hidden bool) error
	ReleaseInput(name string) error
}

// Registry maps source ids to backend inputs.
type Registry struct {
	mu      sync.RWMutex
	backend Backend
	ids     scenes.IDGenerator
	byID    map[string]scenes.Source
	byName  map[string]string
}

var _ scenes.SourceRegistry = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry(backend Backend, ids scenes.IDGenerator) *Registry {
	return &Registry{
		backend: backend,
		ids:     ids,
		byID:    make(map[string]scenes.Source),
		byName:  make(map[string]string),
	}
}

// CreateSource creates the backend input and registers it.
func (r *Registry) CreateSource(name, sourceType string, hidden bool) (scenes.Source, error) {
	if err := r.backend.CreateInput(name, sourceType, hidden); err != nil {
		return scenes.Source{}, fmt.Errorf("creating source %q: %w", name, err)
	}
	src, err := r.register(name, sourceType, hidden)
	if err != nil {
		return scenes.Source{}, err
	}
	log.Debug(log.CatSources, "source created", "id", src.ID, "name", name, "type", sourceType)
	return src, nil
}

// AdoptSource registers an input that already exists on the backend.
// Adopting a name that is already known returns the existing source.
func (r *Registry) AdoptSource(name, sourceType string, hidden bool) (scenes.Source, error) {
	if src, ok := r.GetSourceByName(name); ok {
		return src, nil
	}
	src, err := r.register(name, sourceType, hidden)
	if err != nil {
		return scenes.Source{}, err
	}
	log.Debug(log.CatSources, "source adopted", "id", src.ID, "name", name)
	return src, nil
}

func (r *Registry) register(name, sourceType string, hidden bool) (scenes.Source, error) {
	id, err := r.ids.GenerateUniqueID()
	if err != nil {
		return scenes.Source{}, fmt.Errorf("allocating source id for %q: %w", name, err)
	}
	src := scenes.Source{ID: id, Name: name, Type: sourceType, Hidden: hidden}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id] = src
	r.byName[name] = id
	return src, nil
}

// GetSource looks a source up by id.
func (r *Registry) GetSource(id string) (scenes.Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.byID[id]
	return src, ok
}

// GetSourceByName looks a source up by backend input name.
func (r *Registry) GetSourceByName(name string) (scenes.Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return scenes.Source{}, false
	}
	return r.byID[id], true
}

// RemoveSource releases the backend input and forgets the source.
func (r *Registry) RemoveSource(id string) error {
	r.mu.Lock()
	src, ok := r.byID[id]
	if ok {
		delete(r.byID, id)
		delete(r.byName, src.Name)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("removing source %q: %w", id, ErrSourceNotFound)
	}
	if err := r.backend.ReleaseInput(src.Name); err != nil {
		return fmt.Errorf("releasing input %q: %w", src.Name, err)
	}
	log.Debug(log.CatSources, "source removed", "id", id, "name", src.Name)
	return nil
}

// Reset forgets every source. Backend inputs are kept.
func (r *Registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.byID)
	r.byID = make(map[string]scenes.Source)
	r.byName = make(map[string]string)
	log.Debug(log.CatSources, "registry reset", "forgotten", n)
	return nil
}

// List returns every source sorted by name.
func (r *Registry) List() []scenes.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]scenes.Source, 0, len(r.byID))
	for _, src := range r.byID {
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
