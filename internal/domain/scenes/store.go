package scenes

import (
	"fmt"
	"slices"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithObserver registers an observer notified after every transition.
func WithObserver(o Observer) StoreOption {
	return func(s *Store) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// Store holds the scene registry state.
// It is not safe for concurrent use.
type Store struct {
	scenes    map[string]*SceneRecord
	order     []string
	active    string
	version   uint64
	observers []Observer
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		scenes: make(map[string]*SceneRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset clears the active id, the display order and all scenes.
func (s *Store) Reset() {
	s.active = ""
	s.order = nil
	s.scenes = make(map[string]*SceneRecord)
	s.commit(Mutation{Kind: MutationReset})
}

// AddScene inserts an empty scene and appends it to the display order.
// The new scene becomes active only when no scene is active yet.
func (s *Store) AddScene(id, name string) {
	s.scenes[id] = &SceneRecord{ID: id, Name: name}
	s.order = append(s.order, id)
	if s.active == "" {
		s.active = id
	}
	s.commit(Mutation{Kind: MutationAddScene, SceneID: id, Name: name})
}

// RemoveScene deletes the scene and the first matching id from the display order.
// The active pointer is left alone; the caller picks a successor.
func (s *Store) RemoveScene(id string) {
	delete(s.scenes, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.commit(Mutation{Kind: MutationRemoveScene, SceneID: id})
}

// MakeActive sets the active scene id. Existence is the caller's concern.
func (s *Store) MakeActive(id string) {
	s.active = id
	s.commit(Mutation{Kind: MutationMakeActive, SceneID: id})
}

// SetOrder replaces the display order. The order is not re-validated.
func (s *Store) SetOrder(order []string) {
	s.order = slices.Clone(order)
	s.commit(Mutation{Kind: MutationSetOrder, Order: slices.Clone(order)})
}

// AddItem appends an item to a scene.
func (s *Store) AddItem(sceneID string, item SceneItem) error {
	rec, ok := s.scenes[sceneID]
	if !ok {
		return fmt.Errorf("adding item %q: %w", item.ID, ErrSceneNotFound)
	}
	rec.Items = append(rec.Items, item)
	added := item
	s.commit(Mutation{Kind: MutationAddItem, SceneID: sceneID, Item: &added})
	return nil
}

// RemoveItem deletes an item from a scene and returns it.
// Removing the active item clears the scene's active item.
func (s *Store) RemoveItem(sceneID, itemID string) (SceneItem, error) {
	rec, ok := s.scenes[sceneID]
	if !ok {
		return SceneItem{}, fmt.Errorf("removing item %q: %w", itemID, ErrSceneNotFound)
	}
	i := slices.IndexFunc(rec.Items, func(it SceneItem) bool { return it.ID == itemID })
	if i < 0 {
		return SceneItem{}, fmt.Errorf("removing item %q from scene %q: %w", itemID, sceneID, ErrItemNotFound)
	}
	removed := rec.Items[i]
	rec.Items = slices.Delete(rec.Items, i, i+1)
	if rec.ActiveItemID == itemID {
		rec.ActiveItemID = ""
	}
	s.commit(Mutation{Kind: MutationRemoveItem, SceneID: sceneID, ItemID: itemID, Item: &removed})
	return removed, nil
}

// ReplaceItems swaps a scene's item list wholesale. The active item is kept
// only if it is still present.
func (s *Store) ReplaceItems(sceneID string, items []SceneItem) error {
	rec, ok := s.scenes[sceneID]
	if !ok {
		return fmt.Errorf("replacing items: %w", ErrSceneNotFound)
	}
	rec.Items = slices.Clone(items)
	if _, found := rec.Item(rec.ActiveItemID); !found {
		rec.ActiveItemID = ""
	}
	s.commit(Mutation{Kind: MutationReplaceItems, SceneID: sceneID, Items: slices.Clone(items)})
	return nil
}

// MakeItemActive selects an item in a scene. An empty itemID clears the selection.
func (s *Store) MakeItemActive(sceneID, itemID string) error {
	rec, ok := s.scenes[sceneID]
	if !ok {
		return fmt.Errorf("selecting item %q: %w", itemID, ErrSceneNotFound)
	}
	if itemID != "" {
		if _, found := rec.Item(itemID); !found {
			return fmt.Errorf("selecting item %q in scene %q: %w", itemID, sceneID, ErrItemNotFound)
		}
	}
	rec.ActiveItemID = itemID
	s.commit(Mutation{Kind: MutationMakeItemActive, SceneID: sceneID, ItemID: itemID})
	return nil
}

func (s *Store) commit(m Mutation) {
	s.version++
	m.Version = s.version
	for _, o := range s.observers {
		o(m)
	}
}

// Scene returns a copy of the scene record.
func (s *Store) Scene(id string) (SceneRecord, bool) {
	rec, ok := s.scenes[id]
	if !ok {
		return SceneRecord{}, false
	}
	return rec.clone(), true
}

// Has reports whether a scene with the given id exists.
func (s *Store) Has(id string) bool {
	_, ok := s.scenes[id]
	return ok
}

// Len returns the number of scenes.
func (s *Store) Len() int { return len(s.scenes) }

// IDs returns the scene ids in display order.
func (s *Store) IDs() []string { return slices.Clone(s.order) }

// DisplayOrder is an alias of IDs.
func (s *Store) DisplayOrder() []string { return s.IDs() }

// ActiveSceneID returns the active scene id, empty when there is none.
func (s *Store) ActiveSceneID() string { return s.active }

// Version returns the number of transitions applied so far.
func (s *Store) Version() uint64 { return s.version }

// Snapshot returns a deep copy of the registry state.
func (s *Store) Snapshot() State {
	st := State{
		Scenes:        make(map[string]SceneRecord, len(s.scenes)),
		DisplayOrder:  slices.Clone(s.order),
		ActiveSceneID: s.active,
		Version:       s.version,
	}
	for id, rec := range s.scenes {
		st.Scenes[id] = rec.clone()
	}
	return st
}
