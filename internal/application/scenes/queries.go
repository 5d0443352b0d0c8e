package scenes

import (
	domain "github.com/zjrosen/switchboard/internal/domain/scenes"
)

// GetSceneByID returns a copy of the scene's state.
func (s *Service) GetSceneByID(id string) (domain.SceneRecord, bool) {
	return s.store.Scene(id)
}

// GetScene returns a handle for id, or nil when it does not exist.
func (s *Service) GetScene(id string) *Scene {
	if !s.store.Has(id) {
		return nil
	}
	return &Scene{svc: s, id: id}
}

// GetSceneByName returns the first scene in display order named name, or nil.
func (s *Service) GetSceneByName(name string) *Scene {
	for _, id := range s.store.IDs() {
		if rec, ok := s.store.Scene(id); ok && rec.Name == name {
			return &Scene{svc: s, id: id}
		}
	}
	return nil
}

// Scenes returns handles for every scene in display order.
func (s *Service) Scenes() []*Scene {
	ids := s.store.IDs()
	out := make([]*Scene, 0, len(ids))
	for _, id := range ids {
		out = append(out, &Scene{svc: s, id: id})
	}
	return out
}

// GetSourceScenes returns the scenes, in display order, with at least one
// item (hidden included) referencing sourceID.
func (s *Service) GetSourceScenes(sourceID string) []*Scene {
	var out []*Scene
	for _, id := range s.store.IDs() {
		if rec, ok := s.store.Scene(id); ok && rec.ReferencesSource(sourceID) {
			out = append(out, &Scene{svc: s, id: id})
		}
	}
	return out
}

// ActiveSceneID returns the active scene id, empty when there are no scenes.
func (s *Service) ActiveSceneID() string {
	return s.store.ActiveSceneID()
}

// ActiveScene returns the active scene handle, or nil.
func (s *Service) ActiveScene() *Scene {
	return s.GetScene(s.store.ActiveSceneID())
}

// Snapshot returns a copy of the registry state.
func (s *Service) Snapshot() domain.State {
	return s.store.Snapshot()
}

// Version returns the number of store transitions applied.
func (s *Service) Version() uint64 {
	return s.store.Version()
}
