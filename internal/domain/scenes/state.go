package scenes

import (
	"errors"
	"fmt"
)

// Invariant violations reported by State.Validate.
var (
	ErrActiveMissing   = errors.New("active scene is not in the registry")
	ErrActiveUnset     = errors.New("registry has scenes but no active scene")
	ErrOrderMismatch   = errors.New("display order does not match scene ids")
	ErrOrderDuplicated = errors.New("display order contains a duplicate id")
)

// State is a point-in-time copy of the registry.
type State struct {
	Scenes        map[string]SceneRecord
	DisplayOrder  []string
	ActiveSceneID string
	Version       uint64
}

// Names returns the scene names in display order.
func (st State) Names() []string {
	names := make([]string, 0, len(st.DisplayOrder))
	for _, id := range st.DisplayOrder {
		if rec, ok := st.Scenes[id]; ok {
			names = append(names, rec.Name)
		}
	}
	return names
}

// Validate checks the registry invariants.
func (st State) Validate() error {
	if st.ActiveSceneID == "" {
		if len(st.Scenes) > 0 {
			return ErrActiveUnset
		}
	} else if _, ok := st.Scenes[st.ActiveSceneID]; !ok {
		return fmt.Errorf("%w: %s", ErrActiveMissing, st.ActiveSceneID)
	}

	if len(st.DisplayOrder) != len(st.Scenes) {
		return fmt.Errorf("%w: %d ids in order, %d scenes", ErrOrderMismatch, len(st.DisplayOrder), len(st.Scenes))
	}
	seen := make(map[string]bool, len(st.DisplayOrder))
	for _, id := range st.DisplayOrder {
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrOrderDuplicated, id)
		}
		seen[id] = true
		if _, ok := st.Scenes[id]; !ok {
			return fmt.Errorf("%w: unknown id %s", ErrOrderMismatch, id)
		}
	}
	return nil
}
