package scenes

import "errors"

// Errors shared by the store, the application layer and the source registry.
var (
	ErrSceneNotFound  = errors.New("scene not found")
	ErrItemNotFound   = errors.New("scene item not found")
	ErrSourceNotFound = errors.New("source not found")
	ErrSceneNameTaken = errors.New("scene name already in use")
)

// SceneItem is an instance of a source placed in a scene.
type SceneItem struct {
	ID       string // assigned by the rendering backend
	SourceID string
	Hidden   bool // mirrors the source's hidden flag
	Visible  bool
}

// SceneRecord is the stored form of a scene.
type SceneRecord struct {
	ID           string
	Name         string
	Items        []SceneItem
	ActiveItemID string
}

// Item returns the item with the given id.
func (r SceneRecord) Item(itemID string) (SceneItem, bool) {
	for _, it := range r.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return SceneItem{}, false
}

// VisibleItems returns the items, excluding hidden ones unless showHidden is set.
func (r SceneRecord) VisibleItems(showHidden bool) []SceneItem {
	out := make([]SceneItem, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Hidden && !showHidden {
			continue
		}
		out = append(out, it)
	}
	return out
}

// ReferencesSource reports whether any item, hidden included, points at sourceID.
func (r SceneRecord) ReferencesSource(sourceID string) bool {
	for _, it := range r.Items {
		if it.SourceID == sourceID {
			return true
		}
	}
	return false
}

func (r SceneRecord) clone() SceneRecord {
	c := r
	c.Items = append([]SceneItem(nil), r.Items...)
	return c
}
