package scenes

import (
	"fmt"

	domain "github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/log"
)

// Scene is a live handle on one scene of a Service.
type Scene struct {
	svc *Service
	id  string
}

// ID returns the scene id.
func (sc *Scene) ID() string { return sc.id }

// Name returns the scene name, empty once the scene is gone.
func (sc *Scene) Name() string {
	rec, _ := sc.svc.store.Scene(sc.id)
	return rec.Name
}

// Exists reports whether the scene is still in the registry.
func (sc *Scene) Exists() bool { return sc.svc.store.Has(sc.id) }

// Items returns the scene's items. Hidden items are included only with showHidden.
func (sc *Scene) Items(showHidden bool) []domain.SceneItem {
	rec, _ := sc.svc.store.Scene(sc.id)
	return rec.VisibleItems(showHidden)
}

// Item returns one item by id.
func (sc *Scene) Item(itemID string) (domain.SceneItem, bool) {
	rec, _ := sc.svc.store.Scene(sc.id)
	return rec.Item(itemID)
}

// ActiveItemID returns the selected item, empty when none is.
func (sc *Scene) ActiveItemID() string {
	rec, _ := sc.svc.store.Scene(sc.id)
	return rec.ActiveItemID
}

// AddSource places a registered source in the scene.
func (sc *Scene) AddSource(sourceID string) (domain.SceneItem, error) {
	rec, ok := sc.svc.store.Scene(sc.id)
	if !ok {
		return domain.SceneItem{}, fmt.Errorf("adding source to %q: %w", sc.id, domain.ErrSceneNotFound)
	}
	src, ok := sc.svc.sources.GetSource(sourceID)
	if !ok {
		return domain.SceneItem{}, fmt.Errorf("adding source %q: %w", sourceID, domain.ErrSourceNotFound)
	}

	itemID, err := sc.svc.backend.AddSceneItem(rec.Name, src.Name, true)
	if err != nil {
		return domain.SceneItem{}, fmt.Errorf("adding %q to scene %q: %w", src.Name, rec.Name, err)
	}

	item := domain.SceneItem{ID: itemID, SourceID: src.ID, Hidden: src.Hidden, Visible: true}
	if err := sc.svc.store.AddItem(sc.id, item); err != nil {
		return domain.SceneItem{}, err
	}
	sc.svc.emitItem(ItemAdded, sc.id, item)
	log.Debug(log.CatScenes, "source added", "scene", rec.Name, "source", src.Name, "item", itemID)
	return item, nil
}

// RemoveItem deletes an item. When no scene references the item's source
// any more, the source is removed from the source registry.
func (sc *Scene) RemoveItem(itemID string) error {
	rec, ok := sc.svc.store.Scene(sc.id)
	if !ok {
		return fmt.Errorf("removing item from %q: %w", sc.id, domain.ErrSceneNotFound)
	}
	if _, ok := rec.Item(itemID); !ok {
		return fmt.Errorf("removing item %q from %q: %w", itemID, rec.Name, domain.ErrItemNotFound)
	}

	if err := sc.svc.backend.RemoveSceneItem(rec.Name, itemID); err != nil {
		return fmt.Errorf("removing item %q from scene %q: %w", itemID, rec.Name, err)
	}
	removed, err := sc.svc.store.RemoveItem(sc.id, itemID)
	if err != nil {
		return err
	}
	sc.svc.emitItem(ItemRemoved, sc.id, removed)

	if len(sc.svc.GetSourceScenes(removed.SourceID)) == 0 {
		if err := sc.svc.sources.RemoveSource(removed.SourceID); err != nil {
			return fmt.Errorf("releasing orphaned source %q: %w", removed.SourceID, err)
		}
		log.Debug(log.CatScenes, "orphaned source released", "source", removed.SourceID)
	}
	return nil
}

// MakeItemActive selects an item. An empty itemID clears the selection.
func (sc *Scene) MakeItemActive(itemID string) error {
	return sc.svc.store.MakeItemActive(sc.id, itemID)
}

// LoadConfig re-derives the scene's items from the backend. Backend inputs
// unknown to the source registry are adopted by name.
func (sc *Scene) LoadConfig() error {
	rec, ok := sc.svc.store.Scene(sc.id)
	if !ok {
		return fmt.Errorf("loading scene %q: %w", sc.id, domain.ErrSceneNotFound)
	}

	backendItems, err := sc.svc.backend.SceneItems(rec.Name)
	if err != nil {
		return fmt.Errorf("listing items of scene %q: %w", rec.Name, err)
	}

	items := make([]domain.SceneItem, 0, len(backendItems))
	for _, bi := range backendItems {
		src, ok := sc.svc.sources.GetSourceByName(bi.SourceName)
		if !ok {
			src, err = sc.svc.sources.AdoptSource(bi.SourceName, bi.SourceType, bi.SourceHidden)
			if err != nil {
				return fmt.Errorf("adopting source %q: %w", bi.SourceName, err)
			}
		}
		items = append(items, domain.SceneItem{
			ID:       bi.ID,
			SourceID: src.ID,
			Hidden:   src.Hidden,
			Visible:  bi.Visible,
		})
	}

	return sc.svc.store.ReplaceItems(sc.id, items)
}
