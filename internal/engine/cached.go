package engine

import (
	"context"
	"time"

	"github.com/zjrosen/switchboard/internal/cachemanager"
	"github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/log"
)

// CachedBackend fronts an Engine with a read-through cache of scene item
// listings. Every write that can change a scene's items invalidates that
// scene's entry.
type CachedBackend struct {
	*Engine
	items *cachemanager.ReadThroughCache[string, []scenes.BackendItem, string]
	ttl   time.Duration
}

var _ scenes.Backend = (*CachedBackend)(nil)

// NewCachedBackend wraps next. With enabled false every read goes to next.
func NewCachedBackend(next *Engine, cache cachemanager.CacheManager[string, []scenes.BackendItem], ttl time.Duration, enabled bool) *CachedBackend {
	load := func(_ context.Context, sceneName string) ([]scenes.BackendItem, error) {
		return next.SceneItems(sceneName)
	}
	return &CachedBackend{
		Engine: next,
		items:  cachemanager.NewReadThroughCache(cache, load, !enabled),
		ttl:    ttl,
	}
}

// SceneItems returns the cached listing, loading it from the backend on a miss.
func (c *CachedBackend) SceneItems(sceneName string) ([]scenes.BackendItem, error) {
	items, err := c.items.Get(context.Background(), sceneName, sceneName, c.ttl)
	if err != nil {
		return nil, err
	}
	out := make([]scenes.BackendItem, len(items))
	copy(out, items)
	return out, nil
}

func (c *CachedBackend) CreateScene(name string) error {
	c.invalidate(name)
	return c.Engine.CreateScene(name)
}

func (c *CachedBackend) DuplicateScene(name, newName string, mode scenes.DuplicateMode) error {
	c.invalidate(newName)
	return c.Engine.DuplicateScene(name, newName, mode)
}

func (c *CachedBackend) ReleaseScene(name string) error {
	defer c.invalidate(name)
	return c.Engine.ReleaseScene(name)
}

func (c *CachedBackend) AddSceneItem(sceneName, sourceName string, visible bool) (string, error) {
	defer c.invalidate(sceneName)
	return c.Engine.AddSceneItem(sceneName, sourceName, visible)
}

func (c *CachedBackend) RemoveSceneItem(sceneName, itemID string) error {
	defer c.invalidate(sceneName)
	return c.Engine.RemoveSceneItem(sceneName, itemID)
}

// ReleaseInput removes the input from every scene, so all listings are dropped.
func (c *CachedBackend) ReleaseInput(name string) error {
	defer c.invalidateAll()
	return c.Engine.ReleaseInput(name)
}

// Restore replaces the engine state and drops all listings.
func (c *CachedBackend) Restore(snap Snapshot) {
	c.Engine.Restore(snap)
	c.invalidateAll()
}

func (c *CachedBackend) invalidateAll() {
	if err := c.items.InvalidateAll(context.Background()); err != nil {
		log.ErrorErr(log.CatCache, "flushing scene item cache", err)
	}
}

func (c *CachedBackend) invalidate(sceneName string) {
	if err := c.items.Invalidate(context.Background(), sceneName); err != nil {
		log.ErrorErr(log.CatCache, "invalidating scene item cache", err, "scene", sceneName)
	}
}
