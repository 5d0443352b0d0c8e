package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sceneKey string

type itemList struct {
	Scene string
	IDs   []string
}

func newItemsCache() *InMemoryCacheManager[sceneKey, itemList] {
	return NewInMemoryCacheManager[sceneKey, itemList]("scene-items", DefaultExpiration, DefaultCleanupInterval)
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetStoredStruct(t *testing.T) {
	ctx := context.Background()
	cache := newItemsCache()
	want := itemList{Scene: "Intro", IDs: []string{"1", "2"}}

	cache.Set(ctx, "Intro", want, DefaultExpiration)

	got, ok := cache.Get(ctx, "Intro")
	require.True(t, ok)
	require.Equal(t, want, got)
	require.Equal(t, 1, cache.Len())
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := newItemsCache()

	got, ok := cache.Get(context.Background(), "Intro")
	require.False(t, ok)
	require.Zero(t, got)
}

func TestInMemoryCacheManager_GetWrongType(t *testing.T) {
	cache := newItemsCache()
	cache.cache.Set("Intro", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "Intro")
	require.False(t, ok)
	require.Zero(t, got)
}

func TestInMemoryCacheManager_GetMultiple(t *testing.T) {
	ctx := context.Background()

	t.Run("no keys", func(t *testing.T) {
		got, ok := newItemsCache().GetMultiple(ctx, nil)
		require.False(t, ok)
		require.Nil(t, got)
	})

	t.Run("partial hit", func(t *testing.T) {
		cache := newItemsCache()
		cache.Set(ctx, "Intro", itemList{Scene: "Intro"}, DefaultExpiration)
		cache.Set(ctx, "Outro", itemList{Scene: "Outro"}, DefaultExpiration)
		cache.cache.Set("Broken", "not a list", DefaultExpiration)

		got, ok := cache.GetMultiple(ctx, []sceneKey{"Intro", "Outro", "Broken", "Missing"})
		require.True(t, ok)
		require.Equal(t, map[sceneKey]itemList{
			"Intro": {Scene: "Intro"},
			"Outro": {Scene: "Outro"},
		}, got)
	})

	t.Run("full miss", func(t *testing.T) {
		got, ok := newItemsCache().GetMultiple(ctx, []sceneKey{"Intro", "Outro"})
		require.False(t, ok)
		require.Nil(t, got)
	})
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	ctx := context.Background()
	cache := newItemsCache()

	_, ok := cache.GetWithRefresh(ctx, "Intro", time.Hour)
	require.False(t, ok)

	cache.Set(ctx, "Intro", itemList{Scene: "Intro"}, time.Millisecond)
	got, ok := cache.GetWithRefresh(ctx, "Intro", time.Hour)
	require.True(t, ok)
	require.Equal(t, "Intro", got.Scene)

	time.Sleep(5 * time.Millisecond)
	_, ok = cache.Get(ctx, "Intro")
	require.True(t, ok, "refresh should have extended the ttl")
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := newItemsCache()

	require.NoError(t, cache.Delete(ctx))

	cache.Set(ctx, "Intro", itemList{}, DefaultExpiration)
	cache.Set(ctx, "Outro", itemList{}, DefaultExpiration)

	require.NoError(t, cache.Delete(ctx, "Intro"))
	_, ok := cache.Get(ctx, "Intro")
	require.False(t, ok)
	_, ok = cache.Get(ctx, "Outro")
	require.True(t, ok)

	require.NoError(t, cache.Flush(ctx))
	require.Zero(t, cache.Len())
}
