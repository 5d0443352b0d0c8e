package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a testify mock of cachemanager.CacheManager.
type MockCacheManager[K comparable, V any] struct {
	mock.Mock
}

// NewMockCacheManager creates a mock that asserts its expectations on test cleanup.
func NewMockCacheManager[K comparable, V any](t T) *MockCacheManager[K, V] {
	m := &MockCacheManager[K, V]{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *MockCacheManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	args := m.Called(ctx, key)
	v, _ := args.Get(0).(V)
	return v, args.Bool(1)
}

func (m *MockCacheManager[K, V]) GetMultiple(ctx context.Context, keys []K) (map[K]V, bool) {
	args := m.Called(ctx, keys)
	v, _ := args.Get(0).(map[K]V)
	return v, args.Bool(1)
}

func (m *MockCacheManager[K, V]) GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	args := m.Called(ctx, key, ttl)
	v, _ := args.Get(0).(V)
	return v, args.Bool(1)
}

func (m *MockCacheManager[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *MockCacheManager[K, V]) Delete(ctx context.Context, keys ...K) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheManager[K, V]) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
