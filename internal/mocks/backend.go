package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/switchboard/internal/domain/scenes"
)

// MockBackend is a testify mock of scenes.Backend.
type MockBackend struct {
	mock.Mock
}

var _ scenes.Backend = (*MockBackend)(nil)

// NewMockBackend creates a MockBackend bound to t.
func NewMockBackend(t T) *MockBackend {
	m := &MockBackend{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *MockBackend) CreateScene(name string) error {
	return m.Called(name).Error(0)
}

func (m *MockBackend) DuplicateScene(name, newName string, mode scenes.DuplicateMode) error {
	return m.Called(name, newName, mode).Error(0)
}

func (m *MockBackend) ReleaseScene(name string) error {
	return m.Called(name).Error(0)
}

func (m *MockBackend) SetCurrentScene(name string) error {
	return m.Called(name).Error(0)
}

func (m *MockBackend) ListCurrentSceneNames() ([]string, error) {
	args := m.Called()
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockBackend) SetSceneNameTabs(names []string) error {
	return m.Called(names).Error(0)
}

func (m *MockBackend) SceneItems(sceneName string) ([]scenes.BackendItem, error) {
	args := m.Called(sceneName)
	items, _ := args.Get(0).([]scenes.BackendItem)
	return items, args.Error(1)
}

func (m *MockBackend) AddSceneItem(sceneName, sourceName string, visible bool) (string, error) {
	args := m.Called(sceneName, sourceName, visible)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) RemoveSceneItem(sceneName, itemID string) error {
	return m.Called(sceneName, itemID).Error(0)
}
