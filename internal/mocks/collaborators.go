package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/switchboard/internal/domain/scenes"
)

// MockSourceRegistry is a testify mock of scenes.SourceRegistry.
type MockSourceRegistry struct {
	mock.Mock
}

var _ scenes.SourceRegistry = (*MockSourceRegistry)(nil)

// NewMockSourceRegistry creates a MockSourceRegistry bound to t.
func NewMockSourceRegistry(t T) *MockSourceRegistry {
	m := &MockSourceRegistry{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *MockSourceRegistry) CreateSource(name, sourceType string, hidden bool) (scenes.Source, error) {
	args := m.Called(name, sourceType, hidden)
	src, _ := args.Get(0).(scenes.Source)
	return src, args.Error(1)
}

func (m *MockSourceRegistry) GetSource(id string) (scenes.Source, bool) {
	args := m.Called(id)
	src, _ := args.Get(0).(scenes.Source)
	return src, args.Bool(1)
}

func (m *MockSourceRegistry) GetSourceByName(name string) (scenes.Source, bool) {
	args := m.Called(name)
	src, _ := args.Get(0).(scenes.Source)
	return src, args.Bool(1)
}

func (m *MockSourceRegistry) AdoptSource(name, sourceType string, hidden bool) (scenes.Source, error) {
	args := m.Called(name, sourceType, hidden)
	src, _ := args.Get(0).(scenes.Source)
	return src, args.Error(1)
}

func (m *MockSourceRegistry) RemoveSource(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockSourceRegistry) Reset() error {
	return m.Called().Error(0)
}

// MockSaver is a testify mock of scenes.Saver.
type MockSaver struct {
	mock.Mock
}

// NewMockSaver creates a MockSaver bound to t.
func NewMockSaver(t T) *MockSaver {
	m := &MockSaver{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *MockSaver) Save() error {
	return m.Called().Error(0)
}

// MockAlerter is a testify mock of scenes.Alerter.
type MockAlerter struct {
	mock.Mock
}

// NewMockAlerter creates a MockAlerter bound to t.
func NewMockAlerter(t T) *MockAlerter {
	m := &MockAlerter{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *MockAlerter) Alert(msg string) {
	m.Called(msg)
}

// MockIDGenerator is a testify mock of scenes.IDGenerator.
type MockIDGenerator struct {
	mock.Mock
}

// NewMockIDGenerator creates a MockIDGenerator bound to t.
func NewMockIDGenerator(t T) *MockIDGenerator {
	m := &MockIDGenerator{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *MockIDGenerator) GenerateUniqueID() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
