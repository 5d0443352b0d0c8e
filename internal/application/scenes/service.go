package scenes

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	domain "github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/idgen"
	"github.com/zjrosen/switchboard/internal/log"
	"github.com/zjrosen/switchboard/internal/pubsub"
)

// DefaultSceneName is used when a config load finds no scenes.
const DefaultSceneName = "Scene"

// MinScenesMessage is shown when the user tries to remove the last scene.
const MinScenesMessage = "There needs to be at least one scene."

// DefaultSource describes a source attached to every freshly created scene.
type DefaultSource struct {
	Name   string
	Type   string
	Hidden bool
}

// DefaultSources returns the hidden audio sources added to new scenes.
func DefaultSources() []DefaultSource {
	return []DefaultSource{
		{Name: "Mic/Aux", Type: "wasapi_input_capture", Hidden: true},
		{Name: "Desktop Audio", Type: "wasapi_output_capture", Hidden: true},
	}
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator replaces the UUID id generator.
func WithIDGenerator(g domain.IDGenerator) Option {
	return func(s *Service) { s.ids = g }
}

// WithAlerter sets where user-facing messages go. Defaults to the log.
func WithAlerter(a domain.Alerter) Option {
	return func(s *Service) { s.alerter = a }
}

// WithTracer enables spans around registry operations.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithDefaultSceneName overrides DefaultSceneName.
func WithDefaultSceneName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.defaultSceneName = name
		}
	}
}

// WithDefaultSources overrides DefaultSources. An empty list creates bare scenes.
func WithDefaultSources(srcs []DefaultSource) Option {
	return func(s *Service) { s.defaultSources = srcs }
}

// WithChangeBuffer sets the per-subscriber buffer of the change stream.
func WithChangeBuffer(size int) Option {
	return func(s *Service) { s.changeBuffer = size }
}

// WithUniqueNames refuses CreateScene for a name an existing scene already
// has. Use it with backends that address scenes by name.
func WithUniqueNames() Option {
	return func(s *Service) { s.uniqueNames = true }
}

// Service is the scene registry. It is not safe for concurrent use.
type Service struct {
	store   *domain.Store
	backend domain.Backend
	sources domain.SourceRegistry
	saver   domain.Saver
	ids     domain.IDGenerator
	alerter domain.Alerter
	tracer  trace.Tracer

	defaultSceneName string
	defaultSources   []DefaultSource
	changeBuffer     int
	uniqueNames      bool

	items   *pubsub.Notifier[ItemEvent]
	changes *pubsub.Broker[domain.Mutation]
}

// NewService creates an empty registry bound to its collaborators.
func NewService(backend domain.Backend, sources domain.SourceRegistry, saver domain.Saver, opts ...Option) *Service {
	s := &Service{
		backend:          backend,
		sources:          sources,
		saver:            saver,
		ids:              idgen.UUID{},
		alerter:          logAlerter{},
		defaultSceneName: DefaultSceneName,
		defaultSources:   DefaultSources(),
		changeBuffer:     64,
		items:            pubsub.NewNotifier[ItemEvent](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.changes = pubsub.NewBrokerWithBuffer[domain.Mutation](s.changeBuffer)
	s.store = domain.NewStore(domain.WithObserver(s.publishMutation))
	return s
}

// Close stops the change stream.
func (s *Service) Close() {
	s.changes.Close()
}

// SubscribeItems registers fn for item events and returns its unsubscribe func.
func (s *Service) SubscribeItems(fn func(ItemEvent)) (unsubscribe func()) {
	return s.items.Subscribe(func(e pubsub.Event[ItemEvent]) {
		fn(e.Payload)
	})
}

// SubscribeChanges streams every store transition until ctx is done.
// Slow readers miss transitions rather than blocking the registry.
func (s *Service) SubscribeChanges(ctx context.Context) <-chan pubsub.Event[domain.Mutation] {
	return s.changes.Subscribe(ctx)
}

func (s *Service) publishMutation(m domain.Mutation) {
	kind := pubsub.UpdatedEvent
	switch m.Kind {
	case domain.MutationAddScene, domain.MutationAddItem:
		kind = pubsub.CreatedEvent
	case domain.MutationRemoveScene, domain.MutationRemoveItem, domain.MutationReset:
		kind = pubsub.DeletedEvent
	}
	s.changes.Publish(kind, m)
}

func (s *Service) emitItem(kind pubsub.EventType, sceneID string, item domain.SceneItem) {
	s.items.Publish(kind, ItemEvent{Kind: kind, SceneID: sceneID, Item: item})
}

// refreshTabs pushes the scene names, in display order, to the backend.
func (s *Service) refreshTabs() error {
	return s.backend.SetSceneNameTabs(s.store.Snapshot().Names())
}

func (s *Service) save() error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Save()
}

type logAlerter struct{}

func (logAlerter) Alert(msg string) {
	log.Warn(log.CatScenes, "alert", "message", msg)
}
