package collection

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/log"
	"github.com/zjrosen/switchboard/internal/tracing"
)

// Service saves and restores the engine through a Repository.
type Service struct {
	repo   Repository
	engine Engine
	tracer trace.Tracer
	now    func() time.Time

	mu    sync.Mutex
	last  *Collection // last collection written or loaded
	held  bool
	dirty bool
}

var _ scenes.Saver = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithTracer records collection.save and collection.load spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithClock overrides the SavedAt timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service.
func NewService(repo Repository, eng Engine, opts ...Option) *Service {
	s := &Service{repo: repo, engine: eng, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save implements scenes.Saver.
func (s *Service) Save() error {
	return s.SaveContext(context.Background())
}

// SaveContext writes the current engine snapshot. A snapshot equal to the
// last one written or loaded is not written again, so a watcher reloading
// on every database change settles after one write.
func (s *Service) SaveContext(ctx context.Context) (err error) {
	snap := s.engine.Snapshot()

	_, span := tracing.Start(ctx, s.tracer, tracing.SpanCollectionSave,
		attribute.Int(tracing.AttrSceneCount, len(snap.Scenes)))
	defer func() { tracing.Finish(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.held {
		s.dirty = true
		span.SetAttributes(attribute.Bool("collection.deferred", true))
		return nil
	}
	if s.last != nil && reflect.DeepEqual(s.last.Snapshot, snap) {
		span.SetAttributes(attribute.Bool("collection.unchanged", true))
		return nil
	}

	c := Collection{Snapshot: snap, SavedAt: s.now().UTC()}
	if err := s.repo.Save(ctx, c); err != nil {
		log.ErrorErr(log.CatDB, "collection save failed", err)
		return fmt.Errorf("saving collection: %w", err)
	}
	s.last = &c
	log.Debug(log.CatDB, "collection saved", "scenes", len(snap.Scenes), "inputs", len(snap.Inputs))
	return nil
}

// Batch runs fn with saves deferred, then writes once if any save was
// requested. The write happens even when fn fails, so the stored collection
// matches the engine's partial state.
func (s *Service) Batch(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	s.held = true
	s.dirty = false
	s.mu.Unlock()

	fnErr := fn()

	s.mu.Lock()
	s.held = false
	dirty := s.dirty
	s.dirty = false
	s.mu.Unlock()

	if dirty {
		if err := s.SaveContext(ctx); err != nil {
			return errors.Join(fnErr, err)
		}
	}
	return fnErr
}

// Load restores the engine from the stored collection. It reports false,
// leaving the engine untouched, when nothing has been saved yet.
func (s *Service) Load(ctx context.Context) (found bool, err error) {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanCollectionLoad)
	defer func() { tracing.Finish(span, err) }()

	c, err := s.repo.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		log.Debug(log.CatDB, "no saved collection")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading collection: %w", err)
	}

	s.engine.Restore(c.Snapshot)

	s.mu.Lock()
	s.last = &Collection{Snapshot: s.engine.Snapshot(), SavedAt: c.SavedAt}
	s.mu.Unlock()

	span.SetAttributes(attribute.Int(tracing.AttrSceneCount, len(c.Snapshot.Scenes)))
	log.Info(log.CatDB, "collection restored", "scenes", len(c.Snapshot.Scenes), "saved_at", c.SavedAt.Format(time.RFC3339))
	return true, nil
}

// SavedAt returns when the collection last written or loaded was saved.
func (s *Service) SavedAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return time.Time{}, false
	}
	return s.last.SavedAt, true
}
