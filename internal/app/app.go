// Package app wires switchboard together: the collection database, the
// in-process engine behind its item cache, the source registry and the
// scene registry service.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zjrosen/switchboard/internal/application/scenes"
	"github.com/zjrosen/switchboard/internal/cachemanager"
	"github.com/zjrosen/switchboard/internal/collection"
	"github.com/zjrosen/switchboard/internal/config"
	domain "github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/engine"
	"github.com/zjrosen/switchboard/internal/idgen"
	"github.com/zjrosen/switchboard/internal/infrastructure/sqlite"
	"github.com/zjrosen/switchboard/internal/log"
	"github.com/zjrosen/switchboard/internal/sources"
	"github.com/zjrosen/switchboard/internal/tracing"
	"github.com/zjrosen/switchboard/internal/watcher"
)

// App owns every long-lived component of a switchboard process.
type App struct {
	cfg config.Config

	db         *sqlite.DB
	tracing    *tracing.Provider
	engine     *engine.Engine
	backend    *engine.CachedBackend
	sources    *sources.Registry
	collection *collection.Service
	scenes     *scenes.Service
}

type options struct {
	alerts   io.Writer
	sceneIDs domain.IDGenerator
}

// Option configures New.
type Option func(*options)

// WithAlertWriter sets where user-facing alerts are printed. Defaults to stderr.
func WithAlertWriter(w io.Writer) Option {
	return func(o *options) { o.alerts = w }
}

// WithSceneIDs replaces the UUID scene id generator.
func WithSceneIDs(g domain.IDGenerator) Option {
	return func(o *options) { o.sceneIDs = g }
}

// writerAlerter prints alerts on their own line.
type writerAlerter struct{ w io.Writer }

func (a writerAlerter) Alert(msg string) {
	log.Warn(log.CatScenes, "alert", "message", msg)
	_, _ = fmt.Fprintln(a.w, msg)
}

// New opens the collection database and builds the component graph.
// Nothing is loaded until Start.
func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{alerts: os.Stderr, sceneIDs: idgen.UUID{}}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}

	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		_ = tp.Shutdown(context.Background())
		return nil, fmt.Errorf("opening collection database: %w", err)
	}

	eng := engine.New()
	itemCache := cachemanager.NewInMemoryCacheManager[string, []domain.BackendItem](
		"scene-items", cfg.Cache.TTL, 2*cfg.Cache.TTL,
	)
	backend := engine.NewCachedBackend(eng, itemCache, cfg.Cache.TTL, cfg.Cache.Enabled)

	srcs := sources.NewRegistry(backend, idgen.Prefixed{Prefix: "src_"})
	coll := collection.NewService(db.CollectionRepository(), backend,
		collection.WithTracer(tp.Tracer()),
	)

	defaults := make([]scenes.DefaultSource, 0, len(cfg.DefaultSources))
	for _, s := range cfg.DefaultSources {
		defaults = append(defaults, scenes.DefaultSource{Name: s.Name, Type: s.Type, Hidden: s.Hidden})
	}

	svc := scenes.NewService(backend, srcs, coll,
		scenes.WithIDGenerator(o.sceneIDs),
		scenes.WithAlerter(writerAlerter{w: o.alerts}),
		scenes.WithTracer(tp.Tracer()),
		scenes.WithDefaultSceneName(cfg.DefaultSceneName),
		scenes.WithDefaultSources(defaults),
		scenes.WithUniqueNames(),
	)

	return &App{
		cfg:        cfg,
		db:         db,
		tracing:    tp,
		engine:     eng,
		backend:    backend,
		sources:    srcs,
		collection: coll,
		scenes:     svc,
	}, nil
}

// Start restores the saved collection into the engine and rebuilds the
// scene registry from it.
func (a *App) Start(ctx context.Context) error {
	return a.Reload(ctx)
}

// Reload re-reads the collection database and rebuilds the registry.
// Rebuilding activates each scene in turn, so the program scene the
// collection was saved with is activated again afterwards. Saves requested
// while rebuilding collapse into a single write.
func (a *App) Reload(ctx context.Context) error {
	if _, err := a.collection.Load(ctx); err != nil {
		return err
	}
	current := a.engine.CurrentScene()

	return a.collection.Batch(ctx, func() error {
		if err := a.scenes.LoadSceneConfig(); err != nil {
			return err
		}
		sc := a.scenes.GetSceneByName(current)
		if sc == nil || sc.ID() == a.scenes.ActiveSceneID() {
			return nil
		}
		return a.scenes.MakeSceneActive(sc.ID())
	})
}

// Restore loads the saved collection into the engine without rebuilding the
// registry, reporting whether a collection was found. The engine then shows
// what the database holds, before Reload reconciles the registry with it.
func (a *App) Restore(ctx context.Context) (bool, error) {
	return a.collection.Load(ctx)
}

// Save writes the engine state if it changed since the last write.
func (a *App) Save(ctx context.Context) error {
	return a.collection.SaveContext(ctx)
}

// Watch reloads the registry whenever the collection database changes,
// calling onReload after each attempt, until ctx is done.
func (a *App) Watch(ctx context.Context, onReload func(error)) error {
	w, err := watcher.New(watcher.Config{
		DBPath:      a.cfg.DBPath,
		DebounceDur: a.cfg.Watch.Debounce,
	})
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return err
	}
	defer func() { _ = w.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			err := a.Reload(ctx)
			if err != nil {
				log.ErrorErr(log.CatWatcher, "reload failed", err)
			}
			if onReload != nil {
				onReload(err)
			}
		}
	}
}

// Scenes returns the scene registry service.
func (a *App) Scenes() *scenes.Service { return a.scenes }

// Sources returns the source registry.
func (a *App) Sources() *sources.Registry { return a.sources }

// Engine returns the rendering backend.
func (a *App) Engine() *engine.Engine { return a.engine }

// Config returns the configuration the app was built with.
func (a *App) Config() config.Config { return a.cfg }

// SavedAt reports when the loaded or last written collection was saved.
func (a *App) SavedAt() (time.Time, bool) { return a.collection.SavedAt() }

// Close releases the database and flushes traces.
func (a *App) Close() error {
	a.scenes.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Join(
		a.tracing.Shutdown(ctx),
		a.db.Close(),
	)
}
