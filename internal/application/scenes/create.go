package scenes

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/log"
	"github.com/zjrosen/switchboard/internal/tracing"
)

type createOptions struct {
	duplicateFrom string
	backendExists bool
}

// CreateOption configures CreateScene.
type CreateOption func(*createOptions)

// DuplicateSourcesFromScene clones, by reference, the items of the scene named name.
func DuplicateSourcesFromScene(name string) CreateOption {
	return func(o *createOptions) { o.duplicateFrom = name }
}

// BackendSceneExists marks the scene as already present on the backend, so
// only its items are loaded.
func BackendSceneExists() CreateOption {
	return func(o *createOptions) { o.backendExists = true }
}

// CreateScene adds a scene, makes it active and saves the collection.
func (s *Service) CreateScene(name string, opts ...CreateOption) (_ *Scene, err error) {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	_, span := tracing.Start(context.Background(), s.tracer, tracing.SpanCreateScene,
		attribute.String(tracing.AttrSceneName, name),
		attribute.String(tracing.AttrDuplicateFrom, o.duplicateFrom),
	)
	defer func() { tracing.Finish(span, err) }()

	if s.uniqueNames && !o.backendExists && s.GetSceneByName(name) != nil {
		return nil, fmt.Errorf("creating scene %q: %w", name, domain.ErrSceneNameTaken)
	}

	id, err := s.ids.GenerateUniqueID()
	if err != nil {
		log.ErrorErr(log.CatScenes, "allocating scene id", err, "scene", name)
		return nil, fmt.Errorf("allocating scene id: %w", err)
	}
	span.SetAttributes(attribute.String(tracing.AttrSceneID, id))

	s.store.AddScene(id, name)
	scene := &Scene{svc: s, id: id}

	switch {
	case o.backendExists:
		err = scene.LoadConfig()
	case o.duplicateFrom != "":
		err = s.duplicateInto(scene, o.duplicateFrom)
	default:
		err = s.createOnBackend(scene)
	}
	if err != nil {
		log.ErrorErr(log.CatScenes, "creating scene", err, "scene", name, "id", id)
		return nil, err
	}

	if err = s.MakeSceneActive(id); err != nil {
		return nil, err
	}
	if err = s.refreshTabs(); err != nil {
		log.ErrorErr(log.CatScenes, "refreshing scene tabs", err)
		return nil, fmt.Errorf("refreshing scene tabs: %w", err)
	}
	if err = s.save(); err != nil {
		log.ErrorErr(log.CatScenes, "saving collection", err)
		return nil, fmt.Errorf("saving collection: %w", err)
	}

	log.Info(log.CatScenes, "scene created", "scene", name, "id", id, "items", len(scene.Items(true)))
	return scene, nil
}

func (s *Service) createOnBackend(scene *Scene) error {
	name := scene.Name()
	if err := s.backend.CreateScene(name); err != nil {
		return fmt.Errorf("creating backend scene %q: %w", name, err)
	}
	return s.addDefaultSources(scene)
}

func (s *Service) duplicateInto(scene *Scene, from string) error {
	src := s.GetSceneByName(from)
	if src == nil {
		return fmt.Errorf("duplicating from %q: %w", from, domain.ErrSceneNotFound)
	}
	if err := s.backend.DuplicateScene(src.Name(), scene.Name(), domain.DuplicateRefs); err != nil {
		return fmt.Errorf("duplicating scene %q: %w", from, err)
	}
	return scene.LoadConfig()
}

// addDefaultSources attaches the default sources to scene. A default source
// already known to the registry is shared rather than created again.
func (s *Service) addDefaultSources(scene *Scene) error {
	for _, def := range s.defaultSources {
		src, ok := s.sources.GetSourceByName(def.Name)
		if !ok {
			var err error
			src, err = s.sources.CreateSource(def.Name, def.Type, def.Hidden)
			if err != nil {
				return fmt.Errorf("creating default source %q: %w", def.Name, err)
			}
		}
		if _, err := scene.AddSource(src.ID); err != nil {
			return err
		}
	}
	return nil
}

// MakeSceneActive switches the backend's program scene and marks id active.
func (s *Service) MakeSceneActive(id string) (err error) {
	_, span := tracing.Start(context.Background(), s.tracer, tracing.SpanMakeSceneActive,
		attribute.String(tracing.AttrSceneID, id))
	defer func() { tracing.Finish(span, err) }()

	rec, ok := s.store.Scene(id)
	if !ok {
		return fmt.Errorf("activating %q: %w", id, domain.ErrSceneNotFound)
	}
	if err := s.backend.SetCurrentScene(rec.Name); err != nil {
		log.ErrorErr(log.CatScenes, "switching backend scene", err, "scene", rec.Name)
		return fmt.Errorf("switching to scene %q: %w", rec.Name, err)
	}
	s.store.MakeActive(id)
	return nil
}

// SetSceneOrder replaces the display order. order must be a permutation of
// the current scene ids; it is not validated.
func (s *Service) SetSceneOrder(order []string) {
	s.store.SetOrder(order)
}

// CommitSceneOrder pushes the display order to the backend tabs and saves,
// so the order survives a reload.
func (s *Service) CommitSceneOrder() error {
	if err := s.refreshTabs(); err != nil {
		return fmt.Errorf("refreshing scene tabs: %w", err)
	}
	if err := s.save(); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}
