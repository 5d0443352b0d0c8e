package scenes

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/switchboard/internal/log"
	"github.com/zjrosen/switchboard/internal/tracing"
)

// LoadSceneConfig rebuilds the registry from the scenes the backend holds.
// The source registry and the store are reset first; each backend scene is
// then recreated with its items. When the backend has no scenes a default
// scene is created through the normal path.
func (s *Service) LoadSceneConfig() (err error) {
	_, span := tracing.Start(context.Background(), s.tracer, tracing.SpanLoadSceneConfig)
	defer func() { tracing.Finish(span, err) }()

	if err := s.sources.Reset(); err != nil {
		log.ErrorErr(log.CatScenes, "resetting sources", err)
		return fmt.Errorf("resetting sources: %w", err)
	}
	s.store.Reset()

	names, err := s.backend.ListCurrentSceneNames()
	if err != nil {
		log.ErrorErr(log.CatScenes, "listing backend scenes", err)
		return fmt.Errorf("listing backend scenes: %w", err)
	}

	for _, name := range names {
		if _, err := s.CreateScene(name, BackendSceneExists()); err != nil {
			return fmt.Errorf("loading scene %q: %w", name, err)
		}
	}

	if s.store.Len() == 0 {
		log.Info(log.CatScenes, "no scenes on backend, creating default", "scene", s.defaultSceneName)
		if _, err := s.CreateScene(s.defaultSceneName); err != nil {
			return fmt.Errorf("creating default scene: %w", err)
		}
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrSceneCount, s.store.Len()),
		attribute.Int64(tracing.AttrStoreVersion, int64(s.store.Version())), //nolint:gosec // version fits in int64
	)
	log.Info(log.CatScenes, "scene config loaded", "scenes", s.store.Len())
	return nil
}
