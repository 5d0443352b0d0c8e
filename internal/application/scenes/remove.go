package scenes

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/log"
	"github.com/zjrosen/switchboard/internal/tracing"
)

// RemoveScene deletes a scene with all its items. Removing the last scene is
// refused with a user alert and a nil error. When the active scene goes, the
// first scene in display order becomes active.
func (s *Service) RemoveScene(id string) (err error) {
	_, span := tracing.Start(context.Background(), s.tracer, tracing.SpanRemoveScene,
		attribute.String(tracing.AttrSceneID, id),
		attribute.Int(tracing.AttrSceneCount, s.store.Len()),
	)
	defer func() { tracing.Finish(span, err) }()

	if s.store.Len() < 2 {
		span.AddEvent(tracing.EventUserRefused, trace.WithAttributes(attribute.Int(tracing.AttrSceneCount, s.store.Len())))
		s.alerter.Alert(MinScenesMessage)
		return nil
	}

	scene := s.GetScene(id)
	if scene == nil {
		return fmt.Errorf("removing %q: %w", id, domain.ErrSceneNotFound)
	}
	name := scene.Name()

	for _, item := range scene.Items(true) {
		if err := scene.RemoveItem(item.ID); err != nil {
			log.ErrorErr(log.CatScenes, "removing scene item", err, "scene", name, "item", item.ID)
			return err
		}
	}

	if err := s.backend.ReleaseScene(name); err != nil {
		log.ErrorErr(log.CatScenes, "releasing backend scene", err, "scene", name)
		return fmt.Errorf("releasing scene %q: %w", name, err)
	}

	wasActive := s.store.ActiveSceneID() == id
	s.store.RemoveScene(id)

	if err := s.refreshTabs(); err != nil {
		log.ErrorErr(log.CatScenes, "refreshing scene tabs", err)
		return fmt.Errorf("refreshing scene tabs: %w", err)
	}

	if wasActive {
		if ids := s.store.IDs(); len(ids) > 0 {
			if err := s.MakeSceneActive(ids[0]); err != nil {
				return err
			}
		}
	}

	if err := s.save(); err != nil {
		log.ErrorErr(log.CatScenes, "saving collection", err)
		return fmt.Errorf("saving collection: %w", err)
	}

	log.Info(log.CatScenes, "scene removed", "scene", name, "id", id, "active", s.store.ActiveSceneID())
	return nil
}
