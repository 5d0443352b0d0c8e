package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrSceneID       = "scene.id"
	AttrSceneName     = "scene.name"
	AttrSceneCount    = "scene.count"
	AttrDuplicateFrom = "scene.duplicate_from"
	AttrItemID        = "item.id"
	AttrSourceID      = "source.id"
	AttrStoreVersion  = "store.version"
)

// Span names, one per registry operation.
const (
	SpanCreateScene     = "scenes.create"
	SpanRemoveScene     = "scenes.remove"
	SpanMakeSceneActive = "scenes.make_active"
	SpanLoadSceneConfig = "scenes.load_config"
	SpanCollectionSave  = "collection.save"
	SpanCollectionLoad  = "collection.load"
)

// Event names recorded on spans.
const (
	EventUserRefused = "user.refused"
	EventBackendCall = "backend.call"
)

// Start opens an internal span. A nil tracer yields a no-op span.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// Finish records the outcome of an operation and ends the span.
func Finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
