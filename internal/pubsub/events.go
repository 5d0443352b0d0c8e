// Package pubsub provides generic publish/subscribe primitives: an asynchronous
// channel broker for observers that may lag behind, and a synchronous notifier
// for observers that must see every event before the publisher continues.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"

	// Scene item membership events.
	ItemAddedEvent   EventType = "item_added"
	ItemRemovedEvent EventType = "item_removed"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
