package pubsub

import (
	"sync"
	"time"
)

// Handler receives events from a Notifier.
type Handler[T any] func(Event[T])

// Notifier fans events out synchronously to registered handlers.
//
// Publish returns only after every handler has run. Handlers are invoked in
// subscription order, so each one observes events in emission order.
// A handler may unsubscribe itself or others; the change applies to the next Publish.
type Notifier[T any] struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []notifierEntry[T]
}

type notifierEntry[T any] struct {
	id uint64
	fn Handler[T]
}

// NewNotifier creates an empty notifier.
func NewNotifier[T any]() *Notifier[T] {
	return &Notifier[T]{}
}

// Subscribe registers fn and returns a function that removes it.
func (n *Notifier[T]) Subscribe(fn Handler[T]) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.handlers = append(n.handlers, notifierEntry[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

func (n *Notifier[T]) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, h := range n.handlers {
		if h.id == id {
			n.handlers = append(n.handlers[:i:i], n.handlers[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every handler registered at call time.
func (n *Notifier[T]) Publish(eventType EventType, payload T) {
	n.mu.Lock()
	handlers := make([]notifierEntry[T], len(n.handlers))
	copy(handlers, n.handlers)
	n.mu.Unlock()

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	for _, h := range handlers {
		h.fn(event)
	}
}

// HandlerCount returns the number of registered handlers.
func (n *Notifier[T]) HandlerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.handlers)
}
