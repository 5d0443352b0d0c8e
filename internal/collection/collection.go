// Package collection persists the engine's scene graph between runs.
//
// A Collection is the full engine snapshot plus the time it was written.
// Service adapts a Repository to the scene registry's Saver port and
// restores the engine from the last saved collection on start.
package collection

import (
	"context"
	"errors"
	"time"

	"github.com/zjrosen/switchboard/internal/engine"
)

// ErrNotFound is returned by Repository.Load when nothing has been saved yet.
var ErrNotFound = errors.New("collection not found")

// Collection is one saved engine state.
type Collection struct {
	Snapshot engine.Snapshot
	SavedAt  time.Time
}

// Repository stores a single collection.
type Repository interface {
	// Save replaces the stored collection.
	Save(ctx context.Context, c Collection) error
	// Load returns the stored collection or ErrNotFound.
	Load(ctx context.Context) (Collection, error)
}

// Engine is the part of the rendering backend a collection is taken from
// and restored into.
type Engine interface {
	Snapshot() engine.Snapshot
	Restore(engine.Snapshot)
}
