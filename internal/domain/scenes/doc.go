// Package scenes implements the domain layer of the scene registry.
//
// It contains only pure Go code with standard library imports and has no
// knowledge of the rendering backend, the source registry or persistence.
//
// # Store
//
// Store owns the registry state: the scenes map, the display order, the
// active scene pointer and a version counter. State is changed only through
// named transitions:
//   - Reset, AddScene, RemoveScene, MakeActive, SetOrder for the registry
//   - AddItem, RemoveItem, ReplaceItems, MakeItemActive for a scene's items
//
// Each transition bumps Version and is described by a Mutation delivered
// synchronously to every observer registered with WithObserver. Reads return
// copies, so callers never alias store internals.
//
// # Ports
//
// ports.go declares the collaborators the application layer drives:
// Backend, SourceRegistry, IDGenerator, Saver and Alerter, together with
// the value types that cross those boundaries.
//
// # Invariants
//
// State.Validate checks the invariants the application layer maintains after
// every public operation: the active id is empty only when there are no
// scenes and otherwise names a scene, and the display order is a permutation
// of the scene ids.
//
// # Import Aliasing
//
// The application package internal/application/scenes has the same name.
// When importing both, alias the domain package:
//
//	import (
//	    domainscenes "github.com/zjrosen/switchboard/internal/domain/scenes"
//	    "github.com/zjrosen/switchboard/internal/application/scenes"
//	)
package scenes
