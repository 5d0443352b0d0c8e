// Package scenes implements the application layer of the scene registry.
//
// Service orchestrates the domain Store and its collaborators: it allocates
// scene ids, applies store transitions, drives the rendering backend, keeps
// the source registry in step and persists the collection. Operations run to
// completion on the caller's goroutine. When a collaborator fails midway the
// error is logged and returned and the steps already taken are kept.
//
// # Scene handles
//
// Scene is a live handle bound to the service and a scene id. It reads
// through to the store on every call and exposes the item operations
// (AddSource, RemoveItem, MakeItemActive, LoadConfig).
//
// # Notifications
//
// Item additions and removals are fanned out synchronously through
// SubscribeItems, in emission order, before the operation returns. Every
// store transition is also published on an asynchronous broker exposed by
// SubscribeChanges.
//
// # Import Aliasing
//
// The domain package internal/domain/scenes has the same name; alias it
// when importing both:
//
//	import (
//	    domainscenes "github.com/zjrosen/switchboard/internal/domain/scenes"
//	    appscenes "github.com/zjrosen/switchboard/internal/application/scenes"
//	)
package scenes
