package scenes

import (
	domain "github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/pubsub"
)

// Item event kinds.
const (
	ItemAdded   = pubsub.ItemAddedEvent
	ItemRemoved = pubsub.ItemRemovedEvent
)

// ItemEvent reports an item added to or removed from a scene.
type ItemEvent struct {
	Kind    pubsub.EventType
	SceneID string
	Item    domain.SceneItem
}
