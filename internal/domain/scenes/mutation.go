package scenes

// MutationKind names a store transition.
type MutationKind string

const (
	MutationReset          MutationKind = "reset"
	MutationAddScene       MutationKind = "add_scene"
	MutationRemoveScene    MutationKind = "remove_scene"
	MutationMakeActive     MutationKind = "make_active"
	MutationSetOrder       MutationKind = "set_order"
	MutationAddItem        MutationKind = "add_item"
	MutationRemoveItem     MutationKind = "remove_item"
	MutationReplaceItems   MutationKind = "replace_items"
	MutationMakeItemActive MutationKind = "make_item_active"
)

// Mutation describes one applied transition. Only the fields relevant to
// Kind are set.
type Mutation struct {
	Kind    MutationKind
	Version uint64 // store version after the transition
	SceneID string
	Name    string
	Order   []string
	Item    *SceneItem
	Items   []SceneItem
	ItemID  string
}

// Observer is called after each transition, before the transition returns.
type Observer func(Mutation)
