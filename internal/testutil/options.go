package testutil

// inputData holds one backend input to be created.
type inputData struct {
	name      string
	inputType string
	hidden    bool
}

// itemData holds one scene item to be placed.
type itemData struct {
	id      string
	input   string
	visible bool
}

// sceneData holds one scene and its items in order.
type sceneData struct {
	name  string
	items []itemData
}

// defaultInput returns an inputData with sensible defaults.
func defaultInput(name string) inputData {
	return inputData{name: name, inputType: "dshow_input"}
}

// InputOption configures an input during builder setup.
type InputOption func(*inputData)

// InputType sets the backend input type.
func InputType(t string) InputOption {
	return func(i *inputData) { i.inputType = t }
}

// Hidden marks the input as hidden from source lists.
func Hidden() InputOption {
	return func(i *inputData) { i.hidden = true }
}

// ItemOption configures a scene item.
type ItemOption func(*itemData)

// ItemID sets an explicit item id. Items without one are numbered in the
// order they are added.
func ItemID(id string) ItemOption {
	return func(it *itemData) { it.id = id }
}

// Invisible places the item with visibility off.
func Invisible() ItemOption {
	return func(it *itemData) { it.visible = false }
}

// ItemSpec describes an item passed to Builder.WithScene.
type ItemSpec struct {
	input string
	opts  []ItemOption
}

// Item places input in a scene.
func Item(input string, opts ...ItemOption) ItemSpec {
	return ItemSpec{input: input, opts: opts}
}
