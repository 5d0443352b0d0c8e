package scenes

// DuplicateMode selects how a backend copies a scene's sources.
type DuplicateMode int

const (
	// DuplicateRefs makes the new scene's items point at the same sources.
	DuplicateRefs DuplicateMode = iota
	// DuplicateCopy gives the new scene private copies of every source.
	DuplicateCopy
)

func (m DuplicateMode) String() string {
	switch m {
	case DuplicateRefs:
		return "refs"
	case DuplicateCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// Source is a capture source as known to the source registry.
type Source struct {
	ID     string
	Name   string
	Type   string
	Hidden bool
}

// BackendItem is a scene item as reported by the rendering backend.
// Sources are identified by name on the backend side.
type BackendItem struct {
	ID           string
	SourceName   string
	SourceType   string
	SourceHidden bool
	Visible      bool
}

// Backend is the rendering backend that owns the scene graph.
// Scenes are addressed by name.
type Backend interface {
	CreateScene(name string) error
	DuplicateScene(name, newName string, mode DuplicateMode) error
	ReleaseScene(name string) error
	SetCurrentScene(name string) error
	ListCurrentSceneNames() ([]string, error)
	SetSceneNameTabs(names []string) error
	SceneItems(sceneName string) ([]BackendItem, error)
	AddSceneItem(sceneName, sourceName string, visible bool) (itemID string, err error)
	RemoveSceneItem(sceneName, itemID string) error
}

// SourceRegistry creates, tracks and releases sources.
type SourceRegistry interface {
	CreateSource(name, sourceType string, hidden bool) (Source, error)
	GetSource(id string) (Source, bool)
	GetSourceByName(name string) (Source, bool)
	// AdoptSource registers a source that already exists on the backend.
	AdoptSource(name, sourceType string, hidden bool) (Source, error)
	RemoveSource(id string) error
	// Reset forgets every source without touching the backend.
	Reset() error
}

// IDGenerator allocates unique scene ids.
type IDGenerator interface {
	GenerateUniqueID() (string, error)
}

// Saver persists the full collection.
type Saver interface {
	Save() error
}

// Alerter shows a message to the user.
type Alerter interface {
	Alert(msg string)
}
