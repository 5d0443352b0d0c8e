package sqlite

import (
	"time"

	"github.com/zjrosen/switchboard/internal/collection"
	"github.com/zjrosen/switchboard/internal/engine"
)

// InputModel is a row of the inputs table.
type InputModel struct {
	Name      string
	InputType string
	Hidden    bool
}

// SceneModel is a row of the scenes table.
type SceneModel struct {
	Name     string
	Position int
}

// SceneItemModel is a row of the scene_items table.
type SceneItemModel struct {
	SceneName string
	ItemID    string
	InputName string
	Visible   bool
	Position  int
}

// MetaModel is the single row of the collection_meta table.
type MetaModel struct {
	CurrentScene string
	SavedAt      int64 // Unix timestamp
}

// collectionModel is every row describing one collection.
type collectionModel struct {
	Inputs []InputModel
	Scenes []SceneModel
	Items  []SceneItemModel
	Meta   MetaModel
}

// toCollectionModel flattens a collection into table rows.
func toCollectionModel(c collection.Collection) collectionModel {
	snap := c.Snapshot
	m := collectionModel{
		Meta: MetaModel{CurrentScene: snap.CurrentScene, SavedAt: c.SavedAt.Unix()},
	}
	for _, in := range snap.Inputs {
		m.Inputs = append(m.Inputs, InputModel{Name: in.Name, InputType: in.Type, Hidden: in.Hidden})
	}
	for _, sc := range snap.Scenes {
		m.Scenes = append(m.Scenes, SceneModel{Name: sc.Name, Position: sc.Position})
		for i, it := range sc.Items {
			m.Items = append(m.Items, SceneItemModel{
				SceneName: sc.Name,
				ItemID:    it.ID,
				InputName: it.InputName,
				Visible:   it.Visible,
				Position:  i,
			})
		}
	}
	return m
}

// toDomain rebuilds a collection from table rows. Scenes and items must
// already be sorted by position.
func (m collectionModel) toDomain() collection.Collection {
	snap := engine.Snapshot{CurrentScene: m.Meta.CurrentScene}
	for _, in := range m.Inputs {
		snap.Inputs = append(snap.Inputs, engine.Input{Name: in.Name, Type: in.InputType, Hidden: in.Hidden})
	}

	index := make(map[string]int, len(m.Scenes))
	for _, sc := range m.Scenes {
		index[sc.Name] = len(snap.Scenes)
		snap.Scenes = append(snap.Scenes, engine.SceneState{Name: sc.Name, Position: sc.Position})
	}
	for _, it := range m.Items {
		i, ok := index[it.SceneName]
		if !ok {
			continue
		}
		snap.Scenes[i].Items = append(snap.Scenes[i].Items, engine.Item{
			ID:        it.ItemID,
			InputName: it.InputName,
			Visible:   it.Visible,
		})
	}

	return collection.Collection{
		Snapshot: snap,
		SavedAt:  time.Unix(m.Meta.SavedAt, 0).UTC(),
	}
}
