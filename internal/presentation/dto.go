package presentation

import (
	"github.com/zjrosen/switchboard/internal/application/scenes"
	domain "github.com/zjrosen/switchboard/internal/domain/scenes"
)

// SceneDTO represents a scene for presentation
type SceneDTO struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
	Active   bool      `json:"active"`
	Items    []ItemDTO `json:"items"`
}

// ItemDTO represents a scene item with its source resolved
type ItemDTO struct {
	ID       string `json:"id"`
	SourceID string `json:"source_id"`
	Source   string `json:"source"`
	Visible  bool   `json:"visible"`
	Hidden   bool   `json:"hidden"`
	Selected bool   `json:"selected,omitempty"`
}

// SourceDTO represents a registered source
type SourceDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Hidden bool   `json:"hidden"`
}

// SourceLookup resolves source ids to sources.
type SourceLookup interface {
	GetSource(id string) (domain.Source, bool)
}

// FromScene converts a scene handle to a DTO. Hidden items are included.
func FromScene(sc *scenes.Scene, position int, active bool, lookup SourceLookup) SceneDTO {
	items := sc.Items(true)
	dto := SceneDTO{
		ID:       sc.ID(),
		Name:     sc.Name(),
		Position: position,
		Active:   active,
		Items:    make([]ItemDTO, 0, len(items)),
	}
	selected := sc.ActiveItemID()
	for _, it := range items {
		item := ItemDTO{
			ID:       it.ID,
			SourceID: it.SourceID,
			Visible:  it.Visible,
			Hidden:   it.Hidden,
			Selected: it.ID == selected,
		}
		if src, ok := lookup.GetSource(it.SourceID); ok {
			item.Source = src.Name
		}
		dto.Items = append(dto.Items, item)
	}
	return dto
}

// FromScenes converts scene handles, in order, to DTOs.
func FromScenes(list []*scenes.Scene, activeID string, lookup SourceLookup) []SceneDTO {
	dtos := make([]SceneDTO, len(list))
	for i, sc := range list {
		dtos[i] = FromScene(sc, i, sc.ID() == activeID, lookup)
	}
	return dtos
}

// FromSources converts domain sources to DTOs
func FromSources(srcs []domain.Source) []SourceDTO {
	dtos := make([]SourceDTO, len(srcs))
	for i, s := range srcs {
		dtos[i] = SourceDTO{ID: s.ID, Name: s.Name, Type: s.Type, Hidden: s.Hidden}
	}
	return dtos
}
