// Package idgen allocates unique ids for scenes and sources.
package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// GenerateUniqueID returns a new UUID string.
func (UUID) GenerateUniqueID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating uuid: %w", err)
	}
	return id.String(), nil
}

// Prefixed generates UUIDs with a fixed prefix, e.g. "scene_".
type Prefixed struct {
	Prefix string
}

// GenerateUniqueID returns Prefix followed by a new UUID.
func (p Prefixed) GenerateUniqueID() (string, error) {
	id, err := UUID{}.GenerateUniqueID()
	if err != nil {
		return "", err
	}
	return p.Prefix + id, nil
}
