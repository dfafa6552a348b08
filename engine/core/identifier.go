package core

import "github.com/google/uuid"

// NewID returns a fresh identifier for drawables, canvases and textures.
func NewID() uuid.UUID {
	return uuid.New()
}

// ShortID is the first block of an id, enough to tell objects apart in logs.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}
