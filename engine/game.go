package engine

import (
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/systems"
)

// Game is what the engine runs. The engine owns the loop and the services;
// the game builds its canvases and first state in LoadContent.
type Game interface {
	// InitialResolution is the logical resolution the game is authored for.
	InitialResolution() math.Vec2
	// CalculateExtraOffset shifts the viewport when the display is taller
	// or shorter than the authored aspect ratio.
	CalculateExtraOffset(heightDifference float32) math.Vec2
	LoadContent(sm *systems.SystemManager) error
}
