// Package scenes builds the screens of the game: the level being played with
// its HUD, the main menu, the full screen transition and the on-screen
// controls.
package scenes

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/renderer/components"
	"github.com/spaghettifunk/zippy/engine/storage"
	"github.com/spaghettifunk/zippy/engine/touch"
)

// Fonts makes text displays in the game font.
type Fonts interface {
	NewText(canvas *renderer.Canvas, zOrder int) (*renderer.TextDisplay, error)
}

// Context is the slice of the running engine the scenes draw into.
type Context struct {
	World     *renderer.Canvas
	UI        *renderer.Canvas
	Camera    *components.LookAtCamera
	Scheduler renderer.Registry
	Physics   physics.World
	Touch     *touch.Manager
	Store     storage.Store
	Fonts     Fonts
	// Target is the logical screen size; the UI canvas is centred on it.
	Target math.Vec2
}

// sprite places a UI sprite with its bottom-left corner at position.
func (ctx *Context) sprite(canvas *renderer.Canvas, zOrder int, texture string, position math.Vec2) (*renderer.Sprite, error) {
	tex, err := canvas.Textures().Acquire(texture)
	if err != nil {
		return nil, fmt.Errorf("func sprite - %w", err)
	}
	s := renderer.NewSprite(canvas, zOrder, tex)
	s.SetPosition(position)
	return s, nil
}

func (ctx *Context) text(canvas *renderer.Canvas, zOrder int, position math.Vec2, value string) (*renderer.TextDisplay, error) {
	t, err := ctx.Fonts.NewText(canvas, zOrder)
	if err != nil {
		return nil, err
	}
	t.SetPosition(position)
	if err := t.SetText(value); err != nil {
		t.Dispose()
		return nil, err
	}
	return t, nil
}

func logged(err error) error {
	core.LogError("%s", err)
	return err
}
