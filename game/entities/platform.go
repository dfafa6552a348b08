package entities

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/game/constants"
)

const (
	TURN_COLLIDER_WIDTH  float32 = 50
	TURN_COLLIDER_HEIGHT float32 = 100
	PLATFORM_DENSITY     float32 = 10000
)

type PlatformConfig struct {
	LeftTexture    string
	MidTexture     string
	RightTexture   string
	NumberOfPieces int
	Position       math.Vec2
}

/**
 * @brief Platform is a row of sprites (left cap, middles, right cap) on top of
 * one static box. A turn collider sits above each end so walking enemies
 * bounce back before falling off.
 */
type Platform struct {
	stage   *Stage
	sprites []*renderer.Sprite

	box           physics.Body
	leftCollider  physics.Body
	rightCollider physics.Body

	position      math.Vec2
	width, height float32
	visible       bool
	enabled       bool
	disposed      bool
}

func NewPlatform(stage *Stage, config *PlatformConfig) (*Platform, error) {
	if config.LeftTexture == "" || config.MidTexture == "" || config.RightTexture == "" {
		return nil, logged(fmt.Errorf("func NewPlatform - left, mid and right textures are required: %w", core.ErrMissingField))
	}
	if config.NumberOfPieces <= 0 {
		return nil, logged(fmt.Errorf("func NewPlatform - NumberOfPieces %d: %w", config.NumberOfPieces, core.ErrInvalidValue))
	}

	p := &Platform{stage: stage}
	names := []string{config.LeftTexture}
	for i := 1; i < config.NumberOfPieces-1; i++ {
		names = append(names, config.MidTexture)
	}
	names = append(names, config.RightTexture)

	for _, name := range names {
		tex, err := stage.Canvas.Textures().Acquire(name)
		if err != nil {
			p.Dispose()
			return nil, fmt.Errorf("func NewPlatform - %w", err)
		}
		s := renderer.NewSprite(stage.Canvas, constants.ZORDER_PLATFORM, tex)
		s.SetVisible(false)
		p.sprites = append(p.sprites, s)
		p.width += s.Width()
		p.height = max(p.height, s.Height())
	}

	units := stage.units()
	turnSize := units.ToSimUnits(math.NewVec2(TURN_COLLIDER_WIDTH, TURN_COLLIDER_HEIGHT))
	p.leftCollider = stage.Physics.CreateRectangle(math.NewVec2Zero(), turnSize, 0)
	p.leftCollider.SetCategory(constants.PLATFORM_TURN_CATEGORY)
	p.rightCollider = stage.Physics.CreateRectangle(math.NewVec2Zero(), turnSize, 0)
	p.rightCollider.SetCategory(constants.PLATFORM_TURN_CATEGORY)

	p.box = stage.Physics.CreateRectangle(math.NewVec2Zero(), units.ToSimUnits(math.NewVec2(p.width, p.height)), PLATFORM_DENSITY)
	p.box.SetCategory(constants.PLATFORM_CATEGORY)
	for _, b := range p.bodies() {
		b.SetUserData(p)
	}
	p.SetEnabled(false)
	p.SetPosition(config.Position)
	return p, nil
}

// NewPlatformFromData reads LeftTexture, MidTexture, RightTexture,
// NumberOfPieces, Position, Visible and Enabled. Visible and Enabled
// default to false until the level starts.
func NewPlatformFromData(stage *Stage, data content.Data) (*Platform, error) {
	r := data.Reader()
	config := &PlatformConfig{
		LeftTexture:    r.RequireString("LeftTexture"),
		MidTexture:     r.RequireString("MidTexture"),
		RightTexture:   r.RequireString("RightTexture"),
		NumberOfPieces: r.RequireInt("NumberOfPieces"),
		Position:       r.Vec2("Position", math.NewVec2Zero()),
	}
	visible := r.Bool("Visible", false)
	enabled := r.Bool("Enabled", false)
	if err := r.Err(); err != nil {
		return nil, logged(fmt.Errorf("func NewPlatformFromData - %w", err))
	}
	p, err := NewPlatform(stage, config)
	if err != nil {
		return nil, err
	}
	p.SetVisible(visible)
	p.SetEnabled(enabled)
	return p, nil
}

func (p *Platform) bodies() []physics.Body {
	return []physics.Body{p.box, p.leftCollider, p.rightCollider}
}

func (p *Platform) Position() math.Vec2 {
	return p.position
}

// SetPosition lays the sprites out left to right from position, the
// bottom-left corner, and moves the bodies with them.
func (p *Platform) SetPosition(position math.Vec2) {
	p.position = position
	current := position
	for _, s := range p.sprites {
		s.SetPosition(current)
		current.X += s.Width()
	}
	units := p.stage.units()
	turnY := position.Y + p.height/2 + TURN_COLLIDER_HEIGHT
	p.leftCollider.SetPosition(units.ToSimUnits(math.NewVec2(position.X+TURN_COLLIDER_WIDTH/2, turnY)))
	p.rightCollider.SetPosition(units.ToSimUnits(math.NewVec2(position.X+p.width-TURN_COLLIDER_WIDTH/2, turnY)))
	p.box.SetPosition(units.ToSimUnits(math.NewVec2(position.X+p.width/2, position.Y+p.height/2)))
}

func (p *Platform) Width() float32 {
	return p.width
}

func (p *Platform) Height() float32 {
	return p.height
}

func (p *Platform) Sprites() []*renderer.Sprite {
	return p.sprites
}

func (p *Platform) Visible() bool {
	return p.visible
}

func (p *Platform) SetVisible(v bool) {
	p.visible = v
	for _, s := range p.sprites {
		s.SetVisible(v)
	}
}

func (p *Platform) Enabled() bool {
	return p.enabled
}

// SetEnabled switches the box and both turn colliders together.
func (p *Platform) SetEnabled(enabled bool) {
	p.enabled = enabled
	for _, b := range p.bodies() {
		if b != nil {
			b.SetEnabled(enabled)
		}
	}
}

func (p *Platform) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	for _, s := range p.sprites {
		s.Dispose()
	}
	p.sprites = nil
	for _, b := range p.bodies() {
		if b != nil {
			p.stage.Physics.RemoveBody(b)
		}
	}
}
