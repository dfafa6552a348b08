package entities

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/game/constants"
)

const (
	CHARACTER_DENSITY        float32 = 5
	CHARACTER_BODY_FRICTION  float32 = 0.5
	CHARACTER_WHEEL_FRICTION float32 = 1

	ANIMATION_IDLE = "Idle"
	ANIMATION_RUN  = "Run"
	ANIMATION_JUMP = "Jump"
)

type CharacterConfig struct {
	ZOrder         int
	Texture        string
	FrameSize      math.Vec2
	NumberOfFrames int
	Fps            float32
	Health         float32
	// BodyScale shrinks the physics shapes relative to the frame size.
	BodyScale math.Vec2
	Category  physics.Category
	// Owner is stored as user data on both bodies so contact handlers can
	// recover the game object from the other side of a contact.
	Owner any
}

/**
 * @brief Character is an animated sprite riding a two body rig: an upright
 * box with fixed rotation, and a wheel pinned under it with a motorised
 * revolute joint. Turning the motor rolls the character along platforms.
 *
 * The sprite follows the box every update. Contacts are filtered so the two
 * bodies never touch one another; by default both only collide with
 * platforms.
 */
type Character struct {
	*renderer.AnimatedSprite

	stage  *Stage
	body   physics.Body
	wheel  physics.Body
	joint  physics.Joint
	health float32
	active bool

	wheelCircumference float32
	disposed           bool
	// scheduled is the object enrolled with the scheduler: the character
	// itself, or the game object wrapping it.
	scheduled core.Updatable

	// onDeath runs when health falls to zero or below.
	onDeath func()
}

func NewCharacter(stage *Stage, config *CharacterConfig) (*Character, error) {
	if config.NumberOfFrames <= 0 {
		return nil, logged(fmt.Errorf("func NewCharacter - NumberOfFrames %d: %w", config.NumberOfFrames, core.ErrInvalidValue))
	}
	tex, err := stage.Canvas.Textures().Acquire(config.Texture)
	if err != nil {
		return nil, fmt.Errorf("func NewCharacter - %w", err)
	}
	bodyScale := config.BodyScale
	if bodyScale == math.NewVec2Zero() {
		bodyScale = math.NewVec2One()
	}

	sprite := renderer.NewAnimatedSprite(stage.Canvas, &renderer.AnimatedSpriteConfig{
		ZOrder:         config.ZOrder,
		Texture:        tex,
		FrameWidth:     config.FrameSize.X,
		FrameHeight:    config.FrameSize.Y,
		NumberOfFrames: config.NumberOfFrames,
		Fps:            config.Fps,
	})
	c := &Character{AnimatedSprite: sprite, stage: stage, health: config.Health}
	if err := c.AddRange(ANIMATION_IDLE, renderer.Range{Start: 0, End: 0}); err != nil {
		sprite.Dispose()
		return nil, fmt.Errorf("func NewCharacter - %w", err)
	}

	w, h := sprite.Width(), sprite.Height()
	c.SetOffset(math.NewVec2(w/2, h/2))

	units := stage.units()
	boxHeight := (h - w/2) * bodyScale.Y
	c.body = stage.Physics.CreateRectangle(
		units.ToSimUnits(math.NewVec2(0, boxHeight/2)),
		units.ToSimUnits(math.NewVec2(w*bodyScale.X, boxHeight)),
		CHARACTER_DENSITY)
	c.body.SetType(physics.DYNAMIC)
	c.body.SetRestitution(0)
	c.body.SetFriction(CHARACTER_BODY_FRICTION)
	c.body.SetFixedRotation(true)

	radius := (w / 2) * bodyScale.X
	c.wheel = stage.Physics.CreateCircle(math.NewVec2Zero(), units.ToSim(radius), CHARACTER_DENSITY)
	c.wheel.SetType(physics.DYNAMIC)
	c.wheel.SetFriction(CHARACTER_WHEEL_FRICTION)
	c.wheelCircumference = float32(gomath.Pi) * w * bodyScale.X

	owner := config.Owner
	if owner == nil {
		owner = c
	}
	for _, b := range []physics.Body{c.body, c.wheel} {
		b.SetCategory(config.Category)
		b.SetCollidesWith(physics.CatAll &^ config.Category)
		b.SetUserData(owner)
	}

	// the anchor is local to the box: its bottom edge, where the wheel sits
	c.joint = stage.Physics.CreateRevoluteJoint(c.body, c.wheel, units.ToSimUnits(math.NewVec2(0, -boxHeight/2)))

	c.body.OnCollision(c.platformsOnly)
	c.wheel.OnCollision(c.platformsOnly)

	c.schedule(c)
	sprite.OnDispose(c.release)
	return c, nil
}

// schedule swaps the scheduler entry for u, so an embedding type's Update
// is the one called each frame.
func (c *Character) schedule(u core.Updatable) {
	if c.scheduled != nil {
		c.stage.Scheduler.Remove(c.scheduled)
	}
	c.scheduled = u
	c.stage.Scheduler.Add(u)
}

// platformsOnly is the default contact rule for both bodies.
func (c *Character) platformsOnly(contact physics.Contact) bool {
	return isPlatform(contact.Other)
}

func (c *Character) release() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.active = false
	c.stage.Physics.RemoveJoint(c.joint)
	c.stage.Physics.RemoveBody(c.body)
	c.stage.Physics.RemoveBody(c.wheel)
	c.stage.Scheduler.Remove(c.scheduled)
	c.onDeath = nil
}

// ApplyData reads StartPosition and Active.
func (c *Character) ApplyData(data content.Data) error {
	r := data.Reader()
	start := r.Vec2("StartPosition", c.Position())
	active := r.Bool("Active", c.active)
	if err := r.Err(); err != nil {
		return logged(fmt.Errorf("func Character.ApplyData - %w", err))
	}
	c.SetStartPosition(start)
	c.SetActive(active)
	return nil
}

func (c *Character) Body() physics.Body {
	return c.body
}

func (c *Character) Wheel() physics.Body {
	return c.wheel
}

func (c *Character) Joint() physics.Joint {
	return c.joint
}

func (c *Character) WheelCircumference() float32 {
	return c.wheelCircumference
}

func (c *Character) Health() float32 {
	return c.health
}

func (c *Character) SetHealth(h float32) {
	c.health = h
}

func (c *Character) Active() bool {
	return c.active
}

func (c *Character) SetActive(a bool) {
	c.active = a
}

func (c *Character) CanUpdate() bool {
	return c.active
}

// Update advances the animation, then snaps the sprite onto the box.
func (c *Character) Update(dt time.Duration) {
	c.Animation.Update(dt)
	c.UpdatePosition()
}

func (c *Character) UpdatePosition() {
	c.AnimatedSprite.SetPosition(c.stage.units().ToDisplayUnits(c.body.Position()))
	c.SetRotation(c.body.Rotation())
}

// SetStartPosition teleports both bodies, in display units, and the sprite
// with them.
func (c *Character) SetStartPosition(p math.Vec2) {
	sim := c.stage.units().ToSimUnits(p)
	c.body.SetPosition(sim)
	c.wheel.SetPosition(sim)
	c.body.SetVelocity(math.NewVec2Zero())
	c.wheel.SetVelocity(math.NewVec2Zero())
	c.UpdatePosition()
}

// Damage removes health. Death is reported once health reaches zero.
func (c *Character) Damage(amount float32) {
	c.health -= amount
	if c.health <= 0 && c.onDeath != nil {
		c.onDeath()
	}
}

// ChangeAnimation plays a registered range. Asking for a range that was
// never added is a programming error and is returned to the caller.
func (c *Character) ChangeAnimation(name string) error {
	if err := c.Play(name); err != nil {
		return logged(err)
	}
	return nil
}

func (c *Character) Dispose() {
	c.AnimatedSprite.Dispose()
}

func isPlatform(b physics.Body) bool {
	return b != nil && b.Category() == constants.PLATFORM_CATEGORY
}
