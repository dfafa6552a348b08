package entities

import (
	"fmt"
	gomath "math"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/game/constants"
)

const (
	GOBLIN_TEXTURE      = "Content/Graphics/Goblin.png"
	GOBLIN_HEALTH       = 20
	GOBLIN_ATTACK       = 30
	GOBLIN_MOTOR_TORQUE = 10000
)

/**
 * @brief Enemy is a character the player can stomp. Touching it any other way
 * costs the player AttackPower health.
 */
type Enemy struct {
	*Character

	Kind        string
	AttackPower float32
}

// NewGoblin builds a goblin that patrols a platform, turning round at the
// turn colliders on either end.
func NewGoblin(stage *Stage) (*Enemy, error) {
	e := &Enemy{Kind: "Goblin", AttackPower: GOBLIN_ATTACK}
	c, err := NewCharacter(stage, &CharacterConfig{
		ZOrder:         constants.ZORDER_GOBLIN,
		Texture:        GOBLIN_TEXTURE,
		FrameSize:      math.NewVec2(128, 128),
		NumberOfFrames: 9,
		Fps:            9,
		Health:         GOBLIN_HEALTH,
		BodyScale:      math.NewVec2(0.21, 0.43),
		Category:       constants.ENEMY_CATEGORY,
		Owner:          e,
	})
	if err != nil {
		return nil, err
	}
	e.Character = c
	if err := c.AddRange(ANIMATION_IDLE, renderer.Range{Start: 0, End: 1}); err != nil {
		c.Dispose()
		return nil, logged(err)
	}
	if err := c.AddRange(ANIMATION_RUN, renderer.Range{Start: 1, End: 9}); err != nil {
		c.Dispose()
		return nil, logged(err)
	}

	c.joint.SetMaxMotorTorque(GOBLIN_MOTOR_TORQUE)
	c.joint.EnableMotor(true)
	c.joint.SetMotorSpeed(2 * float32(gomath.Pi) * (constants.ENEMY_SPEED / -c.wheelCircumference))
	c.SetScaleOrigin(math.NewVec2(64, 64))
	if err := c.ChangeAnimation(ANIMATION_RUN); err != nil {
		c.Dispose()
		return nil, err
	}
	c.SetPlaying(true)
	c.SetEndBehaviour(renderer.LOOP)

	c.body.OnCollision(e.onBodyCollision)
	c.onDeath = func() {
		e.onDeath()
		e.Dispose()
	}
	c.schedule(e)
	return e, nil
}

// NewGoblinFromData reads StartPosition, Active and AttackPower.
func NewGoblinFromData(stage *Stage, data content.Data) (*Enemy, error) {
	attack, err := data.Float("AttackPower", GOBLIN_ATTACK)
	if err != nil {
		return nil, logged(fmt.Errorf("func NewGoblinFromData - %w", err))
	}
	e, err := NewGoblin(stage)
	if err != nil {
		return nil, err
	}
	e.AttackPower = attack
	if err := e.ApplyData(data); err != nil {
		e.Dispose()
		return nil, err
	}
	return e, nil
}

// onBodyCollision turns the goblin round at the end of its platform.
func (e *Enemy) onBodyCollision(contact physics.Contact) bool {
	switch contact.Other.Category() {
	case constants.PLATFORM_TURN_CATEGORY:
		e.Turn()
		return true
	case constants.PLATFORM_CATEGORY:
		return true
	}
	return false
}

// Turn reverses the wheel and mirrors the sprite.
func (e *Enemy) Turn() {
	e.joint.SetMotorSpeed(-e.joint.MotorSpeed())
	s := e.Scale()
	e.SetScale(math.NewVec2(-s.X, s.Y))
}

func (e *Enemy) onDeath() {
	if e.stage.Scoreboard != nil {
		e.stage.Scoreboard.OnEnemyDefeated(e)
	}
}
