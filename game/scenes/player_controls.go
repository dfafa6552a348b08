package scenes

import (
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/touch"
	"github.com/spaghettifunk/zippy/game/constants"
)

const (
	LEFT_ARROW_TEXTURE  = "Content/Graphics/Buttons/LeftArrow.png"
	RIGHT_ARROW_TEXTURE = "Content/Graphics/Buttons/RightArrow.png"
	JUMP_BUTTON_TEXTURE = "Content/Graphics/Buttons/JumpButton.png"
)

// Mover is what the on-screen controls drive.
type Mover interface {
	MoveLeft() error
	MoveRight() error
	Stop() error
	Jump() error
}

// must stops the game when the player cannot play a registered animation.
func must(err error) {
	if err != nil {
		core.LogFatal("%s", err)
	}
}

/**
 * @brief PlayerControls are the left, right and jump buttons. Only one
 * direction is held at a time: pressing the other arrow while one is down
 * does nothing, and only releasing the held arrow stops the player.
 */
type PlayerControls struct {
	player Mover

	left  *touch.Button
	right *touch.Button
	jump  *touch.Button

	enabled     bool
	visible     bool
	movingLeft  bool
	movingRight bool
}

func NewPlayerControls(ctx *Context, player Mover) (*PlayerControls, error) {
	c := &PlayerControls{player: player, enabled: true, visible: true}
	var err error
	if c.left, err = c.button(ctx, LEFT_ARROW_TEXTURE, math.NewVec2(-850, -490)); err != nil {
		return nil, err
	}
	if c.right, err = c.button(ctx, RIGHT_ARROW_TEXTURE, math.NewVec2(-550, -490)); err != nil {
		c.Dispose()
		return nil, err
	}
	if c.jump, err = c.button(ctx, JUMP_BUTTON_TEXTURE, math.NewVec2(650, -490)); err != nil {
		c.Dispose()
		return nil, err
	}
	c.left.OnButtonPress = c.onLeftPress
	c.left.OnButtonRelease = c.onLeftRelease
	c.right.OnButtonPress = c.onRightPress
	c.right.OnButtonRelease = c.onRightRelease
	c.jump.OnButtonPress = c.onJumpPress
	return c, nil
}

func (c *PlayerControls) button(ctx *Context, texture string, position math.Vec2) (*touch.Button, error) {
	sprite, err := ctx.sprite(ctx.UI, constants.ZORDER_CONTROLS, texture, position)
	if err != nil {
		return nil, logged(err)
	}
	return touch.NewButton(ctx.Touch, &touch.ButtonConfig{
		TouchOrder:       constants.ZORDER_CONTROLS,
		Area:             sprite,
		TargetDimensions: ctx.Target,
	}), nil
}

func (c *PlayerControls) buttons() []*touch.Button {
	return []*touch.Button{c.left, c.right, c.jump}
}

func (c *PlayerControls) Enabled() bool {
	return c.enabled
}

// SetEnabled(false) also forgets any held direction.
func (c *PlayerControls) SetEnabled(enabled bool) {
	c.enabled = enabled
	for _, b := range c.buttons() {
		b.SetTouchEnabled(enabled)
	}
	if !enabled {
		c.movingLeft = false
		c.movingRight = false
	}
}

func (c *PlayerControls) Visible() bool {
	return c.visible
}

func (c *PlayerControls) SetVisible(visible bool) {
	c.visible = visible
	for _, b := range c.buttons() {
		b.SetVisible(visible)
	}
}

func (c *PlayerControls) onLeftPress(*touch.Button) {
	if c.movingLeft || c.movingRight {
		return
	}
	must(c.player.MoveLeft())
	c.movingLeft = true
}

func (c *PlayerControls) onLeftRelease(*touch.Button) {
	if c.movingRight {
		return
	}
	must(c.player.Stop())
	c.movingLeft = false
}

func (c *PlayerControls) onRightPress(*touch.Button) {
	if c.movingLeft || c.movingRight {
		return
	}
	must(c.player.MoveRight())
	c.movingRight = true
}

func (c *PlayerControls) onRightRelease(*touch.Button) {
	if c.movingLeft {
		return
	}
	must(c.player.Stop())
	c.movingRight = false
}

func (c *PlayerControls) onJumpPress(*touch.Button) {
	must(c.player.Jump())
}

func (c *PlayerControls) Dispose() {
	for _, b := range c.buttons() {
		if b != nil {
			b.Dispose()
		}
	}
}
