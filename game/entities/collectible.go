package entities

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/game/constants"
)

const COLLECTIBLE_DENSITY float32 = 8

/**
 * @brief Collectible is an animated sprite over a static sensor box that only
 * the player touches. The first player contact marks it collected and runs
 * OnCollect; the contact itself is never solved.
 */
type Collectible struct {
	*renderer.AnimatedSprite

	Kind string

	stage     *Stage
	box       physics.Body
	collected bool
	onCollect func(c *Collectible)
}

func newCollectible(stage *Stage, kind string, data content.Data, defaults map[string][]string, onCollect func(c *Collectible)) (*Collectible, error) {
	data = withDefaults(data, defaults)
	bodyScale, err := data.Vec2("BodyScale", math.NewVec2One())
	if err != nil {
		return nil, logged(fmt.Errorf("func newCollectible - %w", err))
	}
	sprite, err := renderer.NewAnimatedSpriteFromData(stage.Canvas, stage.Scheduler, data)
	if err != nil {
		return nil, fmt.Errorf("func newCollectible - %s: %w", kind, err)
	}

	c := &Collectible{AnimatedSprite: sprite, Kind: kind, stage: stage, onCollect: onCollect}
	w, h := sprite.Width(), sprite.Height()
	units := stage.units()
	c.box = stage.Physics.CreateRectangle(units.ToSimUnits(sprite.Position()), units.ToSimUnits(math.NewVec2(w*bodyScale.X, h*bodyScale.Y)), COLLECTIBLE_DENSITY)
	c.box.SetCategory(constants.COLLECTIBLE_CATEGORY)
	c.box.SetCollidesWith(constants.PLAYER_CATEGORY)
	c.box.SetUserData(c)
	c.box.OnCollision(c.onCollision)

	c.SetPlaying(true)
	c.SetOffset(math.NewVec2(w/2, h/2))
	sprite.OnDispose(func() {
		stage.Physics.RemoveBody(c.box)
		c.onCollect = nil
	})
	return c, nil
}

func (c *Collectible) onCollision(contact physics.Contact) bool {
	if contact.Other.Category() == constants.PLAYER_CATEGORY && !c.collected {
		c.collected = true
		if c.onCollect != nil {
			c.onCollect(c)
		}
	}
	return false
}

func (c *Collectible) Collected() bool {
	return c.collected
}

func (c *Collectible) Body() physics.Body {
	return c.box
}

// SetPosition moves the sprite and the box together.
func (c *Collectible) SetPosition(p math.Vec2) {
	c.AnimatedSprite.SetPosition(p)
	if c.box != nil {
		c.box.SetPosition(c.stage.units().ToSimUnits(p))
	}
}

func coinDefaults() map[string][]string {
	return map[string][]string{
		"Texture":        {"Content/Graphics/Coin.png"},
		"ZOrder":         {fmt.Sprint(constants.ZORDER_COLLECTIBLE)},
		"ImageSize":      vec2Field(64, 64),
		"NumberOfFrames": {"4"},
		"Fps":            {"10"},
		"BodyScale":      vec2Field(0.5, 0.5),
		"Playing":        {"true"},
	}
}

func treasureDefaults() map[string][]string {
	return map[string][]string{
		"Texture":        {"Content/Graphics/Treasure.png"},
		"ZOrder":         {fmt.Sprint(constants.ZORDER_COLLECTIBLE)},
		"ImageSize":      vec2Field(64, 64),
		"NumberOfFrames": {"1"},
		"Fps":            {"1"},
		"BodyScale":      vec2Field(0.875, 0.53),
		"Playing":        {"true"},
	}
}

// NewCoinFromData builds a coin. Collecting it scores and removes it.
func NewCoinFromData(stage *Stage, data content.Data) (*Collectible, error) {
	return newCollectible(stage, "Coin", data, coinDefaults(), func(c *Collectible) {
		if stage.Scoreboard != nil {
			stage.Scoreboard.IncrementCoins(c)
		}
		c.Dispose()
	})
}

func NewCoin(stage *Stage, position math.Vec2) (*Collectible, error) {
	return NewCoinFromData(stage, content.NewData("Coin", map[string][]string{"Position": vec2Field(position.X, position.Y)}))
}

// NewTreasureFromData builds the level goal. Collecting it completes the level.
func NewTreasureFromData(stage *Stage, data content.Data) (*Collectible, error) {
	return newCollectible(stage, "Treasure", data, treasureDefaults(), func(c *Collectible) {
		if stage.Scoreboard != nil {
			stage.Scoreboard.OnComplete()
		}
	})
}

func NewTreasure(stage *Stage, position math.Vec2) (*Collectible, error) {
	return NewTreasureFromData(stage, content.NewData("Treasure", map[string][]string{"Position": vec2Field(position.X, position.Y)}))
}
