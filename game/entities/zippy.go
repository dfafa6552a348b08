package entities

import (
	gomath "math"
	"time"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/game/constants"
)

const (
	ZIPPY_TEXTURE      = "Content/Graphics/Soldier.png"
	ZIPPY_MOTOR_TORQUE = 10000

	JUMP_IMPULSE     float32 = 70
	BOUNCE_IMPULSE   float32 = 20
	STOMP_DAMAGE     float32 = 30
	RECHARGE_TIME            = time.Second
	RECHARGE_FLASH           = 200 * time.Millisecond
)

// HealthDisplay shows the player's health.
type HealthDisplay interface {
	UpdateBar(health float32)
}

// Zippy is the player character.
type Zippy struct {
	*Character

	healthBar HealthDisplay
	jumping   bool
	dead      bool
	lives     int
	// recharge is the time left of invulnerability after a hit.
	recharge time.Duration
}

func NewZippy(stage *Stage, healthBar HealthDisplay) (*Zippy, error) {
	z := &Zippy{healthBar: healthBar}
	c, err := NewCharacter(stage, &CharacterConfig{
		ZOrder:         constants.ZORDER_PLAYER,
		Texture:        ZIPPY_TEXTURE,
		FrameSize:      math.NewVec2(144, 144),
		NumberOfFrames: 13,
		Fps:            15,
		Health:         constants.PLAYER_MAX_HEALTH,
		BodyScale:      math.NewVec2(0.181, 0.5),
		Category:       constants.PLAYER_CATEGORY,
		Owner:          z,
	})
	if err != nil {
		return nil, err
	}
	z.Character = c
	for name, r := range map[string]renderer.Range{
		ANIMATION_IDLE: {Start: 0, End: 0},
		ANIMATION_JUMP: {Start: 1, End: 4},
		ANIMATION_RUN:  {Start: 5, End: 13},
	} {
		if err := c.AddRange(name, r); err != nil {
			c.Dispose()
			return nil, logged(err)
		}
	}
	c.SetPlaying(true)
	c.SetEndBehaviour(renderer.LOOP)
	c.joint.SetMaxMotorTorque(ZIPPY_MOTOR_TORQUE)
	c.joint.EnableMotor(true)
	c.SetScaleOrigin(math.NewVec2(72, 72))
	c.onDeath = z.onDeath
	c.wheel.OnCollision(z.onWheelCollision)
	c.body.OnCollision(z.onBodyCollision)
	c.schedule(z)
	z.lives = z.savedLives()
	return z, nil
}

func (z *Zippy) savedLives() int {
	if z.stage.Store == nil {
		return 1
	}
	return z.stage.Store.GetInt(constants.LIVES_SAVE_ID, 1)
}

func (z *Zippy) Lives() int {
	return z.lives
}

func (z *Zippy) Dead() bool {
	return z.dead
}

func (z *Zippy) Jumping() bool {
	return z.jumping
}

// Reset starts a new game: lives come back and the recharge is cleared.
func (z *Zippy) Reset() {
	z.lives = z.savedLives()
	z.recharge = 0
	z.Initialise()
}

// Initialise revives the player at full health for a level attempt.
func (z *Zippy) Initialise() {
	z.dead = false
	z.health = constants.PLAYER_MAX_HEALTH
	z.updateBar()
}

func (z *Zippy) updateBar() {
	if z.healthBar != nil {
		z.healthBar.UpdateBar(z.health)
	}
}

func (z *Zippy) Jump() error {
	if z.jumping {
		return nil
	}
	if err := z.ChangeAnimation(ANIMATION_JUMP); err != nil {
		return err
	}
	z.wheel.ApplyImpulse(z.stage.units().ToSimUnits(math.NewVec2(0, JUMP_IMPULSE)))
	z.jumping = true
	z.SetEndBehaviour(renderer.STOP)
	return nil
}

// startMove spins the wheel at speed revolutions per second. In the air the
// bodies drift instead of running.
func (z *Zippy) startMove(speed float32) error {
	if z.jumping {
		for _, b := range []physics.Body{z.body, z.wheel} {
			v := b.Velocity()
			b.SetVelocity(math.NewVec2(-speed/4, v.Y))
		}
	} else if err := z.ChangeAnimation(ANIMATION_RUN); err != nil {
		return err
	}
	z.joint.SetMotorSpeed(2 * float32(gomath.Pi) * speed)
	return nil
}

func (z *Zippy) MoveLeft() error {
	if err := z.startMove(constants.PLAYER_SPEED / z.wheelCircumference); err != nil {
		return err
	}
	z.SetScale(math.NewVec2(-1, 1))
	return nil
}

func (z *Zippy) MoveRight() error {
	if err := z.startMove(constants.PLAYER_SPEED / -z.wheelCircumference); err != nil {
		return err
	}
	z.SetScale(math.NewVec2(1, 1))
	return nil
}

func (z *Zippy) Stop() error {
	z.joint.SetMotorSpeed(0)
	if z.jumping {
		for _, b := range []physics.Body{z.body, z.wheel} {
			b.SetVelocity(math.NewVec2(0, b.Velocity().Y))
		}
		return nil
	}
	return z.ChangeAnimation(ANIMATION_IDLE)
}

// Update flashes the sprite while invulnerable and kills the player once
// they fall a screen below the camera limits.
func (z *Zippy) Update(dt time.Duration) {
	if z.dead {
		return
	}
	z.Character.Update(dt)
	if z.recharge > 0 {
		z.recharge -= dt
	}
	if z.recharge > 0 && z.recharge%RECHARGE_FLASH <= RECHARGE_FLASH/2 {
		z.SetAlpha(0)
	} else {
		z.SetAlpha(1)
	}

	if cam := z.stage.Camera; cam != nil {
		if z.Position().Y-z.Height() < cam.BottomRight().Y-cam.GetDimensions().Y {
			z.Damage(z.health)
		}
	}
}

// Damage only lands once the previous hit has recharged.
func (z *Zippy) Damage(amount float32) {
	if z.recharge > 0 {
		return
	}
	z.recharge = RECHARGE_TIME
	z.Character.Damage(amount)
	z.updateBar()
}

func (z *Zippy) onWheelCollision(contact physics.Contact) bool {
	other := contact.Other
	switch other.Category() {
	case constants.PLATFORM_CATEGORY:
		if z.jumping {
			landing := ANIMATION_IDLE
			if z.joint.MotorSpeed() != 0 {
				landing = ANIMATION_RUN
			}
			if err := z.ChangeAnimation(landing); err != nil {
				core.LogFatal("%s", err)
			}
			z.jumping = false
			z.SetPlaying(true)
			z.SetEndBehaviour(renderer.LOOP)
		}
	case constants.ENEMY_CATEGORY:
		if enemy, ok := other.UserData().(*Enemy); ok {
			z.hitEnemy(enemy)
		}
	case constants.LIMIT_CATEGORY:
		return true
	}
	return z.platformsOnly(contact)
}

// hitEnemy stomps the enemy when falling onto its top half. Any other touch
// hurts the player.
func (z *Zippy) hitEnemy(enemy *Enemy) {
	enemyMid := enemy.Position().Y + enemy.Height()/2
	if z.jumping && z.wheel.Velocity().Y < 0 && z.Position().Y+z.Height()/2 > enemyMid {
		enemy.Damage(STOMP_DAMAGE)
		for _, b := range []physics.Body{z.wheel, z.body} {
			b.SetVelocity(math.NewVec2(b.Velocity().X, 0))
		}
		z.wheel.ApplyImpulse(z.stage.units().ToSimUnits(math.NewVec2(0, BOUNCE_IMPULSE)))
		return
	}
	z.Damage(enemy.AttackPower)
}

func (z *Zippy) onBodyCollision(contact physics.Contact) bool {
	if contact.Other.Category() == constants.LIMIT_CATEGORY {
		return true
	}
	return z.platformsOnly(contact)
}

func (z *Zippy) onDeath() {
	z.dead = true
	z.lives--
	if z.stage.Scoreboard != nil {
		z.stage.Scoreboard.OnDeath()
	}
}
