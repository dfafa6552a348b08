package entities

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/game/constants"
)

func platformRecord(pieces string) content.Data {
	return content.ParseRecord("Platform,LeftTexture|l.png,MidTexture|m.png,RightTexture|r.png,NumberOfPieces|" + pieces + ",Position|-100|-50").Data()
}

func TestPlatformLaysOutPiecesAndBodies(t *testing.T) {
	s := newTestStage(t)
	p, err := NewPlatformFromData(s.Stage, platformRecord("4"))
	require.NoError(t, err)

	require.Len(t, p.Sprites(), 4)
	assert.Equal(t, float32(512), p.Width())
	assert.Equal(t, float32(64), p.Height())
	assert.Equal(t, 2, s.textures.refs["m.png"])
	assert.Equal(t, math.NewVec2(284, -50), p.Sprites()[3].Position())
	assert.False(t, p.Visible())
	assert.False(t, p.Enabled())

	u := s.units()
	assert.True(t, u.ToSimUnits(math.NewVec2(156, -18)).Compare(p.box.Position(), 1e-4))
	assert.True(t, u.ToSimUnits(math.NewVec2(-75, 82)).Compare(p.leftCollider.Position(), 1e-4))
	assert.True(t, u.ToSimUnits(math.NewVec2(387, 82)).Compare(p.rightCollider.Position(), 1e-4))
	assert.Equal(t, constants.PLATFORM_CATEGORY, p.box.Category())
	assert.Equal(t, constants.PLATFORM_TURN_CATEGORY, p.leftCollider.Category())
	assert.Same(t, p, p.box.UserData())

	p.SetVisible(true)
	p.SetEnabled(true)
	assert.True(t, p.Sprites()[0].Visible())
	assert.True(t, p.rightCollider.Enabled())

	p.Dispose()
	p.Dispose()
	assert.Equal(t, 0, s.textures.refs["m.png"])
	assert.Equal(t, 0, s.Physics.BodyCount())
}

func TestPlatformRejectsBadConfig(t *testing.T) {
	s := newTestStage(t)
	_, err := NewPlatformFromData(s.Stage, platformRecord("0"))
	assert.True(t, errors.Is(err, core.ErrInvalidValue))

	_, err = NewPlatformFromData(s.Stage, content.ParseRecord("Platform,LeftTexture|l.png,NumberOfPieces|2").Data())
	assert.True(t, errors.Is(err, core.ErrMissingField))

	_, err = NewPlatform(s.Stage, &PlatformConfig{LeftTexture: "missing.png", MidTexture: "m.png", RightTexture: "r.png", NumberOfPieces: 2})
	assert.True(t, errors.Is(err, core.ErrNotFound))
	assert.Equal(t, 0, s.Physics.BodyCount())
}

func TestCoinIsCollectedOnceByThePlayer(t *testing.T) {
	s := newTestStage(t)
	coin, err := NewCoin(s.Stage, math.NewVec2(0, 0))
	require.NoError(t, err)
	assert.True(t, coin.Playing())
	assert.Equal(t, math.NewVec2(32, 32), coin.Offset())
	assert.Equal(t, constants.COLLECTIBLE_CATEGORY, coin.Body().Category())
	assert.Equal(t, constants.PLAYER_CATEGORY, coin.Body().CollidesWith())

	player := s.faller(math.NewVec2(0, 60))
	s.step(60)

	require.Len(t, s.scoreboard.coins, 1)
	assert.Same(t, coin, s.scoreboard.coins[0])
	assert.True(t, coin.Collected())
	assert.True(t, coin.Disposed())
	assert.Less(t, player.Position().Y, float32(0), "the coin never blocks the player")
	assert.Equal(t, 1, s.Physics.BodyCount())
}

func TestCoinIgnoresOtherCategories(t *testing.T) {
	s := newTestStage(t)
	_, err := NewCoin(s.Stage, math.NewVec2Zero())
	require.NoError(t, err)
	b := s.faller(math.NewVec2(0, 60))
	b.SetCategory(constants.ENEMY_CATEGORY)
	touches := 0
	b.OnCollision(func(physics.Contact) bool { touches++; return true })
	s.step(60)
	assert.Empty(t, s.scoreboard.coins)
	assert.Zero(t, touches, "the coin is masked out for enemies")
	assert.Less(t, b.Position().Y, float32(0))
}

func TestTreasureCompletesTheLevel(t *testing.T) {
	s := newTestStage(t)
	treasure, err := NewTreasureFromData(s.Stage, content.ParseRecord("Treasure,Position|10|0").Data())
	require.NoError(t, err)
	assert.Equal(t, "Content/Graphics/Treasure.png", treasure.Texture().Name)

	treasure.SetPosition(math.NewVec2(500, 0))
	assert.True(t, s.units().ToSimUnits(math.NewVec2(500, 0)).Compare(treasure.Body().Position(), 1e-4))

	s.faller(math.NewVec2(500, 60))
	s.step(60)
	assert.Equal(t, 1, s.scoreboard.completed)
	assert.False(t, treasure.Disposed())
}

func TestZippyMovesAndStops(t *testing.T) {
	s := newTestStage(t)
	bar := &fakeHealthBar{}
	z, err := NewZippy(s.Stage, bar)
	require.NoError(t, err)
	assert.Contains(t, s.scheduler.entries, z)
	assert.NotContains(t, s.scheduler.entries, z.Character)

	require.NoError(t, z.MoveLeft())
	assert.Greater(t, z.Joint().MotorSpeed(), float32(0))
	assert.Equal(t, math.NewVec2(-1, 1), z.Scale())
	assert.Equal(t, ANIMATION_RUN, z.ActiveName())

	require.NoError(t, z.MoveRight())
	assert.Less(t, z.Joint().MotorSpeed(), float32(0))
	assert.Equal(t, math.NewVec2(1, 1), z.Scale())

	require.NoError(t, z.Stop())
	assert.Equal(t, float32(0), z.Joint().MotorSpeed())
	assert.Equal(t, ANIMATION_IDLE, z.ActiveName())
}

func TestChangeAnimationReportsMissingRange(t *testing.T) {
	s := newTestStage(t)
	z, err := NewZippy(s.Stage, nil)
	require.NoError(t, err)

	require.NoError(t, z.ChangeAnimation(ANIMATION_RUN))
	err = z.ChangeAnimation("Fly")
	assert.ErrorIs(t, err, core.ErrUnknownAnimation)
	assert.Equal(t, ANIMATION_RUN, z.ActiveName())
}

func TestZippyJumpsOnce(t *testing.T) {
	s := newTestStage(t)
	z, err := NewZippy(s.Stage, nil)
	require.NoError(t, err)

	require.NoError(t, z.Jump())
	assert.True(t, z.Jumping())
	assert.Equal(t, ANIMATION_JUMP, z.ActiveName())
	v := z.Wheel().Velocity().Y
	assert.Greater(t, v, float32(0))

	require.NoError(t, z.Jump())
	assert.Equal(t, v, z.Wheel().Velocity().Y)
}

func TestZippyLandsOnPlatform(t *testing.T) {
	s := newTestStage(t)
	p, err := NewPlatform(s.Stage, &PlatformConfig{LeftTexture: "l.png", MidTexture: "m.png", RightTexture: "r.png", NumberOfPieces: 3, Position: math.NewVec2(-192, -200)})
	require.NoError(t, err)
	p.SetEnabled(true)

	z, err := NewZippy(s.Stage, nil)
	require.NoError(t, err)
	z.SetStartPosition(math.NewVec2(0, 0))
	s.step(60)

	require.NoError(t, z.Jump())
	s.step(120)
	assert.False(t, z.Jumping())
	assert.Equal(t, ANIMATION_IDLE, z.ActiveName())
	z.UpdatePosition()
	assert.Greater(t, z.Position().Y, float32(-136))
}

func TestZippyDamageRecharges(t *testing.T) {
	s := newTestStage(t)
	bar := &fakeHealthBar{}
	z, err := NewZippy(s.Stage, bar)
	require.NoError(t, err)
	z.Initialise()
	assert.Equal(t, constants.PLAYER_MAX_HEALTH, bar.health)

	z.Damage(10)
	assert.Equal(t, float32(90), z.Health())
	assert.Equal(t, float32(90), bar.health)

	z.Damage(10)
	assert.Equal(t, float32(90), z.Health(), "invulnerable while recharging")

	z.Update(150 * time.Millisecond)
	assert.Equal(t, float32(0), z.Colour().W, "flashes while recharging")

	z.Update(time.Second)
	assert.Equal(t, float32(1), z.Colour().W)
	z.Damage(10)
	assert.Equal(t, float32(80), z.Health())
}

func TestZippyDiesBelowTheCamera(t *testing.T) {
	s := newTestStage(t)
	z, err := NewZippy(s.Stage, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, z.Lives())

	z.SetStartPosition(math.NewVec2(0, -2000))
	z.Update(frame)
	assert.True(t, z.Dead())
	assert.Equal(t, 0, z.Lives())
	assert.Equal(t, 1, s.scoreboard.deaths)

	require.NoError(t, s.Store.SetInt(constants.LIVES_SAVE_ID, 3))
	z.Reset()
	assert.False(t, z.Dead())
	assert.Equal(t, 3, z.Lives())
	assert.Equal(t, constants.PLAYER_MAX_HEALTH, z.Health())
}

func TestGoblinTurnsAtTheEdge(t *testing.T) {
	s := newTestStage(t)
	g, err := NewGoblin(s.Stage)
	require.NoError(t, err)
	assert.Equal(t, constants.ENEMY_CATEGORY, g.Body().Category())
	assert.Same(t, g, g.Wheel().UserData())
	assert.Equal(t, ANIMATION_RUN, g.ActiveName())

	speed := g.Joint().MotorSpeed()
	assert.Less(t, speed, float32(0))
	g.Turn()
	assert.Equal(t, -speed, g.Joint().MotorSpeed())
	assert.Equal(t, float32(-1), g.Scale().X)
}

func TestZippyStompsGoblin(t *testing.T) {
	s := newTestStage(t)
	g, err := NewGoblinFromData(s.Stage, content.ParseRecord("Goblin,StartPosition|0|0,AttackPower|15,Active|true").Data())
	require.NoError(t, err)
	assert.True(t, g.Active())
	assert.Equal(t, float32(15), g.AttackPower)

	z, err := NewZippy(s.Stage, nil)
	require.NoError(t, err)
	z.SetStartPosition(math.NewVec2(0, 200))

	z.jumping = true
	z.Wheel().SetVelocity(math.NewVec2(0, -1))
	z.hitEnemy(g)

	assert.True(t, g.Disposed())
	require.Len(t, s.scoreboard.enemies, 1)
	assert.Same(t, g, s.scoreboard.enemies[0])
	assert.Greater(t, z.Wheel().Velocity().Y, float32(0))
	assert.Equal(t, constants.PLAYER_MAX_HEALTH, z.Health())
}

func TestGoblinHurtsWalkingZippy(t *testing.T) {
	s := newTestStage(t)
	g, err := NewGoblin(s.Stage)
	require.NoError(t, err)
	z, err := NewZippy(s.Stage, nil)
	require.NoError(t, err)

	z.hitEnemy(g)
	assert.Equal(t, constants.PLAYER_MAX_HEALTH-GOBLIN_ATTACK, z.Health())
	assert.False(t, g.Disposed())
}

func TestRegistryBuildsLevelEntities(t *testing.T) {
	s := newTestStage(t)
	r := NewRegistry(s.Stage)

	coin, err := r.Create(content.ParseRecord("Coin,Position|0|0"))
	require.NoError(t, err)
	assert.IsType(t, &Collectible{}, coin)

	goblin, err := r.Create(content.ParseRecord("Goblin,StartPosition|100|100"))
	require.NoError(t, err)
	assert.IsType(t, &Enemy{}, goblin)

	_, err = r.Create(content.ParseRecord("Dragon,Position|0|0"))
	assert.True(t, errors.Is(err, core.ErrUnknownType))
}

func TestLoggedErrorsKeepTheirText(t *testing.T) {
	var buf bytes.Buffer
	core.SetLogOutput(&buf)
	t.Cleanup(func() { core.SetLogOutput(io.Discard) })

	err := errors.New("health at 50% after `Goblin`")
	assert.Same(t, err, logged(err))
	assert.Contains(t, buf.String(), "health at 50% after `Goblin`")
}
