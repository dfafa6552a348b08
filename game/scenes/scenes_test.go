package scenes

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/scene"
	"github.com/spaghettifunk/zippy/engine/touch"
	"github.com/spaghettifunk/zippy/game/constants"
	"github.com/spaghettifunk/zippy/game/level"
)

const platformLine = "Platform,LeftTexture|l.png,MidTexture|m.png,RightTexture|r.png,NumberOfPieces|3,Position|0|0"

func newLevel(name, text string) *level.Level {
	return &level.Level{Name: name, Records: content.Parse(text)}
}

func newGameScene(t *testing.T) (*fixture, *GameScene) {
	t.Helper()
	f := newFixture(t)
	g, err := NewGameScene(f.Context)
	require.NoError(t, err)
	return f, g
}

func TestGameSceneLoadsLevel(t *testing.T) {
	f, g := newGameScene(t)
	lvl := newLevel("Level0", "PlayerStart|100|200\n"+platformLine+"\nCoin,Position|300|100\nSprite,Texture|sky.png\n")
	require.NoError(t, g.LoadLevel(lvl))

	units := f.Physics.Units()
	assert.True(t, units.ToSimUnits(math.NewVec2(100, 200)).Compare(g.Zippy.Body().Position(), 1e-4))
	assert.Equal(t, math.NewVec2(100, 200), g.PlayerStart())
	require.Len(t, g.Platforms(), 1)
	assert.Equal(t, float32(192), g.Platforms()[0].Width())
	assert.Len(t, g.Collectibles(), 1)
	assert.Len(t, g.Drawables(), 1)
	assert.Empty(t, g.Enemies())
	assert.Equal(t, "Level0", g.LevelName())
}

func TestGameSceneReadsPlayerStartField(t *testing.T) {
	f, g := newGameScene(t)
	require.NoError(t, g.LoadLevel(newLevel("Level0", "PlayerStart,100|200\n")))
	assert.True(t, f.Physics.Units().ToSimUnits(math.NewVec2(100, 200)).Compare(g.Zippy.Wheel().Position(), 1e-4))

	require.NoError(t, g.LoadLevel(newLevel("Level0", "PlayerStart,Position|-5|7\n")))
	assert.Equal(t, math.NewVec2(-5, 7), g.PlayerStart())

	err := g.LoadLevel(newLevel("Level0", "PlayerStart\n"))
	assert.True(t, errors.Is(err, core.ErrMissingField))
}

func TestGameSceneAbortsOnBadRecord(t *testing.T) {
	f, g := newGameScene(t)
	err := g.LoadLevel(newLevel("Level1", platformLine+"\nDragon,Position|0|0\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownType))
	assert.Contains(t, err.Error(), "line 2")

	assert.Empty(t, g.Platforms())
	assert.Equal(t, "", g.LevelName())
	assert.Equal(t, 0, f.textures.refs["m.png"])
}

func TestCameraLimitsPlaceTheWalls(t *testing.T) {
	f, g := newGameScene(t)
	require.NoError(t, g.LoadLevel(newLevel("Level0", "CameraLimits,TopLeft|0|1080,BottomRight|4000|0,StartPosition|960|540\n")))

	units := f.Physics.Units()
	assert.True(t, units.ToSimUnits(math.NewVec2(-950, 1080)).Compare(g.leftLimit.Position(), 1e-3))
	assert.True(t, units.ToSimUnits(math.NewVec2(4970, 0)).Compare(g.rightLimit.Position(), 1e-3))
	assert.Equal(t, constants.LIMIT_CATEGORY, g.leftLimit.Category())
	assert.Equal(t, math.NewVec2(960, 540), f.Camera.StartPosition())
}

func TestGameSceneScores(t *testing.T) {
	_, g := newGameScene(t)
	require.NoError(t, g.LoadLevel(newLevel("Level0", "Coin,Position|300|100\nGoblin,StartPosition|500|0\n")))
	completed := 0
	g.OnLevelComplete = func() { completed++ }

	coin := g.Collectibles()[0]
	g.IncrementCoins(coin)
	assert.Empty(t, g.Collectibles())
	assert.Equal(t, 1, g.Coins())
	assert.Equal(t, constants.SCORE_COIN, g.Score())
	assert.Equal(t, "100", g.scoreText.Text())

	g.OnEnemyDefeated(g.Enemies()[0])
	assert.Empty(t, g.Enemies())
	assert.Equal(t, 600, g.Score())

	g.OnComplete()
	assert.Equal(t, 1, completed)
	assert.Equal(t, 1600, g.TotalScore())
	assert.Equal(t, 0, g.LevelScore())
	assert.Equal(t, "1600", g.scoreText.Text())
}

func TestGameSceneStartsAndStops(t *testing.T) {
	f, g := newGameScene(t)
	require.NoError(t, g.LoadLevel(newLevel("Level0", "PlayerStart|100|200\n"+platformLine+"\nGoblin,StartPosition|500|0\n")))
	g.SetVisible(true)
	g.InitialiseGame()
	assert.Equal(t, "x1", g.livesText.Text())

	g.Start()
	assert.True(t, g.Running())
	assert.True(t, g.Zippy.Active())
	assert.True(t, g.Enemies()[0].Active())
	assert.True(t, g.Platforms()[0].Enabled())
	assert.True(t, f.Physics.Enabled())
	assert.True(t, f.Camera.Active())

	g.Stop()
	assert.False(t, g.Running())
	assert.False(t, g.Zippy.Active())
	assert.False(t, f.Physics.Enabled())
}

func TestGameSceneReloadsActiveLevel(t *testing.T) {
	_, g := newGameScene(t)
	require.NoError(t, g.LoadLevel(newLevel("Level0", platformLine+"\n")))
	g.Start()

	require.NoError(t, g.ReloadLevel(newLevel("Level1", "")))
	assert.Len(t, g.Platforms(), 1, "other levels are ignored")

	require.NoError(t, g.ReloadLevel(newLevel("Level0", platformLine+"\n"+platformLine+"\nCoin,Position|0|0\n")))
	assert.Len(t, g.Platforms(), 2)
	assert.Len(t, g.Collectibles(), 1)
	assert.True(t, g.Running())
	assert.True(t, g.Platforms()[1].Enabled())
}

func TestGameSceneRestoresLevelWhenReloadFails(t *testing.T) {
	_, g := newGameScene(t)
	require.NoError(t, g.LoadLevel(newLevel("Level0", platformLine+"\n")))
	g.Start()

	err := g.ReloadLevel(newLevel("Level0", platformLine+"\nDragon,Position|0|0\n"))
	assert.ErrorIs(t, err, core.ErrUnknownType)
	assert.Len(t, g.Platforms(), 1)
	assert.Equal(t, "Level0", g.LevelName())
	assert.True(t, g.Running())
}

func TestGameSceneReportsDeath(t *testing.T) {
	_, g := newGameScene(t)
	deaths := 0
	g.OnPlayerDeath = func() { deaths++ }
	g.Zippy.Damage(constants.PLAYER_MAX_HEALTH)
	assert.Equal(t, 1, deaths)
	assert.Equal(t, 0, g.Zippy.Lives())
}

func TestGameSceneDisposeReleasesEverything(t *testing.T) {
	f, g := newGameScene(t)
	require.NoError(t, g.LoadLevel(newLevel("Level0", platformLine+"\nCoin,Position|0|0\n")))
	g.Dispose()
	g.Dispose()

	assert.Equal(t, 0, f.Physics.BodyCount())
	for name, refs := range f.textures.refs {
		assert.Equal(t, 0, refs, name)
	}
}

func TestFullscreenMessageTransitions(t *testing.T) {
	f := newFixture(t)
	m, err := NewFullscreenMessage(f.Context)
	require.NoError(t, err)
	assert.False(t, m.CanUpdate())

	done := 0
	m.TransitionIn("level 1", func() { done++ })
	assert.Equal(t, "level 1", m.Text())
	f.scheduler.tick(250 * time.Millisecond)
	assert.InDelta(t, 0.5, m.BackgroundAlpha(), 1e-3)
	assert.InDelta(t, 0.5, m.TextAlpha(), 1e-3)

	f.scheduler.tick(250 * time.Millisecond)
	assert.Equal(t, MESSAGE_HOLDING, m.State())
	assert.Equal(t, float32(1), m.BackgroundAlpha())
	f.scheduler.tick(MESSAGE_HOLD_TIME)
	assert.Equal(t, MESSAGE_IDLE, m.State())
	assert.Equal(t, 1, done)

	f.scheduler.tick(time.Second)
	assert.Equal(t, 1, done, "hooks fire once")

	m.ChangeText("level 2", func() { done++ })
	f.scheduler.tick(MESSAGE_TEXT_FADE_TIME)
	assert.Equal(t, MESSAGE_FADING_IN_TEXT, m.State())
	assert.Equal(t, "level 2", m.Text())
	assert.Equal(t, float32(0), m.TextAlpha())
	f.scheduler.tick(MESSAGE_TEXT_FADE_TIME)
	f.scheduler.tick(MESSAGE_HOLD_TIME)
	assert.Equal(t, 2, done)

	m.TransitionOut(func() { done++ })
	f.scheduler.tick(MESSAGE_TRANSITION_TIME)
	assert.Equal(t, float32(0), m.BackgroundAlpha())
	assert.Equal(t, 3, done)
}

func TestFullscreenMessageForceActive(t *testing.T) {
	f := newFixture(t)
	m, err := NewFullscreenMessage(f.Context)
	require.NoError(t, err)

	first, second := 0, 0
	m.ForceActive("game over", func() { first++ })
	assert.Equal(t, float32(1), m.BackgroundAlpha())
	assert.Equal(t, float32(1), m.TextAlpha())

	m.ForceActive("game over", func() { second++ })
	f.scheduler.tick(time.Millisecond)
	assert.Equal(t, 0, first, "a replaced hook never fires")
	assert.Equal(t, 1, second)

	m.HideText()
	assert.Equal(t, float32(0), m.TextAlpha())

	m.TransitionOut(func() { first++ })
	m.Dispose()
	assert.False(t, f.scheduler.contains(m))
	assert.Equal(t, 0, first)
}

func TestMenuSceneEnablesPlayAfterFade(t *testing.T) {
	f := newFixture(t)
	menu, err := NewMenuScene(f.Context)
	require.NoError(t, err)
	assert.Equal(t, GAME_TITLE, menu.Title().Text())
	assert.Equal(t, float32(0), menu.Title().Colour().W)
	assert.False(t, menu.PlayButton.TouchEnabled())

	played := 0
	menu.PlayButton.OnButtonPress = func(*touch.Button) { played++ }
	menu.StartFade(0, 1, func() { menu.SetControlsEnabled(true) })
	f.scheduler.tick(scene.FADE_TIME / 2)
	f.tap(0, math.NewVec2(-100, -230))
	assert.Equal(t, 0, played)

	f.scheduler.tick(scene.FADE_TIME)
	assert.Equal(t, float32(1), menu.Title().Colour().W)
	assert.True(t, menu.PlayButton.TouchEnabled())
	f.tap(1, math.NewVec2(-100, -230))
	assert.Equal(t, 1, played)

	menu.Dispose()
	assert.Empty(t, f.Touch.Listeners())
}

type fakeMover struct {
	calls []string
}

func (m *fakeMover) record(call string) error {
	m.calls = append(m.calls, call)
	return nil
}

func (m *fakeMover) MoveLeft() error  { return m.record("left") }
func (m *fakeMover) MoveRight() error { return m.record("right") }
func (m *fakeMover) Stop() error      { return m.record("stop") }
func (m *fakeMover) Jump() error      { return m.record("jump") }

func TestPlayerControlsHoldOneDirection(t *testing.T) {
	f := newFixture(t)
	mover := &fakeMover{}
	c, err := NewPlayerControls(f.Context, mover)
	require.NoError(t, err)

	left := math.NewVec2(-830, -470)
	right := math.NewVec2(-530, -470)
	jump := math.NewVec2(670, -470)

	f.tap(0, left)
	f.tap(1, right)
	f.lift(1, right)
	f.tap(2, jump)
	f.lift(0, left)
	assert.Equal(t, []string{"left", "jump", "stop"}, mover.calls)

	mover.calls = nil
	f.tap(3, right)
	c.SetEnabled(false)
	f.lift(3, right)
	f.tap(4, left)
	assert.Equal(t, []string{"right"}, mover.calls)

	c.SetEnabled(true)
	f.tap(5, left)
	assert.Equal(t, []string{"right", "left"}, mover.calls)

	c.SetVisible(false)
	assert.False(t, c.Visible())
	c.Dispose()
	assert.Empty(t, f.Touch.Listeners())
}
