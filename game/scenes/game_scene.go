package scenes

import (
	"fmt"
	"strconv"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/physics"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/scene"
	"github.com/spaghettifunk/zippy/game/constants"
	"github.com/spaghettifunk/zippy/game/entities"
	"github.com/spaghettifunk/zippy/game/level"
)

const (
	HEALTH_BG_TEXTURE  = "Content/Graphics/UI/HealthBg.png"
	LIVES_ICON_TEXTURE = "Content/Graphics/UI/LivesIcon.png"

	LIMIT_WIDTH   float32 = 20
	LIMIT_DENSITY float32 = 10
	// LIMIT_MARGIN is how far past the camera limits, beyond half a screen,
	// the invisible walls stand.
	LIMIT_MARGIN float32 = 10
)

/**
 * @brief GameScene is the level being played. It owns the HUD, the player,
 * the two invisible walls that keep the player inside the camera limits and
 * whatever the current level file placed.
 *
 * It is the entities' Scoreboard: coins, defeated enemies, the treasure and
 * the player's death are all reported here and scored.
 */
type GameScene struct {
	*scene.Scene

	ctx      *Context
	stage    *entities.Stage
	registry *content.Registry[entities.Entity]

	Zippy      *entities.Zippy
	healthBar  *HealthBar
	healthBg   *renderer.Sprite
	livesIcon  *renderer.Sprite
	scoreText  *renderer.TextDisplay
	livesText  *renderer.TextDisplay
	leftLimit  physics.Body
	rightLimit physics.Body

	enemies      []*entities.Enemy
	collectibles []*entities.Collectible
	platforms    []*entities.Platform
	drawables    []scene.Member

	level       *level.Level
	playerStart math.Vec2
	running     bool
	coins      int
	levelScore int
	totalScore int

	// OnLevelComplete runs once the treasure is collected.
	OnLevelComplete func()
	// OnPlayerDeath runs when the player loses a life.
	OnPlayerDeath func()
}

func NewGameScene(ctx *Context) (*GameScene, error) {
	g := &GameScene{Scene: scene.NewScene(ctx.Scheduler), ctx: ctx}
	if err := g.build(); err != nil {
		g.Dispose()
		return nil, err
	}
	return g, nil
}

func (g *GameScene) build() error {
	t := g.ctx.Target
	var err error

	if g.scoreText, err = g.ctx.text(g.ctx.UI, constants.ZORDER_SCORE_TEXT, math.NewVec2(-t.X/2+50, t.Y/2-60), "0"); err != nil {
		return err
	}
	g.Add(g.scoreText)

	bgPos := math.NewVec2(t.X/2-180, t.Y/2-60)
	if g.healthBg, err = g.ctx.sprite(g.ctx.UI, constants.ZORDER_HEALTH_BG, HEALTH_BG_TEXTURE, bgPos); err != nil {
		return err
	}
	g.Add(g.healthBg)
	if g.healthBar, err = NewHealthBar(g.ctx.UI, bgPos); err != nil {
		return err
	}
	g.Add(g.healthBar)

	g.stage = &entities.Stage{
		Canvas:     g.ctx.World,
		Scheduler:  g.ctx.Scheduler,
		Physics:    g.ctx.Physics,
		Camera:     g.ctx.Camera,
		Store:      g.ctx.Store,
		Scoreboard: g,
	}
	g.registry = entities.NewRegistry(g.stage)
	if g.Zippy, err = entities.NewZippy(g.stage, g.healthBar); err != nil {
		return err
	}
	g.Zippy.SetVisible(true)
	g.Zippy.SetActive(false)
	g.Add(g.Zippy)
	if g.ctx.Camera != nil {
		g.ctx.Camera.SetTarget(g.Zippy)
	}

	if g.livesIcon, err = g.ctx.sprite(g.ctx.UI, constants.ZORDER_LIVES, LIVES_ICON_TEXTURE, math.NewVec2(t.X/2-150, t.Y/2-110)); err != nil {
		return err
	}
	g.Add(g.livesIcon)
	if g.livesText, err = g.ctx.text(g.ctx.UI, constants.ZORDER_LIVES, math.NewVec2(t.X/2-100, t.Y/2-110), livesLabel(g.Zippy.Lives())); err != nil {
		return err
	}
	g.Add(g.livesText)

	units := g.ctx.Physics.Units()
	size := units.ToSimUnits(math.NewVec2(LIMIT_WIDTH, t.Y))
	g.leftLimit = g.ctx.Physics.CreateRectangle(math.NewVec2Zero(), size, LIMIT_DENSITY)
	g.rightLimit = g.ctx.Physics.CreateRectangle(math.NewVec2Zero(), size, LIMIT_DENSITY)
	for _, b := range []physics.Body{g.leftLimit, g.rightLimit} {
		b.SetCategory(constants.LIMIT_CATEGORY)
	}
	return nil
}

func livesLabel(lives int) string {
	return "x" + strconv.Itoa(lives)
}

func (g *GameScene) Enemies() []*entities.Enemy {
	return g.enemies
}

func (g *GameScene) Collectibles() []*entities.Collectible {
	return g.collectibles
}

func (g *GameScene) Platforms() []*entities.Platform {
	return g.platforms
}

func (g *GameScene) Drawables() []scene.Member {
	return g.drawables
}

// LevelName is the name of the level on screen, empty when none is loaded.
func (g *GameScene) LevelName() string {
	if g.level == nil {
		return ""
	}
	return g.level.Name
}

func (g *GameScene) Running() bool {
	return g.running
}

func (g *GameScene) Coins() int {
	return g.coins
}

func (g *GameScene) LevelScore() int {
	return g.levelScore
}

func (g *GameScene) TotalScore() int {
	return g.totalScore
}

func (g *GameScene) Score() int {
	return g.totalScore + g.levelScore
}

// InitialiseGame resets the player and the score for a new run.
func (g *GameScene) InitialiseGame() {
	g.Zippy.Reset()
	g.UpdateLivesText()
	g.totalScore = 0
	g.coins = 0
	g.setScoreText(0)
}

// LoadLevel replaces the current level content with lvl. A bad record
// aborts the load and leaves the scene empty.
func (g *GameScene) LoadLevel(lvl *level.Level) error {
	g.clearLevel()
	for _, rec := range lvl.Records {
		if err := g.loadRecord(rec); err != nil {
			g.clearLevel()
			return logged(fmt.Errorf("func LoadLevel - `%s` line %d: %w", lvl.Name, rec.Line, err))
		}
	}
	g.level = lvl
	core.LogInfo("level `%s` loaded: %d platforms, %d collectibles, %d enemies", lvl.Name, len(g.platforms), len(g.collectibles), len(g.enemies))
	return nil
}

// ReloadLevel swaps in a changed level file. It only acts when lvl is the
// level on screen; a running level restarts from the player start. When
// the new file does not load the previous content is put back.
func (g *GameScene) ReloadLevel(lvl *level.Level) error {
	previous := g.level
	if previous == nil || lvl.Name != previous.Name {
		return nil
	}
	running := g.running
	if running {
		g.Stop()
	}
	err := g.LoadLevel(lvl)
	if err != nil {
		if restoreErr := g.LoadLevel(previous); restoreErr != nil {
			return restoreErr
		}
	}
	if running {
		g.Start()
	}
	return err
}

func (g *GameScene) loadRecord(rec content.Record) error {
	data := rec.Data()
	switch rec.Tag {
	case "Sprite":
		s, err := renderer.NewSpriteFromData(g.ctx.World, data)
		if err != nil {
			return err
		}
		g.addDrawable(s)
	case "TextDisplay":
		t, err := renderer.NewTextDisplayFromData(g.ctx.World, data)
		if err != nil {
			return err
		}
		g.addDrawable(t)
	case "AnimatedSprite":
		a, err := renderer.NewAnimatedSpriteFromData(g.ctx.World, g.ctx.Scheduler, data)
		if err != nil {
			return err
		}
		g.addDrawable(a)
	case "PlayerStart":
		p, err := playerStart(rec)
		if err != nil {
			return err
		}
		g.playerStart = p
		g.Zippy.SetStartPosition(p)
	case "CameraLimits":
		if err := g.ctx.Camera.SetLimitsFromData(data); err != nil {
			return err
		}
		g.placeLimits()
	default:
		e, err := g.registry.Create(rec)
		if err != nil {
			return err
		}
		g.classify(e)
	}
	return nil
}

// playerStart reads `PlayerStart|x|y`, `PlayerStart,x|y` or
// `PlayerStart,Position|x|y`.
func playerStart(rec content.Record) (math.Vec2, error) {
	if len(rec.Args) >= 2 {
		return parseVec2(rec.Args[0], rec.Args[1])
	}
	data := rec.Data()
	if data.Has("Position") {
		return data.RequireVec2("Position")
	}
	if len(rec.Fields) > 0 && len(rec.Fields[0].Values) > 0 {
		return parseVec2(rec.Fields[0].Key, rec.Fields[0].Values[0])
	}
	return math.Vec2{}, fmt.Errorf("PlayerStart: position: %w", core.ErrMissingField)
}

func parseVec2(xs, ys string) (math.Vec2, error) {
	x, err := strconv.ParseFloat(xs, 32)
	if err != nil {
		return math.Vec2{}, fmt.Errorf("PlayerStart: `%s`: %w", xs, core.ErrInvalidNumber)
	}
	y, err := strconv.ParseFloat(ys, 32)
	if err != nil {
		return math.Vec2{}, fmt.Errorf("PlayerStart: `%s`: %w", ys, core.ErrInvalidNumber)
	}
	return math.NewVec2(float32(x), float32(y)), nil
}

// placeLimits stands the walls half a screen outside the camera limits, so
// the player can walk up to the edge of the visible level and no further.
func (g *GameScene) placeLimits() {
	t := g.ctx.Target
	units := g.ctx.Physics.Units()
	tl, br := g.ctx.Camera.TopLeft(), g.ctx.Camera.BottomRight()
	g.leftLimit.SetPosition(units.ToSimUnits(math.NewVec2(tl.X-(t.X/2-LIMIT_MARGIN), tl.Y)))
	g.rightLimit.SetPosition(units.ToSimUnits(math.NewVec2(br.X+(t.X/2+LIMIT_MARGIN), br.Y)))
}

func (g *GameScene) classify(e entities.Entity) {
	switch v := e.(type) {
	case *entities.Enemy:
		g.enemies = append(g.enemies, v)
		g.Add(v)
	case *entities.Collectible:
		g.collectibles = append(g.collectibles, v)
		g.Add(v)
	case *entities.Platform:
		g.platforms = append(g.platforms, v)
		for _, s := range v.Sprites() {
			g.Add(s)
		}
	default:
		core.LogWarn("level entity %T has no place in the scene", e)
		e.Dispose()
	}
}

func (g *GameScene) addDrawable(m scene.Member) {
	g.drawables = append(g.drawables, m)
	g.Add(m)
}

// clearLevel disposes everything the previous level placed.
func (g *GameScene) clearLevel() {
	for _, e := range g.enemies {
		g.Remove(e)
		e.Dispose()
	}
	for _, c := range g.collectibles {
		g.Remove(c)
		c.Dispose()
	}
	for _, p := range g.platforms {
		for _, s := range p.Sprites() {
			g.Remove(s)
		}
		p.Dispose()
	}
	for _, d := range g.drawables {
		g.Remove(d)
		d.Dispose()
	}
	g.enemies = nil
	g.collectibles = nil
	g.platforms = nil
	g.drawables = nil
	g.level = nil
	g.playerStart = math.Vec2{}
}

func (g *GameScene) PlayerStart() math.Vec2 {
	return g.playerStart
}

// Start brings the loaded level to life with the player back at its start.
func (g *GameScene) Start() {
	g.Zippy.SetStartPosition(g.playerStart)
	g.Zippy.SetActive(true)
	for _, e := range g.enemies {
		e.SetActive(true)
		e.SetVisible(true)
	}
	for _, c := range g.collectibles {
		c.SetVisible(true)
	}
	for _, p := range g.platforms {
		p.SetVisible(true)
		p.SetEnabled(true)
	}
	for _, d := range g.drawables {
		if v, ok := d.(interface{ SetVisible(bool) }); ok {
			v.SetVisible(true)
		}
	}
	g.ctx.Camera.SetActive(true)
	g.ctx.Camera.Reset()
	g.levelScore = 0
	g.ctx.Physics.SetEnabled(true)
	g.setScoreText(g.totalScore)
	g.Zippy.Initialise()
	g.running = true
}

// Stop freezes the level in place.
func (g *GameScene) Stop() {
	g.Zippy.SetActive(false)
	for _, e := range g.enemies {
		e.SetActive(false)
	}
	g.ctx.Physics.SetEnabled(false)
	must(g.Zippy.Stop())
	g.running = false
}

func (g *GameScene) setScoreText(score int) {
	if err := g.scoreText.SetText(strconv.Itoa(score)); err != nil {
		core.LogError("%s", err)
	}
}

func (g *GameScene) UpdateLivesText() {
	if err := g.livesText.SetText(livesLabel(g.Zippy.Lives())); err != nil {
		core.LogError("%s", err)
	}
}

func (g *GameScene) IncrementCoins(coin *entities.Collectible) {
	g.coins++
	g.collectibles = removeItem(g.collectibles, coin)
	g.Remove(coin)
	g.levelScore += constants.SCORE_COIN
	g.setScoreText(g.Score())
}

func (g *GameScene) OnEnemyDefeated(enemy *entities.Enemy) {
	g.enemies = removeItem(g.enemies, enemy)
	g.Remove(enemy)
	g.levelScore += constants.SCORE_ENEMY
	g.setScoreText(g.Score())
}

// OnComplete banks the level score plus the completion bonus.
func (g *GameScene) OnComplete() {
	g.totalScore += constants.SCORE_LEVEL_COMPLETE + g.levelScore
	g.levelScore = 0
	g.setScoreText(g.totalScore)
	if g.OnLevelComplete != nil {
		g.OnLevelComplete()
	}
}

func (g *GameScene) OnDeath() {
	if g.OnPlayerDeath != nil {
		g.OnPlayerDeath()
	}
}

func removeItem[T comparable](items []T, item T) []T {
	for i, v := range items {
		if v == item {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// Dispose tears down the level, the HUD and the player.
func (g *GameScene) Dispose() {
	if g.Disposed() {
		return
	}
	g.clearLevel()
	for _, b := range []physics.Body{g.leftLimit, g.rightLimit} {
		if b != nil {
			g.ctx.Physics.RemoveBody(b)
		}
	}
	g.OnLevelComplete = nil
	g.OnPlayerDeath = nil
	g.Scene.Dispose()
}
