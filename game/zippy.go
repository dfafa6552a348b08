// Package game is Zippy's adventure: it builds the canvases, scenes and game
// flow on top of the engine services and starts the loading state.
package game

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/renderer/components"
	"github.com/spaghettifunk/zippy/engine/systems"
	"github.com/spaghettifunk/zippy/game/competitive"
	"github.com/spaghettifunk/zippy/game/constants"
	"github.com/spaghettifunk/zippy/game/level"
	"github.com/spaghettifunk/zippy/game/scenes"
	"github.com/spaghettifunk/zippy/game/states"
)

// ZippyGame is the engine.Game for Zippy.
type ZippyGame struct {
	Flow *states.Flow

	watchers []func()
}

func NewZippyGame() *ZippyGame {
	return &ZippyGame{}
}

// InitialResolution is the resolution every level and UI position is
// authored against.
func (g *ZippyGame) InitialResolution() math.Vec2 {
	return math.NewVec2(1920, 1080)
}

// CalculateExtraOffset keeps the view anchored to the bottom left.
func (g *ZippyGame) CalculateExtraOffset(heightDifference float32) math.Vec2 {
	return math.NewVec2Zero()
}

func (g *ZippyGame) LoadContent(sm *systems.SystemManager) error {
	target := sm.Renderer.TargetDimensions()

	font, err := sm.Fonts.Acquire(constants.KROMASKY_FONT)
	if err != nil {
		return fmt.Errorf("func LoadContent - %w", err)
	}

	camera := components.NewLookAtCamera(math.NewVec2Zero(), target)
	world, err := sm.NewCanvas(constants.CANVAS_WORLD, camera)
	if err != nil {
		return fmt.Errorf("func LoadContent - world canvas: %w", err)
	}
	ui, err := sm.NewCanvas(constants.CANVAS_UI, components.NewCamera(math.NewVec2Zero(), target))
	if err != nil {
		return fmt.Errorf("func LoadContent - ui canvas: %w", err)
	}
	sm.Scheduler.Add(camera)

	ctx := &scenes.Context{
		World:     world,
		UI:        ui,
		Camera:    camera,
		Scheduler: sm.Scheduler,
		Physics:   sm.Physics,
		Touch:     sm.Touch,
		Store:     sm.Store,
		Fonts:     &fontText{fonts: sm.Fonts, font: font},
		Target:    target,
	}

	flow := &states.Flow{States: sm.States, Context: ctx}
	if flow.Scene, err = scenes.NewGameScene(ctx); err != nil {
		return err
	}
	if flow.Message, err = scenes.NewFullscreenMessage(ctx); err != nil {
		return err
	}
	if flow.Controls, err = scenes.NewPlayerControls(ctx, flow.Scene.Zippy); err != nil {
		return err
	}
	if flow.Levels, err = level.NewController(sm.Assets, sm.Config.Content.NumberOfLevels); err != nil {
		return err
	}
	flow.Competitive = competitive.NewManager(sm.Store, nil)
	g.Flow = flow

	if sm.Config.Content.HotReload {
		for i := 0; i < flow.Levels.NumberOfLevels(); i++ {
			g.watchers = append(g.watchers, sm.Assets.OnChange(level.Name(i), g.reloadLevel))
		}
		core.LogInfo("watching %d level files", len(g.watchers))
	}

	sm.States.StartState(states.NewLoading(flow))
	return nil
}

// reloadLevel swaps a changed level file into the controller and, when that
// level is on screen, into the game scene.
func (g *ZippyGame) reloadLevel(name string) {
	changed, err := g.Flow.Levels.Reload(name)
	if err != nil {
		core.LogWarn("level `%s` not reloaded: %s", name, err.Error())
		return
	}
	if !changed {
		return
	}
	lvl, err := g.Flow.Levels.CurrentLevel()
	if err != nil || lvl.Name != name {
		return
	}
	if err := g.Flow.Scene.ReloadLevel(lvl); err != nil {
		core.LogWarn("level `%s` not reloaded: %s", name, err.Error())
		return
	}
	core.LogInfo("level `%s` reloaded", name)
}

// StopWatching drops the level file subscriptions.
func (g *ZippyGame) StopWatching() {
	for _, stop := range g.watchers {
		stop()
	}
	g.watchers = nil
}

// fontText builds text displays in the game font.
type fontText struct {
	fonts *systems.FontSystem
	font  *systems.Font
}

func (f *fontText) NewText(canvas *renderer.Canvas, zOrder int) (*renderer.TextDisplay, error) {
	return f.fonts.NewTextDisplay(canvas, zOrder, f.font)
}
