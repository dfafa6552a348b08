package scenes

import (
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/scene"
	"github.com/spaghettifunk/zippy/engine/touch"
	"github.com/spaghettifunk/zippy/game/constants"
)

const (
	PLAY_BUTTON_TEXTURE = "Content/Graphics/UI/PlayButton.png"
	GAME_TITLE          = "zippy's adventure"
)

// MenuScene is the title screen. It starts transparent with its play button
// switched off; fading it in is up to the menu state.
type MenuScene struct {
	*scene.FadeScene

	PlayButton *touch.Button
	title      *renderer.TextDisplay
}

func NewMenuScene(ctx *Context) (*MenuScene, error) {
	m := &MenuScene{FadeScene: scene.NewFadeScene(ctx.Scheduler)}

	sprite, err := ctx.sprite(ctx.UI, constants.ZORDER_SCORE_TEXT, PLAY_BUTTON_TEXTURE, math.NewVec2(-128, -250))
	if err != nil {
		m.Dispose()
		return nil, err
	}
	m.Add(sprite)
	m.PlayButton = touch.NewButton(ctx.Touch, &touch.ButtonConfig{
		TouchOrder:       constants.ZORDER_SCORE_TEXT,
		Area:             sprite,
		TargetDimensions: ctx.Target,
	})
	m.PlayButton.SetTouchEnabled(false)
	m.AddControl(m.PlayButton)

	if m.title, err = ctx.text(ctx.UI, constants.ZORDER_SCORE_TEXT, math.NewVec2(0, 250), GAME_TITLE); err != nil {
		m.Dispose()
		return nil, err
	}
	m.title.SetOffset(math.NewVec2(m.title.Width()/2, m.title.Height()/2))
	m.Add(m.title)

	m.SetAlpha(0)
	m.SetVisible(true)
	return m, nil
}

func (m *MenuScene) Title() *renderer.TextDisplay {
	return m.title
}

func (m *MenuScene) Dispose() {
	if m.PlayButton != nil {
		m.PlayButton.Dispose()
	}
	m.FadeScene.Dispose()
}
