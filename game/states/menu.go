package states

import (
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/touch"
	"github.com/spaghettifunk/zippy/game/scenes"
)

// Menu fades the title screen in over a black background and waits for
// the play button.
type Menu struct {
	base
	menu *scenes.MenuScene
}

func NewMenu(flow *Flow) *Menu {
	return &Menu{base: base{flow: flow}}
}

func (s *Menu) Scene() *scenes.MenuScene {
	return s.menu
}

func (s *Menu) OnEnter() {
	f := s.flow
	core.LogInfo("state: menu")
	f.Scene.SetVisible(false)
	f.Controls.SetVisible(false)
	f.Controls.SetEnabled(false)
	f.Message.ForceActive("", nil)

	menu, err := scenes.NewMenuScene(f.Context)
	if err != nil {
		core.LogError("menu unavailable: %s", err.Error())
		return
	}
	s.menu = menu
	menu.PlayButton.OnButtonRelease = s.onPlay
	menu.StartFade(0, 1, func() {
		menu.SetControlsEnabled(true)
	})
}

func (s *Menu) onPlay(*touch.Button) {
	f := s.flow
	s.menu.StartFade(1, 0, func() {
		f.Levels.Reset()
		f.Scene.InitialiseGame()
		s.change(NewStart(f))
	})
}

func (s *Menu) Dispose() {
	if s.menu != nil {
		s.menu.Dispose()
		s.menu = nil
	}
}
