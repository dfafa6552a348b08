package states

import (
	"github.com/spaghettifunk/zippy/engine/core"
)

// Playing hands the player the controls until the level is complete or the
// player dies.
type Playing struct {
	base
}

func NewPlaying(flow *Flow) *Playing {
	return &Playing{base{flow: flow}}
}

func (s *Playing) OnEnter() {
	f := s.flow
	core.LogInfo("state: playing")
	f.Scene.SetVisible(true)
	f.Controls.SetEnabled(true)
	f.Scene.OnLevelComplete = func() {
		s.change(NewLevelComplete(f))
	}
	f.Scene.OnPlayerDeath = s.onDeath
}

func (s *Playing) onDeath() {
	f := s.flow
	if f.Scene.Zippy.Lives() <= 0 {
		s.change(NewGameOver(f))
	} else {
		s.change(NewStart(f))
	}
	f.Scene.UpdateLivesText()
}

func (s *Playing) OnExit() {
	f := s.flow
	f.Controls.SetEnabled(false)
	f.Scene.OnLevelComplete = nil
	f.Scene.OnPlayerDeath = nil
	f.Scene.Stop()
}
