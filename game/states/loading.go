package states

import (
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/game/constants"
)

// Loading shows a loading screen while the competitive data is read and
// the game service signs in, then moves to the menu.
type Loading struct {
	base
}

func NewLoading(flow *Flow) *Loading {
	return &Loading{base{flow: flow}}
}

func (s *Loading) OnEnter() {
	f := s.flow
	core.LogInfo("state: loading")
	f.Message.ForceActive("loading", nil)
	f.Competitive.LoadData(constants.ACHIEVEMENT_IDS, constants.LEADERBOARD_IDS)
	f.Competitive.Connect()
	f.Message.ChangeText("", func() {
		s.change(NewMenu(f))
	})
}
