package states

import (
	"github.com/spaghettifunk/zippy/engine/core"
)

// Start loads the current level behind the level title, starts it and
// fades the title away.
type Start struct {
	base
}

func NewStart(flow *Flow) *Start {
	return &Start{base{flow: flow}}
}

func (s *Start) OnEnter() {
	f := s.flow
	index := f.Levels.CurrentLevelIndex()
	core.LogInfo("state: start level %d", index)

	lvl, err := f.Levels.CurrentLevel()
	if err == nil {
		err = f.Scene.LoadLevel(lvl)
	}
	if err != nil {
		core.LogError("level %d could not start: %s", index, err.Error())
		s.change(NewMenu(f))
		return
	}

	f.Scene.SetVisible(true)
	f.Message.ForceActive(levelLabel(index), func() {
		f.Controls.SetVisible(true)
		f.Scene.Start()
		f.Message.TransitionOut(func() {
			s.change(NewPlaying(f))
		})
	})
}
