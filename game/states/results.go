package states

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/game/constants"
)

// LevelComplete celebrates the level, advances the level controller and
// either starts the next level or ends the run.
type LevelComplete struct {
	base
}

func NewLevelComplete(flow *Flow) *LevelComplete {
	return &LevelComplete{base{flow: flow}}
}

func (s *LevelComplete) OnEnter() {
	f := s.flow
	core.LogInfo("state: level complete, score %d", f.Scene.TotalScore())
	f.Message.TransitionIn("level complete!", s.onShown)
	report(f.Competitive.SetAchievementProgress(constants.ACHIEVEMENT_FINISH_LEVEL, 1))
}

func (s *LevelComplete) onShown() {
	f := s.flow
	f.Levels.ChangeLevel()
	progress := float32(f.Levels.CurrentLevelIndex()) / float32(f.Levels.NumberOfLevels())
	report(f.Competitive.SetAchievementProgress(constants.ACHIEVEMENT_FINISH_ALL_LEVELS, progress))
	if f.Levels.GameComplete() {
		s.change(NewGameComplete(f))
		return
	}
	f.Message.ChangeText(levelLabel(f.Levels.CurrentLevelIndex()), func() {
		s.change(NewStart(f))
	})
}

// GameComplete shows the final score, records it and returns to the menu.
type GameComplete struct {
	base
}

func NewGameComplete(flow *Flow) *GameComplete {
	return &GameComplete{base{flow: flow}}
}

func (s *GameComplete) OnEnter() {
	f := s.flow
	score := f.Scene.TotalScore()
	core.LogInfo("state: game complete, final score %d", score)
	report(f.Competitive.UpdateLeaderboardProgress(constants.LEADERBOARD_SCORE, score))
	f.Message.ChangeText(fmt.Sprintf("game complete!\nfinal score: %d", score), func() {
		s.change(NewMenu(f))
	})
}

// GameOver is shown once the last life is lost.
type GameOver struct {
	base
}

func NewGameOver(flow *Flow) *GameOver {
	return &GameOver{base{flow: flow}}
}

func (s *GameOver) OnEnter() {
	f := s.flow
	core.LogInfo("state: game over")
	f.Message.TransitionIn("game over!", func() {
		f.Message.HideText()
		s.change(NewMenu(f))
	})
}
