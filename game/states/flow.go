// Package states is the game flow: loading, the menu, the start of a level,
// playing it, and the screens between levels and at the end of a run.
package states

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/state"
	"github.com/spaghettifunk/zippy/game/competitive"
	"github.com/spaghettifunk/zippy/game/level"
	"github.com/spaghettifunk/zippy/game/scenes"
)

/**
 * @brief Flow is everything the states share. Each state reads what it needs
 * and moves on through States.ChangeState, never directly.
 */
type Flow struct {
	States      *state.Manager
	Context     *scenes.Context
	Scene       *scenes.GameScene
	Message     *scenes.FullscreenMessage
	Controls    *scenes.PlayerControls
	Levels      *level.Controller
	Competitive *competitive.Manager
}

// levelLabel is the title shown for level index, counting from one.
func levelLabel(index int) string {
	return fmt.Sprintf("level %d", index+1)
}

func report(err error) {
	if err != nil {
		core.LogWarn("%s", err)
	}
}

// base gives a state empty OnEnter, OnExit, Update and Dispose.
type base struct {
	flow *Flow
}

func (base) OnEnter()                {}
func (base) OnExit()                 {}
func (base) Update(dt time.Duration) {}
func (base) Dispose()                {}

func (b base) change(s state.State) {
	b.flow.States.ChangeState(s)
}
