package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type journal struct {
	lines []string
}

type fakeState struct {
	name     string
	log      *journal
	onUpdate func()
}

func (s *fakeState) OnEnter() { s.log.lines = append(s.log.lines, s.name+".enter") }
func (s *fakeState) OnExit()  { s.log.lines = append(s.log.lines, s.name+".exit") }
func (s *fakeState) Dispose() { s.log.lines = append(s.log.lines, s.name+".dispose") }
func (s *fakeState) Update(dt time.Duration) {
	s.log.lines = append(s.log.lines, s.name+".update")
	if s.onUpdate != nil {
		s.onUpdate()
	}
}

func TestStartStateSwapsSynchronously(t *testing.T) {
	j := &journal{}
	m := NewManager()
	assert.False(t, m.CanUpdate())

	m.StartState(&fakeState{name: "a", log: j})
	m.StartState(&fakeState{name: "b", log: j})
	assert.Equal(t, []string{"a.enter", "a.exit", "a.dispose", "b.enter"}, j.lines)
	assert.True(t, m.CanUpdate())
}

func TestStartingTheCurrentStateIsIgnored(t *testing.T) {
	j := &journal{}
	m := NewManager()
	a := &fakeState{name: "a", log: j}
	a.onUpdate = func() { m.ChangeState(a) }

	m.StartState(a)
	m.StartState(a)
	m.Update(time.Millisecond)
	assert.Equal(t, []string{"a.enter", "a.update"}, j.lines)
	assert.Same(t, a, m.Current())
	assert.False(t, m.Pending())
}

func TestChangeStateIsDeferredUntilUpdateReturns(t *testing.T) {
	j := &journal{}
	m := NewManager()
	b := &fakeState{name: "b", log: j}
	a := &fakeState{name: "a", log: j}
	a.onUpdate = func() {
		m.ChangeState(b)
		j.lines = append(j.lines, "a.after-change")
	}
	m.StartState(a)
	m.Update(time.Millisecond)

	assert.Equal(t, []string{"a.enter", "a.update", "a.after-change", "a.exit", "a.dispose", "b.enter"}, j.lines)
	assert.Same(t, b, m.Current())
	assert.False(t, m.Pending())
}

func TestLastChangeStateWins(t *testing.T) {
	j := &journal{}
	m := NewManager()
	m.StartState(&fakeState{name: "a", log: j})
	b := &fakeState{name: "b", log: j}
	c := &fakeState{name: "c", log: j}
	m.ChangeState(b)
	m.ChangeState(c)
	m.Update(0)

	assert.Same(t, c, m.Current())
	assert.NotContains(t, j.lines, "b.enter")
}

func TestShutdownDisposesCurrent(t *testing.T) {
	j := &journal{}
	m := NewManager()
	m.StartState(&fakeState{name: "a", log: j})
	m.ChangeState(&fakeState{name: "b", log: j})
	m.Shutdown()

	assert.Equal(t, []string{"a.enter", "a.exit", "a.dispose"}, j.lines)
	assert.Nil(t, m.Current())
}
