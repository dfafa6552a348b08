// Package state runs the top-level game flow as one active state at a time.
package state

import (
	"time"
)

// State is one phase of the game flow.
type State interface {
	OnEnter()
	OnExit()
	Update(dt time.Duration)
	Dispose()
}

/**
 * @brief Manager owns the current state. StartState swaps immediately;
 * ChangeState records a target that is swapped in once the current state's
 * Update returns. Only one target is pending: the last ChangeState wins.
 */
type Manager struct {
	current State
	next    State
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Current() State {
	return m.current
}

// Pending reports whether a deferred change is waiting.
func (m *Manager) Pending() bool {
	return m.next != nil
}

// StartState exits and disposes the current state, then enters s.
// Starting the state that is already current does nothing.
func (m *Manager) StartState(s State) {
	if s != nil && s == m.current {
		return
	}
	if m.current != nil {
		m.current.OnExit()
		m.current.Dispose()
	}
	m.current = s
	if s != nil {
		s.OnEnter()
	}
}

func (m *Manager) ChangeState(s State) {
	m.next = s
}

func (m *Manager) CanUpdate() bool {
	return m.current != nil
}

func (m *Manager) Update(dt time.Duration) {
	if m.current == nil {
		return
	}
	m.current.Update(dt)
	if m.next != nil {
		next := m.next
		m.next = nil
		m.StartState(next)
	}
}

// Shutdown exits and disposes whatever is running and drops any pending change.
func (m *Manager) Shutdown() {
	m.next = nil
	m.StartState(nil)
}
