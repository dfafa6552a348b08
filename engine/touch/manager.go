package touch

import (
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/zippy/engine/containers"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
)

const initialQueueSize = 32

/**
 * @brief Manager queues platform pointer events and dispatches them during
 * Update, after the scheduler ran, so handlers see a settled frame.
 */
type Manager struct {
	events           *containers.RingQueue[Event]
	listeners        []Listener
	listenersChanged bool
}

func NewManager() *Manager {
	return &Manager{events: containers.NewRingQueue[Event](initialQueueSize)}
}

func (m *Manager) AddEvent(e Event) {
	m.events.Enqueue(e)
}

func (m *Manager) Press(id int, position math.Vec2) {
	m.AddEvent(Event{ID: id, Position: position, Type: PRESS})
}

func (m *Manager) Move(id int, position math.Vec2) {
	m.AddEvent(Event{ID: id, Position: position, Type: MOVE})
}

func (m *Manager) Release(id int, position math.Vec2) {
	m.AddEvent(Event{ID: id, Position: position, Type: RELEASE})
}

func (m *Manager) Pending() int {
	return m.events.Len()
}

func (m *Manager) AddListener(l Listener) {
	if slices.Contains(m.listeners, l) {
		return
	}
	m.listeners = append(m.listeners, l)
	m.listenersChanged = true
}

func (m *Manager) RemoveListener(l Listener) {
	if i := slices.Index(m.listeners, l); i >= 0 {
		m.listeners = slices.Delete(m.listeners, i, i+1)
	}
}

func (m *Manager) Listeners() []Listener {
	return m.listeners
}

func (m *Manager) sortIfNeeded() {
	changed := m.listenersChanged
	for _, l := range m.listeners {
		if l.TouchOrderChanged() {
			changed = true
		}
	}
	if !changed {
		return
	}
	slices.SortStableFunc(m.listeners, func(a, b Listener) int {
		return a.TouchOrder() - b.TouchOrder()
	})
	for _, l := range m.listeners {
		l.ClearTouchOrderChanged()
	}
	m.listenersChanged = false
}

// Update dispatches the events queued before the call. Events queued by
// handlers wait for the next frame.
func (m *Manager) Update() {
	m.sortIfNeeded()

	for n := m.events.Len(); n > 0; n-- {
		e, err := m.events.Dequeue()
		if err != nil {
			core.LogWarn("touch queue drained early: %s", err.Error())
			return
		}
		m.dispatch(e)
	}
}

func (m *Manager) dispatch(e Event) {
	listeners := slices.Clone(m.listeners)
	switch e.Type {
	case PRESS:
		for _, l := range listeners {
			if l.TouchEnabled() && l.IsTouched(e.Position) && l.OnPress(e.ID, e.Position) {
				return
			}
		}
	case MOVE:
		for _, l := range listeners {
			if l.TouchEnabled() && l.ListeningForMove() && l.OnMove(e.ID, e.Position) {
				return
			}
		}
	case RELEASE:
		for _, l := range listeners {
			if l.TouchEnabled() {
				l.OnRelease(e.ID, e.Position)
			}
		}
	}
}

// CancelTouches tells every listener to drop its touches and discards
// everything queued.
func (m *Manager) CancelTouches() {
	for _, l := range slices.Clone(m.listeners) {
		l.OnCancel()
	}
	m.events.Clear()
}
