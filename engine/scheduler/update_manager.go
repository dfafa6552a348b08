// Package scheduler drives every time-based entry once per frame.
package scheduler

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/zippy/engine/core"
)

/**
 * @brief UpdateManager keeps an ordered list of updatables and, on each pass,
 * hands every eligible entry the time since the previous pass. The list is
 * snapshotted when a pass starts: entries added or removed from inside an
 * Update take effect on the next pass.
 */
type UpdateManager struct {
	source  core.TimeSource
	entries []core.Updatable

	last    time.Time
	started bool
	paused  bool
}

func NewUpdateManager(source core.TimeSource) *UpdateManager {
	if source == nil {
		source = core.SystemClock{}
	}
	return &UpdateManager{source: source}
}

// Add appends u. Adding an entry twice is a no-op.
func (m *UpdateManager) Add(u core.Updatable) {
	if slices.Contains(m.entries, u) {
		return
	}
	m.entries = append(m.entries, u)
}

func (m *UpdateManager) Remove(u core.Updatable) {
	if i := slices.Index(m.entries, u); i >= 0 {
		m.entries = slices.Delete(m.entries, i, i+1)
	}
}

func (m *UpdateManager) Contains(u core.Updatable) bool {
	return slices.Contains(m.entries, u)
}

func (m *UpdateManager) Len() int {
	return len(m.entries)
}

func (m *UpdateManager) Paused() bool {
	return m.paused
}

func (m *UpdateManager) Pause() {
	m.paused = true
}

// Resume restarts dispatch and moves the time reference to now, so the
// paused interval is never delivered.
func (m *UpdateManager) Resume() {
	m.paused = false
	m.last = m.source.Now()
	m.started = true
}

// Update runs one pass. The first pass delivers a zero delta.
func (m *UpdateManager) Update() {
	if m.paused {
		return
	}
	now := m.source.Now()
	if !m.started {
		m.last = now
		m.started = true
	}
	dt := now.Sub(m.last)
	m.last = now

	for _, u := range slices.Clone(m.entries) {
		if u.CanUpdate() {
			u.Update(dt)
		}
	}
}
