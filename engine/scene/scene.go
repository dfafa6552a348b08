// Package scene groups drawables so they can be shown, hidden, faded and
// disposed together.
package scene

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/zippy/engine/core"
)

// Member is anything a scene can hold. *renderer.Drawable and everything
// embedding it qualifies.
type Member interface {
	SetParentVisible(v bool)
	SetAlpha(a float32)
	Dispose()
}

type Registry interface {
	Add(u core.Updatable)
	Remove(u core.Updatable)
}

/**
 * @brief A Scene propagates its visibility to every member as the member's
 * parent visibility. Types embedding a Scene register themselves through
 * Attach so the scheduler calls their own Update.
 */
type Scene struct {
	registry Registry
	owner    core.Updatable
	members  []Member
	visible  bool
	disposed bool
}

func NewScene(registry Registry) *Scene {
	return &Scene{registry: registry}
}

// Attach registers owner with the scheduler. Dispose removes it again.
func (s *Scene) Attach(owner core.Updatable) {
	if s.registry == nil || s.owner == owner {
		return
	}
	if s.owner != nil {
		s.registry.Remove(s.owner)
	}
	s.owner = owner
	s.registry.Add(owner)
}

func (s *Scene) Visible() bool {
	return s.visible
}

func (s *Scene) SetVisible(v bool) {
	s.visible = v
	for _, m := range s.members {
		m.SetParentVisible(v)
	}
}

func (s *Scene) Members() []Member {
	return s.members
}

func (s *Scene) Add(m Member) {
	s.members = append(s.members, m)
	m.SetParentVisible(s.visible)
}

// Remove hands m back with its parent visibility reset.
func (s *Scene) Remove(m Member) {
	i := slices.Index(s.members, m)
	if i < 0 {
		return
	}
	s.members = slices.Delete(s.members, i, i+1)
	m.SetParentVisible(true)
}

func (s *Scene) SetAlpha(a float32) {
	for _, m := range s.members {
		m.SetAlpha(a)
	}
}

func (s *Scene) CanUpdate() bool {
	return !s.disposed
}

// Update does nothing; scenes with behaviour provide their own.
func (s *Scene) Update(dt time.Duration) {}

func (s *Scene) Disposed() bool {
	return s.disposed
}

func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	members := s.members
	s.members = nil
	for _, m := range members {
		m.Dispose()
	}
	if s.registry != nil && s.owner != nil {
		s.registry.Remove(s.owner)
	}
	s.owner = nil
}
