// Package touch routes pointer events to on-screen listeners in touch order.
package touch

import (
	"github.com/spaghettifunk/zippy/engine/math"
)

type EventType int

const (
	PRESS EventType = iota
	MOVE
	RELEASE
)

func (t EventType) String() string {
	switch t {
	case PRESS:
		return "PRESS"
	case MOVE:
		return "MOVE"
	case RELEASE:
		return "RELEASE"
	}
	return "UNKNOWN"
}

// Event is one pointer sample in screen pixels, origin top-left.
type Event struct {
	ID       int
	Position math.Vec2
	Type     EventType
}

// Listener is anything that reacts to touches. Press and move return true
// to consume the event; release goes to every enabled listener.
type Listener interface {
	TouchOrder() int
	TouchOrderChanged() bool
	ClearTouchOrderChanged()
	TouchEnabled() bool
	ListeningForMove() bool
	IsTouched(position math.Vec2) bool
	OnPress(id int, position math.Vec2) bool
	OnMove(id int, position math.Vec2) bool
	OnRelease(id int, position math.Vec2)
	OnCancel()
}
