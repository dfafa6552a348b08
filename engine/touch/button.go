package touch

import (
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
)

// Area is the on-screen rectangle a button reacts to, in the centred,
// y-up coordinates of the UI canvas. A sprite satisfies it.
type Area interface {
	Position() math.Vec2
	SetPosition(p math.Vec2)
	Width() float32
	Height() float32
	SetVisible(v bool)
	Dispose()
}

type ButtonConfig struct {
	TouchOrder int
	Area       Area
	// TargetDimensions is the logical screen size, used to move touch
	// positions into centre-origin space.
	TargetDimensions math.Vec2
}

/**
 * @brief A Button tracks a single touch: pressed by a touch inside its area,
 * released by the same touch id anywhere on screen.
 */
type Button struct {
	manager *Manager
	area    Area
	target  math.Vec2

	touchOrder        int
	touchOrderChanged bool
	touchEnabled      bool
	listeningForMove  bool
	visible           bool

	pressed bool
	touchID int

	OnButtonPress   func(b *Button)
	OnButtonRelease func(b *Button)

	disposed bool
}

func NewButton(manager *Manager, config *ButtonConfig) *Button {
	b := &Button{
		manager:           manager,
		area:              config.Area,
		target:            config.TargetDimensions,
		touchOrder:        config.TouchOrder,
		touchOrderChanged: true,
		touchEnabled:      true,
		visible:           true,
		touchID:           -1,
	}
	manager.AddListener(b)
	return b
}

func (b *Button) Area() Area {
	return b.area
}

func (b *Button) TouchOrder() int {
	return b.touchOrder
}

func (b *Button) SetTouchOrder(order int) {
	b.touchOrder = order
	b.touchOrderChanged = true
}

func (b *Button) TouchOrderChanged() bool {
	return b.touchOrderChanged
}

func (b *Button) ClearTouchOrderChanged() {
	b.touchOrderChanged = false
}

func (b *Button) TouchEnabled() bool {
	return b.touchEnabled
}

// SetTouchEnabled(false) also cancels an active press.
func (b *Button) SetTouchEnabled(enabled bool) {
	b.touchEnabled = enabled
	if !enabled {
		b.OnCancel()
	}
}

func (b *Button) ListeningForMove() bool {
	return b.listeningForMove
}

func (b *Button) SetListeningForMove(l bool) {
	b.listeningForMove = l
}

func (b *Button) Visible() bool {
	return b.visible
}

func (b *Button) SetVisible(v bool) {
	b.visible = v
	b.area.SetVisible(v)
}

func (b *Button) Position() math.Vec2 {
	return b.area.Position()
}

func (b *Button) SetPosition(p math.Vec2) {
	b.area.SetPosition(p)
}

func (b *Button) Pressed() bool {
	return b.pressed
}

// ToCanvas converts a top-left, y-down screen position into the centred,
// y-up space the UI canvas draws in.
func ToCanvas(position, target math.Vec2) math.Vec2 {
	return math.NewVec2(position.X-target.X/2, -(position.Y - target.Y/2))
}

func (b *Button) IsTouched(position math.Vec2) bool {
	return b.Bounds().Inside(ToCanvas(position, b.target))
}

// Bounds is the button area in canvas coordinates.
func (b *Button) Bounds() math.Extents2D {
	origin := b.area.Position()
	return math.Extents2D{Min: origin, Max: origin.Add(math.NewVec2(b.area.Width(), b.area.Height()))}
}

func (b *Button) OnPress(id int, position math.Vec2) bool {
	if b.pressed {
		return false
	}
	b.pressed = true
	b.touchID = id
	if b.OnButtonPress != nil {
		b.OnButtonPress(b)
	}
	return true
}

func (b *Button) OnMove(id int, position math.Vec2) bool {
	return false
}

func (b *Button) OnRelease(id int, position math.Vec2) {
	if !b.pressed || id != b.touchID {
		return
	}
	b.pressed = false
	b.touchID = -1
	if b.OnButtonRelease != nil {
		b.OnButtonRelease(b)
	}
}

func (b *Button) OnCancel() {
	b.pressed = false
	b.touchID = -1
}

// Dispose disposes the area, drops the callbacks and leaves the manager.
func (b *Button) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.area.Dispose()
	b.OnButtonPress = nil
	b.OnButtonRelease = nil
	b.manager.RemoveListener(b)
	core.LogDebug("button at order %d disposed", b.touchOrder)
}
