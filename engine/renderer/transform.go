package renderer

import (
	"github.com/spaghettifunk/zippy/engine/math"
)

/**
 * @brief Transform is the placement component of a sprite: position, offset,
 * scale about an origin and rotation about an origin. Each part keeps its own
 * cached matrix and dirty flag; any change marks the owner's WVP stale.
 *
 * World = Rotation * Scale * Translation (row vectors: rotate first).
 */
type Transform struct {
	owner *Drawable

	position       math.Vec2
	offset         math.Vec2
	scale          math.Vec2
	scaleOrigin    math.Vec2
	rotation       float32
	rotationOrigin math.Vec2

	translationInvalid bool
	scaleInvalid       bool
	rotationInvalid    bool
	worldInvalid       bool

	translationMatrix math.Mat4
	scaleMatrix       math.Mat4
	rotationMatrix    math.Mat4
	world             math.Mat4
}

func NewTransform(owner *Drawable) *Transform {
	return &Transform{
		owner:              owner,
		scale:              math.NewVec2One(),
		translationInvalid: true,
		scaleInvalid:       true,
		rotationInvalid:    true,
		worldInvalid:       true,
	}
}

func (t *Transform) touch() {
	t.worldInvalid = true
	if t.owner != nil {
		t.owner.InvalidateWVP()
	}
}

func (t *Transform) Position() math.Vec2 {
	return t.position
}

func (t *Transform) SetPosition(p math.Vec2) {
	t.position = p
	t.translationInvalid = true
	t.touch()
}

func (t *Transform) Offset() math.Vec2 {
	return t.offset
}

// SetOffset shifts the geometry so that offset lands on the position.
func (t *Transform) SetOffset(o math.Vec2) {
	t.offset = o
	t.translationInvalid = true
	t.touch()
}

func (t *Transform) Scale() math.Vec2 {
	return t.scale
}

func (t *Transform) SetScale(s math.Vec2) {
	t.scale = s
	t.scaleInvalid = true
	t.touch()
}

func (t *Transform) ScaleOrigin() math.Vec2 {
	return t.scaleOrigin
}

func (t *Transform) SetScaleOrigin(o math.Vec2) {
	t.scaleOrigin = o
	t.scaleInvalid = true
	t.touch()
}

// Rotation is in radians.
func (t *Transform) Rotation() float32 {
	return t.rotation
}

func (t *Transform) SetRotation(r float32) {
	t.rotation = r
	t.rotationInvalid = true
	t.touch()
}

func (t *Transform) RotationOrigin() math.Vec2 {
	return t.rotationOrigin
}

func (t *Transform) SetRotationOrigin(o math.Vec2) {
	t.rotationOrigin = o
	t.rotationInvalid = true
	t.touch()
}

func aboutOrigin(origin math.Vec2, m math.Mat4) math.Mat4 {
	to := math.NewMat4Translation(math.NewVec3(-origin.X, -origin.Y, 0))
	back := math.NewMat4Translation(math.NewVec3(origin.X, origin.Y, 0))
	return to.Mul(m).Mul(back)
}

func (t *Transform) TranslationMatrix() math.Mat4 {
	if t.translationInvalid {
		p := t.position.Sub(t.offset)
		t.translationMatrix = math.NewMat4Translation(p.ToVec3(0))
		t.translationInvalid = false
	}
	return t.translationMatrix
}

func (t *Transform) ScaleMatrix() math.Mat4 {
	if t.scaleInvalid {
		t.scaleMatrix = aboutOrigin(t.scaleOrigin, math.NewMat4Scale(math.NewVec3(t.scale.X, t.scale.Y, 1)))
		t.scaleInvalid = false
	}
	return t.scaleMatrix
}

func (t *Transform) RotationMatrix() math.Mat4 {
	if t.rotationInvalid {
		t.rotationMatrix = aboutOrigin(t.rotationOrigin, math.NewMat4EulerZ(t.rotation))
		t.rotationInvalid = false
	}
	return t.rotationMatrix
}

// World recomposes only when a part changed since the last call.
func (t *Transform) World() math.Mat4 {
	if t.worldInvalid {
		t.world = t.RotationMatrix().Mul(t.ScaleMatrix()).Mul(t.TranslationMatrix())
		t.worldInvalid = false
	}
	return t.world
}
