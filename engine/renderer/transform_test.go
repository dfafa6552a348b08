package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/zippy/engine/math"
)

func TestWorldIsRotationThenScaleThenTranslation(t *testing.T) {
	f := newFixture(t)
	s := f.sprite(t, 0, "a.png")

	s.SetPosition(math.NewVec2(100, 50))
	s.SetOffset(math.NewVec2(10, 10))
	s.SetScale(math.NewVec2(2, 3))
	s.SetScaleOrigin(math.NewVec2(5, 5))
	s.SetRotation(math.K_HALF_PI)
	s.SetRotationOrigin(math.NewVec2(1, 2))

	rot := math.NewMat4Translation(math.NewVec3(-1, -2, 0)).
		Mul(math.NewMat4EulerZ(math.K_HALF_PI)).
		Mul(math.NewMat4Translation(math.NewVec3(1, 2, 0)))
	scale := math.NewMat4Translation(math.NewVec3(-5, -5, 0)).
		Mul(math.NewMat4Scale(math.NewVec3(2, 3, 1))).
		Mul(math.NewMat4Translation(math.NewVec3(5, 5, 0)))
	trans := math.NewMat4Translation(math.NewVec3(90, 40, 0))

	want := rot.Mul(scale).Mul(trans)
	assert.True(t, s.Transform.World().Compare(want, 1e-4))
}

func TestTransformMovesPoints(t *testing.T) {
	f := newFixture(t)
	s := f.sprite(t, 0, "a.png")

	s.SetPosition(math.NewVec2(100, 50))
	s.SetScale(math.NewVec2(2, 2))
	got := math.NewVec3(1, 1, 0).Transform(s.Transform.World())
	assert.True(t, got.Compare(math.NewVec3(102, 52, 0), 1e-4), "%v", got)

	s.SetOffset(math.NewVec2(10, 10))
	got = math.NewVec3(1, 1, 0).Transform(s.Transform.World())
	assert.True(t, got.Compare(math.NewVec3(92, 42, 0), 1e-4), "%v", got)
}

func TestTransformSettersInvalidateWVP(t *testing.T) {
	f := newFixture(t)
	s := f.sprite(t, 0, "a.png")

	f.renderer.Update()
	f.renderer.Draw()
	assert.False(t, s.WVPInvalid())

	s.SetRotation(1)
	assert.True(t, s.WVPInvalid())

	f.renderer.Update()
	f.renderer.Draw()
	assert.False(t, s.WVPInvalid())
	assert.True(t, f.device.Draws[0].WVP.Compare(s.WVP(), 1e-6))
}
