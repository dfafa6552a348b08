package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulAppliesLeftFirst(t *testing.T) {
	s := NewMat4Scale(NewVec3(2, 2, 1))
	tr := NewMat4Translation(NewVec3(10, 0, 0))

	p := NewVec3(1, 1, 0)
	assert.True(t, p.Transform(s.Mul(tr)).Compare(NewVec3(12, 2, 0), K_EPSILON))
	assert.True(t, p.Transform(tr.Mul(s)).Compare(NewVec3(22, 2, 0), K_EPSILON))
}

func TestEulerZQuarterTurn(t *testing.T) {
	r := NewMat4EulerZ(K_HALF_PI)
	got := NewVec3(1, 0, 0).Transform(r)
	assert.True(t, got.Compare(NewVec3(0, 1, 0), 1e-5), "%v", got)
}

func TestOrthographicLookAtMapsScreenCorners(t *testing.T) {
	view := NewMat4LookAt(NewVec3(0, 0, 1), NewVec3(0, 0, 0), NewVec3Up())
	proj := NewMat4Orthographic(-960, 960, -540, 540, 1, 1000)
	vp := view.Mul(proj)

	topRight := NewVec3(960, 540, 0).Transform(vp)
	assert.InDelta(t, 1, topRight.X, 1e-5)
	assert.InDelta(t, 1, topRight.Y, 1e-5)

	bottomLeft := NewVec3(-960, -540, 0).Transform(vp)
	assert.InDelta(t, -1, bottomLeft.X, 1e-5)
	assert.InDelta(t, -1, bottomLeft.Y, 1e-5)
}

func TestLookAtFollowsPosition(t *testing.T) {
	view := NewMat4LookAt(NewVec3(100, 50, 1), NewVec3(100, 50, 0), NewVec3Up())
	got := NewVec3(100, 50, 0).Transform(view)
	assert.True(t, got.Compare(NewVec3(0, 0, -1), 1e-5), "%v", got)
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 3, Clamp(5, 0, 3))
	assert.Equal(t, float32(-1), Clamp(float32(-4), -1, 1))
	assert.Equal(t, float32(0.5), Lerp(float32(0), 1, 0.5))
	assert.Equal(t, float32(2), Abs(float32(-2)))
}

func TestExtentsInsideExcludesEdges(t *testing.T) {
	e := Extents2D{Min: NewVec2(0, 0), Max: NewVec2(10, 5)}
	assert.True(t, e.Inside(NewVec2(9.9, 4.9)))
	assert.False(t, e.Inside(NewVec2(10, 5)))
	assert.False(t, e.Inside(NewVec2(10.1, 2)))
}
