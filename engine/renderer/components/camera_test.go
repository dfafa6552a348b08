package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/math"
)

type point math.Vec2

func (p *point) Position() math.Vec2 {
	return math.Vec2(*p)
}

func TestCameraCentresOnPosition(t *testing.T) {
	c := NewCamera(math.NewVec2(100, 50), math.NewVec2(1920, 1080))
	assert.False(t, c.MatrixInvalid())

	centre := math.NewVec3(100, 50, 0).Transform(c.ViewProjection())
	assert.InDelta(t, 0, centre.X, 1e-5)
	assert.InDelta(t, 0, centre.Y, 1e-5)

	c.SetPosition(math.NewVec2(0, 0))
	assert.True(t, c.MatrixInvalid())
	c.UpdateMatrices()
	assert.False(t, c.MatrixInvalid())

	corner := math.NewVec3(960, 540, 0).Transform(c.ViewProjection())
	assert.InDelta(t, 1, corner.X, 1e-5)
	assert.InDelta(t, 1, corner.Y, 1e-5)
}

func TestLookAtCameraClampsToLimits(t *testing.T) {
	c := NewLookAtCamera(math.Vec2{}, math.NewVec2(1920, 1080))
	c.SetLimits(math.NewVec2(0, 1000), math.NewVec2(5000, 0), math.NewVec2(10, 20))
	assert.False(t, c.CanUpdate())

	target := point(math.NewVec2(-300, 2000))
	c.SetTarget(&target)
	assert.False(t, c.CanUpdate())
	c.SetActive(true)
	require.True(t, c.CanUpdate())

	c.Update(16 * time.Millisecond)
	assert.Equal(t, math.NewVec2(0, 1000), c.GetPosition())

	target = point(math.NewVec2(2500, 400))
	c.Update(16 * time.Millisecond)
	assert.Equal(t, math.NewVec2(2500, 400), c.GetPosition())
	assert.True(t, c.MatrixInvalid())

	c.Reset()
	assert.Equal(t, math.NewVec2(10, 20), c.GetPosition())
}

func TestLookAtCameraLimitsFromData(t *testing.T) {
	rec := content.ParseRecord("Camera,TopLeft|0|1500,BottomRight|8000|0")

	c := NewLookAtCamera(math.Vec2{}, math.NewVec2(1920, 1080))
	c.SetLimits(math.Vec2{}, math.Vec2{}, math.NewVec2(5, 5))
	require.NoError(t, c.SetLimitsFromData(rec.Data()))
	assert.Equal(t, math.NewVec2(0, 1500), c.TopLeft())
	assert.Equal(t, math.NewVec2(8000, 0), c.BottomRight())
	assert.Equal(t, math.NewVec2(5, 5), c.StartPosition())

	bad := content.ParseRecord("Camera,TopLeft|x|1")
	assert.Error(t, c.SetLimitsFromData(bad.Data()))
	assert.Equal(t, math.NewVec2(0, 1500), c.TopLeft())
}
