package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

func TestHealthBarScalesWidthAndUV(t *testing.T) {
	f := newFixture(t)
	tex, err := f.textures.Acquire("bar.png")
	require.NoError(t, err)
	bar := NewHealthBar(f.canvas, 5, tex)

	stride := metadata.FLOATS_PER_VERTEX
	v := bar.Vertices()
	assert.Equal(t, float32(256), v[stride])

	bar.SetPercentage(0.25)
	assert.True(t, bar.VerticesInvalid())
	v = bar.Vertices()
	// second corner: x and u follow the percentage
	assert.Equal(t, float32(64), v[stride])
	assert.Equal(t, float32(0.25), v[stride+metadata.UV_OFFSET])
	assert.Equal(t, float32(64), v[2*stride])
	assert.Equal(t, float32(128), v[2*stride+1])
	assert.Equal(t, float32(0), v[3*stride])
}

func TestHealthBarClampsPercentage(t *testing.T) {
	f := newFixture(t)
	tex, err := f.textures.Acquire("bar.png")
	require.NoError(t, err)
	bar := NewHealthBar(f.canvas, 5, tex)

	bar.SetPercentage(-0.5)
	assert.Equal(t, float32(0), bar.Percentage())
	bar.SetPercentage(3)
	assert.Equal(t, float32(1), bar.Percentage())

	f.canvas.Update()
	bar.SetPercentage(1)
	assert.False(t, bar.VerticesInvalid(), "same value is a no-op")
}
