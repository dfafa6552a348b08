package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

func TestUpdateBufferDataIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.sprite(t, 0, "a.png")
	f.sprite(t, 1, "b.png")

	f.canvas.Update()
	vertices := append([]float32(nil), f.device.VertexData(f.canvas.VertexBuffer())...)
	indices := append([]uint32(nil), f.device.IndexData(f.canvas.IndexBuffer())...)
	require.Len(t, vertices, 8*metadata.FLOATS_PER_VERTEX)
	assert.Equal(t, []uint32{0, 2, 1, 0, 3, 2, 4, 6, 5, 4, 7, 6}, indices)
	assert.Equal(t, 1, f.device.Stats.VertexUploads)

	f.canvas.UpdateBufferData()
	assert.Equal(t, vertices, f.device.VertexData(f.canvas.VertexBuffer()))
	assert.Equal(t, indices, f.device.IndexData(f.canvas.IndexBuffer()))
	assert.Equal(t, 1, f.device.Stats.VertexUploads)
	assert.Equal(t, 1, f.device.Stats.VertexPatches)
	assert.Equal(t, 1, f.device.Stats.IndexPatches)
}

func TestCleanCanvasSkipsUpload(t *testing.T) {
	f := newFixture(t)
	f.sprite(t, 0, "a.png")

	f.canvas.Update()
	f.canvas.Update()
	assert.Equal(t, 1, f.device.Stats.VertexUploads)
	assert.Equal(t, 0, f.device.Stats.VertexPatches)
}

func TestMembersSortedStablyByZOrder(t *testing.T) {
	f := newFixture(t)
	a := f.sprite(t, 2, "a.png")
	b := f.sprite(t, 1, "a.png")
	c := f.sprite(t, 1, "a.png")

	a.SetZOrder(3)
	f.canvas.Update()
	assert.Equal(t, []*Drawable{b.Drawable, c.Drawable, a.Drawable}, f.canvas.Members())
	assert.False(t, a.ZOrderChanged())

	a.SetZOrder(3)
	assert.False(t, a.ZOrderChanged(), "same value is a no-op")

	c.SetZOrder(0)
	f.canvas.Update()
	assert.Equal(t, []*Drawable{c.Drawable, b.Drawable, a.Drawable}, f.canvas.Members())
	assert.Equal(t, uint32(0), c.Indices()[0])
	assert.Equal(t, uint32(4), b.Indices()[0])
}

func TestInvisibleMemberKeepsIndexOffsets(t *testing.T) {
	f := newFixture(t)
	f.sprite(t, 0, "a.png")
	hidden := f.sprite(t, 1, "a.png")
	f.sprite(t, 2, "a.png")
	hidden.SetVisible(false)

	f.renderer.Update()
	f.renderer.Draw()
	require.Len(t, f.device.Draws, 2)
	assert.Equal(t, 0, f.device.Draws[0].Offset)
	assert.Equal(t, 12, f.device.Draws[1].Offset)
	assert.Equal(t, 6, f.device.Draws[1].Count)
}

func TestParentVisibilityHidesMember(t *testing.T) {
	f := newFixture(t)
	s := f.sprite(t, 0, "a.png")
	s.SetParentVisible(false)

	f.renderer.Update()
	f.renderer.Draw()
	assert.Empty(t, f.device.Draws)
	assert.False(t, s.Visible())
}

func TestTextureBoundOnlyWhenItChanges(t *testing.T) {
	f := newFixture(t)
	f.sprite(t, 0, "a.png")
	f.sprite(t, 1, "a.png")
	f.sprite(t, 2, "b.png")

	f.renderer.Update()
	f.renderer.Draw()
	assert.Len(t, f.device.Draws, 3)
	assert.Equal(t, 2, f.device.Stats.TextureBinds)
}

func TestCameraMoveRefreshesEveryMember(t *testing.T) {
	f := newFixture(t)
	a := f.sprite(t, 0, "a.png")
	b := f.sprite(t, 1, "a.png")
	f.renderer.Update()
	f.renderer.Draw()

	f.camera.SetPosition(math.NewVec2(100, 0))
	f.renderer.Update()
	f.renderer.Draw()
	assert.False(t, f.camera.MatrixInvalid())
	want := a.Transform.World().Mul(f.camera.ViewProjection())
	assert.True(t, f.device.Draws[0].WVP.Compare(want, 1e-6))
	assert.True(t, f.device.Draws[1].WVP.Compare(b.WVP(), 1e-6))
}

func TestRemovingMemberRebasesIndices(t *testing.T) {
	f := newFixture(t)
	a := f.sprite(t, 0, "a.png")
	b := f.sprite(t, 1, "a.png")
	f.canvas.Update()
	assert.Equal(t, uint32(4), b.Indices()[0])

	a.Dispose()
	a.Dispose()
	f.canvas.Update()
	assert.Equal(t, uint32(0), b.Indices()[0])
	assert.Len(t, f.canvas.Members(), 1)
	assert.Equal(t, 1, f.textures.refs["a.png"])
	assert.Equal(t, 2, f.device.Stats.VertexUploads, "shorter data reallocates")
}

func TestCanvasDisposeCascades(t *testing.T) {
	f := newFixture(t)
	f.sprite(t, 0, "a.png")
	f.sprite(t, 1, "b.png")
	f.canvas.Dispose()
	f.canvas.Dispose()

	assert.Empty(t, f.canvas.Members())
	assert.Empty(t, f.renderer.Canvases())
	assert.Equal(t, 0, f.textures.refs["a.png"])
	assert.Equal(t, 0, f.textures.refs["b.png"])
	assert.Equal(t, 0, f.device.LiveBuffers())
}

func TestRendererSortsCanvases(t *testing.T) {
	f := newFixture(t)
	ui, err := NewCanvas(f.renderer, &CanvasConfig{ZOrder: 5, Camera: f.camera, Shader: f.canvas.Shader()})
	require.NoError(t, err)
	world := f.canvas
	assert.Equal(t, []*Canvas{world, ui}, f.renderer.Canvases())

	world.SetZOrder(9)
	f.renderer.Update()
	assert.Equal(t, []*Canvas{ui, world}, f.renderer.Canvases())

	f.renderer.Draw()
	assert.Equal(t, math.NewVec4(0, 0.4, 0, 1), f.device.LastClearColour())
	assert.Equal(t, metadata.Viewport{Width: 960, Height: 540}, f.device.LastViewport())
	assert.Equal(t, math.NewVec2(2, 2), f.renderer.ScreenScale())
}

func TestCanvasRequiresCameraAndShader(t *testing.T) {
	f := newFixture(t)
	_, err := NewCanvas(f.renderer, &CanvasConfig{Shader: f.canvas.Shader()})
	assert.Error(t, err)
	_, err = NewCanvas(f.renderer, &CanvasConfig{Camera: f.camera})
	assert.Error(t, err)
}

func TestSpriteFromData(t *testing.T) {
	f := newFixture(t)
	rec := content.ParseRecord("Sprite,Texture|bg.png,ZOrder|4,Position|10|20,Width|50,Colour|1|0|0|1,Visible|false")
	s, err := NewSpriteFromData(f.canvas, rec.Data())
	require.NoError(t, err)
	assert.Equal(t, 4, s.ZOrder())
	assert.Equal(t, math.NewVec2(10, 20), s.Position())
	assert.Equal(t, float32(50), s.Width())
	assert.Equal(t, float32(128), s.Height())
	assert.Equal(t, math.NewVec4(1, 0, 0, 1), s.Colour())
	assert.False(t, s.Visible())

	_, err = NewSpriteFromData(f.canvas, content.ParseRecord("Sprite,ZOrder|1").Data())
	assert.ErrorIs(t, err, core.ErrMissingField)
	_, err = NewSpriteFromData(f.canvas, content.ParseRecord("Sprite,Texture|bg.png,Rotation|x").Data())
	assert.ErrorIs(t, err, core.ErrInvalidNumber)
	_, err = NewSpriteFromData(f.canvas, content.ParseRecord("Sprite,Texture|missing.png").Data())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestShaderErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.device.FailPrograms = true
	_, err := NewShader(f.device, metadata.ShaderSource{Name: "Broken"})
	assert.Error(t, err)
}

func TestLateMemberIsSortedIn(t *testing.T) {
	f := newFixture(t)
	a := f.sprite(t, 2, "a.png")
	b := f.sprite(t, 0, "a.png")
	f.canvas.Update()
	assert.Equal(t, []*Drawable{b.Drawable, a.Drawable}, f.canvas.Members())
}
