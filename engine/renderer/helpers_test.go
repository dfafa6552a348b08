package renderer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/components"
	"github.com/spaghettifunk/zippy/engine/renderer/headless"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

type fakeTextures struct {
	textures map[string]*metadata.Texture
	refs     map[string]int
	next     metadata.TextureHandle
}

func newFakeTextures() *fakeTextures {
	return &fakeTextures{
		textures: make(map[string]*metadata.Texture),
		refs:     make(map[string]int),
	}
}

func (f *fakeTextures) Acquire(name string) (*metadata.Texture, error) {
	if name == "missing.png" {
		return nil, fmt.Errorf("texture `%s`: %w", name, core.ErrNotFound)
	}
	t, ok := f.textures[name]
	if !ok {
		f.next++
		t = &metadata.Texture{ID: core.NewID(), Name: name, Handle: f.next, Width: 256, Height: 128}
		f.textures[name] = t
	}
	f.refs[name]++
	return t, nil
}

func (f *fakeTextures) Release(t *metadata.Texture) {
	f.refs[t.Name]--
}

type fakeRegistry struct {
	entries []core.Updatable
}

func (r *fakeRegistry) Add(u core.Updatable) {
	r.entries = append(r.entries, u)
}

func (r *fakeRegistry) Remove(u core.Updatable) {
	for i, e := range r.entries {
		if e == u {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

type fixture struct {
	device   *headless.Device
	renderer *Renderer
	camera   *components.Camera
	canvas   *Canvas
	textures *fakeTextures
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	device := headless.New()
	r := NewRenderer(device, &RendererConfig{ClearColour: math.NewVec4(0, 0.4, 0, 1)})
	r.Init(math.NewVec2(1920, 1080), math.NewVec2(960, 540), math.NewVec2Zero())

	shader, err := NewShader(device, metadata.ShaderSource{Name: "Sprite"})
	require.NoError(t, err)

	camera := components.NewCamera(math.NewVec2Zero(), math.NewVec2(1920, 1080))
	textures := newFakeTextures()
	canvas, err := NewCanvas(r, &CanvasConfig{Camera: camera, Shader: shader, Textures: textures})
	require.NoError(t, err)

	return &fixture{device: device, renderer: r, camera: camera, canvas: canvas, textures: textures}
}

func (f *fixture) sprite(t *testing.T, z int, texture string) *Sprite {
	t.Helper()
	tex, err := f.textures.Acquire(texture)
	require.NoError(t, err)
	return NewSprite(f.canvas, z, tex)
}
