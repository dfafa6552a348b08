package renderer

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// Viewer supplies the view-projection matrix of a canvas.
type Viewer interface {
	MatrixInvalid() bool
	UpdateMatrices()
	ViewProjection() math.Mat4
}

// TextureCache hands out shared textures by name. Every Acquire is paired
// with one Release.
type TextureCache interface {
	Acquire(name string) (*metadata.Texture, error)
	Release(texture *metadata.Texture)
}

type CanvasConfig struct {
	ZOrder   int
	Camera   Viewer
	Shader   *Shader
	Textures TextureCache
}

/**
 * @brief A Canvas batches its drawables into one shared vertex buffer and one
 * shared index buffer, kept sorted by z-order, and draws them with one camera
 * and one shader.
 */
type Canvas struct {
	id       uuid.UUID
	renderer *Renderer
	device   Device
	camera   Viewer
	shader   *Shader
	textures TextureCache

	zOrder        int
	zOrderChanged bool

	members     []*Drawable
	listChanged bool
	unsorted    bool

	vertexBuffer metadata.BufferHandle
	indexBuffer  metadata.BufferHandle
	vertices     []float32
	indices      []uint32

	disposed bool
}

func NewCanvas(r *Renderer, config *CanvasConfig) (*Canvas, error) {
	if config.Camera == nil {
		err := errors.New("func NewCanvas - a camera is required")
		core.LogError("%s", err)
		return nil, err
	}
	if config.Shader == nil {
		err := errors.New("func NewCanvas - a shader is required")
		core.LogError("%s", err)
		return nil, err
	}
	c := &Canvas{
		id:           core.NewID(),
		renderer:     r,
		device:       r.device,
		camera:       config.Camera,
		shader:       config.Shader,
		textures:     config.Textures,
		zOrder:       config.ZOrder,
		vertexBuffer: r.device.CreateBuffer(),
		indexBuffer:  r.device.CreateBuffer(),
	}
	r.addCanvas(c)
	return c, nil
}

func (c *Canvas) ID() uuid.UUID {
	return c.id
}

func (c *Canvas) Camera() Viewer {
	return c.camera
}

func (c *Canvas) Shader() *Shader {
	return c.shader
}

func (c *Canvas) Textures() TextureCache {
	return c.textures
}

func (c *Canvas) ZOrder() int {
	return c.zOrder
}

func (c *Canvas) SetZOrder(z int) {
	if z == c.zOrder {
		return
	}
	c.zOrder = z
	c.zOrderChanged = true
}

// Members returns the drawables in draw order.
func (c *Canvas) Members() []*Drawable {
	return c.members
}

func (c *Canvas) VertexBuffer() metadata.BufferHandle {
	return c.vertexBuffer
}

func (c *Canvas) IndexBuffer() metadata.BufferHandle {
	return c.indexBuffer
}

// VertexData is the snapshot last sent to the device.
func (c *Canvas) VertexData() []float32 {
	return c.vertices
}

func (c *Canvas) IndexData() []uint32 {
	return c.indices
}

func (c *Canvas) add(d *Drawable) {
	if c.disposed {
		core.LogWarn("drawable %s added to a disposed canvas", core.ShortID(d.id))
	}
	if n := len(c.members); n > 0 && c.members[n-1].zOrder > d.zOrder {
		c.unsorted = true
	}
	c.members = append(c.members, d)
	c.listChanged = true
}

func (c *Canvas) remove(d *Drawable) {
	if i := slices.Index(c.members, d); i >= 0 {
		c.members = slices.Delete(c.members, i, i+1)
		c.listChanged = true
	}
}

func (c *Canvas) stale() bool {
	if c.listChanged {
		return true
	}
	for _, d := range c.members {
		if d.verticesInvalid || d.indicesInvalid {
			return true
		}
	}
	return false
}

func (c *Canvas) sortIfNeeded() {
	changed := c.unsorted
	for _, d := range c.members {
		if d.zOrderChanged {
			changed = true
			break
		}
	}
	if !changed {
		return
	}
	slices.SortStableFunc(c.members, func(a, b *Drawable) int {
		return a.zOrder - b.zOrder
	})
	c.unsorted = false
	c.listChanged = true
}

// Update re-sorts members when a z-order changed and re-uploads when any
// member or the list itself is stale.
func (c *Canvas) Update() {
	c.sortIfNeeded()
	if c.stale() {
		c.UpdateBufferData()
	}
}

// UpdateBufferData regenerates stale members and uploads the concatenated
// vertex and index data. Same-length data patches the buffers in place,
// anything else reallocates them.
func (c *Canvas) UpdateBufferData() {
	regenerateIndices := c.listChanged
	for _, d := range c.members {
		if d.indicesInvalid {
			regenerateIndices = true
			break
		}
	}

	vertices := make([]float32, 0, len(c.vertices))
	indices := make([]uint32, 0, len(c.indices))
	var base uint32
	for _, d := range c.members {
		if d.verticesInvalid {
			d.UpdateVertices()
		}
		if regenerateIndices || d.indicesInvalid {
			d.UpdateIndices(base)
		}
		base += uint32(len(d.vertexList))
		vertices = append(vertices, d.vertices...)
		indices = append(indices, d.indices...)
	}

	if len(vertices) != len(c.vertices) {
		c.device.BufferVertices(c.vertexBuffer, vertices)
	} else {
		c.device.PatchVertices(c.vertexBuffer, 0, vertices)
	}
	if len(indices) != len(c.indices) {
		c.device.BufferIndices(c.indexBuffer, indices)
	} else {
		c.device.PatchIndices(c.indexBuffer, 0, indices)
	}
	c.vertices = vertices
	c.indices = indices
	c.listChanged = false

	for _, d := range c.members {
		if d.zOrderChanged {
			d.ResetFlags()
		}
	}
}

// Draw binds the shader and buffers, refreshes matrices that went stale and
// issues one draw per visible member.
func (c *Canvas) Draw() {
	if c.disposed {
		return
	}
	// members added or removed after Update would shift index offsets
	if c.stale() {
		c.Update()
	}

	device := c.device
	program := c.shader.Program()
	device.UseProgram(program)
	device.BindVertexLayout(c.vertexBuffer, c.indexBuffer)

	viewChanged := c.camera.MatrixInvalid()
	if viewChanged {
		c.camera.UpdateMatrices()
	}
	vp := c.camera.ViewProjection()

	cur := drawCursor{}
	for _, d := range c.members {
		if viewChanged || d.wvpInvalid {
			d.UpdateMatrices(vp)
		}
		d.draw(device, program, &cur)
	}
}

// Dispose disposes every member, frees the buffers and leaves the renderer.
// The shader is shared and stays with its owner.
func (c *Canvas) Dispose() {
	if c.disposed {
		return
	}
	members := append([]*Drawable(nil), c.members...)
	for _, d := range members {
		d.Dispose()
	}
	c.members = nil
	c.device.DeleteBuffer(c.vertexBuffer)
	c.device.DeleteBuffer(c.indexBuffer)
	c.disposed = true
	c.renderer.removeCanvas(c)
}
