package renderer

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// Geometry produces the vertex and index data for a drawable. Sprites,
// animated sprites, text and health bars each supply their own.
type Geometry interface {
	GenerateVertices(d *Drawable) []metadata.Vertex
	// GenerateIndices returns indices starting at vertex offset base.
	GenerateIndices(d *Drawable, base uint32) []uint32
}

// Placement supplies the world matrix of a drawable.
type Placement interface {
	World() math.Mat4
}

// hider lets a geometry veto visibility, e.g. text with nothing to show.
type hider interface {
	Hidden() bool
}

/**
 * @brief A Drawable is a member of exactly one canvas. It owns generated
 * vertex and index data plus three dirty flags telling the canvas what
 * must be regenerated before the next upload.
 */
type Drawable struct {
	id      uuid.UUID
	canvas  *Canvas
	texture *metadata.Texture

	geometry  Geometry
	placement Placement

	colour        math.Vec4
	width, height float32
	zOrder        int

	visible       bool
	parentVisible bool

	verticesInvalid bool
	indicesInvalid  bool
	wvpInvalid      bool
	zOrderChanged   bool

	vertexList []metadata.Vertex
	vertices   []float32
	indices    []uint32

	world math.Mat4
	wvp   math.Mat4

	onDispose []func()
	disposed  bool
}

// NewDrawable creates a drawable and registers it with canvas. The drawable
// takes over the caller's reference on texture; it is returned on Dispose.
// placement may be nil, meaning identity.
func NewDrawable(canvas *Canvas, zOrder int, texture *metadata.Texture, geometry Geometry, placement Placement) *Drawable {
	d := newDrawable(canvas, zOrder, texture)
	d.geometry = geometry
	d.placement = placement
	canvas.add(d)
	return d
}

func newDrawable(canvas *Canvas, zOrder int, texture *metadata.Texture) *Drawable {
	d := &Drawable{
		id:              core.NewID(),
		canvas:          canvas,
		texture:         texture,
		colour:          math.NewVec4One(),
		zOrder:          zOrder,
		visible:         true,
		parentVisible:   true,
		verticesInvalid: true,
		indicesInvalid:  true,
		wvpInvalid:      true,
		world:           math.NewMat4Identity(),
		wvp:             math.NewMat4Identity(),
	}
	if texture != nil {
		d.width = texture.Width
		d.height = texture.Height
	}
	return d
}

func (d *Drawable) ID() uuid.UUID {
	return d.id
}

func (d *Drawable) Canvas() *Canvas {
	return d.canvas
}

func (d *Drawable) Texture() *metadata.Texture {
	return d.texture
}

func (d *Drawable) textureHandle() metadata.TextureHandle {
	if d.texture == nil {
		return 0
	}
	return d.texture.Handle
}

func (d *Drawable) Colour() math.Vec4 {
	return d.colour
}

func (d *Drawable) SetColour(c math.Vec4) {
	d.colour = c
	d.verticesInvalid = true
}

// SetAlpha changes only the alpha channel of the colour.
func (d *Drawable) SetAlpha(a float32) {
	d.colour.W = a
	d.verticesInvalid = true
}

func (d *Drawable) Width() float32 {
	return d.width
}

func (d *Drawable) SetWidth(w float32) {
	d.width = w
	d.verticesInvalid = true
}

func (d *Drawable) Height() float32 {
	return d.height
}

func (d *Drawable) SetHeight(h float32) {
	d.height = h
	d.verticesInvalid = true
}

func (d *Drawable) ZOrder() int {
	return d.zOrder
}

// SetZOrder flags a re-sort of the canvas. Setting the current value is a no-op.
func (d *Drawable) SetZOrder(z int) {
	if z == d.zOrder {
		return
	}
	d.zOrder = z
	d.zOrderChanged = true
}

// Visible reports the effective visibility: own flag, parent flag and, for
// geometries that can be empty, whether there is anything to draw.
func (d *Drawable) Visible() bool {
	if !d.visible || !d.parentVisible {
		return false
	}
	if h, ok := d.geometry.(hider); ok && h.Hidden() {
		return false
	}
	return true
}

func (d *Drawable) SetVisible(v bool) {
	d.visible = v
}

func (d *Drawable) ParentVisible() bool {
	return d.parentVisible
}

func (d *Drawable) SetParentVisible(v bool) {
	d.parentVisible = v
}

func (d *Drawable) VerticesInvalid() bool {
	return d.verticesInvalid
}

func (d *Drawable) IndicesInvalid() bool {
	return d.indicesInvalid
}

func (d *Drawable) WVPInvalid() bool {
	return d.wvpInvalid
}

func (d *Drawable) ZOrderChanged() bool {
	return d.zOrderChanged
}

func (d *Drawable) InvalidateVertices() {
	d.verticesInvalid = true
}

func (d *Drawable) InvalidateIndices() {
	d.indicesInvalid = true
}

func (d *Drawable) InvalidateWVP() {
	d.wvpInvalid = true
}

// ResetFlags clears the z-order trigger once the canvas has re-sorted.
func (d *Drawable) ResetFlags() {
	d.zOrderChanged = false
}

func (d *Drawable) Disposed() bool {
	return d.disposed
}

// UpdateVertices regenerates the vertex list, refreshes the matrices
// against the canvas camera and flattens into the float layout.
func (d *Drawable) UpdateVertices() {
	d.vertexList = d.geometry.GenerateVertices(d)
	d.UpdateMatrices(d.canvas.camera.ViewProjection())

	d.vertices = d.vertices[:0]
	for _, v := range d.vertexList {
		d.vertices = v.AppendFloats(d.vertices)
	}
	d.verticesInvalid = false
}

func (d *Drawable) UpdateIndices(base uint32) {
	d.indices = d.geometry.GenerateIndices(d, base)
	d.indicesInvalid = false
}

func (d *Drawable) UpdateMatrices(viewProjection math.Mat4) {
	if d.placement != nil {
		d.world = d.placement.World()
	} else {
		d.world = math.NewMat4Identity()
	}
	d.wvp = d.world.Mul(viewProjection)
	d.wvpInvalid = false
}

// Vertices returns the flattened vertex data, regenerating it first if stale.
func (d *Drawable) Vertices() []float32 {
	if d.verticesInvalid {
		d.UpdateVertices()
	}
	return d.vertices
}

func (d *Drawable) VertexCount() int {
	if d.verticesInvalid {
		d.UpdateVertices()
	}
	return len(d.vertexList)
}

// Indices returns the indices from the last consolidation of the canvas.
func (d *Drawable) Indices() []uint32 {
	return d.indices
}

// WVP returns the world-view-projection matrix, refreshed if stale.
func (d *Drawable) WVP() math.Mat4 {
	if d.wvpInvalid {
		d.UpdateMatrices(d.canvas.camera.ViewProjection())
	}
	return d.wvp
}

type drawCursor struct {
	offset      int
	lastTexture metadata.TextureHandle
	bound       bool
}

// draw issues one indexed draw for this member. Invisible members still
// advance the cursor so later members keep their index offsets.
func (d *Drawable) draw(device Device, program metadata.ProgramHandle, cur *drawCursor) {
	count := len(d.indices)
	if !d.Visible() || count == 0 {
		cur.offset += count
		return
	}
	device.SetUniformMat4(program, metadata.UNIFORM_WVP, d.wvp)
	if h := d.textureHandle(); !cur.bound || h != cur.lastTexture {
		device.BindTexture(h)
		cur.lastTexture = h
		cur.bound = true
	}
	device.DrawElements(count, cur.offset)
	cur.offset += count
}

// OnDispose registers fn to run when the drawable is disposed, whether
// directly or through its canvas.
func (d *Drawable) OnDispose(fn func()) {
	d.onDispose = append(d.onDispose, fn)
}

// Dispose leaves the canvas, releases the texture and runs the dispose
// hooks in registration order. Calling it again is a no-op.
func (d *Drawable) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	d.canvas.remove(d)
	if d.texture != nil && d.canvas.textures != nil {
		d.canvas.textures.Release(d.texture)
	}
	d.texture = nil

	hooks := d.onDispose
	d.onDispose = nil
	for _, fn := range hooks {
		fn()
	}
}
