package renderer

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// Sprite is a textured quad with a transform.
type Sprite struct {
	*Drawable
	*Transform
}

// quad is the geometry of a plain sprite, sized by the drawable.
type quad struct{}

func quadVertices(d *Drawable, uv math.Vec4) []metadata.Vertex {
	w, h, c := d.Width(), d.Height(), d.Colour()
	return []metadata.Vertex{
		metadata.NewVertex(math.NewVec3(0, 0, 0), math.NewVec2(uv.X, uv.W), c),
		metadata.NewVertex(math.NewVec3(w, 0, 0), math.NewVec2(uv.Z, uv.W), c),
		metadata.NewVertex(math.NewVec3(w, h, 0), math.NewVec2(uv.Z, uv.Y), c),
		metadata.NewVertex(math.NewVec3(0, h, 0), math.NewVec2(uv.X, uv.Y), c),
	}
}

func quadIndices(base uint32) []uint32 {
	return []uint32{base, base + 2, base + 1, base, base + 3, base + 2}
}

func (quad) GenerateVertices(d *Drawable) []metadata.Vertex {
	return quadVertices(d, math.NewVec4(0, 0, 1, 1))
}

func (quad) GenerateIndices(d *Drawable, base uint32) []uint32 {
	return quadIndices(base)
}

// QuadIndices exposes the two-triangle winding for custom geometries.
func QuadIndices(base uint32) []uint32 {
	return quadIndices(base)
}

// QuadVertices builds the four corners of a w x h quad with the given uv rect.
func QuadVertices(d *Drawable, uv math.Vec4) []metadata.Vertex {
	return quadVertices(d, uv)
}

func newSprite(canvas *Canvas, zOrder int, texture *metadata.Texture, geometry Geometry) *Sprite {
	d := newDrawable(canvas, zOrder, texture)
	s := &Sprite{Drawable: d, Transform: NewTransform(d)}
	d.geometry = geometry
	d.placement = s.Transform
	canvas.add(d)
	return s
}

func NewSprite(canvas *Canvas, zOrder int, texture *metadata.Texture) *Sprite {
	return newSprite(canvas, zOrder, texture, quad{})
}

// spriteFields are the keys every sprite-derived type reads.
type spriteFields struct {
	zOrder         int
	texture        string
	position       math.Vec2
	offset         math.Vec2
	scale          math.Vec2
	scaleOrigin    math.Vec2
	rotation       float32
	rotationOrigin math.Vec2
	colour         math.Vec4
	width, height  float32
	hasWidth       bool
	hasHeight      bool
	visible        bool
}

func readSpriteFields(r *content.Reader) spriteFields {
	return spriteFields{
		zOrder:         r.Int("ZOrder", 0),
		texture:        r.RequireString("Texture"),
		position:       r.Vec2("Position", math.NewVec2Zero()),
		offset:         r.Vec2("Offset", math.NewVec2Zero()),
		scale:          r.Vec2("Scale", math.NewVec2One()),
		scaleOrigin:    r.Vec2("ScaleOrigin", math.NewVec2Zero()),
		rotation:       r.Float("Rotation", 0),
		rotationOrigin: r.Vec2("RotationOrigin", math.NewVec2Zero()),
		colour:         r.Vec4("Colour", math.NewVec4One()),
		width:          r.Float("Width", 0),
		height:         r.Float("Height", 0),
		hasWidth:       r.Has("Width"),
		hasHeight:      r.Has("Height"),
		visible:        r.Bool("Visible", true),
	}
}

func (f spriteFields) acquire(canvas *Canvas) (*metadata.Texture, error) {
	if canvas.textures == nil {
		return nil, fmt.Errorf("canvas has no texture cache for `%s`: %w", f.texture, core.ErrServiceUnavailable)
	}
	return canvas.textures.Acquire(f.texture)
}

func (f spriteFields) apply(s *Sprite) {
	s.SetPosition(f.position)
	s.SetOffset(f.offset)
	s.SetScale(f.scale)
	s.SetScaleOrigin(f.scaleOrigin)
	s.SetRotation(f.rotation)
	s.SetRotationOrigin(f.rotationOrigin)
	s.SetColour(f.colour)
	if f.hasWidth {
		s.SetWidth(f.width)
	}
	if f.hasHeight {
		s.SetHeight(f.height)
	}
	s.SetVisible(f.visible)
}

// NewSpriteFromData builds a sprite from a content record. The texture is
// acquired through the canvas texture cache.
func NewSpriteFromData(canvas *Canvas, data content.Data) (*Sprite, error) {
	r := data.Reader()
	f := readSpriteFields(r)
	if err := r.Err(); err != nil {
		err = fmt.Errorf("func NewSpriteFromData - %w", err)
		core.LogError("%s", err)
		return nil, err
	}
	tex, err := f.acquire(canvas)
	if err != nil {
		return nil, fmt.Errorf("func NewSpriteFromData - %w", err)
	}
	s := NewSprite(canvas, f.zOrder, tex)
	f.apply(s)
	return s, nil
}
