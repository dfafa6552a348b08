package renderer

import (
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// HealthBar is a sprite whose right edge, and uv, follow a percentage in [0,1].
type HealthBar struct {
	*Sprite

	percentage float32
}

type healthBarGeometry struct {
	bar *HealthBar
}

func (g healthBarGeometry) GenerateVertices(d *Drawable) []metadata.Vertex {
	p := g.bar.percentage
	w, h, c := d.Width(), d.Height(), d.Colour()
	return []metadata.Vertex{
		metadata.NewVertex(math.NewVec3(0, 0, 0), math.NewVec2(0, 1), c),
		metadata.NewVertex(math.NewVec3(w*p, 0, 0), math.NewVec2(p, 1), c),
		metadata.NewVertex(math.NewVec3(w*p, h, 0), math.NewVec2(p, 0), c),
		metadata.NewVertex(math.NewVec3(0, h, 0), math.NewVec2(0, 0), c),
	}
}

func (g healthBarGeometry) GenerateIndices(d *Drawable, base uint32) []uint32 {
	return quadIndices(base)
}

func NewHealthBar(canvas *Canvas, zOrder int, texture *metadata.Texture) *HealthBar {
	b := &HealthBar{percentage: 1}
	b.Sprite = newSprite(canvas, zOrder, texture, healthBarGeometry{bar: b})
	return b
}

func (b *HealthBar) Percentage() float32 {
	return b.percentage
}

// SetPercentage clamps p to [0,1]. Only the vertices go stale.
func (b *HealthBar) SetPercentage(p float32) {
	p = math.Clamp(p, 0, 1)
	if p == b.percentage {
		return
	}
	b.percentage = p
	b.InvalidateVertices()
}
