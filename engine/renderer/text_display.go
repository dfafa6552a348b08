package renderer

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

type Alignment int

const (
	LEFT Alignment = iota
	CENTER
	RIGHT
)

func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "LEFT":
		return LEFT, nil
	case "CENTER":
		return CENTER, nil
	case "RIGHT":
		return RIGHT, nil
	}
	return LEFT, fmt.Errorf("alignment %q: %w", s, core.ErrInvalidValue)
}

// TextDisplay draws text from a glyph atlas, one quad per character. Lines
// stack bottom-up so the first line ends on top.
type TextDisplay struct {
	*Sprite

	atlas            *GlyphAtlas
	text             string
	lines            [][]rune
	glyphCount       int
	characterSpacing float32
	lineSpacing      float32
	alignment        Alignment
}

type textGeometry struct {
	t *TextDisplay
}

func (g textGeometry) Hidden() bool {
	return g.t.text == ""
}

func (g textGeometry) GenerateVertices(d *Drawable) []metadata.Vertex {
	t := g.t
	if t.text == "" {
		return nil
	}
	cw, ch := t.atlas.CharacterWidth, t.atlas.CharacterHeight
	colour := d.Colour()
	vertices := make([]metadata.Vertex, 0, t.glyphCount*4)

	var y float32
	for i := len(t.lines) - 1; i >= 0; i-- {
		line := t.lines[i]
		x := t.lineOffset(len(line))
		for _, c := range line {
			uv, _ := t.atlas.UV(c)
			vertices = append(vertices,
				metadata.NewVertex(math.NewVec3(x, y, 0), math.NewVec2(uv.X, uv.W), colour),
				metadata.NewVertex(math.NewVec3(x+cw, y, 0), math.NewVec2(uv.Z, uv.W), colour),
				metadata.NewVertex(math.NewVec3(x+cw, y+ch, 0), math.NewVec2(uv.Z, uv.Y), colour),
				metadata.NewVertex(math.NewVec3(x, y+ch, 0), math.NewVec2(uv.X, uv.Y), colour),
			)
			x += cw + t.characterSpacing
		}
		y += ch + t.lineSpacing
	}
	return vertices
}

func (g textGeometry) GenerateIndices(d *Drawable, base uint32) []uint32 {
	indices := make([]uint32, 0, g.t.glyphCount*6)
	for i := 0; i < g.t.glyphCount; i++ {
		indices = append(indices, quadIndices(base)...)
		base += 4
	}
	return indices
}

func NewTextDisplay(canvas *Canvas, zOrder int, texture *metadata.Texture, atlas *GlyphAtlas) *TextDisplay {
	t := &TextDisplay{atlas: atlas}
	t.Sprite = newSprite(canvas, zOrder, texture, textGeometry{t: t})
	return t
}

func (t *TextDisplay) Text() string {
	return t.text
}

// SetText replaces the text. Characters missing from the atlas are rejected
// and the previous text stays. Indices go stale only when the glyph count
// changes.
func (t *TextDisplay) SetText(text string) error {
	if text == t.text {
		return nil
	}
	if err := t.atlas.Check(text); err != nil {
		return fmt.Errorf("func SetText - %w", err)
	}
	previous := t.glyphCount

	t.text = text
	t.lines = t.lines[:0]
	t.glyphCount = 0
	if text != "" {
		for _, l := range strings.Split(text, "\n") {
			r := []rune(l)
			t.lines = append(t.lines, r)
			t.glyphCount += len(r)
		}
	}
	t.calculateDimensions()
	t.InvalidateVertices()
	if previous != t.glyphCount {
		t.InvalidateIndices()
	}
	return nil
}

func (t *TextDisplay) Atlas() *GlyphAtlas {
	return t.atlas
}

func (t *TextDisplay) Alignment() Alignment {
	return t.alignment
}

func (t *TextDisplay) SetAlignment(a Alignment) {
	t.alignment = a
	t.calculateDimensions()
	t.InvalidateVertices()
}

func (t *TextDisplay) CharacterSpacing() float32 {
	return t.characterSpacing
}

func (t *TextDisplay) SetCharacterSpacing(s float32) {
	t.characterSpacing = s
	t.calculateDimensions()
	t.InvalidateVertices()
}

func (t *TextDisplay) LineSpacing() float32 {
	return t.lineSpacing
}

func (t *TextDisplay) SetLineSpacing(s float32) {
	t.lineSpacing = s
	t.calculateDimensions()
	t.InvalidateVertices()
}

func (t *TextDisplay) lineOffset(chars int) float32 {
	lineWidth := float32(chars) * (t.atlas.CharacterWidth + t.characterSpacing)
	switch t.alignment {
	case CENTER:
		return (t.Width() - lineWidth) / 2
	case RIGHT:
		return t.Width() - lineWidth
	}
	return 0
}

func (t *TextDisplay) calculateDimensions() {
	if t.text == "" {
		return
	}
	longest := 0
	for _, l := range t.lines {
		if len(l) > longest {
			longest = len(l)
		}
	}
	t.SetWidth(float32(longest) * (t.atlas.CharacterWidth + t.characterSpacing))
	t.SetHeight(float32(len(t.lines)) * (t.atlas.CharacterHeight + t.lineSpacing))
}

// NewTextDisplayFromData reads the sprite keys plus Characters,
// CharacterWidth, CharacterHeight, Text, CharacterSpacing, LineSpacing and
// Alignment.
func NewTextDisplayFromData(canvas *Canvas, data content.Data) (*TextDisplay, error) {
	r := data.Reader()
	sf := readSpriteFields(r)
	characters := r.RequireString("Characters")
	cw := r.RequireFloat("CharacterWidth")
	ch := r.RequireFloat("CharacterHeight")
	text := r.String("Text", "")
	charSpacing := r.Float("CharacterSpacing", 0)
	lineSpacing := r.Float("LineSpacing", 0)
	align := r.String("Alignment", "LEFT")
	if err := r.Err(); err != nil {
		err = fmt.Errorf("func NewTextDisplayFromData - %w", err)
		core.LogError("%s", err)
		return nil, err
	}
	if characters == "" {
		return nil, fmt.Errorf("func NewTextDisplayFromData - Characters empty: %w", core.ErrMissingField)
	}
	alignment, err := ParseAlignment(align)
	if err != nil {
		return nil, fmt.Errorf("func NewTextDisplayFromData - %w", err)
	}
	tex, err := sf.acquire(canvas)
	if err != nil {
		return nil, fmt.Errorf("func NewTextDisplayFromData - %w", err)
	}
	atlas, err := NewGlyphAtlas(characters, cw, ch, tex.Width, tex.Height)
	if err != nil {
		canvas.textures.Release(tex)
		return nil, fmt.Errorf("func NewTextDisplayFromData - %w", err)
	}

	t := NewTextDisplay(canvas, sf.zOrder, tex, atlas)
	sf.hasWidth, sf.hasHeight = false, false
	sf.apply(t.Sprite)
	t.characterSpacing = charSpacing
	t.lineSpacing = lineSpacing
	t.alignment = alignment
	if err := t.SetText(text); err != nil {
		t.Dispose()
		return nil, fmt.Errorf("func NewTextDisplayFromData - %w", err)
	}
	return t, nil
}
