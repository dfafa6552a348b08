package renderer

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
)

/**
 * @brief A GlyphAtlas maps characters to uv rectangles inside a font texture.
 * Glyphs are laid out on a fixed cell grid of CharacterWidth x CharacterHeight.
 */
type GlyphAtlas struct {
	CharacterWidth  float32
	CharacterHeight float32

	glyphs map[rune]math.Vec4
}

func NewEmptyGlyphAtlas(characterWidth, characterHeight float32) *GlyphAtlas {
	return &GlyphAtlas{
		CharacterWidth:  characterWidth,
		CharacterHeight: characterHeight,
		glyphs:          make(map[rune]math.Vec4),
	}
}

// NewGlyphAtlas walks the texture cell by cell, assigning each character of
// characters in turn. A character listed twice is an error.
func NewGlyphAtlas(characters string, characterWidth, characterHeight, textureWidth, textureHeight float32) (*GlyphAtlas, error) {
	g := NewEmptyGlyphAtlas(characterWidth, characterHeight)
	if textureWidth <= 0 || textureHeight <= 0 {
		return nil, fmt.Errorf("func NewGlyphAtlas - texture size %vx%v: %w", textureWidth, textureHeight, core.ErrInvalidValue)
	}
	fw := characterWidth / textureWidth
	fh := characterHeight / textureHeight
	var x, y float32
	for _, c := range characters {
		u, v := x/textureWidth, y/textureHeight
		if err := g.AddGlyph(c, math.NewVec4(u, v, u+fw, v+fh)); err != nil {
			return nil, fmt.Errorf("func NewGlyphAtlas - %w", err)
		}
		x += characterWidth
		if x >= textureWidth {
			x = 0
			y += characterHeight
		}
	}
	return g, nil
}

func (g *GlyphAtlas) AddGlyph(c rune, uv math.Vec4) error {
	if _, ok := g.glyphs[c]; ok {
		return fmt.Errorf("character %q: %w", c, core.ErrDuplicateGlyph)
	}
	g.glyphs[c] = uv
	return nil
}

func (g *GlyphAtlas) UV(c rune) (math.Vec4, bool) {
	uv, ok := g.glyphs[c]
	return uv, ok
}

func (g *GlyphAtlas) Len() int {
	return len(g.glyphs)
}

// Check returns ErrUnknownGlyph for the first character of text that has no
// mapping. Newlines are line breaks, not glyphs.
func (g *GlyphAtlas) Check(text string) error {
	for _, c := range text {
		if c == '\n' {
			continue
		}
		if _, ok := g.glyphs[c]; !ok {
			return fmt.Errorf("character %q: %w", c, core.ErrUnknownGlyph)
		}
	}
	return nil
}
