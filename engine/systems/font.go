package systems

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// FontSource reads a bitmap font descriptor. *assets.AssetManager is one.
type FontSource interface {
	LoadBitmapFont(name string) (*metadata.BitmapFontResourceData, error)
}

// Font is a bitmap font ready for a TextDisplay.
type Font struct {
	Name       string
	Face       string
	LineHeight float32
	Texture    *metadata.Texture
	Atlas      *renderer.GlyphAtlas
}

type BitmapFontLookup struct {
	ReferenceCount uint16
	Font           *Font
}

type FontSystemConfig struct {
	MaxBitmapFontCount uint8
}

// FontSystem turns AngelCode descriptors into glyph atlases. TextDisplay lays
// glyphs on a fixed grid, so fonts are expected to be monospaced; the cell is
// the largest glyph in the font.
type FontSystem struct {
	Config           *FontSystemConfig
	BitmapFontLookup map[string]*BitmapFontLookup

	sources       FontSource
	textureSystem *TextureSystem
}

func NewFontSystem(config *FontSystemConfig, sources FontSource, ts *TextureSystem) (*FontSystem, error) {
	if config.MaxBitmapFontCount == 0 {
		err := fmt.Errorf("func NewFontSystem - config.MaxBitmapFontCount must be > 0: %w", core.ErrInvalidValue)
		core.LogError("%s", err)
		return nil, err
	}
	return &FontSystem{
		Config:           config,
		BitmapFontLookup: make(map[string]*BitmapFontLookup),
		sources:          sources,
		textureSystem:    ts,
	}, nil
}

// BuildGlyphAtlas maps every glyph of page 0 to its uv rectangle.
func BuildGlyphAtlas(data *metadata.BitmapFontResourceData) (*renderer.GlyphAtlas, error) {
	if data.AtlasSizeX <= 0 || data.AtlasSizeY <= 0 {
		return nil, fmt.Errorf("func BuildGlyphAtlas - font `%s` atlas %dx%d: %w", data.Face, data.AtlasSizeX, data.AtlasSizeY, core.ErrInvalidValue)
	}
	var cw, ch uint16
	for _, g := range data.Glyphs {
		cw = max(cw, g.Width)
		ch = max(ch, g.Height)
	}
	atlas := renderer.NewEmptyGlyphAtlas(float32(cw), float32(ch))
	sw, sh := float32(data.AtlasSizeX), float32(data.AtlasSizeY)
	for _, g := range data.Glyphs {
		if g.PageID != 0 {
			continue
		}
		u0, v0 := float32(g.X)/sw, float32(g.Y)/sh
		u1, v1 := float32(g.X+g.Width)/sw, float32(g.Y+g.Height)/sh
		if err := atlas.AddGlyph(rune(g.Codepoint), math.NewVec4(u0, v0, u1, v1)); err != nil {
			return nil, fmt.Errorf("func BuildGlyphAtlas - %w", err)
		}
	}
	return atlas, nil
}

func (fs *FontSystem) Acquire(name string) (*Font, error) {
	if lookup, ok := fs.BitmapFontLookup[name]; ok {
		lookup.ReferenceCount++
		return lookup.Font, nil
	}
	if len(fs.BitmapFontLookup) >= int(fs.Config.MaxBitmapFontCount) {
		err := fmt.Errorf("func Acquire - font limit %d reached: %w", fs.Config.MaxBitmapFontCount, core.ErrIndexOutOfRange)
		core.LogError("%s", err)
		return nil, err
	}
	data, err := fs.sources.LoadBitmapFont(name)
	if err != nil {
		return nil, fmt.Errorf("func Acquire - %w", err)
	}
	if len(data.Pages) == 0 {
		return nil, fmt.Errorf("func Acquire - font `%s` has no pages: %w", name, core.ErrMissingField)
	}
	atlas, err := BuildGlyphAtlas(data)
	if err != nil {
		return nil, err
	}
	texture, err := fs.textureSystem.Acquire(data.Pages[0].File)
	if err != nil {
		return nil, fmt.Errorf("func Acquire - font `%s`: %w", name, err)
	}
	font := &Font{
		Name:       name,
		Face:       data.Face,
		LineHeight: float32(data.LineHeight),
		Texture:    texture,
		Atlas:      atlas,
	}
	fs.BitmapFontLookup[name] = &BitmapFontLookup{ReferenceCount: 1, Font: font}
	core.LogDebug("font `%s` loaded with %d glyphs", name, atlas.Len())
	return font, nil
}

// NewTextDisplay places a text display using the font's texture and atlas.
// The display holds its own texture reference.
func (fs *FontSystem) NewTextDisplay(canvas *renderer.Canvas, zOrder int, font *Font) (*renderer.TextDisplay, error) {
	texture, err := fs.textureSystem.Acquire(font.Texture.Name)
	if err != nil {
		return nil, err
	}
	return renderer.NewTextDisplay(canvas, zOrder, texture, font.Atlas), nil
}

func (fs *FontSystem) Release(name string) {
	lookup, ok := fs.BitmapFontLookup[name]
	if !ok {
		return
	}
	lookup.ReferenceCount--
	if lookup.ReferenceCount > 0 {
		return
	}
	fs.textureSystem.Release(lookup.Font.Texture)
	delete(fs.BitmapFontLookup, name)
}

func (fs *FontSystem) Shutdown() error {
	for name, lookup := range fs.BitmapFontLookup {
		fs.textureSystem.Release(lookup.Font.Texture)
		delete(fs.BitmapFontLookup, name)
	}
	return nil
}
