package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

type BitmapFontLoader struct{}

type BitmapFontFileType int

const (
	BITMAP_FONT_FILE_TYPE_NOT_FOUND BitmapFontFileType = iota
	BITMAP_FONT_FILE_TYPE_FNT
)

func fontFileType(path string) BitmapFontFileType {
	if filepath.Ext(path) == ".fnt" {
		return BITMAP_FONT_FILE_TYPE_FNT
	}
	return BITMAP_FONT_FILE_TYPE_NOT_FOUND
}

func (fl *BitmapFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if fontFileType(path) == BITMAP_FONT_FILE_TYPE_NOT_FOUND {
		return nil, fmt.Errorf("unable to find bitmap font of supported type called '%s'", path)
	}
	rd, err := fl.importFNTFile(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeBitmapFont,
		FullPath: path,
		Data:     rd,
		DataSize: uint64(len(rd.Glyphs)),
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *metadata.Resource) error {
	if resource.Data != nil {
		data := resource.Data.(*metadata.BitmapFontResourceData)
		data.Glyphs = nil
		data.Pages = nil
		data.Kernings = nil
		resource.Data = nil
		resource.DataSize = 0
		resource.FullPath = ""
	}
	return nil
}

// importFNTFile reads an AngelCode text descriptor. Page files are resolved
// against the descriptor's directory.
func (fl *BitmapFontLoader) importFNTFile(fnt_file_name string) (*metadata.BitmapFontResourceData, error) {
	font, err := bmfont.Load(fnt_file_name)
	if err != nil {
		return nil, err
	}
	desc := font.Descriptor
	dir := filepath.Dir(fnt_file_name)

	out_data := &metadata.BitmapFontResourceData{
		Face:       desc.Info.Face,
		Size:       uint32(desc.Info.Size),
		LineHeight: int32(desc.Common.LineHeight),
		Baseline:   int32(desc.Common.Base),
		AtlasSizeX: int32(desc.Common.ScaleW),
		AtlasSizeY: int32(desc.Common.ScaleH),
		Glyphs:     make([]*metadata.FontGlyph, 0, len(desc.Chars)),
		Kernings:   make([]*metadata.FontKerning, 0, len(desc.Kerning)),
		Pages:      make([]*metadata.BitmapFontPage, 0, len(desc.Pages)),
	}

	for _, p := range desc.Pages {
		out_data.Pages = append(out_data.Pages, &metadata.BitmapFontPage{
			ID:   int8(p.ID),
			File: filepath.ToSlash(filepath.Join(dir, p.File)),
		})
	}
	for _, g := range desc.Chars {
		out_data.Glyphs = append(out_data.Glyphs, &metadata.FontGlyph{
			Codepoint: int32(g.ID),
			Height:    uint16(g.Height),
			Width:     uint16(g.Width),
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			XAdvance:  int16(g.XAdvance),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			PageID:    uint8(g.Page),
		})
	}
	for p, k := range desc.Kerning {
		out_data.Kernings = append(out_data.Kernings, &metadata.FontKerning{
			Amount:     int16(k.Amount),
			Codepoint0: int32(p.First),
			Codepoint1: int32(p.Second),
		})
	}
	return out_data, nil
}
