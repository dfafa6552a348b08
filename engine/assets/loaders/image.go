package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

type ImageLoader struct{}

// decodeRGBA decodes any registered format into tightly packed RGBA rows.
func decodeRGBA(path string, flip bool) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	if flip {
		stride := rgba.Stride
		row := make([]uint8, stride)
		for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
			t := rgba.Pix[top*stride : (top+1)*stride]
			btm := rgba.Pix[bottom*stride : (bottom+1)*stride]
			copy(row, t)
			copy(t, btm)
			copy(btm, row)
		}
	}
	return rgba, nil
}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flip := false
	if p, ok := params.(*metadata.ImageResourceParams); ok && p != nil {
		flip = p.FlipY
	}
	rgba, err := decodeRGBA(path, flip)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image `%s`: %w", path, err)
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeImage,
		FullPath: path,
		DataSize: uint64(len(rgba.Pix)),
		Data: &metadata.ImageResourceData{
			ChannelCount: 4,
			Width:        uint32(rgba.Rect.Dx()),
			Height:       uint32(rgba.Rect.Dy()),
			Pixels:       rgba.Pix,
		},
	}, nil
}

func (il *ImageLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
