package loaders

import (
	"io"
	"os"

	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// BinaryLoader returns the raw bytes of a file. Audio clips go through it
// and are decoded by the audio manager in SystemManager.LoadSound.
type BinaryLoader struct{}

func (bl *BinaryLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Type:     assetType,
		FullPath: path,
		DataSize: uint64(len(buf)),
		Data:     buf,
	}, nil
}

func (bl *BinaryLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
