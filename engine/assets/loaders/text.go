package loaders

import (
	"os"

	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// TextLoader reads level descriptions and other plain text as a string.
type TextLoader struct{}

func (tl *TextLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeText,
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (tl *TextLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
