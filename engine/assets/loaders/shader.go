package loaders

import (
	"fmt"
	"os"

	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// ShaderLoader reads the vertex stage at path and the fragment stage named
// by ShaderResourceParams into one ShaderSource.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	p, ok := params.(*metadata.ShaderResourceParams)
	if !ok || p == nil || p.FragmentPath == "" {
		return nil, fmt.Errorf("shader loader needs a fragment path for `%s`", path)
	}
	vertex, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fragment, err := os.ReadFile(p.FragmentPath)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeShader,
		FullPath: path,
		DataSize: uint64(len(vertex) + len(fragment)),
		Data: metadata.ShaderSource{
			Vertex:   string(vertex),
			Fragment: string(fragment),
		},
	}, nil
}

func (sl *ShaderLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
