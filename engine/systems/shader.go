package systems

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// ShaderSource reads the two stages of a program. *assets.AssetManager is one.
type ShaderSource interface {
	LoadShader(name, vertex, fragment string) (metadata.ShaderSource, error)
}

/** @brief Configuration for the shader system. */
type ShaderSystemConfig struct {
	/** @brief The maximum number of shaders held in the system. */
	MaxShaderCount uint16
}

/**
 * @brief ShaderSystem compiles each named program once. Canvases share the
 * returned shader and never dispose it; the system does on Shutdown.
 */
type ShaderSystem struct {
	// This system's configuration.
	Config *ShaderSystemConfig
	// A lookup table for shader name->shader
	Lookup map[string]*renderer.Shader

	sources ShaderSource
	device  renderer.Device
}

func NewShaderSystem(config *ShaderSystemConfig, sources ShaderSource, device renderer.Device) (*ShaderSystem, error) {
	if config.MaxShaderCount == 0 {
		err := fmt.Errorf("func NewShaderSystem - config.MaxShaderCount must be greater than 0: %w", core.ErrInvalidValue)
		core.LogError("%s", err)
		return nil, err
	}
	return &ShaderSystem{
		Config:  config,
		Lookup:  make(map[string]*renderer.Shader),
		sources: sources,
		device:  device,
	}, nil
}

// Acquire returns the program called name, compiling it from the vertex
// and fragment assets the first time.
func (ss *ShaderSystem) Acquire(name, vertex, fragment string) (*renderer.Shader, error) {
	if s, ok := ss.Lookup[name]; ok {
		return s, nil
	}
	if len(ss.Lookup) >= int(ss.Config.MaxShaderCount) {
		err := fmt.Errorf("func Acquire - shader limit %d reached: %w", ss.Config.MaxShaderCount, core.ErrIndexOutOfRange)
		core.LogError("%s", err)
		return nil, err
	}
	src, err := ss.sources.LoadShader(name, vertex, fragment)
	if err != nil {
		return nil, fmt.Errorf("func Acquire - %w", err)
	}
	return ss.Create(src)
}

// Create compiles src directly, for programs that are not loaded from assets.
func (ss *ShaderSystem) Create(src metadata.ShaderSource) (*renderer.Shader, error) {
	if s, ok := ss.Lookup[src.Name]; ok {
		return s, nil
	}
	s, err := renderer.NewShader(ss.device, src)
	if err != nil {
		return nil, err
	}
	ss.Lookup[src.Name] = s
	core.LogDebug("shader `%s` compiled", src.Name)
	return s, nil
}

func (ss *ShaderSystem) Get(name string) (*renderer.Shader, error) {
	s, ok := ss.Lookup[name]
	if !ok {
		return nil, fmt.Errorf("func Get - shader `%s`: %w", name, core.ErrNotFound)
	}
	return s, nil
}

/**
 * @brief Shuts down the shader system, deleting every program.
 */
func (ss *ShaderSystem) Shutdown() error {
	for _, s := range ss.Lookup {
		s.Dispose()
	}
	ss.Lookup = make(map[string]*renderer.Shader)
	return nil
}
