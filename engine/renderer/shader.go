package renderer

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// Shader is a linked program on the device. Canvases share shaders; the
// owner (usually the shader system) disposes them.
type Shader struct {
	Name     string
	device   Device
	program  metadata.ProgramHandle
	disposed bool
}

func NewShader(device Device, source metadata.ShaderSource) (*Shader, error) {
	program, err := device.CreateProgram(source)
	if err != nil {
		err = fmt.Errorf("func NewShader - shader `%s`: %w", source.Name, err)
		core.LogError("%s", err)
		return nil, err
	}
	return &Shader{Name: source.Name, device: device, program: program}, nil
}

func (s *Shader) Program() metadata.ProgramHandle {
	return s.program
}

func (s *Shader) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.device.DeleteProgram(s.program)
}
