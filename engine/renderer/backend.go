package renderer

import (
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

// Device is the narrow GPU surface the batched sprite core needs. All calls
// happen on the frame thread.
type Device interface {
	Name() string
	Shutdown() error

	// BeginFrame enables alpha blending, sets the viewport and clears colour and depth.
	BeginFrame(viewport metadata.Viewport, clearColour math.Vec4)

	CreateProgram(source metadata.ShaderSource) (metadata.ProgramHandle, error)
	DeleteProgram(program metadata.ProgramHandle)
	UseProgram(program metadata.ProgramHandle)
	SetUniformMat4(program metadata.ProgramHandle, location int32, value math.Mat4)

	CreateBuffer() metadata.BufferHandle
	DeleteBuffer(buffer metadata.BufferHandle)
	// BufferVertices reallocates the vertex buffer to hold data.
	BufferVertices(buffer metadata.BufferHandle, data []float32)
	// PatchVertices overwrites data in place starting at float offset.
	PatchVertices(buffer metadata.BufferHandle, offset int, data []float32)
	BufferIndices(buffer metadata.BufferHandle, data []uint32)
	PatchIndices(buffer metadata.BufferHandle, offset int, data []uint32)
	// BindVertexLayout binds both buffers and the interleaved position/uv/colour layout.
	BindVertexLayout(vertices, indices metadata.BufferHandle)

	CreateTexture(width, height int, rgba []byte) metadata.TextureHandle
	DeleteTexture(texture metadata.TextureHandle)
	BindTexture(texture metadata.TextureHandle)

	// DrawElements draws count indices starting at index offset of the bound index buffer.
	DrawElements(count, offset int)
}
