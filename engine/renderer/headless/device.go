// Package headless is a GPU device that records every call instead of drawing.
// It backs tests and `-headless` runs.
package headless

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

type DrawCall struct {
	Count   int
	Offset  int
	Texture metadata.TextureHandle
	WVP     math.Mat4
}

type Stats struct {
	Frames        int
	VertexUploads int
	VertexPatches int
	IndexUploads  int
	IndexPatches  int
	TextureBinds  int
	ProgramUses   int
	LayoutBinds   int
}

type buffer struct {
	vertices []float32
	indices  []uint32
}

type Device struct {
	Stats Stats
	Draws []DrawCall
	// FailPrograms makes CreateProgram return an error, for error path tests.
	FailPrograms bool

	lastViewport metadata.Viewport
	lastClear    math.Vec4

	nextHandle   uint32
	buffers      map[metadata.BufferHandle]*buffer
	programs     map[metadata.ProgramHandle]metadata.ShaderSource
	textures     map[metadata.TextureHandle][2]int
	boundTexture metadata.TextureHandle
	uniforms     map[int32]math.Mat4
}

func New() *Device {
	return &Device{
		buffers:  make(map[metadata.BufferHandle]*buffer),
		programs: make(map[metadata.ProgramHandle]metadata.ShaderSource),
		textures: make(map[metadata.TextureHandle][2]int),
		uniforms: make(map[int32]math.Mat4),
	}
}

func (d *Device) handle() uint32 {
	d.nextHandle++
	return d.nextHandle
}

func (d *Device) Name() string {
	return "headless"
}

func (d *Device) Shutdown() error {
	d.buffers = make(map[metadata.BufferHandle]*buffer)
	d.programs = make(map[metadata.ProgramHandle]metadata.ShaderSource)
	d.textures = make(map[metadata.TextureHandle][2]int)
	return nil
}

func (d *Device) BeginFrame(viewport metadata.Viewport, clearColour math.Vec4) {
	d.Stats.Frames++
	d.lastViewport = viewport
	d.lastClear = clearColour
	d.Draws = d.Draws[:0]
}

func (d *Device) CreateProgram(source metadata.ShaderSource) (metadata.ProgramHandle, error) {
	if d.FailPrograms {
		return 0, fmt.Errorf("headless: program `%s` rejected", source.Name)
	}
	h := metadata.ProgramHandle(d.handle())
	d.programs[h] = source
	return h, nil
}

func (d *Device) DeleteProgram(program metadata.ProgramHandle) {
	delete(d.programs, program)
}

func (d *Device) UseProgram(program metadata.ProgramHandle) {
	d.Stats.ProgramUses++
}

func (d *Device) SetUniformMat4(program metadata.ProgramHandle, location int32, value math.Mat4) {
	d.uniforms[location] = value
}

func (d *Device) CreateBuffer() metadata.BufferHandle {
	h := metadata.BufferHandle(d.handle())
	d.buffers[h] = &buffer{}
	return h
}

func (d *Device) DeleteBuffer(b metadata.BufferHandle) {
	delete(d.buffers, b)
}

func (d *Device) BufferVertices(b metadata.BufferHandle, data []float32) {
	d.Stats.VertexUploads++
	if buf, ok := d.buffers[b]; ok {
		buf.vertices = append([]float32(nil), data...)
	}
}

func (d *Device) PatchVertices(b metadata.BufferHandle, offset int, data []float32) {
	d.Stats.VertexPatches++
	if buf, ok := d.buffers[b]; ok {
		copy(buf.vertices[offset:], data)
	}
}

func (d *Device) BufferIndices(b metadata.BufferHandle, data []uint32) {
	d.Stats.IndexUploads++
	if buf, ok := d.buffers[b]; ok {
		buf.indices = append([]uint32(nil), data...)
	}
}

func (d *Device) PatchIndices(b metadata.BufferHandle, offset int, data []uint32) {
	d.Stats.IndexPatches++
	if buf, ok := d.buffers[b]; ok {
		copy(buf.indices[offset:], data)
	}
}

func (d *Device) BindVertexLayout(vertices, indices metadata.BufferHandle) {
	d.Stats.LayoutBinds++
}

func (d *Device) CreateTexture(width, height int, rgba []byte) metadata.TextureHandle {
	h := metadata.TextureHandle(d.handle())
	d.textures[h] = [2]int{width, height}
	return h
}

func (d *Device) DeleteTexture(texture metadata.TextureHandle) {
	delete(d.textures, texture)
}

func (d *Device) BindTexture(texture metadata.TextureHandle) {
	d.Stats.TextureBinds++
	d.boundTexture = texture
}

func (d *Device) DrawElements(count, offset int) {
	d.Draws = append(d.Draws, DrawCall{
		Count:   count,
		Offset:  offset,
		Texture: d.boundTexture,
		WVP:     d.uniforms[metadata.UNIFORM_WVP],
	})
}

// VertexData returns what the GPU would hold for the buffer.
func (d *Device) VertexData(b metadata.BufferHandle) []float32 {
	if buf, ok := d.buffers[b]; ok {
		return buf.vertices
	}
	return nil
}

func (d *Device) IndexData(b metadata.BufferHandle) []uint32 {
	if buf, ok := d.buffers[b]; ok {
		return buf.indices
	}
	return nil
}

func (d *Device) LiveTextures() int {
	return len(d.textures)
}

func (d *Device) LiveBuffers() int {
	return len(d.buffers)
}

func (d *Device) LivePrograms() int {
	return len(d.programs)
}

func (d *Device) LastViewport() metadata.Viewport {
	return d.lastViewport
}

func (d *Device) LastClearColour() math.Vec4 {
	return d.lastClear
}
