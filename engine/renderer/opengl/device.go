// Package opengl implements the renderer Device on an OpenGL 3.3 core
// context. The context must be current on the calling thread before New.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

const floatSize = 4

// program keeps the real uniform locations behind the fixed ones the
// renderer uses.
type program struct {
	id       uint32
	uniforms map[int32]int32
	sampler  int32
}

type Device struct {
	vao      uint32
	programs map[metadata.ProgramHandle]*program
	buffers  map[metadata.BufferHandle]struct{}
	textures map[metadata.TextureHandle]struct{}
}

func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		err = fmt.Errorf("func New - failed to initialise OpenGL: %w", err)
		core.LogError("%s", err)
		return nil, err
	}
	d := &Device{
		programs: make(map[metadata.ProgramHandle]*program),
		buffers:  make(map[metadata.BufferHandle]struct{}),
		textures: make(map[metadata.TextureHandle]struct{}),
	}
	// Core profile needs a bound vertex array for any element buffer work.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	core.LogInfo("OpenGL %s, GLSL %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))
	return d, nil
}

func (d *Device) Name() string {
	return "opengl"
}

func (d *Device) Shutdown() error {
	for h := range d.programs {
		d.DeleteProgram(h)
	}
	for h := range d.buffers {
		d.DeleteBuffer(h)
	}
	for h := range d.textures {
		d.DeleteTexture(h)
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	return nil
}

func (d *Device) BeginFrame(viewport metadata.Viewport, clearColour math.Vec4) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Viewport(viewport.X, viewport.Y, viewport.Width, viewport.Height)
	gl.ClearColor(clearColour.X, clearColour.Y, clearColour.Z, clearColour.W)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile error: %s", log)
	}
	return shader, nil
}

func (d *Device) CreateProgram(source metadata.ShaderSource) (metadata.ProgramHandle, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, source.Vertex)
	if err != nil {
		return 0, fmt.Errorf("func CreateProgram - `%s` vertex stage: %w", source.Name, err)
	}
	defer gl.DeleteShader(vertexShader)
	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, source.Fragment)
	if err != nil {
		return 0, fmt.Errorf("func CreateProgram - `%s` fragment stage: %w", source.Name, err)
	}
	defer gl.DeleteShader(fragmentShader)

	id := gl.CreateProgram()
	gl.AttachShader(id, vertexShader)
	gl.AttachShader(id, fragmentShader)
	gl.BindAttribLocation(id, metadata.ATTRIB_POSITION, gl.Str(metadata.ATTRIB_POSITION_NAME+"\x00"))
	gl.BindAttribLocation(id, metadata.ATTRIB_UV, gl.Str(metadata.ATTRIB_UV_NAME+"\x00"))
	gl.BindAttribLocation(id, metadata.ATTRIB_COLOUR, gl.Str(metadata.ATTRIB_COLOUR_NAME+"\x00"))
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return 0, fmt.Errorf("func CreateProgram - `%s` link error: %s", source.Name, log)
	}

	p := &program{
		id: id,
		uniforms: map[int32]int32{
			metadata.UNIFORM_WVP: gl.GetUniformLocation(id, gl.Str(metadata.UNIFORM_WVP_NAME+"\x00")),
		},
		sampler: gl.GetUniformLocation(id, gl.Str(metadata.UNIFORM_TEXTURE_NAME+"\x00")),
	}
	h := metadata.ProgramHandle(id)
	d.programs[h] = p
	return h, nil
}

func (d *Device) DeleteProgram(h metadata.ProgramHandle) {
	if p, ok := d.programs[h]; ok {
		gl.DeleteProgram(p.id)
		delete(d.programs, h)
	}
}

func (d *Device) UseProgram(h metadata.ProgramHandle) {
	p, ok := d.programs[h]
	if !ok {
		return
	}
	gl.UseProgram(p.id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(p.sampler, 0)
}

func (d *Device) SetUniformMat4(h metadata.ProgramHandle, location int32, value math.Mat4) {
	p, ok := d.programs[h]
	if !ok {
		return
	}
	// Row-vector data read column-major is the transpose GLSL wants.
	gl.UniformMatrix4fv(p.uniforms[location], 1, false, &value.Data[0])
}

func (d *Device) CreateBuffer() metadata.BufferHandle {
	var id uint32
	gl.GenBuffers(1, &id)
	h := metadata.BufferHandle(id)
	d.buffers[h] = struct{}{}
	return h
}

func (d *Device) DeleteBuffer(h metadata.BufferHandle) {
	if _, ok := d.buffers[h]; !ok {
		return
	}
	id := uint32(h)
	gl.DeleteBuffers(1, &id)
	delete(d.buffers, h)
}

func (d *Device) BufferVertices(h metadata.BufferHandle, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h))
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), gl.DYNAMIC_DRAW)
}

func (d *Device) PatchVertices(h metadata.BufferHandle, offset int, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h))
	gl.BufferSubData(gl.ARRAY_BUFFER, offset*floatSize, len(data)*floatSize, gl.Ptr(data))
}

func (d *Device) BufferIndices(h metadata.BufferHandle, data []uint32) {
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(h))
	if len(data) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
}

func (d *Device) PatchIndices(h metadata.BufferHandle, offset int, data []uint32) {
	if len(data) == 0 {
		return
	}
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(h))
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, offset*4, len(data)*4, gl.Ptr(data))
}

func (d *Device) BindVertexLayout(vertices, indices metadata.BufferHandle) {
	stride := int32(metadata.FLOATS_PER_VERTEX * floatSize)
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(vertices))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(indices))

	gl.EnableVertexAttribArray(metadata.ATTRIB_POSITION)
	gl.VertexAttribPointer(metadata.ATTRIB_POSITION, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(metadata.ATTRIB_UV)
	gl.VertexAttribPointer(metadata.ATTRIB_UV, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*floatSize))
	gl.EnableVertexAttribArray(metadata.ATTRIB_COLOUR)
	gl.VertexAttribPointer(metadata.ATTRIB_COLOUR, 4, gl.FLOAT, false, stride, gl.PtrOffset(5*floatSize))
}

func (d *Device) CreateTexture(width, height int, rgba []byte) metadata.TextureHandle {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if len(rgba) > 0 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	h := metadata.TextureHandle(id)
	d.textures[h] = struct{}{}
	return h
}

func (d *Device) DeleteTexture(h metadata.TextureHandle) {
	if _, ok := d.textures[h]; !ok {
		return
	}
	id := uint32(h)
	gl.DeleteTextures(1, &id)
	delete(d.textures, h)
}

func (d *Device) BindTexture(h metadata.TextureHandle) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
}

func (d *Device) DrawElements(count, offset int) {
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, gl.PtrOffset(offset*4))
}
