//go:build !js

// package glbackend implements gfx.Context on desktop OpenGL 3.3 core via
// go-gl. The 3.3 core profile carries vertex-array objects and instanced
// drawing natively, so this backend always reports the capability-rich
// generation and never exposes the limited-generation extensions.
//
// All calls must happen on the goroutine that owns the GL context, which the
// window package locks to an OS thread.
package glbackend

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// glContext is the implementation of gfx.Context over go-gl.
type glContext struct{}

var _ gfx.Context = &glContext{}

// NewContext initializes go-gl against the current GL context and returns
// the backend. A context must already be current on the calling goroutine
// (window.Window makes one current during construction).
//
// Returns:
//   - gfx.Context: the desktop backend
//   - error: error if the GL function loader fails
func NewContext() (gfx.Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}
	return &glContext{}, nil
}

func (c *glContext) Generation() gfx.Generation {
	return gfx.GenerationRich
}

func (c *glContext) HasExtension(string) bool {
	return false
}

func (c *glContext) IntParameter(param gfx.IntParameter) int {
	var v int32
	gl.GetIntegerv(uint32(param), &v)
	return int(v)
}

// IsLost always reports false. Desktop GL contexts live as long as their
// window; the lost-context path exists for the WebGL backend.
func (c *glContext) IsLost() bool {
	return false
}

func (c *glContext) CreateBuffer() (gfx.BufferID, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("%w: buffer", gfx.ErrObjectCreation)
	}
	return gfx.BufferID(id), nil
}

func (c *glContext) BindBuffer(target gfx.BufferTarget, buffer gfx.BufferID) {
	gl.BindBuffer(uint32(target), uint32(buffer))
}

func (c *glContext) BufferData(target gfx.BufferTarget, data []byte, usage gfx.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(data), uint32(usage))
}

func (c *glContext) BufferSubData(target gfx.BufferTarget, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(uint32(target), offset, len(data), gl.Ptr(data))
}

func (c *glContext) DeleteBuffer(buffer gfx.BufferID) {
	if buffer == 0 {
		return
	}
	id := uint32(buffer)
	gl.DeleteBuffers(1, &id)
}

func (c *glContext) CreateShader(shaderType gfx.ShaderType) (gfx.ShaderID, error) {
	id := gl.CreateShader(uint32(shaderType))
	if id == 0 {
		return 0, fmt.Errorf("%w: shader", gfx.ErrObjectCreation)
	}
	return gfx.ShaderID(id), nil
}

func (c *glContext) ShaderSource(shader gfx.ShaderID, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, csources, nil)
	free()
}

func (c *glContext) CompileShader(shader gfx.ShaderID) {
	gl.CompileShader(uint32(shader))
}

func (c *glContext) ShaderCompileStatus(shader gfx.ShaderID) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (c *glContext) ShaderInfoLog(shader gfx.ShaderID) string {
	var logLength int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(shader), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *glContext) DeleteShader(shader gfx.ShaderID) {
	gl.DeleteShader(uint32(shader))
}

func (c *glContext) CreateProgram() (gfx.ProgramID, error) {
	id := gl.CreateProgram()
	if id == 0 {
		return 0, fmt.Errorf("%w: program", gfx.ErrObjectCreation)
	}
	return gfx.ProgramID(id), nil
}

func (c *glContext) AttachShader(program gfx.ProgramID, shader gfx.ShaderID) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (c *glContext) LinkProgram(program gfx.ProgramID) {
	gl.LinkProgram(uint32(program))
}

func (c *glContext) ProgramLinkStatus(program gfx.ProgramID) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (c *glContext) ProgramInfoLog(program gfx.ProgramID) string {
	var logLength int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(program), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *glContext) UseProgram(program gfx.ProgramID) {
	gl.UseProgram(uint32(program))
}

func (c *glContext) DeleteProgram(program gfx.ProgramID) {
	if program == 0 {
		return
	}
	gl.DeleteProgram(uint32(program))
}

func (c *glContext) BindAttribLocation(program gfx.ProgramID, index uint32, name string) {
	gl.BindAttribLocation(uint32(program), index, gl.Str(name+"\x00"))
}

func (c *glContext) AttribLocation(program gfx.ProgramID, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
}

func (c *glContext) UniformLocation(program gfx.ProgramID, name string) gfx.UniformLocation {
	return gfx.UniformLocation(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}

func (c *glContext) Uniform1f(location gfx.UniformLocation, v float32) {
	gl.Uniform1f(int32(location), v)
}

func (c *glContext) Uniform1i(location gfx.UniformLocation, v int32) {
	gl.Uniform1i(int32(location), v)
}

func (c *glContext) Uniform2f(location gfx.UniformLocation, x, y float32) {
	gl.Uniform2f(int32(location), x, y)
}

func (c *glContext) Uniform3f(location gfx.UniformLocation, x, y, z float32) {
	gl.Uniform3f(int32(location), x, y, z)
}

func (c *glContext) Uniform4f(location gfx.UniformLocation, x, y, z, w float32) {
	gl.Uniform4f(int32(location), x, y, z, w)
}

func (c *glContext) UniformMatrix4fv(location gfx.UniformLocation, values []float32) {
	if len(values) < 16 {
		return
	}
	gl.UniformMatrix4fv(int32(location), 1, false, &values[0])
}

func (c *glContext) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (c *glContext) DisableVertexAttribArray(index uint32) {
	gl.DisableVertexAttribArray(index)
}

func (c *glContext) VertexAttribPointer(index uint32, size int32, componentType gfx.ComponentType, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(index, size, uint32(componentType), normalized, int32(stride), gl.PtrOffset(offset))
}

func (c *glContext) DrawArrays(mode gfx.DrawMode, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (c *glContext) DrawElements(mode gfx.DrawMode, count int, componentType gfx.ComponentType, offset int) {
	gl.DrawElements(uint32(mode), int32(count), uint32(componentType), gl.PtrOffset(offset))
}

func (c *glContext) NativeVertexArrays() (gfx.VertexArrayOps, bool) {
	return nativeVertexArrays{}, true
}

func (c *glContext) NativeInstancing() (gfx.InstancedOps, bool) {
	return nativeInstanced{}, true
}

func (c *glContext) VertexArrayExtension() (gfx.VertexArrayOps, bool) {
	return nil, false
}

func (c *glContext) InstancingExtension() (gfx.InstancedOps, bool) {
	return nil, false
}

func (c *glContext) Enable(capability gfx.StateCapability) {
	gl.Enable(uint32(capability))
}

func (c *glContext) Disable(capability gfx.StateCapability) {
	gl.Disable(uint32(capability))
}

func (c *glContext) BlendFunc(src, dst gfx.BlendFactor) {
	gl.BlendFunc(uint32(src), uint32(dst))
}

func (c *glContext) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *glContext) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *glContext) Clear(mask gfx.ClearMask) {
	gl.Clear(uint32(mask))
}

// nativeVertexArrays routes the vertex-array bundle to core 3.3 calls.
type nativeVertexArrays struct{}

func (nativeVertexArrays) CreateVertexArray() (gfx.VertexArrayID, error) {
	var id uint32
	gl.GenVertexArrays(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("%w: vertex array", gfx.ErrObjectCreation)
	}
	return gfx.VertexArrayID(id), nil
}

func (nativeVertexArrays) BindVertexArray(va gfx.VertexArrayID) {
	gl.BindVertexArray(uint32(va))
}

func (nativeVertexArrays) DeleteVertexArray(va gfx.VertexArrayID) {
	if va == 0 {
		return
	}
	id := uint32(va)
	gl.DeleteVertexArrays(1, &id)
}

// nativeInstanced routes the instancing bundle to core 3.3 calls.
type nativeInstanced struct{}

func (nativeInstanced) DrawArraysInstanced(mode gfx.DrawMode, first, count, instanceCount int) {
	gl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instanceCount))
}

func (nativeInstanced) DrawElementsInstanced(mode gfx.DrawMode, count int, componentType gfx.ComponentType, offset, instanceCount int) {
	gl.DrawElementsInstanced(uint32(mode), int32(count), uint32(componentType), gl.PtrOffset(offset), int32(instanceCount))
}

func (nativeInstanced) VertexAttribDivisor(index, divisor uint32) {
	gl.VertexAttribDivisor(index, divisor)
}
