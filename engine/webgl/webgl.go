//go:build js && wasm

// package webgl implements gfx.Context over a browser WebGL context via
// syscall/js. A WebGL2 context reports the capability-rich generation; a
// WebGL1 context reports the limited generation and resolves vertex arrays
// and instancing through the OES_vertex_array_object and
// ANGLE_instanced_arrays extension objects.
//
// WebGL object handles are JS values, so the backend keeps id-to-value maps
// behind the numeric handle types the rest of the module uses. WebGL enum
// values are the same numeric constants gfx carries, so enums pass through
// unchanged.
package webgl

import (
	"fmt"
	"syscall/js"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
)

// webglContext is the implementation of gfx.Context over a js.Value WebGL
// rendering context.
type webglContext struct {
	gl         js.Value
	generation gfx.Generation

	buffers      map[gfx.BufferID]js.Value
	shaders      map[gfx.ShaderID]js.Value
	programs     map[gfx.ProgramID]js.Value
	vertexArrays map[gfx.VertexArrayID]js.Value
	uniforms     map[gfx.UniformLocation]js.Value

	nextBuffer      gfx.BufferID
	nextShader      gfx.ShaderID
	nextProgram     gfx.ProgramID
	nextVertexArray gfx.VertexArrayID
	nextUniform     gfx.UniformLocation

	extVertexArray js.Value
	extInstanced   js.Value
}

var _ gfx.Context = &webglContext{}

// NewContext wraps a WebGL rendering context obtained from a canvas. The
// generation is detected from the context object itself: WebGL2 exposes
// createVertexArray and drawArraysInstanced directly, WebGL1 does not.
//
// Parameters:
//   - gl: the WebGLRenderingContext or WebGL2RenderingContext value
//
// Returns:
//   - gfx.Context: the browser backend
//   - error: error if gl is not a usable context value
func NewContext(gl js.Value) (gfx.Context, error) {
	if gl.IsUndefined() || gl.IsNull() {
		return nil, fmt.Errorf("webgl: nil rendering context")
	}

	c := &webglContext{
		gl:           gl,
		buffers:      map[gfx.BufferID]js.Value{},
		shaders:      map[gfx.ShaderID]js.Value{},
		programs:     map[gfx.ProgramID]js.Value{},
		vertexArrays: map[gfx.VertexArrayID]js.Value{},
		uniforms:     map[gfx.UniformLocation]js.Value{},
	}

	if gl.Get("createVertexArray").Truthy() && gl.Get("drawArraysInstanced").Truthy() {
		c.generation = gfx.GenerationRich
	} else {
		c.generation = gfx.GenerationLimited
		c.extVertexArray = gl.Call("getExtension", gfx.ExtVertexArrayObject)
		c.extInstanced = gl.Call("getExtension", gfx.ExtInstancedArrays)
	}
	return c, nil
}

func (c *webglContext) Generation() gfx.Generation {
	return c.generation
}

func (c *webglContext) HasExtension(name string) bool {
	if c.generation == gfx.GenerationRich {
		return false
	}
	switch name {
	case gfx.ExtVertexArrayObject:
		return c.extVertexArray.Truthy()
	case gfx.ExtInstancedArrays:
		return c.extInstanced.Truthy()
	default:
		return c.gl.Call("getExtension", name).Truthy()
	}
}

func (c *webglContext) IntParameter(param gfx.IntParameter) int {
	v := c.gl.Call("getParameter", int(param))
	if v.Type() != js.TypeNumber {
		return 0
	}
	return v.Int()
}

func (c *webglContext) IsLost() bool {
	return c.gl.Call("isContextLost").Bool()
}

func (c *webglContext) CreateBuffer() (gfx.BufferID, error) {
	obj := c.gl.Call("createBuffer")
	if !obj.Truthy() {
		return 0, fmt.Errorf("webgl: %w: buffer", gfx.ErrObjectCreation)
	}
	c.nextBuffer++
	c.buffers[c.nextBuffer] = obj
	return c.nextBuffer, nil
}

func (c *webglContext) BindBuffer(target gfx.BufferTarget, buffer gfx.BufferID) {
	c.gl.Call("bindBuffer", int(target), c.bufferValue(buffer))
}

func (c *webglContext) BufferData(target gfx.BufferTarget, data []byte, usage gfx.BufferUsage) {
	if len(data) == 0 {
		c.gl.Call("bufferData", int(target), 0, int(usage))
		return
	}
	c.gl.Call("bufferData", int(target), bytesToJS(data), int(usage))
}

func (c *webglContext) BufferSubData(target gfx.BufferTarget, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	c.gl.Call("bufferSubData", int(target), offset, bytesToJS(data))
}

func (c *webglContext) DeleteBuffer(buffer gfx.BufferID) {
	if obj, ok := c.buffers[buffer]; ok {
		c.gl.Call("deleteBuffer", obj)
		delete(c.buffers, buffer)
	}
}

func (c *webglContext) CreateShader(shaderType gfx.ShaderType) (gfx.ShaderID, error) {
	obj := c.gl.Call("createShader", int(shaderType))
	if !obj.Truthy() {
		return 0, fmt.Errorf("webgl: %w: shader", gfx.ErrObjectCreation)
	}
	c.nextShader++
	c.shaders[c.nextShader] = obj
	return c.nextShader, nil
}

func (c *webglContext) ShaderSource(shader gfx.ShaderID, source string) {
	c.gl.Call("shaderSource", c.shaders[shader], source)
}

func (c *webglContext) CompileShader(shader gfx.ShaderID) {
	c.gl.Call("compileShader", c.shaders[shader])
}

func (c *webglContext) ShaderCompileStatus(shader gfx.ShaderID) bool {
	return c.gl.Call("getShaderParameter", c.shaders[shader], compileStatus).Bool()
}

func (c *webglContext) ShaderInfoLog(shader gfx.ShaderID) string {
	return jsString(c.gl.Call("getShaderInfoLog", c.shaders[shader]))
}

func (c *webglContext) DeleteShader(shader gfx.ShaderID) {
	if obj, ok := c.shaders[shader]; ok {
		c.gl.Call("deleteShader", obj)
		delete(c.shaders, shader)
	}
}

func (c *webglContext) CreateProgram() (gfx.ProgramID, error) {
	obj := c.gl.Call("createProgram")
	if !obj.Truthy() {
		return 0, fmt.Errorf("webgl: %w: program", gfx.ErrObjectCreation)
	}
	c.nextProgram++
	c.programs[c.nextProgram] = obj
	return c.nextProgram, nil
}

func (c *webglContext) AttachShader(program gfx.ProgramID, shader gfx.ShaderID) {
	c.gl.Call("attachShader", c.programs[program], c.shaders[shader])
}

func (c *webglContext) LinkProgram(program gfx.ProgramID) {
	c.gl.Call("linkProgram", c.programs[program])
}

func (c *webglContext) ProgramLinkStatus(program gfx.ProgramID) bool {
	return c.gl.Call("getProgramParameter", c.programs[program], linkStatus).Bool()
}

func (c *webglContext) ProgramInfoLog(program gfx.ProgramID) string {
	return jsString(c.gl.Call("getProgramInfoLog", c.programs[program]))
}

func (c *webglContext) UseProgram(program gfx.ProgramID) {
	if program == 0 {
		c.gl.Call("useProgram", js.Null())
		return
	}
	c.gl.Call("useProgram", c.programs[program])
}

func (c *webglContext) DeleteProgram(program gfx.ProgramID) {
	if obj, ok := c.programs[program]; ok {
		c.gl.Call("deleteProgram", obj)
		delete(c.programs, program)
	}
}

func (c *webglContext) BindAttribLocation(program gfx.ProgramID, index uint32, name string) {
	c.gl.Call("bindAttribLocation", c.programs[program], int(index), name)
}

func (c *webglContext) AttribLocation(program gfx.ProgramID, name string) int32 {
	return int32(c.gl.Call("getAttribLocation", c.programs[program], name).Int())
}

func (c *webglContext) UniformLocation(program gfx.ProgramID, name string) gfx.UniformLocation {
	obj := c.gl.Call("getUniformLocation", c.programs[program], name)
	if !obj.Truthy() {
		return gfx.UniformNotFound
	}
	c.nextUniform++
	c.uniforms[c.nextUniform] = obj
	return c.nextUniform
}

func (c *webglContext) Uniform1f(location gfx.UniformLocation, v float32) {
	if loc, ok := c.uniforms[location]; ok {
		c.gl.Call("uniform1f", loc, v)
	}
}

func (c *webglContext) Uniform1i(location gfx.UniformLocation, v int32) {
	if loc, ok := c.uniforms[location]; ok {
		c.gl.Call("uniform1i", loc, v)
	}
}

func (c *webglContext) Uniform2f(location gfx.UniformLocation, x, y float32) {
	if loc, ok := c.uniforms[location]; ok {
		c.gl.Call("uniform2f", loc, x, y)
	}
}

func (c *webglContext) Uniform3f(location gfx.UniformLocation, x, y, z float32) {
	if loc, ok := c.uniforms[location]; ok {
		c.gl.Call("uniform3f", loc, x, y, z)
	}
}

func (c *webglContext) Uniform4f(location gfx.UniformLocation, x, y, z, w float32) {
	if loc, ok := c.uniforms[location]; ok {
		c.gl.Call("uniform4f", loc, x, y, z, w)
	}
}

func (c *webglContext) UniformMatrix4fv(location gfx.UniformLocation, values []float32) {
	loc, ok := c.uniforms[location]
	if !ok || len(values) < 16 {
		return
	}
	c.gl.Call("uniformMatrix4fv", loc, false, float32ArrayToJS(values[:16]))
}

func (c *webglContext) EnableVertexAttribArray(index uint32) {
	c.gl.Call("enableVertexAttribArray", int(index))
}

func (c *webglContext) DisableVertexAttribArray(index uint32) {
	c.gl.Call("disableVertexAttribArray", int(index))
}

func (c *webglContext) VertexAttribPointer(index uint32, size int32, componentType gfx.ComponentType, normalized bool, stride, offset int) {
	c.gl.Call("vertexAttribPointer", int(index), int(size), int(componentType), normalized, stride, offset)
}

func (c *webglContext) DrawArrays(mode gfx.DrawMode, first, count int) {
	c.gl.Call("drawArrays", int(mode), first, count)
}

func (c *webglContext) DrawElements(mode gfx.DrawMode, count int, componentType gfx.ComponentType, offset int) {
	c.gl.Call("drawElements", int(mode), count, int(componentType), offset)
}

func (c *webglContext) NativeVertexArrays() (gfx.VertexArrayOps, bool) {
	if c.generation != gfx.GenerationRich {
		return nil, false
	}
	return nativeVertexArrays{c}, true
}

func (c *webglContext) NativeInstancing() (gfx.InstancedOps, bool) {
	if c.generation != gfx.GenerationRich {
		return nil, false
	}
	return nativeInstanced{c}, true
}

func (c *webglContext) VertexArrayExtension() (gfx.VertexArrayOps, bool) {
	if c.generation == gfx.GenerationRich || !c.extVertexArray.Truthy() {
		return nil, false
	}
	return extensionVertexArrays{c}, true
}

func (c *webglContext) InstancingExtension() (gfx.InstancedOps, bool) {
	if c.generation == gfx.GenerationRich || !c.extInstanced.Truthy() {
		return nil, false
	}
	return extensionInstanced{c}, true
}

func (c *webglContext) Enable(capability gfx.StateCapability) {
	c.gl.Call("enable", int(capability))
}

func (c *webglContext) Disable(capability gfx.StateCapability) {
	c.gl.Call("disable", int(capability))
}

func (c *webglContext) BlendFunc(src, dst gfx.BlendFactor) {
	c.gl.Call("blendFunc", int(src), int(dst))
}

func (c *webglContext) Viewport(x, y, width, height int) {
	c.gl.Call("viewport", x, y, width, height)
}

func (c *webglContext) ClearColor(r, g, b, a float32) {
	c.gl.Call("clearColor", r, g, b, a)
}

func (c *webglContext) Clear(mask gfx.ClearMask) {
	c.gl.Call("clear", int(mask))
}

func (c *webglContext) bufferValue(buffer gfx.BufferID) js.Value {
	if buffer == 0 {
		return js.Null()
	}
	if obj, ok := c.buffers[buffer]; ok {
		return obj
	}
	return js.Null()
}

func (c *webglContext) vertexArrayValue(va gfx.VertexArrayID) js.Value {
	if va == 0 {
		return js.Null()
	}
	if obj, ok := c.vertexArrays[va]; ok {
		return obj
	}
	return js.Null()
}

func (c *webglContext) storeVertexArray(obj js.Value) (gfx.VertexArrayID, error) {
	if !obj.Truthy() {
		return 0, fmt.Errorf("webgl: %w: vertex array", gfx.ErrObjectCreation)
	}
	c.nextVertexArray++
	c.vertexArrays[c.nextVertexArray] = obj
	return c.nextVertexArray, nil
}

// nativeVertexArrays routes the vertex-array bundle to WebGL2 methods.
type nativeVertexArrays struct{ c *webglContext }

func (o nativeVertexArrays) CreateVertexArray() (gfx.VertexArrayID, error) {
	return o.c.storeVertexArray(o.c.gl.Call("createVertexArray"))
}

func (o nativeVertexArrays) BindVertexArray(va gfx.VertexArrayID) {
	o.c.gl.Call("bindVertexArray", o.c.vertexArrayValue(va))
}

func (o nativeVertexArrays) DeleteVertexArray(va gfx.VertexArrayID) {
	if obj, ok := o.c.vertexArrays[va]; ok {
		o.c.gl.Call("deleteVertexArray", obj)
		delete(o.c.vertexArrays, va)
	}
}

// nativeInstanced routes the instancing bundle to WebGL2 methods.
type nativeInstanced struct{ c *webglContext }

func (o nativeInstanced) DrawArraysInstanced(mode gfx.DrawMode, first, count, instanceCount int) {
	o.c.gl.Call("drawArraysInstanced", int(mode), first, count, instanceCount)
}

func (o nativeInstanced) DrawElementsInstanced(mode gfx.DrawMode, count int, componentType gfx.ComponentType, offset, instanceCount int) {
	o.c.gl.Call("drawElementsInstanced", int(mode), count, int(componentType), offset, instanceCount)
}

func (o nativeInstanced) VertexAttribDivisor(index, divisor uint32) {
	o.c.gl.Call("vertexAttribDivisor", int(index), int(divisor))
}

// extensionVertexArrays routes the vertex-array bundle to the
// OES_vertex_array_object extension methods on WebGL1.
type extensionVertexArrays struct{ c *webglContext }

func (o extensionVertexArrays) CreateVertexArray() (gfx.VertexArrayID, error) {
	return o.c.storeVertexArray(o.c.extVertexArray.Call("createVertexArrayOES"))
}

func (o extensionVertexArrays) BindVertexArray(va gfx.VertexArrayID) {
	o.c.extVertexArray.Call("bindVertexArrayOES", o.c.vertexArrayValue(va))
}

func (o extensionVertexArrays) DeleteVertexArray(va gfx.VertexArrayID) {
	if obj, ok := o.c.vertexArrays[va]; ok {
		o.c.extVertexArray.Call("deleteVertexArrayOES", obj)
		delete(o.c.vertexArrays, va)
	}
}

// extensionInstanced routes the instancing bundle to the
// ANGLE_instanced_arrays extension methods on WebGL1.
type extensionInstanced struct{ c *webglContext }

func (o extensionInstanced) DrawArraysInstanced(mode gfx.DrawMode, first, count, instanceCount int) {
	o.c.extInstanced.Call("drawArraysInstancedANGLE", int(mode), first, count, instanceCount)
}

func (o extensionInstanced) DrawElementsInstanced(mode gfx.DrawMode, count int, componentType gfx.ComponentType, offset, instanceCount int) {
	o.c.extInstanced.Call("drawElementsInstancedANGLE", int(mode), count, int(componentType), offset, instanceCount)
}

func (o extensionInstanced) VertexAttribDivisor(index, divisor uint32) {
	o.c.extInstanced.Call("vertexAttribDivisorANGLE", int(index), int(divisor))
}

// WebGL status enums queried through getShaderParameter/getProgramParameter.
const (
	compileStatus = 0x8B81
	linkStatus    = 0x8B82
)

// bytesToJS copies Go bytes into a fresh Uint8Array for upload calls.
func bytesToJS(data []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	return arr
}

// float32ArrayToJS copies Go float32 values into a Float32Array view, used
// for matrix uniforms where WebGL requires a typed float array.
func float32ArrayToJS(values []float32) js.Value {
	raw := bytesToJS(common.SliceToBytes(values))
	return js.Global().Get("Float32Array").New(raw.Get("buffer"), 0, len(values))
}

// jsString renders a JS string result, mapping null/undefined to "".
func jsString(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}
