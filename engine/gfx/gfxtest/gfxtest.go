// package gfxtest provides an in-memory gfx.Context that records every call,
// making GPU-side behavior observable in tests: uploaded buffer bytes, draw
// calls with their arguments, uniform values, vertex-array state and object
// lifetimes. The fake defaults to the capability-rich generation; builder
// options reconfigure it into the limited generation with any extension set,
// inject compile/link/creation failures, or simulate context loss.
package gfxtest

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
)

// DrawKind distinguishes the four draw entry points in the recorded log.
type DrawKind int

const (
	DrawKindArrays DrawKind = iota
	DrawKindElements
	DrawKindArraysInstanced
	DrawKindElementsInstanced
)

// DrawCall is one recorded draw with the arguments it was issued with and
// the program and vertex-array state current at the time.
type DrawCall struct {
	Kind          DrawKind
	Mode          gfx.DrawMode
	First         int
	Count         int
	ComponentType gfx.ComponentType
	Offset        int
	InstanceCount int
	Program       gfx.ProgramID
	VertexArray   gfx.VertexArrayID
}

// AttribPointer is the recorded state of one attribute slot.
type AttribPointer struct {
	Buffer        gfx.BufferID
	Size          int32
	ComponentType gfx.ComponentType
	Normalized    bool
	Stride        int
	Offset        int
	Divisor       uint32
	Enabled       bool
}

type bufferObject struct {
	data    []byte
	usage   gfx.BufferUsage
	deleted bool
}

type shaderObject struct {
	shaderType gfx.ShaderType
	source     string
	compiled   bool
	infoLog    string
	deleted    bool
}

type programObject struct {
	shaders       []gfx.ShaderID
	linked        bool
	infoLog       string
	deleted       bool
	boundAttribs  map[string]uint32
	attribLocs    map[string]int32
	nextAttribLoc int32
	uniformLocs   map[string]gfx.UniformLocation
	nextUniform   gfx.UniformLocation
	uniformValues map[gfx.UniformLocation]any
}

type vertexArrayObject struct {
	attribs       map[uint32]*AttribPointer
	elementBuffer gfx.BufferID
	deleted       bool
}

// Context is the recording fake. Construct it with NewContext; the zero
// value is not usable.
type Context struct {
	generation gfx.Generation
	extensions map[string]bool
	intParams  map[gfx.IntParameter]int
	lost       bool

	failCreateBuffer  bool
	failCreateShader  bool
	failCreateProgram bool
	failLink          bool
	compileFailNeedle string

	nextBuffer      gfx.BufferID
	nextShader      gfx.ShaderID
	nextProgram     gfx.ProgramID
	nextVertexArray gfx.VertexArrayID

	buffers      map[gfx.BufferID]*bufferObject
	shaders      map[gfx.ShaderID]*shaderObject
	programs     map[gfx.ProgramID]*programObject
	vertexArrays map[gfx.VertexArrayID]*vertexArrayObject

	boundBuffers map[gfx.BufferTarget]gfx.BufferID
	boundVA      gfx.VertexArrayID
	boundProgram gfx.ProgramID

	// attribute state outside any vertex-array object
	defaultAttribs map[uint32]*AttribPointer

	draws          []DrawCall
	bufferUploads  int
	subDataCalls   int
	vaBinds        int
	uniformLookups int
	enabledState   map[gfx.StateCapability]bool
	blendSrc       gfx.BlendFactor
	blendDst       gfx.BlendFactor
	viewport       [4]int
	clearColor     [4]float32
	clears         int
}

var _ gfx.Context = &Context{}

// NewContext builds a recording fake. With no options it reports the rich
// generation with native vertex arrays and instancing.
//
// Parameters:
//   - options: optional ContextBuilderOption functions to reconfigure the fake
//
// Returns:
//   - *Context: the fake context
func NewContext(options ...ContextBuilderOption) *Context {
	c := &Context{
		generation: gfx.GenerationRich,
		extensions: map[string]bool{},
		intParams: map[gfx.IntParameter]int{
			gfx.MaxVertexAttribs: 16,
			gfx.MaxTextureSize:   4096,
		},
		buffers:        map[gfx.BufferID]*bufferObject{},
		shaders:        map[gfx.ShaderID]*shaderObject{},
		programs:       map[gfx.ProgramID]*programObject{},
		vertexArrays:   map[gfx.VertexArrayID]*vertexArrayObject{},
		boundBuffers:   map[gfx.BufferTarget]gfx.BufferID{},
		defaultAttribs: map[uint32]*AttribPointer{},
		enabledState:   map[gfx.StateCapability]bool{},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *Context) Generation() gfx.Generation {
	return c.generation
}

func (c *Context) HasExtension(name string) bool {
	if c.generation == gfx.GenerationRich {
		return false
	}
	return c.extensions[name]
}

func (c *Context) IntParameter(param gfx.IntParameter) int {
	return c.intParams[param]
}

func (c *Context) IsLost() bool {
	return c.lost
}

// SetLost toggles simulated context loss. Handles created before the loss
// stay in the object maps so tests can verify they are never touched again.
//
// Parameters:
//   - lost: the new lost state
func (c *Context) SetLost(lost bool) {
	c.lost = lost
}

func (c *Context) CreateBuffer() (gfx.BufferID, error) {
	if c.failCreateBuffer {
		return 0, fmt.Errorf("gfxtest: %w: buffer", gfx.ErrObjectCreation)
	}
	c.nextBuffer++
	c.buffers[c.nextBuffer] = &bufferObject{}
	return c.nextBuffer, nil
}

func (c *Context) BindBuffer(target gfx.BufferTarget, buffer gfx.BufferID) {
	c.boundBuffers[target] = buffer
	if target == gfx.ElementArrayBuffer && c.boundVA != 0 {
		c.vertexArrays[c.boundVA].elementBuffer = buffer
	}
}

func (c *Context) BufferData(target gfx.BufferTarget, data []byte, usage gfx.BufferUsage) {
	buf := c.mustBoundBuffer(target)
	buf.data = append([]byte(nil), data...)
	buf.usage = usage
	c.bufferUploads++
}

func (c *Context) BufferSubData(target gfx.BufferTarget, offset int, data []byte) {
	buf := c.mustBoundBuffer(target)
	if offset < 0 || offset+len(data) > len(buf.data) {
		panic(fmt.Sprintf("gfxtest: BufferSubData range [%d, %d) outside buffer of %d bytes",
			offset, offset+len(data), len(buf.data)))
	}
	copy(buf.data[offset:], data)
	c.subDataCalls++
}

func (c *Context) DeleteBuffer(buffer gfx.BufferID) {
	if obj, ok := c.buffers[buffer]; ok {
		obj.deleted = true
	}
}

func (c *Context) CreateShader(shaderType gfx.ShaderType) (gfx.ShaderID, error) {
	if c.failCreateShader {
		return 0, fmt.Errorf("gfxtest: %w: shader", gfx.ErrObjectCreation)
	}
	c.nextShader++
	c.shaders[c.nextShader] = &shaderObject{shaderType: shaderType}
	return c.nextShader, nil
}

func (c *Context) ShaderSource(shader gfx.ShaderID, source string) {
	c.shaders[shader].source = source
}

func (c *Context) CompileShader(shader gfx.ShaderID) {
	obj := c.shaders[shader]
	if c.compileFailNeedle != "" && strings.Contains(obj.source, c.compileFailNeedle) {
		obj.compiled = false
		obj.infoLog = "gfxtest: forced compile failure"
		return
	}
	obj.compiled = true
	obj.infoLog = ""
}

func (c *Context) ShaderCompileStatus(shader gfx.ShaderID) bool {
	return c.shaders[shader].compiled
}

func (c *Context) ShaderInfoLog(shader gfx.ShaderID) string {
	return c.shaders[shader].infoLog
}

func (c *Context) DeleteShader(shader gfx.ShaderID) {
	if obj, ok := c.shaders[shader]; ok {
		obj.deleted = true
	}
}

func (c *Context) CreateProgram() (gfx.ProgramID, error) {
	if c.failCreateProgram {
		return 0, fmt.Errorf("gfxtest: %w: program", gfx.ErrObjectCreation)
	}
	c.nextProgram++
	c.programs[c.nextProgram] = &programObject{
		boundAttribs:  map[string]uint32{},
		attribLocs:    map[string]int32{},
		uniformLocs:   map[string]gfx.UniformLocation{},
		uniformValues: map[gfx.UniformLocation]any{},
	}
	return c.nextProgram, nil
}

func (c *Context) AttachShader(program gfx.ProgramID, shader gfx.ShaderID) {
	p := c.programs[program]
	p.shaders = append(p.shaders, shader)
}

func (c *Context) LinkProgram(program gfx.ProgramID) {
	p := c.programs[program]
	if c.failLink {
		p.linked = false
		p.infoLog = "gfxtest: forced link failure"
		return
	}
	for _, s := range p.shaders {
		if !c.shaders[s].compiled {
			p.linked = false
			p.infoLog = "gfxtest: attached shader not compiled"
			return
		}
	}
	p.linked = true
	p.infoLog = ""
}

func (c *Context) ProgramLinkStatus(program gfx.ProgramID) bool {
	return c.programs[program].linked
}

func (c *Context) ProgramInfoLog(program gfx.ProgramID) string {
	return c.programs[program].infoLog
}

func (c *Context) UseProgram(program gfx.ProgramID) {
	c.boundProgram = program
}

func (c *Context) DeleteProgram(program gfx.ProgramID) {
	if p, ok := c.programs[program]; ok {
		p.deleted = true
	}
}

func (c *Context) BindAttribLocation(program gfx.ProgramID, index uint32, name string) {
	c.programs[program].boundAttribs[name] = index
}

func (c *Context) AttribLocation(program gfx.ProgramID, name string) int32 {
	p := c.programs[program]
	if idx, ok := p.boundAttribs[name]; ok {
		return int32(idx)
	}
	if loc, ok := p.attribLocs[name]; ok {
		return loc
	}
	loc := p.nextAttribLoc
	p.nextAttribLoc++
	p.attribLocs[name] = loc
	return loc
}

func (c *Context) UniformLocation(program gfx.ProgramID, name string) gfx.UniformLocation {
	c.uniformLookups++
	p := c.programs[program]
	if loc, ok := p.uniformLocs[name]; ok {
		return loc
	}
	loc := p.nextUniform
	p.nextUniform++
	p.uniformLocs[name] = loc
	return loc
}

func (c *Context) Uniform1f(location gfx.UniformLocation, v float32) {
	c.storeUniform(location, v)
}

func (c *Context) Uniform1i(location gfx.UniformLocation, v int32) {
	c.storeUniform(location, v)
}

func (c *Context) Uniform2f(location gfx.UniformLocation, x, y float32) {
	c.storeUniform(location, [2]float32{x, y})
}

func (c *Context) Uniform3f(location gfx.UniformLocation, x, y, z float32) {
	c.storeUniform(location, [3]float32{x, y, z})
}

func (c *Context) Uniform4f(location gfx.UniformLocation, x, y, z, w float32) {
	c.storeUniform(location, [4]float32{x, y, z, w})
}

func (c *Context) UniformMatrix4fv(location gfx.UniformLocation, values []float32) {
	var m [16]float32
	copy(m[:], values)
	c.storeUniform(location, m)
}

func (c *Context) storeUniform(location gfx.UniformLocation, v any) {
	if location == gfx.UniformNotFound || c.boundProgram == 0 {
		return
	}
	c.programs[c.boundProgram].uniformValues[location] = v
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.attrib(index).Enabled = true
}

func (c *Context) DisableVertexAttribArray(index uint32) {
	c.attrib(index).Enabled = false
}

func (c *Context) VertexAttribPointer(index uint32, size int32, componentType gfx.ComponentType, normalized bool, stride, offset int) {
	a := c.attrib(index)
	a.Buffer = c.boundBuffers[gfx.ArrayBuffer]
	a.Size = size
	a.ComponentType = componentType
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
}

// attrib returns the attribute slot record in the currently bound vertex
// array, or the default (non-VAO) state when none is bound.
func (c *Context) attrib(index uint32) *AttribPointer {
	table := c.defaultAttribs
	if c.boundVA != 0 {
		table = c.vertexArrays[c.boundVA].attribs
	}
	a, ok := table[index]
	if !ok {
		a = &AttribPointer{}
		table[index] = a
	}
	return a
}

func (c *Context) DrawArrays(mode gfx.DrawMode, first, count int) {
	c.record(DrawCall{Kind: DrawKindArrays, Mode: mode, First: first, Count: count})
}

func (c *Context) DrawElements(mode gfx.DrawMode, count int, componentType gfx.ComponentType, offset int) {
	c.record(DrawCall{Kind: DrawKindElements, Mode: mode, Count: count, ComponentType: componentType, Offset: offset})
}

func (c *Context) record(call DrawCall) {
	call.Program = c.boundProgram
	call.VertexArray = c.boundVA
	c.draws = append(c.draws, call)
}

func (c *Context) NativeVertexArrays() (gfx.VertexArrayOps, bool) {
	if c.generation != gfx.GenerationRich {
		return nil, false
	}
	return vertexArrayOps{c}, true
}

func (c *Context) NativeInstancing() (gfx.InstancedOps, bool) {
	if c.generation != gfx.GenerationRich {
		return nil, false
	}
	return instancedOps{c}, true
}

func (c *Context) VertexArrayExtension() (gfx.VertexArrayOps, bool) {
	if c.generation == gfx.GenerationRich || !c.extensions[gfx.ExtVertexArrayObject] {
		return nil, false
	}
	return vertexArrayOps{c}, true
}

func (c *Context) InstancingExtension() (gfx.InstancedOps, bool) {
	if c.generation == gfx.GenerationRich || !c.extensions[gfx.ExtInstancedArrays] {
		return nil, false
	}
	return instancedOps{c}, true
}

func (c *Context) Enable(capability gfx.StateCapability) {
	c.enabledState[capability] = true
}

func (c *Context) Disable(capability gfx.StateCapability) {
	c.enabledState[capability] = false
}

func (c *Context) BlendFunc(src, dst gfx.BlendFactor) {
	c.blendSrc, c.blendDst = src, dst
}

func (c *Context) Viewport(x, y, width, height int) {
	c.viewport = [4]int{x, y, width, height}
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.clearColor = [4]float32{r, g, b, a}
}

func (c *Context) Clear(mask gfx.ClearMask) {
	c.clears++
}

func (c *Context) mustBoundBuffer(target gfx.BufferTarget) *bufferObject {
	id := c.boundBuffers[target]
	buf, ok := c.buffers[id]
	if !ok {
		panic(fmt.Sprintf("gfxtest: no buffer bound to target 0x%X", uint32(target)))
	}
	if buf.deleted {
		panic(fmt.Sprintf("gfxtest: buffer %d used after delete", id))
	}
	return buf
}

// vertexArrayOps and instancedOps expose the fake through the same bundle
// interfaces real backends provide, regardless of which generation the fake
// is configured as.
type vertexArrayOps struct{ c *Context }

func (o vertexArrayOps) CreateVertexArray() (gfx.VertexArrayID, error) {
	o.c.nextVertexArray++
	o.c.vertexArrays[o.c.nextVertexArray] = &vertexArrayObject{attribs: map[uint32]*AttribPointer{}}
	return o.c.nextVertexArray, nil
}

func (o vertexArrayOps) BindVertexArray(va gfx.VertexArrayID) {
	o.c.boundVA = va
	o.c.vaBinds++
}

func (o vertexArrayOps) DeleteVertexArray(va gfx.VertexArrayID) {
	if obj, ok := o.c.vertexArrays[va]; ok {
		obj.deleted = true
	}
	if o.c.boundVA == va {
		o.c.boundVA = 0
	}
}

type instancedOps struct{ c *Context }

func (o instancedOps) DrawArraysInstanced(mode gfx.DrawMode, first, count, instanceCount int) {
	o.c.record(DrawCall{Kind: DrawKindArraysInstanced, Mode: mode, First: first, Count: count, InstanceCount: instanceCount})
}

func (o instancedOps) DrawElementsInstanced(mode gfx.DrawMode, count int, componentType gfx.ComponentType, offset, instanceCount int) {
	o.c.record(DrawCall{Kind: DrawKindElementsInstanced, Mode: mode, Count: count, ComponentType: componentType, Offset: offset, InstanceCount: instanceCount})
}

func (o instancedOps) VertexAttribDivisor(index, divisor uint32) {
	o.c.attrib(index).Divisor = divisor
}
