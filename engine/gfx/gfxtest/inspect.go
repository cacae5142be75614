package gfxtest

import "github.com/Carmen-Shannon/oxy-maps/engine/gfx"

// Inspection accessors for assertions. These are test-only views into the
// fake's recorded state; none of them exist on the real Context interface.

// DrawCalls returns every draw recorded since construction or the last
// ResetDrawCalls, in issue order.
//
// Returns:
//   - []DrawCall: the recorded draws
func (c *Context) DrawCalls() []DrawCall {
	return c.draws
}

// ResetDrawCalls clears the draw log. Upload counters are unaffected.
func (c *Context) ResetDrawCalls() {
	c.draws = nil
}

// InstancedDrawCalls returns only the instanced entries of the draw log.
//
// Returns:
//   - []DrawCall: instanced draws in issue order
func (c *Context) InstancedDrawCalls() []DrawCall {
	var out []DrawCall
	for _, d := range c.draws {
		if d.Kind == DrawKindArraysInstanced || d.Kind == DrawKindElementsInstanced {
			out = append(out, d)
		}
	}
	return out
}

// BufferBytes returns a copy of a buffer's current contents, nil when the
// buffer does not exist or holds no data.
//
// Parameters:
//   - buffer: the buffer to read
//
// Returns:
//   - []byte: a copy of the stored bytes
func (c *Context) BufferBytes(buffer gfx.BufferID) []byte {
	obj, ok := c.buffers[buffer]
	if !ok || obj.data == nil {
		return nil
	}
	return append([]byte(nil), obj.data...)
}

// BufferDeleted reports whether DeleteBuffer was called for the buffer.
//
// Parameters:
//   - buffer: the buffer to check
//
// Returns:
//   - bool: true if deleted
func (c *Context) BufferDeleted(buffer gfx.BufferID) bool {
	obj, ok := c.buffers[buffer]
	return ok && obj.deleted
}

// LiveBuffers counts buffers created and not yet deleted.
//
// Returns:
//   - int: the live buffer count
func (c *Context) LiveBuffers() int {
	n := 0
	for _, obj := range c.buffers {
		if !obj.deleted {
			n++
		}
	}
	return n
}

// LiveShaders counts shader stage objects created and not yet deleted.
//
// Returns:
//   - int: the live shader count
func (c *Context) LiveShaders() int {
	n := 0
	for _, s := range c.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

// UniformLookups returns how many UniformLocation queries reached the
// context, cached or not.
//
// Returns:
//   - int: the lookup count
func (c *Context) UniformLookups() int {
	return c.uniformLookups
}

// LivePrograms counts programs created and not yet deleted.
//
// Returns:
//   - int: the live program count
func (c *Context) LivePrograms() int {
	n := 0
	for _, p := range c.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}

// LiveVertexArrays counts vertex-array objects created and not yet deleted.
//
// Returns:
//   - int: the live vertex-array count
func (c *Context) LiveVertexArrays() int {
	n := 0
	for _, va := range c.vertexArrays {
		if !va.deleted {
			n++
		}
	}
	return n
}

// ProgramDeleted reports whether DeleteProgram was called for the program.
//
// Parameters:
//   - program: the program to check
//
// Returns:
//   - bool: true if deleted
func (c *Context) ProgramDeleted(program gfx.ProgramID) bool {
	p, ok := c.programs[program]
	return ok && p.deleted
}

// UniformValue returns the last value uploaded to a named uniform of a
// program.
//
// Parameters:
//   - program: the program to inspect
//   - name: the uniform name
//
// Returns:
//   - any: the stored value (float32, int32, [2]float32, [3]float32,
//     [4]float32 or [16]float32)
//   - bool: false when the uniform was never written
func (c *Context) UniformValue(program gfx.ProgramID, name string) (any, bool) {
	p, ok := c.programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniformLocs[name]
	if !ok {
		return nil, false
	}
	v, ok := p.uniformValues[loc]
	return v, ok
}

// ShaderSourceText returns the source last set on a shader object.
//
// Parameters:
//   - shader: the shader to inspect
//
// Returns:
//   - string: the stored source text
func (c *Context) ShaderSourceText(shader gfx.ShaderID) string {
	obj, ok := c.shaders[shader]
	if !ok {
		return ""
	}
	return obj.source
}

// VertexArrayAttrib returns the recorded pointer state of an attribute slot
// inside a vertex-array object.
//
// Parameters:
//   - va: the vertex-array object, 0 for the default attribute state
//   - index: the attribute slot
//
// Returns:
//   - AttribPointer: the recorded state
//   - bool: false when the slot was never configured
func (c *Context) VertexArrayAttrib(va gfx.VertexArrayID, index uint32) (AttribPointer, bool) {
	table := c.defaultAttribs
	if va != 0 {
		obj, ok := c.vertexArrays[va]
		if !ok {
			return AttribPointer{}, false
		}
		table = obj.attribs
	}
	a, ok := table[index]
	if !ok {
		return AttribPointer{}, false
	}
	return *a, true
}

// BufferUploads returns how many BufferData calls have been made.
//
// Returns:
//   - int: the full-upload count
func (c *Context) BufferUploads() int {
	return c.bufferUploads
}

// SubDataCalls returns how many BufferSubData calls have been made.
//
// Returns:
//   - int: the partial-upload count
func (c *Context) SubDataCalls() int {
	return c.subDataCalls
}

// VertexArrayBinds returns how many BindVertexArray calls have been made,
// including unbinds.
//
// Returns:
//   - int: the bind count
func (c *Context) VertexArrayBinds() int {
	return c.vaBinds
}

// StateEnabled reports the last Enable/Disable state of a capability.
//
// Parameters:
//   - capability: the state to check
//
// Returns:
//   - bool: true when enabled
func (c *Context) StateEnabled(capability gfx.StateCapability) bool {
	return c.enabledState[capability]
}

// BlendFuncState returns the last configured blend factors.
//
// Returns:
//   - gfx.BlendFactor: the source factor
//   - gfx.BlendFactor: the destination factor
func (c *Context) BlendFuncState() (gfx.BlendFactor, gfx.BlendFactor) {
	return c.blendSrc, c.blendDst
}

// ViewportState returns the last Viewport arguments as x, y, width, height.
//
// Returns:
//   - [4]int: the recorded viewport rectangle
func (c *Context) ViewportState() [4]int {
	return c.viewport
}

// ClearColorState returns the last ClearColor arguments in RGBA order.
//
// Returns:
//   - [4]float32: the recorded clear color
func (c *Context) ClearColorState() [4]float32 {
	return c.clearColor
}

// Clears returns how many Clear calls have been made.
//
// Returns:
//   - int: the clear count
func (c *Context) Clears() int {
	return c.clears
}
