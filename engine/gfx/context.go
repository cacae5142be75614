package gfx

// Context is the raw graphics context a backend provides. It carries the
// operations common to both API generations plus accessors for the
// generation-specific operation bundles that the Instancing strategy routes
// between. Contexts are not safe for concurrent use; all calls must come
// from the render goroutine.
//
// Draw and state calls follow GL semantics and do not return errors; object
// creation returns an error because the limited generation reports creation
// failure by returning a null object.
type Context interface {
	// Generation reports which API generation the context implements.
	//
	// Returns:
	//   - Generation: GenerationRich or GenerationLimited
	Generation() Generation

	// HasExtension reports whether a named extension is available. Always
	// false on contexts whose generation provides the capability natively.
	//
	// Parameters:
	//   - name: the extension name, e.g. ExtInstancedArrays
	//
	// Returns:
	//   - bool: true if the extension can be used
	HasExtension(name string) bool

	// IntParameter queries an integer device limit.
	//
	// Parameters:
	//   - param: the limit to query
	//
	// Returns:
	//   - int: the device value, 0 if the parameter is unknown
	IntParameter(param IntParameter) int

	// IsLost reports whether the underlying context has been lost. Render
	// paths check this before touching any GPU object; every handle is
	// invalid once the context is lost.
	//
	// Returns:
	//   - bool: true if the context is lost
	IsLost() bool

	// CreateBuffer allocates a new buffer object.
	//
	// Returns:
	//   - BufferID: the new buffer handle
	//   - error: error if the context could not create the object
	CreateBuffer() (BufferID, error)

	// BindBuffer binds a buffer to a target binding point.
	//
	// Parameters:
	//   - target: ArrayBuffer or ElementArrayBuffer
	//   - buffer: the buffer to bind, 0 to unbind
	BindBuffer(target BufferTarget, buffer BufferID)

	// BufferData uploads data to the buffer bound at target, reallocating its
	// storage to fit.
	//
	// Parameters:
	//   - target: the binding point whose bound buffer receives the data
	//   - data: the bytes to upload
	//   - usage: rewrite-frequency hint
	BufferData(target BufferTarget, data []byte, usage BufferUsage)

	// BufferSubData overwrites a range of the buffer bound at target without
	// reallocating. The range must lie within the buffer's current storage.
	//
	// Parameters:
	//   - target: the binding point whose bound buffer is patched
	//   - offset: byte offset of the first byte to overwrite
	//   - data: the replacement bytes
	BufferSubData(target BufferTarget, offset int, data []byte)

	// DeleteBuffer releases a buffer object. Deleting buffer 0 is a no-op.
	//
	// Parameters:
	//   - buffer: the buffer to delete
	DeleteBuffer(buffer BufferID)

	// CreateShader allocates a shader object for one pipeline stage.
	//
	// Parameters:
	//   - shaderType: VertexShader or FragmentShader
	//
	// Returns:
	//   - ShaderID: the new shader handle
	//   - error: error if the context could not create the object
	CreateShader(shaderType ShaderType) (ShaderID, error)

	// ShaderSource replaces the source text of a shader object.
	//
	// Parameters:
	//   - shader: the shader to set source on
	//   - source: GLSL source text
	ShaderSource(shader ShaderID, source string)

	// CompileShader compiles the shader's current source. Success is reported
	// separately via ShaderCompileStatus.
	//
	// Parameters:
	//   - shader: the shader to compile
	CompileShader(shader ShaderID)

	// ShaderCompileStatus reports whether the last CompileShader succeeded.
	//
	// Parameters:
	//   - shader: the shader to query
	//
	// Returns:
	//   - bool: true on successful compilation
	ShaderCompileStatus(shader ShaderID) bool

	// ShaderInfoLog returns the compiler log for a shader, empty when the
	// compiler produced no diagnostics.
	//
	// Parameters:
	//   - shader: the shader to query
	//
	// Returns:
	//   - string: the info log text
	ShaderInfoLog(shader ShaderID) string

	// DeleteShader releases a shader object. Shaders may be deleted as soon
	// as they are linked into a program.
	//
	// Parameters:
	//   - shader: the shader to delete
	DeleteShader(shader ShaderID)

	// CreateProgram allocates a program object.
	//
	// Returns:
	//   - ProgramID: the new program handle
	//   - error: error if the context could not create the object
	CreateProgram() (ProgramID, error)

	// AttachShader attaches a compiled shader stage to a program.
	//
	// Parameters:
	//   - program: the destination program
	//   - shader: the shader stage to attach
	AttachShader(program ProgramID, shader ShaderID)

	// LinkProgram links the program's attached stages. Success is reported
	// separately via ProgramLinkStatus.
	//
	// Parameters:
	//   - program: the program to link
	LinkProgram(program ProgramID)

	// ProgramLinkStatus reports whether the last LinkProgram succeeded.
	//
	// Parameters:
	//   - program: the program to query
	//
	// Returns:
	//   - bool: true on successful link
	ProgramLinkStatus(program ProgramID) bool

	// ProgramInfoLog returns the linker log for a program.
	//
	// Parameters:
	//   - program: the program to query
	//
	// Returns:
	//   - string: the info log text
	ProgramInfoLog(program ProgramID) string

	// UseProgram makes a program current for subsequent uniform uploads and
	// draw calls.
	//
	// Parameters:
	//   - program: the program to bind, 0 to unbind
	UseProgram(program ProgramID)

	// DeleteProgram releases a program object.
	//
	// Parameters:
	//   - program: the program to delete
	DeleteProgram(program ProgramID)

	// BindAttribLocation assigns a fixed attribute slot to a named vertex
	// input. Must be called before LinkProgram to take effect.
	//
	// Parameters:
	//   - program: the program to modify
	//   - index: the attribute slot
	//   - name: the vertex shader input name
	BindAttribLocation(program ProgramID, index uint32, name string)

	// AttribLocation queries the slot of a named vertex input in a linked
	// program.
	//
	// Parameters:
	//   - program: the program to query
	//   - name: the vertex shader input name
	//
	// Returns:
	//   - int32: the attribute slot, -1 if the input does not exist
	AttribLocation(program ProgramID, name string) int32

	// UniformLocation queries the location of a named uniform in a linked
	// program.
	//
	// Parameters:
	//   - program: the program to query
	//   - name: the uniform name
	//
	// Returns:
	//   - UniformLocation: the location, UniformNotFound if absent
	UniformLocation(program ProgramID, name string) UniformLocation

	// Uniform1f sets a float uniform on the current program.
	//
	// Parameters:
	//   - location: the uniform location
	//   - v: the value
	Uniform1f(location UniformLocation, v float32)

	// Uniform1i sets an int (or sampler) uniform on the current program.
	//
	// Parameters:
	//   - location: the uniform location
	//   - v: the value
	Uniform1i(location UniformLocation, v int32)

	// Uniform2f sets a vec2 uniform on the current program.
	//
	// Parameters:
	//   - location: the uniform location
	//   - x, y: the components
	Uniform2f(location UniformLocation, x, y float32)

	// Uniform3f sets a vec3 uniform on the current program.
	//
	// Parameters:
	//   - location: the uniform location
	//   - x, y, z: the components
	Uniform3f(location UniformLocation, x, y, z float32)

	// Uniform4f sets a vec4 uniform on the current program.
	//
	// Parameters:
	//   - location: the uniform location
	//   - x, y, z, w: the components
	Uniform4f(location UniformLocation, x, y, z, w float32)

	// UniformMatrix4fv sets a mat4 uniform on the current program from 16
	// column-major floats.
	//
	// Parameters:
	//   - location: the uniform location
	//   - values: the matrix values (at least 16 elements)
	UniformMatrix4fv(location UniformLocation, values []float32)

	// EnableVertexAttribArray enables an attribute slot for array sourcing.
	//
	// Parameters:
	//   - index: the attribute slot
	EnableVertexAttribArray(index uint32)

	// DisableVertexAttribArray disables an attribute slot.
	//
	// Parameters:
	//   - index: the attribute slot
	DisableVertexAttribArray(index uint32)

	// VertexAttribPointer describes how an enabled attribute slot reads from
	// the buffer currently bound to ArrayBuffer.
	//
	// Parameters:
	//   - index: the attribute slot
	//   - size: component count per vertex (1..4)
	//   - componentType: numeric type of each component
	//   - normalized: whether integer components map to [0,1]/[-1,1]
	//   - stride: bytes between consecutive vertices, 0 for tightly packed
	//   - offset: byte offset of the first component in the buffer
	VertexAttribPointer(index uint32, size int32, componentType ComponentType, normalized bool, stride, offset int)

	// DrawArrays issues a non-indexed draw of consecutive vertices.
	//
	// Parameters:
	//   - mode: primitive topology
	//   - first: index of the first vertex
	//   - count: number of vertices
	DrawArrays(mode DrawMode, first, count int)

	// DrawElements issues an indexed draw using the buffer bound to
	// ElementArrayBuffer.
	//
	// Parameters:
	//   - mode: primitive topology
	//   - count: number of indices
	//   - componentType: index type (UnsignedShort or UnsignedInt)
	//   - offset: byte offset into the index buffer
	DrawElements(mode DrawMode, count int, componentType ComponentType, offset int)

	// NativeVertexArrays returns the generation-native vertex-array ops.
	//
	// Returns:
	//   - VertexArrayOps: the native ops
	//   - bool: false on the limited generation
	NativeVertexArrays() (VertexArrayOps, bool)

	// NativeInstancing returns the generation-native instanced-draw ops.
	//
	// Returns:
	//   - InstancedOps: the native ops
	//   - bool: false on the limited generation
	NativeInstancing() (InstancedOps, bool)

	// VertexArrayExtension returns the limited-generation vertex-array
	// extension ops when ExtVertexArrayObject is available.
	//
	// Returns:
	//   - VertexArrayOps: the extension ops
	//   - bool: false when the extension is absent or the generation is rich
	VertexArrayExtension() (VertexArrayOps, bool)

	// InstancingExtension returns the limited-generation instancing extension
	// ops when ExtInstancedArrays is available.
	//
	// Returns:
	//   - InstancedOps: the extension ops
	//   - bool: false when the extension is absent or the generation is rich
	InstancingExtension() (InstancedOps, bool)

	// Enable turns on a fixed-function state.
	//
	// Parameters:
	//   - capability: the state to enable
	Enable(capability StateCapability)

	// Disable turns off a fixed-function state.
	//
	// Parameters:
	//   - capability: the state to disable
	Disable(capability StateCapability)

	// BlendFunc sets the blending coefficients used while Blend is enabled.
	//
	// Parameters:
	//   - src: source factor
	//   - dst: destination factor
	BlendFunc(src, dst BlendFactor)

	// Viewport sets the drawable region in device pixels.
	//
	// Parameters:
	//   - x, y: lower-left corner
	//   - width, height: region size
	Viewport(x, y, width, height int)

	// ClearColor sets the color Clear writes to the color planes.
	//
	// Parameters:
	//   - r, g, b, a: the clear color channels
	ClearColor(r, g, b, a float32)

	// Clear resets the selected framebuffer planes.
	//
	// Parameters:
	//   - mask: the planes to reset
	Clear(mask ClearMask)
}

// VertexArrayOps is the vertex-array-object operation bundle, implemented
// natively on the rich generation and by ExtVertexArrayObject on the limited
// one.
type VertexArrayOps interface {
	// CreateVertexArray allocates a vertex-array object.
	//
	// Returns:
	//   - VertexArrayID: the new handle
	//   - error: error if the context could not create the object
	CreateVertexArray() (VertexArrayID, error)

	// BindVertexArray makes a vertex-array object current. Attribute pointer
	// and element-buffer bindings record into it while bound.
	//
	// Parameters:
	//   - va: the object to bind, 0 to unbind
	BindVertexArray(va VertexArrayID)

	// DeleteVertexArray releases a vertex-array object.
	//
	// Parameters:
	//   - va: the object to delete
	DeleteVertexArray(va VertexArrayID)
}

// InstancedOps is the instanced-drawing operation bundle, implemented
// natively on the rich generation and by ExtInstancedArrays on the limited
// one.
type InstancedOps interface {
	// DrawArraysInstanced issues a non-indexed draw repeated instanceCount
	// times.
	//
	// Parameters:
	//   - mode: primitive topology
	//   - first: index of the first vertex
	//   - count: vertices per instance
	//   - instanceCount: number of instances
	DrawArraysInstanced(mode DrawMode, first, count, instanceCount int)

	// DrawElementsInstanced issues an indexed draw repeated instanceCount
	// times.
	//
	// Parameters:
	//   - mode: primitive topology
	//   - count: indices per instance
	//   - componentType: index type
	//   - offset: byte offset into the index buffer
	//   - instanceCount: number of instances
	DrawElementsInstanced(mode DrawMode, count int, componentType ComponentType, offset, instanceCount int)

	// VertexAttribDivisor sets how often an attribute advances: 0 per vertex,
	// 1 per instance.
	//
	// Parameters:
	//   - index: the attribute slot
	//   - divisor: the advance rate
	VertexAttribDivisor(index, divisor uint32)
}
