// package gfx abstracts the two GPU API generations this module renders
// against: the capability-rich generation (desktop GL 3.3+ class, WebGL2)
// with native vertex-array objects and instanced drawing, and the
// capability-limited generation (WebGL1 class) where the same operations come
// from named extensions. Backends implement the Context interface; everything
// above it talks to Context plus an Instancing strategy selected once at
// construction from a capability probe.
//
// Enum values are the shared GL numeric constants, so backends pass them
// through unchanged on both desktop and WebGL.
package gfx

// BufferID identifies a GPU buffer object. Zero is never a valid buffer.
type BufferID uint32

// ShaderID identifies a compiled shader stage object.
type ShaderID uint32

// ProgramID identifies a linked shader program.
type ProgramID uint32

// VertexArrayID identifies a vertex-array object.
type VertexArrayID uint32

// UniformLocation identifies a uniform within a linked program. Following GL
// convention, -1 means the uniform does not exist (or was optimized out) and
// uploads to it are silently ignored.
type UniformLocation int32

// UniformNotFound is the location returned for unknown uniform names.
const UniformNotFound UniformLocation = -1

// BufferTarget selects which binding point a buffer operation applies to.
type BufferTarget uint32

const (
	// ArrayBuffer is the vertex attribute binding point.
	ArrayBuffer BufferTarget = 0x8892
	// ElementArrayBuffer is the index buffer binding point.
	ElementArrayBuffer BufferTarget = 0x8893
)

// BufferUsage hints how often buffer contents will be rewritten.
type BufferUsage uint32

const (
	// StaticDraw marks data written once and drawn many times.
	StaticDraw BufferUsage = 0x88E4
	// DynamicDraw marks data rewritten repeatedly, such as instance data and
	// interaction attributes.
	DynamicDraw BufferUsage = 0x88E8
	// StreamDraw marks data rewritten nearly every frame.
	StreamDraw BufferUsage = 0x88E0
)

// DrawMode selects the primitive topology of a draw call.
type DrawMode uint32

const (
	Points        DrawMode = 0x0000
	Lines         DrawMode = 0x0001
	LineStrip     DrawMode = 0x0003
	Triangles     DrawMode = 0x0004
	TriangleStrip DrawMode = 0x0005
)

// ComponentType is the numeric type of attribute components or indices.
type ComponentType uint32

const (
	UnsignedByte  ComponentType = 0x1401
	UnsignedShort ComponentType = 0x1403
	UnsignedInt   ComponentType = 0x1405
	Float         ComponentType = 0x1406
)

// Size returns the byte width of one component.
//
// Returns:
//   - int: bytes per component, 0 for unknown types
func (c ComponentType) Size() int {
	switch c {
	case UnsignedByte:
		return 1
	case UnsignedShort:
		return 2
	case UnsignedInt, Float:
		return 4
	default:
		return 0
	}
}

// ShaderType selects the pipeline stage a shader object compiles for.
type ShaderType uint32

const (
	VertexShader   ShaderType = 0x8B31
	FragmentShader ShaderType = 0x8B30
)

// StateCapability is a togglable fixed-function state.
type StateCapability uint32

const (
	Blend     StateCapability = 0x0BE2
	DepthTest StateCapability = 0x0B71
)

// BlendFactor is a source or destination blending coefficient.
type BlendFactor uint32

const (
	BlendZero             BlendFactor = 0
	BlendOne              BlendFactor = 1
	BlendSrcAlpha         BlendFactor = 0x0302
	BlendOneMinusSrcAlpha BlendFactor = 0x0303
)

// ClearMask selects which framebuffer planes Clear resets.
type ClearMask uint32

const (
	ColorBufferBit ClearMask = 0x4000
	DepthBufferBit ClearMask = 0x0100
)

// IntParameter is a queryable integer device limit.
type IntParameter uint32

const (
	// MaxVertexAttribs is the number of vertex attribute slots the device
	// supports. At least 8 on the limited generation, 16 on the rich one.
	MaxVertexAttribs IntParameter = 0x8869
	// MaxTextureSize is the largest supported square texture dimension.
	MaxTextureSize IntParameter = 0x0D33
)

// Extension names probed on the capability-limited generation.
const (
	// ExtVertexArrayObject supplies vertex-array objects on the limited
	// generation.
	ExtVertexArrayObject = "OES_vertex_array_object"
	// ExtInstancedArrays supplies instanced draws and attribute divisors on
	// the limited generation.
	ExtInstancedArrays = "ANGLE_instanced_arrays"
	// ExtTextureFloat supplies float-component textures on the limited
	// generation.
	ExtTextureFloat = "OES_texture_float"
)
