package gfx

// Generation classifies a graphics context by which API generation it
// implements.
type Generation int

const (
	// GenerationUnknown is the zero value and never produced by a probe.
	GenerationUnknown Generation = iota
	// GenerationLimited is the WebGL1 / ES2 class: vertex arrays, instancing
	// and float textures exist only as extensions.
	GenerationLimited
	// GenerationRich is the WebGL2 / GL 3.3 class: the same capabilities are
	// part of the core API.
	GenerationRich
)

// String returns a readable generation name for logs.
//
// Returns:
//   - string: the generation name
func (g Generation) String() string {
	switch g {
	case GenerationLimited:
		return "limited"
	case GenerationRich:
		return "rich"
	default:
		return "unknown"
	}
}

// CapabilitySource records where a probed capability comes from.
type CapabilitySource int

const (
	// SourceNone means the capability is unavailable.
	SourceNone CapabilitySource = iota
	// SourceNative means the generation provides the capability in core.
	SourceNative
	// SourceExtension means a named extension provides the capability.
	SourceExtension
)

// String returns a readable source name for logs.
//
// Returns:
//   - string: the source name
func (s CapabilitySource) String() string {
	switch s {
	case SourceNative:
		return "native"
	case SourceExtension:
		return "extension"
	default:
		return "none"
	}
}

// Capabilities is the immutable result of probing a context once at
// construction. Render paths read it; nothing re-probes per call.
type Capabilities struct {
	// Generation is the context's API generation.
	Generation Generation
	// VertexArrays is true when vertex-array objects are usable.
	VertexArrays bool
	// VertexArraySource records whether vertex arrays are native or come
	// from ExtVertexArrayObject.
	VertexArraySource CapabilitySource
	// Instancing is true when instanced draws and attribute divisors are
	// usable. Requires VertexArrays as well, since the batch renderer binds
	// its buffers through a vertex-array object.
	Instancing bool
	// InstancingSource records whether instancing is native or comes from
	// ExtInstancedArrays.
	InstancingSource CapabilitySource
	// FloatTextures is true when float-component textures are supported.
	FloatTextures bool
	// MaxVertexAttribs is the device's vertex attribute slot count.
	MaxVertexAttribs int
	// MaxTextureSize is the device's largest square texture dimension.
	MaxTextureSize int
}

// Probe inspects a context once and returns its capability descriptor.
// Callers keep the result for the lifetime of the context; capabilities do
// not change while a context remains valid.
//
// Parameters:
//   - ctx: the context to probe
//
// Returns:
//   - Capabilities: the immutable capability descriptor
func Probe(ctx Context) Capabilities {
	caps := Capabilities{
		Generation:       ctx.Generation(),
		MaxVertexAttribs: ctx.IntParameter(MaxVertexAttribs),
		MaxTextureSize:   ctx.IntParameter(MaxTextureSize),
	}

	if caps.Generation == GenerationRich {
		caps.VertexArrays = true
		caps.VertexArraySource = SourceNative
		caps.Instancing = true
		caps.InstancingSource = SourceNative
		caps.FloatTextures = true
		return caps
	}

	if ctx.HasExtension(ExtVertexArrayObject) {
		caps.VertexArrays = true
		caps.VertexArraySource = SourceExtension
	}
	if ctx.HasExtension(ExtInstancedArrays) && caps.VertexArrays {
		caps.Instancing = true
		caps.InstancingSource = SourceExtension
	}
	caps.FloatTextures = ctx.HasExtension(ExtTextureFloat)

	return caps
}
