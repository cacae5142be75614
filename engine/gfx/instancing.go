package gfx

// Instancing is the strategy covering the fixed operation set whose
// implementation differs between API generations: vertex-array objects,
// instanced draws and attribute divisors. A strategy is selected exactly once
// per context from the capability probe; operations never re-check
// availability per call. On a context where neither the native path nor the
// required extensions exist, every operation returns
// ErrInstancingUnsupported instead of silently doing nothing.
type Instancing interface {
	// Supported reports whether the strategy can actually instance. When
	// false every other method returns ErrInstancingUnsupported.
	//
	// Returns:
	//   - bool: true when instanced rendering is available
	Supported() bool

	// Source reports where the operations come from.
	//
	// Returns:
	//   - CapabilitySource: SourceNative, SourceExtension or SourceNone
	Source() CapabilitySource

	// CreateVertexArray allocates a vertex-array object.
	//
	// Returns:
	//   - VertexArrayID: the new handle
	//   - error: ErrInstancingUnsupported or a creation failure
	CreateVertexArray() (VertexArrayID, error)

	// BindVertexArray makes a vertex-array object current.
	//
	// Parameters:
	//   - va: the object to bind, 0 to unbind
	//
	// Returns:
	//   - error: ErrInstancingUnsupported when unavailable
	BindVertexArray(va VertexArrayID) error

	// DeleteVertexArray releases a vertex-array object. Safe to call on any
	// strategy; unsupported strategies ignore it so teardown paths need no
	// special casing.
	//
	// Parameters:
	//   - va: the object to delete
	DeleteVertexArray(va VertexArrayID)

	// VertexAttribDivisor sets an attribute's advance rate: 0 per vertex,
	// 1 per instance.
	//
	// Parameters:
	//   - index: the attribute slot
	//   - divisor: the advance rate
	//
	// Returns:
	//   - error: ErrInstancingUnsupported when unavailable
	VertexAttribDivisor(index, divisor uint32) error

	// DrawArraysInstanced issues one non-indexed instanced draw.
	//
	// Parameters:
	//   - mode: primitive topology
	//   - first: index of the first vertex
	//   - count: vertices per instance
	//   - instanceCount: number of instances
	//
	// Returns:
	//   - error: ErrInstancingUnsupported when unavailable
	DrawArraysInstanced(mode DrawMode, first, count, instanceCount int) error

	// DrawElementsInstanced issues one indexed instanced draw.
	//
	// Parameters:
	//   - mode: primitive topology
	//   - count: indices per instance
	//   - componentType: index type
	//   - offset: byte offset into the index buffer
	//   - instanceCount: number of instances
	//
	// Returns:
	//   - error: ErrInstancingUnsupported when unavailable
	DrawElementsInstanced(mode DrawMode, count int, componentType ComponentType, offset, instanceCount int) error
}

// SelectInstancing picks the instancing strategy for a context from its
// capability probe: the native operation bundles on the rich generation, the
// extension bundles on the limited generation, or the unsupported strategy
// when the probe found neither.
//
// Parameters:
//   - ctx: the context the strategy operates on
//   - caps: the context's probed capabilities
//
// Returns:
//   - Instancing: the selected strategy, never nil
func SelectInstancing(ctx Context, caps Capabilities) Instancing {
	if !caps.Instancing || !caps.VertexArrays {
		return unsupportedInstancing{}
	}

	if caps.InstancingSource == SourceNative {
		va, okVA := ctx.NativeVertexArrays()
		inst, okInst := ctx.NativeInstancing()
		if okVA && okInst {
			return &opsInstancing{vertexArrays: va, instanced: inst, source: SourceNative}
		}
		return unsupportedInstancing{}
	}

	va, okVA := ctx.VertexArrayExtension()
	inst, okInst := ctx.InstancingExtension()
	if okVA && okInst {
		return &opsInstancing{vertexArrays: va, instanced: inst, source: SourceExtension}
	}
	return unsupportedInstancing{}
}

// opsInstancing routes the fixed operation set to whichever bundle pair the
// probe selected. Native and extension contexts share this implementation.
type opsInstancing struct {
	vertexArrays VertexArrayOps
	instanced    InstancedOps
	source       CapabilitySource
}

var _ Instancing = &opsInstancing{}

func (o *opsInstancing) Supported() bool {
	return true
}

func (o *opsInstancing) Source() CapabilitySource {
	return o.source
}

func (o *opsInstancing) CreateVertexArray() (VertexArrayID, error) {
	return o.vertexArrays.CreateVertexArray()
}

func (o *opsInstancing) BindVertexArray(va VertexArrayID) error {
	o.vertexArrays.BindVertexArray(va)
	return nil
}

func (o *opsInstancing) DeleteVertexArray(va VertexArrayID) {
	o.vertexArrays.DeleteVertexArray(va)
}

func (o *opsInstancing) VertexAttribDivisor(index, divisor uint32) error {
	o.instanced.VertexAttribDivisor(index, divisor)
	return nil
}

func (o *opsInstancing) DrawArraysInstanced(mode DrawMode, first, count, instanceCount int) error {
	o.instanced.DrawArraysInstanced(mode, first, count, instanceCount)
	return nil
}

func (o *opsInstancing) DrawElementsInstanced(mode DrawMode, count int, componentType ComponentType, offset, instanceCount int) error {
	o.instanced.DrawElementsInstanced(mode, count, componentType, offset, instanceCount)
	return nil
}

// unsupportedInstancing is the strategy for contexts with neither path. All
// operations fail with the same distinguishable error.
type unsupportedInstancing struct{}

var _ Instancing = unsupportedInstancing{}

func (unsupportedInstancing) Supported() bool {
	return false
}

func (unsupportedInstancing) Source() CapabilitySource {
	return SourceNone
}

func (unsupportedInstancing) CreateVertexArray() (VertexArrayID, error) {
	return 0, ErrInstancingUnsupported
}

func (unsupportedInstancing) BindVertexArray(VertexArrayID) error {
	return ErrInstancingUnsupported
}

func (unsupportedInstancing) DeleteVertexArray(VertexArrayID) {}

func (unsupportedInstancing) VertexAttribDivisor(uint32, uint32) error {
	return ErrInstancingUnsupported
}

func (unsupportedInstancing) DrawArraysInstanced(DrawMode, int, int, int) error {
	return ErrInstancingUnsupported
}

func (unsupportedInstancing) DrawElementsInstanced(DrawMode, int, ComponentType, int, int) error {
	return ErrInstancingUnsupported
}
