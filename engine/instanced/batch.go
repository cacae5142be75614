// package instanced implements the instanced batch renderer: one shared
// geometry (typically a unit quad) and one per-instance attribute buffer,
// captured in a vertex-array object with divisor 0 on the shared attributes
// and divisor 1 on the instance attributes, so any number of instances draws
// with a single call.
package instanced

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
)

// batch is the implementation of the Batch interface.
type batch struct {
	ctx      gfx.Context
	strategy gfx.Instancing

	sharedLayout   gfx.Layout
	instanceLayout gfx.Layout
	mode           gfx.DrawMode
	instanceUsage  gfx.BufferUsage

	va             gfx.VertexArrayID
	sharedBuffer   gfx.BufferID
	elementBuffer  gfx.BufferID
	instanceBuffer gfx.BufferID

	indexCount    int
	indexType     gfx.ComponentType
	instanceBytes int
}

// Batch defines the interface for an instanced draw batch. A Batch owns its
// GPU buffers and vertex-array object; the shared geometry is uploaded once
// and the instance buffer re-uploaded or patched as instance data changes.
type Batch interface {
	// UploadShared uploads the geometry every instance shares. Called once
	// after construction, or again only when the shared geometry itself
	// changes.
	//
	// Parameters:
	//   - vertexData: interleaved vertex bytes matching the shared layout
	//   - indexData: element index bytes
	//   - indexType: component type of the indices
	//   - indexCount: number of indices per instance
	UploadShared(vertexData, indexData []byte, indexType gfx.ComponentType, indexCount int)

	// UploadInstances replaces the entire instance buffer.
	//
	// Parameters:
	//   - data: interleaved instance bytes matching the instance layout
	UploadInstances(data []byte)

	// PatchInstances overwrites a byte range of the instance buffer in
	// place. The range must lie within the buffer's current size.
	//
	// Parameters:
	//   - offset: byte offset of the range
	//   - data: replacement bytes
	PatchInstances(offset int, data []byte)

	// Draw renders instanceCount instances of the shared geometry with a
	// single instanced call. Zero or negative counts are a no-op, not an
	// error.
	//
	// Parameters:
	//   - instanceCount: number of instances to draw
	//
	// Returns:
	//   - error: the first strategy failure, nil on success
	Draw(instanceCount int) error

	// DrawRange renders count instances starting at instance first. This is
	// expensive: every per-instance attribute pointer is re-bound to the
	// range's byte offset before the draw and restored after it, so the call
	// belongs in debugging and picking paths, never in the per-frame loop.
	//
	// Parameters:
	//   - first: index of the first instance
	//   - count: number of instances to draw
	//
	// Returns:
	//   - error: the first strategy failure, nil on success
	DrawRange(first, count int) error

	// InstanceStride returns the byte stride of one instance.
	//
	// Returns:
	//   - int: the instance layout stride
	InstanceStride() int

	// InstanceCount returns how many complete instances the buffer currently
	// holds.
	//
	// Returns:
	//   - int: uploaded bytes divided by the instance stride
	InstanceCount() int

	// Release deletes the batch's buffers and vertex-array object. The Batch
	// is unusable afterwards; calling Release again is a no-op.
	Release()
}

var _ Batch = &batch{}

// NewBatch builds an instanced batch on a context whose instancing strategy
// is supported. The vertex-array object is configured once here: shared
// attributes at divisor 0, instance attributes at divisor 1, element buffer
// attached.
//
// Parameters:
//   - ctx: the graphics context
//   - strategy: the instancing strategy selected for the context
//   - sharedLayout: layout of the shared geometry buffer
//   - instanceLayout: layout of the per-instance buffer
//   - options: optional BatchBuilderOption functions
//
// Returns:
//   - Batch: the configured batch
//   - error: gfx.ErrInstancingUnsupported when the strategy cannot instance,
//     gfx.ErrInvalidLayout for a malformed layout, or a creation failure
func NewBatch(ctx gfx.Context, strategy gfx.Instancing, sharedLayout, instanceLayout gfx.Layout, options ...BatchBuilderOption) (Batch, error) {
	if !strategy.Supported() {
		return nil, fmt.Errorf("instanced batch: %w", gfx.ErrInstancingUnsupported)
	}
	if err := sharedLayout.Validate(); err != nil {
		return nil, fmt.Errorf("shared layout: %w", err)
	}
	if err := instanceLayout.Validate(); err != nil {
		return nil, fmt.Errorf("instance layout: %w", err)
	}

	b := &batch{
		ctx:            ctx,
		strategy:       strategy,
		sharedLayout:   sharedLayout,
		instanceLayout: instanceLayout,
		mode:           gfx.Triangles,
		instanceUsage:  gfx.DynamicDraw,
		indexType:      gfx.UnsignedShort,
	}
	for _, opt := range options {
		opt(b)
	}

	if err := b.setup(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// setup allocates the GPU objects and records the full attribute
// configuration into the vertex-array object.
func (b *batch) setup() error {
	va, err := b.strategy.CreateVertexArray()
	if err != nil {
		return err
	}
	b.va = va

	if b.sharedBuffer, err = b.ctx.CreateBuffer(); err != nil {
		return err
	}
	if b.elementBuffer, err = b.ctx.CreateBuffer(); err != nil {
		return err
	}
	if b.instanceBuffer, err = b.ctx.CreateBuffer(); err != nil {
		return err
	}

	if err = b.strategy.BindVertexArray(b.va); err != nil {
		return err
	}

	b.ctx.BindBuffer(gfx.ArrayBuffer, b.sharedBuffer)
	gfx.ApplyLayout(b.ctx, b.sharedLayout)
	for _, a := range b.sharedLayout.Attributes {
		if err = b.strategy.VertexAttribDivisor(a.Index, 0); err != nil {
			return err
		}
	}

	b.ctx.BindBuffer(gfx.ArrayBuffer, b.instanceBuffer)
	gfx.ApplyLayout(b.ctx, b.instanceLayout)
	for _, a := range b.instanceLayout.Attributes {
		if err = b.strategy.VertexAttribDivisor(a.Index, 1); err != nil {
			return err
		}
	}

	// element binding is vertex-array state, record it while bound
	b.ctx.BindBuffer(gfx.ElementArrayBuffer, b.elementBuffer)

	return b.strategy.BindVertexArray(0)
}

func (b *batch) UploadShared(vertexData, indexData []byte, indexType gfx.ComponentType, indexCount int) {
	b.ctx.BindBuffer(gfx.ArrayBuffer, b.sharedBuffer)
	b.ctx.BufferData(gfx.ArrayBuffer, vertexData, gfx.StaticDraw)

	b.strategy.BindVertexArray(b.va)
	b.ctx.BindBuffer(gfx.ElementArrayBuffer, b.elementBuffer)
	b.ctx.BufferData(gfx.ElementArrayBuffer, indexData, gfx.StaticDraw)
	b.strategy.BindVertexArray(0)

	b.indexType = indexType
	b.indexCount = indexCount
}

func (b *batch) UploadInstances(data []byte) {
	b.ctx.BindBuffer(gfx.ArrayBuffer, b.instanceBuffer)
	b.ctx.BufferData(gfx.ArrayBuffer, data, b.instanceUsage)
	b.instanceBytes = len(data)
}

func (b *batch) PatchInstances(offset int, data []byte) {
	b.ctx.BindBuffer(gfx.ArrayBuffer, b.instanceBuffer)
	b.ctx.BufferSubData(gfx.ArrayBuffer, offset, data)
}

func (b *batch) Draw(instanceCount int) error {
	if instanceCount <= 0 || b.indexCount == 0 {
		return nil
	}
	if err := b.strategy.BindVertexArray(b.va); err != nil {
		return err
	}
	err := b.strategy.DrawElementsInstanced(b.mode, b.indexCount, b.indexType, 0, instanceCount)
	if unbindErr := b.strategy.BindVertexArray(0); err == nil {
		err = unbindErr
	}
	return err
}

func (b *batch) DrawRange(first, count int) error {
	if count <= 0 || b.indexCount == 0 {
		return nil
	}
	if err := b.strategy.BindVertexArray(b.va); err != nil {
		return err
	}

	stride := b.instanceLayout.Stride
	b.ctx.BindBuffer(gfx.ArrayBuffer, b.instanceBuffer)
	for _, a := range b.instanceLayout.Attributes {
		b.ctx.VertexAttribPointer(a.Index, a.Size, a.Type, a.Normalized, stride, a.Offset+first*stride)
	}

	err := b.strategy.DrawElementsInstanced(b.mode, b.indexCount, b.indexType, 0, count)

	for _, a := range b.instanceLayout.Attributes {
		b.ctx.VertexAttribPointer(a.Index, a.Size, a.Type, a.Normalized, stride, a.Offset)
	}
	if unbindErr := b.strategy.BindVertexArray(0); err == nil {
		err = unbindErr
	}
	return err
}

func (b *batch) InstanceStride() int {
	return b.instanceLayout.Stride
}

func (b *batch) InstanceCount() int {
	if b.instanceLayout.Stride == 0 {
		return 0
	}
	return b.instanceBytes / b.instanceLayout.Stride
}

func (b *batch) Release() {
	if b.sharedBuffer != 0 {
		b.ctx.DeleteBuffer(b.sharedBuffer)
		b.sharedBuffer = 0
	}
	if b.elementBuffer != 0 {
		b.ctx.DeleteBuffer(b.elementBuffer)
		b.elementBuffer = 0
	}
	if b.instanceBuffer != 0 {
		b.ctx.DeleteBuffer(b.instanceBuffer)
		b.instanceBuffer = 0
	}
	if b.va != 0 {
		b.strategy.DeleteVertexArray(b.va)
		b.va = 0
	}
	b.indexCount = 0
	b.instanceBytes = 0
}
