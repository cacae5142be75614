package geometry

import (
	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
)

// mesh owns the standard path's GPU buffers: interleaved geometry, a 32-bit
// triangle index list, data-driven attributes and interaction attributes in
// separate buffers. Attribute state is applied at every draw instead of
// captured in a vertex-array object so the same path serves the limited
// generation unchanged.
type mesh struct {
	ctx gfx.Context

	vertexBuffer      gfx.BufferID
	indexBuffer       gfx.BufferID
	dataBuffer        gfx.BufferID
	interactionBuffer gfx.BufferID

	indexCount int
}

func newMesh(ctx gfx.Context) (*mesh, error) {
	m := &mesh{ctx: ctx}
	var err error
	if m.vertexBuffer, err = ctx.CreateBuffer(); err != nil {
		return nil, err
	}
	if m.indexBuffer, err = ctx.CreateBuffer(); err != nil {
		m.release()
		return nil, err
	}
	if m.dataBuffer, err = ctx.CreateBuffer(); err != nil {
		m.release()
		return nil, err
	}
	if m.interactionBuffer, err = ctx.CreateBuffer(); err != nil {
		m.release()
		return nil, err
	}
	return m, nil
}

// upload replaces all four buffers. Zero-length inputs clear the mesh.
func (m *mesh) upload(vertexData []float32, indexData []uint32, styleData, interactionData []float32) {
	m.ctx.BindBuffer(gfx.ArrayBuffer, m.vertexBuffer)
	m.ctx.BufferData(gfx.ArrayBuffer, common.SliceToBytes(vertexData), gfx.DynamicDraw)

	m.ctx.BindBuffer(gfx.ElementArrayBuffer, m.indexBuffer)
	m.ctx.BufferData(gfx.ElementArrayBuffer, common.SliceToBytes(indexData), gfx.DynamicDraw)

	m.ctx.BindBuffer(gfx.ArrayBuffer, m.dataBuffer)
	m.ctx.BufferData(gfx.ArrayBuffer, common.SliceToBytes(styleData), gfx.DynamicDraw)

	m.ctx.BindBuffer(gfx.ArrayBuffer, m.interactionBuffer)
	m.ctx.BufferData(gfx.ArrayBuffer, common.SliceToBytes(interactionData), gfx.DynamicDraw)

	m.indexCount = len(indexData)
}

// patchInteraction overwrites the interaction buffer in place. The data must
// have the same byte size as the last upload.
func (m *mesh) patchInteraction(data []float32) {
	m.ctx.BindBuffer(gfx.ArrayBuffer, m.interactionBuffer)
	m.ctx.BufferSubData(gfx.ArrayBuffer, 0, common.SliceToBytes(data))
}

// bind points every attribute of the three layouts at its buffer and binds
// the element buffer.
func (m *mesh) bind(main, data, interaction gfx.Layout) {
	m.ctx.BindBuffer(gfx.ArrayBuffer, m.vertexBuffer)
	gfx.ApplyLayout(m.ctx, main)
	m.ctx.BindBuffer(gfx.ArrayBuffer, m.dataBuffer)
	gfx.ApplyLayout(m.ctx, data)
	m.ctx.BindBuffer(gfx.ArrayBuffer, m.interactionBuffer)
	gfx.ApplyLayout(m.ctx, interaction)
	m.ctx.BindBuffer(gfx.ElementArrayBuffer, m.indexBuffer)
}

// unbind disables the attribute arrays so a later layer with fewer
// attributes does not fetch through stale pointers.
func (m *mesh) unbind(layouts ...gfx.Layout) {
	for _, l := range layouts {
		for _, a := range l.Attributes {
			m.ctx.DisableVertexAttribArray(a.Index)
		}
	}
}

func (m *mesh) drawTriangles() {
	m.ctx.DrawElements(gfx.Triangles, m.indexCount, gfx.UnsignedInt, 0)
}

func (m *mesh) release() {
	for _, id := range []gfx.BufferID{m.vertexBuffer, m.indexBuffer, m.dataBuffer, m.interactionBuffer} {
		if id != 0 {
			m.ctx.DeleteBuffer(id)
		}
	}
	m.vertexBuffer, m.indexBuffer, m.dataBuffer, m.interactionBuffer = 0, 0, 0, 0
	m.indexCount = 0
}
