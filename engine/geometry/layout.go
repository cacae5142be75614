package geometry

import "github.com/Carmen-Shannon/oxy-maps/engine/gfx"

// Attribute slot plan. Every layout of one geometry kind shares a single
// slot space capped at 8, the guaranteed minimum on the limited generation.
// Geometry, data-driven and interaction attributes live in separate buffers
// so interaction patches never touch geometry bytes.

// InstanceFloatCount is the number of float32 components per instance on the
// instanced point path: position (2), feature index (1), time offset (1),
// color (4), intensity (1), interaction (2).
const InstanceFloatCount = 11

// interactionFloats is the per-vertex width of the interaction attribute:
// isPlaying and frozen local time.
const interactionFloats = 2

// PackFields assigns sequential byte offsets to float32 fields in
// declaration order and returns the resulting tightly packed layout. The
// stride is exactly the sum of the field sizes.
//
// Parameters:
//   - fields: attributes in packing order, Offset ignored
//
// Returns:
//   - gfx.Layout: the packed layout
func PackFields(fields ...gfx.VertexAttrib) gfx.Layout {
	offset := 0
	packed := make([]gfx.VertexAttrib, len(fields))
	for i, f := range fields {
		f.Type = gfx.Float
		f.Offset = offset
		packed[i] = f
		offset += int(f.Size) * 4
	}
	return gfx.Layout{Stride: offset, Attributes: packed}
}

// PointMainLayout returns the per-vertex geometry layout of the standard
// point path: position, quad-corner offset, source-feature index, time
// offset.
//
// Returns:
//   - gfx.Layout: 6 floats, stride 24
func PointMainLayout() gfx.Layout {
	return PackFields(
		gfx.VertexAttrib{Index: 0, Name: "a_pos", Size: 2},
		gfx.VertexAttrib{Index: 1, Name: "a_corner", Size: 2},
		gfx.VertexAttrib{Index: 2, Name: "a_index", Size: 1},
		gfx.VertexAttrib{Index: 3, Name: "a_timeOffset", Size: 1},
	)
}

// PointSharedLayout returns the shared quad layout of the instanced point
// path: corner offset and UV, advancing per vertex.
//
// Returns:
//   - gfx.Layout: 4 floats, stride 16
func PointSharedLayout() gfx.Layout {
	return PackFields(
		gfx.VertexAttrib{Index: 0, Name: "a_corner", Size: 2},
		gfx.VertexAttrib{Index: 1, Name: "a_uv", Size: 2},
	)
}

// PointInstanceLayout returns the per-instance layout of the instanced point
// path. One instance is one feature.
//
// Returns:
//   - gfx.Layout: InstanceFloatCount floats, stride 44
func PointInstanceLayout() gfx.Layout {
	return PackFields(
		gfx.VertexAttrib{Index: 2, Name: "i_pos", Size: 2},
		gfx.VertexAttrib{Index: 3, Name: "i_index", Size: 1},
		gfx.VertexAttrib{Index: 4, Name: "i_timeOffset", Size: 1},
		gfx.VertexAttrib{Index: 5, Name: "i_color", Size: 4},
		gfx.VertexAttrib{Index: 6, Name: "i_intensity", Size: 1},
		gfx.VertexAttrib{Index: 7, Name: "i_interaction", Size: 2},
	)
}

// LineMainLayout returns the per-vertex geometry layout of the line path:
// this endpoint, the opposite endpoint (for screen-space extrusion), packed
// side sign + cumulative progress, source-feature index, time offset.
//
// Returns:
//   - gfx.Layout: 8 floats, stride 32
func LineMainLayout() gfx.Layout {
	return PackFields(
		gfx.VertexAttrib{Index: 0, Name: "a_pos", Size: 2},
		gfx.VertexAttrib{Index: 1, Name: "a_other", Size: 2},
		gfx.VertexAttrib{Index: 2, Name: "a_params", Size: 2},
		gfx.VertexAttrib{Index: 3, Name: "a_index", Size: 1},
		gfx.VertexAttrib{Index: 4, Name: "a_timeOffset", Size: 1},
	)
}

// PolygonMainLayout returns the per-vertex geometry layout of the polygon
// path: position, bbox-normalized UV, centroid, source-feature index, time
// offset.
//
// Returns:
//   - gfx.Layout: 8 floats, stride 32
func PolygonMainLayout() gfx.Layout {
	return PackFields(
		gfx.VertexAttrib{Index: 0, Name: "a_pos", Size: 2},
		gfx.VertexAttrib{Index: 1, Name: "a_uv", Size: 2},
		gfx.VertexAttrib{Index: 2, Name: "a_centroid", Size: 2},
		gfx.VertexAttrib{Index: 3, Name: "a_index", Size: 1},
		gfx.VertexAttrib{Index: 4, Name: "a_timeOffset", Size: 1},
	)
}

// dataLayout returns the data-driven attribute layout (color + intensity)
// starting at the given slot.
func dataLayout(firstSlot uint32) gfx.Layout {
	return PackFields(
		gfx.VertexAttrib{Index: firstSlot, Name: "a_color", Size: 4},
		gfx.VertexAttrib{Index: firstSlot + 1, Name: "a_intensity", Size: 1},
	)
}

// interactionLayout returns the interaction attribute layout (isPlaying +
// frozen local time as one vec2) at the given slot.
func interactionLayout(slot uint32) gfx.Layout {
	return PackFields(
		gfx.VertexAttrib{Index: slot, Name: "a_interaction", Size: interactionFloats},
	)
}

// PointDataLayout returns the data-driven layout of the standard point path.
//
// Returns:
//   - gfx.Layout: 5 floats, stride 20
func PointDataLayout() gfx.Layout {
	return dataLayout(4)
}

// PointInteractionLayout returns the interaction layout of the standard
// point path.
//
// Returns:
//   - gfx.Layout: 2 floats, stride 8
func PointInteractionLayout() gfx.Layout {
	return interactionLayout(6)
}

// LineDataLayout returns the data-driven layout of the line path.
//
// Returns:
//   - gfx.Layout: 5 floats, stride 20
func LineDataLayout() gfx.Layout {
	return dataLayout(5)
}

// LineInteractionLayout returns the interaction layout of the line path.
//
// Returns:
//   - gfx.Layout: 2 floats, stride 8
func LineInteractionLayout() gfx.Layout {
	return interactionLayout(7)
}

// PolygonDataLayout returns the data-driven layout of the polygon path.
//
// Returns:
//   - gfx.Layout: 5 floats, stride 20
func PolygonDataLayout() gfx.Layout {
	return dataLayout(5)
}

// PolygonInteractionLayout returns the interaction layout of the polygon
// path.
//
// Returns:
//   - gfx.Layout: 2 floats, stride 8
func PolygonInteractionLayout() gfx.Layout {
	return interactionLayout(7)
}
