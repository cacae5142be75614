package instanced

// The canonical shared geometry: a unit quad of two triangles. Corner
// offsets span [-1, 1] so shaders scale them directly by half-size, UVs span
// [0, 1]. Vertices are interleaved as corner.x, corner.y, u, v.

// QuadVertices returns the interleaved vertex data of the shared unit quad.
//
// Returns:
//   - []float32: 4 vertices of corner.x, corner.y, u, v
func QuadVertices() []float32 {
	return []float32{
		-1, -1, 0, 0,
		1, -1, 1, 0,
		1, 1, 1, 1,
		-1, 1, 0, 1,
	}
}

// QuadIndices returns the element indices of the shared unit quad.
//
// Returns:
//   - []uint16: 6 indices forming two counter-clockwise triangles
func QuadIndices() []uint16 {
	return []uint16{0, 1, 2, 0, 2, 3}
}
