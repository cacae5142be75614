package geometry

// EarClip triangulates a simple polygon ring into a triangle list. The ring
// is flat x, y pairs without a repeated closing point. Convexity of each
// candidate ear is a cross-product sign test against the ring's winding;
// each accepted ear additionally passes an O(n) containment check over the
// remaining vertices, making the whole pass O(n^2). A successfully clipped
// ring of n vertices always yields exactly n-2 triangles; collinear vertices
// produce zero-area triangles rather than failures.
//
// Parameters:
//   - ring: flat x, y vertex pairs, at least 3 vertices
//
// Returns:
//   - []uint32: index triples into the ring, nil when the ring is degenerate
//     or self-intersecting and no ear can be found
func EarClip(ring []float64) []uint32 {
	n := len(ring) / 2
	if n < 3 {
		return nil
	}
	if n == 3 {
		return []uint32{0, 1, 2}
	}

	winding := 1.0
	if signedRingArea(ring) < 0 {
		winding = -1.0
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}
	out := make([]uint32, 0, (n-2)*3)

	for len(remaining) > 3 {
		clipped := false
		for i := range remaining {
			prev := remaining[(i+len(remaining)-1)%len(remaining)]
			curr := remaining[i]
			next := remaining[(i+1)%len(remaining)]

			cross := crossAt(ring, prev, curr, next)
			if cross*winding < 0 {
				continue
			}
			if earContainsVertex(ring, remaining, prev, curr, next) {
				continue
			}

			out = append(out, uint32(prev), uint32(curr), uint32(next))
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil
		}
	}
	return append(out, uint32(remaining[0]), uint32(remaining[1]), uint32(remaining[2]))
}

// signedRingArea is the shoelace sum; positive for counter-clockwise rings.
func signedRingArea(ring []float64) float64 {
	n := len(ring) / 2
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[2*i]*ring[2*j+1] - ring[2*j]*ring[2*i+1]
	}
	return area / 2
}

// crossAt is the z component of (curr-prev) x (next-curr).
func crossAt(ring []float64, prev, curr, next int) float64 {
	ax := ring[2*curr] - ring[2*prev]
	ay := ring[2*curr+1] - ring[2*prev+1]
	bx := ring[2*next] - ring[2*curr]
	by := ring[2*next+1] - ring[2*curr+1]
	return ax*by - ay*bx
}

// earContainsVertex reports whether any remaining vertex other than the ear's
// corners lies strictly inside the candidate triangle.
func earContainsVertex(ring []float64, remaining []int, prev, curr, next int) bool {
	ax, ay := ring[2*prev], ring[2*prev+1]
	bx, by := ring[2*curr], ring[2*curr+1]
	cx, cy := ring[2*next], ring[2*next+1]
	for _, v := range remaining {
		if v == prev || v == curr || v == next {
			continue
		}
		if pointInTriangle(ring[2*v], ring[2*v+1], ax, ay, bx, by, cx, cy) {
			return true
		}
	}
	return false
}

// pointInTriangle is a strict interior test; points on an edge or corner are
// not inside, so ears sharing boundary points with other vertices remain
// clippable.
func pointInTriangle(px, py, ax, ay, bx, by, cx, cy float64) bool {
	s1 := (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	s2 := (cx-bx)*(py-by) - (cy-by)*(px-bx)
	s3 := (ax-cx)*(py-cy) - (ay-cy)*(px-cx)
	return (s1 > 0 && s2 > 0 && s3 > 0) || (s1 < 0 && s2 < 0 && s3 < 0)
}
