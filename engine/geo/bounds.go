package geo

import (
	"math"

	geojson "github.com/paulmach/go.geojson"
)

// Bounds is an axis-aligned box on the normalized mercator plane. The zero
// value is not useful; start from EmptyBounds so Extend works.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// EmptyBounds returns the identity bounds for Extend/Union: any extension of
// it equals the extending region.
//
// Returns:
//   - Bounds: an empty bounds value
func EmptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether the bounds contain no area and no points.
//
// Returns:
//   - bool: true when nothing has been extended into the bounds
func (b Bounds) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Extend grows the bounds to include the given plane point.
//
// Parameters:
//   - x, y: plane coordinates to include
//
// Returns:
//   - Bounds: the grown bounds
func (b Bounds) Extend(x, y float64) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, x), MinY: math.Min(b.MinY, y),
		MaxX: math.Max(b.MaxX, x), MaxY: math.Max(b.MaxY, y),
	}
}

// Union grows the bounds to include another bounds.
//
// Parameters:
//   - other: the bounds to include
//
// Returns:
//   - Bounds: the combined bounds
func (b Bounds) Union(other Bounds) Bounds {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return b.Extend(other.MinX, other.MinY).Extend(other.MaxX, other.MaxY)
}

// Contains reports whether the plane point lies inside the bounds, edges
// included.
//
// Parameters:
//   - x, y: plane coordinates to test
//
// Returns:
//   - bool: true when the point is inside or on the boundary
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Intersects reports whether two bounds overlap, edge contact included.
// This is the whole of the culling model: layers drop features whose bounds
// miss the viewport bounds.
//
// Parameters:
//   - other: the bounds to test against
//
// Returns:
//   - bool: true when the bounds overlap
func (b Bounds) Intersects(other Bounds) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}
	return b.MinX <= other.MaxX && b.MaxX >= other.MinX &&
		b.MinY <= other.MaxY && b.MaxY >= other.MinY
}

// Width returns the x extent of the bounds, 0 when empty.
//
// Returns:
//   - float64: the width
func (b Bounds) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxX - b.MinX
}

// Height returns the y extent of the bounds, 0 when empty.
//
// Returns:
//   - float64: the height
func (b Bounds) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxY - b.MinY
}

// FeatureBounds computes the projected bounds of a feature's geometry.
//
// Parameters:
//   - feature: the feature to measure
//
// Returns:
//   - Bounds: the projected bounds, empty when the feature has no coordinates
func FeatureBounds(feature *geojson.Feature) Bounds {
	b := EmptyBounds()
	if feature == nil || feature.Geometry == nil {
		return b
	}
	eachPosition(feature.Geometry, func(lng, lat float64) {
		x, y := Project(lng, lat)
		b = b.Extend(x, y)
	})
	return b
}

// eachPosition walks every coordinate in a geometry, recursing into
// collections. Malformed positions (fewer than two components) are skipped.
func eachPosition(g *geojson.Geometry, fn func(lng, lat float64)) {
	emit := func(pos []float64) {
		if len(pos) >= 2 {
			fn(pos[0], pos[1])
		}
	}

	switch {
	case g.IsPoint():
		emit(g.Point)
	case g.IsMultiPoint():
		for _, pos := range g.MultiPoint {
			emit(pos)
		}
	case g.IsLineString():
		for _, pos := range g.LineString {
			emit(pos)
		}
	case g.IsMultiLineString():
		for _, line := range g.MultiLineString {
			for _, pos := range line {
				emit(pos)
			}
		}
	case g.IsPolygon():
		for _, ring := range g.Polygon {
			for _, pos := range ring {
				emit(pos)
			}
		}
	case g.IsMultiPolygon():
		for _, poly := range g.MultiPolygon {
			for _, ring := range poly {
				for _, pos := range ring {
					emit(pos)
				}
			}
		}
	case g.IsCollection():
		for _, child := range g.Geometries {
			eachPosition(child, fn)
		}
	}
}
