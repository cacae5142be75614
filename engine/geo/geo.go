// package geo projects GeoJSON features onto the normalized mercator plane the
// GPU pipelines pack buffers in, and resolves the per-feature identities the
// animation state is keyed by. Geographic math stays in float64; conversion to
// float32 happens at buffer-packing time.
package geo

import (
	"math"
)

// MaxLatitude is the latitude bound of the square web-mercator projection.
// Latitudes beyond it are clamped before projecting.
const MaxLatitude = 85.051129

// Project converts geographic coordinates to the normalized mercator plane.
// The plane maps the whole world to [0, 1] on both axes, with (0, 0) at the
// north-west corner and y growing southward.
//
// Parameters:
//   - lng: longitude in degrees
//   - lat: latitude in degrees, clamped to ±MaxLatitude
//
// Returns:
//   - float64: x in [0, 1]
//   - float64: y in [0, 1]
func Project(lng, lat float64) (float64, float64) {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	x := (180 + lng) / 360
	y := (180 - (180/math.Pi)*math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))) / 360
	return x, y
}

// Unproject converts normalized mercator plane coordinates back to
// geographic longitude/latitude.
//
// Parameters:
//   - x: plane x in [0, 1]
//   - y: plane y in [0, 1]
//
// Returns:
//   - float64: longitude in degrees
//   - float64: latitude in degrees
func Unproject(x, y float64) (float64, float64) {
	lng := x*360 - 180
	y2 := 180 - y*360
	lat := (360/math.Pi)*math.Atan(math.Exp(y2*math.Pi/180)) - 90
	return lng, lat
}

// ProjectPosition projects a GeoJSON position slice. Positions with fewer
// than two components are rejected.
//
// Parameters:
//   - position: [lng, lat, ...] slice as stored in a GeoJSON geometry
//
// Returns:
//   - float64: x in [0, 1]
//   - float64: y in [0, 1]
//   - bool: false if the position is malformed
func ProjectPosition(position []float64) (float64, float64, bool) {
	if len(position) < 2 {
		return 0, 0, false
	}
	x, y := Project(position[0], position[1])
	return x, y, true
}
