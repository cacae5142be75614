package geometry

import (
	"hash/fnv"
	"math"

	"github.com/chewxy/math32"
	geojson "github.com/paulmach/go.geojson"

	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
)

// TimingFunc computes one feature's animation time offset in [0, 1).
// Offsets desynchronize otherwise identical features so they do not animate
// in lockstep. The function must be pure: the same inputs always produce the
// same offset, which rebuild determinism depends on.
type TimingFunc func(index int, feature *geojson.Feature) float32

// DefaultTiming is the sin-hash jitter: a cheap pseudo-random fraction
// derived from the feature's position in the input set.
//
// Parameters:
//   - index: the feature's position in the input set
//   - feature: unused
//
// Returns:
//   - float32: the offset in [0, 1)
func DefaultTiming(index int, feature *geojson.Feature) float32 {
	s := math32.Sin(float32(index)*12.9898) * 43758.5453
	f := s - math32.Floor(s)
	if f < 0 || f >= 1 {
		return 0
	}
	return f
}

// NoJitter disables desynchronization; every feature animates in phase.
//
// Parameters:
//   - index: unused
//   - feature: unused
//
// Returns:
//   - float32: always 0
func NoJitter(index int, feature *geojson.Feature) float32 {
	return 0
}

// TimingByID derives the offset from the feature's resolved identity, so a
// feature keeps its phase when its position in the input set changes between
// updates.
//
// Parameters:
//   - index: the positional fallback for features without an id
//   - feature: the feature whose id is hashed
//
// Returns:
//   - float32: the offset in [0, 1)
func TimingByID(index int, feature *geojson.Feature) float32 {
	h := fnv.New32a()
	h.Write([]byte(geo.FeatureID(feature, "", index)))
	return float32(h.Sum32()) / float32(math.MaxUint32)
}
