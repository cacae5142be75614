// package geometry converts map features into GPU-ready buffers. One
// pipeline specialization exists per geometry kind (point, line, polygon);
// all follow the same two-phase contract: ProcessFeatures turns the feature
// snapshot into pooled records, BuildBuffers packs the records into
// interleaved float arrays and uploads them. Rebuilds are deterministic:
// identical input always produces byte-identical buffers.
package geometry

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/Carmen-Shannon/oxy-maps/common"
)

// DefaultInstancingThreshold is the feature count at which the point
// pipeline switches from per-vertex quads to the instanced path.
const DefaultInstancingThreshold = 100

// Kind identifies a pipeline's geometry specialization.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindPolygon
)

// String returns the string representation of the Kind.
//
// Returns:
//   - string: the string representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Pipeline defines the shared contract of the geometry-to-buffer
// specializations. A pipeline owns its GPU buffers and pooled working
// records; both are released through Release on layer teardown.
//
// The two-phase rebuild is always ProcessFeatures then BuildBuffers.
// Processing releases the previous rebuild's records, projects coordinates
// into the normalized mercator plane and fills fresh records; building packs
// the records and uploads. Malformed features are skipped individually and
// never abort a rebuild. An empty feature set clears the buffers; the
// following Draw issues no call and returns nil.
type Pipeline interface {
	// Kind reports the pipeline's geometry specialization.
	//
	// Returns:
	//   - Kind: the geometry kind
	Kind() Kind

	// ProcessFeatures converts the feature snapshot into pooled records.
	// Record order follows input feature order.
	//
	// Parameters:
	//   - features: the feature snapshot, may be empty or nil
	ProcessFeatures(features []*geojson.Feature)

	// BuildBuffers packs the current records into typed arrays and uploads
	// them to the GPU. Calling it twice without an intervening
	// ProcessFeatures produces byte-identical uploads.
	//
	// Returns:
	//   - error: a GPU object creation failure, nil otherwise
	BuildBuffers() error

	// Draw issues the draw call for the current buffers. With no records
	// nothing is drawn and nil is returned.
	//
	// Returns:
	//   - error: the first strategy failure, nil otherwise
	Draw() error

	// PatchInteraction overwrites the interaction attribute data in place
	// from per-feature pairs, expanding each feature's pair across all of
	// its vertices or instances. The upload is a single same-size buffer
	// patch.
	//
	// Parameters:
	//   - featurePairs: isPlaying, localTime per feature, indexed by feature
	//     position
	PatchInteraction(featurePairs []float32)

	// FeatureCount returns the size of the last processed snapshot.
	//
	// Returns:
	//   - int: the feature count
	FeatureCount() int

	// RecordCount returns how many records the last processing produced.
	//
	// Returns:
	//   - int: the working record count
	RecordCount() int

	// Instanced reports whether the last rebuild selected the instanced
	// path. The selection happens once per rebuild, never mid-frame.
	//
	// Returns:
	//   - bool: true when drawing instanced
	Instanced() bool

	// AttribBindings returns the attribute slot assignments of the active
	// path's layouts, for fixed pre-link binding. Re-read after every
	// rebuild, like Defines: a path switch can move a name to a different
	// slot, and the two paths of one kind may assign the same slot to
	// different names.
	//
	// Returns:
	//   - map[string]uint32: attribute names keyed to slots
	AttribBindings() map[string]uint32

	// Defines returns the preprocessor definitions the active path requires,
	// re-read after every rebuild.
	//
	// Returns:
	//   - map[string]string: definitions for shader compilation
	Defines() map[string]string

	// Recreate replaces the pipeline's GPU objects with fresh ones and
	// re-uploads from the current records, for context restoration: records
	// survive a context loss, GPU handles do not. Interaction data resets
	// to defaults; callers reapply authoritative state through
	// PatchInteraction.
	//
	// Returns:
	//   - error: a GPU object creation failure, nil otherwise
	Recreate() error

	// Release returns all working records to their pools and deletes the
	// pipeline's GPU objects.
	Release()
}

// pipelineConfig carries the knobs shared by all specializations.
type pipelineConfig struct {
	pools     *RecordPools
	timing    TimingFunc
	style     StyleConfig
	threshold int
}

func defaultPipelineConfig() pipelineConfig {
	return pipelineConfig{
		pools:     DefaultRecordPools(),
		timing:    DefaultTiming,
		style:     DefaultStyle(),
		threshold: DefaultInstancingThreshold,
	}
}

// ensureFloats returns buf resized to n, reusing its backing array when
// large enough. Same-size rebuilds allocate nothing.
func ensureFloats(buf []float32, n int) []float32 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float32, n)
}

// ensureIndices is ensureFloats for index data.
func ensureIndices(buf []uint32, n int) []uint32 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]uint32, n)
}

// fillStyle writes the 5-float color+intensity group for count consecutive
// vertices starting at vertex base.
func fillStyle(dst []float32, base, count int, color common.Color, intensity float32) {
	for v := 0; v < count; v++ {
		o := (base + v) * 5
		dst[o] = color.R
		dst[o+1] = color.G
		dst[o+2] = color.B
		dst[o+3] = color.A
		dst[o+4] = intensity
	}
}

// fillInteractionDefaults resets per-vertex interaction pairs to playing at
// local time zero.
func fillInteractionDefaults(dst []float32) {
	for i := 0; i < len(dst); i += interactionFloats {
		dst[i] = 1
		dst[i+1] = 0
	}
}

// mergeBindings unions layout bindings into one map.
func mergeBindings(layouts ...map[string]uint32) map[string]uint32 {
	out := map[string]uint32{}
	for _, l := range layouts {
		for name, slot := range l {
			out[name] = slot
		}
	}
	return out
}
