package geometry

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/pool"
)

// Pooled intermediate records. A record is either in its pool (reset state)
// or in exactly one pipeline's working list (valid state), never both. Reset
// functions truncate slices without freeing capacity; retained capacity is
// the entire point of pooling these.

// PointRecord is the pooled intermediate for one point.
type PointRecord struct {
	// X, Y are the projected position in the normalized mercator plane.
	X, Y float64
	// FeatureIndex is the position of the owning feature in the input set.
	FeatureIndex int
	// TimeOffset is the per-feature desynchronization jitter.
	TimeOffset float32
	// Color and Intensity are the resolved data-driven style.
	Color     common.Color
	Intensity float32
}

// SegmentRecord is the pooled intermediate for one line segment.
type SegmentRecord struct {
	// X1, Y1, X2, Y2 are the projected segment endpoints.
	X1, Y1, X2, Y2 float64
	// Progress1, Progress2 are the cumulative 0-1 progress along the whole
	// line at each endpoint.
	Progress1, Progress2 float32
	// FeatureIndex is the position of the owning feature in the input set.
	FeatureIndex int
	TimeOffset   float32
	Color        common.Color
	Intensity    float32
}

// PolygonRecord is the pooled intermediate for one polygon's outer ring.
type PolygonRecord struct {
	// Vertices holds the projected ring as flat x, y pairs.
	Vertices []float64
	// Indices holds the ear-clipped triangle list into Vertices.
	Indices []uint32
	// CentroidX, CentroidY is the ring vertex average.
	CentroidX, CentroidY float64
	// Bounds is the ring's axis-aligned bounding box in projected space.
	MinX, MinY, MaxX, MaxY float64
	// FeatureIndex is the position of the owning feature in the input set.
	FeatureIndex int
	TimeOffset   float32
	Color        common.Color
	Intensity    float32
}

func resetPoint(r *PointRecord) {
	*r = PointRecord{}
}

func resetSegment(r *SegmentRecord) {
	*r = SegmentRecord{}
}

func resetPolygon(r *PolygonRecord) {
	vertices := r.Vertices[:0]
	indices := r.Indices[:0]
	*r = PolygonRecord{Vertices: vertices, Indices: indices}
}

// RecordPools bundles the three record pools every pipeline draws from. One
// set may serve any number of layers; all access stays on the single render
// thread.
type RecordPools struct {
	Points   pool.Pool[PointRecord]
	Segments pool.Pool[SegmentRecord]
	Polygons pool.Pool[PolygonRecord]
}

// NewRecordPools builds a pool set. The same options apply to all three
// pools.
//
// Parameters:
//   - options: optional pool.PoolBuilderOption functions
//
// Returns:
//   - *RecordPools: the pool set
func NewRecordPools(options ...pool.PoolBuilderOption) *RecordPools {
	return &RecordPools{
		Points:   pool.NewPool(func() *PointRecord { return &PointRecord{} }, resetPoint, options...),
		Segments: pool.NewPool(func() *SegmentRecord { return &SegmentRecord{} }, resetSegment, options...),
		Polygons: pool.NewPool(func() *PolygonRecord { return &PolygonRecord{} }, resetPolygon, options...),
	}
}

var defaultPools = sync.OnceValue(func() *RecordPools {
	return NewRecordPools()
})

// DefaultRecordPools returns the process-wide shared pool set, created on
// first use. Layers that want isolated pools pass their own set instead.
//
// Returns:
//   - *RecordPools: the shared pool set
func DefaultRecordPools() *RecordPools {
	return defaultPools()
}
