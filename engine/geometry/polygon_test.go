package geometry_test

import (
	"encoding/binary"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
	"github.com/Carmen-Shannon/oxy-maps/engine/geometry"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx/gfxtest"
)

func newPolygonPipeline(t *testing.T, ctx *gfxtest.Context, options ...geometry.PipelineBuilderOption) geometry.Pipeline {
	t.Helper()
	p, err := geometry.NewPolygonPipeline(ctx, options...)
	require.NoError(t, err)
	return p
}

func squareFeature(lng, lat, size float64) *geojson.Feature {
	return geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{{
		{lng, lat}, {lng + size, lat}, {lng + size, lat + size}, {lng, lat + size}, {lng, lat},
	}}))
}

// projectRing mirrors the pipeline's ring preparation: project every
// position and drop the GeoJSON closing point.
func projectRing(ring [][]float64) []float64 {
	out := make([]float64, 0, len(ring)*2)
	for _, pos := range ring {
		x, y := geo.Project(pos[0], pos[1])
		out = append(out, x, y)
	}
	n := len(out) / 2
	if n >= 2 && out[0] == out[2*(n-1)] && out[1] == out[2*(n-1)+1] {
		out = out[:2*(n-1)]
	}
	return out
}

func TestPolygonSquare(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newPolygonPipeline(t, ctx)

	p.ProcessFeatures([]*geojson.Feature{squareFeature(0, 0, 10)})
	require.NoError(t, p.BuildBuffers())

	assert.Equal(t, geometry.KindPolygon, p.Kind())
	assert.Equal(t, 1, p.FeatureCount())
	assert.Equal(t, 1, p.RecordCount())
	assert.False(t, p.Instanced())

	// the closing point is dropped, four distinct vertices remain
	floats := floatsOf(ctx.BufferBytes(meshVertexBuffer))
	require.Len(t, floats, 4*8)

	// northern latitudes sit higher on the plane, so v=1 is the southern
	// edge of the bounding box
	wantUV := [][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for v := 0; v < 4; v++ {
		assert.Equal(t, wantUV[v][0], floats[v*8+2], "vertex %d u", v)
		assert.Equal(t, wantUV[v][1], floats[v*8+3], "vertex %d v", v)
		assert.Equal(t, float32(0), floats[v*8+6], "vertex %d feature index", v)
		assert.Equal(t, geometry.DefaultTiming(0, nil), floats[v*8+7])
	}

	// the index list is the ear-clipped triangulation of the projected ring
	ring := projectRing([][]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})
	wantIndices := geometry.EarClip(ring)
	require.Len(t, wantIndices, 6)
	assert.Equal(t, common.SliceToBytes(wantIndices), ctx.BufferBytes(meshIndexBuffer))

	require.NoError(t, p.Draw())
	require.Len(t, ctx.DrawCalls(), 1)
	assert.Equal(t, gfxtest.DrawKindElements, ctx.DrawCalls()[0].Kind)
	assert.Equal(t, 6, ctx.DrawCalls()[0].Count)
	assert.Equal(t, gfx.UnsignedInt, ctx.DrawCalls()[0].ComponentType)

	pos, ok := ctx.VertexArrayAttrib(0, 0)
	require.True(t, ok)
	assert.Equal(t, meshVertexBuffer, pos.Buffer)
	assert.Equal(t, 32, pos.Stride)
}

func TestPolygonCentroid(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newPolygonPipeline(t, ctx)

	ring := [][]float64{{0, 0}, {20, 0}, {10, 15}, {0, 0}}
	p.ProcessFeatures([]*geojson.Feature{
		geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{ring})),
	})
	require.NoError(t, p.BuildBuffers())
	require.Equal(t, 1, p.RecordCount())

	projected := projectRing(ring)
	cx, cy := 0.0, 0.0
	for v := 0; v < len(projected); v += 2 {
		cx += projected[v]
		cy += projected[v+1]
	}
	cx /= 3
	cy /= 3

	floats := floatsOf(ctx.BufferBytes(meshVertexBuffer))
	require.Len(t, floats, 3*8)
	for v := 0; v < 3; v++ {
		assert.InDelta(t, cx, floats[v*8+4], 1e-6, "vertex %d centroid x", v)
		assert.InDelta(t, cy, floats[v*8+5], 1e-6, "vertex %d centroid y", v)
	}
}

func TestPolygonSkipsDegenerateRings(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newPolygonPipeline(t, ctx)

	features := []*geojson.Feature{
		// two distinct points once the closing point is dropped
		geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{{
			{0, 0}, {5, 5}, {0, 0},
		}})),
		// wrong geometry kind entirely
		geojson.NewFeature(geojson.NewPointGeometry([]float64{1, 1})),
		// a malformed position rejects the ring
		geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{{
			{0, 0}, {5}, {5, 5}, {0, 0},
		}})),
		squareFeature(20, 20, 5),
	}
	p.ProcessFeatures(features)
	require.NoError(t, p.BuildBuffers())

	assert.Equal(t, 4, p.FeatureCount())
	require.Equal(t, 1, p.RecordCount(), "only the valid square survives")

	floats := floatsOf(ctx.BufferBytes(meshVertexBuffer))
	require.Len(t, floats, 4*8)
	assert.Equal(t, float32(3), floats[6], "survivor keeps its feature index")
}

func TestPolygonMultiPolygon(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newPolygonPipeline(t, ctx)

	f := geojson.NewFeature(geojson.NewMultiPolygonGeometry(
		[][][]float64{{{0, 0}, {5, 0}, {5, 5}, {0, 5}, {0, 0}}},
		[][][]float64{{{20, 20}, {25, 20}, {25, 25}, {20, 25}, {20, 20}}},
	))
	p.ProcessFeatures([]*geojson.Feature{f})
	require.NoError(t, p.BuildBuffers())

	assert.Equal(t, 1, p.FeatureCount())
	require.Equal(t, 2, p.RecordCount(), "one record per outer ring")

	floats := floatsOf(ctx.BufferBytes(meshVertexBuffer))
	require.Len(t, floats, 8*8)
	for v := 0; v < 8; v++ {
		assert.Equal(t, float32(0), floats[v*8+6], "vertex %d feature index", v)
	}

	// the second ring's indices shift past the first ring's vertices
	raw := ctx.BufferBytes(meshIndexBuffer)
	require.Len(t, raw, 12*4)
	for i := 0; i < 12; i++ {
		idx := binary.NativeEndian.Uint32(raw[4*i:])
		if i < 6 {
			assert.Less(t, idx, uint32(4), "index %d belongs to ring 0", i)
		} else {
			assert.GreaterOrEqual(t, idx, uint32(4), "index %d belongs to ring 1", i)
			assert.Less(t, idx, uint32(8))
		}
	}
}

func TestPolygonHolesIgnored(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newPolygonPipeline(t, ctx)

	// outer square with an inner ring; only the outer shell is rendered
	f := geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	}))
	p.ProcessFeatures([]*geojson.Feature{f})
	require.NoError(t, p.BuildBuffers())

	assert.Equal(t, 1, p.RecordCount())
	assert.Len(t, floatsOf(ctx.BufferBytes(meshVertexBuffer)), 4*8)
}

func TestPolygonBuildDeterministic(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newPolygonPipeline(t, ctx)

	features := []*geojson.Feature{
		squareFeature(0, 0, 10),
		geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{{
			{30, 30}, {50, 30}, {40, 45}, {30, 30},
		}})),
	}
	features[0].SetProperty("color", "#00ff00")

	p.ProcessFeatures(features)
	require.NoError(t, p.BuildBuffers())
	firstVertices := ctx.BufferBytes(meshVertexBuffer)
	firstIndices := ctx.BufferBytes(meshIndexBuffer)
	firstStyle := ctx.BufferBytes(meshStyleBuffer)

	require.NoError(t, p.BuildBuffers())
	assert.Equal(t, firstVertices, ctx.BufferBytes(meshVertexBuffer))
	assert.Equal(t, firstIndices, ctx.BufferBytes(meshIndexBuffer))

	p.ProcessFeatures(features)
	require.NoError(t, p.BuildBuffers())
	assert.Equal(t, firstVertices, ctx.BufferBytes(meshVertexBuffer))
	assert.Equal(t, firstIndices, ctx.BufferBytes(meshIndexBuffer))
	assert.Equal(t, firstStyle, ctx.BufferBytes(meshStyleBuffer))
}

func TestPolygonPatchInteraction(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newPolygonPipeline(t, ctx)

	p.ProcessFeatures([]*geojson.Feature{
		squareFeature(0, 0, 10),
		squareFeature(20, 20, 10),
	})
	require.NoError(t, p.BuildBuffers())
	require.Equal(t, 2, p.RecordCount())

	p.PatchInteraction([]float32{1, 0, 0, 9.75})
	assert.Equal(t, 1, ctx.SubDataCalls())

	floats := floatsOf(ctx.BufferBytes(meshInteractionBuffer))
	require.Len(t, floats, 8*2)
	for v := 0; v < 4; v++ {
		assert.Equal(t, float32(1), floats[2*v])
		assert.Equal(t, float32(0), floats[2*v+1])
	}
	for v := 4; v < 8; v++ {
		assert.Equal(t, float32(0), floats[2*v], "paused polygon vertex %d", v)
		assert.Equal(t, float32(9.75), floats[2*v+1])
	}
}

func TestPolygonRelease(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newPolygonPipeline(t, ctx)

	p.ProcessFeatures([]*geojson.Feature{squareFeature(0, 0, 10)})
	require.NoError(t, p.BuildBuffers())
	require.Equal(t, 4, ctx.LiveBuffers())

	p.Release()
	assert.Equal(t, 0, ctx.LiveBuffers())
	assert.Equal(t, 0, p.RecordCount())
}
