package geometry_test

import (
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

func newLinePipeline(t *testing.T, ctx *gfxtest.Context, options ...geometry.PipelineBuilderOption) geometry.Pipeline {
	t.Helper()
	p, err := geometry.NewLinePipeline(ctx, options...)
	require.NoError(t, err)
	return p
}

func lineFeature(coords ...[2]float64) *geojson.Feature {
	positions := make([][]float64, len(coords))
	for i, c := range coords {
		positions[i] = []float64{c[0], c[1]}
	}
	return geojson.NewFeature(geojson.NewLineStringGeometry(positions))
}

func TestLineSegmentExpansion(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newLinePipeline(t, ctx)

	// equal-length segments along the equator, progress lands on thirds
	f := lineFeature([2]float64{0, 0}, [2]float64{10, 0}, [2]float64{20, 0}, [2]float64{30, 0})
	p.ProcessFeatures([]*geojson.Feature{f})
	require.NoError(t, p.BuildBuffers())

	assert.Equal(t, geometry.KindLine, p.Kind())
	assert.Equal(t, 3, p.RecordCount(), "n points make n-1 segments")
	assert.False(t, p.Instanced())

	floats := floatsOf(ctx.BufferBytes(meshVertexBuffer))
	require.Len(t, floats, 3*4*8)

	xs := make([]float32, 4)
	for i := range xs {
		x, _ := geo.Project(float64(i)*10, 0)
		xs[i] = float32(x)
	}
	y := float32(0.5)

	for j := 0; j < 3; j++ {
		seg := floats[j*4*8 : (j+1)*4*8]

		// start vertices carry the end as the opposite endpoint
		assert.Equal(t, []float32{xs[j], y, xs[j+1], y}, seg[0:4], "segment %d vertex 0", j)
		assert.Equal(t, float32(1), seg[4], "side sign")
		assert.Equal(t, []float32{xs[j], y, xs[j+1], y}, seg[8:12])
		assert.Equal(t, float32(-1), seg[12])

		// end vertices point back at the start; the side signs repeat
		// because the shader's normal flips with a_pos - a_other, landing
		// the repeated +1 diagonally opposite vertex 0
		assert.Equal(t, []float32{xs[j+1], y, xs[j], y}, seg[16:20])
		assert.Equal(t, float32(1), seg[20])
		assert.Equal(t, []float32{xs[j+1], y, xs[j], y}, seg[24:28])
		assert.Equal(t, float32(-1), seg[28])

		assert.InDelta(t, float64(j)/3, seg[5], 1e-6, "segment %d start progress", j)
		assert.InDelta(t, float64(j+1)/3, seg[21], 1e-6, "segment %d end progress", j)
	}

	wantIndices := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7, 8, 9, 10, 8, 10, 11}
	assert.Equal(t, common.SliceToBytes(wantIndices), ctx.BufferBytes(meshIndexBuffer))

	require.NoError(t, p.Draw())
	require.Len(t, ctx.DrawCalls(), 1)
	assert.Equal(t, gfxtest.DrawKindElements, ctx.DrawCalls()[0].Kind)
	assert.Equal(t, 18, ctx.DrawCalls()[0].Count)
	assert.Equal(t, gfx.UnsignedInt, ctx.DrawCalls()[0].ComponentType)
}

func TestLineMultiLineStringProgress(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newLinePipeline(t, ctx)

	// two parts of one feature, each with its own 0-1 progress span
	f := geojson.NewFeature(geojson.NewMultiLineStringGeometry(
		[][]float64{{0, 0}, {10, 0}},
		[][]float64{{0, 10}, {10, 10}, {20, 10}},
	))
	p.ProcessFeatures([]*geojson.Feature{f})
	require.NoError(t, p.BuildBuffers())

	assert.Equal(t, 1, p.FeatureCount())
	require.Equal(t, 3, p.RecordCount())

	floats := floatsOf(ctx.BufferBytes(meshVertexBuffer))

	// first part: single segment spans the whole line
	assert.InDelta(t, 0.0, floats[0*32+5], 1e-6)
	assert.InDelta(t, 1.0, floats[0*32+21], 1e-6)

	// second part restarts at zero and splits at the halfway point
	assert.InDelta(t, 0.0, floats[1*32+5], 1e-6)
	assert.InDelta(t, 0.5, floats[1*32+21], 1e-6)
	assert.InDelta(t, 0.5, floats[2*32+5], 1e-6)
	assert.InDelta(t, 1.0, floats[2*32+21], 1e-6)

	// all segments belong to feature 0
	for v := 0; v < 12; v++ {
		assert.Equal(t, float32(0), floats[v*8+6], "vertex %d feature index", v)
	}
}

func TestLineSkipsDegenerateParts(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newLinePipeline(t, ctx)

	features := []*geojson.Feature{
		// single-point part produces nothing
		lineFeature([2]float64{0, 0}),
		// a malformed position drops the whole part
		geojson.NewFeature(geojson.NewLineStringGeometry([][]float64{{0, 0}, {5}, {10, 0}})),
		// point geometry is not line geometry
		geojson.NewFeature(geojson.NewPointGeometry([]float64{0, 0})),
		lineFeature([2]float64{0, 0}, [2]float64{10, 0}),
	}
	p.ProcessFeatures(features)
	require.NoError(t, p.BuildBuffers())

	assert.Equal(t, 4, p.FeatureCount())
	require.Equal(t, 1, p.RecordCount())

	floats := floatsOf(ctx.BufferBytes(meshVertexBuffer))
	assert.Equal(t, float32(3), floats[6], "surviving segment keeps its feature index")
}

func TestLineZeroLength(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newLinePipeline(t, ctx)

	p.ProcessFeatures([]*geojson.Feature{
		lineFeature([2]float64{5, 5}, [2]float64{5, 5}),
	})
	require.NoError(t, p.BuildBuffers())
	require.Equal(t, 1, p.RecordCount())

	// coincident endpoints leave progress pinned at zero instead of NaN
	floats := floatsOf(ctx.BufferBytes(meshVertexBuffer))
	assert.Equal(t, float32(0), floats[5])
	assert.Equal(t, float32(0), floats[21])
}

func TestLineBuildDeterministic(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newLinePipeline(t, ctx)

	features := []*geojson.Feature{
		lineFeature([2]float64{0, 0}, [2]float64{10, 5}, [2]float64{20, -5}),
		lineFeature([2]float64{-30, 40}, [2]float64{-31, 41}),
	}
	p.ProcessFeatures(features)
	require.NoError(t, p.BuildBuffers())
	first := ctx.BufferBytes(meshVertexBuffer)

	require.NoError(t, p.BuildBuffers())
	assert.Equal(t, first, ctx.BufferBytes(meshVertexBuffer))

	p.ProcessFeatures(features)
	require.NoError(t, p.BuildBuffers())
	assert.Equal(t, first, ctx.BufferBytes(meshVertexBuffer))
}

func TestLinePatchInteraction(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newLinePipeline(t, ctx)

	p.ProcessFeatures([]*geojson.Feature{
		lineFeature([2]float64{0, 0}, [2]float64{10, 0}, [2]float64{20, 0}),
		lineFeature([2]float64{0, 10}, [2]float64{10, 10}),
	})
	require.NoError(t, p.BuildBuffers())
	require.Equal(t, 3, p.RecordCount())

	// pause feature 0; both of its segments freeze, feature 1 keeps playing
	p.PatchInteraction([]float32{0, 3.5, 1, 0})
	assert.Equal(t, 1, ctx.SubDataCalls())

	floats := floatsOf(ctx.BufferBytes(meshInteractionBuffer))
	require.Len(t, floats, 3*4*2)
	for v := 0; v < 8; v++ {
		assert.Equal(t, float32(0), floats[2*v], "frozen vertex %d", v)
		assert.Equal(t, float32(3.5), floats[2*v+1])
	}
	for v := 8; v < 12; v++ {
		assert.Equal(t, float32(1), floats[2*v])
		assert.Equal(t, float32(0), floats[2*v+1])
	}
}

func TestLineAttribBindings(t *testing.T) {
	ctx := gfxtest.NewContext()
	p := newLinePipeline(t, ctx)

	want := map[string]uint32{
		"a_pos":         0,
		"a_other":       1,
		"a_params":      2,
		"a_index":       3,
		"a_timeOffset":  4,
		"a_color":       5,
		"a_intensity":   6,
		"a_interaction": 7,
	}
	assert.Equal(t, want, p.AttribBindings())
	assert.Empty(t, p.Defines())
}
