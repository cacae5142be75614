package geo

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectKnownPoints(t *testing.T) {
	// null island sits at the center of the plane
	x, y := Project(0, 0)
	assert.InDelta(t, 0.5, x, 1e-9)
	assert.InDelta(t, 0.5, y, 1e-9)

	// antimeridian edges
	x, _ = Project(-180, 0)
	assert.InDelta(t, 0.0, x, 1e-9)
	x, _ = Project(180, 0)
	assert.InDelta(t, 1.0, x, 1e-9)

	// northern latitudes map above center (y grows southward)
	_, y = Project(0, 45)
	assert.Less(t, y, 0.5)
	_, y = Project(0, -45)
	assert.Greater(t, y, 0.5)

	// projection edge stays finite at the clamp latitude
	_, y = Project(0, 90)
	assert.InDelta(t, 0.0, y, 1e-6)
	_, y = Project(0, -90)
	assert.InDelta(t, 1.0, y, 1e-6)
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	cases := [][2]float64{
		{0, 0},
		{-122.4194, 37.7749},
		{151.2093, -33.8688},
		{139.6917, 35.6895},
		{-0.1276, 51.5072},
	}
	for _, c := range cases {
		x, y := Project(c[0], c[1])
		lng, lat := Unproject(x, y)
		assert.InDelta(t, c[0], lng, 1e-9)
		assert.InDelta(t, c[1], lat, 1e-9)
	}
}

func TestProjectPosition(t *testing.T) {
	x, y, ok := ProjectPosition([]float64{0, 0})
	require.True(t, ok)
	assert.InDelta(t, 0.5, x, 1e-9)
	assert.InDelta(t, 0.5, y, 1e-9)

	_, _, ok = ProjectPosition([]float64{12})
	assert.False(t, ok)
	_, _, ok = ProjectPosition(nil)
	assert.False(t, ok)

	// extra components (altitude) are ignored
	_, _, ok = ProjectPosition([]float64{10, 20, 300})
	assert.True(t, ok)
}

func TestFeatureIDResolutionOrder(t *testing.T) {
	f := geojson.NewFeature(geojson.NewPointGeometry([]float64{0, 0}))
	f.ID = "geojson-id"
	f.Properties = map[string]any{"name": "prop-id"}

	assert.Equal(t, "prop-id", FeatureID(f, "name", 3))
	assert.Equal(t, "geojson-id", FeatureID(f, "missing", 3))
	assert.Equal(t, "geojson-id", FeatureID(f, "", 3))

	f.ID = nil
	assert.Equal(t, "3", FeatureID(f, "missing", 3))
	assert.Equal(t, "7", FeatureID(nil, "name", 7))
}

func TestFeatureIDNumericNormalization(t *testing.T) {
	f := geojson.NewFeature(geojson.NewPointGeometry([]float64{0, 0}))

	// json decoding yields float64 ids; integral values keep integer form
	f.ID = float64(42)
	assert.Equal(t, "42", FeatureID(f, "", 0))

	f.ID = float64(1.5)
	assert.Equal(t, "1.5", FeatureID(f, "", 0))

	f.ID = 17
	assert.Equal(t, "17", FeatureID(f, "", 0))

	f.ID = int64(99)
	assert.Equal(t, "99", FeatureID(f, "", 0))

	f.ID = ""
	assert.Equal(t, "0", FeatureID(f, "", 0), "empty string id falls through")

	f.Properties = map[string]any{"n": float64(7)}
	assert.Equal(t, "7", FeatureID(f, "n", 0))
}

func TestBoundsExtendAndContains(t *testing.T) {
	b := EmptyBounds()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0.0, b.Width())

	b = b.Extend(0.25, 0.5).Extend(0.75, 0.25)
	assert.False(t, b.IsEmpty())
	assert.InDelta(t, 0.5, b.Width(), 1e-9)
	assert.InDelta(t, 0.25, b.Height(), 1e-9)

	assert.True(t, b.Contains(0.5, 0.4))
	assert.True(t, b.Contains(0.25, 0.25), "boundary counts as inside")
	assert.False(t, b.Contains(0.1, 0.4))
}

func TestBoundsIntersects(t *testing.T) {
	a := EmptyBounds().Extend(0, 0).Extend(1, 1)
	c := EmptyBounds().Extend(0.5, 0.5).Extend(2, 2)
	d := EmptyBounds().Extend(3, 3).Extend(4, 4)
	edge := EmptyBounds().Extend(1, 0).Extend(2, 1)

	assert.True(t, a.Intersects(c))
	assert.True(t, c.Intersects(a))
	assert.False(t, a.Intersects(d))
	assert.True(t, a.Intersects(edge), "edge contact intersects")
	assert.False(t, a.Intersects(EmptyBounds()))
	assert.False(t, EmptyBounds().Intersects(a))
}

func TestBoundsUnion(t *testing.T) {
	a := EmptyBounds().Extend(0, 0).Extend(1, 1)
	b := EmptyBounds().Extend(2, 2).Extend(3, 3)

	u := a.Union(b)
	assert.InDelta(t, 0.0, u.MinX, 1e-9)
	assert.InDelta(t, 3.0, u.MaxX, 1e-9)

	assert.Equal(t, a, a.Union(EmptyBounds()))
	assert.Equal(t, a, EmptyBounds().Union(a))
}

func TestFeatureBounds(t *testing.T) {
	line := geojson.NewFeature(geojson.NewLineStringGeometry([][]float64{
		{-10, 0}, {10, 0}, {0, 10},
	}))
	b := FeatureBounds(line)
	require.False(t, b.IsEmpty())

	minX, _ := Project(-10, 0)
	maxX, _ := Project(10, 0)
	assert.InDelta(t, minX, b.MinX, 1e-9)
	assert.InDelta(t, maxX, b.MaxX, 1e-9)

	assert.True(t, FeatureBounds(nil).IsEmpty())
	assert.True(t, FeatureBounds(geojson.NewFeature(nil)).IsEmpty())

	multi := geojson.NewFeature(geojson.NewMultiPolygonGeometry(
		[][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		[][][]float64{{{5, 5}, {6, 5}, {6, 6}, {5, 5}}},
	))
	mb := FeatureBounds(multi)
	x6, _ := Project(6, 5)
	assert.InDelta(t, x6, mb.MaxX, 1e-9)
}
