package animation_test

import (
	"fmt"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-maps/engine/animation"
)

func stationFeatures(n int) []*geojson.Feature {
	features := make([]*geojson.Feature, n)
	for i := range features {
		f := geojson.NewFeature(geojson.NewPointGeometry([]float64{float64(i % 180), 0}))
		f.SetProperty("station", fmt.Sprintf("f-%d", i))
		features[i] = f
	}
	return features
}

func TestInitializeFromFeatures(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))

	s.InitializeFromFeatures(stationFeatures(3))
	assert.Equal(t, 3, s.Count())
	assert.True(t, s.IsDirty(), "fresh state needs an upload")

	st, ok := s.Get("f-1")
	require.True(t, ok)
	assert.True(t, st.IsPlaying)
	assert.Equal(t, float32(0), st.LocalTime)
	assert.Equal(t, 0, st.PlayCount)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestIdentityResolutionFallbacks(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))

	withProp := geojson.NewFeature(geojson.NewPointGeometry([]float64{0, 0}))
	withProp.SetProperty("station", "alpha")
	withID := geojson.NewFeature(geojson.NewPointGeometry([]float64{1, 1}))
	withID.ID = "beta"
	anonymous := geojson.NewFeature(geojson.NewPointGeometry([]float64{2, 2}))

	s.InitializeFromFeatures([]*geojson.Feature{withProp, withID, anonymous})

	for _, id := range []string{"alpha", "beta", "2"} {
		_, ok := s.Get(id)
		assert.True(t, ok, "id %q tracked", id)
	}
}

func TestPauseCapturesGlobalTime(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))
	s.InitializeFromFeatures(stationFeatures(2))

	s.Tick(7.5, 0.016)
	s.Pause("f-0")

	st, ok := s.Get("f-0")
	require.True(t, ok)
	assert.False(t, st.IsPlaying)
	assert.Equal(t, float32(7.5), st.LocalTime, "frozen at the instant of pausing")

	// pausing again later must not move the frozen instant
	s.Tick(9.0, 0.016)
	s.Pause("f-0")
	st, _ = s.Get("f-0")
	assert.Equal(t, float32(7.5), st.LocalTime)

	// the other feature is untouched
	other, _ := s.Get("f-1")
	assert.True(t, other.IsPlaying)
}

func TestPlayCountsReplays(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))
	s.InitializeFromFeatures(stationFeatures(1))

	// playing an already-playing feature is a no-op
	s.Play("f-0")
	st, _ := s.Get("f-0")
	assert.Equal(t, 0, st.PlayCount)

	s.Tick(3, 0.016)
	s.Pause("f-0")
	s.Play("f-0")
	st, _ = s.Get("f-0")
	assert.True(t, st.IsPlaying)
	assert.Equal(t, 1, st.PlayCount)
	assert.Equal(t, float32(3), st.LocalTime, "resume keeps the captured time")

	s.Pause("f-0")
	s.Play("f-0")
	st, _ = s.Get("f-0")
	assert.Equal(t, 2, st.PlayCount)
}

func TestToggle(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))
	s.InitializeFromFeatures(stationFeatures(1))
	s.Tick(2, 0.016)

	s.Toggle("f-0")
	st, _ := s.Get("f-0")
	assert.False(t, st.IsPlaying)
	assert.Equal(t, float32(2), st.LocalTime)

	s.Toggle("f-0")
	st, _ = s.Get("f-0")
	assert.True(t, st.IsPlaying)
	assert.Equal(t, 1, st.PlayCount)

	// untracked ids are ignored
	s.Toggle("missing")
}

func TestResetKeepsPlayBit(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))
	s.InitializeFromFeatures(stationFeatures(2))
	s.Tick(5, 0.016)

	s.Pause("f-0")
	s.Play("f-0")
	s.Pause("f-1")

	s.Reset("f-0")
	st, _ := s.Get("f-0")
	assert.True(t, st.IsPlaying, "reset leaves a playing feature playing")
	assert.Equal(t, float32(0), st.LocalTime)
	assert.Equal(t, 0, st.PlayCount)

	s.Reset("f-1")
	st, _ = s.Get("f-1")
	assert.False(t, st.IsPlaying, "reset leaves a paused feature paused")
	assert.Equal(t, float32(0), st.LocalTime)
}

func TestDirtyCycle(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))
	s.InitializeFromFeatures(stationFeatures(2))
	require.True(t, s.IsDirty())
	s.ClearDirty()
	require.False(t, s.IsDirty())

	// ticks and reads never dirty the state
	s.Tick(1, 0.016)
	s.GenerateBufferData(1)
	_, _ = s.Get("f-0")
	assert.False(t, s.IsDirty())

	// no-op transitions stay clean
	s.Play("f-0")
	s.Pause("missing")
	assert.False(t, s.IsDirty())

	s.Pause("f-0")
	assert.True(t, s.IsDirty())
	s.ClearDirty()

	s.MarkDirty()
	assert.True(t, s.IsDirty())
}

func TestBulkTransitions(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))
	s.InitializeFromFeatures(stationFeatures(3))
	s.ClearDirty()
	s.Tick(4, 0.016)

	s.PauseAll()
	assert.True(t, s.IsDirty())
	for i := 0; i < 3; i++ {
		st, _ := s.Get(fmt.Sprintf("f-%d", i))
		assert.False(t, st.IsPlaying)
		assert.Equal(t, float32(4), st.LocalTime)
	}

	// an all-paused set has nothing to pause
	s.ClearDirty()
	s.PauseAll()
	assert.False(t, s.IsDirty())

	s.PlayAll()
	assert.True(t, s.IsDirty())
	for i := 0; i < 3; i++ {
		st, _ := s.Get(fmt.Sprintf("f-%d", i))
		assert.True(t, st.IsPlaying)
		assert.Equal(t, 1, st.PlayCount)
	}

	s.ResetAll()
	for i := 0; i < 3; i++ {
		st, _ := s.Get(fmt.Sprintf("f-%d", i))
		assert.Equal(t, 0, st.PlayCount)
		assert.Equal(t, float32(0), st.LocalTime)
	}
}

func TestGenerateBufferData(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))
	s.InitializeFromFeatures(stationFeatures(3))
	s.Tick(5, 0.016)
	s.Pause("f-1")

	assert.Equal(t, []float32{1, 0, 0, 5, 1, 0}, s.GenerateBufferData(1))

	// per-vertex expansion replicates each feature's pair
	expanded := s.GenerateBufferData(4)
	require.Len(t, expanded, 3*4*2)
	for v := 0; v < 4; v++ {
		assert.Equal(t, float32(1), expanded[v*2])
		assert.Equal(t, float32(0), expanded[8+v*2], "feature 1 vertex %d frozen", v)
		assert.Equal(t, float32(5), expanded[8+v*2+1])
		assert.Equal(t, float32(1), expanded[16+v*2])
	}

	// a nonsensical vertex count degrades to one pair per feature
	assert.Len(t, s.GenerateBufferData(0), 3*2)
}

func TestGenerateBufferDataLargeSet(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))
	s.InitializeFromFeatures(stationFeatures(150))
	s.Tick(12.5, 0.016)
	s.Pause("f-42")

	data := s.GenerateBufferData(1)
	require.Len(t, data, 150*2)
	assert.Equal(t, float32(0), data[42*2], "feature 42 frozen")
	assert.Equal(t, float32(12.5), data[42*2+1])
	assert.Equal(t, float32(1), data[41*2])
	assert.Equal(t, float32(1), data[43*2])
}

func TestReinitializeReplacesWholesale(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))
	features := stationFeatures(2)
	s.InitializeFromFeatures(features)
	s.Tick(3, 0.016)
	s.Pause("f-0")

	s.InitializeFromFeatures(features)
	st, ok := s.Get("f-0")
	require.True(t, ok)
	assert.True(t, st.IsPlaying, "re-initialization discards previous state")
	assert.Equal(t, float32(0), st.LocalTime)
	assert.True(t, s.IsDirty())
}

func TestDuplicateIdentitiesShareState(t *testing.T) {
	s := animation.NewStates(animation.WithIDProperty("station"))
	a := geojson.NewFeature(geojson.NewPointGeometry([]float64{0, 0}))
	a.SetProperty("station", "shared")
	b := geojson.NewFeature(geojson.NewPointGeometry([]float64{1, 1}))
	b.SetProperty("station", "shared")

	s.InitializeFromFeatures([]*geojson.Feature{a, b})
	assert.Equal(t, 1, s.Count())

	s.Tick(2, 0.016)
	s.Pause("shared")
	assert.Equal(t, []float32{0, 2, 0, 2}, s.GenerateBufferData(1), "both positions expand the shared entry")
}
