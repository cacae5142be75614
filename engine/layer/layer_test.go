package layer_test

import (
	"encoding/binary"
	"fmt"
	"math"
	"testing"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
	"github.com/Carmen-Shannon/oxy-maps/engine/geometry"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx/gfxtest"
	"github.com/Carmen-Shannon/oxy-maps/engine/layer"
	"github.com/Carmen-Shannon/oxy-maps/engine/loader"
	"github.com/Carmen-Shannon/oxy-maps/engine/shader"
)

const (
	vertexSrc   = "attribute vec2 a_pos;\nvoid main() { gl_Position = vec4(a_pos, 0.0, 1.0); }"
	fragmentSrc = "void main() { gl_FragColor = vec4(1.0); }"
)

// mesh buffers are created with the pipeline, the instanced batch lazily on
// the first instanced rebuild.
const (
	meshInteractionBuffer gfx.BufferID = 4
	batchInstanceBuffer   gfx.BufferID = 7
)

func floatsOf(raw []byte) []float32 {
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(raw[4*i:]))
	}
	return out
}

func stationFeatures(n int) []*geojson.Feature {
	features := make([]*geojson.Feature, n)
	for i := range features {
		f := geojson.NewFeature(geojson.NewPointGeometry([]float64{float64(i%180 - 90), float64(i%80 - 40)}))
		f.SetProperty("station", fmt.Sprintf("f-%d", i))
		features[i] = f
	}
	return features
}

func staticSource(features []*geojson.Feature) layer.FeatureSource {
	return func() []*geojson.Feature { return features }
}

func testEffect() layer.Effect {
	return layer.Effect{
		VertexSource:   vertexSrc,
		FragmentSource: fragmentSrc,
		GetUniforms: func(config common.EffectConfig, time, deltaTime float32) map[string]any {
			return map[string]any{"u_time": time}
		},
	}
}

func TestLayerEndToEndInstanced(t *testing.T) {
	ctx := gfxtest.NewContext()
	l := layer.NewLayer("stations", geometry.KindPoint, staticSource(stationFeatures(150)), testEffect(),
		layer.WithIDProperty("station"),
		layer.WithPipelineOptions(geometry.WithInstancingThreshold(100)),
	)

	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())

	st := l.Stats()
	assert.Equal(t, 150, st.FeatureCount)
	assert.Equal(t, 150, st.RecordCount)
	assert.True(t, st.Instanced)
	assert.Equal(t, 1, st.Rebuilds)
	require.Len(t, ctx.BufferBytes(batchInstanceBuffer), 150*geometry.InstanceFloatCount*4)

	l.Render(layer.RenderParams{DeltaSeconds: 0.5})
	calls := ctx.InstancedDrawCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, gfxtest.DrawKindElementsInstanced, calls[0].Kind)
	assert.Equal(t, 150, calls[0].InstanceCount)

	l.PauseFeature("f-42")
	state, ok := l.FeatureState("f-42")
	require.True(t, ok)
	assert.False(t, state.IsPlaying)
	assert.Equal(t, float32(0.5), state.LocalTime, "pause captures the ticked global time")

	l.Render(layer.RenderParams{DeltaSeconds: 0.25})
	floats := floatsOf(ctx.BufferBytes(batchInstanceBuffer))
	assert.Equal(t, float32(0), floats[42*geometry.InstanceFloatCount+9], "instance 42 frozen")
	assert.Equal(t, float32(0.5), floats[42*geometry.InstanceFloatCount+10])
	assert.Equal(t, float32(1), floats[41*geometry.InstanceFloatCount+9])
	assert.Equal(t, float32(1), floats[43*geometry.InstanceFloatCount+9])

	// resume keeps the captured time and counts the replay
	l.PlayFeature("f-42")
	state, _ = l.FeatureState("f-42")
	assert.True(t, state.IsPlaying)
	assert.Equal(t, float32(0.5), state.LocalTime)
	assert.Equal(t, 1, state.PlayCount)
}

func TestLayerStandardBelowThreshold(t *testing.T) {
	ctx := gfxtest.NewContext()
	l := layer.NewLayer("sparse", geometry.KindPoint, staticSource(stationFeatures(99)), testEffect(),
		layer.WithPipelineOptions(geometry.WithInstancingThreshold(100)),
	)
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())
	assert.False(t, l.Stats().Instanced)

	matrix := make([]float32, 16)
	common.Identity(matrix)
	l.Render(layer.RenderParams{Matrix: matrix, DeltaSeconds: 0.5})

	calls := ctx.DrawCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, gfxtest.DrawKindElements, calls[0].Kind)
	assert.Equal(t, 99*6, calls[0].Count)
	assert.Equal(t, gfx.UnsignedInt, calls[0].ComponentType)
	assert.Empty(t, ctx.InstancedDrawCalls())

	// overlay blending is set up before every draw
	assert.True(t, ctx.StateEnabled(gfx.Blend))
	src, dst := ctx.BlendFuncState()
	assert.Equal(t, gfx.BlendSrcAlpha, src)
	assert.Equal(t, gfx.BlendOneMinusSrcAlpha, dst)

	// camera matrix and effect uniforms reach the program
	m, ok := ctx.UniformValue(1, "u_matrix")
	require.True(t, ok)
	var want [16]float32
	copy(want[:], matrix)
	assert.Equal(t, want, m)
	tv, ok := ctx.UniformValue(1, "u_time")
	require.True(t, ok)
	assert.Equal(t, float32(0.5), tv)
}

func TestLayerLimitedGenerationStaysStandard(t *testing.T) {
	ctx := gfxtest.NewContext(gfxtest.WithGeneration(gfx.GenerationLimited))
	l := layer.NewLayer("legacy", geometry.KindPoint, staticSource(stationFeatures(150)), testEffect(),
		layer.WithPipelineOptions(geometry.WithInstancingThreshold(100)),
	)
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())

	assert.False(t, l.Stats().Instanced, "no instancing strategy on a bare limited context")
	assert.Contains(t, ctx.ShaderSourceText(1), "precision highp float;")
	assert.NotContains(t, ctx.ShaderSourceText(1), "#version")

	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	calls := ctx.DrawCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 150*6, calls[0].Count)
}

func TestLayerPathSwitchRecompilesProgram(t *testing.T) {
	ctx := gfxtest.NewContext()
	current := stationFeatures(9)
	l := layer.NewLayer("switching", geometry.KindPoint, func() []*geojson.Feature { return current }, testEffect(),
		layer.WithPipelineOptions(geometry.WithInstancingThreshold(10)),
		layer.WithRebuildInterval(0),
	)
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())
	assert.False(t, l.Stats().Instanced)
	assert.Contains(t, ctx.ShaderSourceText(1), "#version 330 core")
	assert.NotContains(t, ctx.ShaderSourceText(1), "#define INSTANCED")

	current = stationFeatures(10)
	l.NotifyDataChanged()
	l.Render(layer.RenderParams{DeltaSeconds: 0.016})

	assert.True(t, l.Stats().Instanced)
	assert.Equal(t, 2, l.Stats().Rebuilds)
	assert.Equal(t, 1, ctx.LivePrograms())
	assert.True(t, ctx.ProgramDeleted(1))
	assert.Contains(t, ctx.ShaderSourceText(3), "#define INSTANCED 1")

	calls := ctx.InstancedDrawCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 10, calls[0].InstanceCount)
	assert.Equal(t, gfx.ProgramID(2), calls[0].Program)

	// dropping below the threshold switches back and relinks again
	current = stationFeatures(9)
	l.NotifyDataChanged()
	ctx.ResetDrawCalls()
	l.Render(layer.RenderParams{DeltaSeconds: 0.016})

	assert.False(t, l.Stats().Instanced)
	assert.True(t, ctx.ProgramDeleted(2))
	assert.NotContains(t, ctx.ShaderSourceText(5), "#define INSTANCED")
	calls = ctx.DrawCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, gfxtest.DrawKindElements, calls[0].Kind)
	assert.Equal(t, 9*6, calls[0].Count)
	assert.Equal(t, gfx.ProgramID(3), calls[0].Program)
}

func TestLayerClockControls(t *testing.T) {
	ctx := gfxtest.NewContext()
	var times []float32
	effect := layer.Effect{
		VertexSource:   vertexSrc,
		FragmentSource: fragmentSrc,
		GetUniforms: func(_ common.EffectConfig, time, _ float32) map[string]any {
			times = append(times, time)
			return nil
		},
	}
	l := layer.NewLayer("clocked", geometry.KindPoint, staticSource(stationFeatures(3)), effect,
		layer.WithSpeed(2),
	)
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())

	l.Render(layer.RenderParams{DeltaSeconds: 0.25})
	l.SetSpeed(1)
	l.Render(layer.RenderParams{DeltaSeconds: 0.25})

	l.Pause()
	assert.False(t, l.Playing())
	l.Render(layer.RenderParams{DeltaSeconds: 0.25})

	l.Play()
	assert.True(t, l.Playing())
	l.Render(layer.RenderParams{DeltaSeconds: 0.25})

	assert.Equal(t, []float32{0.5, 0.75, 0.75, 1}, times)
	assert.Equal(t, float32(1), l.Speed())
}

func TestLayerThrottledRebuild(t *testing.T) {
	ctx := gfxtest.NewContext()
	current := stationFeatures(4)
	l := layer.NewLayer("throttled", geometry.KindPoint, func() []*geojson.Feature { return current }, testEffect(),
		layer.WithRebuildInterval(100*time.Millisecond),
	)
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())
	assert.Equal(t, 1, l.Stats().Rebuilds)

	current = stationFeatures(6)
	l.NotifyDataChanged()
	l.NotifyDataChanged()

	// inside the throttle window the notification stays pending
	l.Render(layer.RenderParams{DeltaSeconds: 0.0625})
	assert.Equal(t, 1, l.Stats().Rebuilds)
	assert.Equal(t, 4, l.Stats().FeatureCount)

	// past the window the coalesced notifications trigger one rebuild
	l.Render(layer.RenderParams{DeltaSeconds: 0.0625})
	assert.Equal(t, 2, l.Stats().Rebuilds)
	assert.Equal(t, 6, l.Stats().FeatureCount)

	// nothing further without a new notification
	l.Render(layer.RenderParams{DeltaSeconds: 1})
	assert.Equal(t, 2, l.Stats().Rebuilds)
}

func TestLayerContextLossRestore(t *testing.T) {
	ctx := gfxtest.NewContext()
	var times []float32
	effect := layer.Effect{
		VertexSource:   vertexSrc,
		FragmentSource: fragmentSrc,
		GetUniforms: func(_ common.EffectConfig, time, _ float32) map[string]any {
			times = append(times, time)
			return nil
		},
	}
	l := layer.NewLayer("fragile", geometry.KindPoint, staticSource(stationFeatures(3)), effect,
		layer.WithIDProperty("station"),
	)
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())

	l.Render(layer.RenderParams{DeltaSeconds: 0.5})
	l.PauseFeature("f-1")
	l.Render(layer.RenderParams{DeltaSeconds: 0.25})
	drawsBefore := len(ctx.DrawCalls())

	// frames are skipped while the context is lost, without an error state
	ctx.SetLost(true)
	l.Render(layer.RenderParams{DeltaSeconds: 0.5})
	l.Render(layer.RenderParams{DeltaSeconds: 0.5})
	assert.Len(t, ctx.DrawCalls(), drawsBefore)
	assert.False(t, l.HasError())

	// restoration rebuilds every GPU object from the surviving CPU state
	ctx.SetLost(false)
	l.Render(layer.RenderParams{DeltaSeconds: 0.25})
	assert.Len(t, ctx.DrawCalls(), drawsBefore+1)
	assert.Equal(t, 4, ctx.LiveBuffers())
	assert.True(t, ctx.BufferDeleted(meshInteractionBuffer))
	assert.Equal(t, 1, ctx.LivePrograms())
	assert.True(t, ctx.ProgramDeleted(1))

	// the paused feature's state was patched into the fresh buffer
	pairs := floatsOf(ctx.BufferBytes(8))
	require.Len(t, pairs, 3*4*2)
	assert.Equal(t, float32(1), pairs[0])
	assert.Equal(t, float32(0), pairs[8], "feature 1 still frozen")
	assert.Equal(t, float32(0.5), pairs[9], "at the time captured before the loss")

	// the clock held while frames were skipped
	assert.Equal(t, []float32{0.5, 0.75, 1}, times)
	state, ok := l.FeatureState("f-1")
	require.True(t, ok)
	assert.Equal(t, float32(0.5), state.LocalTime)
}

func TestLayerSetupFailures(t *testing.T) {
	t.Run("shader compile", func(t *testing.T) {
		ctx := gfxtest.NewContext(gfxtest.WithCompileFailure("FAIL_HERE"))
		bad := layer.Effect{
			VertexSource:   "// FAIL_HERE\nvoid main() {}",
			FragmentSource: fragmentSrc,
		}
		l := layer.NewLayer("broken", geometry.KindPoint, staticSource(stationFeatures(2)), bad)
		l.Attach(ctx)
		require.True(t, l.HasError())
		require.Error(t, l.Err())
		assert.Equal(t, 0, l.Stats().Rebuilds)

		// every later render is a guarded no-op
		l.NotifyDataChanged()
		l.Render(layer.RenderParams{DeltaSeconds: 0.016})
		l.Render(layer.RenderParams{DeltaSeconds: 0.016})
		assert.Empty(t, ctx.DrawCalls())
	})

	t.Run("buffer creation", func(t *testing.T) {
		ctx := gfxtest.NewContext(gfxtest.WithBufferCreationFailure())
		l := layer.NewLayer("broken", geometry.KindPoint, staticSource(stationFeatures(2)), testEffect())
		l.Attach(ctx)
		require.True(t, l.HasError())
		assert.ErrorIs(t, l.Err(), gfx.ErrObjectCreation)
		l.Render(layer.RenderParams{DeltaSeconds: 0.016})
		assert.Empty(t, ctx.DrawCalls())
	})

	t.Run("lost at attach", func(t *testing.T) {
		ctx := gfxtest.NewContext()
		ctx.SetLost(true)
		l := layer.NewLayer("broken", geometry.KindPoint, staticSource(stationFeatures(2)), testEffect())
		l.Attach(ctx)
		require.True(t, l.HasError())
		assert.ErrorIs(t, l.Err(), gfx.ErrContextLost)
	})
}

func TestLayerHotSwapShader(t *testing.T) {
	ctx := gfxtest.NewContext(gfxtest.WithCompileFailure("BAD_TOKEN"))
	l := layer.NewLayer("swappable", geometry.KindPoint, staticSource(stationFeatures(2)), testEffect())
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())

	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	require.Len(t, ctx.DrawCalls(), 1)
	assert.Equal(t, gfx.ProgramID(1), ctx.DrawCalls()[0].Program)

	require.True(t, l.ReplaceShader(vertexSrc+"\n// v2", fragmentSrc))
	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	assert.Equal(t, gfx.ProgramID(2), ctx.DrawCalls()[1].Program)
	assert.True(t, ctx.ProgramDeleted(1))

	// a rejected swap keeps the previous program rendering
	assert.False(t, l.ReplaceShader("// BAD_TOKEN\nvoid main() {}", fragmentSrc))
	assert.False(t, l.HasError(), "hot-reload failures never disable the layer")
	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	assert.Equal(t, gfx.ProgramID(2), ctx.DrawCalls()[2].Program)
	assert.Equal(t, 1, ctx.LivePrograms())

	// empty sources and detached layers are rejected outright
	assert.False(t, l.ReplaceShader("", fragmentSrc))
	detached := layer.NewLayer("cold", geometry.KindPoint, staticSource(nil), testEffect())
	assert.False(t, detached.ReplaceShader(vertexSrc, fragmentSrc))
}

func TestLayerConfigMerge(t *testing.T) {
	ctx := gfxtest.NewContext()
	effect := layer.Effect{
		VertexSource:   vertexSrc,
		FragmentSource: fragmentSrc,
		GetUniforms: func(config common.EffectConfig, _, _ float32) map[string]any {
			return map[string]any{
				"u_speed": config.Float("speed", 1),
				"u_color": config.Color("color", common.Color{R: 1, G: 1, B: 1, A: 1}),
			}
		},
	}
	l := layer.NewLayer("configured", geometry.KindPoint, staticSource(stationFeatures(2)), effect,
		layer.WithConfig(common.EffectConfig{"speed": 2.0}),
	)
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())

	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	v, ok := ctx.UniformValue(1, "u_speed")
	require.True(t, ok)
	assert.Equal(t, float32(2), v)

	// a partial patch overwrites only the keys it names
	l.UpdateConfig(common.EffectConfig{"color": "#ff0000"})
	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	v, _ = ctx.UniformValue(1, "u_speed")
	assert.Equal(t, float32(2), v)
	c, ok := ctx.UniformValue(1, "u_color")
	require.True(t, ok)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, c)

	// Config hands out a copy
	cfg := l.Config()
	cfg["speed"] = 99.0
	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	v, _ = ctx.UniformValue(1, "u_speed")
	assert.Equal(t, float32(2), v)
}

func TestLayerViewportCulling(t *testing.T) {
	ctx := gfxtest.NewContext()
	center := geojson.NewFeature(geojson.NewPointGeometry([]float64{0, 0}))
	center.SetProperty("station", "center")
	east := geojson.NewFeature(geojson.NewPointGeometry([]float64{90, 0}))
	east.SetProperty("station", "east")

	l := layer.NewLayer("culled", geometry.KindPoint, staticSource([]*geojson.Feature{center, east}), testEffect(),
		layer.WithIDProperty("station"),
		layer.WithViewportCulling(),
	)
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())
	assert.Equal(t, 2, l.Stats().RecordCount, "no viewport yet, nothing culled")

	viewport := geo.EmptyBounds().Extend(0.4, 0.4).Extend(0.6, 0.6)
	l.NotifyDataChanged()
	l.Render(layer.RenderParams{DeltaSeconds: 0.5, Viewport: viewport})

	assert.Equal(t, 1, l.Stats().FeatureCount)
	assert.Equal(t, 1, l.Stats().RecordCount)
	_, ok := l.FeatureState("center")
	assert.True(t, ok)
	_, ok = l.FeatureState("east")
	assert.False(t, ok, "culled features leave the state snapshot")
}

func TestLayerEmptySource(t *testing.T) {
	ctx := gfxtest.NewContext()
	called := false
	effect := layer.Effect{
		VertexSource:   vertexSrc,
		FragmentSource: fragmentSrc,
		GetUniforms: func(_ common.EffectConfig, _, _ float32) map[string]any {
			called = true
			return nil
		},
	}
	l := layer.NewLayer("empty", geometry.KindPoint, staticSource(nil), effect)
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())

	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	assert.Empty(t, ctx.DrawCalls())
	assert.False(t, called, "no uniforms uploaded for an empty layer")
	assert.Equal(t, 0, l.Stats().FeatureCount)
}

func TestLayerDetachReleasesResources(t *testing.T) {
	ctx := gfxtest.NewContext()
	l := layer.NewLayer("transient", geometry.KindPoint, staticSource(stationFeatures(5)), testEffect())
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())
	assert.True(t, l.Attached())
	assert.Equal(t, 4, ctx.LiveBuffers())
	assert.Equal(t, 1, ctx.LivePrograms())

	l.Detach()
	assert.False(t, l.Attached())
	assert.Equal(t, 0, ctx.LiveBuffers())
	assert.Equal(t, 0, ctx.LivePrograms())

	// rendering or detaching again is harmless
	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	assert.Empty(t, ctx.DrawCalls())
	l.Detach()

	// the layer can be attached again
	l.Attach(ctx)
	require.False(t, l.HasError(), "reattach failed: %v", l.Err())
	assert.Equal(t, 4, ctx.LiveBuffers())
	assert.Equal(t, 1, ctx.LivePrograms())
	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	assert.Len(t, ctx.DrawCalls(), 1)
}

func TestLayerLineAndPolygonKinds(t *testing.T) {
	t.Run("line", func(t *testing.T) {
		ctx := gfxtest.NewContext()
		route := geojson.NewFeature(geojson.NewLineStringGeometry([][]float64{{0, 0}, {10, 0}, {20, 0}}))
		l := layer.NewLayer("routes", geometry.KindLine, staticSource([]*geojson.Feature{route}), testEffect())
		l.Attach(ctx)
		require.False(t, l.HasError(), "attach failed: %v", l.Err())
		assert.Equal(t, geometry.KindLine, l.Kind())

		l.Render(layer.RenderParams{DeltaSeconds: 0.016})
		calls := ctx.DrawCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, 2*6, calls[0].Count, "two segments, one quad each")
	})

	t.Run("polygon", func(t *testing.T) {
		ctx := gfxtest.NewContext()
		zone := geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		}))
		l := layer.NewLayer("zones", geometry.KindPolygon, staticSource([]*geojson.Feature{zone}), testEffect())
		l.Attach(ctx)
		require.False(t, l.HasError(), "attach failed: %v", l.Err())
		assert.Equal(t, geometry.KindPolygon, l.Kind())

		l.Render(layer.RenderParams{DeltaSeconds: 0.016})
		calls := ctx.DrawCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, 6, calls[0].Count, "a quad triangulates into two triangles")
	})
}

func TestLayerFromLoadedDocument(t *testing.T) {
	doc := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "id": "hub-north", "geometry": {"type": "Point", "coordinates": [-122.4, 37.8]}, "properties": {}},
			{"type": "Feature", "id": "hub-south", "geometry": {"type": "Point", "coordinates": [-122.4, 37.7]}, "properties": {}},
			{"type": "Feature", "id": "hub-east", "geometry": {"type": "Point", "coordinates": [-122.3, 37.75]}, "properties": {}}
		]
	}`
	docs := loader.NewLoader(loader.BackendTypeGeoJSON)
	_, err := docs.Parse("hubs", []byte(doc))
	require.NoError(t, err)

	ctx := gfxtest.NewContext()
	l := layer.NewLayer("hubs", geometry.KindPoint, docs.Source("hubs"), testEffect())
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())
	assert.Equal(t, 3, l.Stats().FeatureCount)

	// document ids key the animation states
	l.PauseFeature("hub-south")
	state, ok := l.FeatureState("hub-south")
	require.True(t, ok)
	assert.False(t, state.IsPlaying)

	l.Render(layer.RenderParams{DeltaSeconds: 0.016})
	require.Len(t, ctx.DrawCalls(), 1)
}

func TestLayerShaderTargetOverride(t *testing.T) {
	ctx := gfxtest.NewContext()
	l := layer.NewLayer("webgl2", geometry.KindPoint, staticSource(stationFeatures(2)), testEffect(),
		layer.WithShaderTarget(shader.TargetWebGL2),
	)
	l.Attach(ctx)
	require.False(t, l.HasError(), "attach failed: %v", l.Err())
	assert.Contains(t, ctx.ShaderSourceText(1), "#version 300 es")
	assert.Contains(t, ctx.ShaderSourceText(1), "precision highp float;")
}

func TestLayerConstructorContract(t *testing.T) {
	assert.Panics(t, func() {
		layer.NewLayer("bad", geometry.KindPoint, nil, testEffect())
	})
	assert.Panics(t, func() {
		layer.NewLayer("bad", geometry.KindPoint, staticSource(nil), layer.Effect{})
	})
	assert.Panics(t, func() {
		l := layer.NewLayer("bad", geometry.KindPoint, staticSource(nil), testEffect())
		l.Attach(nil)
	})
}
