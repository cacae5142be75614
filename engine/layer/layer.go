// package layer is the render orchestrator: it implements the host map's
// custom-layer contract on top of the geometry pipelines, the shader
// program, and the per-feature animation state. One layer owns one effect
// over one feature source; the host calls Attach once, Render every display
// frame, and Detach on teardown, always from the render thread.
//
// Failures follow the error taxonomy of the engine: a setup failure
// (pipeline or program creation) disables the layer permanently and is
// logged once, a lost context skips frames until restoration, and data
// errors never surface past the pipelines.
package layer

import (
	"fmt"
	"maps"
	"time"

	geojson "github.com/paulmach/go.geojson"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/animation"
	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
	"github.com/Carmen-Shannon/oxy-maps/engine/geometry"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
	"github.com/Carmen-Shannon/oxy-maps/engine/shader"
)

// DefaultRebuildInterval is the minimum time between data-change rebuilds.
// Notifications arriving faster than this are coalesced into one rebuild.
const DefaultRebuildInterval = 250 * time.Millisecond

// FeatureSource returns the currently relevant feature snapshot. The layer
// queries it at attach time and on every throttled data-change rebuild; the
// returned slice is read, never mutated.
type FeatureSource func() []*geojson.Feature

// Effect is the shader source pair and uniform provider of one visual
// effect, pre-resolved by the effect-definition layer.
type Effect struct {
	// VertexSource is the vertex stage GLSL, before preprocessing.
	VertexSource string
	// FragmentSource is the fragment stage GLSL, before preprocessing.
	FragmentSource string
	// GetUniforms returns the uniform values for one frame. May be nil for
	// effects with no uniforms beyond the camera matrix.
	GetUniforms func(config common.EffectConfig, time, deltaTime float32) map[string]any
}

// RenderParams is what the host hands the layer each frame.
type RenderParams struct {
	// Matrix is the host camera's view-projection matrix, column-major, 16
	// elements. Uploaded as u_matrix when present.
	Matrix []float32
	// DeltaSeconds is the unscaled wall-clock time since the previous
	// frame.
	DeltaSeconds float32
	// Viewport is the visible region on the normalized mercator plane.
	// Read only when viewport culling is enabled.
	Viewport geo.Bounds
}

// Stats is a point-in-time diagnostic snapshot of a layer.
type Stats struct {
	// FeatureCount is the size of the last processed snapshot.
	FeatureCount int
	// RecordCount is the working record count of the last rebuild.
	RecordCount int
	// Instanced is true when the last rebuild selected the instanced path.
	Instanced bool
	// Rebuilds is the number of rebuilds performed since attach.
	Rebuilds int
	// LastRebuild is the wall-clock duration of the most recent rebuild.
	LastRebuild time.Duration
}

// layer is the implementation of the Layer interface.
type layer struct {
	id     string
	kind   geometry.Kind
	source FeatureSource
	effect Effect
	config common.EffectConfig

	idProperty   string
	target       shader.Target
	targetSet    bool
	rebuildEvery float32
	culling      bool

	pipelineOptions []geometry.PipelineBuilderOption
	clockOptions    []animation.ClockBuilderOption

	clock  animation.Clock
	states animation.States

	ctx      gfx.Context
	caps     gfx.Capabilities
	strategy gfx.Instancing
	pipeline geometry.Pipeline
	program  shader.Program
	defines  map[string]string

	attached       bool
	err            error
	contextLost    bool
	rebuildPending bool
	sinceRebuild   float32
	viewport       geo.Bounds
	visible        []*geojson.Feature

	rebuilds    int
	lastRebuild time.Duration
}

// Layer is one animated overlay, driven by the host map through the
// custom-layer lifecycle. All methods must be called from the render
// thread; event-handler calls (data notifications, interaction controls)
// rely on the host's non-reentrant delivery.
type Layer interface {
	// ID returns the layer's identifier, used in logs and by the host's
	// layer registry.
	//
	// Returns:
	//   - string: the layer id
	ID() string

	// Kind reports the geometry specialization the layer renders.
	//
	// Returns:
	//   - geometry.Kind: the geometry kind
	Kind() geometry.Kind

	// Attach is the host's add hook. It probes the context once, selects
	// the instancing strategy, creates the pipeline, performs the initial
	// rebuild and compiles the effect program. Failures are stored, logged
	// once, and turn every Render into a guarded no-op.
	//
	// Panics when ctx is nil. Attaching an attached layer is ignored.
	//
	// Parameters:
	//   - ctx: the graphics context the host created for this layer
	Attach(ctx gfx.Context)

	// Render is the host's per-frame hook: advance the clock, run a
	// pending throttled rebuild, patch stale interaction data, upload
	// uniforms and draw. While the context is lost frames are skipped;
	// on restoration every GPU resource is recreated from the CPU-side
	// records before drawing resumes.
	//
	// Parameters:
	//   - params: the frame's camera matrix, delta and viewport
	Render(params RenderParams)

	// Detach is the host's remove hook. It releases the pipeline's GPU
	// objects and pooled records and the program. The layer may be
	// attached again afterwards.
	Detach()

	// Attached reports whether the layer is between Attach and Detach.
	//
	// Returns:
	//   - bool: true while attached
	Attached() bool

	// HasError reports whether a setup failure disabled the layer.
	//
	// Returns:
	//   - bool: true when the layer is permanently errored
	HasError() bool

	// Err returns the stored setup failure.
	//
	// Returns:
	//   - error: the failure, nil while healthy
	Err() error

	// NotifyDataChanged marks the feature source stale. The next Render
	// past the throttle interval queries a fresh snapshot and rebuilds;
	// notifications arriving faster are coalesced.
	NotifyDataChanged()

	// Play resumes the layer clock.
	Play()

	// Pause freezes the layer clock; per-feature state is untouched.
	Pause()

	// Playing reports whether the layer clock advances.
	//
	// Returns:
	//   - bool: true when running
	Playing() bool

	// SetSpeed sets the layer clock's time multiplier. Negative values
	// clamp to zero.
	//
	// Parameters:
	//   - speed: the multiplier, 1 is real time
	SetSpeed(speed float32)

	// Speed returns the layer clock's time multiplier.
	//
	// Returns:
	//   - float32: the multiplier
	Speed() float32

	// UpdateConfig merges a partial configuration patch into the layer's
	// effect configuration. The merged values reach the effect's uniform
	// provider on the next frame.
	//
	// Parameters:
	//   - patch: the keys to overwrite
	UpdateConfig(patch common.EffectConfig)

	// Config returns a copy of the layer's current effect configuration.
	//
	// Returns:
	//   - common.EffectConfig: the configuration snapshot
	Config() common.EffectConfig

	// ReplaceShader hot-swaps the effect's shader source at runtime. The
	// replacement compiles and links first; on failure the previous
	// program keeps rendering and false is returned. Detached or errored
	// layers reject the swap.
	//
	// Parameters:
	//   - vertexSource: the new vertex stage GLSL, before preprocessing
	//   - fragmentSource: the new fragment stage GLSL, before preprocessing
	//
	// Returns:
	//   - bool: true when the swap succeeded
	ReplaceShader(vertexSource, fragmentSource string) bool

	// PlayFeature resumes one feature's animation.
	//
	// Parameters:
	//   - id: the feature identity
	PlayFeature(id string)

	// PauseFeature freezes one feature's animation at the current global
	// time.
	//
	// Parameters:
	//   - id: the feature identity
	PauseFeature(id string)

	// ToggleFeature flips one feature between playing and paused.
	//
	// Parameters:
	//   - id: the feature identity
	ToggleFeature(id string)

	// ResetFeature returns one feature to local time zero with a zero
	// play count, keeping its play state.
	//
	// Parameters:
	//   - id: the feature identity
	ResetFeature(id string)

	// PlayAllFeatures resumes every feature's animation.
	PlayAllFeatures()

	// PauseAllFeatures freezes every feature's animation at the current
	// global time.
	PauseAllFeatures()

	// ResetAllFeatures returns every feature to local time zero.
	ResetAllFeatures()

	// FeatureState returns a snapshot of one feature's animation state.
	//
	// Parameters:
	//   - id: the feature identity
	//
	// Returns:
	//   - animation.State: the state copy, zero when untracked
	//   - bool: false when the feature is untracked
	FeatureState(id string) (animation.State, bool)

	// Stats returns the layer's diagnostic counters.
	//
	// Returns:
	//   - Stats: the current snapshot
	Stats() Stats
}

var _ Layer = &layer{}

// NewLayer builds a layer over one feature source and one effect. The
// graphics context arrives later through Attach, matching the host
// custom-layer contract.
//
// Panics when source is nil or either shader source is empty.
//
// Parameters:
//   - id: the layer identifier
//   - kind: the geometry specialization to render
//   - source: the feature snapshot query
//   - effect: the effect's shader sources and uniform provider
//   - options: optional LayerBuilderOption functions
//
// Returns:
//   - Layer: the layer, ready to attach
func NewLayer(id string, kind geometry.Kind, source FeatureSource, effect Effect, options ...LayerBuilderOption) Layer {
	if source == nil {
		panic("layer: NewLayer requires a non-nil feature source")
	}
	if effect.VertexSource == "" || effect.FragmentSource == "" {
		panic("layer: NewLayer requires vertex and fragment shader source")
	}

	l := &layer{
		id:           id,
		kind:         kind,
		source:       source,
		effect:       effect,
		config:       common.EffectConfig{},
		rebuildEvery: float32(DefaultRebuildInterval.Seconds()),
		viewport:     geo.EmptyBounds(),
	}
	for _, opt := range options {
		opt(l)
	}

	l.clock = animation.NewClock(l.clockOptions...)
	l.states = animation.NewStates(animation.WithIDProperty(l.idProperty))
	return l
}

func (l *layer) ID() string {
	return l.id
}

func (l *layer) Kind() geometry.Kind {
	return l.kind
}

func (l *layer) Attach(ctx gfx.Context) {
	if ctx == nil {
		panic("layer: Attach requires a non-nil graphics context")
	}
	if l.attached {
		common.Logger().Warn("layer already attached", "layer", l.id)
		return
	}

	l.ctx = ctx
	l.err = nil
	l.contextLost = false
	l.attached = true
	l.rebuilds = 0
	l.lastRebuild = 0
	l.viewport = geo.EmptyBounds()

	if ctx.IsLost() {
		l.fail(fmt.Errorf("layer %q: attach: %w", l.id, gfx.ErrContextLost))
		return
	}

	l.caps = gfx.Probe(ctx)
	l.strategy = gfx.SelectInstancing(ctx, l.caps)
	if !l.targetSet {
		if l.caps.Generation == gfx.GenerationLimited {
			l.target = shader.TargetWebGL1
		} else {
			l.target = shader.TargetDesktop
		}
	}
	common.Logger().Debug("layer attached",
		"layer", l.id,
		"kind", l.kind,
		"generation", l.caps.Generation,
		"instancing", l.strategy.Supported(),
		"target", l.target,
	)

	p, err := l.newPipeline()
	if err != nil {
		l.fail(fmt.Errorf("layer %q: create pipeline: %w", l.id, err))
		return
	}
	l.pipeline = p
	l.rebuild()
}

func (l *layer) Render(params RenderParams) {
	if l.err != nil || !l.attached {
		return
	}
	if l.ctx.IsLost() {
		l.contextLost = true
		return
	}
	if l.contextLost {
		l.contextLost = false
		l.restore()
		if l.err != nil {
			return
		}
	}

	l.viewport = params.Viewport
	l.sinceRebuild += params.DeltaSeconds
	if l.rebuildPending && l.sinceRebuild >= l.rebuildEvery {
		l.rebuild()
		if l.err != nil {
			return
		}
	}

	l.clock.Advance(params.DeltaSeconds)
	l.states.Tick(l.clock.Time(), l.clock.Delta())
	if l.states.IsDirty() {
		if l.pipeline.RecordCount() > 0 {
			l.pipeline.PatchInteraction(l.states.GenerateBufferData(1))
		}
		l.states.ClearDirty()
	}

	if l.pipeline.RecordCount() == 0 {
		return
	}

	l.ctx.Enable(gfx.Blend)
	l.ctx.BlendFunc(gfx.BlendSrcAlpha, gfx.BlendOneMinusSrcAlpha)

	l.program.Use()
	if len(params.Matrix) == 16 {
		l.program.SetUniform("u_matrix", params.Matrix)
	}
	if l.effect.GetUniforms != nil {
		l.program.SetUniforms(l.effect.GetUniforms(l.config, l.clock.Time(), l.clock.Delta()))
	}

	if err := l.pipeline.Draw(); err != nil {
		l.fail(fmt.Errorf("layer %q: draw: %w", l.id, err))
	}
}

func (l *layer) Detach() {
	if !l.attached {
		return
	}
	if l.pipeline != nil {
		l.pipeline.Release()
		l.pipeline = nil
	}
	if l.program != nil {
		l.program.Release()
		l.program = nil
	}
	l.defines = nil
	l.ctx = nil
	l.attached = false
	l.contextLost = false
}

func (l *layer) Attached() bool {
	return l.attached
}

func (l *layer) HasError() bool {
	return l.err != nil
}

func (l *layer) Err() error {
	return l.err
}

func (l *layer) NotifyDataChanged() {
	l.rebuildPending = true
}

func (l *layer) Play() {
	l.clock.Resume()
}

func (l *layer) Pause() {
	l.clock.Pause()
}

func (l *layer) Playing() bool {
	return l.clock.Playing()
}

func (l *layer) SetSpeed(speed float32) {
	l.clock.SetSpeed(speed)
}

func (l *layer) Speed() float32 {
	return l.clock.Speed()
}

func (l *layer) UpdateConfig(patch common.EffectConfig) {
	l.config = l.config.Merge(patch)
}

func (l *layer) Config() common.EffectConfig {
	return l.config.Clone()
}

func (l *layer) ReplaceShader(vertexSource, fragmentSource string) bool {
	if vertexSource == "" || fragmentSource == "" {
		return false
	}
	if l.err != nil || !l.attached {
		return false
	}
	if err := l.program.Replace(vertexSource, fragmentSource); err != nil {
		common.Logger().Warn("shader replacement rejected", "layer", l.id, "error", err)
		return false
	}
	l.effect.VertexSource = vertexSource
	l.effect.FragmentSource = fragmentSource
	return true
}

func (l *layer) PlayFeature(id string) {
	l.states.Play(id)
}

func (l *layer) PauseFeature(id string) {
	l.states.Pause(id)
}

func (l *layer) ToggleFeature(id string) {
	l.states.Toggle(id)
}

func (l *layer) ResetFeature(id string) {
	l.states.Reset(id)
}

func (l *layer) PlayAllFeatures() {
	l.states.PlayAll()
}

func (l *layer) PauseAllFeatures() {
	l.states.PauseAll()
}

func (l *layer) ResetAllFeatures() {
	l.states.ResetAll()
}

func (l *layer) FeatureState(id string) (animation.State, bool) {
	return l.states.Get(id)
}

func (l *layer) Stats() Stats {
	s := Stats{
		Rebuilds:    l.rebuilds,
		LastRebuild: l.lastRebuild,
	}
	if l.pipeline != nil {
		s.FeatureCount = l.pipeline.FeatureCount()
		s.RecordCount = l.pipeline.RecordCount()
		s.Instanced = l.pipeline.Instanced()
	}
	return s
}

func (l *layer) newPipeline() (geometry.Pipeline, error) {
	switch l.kind {
	case geometry.KindLine:
		return geometry.NewLinePipeline(l.ctx, l.pipelineOptions...)
	case geometry.KindPolygon:
		return geometry.NewPolygonPipeline(l.ctx, l.pipelineOptions...)
	default:
		return geometry.NewPointPipeline(l.ctx, l.strategy, l.pipelineOptions...)
	}
}

// rebuild queries a fresh snapshot and runs the full two-phase rebuild,
// then makes sure the program matches the selected path.
func (l *layer) rebuild() {
	start := time.Now()

	features := l.snapshot()
	l.pipeline.ProcessFeatures(features)
	l.states.InitializeFromFeatures(features)
	if err := l.pipeline.BuildBuffers(); err != nil {
		l.fail(fmt.Errorf("layer %q: build buffers: %w", l.id, err))
		return
	}
	l.ensureProgram()
	if l.err != nil {
		return
	}

	l.rebuildPending = false
	l.sinceRebuild = 0
	l.rebuilds++
	l.lastRebuild = time.Since(start)
	common.Logger().Debug("layer rebuilt",
		"layer", l.id,
		"features", l.pipeline.FeatureCount(),
		"records", l.pipeline.RecordCount(),
		"instanced", l.pipeline.Instanced(),
		"took", l.lastRebuild,
	)
}

// snapshot queries the source, dropping features outside the viewport when
// culling is enabled. Culling uses the most recent viewport the host
// rendered with.
func (l *layer) snapshot() []*geojson.Feature {
	features := l.source()
	if !l.culling || l.viewport.IsEmpty() {
		return features
	}
	l.visible = l.visible[:0]
	for _, f := range features {
		if geo.FeatureBounds(f).Intersects(l.viewport) {
			l.visible = append(l.visible, f)
		}
	}
	return l.visible
}

// ensureProgram compiles the effect against the pipeline's current defines.
// An existing program is kept when the defines are unchanged; a path switch
// recompiles and only then releases the old program.
func (l *layer) ensureProgram() {
	defines := l.pipeline.Defines()
	if l.program != nil && maps.Equal(defines, l.defines) {
		return
	}
	next, err := shader.NewProgram(l.ctx, l.effect.VertexSource, l.effect.FragmentSource,
		shader.WithAttribBindings(l.pipeline.AttribBindings()),
		shader.WithPreprocessor(l.target, defines),
	)
	if err != nil {
		l.fail(fmt.Errorf("layer %q: compile effect: %w", l.id, err))
		return
	}
	if l.program != nil {
		l.program.Release()
	}
	l.program = next
	l.defines = defines
}

// restore recreates every GPU resource after a context loss. CPU records
// and animation state survive the loss; the interaction buffer is marked
// stale so the authoritative state is patched back in before drawing.
func (l *layer) restore() {
	common.Logger().Debug("context restored, recreating GPU resources", "layer", l.id)
	if l.program != nil {
		l.program.Release()
		l.program = nil
	}
	l.defines = nil
	if err := l.pipeline.Recreate(); err != nil {
		l.fail(fmt.Errorf("layer %q: recreate buffers: %w", l.id, err))
		return
	}
	l.ensureProgram()
	if l.err != nil {
		return
	}
	l.states.MarkDirty()
}

// fail stores the first setup failure and logs it once. Every later Render
// checks the stored error before touching the context.
func (l *layer) fail(err error) {
	if l.err != nil {
		return
	}
	l.err = err
	common.Logger().Error("layer disabled", "layer", l.id, "error", err)
}
