package layer

import (
	"time"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/animation"
	"github.com/Carmen-Shannon/oxy-maps/engine/geometry"
	"github.com/Carmen-Shannon/oxy-maps/engine/shader"
)

// LayerBuilderOption is a functional option for configuring a Layer.
// Use the With* functions to create options.
type LayerBuilderOption func(*layer)

// WithConfig sets the layer's initial effect configuration. The layer keeps
// its own copy; later UpdateConfig patches merge into it.
//
// Parameters:
//   - config: the initial configuration values
//
// Returns:
//   - LayerBuilderOption: option function to apply
func WithConfig(config common.EffectConfig) LayerBuilderOption {
	return func(l *layer) {
		l.config = config.Clone()
	}
}

// WithIDProperty sets the feature property consulted first when resolving
// feature identities for interaction controls. Features without the
// property fall back to their GeoJSON id, then to their positional index.
//
// Parameters:
//   - name: the property name
//
// Returns:
//   - LayerBuilderOption: option function to apply
func WithIDProperty(name string) LayerBuilderOption {
	return func(l *layer) {
		l.idProperty = name
	}
}

// WithShaderTarget overrides the GLSL dialect header the effect sources are
// preprocessed for. Without it the layer picks a target from the probed
// context generation at attach time.
//
// Parameters:
//   - target: the dialect to emit a header for
//
// Returns:
//   - LayerBuilderOption: option function to apply
func WithShaderTarget(target shader.Target) LayerBuilderOption {
	return func(l *layer) {
		l.target = target
		l.targetSet = true
	}
}

// WithRebuildInterval sets the minimum time between data-change rebuilds.
// Defaults to DefaultRebuildInterval; non-positive values rebuild on the
// first frame after every notification.
//
// Parameters:
//   - interval: the minimum rebuild spacing
//
// Returns:
//   - LayerBuilderOption: option function to apply
func WithRebuildInterval(interval time.Duration) LayerBuilderOption {
	return func(l *layer) {
		if interval < 0 {
			interval = 0
		}
		l.rebuildEvery = float32(interval.Seconds())
	}
}

// WithViewportCulling drops features whose projected bounds miss the
// viewport during rebuilds. Off by default; hosts enabling it must deliver
// data-change notifications on viewport moves, or features culled at one
// viewport stay absent at the next.
//
// Returns:
//   - LayerBuilderOption: option function to apply
func WithViewportCulling() LayerBuilderOption {
	return func(l *layer) {
		l.culling = true
	}
}

// WithPipelineOptions forwards options to the layer's geometry pipeline,
// such as geometry.WithInstancingThreshold or geometry.WithStyle.
//
// Parameters:
//   - options: the pipeline options to apply at attach time
//
// Returns:
//   - LayerBuilderOption: option function to apply
func WithPipelineOptions(options ...geometry.PipelineBuilderOption) LayerBuilderOption {
	return func(l *layer) {
		l.pipelineOptions = append(l.pipelineOptions, options...)
	}
}

// WithSpeed sets the layer clock's initial time multiplier.
//
// Parameters:
//   - speed: the multiplier, 1 is real time
//
// Returns:
//   - LayerBuilderOption: option function to apply
func WithSpeed(speed float32) LayerBuilderOption {
	return func(l *layer) {
		l.clockOptions = append(l.clockOptions, animation.WithSpeed(speed))
	}
}

// WithPaused starts the layer clock frozen; Play resumes it.
//
// Returns:
//   - LayerBuilderOption: option function to apply
func WithPaused() LayerBuilderOption {
	return func(l *layer) {
		l.clockOptions = append(l.clockOptions, animation.WithPaused())
	}
}
