package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/camera"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
	"github.com/Carmen-Shannon/oxy-maps/engine/layer"
	"github.com/Carmen-Shannon/oxy-maps/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCamera sets a pre-configured camera for the engine to drive.
//
// Parameters:
//   - cam: the camera instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(cam camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.cam = cam
	}
}

// WithContext sets the graphics context layers attach against. The context
// must belong to the window passed via WithWindow and must be current on the
// goroutine that will call Run.
//
// Parameters:
//   - ctx: the graphics context
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithContext(ctx gfx.Context) EngineBuilderOption {
	return func(e *engine) {
		e.ctx = ctx
	}
}

// WithLayer registers a layer at the given z-index key during engine construction.
// Layers are rendered in ascending key order during the render loop.
//
// Parameters:
//   - key: the z-index determining render order (lower renders first)
//   - l: the Layer to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLayer(key int, l layer.Layer) EngineBuilderOption {
	return func(e *engine) {
		e.layers[key] = l
		e.orderedKeys = e.sortKeys()
	}
}

// WithClearColor sets the background color the framebuffer is cleared to
// every frame. Defaults to a dark slate.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClearColor(c common.Color) EngineBuilderOption {
	return func(e *engine) {
		e.clearColor = c
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
