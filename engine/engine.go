// package engine is the embedded host for map overlay layers: it owns the
// window, the map camera, the graphics context and an ordered set of layers,
// and drives them through one render callback per display frame. Everything
// the layers require of a host (single render thread, non-reentrant event
// delivery, per-frame camera matrix) is provided here; production embedders
// with their own map renderer replace this package and call the layer
// lifecycle hooks directly.
package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/camera"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
	"github.com/Carmen-Shannon/oxy-maps/engine/layer"
	"github.com/Carmen-Shannon/oxy-maps/engine/profiler"
	"github.com/Carmen-Shannon/oxy-maps/engine/window"
)

// engine implements the Engine interface.
// Owns the frame loop and delivers all layer work on one goroutine.
type engine struct {
	window window.Window
	cam    camera.Camera
	ctx    gfx.Context

	layers      map[int]layer.Layer
	orderedKeys []int

	// events queues callbacks posted from other goroutines; the queue drains
	// at the start of each frame, before any layer renders.
	eventMu sync.Mutex
	events  []func()
	pending []func()

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled bool

	updateCallback func(deltaTime float32)
	keyDown        func(keyCode uint32)
	keyUp          func(keyCode uint32)

	clearColor common.Color

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
	matrix           [16]float32
}

// Engine is the main entry point for the embedded host.
// It orchestrates the frame loop, camera input, and layer lifecycle.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the map camera.
	//
	// Returns:
	//   - camera.Camera: the camera instance
	Camera() camera.Camera

	// Context returns the graphics context layers attach against.
	//
	// Returns:
	//   - gfx.Context: the context, nil until WithContext provides one
	Context() gfx.Context

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetUpdateCallback registers the function called once per frame before
	// any layer renders. Use this for application logic that must run on the
	// render thread.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetUpdateCallback(callback func(deltaTime float32))

	// SetKeyDownCallback registers a key press handler. The engine handles
	// its camera bindings (arrow pan, +/- zoom) first and forwards every
	// press to this callback.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback registers a key release handler.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddLayer registers a layer at the given z-index key and attaches it to
	// the graphics context. Layers are rendered in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - l: the Layer to register
	AddLayer(key int, l layer.Layer)

	// RemoveLayer detaches and removes the layer at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the layer to remove
	RemoveLayer(key int)

	// Layer retrieves the layer registered at the given z-index key.
	// Returns nil if no layer exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the layer to retrieve
	//
	// Returns:
	//   - layer.Layer: the layer at the key, or nil if not found
	Layer(key int) layer.Layer

	// Layers returns a copy of all registered layers keyed by z-index.
	//
	// Returns:
	//   - map[int]layer.Layer: a copy of the layers map
	Layers() map[int]layer.Layer

	// Post queues a callback for execution on the render thread before the
	// next frame renders. This is the only safe way for other goroutines
	// (simulations, network feeds, UI threads) to reach layers; delivery
	// never overlaps a render callback.
	//
	// Parameters:
	//   - fn: the callback to run on the render thread
	Post(fn func())

	// Run starts the main frame loop (blocks until window closes). Must be
	// called on the goroutine that created the window, which holds the GL
	// context.
	Run()

	// Quit signals the frame loop to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// A default camera with an unconfigured controller is created when none is
// supplied. Input callbacks for map panning and zooming are wired to the
// window immediately.
//
// Parameters:
//   - options: functional options for engine configuration (window, camera, context, layers)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		layers:           make(map[int]layer.Layer),
		quitChannel:      make(chan struct{}),
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		clearColor:       common.Color{R: 0.07, G: 0.08, B: 0.1, A: 1},
	}

	for _, opt := range options {
		opt(e)
	}

	if e.cam == nil {
		e.cam = camera.NewCamera(
			camera.WithController(camera.NewCameraController()),
		)
	}
	if e.window != nil {
		e.cam.SetViewport(e.window.Width(), e.window.Height())
		e.wireInput()
	}
	e.profiler.SetStatsFunc(e.layerStats)

	// Layers supplied through WithLayer attach once the context exists.
	e.orderedKeys = e.sortKeys()
	for _, key := range e.orderedKeys {
		e.attachLayer(e.layers[key])
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.cam
}

func (e *engine) Context() gfx.Context {
	return e.ctx
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run requires a window")
	}
	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()

	for _, key := range e.orderedKeys {
		e.layers[key].Detach()
	}
}

// Quit signals the frame loop to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// frame runs one complete frame: drain posted events, advance application
// logic, update the camera, clear, render every layer in ascending z order,
// and present. Runs on the window's message loop goroutine.
func (e *engine) frame() {
	select {
	case <-e.quitChannel:
		_ = e.window.Close()
		return
	default:
	}

	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	e.drainEvents()

	if e.updateCallback != nil {
		e.updateCallback(dt)
	}

	e.cam.Update()
	e.matrix = e.cam.ViewProjectionMatrix()

	if e.ctx != nil {
		e.ctx.ClearColor(e.clearColor.R, e.clearColor.G, e.clearColor.B, e.clearColor.A)
		e.ctx.Clear(gfx.ColorBufferBit)

		params := layer.RenderParams{
			Matrix:       e.matrix[:],
			DeltaSeconds: dt,
			Viewport:     e.cam.ViewportBounds(),
		}
		for _, key := range e.orderedKeys {
			e.layers[key].Render(params)
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	e.window.SwapBuffers()

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		elapsed := time.Since(now)
		if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// drainEvents runs every callback posted since the previous frame, in post
// order. The queue swap keeps the lock off the callbacks themselves, so a
// posted callback may post again without deadlocking.
func (e *engine) drainEvents() {
	e.eventMu.Lock()
	e.pending, e.events = e.events, e.pending[:0]
	e.eventMu.Unlock()

	for i, fn := range e.pending {
		fn()
		e.pending[i] = nil
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetUpdateCallback registers the function called once per frame.
func (e *engine) SetUpdateCallback(callback func(deltaTime float32)) {
	e.updateCallback = callback
}

func (e *engine) SetKeyDownCallback(callback func(keyCode uint32)) {
	e.keyDown = callback
}

func (e *engine) SetKeyUpCallback(callback func(keyCode uint32)) {
	e.keyUp = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}

func (e *engine) AddLayer(key int, l layer.Layer) {
	e.layers[key] = l
	e.orderedKeys = e.sortKeys()
	e.attachLayer(l)
}

func (e *engine) RemoveLayer(key int) {
	if l, ok := e.layers[key]; ok {
		l.Detach()
	}
	delete(e.layers, key)
	e.orderedKeys = e.sortKeys()
}

func (e *engine) Layer(key int) layer.Layer {
	return e.layers[key]
}

func (e *engine) Layers() map[int]layer.Layer {
	cp := make(map[int]layer.Layer, len(e.layers))
	for k, v := range e.layers {
		cp[k] = v
	}
	return cp
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.eventMu.Lock()
	e.events = append(e.events, fn)
	e.eventMu.Unlock()
}

// attachLayer attaches l when a context exists and l is not already attached.
func (e *engine) attachLayer(l layer.Layer) {
	if e.ctx == nil || l == nil || l.Attached() {
		return
	}
	l.Attach(e.ctx)
}

func (e *engine) sortKeys() []int {
	keys := make([]int, 0, len(e.layers))
	for k := range e.layers {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// wireInput connects window input to the camera controller: drag panning on
// the primary mouse button, scroll zooming centered on the view, arrow key
// panning and +/- zoom steps. Key events forward to the application callback
// after the camera bindings run.
func (e *engine) wireInput() {
	e.window.SetResizeCallback(func(width, height int) {
		e.cam.SetViewport(width, height)
		if e.ctx != nil {
			e.ctx.Viewport(0, 0, width, height)
		}
	})

	e.window.SetScrollCallback(func(delta float32) {
		if ctrl := e.cam.Controller(); ctrl != nil {
			ctrl.ZoomBy(float64(delta))
		}
	})

	e.window.SetMouseDownCallback(func(x, y int32) {
		if ctrl := e.cam.Controller(); ctrl != nil {
			ctrl.BeginDrag(float64(x), float64(y))
		}
	})

	e.window.SetMouseMoveCallback(func(x, y int32) {
		if ctrl := e.cam.Controller(); ctrl != nil {
			ctrl.DragTo(float64(x), float64(y))
		}
	})

	e.window.SetMouseUpCallback(func(x, y int32) {
		if ctrl := e.cam.Controller(); ctrl != nil {
			ctrl.EndDrag()
		}
	})

	e.window.SetKeyDownCallback(func(keyCode uint32) {
		if ctrl := e.cam.Controller(); ctrl != nil {
			step := ctrl.PanSpeed()
			switch keyCode {
			case common.KeyLeft:
				ctrl.PanBy(-step, 0)
			case common.KeyRight:
				ctrl.PanBy(step, 0)
			case common.KeyUp:
				ctrl.PanBy(0, -step)
			case common.KeyDown:
				ctrl.PanBy(0, step)
			case common.KeyEqual:
				ctrl.ZoomBy(1)
			case common.KeyMinus:
				ctrl.ZoomBy(-1)
			}
		}
		if e.keyDown != nil {
			e.keyDown(keyCode)
		}
	})

	e.window.SetKeyUpCallback(func(keyCode uint32) {
		if e.keyUp != nil {
			e.keyUp(keyCode)
		}
	})
}

// layerStats aggregates layer counters for the profiler report.
func (e *engine) layerStats() []any {
	var features, records, rebuilds int
	var slowest time.Duration
	for _, l := range e.layers {
		s := l.Stats()
		features += s.FeatureCount
		records += s.RecordCount
		rebuilds += s.Rebuilds
		if s.LastRebuild > slowest {
			slowest = s.LastRebuild
		}
	}
	return []any{
		"layers", len(e.layers),
		"features", features,
		"records", records,
		"rebuilds", rebuilds,
		"slowestRebuild", slowest,
	}
}
