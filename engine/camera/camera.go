// package camera computes the view-projection matrix and viewport bounds of
// a 2D map view. The camera reads center and zoom from an attached
// CameraController and projects a window of the normalized mercator plane
// onto the framebuffer; the resulting matrix is what the host hands every
// layer as u_matrix, and the bounds drive viewport culling.
package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
)

// TileSize is the pixel size of one mercator tile at integer zoom levels.
// The world is TileSize * 2^zoom pixels wide, the usual web map convention.
const TileSize = 512

type cameraImpl struct {
	mu *sync.Mutex

	width  int
	height int

	viewProjectionMatrix [16]float32
	bounds               geo.Bounds

	controller CameraController
}

// Camera is the 2D map view. It holds the framebuffer size and computes
// matrices from an attached CameraController each frame via Update().
type Camera interface {
	// Width returns the viewport width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the viewport height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// WorldSize returns the current size of the whole mercator plane in
	// pixels (TileSize * 2^zoom). Screen-space effects divide pixel sizes by
	// it to get plane units.
	//
	// Returns:
	//   - float64: world size in pixels
	WorldSize() float64

	// ViewProjectionMatrix returns the current plane-to-clip matrix as 16
	// floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view-projection matrix
	ViewProjectionMatrix() [16]float32

	// ViewportBounds returns the plane region the viewport currently shows,
	// for feature culling.
	//
	// Returns:
	//   - geo.Bounds: the visible plane region
	ViewportBounds() geo.Bounds

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update reads center/zoom from the controller and recomputes the matrix
	// and bounds. Should be called once per frame before rendering layers.
	// If no controller is attached, this method does nothing.
	Update()

	// SetViewport sets the framebuffer size in pixels and recomputes the
	// matrix. Wire this to the window's resize callback.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	SetViewport(width, height int)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default viewport settings. A controller
// must be attached via SetController or WithController option before the
// matrix carries real data.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		width:                1280,
		height:               720,
		viewProjectionMatrix: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		bounds:               geo.EmptyBounds(),
	}
	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.controller.SetViewportSize(c.width, c.height)
		c.updateMatrices()
	}
	return c
}

func (c *cameraImpl) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

func (c *cameraImpl) Height() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

func (c *cameraImpl) WorldSize() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return TileSize
	}
	return worldSize(c.controller.Zoom())
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) ViewportBounds() geo.Bounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounds
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
	if c.controller != nil {
		c.controller.SetViewportSize(width, height)
		c.updateMatrices()
	}
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	if ctrl != nil {
		ctrl.SetViewportSize(c.width, c.height)
		c.updateMatrices()
	}
}

// updateMatrices recomputes the view-projection matrix and viewport bounds
// from the controller's center and zoom. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	cx, cy := c.controller.PlaneCenter()
	world := worldSize(c.controller.Zoom())

	halfW := float64(c.width) / (2 * world)
	halfH := float64(c.height) / (2 * world)

	// The plane's y axis grows southward; flipping bottom/top keeps
	// north up on screen.
	common.Ortho(c.viewProjectionMatrix[:],
		float32(cx-halfW), float32(cx+halfW),
		float32(cy+halfH), float32(cy-halfH),
	)

	c.bounds = geo.Bounds{
		MinX: cx - halfW, MinY: cy - halfH,
		MaxX: cx + halfW, MaxY: cy + halfH,
	}
}
