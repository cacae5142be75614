package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
)

// cameraControllerImpl is the single implementation of CameraController.
// Pan methods translate the plane center by pixel offsets at the current
// zoom; zoom methods move the level within its bounds. The center x wraps
// across the antimeridian, center y clamps to the plane.
type cameraControllerImpl struct {
	mu *sync.Mutex

	centerX float64
	centerY float64
	zoom    float64

	minZoom float64
	maxZoom float64

	zoomSpeed float64
	panSpeed  float64

	width  int
	height int

	dragging  bool
	dragLastX float64
	dragLastY float64
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with sensible
// defaults: centered on (0, 0) at zoom 2, zoom bounds [0, 22].
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cx, cy := geo.Project(0, 0)
	cc := &cameraControllerImpl{
		mu:      &sync.Mutex{},
		centerX: cx,
		centerY: cy,
		zoom:    2,

		minZoom: 0,
		maxZoom: 22,

		zoomSpeed: 0.25,
		panSpeed:  80,

		width:  1280,
		height: 720,
	}

	for _, option := range options {
		option(cc)
	}

	cc.clampCenter()
	return cc
}

// worldSize returns the pixel size of the whole mercator plane at a zoom
// level.
func worldSize(zoom float64) float64 {
	return TileSize * math.Pow(2, zoom)
}

// clampCenter wraps the center x across the antimeridian and clamps y to the
// plane. Caller must hold the mutex.
func (cc *cameraControllerImpl) clampCenter() {
	cc.centerX = cc.centerX - math.Floor(cc.centerX)
	cc.centerY = math.Max(0, math.Min(1, cc.centerY))
}

func (cc *cameraControllerImpl) Center() (lng, lat float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return geo.Unproject(cc.centerX, cc.centerY)
}

func (cc *cameraControllerImpl) SetCenter(lng, lat float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.centerX, cc.centerY = geo.Project(lng, lat)
	cc.clampCenter()
}

func (cc *cameraControllerImpl) PlaneCenter() (x, y float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.centerX, cc.centerY
}

func (cc *cameraControllerImpl) SetPlaneCenter(x, y float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.centerX = x
	cc.centerY = y
	cc.clampCenter()
}

func (cc *cameraControllerImpl) Zoom() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoom
}

func (cc *cameraControllerImpl) SetZoom(zoom float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoom = math.Max(cc.minZoom, math.Min(cc.maxZoom, zoom))
}

func (cc *cameraControllerImpl) ZoomBy(delta float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoom = math.Max(cc.minZoom, math.Min(cc.maxZoom, cc.zoom+delta*cc.zoomSpeed))
}

func (cc *cameraControllerImpl) MinZoom() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minZoom
}

func (cc *cameraControllerImpl) MaxZoom() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxZoom
}

func (cc *cameraControllerImpl) ZoomSpeed() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *cameraControllerImpl) PanBy(dx, dy float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.panLocked(dx, dy)
}

// panLocked translates the center by a pixel offset. Caller must hold the
// mutex.
func (cc *cameraControllerImpl) panLocked(dx, dy float64) {
	world := worldSize(cc.zoom)
	cc.centerX += dx / world
	cc.centerY += dy / world
	cc.clampCenter()
}

func (cc *cameraControllerImpl) PanSpeed() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

func (cc *cameraControllerImpl) BeginDrag(x, y float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = true
	cc.dragLastX = x
	cc.dragLastY = y
}

func (cc *cameraControllerImpl) DragTo(x, y float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.dragging {
		return
	}
	// Moving the cursor east drags the map east, which moves the center
	// west: the pan offset is the cursor delta negated.
	cc.panLocked(cc.dragLastX-x, cc.dragLastY-y)
	cc.dragLastX = x
	cc.dragLastY = y
}

func (cc *cameraControllerImpl) EndDrag() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = false
}

func (cc *cameraControllerImpl) Dragging() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dragging
}

func (cc *cameraControllerImpl) SetViewportSize(width, height int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if width > 0 {
		cc.width = width
	}
	if height > 0 {
		cc.height = height
	}
}
