package camera

import "github.com/Carmen-Shannon/oxy-maps/engine/geo"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithCenter sets the initial view center from geographic coordinates.
//
// Parameters:
//   - lng: center longitude in degrees
//   - lat: center latitude in degrees
//
// Returns:
//   - CameraControllerOption: functional option to set the center
func WithCenter(lng, lat float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.centerX, cc.centerY = geo.Project(lng, lat)
	}
}

// WithZoom sets the initial zoom level.
//
// Parameters:
//   - zoom: the zoom level (0 shows the whole world in TileSize pixels)
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom
func WithZoom(zoom float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoom = zoom
	}
}

// WithZoomBounds sets the minimum and maximum zoom levels.
//
// Parameters:
//   - min: minimum zoom level
//   - max: maximum zoom level
//
// Returns:
//   - CameraControllerOption: functional option to set zoom bounds
func WithZoomBounds(min, max float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minZoom = min
		cc.maxZoom = max
	}
}

// WithZoomSpeed sets the zoom speed in levels per scroll step.
//
// Parameters:
//   - speed: zoom levels per scroll step
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the keyboard pan step in pixels.
//
// Parameters:
//   - speed: pixels per keyboard pan step
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}
