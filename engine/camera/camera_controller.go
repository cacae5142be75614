package camera

// CameraController owns the positional state of a map view: the center on
// the normalized mercator plane and the zoom level. The Camera reads from
// the controller and computes the matrix; input handlers (drag pan, scroll
// zoom, keyboard steps) mutate the controller.
type CameraController interface {
	// Center returns the view center as geographic coordinates.
	//
	// Returns:
	//   - lng, lat: center longitude and latitude in degrees
	Center() (lng, lat float64)

	// SetCenter sets the view center from geographic coordinates.
	//
	// Parameters:
	//   - lng, lat: center longitude and latitude in degrees
	SetCenter(lng, lat float64)

	// PlaneCenter returns the view center on the normalized mercator plane.
	//
	// Returns:
	//   - x, y: plane coordinates in [0, 1]
	PlaneCenter() (x, y float64)

	// SetPlaneCenter sets the view center directly in plane coordinates.
	//
	// Parameters:
	//   - x, y: plane coordinates
	SetPlaneCenter(x, y float64)

	// Zoom returns the current zoom level.
	//
	// Returns:
	//   - float64: the zoom level
	Zoom() float64

	// SetZoom sets the zoom level directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - zoom: the new zoom level
	SetZoom(zoom float64)

	// ZoomBy adjusts the zoom level by delta steps scaled by ZoomSpeed,
	// clamped to the zoom bounds. Positive delta zooms in. Wire this to the
	// scroll callback.
	//
	// Parameters:
	//   - delta: zoom amount in scroll steps
	ZoomBy(delta float64)

	// MinZoom returns the minimum allowed zoom level.
	//
	// Returns:
	//   - float64: minimum zoom
	MinZoom() float64

	// MaxZoom returns the maximum allowed zoom level.
	//
	// Returns:
	//   - float64: maximum zoom
	MaxZoom() float64

	// ZoomSpeed returns the zoom speed in levels per scroll step.
	//
	// Returns:
	//   - float64: zoom levels per step
	ZoomSpeed() float64

	// PanBy translates the center by a screen-pixel offset at the current
	// zoom. Positive dx moves the view east, positive dy moves it south.
	//
	// Parameters:
	//   - dx, dy: pan offset in pixels
	PanBy(dx, dy float64)

	// PanSpeed returns the keyboard pan step in pixels.
	//
	// Returns:
	//   - float64: pixels per keyboard pan step
	PanSpeed() float64

	// BeginDrag starts a mouse drag pan at the given cursor position. Wire
	// this to the primary mouse button press.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	BeginDrag(x, y float64)

	// DragTo pans the view so the plane point grabbed at BeginDrag stays
	// under the cursor. No-op unless a drag is active.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	DragTo(x, y float64)

	// EndDrag finishes the active drag pan.
	EndDrag()

	// Dragging reports whether a drag pan is active.
	//
	// Returns:
	//   - bool: true between BeginDrag and EndDrag
	Dragging() bool

	// SetViewportSize tells the controller the framebuffer size. The camera
	// forwards resize events here; drags use it to convert pixels to plane
	// units.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	SetViewportSize(width, height int)
}
