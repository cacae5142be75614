package camera

type CameraBuilderOption func(*cameraImpl)

// WithViewport sets the initial framebuffer size in pixels.
//
// Parameters:
//   - width, height: framebuffer size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.width = width
			c.height = height
		}
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its matrix from the
// controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
