package input

// ControllerBuilderOption is a functional option for configuring a Controller via NewController.
type ControllerBuilderOption func(*controller)

// WithViewport sets the initial viewport size.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - ControllerBuilderOption: a function that applies the viewport to a controller
func WithViewport(width, height int) ControllerBuilderOption {
	return func(c *controller) {
		c.width, c.height = width, height
	}
}

// WithDistance sets the initial zoom distance.
//
// Parameters:
//   - d: the distance
//
// Returns:
//   - ControllerBuilderOption: a function that applies the distance to a controller
func WithDistance(d float32) ControllerBuilderOption {
	return func(c *controller) {
		c.distance = d
	}
}

// WithNearFarExtent sets the depth range kept around the zoom distance.
//
// Parameters:
//   - ext: the distance from the near to the far plane
//
// Returns:
//   - ControllerBuilderOption: a function that applies the extent to a controller
func WithNearFarExtent(ext float32) ControllerBuilderOption {
	return func(c *controller) {
		c.extent = ext
	}
}

// WithResizeHook registers a callback run after each accepted resize, typically the backend's
// surface resize.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - ControllerBuilderOption: a function that applies the hook to a controller
func WithResizeHook(fn func(width, height int)) ControllerBuilderOption {
	return func(c *controller) {
		c.onResize = fn
	}
}
