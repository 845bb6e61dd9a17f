package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithLookAt sets the camera's position, target and up vector.
//
// Parameters:
//   - position: the eye position
//   - target: the look-at point
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's orientation
func WithLookAt(position, target, up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position, c.target, c.up = position, target, up
	}
}

// WithPerspective sets the camera's projection parameters.
//
// Parameters:
//   - fov: vertical field of view in radians
//   - aspect: width / height
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection
func WithPerspective(fov, aspect, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov, c.aspect, c.near, c.far = fov, aspect, near, far
	}
}
