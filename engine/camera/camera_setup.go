package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Planes used when framing a whole scene.
const (
	SceneNear = 1e-4
	SceneFar  = 1e4
)

// InitializeCamera builds a viewer camera for a width x height viewport.
//
// Parameters:
//   - position: the eye position
//   - target: the look-at point
//   - up: the up vector
//   - fov: vertical field of view in radians
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - Camera: the configured camera
func InitializeCamera(position, target, up mgl32.Vec3, fov float32, width, height int, near, far float32) Camera {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return NewCamera(WithLookAt(position, target, up), WithPerspective(fov, aspect, near, far))
}

// InitializeLightCamera builds the camera a shadow-casting light renders depth from.
//
// Parameters:
//   - position: the light position
//   - target: the point the light aims at
//   - up: the up vector
//   - fov: cone angle in radians
//   - aspect: shadow map aspect, 1 for square maps
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - Camera: the configured light camera
func InitializeLightCamera(position, target, up mgl32.Vec3, fov, aspect, near, far float32) Camera {
	return NewCamera(WithLookAt(position, target, up), WithPerspective(fov, aspect, near, far))
}

// InitializeCameraForScene frames the graph's bounding box: the camera sits on +Z from the
// box center at a distance equal to the box's largest dimension.
//
// Parameters:
//   - g: the scene graph, its root bounding box must be computed
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//   - fov: vertical field of view in radians
//
// Returns:
//   - Camera: the configured camera
//   - error: scene.ErrNoBoundingBox if the root has no bounding box
func InitializeCameraForScene(g scene.Graph, width, height int, fov float32) (Camera, error) {
	root := g.Root()
	center, err := root.BoundingBoxCenter()
	if err != nil {
		return nil, fmt.Errorf("frame scene %s: %w", g.Name(), err)
	}
	size, _ := root.BoundingBoxSize()
	maxDim := max(size[0], size[1], size[2])
	position := center.Add(mgl32.Vec3{0, 0, maxDim})
	return InitializeCamera(position, center, mgl32.Vec3{0, 1, 0}, fov, width, height, SceneNear, SceneFar), nil
}
