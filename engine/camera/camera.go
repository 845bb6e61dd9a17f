package camera

import (
	"sync"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
}

// Camera defines the interface for a perspective camera.
// The view matrix always matches LookAt(position, target, up). Guarded setters skip the
// recomputation when nothing changed, compared exactly.
type Camera interface {
	// LookAt sets position, target and up and recomputes the view matrix unconditionally.
	//
	// Parameters:
	//   - position: the eye position
	//   - target: the look-at point
	//   - up: the up vector
	LookAt(position, target, up mgl32.Vec3)

	// UpdatePosition moves the eye. No-op when position equals the current one.
	//
	// Parameters:
	//   - position: the eye position
	UpdatePosition(position mgl32.Vec3)

	// UpdateTarget moves the look-at point. No-op when target equals the current one.
	//
	// Parameters:
	//   - target: the look-at point
	UpdateTarget(target mgl32.Vec3)

	// UpdatePosAndTarget moves both eye and look-at point. No-op when both are unchanged.
	//
	// Parameters:
	//   - position: the eye position
	//   - target: the look-at point
	UpdatePosAndTarget(position, target mgl32.Vec3)

	// SetPerspective stores the projection parameters and recomputes the projection matrix.
	//
	// Parameters:
	//   - fov: vertical field of view in radians
	//   - aspect: width / height
	//   - near: near clipping plane distance
	//   - far: far clipping plane distance
	SetPerspective(fov, aspect, near, far float32)

	// Position returns the eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// Up returns the up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Direction returns normalize(target - position).
	//
	// Returns:
	//   - mgl32.Vec3: the viewing direction
	Direction() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// MVP returns projection * view * model.
	//
	// Parameters:
	//   - model: the model (world) matrix
	//
	// Returns:
	//   - mgl32.Mat4: the model-view-projection matrix
	MVP(model mgl32.Mat4) mgl32.Mat4

	// ModelViewMatrix returns view * model.
	//
	// Parameters:
	//   - model: the model (world) matrix
	//
	// Returns:
	//   - mgl32.Mat4: the model-view matrix
	ModelViewMatrix(model mgl32.Mat4) mgl32.Mat4

	// FrustumTransformationMatrix returns inverse(view) * inverse(projection). It maps the
	// [-1, 1] clip cube onto the camera's view volume in world space.
	//
	// Returns:
	//   - mgl32.Mat4: the frustum transformation
	FrustumTransformationMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at (0, 0, 1) looking at the origin with a 45 degree
// perspective. Options override any of these.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 0, 1},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      common.DegToRad(45),
		aspect:   1.0,
		near:     0.1,
		far:      100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateView()
	c.updateProjection()
	return c
}

func (c *cameraImpl) LookAt(position, target, up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position, c.target, c.up = position, target, up
	c.updateView()
}

func (c *cameraImpl) UpdatePosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if common.Vec3Equal(c.position, position) {
		return
	}
	c.position = position
	c.updateView()
}

func (c *cameraImpl) UpdateTarget(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if common.Vec3Equal(c.target, target) {
		return
	}
	c.target = target
	c.updateView()
}

func (c *cameraImpl) UpdatePosAndTarget(position, target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if common.Vec3Equal(c.position, position) && common.Vec3Equal(c.target, target) {
		return
	}
	c.position, c.target = position, target
	c.updateView()
}

func (c *cameraImpl) SetPerspective(fov, aspect, near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov, c.aspect, c.near, c.far = fov, aspect, near, far
	c.updateProjection()
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Direction() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target.Sub(c.position).Normalize()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix.Mul4(c.viewMatrix)
}

func (c *cameraImpl) MVP(model mgl32.Mat4) mgl32.Mat4 {
	return c.ViewProjectionMatrix().Mul4(model)
}

func (c *cameraImpl) ModelViewMatrix(model mgl32.Mat4) mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix.Mul4(model)
}

func (c *cameraImpl) FrustumTransformationMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix.Inv().Mul4(c.projectionMatrix.Inv())
}

// updateView recalculates the view matrix. Caller must hold the mutex.
func (c *cameraImpl) updateView() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)
}

// updateProjection recalculates the projection matrix. Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}
