// Package input turns pointer and window events into scene rotation and camera clip changes.
// A Controller is not safe for concurrent use and is driven from the frame goroutine.
package input

import (
	"github.com/Carmen-Shannon/sunlit/engine/camera"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DragSensitivity is radians of rotation per full viewport width or height dragged.
	DragSensitivity = 5
	// CtrlDragZoom scales vertical ctrl-drag pixels into zoom units.
	CtrlDragZoom = 5
	// WheelZoom scales wheel pixels into zoom units.
	WheelZoom = 0.3
	// MinNear is the smallest near plane a zoom can produce.
	MinNear = 1e-4
)

// dragMode is what the current drag does.
type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragZoom
)

// controller is the implementation of the Controller interface.
type controller struct {
	graph    scene.Graph
	camera   camera.Camera
	width    int
	height   int
	distance float32
	extent   float32
	mode     dragMode
	lastX    float64
	lastY    float64
	onResize func(width, height int)
}

// Controller maps user input onto the scene and camera.
//
// Dragging rotates the graph root. Ctrl-dragging and the wheel change the zoom distance, which
// moves the near and far planes around that distance while the camera itself stays put.
type Controller interface {
	// MouseDown starts a drag at (x, y).
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	//   - ctrl: true to zoom instead of rotate
	MouseDown(x, y float64, ctrl bool)

	// MouseUp ends the current drag. Leaving the window ends it too.
	MouseUp()

	// MouseMove continues the current drag, if any.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	MouseMove(x, y float64)

	// Scroll zooms by a wheel delta in pixels. Positive values zoom out.
	//
	// Parameters:
	//   - deltaY: the wheel delta
	Scroll(deltaY float64)

	// Zoom scales the distance by delta/height + 1 and recomputes the projection.
	//
	// Parameters:
	//   - delta: the zoom amount in pixels
	Zoom(delta float32)

	// Resize records a new viewport and recomputes the projection aspect.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	Resize(width, height int)

	// Distance retrieves the zoom distance.
	//
	// Returns:
	//   - float32: the distance
	Distance() float32

	// Viewport retrieves the viewport size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Viewport() (int, int)

	// Dragging reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true while the mouse is held
	Dragging() bool
}

var _ Controller = &controller{}

// NewController creates a Controller for a graph and camera and applies the initial projection.
//
// Parameters:
//   - graph: the graph whose root is rotated by drags
//   - cam: the camera whose projection follows zoom and resize
//   - options: variadic list of ControllerBuilderOption functions
//
// Returns:
//   - Controller: the controller
func NewController(graph scene.Graph, cam camera.Camera, options ...ControllerBuilderOption) Controller {
	c := &controller{
		graph:    graph,
		camera:   cam,
		width:    800,
		height:   600,
		distance: 5,
		extent:   34.8,
	}
	for _, opt := range options {
		opt(c)
	}
	c.updateProjection()
	return c
}

func (c *controller) MouseDown(x, y float64, ctrl bool) {
	c.lastX, c.lastY = x, y
	c.mode = dragRotate
	if ctrl {
		c.mode = dragZoom
	}
}

func (c *controller) MouseUp() {
	c.mode = dragNone
}

func (c *controller) MouseMove(x, y float64) {
	dx, dy := x-c.lastX, y-c.lastY
	switch c.mode {
	case dragZoom:
		c.lastY = y
		c.Zoom(float32(CtrlDragZoom * dy))
	case dragRotate:
		c.lastX, c.lastY = x, y
		rotY := float32(dx) / float32(max(c.width, 1)) * DragSensitivity
		rotX := float32(dy) / float32(max(c.height, 1)) * DragSensitivity
		c.graph.Root().ApplyTransformation(mgl32.HomogRotate3DX(rotX).Mul4(mgl32.HomogRotate3DY(rotY)))
	}
}

func (c *controller) Scroll(deltaY float64) {
	c.Zoom(float32(WheelZoom * deltaY))
}

func (c *controller) Zoom(delta float32) {
	c.distance *= delta/float32(max(c.height, 1)) + 1
	c.updateProjection()
}

func (c *controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	c.updateProjection()
	if c.onResize != nil {
		c.onResize(width, height)
	}
}

func (c *controller) Distance() float32 {
	return c.distance
}

func (c *controller) Viewport() (int, int) {
	return c.width, c.height
}

func (c *controller) Dragging() bool {
	return c.mode != dragNone
}

// updateProjection places the clip planes half the near/far extent either side of the distance.
func (c *controller) updateProjection() {
	near := math32.Max(c.distance-c.extent/2, MinNear)
	far := c.distance + c.extent/2
	c.camera.SetPerspective(c.camera.Fov(), float32(c.width)/float32(max(c.height, 1)), near, far)
}
