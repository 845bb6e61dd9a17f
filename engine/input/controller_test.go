package input

import (
	"testing"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/camera"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func newTestController(options ...ControllerBuilderOption) (Controller, scene.Graph, camera.Camera) {
	g := scene.NewGraph("input")
	cam := camera.InitializeCamera(mgl32.Vec3{0, 2, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, common.DegToRad(60), 800, 600, 0.1, 100)
	opts := append([]ControllerBuilderOption{WithViewport(800, 600)}, options...)
	return NewController(g, cam, opts...), g, cam
}

func TestInitialProjectionUsesDistance(t *testing.T) {
	_, _, cam := newTestController(WithDistance(20), WithNearFarExtent(10))

	assert.InDelta(t, 15, cam.Near(), 1e-5)
	assert.InDelta(t, 25, cam.Far(), 1e-5)
	assert.InDelta(t, float32(800)/600, cam.Aspect(), 1e-6)
}

func TestNearPlaneClamped(t *testing.T) {
	c, _, cam := newTestController()

	// default distance 5 with extent 34.8 puts the near plane behind the camera
	assert.InDelta(t, MinNear, cam.Near(), 1e-9)
	assert.InDelta(t, 5+34.8/2, cam.Far(), 1e-4)
	assert.InDelta(t, 5, c.Distance(), 1e-6)
}

func TestDragRotatesRoot(t *testing.T) {
	c, g, _ := newTestController()

	c.MouseDown(100, 100, false)
	assert.True(t, c.Dragging())
	c.MouseMove(180, 160)

	rotY := float32(80) / 800 * DragSensitivity
	rotX := float32(60) / 600 * DragSensitivity
	want := mgl32.HomogRotate3DX(rotX).Mul4(mgl32.HomogRotate3DY(rotY))
	assert.True(t, g.Root().LocalMatrix().ApproxEqualThreshold(want, 1e-5))

	c.MouseUp()
	assert.False(t, c.Dragging())
	c.MouseMove(400, 400)
	assert.True(t, g.Root().LocalMatrix().ApproxEqualThreshold(want, 1e-5))
}

func TestMoveWithoutDragIsIgnored(t *testing.T) {
	c, g, cam := newTestController()
	far := cam.Far()

	c.MouseMove(50, 50)

	assert.Equal(t, mgl32.Ident4(), g.Root().LocalMatrix())
	assert.Equal(t, far, cam.Far())
}

func TestCtrlDragZooms(t *testing.T) {
	c, g, _ := newTestController()

	c.MouseDown(10, 100, true)
	c.MouseMove(10, 160)

	assert.InDelta(t, 5*(5*60.0/600+1), c.Distance(), 1e-4)
	assert.Equal(t, mgl32.Ident4(), g.Root().LocalMatrix())
}

func TestScrollZooms(t *testing.T) {
	c, _, cam := newTestController(WithDistance(10), WithNearFarExtent(4))

	c.Scroll(200)

	d := float32(10) * (0.3*200/600 + 1)
	assert.InDelta(t, d, c.Distance(), 1e-4)
	assert.InDelta(t, d-2, cam.Near(), 1e-4)
	assert.InDelta(t, d+2, cam.Far(), 1e-4)

	c.Scroll(-200)
	assert.Less(t, c.Distance(), d)
}

func TestResize(t *testing.T) {
	var gotW, gotH int
	c, _, cam := newTestController(WithResizeHook(func(w, h int) { gotW, gotH = w, h }))

	c.Resize(1024, 512)

	w, h := c.Viewport()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)
	assert.InDelta(t, 2, cam.Aspect(), 1e-6)
	assert.Equal(t, 1024, gotW)
	assert.Equal(t, 512, gotH)

	c.Resize(0, 0)
	w, h = c.Viewport()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)
}
