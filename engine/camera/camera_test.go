package camera

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewMatrixPlacesOriginInFront(t *testing.T) {
	c := InitializeCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, common.DegToRad(60), 800, 600, 0.1, 100)

	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	// the camera looks down -Z in view space, so depth along the forward axis is -z
	assert.InDelta(t, 5, -p.Z(), 1e-5)
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.InDelta(t, float32(800)/600, c.Aspect(), 1e-6)
}

func TestDerivedMatrices(t *testing.T) {
	c := InitializeCamera(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}, 1, 640, 480, 0.5, 50)
	m := mgl32.Translate3D(3, 0, -1).Mul4(mgl32.HomogRotate3DY(0.3))

	vp := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	assert.Equal(t, vp, c.ViewProjectionMatrix())
	assert.Equal(t, vp.Mul4(m), c.MVP(m))
	assert.Equal(t, c.ViewMatrix().Mul4(m), c.ModelViewMatrix(m))

	frustum := c.FrustumTransformationMatrix()
	assert.True(t, frustum.Mul4(vp).ApproxEqualThreshold(mgl32.Ident4(), 1e-3))
}

func TestDirection(t *testing.T) {
	c := NewCamera(WithLookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}))
	assert.True(t, c.Direction().ApproxEqual(mgl32.Vec3{0, 0, -1}))
}

func TestGuardedUpdatesSkipEqualValues(t *testing.T) {
	c := NewCamera(WithLookAt(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	before := c.ViewMatrix()

	c.UpdatePosition(mgl32.Vec3{0, 0, 5})
	c.UpdateTarget(mgl32.Vec3{})
	c.UpdatePosAndTarget(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	assert.Equal(t, before, c.ViewMatrix())

	c.UpdatePosition(mgl32.Vec3{0, 0, 6})
	assert.NotEqual(t, before, c.ViewMatrix())
	assert.Equal(t, mgl32.LookAtV(mgl32.Vec3{0, 0, 6}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}), c.ViewMatrix())

	c.UpdatePosAndTarget(mgl32.Vec3{0, 0, 6}, mgl32.Vec3{1, 0, 0})
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.Target())
}

func TestSetPerspective(t *testing.T) {
	c := NewCamera()
	c.SetPerspective(1.2, 2, 0.3, 30)
	assert.Equal(t, mgl32.Perspective(1.2, 2, 0.3, 30), c.ProjectionMatrix())
	assert.Equal(t, float32(0.3), c.Near())
	assert.Equal(t, float32(30), c.Far())
	assert.Equal(t, float32(1.2), c.Fov())
}

func TestInitializeCameraForScene(t *testing.T) {
	g := scene.NewGraph("framing")
	require.NoError(t, g.Root().AddChild(scene.NewNode("box", scene.WithDrawInfo(model.NewDrawInfo([]float32{
		-1, -2, -1,
		1, 2, 1,
		1, -2, -1,
	})))))

	_, err := InitializeCameraForScene(g, 800, 600, 1)
	assert.True(t, errors.Is(err, scene.ErrNoBoundingBox))

	g.Update()
	g.ComputeBoundingBox(nil)
	c, err := InitializeCameraForScene(g, 800, 600, 1)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 0, 4}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.Target())
	assert.Equal(t, float32(SceneNear), c.Near())
	assert.Equal(t, float32(SceneFar), c.Far())
}
