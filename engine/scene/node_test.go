package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cubeDrawInfo spans [-h, h] on every axis.
func cubeDrawInfo(h float32) model.DrawInfo {
	return model.NewDrawInfo([]float32{
		-h, -h, -h,
		h, h, h,
		h, -h, -h,
	})
}

func TestRootWorldMatrixEqualsOwnTransform(t *testing.T) {
	root := NewNode("root", WithLocalMatrix(mgl32.Translate3D(1, 2, 3)))
	root.Transform().Rotation = mgl32.Vec3{0.3, 0.2, 0.1}
	root.Transform().Scale = mgl32.Vec3{2, 2, 2}

	root.UpdateWorldMatrix(nil)

	assert.Equal(t, root.Transform().Matrix(root.LocalMatrix()), root.WorldMatrix())
}

func TestChildWorldMatrixComposesParent(t *testing.T) {
	root := NewNode("root")
	root.Transform().Translation = mgl32.Vec3{0, 5, 0}
	child := NewNode("child", WithLocalMatrix(mgl32.HomogRotate3DY(0.5)))
	child.Transform().Translation = mgl32.Vec3{1, 0, 0}
	grandchild := NewNode("grandchild")
	grandchild.Transform().Scale = mgl32.Vec3{3, 3, 3}
	require.NoError(t, root.AddChild(child))
	require.NoError(t, child.AddChild(grandchild))

	root.UpdateWorldMatrix(nil)

	for _, n := range []Node{child, grandchild} {
		want := n.Parent().WorldMatrix().Mul4(n.Transform().Matrix(n.LocalMatrix()))
		assert.Equal(t, want, n.WorldMatrix(), n.Name())
	}
}

func TestAddChildIsNoOpWhenAlreadyAttached(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	require.NoError(t, parent.AddChild(child))
	require.NoError(t, parent.AddChild(child))
	assert.Len(t, parent.Children(), 1)
}

func TestReparentDetachesFromOldParent(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")
	require.NoError(t, a.AddChild(child))

	require.NoError(t, child.SetParent(b))

	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Same(t, child, b.Children()[0])
	assert.Same(t, b, child.Parent())
}

func TestSetParentNilDetaches(t *testing.T) {
	a := NewNode("a")
	child := NewNode("child")
	require.NoError(t, a.AddChild(child))
	require.NoError(t, child.SetParent(nil))
	assert.Empty(t, a.Children())
	assert.Nil(t, child.Parent())
}

func TestAddChildRejectsCycles(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	require.NoError(t, a.AddChild(b))

	assert.True(t, errors.Is(b.AddChild(a), ErrCycle))
	assert.True(t, errors.Is(a.AddChild(a), ErrCycle))
	assert.Nil(t, a.Parent())
}

func TestRemoveChild(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	require.NoError(t, a.AddChild(b))
	require.NoError(t, a.AddChild(c))

	a.RemoveChild(b)
	a.RemoveChild(NewNode("stranger"))

	require.Len(t, a.Children(), 1)
	assert.Equal(t, "c", a.Children()[0].Name())
	assert.Nil(t, b.Parent())
}

func TestRenderingModelRequiresDrawInfo(t *testing.T) {
	n := NewNode("n", WithRenderingModel(material.ShadingPBR))
	assert.Equal(t, material.ShadingNone, n.RenderingModel())
	n.SetDrawInfo(cubeDrawInfo(1))
	assert.Equal(t, material.ShadingPBR, n.RenderingModel())
}

func TestMoveCenterTo(t *testing.T) {
	n := NewNode("cube", WithDrawInfo(cubeDrawInfo(1)))
	n.UpdateWorldMatrix(nil)
	n.ComputeBoundingBox()
	require.NotNil(t, n.BoundingBox())

	require.NoError(t, n.MoveCenterTo(mgl32.Vec3{5, 0, 0}))

	center, err := n.BoundingBoxCenter()
	require.NoError(t, err)
	assert.InDelta(t, 5, center.X(), 1e-5)
	assert.InDelta(t, 0, center.Y(), 1e-5)
	assert.InDelta(t, 0, center.Z(), 1e-5)
	assert.InDelta(t, 5, n.LocalMatrix().Col(3).X(), 1e-5)
}

func TestMoveCenterToWithoutBoundingBox(t *testing.T) {
	n := NewNode("empty")
	err := n.MoveCenterTo(mgl32.Vec3{1, 1, 1})
	assert.True(t, errors.Is(err, ErrNoBoundingBox))
	assert.Equal(t, mgl32.Ident4(), n.LocalMatrix())
}

func TestScaleNode(t *testing.T) {
	n := NewNode("cube", WithDrawInfo(cubeDrawInfo(1)))
	n.UpdateWorldMatrix(nil)
	n.ScaleNode(0.5)

	size, err := n.BoundingBoxSize()
	require.NoError(t, err)
	assert.InDelta(t, 1, size.X(), 1e-5)

	n.ScaleNodeVec(mgl32.Vec3{2, 1, 1})
	size, err = n.BoundingBoxSize()
	require.NoError(t, err)
	assert.InDelta(t, 2, size.X(), 1e-5)
	assert.InDelta(t, 1, size.Y(), 1e-5)
}

func TestApplyTransformationRefreshesSubtree(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child", WithDrawInfo(cubeDrawInfo(1)))
	require.NoError(t, root.AddChild(child))
	root.UpdateWorldMatrix(nil)
	root.ComputeBoundingBox()

	root.ApplyTransformation(mgl32.Translate3D(0, 10, 0))

	assert.InDelta(t, 10, child.WorldMatrix().Col(3).Y(), 1e-5)
	center, err := root.BoundingBoxCenter()
	require.NoError(t, err)
	assert.InDelta(t, 10, center.Y(), 1e-5)
}

func TestInstancesWorldMatrices(t *testing.T) {
	parent := NewNode("globe")
	parent.Transform().Translation = mgl32.Vec3{0, 2, 0}
	grass := NewNode("grass", WithDrawInfo(cubeDrawInfo(0.1)))
	grass.Transform().Scale = mgl32.Vec3{2, 2, 2}
	require.NoError(t, parent.AddChild(grass))
	parent.UpdateWorldMatrix(nil)

	locals := []mgl32.Mat4{
		mgl32.Translate3D(1, 0, 0),
		mgl32.HomogRotate3DZ(0.7),
		mgl32.Scale3D(1, 3, 1),
	}
	grass.ActivateMultipleInstance()
	grass.SetInstancesLocalMatrices(locals)

	worlds := grass.InstancesWorldMatrices()
	require.Len(t, worlds, 3)
	assert.True(t, grass.MultipleInstance())
	for i, w := range worlds {
		want := parent.WorldMatrix().Mul4(grass.Transform().Matrix(locals[i]))
		assert.Equal(t, want, w)
	}
}

func TestInstancesWorldMatricesRootUsesIdentityParent(t *testing.T) {
	n := NewNode("n")
	n.SetInstancesLocalMatrices([]mgl32.Mat4{mgl32.Translate3D(1, 2, 3)})
	assert.Equal(t, []mgl32.Mat4{mgl32.Translate3D(1, 2, 3)}, n.InstancesWorldMatrices())
	assert.Nil(t, NewNode("none").InstancesWorldMatrices())
}
