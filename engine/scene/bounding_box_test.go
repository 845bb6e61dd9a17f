package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingBoxUnionOfChildrenAndOwnGeometry(t *testing.T) {
	parent := NewNode("parent", WithDrawInfo(cubeDrawInfo(0.5)))
	left := NewNode("left", WithDrawInfo(cubeDrawInfo(1)))
	left.Transform().Translation = mgl32.Vec3{-4, 0, 0}
	up := NewNode("up", WithDrawInfo(cubeDrawInfo(1)))
	up.Transform().Translation = mgl32.Vec3{0, 6, 0}
	require.NoError(t, parent.AddChild(left))
	require.NoError(t, parent.AddChild(up))

	parent.UpdateWorldMatrix(nil)
	parent.ComputeBoundingBox()

	var boxes []*BoundingBox
	for _, c := range parent.Children() {
		boxes = append(boxes, c.BoundingBox())
	}
	boxes = append(boxes, &BoundingBox{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}})

	want := BoundingBox{Min: boxes[0].Min, Max: boxes[0].Max}
	for _, b := range boxes[1:] {
		for k := 0; k < 3; k++ {
			want.Min[k] = min(want.Min[k], b.Min[k])
			want.Max[k] = max(want.Max[k], b.Max[k])
		}
	}
	assert.Equal(t, want, *parent.BoundingBox())
	assert.Equal(t, mgl32.Vec3{-5, -1, -1}, parent.BoundingBox().Min)
	assert.Equal(t, mgl32.Vec3{1, 7, 1}, parent.BoundingBox().Max)
}

func TestComputeBoundingBoxIdempotent(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child", WithDrawInfo(cubeDrawInfo(2)))
	child.Transform().Rotation = mgl32.Vec3{0.4, 0.9, 0}
	require.NoError(t, root.AddChild(child))
	root.UpdateWorldMatrix(nil)

	root.ComputeBoundingBox()
	first := *root.BoundingBox()
	root.ComputeBoundingBox()
	assert.Equal(t, first, *root.BoundingBox())
}

func TestChildBoxesAreNotRetransformed(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child", WithDrawInfo(cubeDrawInfo(1)))
	require.NoError(t, root.AddChild(child))
	root.UpdateWorldMatrix(nil)

	// moving the root without propagating leaves the child's world matrix stale
	root.Transform().Translation = mgl32.Vec3{100, 0, 0}
	root.ComputeBoundingBox()
	assert.InDelta(t, 0, root.BoundingBox().Center().X(), 1e-5)

	root.UpdateWorldMatrix(nil)
	root.ComputeBoundingBox()
	assert.InDelta(t, 100, root.BoundingBox().Center().X(), 1e-5)
}

func TestEmptyNodeWithoutPriorBoxStaysNil(t *testing.T) {
	n := NewNode("group")
	require.NoError(t, n.AddChild(NewNode("empty")))
	n.UpdateWorldMatrix(nil)
	n.ComputeBoundingBox()
	assert.Nil(t, n.BoundingBox())

	_, err := n.BoundingBoxExtent()
	assert.ErrorIs(t, err, ErrNoBoundingBox)
}

func TestEmptyNodeWithPriorBoxCollapsesToOrigin(t *testing.T) {
	n := NewNode("light", WithBoundingBox(BoundingBox{}))
	n.Transform().Translation = mgl32.Vec3{3, 4, 5}
	n.UpdateWorldMatrix(nil)
	n.ComputeBoundingBox()

	require.NotNil(t, n.BoundingBox())
	assert.Equal(t, mgl32.Vec3{3, 4, 5}, n.BoundingBox().Min)
	assert.Equal(t, n.BoundingBox().Min, n.BoundingBox().Max)
}

func TestBoundingBoxAccessors(t *testing.T) {
	b := BoundingBox{Min: mgl32.Vec3{-1, -2, -2}, Max: mgl32.Vec3{1, 2, 2}}
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, b.Center())
	assert.Equal(t, mgl32.Vec3{2, 4, 4}, b.Size())
	assert.InDelta(t, 6, b.Extent(), 1e-5)
}
