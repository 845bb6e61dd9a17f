package scene

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepthTarget struct {
	released int
}

func (d *fakeDepthTarget) Label() string { return "depth" }
func (d *fakeDepthTarget) Release()      { d.released++ }
func (d *fakeDepthTarget) Size() int     { return 2048 }

func buildGraph(t *testing.T) Graph {
	t.Helper()
	g := NewGraph("test")
	a := NewNode("a", WithDrawInfo(cubeDrawInfo(1)))
	b := NewNode("b")
	c := NewNode("c", WithDrawInfo(cubeDrawInfo(1)))
	c.Transform().Translation = mgl32.Vec3{0, 0, -3}
	require.NoError(t, g.Root().AddChild(a))
	require.NoError(t, g.Root().AddChild(b))
	require.NoError(t, b.AddChild(c))
	g.Update()
	g.ComputeBoundingBox(nil)
	return g
}

func TestTraversePreOrder(t *testing.T) {
	g := buildGraph(t)
	var names []string
	g.Traverse(func(n Node) { names = append(names, n.Name()) })
	assert.Equal(t, []string{"root", "a", "b", "c"}, names)
}

func TestNodeByName(t *testing.T) {
	g := buildGraph(t)
	require.NotNil(t, g.NodeByName("c"))
	assert.Equal(t, "b", g.NodeByName("c").Parent().Name())
	assert.Nil(t, g.NodeByName("missing"))

	found := g.TraverseFind(func(n Node) bool { return n.DrawInfo() != nil })
	require.NotNil(t, found)
	assert.Equal(t, "a", found.Name())
}

func TestTransformNode(t *testing.T) {
	g := buildGraph(t)
	require.NoError(t, g.TransformNode("b", mgl32.Translate3D(0, 2, 0)))

	c := g.NodeByName("c")
	assert.InDelta(t, 2, c.WorldMatrix().Col(3).Y(), 1e-5)
	assert.InDelta(t, 3, g.Root().BoundingBox().Max.Y(), 1e-5)

	err := g.TransformNode("nope", mgl32.Ident4())
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestDepthTargetOwnership(t *testing.T) {
	g := NewGraph("depth")
	first := &fakeDepthTarget{}
	second := &fakeDepthTarget{}
	g.SetDepthTarget(first)
	g.SetDepthTarget(second)
	assert.Equal(t, 1, first.released)
	assert.Same(t, second, g.DepthTarget())

	g.Release()
	assert.Equal(t, 1, second.released)
	assert.Nil(t, g.DepthTarget())
}

func TestSnapshotAndDump(t *testing.T) {
	g := buildGraph(t)
	s := g.Snapshot()
	assert.Equal(t, 4, s.NodeCount())
	assert.Equal(t, "root", s.Name)
	require.NotNil(t, s.BoundingBox)
	assert.Equal(t, 3, s.Children[0].Vertices)

	var buf bytes.Buffer
	Dump(&buf, s)
	assert.Contains(t, buf.String(), "Name: (string) (len=1) \"c\"")
}
