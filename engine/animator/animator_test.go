package animator

import (
	"testing"

	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func figureGraph(t *testing.T) (scene.Graph, scene.Node) {
	t.Helper()
	figure, err := SphereGuy()
	require.NoError(t, err)
	g := scene.NewGraph("test")
	require.NoError(t, g.Root().AddChild(figure))
	g.Update()
	g.ComputeBoundingBox(nil)
	return g, figure
}

func TestSphereGuyHierarchy(t *testing.T) {
	g, figure := figureGraph(t)
	assert.Equal(t, FigureName, figure.Name())

	count := 0
	var drawn []string
	g.Traverse(func(n scene.Node) {
		count++
		if n.DrawInfo() != nil {
			drawn = append(drawn, n.Name())
		}
	})
	// root, figure, pivot and the skeleton
	assert.Equal(t, 3+len(skeleton), count)
	assert.Len(t, drawn, len(skeleton))
	assert.Nil(t, g.NodeByName(FigurePivot).DrawInfo())

	hand := g.NodeByName("left-hand")
	require.NotNil(t, hand)
	assert.Equal(t, "left-forearm", hand.Parent().Name())
	// shared payload
	assert.Same(t, g.NodeByName("head").DrawInfo(), hand.DrawInfo())

	// half a turn about Y mirrors the left hand onto +X
	pos := hand.WorldMatrix().Col(3)
	assert.InDelta(t, 3, pos.X(), 1e-4)
	assert.InDelta(t, 5, pos.Y(), 1e-4)
}

func TestPoseFigure(t *testing.T) {
	g, _ := figureGraph(t)
	const speed = 0.004
	const timeMs = 500.0
	c := float32(timeMs * speed)

	for _, n := range []string{FigurePivot, "left-leg", "right-leg", "right-calf", "head"} {
		PoseFigure(g.NodeByName(n), speed, timeMs)
	}
	assert.InDelta(t, math32.Abs(math32.Sin(c)), g.NodeByName(FigurePivot).Transform().Translation.Y(), 1e-6)
	assert.InDelta(t, math32.Sin(c), g.NodeByName("left-leg").Transform().Rotation.X(), 1e-6)
	assert.InDelta(t, -math32.Sin(c), g.NodeByName("right-leg").Transform().Rotation.X(), 1e-6)
	assert.InDelta(t, math32.Sin(c+0.1)*0.4, g.NodeByName("right-calf").Transform().Rotation.X(), 1e-6)
	assert.InDelta(t, math32.Cos(2*c)*0.4, g.NodeByName("head").Transform().Rotation.X(), 1e-6)
	assert.InDelta(t, math32.Sin(c+0.5)*0.4, g.NodeByName("head").Transform().Rotation.Y(), 1e-6)

	// non-joints are untouched
	root := g.Root()
	PoseFigure(root, speed, timeMs)
	assert.Equal(t, mgl32.Vec3{}, root.Transform().Rotation)
}

func TestFigureAnimatorWalksAndWraps(t *testing.T) {
	g, figure := figureGraph(t)
	step := mgl32.Vec3{-1, 0, 1}
	end := mgl32.Vec3{-2.5, 0, 2.5}
	a := NewFigureAnimator(g, figure, WithWalk(step, end), WithSpeed(0.01))
	assert.InDelta(t, 0.01, a.Speed(), 1e-9)

	a.Step(0)
	assert.Equal(t, mgl32.Vec3{-1, 0, 1}, figure.Transform().Translation)
	a.Step(16)
	a.Step(32)
	// third step lands on (-3, 0, 3), past the end, so it wraps to the mirrored end
	assert.Equal(t, mgl32.Vec3{2.5, 0, -2.5}, figure.Transform().Translation)
	assert.InDelta(t, 2.5, figure.WorldMatrix().Col(3).X(), 1e-5)
}

func TestFigureAnimatorWithoutWalk(t *testing.T) {
	g, figure := figureGraph(t)
	a := NewFigureAnimator(g, figure, WithWalk(mgl32.Vec3{}, mgl32.Vec3{}))
	for i := 0; i < 5; i++ {
		a.Step(float64(i) * 16)
	}
	assert.Equal(t, mgl32.Vec3{}, figure.Transform().Translation)
}

func TestOrbitAnimatorMovesLightCenter(t *testing.T) {
	g := scene.NewGraph("test")
	lightNode := scene.NewNode("light", scene.WithBoundingBox(scene.BoundingBox{}))
	require.NoError(t, g.Root().AddChild(lightNode))
	require.NoError(t, lightNode.MoveCenterTo(mgl32.Vec3{1, 2, 0}))

	a := NewOrbitAnimator(g, math32.Pi/2, lightNode)
	a.Step(0)

	center, err := lightNode.BoundingBoxCenter()
	require.NoError(t, err)
	assert.True(t, center.ApproxEqualThreshold(mgl32.Vec3{0, 2, -1}, 1e-5), center)

	a.SetSpeed(0)
	a.Step(16)
	assert.InDelta(t, math32.Pi/2, lightNode.Transform().Rotation.Y(), 1e-6)
}
