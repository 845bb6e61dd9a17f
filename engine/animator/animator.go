// Package animator drives the per-tick motion of the demo scene: the walking figure and the
// orbiting sun and light. Animators mutate node transforms and must run on the frame goroutine.
package animator

import (
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultFigureSpeed is the gait phase advanced per millisecond.
	DefaultFigureSpeed = 0.004
	// DefaultOrbitSpin is the Y rotation in radians added per tick.
	DefaultOrbitSpin = 0.005
)

var (
	// DefaultWalkStep is the translation added to the figure per tick.
	DefaultWalkStep = mgl32.Vec3{-0.0015, -0.00015, 0.00225}
	// DefaultWalkEnd is where the figure's walk wraps back to its mirrored start.
	DefaultWalkEnd = mgl32.Vec3{-1.14023756980896, -0.11402427405118942, 1.7102586030960083}
)

// Animator defines the interface for anything advanced once per tick.
type Animator interface {
	// Step advances the animation to the given clock.
	//
	// Parameters:
	//   - timeMs: the animation clock in milliseconds
	Step(timeMs float64)

	// Speed retrieves the animator's rate, gait phase per millisecond for figures and radians
	// per tick for orbits.
	//
	// Returns:
	//   - float32: the rate
	Speed() float32

	// SetSpeed replaces the animator's rate.
	//
	// Parameters:
	//   - s: the new rate
	SetSpeed(s float32)
}

// figureAnimator is the Animator posing and walking a SphereGuy figure.
type figureAnimator struct {
	graph  scene.Graph
	figure scene.Node
	speed  float32
	step   mgl32.Vec3
	end    mgl32.Vec3
}

var _ Animator = &figureAnimator{}

// NewFigureAnimator creates an Animator that poses every joint under figure and walks the
// figure root along a straight line, wrapping to the mirrored end point once it passes the end.
//
// Parameters:
//   - graph: the graph whose world matrices are refreshed after each step
//   - figure: the figure root returned by SphereGuy
//   - options: variadic list of FigureAnimatorBuilderOption functions
//
// Returns:
//   - Animator: the animator
func NewFigureAnimator(graph scene.Graph, figure scene.Node, options ...FigureAnimatorBuilderOption) Animator {
	a := &figureAnimator{
		graph:  graph,
		figure: figure,
		speed:  DefaultFigureSpeed,
		step:   DefaultWalkStep,
		end:    DefaultWalkEnd,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *figureAnimator) Step(timeMs float64) {
	var pose func(n scene.Node)
	pose = func(n scene.Node) {
		PoseFigure(n, a.speed, timeMs)
		for _, c := range n.Children() {
			pose(c)
		}
	}
	pose(a.figure)

	t := a.figure.Transform()
	t.Translation = t.Translation.Add(a.step)
	if a.pastEnd(t.Translation) {
		t.Translation = a.end.Mul(-1)
	}
	a.graph.Update()
}

// pastEnd reports whether p has crossed the end point on every axis the walk moves along.
func (a *figureAnimator) pastEnd(p mgl32.Vec3) bool {
	moving := false
	for k := 0; k < 3; k++ {
		switch {
		case a.step[k] < 0:
			if p[k] >= a.end[k] {
				return false
			}
			moving = true
		case a.step[k] > 0:
			if p[k] <= a.end[k] {
				return false
			}
			moving = true
		}
	}
	return moving
}

func (a *figureAnimator) Speed() float32 {
	return a.speed
}

func (a *figureAnimator) SetSpeed(s float32) {
	a.speed = s
}

// orbitAnimator is the Animator spinning nodes about the world Y axis.
type orbitAnimator struct {
	graph scene.Graph
	nodes []scene.Node
	spin  float32
}

var _ Animator = &orbitAnimator{}

// NewOrbitAnimator creates an Animator that adds spin to the Y rotation of each node per tick.
// Nodes positioned through their local matrix swing around the origin. After stepping the graph
// is updated and each node's bounding box recomputed so a light node's centre follows.
//
// Parameters:
//   - graph: the graph whose world matrices are refreshed after each step
//   - spin: radians per tick
//   - nodes: the nodes to spin
//
// Returns:
//   - Animator: the animator
func NewOrbitAnimator(graph scene.Graph, spin float32, nodes ...scene.Node) Animator {
	return &orbitAnimator{graph: graph, nodes: nodes, spin: spin}
}

func (a *orbitAnimator) Step(_ float64) {
	if len(a.nodes) == 0 {
		return
	}
	for _, n := range a.nodes {
		n.Transform().Rotation[1] += a.spin
	}
	a.graph.Update()
	for _, n := range a.nodes {
		n.ComputeBoundingBox()
	}
}

func (a *orbitAnimator) Speed() float32 {
	return a.spin
}

func (a *orbitAnimator) SetSpeed(s float32) {
	a.spin = s
}
