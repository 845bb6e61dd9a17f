package scene

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// graph is the implementation of the Graph interface.
type graph struct {
	name        string
	root        *sceneNode
	depthTarget gpu.DepthTarget
	logger      *slog.Logger
}

// Graph defines the interface for a scene graph: a single root node plus the shadow depth
// target the graph owns once rendering is configured.
//
// Callers must respect the ordering rule: Update before ComputeBoundingBox, and
// ComputeBoundingBox before reading bounding-box derived positions. Breaking it yields stale
// placement, never a crash.
type Graph interface {
	// Name retrieves the graph name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Root retrieves the root node.
	//
	// Returns:
	//   - Node: the root
	Root() Node

	// SetRoot replaces the root node.
	//
	// Parameters:
	//   - root: the new root, must be built by NewNode
	//
	// Returns:
	//   - error: ErrForeignNode for Node values not built by NewNode
	SetRoot(root Node) error

	// Update propagates world matrices from the root down the whole tree.
	Update()

	// Traverse visits every node in pre-order, parents before children, children in order.
	//
	// Parameters:
	//   - fn: called once per node
	Traverse(fn func(Node))

	// TraverseFind returns the first node in pre-order for which pred is true.
	//
	// Parameters:
	//   - pred: the match predicate
	//
	// Returns:
	//   - Node: the first match or nil
	TraverseFind(pred func(Node) bool) Node

	// NodeByName returns the first node in pre-order with the given name.
	//
	// Parameters:
	//   - name: the node name
	//
	// Returns:
	//   - Node: the node or nil
	NodeByName(name string) Node

	// TransformNode applies m to the named node, then refreshes world matrices and bounding
	// boxes for the whole graph.
	//
	// Parameters:
	//   - name: the node name
	//   - m: the transformation to apply
	//
	// Returns:
	//   - error: ErrNodeNotFound if no node has that name
	TransformNode(name string, m mgl32.Mat4) error

	// ComputeBoundingBox recomputes bounding boxes for the subtree at node, or the whole graph
	// when node is nil.
	//
	// Parameters:
	//   - node: the subtree root or nil
	ComputeBoundingBox(node Node)

	// DepthTarget retrieves the shadow depth target, or nil before SetDepthTarget.
	//
	// Returns:
	//   - gpu.DepthTarget: the depth target
	DepthTarget() gpu.DepthTarget

	// SetDepthTarget hands ownership of a depth target to the graph. A previously owned target
	// is released.
	//
	// Parameters:
	//   - t: the depth target
	SetDepthTarget(t gpu.DepthTarget)

	// Snapshot copies the tree into plain data for debugging surfaces.
	//
	// Returns:
	//   - NodeSnapshot: the root snapshot
	Snapshot() NodeSnapshot

	// Release frees the GPU resources owned by the graph.
	Release()
}

var _ Graph = &graph{}

// NewGraph creates a graph with an empty root node named "root".
//
// Parameters:
//   - name: the graph name
//   - options: variadic list of GraphBuilderOption functions
//
// Returns:
//   - Graph: the new graph
func NewGraph(name string, options ...GraphBuilderOption) Graph {
	g := &graph{
		name:   name,
		root:   NewNode("root").(*sceneNode),
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(g)
	}
	g.logger = g.logger.With("component", "scene", "graph", name)
	return g
}

func (g *graph) Name() string {
	return g.name
}

func (g *graph) Root() Node {
	return g.root
}

func (g *graph) SetRoot(root Node) error {
	r, err := asSceneNode(root)
	if err != nil {
		return err
	}
	g.root = r
	return nil
}

func (g *graph) Update() {
	g.root.UpdateWorldMatrix(nil)
}

func (g *graph) Traverse(fn func(Node)) {
	walk(g.root, func(n *sceneNode) bool {
		fn(n)
		return true
	})
}

// walk visits nodes in pre-order until visit returns false.
func walk(n *sceneNode, visit func(*sceneNode) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func (g *graph) TraverseFind(pred func(Node) bool) Node {
	var found *sceneNode
	walk(g.root, func(n *sceneNode) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return found
}

func (g *graph) NodeByName(name string) Node {
	return g.TraverseFind(func(n Node) bool {
		return n.Name() == name
	})
}

func (g *graph) TransformNode(name string, m mgl32.Mat4) error {
	n := g.NodeByName(name)
	if n == nil {
		return fmt.Errorf("transform %q: %w", name, ErrNodeNotFound)
	}
	n.ApplyTransformation(m)
	g.Update()
	g.ComputeBoundingBox(nil)
	return nil
}

func (g *graph) ComputeBoundingBox(node Node) {
	if node == nil {
		node = g.root
	}
	node.ComputeBoundingBox()
}

func (g *graph) DepthTarget() gpu.DepthTarget {
	return g.depthTarget
}

func (g *graph) SetDepthTarget(t gpu.DepthTarget) {
	if g.depthTarget != nil && g.depthTarget != t {
		g.depthTarget.Release()
	}
	g.depthTarget = t
	if t != nil {
		g.logger.Debug("depth target attached", "label", t.Label(), "size", t.Size())
	}
}

func (g *graph) Release() {
	g.SetDepthTarget(nil)
	g.Traverse(func(n Node) {
		if d := n.DrawInfo(); d != nil && d.Geometry() != nil {
			d.Geometry().Release()
			d.SetGeometry(nil)
		}
	})
}
