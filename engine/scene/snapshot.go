package scene

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// NodeSnapshot is a plain copy of one node's state, safe to hand to other goroutines.
type NodeSnapshot struct {
	Name           string         `json:"name" yaml:"name"`
	RenderingModel string         `json:"renderingModel" yaml:"renderingModel"`
	Translation    [3]float32     `json:"translation" yaml:"translation"`
	Rotation       [3]float32     `json:"rotation" yaml:"rotation"`
	WorldOrigin    [3]float32     `json:"worldOrigin" yaml:"worldOrigin"`
	BoundingBox    *BoxSnapshot   `json:"boundingBox,omitempty" yaml:"boundingBox,omitempty"`
	Vertices       int            `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Instances      int            `json:"instances,omitempty" yaml:"instances,omitempty"`
	Children       []NodeSnapshot `json:"children,omitempty" yaml:"children,omitempty"`
}

// BoxSnapshot is a plain copy of a bounding box.
type BoxSnapshot struct {
	Min [3]float32 `json:"min" yaml:"min"`
	Max [3]float32 `json:"max" yaml:"max"`
}

func (g *graph) Snapshot() NodeSnapshot {
	return snapshotNode(g.root)
}

func snapshotNode(n *sceneNode) NodeSnapshot {
	origin := n.worldMatrix.Col(3).Vec3()
	s := NodeSnapshot{
		Name:           n.name,
		RenderingModel: n.RenderingModel().String(),
		Translation:    n.transform.Translation,
		Rotation:       n.transform.Rotation,
		WorldOrigin:    origin,
		Instances:      len(n.instancesLocalMatrices),
	}
	if n.bbox != nil {
		s.BoundingBox = &BoxSnapshot{Min: n.bbox.Min, Max: n.bbox.Max}
	}
	if n.drawInfo != nil {
		s.Vertices = n.drawInfo.VertexCount()
	}
	for _, c := range n.children {
		s.Children = append(s.Children, snapshotNode(c))
	}
	return s
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes a human-readable dump of a snapshot.
//
// Parameters:
//   - w: the destination
//   - s: the snapshot to dump
func Dump(w io.Writer, s NodeSnapshot) {
	dumpConfig.Fdump(w, s)
}

// NodeCount returns the number of nodes in the snapshot tree.
func (s NodeSnapshot) NodeCount() int {
	n := 1
	for _, c := range s.Children {
		n += c.NodeCount()
	}
	return n
}
