package scene

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// sceneNode is the implementation of the Node interface.
type sceneNode struct {
	name           string
	transform      model.Transform
	localMatrix    mgl32.Mat4
	worldMatrix    mgl32.Mat4
	parent         *sceneNode
	children       []*sceneNode
	drawInfo       model.DrawInfo
	renderingModel material.ShadingModel
	bbox           *BoundingBox

	multipleInstance       bool
	instancesLocalMatrices []mgl32.Mat4
}

// Node defines the interface for one entity of the scene graph. A node owns its children; the
// parent link is a back-reference used only for detachment and world-matrix lookups.
//
// World matrices and bounding boxes are caches. They are only consistent after
// UpdateWorldMatrix has run down the subtree, and bounding boxes must be recomputed after that.
// Nodes are not safe for concurrent use; all mutation happens on the frame goroutine.
type Node interface {
	// Name retrieves the node name. Names are not required to be unique.
	//
	// Returns:
	//   - string: the node name
	Name() string

	// Rename changes the node name.
	//
	// Parameters:
	//   - name: the new name
	Rename(name string)

	// Parent retrieves the parent node, or nil for a root or detached node.
	//
	// Returns:
	//   - Node: the parent or nil
	Parent() Node

	// Children retrieves a copy of the ordered child list.
	//
	// Returns:
	//   - []Node: the children
	Children() []Node

	// AddChild attaches child to this node. A child already attached here is left in place.
	// A child attached elsewhere is removed from its old parent's list before it is appended
	// here, in one step, so it is never listed under two parents.
	//
	// Parameters:
	//   - child: the node to attach
	//
	// Returns:
	//   - error: ErrCycle if child is this node or one of its ancestors, ErrForeignNode for
	//     Node values not built by NewNode
	AddChild(child Node) error

	// RemoveChild detaches child if it is attached to this node.
	//
	// Parameters:
	//   - child: the node to detach
	RemoveChild(child Node)

	// SetParent attaches this node under parent. A nil parent detaches the node.
	//
	// Parameters:
	//   - parent: the new parent or nil
	//
	// Returns:
	//   - error: the error from parent.AddChild
	SetParent(parent Node) error

	// Transform retrieves the editable transform. Changes take effect on the next
	// UpdateWorldMatrix.
	//
	// Returns:
	//   - *model.Transform: the transform
	Transform() *model.Transform

	// LocalMatrix retrieves the base matrix the transform composes onto.
	//
	// Returns:
	//   - mgl32.Mat4: the local matrix
	LocalMatrix() mgl32.Mat4

	// SetLocalMatrix replaces the local matrix without refreshing caches.
	//
	// Parameters:
	//   - m: the new local matrix
	SetLocalMatrix(m mgl32.Mat4)

	// WorldMatrix retrieves the cached world matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix as of the last UpdateWorldMatrix
	WorldMatrix() mgl32.Mat4

	// UpdateWorldMatrix sets world = parentWorld * Transform().Matrix(LocalMatrix()), or just
	// Transform().Matrix(LocalMatrix()) when parentWorld is nil, then recurses into every child.
	//
	// Parameters:
	//   - parentWorld: the parent's world matrix, nil at the root
	UpdateWorldMatrix(parentWorld *mgl32.Mat4)

	// ApplyTransformation left-multiplies the local matrix by m, refreshes the world matrices of
	// this node and its subtree against the parent's cached world matrix, then recomputes the
	// bounding box.
	//
	// Parameters:
	//   - m: the transformation to apply
	ApplyTransformation(m mgl32.Mat4)

	// MoveCenterTo translates the node so its bounding box center lands on target.
	//
	// Parameters:
	//   - target: the desired world-space center
	//
	// Returns:
	//   - error: ErrNoBoundingBox if no bounding box was computed yet
	MoveCenterTo(target mgl32.Vec3) error

	// ScaleNode left-multiplies a uniform scale onto the local matrix and refreshes caches like
	// ApplyTransformation.
	//
	// Parameters:
	//   - s: the scale factor
	ScaleNode(s float32)

	// ScaleNodeVec left-multiplies a per-axis scale onto the local matrix and refreshes caches
	// like ApplyTransformation.
	//
	// Parameters:
	//   - s: the scale factors
	ScaleNodeVec(s mgl32.Vec3)

	// ComputeBoundingBox aggregates the world-space bounding box of this subtree, children first.
	// Child boxes are consumed as they are and are not re-transformed by this node, so world
	// matrices must be fresh before calling.
	ComputeBoundingBox()

	// BoundingBox retrieves the cached bounding box, or nil if none exists.
	//
	// Returns:
	//   - *BoundingBox: the box or nil
	BoundingBox() *BoundingBox

	// SetBoundingBox replaces the cached bounding box. Used to anchor nodes without geometry.
	//
	// Parameters:
	//   - b: the box or nil
	SetBoundingBox(b *BoundingBox)

	// BoundingBoxCenter returns the center of the cached bounding box.
	//
	// Returns:
	//   - mgl32.Vec3: the center
	//   - error: ErrNoBoundingBox if none exists
	BoundingBoxCenter() (mgl32.Vec3, error)

	// BoundingBoxSize returns the per-axis size of the cached bounding box.
	//
	// Returns:
	//   - mgl32.Vec3: max - min
	//   - error: ErrNoBoundingBox if none exists
	BoundingBoxSize() (mgl32.Vec3, error)

	// BoundingBoxExtent returns the diagonal length of the cached bounding box.
	//
	// Returns:
	//   - float32: the diagonal length
	//   - error: ErrNoBoundingBox if none exists
	BoundingBoxExtent() (float32, error)

	// DrawInfo retrieves the drawable payload, or nil for grouping nodes.
	//
	// Returns:
	//   - model.DrawInfo: the payload or nil
	DrawInfo() model.DrawInfo

	// SetDrawInfo replaces the drawable payload.
	//
	// Parameters:
	//   - d: the payload or nil
	SetDrawInfo(d model.DrawInfo)

	// RenderingModel retrieves the shading model. Nodes without a payload report ShadingNone.
	//
	// Returns:
	//   - material.ShadingModel: the shading model
	RenderingModel() material.ShadingModel

	// SetRenderingModel sets the shading model used by the colour pass.
	//
	// Parameters:
	//   - m: the shading model
	SetRenderingModel(m material.ShadingModel)

	// ActivateMultipleInstance marks the node as one geometry drawn once per instance matrix.
	ActivateMultipleInstance()

	// MultipleInstance reports whether ActivateMultipleInstance was called.
	//
	// Returns:
	//   - bool: true for instanced nodes
	MultipleInstance() bool

	// SetInstancesLocalMatrices stores the per-instance base matrices.
	//
	// Parameters:
	//   - matrices: one local matrix per instance
	SetInstancesLocalMatrices(matrices []mgl32.Mat4)

	// InstancesLocalMatrices retrieves the stored per-instance base matrices.
	//
	// Returns:
	//   - []mgl32.Mat4: the matrices
	InstancesLocalMatrices() []mgl32.Mat4

	// InstancesWorldMatrices computes parentWorld * Transform().Matrix(local_i) for every stored
	// instance. The result is not cached. Root nodes use an identity parent.
	//
	// Returns:
	//   - []mgl32.Mat4: one world matrix per instance
	InstancesWorldMatrices() []mgl32.Mat4
}

var _ Node = &sceneNode{}

// NewNode creates a detached node with identity matrices and the identity transform.
//
// Parameters:
//   - name: the node name
//   - options: variadic list of NodeBuilderOption functions
//
// Returns:
//   - Node: the new node
func NewNode(name string, options ...NodeBuilderOption) Node {
	n := &sceneNode{
		name:        name,
		transform:   model.NewTransform(),
		localMatrix: mgl32.Ident4(),
		worldMatrix: mgl32.Ident4(),
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

func asSceneNode(n Node) (*sceneNode, error) {
	sn, ok := n.(*sceneNode)
	if !ok || sn == nil {
		return nil, fmt.Errorf("%T: %w", n, ErrForeignNode)
	}
	return sn, nil
}

func (n *sceneNode) Name() string {
	return n.name
}

func (n *sceneNode) Rename(name string) {
	n.name = name
}

func (n *sceneNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *sceneNode) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *sceneNode) AddChild(child Node) error {
	c, err := asSceneNode(child)
	if err != nil {
		return err
	}
	if c.parent == n {
		return nil
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return fmt.Errorf("add %q under %q: %w", c.name, n.name, ErrCycle)
		}
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	n.children = append(n.children, c)
	c.parent = n
	return nil
}

func (n *sceneNode) detach(c *sceneNode) {
	if i := slices.Index(n.children, c); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	c.parent = nil
}

func (n *sceneNode) RemoveChild(child Node) {
	c, ok := child.(*sceneNode)
	if !ok || c == nil || c.parent != n {
		return
	}
	n.detach(c)
}

func (n *sceneNode) SetParent(parent Node) error {
	if parent == nil {
		if n.parent != nil {
			n.parent.detach(n)
		}
		return nil
	}
	return parent.AddChild(n)
}

func (n *sceneNode) Transform() *model.Transform {
	return &n.transform
}

func (n *sceneNode) LocalMatrix() mgl32.Mat4 {
	return n.localMatrix
}

func (n *sceneNode) SetLocalMatrix(m mgl32.Mat4) {
	n.localMatrix = m
}

func (n *sceneNode) WorldMatrix() mgl32.Mat4 {
	return n.worldMatrix
}

func (n *sceneNode) UpdateWorldMatrix(parentWorld *mgl32.Mat4) {
	m := n.transform.Matrix(n.localMatrix)
	if parentWorld != nil {
		m = parentWorld.Mul4(m)
	}
	n.worldMatrix = m
	for _, c := range n.children {
		c.UpdateWorldMatrix(&n.worldMatrix)
	}
}

// refresh recomputes world matrices from the parent's cache down, then the bounding box.
func (n *sceneNode) refresh() {
	if n.parent != nil {
		pw := n.parent.worldMatrix
		n.UpdateWorldMatrix(&pw)
	} else {
		n.UpdateWorldMatrix(nil)
	}
	n.ComputeBoundingBox()
}

func (n *sceneNode) ApplyTransformation(m mgl32.Mat4) {
	n.localMatrix = m.Mul4(n.localMatrix)
	n.refresh()
}

func (n *sceneNode) MoveCenterTo(target mgl32.Vec3) error {
	center, err := n.BoundingBoxCenter()
	if err != nil {
		return fmt.Errorf("move center of %q: %w", n.name, err)
	}
	d := target.Sub(center)
	n.ApplyTransformation(mgl32.Translate3D(d[0], d[1], d[2]))
	return nil
}

func (n *sceneNode) ScaleNode(s float32) {
	n.ScaleNodeVec(mgl32.Vec3{s, s, s})
}

func (n *sceneNode) ScaleNodeVec(s mgl32.Vec3) {
	n.localMatrix = mgl32.Scale3D(s[0], s[1], s[2]).Mul4(n.localMatrix)
	n.refresh()
}

func (n *sceneNode) ComputeBoundingBox() {
	acc := newBoxAccumulator()
	for _, c := range n.children {
		c.ComputeBoundingBox()
		if c.bbox != nil {
			acc.addBox(c.bbox)
		}
	}

	if n.drawInfo != nil {
		pos := n.drawInfo.Positions()
		for i := 0; i+2 < len(pos); i += 3 {
			acc.addPoint(common.TransformPoint(n.worldMatrix, mgl32.Vec3{pos[i], pos[i+1], pos[i+2]}))
		}
	}

	switch {
	case acc.valid():
		n.bbox = acc.box()
	case n.bbox != nil && n.drawInfo == nil:
		origin := common.TransformPoint(n.worldMatrix, mgl32.Vec3{})
		n.bbox = &BoundingBox{Min: origin, Max: origin}
	default:
		n.bbox = nil
	}
}

func (n *sceneNode) BoundingBox() *BoundingBox {
	return n.bbox
}

func (n *sceneNode) SetBoundingBox(b *BoundingBox) {
	n.bbox = b
}

func (n *sceneNode) BoundingBoxCenter() (mgl32.Vec3, error) {
	if n.bbox == nil {
		return mgl32.Vec3{}, ErrNoBoundingBox
	}
	return n.bbox.Center(), nil
}

func (n *sceneNode) BoundingBoxSize() (mgl32.Vec3, error) {
	if n.bbox == nil {
		return mgl32.Vec3{}, ErrNoBoundingBox
	}
	return n.bbox.Size(), nil
}

func (n *sceneNode) BoundingBoxExtent() (float32, error) {
	if n.bbox == nil {
		return 0, ErrNoBoundingBox
	}
	return n.bbox.Extent(), nil
}

func (n *sceneNode) DrawInfo() model.DrawInfo {
	return n.drawInfo
}

func (n *sceneNode) SetDrawInfo(d model.DrawInfo) {
	n.drawInfo = d
}

func (n *sceneNode) RenderingModel() material.ShadingModel {
	if n.drawInfo == nil {
		return material.ShadingNone
	}
	return n.renderingModel
}

func (n *sceneNode) SetRenderingModel(m material.ShadingModel) {
	n.renderingModel = m
}

func (n *sceneNode) ActivateMultipleInstance() {
	n.multipleInstance = true
}

func (n *sceneNode) MultipleInstance() bool {
	return n.multipleInstance
}

func (n *sceneNode) SetInstancesLocalMatrices(matrices []mgl32.Mat4) {
	n.instancesLocalMatrices = matrices
}

func (n *sceneNode) InstancesLocalMatrices() []mgl32.Mat4 {
	return n.instancesLocalMatrices
}

func (n *sceneNode) InstancesWorldMatrices() []mgl32.Mat4 {
	if len(n.instancesLocalMatrices) == 0 {
		return nil
	}
	parentWorld := mgl32.Ident4()
	if n.parent != nil {
		parentWorld = n.parent.worldMatrix
	}
	out := make([]mgl32.Mat4, len(n.instancesLocalMatrices))
	for i, local := range n.instancesLocalMatrices {
		out[i] = parentWorld.Mul4(n.transform.Matrix(local))
	}
	return out
}
