package scene

import (
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeBuilderOption is a functional option for configuring a Node via NewNode.
type NodeBuilderOption func(*sceneNode)

// WithDrawInfo attaches a drawable payload to the Node.
//
// Parameters:
//   - d: the payload
//
// Returns:
//   - NodeBuilderOption: a function that applies the payload to a sceneNode
func WithDrawInfo(d model.DrawInfo) NodeBuilderOption {
	return func(n *sceneNode) {
		n.drawInfo = d
	}
}

// WithRenderingModel sets the shading model of the Node.
//
// Parameters:
//   - m: the shading model
//
// Returns:
//   - NodeBuilderOption: a function that applies the shading model to a sceneNode
func WithRenderingModel(m material.ShadingModel) NodeBuilderOption {
	return func(n *sceneNode) {
		n.renderingModel = m
	}
}

// WithLocalMatrix sets the initial local matrix of the Node.
//
// Parameters:
//   - m: the local matrix
//
// Returns:
//   - NodeBuilderOption: a function that applies the local matrix to a sceneNode
func WithLocalMatrix(m mgl32.Mat4) NodeBuilderOption {
	return func(n *sceneNode) {
		n.localMatrix = m
	}
}

// WithTranslation sets the initial transform translation of the Node.
//
// Parameters:
//   - t: the translation
//
// Returns:
//   - NodeBuilderOption: a function that applies the translation to a sceneNode
func WithTranslation(t mgl32.Vec3) NodeBuilderOption {
	return func(n *sceneNode) {
		n.transform.Translation = t
	}
}

// WithBoundingBox seeds the bounding box. Nodes without geometry keep reporting their
// world-space origin once seeded.
//
// Parameters:
//   - b: the initial box
//
// Returns:
//   - NodeBuilderOption: a function that applies the box to a sceneNode
func WithBoundingBox(b BoundingBox) NodeBuilderOption {
	return func(n *sceneNode) {
		n.bbox = &b
	}
}
