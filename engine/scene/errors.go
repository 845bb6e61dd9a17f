package scene

import "errors"

var (
	// ErrNoBoundingBox is returned by operations that need a bounding box before one was computed.
	ErrNoBoundingBox = errors.New("node has no bounding box")

	// ErrNodeNotFound is returned when a named node is not in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrCycle is returned when attaching a node would make it its own ancestor.
	ErrCycle = errors.New("attaching node would create a cycle")

	// ErrForeignNode is returned when a Node implementation from outside this package is attached.
	ErrForeignNode = errors.New("node was not created by scene.NewNode")
)
