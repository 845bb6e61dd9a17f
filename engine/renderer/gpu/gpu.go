// Package gpu declares the opaque resource handles the renderer hands out. Scene and material
// code hold these handles without knowing which backend created them.
package gpu

// Resource is the common behaviour of every backend-owned handle.
type Resource interface {
	// Label returns the debug label the resource was created with.
	Label() string

	// Release frees the underlying GPU objects. Releasing twice is a no-op.
	Release()
}

// Geometry is an uploaded vertex buffer with an optional index buffer.
type Geometry interface {
	Resource

	// Count returns the number of indices when indexed, otherwise the number of vertices.
	Count() int

	// Indexed reports whether draws use the index buffer.
	Indexed() bool

	// Lines reports whether the geometry is a line list rather than a triangle list.
	Lines() bool
}

// Texture is an uploaded, sampleable 2D texture.
type Texture interface {
	Resource

	// Size returns the texture dimensions in pixels.
	Size() (width, height uint32)
}

// DepthTarget is a depth texture together with the framebuffer that renders into it.
type DepthTarget interface {
	Resource

	// Size returns the square resolution of the depth texture.
	Size() int
}

// Program is a compiled shader program. A program whose compilation failed is still a valid
// handle; Valid reports false and draws issued with it produce no output.
type Program interface {
	Resource

	// Valid reports whether compilation and linking succeeded.
	Valid() bool
}
