package model

import (
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawInfoBuilderOption is a functional option for configuring a DrawInfo via NewDrawInfo.
type DrawInfoBuilderOption func(*drawInfo)

// WithNormals sets the vertex normals.
//
// Parameters:
//   - normals: flat xyz triples, one per position
//
// Returns:
//   - DrawInfoBuilderOption: a function that applies the normals to a drawInfo
func WithNormals(normals []float32) DrawInfoBuilderOption {
	return func(d *drawInfo) {
		d.normals = normals
	}
}

// WithUVs sets the texture coordinates.
//
// Parameters:
//   - uvs: flat uv pairs, one per position
//
// Returns:
//   - DrawInfoBuilderOption: a function that applies the texture coordinates to a drawInfo
func WithUVs(uvs []float32) DrawInfoBuilderOption {
	return func(d *drawInfo) {
		d.uvs = uvs
	}
}

// WithTangents sets the tangents.
//
// Parameters:
//   - tangents: flat xyzw quadruples, one per position
//
// Returns:
//   - DrawInfoBuilderOption: a function that applies the tangents to a drawInfo
func WithTangents(tangents []float32) DrawInfoBuilderOption {
	return func(d *drawInfo) {
		d.tangents = tangents
	}
}

// WithIndices sets the index buffer.
//
// Parameters:
//   - indices: the vertex indices
//
// Returns:
//   - DrawInfoBuilderOption: a function that applies the indices to a drawInfo
func WithIndices(indices []uint32) DrawInfoBuilderOption {
	return func(d *drawInfo) {
		d.indices = indices
	}
}

// WithPrimitive sets the draw topology.
//
// Parameters:
//   - p: triangles or lines
//
// Returns:
//   - DrawInfoBuilderOption: a function that applies the topology to a drawInfo
func WithPrimitive(p Primitive) DrawInfoBuilderOption {
	return func(d *drawInfo) {
		d.primitive = p
	}
}

// WithColor sets the flat RGBA colour.
//
// Parameters:
//   - c: the colour in [0, 1]
//
// Returns:
//   - DrawInfoBuilderOption: a function that applies the colour to a drawInfo
func WithColor(c mgl32.Vec4) DrawInfoBuilderOption {
	return func(d *drawInfo) {
		d.color = c
	}
}

// WithMaterial sets the material.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - DrawInfoBuilderOption: a function that applies the material to a drawInfo
func WithMaterial(m material.Material) DrawInfoBuilderOption {
	return func(d *drawInfo) {
		d.material = m
	}
}
