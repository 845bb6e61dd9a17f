package model

import (
	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// drawInfo is the implementation of the DrawInfo interface.
type drawInfo struct {
	positions []float32
	normals   []float32
	uvs       []float32
	tangents  []float32
	indices   []uint32
	primitive Primitive
	color     mgl32.Vec4
	material  material.Material
	geometry  gpu.Geometry
}

// DrawInfo defines the interface for one drawable unit: vertex attributes, optional indices, a
// material and, once uploaded, the GPU geometry handle.
//
// Vertex data is fixed at construction. Only the GPU handle and the material's texture slots
// change afterwards.
type DrawInfo interface {
	// Positions retrieves the vertex positions as flat xyz triples.
	//
	// Returns:
	//   - []float32: the positions
	Positions() []float32

	// Normals retrieves the vertex normals as flat xyz triples.
	//
	// Returns:
	//   - []float32: the normals, same length as Positions
	Normals() []float32

	// UVs retrieves the texture coordinates as flat uv pairs.
	//
	// Returns:
	//   - []float32: the texture coordinates
	UVs() []float32

	// Tangents retrieves the tangents as flat xyzw quadruples, w holding the handedness.
	//
	// Returns:
	//   - []float32: the tangents
	Tangents() []float32

	// Indices retrieves the index buffer, or nil for non-indexed geometry.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// Indexed reports whether the geometry has an index buffer.
	//
	// Returns:
	//   - bool: true if indexed
	Indexed() bool

	// VertexCount returns the number of vertices.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// Primitive retrieves the draw topology.
	//
	// Returns:
	//   - Primitive: triangles or lines
	Primitive() Primitive

	// Color retrieves the flat RGBA colour used by unlit and simple shading.
	//
	// Returns:
	//   - mgl32.Vec4: the colour in [0, 1]
	Color() mgl32.Vec4

	// Material retrieves the material.
	//
	// Returns:
	//   - material.Material: the material, never nil
	Material() material.Material

	// Geometry retrieves the uploaded GPU geometry, or nil before upload.
	//
	// Returns:
	//   - gpu.Geometry: the geometry handle
	Geometry() gpu.Geometry

	// SetGeometry attaches the uploaded GPU geometry.
	//
	// Parameters:
	//   - g: the geometry handle
	SetGeometry(g gpu.Geometry)

	// Interleave packs the attributes into the GPU vertex layout.
	//
	// Returns:
	//   - []GPUVertex: one vertex per position
	Interleave() []GPUVertex
}

var _ DrawInfo = &drawInfo{}

// NewDrawInfo builds a DrawInfo from positions and options. Normals, UVs and tangents that are
// not supplied are generated: planar UVs, averaged (or per-face) normals and UV-gradient tangents.
//
// Parameters:
//   - positions: vertex positions as flat xyz triples
//   - options: variadic list of DrawInfoBuilderOption functions
//
// Returns:
//   - DrawInfo: the draw info
func NewDrawInfo(positions []float32, options ...DrawInfoBuilderOption) DrawInfo {
	d := &drawInfo{
		positions: positions,
		color:     mgl32.Vec4{1, 1, 1, 1},
	}
	for _, opt := range options {
		opt(d)
	}
	if d.material == nil {
		d.material = material.DefaultMaterial()
	}
	if len(d.uvs) == 0 {
		d.uvs = GeneratePlanarUVs(d.positions)
	}
	if len(d.normals) == 0 {
		d.normals = ComputeVertexNormals(d.positions, d.indices)
	}
	if len(d.tangents) == 0 && d.primitive == PrimitiveTriangles {
		d.tangents = GenerateTangents(d.positions, d.normals, d.uvs, d.indices)
	}
	return d
}

func (d *drawInfo) Positions() []float32 {
	return d.positions
}

func (d *drawInfo) Normals() []float32 {
	return d.normals
}

func (d *drawInfo) UVs() []float32 {
	return d.uvs
}

func (d *drawInfo) Tangents() []float32 {
	return d.tangents
}

func (d *drawInfo) Indices() []uint32 {
	return d.indices
}

func (d *drawInfo) Indexed() bool {
	return len(d.indices) > 0
}

func (d *drawInfo) VertexCount() int {
	return len(d.positions) / 3
}

func (d *drawInfo) Primitive() Primitive {
	return d.primitive
}

func (d *drawInfo) Color() mgl32.Vec4 {
	return d.color
}

func (d *drawInfo) Material() material.Material {
	return d.material
}

func (d *drawInfo) Geometry() gpu.Geometry {
	return d.geometry
}

func (d *drawInfo) SetGeometry(g gpu.Geometry) {
	d.geometry = g
}

func (d *drawInfo) Interleave() []GPUVertex {
	n := d.VertexCount()
	out := make([]GPUVertex, n)
	for i := 0; i < n; i++ {
		v := &out[i]
		copy(v.Position[:], d.positions[i*3:i*3+3])
		if len(d.normals) >= i*3+3 {
			copy(v.Normal[:], d.normals[i*3:i*3+3])
		}
		if len(d.uvs) >= i*2+2 {
			copy(v.TexCoord[:], d.uvs[i*2:i*2+2])
		}
		v.Color = d.color
		if len(d.tangents) >= i*4+4 {
			copy(v.Tangent[:], d.tangents[i*4:i*4+4])
		} else {
			v.Tangent = [4]float32{1, 0, 0, 1}
		}
	}
	return out
}
