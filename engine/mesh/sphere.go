package mesh

import (
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/chewxy/math32"
)

const (
	// SphereSegments is the number of longitude steps of a generated sphere.
	SphereSegments = 128
	// SphereRings is the number of latitude steps of a generated sphere.
	SphereRings = 64
)

// SphereGeometry returns the positions, normals, UVs and indices of a UV sphere centred on the
// origin. Rows run from the north pole (+Y) to the south pole; seams and poles repeat vertices so
// every row has segments+1 entries.
//
// Parameters:
//   - radius: the sphere radius
//   - segments: longitude steps
//   - rings: latitude steps
//
// Returns:
//   - positions, normals, uvs: flat attribute arrays
//   - []uint32: counter-clockwise triangle indices seen from outside
func SphereGeometry(radius float32, segments, rings int) (positions, normals, uvs []float32, indices []uint32) {
	stride := segments + 1
	count := stride * (rings + 1)
	positions = make([]float32, 0, count*3)
	normals = make([]float32, 0, count*3)
	uvs = make([]float32, 0, count*2)

	for y := 0; y <= rings; y++ {
		v := float32(y) / float32(rings)
		theta := v * math32.Pi
		for x := 0; x <= segments; x++ {
			u := float32(x) / float32(segments)
			phi := u * 2 * math32.Pi
			nx := -math32.Sin(theta) * math32.Sin(phi)
			ny := math32.Cos(theta)
			nz := math32.Sin(theta) * math32.Cos(phi)
			positions = append(positions, nx*radius, ny*radius, nz*radius)
			normals = append(normals, nx, ny, nz)
			uvs = append(uvs, u, v)
		}
	}

	indices = make([]uint32, 0, segments*rings*6)
	for y := 0; y < rings; y++ {
		for x := 0; x < segments; x++ {
			a := uint32(y*stride + x)
			b := a + 1
			c := a + uint32(stride)
			d := c + 1
			indices = append(indices, a, b, c, b, d, c)
		}
	}
	return positions, normals, uvs, indices
}

// Sphere creates a node holding a UV sphere lit by the shadowed Blinn-Phong model, its diffuse
// taken from colour.
//
// Parameters:
//   - name: the node name
//   - radius: the sphere radius
//   - colour: RGBA in 0..255
//   - options: variadic list of MeshBuilderOption functions
//
// Returns:
//   - scene.Node: the sphere node
func Sphere(name string, radius float32, colour [4]uint8, options ...MeshBuilderOption) scene.Node {
	g := newGenerator(material.ShadingShadowedBlinnPhong, options)
	positions, normals, uvs, indices := SphereGeometry(radius, SphereSegments, SphereRings)
	d := model.NewDrawInfo(positions,
		model.WithNormals(normals),
		model.WithUVs(uvs),
		model.WithIndices(indices),
		model.WithColor(rgba(colour)),
		model.WithMaterial(g.colorMaterial(name, colour)),
	)
	return scene.NewNode(name, scene.WithDrawInfo(d), scene.WithRenderingModel(g.model))
}
