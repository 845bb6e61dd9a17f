package mesh

import (
	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	checkerLight = [4]uint8{255, 255, 255, 255}
	checkerDark  = [4]uint8{160, 160, 160, 255}
)

// planeQuad is the local xy quad of a unit plane as two triangles.
var planeQuad = []float32{-1, -1, 1, -1, 1, 1, -1, -1, 1, 1, -1, 1}

// Plane creates a node holding a size x size quad facing axis. The diffuse and ambient slots
// share a checker texture when a loader is set, and specular reflectivity is kept low.
//
// Parameters:
//   - name: the node name
//   - axis: the plane normal
//   - size: the edge length
//   - options: variadic list of MeshBuilderOption functions
//
// Returns:
//   - scene.Node: the plane node
func Plane(name string, axis mgl32.Vec3, size float32, options ...MeshBuilderOption) scene.Node {
	g := newGenerator(material.ShadingShadowedBlinnPhong, options)
	_, tangent, bitangent := common.AxisBasis(axis)
	n := axis.Normalize()
	h := size / 2

	positions := make([]float32, 0, 6*3)
	normals := make([]float32, 0, 6*3)
	for i := 0; i < len(planeQuad); i += 2 {
		p := tangent.Mul(planeQuad[i] * h).Add(bitangent.Mul(planeQuad[i+1] * h))
		positions = append(positions, p[0], p[1], p[2])
		normals = append(normals, n[0], n[1], n[2])
	}

	opts := []material.MaterialBuilderOption{material.WithName(name), material.WithSpecular(0.1)}
	if g.loader != nil {
		checker := material.CheckerTexture(g.checker, g.cells, checkerLight, checkerDark)
		opts = append(opts,
			material.WithTexture(material.SlotAlbedo, g.loader.LoadStaging(name+"_albedo", checker)),
			material.WithTexture(material.SlotAmbient, g.loader.LoadStaging(name+"_ambient", checker)),
		)
	}

	d := model.NewDrawInfo(positions,
		model.WithNormals(normals),
		model.WithUVs(append([]float32(nil), faceUVs...)),
		model.WithMaterial(material.DefaultMaterial(opts...)),
	)
	return scene.NewNode(name, scene.WithDrawInfo(d), scene.WithRenderingModel(g.model))
}
