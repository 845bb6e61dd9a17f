package mesh

import (
	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// cubeFaces lists the two triangles of each face in unit-cube coordinates, front, back, top,
// bottom, right, left.
var cubeFaces = [6][18]float32{
	{-1, -1, 1, 1, -1, 1, 1, 1, 1, -1, -1, 1, 1, 1, 1, -1, 1, 1},
	{-1, -1, -1, -1, 1, -1, 1, 1, -1, -1, -1, -1, 1, 1, -1, 1, -1, -1},
	{-1, 1, -1, -1, 1, 1, 1, 1, 1, -1, 1, -1, 1, 1, 1, 1, 1, -1},
	{-1, -1, -1, 1, -1, -1, 1, -1, 1, -1, -1, -1, 1, -1, 1, -1, -1, 1},
	{1, -1, -1, 1, 1, -1, 1, 1, 1, 1, -1, -1, 1, 1, 1, 1, -1, 1},
	{-1, -1, -1, -1, -1, 1, -1, 1, 1, -1, -1, -1, -1, 1, 1, -1, 1, -1},
}

var cubeNormals = [6]mgl32.Vec3{
	{0, 0, 1}, {0, 0, -1}, {0, 1, 0}, {0, -1, 0}, {1, 0, 0}, {-1, 0, 0},
}

// cubeCorners and cubeEdges describe the wireframe: four front corners, four back corners,
// then the front loop, back loop and connecting edges.
var cubeCorners = [8]mgl32.Vec3{
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
}

var cubeEdges = [24]int{0, 1, 1, 2, 2, 3, 3, 0, 4, 5, 5, 6, 6, 7, 7, 4, 0, 4, 1, 5, 2, 6, 3, 7}

// Cube creates a node holding a 36-vertex cube of edge length size whose local Z is turned onto
// axis. Each face carries its own normal and a full 0..1 UV square.
//
// Parameters:
//   - name: the node name
//   - axis: the direction the cube's front face points
//   - size: the edge length
//   - colour: RGBA in 0..255
//   - options: variadic list of MeshBuilderOption functions
//
// Returns:
//   - scene.Node: the cube node
func Cube(name string, axis mgl32.Vec3, size float32, colour [4]uint8, options ...MeshBuilderOption) scene.Node {
	g := newGenerator(material.ShadingShadowedBlinnPhong, options)
	basis, _, _ := common.AxisBasis(axis)
	h := size / 2

	positions := make([]float32, 0, 36*3)
	normals := make([]float32, 0, 36*3)
	uvs := make([]float32, 0, 36*2)
	for f, face := range cubeFaces {
		for _, c := range face {
			positions = append(positions, c*h)
		}
		n := cubeNormals[f]
		for range 6 {
			normals = append(normals, n[0], n[1], n[2])
		}
		uvs = append(uvs, faceUVs...)
	}
	orient(basis, positions)
	orient(basis, normals)

	d := model.NewDrawInfo(positions,
		model.WithNormals(normals),
		model.WithUVs(uvs),
		model.WithColor(rgba(colour)),
		model.WithMaterial(g.colorMaterial(name, colour)),
	)
	return scene.NewNode(name, scene.WithDrawInfo(d), scene.WithRenderingModel(g.model))
}

// WireFrameCube creates a node holding the 12 edges of a cube as 24 line vertices, drawn with
// the simple flat-colour model.
//
// Parameters:
//   - name: the node name
//   - axis: the direction the cube's front face points
//   - size: the edge length
//   - colour: RGBA in 0..255
//
// Returns:
//   - scene.Node: the wireframe node
func WireFrameCube(name string, axis mgl32.Vec3, size float32, colour [4]uint8) scene.Node {
	basis, _, _ := common.AxisBasis(axis)
	h := size / 2

	positions := make([]float32, 0, len(cubeEdges)*3)
	for _, i := range cubeEdges {
		c := cubeCorners[i].Mul(h)
		positions = append(positions, c[0], c[1], c[2])
	}
	orient(basis, positions)

	d := model.NewDrawInfo(positions,
		model.WithNormals(make([]float32, len(positions))),
		model.WithPrimitive(model.PrimitiveLines),
		model.WithColor(rgba(colour)),
	)
	return scene.NewNode(name, scene.WithDrawInfo(d), scene.WithRenderingModel(material.ShadingSimple))
}
