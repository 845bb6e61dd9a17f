// Package mesh generates the procedural geometry of the demo scene: spheres, cubes, planes and
// grass, each wrapped in a scene node with its shading model set.
package mesh

import (
	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// generator carries the options shared by every mesh generator.
type generator struct {
	loader  material.TextureLoader
	model   material.ShadingModel
	checker int
	cells   int
}

// MeshBuilderOption is a functional option for the mesh generators.
type MeshBuilderOption func(*generator)

// WithTextureLoader routes generated textures (solid colours, checkers) through the loader.
// Without a loader colours go into the material's diffuse factor and textured slots fall back to
// placeholders.
//
// Parameters:
//   - l: the texture loader
//
// Returns:
//   - MeshBuilderOption: a function that applies the loader to a generator
func WithTextureLoader(l material.TextureLoader) MeshBuilderOption {
	return func(g *generator) {
		g.loader = l
	}
}

// WithShadingModel overrides the generator's default shading model.
//
// Parameters:
//   - m: the shading model
//
// Returns:
//   - MeshBuilderOption: a function that applies the shading model to a generator
func WithShadingModel(m material.ShadingModel) MeshBuilderOption {
	return func(g *generator) {
		g.model = m
	}
}

// WithChecker sets the checker texture size in pixels and the number of cells per side used
// by Plane.
//
// Parameters:
//   - size: texture width and height
//   - cells: squares per side
//
// Returns:
//   - MeshBuilderOption: a function that applies the checker layout to a generator
func WithChecker(size, cells int) MeshBuilderOption {
	return func(g *generator) {
		g.checker = size
		g.cells = cells
	}
}

func newGenerator(model material.ShadingModel, options []MeshBuilderOption) *generator {
	g := &generator{model: model, checker: 256, cells: 8}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// colorMaterial builds a Blinn-Phong material whose diffuse comes from c. With a loader the
// colour is uploaded as a 1x1 albedo map, otherwise it becomes the Kd factor.
func (g *generator) colorMaterial(name string, c [4]uint8, options ...material.MaterialBuilderOption) material.Material {
	opts := []material.MaterialBuilderOption{material.WithName(name)}
	if g.loader != nil {
		opts = append(opts, material.WithTexture(material.SlotAlbedo, g.loader.LoadStaging(name+"_albedo", common.SolidTexture(c))))
	} else {
		opts = append(opts, material.WithDiffuse(rgb(c)))
	}
	return material.DefaultMaterial(append(opts, options...)...)
}

func rgb(c [4]uint8) mgl32.Vec3 {
	return mgl32.Vec3{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255}
}

func rgba(c [4]uint8) mgl32.Vec4 {
	return rgb(c).Vec4(float32(c[3]) / 255)
}

// faceUVs is the texture layout of one quad split into two triangles.
var faceUVs = []float32{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}

// orient maps local xyz triples through the axis basis in place.
func orient(basis mgl32.Mat4, data []float32) {
	for i := 0; i+2 < len(data); i += 3 {
		p := common.TransformPoint(basis, mgl32.Vec3{data[i], data[i+1], data[i+2]})
		data[i], data[i+1], data[i+2] = p[0], p[1], p[2]
	}
}
