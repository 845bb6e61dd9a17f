package mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	bladeSegments = 4
	bladeWidth    = 0.12
	bladeHeight   = 1
	bladeBend     = 0.25
)

var (
	grassColour = [4]uint8{40, 150, 30, 255}
	globeColour = [4]uint8{10, 140, 0, 255}
)

// bladeGeometry returns a tapered, slightly bent strip rising along +Y. Both faces are emitted
// with their own vertices so back-face culling keeps one side visible from any direction.
func bladeGeometry() (positions []float32, indices []uint32) {
	side := make([]float32, 0, (bladeSegments*2+1)*3)
	for i := 0; i < bladeSegments; i++ {
		t := float32(i) / bladeSegments
		w := bladeWidth / 2 * (1 - t)
		y := t * bladeHeight
		z := bladeBend * t * t
		side = append(side, -w, y, z, w, y, z)
	}
	side = append(side, 0, bladeHeight, bladeBend)
	perSide := uint32(len(side) / 3)

	front := make([]uint32, 0, (bladeSegments*2-1)*3)
	for i := uint32(0); i+1 < bladeSegments; i++ {
		l, r := i*2, i*2+1
		front = append(front, l, r, l+3, l, l+3, l+2)
	}
	tip := perSide - 1
	front = append(front, tip-2, tip-1, tip)

	positions = append(append(positions, side...), side...)
	indices = append(indices, front...)
	for i := 0; i < len(front); i += 3 {
		indices = append(indices, front[i]+perSide, front[i+2]+perSide, front[i+1]+perSide)
	}
	return positions, indices
}

// GrassBlade creates a node holding one procedural blade of grass, one unit tall.
//
// Parameters:
//   - name: the node name
//   - options: variadic list of MeshBuilderOption functions
//
// Returns:
//   - scene.Node: the blade node
func GrassBlade(name string, options ...MeshBuilderOption) scene.Node {
	g := newGenerator(material.ShadingShadowedBlinnPhong, options)
	positions, indices := bladeGeometry()
	d := model.NewDrawInfo(positions,
		model.WithIndices(indices),
		model.WithColor(rgba(grassColour)),
		model.WithMaterial(g.colorMaterial(name, grassColour, material.WithSpecular(0.05))),
	)
	return scene.NewNode(name, scene.WithDrawInfo(d), scene.WithRenderingModel(g.model))
}

// GlobeCoveredWithGrass creates a sphere with an instanced grass child. The blade is scaled to
// an eighth of a unit extent and repeated bladesPerRing x bladesPerRing times, rotated about Z
// and X in equal steps and pushed out to just below the surface. A bladesPerRing of zero or less
// derives the count from the globe circumference.
//
// Parameters:
//   - name: the globe node name, the grass child is name + "_grass"
//   - radius: the globe radius
//   - bladesPerRing: instances per ring
//   - options: variadic list of MeshBuilderOption functions
//
// Returns:
//   - scene.Node: the globe node
//   - error: error if the grass could not be sized or attached
func GlobeCoveredWithGrass(name string, radius float32, bladesPerRing int, options ...MeshBuilderOption) (scene.Node, error) {
	globe := Sphere(name, radius, globeColour, options...)
	grass := GrassBlade(name+"_grass", options...)

	grass.ComputeBoundingBox()
	extent, err := grass.BoundingBoxExtent()
	if err != nil {
		return nil, fmt.Errorf("size grass for %q: %w", name, err)
	}
	grass.ScaleNode(1 / (extent * 8))
	size, err := grass.BoundingBoxSize()
	if err != nil {
		return nil, fmt.Errorf("size grass for %q: %w", name, err)
	}
	center, err := grass.BoundingBoxCenter()
	if err != nil {
		return nil, fmt.Errorf("size grass for %q: %w", name, err)
	}

	n := bladesPerRing
	if n <= 0 {
		n = (int(math32.Floor(2*math32.Pi*radius/size.X())) + 1) * 5
	}
	grass.ActivateMultipleInstance()
	grass.SetInstancesLocalMatrices(RingPlacements(grass.LocalMatrix(), center, size, radius, n))

	if err := globe.AddChild(grass); err != nil {
		return nil, fmt.Errorf("attach grass to %q: %w", name, err)
	}
	return globe, nil
}

// RingPlacements returns n*n local matrices for a blade whose bounding box has the given
// center and size. Instance (i, j) is turned by i steps about Z and j steps about X, then moved
// so its box center sits at the ring offset just under the globe surface.
//
// Parameters:
//   - local: the blade's local matrix
//   - center: the blade's bounding box center
//   - size: the blade's bounding box size
//   - radius: the globe radius
//   - n: steps per ring
//
// Returns:
//   - []mgl32.Mat4: the instance local matrices
func RingPlacements(local mgl32.Mat4, center, size mgl32.Vec3, radius float32, n int) []mgl32.Mat4 {
	offset := size.Y()/2 + radius - size.Y()/5
	chunk := 2 * math32.Pi / float32(n)
	out := make([]mgl32.Mat4, 0, n*n)
	for i := 0; i < n; i++ {
		a := math32.Pi/2 + float32(i)*chunk
		for j := 0; j < n; j++ {
			b := math32.Pi/2 + float32(j)*chunk
			m := mgl32.HomogRotate3DZ(float32(i) * chunk).Mul4(mgl32.HomogRotate3DX(float32(j) * chunk)).Mul4(local)
			target := mgl32.Vec3{math32.Cos(a) * offset, math32.Sin(a) * offset, math32.Cos(b) * offset}
			d := target.Sub(center)
			out = append(out, mgl32.Translate3D(d[0], d[1], d[2]).Mul4(m))
		}
	}
	return out
}
