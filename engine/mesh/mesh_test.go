package mesh

import (
	"context"
	"testing"
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereCounts(t *testing.T) {
	s := Sphere("ball", 0.5, [4]uint8{255, 0, 0, 255})
	d := s.DrawInfo()
	require.NotNil(t, d)

	assert.Equal(t, (SphereSegments+1)*(SphereRings+1), d.VertexCount())
	assert.Len(t, d.Indices(), SphereSegments*SphereRings*6)
	assert.Equal(t, material.ShadingShadowedBlinnPhong, s.RenderingModel())
	assert.Len(t, d.Tangents(), d.VertexCount()*4)
	assert.InDelta(t, 1, d.Material().Phong().Kd[0], 1e-6)
	assert.InDelta(t, 0, d.Material().Phong().Kd[1], 1e-6)
}

func TestSphereGeometryOnSurface(t *testing.T) {
	positions, normals, _, indices := SphereGeometry(2, 16, 8)
	for i := 0; i < len(positions); i += 3 {
		p := mgl32.Vec3{positions[i], positions[i+1], positions[i+2]}
		assert.InDelta(t, 2, p.Len(), 1e-4)
		n := mgl32.Vec3{normals[i], normals[i+1], normals[i+2]}
		assert.True(t, p.Normalize().ApproxEqualThreshold(n, 1e-4))
	}

	// the first equator-band triangle winds counter-clockwise seen from outside
	base := 4 * 16 * 6
	a, b, c := indices[base], indices[base+1], indices[base+2]
	pa := mgl32.Vec3{positions[a*3], positions[a*3+1], positions[a*3+2]}
	pb := mgl32.Vec3{positions[b*3], positions[b*3+1], positions[b*3+2]}
	pc := mgl32.Vec3{positions[c*3], positions[c*3+1], positions[c*3+2]}
	face := pb.Sub(pa).Cross(pc.Sub(pa))
	assert.Greater(t, face.Dot(pa), float32(0))
}

func TestSphereUploadsColourWithLoader(t *testing.T) {
	backend := renderer.NewHeadlessBackend(64, 64)
	loader := material.NewTextureLoader(backend)

	s := Sphere("ball", 1, [4]uint8{10, 20, 30, 255}, WithTextureLoader(loader))
	mat := s.DrawInfo().Material()
	f := mat.Texture(material.SlotAlbedo)
	require.NotNil(t, f)

	tex, err := f.Await(context.Background(), time.Second)
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, uint32(1), w)
	assert.Equal(t, uint32(1), h)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, mat.Phong().Kd)
}

func TestCubeFaces(t *testing.T) {
	c := Cube("box", mgl32.Vec3{0, 0, 1}, 2, [4]uint8{0, 0, 255, 255})
	d := c.DrawInfo()
	require.Equal(t, 36, d.VertexCount())
	assert.False(t, d.Indexed())

	pos, nrm := d.Positions(), d.Normals()
	for f := 0; f < 6; f++ {
		n := mgl32.Vec3{nrm[f*18], nrm[f*18+1], nrm[f*18+2]}
		for v := 0; v < 6; v++ {
			i := (f*6 + v) * 3
			p := mgl32.Vec3{pos[i], pos[i+1], pos[i+2]}
			// every vertex of a face lies on the plane its normal points out of
			assert.InDelta(t, 1, p.Dot(n), 1e-5)
		}
	}

	c.ComputeBoundingBox()
	size, err := c.BoundingBoxSize()
	require.NoError(t, err)
	assert.True(t, size.ApproxEqualThreshold(mgl32.Vec3{2, 2, 2}, 1e-5))
}

func TestCubeFollowsAxis(t *testing.T) {
	c := Cube("box", mgl32.Vec3{0, 1, 0}, 1, [4]uint8{255, 255, 255, 255})
	nrm := c.DrawInfo().Normals()
	// the front face normal is turned from +Z onto the axis
	assert.True(t, mgl32.Vec3{nrm[0], nrm[1], nrm[2]}.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5))
}

func TestWireFrameCube(t *testing.T) {
	w := WireFrameCube("frustum", mgl32.Vec3{0, 1, 0}, 2, [4]uint8{0, 0, 255, 255})
	d := w.DrawInfo()
	assert.Equal(t, 24, d.VertexCount())
	assert.Equal(t, model.PrimitiveLines, d.Primitive())
	assert.Equal(t, material.ShadingSimple, w.RenderingModel())
	assert.Equal(t, mgl32.Vec4{0, 0, 1, 1}, d.Color())

	pos := d.Positions()
	for i := 0; i < len(pos); i += 3 {
		for k := 0; k < 3; k++ {
			assert.InDelta(t, 1, math32.Abs(pos[i+k]), 1e-5)
		}
	}
}

func TestPlane(t *testing.T) {
	p := Plane("floor", mgl32.Vec3{0, 1, 0}, 10)
	d := p.DrawInfo()
	require.Equal(t, 6, d.VertexCount())
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, d.Material().Phong().Ks)

	pos := d.Positions()
	for i := 0; i < len(pos); i += 3 {
		assert.InDelta(t, 0, pos[i+1], 1e-6)
	}
	nrm := d.Normals()
	assert.Equal(t, []float32{0, 1, 0}, nrm[:3])

	p.ComputeBoundingBox()
	size, err := p.BoundingBoxSize()
	require.NoError(t, err)
	assert.InDelta(t, 10, size.X(), 1e-5)
	assert.InDelta(t, 10, size.Z(), 1e-5)
}

func TestPlaneCheckerWithLoader(t *testing.T) {
	loader := material.NewTextureLoader(renderer.NewHeadlessBackend(64, 64))
	p := Plane("floor", mgl32.Vec3{0, 1, 0}, 10, WithTextureLoader(loader), WithChecker(64, 4))
	mat := p.DrawInfo().Material()

	for _, slot := range []material.TextureSlot{material.SlotAlbedo, material.SlotAmbient} {
		f := mat.Texture(slot)
		require.NotNil(t, f, slot.String())
		tex, err := f.Await(context.Background(), time.Second)
		require.NoError(t, err)
		w, _ := tex.Size()
		assert.Equal(t, uint32(64), w)
	}
}

func TestGrassBladeIsTwoSided(t *testing.T) {
	b := GrassBlade("blade")
	d := b.DrawInfo()
	half := d.VertexCount() / 2
	nrm := d.Normals()

	front := mgl32.Vec3{nrm[0], nrm[1], nrm[2]}
	back := mgl32.Vec3{nrm[half*3], nrm[half*3+1], nrm[half*3+2]}
	assert.Greater(t, front.Z(), float32(0))
	assert.Less(t, back.Z(), float32(0))
}

func TestGlobeCoveredWithGrass(t *testing.T) {
	globe, err := GlobeCoveredWithGrass("globe", 1, 6)
	require.NoError(t, err)

	children := globe.Children()
	require.Len(t, children, 1)
	grass := children[0]
	assert.Equal(t, "globe_grass", grass.Name())
	assert.True(t, grass.MultipleInstance())
	assert.Len(t, grass.InstancesLocalMatrices(), 36)

	extent, err := grass.BoundingBoxExtent()
	require.NoError(t, err)
	assert.InDelta(t, 1.0/8, extent, 1e-4)
}

func TestRingPlacementsFirstInstance(t *testing.T) {
	center := mgl32.Vec3{0, 0.5, 0}
	size := mgl32.Vec3{0.1, 1, 0.1}
	ms := RingPlacements(mgl32.Ident4(), center, size, 1, 4)
	require.Len(t, ms, 16)

	// instance (0, 0) is unrotated, so its box center lands straight above the origin
	offset := size.Y()/2 + 1 - size.Y()/5
	got := ms[0].Mul4x1(center.Vec4(1)).Vec3()
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{0, offset, 0}, 1e-5), got)
}
