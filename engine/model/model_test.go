package model

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformIdentityReturnsBase(t *testing.T) {
	base := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DY(0.4))
	assert.Equal(t, base, NewTransform().Matrix(base))
}

func TestTransformComposition(t *testing.T) {
	tr := Transform{
		Rotation:    mgl32.Vec3{0.1, 0.2, 0.3},
		Translation: mgl32.Vec3{4, 5, 6},
		Scale:       mgl32.Vec3{2, 3, 4},
	}
	base := mgl32.Translate3D(-1, 0, 1)

	want := mgl32.Translate3D(4, 5, 6).
		Mul4(mgl32.HomogRotate3DX(0.1)).
		Mul4(mgl32.HomogRotate3DY(0.2)).
		Mul4(mgl32.HomogRotate3DZ(0.3)).
		Mul4(mgl32.Scale3D(2, 3, 4)).
		Mul4(base)

	assert.True(t, want.ApproxEqualThreshold(tr.Matrix(base), 1e-5))
}

func TestTransformTranslationIsOutermost(t *testing.T) {
	tr := NewTransform()
	tr.Rotation[1] = math32.Pi / 2
	tr.Translation = mgl32.Vec3{10, 0, 0}

	p := tr.Matrix(mgl32.Ident4()).Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	// rotate (1,0,0) about Y by 90 degrees to (0,0,-1), then translate
	assert.InDelta(t, 10, p.X(), 1e-5)
	assert.InDelta(t, -1, p.Z(), 1e-5)
}

func TestComputeVertexNormalsFlat(t *testing.T) {
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 0, -1,
	}
	normals := ComputeVertexNormals(positions, nil)
	require.Len(t, normals, 9)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1, normals[i*3+1], 1e-6)
	}
}

func TestComputeVertexNormalsIndexedAveraging(t *testing.T) {
	// two faces meeting at a 90 degree edge along the z axis
	positions := []float32{
		0, 0, 0,
		0, 0, 1,
		1, 0, 0,
		0, 1, 0,
	}
	indices := []uint32{
		0, 1, 2, // up-facing (+y)
		0, 3, 1, // +x facing
	}
	normals := ComputeVertexNormals(positions, indices)
	shared := mgl32.Vec3{normals[0], normals[1], normals[2]}
	assert.InDelta(t, 1, shared.Len(), 1e-5)
	assert.InDelta(t, shared.X(), shared.Y(), 1e-5)
}

func TestGeneratePlanarUVs(t *testing.T) {
	positions := []float32{
		-1, 0, -1,
		1, 0, -1,
		1, 0, 1,
	}
	uvs := GeneratePlanarUVs(positions)
	require.Len(t, uvs, 6)
	for _, v := range uvs {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
	assert.Equal(t, []float32{0, 0}, uvs[0:2])
	assert.Equal(t, []float32{1, 1}, uvs[4:6])
}

func TestGenerateTangentsFollowsU(t *testing.T) {
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	normals := []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}
	uvs := []float32{0, 0, 1, 0, 0, 1}

	tangents := GenerateTangents(positions, normals, uvs, nil)
	require.Len(t, tangents, 12)
	assert.InDelta(t, 1, tangents[0], 1e-5)
	assert.InDelta(t, 0, tangents[1], 1e-5)
	assert.Equal(t, float32(1), tangents[3])
}

func TestNewDrawInfoGeneratesMissingAttributes(t *testing.T) {
	d := NewDrawInfo([]float32{0, 0, 0, 1, 0, 0, 0, 0, -1})
	assert.Equal(t, 3, d.VertexCount())
	assert.Len(t, d.Normals(), 9)
	assert.Len(t, d.UVs(), 6)
	assert.Len(t, d.Tangents(), 12)
	assert.False(t, d.Indexed())
	assert.NotNil(t, d.Material())
	assert.Equal(t, PrimitiveTriangles, d.Primitive())
}

func TestDrawInfoLinesSkipTangents(t *testing.T) {
	d := NewDrawInfo([]float32{0, 0, 0, 1, 0, 0}, WithPrimitive(PrimitiveLines), WithNormals([]float32{0, 1, 0, 0, 1, 0}))
	assert.Empty(t, d.Tangents())

	verts := d.Interleave()
	require.Len(t, verts, 2)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, verts[1].Tangent)
}

func TestInterleaveLayout(t *testing.T) {
	d := NewDrawInfo(
		[]float32{1, 2, 3},
		WithNormals([]float32{0, 1, 0}),
		WithUVs([]float32{0.25, 0.75}),
		WithTangents([]float32{1, 0, 0, -1}),
		WithColor(mgl32.Vec4{0.5, 0.5, 0.5, 1}),
	)
	v := d.Interleave()[0]
	assert.Equal(t, [3]float32{1, 2, 3}, v.Position)
	assert.Equal(t, [2]float32{0.25, 0.75}, v.TexCoord)
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 1}, v.Color)
	assert.Equal(t, GPUVertexSize, v.Size())
	assert.Len(t, VertexBytes([]GPUVertex{v}), GPUVertexSize)
}
