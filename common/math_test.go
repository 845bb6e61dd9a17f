package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestAxisBasisMapsZOntoAxis(t *testing.T) {
	for _, axis := range []mgl32.Vec3{{0, 1, 0}, {1, 0, 0}, {0, 0, 1}, {0, 0, -2}, {1, 1, 1}} {
		m, tangent, bitangent := AxisBasis(axis)
		n := axis.Normalize()

		assert.True(t, TransformPoint(m, mgl32.Vec3{0, 0, 1}).ApproxEqualThreshold(n, 1e-6), "axis %v", axis)
		assert.InDelta(t, 0, tangent.Dot(n), 1e-6)
		assert.InDelta(t, 0, bitangent.Dot(n), 1e-6)
		assert.InDelta(t, 1, tangent.Len(), 1e-6)
		assert.InDelta(t, 1, bitangent.Len(), 1e-6)
	}
}

func TestPutMat4ColumnMajor(t *testing.T) {
	buf := make([]byte, 64)
	PutMat4(buf, mgl32.Translate3D(1, 2, 3))

	// translation lives in the 4th column, floats 12..14
	assert.Equal(t, SliceToBytes([]float32{1, 2, 3}), buf[48:60])
}

func TestNormalMatrixUndoesNonUniformScale(t *testing.T) {
	mv := mgl32.Scale3D(2, 1, 1)
	n := TransformPoint(NormalMatrix(mv), mgl32.Vec3{1, 1, 0}).Normalize()

	// (1, 1, 0) is the normal of the plane spanned by (1, -1, 0) and z
	tangent := TransformPoint(mv, mgl32.Vec3{1, -1, 0})
	assert.InDelta(t, 0, n.Dot(tangent), 1e-6)
}

func TestVec3Helpers(t *testing.T) {
	a, b := mgl32.Vec3{1, 5, -2}, mgl32.Vec3{3, 0, -1}

	assert.Equal(t, mgl32.Vec3{1, 0, -2}, Vec3Min(a, b))
	assert.Equal(t, mgl32.Vec3{3, 5, -1}, Vec3Max(a, b))
	assert.True(t, Vec3Equal(a, a))
	assert.False(t, Vec3Equal(a, b))
	assert.InDelta(t, 3.14159265/2, DegToRad(90), 1e-6)
}
