package common

import (
	"encoding/binary"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// PutMat4 writes m into buf as 16 little-endian float32 values in column-major order.
// buf must hold at least 64 bytes.
func PutMat4(buf []byte, m mgl32.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math32.Float32bits(v))
	}
}

// PutVec4 writes v into buf as 4 little-endian float32 values.
func PutVec4(buf []byte, v mgl32.Vec4) {
	for i, c := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math32.Float32bits(c))
	}
}

// TransformPoint multiplies (p, 1) by m and drops the w component.
// Affine matrices keep w at 1 so no divide is applied.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// NormalMatrix returns transpose(inverse(mv)), the matrix that keeps normals perpendicular
// to surfaces under non-uniform scale.
func NormalMatrix(mv mgl32.Mat4) mgl32.Mat4 {
	return mv.Inv().Transpose()
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Vec3Equal reports exact component equality. No epsilon is applied.
func Vec3Equal(a, b mgl32.Vec3) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}

// Vec3Min returns the component-wise minimum of a and b.
func Vec3Min(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Min(a[0], b[0]), math32.Min(a[1], b[1]), math32.Min(a[2], b[2])}
}

// Vec3Max returns the component-wise maximum of a and b.
func Vec3Max(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Max(a[0], b[0]), math32.Max(a[1], b[1]), math32.Max(a[2], b[2])}
}

// FindOrthogonalVector returns a unit vector perpendicular to v.
// Vectors parallel to Z fall back to the X axis.
//
// Parameters:
//   - v: the reference direction
//
// Returns:
//   - mgl32.Vec3: a normalized vector orthogonal to v
func FindOrthogonalVector(v mgl32.Vec3) mgl32.Vec3 {
	if v[0] == 0 && v[1] == 0 {
		return mgl32.Vec3{1, 0, 0}
	}
	return mgl32.Vec3{-v[1], v[0], 0}.Normalize()
}

// AxisBasis builds a rotation whose columns are (tangent, bitangent, axis), mapping the
// generator's local Z axis onto axis.
//
// Parameters:
//   - axis: the direction local +Z should face, need not be normalized
//
// Returns:
//   - mgl32.Mat4: the basis matrix
//   - mgl32.Vec3: the tangent column
//   - mgl32.Vec3: the bitangent column
func AxisBasis(axis mgl32.Vec3) (mgl32.Mat4, mgl32.Vec3, mgl32.Vec3) {
	n := axis.Normalize()
	tangent := FindOrthogonalVector(n)
	bitangent := n.Cross(tangent)
	return mgl32.Mat4{
		tangent[0], tangent[1], tangent[2], 0,
		bitangent[0], bitangent[1], bitangent[2], 0,
		n[0], n[1], n[2], 0,
		0, 0, 0, 1,
	}, tangent, bitangent
}
