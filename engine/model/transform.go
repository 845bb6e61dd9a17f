package model

import "github.com/go-gl/mathgl/mgl32"

// Transform is the editable rotation/translation/scale triple of a scene node. Rotation holds
// Euler angles in radians applied about X, then Y, then Z.
type Transform struct {
	// Rotation is the Euler rotation in radians.
	Rotation mgl32.Vec3

	// Translation is the position offset.
	Translation mgl32.Vec3

	// Scale is the scale factor along each axis.
	Scale mgl32.Vec3
}

// NewTransform returns the identity transform: no rotation, no translation, unit scale.
func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix composes the transform onto base as T * Rx * Ry * Rz * S * base. Scale is applied
// first and translation last. A fresh matrix is returned on every call.
//
// Parameters:
//   - base: the matrix the transform composes onto, typically a node's local matrix
//
// Returns:
//   - mgl32.Mat4: the composed matrix
func (t Transform) Matrix(base mgl32.Mat4) mgl32.Mat4 {
	m := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]).Mul4(base)
	m = mgl32.HomogRotate3DZ(t.Rotation[2]).Mul4(m)
	m = mgl32.HomogRotate3DY(t.Rotation[1]).Mul4(m)
	m = mgl32.HomogRotate3DX(t.Rotation[0]).Mul4(m)
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).Mul4(m)
}
