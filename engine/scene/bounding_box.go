package scene

import (
	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox is an axis-aligned box in world space.
type BoundingBox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the per-axis extent of the box.
func (b BoundingBox) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Extent returns the length of the box diagonal.
func (b BoundingBox) Extent() float32 {
	return b.Size().Len()
}

// boxAccumulator folds points and boxes into a running min/max.
type boxAccumulator struct {
	min, max mgl32.Vec3
}

func newBoxAccumulator() boxAccumulator {
	inf := math32.Inf(1)
	return boxAccumulator{
		min: mgl32.Vec3{inf, inf, inf},
		max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (a *boxAccumulator) addPoint(p mgl32.Vec3) {
	a.min = common.Vec3Min(a.min, p)
	a.max = common.Vec3Max(a.max, p)
}

func (a *boxAccumulator) addBox(b *BoundingBox) {
	a.min = common.Vec3Min(a.min, b.Min)
	a.max = common.Vec3Max(a.max, b.Max)
}

// valid reports whether anything was folded in. Only the x axis is checked since every fold
// updates all three axes together.
func (a *boxAccumulator) valid() bool {
	return !math32.IsInf(a.min[0], 1) && !math32.IsInf(a.max[0], -1)
}

func (a *boxAccumulator) box() *BoundingBox {
	return &BoundingBox{Min: a.min, Max: a.max}
}
