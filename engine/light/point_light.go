package light

import "github.com/go-gl/mathgl/mgl32"

// MaxPointLights is the length of the light arrays in the PBR uniform block.
const MaxPointLights = 4

// PointLight is an unshadowed light that emits in all directions. PBR shading sums the
// contribution of up to MaxPointLights of them.
type PointLight struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// DefaultPointLights returns the lighting used by PBR materials when the scene defines
// none: one white light at (0, 2, 0).
func DefaultPointLights() []PointLight {
	return []PointLight{{Position: mgl32.Vec3{0, 2, 0}, Color: mgl32.Vec3{1, 1, 1}}}
}

// DefaultAmbient is the ambient term added by the PBR shader.
const DefaultAmbient float32 = 0.01
