package material

import (
	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/go-gl/mathgl/mgl32"
)

var defaultPhong = PhongParams{
	Ka:    mgl32.Vec3{0.3, 0.3, 0.3},
	Kd:    mgl32.Vec3{1, 1, 1},
	Ks:    mgl32.Vec3{1, 1, 1},
	Ke:    mgl32.Vec3{0, 0, 0},
	Ns:    50,
	Ni:    1,
	D:     1,
	Illum: 2,
}

var defaultPBR = PBRParams{
	BaseColor: mgl32.Vec4{1, 1, 1, 1},
	Metalness: 0,
	Roughness: 1,
}

// DefaultMaterial returns a Blinn-Phong material with neutral reflectivity and every slot on
// its placeholder.
func DefaultMaterial(options ...MaterialBuilderOption) Material {
	return NewMaterial(append([]MaterialBuilderOption{WithName("default")}, options...)...)
}

// DefaultPBRMaterial returns a fully rough, non-metallic white PBR material.
func DefaultPBRMaterial(options ...MaterialBuilderOption) Material {
	return NewMaterial(append([]MaterialBuilderOption{WithName("default_pbr")}, options...)...)
}

// CheckerTexture generates a size x size checkerboard with cells squares per side.
//
// Parameters:
//   - size: texture width and height in pixels
//   - cells: number of squares along each side
//   - a: colour of the even squares
//   - b: colour of the odd squares
//
// Returns:
//   - common.TextureStagingData: the RGBA pixels
func CheckerTexture(size, cells int, a, b [4]uint8) common.TextureStagingData {
	if cells < 1 {
		cells = 1
	}
	cell := max(1, size/cells)
	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			copy(pix[(y*size+x)*4:], c[:])
		}
	}
	return common.TextureStagingData{Pixels: pix, Width: uint32(size), Height: uint32(size)}
}
