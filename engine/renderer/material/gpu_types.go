package material

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUPhongParamsSource is the canonical WGSL definition of the PhongParams struct.
// Matches GPUPhongParams layout exactly (80 bytes, std140 aligned).
//
//go:embed assets/phong_params.wgsl
var GPUPhongParamsSource string

// GPUPhongParams is the GPU-aligned form of PhongParams.
// Size: 80 bytes (five vec4<f32>).
type GPUPhongParams struct {
	Ka      [4]float32 // offset  0: ambient reflectivity (16 bytes)
	Kd      [4]float32 // offset 16: diffuse reflectivity (16 bytes)
	Ks      [4]float32 // offset 32: specular reflectivity (16 bytes)
	Ke      [4]float32 // offset 48: emissive colour (16 bytes)
	Factors [4]float32 // offset 64: Ns, Ni, d, illum (16 bytes)
}

// NewGPUPhongParams converts PhongParams into their uniform layout.
func NewGPUPhongParams(p PhongParams) GPUPhongParams {
	return GPUPhongParams{
		Ka:      p.Ka.Vec4(1),
		Kd:      p.Kd.Vec4(1),
		Ks:      p.Ks.Vec4(1),
		Ke:      p.Ke.Vec4(1),
		Factors: [4]float32{p.Ns, p.Ni, p.D, float32(p.Illum)},
	}
}

// Size returns the size of the GPUPhongParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUPhongParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalInto writes the struct into buf, which must hold at least Size bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUPhongParams) MarshalInto(buf []byte) {
	common.PutVec4(buf[0:], g.Ka)
	common.PutVec4(buf[16:], g.Kd)
	common.PutVec4(buf[32:], g.Ks)
	common.PutVec4(buf[48:], g.Ke)
	common.PutVec4(buf[64:], g.Factors)
}

// GPUPBRParamsSource is the canonical WGSL definition of the PBRParams struct.
// Matches GPUPBRParams layout exactly (32 bytes, std140 aligned).
//
//go:embed assets/pbr_params.wgsl
var GPUPBRParamsSource string

// GPUPBRParams is the GPU-aligned form of PBRParams.
// Size: 32 bytes (two vec4<f32>).
type GPUPBRParams struct {
	BaseColor [4]float32 // offset  0: base colour factor (16 bytes)
	Factors   [4]float32 // offset 16: metalness, roughness, unused, unused (16 bytes)
}

// NewGPUPBRParams converts PBRParams into their uniform layout.
func NewGPUPBRParams(p PBRParams) GPUPBRParams {
	return GPUPBRParams{
		BaseColor: p.BaseColor,
		Factors:   mgl32.Vec4{p.Metalness, p.Roughness, 0, 0},
	}
}

// Size returns the size of the GPUPBRParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUPBRParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalInto writes the struct into buf, which must hold at least Size bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUPBRParams) MarshalInto(buf []byte) {
	common.PutVec4(buf[0:], g.BaseColor)
	common.PutVec4(buf[16:], g.Factors)
}
