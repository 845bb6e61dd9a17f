// Package uniform holds the per-draw uniform blocks of every shading program, laid out to
// match their WGSL structs byte for byte.
package uniform

import (
	_ "embed"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the length of the PBR light arrays.
const MaxLights = 4

// Block is a uniform struct that can serialize itself for upload.
type Block interface {
	// Size returns the struct size in bytes.
	//
	// Returns:
	//   - int: the size in bytes
	Size() int

	// MarshalInto writes the struct into buf, which must hold at least Size bytes.
	//
	// Parameters:
	//   - buf: destination buffer
	MarshalInto(buf []byte)
}

// Bytes serializes b into a freshly allocated slice.
func Bytes(b Block) []byte {
	buf := make([]byte, b.Size())
	b.MarshalInto(buf)
	return buf
}

// GPUDepthUniformsSource is the WGSL definition of DepthUniforms (64 bytes).
//
//go:embed assets/depth_uniforms.wgsl
var GPUDepthUniformsSource string

// GPUDepthUniforms feeds the shadow depth pass.
type GPUDepthUniforms struct {
	LightMVP mgl32.Mat4 // offset 0
}

func (g *GPUDepthUniforms) Size() int { return 64 }

func (g *GPUDepthUniforms) MarshalInto(buf []byte) {
	common.PutMat4(buf, g.LightMVP)
}

// GPUSimpleUniformsSource is the WGSL definition of SimpleUniforms (80 bytes).
//
//go:embed assets/simple_uniforms.wgsl
var GPUSimpleUniformsSource string

// GPUSimpleUniforms feeds the flat colour program.
type GPUSimpleUniforms struct {
	MVP   mgl32.Mat4 // offset  0
	Color mgl32.Vec4 // offset 64
}

func (g *GPUSimpleUniforms) Size() int { return 80 }

func (g *GPUSimpleUniforms) MarshalInto(buf []byte) {
	common.PutMat4(buf, g.MVP)
	common.PutVec4(buf[64:], g.Color)
}

// GPUUnlitUniformsSource is the WGSL definition of UnlitUniforms (64 bytes).
//
//go:embed assets/unlit_uniforms.wgsl
var GPUUnlitUniformsSource string

// GPUUnlitUniforms feeds the textured unlit program.
type GPUUnlitUniforms struct {
	MVP mgl32.Mat4 // offset 0
}

func (g *GPUUnlitUniforms) Size() int { return 64 }

func (g *GPUUnlitUniforms) MarshalInto(buf []byte) {
	common.PutMat4(buf, g.MVP)
}

// GPUPhongUniformsSource is the WGSL definition of PhongUniforms (464 bytes). It includes
// PhongParams, so the pre-processor must know phong_params.
//
//go:embed assets/phong_uniforms.wgsl
var GPUPhongUniformsSource string

// GPUPhongUniforms feeds both Blinn-Phong programs. The unshadowed program ignores LightMVP.
type GPUPhongUniforms struct {
	MVP       mgl32.Mat4              // offset   0
	Model     mgl32.Mat4              // offset  64
	ModelView mgl32.Mat4              // offset 128
	Normal    mgl32.Mat4              // offset 192
	LightMVP  mgl32.Mat4              // offset 256
	CameraPos mgl32.Vec4              // offset 320
	LightPos  mgl32.Vec4              // offset 336
	SpotDir   mgl32.Vec4              // offset 352
	Spot      mgl32.Vec4              // offset 368: inner, outer, bias, texel
	Material  material.GPUPhongParams // offset 384
}

func (g *GPUPhongUniforms) Size() int { return 464 }

func (g *GPUPhongUniforms) MarshalInto(buf []byte) {
	common.PutMat4(buf[0:], g.MVP)
	common.PutMat4(buf[64:], g.Model)
	common.PutMat4(buf[128:], g.ModelView)
	common.PutMat4(buf[192:], g.Normal)
	common.PutMat4(buf[256:], g.LightMVP)
	common.PutVec4(buf[320:], g.CameraPos)
	common.PutVec4(buf[336:], g.LightPos)
	common.PutVec4(buf[352:], g.SpotDir)
	common.PutVec4(buf[368:], g.Spot)
	g.Material.MarshalInto(buf[384:])
}

// GPUPBRUniformsSource is the WGSL definition of PBRUniforms (448 bytes).
//
//go:embed assets/pbr_uniforms.wgsl
var GPUPBRUniformsSource string

// GPUPBRUniforms feeds the metallic-roughness program.
type GPUPBRUniforms struct {
	MVP            mgl32.Mat4            // offset   0
	Model          mgl32.Mat4            // offset  64
	ModelView      mgl32.Mat4            // offset 128
	Normal         mgl32.Mat4            // offset 192
	CameraPos      mgl32.Vec4            // offset 256
	LightPositions [MaxLights]mgl32.Vec4 // offset 272
	LightColors    [MaxLights]mgl32.Vec4 // offset 336
	Params         mgl32.Vec4            // offset 400: ambient, light count
	Material       material.GPUPBRParams // offset 416
}

func (g *GPUPBRUniforms) Size() int { return 448 }

func (g *GPUPBRUniforms) MarshalInto(buf []byte) {
	common.PutMat4(buf[0:], g.MVP)
	common.PutMat4(buf[64:], g.Model)
	common.PutMat4(buf[128:], g.ModelView)
	common.PutMat4(buf[192:], g.Normal)
	common.PutVec4(buf[256:], g.CameraPos)
	for i := range MaxLights {
		common.PutVec4(buf[272+i*16:], g.LightPositions[i])
		common.PutVec4(buf[336+i*16:], g.LightColors[i])
	}
	common.PutVec4(buf[400:], g.Params)
	g.Material.MarshalInto(buf[416:])
}
