package renderer

import (
	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/light"
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/uniform"
	"github.com/go-gl/mathgl/mgl32"
)

// assembleUniforms builds the uniform block of one draw of d with world matrix m. ok is false
// for models without a colour program.
func assembleUniforms(rc *RenderContext, shading material.ShadingModel, m mgl32.Mat4, d model.DrawInfo, mat material.Material) (block uniform.Block, ok bool) {
	cam := rc.Camera
	switch shading {
	case material.ShadingSimple:
		return &uniform.GPUSimpleUniforms{MVP: cam.MVP(m), Color: d.Color()}, true
	case material.ShadingUnlit:
		return &uniform.GPUUnlitUniforms{MVP: cam.MVP(m)}, true
	case material.ShadingBlinnPhong, material.ShadingShadowedBlinnPhong:
		mv := cam.ModelViewMatrix(m)
		lc := rc.Light.Camera()
		return &uniform.GPUPhongUniforms{
			MVP:       cam.MVP(m),
			Model:     m,
			ModelView: mv,
			Normal:    common.NormalMatrix(mv),
			LightMVP:  lc.MVP(m),
			CameraPos: cam.Position().Vec4(1),
			LightPos:  lc.Position().Vec4(1),
			SpotDir:   lc.Direction().Vec4(0),
			Spot: mgl32.Vec4{
				rc.Light.SpotInnerLimit(),
				rc.Light.SpotOuterLimit(),
				light.DefaultShadowBias,
				1 / float32(max(rc.Light.ShadowTextureSize(), 1)),
			},
			Material: material.NewGPUPhongParams(mat.Phong()),
		}, true
	case material.ShadingPBR:
		mv := cam.ModelViewMatrix(m)
		u := &uniform.GPUPBRUniforms{
			MVP:       cam.MVP(m),
			Model:     m,
			ModelView: mv,
			Normal:    common.NormalMatrix(mv),
			CameraPos: cam.Position().Vec4(1),
			Material:  material.NewGPUPBRParams(mat.PBR()),
		}
		lights := rc.pointLights()
		n := min(len(lights), uniform.MaxLights)
		for i := range n {
			u.LightPositions[i] = lights[i].Position.Vec4(1)
			u.LightColors[i] = lights[i].Color.Vec4(1)
		}
		u.Params = mgl32.Vec4{rc.AmbientLight, float32(n), 0, 0}
		return u, true
	default:
		return nil, false
	}
}
