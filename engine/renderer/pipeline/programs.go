package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/shader"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/uniform"
)

// DepthKey is the key of the shadow depth program.
const DepthKey = "depth"

var programFiles = map[material.ShadingModel]string{
	material.ShadingSimple:             "simple.wgsl",
	material.ShadingUnlit:              "unlit.wgsl",
	material.ShadingBlinnPhong:         "bph.wgsl",
	material.ShadingShadowedBlinnPhong: "sh_bph.wgsl",
	material.ShadingPBR:                "pbr.wgsl",
}

var uniformBlocks = map[material.ShadingModel]uniform.Block{
	material.ShadingSimple:             &uniform.GPUSimpleUniforms{},
	material.ShadingUnlit:              &uniform.GPUUnlitUniforms{},
	material.ShadingBlinnPhong:         &uniform.GPUPhongUniforms{},
	material.ShadingShadowedBlinnPhong: &uniform.GPUPhongUniforms{},
	material.ShadingPBR:                &uniform.GPUPBRUniforms{},
}

// ForShadingModel builds the program description of a drawable shading model from its
// embedded WGSL.
//
// Parameters:
//   - model: the shading model
//
// Returns:
//   - Pipeline: the program description, keyed by the model name
//   - error: error if the model has no program or its shaders fail to pre-process
func ForShadingModel(model material.ShadingModel) (Pipeline, error) {
	file, ok := programFiles[model]
	if !ok {
		return nil, fmt.Errorf("no program for shading model %s", model)
	}
	key := model.String()
	vs, err := shader.LoadShader(key+"_vs", shader.ShaderTypeVertex, file)
	if err != nil {
		return nil, err
	}
	fs, err := shader.LoadShader(key+"_fs", shader.ShaderTypeFragment, file)
	if err != nil {
		return nil, err
	}
	return NewPipeline(key,
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithShadingModel(model),
		WithUniformSize(uniformBlocks[model].Size()),
		WithBlendEnabled(model != material.ShadingSimple),
		WithCullMode(CullBack),
		WithFrontFace(FrontFaceCCW),
	), nil
}

// Depth builds the depth-only program of the shadow pass. Back faces are culled like in the
// colour pass, so a light sitting inside a closed mesh still sees out of it. A small slope
// bias keeps lit surfaces from shadowing themselves.
//
// Returns:
//   - Pipeline: the depth program description
//   - error: error if the shader fails to pre-process
func Depth() (Pipeline, error) {
	vs, err := shader.LoadShader(DepthKey+"_vs", shader.ShaderTypeVertex, "depth.wgsl")
	if err != nil {
		return nil, err
	}
	return NewPipeline(DepthKey,
		WithVertexShader(vs),
		WithUniformSize((&uniform.GPUDepthUniforms{}).Size()),
		WithDepthWriteEnabled(true),
		WithDepthBias(2, 2.0),
		WithCullMode(CullBack),
		WithFrontFace(FrontFaceCCW),
	), nil
}
