package pipeline

import (
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/shader"
)

// CullMode selects which triangle faces are discarded.
type CullMode int

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FrontFace selects the winding order of front-facing triangles.
type FrontFace int

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	key   string
	model material.ShadingModel

	vertexShader, fragmentShader shader.Shader

	uniformSize  int
	textureSlots []material.TextureSlot
	shadowMap    bool

	depthTestEnabled    bool
	depthWriteEnabled   bool
	depthBias           int32
	depthBiasSlopeScale float32
	blendEnabled        bool
	cullMode            CullMode
	frontFace           FrontFace
}

// Pipeline describes a shader program independent of any GPU API: its stages, the layout of
// its three bind groups and its fixed-function state. Backends compile it into whatever
// pipeline objects they need.
//
// Bind group layout:
//   - group 0: one uniform block of UniformSize bytes, bound with a dynamic offset per draw
//   - group 1: one texture per TextureSlots entry followed by a filtering sampler
//   - group 2: the shadow depth texture and a comparison sampler, when ShadowMap is true
type Pipeline interface {
	// Key returns the unique key of this pipeline.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	Key() string

	// Model returns the shading model the program implements. The depth program reports ShadingNone.
	//
	// Returns:
	//   - material.ShadingModel: the shading model
	Model() material.ShadingModel

	// DepthOnly reports whether the program has no fragment stage and renders only depth.
	//
	// Returns:
	//   - bool: true for depth-only programs
	DepthOnly() bool

	// Shader retrieves the shader of the given stage, nil if not set.
	//
	// Parameters:
	//   - shaderType: the stage
	//
	// Returns:
	//   - shader.Shader: the shader of that stage, or nil
	Shader(shaderType shader.ShaderType) shader.Shader

	// UniformSize returns the size in bytes of the per-draw uniform block.
	//
	// Returns:
	//   - int: the uniform block size
	UniformSize() int

	// TextureSlots returns the material slots bound in group 1, in binding order.
	//
	// Returns:
	//   - []material.TextureSlot: the slots, nil when the program samples no textures
	TextureSlots() []material.TextureSlot

	// ShadowMap reports whether group 2 binds the shadow map.
	//
	// Returns:
	//   - bool: true if the program samples the shadow map
	ShadowMap() bool

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// DepthBias returns the constant depth bias.
	//
	// Returns:
	//   - int32: the depth bias value for this pipeline
	DepthBias() int32

	// DepthBiasSlopeScale returns the slope-scaled depth bias.
	//
	// Returns:
	//   - float32: the depth bias slope scale for this pipeline
	DepthBiasSlopeScale() float32

	// BlendEnabled returns whether alpha blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - CullMode: the cull mode
	CullMode() CullMode

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - FrontFace: the winding order
	FrontFace() FrontFace
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline with depth test and write on, no blending, no culling and
// counter-clockwise front faces, then applies opts.
//
// Parameters:
//   - key: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(key string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:               key,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          CullNone,
		frontFace:         FrontFaceCCW,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Model() material.ShadingModel {
	return p.model
}

func (p *pipeline) DepthOnly() bool {
	return p.fragmentShader == nil
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) UniformSize() int {
	return p.uniformSize
}

func (p *pipeline) TextureSlots() []material.TextureSlot {
	return p.textureSlots
}

func (p *pipeline) ShadowMap() bool {
	return p.shadowMap
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() CullMode {
	return p.cullMode
}

func (p *pipeline) FrontFace() FrontFace {
	return p.frontFace
}
