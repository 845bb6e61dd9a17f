package backend

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group slots shared by every program.
const (
	uniformGroup = 0
	textureGroup = 1
	shadowGroup  = 2
)

type topology int

const (
	topologyTriangles topology = iota
	topologyLines
	topologyCount
)

// wgpuProgram is a compiled program. Render pipelines are created per topology on first use.
type wgpuProgram struct {
	desc  pipeline.Pipeline
	valid bool

	vs, fs *wgpu.ShaderModule
	layout *wgpu.PipelineLayout

	uniforms  bind_group_provider.BindGroupProvider
	textures  bind_group_provider.BindGroupProvider
	shadow    bind_group_provider.BindGroupProvider
	pipelines [topologyCount]*wgpu.RenderPipeline

	// uniformGroup binds the arena with this program's block size.
	uniformGroup *wgpu.BindGroup
}

var _ gpu.Program = &wgpuProgram{}

func (p *wgpuProgram) Label() string {
	if p.desc == nil {
		return ""
	}
	return p.desc.Key()
}

func (p *wgpuProgram) Valid() bool { return p.valid }

func (p *wgpuProgram) Release() {
	for i, rp := range p.pipelines {
		if rp != nil {
			rp.Release()
			p.pipelines[i] = nil
		}
	}
	for _, provider := range []bind_group_provider.BindGroupProvider{p.uniforms, p.textures, p.shadow} {
		if provider != nil {
			provider.Release()
		}
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	if p.vs != nil {
		p.vs.Release()
		p.vs = nil
	}
	if p.fs != nil {
		p.fs.Release()
		p.fs = nil
	}
	p.valid = false
}

func (b *wgpuBackend) CompileProgram(desc pipeline.Pipeline) (gpu.Program, error) {
	prog := &wgpuProgram{desc: desc}
	if err := b.compile(prog); err != nil {
		prog.Release()
		return prog, fmt.Errorf("failed to compile program %s: %w", desc.Key(), err)
	}
	prog.valid = true

	b.mu.Lock()
	b.programs = append(b.programs, prog)
	b.mu.Unlock()
	return prog, nil
}

func (b *wgpuBackend) compile(prog *wgpuProgram) error {
	desc := prog.desc
	if desc.UniformSize() <= 0 || desc.UniformSize() > UniformStride {
		return fmt.Errorf("uniform block of %d bytes does not fit a %d byte arena slot", desc.UniformSize(), UniformStride)
	}

	vertex := desc.Shader(shader.ShaderTypeVertex)
	if vertex == nil {
		return errors.New("vertex shader must be set to create a render pipeline")
	}
	var err error
	if prog.vs, err = b.shaderModule(vertex); err != nil {
		return err
	}
	if !desc.DepthOnly() {
		if prog.fs, err = b.shaderModule(desc.Shader(shader.ShaderTypeFragment)); err != nil {
			return err
		}
	}

	prog.uniforms, err = b.newProvider(desc.Key()+" Uniforms", uniformLayoutEntries(desc))
	if err != nil {
		return err
	}
	layouts := []*wgpu.BindGroupLayout{prog.uniforms.BindGroupLayout()}

	if slots := len(desc.TextureSlots()); slots > 0 {
		prog.textures, err = b.newProvider(desc.Key()+" Textures", textureLayoutEntries(slots))
		if err != nil {
			return err
		}
		layouts = append(layouts, prog.textures.BindGroupLayout())
	}
	if desc.ShadowMap() {
		if prog.textures == nil {
			return errors.New("shadowed programs must bind material textures in group 1")
		}
		prog.shadow, err = b.newProvider(desc.Key()+" Shadow", shadowLayoutEntries())
		if err != nil {
			return err
		}
		layouts = append(layouts, prog.shadow.BindGroupLayout())
	}

	prog.layout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Key(),
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return err
	}

	prog.uniformGroup, err = prog.uniforms.BindGroup("arena", func() []wgpu.BindGroupEntry {
		return []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  b.arenaBuffer,
			Offset:  0,
			Size:    uint64(desc.UniformSize()),
		}}
	})
	if err != nil {
		return err
	}

	// Triangles are built eagerly so WGSL errors surface at load time.
	_, err = b.renderPipeline(prog, topologyTriangles)
	return err
}

func (b *wgpuBackend) shaderModule(s shader.Shader) (*wgpu.ShaderModule, error) {
	if s == nil {
		return nil, errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}
	return b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: s.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.Source(),
		},
	})
}

// renderPipeline returns the program's pipeline for t, creating it on first use.
func (b *wgpuBackend) renderPipeline(prog *wgpuProgram, t topology) (*wgpu.RenderPipeline, error) {
	if rp := prog.pipelines[t]; rp != nil {
		return rp, nil
	}
	desc := prog.desc
	vertex := desc.Shader(shader.ShaderTypeVertex)

	rpd := &wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s %s Render Pipeline", desc.Key(), t),
		Layout: prog.layout,
		Vertex: wgpu.VertexState{
			Module:     prog.vs,
			EntryPoint: vertex.EntryPoint(),
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout()},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  t.wgpu(),
			FrontFace: frontFace(desc.FrontFace()),
			CullMode:  cullMode(desc.CullMode()),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled:   desc.DepthWriteEnabled(),
			DepthCompare:        depthCompare(desc.DepthTestEnabled()),
			DepthBias:           desc.DepthBias(),
			DepthBiasSlopeScale: desc.DepthBiasSlopeScale(),
			StencilFront:        wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:         wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	}
	if !desc.DepthOnly() {
		fragment := desc.Shader(shader.ShaderTypeFragment)
		target := wgpu.ColorTargetState{
			Format:    b.surfaceFormat,
			WriteMask: wgpu.ColorWriteMaskAll,
		}
		if desc.BlendEnabled() {
			target.Blend = &alphaBlending
		}
		rpd.Fragment = &wgpu.FragmentState{
			Module:     prog.fs,
			EntryPoint: fragment.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		}
		rpd.Multisample.Count = uint32(b.sampleCount)
		rpd.DepthStencil.Format = wgpu.TextureFormatDepth24Plus
	}

	rp, err := b.device.CreateRenderPipeline(rpd)
	if err != nil {
		return nil, err
	}
	prog.pipelines[t] = rp
	return rp, nil
}

var alphaBlending = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

func uniformLayoutEntries(desc pipeline.Pipeline) []wgpu.BindGroupLayoutEntry {
	visibility := wgpu.ShaderStageVertex
	if !desc.DepthOnly() {
		visibility |= wgpu.ShaderStageFragment
	}
	return []wgpu.BindGroupLayoutEntry{{
		Binding:    0,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type:             wgpu.BufferBindingTypeUniform,
			HasDynamicOffset: true,
			MinBindingSize:   uint64(desc.UniformSize()),
		},
	}}
}

// textureLayoutEntries lays out one 2D texture per slot followed by the material sampler.
func textureLayoutEntries(slots int) []wgpu.BindGroupLayoutEntry {
	entries := make([]wgpu.BindGroupLayoutEntry, 0, slots+1)
	for i := range slots {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		})
	}
	return append(entries, wgpu.BindGroupLayoutEntry{
		Binding:    uint32(slots),
		Visibility: wgpu.ShaderStageFragment,
		Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
	})
}

func shadowLayoutEntries() []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeDepth,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageFragment,
			Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeComparison},
		},
	}
}

// vertexBufferLayout describes model.GPUVertex.
func vertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: model.GPUVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 4},
		},
	}
}

func (t topology) String() string {
	if t == topologyLines {
		return "lines"
	}
	return "triangles"
}

func (t topology) wgpu() wgpu.PrimitiveTopology {
	if t == topologyLines {
		return wgpu.PrimitiveTopologyLineList
	}
	return wgpu.PrimitiveTopologyTriangleList
}

func topologyOf(g gpu.Geometry) topology {
	if g.Lines() {
		return topologyLines
	}
	return topologyTriangles
}

func cullMode(m pipeline.CullMode) wgpu.CullMode {
	switch m {
	case pipeline.CullFront:
		return wgpu.CullModeFront
	case pipeline.CullBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

func frontFace(f pipeline.FrontFace) wgpu.FrontFace {
	if f == pipeline.FrontFaceCW {
		return wgpu.FrontFaceCW
	}
	return wgpu.FrontFaceCCW
}

func depthCompare(test bool) wgpu.CompareFunction {
	if test {
		return wgpu.CompareFunctionLess
	}
	return wgpu.CompareFunctionAlways
}
