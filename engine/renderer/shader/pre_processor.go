package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/uniform"
)

// registryEntry pairs WGSL source with the struct name a uniform annotation resolves to.
// Helper chunks have no type.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	registry     map[string]registryEntry
	declarations []Annotation
}

// PreProcessor expands annotations in WGSL source and records the binding declarations it
// generated.
type PreProcessor interface {
	// Process expands every annotation in source. Includes are injected once per call even
	// when requested repeatedly or transitively.
	//
	// Parameters:
	//   - source: WGSL source containing annotations
	//
	// Returns:
	//   - string: plain WGSL
	//   - error: error on a malformed annotation, an unknown name or an include cycle
	Process(source string) (string, error)

	// Declarations returns the uniform, textures and shadow annotations of the last Process
	// call in source order.
	//
	// Returns:
	//   - []Annotation: the binding declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor knowing every GPU struct of the engine plus the
// shared helper chunks under assets/include.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[string]registryEntry{
			"vertex":          {Source: model.GPUVertexSource, Type: "VertexInput"},
			"phong_params":    {Source: material.GPUPhongParamsSource, Type: "PhongParams"},
			"pbr_params":      {Source: material.GPUPBRParamsSource, Type: "PBRParams"},
			"depth_uniforms":  {Source: uniform.GPUDepthUniformsSource, Type: "DepthUniforms"},
			"simple_uniforms": {Source: uniform.GPUSimpleUniformsSource, Type: "SimpleUniforms"},
			"unlit_uniforms":  {Source: uniform.GPUUnlitUniformsSource, Type: "UnlitUniforms"},
			"phong_uniforms":  {Source: uniform.GPUPhongUniformsSource, Type: "PhongUniforms"},
			"pbr_uniforms":    {Source: uniform.GPUPBRUniformsSource, Type: "PBRUniforms"},
			"clip":            {Source: mustAsset("include/clip.wgsl")},
			"blinn_phong":     {Source: mustAsset("include/blinn_phong.wgsl")},
			"shadow_pcf":      {Source: mustAsset("include/shadow_pcf.wgsl")},
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	return p.expand(source, map[string]bool{}, nil)
}

func (p *preProcessor) expand(source string, included map[string]bool, stack []string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if err := p.include(a.Args[0], a.Line, included, stack, &out); err != nil {
				return "", err
			}
		case AnnotationTypeUniform:
			entry, ok := p.registry[a.Args[1]]
			if !ok || entry.Type == "" {
				return "", fmt.Errorf("line %d: unknown uniform type %q", a.Line, a.Args[1])
			}
			if err := p.include(a.Args[1], a.Line, included, stack, &out); err != nil {
				return "", err
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) var<uniform> %s: %s;", a.Group, a.Binding, a.Args[0], entry.Type))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeTextures:
			slots := material.SlotsFor(a.Model)
			for b, slot := range slots {
				out = append(out, fmt.Sprintf("@group(%d) @binding(%d) var %s_map: texture_2d<f32>;", a.Group, b, slot))
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) var material_sampler: sampler;", a.Group, len(slots)))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeShadow:
			out = append(out,
				fmt.Sprintf("@group(%d) @binding(0) var shadow_map: texture_depth_2d;", a.Group),
				fmt.Sprintf("@group(%d) @binding(1) var shadow_sampler: sampler_comparison;", a.Group),
			)
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

// include appends the expanded registry entry name to out unless it was already included.
func (p *preProcessor) include(name string, line int, included map[string]bool, stack []string, out *[]string) error {
	for _, s := range stack {
		if s == name {
			return fmt.Errorf("line %d: include cycle through %q", line, name)
		}
	}
	if included[name] {
		return nil
	}
	entry, ok := p.registry[name]
	if !ok {
		return fmt.Errorf("line %d: unknown include %q", line, name)
	}
	included[name] = true
	src, err := p.expand(entry.Source, included, append(stack, name))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*out = append(*out, src)
	return nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
