package shader

import (
	"embed"
	"fmt"
)

//go:embed assets
var assets embed.FS

// ShaderType identifies the pipeline stage a shader is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// shader is the implementation of the Shader interface.
type shader struct {
	key          string
	source       string
	shaderType   ShaderType
	entryPoint   string
	declarations []Annotation
}

// Shader defines the interface for a pre-processed WGSL shader stage. It carries the plain
// WGSL source a backend compiles, the entry point of its stage and the binding declarations
// the source was generated from.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the module label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the expanded WGSL source.
	//
	// Returns:
	//   - string: plain WGSL without annotations
	Source() string

	// EntryPoint returns the entry point function name for this shader's stage.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// Declarations returns the binding annotations found while pre-processing.
	//
	// Returns:
	//   - []Annotation: uniform, textures and shadow declarations in source order
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader pre-processes source and resolves the entry point of shaderType.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage to compile
//   - source: WGSL with annotations
//
// Returns:
//   - Shader: the processed shader
//   - error: error if pre-processing fails or the stage has no entry point
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	entry := parseEntryPoint(processed, shaderType)
	if entry == "" {
		return nil, fmt.Errorf("shader %s: no @%s entry point", key, shaderType)
	}
	return &shader{
		key:          key,
		source:       processed,
		shaderType:   shaderType,
		entryPoint:   entry,
		declarations: append([]Annotation(nil), pp.Declarations()...),
	}, nil
}

// LoadShader reads an embedded WGSL program from assets and builds the requested stage.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage to compile
//   - name: file name under assets, e.g. "bph.wgsl"
//
// Returns:
//   - Shader: the processed shader
//   - error: error if the file is missing or invalid
func LoadShader(key string, shaderType ShaderType, name string) (Shader, error) {
	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return NewShader(key, shaderType, string(data))
}

func mustAsset(name string) string {
	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		panic(fmt.Sprintf("shader: embedded asset %s missing: %v", name, err))
	}
	return string(data)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}
