// annotations.go defines the single-line WGSL comment annotations the pre-processor expands.
// Every annotation is a line starting with "//@sunlit:" followed by a verb and arguments:
//
//	//@sunlit:include <name>                         inject a registered struct or helper chunk
//	//@sunlit:uniform <group> <binding> <var> <type>  declare a per-draw uniform block
//	//@sunlit:textures <group> <shading_model>       declare a material's texture slots and sampler
//	//@sunlit:shadow <group>                         declare the shadow map and comparison sampler
package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
)

const annotationPrefix = "@sunlit:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeUniform declares the dynamic-offset uniform block of a program.
	AnnotationTypeUniform AnnotationType = "uniform"

	// AnnotationTypeTextures declares one texture per material slot, in SlotsFor order,
	// followed by the material sampler.
	AnnotationTypeTextures AnnotationType = "textures"

	// AnnotationTypeShadow declares the shadow depth texture and its comparison sampler.
	AnnotationTypeShadow AnnotationType = "shadow"
)

// Annotation is one parsed annotation line.
type Annotation struct {
	Type AnnotationType

	// Args holds the non-numeric arguments:
	//   - include:  [0] = registry name
	//   - uniform:  [0] = variable name, [1] = registry name
	//   - textures: [0] = shading model name
	Args []string

	// Line is the 1-based source line, for errors.
	Line int

	Group   int
	Binding int

	// Model is the parsed shading model of a textures annotation.
	Model material.ShadingModel
}

func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, nil
	}
	after, ok := strings.CutPrefix(strings.TrimSpace(rest), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation", lineNum)
	}

	a := &Annotation{Type: AnnotationType(args[0]), Line: lineNum}
	switch a.Type {
	case annotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: include takes exactly one argument", lineNum)
		}
		a.Args = args[1:]
	case AnnotationTypeUniform:
		if len(args) != 5 {
			return nil, fmt.Errorf("line %d: uniform takes group, binding, variable and type", lineNum)
		}
		var err error
		if a.Group, err = parseIndex(args[1], lineNum); err != nil {
			return nil, err
		}
		if a.Binding, err = parseIndex(args[2], lineNum); err != nil {
			return nil, err
		}
		a.Args = args[3:]
	case AnnotationTypeTextures:
		if len(args) != 3 {
			return nil, fmt.Errorf("line %d: textures takes group and shading model", lineNum)
		}
		var err error
		if a.Group, err = parseIndex(args[1], lineNum); err != nil {
			return nil, err
		}
		if a.Model, err = material.ParseShadingModel(args[2]); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(material.SlotsFor(a.Model)) == 0 {
			return nil, fmt.Errorf("line %d: shading model %s binds no textures", lineNum, a.Model)
		}
		a.Args = args[2:]
	case AnnotationTypeShadow:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: shadow takes exactly one argument", lineNum)
		}
		var err error
		if a.Group, err = parseIndex(args[1], lineNum); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("line %d: unknown annotation %q", lineNum, args[0])
	}
	return a, nil
}

func parseIndex(s string, lineNum int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("line %d: invalid index %q", lineNum, s)
	}
	return v, nil
}
