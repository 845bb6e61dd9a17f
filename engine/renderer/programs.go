package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/pipeline"
)

// Programs is the table of compiled programs: one per drawable shading model plus the depth
// program.
type Programs struct {
	Depth   gpu.Program
	byModel map[material.ShadingModel]gpu.Program
}

// NewPrograms builds a table from already compiled programs.
//
// Parameters:
//   - depth: the depth program
//   - byModel: the colour programs keyed by shading model
//
// Returns:
//   - *Programs: the table
func NewPrograms(depth gpu.Program, byModel map[material.ShadingModel]gpu.Program) *Programs {
	return &Programs{Depth: depth, byModel: byModel}
}

// For returns the program of a shading model. ok is false for ShadingNone and any model
// without a program.
func (p *Programs) For(model material.ShadingModel) (prog gpu.Program, ok bool) {
	if p == nil {
		return nil, false
	}
	prog, ok = p.byModel[model]
	return prog, ok
}

// Release frees every program.
func (p *Programs) Release() {
	if p.Depth != nil {
		p.Depth.Release()
	}
	for _, prog := range p.byModel {
		prog.Release()
	}
}

// LoadPrograms compiles the depth program and one program per entry of
// material.ShadingModels. Failures are logged and leave an invalid program in the table, so
// nodes using it draw nothing while the rest of the scene renders.
//
// Parameters:
//   - b: the backend to compile with
//   - logger: destination of compilation errors
//
// Returns:
//   - *Programs: the program table
func LoadPrograms(b Backend, logger *slog.Logger) *Programs {
	if logger == nil {
		logger = slog.Default()
	}
	compile := func(name string, desc pipeline.Pipeline, err error) gpu.Program {
		if err != nil {
			logger.Error("program description failed", "program", name, "error", err)
			return invalidProgram(name)
		}
		prog, err := b.CompileProgram(desc)
		if err != nil {
			logger.Error("program compilation failed", "program", name, "error", err)
		}
		if prog == nil {
			return invalidProgram(name)
		}
		return prog
	}

	depthDesc, err := pipeline.Depth()
	programs := &Programs{
		Depth:   compile(pipeline.DepthKey, depthDesc, err),
		byModel: make(map[material.ShadingModel]gpu.Program, len(material.ShadingModels)),
	}
	for _, m := range material.ShadingModels {
		desc, err := pipeline.ForShadingModel(m)
		programs.byModel[m] = compile(m.String(), desc, err)
	}
	return programs
}

type invalidProgram string

func (p invalidProgram) Label() string { return string(p) }
func (p invalidProgram) Release()      {}
func (p invalidProgram) Valid() bool   { return false }
