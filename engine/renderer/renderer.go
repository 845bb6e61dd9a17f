package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/uniform"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *slog.Logger

	fallback material.Material

	// bind-skip cache, reset at the start of each pass
	lastProgram  gpu.Program
	lastGeometry gpu.Geometry

	// nodes already reported for an unusable shading model
	warned map[scene.Node]struct{}

	frame uint64
	last  FrameStats
}

// Renderer draws a RenderContext in two passes: a depth pass from the light camera into the
// shadow map, then a forward colour pass that dispatches on each node's shading model.
//
// A Renderer holds no scene state; everything a frame reads comes from the RenderContext.
// Render must be called from one goroutine at a time.
type Renderer interface {
	// Render aims the light camera from the light node's bounding box center at the scene
	// center, then runs the depth pass, the colour pass and presents. Per-node failures are
	// logged and the node skipped; Render itself never fails.
	//
	// Parameters:
	//   - ctx: bounds texture waits during the frame
	//   - rc: the frame's render context
	//
	// Returns:
	//   - FrameStats: the frame's draw and bind counters
	Render(ctx context.Context, rc *RenderContext) FrameStats

	// Prepare creates the frame resources Render relies on. When the light casts shadows and
	// the graph has no shadow map yet, one is created at the light's texture size and stored on
	// the graph. Call it once during setup and abort on error.
	//
	// Parameters:
	//   - rc: the render context to prepare
	//
	// Returns:
	//   - error: wraps ErrDepthTextureUnsupported when the backend cannot create the shadow map
	Prepare(rc *RenderContext) error

	// DepthPass renders every node with draw info into the shadow map with the depth program.
	// The pass is skipped when the graph holds no shadow map.
	//
	// Parameters:
	//   - rc: the frame's render context
	//   - stats: counters to accumulate into
	DepthPass(rc *RenderContext, stats *FrameStats)

	// ColorPass renders every node with draw info into the default target using the program
	// of its shading model. Multi-instance nodes draw once per instance world matrix.
	//
	// Parameters:
	//   - ctx: bounds texture waits
	//   - rc: the frame's render context
	//   - stats: counters to accumulate into
	ColorPass(ctx context.Context, rc *RenderContext, stats *FrameStats)

	// LastFrame returns the stats of the most recent Render call.
	//
	// Returns:
	//   - FrameStats: the stats
	LastFrame() FrameStats
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer.
//
// Parameters:
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:     &sync.Mutex{},
		logger: slog.Default(),
		warned: make(map[scene.Node]struct{}),
	}
	for _, opt := range options {
		opt(r)
	}
	r.logger = r.logger.With("component", "renderer")
	if r.fallback == nil {
		r.fallback = material.DefaultMaterial(material.WithName("fallback"))
	}
	return r
}

func (r *renderer) Render(ctx context.Context, rc *RenderContext) FrameStats {
	start := time.Now()
	r.frame++
	stats := FrameStats{Frame: r.frame}

	if rc.Light != nil && rc.LightNode != nil {
		if center, err := rc.LightNode.BoundingBoxCenter(); err == nil {
			rc.Light.Camera().UpdatePosAndTarget(center, rc.SceneCenter)
		}
	}

	r.DepthPass(rc, &stats)
	r.ColorPass(ctx, rc, &stats)
	rc.Backend.Present()

	stats.Duration = time.Since(start)
	r.mu.Lock()
	r.last = stats
	r.mu.Unlock()
	return stats
}

func (r *renderer) LastFrame() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *renderer) Prepare(rc *RenderContext) error {
	if rc.Graph.DepthTarget() != nil || rc.Light == nil || !rc.Light.CastsShadows() {
		return nil
	}
	t, err := rc.Backend.CreateDepthTarget(rc.Light.ShadowTextureSize())
	if err != nil {
		return fmt.Errorf("failed to create shadow map: %w", err)
	}
	rc.Graph.SetDepthTarget(t)
	return nil
}

func (r *renderer) DepthPass(rc *RenderContext, stats *FrameStats) {
	target := rc.Graph.DepthTarget()
	if target == nil || rc.Light == nil || rc.Programs == nil || !rc.Programs.Depth.Valid() {
		return
	}
	if err := rc.Backend.BeginDepthPass(target); err != nil {
		r.logger.Error("depth pass failed to start", "error", err)
		return
	}
	r.resetBindCache()

	lc := rc.Light.Camera()
	rc.Graph.Traverse(func(n scene.Node) {
		d := n.DrawInfo()
		if d == nil {
			return
		}
		geo, ok := r.geometry(rc, n)
		if !ok {
			return
		}
		m := n.WorldMatrix()
		if n.Name() == FrustumNodeName {
			m = lc.FrustumTransformationMatrix()
		}
		r.bind(rc, rc.Programs.Depth, geo, stats)
		rc.Backend.SetUniforms(uniform.Bytes(&uniform.GPUDepthUniforms{LightMVP: lc.MVP(m)}))
		rc.Backend.Draw()
		stats.DepthDraws++
	})
	rc.Backend.EndDepthPass()
}

func (r *renderer) ColorPass(ctx context.Context, rc *RenderContext, stats *FrameStats) {
	if err := rc.Backend.BeginColorPass(rc.ClearColor); err != nil {
		r.logger.Error("colour pass failed to start", "error", err)
		return
	}
	r.resetBindCache()
	rc.Backend.BindShadowMap(rc.Graph.DepthTarget())

	rc.Graph.Traverse(func(n scene.Node) {
		if n.DrawInfo() != nil {
			r.drawNode(ctx, rc, n, stats)
		}
	})
	rc.Backend.EndColorPass()
}

func (r *renderer) drawNode(ctx context.Context, rc *RenderContext, n scene.Node, stats *FrameStats) {
	d := n.DrawInfo()
	shading := n.RenderingModel()
	prog, ok := rc.Programs.For(shading)
	if !ok {
		r.warnOnce(n, "node has no usable shading model", "model", shading.String(), "error", ErrUnknownShadingModel)
		stats.SkippedNodes++
		return
	}
	if !prog.Valid() {
		stats.SkippedNodes++
		return
	}
	if rc.Light == nil && (shading.SpotLit() || n.Name() == FrustumNodeName) {
		r.warnOnce(n, "node needs a light", "model", shading.String(), "error", ErrNoLight)
		stats.SkippedNodes++
		return
	}
	geo, ok := r.geometry(rc, n)
	if !ok {
		stats.SkippedNodes++
		return
	}

	mat := d.Material()
	if mat == nil {
		mat = r.fallback
	}
	slots := material.SlotsFor(shading)
	if len(slots) > 0 && !mat.Awaited() {
		if err := mat.AwaitTextures(ctx, slots, rc.textureTimeout()); err != nil {
			r.logger.Warn("material textures not ready, using placeholders", "node", n.Name(), "material", mat.Name(), "error", err)
		}
	}

	r.bind(rc, prog, geo, stats)
	if len(slots) > 0 {
		rc.Backend.BindTextures(mat.Bind(slots, rc.Placeholders))
	}

	matrices := []mgl32.Mat4{n.WorldMatrix()}
	switch {
	case n.MultipleInstance():
		matrices = n.InstancesWorldMatrices()
	case n.Name() == FrustumNodeName:
		matrices[0] = rc.Light.Camera().FrustumTransformationMatrix()
	}
	for _, m := range matrices {
		block, ok := assembleUniforms(rc, shading, m, d, mat)
		if !ok {
			r.warnOnce(n, "shading model has no uniform layout", "model", shading.String(), "error", ErrUnknownShadingModel)
			stats.SkippedNodes++
			return
		}
		rc.Backend.SetUniforms(uniform.Bytes(block))
		rc.Backend.Draw()
		stats.ColorDraws++
	}
}

// bind selects prog and geo, skipping calls that would rebind what is already bound.
func (r *renderer) bind(rc *RenderContext, prog gpu.Program, geo gpu.Geometry, stats *FrameStats) {
	if prog != r.lastProgram {
		rc.Backend.UseProgram(prog)
		r.lastProgram = prog
		stats.ProgramBinds++
	} else {
		stats.SkippedBinds++
	}
	if geo != r.lastGeometry {
		rc.Backend.BindGeometry(geo)
		r.lastGeometry = geo
		stats.GeometryBinds++
	} else {
		stats.SkippedBinds++
	}
}

func (r *renderer) resetBindCache() {
	r.lastProgram = nil
	r.lastGeometry = nil
}

// geometry returns the node's uploaded geometry, uploading on first use.
func (r *renderer) geometry(rc *RenderContext, n scene.Node) (gpu.Geometry, bool) {
	d := n.DrawInfo()
	if g := d.Geometry(); g != nil {
		return g, true
	}
	g, err := rc.Backend.UploadGeometry(n.Name(), d)
	if err != nil {
		r.warnOnce(n, "geometry upload failed", "error", err)
		return nil, false
	}
	d.SetGeometry(g)
	return g, true
}

func (r *renderer) warnOnce(n scene.Node, msg string, args ...any) {
	r.mu.Lock()
	_, seen := r.warned[n]
	r.warned[n] = struct{}{}
	r.mu.Unlock()
	if !seen {
		r.logger.Warn(msg, append([]any{"node", n.Name()}, args...)...)
	}
}
