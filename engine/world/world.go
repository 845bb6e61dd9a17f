// Package world assembles the demo scene: a tilted checker plane, the walking sphere figure, an
// orbiting sun that carries the shadow-casting light, and optional extras.
package world

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/animator"
	"github.com/Carmen-Shannon/sunlit/engine/camera"
	"github.com/Carmen-Shannon/sunlit/engine/config"
	"github.com/Carmen-Shannon/sunlit/engine/input"
	"github.com/Carmen-Shannon/sunlit/engine/light"
	"github.com/Carmen-Shannon/sunlit/engine/loader"
	"github.com/Carmen-Shannon/sunlit/engine/mesh"
	"github.com/Carmen-Shannon/sunlit/engine/renderer"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	SunName     = "sun"
	LightName   = "light"
	PlaneName   = "plane"
	GlobeName   = "globe"
	GlobeRadius = 0.5
)

var (
	// RootCenter is where the assembled scene is centred before the sun is added.
	RootCenter = mgl32.Vec3{0, 1, 0}
	// GlobeCenter places the optional grass globe beside the figure's path.
	GlobeCenter = mgl32.Vec3{-1.5, GlobeRadius, 1}

	sunColour     = [4]uint8{255, 210, 60, 255}
	frustumColour = [4]uint8{0, 0, 255, 255}
)

// world is the implementation of the World interface.
type world struct {
	logger   *slog.Logger
	backend  renderer.Backend
	renderer renderer.Renderer
	textures material.TextureLoader
	loader   loader.Loader

	rc         *renderer.RenderContext
	controller input.Controller
	width      int
	height     int
	figure     animator.Animator
	orbit      animator.Animator
	paused     bool
}

// World is the running demo scene. It is not safe for concurrent use; the engine calls it from
// its frame goroutine only.
type World interface {
	// Step advances every animator to the given clock unless the world is paused.
	//
	// Parameters:
	//   - timeMs: the animation clock in milliseconds
	Step(timeMs float64)

	// Render draws one frame.
	//
	// Parameters:
	//   - ctx: bounds texture waits during the frame
	//
	// Returns:
	//   - renderer.FrameStats: the frame's counters
	Render(ctx context.Context) renderer.FrameStats

	// Apply copies the hot-reloadable tuning values of cfg into the running scene: figure speed,
	// sun spin and light fov.
	//
	// Parameters:
	//   - cfg: the new configuration
	Apply(cfg config.Config)

	// TogglePause stops or resumes the animators.
	//
	// Returns:
	//   - bool: true if the world is now paused
	TogglePause() bool

	// Context returns the render context the world draws with.
	//
	// Returns:
	//   - *renderer.RenderContext: the context
	Context() *renderer.RenderContext

	// Controller returns the input controller bound to the scene root and camera.
	//
	// Returns:
	//   - input.Controller: the controller
	Controller() input.Controller

	// Graph returns the scene graph.
	//
	// Returns:
	//   - scene.Graph: the graph
	Graph() scene.Graph

	// Camera returns the viewer camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Release frees every GPU resource the world created.
	Release()
}

var _ World = &world{}

// Build assembles the scene described by cfg and uploads what it needs through backend.
// Textures are loaded on a worker pool; the first frame that needs one waits up to the
// configured timeout.
//
// Parameters:
//   - cfg: the configuration
//   - backend: the GPU backend to compile programs and upload resources with
//   - ld: the asset loader for cfg.Assets; nil builds a glTF loader sharing the world's texture loader
//   - options: variadic list of WorldBuilderOption functions
//
// Returns:
//   - World: the world
//   - error: error if a required part of the scene could not be built, wrapping
//     renderer.ErrDepthTextureUnsupported when the backend cannot hold the shadow map
func Build(cfg config.Config, backend renderer.Backend, ld loader.Loader, options ...WorldBuilderOption) (World, error) {
	w := &world{
		logger:  slog.Default(),
		backend: backend,
		loader:  ld,
	}
	for _, opt := range options {
		opt(w)
	}
	w.logger = w.logger.With("component", "engine")

	if w.renderer == nil {
		w.renderer = renderer.NewRenderer(renderer.WithLogger(w.logger))
	}
	if w.textures == nil {
		w.textures = material.NewTextureLoader(backend,
			material.WithWorkers(cfg.Textures.Workers),
			material.WithMaxDimension(cfg.Textures.MaxDimension),
			material.WithLogger(w.logger),
		)
	}
	if w.loader == nil {
		w.loader = loader.NewLoader(loader.BackendTypeGLTF,
			loader.WithTextureLoader(w.textures),
			loader.WithLogger(w.logger),
		)
	}

	placeholders, err := material.NewPlaceholders(backend)
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	width, height := w.width, w.height
	if width <= 0 || height <= 0 {
		width, height = cfg.Window.Width, cfg.Window.Height
	}
	cam := camera.InitializeCamera(
		mgl32.Vec3(cfg.Camera.Position), mgl32.Vec3(cfg.Camera.Target), mgl32.Vec3{0, 1, 0},
		common.DegToRad(cfg.Camera.Fov), width, height, 0.1, 100,
	)
	lightPos := mgl32.Vec3(cfg.Light.Position)
	lt := light.NewSpotLight(lightPos, mgl32.Vec3{},
		light.WithFov(common.DegToRad(cfg.Light.Fov)),
		light.WithPlanes(cfg.Light.Aspect, cfg.Light.Near, cfg.Light.Far),
		light.WithShadowTextureSize(cfg.Light.ShadowMapSize),
	)

	graph := scene.NewGraph("world", scene.WithLogger(w.logger))
	parts, err := w.populate(cfg, graph, lt)
	if err != nil {
		placeholders.Release()
		graph.Release()
		return nil, err
	}

	w.rc = &renderer.RenderContext{
		Graph:          graph,
		Camera:         cam,
		Light:          lt,
		LightNode:      parts.light,
		AmbientLight:   0.01,
		SceneCenter:    parts.center,
		Viewport:       renderer.Viewport{Width: width, Height: height},
		Programs:       renderer.LoadPrograms(backend, w.logger),
		Backend:        backend,
		Placeholders:   placeholders,
		TextureTimeout: cfg.TextureTimeout(),
		ClearColor:     mgl32.Vec4{0, 0, 0, 1},
	}
	if err := w.renderer.Prepare(w.rc); err != nil {
		w.Release()
		return nil, fmt.Errorf("failed to build world: %w", err)
	}
	w.controller = input.NewController(graph, cam,
		input.WithViewport(width, height),
		input.WithDistance(cfg.Camera.Distance),
		input.WithNearFarExtent(cfg.Camera.Extent),
		input.WithResizeHook(w.resize),
	)

	walk := []animator.FigureAnimatorBuilderOption{animator.WithSpeed(cfg.Scene.FigureSpeed)}
	if !cfg.Scene.Walk {
		walk = append(walk, animator.WithWalk(mgl32.Vec3{}, mgl32.Vec3{}))
	}
	w.figure = animator.NewFigureAnimator(graph, parts.figure, walk...)
	w.orbit = animator.NewOrbitAnimator(graph, cfg.Scene.SunSpin, parts.sun, parts.light)

	w.logger.Info("world built", "nodes", graph.Snapshot().NodeCount(), "viewport", fmt.Sprintf("%dx%d", width, height))
	return w, nil
}

// parts are the nodes Build needs to keep hold of.
type parts struct {
	light  scene.Node
	figure scene.Node
	sun    scene.Node
	center mgl32.Vec3
}

// populate fills the graph in the same order the transforms depend on: everything except the
// sun is centred on RootCenter first, then the sun is placed at the light position.
func (w *world) populate(cfg config.Config, graph scene.Graph, lt light.Light) (parts, error) {
	var p parts
	root := graph.Root()
	opts := []mesh.MeshBuilderOption{mesh.WithTextureLoader(w.textures)}

	p.light = scene.NewNode(LightName, scene.WithBoundingBox(scene.BoundingBox{}))
	if err := root.AddChild(p.light); err != nil {
		return p, err
	}
	if err := p.light.MoveCenterTo(mgl32.Vec3(cfg.Light.Position)); err != nil {
		return p, err
	}
	center, _ := p.light.BoundingBoxCenter()
	lt.Camera().UpdatePosition(center)

	if cfg.Scene.Frustum {
		frustum := mesh.WireFrameCube(renderer.FrustumNodeName, mgl32.Vec3{0, 1, 0}, 2, frustumColour)
		frustum.UpdateWorldMatrix(nil)
		frustum.ComputeBoundingBox()
		if err := root.AddChild(frustum); err != nil {
			return p, err
		}
	}

	plane := mesh.Plane(PlaneName, mgl32.Vec3{0, 1, 0}, cfg.Scene.PlaneSize, opts...)
	plane.ComputeBoundingBox()
	plane.ApplyTransformation(mgl32.HomogRotate3DZ(-0.01))
	plane.ApplyTransformation(mgl32.HomogRotate3DX(0.07))
	plane.ApplyTransformation(mgl32.Translate3D(0, -0.03, 0))
	if err := root.AddChild(plane); err != nil {
		return p, err
	}

	if cfg.Scene.Globe {
		globe, err := mesh.GlobeCoveredWithGrass(GlobeName, GlobeRadius, cfg.Scene.BladesPerRing, opts...)
		if err != nil {
			return p, fmt.Errorf("failed to build globe: %w", err)
		}
		globe.ComputeBoundingBox()
		if err := globe.MoveCenterTo(GlobeCenter); err != nil {
			return p, err
		}
		if err := root.AddChild(globe); err != nil {
			return p, err
		}
	}

	figure, err := animator.SphereGuy(opts...)
	if err != nil {
		return p, fmt.Errorf("failed to build figure: %w", err)
	}
	figure.ScaleNode(0.04)
	size, err := figure.BoundingBoxSize()
	if err != nil {
		return p, fmt.Errorf("failed to place figure: %w", err)
	}
	if err := figure.MoveCenterTo(mgl32.Vec3{size[0] * 0.9, size[1] * 0.53, 0}); err != nil {
		return p, err
	}
	figure.ApplyTransformation(mgl32.HomogRotate3DY(-math32.Pi / 5))
	if err := root.AddChild(figure); err != nil {
		return p, err
	}
	p.figure = figure

	for _, a := range cfg.Assets {
		n, err := w.loadAsset(a)
		if err != nil {
			w.logger.Warn("asset skipped", "path", a.Path, "error", err)
			continue
		}
		if err := root.AddChild(n); err != nil {
			return p, err
		}
	}

	graph.Update()
	graph.ComputeBoundingBox(root)
	if err := root.MoveCenterTo(RootCenter); err != nil {
		return p, err
	}

	sun := mesh.Sphere(SunName, 1, sunColour, append(opts, mesh.WithShadingModel(material.ShadingUnlit))...)
	sun.ComputeBoundingBox()
	ext, err := sun.BoundingBoxExtent()
	if err != nil {
		return p, fmt.Errorf("failed to size sun: %w", err)
	}
	sun.ScaleNode(1 / ext)
	if err := sun.MoveCenterTo(mgl32.Vec3(cfg.Light.Position)); err != nil {
		return p, err
	}
	if err := root.AddChild(sun); err != nil {
		return p, err
	}
	p.sun = sun

	graph.Update()
	graph.ComputeBoundingBox(root)

	p.center, err = figure.BoundingBoxCenter()
	if err != nil {
		return p, fmt.Errorf("failed to find scene center: %w", err)
	}
	lt.Camera().UpdateTarget(p.center)
	return p, nil
}

// loadAsset loads one glTF file and places it. Scale 0 keeps the file's own size.
func (w *world) loadAsset(a config.AssetConfig) (scene.Node, error) {
	n, err := w.loader.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Scale > 0 {
		n.ScaleNode(a.Scale)
	}
	if err := n.MoveCenterTo(mgl32.Vec3(a.Position)); err != nil {
		return nil, err
	}
	return n, nil
}

func (w *world) Step(timeMs float64) {
	if w.paused {
		return
	}
	w.figure.Step(timeMs)
	w.orbit.Step(timeMs)
}

func (w *world) Render(ctx context.Context) renderer.FrameStats {
	return w.renderer.Render(ctx, w.rc)
}

func (w *world) Apply(cfg config.Config) {
	w.figure.SetSpeed(cfg.Scene.FigureSpeed)
	w.orbit.SetSpeed(cfg.Scene.SunSpin)
	w.rc.Light.SetFov(common.DegToRad(cfg.Light.Fov))
	w.rc.TextureTimeout = cfg.TextureTimeout()
}

func (w *world) TogglePause() bool {
	w.paused = !w.paused
	return w.paused
}

func (w *world) Context() *renderer.RenderContext {
	return w.rc
}

func (w *world) Controller() input.Controller {
	return w.controller
}

func (w *world) Graph() scene.Graph {
	return w.rc.Graph
}

func (w *world) Camera() camera.Camera {
	return w.rc.Camera
}

func (w *world) Release() {
	w.rc.Graph.Release()
	w.rc.Programs.Release()
	w.rc.Placeholders.Release()
}

// resize keeps the render context and the backend surface in step with the controller.
func (w *world) resize(width, height int) {
	w.rc.Viewport = renderer.Viewport{Width: width, Height: height}
	w.backend.Resize(width, height)
}
