package world

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/animator"
	"github.com/Carmen-Shannon/sunlit/engine/config"
	"github.com/Carmen-Shannon/sunlit/engine/renderer"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, mutate func(*config.Config)) (World, *renderer.HeadlessBackend) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	b := renderer.NewHeadlessBackend(cfg.Window.Width, cfg.Window.Height)
	w, err := Build(cfg, b, nil, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	t.Cleanup(w.Release)
	return w, b
}

func center(t *testing.T, n scene.Node) [3]float32 {
	t.Helper()
	require.NotNil(t, n)
	c, err := n.BoundingBoxCenter()
	require.NoError(t, err)
	return c
}

func TestBuildDemoScene(t *testing.T) {
	w, _ := build(t, nil)
	g := w.Graph()

	for _, name := range []string{LightName, PlaneName, animator.FigureName, SunName} {
		assert.NotNil(t, g.NodeByName(name), name)
	}
	assert.Nil(t, g.NodeByName(renderer.FrustumNodeName))
	assert.Nil(t, g.NodeByName(GlobeName))

	sun := g.NodeByName(SunName)
	assert.Equal(t, material.ShadingUnlit, sun.RenderingModel())
	ext, err := sun.BoundingBoxExtent()
	require.NoError(t, err)
	assert.InDelta(t, 1, ext, 1e-3)

	// the sun sits on the light: both were placed at the light position under the same root
	lc := center(t, g.NodeByName(LightName))
	sc := center(t, sun)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, lc[k], sc[k], 1e-4)
	}

	rc := w.Context()
	fc := center(t, g.NodeByName(animator.FigureName))
	assert.Equal(t, fc, [3]float32(rc.SceneCenter))
	assert.Equal(t, rc.SceneCenter, rc.Light.Camera().Target())
	assert.InDelta(t, common.DegToRad(90), rc.Light.Fov(), 1e-6)
	assert.Equal(t, renderer.Viewport{Width: 1280, Height: 720}, rc.Viewport)
}

func TestBuildFailsWithoutDepthTextures(t *testing.T) {
	cfg := config.Default()
	b := renderer.NewHeadlessBackend(cfg.Window.Width, cfg.Window.Height)
	b.DisableDepthTextures()

	w, err := Build(cfg, b, nil, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	assert.Nil(t, w)
	assert.ErrorIs(t, err, renderer.ErrDepthTextureUnsupported)
}

func TestBuildCreatesShadowMap(t *testing.T) {
	w, b := build(t, nil)

	require.NotNil(t, w.Graph().DepthTarget())
	assert.Equal(t, config.Default().Light.ShadowMapSize, w.Graph().DepthTarget().Size())
	assert.Equal(t, 1, b.Count("CreateDepthTarget"))
}

func TestRender(t *testing.T) {
	w, b := build(t, nil)

	stats := w.Render(context.Background())

	assert.Equal(t, uint64(1), stats.Frame)
	assert.Positive(t, stats.DepthDraws)
	assert.Positive(t, stats.ColorDraws)
	assert.Zero(t, stats.SkippedNodes)
	assert.Positive(t, stats.SkippedBinds)
	assert.Equal(t, 1, b.Presented())
}

func TestStepMovesSunAndPause(t *testing.T) {
	w, _ := build(t, nil)
	sun := w.Graph().NodeByName(SunName)
	before := center(t, sun)

	w.Step(16)
	moved := center(t, sun)
	assert.NotEqual(t, before, moved)

	assert.True(t, w.TogglePause())
	w.Step(32)
	assert.Equal(t, moved, center(t, sun))

	assert.False(t, w.TogglePause())
}

func TestApplyReloadsTuning(t *testing.T) {
	w, _ := build(t, nil)

	cfg := config.Default()
	cfg.Light.Fov = 45
	cfg.Textures.TimeoutMs = 100
	w.Apply(cfg)

	assert.InDelta(t, common.DegToRad(45), w.Context().Light.Fov(), 1e-6)
	assert.Equal(t, cfg.TextureTimeout(), w.Context().TextureTimeout)
}

func TestOptionalParts(t *testing.T) {
	w, _ := build(t, func(c *config.Config) {
		c.Scene.Frustum = true
		c.Scene.Globe = true
		c.Scene.BladesPerRing = 6
		c.Assets = []config.AssetConfig{{Path: "does/not/exist.glb"}}
	})
	g := w.Graph()

	assert.NotNil(t, g.NodeByName(renderer.FrustumNodeName))
	globe := g.NodeByName(GlobeName)
	require.NotNil(t, globe)
	grass := globe.Children()
	require.NotEmpty(t, grass)
	assert.True(t, grass[0].MultipleInstance())

	stats := w.Render(context.Background())
	assert.Positive(t, stats.ColorDraws)
}

func TestResizeFollowsController(t *testing.T) {
	w, b := build(t, nil)

	w.Controller().Resize(800, 400)

	assert.Equal(t, renderer.Viewport{Width: 800, Height: 400}, w.Context().Viewport)
	width, height := b.Size()
	assert.Equal(t, 800, width)
	assert.Equal(t, 400, height)
	assert.InDelta(t, 2, w.Camera().Aspect(), 1e-6)
}
