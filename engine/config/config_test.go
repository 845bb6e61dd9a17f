package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, [3]float32{0, 2, 5}, cfg.Camera.Position)
	assert.Equal(t, 2048, cfg.Light.ShadowMapSize)
	assert.Equal(t, 2*time.Second, cfg.TextureTimeout())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "scene.yaml", `
window:
  title: yaml scene
  width: 640
  height: 480
light:
  position: [1, 2, 3]
  fov: 45
scene:
  globe: true
  blades_per_ring: 12
assets:
  - path: ~/models/box.glb
    scale: 0.5
log:
  level: debug
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "yaml scene", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Light.Position)
	assert.Equal(t, float32(45), cfg.Light.Fov)
	// untouched keys keep their defaults
	assert.Equal(t, float32(10), cfg.Light.Far)
	assert.True(t, cfg.Scene.Globe)
	assert.Equal(t, 12, cfg.Scene.BladesPerRing)
	require.Len(t, cfg.Assets, 1)
	assert.Equal(t, float32(0.5), cfg.Assets[0].Scale)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoadTOML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "scene.toml", `
[camera]
position = [0.0, 3.0, 8.0]
fov = 50.0

[render]
headless = true
frames = 10
msaa = 4

[textures]
timeout_ms = 500
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, [3]float32{0, 3, 8}, cfg.Camera.Position)
	assert.Equal(t, float32(50), cfg.Camera.Fov)
	assert.True(t, cfg.Render.Headless)
	assert.Equal(t, 10, cfg.Render.Frames)
	assert.Equal(t, 4, cfg.Render.MSAA)
	assert.Equal(t, 500*time.Millisecond, cfg.TextureTimeout())
	assert.Equal(t, "sunlit", cfg.Window.Title)
}

func TestLoadEmptyYAMLKeepsDefaults(t *testing.T) {
	p := writeFile(t, t.TempDir(), "empty.yml", "")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "scene.json", "{}"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeFile(t, dir, "unknown.yaml", "window:\n  colour: red\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "bad.toml", "[render]\nmsaa = 2\n"))
	assert.ErrorContains(t, err, "msaa")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"window":   func(c *Config) { c.Window.Width = 0 },
		"fov":      func(c *Config) { c.Camera.Fov = 180 },
		"distance": func(c *Config) { c.Camera.Distance = 0 },
		"planes":   func(c *Config) { c.Light.Far = c.Light.Near },
		"shadow":   func(c *Config) { c.Light.ShadowMapSize = 0 },
		"frames":   func(c *Config) { c.Render.Frames = -1 },
		"asset":    func(c *Config) { c.Assets = []AssetConfig{{}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "scene.yaml", "scene:\n  sun_spin: 0.01\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 4)
	require.NoError(t, Watch(ctx, p, func(c Config) { got <- c }, nil))

	writeFile(t, dir, "other.yaml", "scene:\n  sun_spin: 1\n")
	writeFile(t, dir, "scene.yaml", "scene:\n  sun_spin: 0.02\n")

	// a truncating write can surface an empty file first, which reloads as the defaults
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			assert.NotEqual(t, float32(1), cfg.Scene.SunSpin)
			if cfg.Scene.SunSpin == 0.02 {
				return
			}
		case <-deadline:
			t.Fatal("no reload")
		}
	}
}
