// Package config holds the typed demo configuration and loads it from YAML or TOML files.
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full demo configuration. Zero sections are not valid; start from Default.
type Config struct {
	Window   WindowConfig  `yaml:"window" toml:"window" json:"window"`
	Camera   CameraConfig  `yaml:"camera" toml:"camera" json:"camera"`
	Light    LightConfig   `yaml:"light" toml:"light" json:"light"`
	Scene    SceneConfig   `yaml:"scene" toml:"scene" json:"scene"`
	Textures TextureConfig `yaml:"textures" toml:"textures" json:"textures"`
	Render   RenderConfig  `yaml:"render" toml:"render" json:"render"`
	Inspect  InspectConfig `yaml:"inspect" toml:"inspect" json:"inspect"`
	Assets   []AssetConfig `yaml:"assets" toml:"assets" json:"assets"`
	Log      LogConfig     `yaml:"log" toml:"log" json:"log"`
}

type WindowConfig struct {
	Title  string `yaml:"title" toml:"title" json:"title"`
	Width  int    `yaml:"width" toml:"width" json:"width"`
	Height int    `yaml:"height" toml:"height" json:"height"`
}

// CameraConfig places the viewer. Fov is in degrees. Distance and Extent drive the zoom
// controller's clip planes.
type CameraConfig struct {
	Position [3]float32 `yaml:"position" toml:"position" json:"position"`
	Target   [3]float32 `yaml:"target" toml:"target" json:"target"`
	Fov      float32    `yaml:"fov" toml:"fov" json:"fov"`
	Distance float32    `yaml:"distance" toml:"distance" json:"distance"`
	Extent   float32    `yaml:"extent" toml:"extent" json:"extent"`
}

// LightConfig places the shadow-casting spot light. Fov is in degrees.
type LightConfig struct {
	Position      [3]float32 `yaml:"position" toml:"position" json:"position"`
	Fov           float32    `yaml:"fov" toml:"fov" json:"fov"`
	Aspect        float32    `yaml:"aspect" toml:"aspect" json:"aspect"`
	Near          float32    `yaml:"near" toml:"near" json:"near"`
	Far           float32    `yaml:"far" toml:"far" json:"far"`
	ShadowMapSize int        `yaml:"shadow_map_size" toml:"shadow_map_size" json:"shadow_map_size"`
}

type SceneConfig struct {
	PlaneSize     float32 `yaml:"plane_size" toml:"plane_size" json:"plane_size"`
	Frustum       bool    `yaml:"frustum" toml:"frustum" json:"frustum"`
	Globe         bool    `yaml:"globe" toml:"globe" json:"globe"`
	BladesPerRing int     `yaml:"blades_per_ring" toml:"blades_per_ring" json:"blades_per_ring"`
	FigureSpeed   float32 `yaml:"figure_speed" toml:"figure_speed" json:"figure_speed"`
	Walk          bool    `yaml:"walk" toml:"walk" json:"walk"`
	SunSpin       float32 `yaml:"sun_spin" toml:"sun_spin" json:"sun_spin"`
}

type TextureConfig struct {
	Workers      int `yaml:"workers" toml:"workers" json:"workers"`
	TimeoutMs    int `yaml:"timeout_ms" toml:"timeout_ms" json:"timeout_ms"`
	MaxDimension int `yaml:"max_dimension" toml:"max_dimension" json:"max_dimension"`
}

// RenderConfig selects backend behaviour. Frames only applies to headless runs; 0 runs until quit.
type RenderConfig struct {
	MaxDraws int     `yaml:"max_draws" toml:"max_draws" json:"max_draws"`
	MSAA     int     `yaml:"msaa" toml:"msaa" json:"msaa"`
	VSync    bool    `yaml:"vsync" toml:"vsync" json:"vsync"`
	Headless bool    `yaml:"headless" toml:"headless" json:"headless"`
	Frames   int     `yaml:"frames" toml:"frames" json:"frames"`
	TickRate float64 `yaml:"tick_rate" toml:"tick_rate" json:"tick_rate"`
}

// InspectConfig enables the debug HTTP server when Addr is not empty.
type InspectConfig struct {
	Addr string `yaml:"addr" toml:"addr" json:"addr"`
}

// AssetConfig is one glTF file placed into the scene.
type AssetConfig struct {
	Path     string     `yaml:"path" toml:"path" json:"path"`
	Position [3]float32 `yaml:"position" toml:"position" json:"position"`
	Scale    float32    `yaml:"scale" toml:"scale" json:"scale"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level" json:"level"`
}

// Default returns the demo scene configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "sunlit", Width: 1280, Height: 720},
		Camera: CameraConfig{
			Position: [3]float32{0, 2, 5},
			Fov:      60,
			Distance: 5,
			Extent:   34.8,
		},
		Light: LightConfig{
			Position:      [3]float32{-1.5, 2.5, -4},
			Fov:           90,
			Aspect:        1,
			Near:          0.1,
			Far:           10,
			ShadowMapSize: 2048,
		},
		Scene: SceneConfig{
			PlaneSize:   10,
			FigureSpeed: 0.004,
			Walk:        true,
			SunSpin:     0.005,
		},
		Textures: TextureConfig{Workers: 4, TimeoutMs: 2000, MaxDimension: 4096},
		Render:   RenderConfig{MaxDraws: 4096, MSAA: 1, VSync: true, TickRate: 60},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the file at path over Default. The decoder is picked by extension: .yaml and .yml
// use YAML, .toml uses TOML. A leading ~ is expanded to the home directory.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - Config: the merged configuration
//   - error: read, decode or validation failure
func Load(path string) (Config, error) {
	cfg := Default()
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "expand %s", path)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := Decode(&cfg, filepath.Ext(expanded), data); err != nil {
		return cfg, errors.Wrapf(err, "decode %s", expanded)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", expanded)
	}
	return cfg, nil
}

// Decode unmarshals data over cfg using the decoder for ext. Unknown keys are rejected.
//
// Parameters:
//   - cfg: the config to decode into
//   - ext: the file extension, including the dot
//   - data: the encoded config
//
// Returns:
//   - error: unsupported extension or decode failure
func Decode(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "yaml")
		}
		return nil
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return errors.Wrap(err, "toml")
		}
		return nil
	default:
		return errors.Errorf("unsupported config format %q", ext)
	}
}

// Validate reports the first setting that cannot produce a working scene.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return errors.Errorf("camera fov %v", c.Camera.Fov)
	case c.Camera.Distance <= 0:
		return errors.Errorf("camera distance %v", c.Camera.Distance)
	case c.Light.Near <= 0 || c.Light.Far <= c.Light.Near:
		return errors.Errorf("light planes %v..%v", c.Light.Near, c.Light.Far)
	case c.Light.ShadowMapSize <= 0:
		return errors.Errorf("shadow map size %d", c.Light.ShadowMapSize)
	case c.Render.MSAA != 1 && c.Render.MSAA != 4:
		return errors.Errorf("msaa %d, want 1 or 4", c.Render.MSAA)
	case c.Render.Frames < 0:
		return errors.Errorf("frames %d", c.Render.Frames)
	}
	for i, a := range c.Assets {
		if a.Path == "" {
			return errors.Errorf("asset %d has no path", i)
		}
	}
	return nil
}

// TextureTimeout returns the texture await timeout as a duration.
func (c Config) TextureTimeout() time.Duration {
	return time.Duration(c.Textures.TimeoutMs) * time.Millisecond
}

// LogLevel maps Log.Level onto a slog level. Unknown values mean info.
func (c Config) LogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
