package world

import (
	"log/slog"

	"github.com/Carmen-Shannon/sunlit/engine/renderer"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
)

// WorldBuilderOption is a functional option for configuring a World via Build.
type WorldBuilderOption func(*world)

// WithLogger sets the logger used by the world and everything it builds.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - WorldBuilderOption: a function that applies the logger to a world
func WithLogger(logger *slog.Logger) WorldBuilderOption {
	return func(w *world) {
		w.logger = logger
	}
}

// WithRenderer replaces the default renderer.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - WorldBuilderOption: a function that applies the renderer to a world
func WithRenderer(r renderer.Renderer) WorldBuilderOption {
	return func(w *world) {
		w.renderer = r
	}
}

// WithTextureLoader replaces the default worker-pool texture loader.
//
// Parameters:
//   - t: the texture loader
//
// Returns:
//   - WorldBuilderOption: a function that applies the texture loader to a world
func WithTextureLoader(t material.TextureLoader) WorldBuilderOption {
	return func(w *world) {
		w.textures = t
	}
}

// WithViewport sets the initial viewport, typically the window's framebuffer size. The
// configured window size is used otherwise.
//
// Parameters:
//   - width, height: the viewport in pixels
//
// Returns:
//   - WorldBuilderOption: a function that applies the viewport to a world
func WithViewport(width, height int) WorldBuilderOption {
	return func(w *world) {
		w.width, w.height = width, height
	}
}
