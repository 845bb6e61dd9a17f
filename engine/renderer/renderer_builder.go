package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithLogger sets the logger the renderer reports skipped nodes and texture timeouts to.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = logger
	}
}

// WithFallbackMaterial sets the material used for draw infos that carry none.
//
// Parameters:
//   - m: the fallback material
//
// Returns:
//   - RendererBuilderOption: a function that applies the fallback option to a renderer
func WithFallbackMaterial(m material.Material) RendererBuilderOption {
	return func(r *renderer) {
		r.fallback = m
	}
}
