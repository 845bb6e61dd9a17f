package loader

import (
	"log/slog"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithTextureLoader is an option builder that sets where material textures are decoded and
// uploaded. Without one every texture slot stays on its placeholder.
//
// Parameters:
//   - t: the texture loader
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture loader to a loader
func WithTextureLoader(t material.TextureLoader) LoaderBuilderOption {
	return func(l *loader) {
		l.textures = t
	}
}

// WithShadingModel is an option builder that overrides the shading model of loaded primitives.
// The default is PBR.
//
// Parameters:
//   - m: the shading model
//
// Returns:
//   - LoaderBuilderOption: a function that applies the shading model to a loader
func WithShadingModel(m material.ShadingModel) LoaderBuilderOption {
	return func(l *loader) {
		l.model = m
	}
}

// WithLogger is an option builder that sets the logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger to a loader
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = logger
	}
}
