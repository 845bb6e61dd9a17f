package material

import "log/slog"

// TextureLoaderBuilderOption is a functional option for configuring a TextureLoader via NewTextureLoader.
type TextureLoaderBuilderOption func(*textureLoader)

// WithWorkers sets the maximum number of concurrent decode workers.
//
// Parameters:
//   - n: worker count, values below 1 are ignored
//
// Returns:
//   - TextureLoaderBuilderOption: a function that applies the worker count to a textureLoader
func WithWorkers(n int) TextureLoaderBuilderOption {
	return func(l *textureLoader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithMaxDimension downscales decoded images whose width or height exceeds px.
//
// Parameters:
//   - px: the largest allowed dimension, 0 disables downscaling
//
// Returns:
//   - TextureLoaderBuilderOption: a function that applies the limit to a textureLoader
func WithMaxDimension(px int) TextureLoaderBuilderOption {
	return func(l *textureLoader) {
		l.maxDim = px
	}
}

// WithLogger sets the logger used for load failures.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - TextureLoaderBuilderOption: a function that applies the logger to a textureLoader
func WithLogger(logger *slog.Logger) TextureLoaderBuilderOption {
	return func(l *textureLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}
