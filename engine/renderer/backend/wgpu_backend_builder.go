package backend

import (
	"log/slog"

	"github.com/Carmen-Shannon/sunlit/engine/renderer"
)

// WGPUBackendBuilderOption is a functional option applied to the WebGPU backend during construction.
type WGPUBackendBuilderOption func(*wgpuBackend)

// WithPresentMode sets how frames are delivered to the display.
//
// Parameters:
//   - mode: VSync or Uncapped
//
// Returns:
//   - WGPUBackendBuilderOption: a function that applies the present mode
func WithPresentMode(mode renderer.PresentMode) WGPUBackendBuilderOption {
	return func(b *wgpuBackend) {
		b.presentMode = mode
	}
}

// WithMSAA sets the sample count of the colour target.
//
// Parameters:
//   - count: MSAAOff or MSAA4x
//
// Returns:
//   - WGPUBackendBuilderOption: a function that applies the sample count
func WithMSAA(count renderer.MSAASampleCount) WGPUBackendBuilderOption {
	return func(b *wgpuBackend) {
		b.sampleCount = count
	}
}

// WithMaxDrawsPerFrame bounds the number of draws one pass can stage uniforms for.
//
// Parameters:
//   - n: the draw limit, values below 1 are ignored
//
// Returns:
//   - WGPUBackendBuilderOption: a function that applies the limit
func WithMaxDrawsPerFrame(n int) WGPUBackendBuilderOption {
	return func(b *wgpuBackend) {
		if n > 0 {
			b.maxDraws = n
		}
	}
}

// WithForceFallbackAdapter requests the software adapter.
func WithForceFallbackAdapter(force bool) WGPUBackendBuilderOption {
	return func(b *wgpuBackend) {
		b.forceFallback = force
	}
}

// WithLogger sets the logger for draw-time failures.
func WithLogger(logger *slog.Logger) WGPUBackendBuilderOption {
	return func(b *wgpuBackend) {
		b.logger = logger
	}
}
