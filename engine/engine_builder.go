package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/inspect"
	"github.com/Carmen-Shannon/sunlit/engine/profiler"
	"github.com/Carmen-Shannon/sunlit/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the frame rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.tickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow routes the window's input to the world and runs its message loop from Run.
// Without a window the engine runs headless.
//
// Parameters:
//   - w: a created Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithFrames stops the engine after n frames. 0 runs until quit.
//
// Parameters:
//   - n: the frame limit
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrames(n int) EngineBuilderOption {
	return func(e *engine) {
		if n > 0 {
			e.maxFrames = uint64(n)
		}
	}
}

// WithInspect publishes every frame to s.
//
// Parameters:
//   - s: the inspect server
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInspect(s inspect.Server) EngineBuilderOption {
	return func(e *engine) {
		e.inspect = s
	}
}

// WithSnapshotInterval sets how many frames pass between scene tree copies for the inspect
// server. Camera and frame stats are copied every frame.
//
// Parameters:
//   - frames: the interval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSnapshotInterval(frames int) EngineBuilderOption {
	return func(e *engine) {
		e.snapshotEvery = frames
	}
}

// WithLogger sets the logger. The engine adds its own component attribute.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
