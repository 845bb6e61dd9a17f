package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/inspect"
	"github.com/Carmen-Shannon/sunlit/engine/profiler"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/Carmen-Shannon/sunlit/engine/window"
	"github.com/Carmen-Shannon/sunlit/engine/world"
)

const eventQueueSize = 256

// engine implements the Engine interface.
// One frame goroutine owns the world; everything else talks to it through the event queue.
type engine struct {
	logger *slog.Logger

	world  world.World
	window window.Window

	inspect       inspect.Server
	snapshotEvery int
	lastScene     scene.NodeSnapshot

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	tickRate        time.Duration
	tickRateChannel chan time.Duration
	maxFrames       uint64
	frames          atomic.Uint64
	start           time.Time

	events chan func()

	wg          sync.WaitGroup
	quitChannel chan struct{}
	quitOnce    sync.Once
	err         error
}

// Engine runs the frame loop of a World: drain posted events, advance the animators, render,
// then report the frame to the profiler and the inspect server.
type Engine interface {
	// Run starts the frame goroutine. With a window it then runs the window message loop on the
	// calling goroutine, which must be the main one; without a window it waits for the frame
	// goroutine. Run returns when the window closes, the frame limit is reached, ctx is done
	// or a frame panics.
	//
	// Parameters:
	//   - ctx: stops the engine when done
	//
	// Returns:
	//   - error: the recovered panic of a failed frame, or nil
	Run(ctx context.Context) error

	// Post queues fn to run on the frame goroutine before the next frame. It blocks while the
	// queue is full.
	//
	// Parameters:
	//   - fn: the event
	//
	// Returns:
	//   - bool: false if the engine has already quit and fn was dropped
	Post(fn func()) bool

	// Quit signals the frame goroutine to stop. Safe to call multiple times.
	Quit()

	// Frames returns how many frames have been rendered.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// SetTickRate sets the frame rate in frames per second. Values <= 0 mean 60.
	//
	// Parameters:
	//   - fps: target frames per second
	SetTickRate(fps float64)

	// EnableProfiler enables per-second frame statistics in the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics.
	DisableProfiler()

	// World returns the world the engine drives.
	//
	// Returns:
	//   - world.World: the world
	World() world.World

	// Window returns the window, or nil when headless.
	//
	// Returns:
	//   - window.Window: the window
	Window() window.Window
}

var _ Engine = &engine{}

// NewEngine creates an Engine for w. Window callbacks, when a window is set, are routed to the
// world's input controller through the event queue.
//
// Parameters:
//   - w: the world to drive
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w world.World, options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:          slog.Default(),
		world:           w,
		snapshotEvery:   30,
		tickRate:        time.Second / 60,
		tickRateChannel: make(chan time.Duration, 1),
		events:          make(chan func(), eventQueueSize),
		quitChannel:     make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}
	e.logger = e.logger.With("component", "engine")
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}
	if e.window != nil {
		e.bindWindow()
	}
	return e
}

// bindWindow posts every window event to the frame goroutine.
func (e *engine) bindWindow() {
	c := e.world.Controller()
	e.window.SetMouseDownCallback(func(x, y float64, ctrl bool) {
		e.Post(func() { c.MouseDown(x, y, ctrl) })
	})
	e.window.SetMouseUpCallback(func() {
		e.Post(c.MouseUp)
	})
	e.window.SetMouseMoveCallback(func(x, y float64) {
		e.Post(func() { c.MouseMove(x, y) })
	})
	e.window.SetScrollCallback(func(deltaY float64) {
		e.Post(func() { c.Scroll(deltaY) })
	})
	e.window.SetResizeCallback(func(width, height int) {
		e.Post(func() { c.Resize(width, height) })
	})
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		e.Post(func() { e.handleKey(keyCode) })
	})
}

func (e *engine) handleKey(keyCode uint32) {
	switch keyCode {
	case common.KeySpace:
		e.logger.Info("animation toggled", "paused", e.world.TogglePause())
	case common.KeyP:
		if e.profilingEnabled.Load() {
			e.DisableProfiler()
		} else {
			e.EnableProfiler()
		}
	case common.KeyD:
		var b strings.Builder
		scene.Dump(&b, e.world.Graph().Snapshot())
		e.logger.Info("scene dump", "dump", b.String())
	}
}

func (e *engine) Run(ctx context.Context) error {
	e.start = time.Now()
	e.wg.Add(1)
	go e.handleFrames(ctx)

	if e.window == nil {
		e.wg.Wait()
		return e.err
	}

	closed := false
	closeWindow := func() {
		// the frame goroutine presents to the window surface, so it must be gone first
		e.wg.Wait()
		if closed {
			return
		}
		closed = true
		if err := e.window.Close(); err != nil {
			e.logger.Warn("window close failed", "error", err)
		}
	}
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			closeWindow()
		default:
		}
	})
	e.window.ProcessMessages()
	e.signalQuit()
	closeWindow()
	return e.err
}

func (e *engine) Post(fn func()) bool {
	select {
	case <-e.quitChannel:
		return false
	default:
	}
	select {
	case e.events <- fn:
		return true
	case <-e.quitChannel:
		return false
	}
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handleFrames runs one frame per tick until quit. Rate changes arrive via tickRateChannel.
func (e *engine) handleFrames(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ctx.Done():
			e.signalQuit()
			return
		case rate := <-e.tickRateChannel:
			ticker.Reset(rate)
		case <-ticker.C:
			more, err := e.frame(ctx)
			if err != nil {
				e.err = err
			}
			if !more {
				e.signalQuit()
				return
			}
		}
	}
}

// frame drains the event queue, steps and renders once. It reports false once the frame limit
// is reached or the frame panicked.
func (e *engine) frame(ctx context.Context) (more bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("frame recovered from panic", "panic", r, "frame", e.frames.Load()+1)
			more, err = false, fmt.Errorf("frame panic: %v", r)
		}
	}()

	e.drain()

	e.world.Step(float64(time.Since(e.start)) / float64(time.Millisecond))
	stats := e.world.Render(ctx)
	n := e.frames.Add(1)

	if e.profilingEnabled.Load() {
		e.profiler.Tick(stats)
	}
	if e.inspect != nil {
		e.publish(n, stats)
	}
	return e.maxFrames == 0 || n < e.maxFrames, nil
}

func (e *engine) drain() {
	for {
		select {
		case fn := <-e.events:
			fn()
		default:
			return
		}
	}
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	rate := time.Duration(float64(time.Second) / fps)
	// replace any pending update
	select {
	case <-e.tickRateChannel:
	default:
	}
	e.tickRateChannel <- rate
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) World() world.World {
	return e.world
}

func (e *engine) Window() window.Window {
	return e.window
}
