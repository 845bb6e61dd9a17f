package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/renderer"
)

// Profiler accumulates frame statistics and logs them at a fixed interval.
// Not safe for concurrent use; the engine ticks it from the frame goroutine.
type Profiler struct {
	logger         *slog.Logger
	updateInterval time.Duration
	now            func() time.Time

	lastTime     time.Time
	frameCount   int
	draws        int
	skippedBinds int
	skippedNodes int
	busy         time.Duration

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last Report
}

// Report is one logged interval.
type Report struct {
	FPS          float64
	AvgDraws     float64
	SkippedBinds int
	SkippedNodes int
	AvgFrame     time.Duration
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	MaxPauseUs   uint64
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithLogger sets the destination of the reports.
func WithLogger(logger *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithInterval sets how often a report is logged. Defaults to 1 second.
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// withClock replaces time.Now, for tests.
func withClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         slog.Default(),
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.logger = p.logger.With("component", "profiler")
	p.lastTime = p.now()
	return p
}

// Tick records one frame. Logs a report when the update interval has elapsed.
//
// Parameters:
//   - stats: the frame's counters
//
// Returns:
//   - bool: true if a report was logged this tick
func (p *Profiler) Tick(stats renderer.FrameStats) bool {
	p.frameCount++
	p.draws += stats.Draws()
	p.skippedBinds += stats.SkippedBinds
	p.skippedNodes += stats.SkippedNodes
	p.busy += stats.Duration

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	r := Report{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		AvgDraws:     float64(p.draws) / float64(p.frameCount),
		SkippedBinds: p.skippedBinds,
		SkippedNodes: p.skippedNodes,
		AvgFrame:     p.busy / time.Duration(p.frameCount),
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:      p.memStats.NumGC,
	}

	// PauseNs is a circular buffer of the last 256 GC pauses.
	start := p.lastGCCount
	if r.GCCount-start > 256 {
		start = r.GCCount - 256
	}
	for i := start; i < r.GCCount; i++ {
		r.MaxPauseUs = max(r.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	p.logger.Info("frame stats",
		"fps", r.FPS,
		"draws", r.AvgDraws,
		"skipped_binds", r.SkippedBinds,
		"skipped_nodes", r.SkippedNodes,
		"frame_time", r.AvgFrame,
		"heap_mb", r.HeapMB,
		"alloc_rate_mb", r.AllocRateMB,
		"gc", r.GCCount,
		"gc_max_pause_us", r.MaxPauseUs,
	)

	p.last = r
	p.frameCount, p.draws, p.skippedBinds, p.skippedNodes, p.busy = 0, 0, 0, 0, 0
	p.lastTime = currentTime
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent report.
func (p *Profiler) Last() Report {
	return p.last
}
