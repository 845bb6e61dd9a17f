package engine

import (
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/inspect"
	"github.com/Carmen-Shannon/sunlit/engine/renderer"
)

// publish hands the inspect server a copy of the frame. The scene tree is only re-copied every
// snapshotEvery frames.
func (e *engine) publish(frame uint64, stats renderer.FrameStats) {
	if frame == 1 || e.snapshotEvery <= 1 || frame%uint64(e.snapshotEvery) == 0 {
		e.lastScene = e.world.Graph().Snapshot()
	}
	e.inspect.Publish(&inspect.Snapshot{
		Time:   time.Now(),
		Stats:  stats,
		Camera: inspect.SnapshotCamera(e.world.Camera()),
		Scene:  e.lastScene,
	})
}
