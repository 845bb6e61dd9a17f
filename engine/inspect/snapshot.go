package inspect

import (
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/camera"
	"github.com/Carmen-Shannon/sunlit/engine/renderer"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
)

// Snapshot is everything the server can report about one frame. It is a plain copy, owned by
// the server once published.
type Snapshot struct {
	Time   time.Time           `json:"time" yaml:"time"`
	Stats  renderer.FrameStats `json:"stats" yaml:"stats"`
	Camera CameraSnapshot      `json:"camera" yaml:"camera"`
	Scene  scene.NodeSnapshot  `json:"scene" yaml:"scene"`
}

// CameraSnapshot is a plain copy of a camera's state.
type CameraSnapshot struct {
	Position [3]float32 `json:"position" yaml:"position"`
	Target   [3]float32 `json:"target" yaml:"target"`
	Up       [3]float32 `json:"up" yaml:"up"`
	Fov      float32    `json:"fov" yaml:"fov"`
	Aspect   float32    `json:"aspect" yaml:"aspect"`
	Near     float32    `json:"near" yaml:"near"`
	Far      float32    `json:"far" yaml:"far"`
}

// SnapshotCamera copies the state of c.
func SnapshotCamera(c camera.Camera) CameraSnapshot {
	return CameraSnapshot{
		Position: c.Position(),
		Target:   c.Target(),
		Up:       c.Up(),
		Fov:      c.Fov(),
		Aspect:   c.Aspect(),
		Near:     c.Near(),
		Far:      c.Far(),
	}
}
