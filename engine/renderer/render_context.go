package renderer

import (
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/camera"
	"github.com/Carmen-Shannon/sunlit/engine/light"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultTextureTimeout bounds how long the first draw of a material waits for its textures.
const DefaultTextureTimeout = 2 * time.Second

// FrustumNodeName names the wireframe node that is drawn with the light camera's frustum
// transformation instead of its own world matrix.
const FrustumNodeName = "frustum"

// Viewport is the size of the default render target in pixels.
type Viewport struct {
	Width  int
	Height int
}

// RenderContext carries everything one frame reads. The renderer holds no scene state of its
// own, so any number of contexts can be rendered with one renderer.
type RenderContext struct {
	Graph  scene.Graph
	Camera camera.Camera
	Light  light.Light

	// LightNode is the node whose bounding box center positions the light each frame.
	LightNode scene.Node

	// PointLights feed PBR shading. Empty means light.DefaultPointLights.
	PointLights []light.PointLight

	// AmbientLight is the PBR ambient term.
	AmbientLight float32

	// SceneCenter is where the light aims each frame.
	SceneCenter mgl32.Vec3

	Viewport     Viewport
	Programs     *Programs
	Backend      Backend
	Placeholders *material.Placeholders

	// TextureTimeout bounds the first-use wait for a material's textures. Zero means
	// DefaultTextureTimeout.
	TextureTimeout time.Duration

	ClearColor mgl32.Vec4
}

func (rc *RenderContext) textureTimeout() time.Duration {
	if rc.TextureTimeout <= 0 {
		return DefaultTextureTimeout
	}
	return rc.TextureTimeout
}

func (rc *RenderContext) pointLights() []light.PointLight {
	if len(rc.PointLights) == 0 {
		return light.DefaultPointLights()
	}
	return rc.PointLights
}
