package light

import (
	"sync"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/camera"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// spotPenumbraDeg is how far inside the cone edge full intensity ends.
const spotPenumbraDeg float32 = 10

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu                *sync.Mutex
	camera            camera.Camera
	color             mgl32.Vec3
	intensity         float32
	shadowTextureSize int
	castsShadows      bool
}

// Light defines the interface for the scene's shadow-casting spot light.
//
// A spot light sees the world through its own perspective camera: the camera's position
// is the light position, its look direction is the cone axis and its field of view is the
// full cone angle. The depth pass renders through that camera into a square shadow map.
type Light interface {
	// Camera returns the light's camera. The renderer moves it every frame.
	//
	// Returns:
	//   - camera.Camera: the light camera
	Camera() camera.Camera

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Direction returns the normalized cone axis.
	//
	// Returns:
	//   - mgl32.Vec3: the spot direction
	Direction() mgl32.Vec3

	// Fov returns the full cone angle in radians.
	//
	// Returns:
	//   - float32: the field of view
	Fov() float32

	// SetFov changes the cone angle, keeping the camera's aspect and planes.
	//
	// Parameters:
	//   - fov: the field of view in radians
	SetFov(fov float32)

	// SpotInnerLimit returns cos(fov/2 - 10 degrees). Fragments with a larger cosine to the
	// axis receive full intensity.
	//
	// Returns:
	//   - float32: the inner cosine limit
	SpotInnerLimit() float32

	// SpotOuterLimit returns cos(fov/2). Fragments with a smaller cosine receive nothing.
	//
	// Returns:
	//   - float32: the outer cosine limit
	SpotOuterLimit() float32

	// ShadowTextureSize returns the width and height in texels of the shadow map.
	//
	// Returns:
	//   - int: the shadow map size
	ShadowTextureSize() int

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the color
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier.
	//
	// Returns:
	//   - float32: the intensity
	Intensity() float32

	// CastsShadows returns whether the depth pass should render for this light.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool
}

var _ Light = &lightImpl{}

// NewSpotLight creates a spot light at position aiming at target. The light camera uses
// the default cone angle, aspect and planes unless overridden.
//
// Parameters:
//   - position: the light position
//   - target: the point the cone axis passes through
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewSpotLight(position, target mgl32.Vec3, opts ...LightBuilderOption) Light {
	cfg := &lightConfig{
		fov:               common.DegToRad(DefaultShadowFovDeg),
		aspect:            DefaultShadowAspect,
		near:              DefaultShadowNear,
		far:               DefaultShadowFar,
		up:                mgl32.Vec3{0, 1, 0},
		color:             mgl32.Vec3{1, 1, 1},
		intensity:         1,
		shadowTextureSize: ShadowMapResolution,
		castsShadows:      true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &lightImpl{
		mu:                &sync.Mutex{},
		camera:            camera.InitializeLightCamera(position, target, cfg.up, cfg.fov, cfg.aspect, cfg.near, cfg.far),
		color:             cfg.color,
		intensity:         cfg.intensity,
		shadowTextureSize: cfg.shadowTextureSize,
		castsShadows:      cfg.castsShadows,
	}
}

func (l *lightImpl) Camera() camera.Camera {
	return l.camera
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.camera.Position()
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.camera.Direction()
}

func (l *lightImpl) Fov() float32 {
	return l.camera.Fov()
}

func (l *lightImpl) SetFov(fov float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := l.camera
	c.SetPerspective(fov, c.Aspect(), c.Near(), c.Far())
}

func (l *lightImpl) SpotInnerLimit() float32 {
	return math32.Cos(l.camera.Fov()/2 - common.DegToRad(spotPenumbraDeg))
}

func (l *lightImpl) SpotOuterLimit() float32 {
	return math32.Cos(l.camera.Fov() / 2)
}

func (l *lightImpl) ShadowTextureSize() int {
	return l.shadowTextureSize
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}
