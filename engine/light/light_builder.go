package light

import "github.com/go-gl/mathgl/mgl32"

type lightConfig struct {
	fov, aspect, near, far float32
	up                     mgl32.Vec3
	color                  mgl32.Vec3
	intensity              float32
	shadowTextureSize      int
	castsShadows           bool
}

// LightBuilderOption is a function that configures a Light during construction.
type LightBuilderOption func(*lightConfig)

// WithFov is an option builder that sets the full cone angle.
//
// Parameters:
//   - fov: the cone angle in radians
//
// Returns:
//   - LightBuilderOption: a function that applies the fov option
func WithFov(fov float32) LightBuilderOption {
	return func(l *lightConfig) {
		l.fov = fov
	}
}

// WithPlanes is an option builder that sets the light camera's aspect and clip planes.
//
// Parameters:
//   - aspect: width / height of the shadow frustum
//   - near: the near plane
//   - far: the far plane
//
// Returns:
//   - LightBuilderOption: a function that applies the planes option
func WithPlanes(aspect, near, far float32) LightBuilderOption {
	return func(l *lightConfig) {
		l.aspect, l.near, l.far = aspect, near, far
	}
}

// WithUp is an option builder that sets the light camera's up vector.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - LightBuilderOption: a function that applies the up option
func WithUp(up mgl32.Vec3) LightBuilderOption {
	return func(l *lightConfig) {
		l.up = up
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - color: the color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option
func WithColor(color mgl32.Vec3) LightBuilderOption {
	return func(l *lightConfig) {
		l.color = color
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightConfig) {
		l.intensity = intensity
	}
}

// WithShadowTextureSize is an option builder that sets the shadow map resolution.
//
// Parameters:
//   - size: width and height in texels
//
// Returns:
//   - LightBuilderOption: a function that applies the size option
func WithShadowTextureSize(size int) LightBuilderOption {
	return func(l *lightConfig) {
		l.shadowTextureSize = size
	}
}

// WithCastsShadows is an option builder that toggles shadow rendering.
//
// Parameters:
//   - castsShadows: true to render the depth pass
//
// Returns:
//   - LightBuilderOption: a function that applies the option
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightConfig) {
		l.castsShadows = castsShadows
	}
}
