package light

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture.
const ShadowMapResolution = 2048

// DefaultShadowFovDeg is the default spot cone angle in degrees.
const DefaultShadowFovDeg float32 = 90

// DefaultShadowAspect keeps the shadow frustum square to match the texture.
const DefaultShadowAspect float32 = 1

// DefaultShadowNear is the default near plane of the light camera.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the default far plane of the light camera. Geometry further than
// this from the light never shadows.
const DefaultShadowFar float32 = 10

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001
