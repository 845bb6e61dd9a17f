package light

import (
	"testing"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSpotLightDefaults(t *testing.T) {
	l := NewSpotLight(mgl32.Vec3{-1.5, 2.5, -4}, mgl32.Vec3{})

	assert.Equal(t, ShadowMapResolution, l.ShadowTextureSize())
	assert.InDelta(t, common.DegToRad(90), l.Fov(), 1e-6)
	assert.Equal(t, DefaultShadowNear, l.Camera().Near())
	assert.Equal(t, DefaultShadowFar, l.Camera().Far())
	assert.Equal(t, DefaultShadowAspect, l.Camera().Aspect())
	assert.True(t, l.CastsShadows())
	assert.Equal(t, mgl32.Vec3{-1.5, 2.5, -4}, l.Position())
}

func TestSpotLimits(t *testing.T) {
	l := NewSpotLight(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{}, WithFov(common.DegToRad(90)))

	assert.InDelta(t, math32.Cos(common.DegToRad(35)), l.SpotInnerLimit(), 1e-6)
	assert.InDelta(t, math32.Cos(common.DegToRad(45)), l.SpotOuterLimit(), 1e-6)
	assert.Greater(t, l.SpotInnerLimit(), l.SpotOuterLimit())
	assert.True(t, l.Direction().ApproxEqual(mgl32.Vec3{0, -1, 0}))
}

func TestSetFovKeepsPlanes(t *testing.T) {
	l := NewSpotLight(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{}, WithPlanes(2, 0.5, 20))
	l.SetFov(1)

	assert.Equal(t, float32(1), l.Fov())
	assert.Equal(t, float32(2), l.Camera().Aspect())
	assert.Equal(t, float32(0.5), l.Camera().Near())
	assert.Equal(t, float32(20), l.Camera().Far())
}

func TestDefaultPointLights(t *testing.T) {
	lights := DefaultPointLights()
	assert.Len(t, lights, 1)
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, lights[0].Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, lights[0].Color)
}
