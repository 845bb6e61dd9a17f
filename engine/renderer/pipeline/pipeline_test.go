package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	p := NewPipeline("x")
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, CullNone, p.CullMode())
	assert.Equal(t, FrontFaceCCW, p.FrontFace())
	assert.True(t, p.DepthOnly())
}

func TestForShadingModel(t *testing.T) {
	for _, m := range material.ShadingModels {
		t.Run(m.String(), func(t *testing.T) {
			p, err := ForShadingModel(m)
			require.NoError(t, err)
			assert.Equal(t, m.String(), p.Key())
			assert.Equal(t, m, p.Model())
			assert.False(t, p.DepthOnly())
			assert.NotNil(t, p.Shader(shader.ShaderTypeVertex))
			assert.NotNil(t, p.Shader(shader.ShaderTypeFragment))
			assert.Equal(t, material.SlotsFor(m), p.TextureSlots())
			assert.Equal(t, m == material.ShadingShadowedBlinnPhong, p.ShadowMap())
			assert.Positive(t, p.UniformSize())
			assert.Equal(t, CullBack, p.CullMode())
		})
	}

	_, err := ForShadingModel(material.ShadingNone)
	assert.Error(t, err)
}

func TestDepth(t *testing.T) {
	p, err := Depth()
	require.NoError(t, err)
	assert.True(t, p.DepthOnly())
	assert.Equal(t, DepthKey, p.Key())
	assert.Equal(t, 64, p.UniformSize())
	assert.Empty(t, p.TextureSlots())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, FrontFaceCCW, p.FrontFace())
	assert.Equal(t, CullBack, p.CullMode())
}

func TestRasterOptions(t *testing.T) {
	p := NewPipeline("overlay",
		WithDepthWriteEnabled(false),
		WithFrontFace(FrontFaceCW),
		WithCullMode(CullFront),
	)
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, FrontFaceCW, p.FrontFace())
	assert.Equal(t, CullFront, p.CullMode())
}
