package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedProgramsPreProcess(t *testing.T) {
	for _, name := range []string{"simple", "unlit", "bph", "sh_bph", "pbr"} {
		t.Run(name, func(t *testing.T) {
			vs, err := LoadShader(name+"_vs", ShaderTypeVertex, name+".wgsl")
			require.NoError(t, err)
			fs, err := LoadShader(name+"_fs", ShaderTypeFragment, name+".wgsl")
			require.NoError(t, err)

			assert.Equal(t, "vs_main", vs.EntryPoint())
			assert.Equal(t, "fs_main", fs.EntryPoint())
			assert.NotContains(t, vs.Source(), annotationPrefix)
			assert.Equal(t, 1, strings.Count(vs.Source(), "struct VertexInput"))
		})
	}
}

func TestDepthProgramIsVertexOnly(t *testing.T) {
	vs, err := LoadShader("depth_vs", ShaderTypeVertex, "depth.wgsl")
	require.NoError(t, err)
	assert.Equal(t, "vs_main", vs.EntryPoint())

	_, err = LoadShader("depth_fs", ShaderTypeFragment, "depth.wgsl")
	assert.Error(t, err)
}

func TestTexturesAnnotationFollowsSlotOrder(t *testing.T) {
	s, err := LoadShader("bph_fs", ShaderTypeFragment, "bph.wgsl")
	require.NoError(t, err)

	slots := material.SlotsFor(material.ShadingBlinnPhong)
	last := -1
	for i, slot := range slots {
		decl := "@binding(" + string(rune('0'+i)) + ") var " + slot.String() + "_map"
		idx := strings.Index(s.Source(), decl)
		require.GreaterOrEqual(t, idx, 0, decl)
		assert.Greater(t, idx, last)
		last = idx
	}
	assert.Contains(t, s.Source(), "@group(1) @binding(8) var material_sampler: sampler;")
}

func TestDeclarations(t *testing.T) {
	s, err := LoadShader("sh_bph_vs", ShaderTypeVertex, "sh_bph.wgsl")
	require.NoError(t, err)

	decls := s.Declarations()
	require.Len(t, decls, 3)
	assert.Equal(t, AnnotationTypeUniform, decls[0].Type)
	assert.Equal(t, []string{"u", "phong_uniforms"}, decls[0].Args)
	assert.Equal(t, AnnotationTypeTextures, decls[1].Type)
	assert.Equal(t, material.ShadingShadowedBlinnPhong, decls[1].Model)
	assert.Equal(t, AnnotationTypeShadow, decls[2].Type)
	assert.Equal(t, 2, decls[2].Group)
}

func TestIncludeOnceAndCycles(t *testing.T) {
	p := &preProcessor{registry: map[string]registryEntry{
		"a": {Source: "//@sunlit:include b\nfn a() {}"},
		"b": {Source: "fn b() {}"},
		"x": {Source: "//@sunlit:include y"},
		"y": {Source: "//@sunlit:include x"},
	}}

	out, err := p.Process("//@sunlit:include a\n//@sunlit:include b\n//@sunlit:include a")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "fn b()"))
	assert.Equal(t, 1, strings.Count(out, "fn a()"))

	_, err = p.Process("//@sunlit:include x")
	assert.ErrorContains(t, err, "cycle")
}

func TestMalformedAnnotations(t *testing.T) {
	cases := []string{
		"//@sunlit:",
		"//@sunlit:include",
		"//@sunlit:include nope",
		"//@sunlit:uniform 0 u phong_uniforms",
		"//@sunlit:uniform 0 0 u clip",
		"//@sunlit:textures 1 simple",
		"//@sunlit:textures x bph",
		"//@sunlit:shadow -1",
		"//@sunlit:bogus 1",
	}
	for _, c := range cases {
		_, err := NewPreProcessor().Process(c)
		assert.Error(t, err, c)
	}
}

func TestStripComments(t *testing.T) {
	src := "a // @vertex fn fake(\n/* @fragment fn hidden( /* nested */ */b"
	assert.Equal(t, "a \nb", stripComments(src))
	assert.Equal(t, "", parseEntryPoint(src, ShaderTypeVertex))
}
