package loader

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	doc       *gltf.Document
	name      string
	baseDir   string
	textures  material.TextureLoader
	materials map[uint32]material.Material
	futures   map[uint32]*material.TextureFuture
	warn      func(msg string, args ...any)
}

// gltfMaterialExtractor maps glTF metallic-roughness materials onto PBR materials, starting one
// texture load per referenced glTF texture.
type gltfMaterialExtractor interface {
	// ExtractMaterial returns the material at index, or the default PBR material for nil.
	// Repeated calls for the same index return the same material.
	//
	// Parameters:
	//   - index: the material index, nil for primitives without a material
	//
	// Returns:
	//   - material.Material: the material
	ExtractMaterial(index *uint32) material.Material
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a material extractor for a parsed document. A nil texture
// loader leaves every slot on its placeholder.
//
// Parameters:
//   - doc: the document
//   - name: prefix for texture labels
//   - baseDir: directory external image URIs are resolved against
//   - textures: the texture loader
//   - warn: sink for non-fatal texture problems
//
// Returns:
//   - gltfMaterialExtractor: the extractor
func newGLTFMaterialExtractor(doc *gltf.Document, name, baseDir string, textures material.TextureLoader, warn func(string, ...any)) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{
		doc:       doc,
		name:      name,
		baseDir:   baseDir,
		textures:  textures,
		materials: make(map[uint32]material.Material),
		futures:   make(map[uint32]*material.TextureFuture),
		warn:      warn,
	}
}

func (e *gltfMaterialExtractorImpl) ExtractMaterial(index *uint32) material.Material {
	if index == nil || int(*index) >= len(e.doc.Materials) {
		return material.DefaultPBRMaterial()
	}
	if m, ok := e.materials[*index]; ok {
		return m
	}

	src := e.doc.Materials[*index]
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("%s_material_%d", e.name, *index)
	}
	params := material.PBRParams{BaseColor: mgl32.Vec4{1, 1, 1, 1}, Metalness: 1, Roughness: 1}
	opts := []material.MaterialBuilderOption{material.WithName(name)}

	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			params.BaseColor = mgl32.Vec4(*pbr.BaseColorFactor)
		}
		if pbr.MetallicFactor != nil {
			params.Metalness = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			params.Roughness = *pbr.RoughnessFactor
		}
		if pbr.BaseColorTexture != nil {
			opts = e.withTexture(opts, pbr.BaseColorTexture.Index, material.SlotAlbedo)
		}
		// metalness is read from blue and roughness from green of the same texture
		if pbr.MetallicRoughnessTexture != nil {
			opts = e.withTexture(opts, pbr.MetallicRoughnessTexture.Index, material.SlotMetalness, material.SlotRoughness)
		}
	}
	if src.NormalTexture != nil && src.NormalTexture.Index != nil {
		opts = e.withTexture(opts, *src.NormalTexture.Index, material.SlotNormal)
	}
	if src.OcclusionTexture != nil && src.OcclusionTexture.Index != nil {
		opts = e.withTexture(opts, *src.OcclusionTexture.Index, material.SlotAO)
	}
	if src.EmissiveTexture != nil {
		opts = e.withTexture(opts, src.EmissiveTexture.Index, material.SlotEmissive)
	}

	m := material.NewMaterial(append(opts, material.WithPBR(params))...)
	e.materials[*index] = m
	return m
}

// withTexture appends one option per slot sharing the future of texture index.
func (e *gltfMaterialExtractorImpl) withTexture(opts []material.MaterialBuilderOption, index uint32, slots ...material.TextureSlot) []material.MaterialBuilderOption {
	f := e.future(index)
	if f == nil {
		return opts
	}
	for _, s := range slots {
		opts = append(opts, material.WithTexture(s, f))
	}
	return opts
}

func (e *gltfMaterialExtractorImpl) future(index uint32) *material.TextureFuture {
	if e.textures == nil {
		return nil
	}
	if f, ok := e.futures[index]; ok {
		return f
	}
	src, err := e.importedTexture(index)
	if err != nil {
		e.warn("texture skipped", "model", e.name, "texture", index, "error", err)
		e.futures[index] = nil
		return nil
	}
	f := e.textures.LoadImported(fmt.Sprintf("%s_texture_%d", e.name, index), src)
	e.futures[index] = f
	return f
}

// importedTexture resolves a texture's image to embedded bytes or a path on disk.
func (e *gltfMaterialExtractorImpl) importedTexture(index uint32) (*common.ImportedTexture, error) {
	if int(index) >= len(e.doc.Textures) {
		return nil, errors.Errorf("texture %d out of range", index)
	}
	tex := e.doc.Textures[index]
	if tex.Source == nil || int(*tex.Source) >= len(e.doc.Images) {
		return nil, errors.Errorf("texture %d has no image", index)
	}
	img := e.doc.Images[*tex.Source]
	out := &common.ImportedTexture{Name: img.Name, MimeType: img.MimeType}

	switch {
	case img.BufferView != nil:
		if int(*img.BufferView) >= len(e.doc.BufferViews) {
			return nil, errors.Errorf("image %d buffer view out of range", *tex.Source)
		}
		data, err := modeler.ReadBufferView(e.doc, e.doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, errors.Wrapf(err, "read image %d", *tex.Source)
		}
		out.Data = data
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			return nil, errors.Wrapf(err, "decode data uri of image %d", *tex.Source)
		}
		out.Data = data
	case img.URI != "":
		uri, err := url.PathUnescape(img.URI)
		if err != nil {
			uri = img.URI
		}
		out.Path = filepath.Join(e.baseDir, filepath.FromSlash(uri))
	default:
		return nil, errors.Errorf("image %d has neither uri nor buffer view", *tex.Source)
	}
	return out, nil
}
