package loader

import (
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	doc *gltf.Document
}

// gltfMeshExtractor turns glTF primitives into DrawInfo payloads.
type gltfMeshExtractor interface {
	// ExtractPrimitive reads the attributes and indices of one primitive. Missing normals, UVs
	// and tangents are generated by model.NewDrawInfo.
	//
	// Parameters:
	//   - prim: the primitive
	//   - mat: the material the primitive is drawn with
	//
	// Returns:
	//   - model.DrawInfo: the payload
	//   - error: error if the primitive has no positions, an unsupported mode or a bad accessor
	ExtractPrimitive(prim *gltf.Primitive, mat material.Material) (model.DrawInfo, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a mesh extractor over a parsed document.
//
// Parameters:
//   - doc: the document
//
// Returns:
//   - gltfMeshExtractor: the extractor
func newGLTFMeshExtractor(doc *gltf.Document) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{doc: doc}
}

func (e *gltfMeshExtractorImpl) ExtractPrimitive(prim *gltf.Primitive, mat material.Material) (model.DrawInfo, error) {
	var primitive model.Primitive
	switch prim.Mode {
	case gltf.PrimitiveTriangles:
		primitive = model.PrimitiveTriangles
	case gltf.PrimitiveLines:
		primitive = model.PrimitiveLines
	default:
		return nil, errors.Errorf("unsupported primitive mode %d", prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("primitive has no POSITION attribute")
	}
	acc, err := e.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(e.doc, acc, nil)
	if err != nil {
		return nil, errors.Wrap(err, "read positions")
	}
	count := len(positions)

	options := []model.DrawInfoBuilderOption{
		model.WithPrimitive(primitive),
		model.WithMaterial(mat),
		model.WithColor(mat.PBR().BaseColor),
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acc, err := e.accessor(idx); err == nil {
			if normals, err := modeler.ReadNormal(e.doc, acc, nil); err == nil && len(normals) == count {
				options = append(options, model.WithNormals(flatten3(normals)))
			}
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acc, err := e.accessor(idx); err == nil {
			if uvs, err := modeler.ReadTextureCoord(e.doc, acc, nil); err == nil && len(uvs) == count {
				options = append(options, model.WithUVs(flatten2(uvs)))
			}
		}
	}
	if idx, ok := prim.Attributes[gltf.TANGENT]; ok {
		if acc, err := e.accessor(idx); err == nil {
			if tangents, err := modeler.ReadTangent(e.doc, acc, nil); err == nil && len(tangents) == count {
				options = append(options, model.WithTangents(flatten4(tangents)))
			}
		}
	}

	if prim.Indices != nil {
		acc, err := e.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		indices, err := modeler.ReadIndices(e.doc, acc, nil)
		if err != nil {
			return nil, errors.Wrap(err, "read indices")
		}
		for _, i := range indices {
			if int(i) >= count {
				return nil, errors.Errorf("index %d out of range for %d vertices", i, count)
			}
		}
		options = append(options, model.WithIndices(indices))
	}

	return model.NewDrawInfo(flatten3(positions), options...), nil
}

func (e *gltfMeshExtractorImpl) accessor(i uint32) (*gltf.Accessor, error) {
	if int(i) >= len(e.doc.Accessors) {
		return nil, errors.Errorf("accessor %d out of range", i)
	}
	return e.doc.Accessors[i], nil
}

func flatten2(v [][2]float32) []float32 {
	out := make([]float32, 0, len(v)*2)
	for _, c := range v {
		out = append(out, c[0], c[1])
	}
	return out
}

func flatten3(v [][3]float32) []float32 {
	out := make([]float32, 0, len(v)*3)
	for _, c := range v {
		out = append(out, c[0], c[1], c[2])
	}
	return out
}

func flatten4(v [][4]float32) []float32 {
	out := make([]float32, 0, len(v)*4)
	for _, c := range v {
		out = append(out, c[0], c[1], c[2], c[3])
	}
	return out
}
