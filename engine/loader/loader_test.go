package loader

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// triangleDocument builds a scene with a parent node translated up one unit and a child holding
// a textured triangle.
func triangleDocument(t *testing.T) *gltf.Document {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	img, err := modeler.WriteImage(doc, "albedo", "image/png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(img)})

	base := [4]float32{1, 0.5, 0.25, 1}
	metallic := float32(0.25)
	roughness := float32(0.75)
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: "painted",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor:  &base,
			MetallicFactor:   &metallic,
			RoughnessFactor:  &roughness,
			BaseColorTexture: &gltf.TextureInfo{Index: 0},
		},
	})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]uint32{gltf.POSITION: pos},
			Material:   gltf.Index(0),
		}},
	})
	doc.Nodes = append(doc.Nodes,
		&gltf.Node{Name: "parent", Translation: [3]float32{0, 1, 0}, Children: []uint32{1}},
		&gltf.Node{Name: "child", Mesh: gltf.Index(0)},
	)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

func newTestLoader() (Loader, *renderer.HeadlessBackend) {
	backend := renderer.NewHeadlessBackend(64, 64)
	textures := material.NewTextureLoader(backend)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return NewLoader(BackendTypeGLTF, WithTextureLoader(textures), WithLogger(logger)), backend
}

func TestLoadDocumentMirrorsHierarchy(t *testing.T) {
	l, _ := newTestLoader()
	root, err := l.LoadDocument("asset", triangleDocument(t), "")
	require.NoError(t, err)

	assert.Equal(t, "asset", root.Name())
	require.Len(t, root.Children(), 1)
	parent := root.Children()[0]
	assert.Equal(t, "parent", parent.Name())
	require.Len(t, parent.Children(), 1)
	child := parent.Children()[0]
	assert.Equal(t, "child", child.Name())

	// each primitive hangs under its node
	require.Len(t, child.Children(), 1)
	prim := child.Children()[0]
	assert.Equal(t, "tri_0", prim.Name())
	assert.Equal(t, material.ShadingPBR, prim.RenderingModel())
	assert.InDelta(t, 1, prim.WorldMatrix().Col(3).Y(), 1e-6)

	box := root.BoundingBox()
	require.NotNil(t, box)
	assert.True(t, box.Max.ApproxEqualThreshold(mgl32.Vec3{1, 2, 0}, 1e-6), box.Max)
}

func TestLoadDocumentGeneratesMissingAttributes(t *testing.T) {
	l, _ := newTestLoader()
	root, err := l.LoadDocument("asset", triangleDocument(t), "")
	require.NoError(t, err)

	var d model.DrawInfo
	var walk func(n scene.Node)
	walk = func(n scene.Node) {
		if n.DrawInfo() != nil {
			d = n.DrawInfo()
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
	require.NotNil(t, d)

	assert.Equal(t, []uint32{0, 1, 2}, d.Indices())
	assert.Len(t, d.Normals(), 9)
	assert.Len(t, d.UVs(), 6)
	assert.Len(t, d.Tangents(), 12)
	assert.InDelta(t, 1, d.Normals()[2], 1e-6)
}

func TestLoadDocumentMapsPBRMaterial(t *testing.T) {
	l, backend := newTestLoader()
	root, err := l.LoadDocument("asset", triangleDocument(t), "")
	require.NoError(t, err)

	prim := root.Children()[0].Children()[0].Children()[0]
	mat := prim.DrawInfo().Material()
	assert.Equal(t, "painted", mat.Name())
	assert.Equal(t, mgl32.Vec4{1, 0.5, 0.25, 1}, mat.PBR().BaseColor)
	assert.InDelta(t, 0.25, mat.PBR().Metalness, 1e-6)
	assert.InDelta(t, 0.75, mat.PBR().Roughness, 1e-6)

	f := mat.Texture(material.SlotAlbedo)
	require.NotNil(t, f)
	tex, err := f.Await(context.Background(), 2*time.Second)
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, uint32(2), w)
	assert.Equal(t, uint32(2), h)
	assert.Equal(t, 1, backend.Count("UploadTexture"))
	assert.Nil(t, mat.Texture(material.SlotNormal))
}

func TestLoadReaderGLB(t *testing.T) {
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(triangleDocument(t)))

	l, _ := newTestLoader()
	root, err := l.LoadReader("glb", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, l.Cached("glb"))

	// a cached document builds a fresh tree
	again, err := l.LoadReader("glb", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.NotSame(t, root, again)
	assert.Equal(t, len(root.Children()), len(again.Children()))
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	l, _ := newTestLoader()
	_, err := l.Load("model.obj")
	assert.ErrorContains(t, err, "unsupported model format")
}

func TestNodeMatrixTRS(t *testing.T) {
	n := &gltf.Node{
		Translation: [3]float32{1, 2, 3},
		Rotation:    [4]float32{0, 0.70710677, 0, 0.70710677},
		Scale:       [3]float32{2, 2, 2},
	}
	m := nodeMatrix(n)
	got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	// scaled to 2, turned a quarter about Y onto -Z, then translated
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{1, 2, 1}, 1e-5), got)

	explicit := mgl32.Translate3D(5, 0, 0)
	assert.Equal(t, explicit, nodeMatrix(&gltf.Node{Matrix: [16]float32(explicit)}))
}
