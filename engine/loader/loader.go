// Package loader imports glTF and GLB assets into scene node trees.
package loader

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// document is a parsed asset kept for repeated loads.
type document struct {
	doc     *gltf.Document
	baseDir string
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	textures material.TextureLoader
	model    material.ShadingModel
	cache    map[string]document
	backend  loaderBackend
}

// Loader defines the public-facing interface for importing assets as scene nodes.
//
// Parsed documents are cached by path or name. Every load builds a fresh node tree, so the same
// asset can be placed in a graph more than once.
type Loader interface {
	// Load imports a .gltf or .glb file. A leading ~ is expanded to the home directory.
	//
	// Parameters:
	//   - path: the file path
	//
	// Returns:
	//   - scene.Node: the asset root, named after the file
	//   - error: error if the file is unsupported, unreadable or malformed
	Load(path string) (scene.Node, error)

	// LoadReader imports a self-contained asset from a stream and caches it under name.
	//
	// Parameters:
	//   - name: the cache key and root node name
	//   - r: the reader providing GLB or embedded glTF data
	//
	// Returns:
	//   - scene.Node: the asset root
	//   - error: error if decoding or conversion fails
	LoadReader(name string, r io.Reader) (scene.Node, error)

	// LoadDocument converts an already parsed document.
	//
	// Parameters:
	//   - name: the root node name and texture label prefix
	//   - doc: the document
	//   - baseDir: directory external image URIs are resolved against
	//
	// Returns:
	//   - scene.Node: the asset root
	//   - error: error if a node or primitive is malformed
	LoadDocument(name string, doc *gltf.Document, baseDir string) (scene.Node, error)

	// Cached reports whether a document is cached under name.
	//
	// Parameters:
	//   - name: the path or name used to load it
	//
	// Returns:
	//   - bool: true if cached
	Cached(name string) bool
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the given backend type and options applied.
//
// Parameters:
//   - backendType: the loader backend to use
//   - options: a variadic list of LoaderBuilderOption functions
//
// Returns:
//   - Loader: the loader
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		logger: slog.Default(),
		model:  material.ShadingPBR,
		cache:  make(map[string]document),
	}
	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}
	for _, opt := range options {
		opt(l)
	}
	l.logger = l.logger.With("component", "loader")
	return l
}

func (l *loader) Load(path string) (scene.Node, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expand %s", path)
	}
	name := strings.TrimSuffix(filepath.Base(expanded), filepath.Ext(expanded))

	l.mu.RLock()
	cached, ok := l.cache[expanded]
	l.mu.RUnlock()
	if ok {
		return l.LoadDocument(name, cached.doc, cached.baseDir)
	}

	backend, err := l.resolveBackend(expanded)
	if err != nil {
		return nil, err
	}
	doc, err := backend.Open(expanded)
	if err != nil {
		return nil, err
	}
	baseDir := filepath.Dir(expanded)

	l.mu.Lock()
	l.cache[expanded] = document{doc: doc, baseDir: baseDir}
	l.mu.Unlock()

	return l.LoadDocument(name, doc, baseDir)
}

func (l *loader) LoadReader(name string, r io.Reader) (scene.Node, error) {
	l.mu.RLock()
	cached, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return l.LoadDocument(name, cached.doc, cached.baseDir)
	}

	doc, err := l.backend.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "load %q", name)
	}

	l.mu.Lock()
	l.cache[name] = document{doc: doc}
	l.mu.Unlock()

	return l.LoadDocument(name, doc, "")
}

func (l *loader) LoadDocument(name string, doc *gltf.Document, baseDir string) (scene.Node, error) {
	b := &treeBuilder{
		doc:       doc,
		model:     l.model,
		meshes:    newGLTFMeshExtractor(doc),
		materials: newGLTFMaterialExtractor(doc, name, baseDir, l.textures, l.logger.Warn),
		visiting:  make(map[uint32]bool),
		logger:    l.logger,
	}

	root := scene.NewNode(name)
	for _, i := range sceneRoots(doc) {
		child, err := b.node(i)
		if err != nil {
			return nil, errors.Wrapf(err, "load %q", name)
		}
		if err := root.AddChild(child); err != nil {
			return nil, errors.Wrapf(err, "load %q", name)
		}
	}
	root.UpdateWorldMatrix(nil)
	root.ComputeBoundingBox()
	return root, nil
}

func (l *loader) Cached(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.cache[name]; ok {
		return true
	}
	expanded, err := homedir.Expand(name)
	if err != nil {
		return false
	}
	_, ok := l.cache[expanded]
	return ok
}

// resolveBackend selects a loader backend by file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, errors.Errorf("unsupported model format: %q", ext)
	}
}

// sceneRoots returns the root node indices of the default scene, or of the first scene, or every
// node nobody references as a child when the document has no scenes.
func sceneRoots(doc *gltf.Document) []uint32 {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			s = int(*doc.Scene)
		}
		return doc.Scenes[s].Nodes
	}
	isChild := make(map[uint32]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !isChild[uint32(i)] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

// treeBuilder mirrors one document's node hierarchy into scene nodes.
type treeBuilder struct {
	doc       *gltf.Document
	model     material.ShadingModel
	meshes    gltfMeshExtractor
	materials gltfMaterialExtractor
	visiting  map[uint32]bool
	logger    *slog.Logger
}

func (b *treeBuilder) node(i uint32) (scene.Node, error) {
	if int(i) >= len(b.doc.Nodes) {
		return nil, errors.Errorf("node %d out of range", i)
	}
	if b.visiting[i] {
		return nil, errors.Errorf("node %d is its own ancestor", i)
	}
	b.visiting[i] = true
	defer delete(b.visiting, i)

	src := b.doc.Nodes[i]
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", i)
	}
	n := scene.NewNode(name, scene.WithLocalMatrix(nodeMatrix(src)))

	if src.Mesh != nil {
		if err := b.attachMesh(n, *src.Mesh); err != nil {
			return nil, errors.Wrapf(err, "node %q", name)
		}
	}
	for _, c := range src.Children {
		child, err := b.node(c)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			return nil, errors.Wrapf(err, "node %q", name)
		}
	}
	return n, nil
}

// attachMesh adds one child per primitive. Unsupported primitives are skipped with a warning.
func (b *treeBuilder) attachMesh(n scene.Node, meshIndex uint32) error {
	if int(meshIndex) >= len(b.doc.Meshes) {
		return errors.Errorf("mesh %d out of range", meshIndex)
	}
	mesh := b.doc.Meshes[meshIndex]
	meshName := mesh.Name
	if meshName == "" {
		meshName = fmt.Sprintf("mesh_%d", meshIndex)
	}
	for p, prim := range mesh.Primitives {
		d, err := b.meshes.ExtractPrimitive(prim, b.materials.ExtractMaterial(prim.Material))
		if err != nil {
			b.logger.Warn("primitive skipped", "mesh", meshName, "primitive", p, "error", err)
			continue
		}
		child := scene.NewNode(fmt.Sprintf("%s_%d", meshName, p),
			scene.WithDrawInfo(d),
			scene.WithRenderingModel(b.model),
		)
		if err := n.AddChild(child); err != nil {
			return err
		}
	}
	return nil
}

// nodeMatrix returns the node's matrix, composing translation, rotation and scale when no
// explicit matrix is given.
func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	m := mgl32.Mat4(n.MatrixOrDefault())
	if m != mgl32.Ident4() {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	rot := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}.Normalize().Mat4()
	return mgl32.Translate3D(t[0], t[1], t[2]).Mul4(rot).Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}
