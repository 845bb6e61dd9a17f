package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/pipeline"
	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded backend invocation.
type Call struct {
	Op    string
	Label string
	Size  int
}

// HeadlessBackend is a Backend that records calls instead of talking to a GPU. Headless runs
// and tests use it.
type HeadlessBackend struct {
	mu          sync.Mutex
	calls       []Call
	failing     map[string]bool
	noDepth     bool
	width       int
	height      int
	presented   int
	lastProgram gpu.Program
}

var _ Backend = &HeadlessBackend{}

// NewHeadlessBackend creates a recording backend with a width x height default target.
//
// Parameters:
//   - width: default target width
//   - height: default target height
//
// Returns:
//   - *HeadlessBackend: the backend
func NewHeadlessBackend(width, height int) *HeadlessBackend {
	return &HeadlessBackend{failing: map[string]bool{}, width: width, height: height}
}

// FailProgram makes CompileProgram fail for the program with the given key.
func (b *HeadlessBackend) FailProgram(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing[key] = true
}

// DisableDepthTextures makes CreateDepthTarget fail with ErrDepthTextureUnsupported.
func (b *HeadlessBackend) DisableDepthTextures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.noDepth = true
}

// Calls returns a copy of the recorded calls.
func (b *HeadlessBackend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Count returns how many calls of op were recorded.
func (b *HeadlessBackend) Count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls.
func (b *HeadlessBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = b.calls[:0]
}

// Size returns the current default target size.
func (b *HeadlessBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// Presented returns how many frames were presented.
func (b *HeadlessBackend) Presented() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presented
}

func (b *HeadlessBackend) record(op, label string, size int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, Call{Op: op, Label: label, Size: size})
}

func (b *HeadlessBackend) CompileProgram(p pipeline.Pipeline) (gpu.Program, error) {
	b.record("CompileProgram", p.Key(), p.UniformSize())
	b.mu.Lock()
	fail := b.failing[p.Key()]
	b.mu.Unlock()
	if fail {
		return &headlessProgram{label: p.Key()}, fmt.Errorf("compile %s: forced failure", p.Key())
	}
	return &headlessProgram{label: p.Key(), valid: true, uniformSize: p.UniformSize(), slots: len(p.TextureSlots())}, nil
}

func (b *HeadlessBackend) UploadGeometry(label string, d model.DrawInfo) (gpu.Geometry, error) {
	count := d.VertexCount()
	if d.Indexed() {
		count = len(d.Indices())
	}
	b.record("UploadGeometry", label, count)
	return &headlessGeometry{
		label:   label,
		count:   count,
		indexed: d.Indexed(),
		lines:   d.Primitive() == model.PrimitiveLines,
	}, nil
}

func (b *HeadlessBackend) UploadTexture(label string, data common.TextureStagingData) (gpu.Texture, error) {
	if int(data.Width)*int(data.Height)*4 != len(data.Pixels) {
		return nil, fmt.Errorf("texture %s: %d bytes for %dx%d", label, len(data.Pixels), data.Width, data.Height)
	}
	b.record("UploadTexture", label, len(data.Pixels))
	return &headlessTexture{label: label, width: data.Width, height: data.Height}, nil
}

func (b *HeadlessBackend) CreateDepthTarget(size int) (gpu.DepthTarget, error) {
	b.mu.Lock()
	noDepth := b.noDepth
	b.mu.Unlock()
	if noDepth {
		return nil, fmt.Errorf("create %dx%d shadow map: %w", size, size, ErrDepthTextureUnsupported)
	}
	b.record("CreateDepthTarget", "shadow", size)
	return &headlessDepthTarget{label: "shadow", size: size}, nil
}

func (b *HeadlessBackend) BeginDepthPass(target gpu.DepthTarget) error {
	b.record("BeginDepthPass", target.Label(), target.Size())
	return nil
}

func (b *HeadlessBackend) EndDepthPass() {
	b.record("EndDepthPass", "", 0)
}

func (b *HeadlessBackend) BeginColorPass(_ mgl32.Vec4) error {
	w, h := b.Size()
	b.record("BeginColorPass", "", w*h)
	return nil
}

func (b *HeadlessBackend) EndColorPass() {
	b.record("EndColorPass", "", 0)
}

func (b *HeadlessBackend) UseProgram(p gpu.Program) {
	b.mu.Lock()
	b.lastProgram = p
	b.mu.Unlock()
	b.record("UseProgram", p.Label(), 0)
}

func (b *HeadlessBackend) BindGeometry(g gpu.Geometry) {
	b.record("BindGeometry", g.Label(), g.Count())
}

func (b *HeadlessBackend) SetUniforms(data []byte) {
	b.mu.Lock()
	p, _ := b.lastProgram.(*headlessProgram)
	b.mu.Unlock()
	if p != nil && p.valid && len(data) != p.uniformSize {
		b.record("UniformSizeMismatch", p.label, len(data))
	}
	b.record("SetUniforms", "", len(data))
}

func (b *HeadlessBackend) BindTextures(textures []gpu.Texture) {
	label := ""
	if len(textures) > 0 {
		label = textures[0].Label()
	}
	b.record("BindTextures", label, len(textures))
}

func (b *HeadlessBackend) BindShadowMap(target gpu.DepthTarget) {
	if target == nil {
		b.record("BindShadowMap", "", 0)
		return
	}
	b.record("BindShadowMap", target.Label(), target.Size())
}

func (b *HeadlessBackend) Draw() {
	b.record("Draw", "", 0)
}

func (b *HeadlessBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.mu.Unlock()
	b.record("Resize", "", width*height)
}

func (b *HeadlessBackend) Present() {
	b.mu.Lock()
	b.presented++
	b.mu.Unlock()
	b.record("Present", "", 0)
}

func (b *HeadlessBackend) Release() {
	b.record("Release", "", 0)
}

type headlessProgram struct {
	label       string
	valid       bool
	uniformSize int
	slots       int
}

func (p *headlessProgram) Label() string { return p.label }
func (p *headlessProgram) Release()      {}
func (p *headlessProgram) Valid() bool   { return p.valid }

type headlessGeometry struct {
	label   string
	count   int
	indexed bool
	lines   bool
}

func (g *headlessGeometry) Label() string { return g.label }
func (g *headlessGeometry) Release()      {}
func (g *headlessGeometry) Count() int    { return g.count }
func (g *headlessGeometry) Indexed() bool { return g.indexed }
func (g *headlessGeometry) Lines() bool   { return g.lines }

type headlessTexture struct {
	label         string
	width, height uint32
}

func (t *headlessTexture) Label() string                { return t.label }
func (t *headlessTexture) Release()                     {}
func (t *headlessTexture) Size() (width, height uint32) { return t.width, t.height }

type headlessDepthTarget struct {
	label string
	size  int
}

func (d *headlessDepthTarget) Label() string { return d.label }
func (d *headlessDepthTarget) Release()      {}
func (d *headlessDepthTarget) Size() int     { return d.size }
