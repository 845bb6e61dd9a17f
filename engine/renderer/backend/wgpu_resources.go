package backend

import (
	"fmt"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuGeometry struct {
	label        string
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	count        int
	lines        bool
}

func (g *wgpuGeometry) Label() string { return g.label }
func (g *wgpuGeometry) Count() int    { return g.count }
func (g *wgpuGeometry) Indexed() bool { return g.indexBuffer != nil }
func (g *wgpuGeometry) Lines() bool   { return g.lines }

func (g *wgpuGeometry) Release() {
	if g.vertexBuffer != nil {
		g.vertexBuffer.Release()
		g.vertexBuffer = nil
	}
	if g.indexBuffer != nil {
		g.indexBuffer.Release()
		g.indexBuffer = nil
	}
}

type wgpuTexture struct {
	label         string
	texture       *wgpu.Texture
	view          *wgpu.TextureView
	width, height uint32
}

func (t *wgpuTexture) Label() string                { return t.label }
func (t *wgpuTexture) Size() (width, height uint32) { return t.width, t.height }

func (t *wgpuTexture) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

type wgpuDepthTarget struct {
	label   string
	texture *wgpu.Texture
	view    *wgpu.TextureView
	size    int
}

func (d *wgpuDepthTarget) Label() string { return d.label }
func (d *wgpuDepthTarget) Size() int     { return d.size }

func (d *wgpuDepthTarget) Release() {
	if d.view != nil {
		d.view.Release()
		d.view = nil
	}
	if d.texture != nil {
		d.texture.Release()
		d.texture = nil
	}
}

var (
	_ gpu.Geometry    = &wgpuGeometry{}
	_ gpu.Texture     = &wgpuTexture{}
	_ gpu.DepthTarget = &wgpuDepthTarget{}
)

func (b *wgpuBackend) UploadGeometry(label string, d model.DrawInfo) (gpu.Geometry, error) {
	vertexData := model.VertexBytes(d.Interleave())
	if len(vertexData) == 0 {
		return nil, fmt.Errorf("geometry %s has no vertices", label)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	g := &wgpuGeometry{label: label, count: d.VertexCount(), lines: d.Primitive() == model.PrimitiveLines}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer for %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, vertexData)
	g.vertexBuffer = buf

	if d.Indexed() {
		// Buffer sizes must be multiples of 4, which uint32 indices always are.
		indexData := model.IndexBytes(d.Indices())
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: label + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			g.Release()
			return nil, fmt.Errorf("failed to create index buffer for %s: %w", label, err)
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		g.indexBuffer = buf
		g.count = len(d.Indices())
	}
	return g, nil
}

func (b *wgpuBackend) UploadTexture(label string, data common.TextureStagingData) (gpu.Texture, error) {
	if data.Width == 0 || data.Height == 0 || int(data.Width)*int(data.Height)*4 != len(data.Pixels) {
		return nil, fmt.Errorf("texture %s: %d bytes for %dx%d", label, len(data.Pixels), data.Width, data.Height)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	size := wgpu.Extent3D{Width: data.Width, Height: data.Height, DepthOrArrayLayers: 1}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create texture %s: %w", label, err)
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("failed to create view for texture %s: %w", label, err)
	}
	return &wgpuTexture{label: label, texture: tex, view: view, width: data.Width, height: data.Height}, nil
}

func (b *wgpuBackend) CreateDepthTarget(size int) (gpu.DepthTarget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.createDepthTarget("Shadow Map", size)
}

// createDepthTarget creates a sampleable Depth32Float target. Callers hold mu or run
// before the backend is shared.
func (b *wgpuBackend) createDepthTarget(label string, size int) (*wgpuDepthTarget, error) {
	if size <= 0 {
		return nil, fmt.Errorf("shadow map size %d: %w", size, renderer.ErrDepthTextureUnsupported)
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: uint32(size), Height: uint32(size), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", label, err, renderer.ErrDepthTextureUnsupported)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("%s view: %v: %w", label, err, renderer.ErrDepthTextureUnsupported)
	}
	return &wgpuDepthTarget{label: label, texture: tex, view: view, size: size}, nil
}

// clearDepthTarget fills a depth target with the far plane value.
func (b *wgpuBackend) clearDepthTarget(t *wgpuDepthTarget) error {
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", t.label, err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            t.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", t.label, err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}
