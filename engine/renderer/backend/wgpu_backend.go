package backend

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/sunlit/engine/renderer"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

type wgpuBackend struct {
	mu     *sync.Mutex
	logger *slog.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat    wgpu.TextureFormat
	presentMode      renderer.PresentMode
	sampleCount      renderer.MSAASampleCount
	forceFallback    bool
	width, height    int
	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	// per-draw uniforms of the running pass
	maxDraws       int
	arena          *uniformArena
	arenaBuffer    *wgpu.Buffer
	arenaWarned    bool
	textureSamp    *wgpu.Sampler
	shadowSamp     *wgpu.Sampler
	fallbackShadow *wgpuDepthTarget

	// running pass state
	encoder      *wgpu.CommandEncoder
	pass         *wgpu.RenderPassEncoder
	depthOnly    bool
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// bound draw state
	program      *wgpuProgram
	geometry     *wgpuGeometry
	boundPipe    *wgpu.RenderPipeline
	offset       uint32
	staged       bool
	textureGroup *wgpu.BindGroup
	shadowTarget *wgpuDepthTarget

	programs []*wgpuProgram
}

var _ renderer.Backend = &wgpuBackend{}

// NewWGPUBackend creates the WebGPU backend on a window surface and configures the surface at
// width x height. Missing adapters or devices are fatal and panic.
//
// Parameters:
//   - surfaceDescriptor: the platform surface of the window
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - options: variadic list of WGPUBackendBuilderOption functions
//
// Returns:
//   - renderer.Backend: the backend
func NewWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...WGPUBackendBuilderOption) renderer.Backend {
	runtime.LockOSThread()
	b := &wgpuBackend{
		mu:          &sync.Mutex{},
		logger:      slog.Default(),
		presentMode: renderer.PresentModeVSync,
		sampleCount: renderer.MSAA4x,
		maxDraws:    DefaultMaxDrawsPerFrame,
	}
	for _, opt := range options {
		opt(b)
	}
	b.logger = b.logger.With("component", "renderer")

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallback,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to request adapter: %v", err))
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("failed to request device: %v", err))
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.initShared(); err != nil {
		panic(err.Error())
	}
	b.configureSurface(width, height)
	return b
}

// initShared creates the objects every program shares: the uniform arena, the samplers and
// the lit fallback shadow map.
func (b *wgpuBackend) initShared() error {
	b.arena = newUniformArena(b.maxDraws)
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Uniform Arena",
		Size:  b.arena.size(),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create uniform arena: %w", err)
	}
	b.arenaBuffer = buf

	b.textureSamp, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Material Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create material sampler: %w", err)
	}

	b.shadowSamp, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create comparison sampler: %w", err)
	}

	// 1x1 map cleared to the far plane, so shadowed programs read fully lit.
	fallback, err := b.createDepthTarget("Fallback Shadow Map", 1)
	if err != nil {
		return err
	}
	if err := b.clearDepthTarget(fallback); err != nil {
		return err
	}
	b.fallbackShadow = fallback
	return nil
}

func (b *wgpuBackend) configureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	width, height = max(width, 1), max(height, 1)
	b.width, b.height = width, height

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]

	presentMode := wgpu.PresentModeFifo
	if b.presentMode == renderer.PresentModeUncapped {
		presentMode = wgpu.PresentModeImmediate
	}
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()
	count := uint32(b.sampleCount)
	if count > 1 {
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to create MSAA texture: %v", err))
		}
		b.msaaTexture = tex
		b.msaaTextureView, err = tex.CreateView(nil)
		if err != nil {
			panic(fmt.Sprintf("failed to create MSAA view: %v", err))
		}
	}

	// Sample count must match the colour attachment.
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create depth texture: %v", err))
	}
	b.depthTexture = tex
	b.depthTextureView, err = tex.CreateView(nil)
	if err != nil {
		panic(fmt.Sprintf("failed to create depth view: %v", err))
	}
}

func (b *wgpuBackend) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuBackend) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b.configureSurface(width, height)
}

func (b *wgpuBackend) BeginDepthPass(target gpu.DepthTarget) error {
	dt, ok := target.(*wgpuDepthTarget)
	if !ok {
		return fmt.Errorf("depth target %s was not created by this backend", target.Label())
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create depth pass encoder: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.beginPass(encoder, true)
	b.pass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Depth Pass",
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            dt.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	return nil
}

func (b *wgpuBackend) EndDepthPass() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.endPass()
}

func (b *wgpuBackend) BeginColorPass(clear mgl32.Vec4) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}
	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("failed to create surface view: %w", err)
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("failed to create colour pass encoder: %w", err)
	}

	// With MSAA the pass draws into the multisampled texture and resolves into the
	// swapchain view.
	color := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: wgpu.Color{R: float64(clear[0]), G: float64(clear[1]), B: float64(clear[2]), A: float64(clear[3])},
	}
	if b.msaaTextureView != nil {
		color.View = b.msaaTextureView
		color.ResolveTarget = view
		color.StoreOp = wgpu.StoreOpDiscard
	}

	b.frameSurface = surfaceTexture
	b.frameView = view
	b.beginPass(encoder, false)
	b.pass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            "Colour Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	return nil
}

func (b *wgpuBackend) EndColorPass() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.endPass()
}

// beginPass resets the per-pass state. Callers hold mu.
func (b *wgpuBackend) beginPass(encoder *wgpu.CommandEncoder, depthOnly bool) {
	b.encoder = encoder
	b.depthOnly = depthOnly
	b.arena.reset()
	b.program = nil
	b.geometry = nil
	b.boundPipe = nil
	b.staged = false
	b.textureGroup = nil
	b.shadowTarget = nil
}

// endPass ends the running pass, uploads its staged uniforms and submits it. Callers hold mu.
func (b *wgpuBackend) endPass() {
	if b.pass == nil {
		return
	}
	b.pass.End()
	b.pass.Release()
	b.pass = nil

	if pending := b.arena.pending(); len(pending) > 0 {
		b.queue.WriteBuffer(b.arenaBuffer, 0, pending)
	}

	commandBuffer, err := b.encoder.Finish(nil)
	if err != nil {
		b.logger.Error("failed to finish pass", "error", err)
	} else {
		b.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}
	b.encoder.Release()
	b.encoder = nil
}

func (b *wgpuBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.frameView.Release()
	b.frameView = nil
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.programs {
		p.Release()
	}
	b.programs = nil
	b.releaseTargets()
	if b.fallbackShadow != nil {
		b.fallbackShadow.Release()
	}
	for _, s := range []*wgpu.Sampler{b.textureSamp, b.shadowSamp} {
		if s != nil {
			s.Release()
		}
	}
	if b.arenaBuffer != nil {
		b.arenaBuffer.Release()
	}
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}

// newProvider wraps a freshly created layout.
func (b *wgpuBackend) newProvider(label string, entries []wgpu.BindGroupLayoutEntry) (bind_group_provider.BindGroupProvider, error) {
	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   label,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s layout: %w", label, err)
	}
	return bind_group_provider.NewBindGroupProvider(b.device, layout, bind_group_provider.WithLabel(label)), nil
}
