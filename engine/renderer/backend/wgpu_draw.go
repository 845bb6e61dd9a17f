package backend

import (
	"github.com/Carmen-Shannon/sunlit/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

func (b *wgpuBackend) UseProgram(p gpu.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prog, ok := p.(*wgpuProgram)
	if !ok || !prog.valid {
		b.program = nil
		return
	}
	b.program = prog
	b.textureGroup = nil
}

func (b *wgpuBackend) BindGeometry(g gpu.Geometry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	geo, ok := g.(*wgpuGeometry)
	if !ok || b.pass == nil {
		b.geometry = nil
		return
	}
	b.geometry = geo
	b.pass.SetVertexBuffer(0, geo.vertexBuffer, 0, wgpu.WholeSize)
	if geo.indexBuffer != nil {
		b.pass.SetIndexBuffer(geo.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	}
}

func (b *wgpuBackend) SetUniforms(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	offset, ok := b.arena.stage(data)
	if !ok {
		b.staged = false
		if !b.arenaWarned {
			b.arenaWarned = true
			b.logger.Warn("uniform arena full, dropping draws", "max_draws", b.maxDraws, "block", len(data))
		}
		return
	}
	b.offset = offset
	b.staged = true
}

func (b *wgpuBackend) BindTextures(textures []gpu.Texture) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.program == nil || b.program.textures == nil {
		return
	}
	views := make([]*wgpu.TextureView, 0, len(textures))
	resources := make([]any, 0, len(textures))
	for _, t := range textures {
		tex, ok := t.(*wgpuTexture)
		if !ok || tex.view == nil {
			b.textureGroup = nil
			return
		}
		views = append(views, tex.view)
		resources = append(resources, tex.view)
	}

	group, err := b.program.textures.BindGroup(bind_group_provider.Key(resources...), func() []wgpu.BindGroupEntry {
		entries := make([]wgpu.BindGroupEntry, 0, len(views)+1)
		for i, v := range views {
			entries = append(entries, wgpu.BindGroupEntry{Binding: uint32(i), TextureView: v})
		}
		return append(entries, wgpu.BindGroupEntry{Binding: uint32(len(views)), Sampler: b.textureSamp})
	})
	if err != nil {
		b.logger.Warn("texture bind group failed", "program", b.program.Label(), "error", err)
		b.textureGroup = nil
		return
	}
	b.textureGroup = group
}

func (b *wgpuBackend) BindShadowMap(target gpu.DepthTarget) {
	b.mu.Lock()
	defer b.mu.Unlock()

	dt, ok := target.(*wgpuDepthTarget)
	if !ok || dt == nil || dt.view == nil {
		dt = b.fallbackShadow
	}
	b.shadowTarget = dt
}

func (b *wgpuBackend) Draw() {
	b.mu.Lock()
	defer b.mu.Unlock()

	prog, geo := b.program, b.geometry
	if b.pass == nil || prog == nil || geo == nil || !b.staged {
		return
	}
	if !b.depthOnly && prog.desc.DepthOnly() {
		return
	}
	if prog.textures != nil && b.textureGroup == nil {
		return
	}

	rp, err := b.renderPipeline(prog, topologyOf(geo))
	if err != nil {
		b.logger.Warn("render pipeline failed", "program", prog.Label(), "topology", topologyOf(geo).String(), "error", err)
		return
	}
	if rp != b.boundPipe {
		b.pass.SetPipeline(rp)
		b.boundPipe = rp
	}

	b.pass.SetBindGroup(uniformGroup, prog.uniformGroup, []uint32{b.offset})
	if prog.textures != nil {
		b.pass.SetBindGroup(textureGroup, b.textureGroup, nil)
	}
	if prog.shadow != nil {
		shadow := b.shadowTarget
		if shadow == nil {
			shadow = b.fallbackShadow
		}
		group, err := prog.shadow.BindGroup(bind_group_provider.Key(shadow.view), func() []wgpu.BindGroupEntry {
			return []wgpu.BindGroupEntry{
				{Binding: 0, TextureView: shadow.view},
				{Binding: 1, Sampler: b.shadowSamp},
			}
		})
		if err != nil {
			b.logger.Warn("shadow bind group failed", "program", prog.Label(), "error", err)
			return
		}
		b.pass.SetBindGroup(shadowGroup, group, nil)
	}

	if geo.indexBuffer != nil {
		b.pass.DrawIndexed(uint32(geo.count), 1, 0, 0, 0)
	} else {
		b.pass.Draw(uint32(geo.count), 1, 0, 0)
	}
	b.staged = false
}
