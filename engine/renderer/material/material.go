package material

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// PhongParams are the Blinn-Phong reflectivity parameters in Wavefront MTL naming.
type PhongParams struct {
	// Ka is the ambient reflectivity.
	Ka mgl32.Vec3
	// Kd is the diffuse reflectivity.
	Kd mgl32.Vec3
	// Ks is the specular reflectivity.
	Ks mgl32.Vec3
	// Ke is the emissive colour.
	Ke mgl32.Vec3
	// Ns is the specular exponent.
	Ns float32
	// Ni is the index of refraction.
	Ni float32
	// D is the dissolve (opacity) factor.
	D float32
	// Illum is the MTL illumination model number.
	Illum int
}

// PBRParams are the metalness/roughness factors multiplied with the PBR texture slots.
type PBRParams struct {
	BaseColor mgl32.Vec4
	Metalness float32
	Roughness float32
}

// material is the implementation of the Material interface.
type material struct {
	name     string
	phong    PhongParams
	pbr      PBRParams
	textures [slotCount]*TextureFuture
	awaited  bool
}

// Material defines the interface for a render material: typed surface parameters for each
// shading model plus one optional texture future per TextureSlot.
//
// Surface parameters are set at construction and read-only afterwards. Texture slots may be
// replaced while textures resolve.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Phong retrieves the Blinn-Phong parameters.
	//
	// Returns:
	//   - PhongParams: the parameters
	Phong() PhongParams

	// PBR retrieves the metalness/roughness parameters.
	//
	// Returns:
	//   - PBRParams: the parameters
	PBR() PBRParams

	// Texture retrieves the future bound to a slot, or nil if the slot uses its placeholder.
	//
	// Parameters:
	//   - slot: the texture slot
	//
	// Returns:
	//   - *TextureFuture: the future or nil
	Texture(slot TextureSlot) *TextureFuture

	// SetTexture binds a texture future to a slot. A nil future reverts to the placeholder.
	//
	// Parameters:
	//   - slot: the texture slot
	//   - f: the texture future
	SetTexture(slot TextureSlot, f *TextureFuture)

	// Awaited reports whether AwaitTextures has already run for this material.
	//
	// Returns:
	//   - bool: true after the first await
	Awaited() bool

	// AwaitTextures blocks on every pending future in slots and marks the material as awaited.
	// One timeout bounds the whole wait, not each slot. Failed or timed-out slots keep sampling
	// their placeholder.
	//
	// Parameters:
	//   - ctx: cancels the wait early
	//   - slots: the slots to wait on
	//   - timeout: upper bound on the whole wait, 0 or less means no bound beyond ctx
	//
	// Returns:
	//   - error: every per-slot failure joined, or nil
	AwaitTextures(ctx context.Context, slots []TextureSlot, timeout time.Duration) error

	// Bind resolves the texture for each slot in order, substituting placeholders for empty,
	// pending or failed slots. It never blocks.
	//
	// Parameters:
	//   - slots: the slots in binding order
	//   - placeholders: the fallback textures
	//
	// Returns:
	//   - []gpu.Texture: one texture per slot
	Bind(slots []TextureSlot, placeholders *Placeholders) []gpu.Texture
}

var _ Material = &material{}

// NewMaterial creates a new Material configured with the provided options. Without options it
// carries the same values as DefaultMaterial.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		phong: defaultPhong,
		pbr:   defaultPBR,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Phong() PhongParams {
	return m.phong
}

func (m *material) PBR() PBRParams {
	return m.pbr
}

func (m *material) Texture(slot TextureSlot) *TextureFuture {
	if slot < 0 || slot >= slotCount {
		return nil
	}
	return m.textures[slot]
}

func (m *material) SetTexture(slot TextureSlot, f *TextureFuture) {
	if slot < 0 || slot >= slotCount {
		return
	}
	m.textures[slot] = f
}

func (m *material) Awaited() bool {
	return m.awaited
}

func (m *material) AwaitTextures(ctx context.Context, slots []TextureSlot, timeout time.Duration) error {
	m.awaited = true
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	var errs []error
	for _, slot := range slots {
		f := m.Texture(slot)
		if f == nil {
			continue
		}
		if _, err := f.Await(ctx, 0); err != nil {
			errs = append(errs, fmt.Errorf("%s slot: %w", slot, err))
		}
	}
	return errors.Join(errs...)
}

func (m *material) Bind(slots []TextureSlot, placeholders *Placeholders) []gpu.Texture {
	out := make([]gpu.Texture, len(slots))
	for i, slot := range slots {
		if f := m.Texture(slot); f != nil {
			if tex, ok := f.Texture(); ok {
				out[i] = tex
				continue
			}
		}
		out[i] = placeholders.Get(slot.Placeholder())
	}
	return out
}
