package material

import "github.com/go-gl/mathgl/mgl32"

// MaterialBuilderOption is a functional option for configuring a Material via NewMaterial.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the Material.
//
// Parameters:
//   - name: the material identifier
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithPhong is an option builder that replaces the Blinn-Phong parameters.
//
// Parameters:
//   - p: the parameters
//
// Returns:
//   - MaterialBuilderOption: a function that applies the parameters to a material
func WithPhong(p PhongParams) MaterialBuilderOption {
	return func(m *material) {
		m.phong = p
	}
}

// WithSpecular is an option builder that sets a uniform specular reflectivity.
//
// Parameters:
//   - ks: the specular factor applied to all three channels
//
// Returns:
//   - MaterialBuilderOption: a function that applies the factor to a material
func WithSpecular(ks float32) MaterialBuilderOption {
	return func(m *material) {
		m.phong.Ks = mgl32.Vec3{ks, ks, ks}
	}
}

// WithPBR is an option builder that replaces the metalness/roughness parameters.
//
// Parameters:
//   - p: the parameters
//
// Returns:
//   - MaterialBuilderOption: a function that applies the parameters to a material
func WithPBR(p PBRParams) MaterialBuilderOption {
	return func(m *material) {
		m.pbr = p
	}
}

// WithTexture is an option builder that binds a texture future to a slot.
//
// Parameters:
//   - slot: the texture slot
//   - f: the texture future
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture to a material
func WithTexture(slot TextureSlot, f *TextureFuture) MaterialBuilderOption {
	return func(m *material) {
		m.SetTexture(slot, f)
	}
}

// WithDiffuse is an option builder that sets the diffuse reflectivity.
//
// Parameters:
//   - kd: the diffuse colour in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the colour to a material
func WithDiffuse(kd mgl32.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.phong.Kd = kd
	}
}
