package material

// TextureSlot names one typed texture input of a material.
type TextureSlot int

const (
	SlotAlbedo TextureSlot = iota
	SlotAmbient
	SlotSpecular
	SlotShininess
	SlotNormal
	SlotMetalness
	SlotRoughness
	SlotAO
	SlotEmissive
	SlotDisplacement
	SlotAlpha
	slotCount
)

var slotNames = [slotCount]string{
	"albedo", "ambient", "specular", "shininess", "normal",
	"metalness", "roughness", "ao", "emissive", "displacement", "alpha",
}

func (s TextureSlot) String() string {
	if s < 0 || s >= slotCount {
		return "unknown"
	}
	return slotNames[s]
}

// PlaceholderKind is the 1-pixel colour bound in place of a missing or pending texture.
type PlaceholderKind int

const (
	PlaceholderWhite PlaceholderKind = iota
	PlaceholderGray
	PlaceholderBlack
	PlaceholderNormal
	placeholderCount
)

var placeholderPixels = [placeholderCount][4]uint8{
	PlaceholderWhite:  {255, 255, 255, 255},
	PlaceholderGray:   {127, 127, 127, 255},
	PlaceholderBlack:  {0, 0, 0, 255},
	PlaceholderNormal: {127, 127, 255, 255},
}

// Placeholder returns the neutral value sampled for this slot until a real texture is bound.
func (s TextureSlot) Placeholder() PlaceholderKind {
	switch s {
	case SlotAmbient, SlotShininess, SlotMetalness, SlotRoughness, SlotAO, SlotDisplacement:
		return PlaceholderGray
	case SlotNormal:
		return PlaceholderNormal
	case SlotEmissive:
		return PlaceholderBlack
	default:
		return PlaceholderWhite
	}
}

var phongSlots = []TextureSlot{
	SlotAmbient, SlotAlbedo, SlotSpecular, SlotAlpha,
	SlotNormal, SlotEmissive, SlotShininess, SlotDisplacement,
}

var pbrSlots = []TextureSlot{
	SlotAlbedo, SlotMetalness, SlotRoughness, SlotNormal,
	SlotAO, SlotEmissive, SlotAlpha, SlotDisplacement,
}

var unlitSlots = []TextureSlot{SlotAlbedo}

// SlotsFor returns the ordered texture slots a shading model binds. The order matches the
// binding indices of the model's texture group in WGSL. Simple and None bind no textures.
//
// Parameters:
//   - model: the shading model
//
// Returns:
//   - []TextureSlot: the slots in binding order, or nil
func SlotsFor(model ShadingModel) []TextureSlot {
	switch model {
	case ShadingBlinnPhong, ShadingShadowedBlinnPhong:
		return phongSlots
	case ShadingPBR:
		return pbrSlots
	case ShadingUnlit:
		return unlitSlots
	default:
		return nil
	}
}
