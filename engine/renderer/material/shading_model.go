package material

import "fmt"

// ShadingModel selects which uniform-assembly strategy and program a drawable uses.
type ShadingModel int

const (
	// ShadingNone marks a node with no usable shading model. Such nodes are skipped by the colour pass.
	ShadingNone ShadingModel = iota
	// ShadingSimple draws a flat colour with only an MVP matrix. Used for debug wireframes.
	ShadingSimple
	// ShadingUnlit samples the albedo map without lighting. Used for the sun.
	ShadingUnlit
	// ShadingBlinnPhong is spot-lit Blinn-Phong without shadows.
	ShadingBlinnPhong
	// ShadingShadowedBlinnPhong is spot-lit Blinn-Phong that samples the shadow map.
	ShadingShadowedBlinnPhong
	// ShadingPBR is metalness/roughness physically based shading with point lights.
	ShadingPBR
)

var shadingModelNames = map[ShadingModel]string{
	ShadingNone:               "none",
	ShadingSimple:             "simple",
	ShadingUnlit:              "no_light",
	ShadingBlinnPhong:         "bph",
	ShadingShadowedBlinnPhong: "sh_bph",
	ShadingPBR:                "pbr",
}

// ShadingModels lists every drawable shading model in program-compilation order.
var ShadingModels = []ShadingModel{
	ShadingSimple,
	ShadingUnlit,
	ShadingBlinnPhong,
	ShadingShadowedBlinnPhong,
	ShadingPBR,
}

func (s ShadingModel) String() string {
	if name, ok := shadingModelNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ShadingModel(%d)", int(s))
}

// SpotLit reports whether the model reads the spot light and its camera.
func (s ShadingModel) SpotLit() bool {
	return s == ShadingBlinnPhong || s == ShadingShadowedBlinnPhong
}

// ParseShadingModel maps a shading model name ("simple", "bph", "sh_bph", "pbr", "no_light", "none")
// back to its ShadingModel. "unlit" is accepted as an alias of "no_light".
//
// Parameters:
//   - name: the shading model name
//
// Returns:
//   - ShadingModel: the parsed model
//   - error: error if the name is not recognized
func ParseShadingModel(name string) (ShadingModel, error) {
	if name == "unlit" {
		return ShadingUnlit, nil
	}
	for m, n := range shadingModelNames {
		if n == name {
			return m, nil
		}
	}
	return ShadingNone, fmt.Errorf("unknown shading model %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s ShadingModel) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ShadingModel) UnmarshalText(text []byte) error {
	m, err := ParseShadingModel(string(text))
	if err != nil {
		return err
	}
	*s = m
	return nil
}
