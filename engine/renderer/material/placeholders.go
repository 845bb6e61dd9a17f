package material

import (
	"fmt"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
)

// Placeholders holds the 1-pixel textures bound for empty or still-pending slots.
type Placeholders struct {
	textures [placeholderCount]gpu.Texture
}

// NewPlaceholders uploads one texture per placeholder kind.
//
// Parameters:
//   - up: the backend to upload through
//
// Returns:
//   - *Placeholders: the uploaded set
//   - error: error if any upload fails
func NewPlaceholders(up Uploader) (*Placeholders, error) {
	p := &Placeholders{}
	for kind := PlaceholderKind(0); kind < placeholderCount; kind++ {
		tex, err := up.UploadTexture(fmt.Sprintf("placeholder_%d", kind), common.SolidTexture(placeholderPixels[kind]))
		if err != nil {
			p.Release()
			return nil, fmt.Errorf("failed to upload placeholder texture: %w", err)
		}
		p.textures[kind] = tex
	}
	return p, nil
}

// Get returns the placeholder texture of the given kind.
func (p *Placeholders) Get(kind PlaceholderKind) gpu.Texture {
	return p.textures[kind]
}

// Release frees every placeholder texture.
func (p *Placeholders) Release() {
	for i, tex := range p.textures {
		if tex != nil {
			tex.Release()
			p.textures[i] = nil
		}
	}
}
