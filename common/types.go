// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SolidTexture returns a 1x1 staging texture of the given RGBA colour.
func SolidTexture(rgba [4]uint8) TextureStagingData {
	return TextureStagingData{Pixels: []byte{rgba[0], rgba[1], rgba[2], rgba[3]}, Width: 1, Height: 1}
}

// ImportedTexture represents texture data extracted from a model file or referenced from disk.
// For embedded textures (GLB), the Data field contains raw image bytes.
// For external textures, the Path field contains the file path.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "diffuse", "normal").
	Name string

	// Path is the file path for external textures (empty for embedded).
	Path string

	// Data contains raw image bytes for embedded textures.
	Data []byte

	// MimeType indicates the image format reported by the source (e.g., "image/png").
	MimeType string

	// Width is the texture width in pixels (populated after Decode).
	Width int

	// Height is the texture height in pixels (populated after Decode).
	Height int
}

// Decode decodes the texture to RGBA staging data.
// Uses either embedded Data bytes or loads from Path on disk. The payload is sniffed first and
// anything that is not an image is rejected. PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
//
// Parameters:
//   - maxDim: textures wider or taller than this are downscaled to fit, 0 disables the limit
//
// Returns:
//   - TextureStagingData: RGBA pixels (4 bytes per pixel, row-major order)
//   - error: error if reading or decoding fails
func (t *ImportedTexture) Decode(maxDim int) (TextureStagingData, error) {
	if t == nil {
		return TextureStagingData{}, fmt.Errorf("texture is nil")
	}

	data := t.Data
	if len(data) == 0 {
		if t.Path == "" {
			return TextureStagingData{}, fmt.Errorf("texture has neither data nor path")
		}
		raw, err := os.ReadFile(t.Path)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to read texture file %s: %w", t.Path, err)
		}
		data = raw
	}

	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return TextureStagingData{}, fmt.Errorf("texture %q is not an image (detected %q)", t.Name, kind.MIME.Value)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode texture %q: %w", t.Name, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxDim > 0 && (width > maxDim || height > maxDim) {
		scale := float64(maxDim) / float64(max(width, height))
		width = max(1, int(float64(width)*scale))
		height = max(1, int(float64(height)*scale))
		img = transform.Resize(img, width, height, transform.Linear)
		bounds = img.Bounds()
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	t.Width = width
	t.Height = height

	return TextureStagingData{Pixels: rgba.Pix, Width: uint32(width), Height: uint32(height)}, nil
}
