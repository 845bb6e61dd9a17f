package model

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/sunlit/common"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for mesh pipelines.
// Matches GPUVertex layout exactly (64 bytes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 64 bytes (no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
	Color    [4]float32 // offset 32: flat RGBA colour of the draw (16 bytes)
	Tangent  [4]float32 // offset 48: tangent vector (xyz) + handedness (w) for normal mapping (16 bytes)
}

// GPUVertexSize is the stride of GPUVertex in a vertex buffer.
const GPUVertexSize = 64

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// VertexBytes serializes vertices for upload. The slice is copied so callers may reuse the input.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: len(vertices) * 64 bytes ready for GPU upload
func VertexBytes(vertices []GPUVertex) []byte {
	raw := common.SliceToBytes(vertices)
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

// IndexBytes serializes a uint32 index buffer for upload.
//
// Parameters:
//   - indices: the indices to serialize
//
// Returns:
//   - []byte: len(indices) * 4 bytes ready for GPU upload
func IndexBytes(indices []uint32) []byte {
	raw := common.SliceToBytes(indices)
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}
