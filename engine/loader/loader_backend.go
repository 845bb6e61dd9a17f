package loader

import (
	"io"

	"github.com/qmuntal/gltf"
)

// loaderBackend defines the format-specific half of the Loader: turning a file or stream into a
// parsed document whose buffers are resolved.
type loaderBackend interface {
	// Open parses the file at path, resolving external buffers relative to it.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *gltf.Document: the parsed document
	//   - error: error if the file could not be read or parsed
	Open(path string) (*gltf.Document, error)

	// Decode parses a self-contained document (GLB or glTF with embedded buffers) from a stream.
	//
	// Parameters:
	//   - r: the reader providing document data
	//
	// Returns:
	//   - *gltf.Document: the parsed document
	//   - error: error if decoding fails
	Decode(r io.Reader) (*gltf.Document, error)
}
