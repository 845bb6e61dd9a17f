package renderer

import "errors"

var (
	// ErrUnknownShadingModel is logged when a drawable node has no program for its shading model.
	ErrUnknownShadingModel = errors.New("renderer: unknown shading model")

	// ErrNoLight is logged when a node's shading model needs a light and the context has none.
	ErrNoLight = errors.New("renderer: no light")

	// ErrDepthTextureUnsupported is returned by backends that cannot create a sampleable depth texture.
	ErrDepthTextureUnsupported = errors.New("renderer: depth textures unsupported")
)
