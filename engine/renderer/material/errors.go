package material

import "errors"

// ErrTextureTimeout is returned by TextureFuture.Await when the texture does not resolve in time.
var ErrTextureTimeout = errors.New("texture did not resolve before timeout")
