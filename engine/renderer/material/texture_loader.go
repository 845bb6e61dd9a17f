package material

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
)

// Uploader turns staged pixel data into a GPU texture. Renderer backends implement it.
type Uploader interface {
	// UploadTexture creates a texture and copies data into it.
	//
	// Parameters:
	//   - label: debug label for the texture
	//   - data: RGBA pixels and dimensions
	//
	// Returns:
	//   - gpu.Texture: the uploaded texture
	//   - error: error if the texture could not be created
	UploadTexture(label string, data common.TextureStagingData) (gpu.Texture, error)
}

// textureLoader is the implementation of the TextureLoader interface.
type textureLoader struct {
	uploader Uploader
	pool     worker.DynamicWorkerPool
	workers  int
	maxDim   int
	logger   *slog.Logger
	nextID   atomic.Int64
}

// TextureLoader decodes and uploads textures on a worker pool, handing out one future per texture.
type TextureLoader interface {
	// LoadImported decodes an image from disk or embedded bytes and uploads it.
	//
	// Parameters:
	//   - label: debug label for the texture
	//   - src: the image source
	//
	// Returns:
	//   - *TextureFuture: resolves once the texture is on the GPU or the load failed
	LoadImported(label string, src *common.ImportedTexture) *TextureFuture

	// LoadStaging uploads already-decoded pixels. Generated textures (checkers, solid colours)
	// go through here.
	//
	// Parameters:
	//   - label: debug label for the texture
	//   - data: RGBA pixels and dimensions
	//
	// Returns:
	//   - *TextureFuture: resolves once the texture is on the GPU or the upload failed
	LoadStaging(label string, data common.TextureStagingData) *TextureFuture
}

var _ TextureLoader = &textureLoader{}

// NewTextureLoader creates a TextureLoader that uploads through the given Uploader.
//
// Parameters:
//   - uploader: the backend receiving decoded pixels
//   - options: variadic list of TextureLoaderBuilderOption functions
//
// Returns:
//   - TextureLoader: the loader
func NewTextureLoader(uploader Uploader, options ...TextureLoaderBuilderOption) TextureLoader {
	l := &textureLoader{
		uploader: uploader,
		workers:  4,
		logger:   slog.Default(),
	}
	for _, opt := range options {
		opt(l)
	}
	l.logger = l.logger.With("component", "material")
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *textureLoader) LoadImported(label string, src *common.ImportedTexture) *TextureFuture {
	f := NewTextureFuture(label)
	l.submit(f, func() (common.TextureStagingData, error) {
		return src.Decode(l.maxDim)
	})
	return f
}

func (l *textureLoader) LoadStaging(label string, data common.TextureStagingData) *TextureFuture {
	f := NewTextureFuture(label)
	l.submit(f, func() (common.TextureStagingData, error) {
		if int(data.Width*data.Height*4) != len(data.Pixels) {
			return data, fmt.Errorf("staging data for %s has %d bytes, want %d", label, len(data.Pixels), data.Width*data.Height*4)
		}
		return data, nil
	})
	return f
}

func (l *textureLoader) submit(f *TextureFuture, decode func() (common.TextureStagingData, error)) {
	id := int(l.nextID.Add(1))
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			data, err := decode()
			if err != nil {
				l.logger.Warn("texture decode failed", "texture", f.Label(), "error", err)
				f.Resolve(nil, err)
				return nil, err
			}
			tex, err := l.uploader.UploadTexture(f.Label(), data)
			if err != nil {
				l.logger.Warn("texture upload failed", "texture", f.Label(), "error", err)
				f.Resolve(nil, err)
				return nil, err
			}
			l.logger.Debug("texture resolved", "texture", f.Label(), "width", data.Width, "height", data.Height)
			f.Resolve(tex, nil)
			return tex, nil
		},
	})
}
