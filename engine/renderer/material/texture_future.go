package material

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
)

// TextureFuture is the pending result of one texture load. It resolves exactly once, either to a
// texture or to an error.
type TextureFuture struct {
	label string
	done  chan struct{}
	once  sync.Once
	tex   gpu.Texture
	err   error
}

// NewTextureFuture creates an unresolved future.
func NewTextureFuture(label string) *TextureFuture {
	return &TextureFuture{label: label, done: make(chan struct{})}
}

// ResolvedTexture wraps an already-uploaded texture in a resolved future.
func ResolvedTexture(tex gpu.Texture) *TextureFuture {
	f := NewTextureFuture(tex.Label())
	f.Resolve(tex, nil)
	return f
}

// Resolve settles the future. Only the first call has any effect.
//
// Parameters:
//   - tex: the uploaded texture, nil when err is set
//   - err: the load failure, if any
func (f *TextureFuture) Resolve(tex gpu.Texture, err error) {
	f.once.Do(func() {
		f.tex, f.err = tex, err
		close(f.done)
	})
}

// Label returns the label the future was created with.
func (f *TextureFuture) Label() string {
	return f.label
}

// Done returns a channel closed once the future resolves.
func (f *TextureFuture) Done() <-chan struct{} {
	return f.done
}

// Texture returns the resolved texture without blocking. ok is false while the load is pending
// or when it failed.
func (f *TextureFuture) Texture() (tex gpu.Texture, ok bool) {
	select {
	case <-f.done:
		return f.tex, f.err == nil && f.tex != nil
	default:
		return nil, false
	}
}

// Err returns the load error once resolved, nil while pending.
func (f *TextureFuture) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Await blocks until the future resolves, the timeout elapses or ctx is cancelled. A ctx
// deadline counts as a timeout too.
//
// Parameters:
//   - ctx: cancels the wait early
//   - timeout: upper bound on the wait, 0 or less means no bound beyond ctx
//
// Returns:
//   - gpu.Texture: the texture if resolved successfully
//   - error: the load error, ErrTextureTimeout, or ctx.Err()
func (f *TextureFuture) Await(ctx context.Context, timeout time.Duration) (gpu.Texture, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	select {
	case <-f.done:
		if f.err != nil {
			return nil, fmt.Errorf("texture %s: %w", f.label, f.err)
		}
		return f.tex, nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("texture %s: %w", f.label, ErrTextureTimeout)
		}
		return nil, ctx.Err()
	}
}
