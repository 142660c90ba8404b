package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/vortex"
)

// ErrNilBackend is returned when a nil Backend is passed to a dispatcher.
var ErrNilBackend = errors.New("backend: nil backend")

// Backend is the interface for filter execution backends.
// It abstracts the execution strategy so that the same filter can be run
// interchangeably on the interpreted (pure Go) or native (cgo) path and
// produce byte-identical output.
//
// Every filter returns a buffer with the same dimensions as its input.
// A backend may mutate the input in place and return it, or return a fresh
// buffer; callers must not assume the input survives unmodified.
//
// Backends are registered via Register() and selected via Get() or ForKind().
type Backend interface {
	// Name returns the backend identifier (e.g., "interpreted", "native").
	Name() string

	// Kind returns the execution strategy of this backend.
	Kind() vortex.BackendKind

	// Init prepares the backend for use. It is idempotent and may block
	// while a native module loads. Filter methods call it implicitly.
	Init(ctx context.Context) error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Grayscale converts every pixel to its luminance, keeping alpha.
	Grayscale(ctx context.Context, buf *vortex.PixelBuffer) (*vortex.PixelBuffer, error)

	// Brightness adds delta to R, G and B with saturation, keeping alpha.
	Brightness(ctx context.Context, buf *vortex.PixelBuffer, delta int) (*vortex.PixelBuffer, error)

	// BoxBlur applies a 3x3 clamp-to-edge mean filter, keeping alpha.
	BoxBlur(ctx context.Context, buf *vortex.PixelBuffer) (*vortex.PixelBuffer, error)
}

// Apply runs filter f on b with parameters p.
func Apply(ctx context.Context, b Backend, f vortex.Filter, buf *vortex.PixelBuffer, p vortex.Params) (*vortex.PixelBuffer, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	switch f {
	case vortex.Grayscale:
		return b.Grayscale(ctx, buf)
	case vortex.Brightness:
		return b.Brightness(ctx, buf, p.Delta)
	case vortex.BoxBlur:
		return b.BoxBlur(ctx, buf)
	default:
		return nil, fmt.Errorf("%w: %v", vortex.ErrUnknownFilter, f)
	}
}
