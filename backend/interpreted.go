package backend

import (
	"context"

	"github.com/gogpu/vortex"
	"github.com/gogpu/vortex/internal/filter"
)

// InterpretedBackend runs the pure Go kernels directly on the caller's
// memory. Grayscale and Brightness mutate the input buffer and return it;
// BoxBlur allocates a new destination buffer.
//
// InterpretedBackend holds no state and is safe for concurrent use on
// distinct buffers.
type InterpretedBackend struct{}

// init registers the interpreted backend on package import.
func init() {
	Register(BackendInterpreted, func() Backend {
		return &InterpretedBackend{}
	})
}

// NewInterpretedBackend creates a new interpreted backend.
func NewInterpretedBackend() *InterpretedBackend {
	return &InterpretedBackend{}
}

// Name returns the backend identifier.
func (b *InterpretedBackend) Name() string {
	return BackendInterpreted
}

// Kind returns vortex.Interpreted.
func (b *InterpretedBackend) Kind() vortex.BackendKind {
	return vortex.Interpreted
}

// Init is a no-op; the interpreted backend needs no preparation.
func (b *InterpretedBackend) Init(context.Context) error {
	return nil
}

// Close is a no-op.
func (b *InterpretedBackend) Close() {}

// Grayscale converts buf to grayscale in place and returns it.
func (b *InterpretedBackend) Grayscale(_ context.Context, buf *vortex.PixelBuffer) (*vortex.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	filter.Grayscale(buf.Pix())
	return buf, nil
}

// Brightness adjusts buf in place and returns it.
func (b *InterpretedBackend) Brightness(_ context.Context, buf *vortex.PixelBuffer, delta int) (*vortex.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	filter.Brightness(buf.Pix(), vortex.ClampDelta(delta))
	return buf, nil
}

// BoxBlur returns a new blurred buffer. buf is left unmodified.
func (b *InterpretedBackend) BoxBlur(_ context.Context, buf *vortex.PixelBuffer) (*vortex.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	out := vortex.NewPixelBuffer(buf.Width(), buf.Height())
	filter.BoxBlur(out.Pix(), buf.Pix(), buf.Width(), buf.Height())
	return out, nil
}
