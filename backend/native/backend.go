package native

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/vortex"
	"github.com/gogpu/vortex/backend"
)

// sharedCell holds the process-wide default module. All backends created
// without WithLoader or WithModule share it, so the module is loaded at most
// once per process no matter how many Backend values exist.
var sharedCell = newInitCell(DefaultLoader)

var _ backend.Backend = (*Backend)(nil)

// init registers the native backend on package import.
func init() {
	backend.Register(backend.BackendNative, func() backend.Backend {
		return New()
	})
}

// Option configures a Backend during creation.
type Option func(*options)

type options struct {
	loader Loader
	module Module
}

// WithLoader makes the backend load its module with l instead of sharing
// the process-wide default module. The backend owns the loaded module and
// Close releases it.
func WithLoader(l Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithModule uses an already loaded module. No load step is performed.
// The backend takes ownership: Close closes m if it implements io.Closer.
func WithModule(m Module) Option {
	return func(o *options) {
		o.module = m
	}
}

// Backend runs filters on a native module.
//
// Each call validates the input, waits for the module to be loaded, then
// reserves a private region of module memory, copies the pixels in, runs the
// kernel, copies the result out into a new buffer and releases the region.
// The input buffer is never modified.
//
// Backend is safe for concurrent use; concurrent calls each use their own
// region.
type Backend struct {
	cell   *initCell
	shared bool

	closeOnce sync.Once
	closed    atomic.Bool
}

// New creates a native backend. Without options it uses the process-wide
// cgo module, loaded lazily on first use.
func New(opts ...Option) *Backend {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case o.module != nil:
		b := &Backend{}
		m := o.module
		b.cell = newInitCell(func(context.Context) (Module, error) {
			if b.closed.Load() {
				return nil, fmt.Errorf("%w: module closed", vortex.ErrBackendUnavailable)
			}
			return m, nil
		})
		return b
	case o.loader != nil:
		return &Backend{cell: newInitCell(o.loader)}
	default:
		return &Backend{cell: sharedCell, shared: true}
	}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendNative
}

// Kind returns vortex.Native.
func (b *Backend) Kind() vortex.BackendKind {
	return vortex.Native
}

// Init loads the module if it is not loaded yet. Concurrent callers share a
// single in-flight load. A failed load is reported as
// vortex.ErrBackendUnavailable and retried on the next call.
func (b *Backend) Init(ctx context.Context) error {
	_, err := b.module(ctx)
	return err
}

// State returns the module lifecycle state.
func (b *Backend) State() State {
	s, _ := b.cell.current()
	return s
}

// Close releases a module owned by this backend. The process-wide default
// module stays loaded for other backends. A backend created WithModule
// reports vortex.ErrBackendUnavailable after Close; one created WithLoader
// loads a fresh module on its next call.
func (b *Backend) Close() {
	if b.shared {
		return
	}
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		if err := b.cell.reset(); err != nil {
			vortex.Logger().Warn("native: module close failed", "error", err)
		}
	})
}

// Grayscale returns a grayscale copy of buf.
func (b *Backend) Grayscale(ctx context.Context, buf *vortex.PixelBuffer) (*vortex.PixelBuffer, error) {
	return b.run(ctx, buf, "grayscale", func(m Module, addr Addr, w, h int) error {
		return m.Grayscale(addr, w, h)
	})
}

// Brightness returns a brightened copy of buf.
func (b *Backend) Brightness(ctx context.Context, buf *vortex.PixelBuffer, delta int) (*vortex.PixelBuffer, error) {
	delta = vortex.ClampDelta(delta)
	return b.run(ctx, buf, "brightness", func(m Module, addr Addr, w, h int) error {
		return m.Brightness(addr, w, h, delta)
	})
}

// BoxBlur returns a blurred copy of buf.
func (b *Backend) BoxBlur(ctx context.Context, buf *vortex.PixelBuffer) (*vortex.PixelBuffer, error) {
	return b.run(ctx, buf, "boxblur", func(m Module, addr Addr, w, h int) error {
		return m.BoxBlur(addr, w, h)
	})
}

func (b *Backend) module(ctx context.Context) (Module, error) {
	m, err := b.cell.get(ctx)
	if err != nil {
		vortex.Logger().Warn("native: module unavailable", "error", err)
		return nil, err
	}
	return m, nil
}

// run performs allocate, copy in, kernel, copy out, free for one call.
func (b *Backend) run(ctx context.Context, buf *vortex.PixelBuffer, op string,
	kernel func(m Module, addr Addr, w, h int) error) (*vortex.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	m, err := b.module(ctx)
	if err != nil {
		return nil, err
	}

	w, h := buf.Width(), buf.Height()
	out := vortex.NewPixelBuffer(w, h)
	if out.Len() == 0 {
		return out, nil
	}

	r, err := acquireRegion(m, buf.Len())
	if err != nil {
		return nil, err
	}
	defer r.release()

	if err := r.load(buf.Pix()); err != nil {
		return nil, err
	}
	vortex.Logger().Debug("native: dispatch", "filter", op, "width", w, "height", h)
	if err := kernel(m, r.addr, w, h); err != nil {
		return nil, kernelError(op, err)
	}
	if err := r.store(out.Pix()); err != nil {
		return nil, err
	}
	return out, nil
}
