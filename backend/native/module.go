package native

import (
	"context"

	cnative "github.com/gogpu/vortex/internal/native"
)

// Addr is an opaque handle to a region of module memory.
type Addr = cnative.Addr

// Module is the contract between the native backend and a loaded kernel
// module. The backend uses nothing else: how the module was built or loaded
// is the Loader's concern.
//
// Implementations must be safe for concurrent use across distinct regions.
type Module interface {
	// Alloc reserves n bytes and returns the region's address.
	Alloc(n int) (Addr, error)

	// Free releases a region reserved by Alloc.
	Free(addr Addr) error

	// Write copies p into the start of the region.
	Write(addr Addr, p []byte) error

	// Read copies the start of the region into p.
	Read(addr Addr, p []byte) error

	// Grayscale converts the width x height RGBA image at addr in place.
	Grayscale(addr Addr, width, height int) error

	// Brightness adjusts the width x height RGBA image at addr in place.
	Brightness(addr Addr, width, height, delta int) error

	// BoxBlur blurs the width x height RGBA image at addr in place.
	BoxBlur(addr Addr, width, height int) error
}

// Loader loads and instantiates a Module. It may block; the context bounds
// how long the caller is willing to wait.
type Loader func(ctx context.Context) (Module, error)

// DefaultLoader loads the statically linked cgo kernels.
// Without cgo it fails with vortex.ErrBackendUnavailable.
func DefaultLoader(ctx context.Context) (Module, error) {
	m, err := cnative.Load(ctx)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Enabled reports whether the default module is compiled into this build.
func Enabled() bool {
	return cnative.Enabled()
}
