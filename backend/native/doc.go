// Package native provides the native filter backend.
//
// The backend runs the vortex kernels inside a loaded module and moves pixel
// data across an ownership boundary for every call:
//
//	Validate -> load module (once) -> Alloc -> Write -> kernel -> Read -> Free
//
// The region reserved by Alloc is released by a deferred Free, so it is
// returned on every exit path, including kernel failures.
//
// # Registration and Selection
//
// The backend registers itself with the backend package on import:
//
//	import _ "github.com/gogpu/vortex/backend/native"
//
//	b := backend.ForKind(vortex.Native)
//
// # Module Loading
//
// The default module is the cgo build of internal/native, shared by every
// Backend in the process and loaded lazily on first use. Concurrent first
// callers wait for the same load. When cgo is disabled, or the load fails,
// filter calls return vortex.ErrBackendUnavailable; the next call retries.
//
// Custom modules plug in through the Module contract:
//
//	b := native.New(native.WithLoader(func(ctx context.Context) (native.Module, error) {
//		return loadMyModule(ctx)
//	}))
//
// # Error Handling
//
//   - vortex.ErrInvalidBufferShape: the input violates width*height*4
//   - vortex.ErrBackendUnavailable: the module could not be loaded
//   - vortex.ErrAllocationFailure: the module could not reserve a region
//   - vortex.ErrKernelFailed: any other module failure
package native
