// Package native provides the C implementation of the vortex pixel kernels
// behind cgo.
//
// The module exposes a five-primitive contract: allocate a region of C heap
// memory, free it, copy bytes into or out of it, and run one of three kernels
// (grayscale, brightness, box blur) in place on it. Regions are addressed by
// opaque Addr handles.
//
// The kernels use the same integer arithmetic as internal/filter, so results
// are byte-identical to the interpreted backend.
//
// When cgo is disabled (CGO_ENABLED=0) the package still compiles, Enabled
// reports false and Load fails with ErrUnavailable.
package native
