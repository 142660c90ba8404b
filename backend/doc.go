// Package backend provides the pluggable filter execution abstraction.
//
// Two execution strategies implement the same Backend interface:
//
//   - "interpreted": pure Go kernels on the caller's memory (always available,
//     registered by this package)
//   - "native": C kernels on a natively allocated region (registered by
//     importing github.com/gogpu/vortex/backend/native; requires cgo)
//
// # Backend Selection
//
// Callers select a strategy explicitly, either by name or by kind:
//
//	b := backend.Get(backend.BackendInterpreted)
//
//	import _ "github.com/gogpu/vortex/backend/native"
//	nb := backend.ForKind(vortex.Native)
//
// The engine never falls back from one backend to another on its own.
// If the native module cannot be loaded, its filter calls fail with
// vortex.ErrBackendUnavailable and the caller decides what to do.
//
// # Dispatch
//
// Apply maps a vortex.Filter to the corresponding Backend method:
//
//	out, err := backend.Apply(ctx, b, vortex.Brightness, buf, vortex.Params{Delta: 50})
package backend
