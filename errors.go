package vortex

import "errors"

// Engine error kinds. Callers distinguish them with errors.Is; backends wrap
// them with call-specific detail.
var (
	// ErrInvalidBufferShape is returned when a pixel slice length does not
	// equal width*height*4 or a dimension is negative. No output is produced.
	ErrInvalidBufferShape = errors.New("vortex: invalid buffer shape")

	// ErrBackendUnavailable is returned when a backend could not be loaded or
	// initialized. The engine never falls back to another backend on its own.
	ErrBackendUnavailable = errors.New("vortex: backend unavailable")

	// ErrAllocationFailure is returned when the native backend could not
	// reserve a working region of the requested size.
	ErrAllocationFailure = errors.New("vortex: native allocation failed")

	// ErrKernelFailed is returned when a native entry point reports a failure
	// that is neither a shape mismatch nor an allocation failure.
	ErrKernelFailed = errors.New("vortex: kernel execution failed")

	// ErrUnknownFilter is returned when a filter name or value is not recognized.
	ErrUnknownFilter = errors.New("vortex: unknown filter")

	// ErrUnknownBackend is returned when a backend name or value is not recognized.
	ErrUnknownBackend = errors.New("vortex: unknown backend")
)
