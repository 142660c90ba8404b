// Package vortex provides a pixel filter engine with two interchangeable
// execution backends.
//
// # Overview
//
// vortex applies pixel-level transformations (grayscale, brightness, 3x3 box
// blur) to RGBA raster data. Every filter is available on two backends so
// their wall-clock cost can be compared on identical input:
//
//   - Interpreted: pure Go kernels operating directly on the caller's slice.
//   - Native: C kernels operating on a natively allocated memory region
//     (requires cgo).
//
// Both backends use the same integer arithmetic and produce byte-identical
// output for the same input.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/vortex"
//		"github.com/gogpu/vortex/backend"
//		"github.com/gogpu/vortex/bench"
//		_ "github.com/gogpu/vortex/backend/native" // registers the native backend
//	)
//
//	buf := vortex.NewPixelBuffer(640, 480)
//	h := bench.NewHarness()
//	out, sample, err := h.Run(ctx, backend.ForKind(vortex.Native),
//		vortex.BoxBlur, buf, vortex.Params{})
//
// # Pixel Layout
//
// A PixelBuffer is a row-major grid of non-premultiplied RGBA bytes,
// 4 bytes per pixel, no row padding. The pixel slice length is always
// width*height*4; a mismatch is reported as ErrInvalidBufferShape.
//
// # Architecture
//
// The library is organized into:
//   - Public API: PixelBuffer, Filter, Params, TimingSample, errors
//   - backend: the Backend interface, registry and the interpreted backend
//   - backend/native: the native backend and its five-primitive module contract
//   - bench: single-shot timing harness and report formatting
//   - imageio: decode/encode at the image-file boundary
//   - Internal: filter (Go kernels), native (cgo kernels), parallel (batch I/O pool)
//
// # Logging
//
// vortex is silent by default. Call SetLogger to route diagnostics from all
// sub-packages to a slog.Logger.
package vortex

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
