// Package filter provides the pure Go pixel kernels used by the interpreted
// backend.
//
// Kernels operate on raw RGBA slices (4 bytes per pixel, row-major, no
// padding) and use integer arithmetic only, so their output is byte-identical
// to the C kernels in internal/native:
//   - Grayscale: gray = (299*R + 587*G + 114*B + 500) / 1000, alpha kept
//   - Brightness: saturating add on R, G, B, alpha kept
//   - BoxBlur: 3x3 mean with clamp-to-edge sampling, truncating division,
//     alpha copied from the center pixel
//
// Grayscale and Brightness work in place. BoxBlur reads from src and writes to
// a distinct dst so that no output pixel feeds into a neighbor's average.
//
// All kernels are allocation-free.
package filter
