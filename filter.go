package vortex

import (
	"fmt"
	"strings"
	"time"
)

// Filter identifies one of the engine's pixel transforms.
type Filter uint8

const (
	// Grayscale writes the pixel luminance to R, G and B.
	Grayscale Filter = iota

	// Brightness adds a saturating delta to R, G and B.
	Brightness

	// BoxBlur averages R, G and B over the 3x3 neighborhood.
	BoxBlur
)

// Filters lists every filter in declaration order.
var Filters = []Filter{Grayscale, Brightness, BoxBlur}

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case Grayscale:
		return "grayscale"
	case Brightness:
		return "brightness"
	case BoxBlur:
		return "boxblur"
	default:
		return fmt.Sprintf("Filter(%d)", f)
	}
}

// ParseFilter parses a filter name. Matching is case-insensitive and
// accepts "blur" as an alias for box blur.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grayscale", "greyscale", "gray":
		return Grayscale, nil
	case "brightness":
		return Brightness, nil
	case "boxblur", "blur", "box-blur":
		return BoxBlur, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// BackendKind identifies one of the two execution strategies.
type BackendKind uint8

const (
	// Interpreted runs pure Go kernels on the caller's memory.
	Interpreted BackendKind = iota

	// Native runs C kernels on a natively allocated region.
	Native
)

// BackendKinds lists every backend kind in declaration order.
var BackendKinds = []BackendKind{Interpreted, Native}

// String returns the backend kind name.
func (k BackendKind) String() string {
	switch k {
	case Interpreted:
		return "interpreted"
	case Native:
		return "native"
	default:
		return fmt.Sprintf("BackendKind(%d)", k)
	}
}

// ParseBackendKind parses a backend kind name (case-insensitive).
func ParseBackendKind(s string) (BackendKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interpreted", "go":
		return Interpreted, nil
	case "native", "c":
		return Native, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Brightness delta bounds.
const (
	// MinDelta and MaxDelta bound the brightness delta. Any larger magnitude
	// saturates every channel, so deltas are clamped to this range.
	MinDelta = -255
	MaxDelta = 255

	// UIMinDelta and UIMaxDelta are the range offered by interactive front ends.
	UIMinDelta = -100
	UIMaxDelta = 100
)

// Params holds per-filter parameters. Filters ignore fields they do not use.
type Params struct {
	// Delta is the brightness adjustment applied to R, G and B.
	Delta int
}

// ClampDelta clamps d to [MinDelta, MaxDelta].
func ClampDelta(d int) int {
	if d < MinDelta {
		return MinDelta
	}
	if d > MaxDelta {
		return MaxDelta
	}
	return d
}

// TimingSample records the elapsed wall-clock time of one filter invocation.
type TimingSample struct {
	Backend BackendKind
	Filter  Filter
	Elapsed time.Duration
}

// ElapsedMillis returns the elapsed time in fractional milliseconds.
func (s TimingSample) ElapsedMillis() float64 {
	return float64(s.Elapsed) / float64(time.Millisecond)
}

// String returns a short human-readable form, e.g. "native/boxblur 1.25ms".
func (s TimingSample) String() string {
	return fmt.Sprintf("%s/%s %.2fms", s.Backend, s.Filter, s.ElapsedMillis())
}
