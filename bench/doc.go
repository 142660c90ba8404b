// Package bench measures filter execution time on a backend.
//
// A Harness runs one filter invocation at a time and records a
// TimingSample of the wall-clock duration of that single call. Backend
// initialization (for the native backend, loading the module) happens
// before the clock starts.
//
//	h := bench.NewHarness()
//	out, sample, err := h.Run(ctx, b, vortex.BoxBlur, buf, vortex.Params{})
//
// Compare runs the same filter on two backends over identical input, and
// WriteReport prints samples as human-readable lines.
package bench
