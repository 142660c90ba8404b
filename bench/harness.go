package bench

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gogpu/vortex"
	"github.com/gogpu/vortex/backend"
)

// Option configures a Harness during creation.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the harness clock.
// Tests use it to make timings deterministic.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// sampleKey identifies a (backend, filter) pair.
type sampleKey struct {
	backend vortex.BackendKind
	filter  vortex.Filter
}

// Harness times single filter invocations.
//
// Each Run executes exactly one filter call with no warm-up and no
// averaging. Only the most recent sample per (backend, filter) pair is kept.
// Runs are serialized: a Harness never measures two invocations at once.
type Harness struct {
	now func() time.Time

	runMu sync.Mutex

	mu   sync.Mutex
	last map[sampleKey]vortex.TimingSample
}

// NewHarness creates a harness.
func NewHarness(opts ...Option) *Harness {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Harness{
		now:  o.now,
		last: make(map[sampleKey]vortex.TimingSample),
	}
}

// Run applies filter f to buf on backend b and measures the wall-clock time
// of the filter invocation alone.
//
// The buffer is validated and the backend initialized before the clock
// starts, so neither input checks nor a one-time native module load are
// counted. As with the backends themselves, buf may be modified in place.
func (h *Harness) Run(ctx context.Context, b backend.Backend, f vortex.Filter, buf *vortex.PixelBuffer, p vortex.Params) (*vortex.PixelBuffer, vortex.TimingSample, error) {
	if b == nil {
		return nil, vortex.TimingSample{}, backend.ErrNilBackend
	}
	if err := buf.Validate(); err != nil {
		return nil, vortex.TimingSample{}, err
	}

	h.runMu.Lock()
	defer h.runMu.Unlock()

	if err := b.Init(ctx); err != nil {
		return nil, vortex.TimingSample{}, err
	}

	start := h.now()
	out, err := backend.Apply(ctx, b, f, buf, p)
	elapsed := h.now().Sub(start)
	if err != nil {
		return nil, vortex.TimingSample{}, err
	}

	sample := vortex.TimingSample{Backend: b.Kind(), Filter: f, Elapsed: elapsed}
	h.mu.Lock()
	h.last[sampleKey{sample.Backend, sample.Filter}] = sample
	h.mu.Unlock()

	vortex.Logger().Debug("bench: run",
		"backend", sample.Backend.String(),
		"filter", f.String(),
		"width", buf.Width(),
		"height", buf.Height(),
		"elapsed_ms", sample.ElapsedMillis())
	return out, sample, nil
}

// Last returns the most recent sample for the (kind, f) pair.
func (h *Harness) Last(kind vortex.BackendKind, f vortex.Filter) (vortex.TimingSample, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.last[sampleKey{kind, f}]
	return s, ok
}

// Reset discards all recorded samples.
func (h *Harness) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.last)
}

// Comparison is the result of running one filter on two backends
// back-to-back over identical input.
type Comparison struct {
	Filter vortex.Filter

	// A and B are the samples of the first and second backend.
	A, B vortex.TimingSample

	// OutA and OutB are the filter outputs.
	OutA, OutB *vortex.PixelBuffer

	// Identical reports whether OutA and OutB are byte-identical.
	Identical bool
}

// Speedup returns how many times faster B ran than A.
// It returns 0 when B's elapsed time is zero.
func (c Comparison) Speedup() float64 {
	if c.B.Elapsed <= 0 {
		return 0
	}
	return float64(c.A.Elapsed) / float64(c.B.Elapsed)
}

// Compare runs f on a and then on b, each on its own clone of buf, so the
// backends see identical input and buf itself is left unmodified.
func (h *Harness) Compare(ctx context.Context, a, b backend.Backend, f vortex.Filter, buf *vortex.PixelBuffer, p vortex.Params) (Comparison, error) {
	if err := buf.Validate(); err != nil {
		return Comparison{}, err
	}

	outA, sa, errA := h.Run(ctx, a, f, buf.Clone(), p)
	if errA != nil {
		return Comparison{}, errA
	}
	outB, sb, errB := h.Run(ctx, b, f, buf.Clone(), p)
	if errB != nil {
		return Comparison{}, errB
	}

	return Comparison{
		Filter:    f,
		A:         sa,
		B:         sb,
		OutA:      outA,
		OutB:      outB,
		Identical: outA.Equal(outB),
	}, nil
}

// ErrNoSamples is returned by WriteReport when there is nothing to report.
var ErrNoSamples = errors.New("bench: no samples")
