package native

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/vortex"
)

// State is the lifecycle state of a native module.
type State uint8

const (
	// StateUninitialized means no load has been attempted.
	StateUninitialized State = iota
	// StateInitializing means a load is in flight.
	StateInitializing
	// StateReady means the module is loaded and usable.
	StateReady
	// StateFailed means the last load failed; the next use retries.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// loadAttempt is one invocation of the loader. Its fields are written once
// before done is closed and never change afterwards.
type loadAttempt struct {
	done chan struct{}
	mod  Module
	err  error
}

// initCell runs a Loader at most once per attempt. Callers arriving while a
// load is in flight wait for that load instead of starting another one.
type initCell struct {
	load Loader

	mu      sync.Mutex
	state   State
	attempt *loadAttempt
	loads   int
}

func newInitCell(load Loader) *initCell {
	return &initCell{load: load}
}

// get returns the loaded module, loading it first if necessary.
// Load failures are wrapped in vortex.ErrBackendUnavailable.
func (c *initCell) get(ctx context.Context) (Module, error) {
	c.mu.Lock()
	switch c.state {
	case StateReady:
		m := c.attempt.mod
		c.mu.Unlock()
		return m, nil

	case StateInitializing:
		a := c.attempt
		c.mu.Unlock()
		select {
		case <-a.done:
			return a.mod, a.err
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: waiting for native module: %w", vortex.ErrBackendUnavailable, ctx.Err())
		}
	}

	// Uninitialized or Failed: this caller performs the load.
	a := &loadAttempt{done: make(chan struct{})}
	c.attempt = a
	c.state = StateInitializing
	c.loads++
	c.mu.Unlock()

	c.finish(ctx, a)
	return a.mod, a.err
}

// finish runs the loader and publishes its result to a. A panicking loader
// still leaves the cell failed and releases waiters before the panic
// propagates.
func (c *initCell) finish(ctx context.Context, a *loadAttempt) {
	published := false
	defer func() {
		if published {
			return
		}
		r := recover()
		c.publish(a, nil, fmt.Errorf("%w: loader panicked: %v", vortex.ErrBackendUnavailable, r))
		if r != nil {
			panic(r)
		}
	}()

	mod, err := c.load(ctx)
	if err == nil && mod == nil {
		err = errors.New("loader returned no module")
	}
	if err != nil && !errors.Is(err, vortex.ErrBackendUnavailable) {
		err = fmt.Errorf("%w: %w", vortex.ErrBackendUnavailable, err)
	}
	published = true
	c.publish(a, mod, err)
}

func (c *initCell) publish(a *loadAttempt, mod Module, err error) {
	c.mu.Lock()
	if err != nil {
		a.err = err
		c.state = StateFailed
	} else {
		a.mod = mod
		c.state = StateReady
	}
	close(a.done)
	c.mu.Unlock()

	if err == nil {
		vortex.Logger().Info("native: module ready")
	}
}

// current returns the state and the number of load attempts so far.
func (c *initCell) current() (State, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.loads
}

// reset returns a ready cell to the uninitialized state, closing the module
// if it implements io.Closer. An in-flight load is left alone.
func (c *initCell) reset() error {
	c.mu.Lock()
	if c.state != StateReady && c.state != StateFailed {
		c.mu.Unlock()
		return nil
	}
	a := c.attempt
	c.attempt = nil
	c.state = StateUninitialized
	c.mu.Unlock()

	if a != nil && a.mod != nil {
		if cl, ok := a.mod.(io.Closer); ok {
			return cl.Close()
		}
	}
	return nil
}
