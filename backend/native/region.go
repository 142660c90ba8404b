package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/vortex"
)

// region is a block of module memory held for the duration of one filter
// call. Every successful acquireRegion must be paired with a deferred
// release so the block is returned on all exit paths, including panics
// raised by the module.
type region struct {
	mod  Module
	addr Addr
	size int
}

// acquireRegion reserves size bytes from m. Errors are reported as
// vortex.ErrAllocationFailure.
func acquireRegion(m Module, size int) (*region, error) {
	addr, err := m.Alloc(size)
	if err != nil {
		if !errors.Is(err, vortex.ErrAllocationFailure) {
			err = fmt.Errorf("%w: %w", vortex.ErrAllocationFailure, err)
		}
		return nil, err
	}
	vortex.Logger().Debug("native: region acquired", "addr", uint64(addr), "bytes", size)
	return &region{mod: m, addr: addr, size: size}, nil
}

// load copies pix into the region.
func (r *region) load(pix []uint8) error {
	if err := r.mod.Write(r.addr, pix); err != nil {
		return kernelError("write", err)
	}
	return nil
}

// store copies the region into pix.
func (r *region) store(pix []uint8) error {
	if err := r.mod.Read(r.addr, pix); err != nil {
		return kernelError("read", err)
	}
	return nil
}

// release returns the region to the module. A failure cannot be reported to
// the caller without masking the call's own result, so it is logged.
func (r *region) release() {
	if err := r.mod.Free(r.addr); err != nil {
		vortex.Logger().Warn("native: region release failed", "addr", uint64(r.addr), "bytes", r.size, "error", err)
		return
	}
	vortex.Logger().Debug("native: region released", "addr", uint64(r.addr), "bytes", r.size)
}

// kernelError classifies a module error. Shape and allocation errors keep
// their kind; anything else becomes vortex.ErrKernelFailed.
func kernelError(op string, err error) error {
	switch {
	case errors.Is(err, vortex.ErrInvalidBufferShape),
		errors.Is(err, vortex.ErrAllocationFailure),
		errors.Is(err, vortex.ErrKernelFailed):
		return fmt.Errorf("native: %s: %w", op, err)
	default:
		return fmt.Errorf("%w: native: %s: %w", vortex.ErrKernelFailed, op, err)
	}
}
