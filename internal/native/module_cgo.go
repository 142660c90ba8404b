//go:build cgo

package native

/*
#cgo CFLAGS: -O3 -std=c99
#include <stdlib.h>
#include "kernels.h"
*/
import "C"

import (
	"context"
	"fmt"
	"sync"
	"unsafe"

	"github.com/gogpu/vortex"
)

// Enabled reports whether the cgo kernels are compiled into this build.
func Enabled() bool { return true }

// region is one block of C heap memory owned by a Module.
type region struct {
	ptr  unsafe.Pointer
	size int
}

// Module exposes the C kernels and a private C-heap allocator.
//
// Regions are identified by opaque Addr handles rather than raw pointers so
// that Go code never holds C addresses as integers. Module is safe for
// concurrent use; each region must be used by one call at a time.
type Module struct {
	mu      sync.Mutex
	next    Addr
	regions map[Addr]region
	closed  bool
}

// Load instantiates the C module. The kernels are statically linked, so the
// only work is checking the ABI version.
func Load(ctx context.Context) (*Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v := int(C.vx_abi_version()); v != ABIVersion {
		return nil, fmt.Errorf("%w: module ABI version %d, want %d", ErrUnavailable, v, ABIVersion)
	}
	return &Module{
		next:    1,
		regions: make(map[Addr]region),
	}, nil
}

// Alloc reserves n bytes of C heap memory.
func (m *Module) Alloc(n int) (Addr, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: negative size %d", vortex.ErrAllocationFailure, n)
	}
	// malloc(0) may legally return NULL; reserve one byte so a valid empty
	// region always has an address.
	ptr := C.malloc(C.size_t(max(n, 1)))
	if ptr == nil {
		return 0, fmt.Errorf("%w: malloc(%d) returned NULL", vortex.ErrAllocationFailure, n)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		C.free(ptr)
		return 0, ErrClosed
	}
	addr := m.next
	m.next++
	m.regions[addr] = region{ptr: ptr, size: n}
	return addr, nil
}

// Free releases a region reserved by Alloc.
func (m *Module) Free(addr Addr) error {
	m.mu.Lock()
	r, ok := m.regions[addr]
	delete(m.regions, addr)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %#x", ErrBadAddr, uint64(addr))
	}
	C.free(r.ptr)
	return nil
}

// Write copies p into the start of the region.
func (m *Module) Write(addr Addr, p []byte) error {
	r, err := m.lookup(addr)
	if err != nil {
		return err
	}
	if len(p) > r.size {
		return fmt.Errorf("%w: write of %d bytes into %d-byte region", vortex.ErrInvalidBufferShape, len(p), r.size)
	}
	if len(p) > 0 {
		copy(unsafe.Slice((*byte)(r.ptr), r.size), p)
	}
	return nil
}

// Read copies the start of the region into p.
func (m *Module) Read(addr Addr, p []byte) error {
	r, err := m.lookup(addr)
	if err != nil {
		return err
	}
	if len(p) > r.size {
		return fmt.Errorf("%w: read of %d bytes from %d-byte region", vortex.ErrInvalidBufferShape, len(p), r.size)
	}
	if len(p) > 0 {
		copy(p, unsafe.Slice((*byte)(r.ptr), r.size))
	}
	return nil
}

// Grayscale runs the grayscale kernel in place on the region.
func (m *Module) Grayscale(addr Addr, width, height int) error {
	r, err := m.image(addr, width, height)
	if err != nil {
		return err
	}
	return codeError(C.vx_grayscale((*C.uint8_t)(r.ptr), C.int(width), C.int(height)), "vx_grayscale")
}

// Brightness runs the brightness kernel in place on the region.
func (m *Module) Brightness(addr Addr, width, height, delta int) error {
	r, err := m.image(addr, width, height)
	if err != nil {
		return err
	}
	return codeError(C.vx_brightness((*C.uint8_t)(r.ptr), C.int(width), C.int(height), C.int(delta)), "vx_brightness")
}

// BoxBlur runs the box blur kernel in place on the region.
func (m *Module) BoxBlur(addr Addr, width, height int) error {
	r, err := m.image(addr, width, height)
	if err != nil {
		return err
	}
	return codeError(C.vx_box_blur((*C.uint8_t)(r.ptr), C.int(width), C.int(height)), "vx_box_blur")
}

// Outstanding returns the number of regions not yet freed.
func (m *Module) Outstanding() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regions)
}

// Close frees every outstanding region. Further allocations fail.
func (m *Module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for addr, r := range m.regions {
		C.free(r.ptr)
		delete(m.regions, addr)
	}
	m.closed = true
	return nil
}

func (m *Module) lookup(addr Addr) (region, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.regions[addr]
	if !ok {
		return region{}, fmt.Errorf("%w: %#x", ErrBadAddr, uint64(addr))
	}
	return r, nil
}

// image looks up a region and checks that it holds a width x height image.
func (m *Module) image(addr Addr, width, height int) (region, error) {
	r, err := m.lookup(addr)
	if err != nil {
		return region{}, err
	}
	if width < 0 || height < 0 || width*height*vortex.BytesPerPixel > r.size {
		return region{}, fmt.Errorf("%w: %dx%d image does not fit %d-byte region",
			vortex.ErrInvalidBufferShape, width, height, r.size)
	}
	return r, nil
}

// codeError maps a kernel result code to an error.
func codeError(code C.int, fn string) error {
	switch int(code) {
	case codeOK:
		return nil
	case codeBadArgs:
		return fmt.Errorf("%w: %s rejected its arguments", vortex.ErrInvalidBufferShape, fn)
	case codeAlloc:
		return fmt.Errorf("%w: %s scratch buffer", vortex.ErrAllocationFailure, fn)
	default:
		return fmt.Errorf("%w: %s returned %d", vortex.ErrKernelFailed, fn, int(code))
	}
}
