package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/vortex"
)

// ABIVersion is the kernel ABI this package expects from the C module.
const ABIVersion = 1

// Kernel result codes; kept in sync with kernels.h.
const (
	codeOK      = 0
	codeBadArgs = 1
	codeAlloc   = 2
)

// Addr is an opaque handle to a region of module memory. Zero is never a
// valid address.
type Addr uint64

// Package errors for the native module.
var (
	// ErrUnavailable is returned by Load when the module cannot be used in
	// this build or process.
	ErrUnavailable = fmt.Errorf("%w: native module not loaded", vortex.ErrBackendUnavailable)

	// ErrBadAddr is returned when an Addr does not name a live region.
	ErrBadAddr = errors.New("native: unknown region address")

	// ErrClosed is returned when a closed module is asked to allocate.
	ErrClosed = errors.New("native: module closed")
)
