//go:build !cgo

package native

import (
	"context"
	"fmt"
)

var errNoCGO = fmt.Errorf("%w (build with CGO_ENABLED=1)", ErrUnavailable)

// Enabled reports whether the cgo kernels are compiled into this build.
func Enabled() bool { return false }

// Module is a placeholder so that callers compile without cgo.
// Load never returns one.
type Module struct{}

// Load always fails when cgo is disabled.
func Load(ctx context.Context) (*Module, error) {
	return nil, errNoCGO
}

func (m *Module) Alloc(n int) (Addr, error) { return 0, errNoCGO }

func (m *Module) Free(addr Addr) error { return errNoCGO }

func (m *Module) Write(addr Addr, p []byte) error { return errNoCGO }

func (m *Module) Read(addr Addr, p []byte) error { return errNoCGO }

func (m *Module) Grayscale(addr Addr, width, height int) error { return errNoCGO }

func (m *Module) Brightness(addr Addr, width, height, delta int) error { return errNoCGO }

func (m *Module) BoxBlur(addr Addr, width, height int) error { return errNoCGO }

func (m *Module) Outstanding() int { return 0 }

func (m *Module) Close() error { return nil }
