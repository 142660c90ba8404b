//go:build !cgo

package native

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/vortex"
)

func TestDefaultModuleUnavailableWithoutCGO(t *testing.T) {
	b := New()
	_, err := b.Grayscale(context.Background(), testPattern(2, 2))
	if !errors.Is(err, vortex.ErrBackendUnavailable) {
		t.Errorf("Grayscale() error = %v, want ErrBackendUnavailable", err)
	}
}
