package native

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/vortex"
	"github.com/gogpu/vortex/internal/filter"
)

// fakeModule is an in-memory Module backed by the Go kernels. It counts
// allocations and can inject failures at each step.
type fakeModule struct {
	mu      sync.Mutex
	next    Addr
	regions map[Addr][]byte
	allocs  int
	frees   int

	allocErr  error
	writeErr  error
	readErr   error
	kernelErr error
	freeErr   error
	panicMsg  string
}

func newFakeModule() *fakeModule {
	return &fakeModule{next: 1, regions: make(map[Addr][]byte)}
}

func (m *fakeModule) outstanding() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regions)
}

func (m *fakeModule) Alloc(n int) (Addr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.allocErr != nil {
		return 0, m.allocErr
	}
	addr := m.next
	m.next++
	m.regions[addr] = make([]byte, n)
	m.allocs++
	return addr, nil
}

func (m *fakeModule) Free(addr Addr) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.regions[addr]; !ok {
		return fmt.Errorf("fake: free of unknown addr %d", addr)
	}
	delete(m.regions, addr)
	m.frees++
	return m.freeErr
}

func (m *fakeModule) region(addr Addr) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.regions[addr]
	if !ok {
		return nil, fmt.Errorf("fake: unknown addr %d", addr)
	}
	return mem, nil
}

func (m *fakeModule) Write(addr Addr, p []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	mem, err := m.region(addr)
	if err != nil {
		return err
	}
	if len(p) > len(mem) {
		return fmt.Errorf("%w: fake write overflow", vortex.ErrInvalidBufferShape)
	}
	copy(mem, p)
	return nil
}

func (m *fakeModule) Read(addr Addr, p []byte) error {
	if m.readErr != nil {
		return m.readErr
	}
	mem, err := m.region(addr)
	if err != nil {
		return err
	}
	copy(p, mem)
	return nil
}

func (m *fakeModule) kernel(addr Addr, w, h int, fn func([]byte)) error {
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.kernelErr != nil {
		return m.kernelErr
	}
	mem, err := m.region(addr)
	if err != nil {
		return err
	}
	if w*h*4 > len(mem) {
		return fmt.Errorf("%w: fake image too large", vortex.ErrInvalidBufferShape)
	}
	fn(mem[:w*h*4])
	return nil
}

func (m *fakeModule) Grayscale(addr Addr, w, h int) error {
	return m.kernel(addr, w, h, filter.Grayscale)
}

func (m *fakeModule) Brightness(addr Addr, w, h, delta int) error {
	return m.kernel(addr, w, h, func(p []byte) { filter.Brightness(p, delta) })
}

func (m *fakeModule) BoxBlur(addr Addr, w, h int) error {
	return m.kernel(addr, w, h, func(p []byte) {
		src := append([]byte(nil), p...)
		filter.BoxBlur(p, src, w, h)
	})
}

// closingModule records Close calls.
type closingModule struct {
	*fakeModule
	closed int
}

func (m *closingModule) Close() error {
	m.closed++
	return nil
}

var errFake = errors.New("fake failure")
