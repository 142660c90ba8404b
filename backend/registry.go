package backend

import (
	"sort"
	"sync"

	"github.com/gogpu/vortex"
)

// Backend name constants.
const (
	// BackendInterpreted is the name of the pure Go backend.
	BackendInterpreted = "interpreted"
	// BackendNative is the name of the cgo backend (see backend/native).
	BackendNative = "native"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	kindNames  = map[vortex.BackendKind]string{
		vortex.Interpreted: BackendInterpreted,
		vortex.Native:      BackendNative,
	}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the sorted list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) Backend {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// ForKind returns a backend instance for the given execution strategy.
// Returns nil if no backend of that kind is registered; the native backend
// is registered by importing github.com/gogpu/vortex/backend/native.
func ForKind(kind vortex.BackendKind) Backend {
	name, ok := kindNames[kind]
	if !ok {
		return nil
	}
	return Get(name)
}
