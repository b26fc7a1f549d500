// Package backend holds the backend registry. Concrete backends live
// in subpackages and register themselves on import:
//
//	import _ "github.com/gogpu/compose/backend/soft" // CPU rasterizer
//	import _ "github.com/gogpu/compose/backend/gpu"  // GPU canvas upload
//
// Default selects the best registered backend, preferring GPU over
// software.
package backend

import (
	"errors"
	"sync"

	"github.com/gogpu/compose"
)

// Backend names used by the built-in subpackages.
const (
	// NameSoft is the pure-CPU backend.
	NameSoft = "soft"

	// NameGPU is the hybrid CPU-raster, GPU-present backend.
	NameGPU = "gpu"
)

// ErrNotAvailable is returned when no matching backend is registered.
var ErrNotAvailable = errors.New("backend: not available")

// Factory creates a backend with a canvas of the given size.
type Factory func(width, height int) (compose.Backend, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)

	// Priority order for Default: first registered name wins.
	priority = []string{NameGPU, NameSoft}
)

// Register registers a backend factory under the given name, replacing
// any previous registration. Typically called from init functions in
// backend packages.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry. Useful in tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a backend with the given name is
// registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// New creates a backend by name.
func New(name string, width, height int) (compose.Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, ErrNotAvailable
	}
	return factory(width, height)
}

// Default creates the best available backend: GPU when its package is
// linked in, the software rasterizer otherwise.
func Default(width, height int) (compose.Backend, error) {
	registryMu.RLock()
	var factory Factory
	for _, name := range priority {
		if f, ok := factories[name]; ok {
			factory = f
			break
		}
	}
	if factory == nil {
		for _, f := range factories {
			factory = f
			break
		}
	}
	registryMu.RUnlock()

	if factory == nil {
		return nil, ErrNotAvailable
	}
	return factory(width, height)
}
