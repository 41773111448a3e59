package recording

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register makes a backend available under name. It is meant to be called
// from init() in backend packages, the way database/sql drivers register.
//
// Register panics if factory is nil or name is already taken.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	backends[name] = factory
}

// Unregister removes a backend from the registry. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewBackend creates a new backend instance by name.
//
//	import _ "github.com/gogpu/isovox/recording/backends/svg"
//
//	backend, err := recording.NewBackend("svg")
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("recording: unknown backend %q (forgotten import?)", name)
	}
	return factory(), nil
}

// MustBackend is like NewBackend but panics on error.
func MustBackend(name string) Backend {
	b, err := NewBackend(name)
	if err != nil {
		panic(err)
	}
	return b
}

// BackendForFile picks a registered FileBackend whose extension matches
// path. Matching is case-insensitive; when several backends claim the same
// extension the alphabetically first name wins.
func BackendForFile(path string) (FileBackend, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, "", fmt.Errorf("recording: %q has no file extension", path)
	}
	for _, name := range Backends() {
		b, err := NewBackend(name)
		if err != nil {
			continue // unregistered concurrently
		}
		fb, ok := b.(FileBackend)
		if ok && strings.EqualFold(fb.Ext(), ext) {
			return fb, name, nil
		}
	}
	return nil, "", fmt.Errorf("recording: no backend writes %q files", ext)
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(backends))
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Count returns the number of registered backends.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(backends)
}
