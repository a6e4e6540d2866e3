package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Registry holds named provider instances.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	instances map[string]T
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{instances: make(map[string]T)}
}

// Register adds a provider under its own Name. Registering a name twice is an error.
func (r *Registry[T]) Register(p T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := p.Name()
	if _, exists := r.instances[name]; exists {
		return fmt.Errorf("provider %q already registered", name)
	}
	r.instances[name] = p
	return nil
}

// Get returns a provider by name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[name]
	return inst, ok
}

// Names returns the sorted names of all registered providers.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Availability probes every provider and returns name -> IsAvailable.
func (r *Registry[T]) Availability(ctx context.Context) map[string]bool {
	out := make(map[string]bool)
	for _, name := range r.Names() {
		p, _ := r.Get(name)
		out[name] = p.IsAvailable(ctx)
	}
	return out
}

// CloseAll closes every Closeable provider and returns the first error.
func (r *Registry[T]) CloseAll(ctx context.Context) error {
	var first error
	for _, name := range r.Names() {
		p, _ := r.Get(name)
		if err := Close(ctx, p); err != nil && first == nil {
			first = fmt.Errorf("close provider %s: %w", name, err)
		}
	}
	return first
}
