package collector

import "sync"

// Registry routes externally delivered responses to armed collectors by
// key. The presentation layer registers a collector under the key it
// embeds in its prompt (a message ID, a custom ID prefix) and forwards
// incoming responses to Dispatch.
type Registry[T any] struct {
	mu         sync.RWMutex
	collectors map[string]*Collector[T]
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{collectors: make(map[string]*Collector[T])}
}

// Register arms routing for the given key. The caller must Unregister
// once the collector reaches a terminal state.
func (r *Registry[T]) Register(key string, c *Collector[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collectors[key] = c
}

// Unregister removes the routing entry for key.
func (r *Registry[T]) Unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.collectors, key)
}

// Dispatch forwards a response to the collector registered under key.
// It reports whether a collector existed and accepted the response.
func (r *Registry[T]) Dispatch(key string, response T) bool {
	r.mu.RLock()
	c, ok := r.collectors[key]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	return c.Deliver(response)
}

// CancelAll cancels every armed collector, e.g. during shutdown.
func (r *Registry[T]) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, c := range r.collectors {
		c.Cancel()
		delete(r.collectors, key)
	}
}
