package window

import "sync"

// Registry maps native window identifiers to their dispatchers. A window
// procedure is a single callback shared by every window of a class, so it
// looks the target up here on each message.
type Registry struct {
	mu      sync.Mutex
	entries map[uintptr]*Dispatcher

	// pending holds dispatchers whose window does not exist yet.
	pending map[uintptr]*Dispatcher
	nextKey uintptr
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[uintptr]*Dispatcher),
		pending: make(map[uintptr]*Dispatcher),
	}
}

// Reserve allocates a key that can travel through the native creation
// parameters before the window identifier is known.
func (r *Registry) Reserve(d *Dispatcher) uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextKey++
	key := r.nextKey
	r.pending[key] = d
	return key
}

// Bind registers the dispatcher reserved under key for window id.
func (r *Registry) Bind(key, id uintptr) (*Dispatcher, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.pending[key]
	if !ok {
		return nil, false
	}
	delete(r.pending, key)
	r.entries[id] = d
	return d, true
}

// Release drops a reservation that was never bound.
func (r *Registry) Release(key uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, key)
}

func (r *Registry) Lookup(id uintptr) (*Dispatcher, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.entries[id]
	return d, ok
}

func (r *Registry) Unregister(id uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Len returns the number of live windows.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
