// Package keylock provides blocking, in-process mutual exclusion scoped to a
// string key. The booking engine uses it to serialize the capacity read and
// the commit for one activity (and the entitlement read for one user) while
// letting unrelated activities proceed in parallel.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Registry hands out one mutex per key. Entries are reclaimed once the last
// holder releases, so the map does not grow with the key space.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{
		locks: make(map[string]*entry),
	}
}

// Lock blocks until the key's mutex is held and returns the release func.
// The release func must be called exactly once.
func (r *Registry) Lock(key string) (release func()) {
	r.mu.Lock()
	e, ok := r.locks[key]
	if !ok {
		e = &entry{}
		r.locks[key] = e
	}
	e.refs++
	r.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			r.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(r.locks, key)
			}
			r.mu.Unlock()
		})
	}
}
