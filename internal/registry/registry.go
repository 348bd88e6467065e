package registry

import (
	"sync"

	"MemeFlow/internal/domain/models"
)

// Registry maps instrument identity to its latest watch snapshot. An entry
// exists exactly while the user holds an active watch; membership is local
// state, only replaced wholesale by the server's init frame. Listing order
// follows insertion so the watch panel stays layout-stable across updates.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*models.WatchEntry
	order   []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*models.WatchEntry)}
}

// Upsert inserts or wholesale-replaces the entry for its identity.
func (r *Registry) Upsert(e models.WatchEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertLocked(e)
}

func (r *Registry) upsertLocked(e models.WatchEntry) {
	key := e.Identity().Key()
	if _, ok := r.entries[key]; !ok {
		r.order = append(r.order, key)
	}
	cp := e
	r.entries[key] = &cp
}

// Merge shallow-unions the update onto the entry for key. It reports
// whether the update was applied; an unknown key is a silent no-op so a
// stats push racing an unwatch can never resurrect the entry.
func (r *Registry) Merge(key string, u models.StatsUpdate) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return false
	}
	u.ApplyTo(e)
	return true
}

// Remove deletes the entry for the identity, if present.
func (r *Registry) Remove(id models.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.Key()
	if _, ok := r.entries[key]; !ok {
		return
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// ReplaceAll swaps the whole registry for the server-provided list,
// preserving the list's order. Used on session init.
func (r *Registry) ReplaceAll(entries []models.WatchEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]*models.WatchEntry, len(entries))
	r.order = r.order[:0]
	for _, e := range entries {
		r.upsertLocked(e)
	}
}

// Get returns a copy of the entry for key.
func (r *Registry) Get(key string) (models.WatchEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return models.WatchEntry{}, false
	}
	return *e, true
}

// Watching reports whether the identity has an active watch.
func (r *Registry) Watching(id models.Identity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id.Key()]
	return ok
}

// List returns copies of all entries in insertion order.
func (r *Registry) List() []models.WatchEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.WatchEntry, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, *r.entries[key])
	}
	return out
}

// Len returns the number of active watches.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
