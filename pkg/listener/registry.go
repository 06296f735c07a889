// Package listener provides a set of listeners that can be mutated while it
// is being iterated.
package listener

import "github.com/samber/lo"

// Registry holds a set of listeners with stable iteration.
//
// Listeners are compared with ==, so registering the same listener twice is
// a no-op. Iteration order is insertion order, but callers must not rely on
// ordering across distinct listeners.
//
// Storage is copy-on-write: ForEach captures the slice present at the start
// of the pass and mutations made during the pass build a new slice. A
// listener added during a pass is not visited by that pass. A listener
// removed during a pass is not visited afterwards, including when it removes
// itself. No other listener is skipped or visited twice.
//
// Registry is not safe for concurrent use. All access is expected to happen
// on one dispatcher goroutine.
type Registry[L comparable] struct {
	items []L
	// members maps each listener to the sequence number of its Add.
	members map[L]uint64
	seq     uint64
}

// New creates an empty registry.
func New[L comparable]() *Registry[L] {
	return &Registry[L]{members: make(map[L]uint64)}
}

// Add registers l. It returns true if l was not already present.
func (r *Registry[L]) Add(l L) bool {
	if r.members == nil {
		r.members = make(map[L]uint64)
	}
	if _, ok := r.members[l]; ok {
		return false
	}
	r.seq++
	r.members[l] = r.seq

	next := make([]L, len(r.items), len(r.items)+1)
	copy(next, r.items)
	r.items = append(next, l)
	return true
}

// Remove unregisters l. It returns false if l was not present.
func (r *Registry[L]) Remove(l L) bool {
	if _, ok := r.members[l]; !ok {
		return false
	}
	delete(r.members, l)
	r.items = lo.Without(r.items, l)
	return true
}

// Contains reports whether l is registered.
func (r *Registry[L]) Contains(l L) bool {
	_, ok := r.members[l]
	return ok
}

// Len returns the number of registered listeners.
func (r *Registry[L]) Len() int {
	return len(r.items)
}

// Clear removes every listener.
func (r *Registry[L]) Clear() {
	r.items = nil
	clear(r.members)
}

// ForEach calls fn for every listener in the snapshot taken when ForEach was
// called, skipping listeners removed since the pass began. A listener removed
// and added again during the pass counts as added and is skipped too.
func (r *Registry[L]) ForEach(fn func(L)) {
	items, limit := r.items, r.seq
	for _, l := range items {
		if seq, ok := r.members[l]; !ok || seq > limit {
			continue
		}
		fn(l)
	}
}
