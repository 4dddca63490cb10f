package kala

import "reflect"

// Entry is implemented by every object stored in a Registry.
type Entry interface {
	ID() uint32
}

// WindowOwned is implemented by entries that belong to a window. Registries of
// such entries support the window-scoped queries.
type WindowOwned interface {
	WindowID() uint32
}

// Disposer is implemented by entries with cleanup logic. Dispose runs after
// the entry has left the registry.
type Disposer interface {
	Dispose()
}

// Registry is an ID-keyed owning store with a parallel list for iteration in
// insertion order. ID 0 is never valid. A Registry is not safe for concurrent
// use; it is mutated only from the frame loop.
type Registry[T Entry] struct {
	created map[uint32]T
	runtime []T
}

// NewRegistry creates an empty registry.
func NewRegistry[T Entry]() *Registry[T] {
	return &Registry[T]{created: make(map[uint32]T)}
}

// Add inserts v under id. It reports false, leaving the registry untouched,
// if id is 0, v is nil or id is already present.
func (r *Registry[T]) Add(id uint32, v T) bool {
	if id == 0 || isNil(v) {
		return false
	}
	if _, ok := r.created[id]; ok {
		return false
	}
	r.created[id] = v
	r.runtime = append(r.runtime, v)
	return true
}

// Get returns the entry stored under id.
func (r *Registry[T]) Get(id uint32) (T, bool) {
	v, ok := r.created[id]
	return v, ok
}

// Has reports whether id is present.
func (r *Registry[T]) Has(id uint32) bool {
	_, ok := r.created[id]
	return ok
}

// Len returns the number of entries.
func (r *Registry[T]) Len() int {
	return len(r.runtime)
}

// All returns the iteration list. The returned slice MUST NOT be mutated by the
// caller and is invalidated by the next removal.
func (r *Registry[T]) All() []T {
	return r.runtime
}

// Remove deletes the entry stored under id and disposes it.
// Reports false if id is not present.
func (r *Registry[T]) Remove(id uint32) bool {
	v, ok := r.created[id]
	if !ok {
		return false
	}
	r.detach(id, v)
	dispose(v)
	return true
}

// RemoveEntry deletes v, located by identity rather than by ID, and disposes it.
// Reports false if v is not stored in this registry.
func (r *Registry[T]) RemoveEntry(v T) bool {
	if isNil(v) {
		return false
	}
	for id, c := range r.created {
		if any(c) == any(v) {
			r.detach(id, c)
			dispose(c)
			return true
		}
	}
	return false
}

// IsOwner reports whether the entry stored under id belongs to windowID.
// Always false for entries that do not implement WindowOwned.
func (r *Registry[T]) IsOwner(windowID, id uint32) bool {
	v, ok := r.created[id]
	if !ok {
		return false
	}
	owned, ok := any(v).(WindowOwned)
	return ok && owned.WindowID() == windowID
}

// WindowContent returns every entry owned by windowID in insertion order.
// Entries that do not implement WindowOwned are never returned.
func (r *Registry[T]) WindowContent(windowID uint32) []T {
	var out []T
	for _, v := range r.runtime {
		if owned, ok := any(v).(WindowOwned); ok && owned.WindowID() == windowID {
			out = append(out, v)
		}
	}
	return out
}

// RemoveWindowContent removes and disposes every entry owned by windowID.
// Returns the number of entries removed.
func (r *Registry[T]) RemoveWindowContent(windowID uint32) int {
	victims := r.WindowContent(windowID)
	removed := 0
	for _, v := range victims {
		// A previous Dispose may already have removed this entry.
		if !r.Has(v.ID()) {
			continue
		}
		r.detach(v.ID(), v)
		dispose(v)
		removed++
	}
	return removed
}

// Clear removes and disposes every entry.
func (r *Registry[T]) Clear() {
	victims := r.runtime
	r.created = make(map[uint32]T)
	r.runtime = nil
	for _, v := range victims {
		dispose(v)
	}
}

// detach removes id from both containers without disposing.
func (r *Registry[T]) detach(id uint32, v T) {
	delete(r.created, id)
	for i, c := range r.runtime {
		if any(c) == any(v) {
			copy(r.runtime[i:], r.runtime[i+1:])
			var zero T
			r.runtime[len(r.runtime)-1] = zero
			r.runtime = r.runtime[:len(r.runtime)-1]
			return
		}
	}
}

func dispose[T Entry](v T) {
	if d, ok := any(v).(Disposer); ok {
		d.Dispose()
	}
}

// isNil reports whether v is a nil interface or a typed nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
