package resource

import (
	"github.com/bits-and-blooms/bitset"
)

// Table stores values of one kind in reusable slots.
type Table[T any] struct {
	kind      string
	values    []T
	used      *bitset.BitSet
	n         int
	observers []Observer
}

// NewTable creates an empty table. kind names the values in events.
func NewTable[T any](kind string) *Table[T] {
	return &Table[T]{
		kind: kind,
		used: bitset.New(0),
	}
}

// Kind returns the name given to NewTable.
func (t *Table[T]) Kind() string {
	return t.kind
}

// Insert stores v in the lowest free slot and returns its handle.
func (t *Table[T]) Insert(v T) Handle {
	idx, ok := t.used.NextClear(0)
	if !ok || int(idx) >= len(t.values) {
		idx = uint(len(t.values))
		t.values = append(t.values, v)
	} else {
		t.values[idx] = v
	}
	t.used.Set(idx)
	t.n++

	h := Handle(idx)
	t.notify(Event{Kind: t.kind, Handle: h, Type: EventCreated})
	return h
}

// Valid reports whether h refers to a live slot.
func (t *Table[T]) Valid(h Handle) bool {
	return h >= 0 && h < len(t.values) && t.used.Test(uint(h))
}

// Get returns the value at h.
func (t *Table[T]) Get(h Handle) (T, bool) {
	if !t.Valid(h) {
		var zero T
		return zero, false
	}
	return t.values[h], true
}

// Set replaces the value at a live handle.
func (t *Table[T]) Set(h Handle, v T) bool {
	if !t.Valid(h) {
		return false
	}
	t.values[h] = v
	return true
}

// Remove frees the slot at h and returns its former value.
func (t *Table[T]) Remove(h Handle) (T, bool) {
	var zero T
	if !t.Valid(h) {
		return zero, false
	}
	v := t.values[h]
	t.values[h] = zero
	t.used.Clear(uint(h))
	t.n--

	t.notify(Event{Kind: t.kind, Handle: h, Type: EventDropped})
	return v, true
}

// Len returns the number of live values.
func (t *Table[T]) Len() int {
	return t.n
}

// Cap returns the number of slots, live or free.
func (t *Table[T]) Cap() int {
	return len(t.values)
}

// Each calls fn for every live value in handle order until fn returns
// false.
func (t *Table[T]) Each(fn func(Handle, T) bool) {
	for i, ok := t.used.NextSet(0); ok && int(i) < len(t.values); i, ok = t.used.NextSet(i + 1) {
		if !fn(Handle(i), t.values[i]) {
			return
		}
	}
}

// Handles returns the live handles in ascending order.
func (t *Table[T]) Handles() []Handle {
	hs := make([]Handle, 0, t.n)
	t.Each(func(h Handle, _ T) bool {
		hs = append(hs, h)
		return true
	})
	return hs
}

// Clear removes every value, calling Drop on values that implement
// Dropper, and releases the slots.
func (t *Table[T]) Clear() {
	for _, h := range t.Handles() {
		v, _ := t.Remove(h)
		if d, ok := any(v).(Dropper); ok {
			d.Drop()
		}
	}
	t.values = nil
	t.used.ClearAll()
}

// Subscribe adds an observer.
func (t *Table[T]) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
}

func (t *Table[T]) notify(e Event) {
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
