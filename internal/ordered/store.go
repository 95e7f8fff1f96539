package ordered

import "slices"

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	Inserted ChangeKind = "inserted"
	Removed  ChangeKind = "removed"
	Moved    ChangeKind = "moved"
)

// Change is delivered to listeners after a successful mutation.
// For Moved, Index is the source and To the destination; otherwise To equals Index.
type Change[T comparable] struct {
	Kind  ChangeKind
	Index int
	To    int
	Item  T
}

// Store is an ordered list of items addressed by position.
type Store[T comparable] struct {
	items     []T
	listeners map[int]func(Change[T])
	nextID    int
}

// New returns a store seeded with the given items in order.
func New[T comparable](seed ...T) *Store[T] {
	return &Store[T]{items: slices.Clone(seed)}
}

// Count returns the number of items.
func (s *Store[T]) Count() int {
	return len(s.items)
}

// ItemAt returns the item at index.
func (s *Store[T]) ItemAt(index int) (T, error) {
	if err := checkIndex("item at", index, len(s.items)); err != nil {
		var zero T
		return zero, err
	}
	return s.items[index], nil
}

// Items returns a copy of the items in order.
func (s *Store[T]) Items() []T {
	return slices.Clone(s.items)
}

// InsertAt places item at index, shifting later items back by one.
// index may equal Count to append.
func (s *Store[T]) InsertAt(index int, item T) error {
	if index < 0 || index > len(s.items) {
		return &IndexError{Op: "insert at", Index: index, Len: len(s.items) + 1}
	}
	s.items = slices.Insert(s.items, index, item)
	s.notify(Change[T]{Kind: Inserted, Index: index, To: index, Item: item})
	return nil
}

// RemoveAt deletes and returns the item at index, shifting later items forward by one.
func (s *Store[T]) RemoveAt(index int) (T, error) {
	if err := checkIndex("remove at", index, len(s.items)); err != nil {
		var zero T
		return zero, err
	}
	item := s.items[index]
	s.items = slices.Delete(s.items, index, index+1)
	s.notify(Change[T]{Kind: Removed, Index: index, To: index, Item: item})
	return item, nil
}

// MoveItem relocates the item at src so that it ends up at dst. Items between
// the two positions shift by one to close the gap. src == dst is a no-op and
// does not notify listeners.
func (s *Store[T]) MoveItem(src, dst int) error {
	moved, err := Move(s.items, src, dst)
	if err != nil {
		return err
	}
	if src == dst {
		return nil
	}
	s.items = moved
	s.notify(Change[T]{Kind: Moved, Index: src, To: dst, Item: moved[dst]})
	return nil
}

// Subscribe registers fn to run after every successful mutation. The returned
// function removes it.
func (s *Store[T]) Subscribe(fn func(Change[T])) (cancel func()) {
	if s.listeners == nil {
		s.listeners = make(map[int]func(Change[T]))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Store[T]) notify(c Change[T]) {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn(c)
		}
	}
}

// Move returns a copy of items with the element at src relocated to dst, using
// remove-then-insert against the shortened list. items is not modified.
func Move[T any](items []T, src, dst int) ([]T, error) {
	if err := checkIndex("move from", src, len(items)); err != nil {
		return nil, err
	}
	if err := checkIndex("move to", dst, len(items)); err != nil {
		return nil, err
	}
	out := slices.Clone(items)
	if src == dst {
		return out, nil
	}
	item := out[src]
	out = slices.Delete(out, src, src+1)
	return slices.Insert(out, dst, item), nil
}
