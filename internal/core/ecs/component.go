package ecs

import "fmt"

// storage is the type-erased face of a Store, used by the Registry for
// bulk removal on destroy and by the borrow guard.
type storage interface {
	Name() string
	Len() int
	Has(id EntityID) bool
	erase(id EntityID)
	guard() *borrow
}

// Store is a sparse set of components of one type keyed by EntityID.
// Values live in a dense slice, so pointers handed out by Writer.GetMut stay
// valid until the next insert or remove on the same store.
//
// A Store is never used directly by callers: all reads and writes go through
// a Reader or Writer obtained from the World, which enforces the
// many-readers-or-one-writer rule.
type Store[T any] struct {
	name   string
	world  uint16
	sparse []int32 // slot index -> position in ids/values, -1 if absent
	ids    []EntityID
	values []T
	borrow borrow
}

func newStore[T any](world uint16) *Store[T] {
	var zero T
	s := &Store[T]{
		name:   fmt.Sprintf("%T", zero),
		world:  world,
		sparse: make([]int32, 0, 256),
		ids:    make([]EntityID, 0, 64),
		values: make([]T, 0, 64),
	}
	s.borrow.store = s.name
	return s
}

func (s *Store[T]) Name() string      { return s.name }
func (s *Store[T]) Len() int          { return len(s.ids) }
func (s *Store[T]) guard() *borrow    { return &s.borrow }
func (s *Store[T]) erase(id EntityID) { s.remove(id) }

func (s *Store[T]) Has(id EntityID) bool {
	return s.pos(id) >= 0
}

func (s *Store[T]) pos(id EntityID) int32 {
	if id.IsZero() {
		return -1
	}
	if id.World() != s.world {
		panic(fmt.Errorf("%w: %s in store %s of world %d", ErrForeignEntity, id, s.name, s.world))
	}
	idx := id.Index()
	if int(idx) >= len(s.sparse) {
		return -1
	}
	p := s.sparse[idx]
	if p < 0 || s.ids[p] != id {
		return -1
	}
	return p
}

// insert overwrites any existing value for id.
func (s *Store[T]) insert(id EntityID, v T) {
	if p := s.pos(id); p >= 0 {
		s.values[p] = v
		return
	}
	idx := int(id.Index())
	for len(s.sparse) <= idx {
		s.sparse = append(s.sparse, -1)
	}
	if old := s.sparse[idx]; old >= 0 {
		// A stale generation of this slot; it should have been erased on destroy.
		s.removeAt(old)
	}
	s.sparse[idx] = int32(len(s.ids))
	s.ids = append(s.ids, id)
	s.values = append(s.values, v)
}

func (s *Store[T]) remove(id EntityID) (T, bool) {
	p := s.pos(id)
	if p < 0 {
		var zero T
		return zero, false
	}
	v := s.values[p]
	s.removeAt(p)
	return v, true
}

// removeAt swaps the last element into p.
func (s *Store[T]) removeAt(p int32) {
	last := int32(len(s.ids) - 1)
	gone := s.ids[p]
	if p != last {
		moved := s.ids[last]
		s.ids[p] = moved
		s.values[p] = s.values[last]
		s.sparse[moved.Index()] = p
	}
	var zero T
	s.values[last] = zero
	s.ids = s.ids[:last]
	s.values = s.values[:last]
	s.sparse[gone.Index()] = -1
}

func (s *Store[T]) get(id EntityID) *T {
	p := s.pos(id)
	if p < 0 {
		return nil
	}
	return &s.values[p]
}
