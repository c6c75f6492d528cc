package ecs

import "fmt"

// Mode is the kind of access held on a store.
type Mode uint8

const (
	ModeRead Mode = iota + 1
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// borrow is the runtime guard on one store: any number of readers or exactly
// one writer. A violation panics; continuing would hand out aliased views.
type borrow struct {
	store   string
	readers int
	writer  bool
}

func (b *borrow) acquire(m Mode) {
	switch m {
	case ModeRead:
		if b.writer {
			panic(fmt.Errorf("%w: read of %s while it is written", ErrBorrowConflict, b.store))
		}
		b.readers++
	case ModeWrite:
		if b.writer {
			panic(fmt.Errorf("%w: second writer of %s", ErrBorrowConflict, b.store))
		}
		if b.readers > 0 {
			panic(fmt.Errorf("%w: write of %s while %d reader(s) hold it", ErrBorrowConflict, b.store, b.readers))
		}
		b.writer = true
	}
}

func (b *borrow) release(m Mode) {
	switch m {
	case ModeRead:
		if b.readers > 0 {
			b.readers--
		}
	case ModeWrite:
		b.writer = false
	}
}

func (b *borrow) free() bool { return !b.writer && b.readers == 0 }

// View is anything a join can iterate: a Reader or a Writer.
type View[T any] interface {
	view() (*Store[T], Mode)
}

// Reader is shared access to one store. Obtained from ReadStorage (release it
// when done) or from Read inside a system (the Runner releases it).
type Reader[T any] struct {
	store    *Store[T]
	mode     Mode
	owned    bool
	released bool
}

// Writer is exclusive access to one store. It can do everything a Reader can.
type Writer[T any] struct {
	Reader[T]
}

func newReader[T any](s *Store[T], owned bool) *Reader[T] {
	if owned {
		s.borrow.acquire(ModeRead)
	}
	return &Reader[T]{store: s, mode: ModeRead, owned: owned}
}

func newWriter[T any](s *Store[T], owned bool) *Writer[T] {
	if owned {
		s.borrow.acquire(ModeWrite)
	}
	return &Writer[T]{Reader[T]{store: s, mode: ModeWrite, owned: owned}}
}

func (r *Reader[T]) live() *Store[T] {
	if r.released {
		panic(fmt.Errorf("%w: %s used after release", ErrBorrowConflict, r.store.name))
	}
	return r.store
}

func (r *Reader[T]) view() (*Store[T], Mode) { return r.live(), r.mode }

// invalidate marks a handle lent by SystemData as dead once the system's
// borrow is returned.
func (r *Reader[T]) invalidate() { r.released = true }

// Release gives the borrow back. Safe to call more than once.
func (r *Reader[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.owned {
		r.store.borrow.release(r.mode)
	}
}

// Get returns a copy of the component of id.
func (r *Reader[T]) Get(id EntityID) (T, bool) {
	if p := r.live().get(id); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

func (r *Reader[T]) Has(id EntityID) bool { return r.live().Has(id) }
func (r *Reader[T]) Len() int             { return r.live().Len() }
func (r *Reader[T]) Name() string         { return r.store.name }

// Each visits every component in ascending entity-index order.
func (r *Reader[T]) Each(fn func(EntityID, T)) {
	s := r.live()
	for _, id := range sortedIDs(s) {
		if p := s.get(id); p != nil {
			fn(id, *p)
		}
	}
}

// Insert attaches v to id, replacing any previous value.
func (w *Writer[T]) Insert(id EntityID, v T) { w.live().insert(id, v) }

// Remove detaches and returns the component of id, if it had one.
func (w *Writer[T]) Remove(id EntityID) (T, bool) { return w.live().remove(id) }

// GetMut returns a pointer into the store. It is invalidated by the next
// Insert or Remove on the same store.
func (w *Writer[T]) GetMut(id EntityID) (*T, bool) {
	p := w.live().get(id)
	return p, p != nil
}

// Access is a store requirement declared by a system ahead of running.
type Access struct {
	key  any
	name string
	mode Mode
}

func Reads[T any]() Access  { return Access{key: typeKey[T]{}, name: typeName[T](), mode: ModeRead} }
func Writes[T any]() Access { return Access{key: typeKey[T]{}, name: typeName[T](), mode: ModeWrite} }

func (a Access) Mode() Mode     { return a.mode }
func (a Access) String() string { return a.mode.String() + " " + a.name }

type held struct {
	guard *borrow
	mode  Mode
}

// lent is a handle given out by Read or Write.
type lent interface{ invalidate() }

// SystemData is the set of borrows a system holds while it runs. Systems
// reach stores only through Read and Write, which check the declaration.
// Handles obtained that way die with the SystemData: using one after Release
// panics with ErrBorrowConflict.
type SystemData struct {
	world   *World
	granted map[any]Mode
	held    []held
	handles []lent
}

// Borrow acquires every declared access or panics. On panic nothing stays held.
func (w *World) Borrow(accesses ...Access) (d *SystemData) {
	d = &SystemData{
		world:   w,
		granted: make(map[any]Mode, len(accesses)),
		held:    make([]held, 0, len(accesses)),
	}
	defer func() {
		if r := recover(); r != nil {
			d.Release()
			panic(r)
		}
	}()
	for _, a := range accesses {
		s := w.registry.byKey(a.key, a.name)
		g := s.guard()
		g.acquire(a.mode)
		d.held = append(d.held, held{guard: g, mode: a.mode})
		if a.mode > d.granted[a.key] {
			d.granted[a.key] = a.mode
		}
	}
	return d
}

// Release returns all borrows in reverse order.
func (d *SystemData) Release() {
	for i := len(d.held) - 1; i >= 0; i-- {
		d.held[i].guard.release(d.held[i].mode)
	}
	d.held = d.held[:0]
	d.granted = map[any]Mode{}
	for _, h := range d.handles {
		h.invalidate()
	}
	d.handles = d.handles[:0]
}

// Read returns the declared store of T. Write access implies read access.
func Read[T any](d *SystemData) *Reader[T] {
	if _, ok := d.granted[typeKey[T]{}]; !ok {
		panic(fmt.Errorf("%w: read %s", ErrUndeclaredAccess, typeName[T]()))
	}
	r := newReader(lookup[T](d.world.registry), false)
	d.handles = append(d.handles, r)
	return r
}

// Write returns the store of T, which must have been declared with Writes.
func Write[T any](d *SystemData) *Writer[T] {
	if d.granted[typeKey[T]{}] != ModeWrite {
		panic(fmt.Errorf("%w: write %s", ErrUndeclaredAccess, typeName[T]()))
	}
	wr := newWriter(lookup[T](d.world.registry), false)
	d.handles = append(d.handles, wr)
	return wr
}

// CreateEntity starts a deferred entity: the id is reserved at Build, the
// components appear at the next Maintain.
func (d *SystemData) CreateEntity() *Builder {
	return &Builder{world: d.world, deferred: true}
}

// QueueDestroy defers destruction of id to the next Maintain.
func (d *SystemData) QueueDestroy(id EntityID) { d.world.QueueDestroy(id) }

func (d *SystemData) Alive(id EntityID) bool { return d.world.Alive(id) }

// ReadStorage borrows the store of T for shared access outside systems.
func ReadStorage[T any](w *World) *Reader[T] {
	return newReader(lookup[T](w.registry), true)
}

// WriteStorage borrows the store of T for exclusive access outside systems.
func WriteStorage[T any](w *World) *Writer[T] {
	return newWriter(lookup[T](w.registry), true)
}
