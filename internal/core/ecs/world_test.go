package ecs

import (
	"errors"
	"slices"
	"testing"
)

func TestBuilderAttachesAll(t *testing.T) {
	w := newTestWorld()
	e := w.CreateEntity().
		With(Attach(pos{X: 40, Y: 25})).
		With(Attach(marker{})).
		Build()
	if !w.Alive(e) {
		t.Fatal("built entity not alive")
	}
	ps := ReadStorage[pos](w)
	ms := ReadStorage[marker](w)
	vs := ReadStorage[vel](w)
	defer ps.Release()
	defer ms.Release()
	defer vs.Release()
	if got, ok := ps.Get(e); !ok || got != (pos{X: 40, Y: 25}) {
		t.Errorf("pos = %+v,%v", got, ok)
	}
	if !ms.Has(e) {
		t.Error("marker missing")
	}
	if vs.Has(e) {
		t.Error("unexpected vel")
	}
}

func TestBuilderLastAttachmentWins(t *testing.T) {
	w := newTestWorld()
	e := w.CreateEntity().With(Attach(pos{X: 1})).With(Attach(pos{X: 2})).Build()
	ps := ReadStorage[pos](w)
	defer ps.Release()
	if got, _ := ps.Get(e); got.X != 2 || ps.Len() != 1 {
		t.Errorf("pos = %+v, len %d", got, ps.Len())
	}
}

func TestBuilderReuse(t *testing.T) {
	w := newTestWorld()
	b := w.CreateEntity()
	b.Build()
	defer func() {
		if r := recover(); r == nil || !errors.Is(r.(error), errBuilderReused) {
			t.Fatalf("recovered %v", r)
		}
	}()
	b.Build()
}

func TestQueueDestroyIsDeferred(t *testing.T) {
	w := newTestWorld()
	e := w.CreateEntity().With(Attach(pos{X: 3})).With(Attach(vel{DX: 1})).Build()

	w.QueueDestroy(e)
	if !w.Alive(e) {
		t.Fatal("entity died before maintain")
	}
	ps := ReadStorage[pos](w)
	if got, ok := ps.Get(e); !ok || got.X != 3 {
		t.Errorf("component gone before maintain: %+v,%v", got, ok)
	}
	ps.Release()

	w.Maintain()
	if w.Alive(e) {
		t.Error("entity alive after maintain")
	}
	ps = ReadStorage[pos](w)
	vs := ReadStorage[vel](w)
	defer ps.Release()
	defer vs.Release()
	if ps.Has(e) || vs.Has(e) {
		t.Error("orphaned component after maintain")
	}
	if c, d := w.Pending(); c != 0 || d != 0 {
		t.Errorf("queues not cleared: %d/%d", c, d)
	}
}

func TestQueueDestroyIdempotent(t *testing.T) {
	w := newTestWorld()
	keep := w.CreateEntity().With(Attach(pos{X: 7})).Build()
	gone := w.CreateEntity().With(Attach(pos{X: 8})).Build()
	w.DestroyEntity(gone)

	w.QueueDestroy(gone)
	w.QueueDestroy(gone)
	w.QueueDestroy(NewEntityID(keep.World(), 500, 0))
	w.QueueDestroy(0)
	w.Maintain()

	if !w.Alive(keep) || w.Count() != 1 {
		t.Fatalf("unrelated entity affected: alive=%v count=%d", w.Alive(keep), w.Count())
	}
	ps := ReadStorage[pos](w)
	defer ps.Release()
	if got, _ := ps.Get(keep); got.X != 7 || ps.Len() != 1 {
		t.Errorf("store changed: %+v len=%d", got, ps.Len())
	}
}

func TestQueueDestroyTwiceSameTick(t *testing.T) {
	w := newTestWorld()
	e := w.CreateEntity().With(Attach(pos{})).Build()
	var destroyed []EntityID
	w.OnMaintain(func(_, d []EntityID) { destroyed = append(destroyed, d...) })
	w.QueueDestroy(e)
	w.QueueDestroy(e)
	w.Maintain()
	if len(destroyed) != 1 {
		t.Errorf("destroyed reported %d times", len(destroyed))
	}
}

func TestQueueDestroyForeign(t *testing.T) {
	w := newTestWorld()
	foreign := NewWorld().CreateEntity().Build()
	expectPanic(t, ErrForeignEntity, func() { w.QueueDestroy(foreign) })
	expectPanic(t, ErrForeignEntity, func() { w.DestroyEntity(foreign) })
}

func TestDeferredCreation(t *testing.T) {
	w := newTestWorld()
	d := w.Borrow(Reads[pos]())
	id := d.CreateEntity().With(Attach(pos{X: 11})).With(Attach(vel{})).Build()
	if Read[pos](d).Has(id) {
		t.Error("deferred component visible before maintain")
	}
	d.Release()

	var spawned []EntityID
	w.OnMaintain(func(s, _ []EntityID) { spawned = append(spawned, s...) })
	w.Maintain()

	if !slices.Equal(spawned, []EntityID{id}) {
		t.Errorf("spawned %v", spawned)
	}
	ps := ReadStorage[pos](w)
	defer ps.Release()
	if got, ok := ps.Get(id); !ok || got.X != 11 {
		t.Errorf("pos = %+v,%v", got, ok)
	}
}

func TestDeferredCreationOverwritesEarlyInsert(t *testing.T) {
	w := newTestWorld()
	d := w.Borrow(Writes[pos](), Writes[vel]())
	id := d.CreateEntity().With(Attach(pos{X: 1})).Build()
	if !w.Alive(id) {
		t.Fatal("reserved id not alive")
	}
	Write[pos](d).Insert(id, pos{X: 50})
	Write[vel](d).Insert(id, vel{DX: 3})
	d.Release()
	w.Maintain()

	ps := ReadStorage[pos](w)
	vs := ReadStorage[vel](w)
	defer ps.Release()
	defer vs.Release()
	if got, _ := ps.Get(id); got.X != 1 {
		t.Errorf("pos X = %d, want the builder's 1", got.X)
	}
	if got, ok := vs.Get(id); !ok || got.DX != 3 {
		t.Errorf("vel = %+v,%v, want the early insert kept", got, ok)
	}
}

func TestDeferredCreateThenDestroySameTick(t *testing.T) {
	w := newTestWorld()
	d := w.Borrow()
	id := d.CreateEntity().With(Attach(pos{})).Build()
	d.QueueDestroy(id)
	d.Release()
	w.Maintain()

	if w.Alive(id) {
		t.Error("entity survived")
	}
	ps := ReadStorage[pos](w)
	defer ps.Release()
	if ps.Len() != 0 {
		t.Errorf("store has %d entries", ps.Len())
	}
}

func TestMaintainWhileBorrowed(t *testing.T) {
	w := newTestWorld()
	e := w.CreateEntity().With(Attach(pos{})).Build()
	w.QueueDestroy(e)
	r := ReadStorage[vel](w)
	expectPanic(t, ErrBorrowedDuringMaintain, func() { w.Maintain() })
	r.Release()
	w.Maintain()
	if w.Alive(e) {
		t.Error("entity alive")
	}
}

func TestMaintainNoopWithEmptyQueues(t *testing.T) {
	w := newTestWorld()
	calls := 0
	w.OnMaintain(func(_, _ []EntityID) { calls++ })
	r := ReadStorage[pos](w)
	w.Maintain() // nothing queued: no borrow check, no observers
	r.Release()
	if calls != 0 {
		t.Errorf("observer called %d times", calls)
	}
}

func TestUniquenessAcrossOperations(t *testing.T) {
	w := newTestWorld()
	var ids []EntityID
	for i := 0; i < 20; i++ {
		ids = append(ids, w.CreateEntity().With(Attach(pos{X: i})).Build())
	}
	for i, id := range ids {
		if i%3 == 0 {
			w.QueueDestroy(id)
		}
	}
	w.Maintain()
	for i := 0; i < 10; i++ {
		w.CreateEntity().With(Attach(pos{X: 100 + i})).Build()
	}
	ps := WriteStorage[pos](w)
	defer ps.Release()
	for _, id := range ids {
		if w.Alive(id) {
			ps.Insert(id, pos{X: -1})
			ps.Insert(id, pos{X: -2})
		}
	}

	seen := map[EntityID]int{}
	ps.Each(func(id EntityID, _ pos) { seen[id]++ })
	for id, n := range seen {
		if n != 1 {
			t.Errorf("%s stored %d times", id, n)
		}
		if !w.Alive(id) {
			t.Errorf("component for dead entity %s", id)
		}
	}
	if len(seen) != w.Count() {
		t.Errorf("store has %d entries, %d alive", len(seen), w.Count())
	}
}
