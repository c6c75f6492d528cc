package ecs

import (
	"fmt"
	"iter"
	"slices"
)

// Row2 is one result of Join2.
type Row2[A, B any] struct {
	ID EntityID
	A  *A
	B  *B
}

// Row3 is one result of Join3.
type Row3[A, B, C any] struct {
	ID EntityID
	A  *A
	B  *B
	C  *C
}

// sortedIDs snapshots the keys of s in ascending slot order. Joins iterate the
// snapshot, so results never depend on insertion order.
func sortedIDs[T any](s *Store[T]) []EntityID {
	ids := slices.Clone(s.ids)
	slices.SortFunc(ids, func(a, b EntityID) int {
		switch {
		case a.Index() < b.Index():
			return -1
		case a.Index() > b.Index():
			return 1
		}
		return 0
	})
	return ids
}

func checkAlias(name string, modes ...Mode) {
	for _, m := range modes {
		if m == ModeWrite {
			panic(fmt.Errorf("%w: %s joined with itself while written", ErrBorrowConflict, name))
		}
	}
}

// Join2 yields every entity present in both stores, in ascending slot order.
// Membership is re-checked per step, so entities removed through a Writer
// while the join runs are skipped. Each call computes the result afresh.
func Join2[A, B any](a View[A], b View[B]) iter.Seq[Row2[A, B]] {
	sa, ma := a.view()
	sb, mb := b.view()
	if any(sa) == any(sb) {
		checkAlias(sa.name, ma, mb)
	}
	return func(yield func(Row2[A, B]) bool) {
		var driver []EntityID
		if sa.Len() <= sb.Len() {
			driver = sortedIDs(sa)
		} else {
			driver = sortedIDs(sb)
		}
		for _, id := range driver {
			pa := sa.get(id)
			if pa == nil {
				continue
			}
			pb := sb.get(id)
			if pb == nil {
				continue
			}
			if !yield(Row2[A, B]{ID: id, A: pa, B: pb}) {
				return
			}
		}
	}
}

// Join3 yields every entity present in all three stores.
func Join3[A, B, C any](a View[A], b View[B], c View[C]) iter.Seq[Row3[A, B, C]] {
	sa, ma := a.view()
	sb, mb := b.view()
	sc, mc := c.view()
	if any(sa) == any(sb) {
		checkAlias(sa.name, ma, mb)
	}
	if any(sa) == any(sc) {
		checkAlias(sa.name, ma, mc)
	}
	if any(sb) == any(sc) {
		checkAlias(sb.name, mb, mc)
	}
	return func(yield func(Row3[A, B, C]) bool) {
		// Iterate the smallest store
		driver := sortedIDs(sa)
		if sb.Len() < len(driver) {
			driver = sortedIDs(sb)
		}
		if sc.Len() < len(driver) {
			driver = sortedIDs(sc)
		}
		for _, id := range driver {
			pa := sa.get(id)
			if pa == nil {
				continue
			}
			pb := sb.get(id)
			if pb == nil {
				continue
			}
			pc := sc.get(id)
			if pc == nil {
				continue
			}
			if !yield(Row3[A, B, C]{ID: id, A: pa, B: pb, C: pc}) {
				return
			}
		}
	}
}

// Each2 iterates over entities that have both component A and B.
func Each2[A, B any](a View[A], b View[B], fn func(EntityID, *A, *B)) {
	for row := range Join2(a, b) {
		fn(row.ID, row.A, row.B)
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](a View[A], b View[B], c View[C], fn func(EntityID, *A, *B, *C)) {
	for row := range Join3(a, b, c) {
		fn(row.ID, row.A, row.B, row.C)
	}
}
