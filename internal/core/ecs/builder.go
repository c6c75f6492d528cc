package ecs

import (
	"errors"
	"fmt"
)

var errBuilderReused = errors.New("ecs: builder already built")

// Attachment is one component value waiting in a Builder.
type Attachment interface {
	bind(r *Registry) bound
}

// Attach wraps a component value for Builder.With.
func Attach[T any](v T) Attachment { return attachment[T]{value: v} }

type attachment[T any] struct{ value T }

func (a attachment[T]) bind(r *Registry) bound {
	s := lookup[T](r)
	return bound{store: s, insert: func(id EntityID) { s.insert(id, a.value) }}
}

// bound is an attachment resolved against a concrete store.
type bound struct {
	store  storage
	insert func(EntityID)
}

type pendingEntity struct {
	id    EntityID
	bound []bound
}

// Builder accumulates components and commits them together in Build.
//
//	id := w.CreateEntity().
//		With(ecs.Attach(Position{X: 40, Y: 25})).
//		With(ecs.Attach(Player{})).
//		Build()
type Builder struct {
	world    *World
	attached []Attachment
	deferred bool
	built    bool
}

func (b *Builder) With(a Attachment) *Builder {
	b.attached = append(b.attached, a)
	return b
}

// Build allocates the entity and inserts all attached components. Every
// component type is resolved first, so an unregistered type panics before
// anything is allocated. Later attachments of the same type win.
//
// A builder from World.CreateEntity commits now and needs every involved
// store to be free. A builder from SystemData.CreateEntity reserves the id
// now and commits at the next Maintain. The reserved id is Alive at once; a
// value a system inserts for it before Maintain is overwritten by the
// builder's attachment of the same type.
func (b *Builder) Build() EntityID {
	if b.built {
		panic(errBuilderReused)
	}
	b.built = true
	w := b.world

	bs := make([]bound, len(b.attached))
	for i, a := range b.attached {
		bs[i] = a.bind(w.registry)
	}

	if b.deferred {
		id := w.pool.Create()
		w.pending = append(w.pending, pendingEntity{id: id, bound: bs})
		return id
	}

	for _, x := range bs {
		if !x.store.guard().free() {
			panic(fmt.Errorf("%w: build while %s is borrowed", ErrBorrowConflict, x.store.Name()))
		}
	}
	id := w.pool.Create()
	for _, x := range bs {
		x.insert(id)
	}
	return id
}
