package ecs

import "fmt"

// typeKey[T]{} is the map key for the store of T. Distinct instantiations are
// distinct types, so no reflection is needed to index stores by type.
type typeKey[T any] struct{}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// Registry tracks all component stores of a World, indexed by component type,
// and supports bulk cleanup on entity destroy.
type Registry struct {
	world  uint16
	byType map[any]storage
	stores []storage
}

func NewRegistry(world uint16) *Registry {
	return &Registry{
		world:  world,
		byType: make(map[any]storage, 16),
		stores: make([]storage, 0, 16),
	}
}

// Register creates the store for component type T. Registering a type twice
// keeps the first store.
func Register[T any](w *World) {
	r := w.registry
	if _, ok := r.byType[typeKey[T]{}]; ok {
		return
	}
	s := newStore[T](r.world)
	r.byType[typeKey[T]{}] = s
	r.stores = append(r.stores, s)
}

// Registered reports whether T has a store in w.
func Registered[T any](w *World) bool {
	_, ok := w.registry.byType[typeKey[T]{}]
	return ok
}

func lookup[T any](r *Registry) *Store[T] {
	s, ok := r.byType[typeKey[T]{}]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnregistered, typeName[T]()))
	}
	return s.(*Store[T])
}

func (r *Registry) byKey(key any, name string) storage {
	s, ok := r.byType[key]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnregistered, name))
	}
	return s
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.erase(id)
	}
}

// Len returns the number of registered stores.
func (r *Registry) Len() int { return len(r.stores) }

// Names lists registered component types in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.stores))
	for i, s := range r.stores {
		names[i] = s.Name()
	}
	return names
}

// busy returns the first store that is currently borrowed, or nil.
func (r *Registry) busy() storage {
	for _, s := range r.stores {
		if !s.guard().free() {
			return s
		}
	}
	return nil
}
