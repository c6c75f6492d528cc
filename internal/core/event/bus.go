package event

import "sync"

// key[T]{} identifies the event type T without reflection.
type key[T any] struct{}

// Bus is a double-buffered event bus. Events emitted in tick N are readable
// in tick N+1. SwapBuffers() is called at tick start before DispatchAll().
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    map[any][]any
	back     map[any][]any
	handlers map[any][]func(any)
	known    map[any]bool
	kinds    []any // event types in first-emit order, for stable dispatch
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[any][]any),
		back:     make(map[any][]any),
		handlers: make(map[any][]func(any)),
		known:    make(map[any]bool),
	}
}

// Emit queues an event into the back buffer (will be readable next tick).
func Emit[T any](b *Bus, event T) {
	k := key[T]{}
	if !b.known[k] {
		b.known[k] = true
		b.kinds = append(b.kinds, k)
	}
	b.back[k] = append(b.back[k], event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := key[T]{}
	b.handlers[k] = append(b.handlers[k], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers all front-buffer events to their subscribed handlers,
// grouped by event type in the order the types were first emitted.
func (b *Bus) DispatchAll() int {
	n := 0
	for _, k := range b.kinds {
		events := b.front[k]
		handlers := b.handlers[k]
		for _, ev := range events {
			for _, h := range handlers {
				h(ev)
			}
		}
		n += len(events)
	}
	return n
}

// Pending returns the number of events waiting in the back buffer.
func (b *Bus) Pending() int {
	n := 0
	for _, events := range b.back {
		n += len(events)
	}
	return n
}
