package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and the deferred creation/destruction queues flushed by Maintain
// once per tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	pending      []pendingEntity
	destroyQueue []EntityID
	observers    []func(spawned, destroyed []EntityID)
	log          *zap.Logger
}

type Option func(*World)

// WithLogger sets the logger used for maintain diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) { w.log = log }
}

func NewWorld(opts ...Option) *World {
	tag := nextWorldTag()
	w := &World{
		pool:         NewEntityPool(tag),
		registry:     NewRegistry(tag),
		pending:      make([]pendingEntity, 0, 16),
		destroyQueue: make([]EntityID, 0, 64),
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// Alive reports whether id is live. Deferred creations are live from Build on.
func (w *World) Alive(id EntityID) bool { return w.pool.Alive(id) }

// Count returns the number of live entities.
func (w *World) Count() int { return w.pool.Len() }

// CreateEntity starts an entity that is committed immediately by Build.
func (w *World) CreateEntity() *Builder {
	return &Builder{world: w}
}

// DestroyEntity removes id and all its components right away. It must not be
// called while any store is borrowed; systems use QueueDestroy instead.
// Dead or never-issued ids are ignored.
func (w *World) DestroyEntity(id EntityID) {
	if id.IsZero() || !w.pool.Alive(id) {
		return
	}
	w.assertIdle("destroy " + id.String())
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// QueueDestroy marks id for destruction at the next Maintain. The entity and
// its components stay visible until then.
func (w *World) QueueDestroy(id EntityID) {
	if id.IsZero() {
		return
	}
	w.pool.checkOwner(id)
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending returns the number of queued creations and destructions.
func (w *World) Pending() (creations, destructions int) {
	return len(w.pending), len(w.destroyQueue)
}

// OnMaintain registers fn to be called after every Maintain that changed
// something, with the entities it created and destroyed.
func (w *World) OnMaintain(fn func(spawned, destroyed []EntityID)) {
	w.observers = append(w.observers, fn)
}

// Maintain applies queued creations, then queued destructions, as one batch
// and clears both queues. Called once per tick after all systems have run.
func (w *World) Maintain() {
	if len(w.pending) == 0 && len(w.destroyQueue) == 0 {
		return
	}
	w.assertIdle("maintain")

	var spawned, destroyed []EntityID
	for _, p := range w.pending {
		if !w.pool.Alive(p.id) {
			continue
		}
		for _, b := range p.bound {
			b.insert(p.id)
		}
		spawned = append(spawned, p.id)
	}
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue // already destroyed or never existed
		}
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		destroyed = append(destroyed, id)
	}
	clear(w.pending)
	w.pending = w.pending[:0]
	w.destroyQueue = w.destroyQueue[:0]

	if len(spawned) == 0 && len(destroyed) == 0 {
		return
	}
	w.log.Debug("world maintained",
		zap.Int("spawned", len(spawned)),
		zap.Int("destroyed", len(destroyed)),
		zap.Int("alive", w.pool.Len()))
	for _, fn := range w.observers {
		fn(spawned, destroyed)
	}
}

func (w *World) assertIdle(op string) {
	if s := w.registry.busy(); s != nil {
		panic(fmt.Errorf("%w: %s during %s", ErrBorrowedDuringMaintain, s.Name(), op))
	}
}
