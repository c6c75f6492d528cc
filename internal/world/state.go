package world

import (
	"time"

	"github.com/kazoogame/kazoo/internal/component"
	"github.com/kazoogame/kazoo/internal/core/ecs"
	"github.com/kazoogame/kazoo/internal/core/event"
	coresys "github.com/kazoogame/kazoo/internal/core/system"
	"github.com/kazoogame/kazoo/internal/data"
	"github.com/kazoogame/kazoo/internal/handler"
	"github.com/kazoogame/kazoo/internal/input"
	"github.com/kazoogame/kazoo/internal/system"
	"go.uber.org/zap"
)

// State is the whole game: the ECS world plus everything that drives it.
// Accessed only from the game loop goroutine, no locks needed.
type State struct {
	ECS    *ecs.World
	Runner *coresys.Runner
	Bus    *event.Bus
	Input  *input.Dispatcher
	log    *zap.Logger

	moves int
}

// NewState builds a world with all component stores registered and the
// stock systems in place. keys may be nil for the built-in keymap.
func NewState(keys input.KeyMapper, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	w := ecs.NewWorld(ecs.WithLogger(log))
	component.RegisterAll(w)

	bus := event.NewBus()
	w.OnMaintain(func(spawned, destroyed []ecs.EntityID) {
		for _, id := range spawned {
			event.Emit(bus, event.EntitySpawned{EntityID: id})
		}
		for _, id := range destroyed {
			event.Emit(bus, event.EntityDestroyed{EntityID: id})
		}
	})

	runner := coresys.NewRunner(w, log)
	runner.Register(system.NewLeftWalkerSystem())

	s := &State{
		ECS:    w,
		Runner: runner,
		Bus:    bus,
		Input:  input.NewDispatcher(keys, &handler.Deps{World: w, Bus: bus, Log: log}),
		log:    log,
	}
	event.Subscribe(bus, func(event.PlayerMoved) { s.moves++ })
	event.Subscribe(bus, func(ev event.EntitySpawned) {
		log.Debug("entity spawned", zap.Stringer("entity", ev.EntityID))
	})
	event.Subscribe(bus, func(ev event.EntityDestroyed) {
		log.Debug("entity destroyed", zap.Stringer("entity", ev.EntityID))
	})
	return s
}

// Spawn builds every entity of the table and returns their ids in order.
func (s *State) Spawn(t *data.SpawnTable) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, t.Count())
	for _, sp := range t.Spawns() {
		b := s.ECS.CreateEntity().
			With(ecs.Attach(sp.Position)).
			With(ecs.Attach(sp.Renderable))
		if sp.Player {
			b.With(ecs.Attach(component.Player{}))
		}
		if sp.LeftMover {
			b.With(ecs.Attach(component.LeftMover{}))
		}
		ids = append(ids, b.Build())
	}
	s.log.Info("entities spawned", zap.Int("count", len(ids)))
	return ids
}

// Tick runs one simulation step: last tick's events are dispatched, the key
// (if any) is applied to the player, then every system runs and the world is
// maintained. Returns the intent the key mapped to.
func (s *State) Tick(key string, dt time.Duration) input.Intent {
	s.Bus.SwapBuffers()
	s.Bus.DispatchAll()

	intent := input.IntentNone
	if key != "" {
		intent = s.Input.Handle(key)
	}
	s.Runner.Tick(dt)
	return intent
}

// Moves returns how many player moves have been dispatched so far.
func (s *State) Moves() int { return s.moves }
