package system

import (
	"sort"
	"time"

	"github.com/kazoogame/kazoo/internal/core/ecs"
	"go.uber.org/zap"
)

// Runner executes systems in phase order each tick, then maintains the world.
type Runner struct {
	world   *ecs.World
	systems []System
	sorted  bool
	ticks   uint64
	log     *zap.Logger
}

func NewRunner(world *ecs.World, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		world:   world,
		systems: make([]System, 0, 16),
		log:     log,
	}
}

// Register adds s to the tick. Systems run ordered by Phase, then by
// registration order within a phase.
func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
	r.log.Debug("system registered",
		zap.String("system", s.Name()),
		zap.Stringer("phase", s.Phase()),
		zap.Stringers("access", s.Access()))
}

// Tick runs every system once, each holding exactly the borrows it declared,
// and then flushes the world's deferred creations and destructions.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		r.run(s, dt)
	}
	r.world.Maintain()
	r.ticks++
}

func (r *Runner) run(s System, dt time.Duration) {
	data := r.world.Borrow(s.Access()...)
	defer data.Release()
	s.Update(data, dt)
}

// Ticks returns the number of completed ticks.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Order returns system names in execution order.
func (r *Runner) Order() []string {
	r.ensureSorted()
	names := make([]string, len(r.systems))
	for i, s := range r.systems {
		names[i] = s.Name()
	}
	return names
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
