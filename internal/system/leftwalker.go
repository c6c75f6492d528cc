package system

import (
	"time"

	"github.com/kazoogame/kazoo/internal/component"
	"github.com/kazoogame/kazoo/internal/core/ecs"
	coresys "github.com/kazoogame/kazoo/internal/core/system"
)

// LeftWalkerSystem moves every LeftMover one cell left per tick. Walking off
// the left edge wraps to the right edge; it never clamps.
// Phase 2 (Update).
type LeftWalkerSystem struct{}

func NewLeftWalkerSystem() *LeftWalkerSystem {
	return &LeftWalkerSystem{}
}

func (s *LeftWalkerSystem) Name() string         { return "left_walker" }
func (s *LeftWalkerSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *LeftWalkerSystem) Access() []ecs.Access {
	return []ecs.Access{
		ecs.Reads[component.LeftMover](),
		ecs.Writes[component.Position](),
	}
}

func (s *LeftWalkerSystem) Update(data *ecs.SystemData, _ time.Duration) {
	movers := ecs.Read[component.LeftMover](data)
	positions := ecs.Write[component.Position](data)
	ecs.Each2(movers, positions, func(_ ecs.EntityID, _ *component.LeftMover, pos *component.Position) {
		pos.X = WrapLeft(pos.X)
	})
}

// WrapLeft returns x moved one cell left with screen wrap.
func WrapLeft(x int) int {
	x--
	if x < 0 {
		x = component.MaxX
	}
	return x
}
