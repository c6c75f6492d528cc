package handler

import (
	"github.com/kazoogame/kazoo/internal/component"
	"github.com/kazoogame/kazoo/internal/core/ecs"
	"github.com/kazoogame/kazoo/internal/core/event"
	"go.uber.org/zap"
)

// TryMovePlayer moves every Player by (dx, dy), saturating at the field edges.
// It writes the world directly and takes effect immediately, so it must run
// before the systems of the tick, never from inside one.
func TryMovePlayer(dx, dy int, deps *Deps) {
	positions := ecs.WriteStorage[component.Position](deps.World)
	defer positions.Release()
	players := ecs.ReadStorage[component.Player](deps.World)
	defer players.Release()

	ecs.Each2(players, positions, func(id ecs.EntityID, _ *component.Player, pos *component.Position) {
		fromX, fromY := pos.X, pos.Y
		pos.X = min(component.MaxX, max(0, pos.X+dx))
		pos.Y = min(component.MaxY, max(0, pos.Y+dy))
		if pos.X == fromX && pos.Y == fromY {
			return
		}
		if deps.Log != nil {
			deps.Log.Debug("player moved",
				zap.Stringer("entity", id),
				zap.Int("x", pos.X),
				zap.Int("y", pos.Y))
		}
		if deps.Bus != nil {
			event.Emit(deps.Bus, event.PlayerMoved{
				EntityID: id,
				FromX:    fromX,
				FromY:    fromY,
				ToX:      pos.X,
				ToY:      pos.Y,
			})
		}
	})
}
