package component

import "github.com/kazoogame/kazoo/internal/core/ecs"

// RegisterAll creates a store for every component type of the game.
func RegisterAll(w *ecs.World) {
	ecs.Register[Position](w)
	ecs.Register[Renderable](w)
	ecs.Register[LeftMover](w)
	ecs.Register[Player](w)
}
