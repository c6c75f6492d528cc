package event

import "github.com/kazoogame/kazoo/internal/core/ecs"

// EntitySpawned is published when a deferred creation is committed.
type EntitySpawned struct {
	EntityID ecs.EntityID
}

// EntityDestroyed is published when a queued destruction is applied.
type EntityDestroyed struct {
	EntityID ecs.EntityID
}

// PlayerMoved is published by player movement when a position changed.
type PlayerMoved struct {
	EntityID     ecs.EntityID
	FromX, FromY int
	ToX, ToY     int
}
