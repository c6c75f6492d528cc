package handler

import (
	"github.com/kazoogame/kazoo/internal/core/ecs"
	"github.com/kazoogame/kazoo/internal/core/event"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all input handlers.
type Deps struct {
	World *ecs.World
	Bus   *event.Bus // optional
	Log   *zap.Logger
}
