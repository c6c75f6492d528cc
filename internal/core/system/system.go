package system

import (
	"strconv"
	"time"

	"github.com/kazoogame/kazoo/internal/core/ecs"
)

// Phase defines execution ordering within a single tick. Systems of the same
// phase run in registration order.
type Phase int

const (
	PhaseInput      Phase = iota // 0: intents already applied to the world
	PhasePreUpdate               // 1
	PhaseUpdate                  // 2: simulation
	PhasePostUpdate              // 3
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	}
	return "phase(" + strconv.Itoa(int(p)) + ")"
}

// System is the interface every ECS system implements. Access lists every
// store the system touches; Update may only reach stores through data.
type System interface {
	Name() string
	Phase() Phase
	Access() []ecs.Access
	Update(data *ecs.SystemData, dt time.Duration)
}
