package component

// LeftMover marks an entity that walks one cell left every tick.
type LeftMover struct{}

// Player marks the entity driven by keyboard input.
type Player struct{}
