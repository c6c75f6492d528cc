package ecs

import "errors"

// Programming errors. The engine panics with an error wrapping one of these;
// none of them is recoverable at runtime.
var (
	ErrUnregistered           = errors.New("ecs: component type not registered")
	ErrBorrowConflict         = errors.New("ecs: conflicting store borrow")
	ErrUndeclaredAccess       = errors.New("ecs: store access not declared by system")
	ErrForeignEntity          = errors.New("ecs: entity belongs to another world")
	ErrBorrowedDuringMaintain = errors.New("ecs: store still borrowed at maintain")
	ErrExhausted              = errors.New("ecs: entity index space exhausted")
)
