package input

import (
	"github.com/kazoogame/kazoo/internal/handler"
	"go.uber.org/zap"
)

// KeyMapper turns a key name into an intent.
type KeyMapper interface {
	IntentForKey(key string) Intent
}

// StaticKeyMap is a KeyMapper backed by a fixed table.
type StaticKeyMap map[string]Intent

func (m StaticKeyMap) IntentForKey(key string) Intent { return m[key] }

// DefaultKeyMap is used when no keymap script is available: arrows, vi keys
// and WASD.
var DefaultKeyMap = StaticKeyMap{
	KeyLeft:  IntentLeft,
	KeyRight: IntentRight,
	KeyUp:    IntentUp,
	KeyDown:  IntentDown,
	"h":      IntentLeft,
	"l":      IntentRight,
	"k":      IntentUp,
	"j":      IntentDown,
	"a":      IntentLeft,
	"d":      IntentRight,
	"w":      IntentUp,
	"s":      IntentDown,
}

// Dispatcher routes key presses to player movement.
type Dispatcher struct {
	keys KeyMapper
	deps *handler.Deps
}

func NewDispatcher(keys KeyMapper, deps *handler.Deps) *Dispatcher {
	if keys == nil {
		keys = DefaultKeyMap
	}
	return &Dispatcher{keys: keys, deps: deps}
}

// Handle applies the intent of key to the world and returns it. Keys without
// an intent do not touch the world.
func (d *Dispatcher) Handle(key string) Intent {
	intent := d.keys.IntentForKey(key)
	if intent == IntentNone {
		return IntentNone
	}
	if d.deps.Log != nil {
		d.deps.Log.Debug("input", zap.String("key", key), zap.Stringer("intent", intent))
	}
	d.Apply(intent)
	return intent
}

// Apply moves the player by the unit delta of intent.
func (d *Dispatcher) Apply(intent Intent) {
	if intent == IntentNone {
		return
	}
	dx, dy := intent.Delta()
	handler.TryMovePlayer(dx, dy, d.deps)
}
