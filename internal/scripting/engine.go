package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kazoogame/kazoo/internal/input"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for game scripts.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Load core scripts first, then feature scripts
	for _, sub := range []string{"core", "input"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasFunction reports whether a global Lua function is defined.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// IntentForKey calls the Lua intent_for_key function. The script returns an
// intent name ("left", "right", "up", "down") or nil. Without the function,
// or on a script error, the built-in keymap answers.
func (e *Engine) IntentForKey(key string) input.Intent {
	fn := e.vm.GetGlobal("intent_for_key")
	if fn == lua.LNil {
		return input.DefaultKeyMap.IntentForKey(key)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(key)); err != nil {
		e.log.Error("lua intent_for_key error", zap.String("key", key), zap.Error(err))
		return input.DefaultKeyMap.IntentForKey(key)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	s, ok := result.(lua.LString)
	if !ok {
		return input.IntentNone
	}
	return input.ParseIntent(string(s))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
