package main

import (
	"path/filepath"
	"testing"

	"github.com/kazoogame/kazoo/internal/config"
	"github.com/kazoogame/kazoo/internal/input"
	"go.uber.org/zap"
)

func TestLatestKey(t *testing.T) {
	keys := make(chan string, 8)
	if k, quit := latestKey(keys); k != "" || quit {
		t.Errorf("empty channel gave %q,%v", k, quit)
	}

	keys <- input.KeyLeft
	keys <- input.KeyUp
	if k, quit := latestKey(keys); k != input.KeyUp || quit {
		t.Errorf("got %q,%v want up", k, quit)
	}

	keys <- input.KeyLeft
	keys <- "q"
	keys <- input.KeyRight
	if _, quit := latestKey(keys); !quit {
		t.Error("quit key ignored")
	}
}

func TestLoadSpawnsFallsBack(t *testing.T) {
	tbl, err := loadSpawns(filepath.Join(t.TempDir(), "missing.yaml"), zap.NewNop())
	if err != nil {
		t.Fatalf("loadSpawns: %v", err)
	}
	if tbl.Count() != 11 {
		t.Errorf("Count = %d", tbl.Count())
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kazoo.log")
	log, err := newLogger(config.LoggingConfig{Level: "nonsense", Format: "json", File: path})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if log.Core().Enabled(zap.DebugLevel) {
		t.Error("bad level should fall back to info")
	}
	log.Info("hello")
	_ = log.Sync()
}

func TestStartProfileDisabled(t *testing.T) {
	if p := startProfile(config.DebugConfig{}); p != nil {
		t.Error("profiling started without a mode")
	}
}
