package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kazoo.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 80 || cfg.Window.Height != 50 || cfg.Window.Title != "KazooGame" {
		t.Errorf("window defaults = %+v", cfg.Window)
	}
	if cfg.Simulation.TickRate != 100*time.Millisecond {
		t.Errorf("tick rate = %s", cfg.Simulation.TickRate)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "Other"

[simulation]
tick_rate = "250ms"
max_ticks = 30

[logging]
level = "debug"
format = "json"

[debug]
profile = "cpu"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Title != "Other" || cfg.Window.Width != 80 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Simulation.TickRate != 250*time.Millisecond || cfg.Simulation.MaxTicks != 30 {
		t.Errorf("simulation = %+v", cfg.Simulation)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Debug.Profile != "cpu" || cfg.Paths.Spawns != "data/spawns.yaml" {
		t.Errorf("debug/paths = %+v %+v", cfg.Debug, cfg.Paths)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"syntax":    `[window`,
		"size":      "[window]\nwidth = 0",
		"tick rate": "[simulation]\ntick_rate = \"-1s\"",
		"profile":   "[debug]\nprofile = \"trace\"",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			if err == nil || !strings.Contains(err.Error(), "kazoo.toml") {
				t.Errorf("err = %v", err)
			}
		})
	}
}
