package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window     WindowConfig     `toml:"window"`
	Simulation SimulationConfig `toml:"simulation"`
	Logging    LoggingConfig    `toml:"logging"`
	Paths      PathsConfig      `toml:"paths"`
	Debug      DebugConfig      `toml:"debug"`
}

// WindowConfig sizes the presentation surface only; the play field is
// always 80x50.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type SimulationConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks uint64        `toml:"max_ticks"` // 0 = run until quit
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

type PathsConfig struct {
	Scripts string `toml:"scripts"`
	Spawns  string `toml:"spawns"`
}

type DebugConfig struct {
	Profile string `toml:"profile"` // "", "cpu" or "mem"
	Dir     string `toml:"dir"`
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error: the defaults are returned as they are.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("tick_rate %s must be positive", c.Simulation.TickRate)
	}
	switch c.Debug.Profile {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("unknown profile mode %q", c.Debug.Profile)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  80,
			Height: 50,
			Title:  "KazooGame",
		},
		Simulation: SimulationConfig{
			TickRate: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "kazoo.log",
		},
		Paths: PathsConfig{
			Scripts: "scripts",
			Spawns:  "data/spawns.yaml",
		},
		Debug: DebugConfig{
			Dir: ".",
		},
	}
}
