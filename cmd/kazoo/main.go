package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/kazoogame/kazoo/internal/config"
	"github.com/kazoogame/kazoo/internal/data"
	"github.com/kazoogame/kazoo/internal/input"
	"github.com/kazoogame/kazoo/internal/render"
	"github.com/kazoogame/kazoo/internal/scripting"
	"github.com/kazoogame/kazoo/internal/world"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/kazoo.toml"
	if p := os.Getenv("KAZOO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger. The terminal belongs to the game, so logs go to a file.
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log = log.With(zap.String("run", uuid.NewString()))

	if p := startProfile(cfg.Debug); p != nil {
		defer p.Stop()
	}

	// 3. Scripts and data
	scripts, err := scripting.NewEngine(cfg.Paths.Scripts, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scripts.Close()
	if !scripts.HasFunction("intent_for_key") {
		log.Warn("keymap script missing, using built-in keys", zap.String("dir", cfg.Paths.Scripts))
	}

	spawns, err := loadSpawns(cfg.Paths.Spawns, log)
	if err != nil {
		return fmt.Errorf("spawns: %w", err)
	}

	// 4. World
	state := world.NewState(scripts, log)
	state.Spawn(spawns)

	// 5. Terminal
	inFd, outFd := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	if !term.IsTerminal(inFd) {
		return errors.New("stdin is not a terminal")
	}
	if w, h, err := term.GetSize(outFd); err == nil && (w < cfg.Window.Width || h < cfg.Window.Height) {
		log.Warn("terminal smaller than window",
			zap.Int("cols", w), zap.Int("rows", h),
			zap.Int("width", cfg.Window.Width), zap.Int("height", cfg.Window.Height))
	}
	saved, err := term.MakeRaw(inFd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(inFd, saved)

	screen := render.NewTerminal(os.Stdout)
	if err := screen.Begin(cfg.Window.Title); err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	defer screen.End()

	keys := make(chan string, 64)
	go func() {
		if err := input.ReadKeys(os.Stdin, keys); err != nil {
			log.Warn("key reader stopped", zap.Error(err))
		}
	}()

	// 6. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	frame := render.NewFrame(cfg.Window.Width, cfg.Window.Height)
	log.Info("game loop started",
		zap.Duration("tick", cfg.Simulation.TickRate),
		zap.Int("entities", state.ECS.Count()))

	for {
		select {
		case <-ticker.C:
			key, quit := latestKey(keys)
			if quit {
				log.Info("quit requested", zap.Uint64("ticks", state.Runner.Ticks()))
				return nil
			}
			state.Tick(key, cfg.Simulation.TickRate)
			render.Draw(state.ECS, frame)
			if err := screen.Present(frame); err != nil {
				return fmt.Errorf("present: %w", err)
			}
			if limit := cfg.Simulation.MaxTicks; limit > 0 && state.Runner.Ticks() >= limit {
				log.Info("tick limit reached", zap.Uint64("ticks", limit))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// latestKey drains the pending keys and returns the last one; one key is
// applied per tick. quit is true if any drained key asks to quit.
func latestKey(keys <-chan string) (key string, quit bool) {
	for {
		select {
		case k := <-keys:
			if input.IsQuit(k) {
				return "", true
			}
			key = k
		default:
			return key, false
		}
	}
}

func loadSpawns(path string, log *zap.Logger) (*data.SpawnTable, error) {
	t, err := data.LoadSpawnTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("spawn list missing, using stock layout", zap.String("path", path))
		return data.NewSpawnTable(data.DefaultSpawnGroups())
	}
	if err != nil {
		return nil, err
	}
	log.Info("spawn list loaded", zap.String("path", path), zap.Int("count", t.Count()))
	return t, nil
}

func startProfile(cfg config.DebugConfig) interface{ Stop() } {
	opts := []func(*profile.Profile){profile.ProfilePath(cfg.Dir), profile.NoShutdownHook, profile.Quiet}
	switch cfg.Profile {
	case "cpu":
		return profile.Start(append(opts, profile.CPUProfile)...)
	case "mem":
		return profile.Start(append(opts, profile.MemProfile)...)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
