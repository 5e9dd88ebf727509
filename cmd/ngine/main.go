package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/lixenwraith/ngine/audio"
	"github.com/lixenwraith/ngine/config"
	"github.com/lixenwraith/ngine/core"
	"github.com/lixenwraith/ngine/demo"
	"github.com/lixenwraith/ngine/engine"
	"github.com/lixenwraith/ngine/mesh"
	"github.com/lixenwraith/ngine/render/termrender"
	"github.com/lixenwraith/ngine/terminal"
)

var (
	configFlag = flag.String("config", "", "Config file (.toml, .yaml)")
	demoFlag   = flag.String("demo", "pong", "Demo scene: "+strings.Join(demo.Names(), ", "))
	debugFlag  = flag.Bool("debug", false, "Write debug logs to the log directory")
	fpsFlag    = flag.Int("fps", 0, "Frame rate override")
	muteFlag   = flag.Bool("mute", false, "Disable audio")
	colorFlag  = flag.String("color", "", "Color mode override: truecolor, 16")
)

func main() {
	// Restore the terminal even if the game crashes outside the frame loop
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ngine: %v\n", err)
		os.Exit(2)
	}

	logger, logFile, err := setupLogging(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ngine: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("exit", zap.Error(err))
		fmt.Fprintf(os.Stderr, "ngine: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the optional config file and applies flag overrides
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		c, err := config.Load(*configFlag)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *fpsFlag > 0 {
		cfg.Window.FPS = *fpsFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	switch *colorFlag {
	case "":
	case "truecolor", "true", "24bit":
		cfg.Window.TrueColor = true
	case "16":
		cfg.Window.TrueColor = false
	default:
		return cfg, fmt.Errorf("%w: color mode %q", config.ErrInvalid, *colorFlag)
	}
	return cfg, cfg.Validate()
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	meshes := mesh.NewCache(os.DirFS(cfg.Assets.MeshDir), logger)
	if err := mesh.Preload(ctx, meshes, demo.Assets(*demoFlag)...); err != nil {
		logger.Warn("asset preload", zap.Error(err))
	}

	window, err := terminal.Open(nil, logger)
	if err != nil {
		return err
	}
	renderer := termrender.New(window.Screen(), cfg.Render, cfg.Window.TrueColor)

	opts := []engine.GameOption{engine.WithGameLogger(logger)}
	var player audio.Player = audio.NopPlayer{}
	if cfg.Audio.Enabled {
		sound := audio.New(cfg.Audio, logger)
		if err := sound.Start(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		} else {
			player = sound
			opts = append(opts, engine.WithCloser(sound))
		}
	}

	game, err := engine.NewGame(cfg, window, renderer, opts...)
	if err != nil {
		window.Close()
		return err
	}
	if err := demo.Build(*demoFlag, game.Scene(), demo.Deps{Player: player, Meshes: meshes, Logger: logger}); err != nil {
		game.Stop()
		return err
	}
	logger.Info("starting", zap.String("demo", *demoFlag), zap.Int("fps", cfg.Window.FPS))
	return game.Run(ctx)
}
