package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"snake-arena/game"
	"snake-arena/ui"
	"snake-arena/ui/terminal"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		// The log file, if any, is closed by now.
		log.SetOutput(os.Stderr)
		log.WithError(err).Error("snake exited")
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := game.DefaultConfig()

	flags := flag.NewFlagSet("snake", flag.ContinueOnError)
	frontend := flags.String("frontend", "raylib", "Frontend to use: raylib or terminal")
	flags.IntVar(&cfg.LogicHz, "logic-hz", cfg.LogicHz, "Simulation ticks per second")
	flags.IntVar(&cfg.FrameRate, "fps", cfg.FrameRate, "Frame rate cap")
	flags.IntVar(&cfg.WindowWidth, "width", cfg.WindowWidth, "Window width in pixels")
	flags.IntVar(&cfg.WindowHeight, "height", cfg.WindowHeight, "Window height in pixels")
	flags.IntVar(&cfg.CellSize, "cell", cfg.CellSize, "Cell size in pixels")
	flags.BoolVar(&cfg.EnableSnakeB, "two-player", cfg.EnableSnakeB, "Enable Snake B on WASD")
	logLevel := flags.String("log-level", "info", "Log level")
	logFile := flags.String("log-file", "", "Write logs to this file (defaults to snake.log for the terminal frontend)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		return errors.Wrap(err, "bad log level")
	}
	log.SetLevel(level)

	if *frontend == "terminal" && *logFile == "" {
		*logFile = "snake.log"
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer f.Close()
		log.SetOutput(f)
	}

	g, err := game.NewGame(cfg)
	if err != nil {
		return errors.WithMessage(err, "game setup failed")
	}

	var platform game.Platform
	switch *frontend {
	case "raylib":
		platform = ui.NewRaylibPlatform(cfg, "Snake (multiplayer-ready)")
	case "terminal":
		platform = terminal.NewPlatform(cfg.FrameRate)
	default:
		return errors.Errorf("unknown frontend %q", *frontend)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return errors.WithMessage(game.NewLoop(g, platform).Run(ctx), "game loop failed")
}
