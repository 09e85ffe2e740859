package main

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/console"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/logx"
	"github.com/hailam/chessrules/internal/storage"
)

func main() {
	if err := run(os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("chessrules")
	}
}

// run wires config, logging, storage, the game manager and the console, then
// serves commands from stdin until quit or end of input.
func run(args []string, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args, getenv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logx.NewLogger(stderr, logx.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	board.SetLogger(logger.With().Str("component", "board").Logger())

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := cfg.CPUProfile
	if profilePath == "" {
		profilePath = getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	gameType, err := game.ParseGameType(cfg.GameType)
	if err != nil {
		return err
	}

	opts := storage.Options{InMemory: cfg.InMemory}
	if !cfg.InMemory {
		if opts.Dir, err = storage.DatabaseDir(cfg.DataDir); err != nil {
			return fmt.Errorf("data directory %s: %w", cfg.DataDir, err)
		}
	}
	store, err := storage.Open(opts)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()
	if err := store.SeedStandard(); err != nil {
		return fmt.Errorf("seed start states: %w", err)
	}
	logger.Info().Str("dir", opts.Dir).Bool("in_memory", opts.InMemory).Msg("storage ready")

	manager := game.NewManager(store, logger.With().Str("component", "game").Logger())
	con := console.New(manager, store, stdout, logger, console.Options{
		GameType: gameType,
		NoColor:  !cfg.Color,
	})
	if err := con.Run(stdin); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}
