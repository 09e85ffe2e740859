// Package config reads command-line flags and CHESSRULES_* environment
// variables. Environment values act as defaults that flags override.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hailam/chessrules/internal/storage"
)

const envPrefix = "CHESSRULES_"

// Config holds the settings of the chessrules binary.
type Config struct {
	DataDir    string
	InMemory   bool
	LogLevel   string
	LogFormat  string
	GameType   string
	Color      bool
	CPUProfile string
}

// Load parses args (without the program name). getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (*Config, error) {
	dataDir, err := storage.GetDataDir()
	if err != nil {
		dataDir = "."
	}
	cfg := &Config{
		DataDir:   dataDir,
		LogLevel:  "info",
		LogFormat: "console",
		GameType:  "DEFAULT",
		Color:     true,
	}
	if err := cfg.fromEnv(getenv); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("chessrules", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "data directory")
	fs.BoolVar(&cfg.InMemory, "memory", cfg.InMemory, "keep the database in memory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")
	fs.StringVar(&cfg.GameType, "type", cfg.GameType, "default game type")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "colour the text board")
	fs.StringVar(&cfg.CPUProfile, "cpuprofile", "", "write cpu profile to file")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return cfg, nil
}

func (c *Config) fromEnv(getenv func(string) string) error {
	if v := getenv(envPrefix + "DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv(envPrefix + "LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := getenv(envPrefix + "GAME_TYPE"); v != "" {
		c.GameType = v
	}
	for name, dst := range map[string]*bool{"IN_MEMORY": &c.InMemory, "COLOR": &c.Color} {
		v := getenv(envPrefix + name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = b
	}
	return nil
}
