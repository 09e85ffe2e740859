// Package logx builds the zerolog loggers used across the service.
package logx

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the level and the output format of a logger.
type Options struct {
	Level  string // trace, debug, info, warn, error; empty means info
	Format string // "console" or "json"
}

// NewLogger returns a logger writing to out. Console output is human
// readable with RFC3339 timestamps; json output is one object per line.
func NewLogger(out io.Writer, opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", opts.Level, err)
		}
	}

	switch opts.Format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q: want console or json", opts.Format)
	}

	zerolog.CallerMarshalFunc = shortCaller
	return zerolog.New(out).Level(level).With().Timestamp().Caller().Logger(), nil
}

// shortCaller keeps only the file name, padded so messages line up.
func shortCaller(_ uintptr, file string, line int) string {
	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	return fmt.Sprintf("%-20s", fmt.Sprintf("%s:%d", short, line))
}
