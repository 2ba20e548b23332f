package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options holds the knobs a logger is built from. They map one to one onto
// the LOG_LEVEL, LOG_FORMAT and DEBUG settings of the agent configuration.
type Options struct {
	Level  string    // trace, debug, info, warn, error (case-insensitive)
	Format string    // "json" or "text"
	Debug  bool      // lowers the level to debug when the configured level is higher
	Out    io.Writer // defaults to os.Stderr
}

// New builds a zerolog.Logger from the given options. Loggers are handed to
// components at construction; no global logger is ever configured.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if opts.Debug && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	var writer io.Writer = out
	if strings.EqualFold(opts.Format, "text") {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}
