// Package logging provides structured logging for deptmerge using zerolog.
// A run writes a human-readable log file (optionally re-encoded and mirrored
// to stderr); the logger travels through the pipeline in the context.
//
// Example usage:
//
//	logger, closer, err := logging.NewLoggerFromConfig(&logging.Config{
//	    Level:  "info",
//	    Dir:    "logs",
//	    Mirror: true,
//	})
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
//	ctx := logging.WithRun(logging.WithLogger(ctx, &logger))
//	logging.FromContext(ctx).Info().Msg("Reading inputs")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = createDefaultLogger()
}

// createDefaultLogger creates a stderr logger: console format on a terminal, JSON otherwise.
func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	return zerolog.New(writer).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a new logger with the given writer.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}
