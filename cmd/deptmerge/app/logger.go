package app

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/deptmerge/pkg/logging"
)

// NewLogger creates the console logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag or log_level setting (explicit always wins)
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. Default (info)
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)

	logConfig := &logging.Config{
		Level:     level,
		Format:    "auto",
		Output:    "stderr",
		NoColor:   config.NoColor || os.Getenv("NO_COLOR") != "",
		AddCaller: level == "debug" || level == "trace",
	}

	logger, _, err := logging.NewLoggerFromConfig(logConfig)
	if err != nil {
		// stderr output cannot fail to open
		return logging.New(os.Stderr)
	}
	return logger
}

// newRunLogConfig describes the per-run log file of a merge.
func newRunLogConfig(config *Config) *logging.Config {
	format := config.LogFormat
	if format == "" {
		format = "auto"
	}
	return &logging.Config{
		Level:      runLogLevel(config),
		Format:     format,
		Dir:        config.LogDir,
		Mirror:     config.LogConsole,
		Encoding:   config.LogEncoding,
		TimeFormat: "datetime",
		NoColor:    config.NoColor,
	}
}

// runLogLevel is the console level capped at info. The run log records
// every match decision and the summary, which are logged at info.
func runLogLevel(config *Config) string {
	level := determineLogLevel(config)
	if l, err := logging.ParseLevel(level); err != nil || l > zerolog.InfoLevel {
		return "info"
	}
	return level
}

// determineLogLevel determines the log level using clear precedence rules.
func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		if _, err := logging.ParseLevel(config.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", config.LogLevel)
			return "info"
		}
		return config.LogLevel
	}

	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}

	return "info"
}

// closeOnce makes repeated Close calls return the first result.
func closeOnce(c io.Closer) io.Closer {
	return &onceCloser{closer: c}
}

type onceCloser struct {
	closer io.Closer
	once   sync.Once
	err    error
}

func (o *onceCloser) Close() error {
	o.once.Do(func() { o.err = o.closer.Close() })
	return o.err
}
