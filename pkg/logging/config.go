package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/agentstation/deptmerge/pkg/charset"
	"github.com/agentstation/deptmerge/pkg/constants"
	"github.com/agentstation/deptmerge/pkg/errors"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is the output format (json, console, auto)
	Format string

	// Output is where to write logs (stderr, stdout, discard, or a file path).
	// When empty and Dir is set, a per-run file is created in Dir.
	Output string

	// Dir is the directory for per-run log files
	Dir string

	// Mirror also writes every event to stderr
	Mirror bool

	// Encoding of the log file (utf-8, cp1251, ...)
	Encoding string

	// TimeFormat for timestamps (kitchen, rfc3339, datetime, etc.)
	TimeFormat string

	// NoColor disables color output in console mode
	NoColor bool

	// AddCaller includes file:line in log output
	AddCaller bool

	// Fields are default fields to include in all logs
	Fields map[string]any
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		Encoding:   constants.DefaultEncoding,
		TimeFormat: "datetime",
		NoColor:    os.Getenv("NO_COLOR") != "",
		Fields:     make(map[string]any),
	}
}

// RunLogPath returns the per-run log file path in dir for a run started at t.
func RunLogPath(dir string, t time.Time) string {
	return filepath.Join(dir, constants.LogFilePrefix+t.Format(constants.LogFileTimeLayout)+".log")
}

// NewLoggerFromConfig creates a new logger from configuration. The returned
// closer flushes and closes the log file, if one was opened.
func NewLoggerFromConfig(cfg *Config) (zerolog.Logger, io.Closer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	writer, closer, err := getWriter(cfg)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	if len(cfg.Fields) > 0 {
		ctx := logger.With()
		for k, v := range cfg.Fields {
			ctx = addFieldToContext(ctx, k, v)
		}
		logger = ctx.Logger()
	}

	return logger, closer, nil
}

// Configure updates the default logger with the given configuration
func Configure(cfg *Config) (io.Closer, error) {
	logger, closer, err := NewLoggerFromConfig(cfg)
	if err != nil {
		return closer, err
	}
	SetDefault(logger)
	return closer, nil
}

// getWriter creates the writer chain for cfg: the primary output, optionally
// re-encoded, optionally mirrored to stderr.
func getWriter(cfg *Config) (io.Writer, io.Closer, error) {
	output, closer, isFile, err := openOutput(cfg)
	if err != nil {
		return nil, nil, err
	}

	if isFile && !charset.IsUnicode(cfg.Encoding) {
		enc, err := charset.Lookup(cfg.Encoding)
		if err != nil {
			_ = closer.Close()
			return nil, nil, err
		}
		tw := transform.NewWriter(output, encoding.ReplaceUnsupported(enc.NewEncoder()))
		closer = chainCloser{tw, closer}
		output = tw
	}

	format := resolveFormat(cfg.Format, output, isFile)
	primary := formatWriter(output, format, cfg.TimeFormat, cfg.NoColor || isFile)

	if !cfg.Mirror || !isFile {
		return primary, closer, nil
	}
	mirror := formatWriter(os.Stderr, resolveFormat(cfg.Format, os.Stderr, false), cfg.TimeFormat, cfg.NoColor)
	return zerolog.MultiLevelWriter(primary, mirror), closer, nil
}

func openOutput(cfg *Config) (io.Writer, io.Closer, bool, error) {
	out := strings.TrimSpace(cfg.Output)
	if out == "" && cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, constants.DirPermissions); err != nil {
			return nil, nil, false, errors.WrapIO("create", cfg.Dir, err)
		}
		out = RunLogPath(cfg.Dir, time.Now())
	}

	switch strings.ToLower(out) {
	case "", "stderr":
		return os.Stderr, nopCloser{}, false, nil
	case "stdout":
		return os.Stdout, nopCloser{}, false, nil
	case "discard", "none":
		return io.Discard, nopCloser{}, false, nil
	}

	file, err := os.OpenFile(out, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return nil, nil, false, errors.WrapIO("open", out, err)
	}
	return file, file, true, nil
}

// resolveFormat picks console output for files and terminals under "auto".
func resolveFormat(format string, w io.Writer, isFile bool) string {
	format = strings.ToLower(format)
	if format != "auto" && format != "" {
		return format
	}
	if isFile {
		return "console"
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return "console"
	}
	return "json"
}

func formatWriter(w io.Writer, format, timeFormat string, noColor bool) io.Writer {
	switch format {
	case "console", "pretty", "text":
		return zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: parseTimeFormat(timeFormat),
			NoColor:    noColor,
		}
	default:
		return w
	}
}

// parseLevel parses a log level string
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	default:
		if l, err := zerolog.ParseLevel(level); err == nil {
			return l
		}
		return zerolog.InfoLevel
	}
}

// ParseLevel parses a level name, rejecting unknown names.
func ParseLevel(level string) (zerolog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	l, err := zerolog.ParseLevel(name)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.NoLevel, errors.NewConfigError("logging", "unknown log level "+level, errors.ErrInvalidInput)
	}
	return l, nil
}

// parseTimeFormat parses time format configuration
func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "", "datetime":
		return time.DateTime
	case "unix", "epoch":
		return ""
	default:
		if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
			return format
		}
		return time.DateTime
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// chainCloser closes the transform writer first so buffered bytes reach the file.
type chainCloser struct {
	first io.Closer
	then  io.Closer
}

func (c chainCloser) Close() error {
	err := c.first.Close()
	if err2 := c.then.Close(); err == nil {
		err = err2
	}
	return err
}
