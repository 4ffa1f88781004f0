// Package app provides the application context and dependency management
// for the deptmerge CLI. It centralizes configuration, logging, and
// construction of the reconciler so commands only receive an interface.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/deptmerge/internal/appcontext"
	"github.com/agentstation/deptmerge/pkg/errors"
	"github.com/agentstation/deptmerge/pkg/logging"
	"github.com/agentstation/deptmerge/pkg/reconciler"
)

// App represents the deptmerge application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger for console diagnostics
	logger *zerolog.Logger

	// Open run log files, closed on Shutdown
	mu      sync.Mutex
	closers []io.Closer
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured console output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// RunLogger opens the per-run log file described by the configuration and
// returns a logger writing to it. The file is closed by the returned closer
// and, as a fallback, by Shutdown.
func (a *App) RunLogger() (*zerolog.Logger, io.Closer, error) {
	logger, closer, err := logging.NewLoggerFromConfig(newRunLogConfig(a.config))
	if err != nil {
		return nil, nil, err
	}

	once := closeOnce(closer)
	a.mu.Lock()
	a.closers = append(a.closers, once)
	a.mu.Unlock()

	return &logger, once, nil
}

// Reconciler builds a reconciler from the matching settings.
func (a *App) Reconciler() (reconciler.Reconciler, error) {
	policy, err := a.config.MatchPolicy()
	if err != nil {
		return nil, err
	}
	level, err := a.config.MatchNoMatchLevel()
	if err != nil {
		return nil, err
	}

	r, err := reconciler.New(
		reconciler.WithPolicy(policy),
		reconciler.WithNoMatchLevel(level),
		reconciler.WithAltNamePlaceholder(a.config.AltNamePlaceholder),
	)
	if err != nil {
		return nil, errors.WrapValidation("matching", err)
	}
	return r, nil
}

// Shutdown closes any run log files still open.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
