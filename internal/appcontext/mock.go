package appcontext

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/deptmerge/internal/config"
	"github.com/agentstation/deptmerge/pkg/reconciler"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
//
// Example Usage:
//
//	mock := &appcontext.Mock{
//	    ConfigValue: &config.Config{Primary: "ao.csv", Secondary: "mvdr.csv"},
//	}
//	cmd := merge.NewCommand(mock)
type Mock struct {
	ConfigValue      *config.Config
	LoggerFunc       func() *zerolog.Logger
	RunLoggerFunc    func() (*zerolog.Logger, io.Closer, error)
	ReconcilerFunc   func() (reconciler.Reconciler, error)
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// Config returns ConfigValue, or an empty configuration.
func (m *Mock) Config() *config.Config {
	if m.ConfigValue == nil {
		m.ConfigValue = &config.Config{}
	}
	return m.ConfigValue
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// RunLogger returns the mock run logger, or the console logger with a no-op closer.
func (m *Mock) RunLogger() (*zerolog.Logger, io.Closer, error) {
	if m.RunLoggerFunc != nil {
		return m.RunLoggerFunc()
	}
	return m.Logger(), nopCloser{}, nil
}

// Reconciler returns the mock reconciler, or one built from the mock config.
func (m *Mock) Reconciler() (reconciler.Reconciler, error) {
	if m.ReconcilerFunc != nil {
		return m.ReconcilerFunc()
	}
	cfg := m.Config()
	policy, err := cfg.MatchPolicy()
	if err != nil {
		return nil, err
	}
	return reconciler.New(reconciler.WithPolicy(policy), reconciler.WithAltNamePlaceholder(cfg.AltNamePlaceholder))
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
