// Package appcontext provides the application context interface used by all
// commands, so command packages depend on an interface instead of the App.
package appcontext

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/deptmerge/internal/config"
	"github.com/agentstation/deptmerge/pkg/reconciler"
)

// Interface defines the application context that commands need.
// The App struct from cmd/deptmerge/app implements it.
type Interface interface {
	// Config returns the resolved configuration. Commands apply their own
	// flags on top of it.
	Config() *config.Config

	// Logger returns the console logger.
	Logger() *zerolog.Logger

	// RunLogger opens the per-run log file and returns its logger.
	RunLogger() (*zerolog.Logger, io.Closer, error)

	// Reconciler builds a reconciler from the matching settings.
	Reconciler() (reconciler.Reconciler, error)

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the build version.
	Version() string
}
