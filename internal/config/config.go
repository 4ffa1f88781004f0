// Package config holds the resolved deptmerge configuration shared by the
// CLI commands.
package config

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/deptmerge/pkg/charset"
	"github.com/agentstation/deptmerge/pkg/constants"
	"github.com/agentstation/deptmerge/pkg/dataset"
	"github.com/agentstation/deptmerge/pkg/errors"
	"github.com/agentstation/deptmerge/pkg/logging"
	"github.com/agentstation/deptmerge/pkg/normalize"
)

// Config holds the application configuration loaded from flags, environment,
// .env files and the config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Inputs
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Encoding  string `mapstructure:"encoding"`

	// Outputs
	Output          string `mapstructure:"output"`
	UnmatchedOutput string `mapstructure:"unmatched_output"`
	OutputEncoding  string `mapstructure:"output_encoding"`

	// Matching
	Policy             string `mapstructure:"policy"`
	NoMatchLevel       string `mapstructure:"no_match_level"`
	AltNamePlaceholder string `mapstructure:"alt_name_placeholder"`

	Columns Columns `mapstructure:"columns"`

	// Logging configuration
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	LogDir      string `mapstructure:"log_dir"`
	LogEncoding string `mapstructure:"log_encoding"`
	LogConsole  bool   `mapstructure:"log_console"`
}

// Columns maps logical fields to header names in both input files.
type Columns struct {
	Primary   dataset.PrimaryColumns   `mapstructure:"primary"`
	Secondary dataset.SecondaryColumns `mapstructure:"secondary"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]any {
	p := dataset.DefaultPrimaryColumns()
	s := dataset.DefaultSecondaryColumns()
	return map[string]any{
		"primary":                     constants.DefaultPrimaryFile,
		"secondary":                   constants.DefaultSecondaryFile,
		"encoding":                    constants.DefaultEncoding,
		"output":                      constants.DefaultOutputFile,
		"unmatched_output":            constants.DefaultUnmatchedFile,
		"output_encoding":             "",
		"policy":                      string(normalize.DefaultPolicy),
		"no_match_level":              "info",
		"alt_name_placeholder":        "",
		"columns.primary.id":          p.ID,
		"columns.primary.name":        p.Name,
		"columns.primary.name_alt":    p.NameAlt,
		"columns.primary.code":        p.Code,
		"columns.primary.aux_code":    p.AuxCode,
		"columns.primary.assigned":    p.Assigned,
		"columns.secondary.name":      s.Name,
		"columns.secondary.code":      s.Code,
		"columns.secondary.record_id": s.RecordID,
		"log_level":                   "",
		"log_format":                  "auto",
		"log_dir":                     ".",
		"log_encoding":                constants.DefaultEncoding,
		"log_console":                 false,
		"format":                      "",
	}
}

// OutputEncodingOrInput returns the output encoding, falling back to the input encoding.
func (c *Config) OutputEncodingOrInput() string {
	if strings.TrimSpace(c.OutputEncoding) != "" {
		return c.OutputEncoding
	}
	return c.Encoding
}

// MatchPolicy parses the configured normalization policy.
func (c *Config) MatchPolicy() (normalize.Policy, error) {
	return normalize.ParsePolicy(c.Policy)
}

// MatchNoMatchLevel parses the level of "no match" events.
func (c *Config) MatchNoMatchLevel() (zerolog.Level, error) {
	if strings.TrimSpace(c.NoMatchLevel) == "" {
		return zerolog.InfoLevel, nil
	}
	return logging.ParseLevel(c.NoMatchLevel)
}

// Validate checks every enumerated setting and reports the first bad one.
func (c *Config) Validate() error {
	if _, err := c.MatchPolicy(); err != nil {
		return err
	}
	if _, err := c.MatchNoMatchLevel(); err != nil {
		return err
	}
	for _, enc := range []string{c.Encoding, c.OutputEncodingOrInput(), c.LogEncoding} {
		if _, err := charset.Canonical(enc); err != nil {
			return err
		}
	}
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return err
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "auto", "json", "console", "text":
	default:
		return errors.NewConfigError("logging", "unknown log format "+c.LogFormat, errors.ErrInvalidInput)
	}
	return nil
}
