package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/deptmerge/internal/config"
	"github.com/agentstation/deptmerge/pkg/constants"
	"github.com/agentstation/deptmerge/pkg/errors"
)

// Config is the resolved application configuration.
type Config = config.Config

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied by each command)
// 2. Environment variables (DEPTMERGE_*)
// 3. .env files
// 4. Config file (--config, or .deptmerge.yaml in . or $HOME)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first so their values reach the env lookup below
	loadEnvFiles()

	v := viper.New()
	for key, value := range config.Defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "cannot read config file", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewConfigError("config", "cannot decode settings", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.Format = v.GetString("format")

	return cfg, nil
}

// updateFromFlags updates config values from parsed global flags.
// This should be called after cobra parses flags so that flag values take
// precedence over the config file and env vars.
func (a *App) updateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c := a.config
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden, and
// .env.local wins over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		if _, err := os.Stat(filepath.Clean(envFile)); err == nil {
			_ = godotenv.Load(envFile)
		}
	}
}
