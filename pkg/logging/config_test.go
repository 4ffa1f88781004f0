package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/agentstation/deptmerge/pkg/errors"
	"github.com/agentstation/deptmerge/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
		assert.Equal(t, "utf-8", cfg.Encoding)
		assert.False(t, cfg.Mirror)
	})

	t.Run("RunLogPath uses the run timestamp", func(t *testing.T) {
		ts := time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)
		assert.Equal(t, filepath.Join("logs", "merge_files_20240501_130405.log"), logging.RunLogPath("logs", ts))
	})

	t.Run("Dir creates a per-run file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")
		logger, closer, err := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "info",
			Format: "json",
			Dir:    dir,
		})
		require.NoError(t, err)
		logger.Info().Str("id", "5").Msg("Matched")
		require.NoError(t, closer.Close())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, strings.HasPrefix(entries[0].Name(), "merge_files_"))

		content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		require.NoError(t, err)
		assert.Contains(t, string(content), `"message":"Matched"`)
	})

	t.Run("auto format writes plain text to files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		logger, closer, err := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "info",
			Format: "auto",
			Output: path,
		})
		require.NoError(t, err)
		logger.Info().Msg("Reading inputs")
		require.NoError(t, closer.Close())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Reading inputs")
		assert.NotContains(t, string(content), "{")
		assert.NotContains(t, string(content), "\x1b[")
	})

	t.Run("file encoding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		logger, closer, err := logging.NewLoggerFromConfig(&logging.Config{
			Level:    "info",
			Format:   "console",
			Output:   path,
			Encoding: "cp1251",
		})
		require.NoError(t, err)
		logger.Info().Msg("Отдел")
		require.NoError(t, closer.Close())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		decoded, err := charmap.Windows1251.NewDecoder().Bytes(raw)
		require.NoError(t, err)
		assert.Contains(t, string(decoded), "Отдел")
	})

	t.Run("unwritable output", func(t *testing.T) {
		_, _, err := logging.NewLoggerFromConfig(&logging.Config{
			Output: filepath.Join(t.TempDir(), "missing", "run.log"),
		})
		require.Error(t, err)
		assert.True(t, errors.IsIOError(err))
	})

	t.Run("unknown encoding", func(t *testing.T) {
		_, _, err := logging.NewLoggerFromConfig(&logging.Config{
			Output:   filepath.Join(t.TempDir(), "run.log"),
			Encoding: "ebcdic",
		})
		require.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
	} {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
	_, err = logging.ParseLevel("")
	assert.Error(t, err)
}
