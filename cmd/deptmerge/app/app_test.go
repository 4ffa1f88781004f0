package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Reconciler verifies the reconciler follows the matching settings.
func TestApp_Reconciler(t *testing.T) {
	app := newTestApp(t)

	app.Config().Policy = "loose"
	r, err := app.Reconciler()
	if err != nil {
		t.Fatalf("Reconciler() failed: %v", err)
	}
	if r.Policy().String() != "loose" {
		t.Errorf("Policy() = %s, want loose", r.Policy())
	}

	app.Config().NoMatchLevel = "error"
	if _, err := app.Reconciler(); err == nil {
		t.Error("Reconciler() should reject no_match_level=error")
	}
}

// TestApp_RunLogger verifies the run log file is created and closed on shutdown.
func TestApp_RunLogger(t *testing.T) {
	app := newTestApp(t)
	dir := t.TempDir()
	app.Config().LogDir = dir

	logger, _, err := app.RunLogger()
	if err != nil {
		t.Fatalf("RunLogger() failed: %v", err)
	}
	logger.Info().Msg("hello")

	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "merge_files_*.log"))
	if len(matches) != 1 {
		t.Fatalf("log files = %v, want exactly one", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing message: %s", data)
	}
}

// TestApp_Execute runs a merge through the root command. The run log keeps
// match events and the summary whatever the console verbosity.
func TestApp_Execute(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
	}{
		{name: "default", flags: nil},
		{name: "quiet console", flags: []string{"-q"}},
		{name: "console at error", flags: []string{"--log-level", "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			dir := t.TempDir()

			primary := filepath.Join(dir, "ao.csv")
			secondary := filepath.Join(dir, "mvdr.csv")
			output := filepath.Join(dir, "result.csv")
			unmatched := filepath.Join(dir, "unmatched.csv")
			write := func(path, content string) {
				if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			write(primary, "id;name_ru;regula_code\n1;A;1\n2;B;2\n")
			write(secondary, "departmentname;departmentcode;recordid\nA;1;10\n")

			args := append([]string{
				"merge",
				"--primary", primary,
				"--secondary", secondary,
				"--output", output,
				"--unmatched-output", unmatched,
				"--log-dir", dir,
				"-o", "json",
			}, tt.flags...)
			if err := app.Execute(context.Background(), args); err != nil {
				t.Fatalf("Execute() failed: %v", err)
			}
			if err := app.Shutdown(context.Background()); err != nil {
				t.Fatalf("Shutdown() failed: %v", err)
			}

			for _, path := range []string{output, unmatched} {
				if _, err := os.Stat(path); err != nil {
					t.Errorf("expected %s: %v", path, err)
				}
			}

			logs, _ := filepath.Glob(filepath.Join(dir, "merge_files_*.log"))
			if len(logs) != 1 {
				t.Fatalf("log files = %v, want exactly one", logs)
			}
			data, err := os.ReadFile(logs[0])
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range []string{"Merge started", "Rows normalized", "Matched", "No match", "Summary"} {
				if !strings.Contains(string(data), want) {
					t.Errorf("run log missing %q", want)
				}
			}
		})
	}
}

// TestApp_ExecuteRejectsFormat verifies the global format flag is validated.
func TestApp_ExecuteRejectsFormat(t *testing.T) {
	app := newTestApp(t)

	if err := app.Execute(context.Background(), []string{"version", "-o", "xml"}); err == nil {
		t.Error("Execute() should reject --format xml")
	}
}
