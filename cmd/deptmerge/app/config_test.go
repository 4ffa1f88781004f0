package app

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig verifies defaults when no config file or env is present.
func TestLoadConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Primary != "AO db prod.csv" {
		t.Errorf("Primary = %q, want default", config.Primary)
	}
	if config.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", config.Encoding)
	}
	if config.Policy != "strict" {
		t.Errorf("Policy = %q, want strict", config.Policy)
	}
	if config.Columns.Primary.Assigned != "epgu_code" {
		t.Errorf("Columns.Primary.Assigned = %q, want epgu_code", config.Columns.Primary.Assigned)
	}
	if config.Columns.Secondary.RecordID != "recordid" {
		t.Errorf("Columns.Secondary.RecordID = %q, want recordid", config.Columns.Secondary.RecordID)
	}
	if config.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want empty", config.ConfigFile)
	}
}

// TestConfig_EnvironmentVariables verifies DEPTMERGE_* variables override the config file.
func TestConfig_EnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	yaml := "encoding: cp1251\npolicy: loose\ncolumns:\n  primary:\n    id: ID\n"
	if err := os.WriteFile(filepath.Join(dir, ".deptmerge.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEPTMERGE_POLICY", "strict")
	t.Setenv("DEPTMERGE_COLUMNS_SECONDARY_RECORD_ID", "rid")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Encoding != "cp1251" {
		t.Errorf("Encoding = %q, want cp1251 from file", config.Encoding)
	}
	if config.Policy != "strict" {
		t.Errorf("Policy = %q, want strict from env", config.Policy)
	}
	if config.Columns.Primary.ID != "ID" {
		t.Errorf("Columns.Primary.ID = %q, want ID from file", config.Columns.Primary.ID)
	}
	if config.Columns.Primary.Name != "name_ru" {
		t.Errorf("Columns.Primary.Name = %q, want default name_ru", config.Columns.Primary.Name)
	}
	if config.Columns.Secondary.RecordID != "rid" {
		t.Errorf("Columns.Secondary.RecordID = %q, want rid from env", config.Columns.Secondary.RecordID)
	}
	if filepath.Base(config.ConfigFile) != ".deptmerge.yaml" {
		t.Errorf("ConfigFile = %q, want .deptmerge.yaml", config.ConfigFile)
	}
}

// TestConfig_DotEnv verifies .env values apply and real env vars win.
func TestConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	env := "DEPTMERGE_OUTPUT=from-dotenv.csv\nDEPTMERGE_NO_MATCH_LEVEL=debug\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEPTMERGE_NO_MATCH_LEVEL", "warn")
	// godotenv sets variables process-wide; t.Setenv restores the original on cleanup
	t.Setenv("DEPTMERGE_OUTPUT", "")
	os.Unsetenv("DEPTMERGE_OUTPUT")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Output != "from-dotenv.csv" {
		t.Errorf("Output = %q, want from-dotenv.csv", config.Output)
	}
	if config.NoMatchLevel != "warn" {
		t.Errorf("NoMatchLevel = %q, want warn from env", config.NoMatchLevel)
	}
}

// TestConfig_ExplicitFile verifies --config file loading and errors.
func TestConfig_ExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "merge.yaml")
	if err := os.WriteFile(path, []byte("output: merged.csv\nlog_console: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.Output != "merged.csv" {
		t.Errorf("Output = %q, want merged.csv", config.Output)
	}
	if !config.LogConsole {
		t.Error("LogConsole not loaded from file")
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() with a missing explicit file should fail")
	}
}

// TestUpdateFromFlags verifies flags only override when set.
func TestUpdateFromFlags(t *testing.T) {
	a := &App{config: &Config{Format: "yaml", LogLevel: "error"}}

	a.updateFromFlags(true, false, true, "", "")
	if !a.config.Verbose || !a.config.NoColor {
		t.Error("boolean flags not applied")
	}
	if a.config.Format != "yaml" || a.config.LogLevel != "error" {
		t.Error("empty flags must not override configured values")
	}

	a.updateFromFlags(false, false, false, "json", "debug")
	if a.config.Format != "json" || a.config.LogLevel != "debug" {
		t.Errorf("Format/LogLevel = %q/%q, want json/debug", a.config.Format, a.config.LogLevel)
	}
}
