package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hferris/tabula/internal/testutil"
)

// chdir changes the working directory for the duration of the test,
// matching the behavior of t.Chdir (added in Go 1.24, unavailable here).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	t.Setenv("HOME", tmpDir)
	t.Setenv("TABULA_DB_PATH", "")
	t.Setenv("TABULA_USER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.Output != "table" {
		t.Errorf("expected default output table, got %s", cfg.Output)
	}
	want := filepath.Join(tmpDir, ".local", "share", "tabula", "tabula.db")
	if cfg.DBPath != want {
		t.Errorf("expected default db path %s, got %s", want, cfg.DBPath)
	}
}

func TestLoadPrefersProjectLocalDB(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	t.Setenv("HOME", tmpDir)
	t.Setenv("TABULA_DB_PATH", "")

	if err := os.MkdirAll(".tabula", 0755); err != nil {
		t.Fatalf("Failed to create .tabula: %v", err)
	}
	testutil.WriteFile(t, filepath.Join(tmpDir, ".tabula"), "tabula.db", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != ".tabula/tabula.db" {
		t.Errorf("expected project-local db path, got %s", cfg.DBPath)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	t.Setenv("HOME", tmpDir)
	t.Setenv("TABULA_DB_PATH", "/tmp/custom.db")
	t.Setenv("TABULA_LOG_LEVEL", "debug")
	t.Setenv("TABULA_OUTPUT", "json")
	t.Setenv("TABULA_USER", "alice")
	t.Setenv("TABULA_IMPORT_ATOMIC", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("expected env db path, got %s", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
	if cfg.Output != "json" {
		t.Errorf("expected json, got %s", cfg.Output)
	}
	if !cfg.ImportAtomic {
		t.Error("expected ImportAtomic to be true")
	}
}

func TestLoadDotEnvLocal(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	t.Setenv("HOME", tmpDir)
	t.Setenv("TABULA_DB_PATH", "")

	// godotenv does not override variables that are already present, even
	// when empty, so this one must be genuinely unset.
	t.Setenv("TABULA_USER", "")
	os.Unsetenv("TABULA_USER")

	testutil.WriteFile(t, tmpDir, ".env.local", "TABULA_USER=bob\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetUserID() != "bob" {
		t.Errorf("expected user from .env.local, got %q", cfg.GetUserID())
	}
}

func TestGetUserIDPriority(t *testing.T) {
	t.Setenv("TABULA_USER_ID", "uuid-wins")
	t.Setenv("TABULA_USER", "name-loses")

	cfg := &Config{DefaultUser: "config-loses"}
	if got := cfg.GetUserID(); got != "uuid-wins" {
		t.Errorf("expected TABULA_USER_ID to win, got %q", got)
	}

	t.Setenv("TABULA_USER_ID", "")
	if got := cfg.GetUserID(); got != "name-loses" {
		t.Errorf("expected TABULA_USER to win, got %q", got)
	}

	t.Setenv("TABULA_USER", "")
	if got := cfg.GetUserID(); got != "config-loses" {
		t.Errorf("expected config default, got %q", got)
	}
}
