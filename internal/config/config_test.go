package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Level != 50 {
		t.Errorf("Level = %d, want 50", cfg.Level)
	}
	if cfg.OpponentDelay.Duration != time.Second {
		t.Errorf("OpponentDelay = %v, want 1s", cfg.OpponentDelay)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0", cfg.Seed)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DatabasePath != "pokebattle.db" {
		t.Errorf("DatabasePath = %q, want default", cfg.DatabasePath)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokebattle.toml")
	content := `
seed = 42
level = 30
opponent_delay = "250ms"
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("POKEBATTLE_LEVEL", "75")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42 from file", cfg.Seed)
	}
	if cfg.Level != 75 {
		t.Errorf("Level = %d, want 75 from env", cfg.Level)
	}
	if cfg.OpponentDelay.Duration != 250*time.Millisecond {
		t.Errorf("OpponentDelay = %v, want 250ms", cfg.OpponentDelay)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadEnvDuration(t *testing.T) {
	t.Setenv("POKEBATTLE_OPPONENT_DELAY", "2s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.OpponentDelay.Duration != 2*time.Second {
		t.Errorf("OpponentDelay = %v, want 2s", cfg.OpponentDelay)
	}
}

func TestLoadEnvError(t *testing.T) {
	t.Setenv("POKEBATTLE_LEVEL", "not-an-int")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadInvalidLevel(t *testing.T) {
	t.Setenv("POKEBATTLE_LEVEL", "0")

	_, err := Load("")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load error = %v, want ErrInvalid", err)
	}
}
