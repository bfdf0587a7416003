package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/petems/mediakey-tray/internal/mediakey"
)

func TestReadConfigFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := ReadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.StartMonitoring || !cfg.ShowTray || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	keys, err := cfg.EnabledKeys()
	if err != nil {
		t.Fatalf("default keys: %v", err)
	}
	if len(keys) != len(mediakey.Codes) {
		t.Fatalf("expected all keys enabled by default, got %v", keys)
	}
}

func TestReadConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `log_level = "debug"
start_monitoring = false
keys = ["play", "next"]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadConfigFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.LogLevel)
	}
	if cfg.StartMonitoring {
		t.Error("expected start_monitoring to be overridden")
	}
	if !cfg.ShowTray {
		t.Error("expected show_tray default to survive")
	}

	keys, err := cfg.EnabledKeys()
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || !keys[mediakey.Play] || !keys[mediakey.Next] {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestReadConfigFileRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`keys = ["play", "volume_up"]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadConfigFile(path); err == nil {
		t.Fatal("expected error for unsupported key")
	}
}

func TestReadConfigFileRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_level = `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadConfigFile(path); err == nil {
		t.Fatal("expected decode error")
	}
}
