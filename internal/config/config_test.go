package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todomatic/internal/storage"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvStorage, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvLogLevel, "")
}

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %s, got %s", dir, cfg.Dir)
	}
	if cfg.Storage != storage.KindFile {
		t.Errorf("expected file storage, got %q", cfg.Storage)
	}
	if cfg.DataDir != dir {
		t.Errorf("expected data dir to default to config dir, got %s", cfg.DataDir)
	}
	if cfg.StorageKey != "tasks" {
		t.Errorf("expected storage key tasks, got %q", cfg.StorageKey)
	}
	if cfg.EffectiveLogLevel() != "warn" {
		t.Errorf("expected warn, got %q", cfg.EffectiveLogLevel())
	}
}

func TestNew_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	writeSettings(t, dir, `
storage = "sqlite"
data_dir = "`+dataDir+`"
storage_key = "todos"
log_level = "INFO"
`)

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != storage.KindSQLite {
		t.Errorf("expected sqlite, got %q", cfg.Storage)
	}
	if cfg.DataDir != dataDir {
		t.Errorf("expected %s, got %s", dataDir, cfg.DataDir)
	}
	if cfg.StorageKey != "todos" {
		t.Errorf("expected todos, got %q", cfg.StorageKey)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info, got %q", cfg.LogLevel)
	}
}

func TestNew_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeSettings(t, dir, `storage = "sqlite"`)
	t.Setenv(EnvStorage, "memory")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != storage.KindMemory {
		t.Errorf("expected memory, got %q", cfg.Storage)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected error, got %q", cfg.LogLevel)
	}
}

func TestNew_BadStorageKind(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeSettings(t, dir, `storage = "redis"`)

	_, err := New(dir)
	if err == nil || !strings.Contains(err.Error(), "unknown storage kind: redis") {
		t.Errorf("expected storage kind error, got %v", err)
	}
}

func TestNew_UnknownKey(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeSettings(t, dir, `colour = "blue"`)

	_, err := New(dir)
	if err == nil || !strings.Contains(err.Error(), `unknown key "colour"`) {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestNew_MalformedFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeSettings(t, dir, `storage = `)

	if _, err := New(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("unexpected dir %s", got)
	}
}

func TestEffectiveLogLevel_Debug(t *testing.T) {
	cfg := &Config{LogLevel: "error", Debug: true}
	if cfg.EffectiveLogLevel() != "debug" {
		t.Errorf("expected debug to win, got %q", cfg.EffectiveLogLevel())
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{Dir: "/cfg"}
	if cfg.TokenPath() != "/cfg/token.json" {
		t.Errorf("unexpected token path %s", cfg.TokenPath())
	}
	if cfg.OAuthClientPath() != "/cfg/oauth_client.json" {
		t.Errorf("unexpected client path %s", cfg.OAuthClientPath())
	}
	if cfg.SettingsPath() != "/cfg/config.toml" {
		t.Errorf("unexpected settings path %s", cfg.SettingsPath())
	}
}
