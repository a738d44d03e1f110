// Package config handles the configuration directory, config file, and paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"todomatic/internal/storage"
)

const (
	// AppName is the application directory name.
	AppName = "todomatic"

	// ConfigFile is the optional TOML settings filename inside the config directory.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultLogLevel is used when nothing else sets a level.
	DefaultLogLevel = "warn"
)

// Environment variables that override the config file.
const (
	EnvStorage  = "TODOMATIC_STORAGE"
	EnvDataDir  = "TODOMATIC_DATA_DIR"
	EnvLogLevel = "TODOMATIC_LOG_LEVEL"
)

// Settings is the on-disk config file layout.
type Settings struct {
	Storage    string `toml:"storage"`
	DataDir    string `toml:"data_dir"`
	StorageKey string `toml:"storage_key"`
	LogLevel   string `toml:"log_level"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Storage selects the slot implementation.
	Storage storage.Kind

	// DataDir holds the task slot. Defaults to Dir.
	DataDir string

	// StorageKey names the slot entry holding the task snapshot.
	StorageKey string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todomatic or $HOME/.config/todomatic.
// Values come from defaults, then config.toml, then the environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:        dir,
		Storage:    storage.KindFile,
		StorageKey: storage.DefaultKey,
		LogLevel:   DefaultLogLevel,
	}

	settings, err := loadSettings(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.apply(settings); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.SettingsPath(), err)
	}
	if err := cfg.apply(settingsFromEnv()); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = cfg.Dir
	}
	return cfg, nil
}

// loadSettings decodes path. A missing file yields zero settings.
func loadSettings(path string) (Settings, error) {
	var s Settings
	md, err := toml.DecodeFile(path, &s)
	if errors.Is(err, fs.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("loading config file %s: unknown key %q", path, undecoded[0].String())
	}
	return s, nil
}

func settingsFromEnv() Settings {
	return Settings{
		Storage:  os.Getenv(EnvStorage),
		DataDir:  os.Getenv(EnvDataDir),
		LogLevel: os.Getenv(EnvLogLevel),
	}
}

// apply overlays the non-empty fields of s.
func (c *Config) apply(s Settings) error {
	if s.Storage != "" {
		kind, err := storage.ParseKind(strings.ToLower(strings.TrimSpace(s.Storage)))
		if err != nil {
			return err
		}
		c.Storage = kind
	}
	if s.DataDir != "" {
		c.DataDir = expandHome(s.DataDir)
	}
	if s.StorageKey != "" {
		c.StorageKey = s.StorageKey
	}
	if s.LogLevel != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// EffectiveLogLevel returns the level to log at, honoring Debug.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// SettingsPath returns the path to the TOML config file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
