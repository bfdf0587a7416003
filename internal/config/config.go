package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/20after4/configdir"
	"github.com/pelletier/go-toml/v2"
	"github.com/petems/mediakey-tray/internal/mediakey"
)

const appName = "mediakey-tray"

// Config is read from config.toml at startup and never written back.
type Config struct {
	LogLevel string `toml:"log_level"`

	// StartMonitoring installs the global media key tap at launch. When it
	// cannot be installed the app stays in local-only mode.
	StartMonitoring bool `toml:"start_monitoring"`

	// ShowTray runs the status icon; when false the app runs headless.
	ShowTray bool `toml:"show_tray"`

	// Keys lists the media keys the app reacts to, by name
	// ("play", "next", "previous", "fast_forward", "rewind").
	Keys []string `toml:"keys"`
}

func DefaultConfig() *Config {
	keys := make([]string, 0, len(mediakey.Codes))
	for _, code := range mediakey.Codes {
		keys = append(keys, code.String())
	}
	return &Config{
		LogLevel:        "info",
		StartMonitoring: true,
		ShowTray:        true,
		Keys:            keys,
	}
}

// Load reads the config from the platform config dir or returns defaults
func Load() (*Config, error) {
	return ReadConfigFile(ConfigPath())
}

// ReadConfigFile decodes path over the defaults. A missing file yields the
// defaults.
func ReadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if _, err := cfg.EnabledKeys(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnabledKeys resolves Keys to media key codes.
func (c *Config) EnabledKeys() (map[mediakey.Code]bool, error) {
	enabled := make(map[mediakey.Code]bool, len(c.Keys))
	for _, name := range c.Keys {
		code, err := mediakey.ParseCode(name)
		if err != nil {
			return nil, fmt.Errorf("config keys: %w", err)
		}
		enabled[code] = true
	}
	return enabled, nil
}

// ConfigPath returns the platform-specific config file path
func ConfigPath() string {
	return filepath.Join(configdir.LocalConfig(appName), "config.toml")
}
