// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Config holds the application configuration.
type Config struct {
	Interval int               `toml:"interval"` // seconds between samples
	Alias    map[string]string `toml:"alias"`    // raw app id -> display name
	Storage  StorageConfig     `toml:"storage"`
	UI       UIConfig          `toml:"ui"`
	Server   ServerConfig      `toml:"server"`
	Log      LogConfig         `toml:"log"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds dashboard settings.
type UIConfig struct {
	Theme     string `toml:"theme"`      // "dark", "light", "mocha", "latte"
	RefreshMS int    `toml:"refresh_ms"` // dashboard polling interval
	Quote     string `toml:"quote"`      // shown in the today view
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Themes lists the theme names accepted in [ui].theme.
var Themes = []string{"dark", "light", "mocha", "latte"}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Interval: 1,
		Alias:    map[string]string{},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme:     "dark",
			RefreshMS: 1000,
			Quote:     "Focus is the key to all success.",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7878",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "focusd.db"
	}
	return filepath.Join(home, ".local", "share", "focusd", "focusd.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "focusd", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)
	if cfg.Alias == nil {
		cfg.Alias = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies FOCUSD_* environment variables on top of file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("FOCUSD_INTERVAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FOCUSD_INTERVAL: %w", err)
		}
		cfg.Interval = n
	}
	if v := os.Getenv("FOCUSD_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("FOCUSD_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("FOCUSD_REFRESH_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FOCUSD_REFRESH_MS: %w", err)
		}
		cfg.UI.RefreshMS = n
	}
	if v := os.Getenv("FOCUSD_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("FOCUSD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FOCUSD_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d", c.Interval)
	}
	if c.UI.RefreshMS < 100 {
		return fmt.Errorf("refresh_ms must be at least 100, got %d", c.UI.RefreshMS)
	}
	if !IsTheme(c.UI.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(Themes, ", "))
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Server.Addr == "" {
		return errors.New("server addr must be set")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	for id, name := range c.Alias {
		if strings.TrimSpace(id) == "" || strings.TrimSpace(name) == "" {
			return fmt.Errorf("alias %q = %q: both sides must be non-empty", id, name)
		}
	}
	return nil
}

// IsTheme reports whether name is a known theme.
func IsTheme(name string) bool {
	name = strings.ToLower(name)
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// DisplayName returns the alias configured for appID, or appID itself.
func (c *Config) DisplayName(appID string) string {
	if name, ok := c.Alias[appID]; ok {
		return name
	}
	return appID
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
