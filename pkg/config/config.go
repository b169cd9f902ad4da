// Package config loads mazeroute settings from a TOML file.
//
// The file lives at ~/.config/mazeroute/config.toml (XDG_CONFIG_HOME is
// honored) and every field has a usable default, so a missing file is not an
// error. Command-line flags override file values.
//
// Example:
//
//	[cache]
//	backend = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "debug"
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/mazeroute/mazeroute/pkg/errors"
)

// appName names the directory the config file lives under.
const appName = "mazeroute"

// Cache backend names accepted in [CacheConfig].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// CacheConfig selects and parameterizes the cache backend.
type CacheConfig struct {
	// Backend picks the implementation: "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file backend's directory. Empty means the XDG
	// cache home under mazeroute/.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig parameterizes the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ServerConfig parameterizes the API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig parameterizes logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads the file at path on top of the defaults and validates the
// result. Unknown keys are tolerated so configs survive version skew.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the standard config file, returning plain defaults when
// it does not exist.
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Path returns the standard config file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Validate checks every field against its accepted values.
func (c *Config) Validate() error {
	if err := apperrors.ValidateCacheBackend(c.Cache.Backend); err != nil {
		return err
	}
	if err := apperrors.ValidateListenAddr(c.Server.Addr); err != nil {
		return err
	}
	return apperrors.ValidateLogLevel(c.Log.Level)
}
