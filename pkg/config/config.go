// Package config loads treechart configuration from TOML files.
//
// Configuration is optional: every field has a working default, and CLI
// flags override file values. The file is looked up at the path given by
// the TREECHART_CONFIG environment variable, then at
// $HOME/.config/treechart/config.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/parentevalerio/infovis-trees/pkg/errors"
	"github.com/parentevalerio/infovis-trees/pkg/pipeline"
)

// EnvConfigPath names the environment variable overriding the config
// file location.
const EnvConfigPath = "TREECHART_CONFIG"

// Config is the full configuration file.
type Config struct {
	Chart  ChartConfig  `toml:"chart"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// ChartConfig holds rendering defaults.
type ChartConfig struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Padding float64 `toml:"padding"`
	Style   string  `toml:"style"`
	Title   string  `toml:"title"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir is the file backend's directory. Empty means the user cache dir.
	Dir string `toml:"dir"`
	// RedisAddr is the redis backend's host:port.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// MongoConfig holds the optional MongoDB dataset source.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Chart: ChartConfig{
			Width:   pipeline.DefaultWidth,
			Height:  pipeline.DefaultHeight,
			Padding: pipeline.DefaultPadding,
			Style:   pipeline.DefaultStyle,
		},
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Backend: "file"},
	}
}

// Load reads the config file at path. Fields absent from the file keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "read config file %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config file %s", path)
	}
	return cfg, nil
}

// Discover loads configuration from the standard locations: the
// TREECHART_CONFIG environment variable if set, otherwise
// $HOME/.config/treechart/config.toml. A missing file is not an error;
// the defaults are returned.
func Discover() (Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	path := filepath.Join(home, ".config", "treechart", "config.toml")
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}
