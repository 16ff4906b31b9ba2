// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     config
// Description: Typed application configuration (TOML or YAML)
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	mdwconfig "github.com/msto63/knuth/foundation/core/config"
	mdwerror "github.com/msto63/knuth/foundation/core/error"
)

// EnvConfigPath names the environment variable that points at the config file
const EnvConfigPath = "KNUTH_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Render  RenderConfig  `toml:"render" yaml:"render"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	Preview PreviewConfig `toml:"preview" yaml:"preview"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	DataDir     string `toml:"data_dir" yaml:"data_dir"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
}

// RenderConfig holds parser and layout settings
type RenderConfig struct {
	DefaultStyle     string `toml:"default_style" yaml:"default_style"`
	MaxInputLength   int    `toml:"max_input_length" yaml:"max_input_length"`
	MaxDepth         int    `toml:"max_depth" yaml:"max_depth"`
	DisableFractions bool   `toml:"disable_fractions" yaml:"disable_fractions"`
}

// ServerConfig holds gRPC and HTTP listener settings
type ServerConfig struct {
	Host             string   `toml:"host" yaml:"host"`
	GRPCPort         int      `toml:"grpc_port" yaml:"grpc_port"`
	HTTPPort         int      `toml:"http_port" yaml:"http_port"`
	ReadTimeout      Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout     Duration `toml:"write_timeout" yaml:"write_timeout"`
	EnableReflection bool     `toml:"enable_reflection" yaml:"enable_reflection"`
}

// CacheConfig holds render cache settings
type CacheConfig struct {
	Enabled  bool     `toml:"enabled" yaml:"enabled"`
	MaxItems int      `toml:"max_items" yaml:"max_items"`
	TTL      Duration `toml:"ttl" yaml:"ttl"`
	Path     string   `toml:"path" yaml:"path"` // SQLite file; empty keeps the cache in memory only
}

// PreviewConfig holds settings for the interactive preview
type PreviewConfig struct {
	InitialInput string `toml:"initial_input" yaml:"initial_input"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	var cfg Config
	if err := mdwconfig.LoadInto(path, &cfg, mdwconfig.LoadOptions{ExpandEnv: true}); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the KNUTH_CONFIG environment variable
// or, if unset, from the first file found in the default locations
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		found, err := mdwconfig.FindConfigFile(mdwconfig.DefaultDiscoveryOptions("knuth"))
		if err != nil {
			return nil, mdwerror.Wrap(err, fmt.Sprintf("no config file found, set %s or create configs/knuth.toml", EnvConfigPath)).
				WithCode(mdwerror.CodeMissingConfig).
				WithOperation("config.LoadFromEnv")
		}
		path = found
	}
	return Load(path)
}

// LoadOrDefault behaves like LoadFromEnv but falls back to Default when no
// file exists. An explicit path must exist.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := LoadFromEnv()
	if mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
		return Default(), nil
	}
	return cfg, err
}

// Write encodes the configuration as TOML. Existing files are only replaced
// when overwrite is set.
func (c *Config) Write(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return mdwerror.New("config file already exists").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.Write").
				WithDetail("path", path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return mdwerror.Wrap(err, "failed to create config directory").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.Write")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return mdwerror.Wrap(err, "failed to create config file").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Write").
			WithDetail("path", path)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return mdwerror.Wrap(err, "failed to encode config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Write")
	}
	return nil
}

// Validate rejects values the services cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Render.MaxInputLength < 0:
		return invalid("render.max_input_length", c.Render.MaxInputLength)
	case c.Render.MaxDepth < 0:
		return invalid("render.max_depth", c.Render.MaxDepth)
	case c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535:
		return invalid("server.grpc_port", c.Server.GRPCPort)
	case c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535:
		return invalid("server.http_port", c.Server.HTTPPort)
	case c.Cache.MaxItems < 0:
		return invalid("cache.max_items", c.Cache.MaxItems)
	}
	return nil
}

func invalid(key string, value interface{}) error {
	return mdwerror.New(fmt.Sprintf("invalid value for %s: %v", key, value)).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("key", key)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "knuth"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Render
	if c.Render.DefaultStyle == "" {
		c.Render.DefaultStyle = "text"
	}
	if c.Render.MaxInputLength == 0 {
		c.Render.MaxInputLength = 4096
	}
	if c.Render.MaxDepth == 0 {
		c.Render.MaxDepth = 64
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9310
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8310
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 30 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}

	// Cache
	if c.Cache.MaxItems == 0 {
		c.Cache.MaxItems = 1024
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = time.Hour
	}

	// Preview
	if c.Preview.InitialInput == "" {
		c.Preview.InitialInput = `\frac{a}{b}+x^2`
	}
}

// GRPCAddress returns the gRPC listen address
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}

// HTTPAddress returns the HTTP listen address
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// CachePath returns the SQLite cache path relative to the data directory
func (c *Config) CachePath() string {
	if c.Cache.Path == "" || filepath.IsAbs(c.Cache.Path) {
		return c.Cache.Path
	}
	return filepath.Join(c.General.DataDir, c.Cache.Path)
}
