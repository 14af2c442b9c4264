// Package config loads the learning-path server's configuration, layering
// defaults, an optional TOML file, and environment variables, in that
// order of increasing precedence.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the learning-path server.
// Precedence: environment variables > config file > defaults.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
	Generation GenerationConfig `toml:"generation"`
}

// ServerConfig holds MCP server metadata.
type ServerConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// GenerationConfig holds the parallel-learning settings that the generate
// command puts into its GenerateRequest. Requests received through the MCP
// server do not read them.
type GenerationConfig struct {
	AllowParallelLearning bool `toml:"allow_parallel_learning"`
	MaxParallelNodes      int  `toml:"max_parallel_nodes"`
}

// Load creates a Config by reading from a TOML config file and environment
// variables. Precedence: environment variables > config file > defaults.
//
// Config file search order (first found wins):
//  1. Path passed via configPath parameter (from --config flag)
//  2. LEARNINGPATH_CONFIG environment variable
//  3. ./learningpath.toml (current directory)
//  4. ~/.config/learningpath/learningpath.toml (XDG-style)
//
// All fields are optional in the config file. Environment variables always
// override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Name:    "learningpath",
			Version: "0.1.0",
		},
		Log: LogConfig{
			Level: "info",
		},
		Generation: GenerationConfig{
			AllowParallelLearning: true,
			MaxParallelNodes:      3,
		},
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile finds and parses the TOML config file. If no file is found,
// this is a no-op (config file is optional).
func (c *Config) loadFile(configPath string) error {
	path := resolveConfigPath(configPath)
	if path == "" {
		return nil // no config file found; rely on defaults + env
	}

	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return nil
}

// resolveConfigPath determines which config file to use. Returns empty
// string if no config file is found (config file is optional).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit // caller wants this file; let DecodeFile report if missing
	}

	if p := os.Getenv("LEARNINGPATH_CONFIG"); p != "" {
		return p
	}

	if _, err := os.Stat("learningpath.toml"); err == nil {
		return "learningpath.toml"
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/learningpath/learningpath.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnv overlays environment variables on top of existing config values.
// An env var only takes effect if it is set.
func (c *Config) applyEnv() {
	envOverride("LEARNINGPATH_LOG_LEVEL", &c.Log.Level)

	if v := os.Getenv("LEARNINGPATH_ALLOW_PARALLEL_LEARNING"); v != "" {
		c.Generation.AllowParallelLearning = (v == "true" || v == "1")
	}
	if v := os.Getenv("LEARNINGPATH_MAX_PARALLEL_NODES"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			c.Generation.MaxParallelNodes = n
		}
	}
}

// Validate checks that required fields are present and well-formed.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Log.Level)
	}
	if c.Generation.MaxParallelNodes < 1 {
		return fmt.Errorf("generation.max_parallel_nodes must be at least 1, got %d", c.Generation.MaxParallelNodes)
	}
	return nil
}

// envOverride sets *dst to the value of the named env var, if it is set.
func envOverride(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
