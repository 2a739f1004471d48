// Package config loads runtime settings from defaults, an optional TOML file
// and IMAGE_MCP_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/ironsheep/image-editor-mcp/internal/logger"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "IMAGE_MCP_LOG_LEVEL"
	EnvWorkers   = "IMAGE_MCP_WORKERS"
	EnvOutputDir = "IMAGE_MCP_OUTPUT_DIR"
	EnvThreshold = "IMAGE_MCP_THRESHOLD"
)

// Config is the top-level configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error or disabled.
	LogLevel string `toml:"log_level"`

	// LogFormat is "json" or "console". Logs always go to stderr.
	LogFormat string `toml:"log_format"`

	// Workers bounds how many files the batch apply command processes at
	// once. 0 means runtime.NumCPU().
	Workers int `toml:"workers"`

	// OutputDir receives results when a request names no output path.
	// Empty means results are only returned, never written.
	OutputDir string `toml:"output_dir"`

	// Threshold is the default level of the threshold operation.
	Threshold int `toml:"threshold"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "json",
		Workers:   0,
		Threshold: 128,
	}
}

// Load starts from Default, applies the TOML file at path when path is not
// empty, then applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("config: unknown key %q in %s", undecoded[0].String(), path)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvThreshold); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvThreshold, err)
		}
		c.Threshold = n
	}
	return nil
}

// Validate returns an error if the configuration is inconsistent.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("config: log_format must be json or console, got %q", c.LogFormat)
	}
	if c.Workers < 0 {
		return errors.New("config: workers must not be negative")
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return errors.New("config: threshold must be between 0 and 255")
	}
	return nil
}

// WorkerCount resolves Workers, mapping 0 to the number of CPUs.
func (c Config) WorkerCount() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// NewLogger builds the logger described by c, writing to stderr.
func (c Config) NewLogger() (*logger.ZerologAdapter, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if c.LogFormat == "console" {
		return logger.NewConsole(os.Stderr, level), nil
	}
	return logger.NewZerolog(os.Stderr, level), nil
}
