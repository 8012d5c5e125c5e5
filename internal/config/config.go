package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdbook-graphviz/internal/fileutil"
	"github.com/alnah/go-mdbook-graphviz/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Limits on config values.
const (
	MaxCommandLength = 4096 // PATH_MAX on Linux
	MaxAttemptsLimit = 20   // Worst-case backoff stays well under a minute
	MaxWorkers       = 64   // Far beyond useful for CPU-bound dot processes
)

// AppName names the per-user config directory.
const AppName = "mdbook-graphviz"

// Config holds all settings of the preprocessor.
type Config struct {
	Renderer RendererConfig `yaml:"renderer"`
	Workers  int            `yaml:"workers"` // Concurrent renders, 0 = auto
	Log      LogConfig      `yaml:"log"`
}

// RendererConfig defines how diagrams are rendered.
type RendererConfig struct {
	Command     string `yaml:"command"`     // Executable (default: "dot")
	Format      string `yaml:"format"`      // Output format, only "svg"
	Timeout     string `yaml:"timeout"`     // Per-block limit as a Go duration, empty or "0" = none
	MaxAttempts int    `yaml:"maxAttempts"` // Start attempts (default: 5)
}

// LogConfig defines log output.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error" (default: "info")
}

// TimeoutDuration parses Renderer.Timeout. An empty timeout is zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Renderer.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Renderer.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: renderer.timeout: %v", ErrInvalidValue, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: renderer.timeout: must not be negative, got %s", ErrInvalidValue, c.Renderer.Timeout)
	}
	return d, nil
}

// Validate checks value ranges. Called by LoadConfig, and again by callers
// after merging other sources into a Config.
func (c *Config) Validate() error {
	if err := validateFieldLength("renderer.command", c.Renderer.Command, MaxCommandLength); err != nil {
		return err
	}
	if strings.TrimSpace(c.Renderer.Command) != c.Renderer.Command {
		return fmt.Errorf("%w: renderer.command: surrounding whitespace in %q", ErrInvalidValue, c.Renderer.Command)
	}

	// Artifacts are always referenced as .svg.
	if c.Renderer.Format != "" && !strings.EqualFold(c.Renderer.Format, "svg") {
		return fmt.Errorf("%w: renderer.format: only svg is supported, got %q", ErrInvalidValue, c.Renderer.Format)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if c.Renderer.MaxAttempts < 0 || c.Renderer.MaxAttempts > MaxAttemptsLimit {
		return fmt.Errorf("%w: renderer.maxAttempts: must be between 0 and %d, got %d", ErrInvalidValue, MaxAttemptsLimit, c.Renderer.MaxAttempts)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return fmt.Errorf("%w: log.level: invalid value %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Renderer: RendererConfig{
			Command:     "dot",
			Format:      "svg",
			Timeout:     "", // no execution limit
			MaxAttempts: 5,
		},
		Workers: 0,
		Log:     LogConfig{Level: "info"},
	}
}

// Merge overlays the set (non-zero) fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Renderer.Command != "" {
		c.Renderer.Command = other.Renderer.Command
	}
	if other.Renderer.Format != "" {
		c.Renderer.Format = other.Renderer.Format
	}
	if other.Renderer.Timeout != "" {
		c.Renderer.Timeout = other.Renderer.Timeout
	}
	if other.Renderer.MaxAttempts != 0 {
		c.Renderer.MaxAttempts = other.Renderer.MaxAttempts
	}
	if other.Workers != 0 {
		c.Workers = other.Workers
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return &cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// current directory, then <user config dir>/mdbook-graphviz/, each with
// .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
