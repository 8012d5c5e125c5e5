package main

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-mdbook-graphviz/internal/config"
)

// envPrefix starts every variable read by the CLI.
const envPrefix = "MDBOOK_GRAPHVIZ_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without editing book.toml.
type envConfig struct {
	ConfigPath string // MDBOOK_GRAPHVIZ_CONFIG: config file name or path
	Command    string // MDBOOK_GRAPHVIZ_COMMAND: Graphviz executable
	Timeout    string // MDBOOK_GRAPHVIZ_TIMEOUT: per-diagram timeout
	Workers    int    // MDBOOK_GRAPHVIZ_WORKERS: concurrent dot processes
}

// knownEnvVars lists valid MDBOOK_GRAPHVIZ_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDBOOK_GRAPHVIZ_CONFIG":  true,
	"MDBOOK_GRAPHVIZ_COMMAND": true,
	"MDBOOK_GRAPHVIZ_TIMEOUT": true,
	"MDBOOK_GRAPHVIZ_WORKERS": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed worker counts are ignored; timeouts are checked by Validate.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDBOOK_GRAPHVIZ_CONFIG"),
		Command:    getenv("MDBOOK_GRAPHVIZ_COMMAND"),
		Timeout:    getenv("MDBOOK_GRAPHVIZ_TIMEOUT"),
	}

	if workers := getenv("MDBOOK_GRAPHVIZ_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// toConfig returns the environment values as a config overlay.
func (e *envConfig) toConfig() *config.Config {
	return &config.Config{
		Renderer: config.RendererConfig{
			Command: e.Command,
			Timeout: e.Timeout,
		},
		Workers: e.Workers,
	}
}

// warnUnknownEnvVars logs warnings for unrecognized MDBOOK_GRAPHVIZ_* variables.
// Helps catch typos like MDBOOK_GRAPHVIZ_WORKER.
func warnUnknownEnvVars(environ []string, logger zerolog.Logger) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn().Str("variable", name).Msg("unknown environment variable (typo?)")
		}
	}
}
