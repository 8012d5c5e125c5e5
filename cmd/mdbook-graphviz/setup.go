package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	graphviz "github.com/alnah/go-mdbook-graphviz"
	"github.com/alnah/go-mdbook-graphviz/internal/config"
	"github.com/alnah/go-mdbook-graphviz/internal/fileutil"
	"github.com/alnah/go-mdbook-graphviz/internal/hints"
	"github.com/alnah/go-mdbook-graphviz/internal/mdbook"
)

// session is the resolved state a command runs with.
type session struct {
	cfg          *config.Config
	logger       zerolog.Logger
	preprocessor *graphviz.Preprocessor
}

// setup resolves configuration, then builds the logger and preprocessor.
// book is nil outside mdBook.
func setup(common commonFlags, rf rendererFlags, book *mdbook.Options, env *Environment) (*session, error) {
	envCfg := loadEnvConfig(env.getenv)

	cfg, err := resolveConfig(common, rf, book, envCfg)
	if err != nil {
		return nil, err
	}

	logger := newLogger(env.Stderr, cfg.Log.Level, common)
	warnUnknownEnvVars(env.environ(), logger)

	p, err := newPreprocessor(cfg, env, logger)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, logger: logger, preprocessor: p}, nil
}

// resolveConfig layers configuration sources, lowest first: defaults, the
// YAML file, the book's [preprocessor.graphviz] table, environment, flags.
func resolveConfig(common commonFlags, rf rendererFlags, book *mdbook.Options, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	configName := common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		fileCfg, err := config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(configName) {
				return nil, &hintedError{err: err, hint: hints.ForConfigNotFound(config.SearchPaths(configName))}
			}
			return nil, err
		}
		cfg.Merge(fileCfg)
	}

	if book != nil {
		cfg.Merge(bookConfig(*book))
	}
	cfg.Merge(envCfg.toConfig())
	cfg.Merge(rf.toConfig())

	if err := cfg.Validate(); err != nil {
		if book != nil && *book != (mdbook.Options{}) {
			return nil, &hintedError{err: err, hint: hints.ForBookConfig()}
		}
		return nil, err
	}

	return cfg, nil
}

// bookConfig returns the book.toml settings as a config overlay.
func bookConfig(opts mdbook.Options) *config.Config {
	return &config.Config{
		Renderer: config.RendererConfig{
			Command:     opts.Command,
			Timeout:     opts.Timeout,
			MaxAttempts: opts.MaxAttempts,
		},
		Workers: opts.Workers,
	}
}

// newPreprocessor builds a Preprocessor from a validated config.
func newPreprocessor(cfg *config.Config, env *Environment, logger zerolog.Logger) (*graphviz.Preprocessor, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, fmt.Errorf("resolving timeout: %w", err)
	}

	renderer := env.Renderer
	if renderer == nil {
		renderer = &graphviz.CommandRenderer{
			Command:     cfg.Renderer.Command,
			Format:      strings.ToLower(cfg.Renderer.Format),
			Timeout:     timeout,
			MaxAttempts: cfg.Renderer.MaxAttempts,
			Stderr:      env.Stderr,
			Logger:      logger,
		}
	}

	return graphviz.New(
		graphviz.WithRenderer(renderer),
		graphviz.WithWorkers(cfg.Workers),
		graphviz.WithLogger(logger),
	), nil
}
