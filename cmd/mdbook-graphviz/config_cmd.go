package main

import (
	"fmt"

	"github.com/alnah/go-mdbook-graphviz/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML, after the config
// file, environment and flags are applied. book.toml is not read.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	cfg, err := resolveConfig(flags.common, flags.renderer, nil, loadEnvConfig(env.getenv))
	if err != nil {
		return err
	}

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
