package main

import (
	"context"
	"fmt"

	graphviz "github.com/alnah/go-mdbook-graphviz"
	"github.com/alnah/go-mdbook-graphviz/internal/mdbook"
)

// runPreprocess reads mdBook's [context, book] JSON from stdin and writes
// the processed book JSON to stdout.
func runPreprocess(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreprocessFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	in, err := mdbook.ReadInput(env.Stdin)
	if err != nil {
		return err
	}

	opts := in.Context.Options()
	s, err := setup(flags.common, flags.renderer, &opts, env)
	if err != nil {
		return err
	}

	srcDir := in.Context.SourceDir()
	s.logger.Debug().
		Str("renderer", in.Context.Renderer).
		Str("mdbook_version", in.Context.Version).
		Str("src", srcDir).
		Msg("preprocessing book")

	book, err := s.preprocessor.Run(ctx, in.Book, srcDir)
	if err != nil {
		return withHint(err, s.cfg.Renderer.Command)
	}

	out, err := in.Encode(book)
	if err != nil {
		return err
	}

	if _, err := env.Stdout.Write(out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// runSupports answers mdBook's "supports <renderer>" probe.
// A nil error (exit 0) means supported.
func runSupports(args []string, env *Environment) error {
	if len(args) != 1 {
		printSupportsUsage(env.Stderr)
		return fmt.Errorf("%w: supports takes exactly one renderer name", ErrUsage)
	}

	if !graphviz.New().SupportsRenderer(args[0]) {
		return fmt.Errorf("%w: %s", ErrUnsupportedRenderer, args[0])
	}
	return nil
}
