package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	graphviz "github.com/alnah/go-mdbook-graphviz"
	"github.com/alnah/go-mdbook-graphviz/internal/fileutil"
	"github.com/alnah/go-mdbook-graphviz/internal/pipeline"
)

// runPreview renders one file's diagrams and writes a standalone HTML page.
// The source file is left untouched; artifacts are written next to it.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		printPreviewUsage(env.Stderr)
		return fmt.Errorf("%w: preview takes one markdown file", ErrUsage)
	}
	input := positional[0]

	if !fileutil.IsMarkdown(input) {
		return fmt.Errorf("%w: %s", fileutil.ErrNotMarkdown, input)
	}
	data, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	content := string(data)

	s, err := setup(flags.common, flags.renderer, nil, env)
	if err != nil {
		return err
	}

	dir, err := filepath.Abs(filepath.Dir(input))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	name := chapterName(content, input)
	processed, err := s.preprocessor.ProcessChapter(ctx, &graphviz.Chapter{
		Name:    name,
		Path:    filepath.Base(input),
		Content: content,
	}, dir)
	if err != nil {
		return withHint(err, s.cfg.Renderer.Command)
	}

	page, err := buildPreview(ctx, pipeline.NewGoldmarkConverter(flags.style), name, processed.Content, dir, flags.style)
	if err != nil {
		return err
	}

	outPath := flags.output
	if outPath == "" {
		outPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".html"
	}
	if err := fileutil.WriteFileAtomic(outPath, []byte(page), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	s.logger.Info().Str("output", outPath).Msg("preview written")
	return nil
}

// buildPreview converts processed Markdown to a styled HTML page whose
// diagram references resolve from anywhere.
func buildPreview(ctx context.Context, conv pipeline.HTMLConverter, title, content, baseDir, style string) (string, error) {
	page, err := conv.ToHTML(ctx, title, content)
	if err != nil {
		return "", err
	}

	page, err = pipeline.ResolveImages(page, baseDir)
	if err != nil {
		return "", err
	}

	css, err := pipeline.HighlightCSS(style)
	if err != nil {
		return "", err
	}

	return pipeline.InjectCSS(page, pipeline.BaseCSS+css), nil
}
