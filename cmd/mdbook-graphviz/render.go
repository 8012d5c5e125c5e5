package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	graphviz "github.com/alnah/go-mdbook-graphviz"
	"github.com/alnah/go-mdbook-graphviz/internal/fileutil"
	"github.com/alnah/go-mdbook-graphviz/internal/hints"
	"github.com/alnah/go-mdbook-graphviz/internal/markup"
)

// runRender processes standalone Markdown files, outside mdBook.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		printRenderUsage(env.Stderr)
		return fmt.Errorf("%w: render takes one file or directory", ErrUsage)
	}
	input := positional[0]

	files, err := fileutil.FindMarkdown(input)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: %s", ErrNoInput, input)
	}

	s, err := setup(flags.common, flags.renderer, nil, env)
	if err != nil {
		return err
	}

	baseDir := input
	if len(files) == 1 && files[0] == input {
		baseDir = ""
	}

	changed := 0
	for _, file := range files {
		outPath := resolveOutputPath(file, flags.output, baseDir)
		wrote, err := renderFile(ctx, s.preprocessor, file, outPath)
		if err != nil {
			return withHint(fmt.Errorf("%s: %w", file, err), s.cfg.Renderer.Command)
		}
		if wrote {
			changed++
			s.logger.Debug().Str("input", file).Str("output", outPath).Msg("diagrams rendered")
		}
	}

	s.logger.Info().Int("files", len(files)).Int("changed", changed).Msg("render complete")
	return nil
}

// renderFile processes one file and writes the result to outPath.
// Artifacts land next to outPath so the rewritten references resolve.
// Reports false when the file had no diagrams and is rewritten in place.
func renderFile(ctx context.Context, p *graphviz.Preprocessor, path, outPath string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	content := string(data)

	outDir := filepath.Dir(outPath)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return false, &hintedError{err: fmt.Errorf("%w: %w", ErrWriteOutput, err), hint: hints.ForOutputDirectory()}
	}

	ch := &graphviz.Chapter{
		Name:    chapterName(content, path),
		Path:    filepath.Base(path),
		Content: content,
	}
	processed, err := p.ProcessChapter(ctx, ch, outDir)
	if err != nil {
		return false, err
	}

	if processed.Content == content && filepath.Clean(outPath) == filepath.Clean(path) {
		return false, nil
	}

	if err := fileutil.WriteFileAtomic(outPath, []byte(processed.Content), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return true, nil
}

// resolveOutputPath determines where the processed copy of inputPath goes.
// An empty outputDir rewrites in place; an output ending in a Markdown
// extension is a file; otherwise the tree under baseInputDir is mirrored.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return inputPath
	}

	if fileutil.IsMarkdown(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil && !strings.HasPrefix(relPath, "..") {
			return filepath.Join(outputDir, relPath)
		}
	}

	return filepath.Join(outputDir, filepath.Base(inputPath))
}

// chapterName names a standalone file the way mdBook names chapters: by its
// first level-1 heading, falling back to the file name without extension.
func chapterName(markdown, path string) string {
	if name := markup.FirstHeading(markdown); name != "" {
		return name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
