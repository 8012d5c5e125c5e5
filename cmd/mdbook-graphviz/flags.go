package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdbook-graphviz/internal/config"
	"github.com/alnah/go-mdbook-graphviz/internal/pipeline"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// rendererFlags holds flags overriding renderer settings.
type rendererFlags struct {
	command string
	timeout string
	workers int
}

// preprocessFlags holds flags for the preprocess entry point.
type preprocessFlags struct {
	common   commonFlags
	renderer rendererFlags
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common   commonFlags
	renderer rendererFlags
	output   string
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common   commonFlags
	renderer rendererFlags
	output   string
	style    string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common   commonFlags
	renderer rendererFlags
	json     bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show each rendered diagram")
}

// addRendererFlags adds renderer override flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.command, "command", "", "Graphviz executable (default: dot)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-diagram timeout (e.g., 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent dot processes (0 = auto)")
}

// toConfig returns the flag values as a config overlay.
func (f rendererFlags) toConfig() *config.Config {
	return &config.Config{
		Renderer: config.RendererConfig{
			Command: f.command,
			Timeout: f.timeout,
		},
		Workers: f.workers,
	}
}

// newFlagSet creates a FlagSet whose errors are returned, not printed.
func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parse parses args, marking failures as usage errors.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		fs.Usage()
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parsePreprocessFlags parses flags given to the preprocess entry point.
func parsePreprocessFlags(args []string, stderr io.Writer) (*preprocessFlags, []string, error) {
	f := &preprocessFlags{}
	fs := newFlagSet("mdbook-graphviz", stderr, printUsage)
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)

	positional, err := parse(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", stderr, printRenderUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default: in place)")
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)

	positional, err := parse(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, stderr io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := newFlagSet("preview", stderr, printPreviewUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default: <input>.html)")
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "code highlighting style")
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)

	positional, err := parse(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", stderr, printDoctorUsage)
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)

	positional, err := parse(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, stderr io.Writer) (*preprocessFlags, []string, error) {
	f := &preprocessFlags{}
	fs := newFlagSet("config", stderr, printConfigUsage)
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)

	positional, err := parse(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
// main needs it before any flag set is parsed.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-v", "--verbose":
			return true
		}
	}
	return false
}
