package main

import (
	"errors"
	"os"

	graphviz "github.com/alnah/go-mdbook-graphviz"
	"github.com/alnah/go-mdbook-graphviz/internal/config"
	"github.com/alnah/go-mdbook-graphviz/internal/fileutil"
	"github.com/alnah/go-mdbook-graphviz/internal/mdbook"
)

// Exit codes for the mdbook-graphviz CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// mdBook only distinguishes zero from non-zero.
const (
	ExitSuccess  = 0 // Book processed, command succeeded, or renderer supported
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, input JSON or diagram block
	ExitIO       = 3 // File not found, permission denied
	ExitRenderer = 4 // dot could not be started or rejected a diagram
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Renderer errors (exit 4)
	if errors.Is(err, graphviz.ErrSpawnExhausted) ||
		errors.Is(err, graphviz.ErrRenderFailed) ||
		errors.Is(err, graphviz.ErrIO) {
		return ExitRenderer
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrNotMarkdown) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdbook.ErrInvalidInput) ||
		errors.Is(err, graphviz.ErrMalformedBlock) {
		return ExitUsage
	}

	return ExitGeneral
}
