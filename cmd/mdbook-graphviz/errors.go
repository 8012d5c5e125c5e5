package main

import (
	"context"
	"errors"

	graphviz "github.com/alnah/go-mdbook-graphviz"
	"github.com/alnah/go-mdbook-graphviz/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage               = errors.New("invalid usage")
	ErrNoInput             = errors.New("no markdown files found")
	ErrReadMarkdown        = errors.New("failed to read markdown")
	ErrWriteOutput         = errors.New("failed to write output")
	ErrUnsupportedRenderer = errors.New("renderer not supported")
)

// hintedError appends an actionable hint to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string {
	return e.err.Error() + e.hint
}

func (e *hintedError) Unwrap() error {
	return e.err
}

// withHint attaches the hint matching a render failure, if any.
func withHint(err error, command string) error {
	if err == nil {
		return nil
	}

	var hint string
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, graphviz.ErrSpawnExhausted):
		hint = hints.ForRendererNotFound(command)
	case errors.Is(err, graphviz.ErrRenderFailed):
		hint = hints.ForRenderFailed()
	}

	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}
