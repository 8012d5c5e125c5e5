package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every package the CLI
//   surfaces, plus wrapped errors to verify the errors.Is() chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	graphviz "github.com/alnah/go-mdbook-graphviz"
	"github.com/alnah/go-mdbook-graphviz/internal/config"
	"github.com/alnah/go-mdbook-graphviz/internal/fileutil"
	"github.com/alnah/go-mdbook-graphviz/internal/mdbook"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Renderer errors (exit 4)
		{"spawn exhausted", graphviz.ErrSpawnExhausted, ExitRenderer},
		{"render failed", graphviz.ErrRenderFailed, ExitRenderer},
		{"renderer io", graphviz.ErrIO, ExitRenderer},
		{"chapter error", &graphviz.ChapterError{Chapter: "Intro", Block: "intro_0.generated.svg", Err: graphviz.ErrRenderFailed}, ExitRenderer},
		{"hinted render failure", &hintedError{err: graphviz.ErrSpawnExhausted, hint: "\n  hint: x"}, ExitRenderer},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"not markdown", fileutil.ErrNotMarkdown, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("%w: %w", ErrReadMarkdown, os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"invalid input", mdbook.ErrInvalidInput, ExitUsage},
		{"malformed block", &graphviz.ChapterError{Chapter: "Intro", Err: graphviz.ErrMalformedBlock}, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("unknown"), ExitGeneral},
		{"unsupported renderer", ErrUnsupportedRenderer, ExitGeneral},
		{"shape mismatch", mdbook.ErrShapeMismatch, ExitGeneral},
		{"serialization", graphviz.ErrSerialization, ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Exit code values
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	// Custom codes must stay below 126 (reserved by shells).
	for _, code := range []int{ExitIO, ExitRenderer} {
		if code >= 126 {
			t.Errorf("exit code %d should be < 126", code)
		}
	}
}
