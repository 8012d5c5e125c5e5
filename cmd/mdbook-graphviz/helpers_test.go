package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake renderer and hermetic environment
// ---------------------------------------------------------------------------

// fileRenderer writes a placeholder SVG instead of running dot.
type fileRenderer struct {
	mu    sync.Mutex
	paths []string

	// err, when set, is returned for every render.
	err error
}

func (r *fileRenderer) Render(_ context.Context, code, outputPath string) error {
	r.mu.Lock()
	r.paths = append(r.paths, outputPath)
	r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	svg := "<svg><!-- " + strings.ReplaceAll(code, "--", "- -") + " --></svg>"
	return os.WriteFile(outputPath, []byte(svg), 0o644)
}

func (r *fileRenderer) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// newTestEnv returns an environment with no variables set, no executables
// on PATH, and the given stdin and renderer.
func newTestEnv(stdin string, r *fileRenderer) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdin:    strings.NewReader(stdin),
		Stdout:   &stdout,
		Stderr:   &stderr,
		Getenv:   func(string) string { return "" },
		Environ:  func() []string { return nil },
		LookPath: func(file string) (string, error) { return "", errors.New("executable file not found in $PATH") },
	}
	if r != nil {
		env.Renderer = r
	}
	return env, &stdout, &stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
