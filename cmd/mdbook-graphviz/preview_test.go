package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdbook-graphviz/internal/pipeline"
)

// failingConverter is an HTMLConverter that always fails.
type failingConverter struct{ err error }

func (c failingConverter) ToHTML(context.Context, string, string) (string, error) {
	return "", c.err
}

func TestBuildPreview(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "# Title\n\n![Flow](title_flow_0.generated.svg \"Flow\")\n\n```go\nfunc main() {}\n```\n"

	page, err := buildPreview(context.Background(), pipeline.NewGoldmarkConverter(""), "Title", content, dir, pipeline.DefaultStyle)
	if err != nil {
		t.Fatalf("buildPreview() error: %v", err)
	}

	for _, want := range []string{
		"<title>Title</title>",
		"<style>",
		"img." + pipeline.DiagramClass,
		`class="` + pipeline.DiagramClass + `"`,
		"file://",
		"title_flow_0.generated.svg",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page should contain %q", want)
		}
	}
	if strings.Index(page, "<style>") > strings.Index(page, "</head>") {
		t.Error("stylesheet should be injected in <head>")
	}
}

func TestBuildPreview_ConverterError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("conversion failed")
	_, err := buildPreview(context.Background(), failingConverter{err: wantErr}, "T", "# T", t.TempDir(), pipeline.DefaultStyle)
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

func TestRunPreview(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"design.md": "# Design\n\n```dot process Arch\ndigraph { api -> db }\n```\n",
	})
	input := filepath.Join(dir, "design.md")
	r := &fileRenderer{}
	env, _, stderr := newTestEnv("", r)

	code := runMain(context.Background(), []string{"mdbook-graphviz", "preview", input}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}

	page := readFile(t, filepath.Join(dir, "design.html"))
	if !strings.Contains(page, "design_arch_0.generated.svg") {
		t.Errorf("page should reference the diagram, got %q", page)
	}
	if _, err := os.Stat(filepath.Join(dir, "design_arch_0.generated.svg")); err != nil {
		t.Errorf("diagram should be rendered next to the source: %v", err)
	}
	if got := readFile(t, input); !strings.Contains(got, "dot process") {
		t.Error("source file should be untouched")
	}
}

func TestRunPreview_OutputFlag(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"doc.md": "# Doc\n"})
	out := filepath.Join(dir, "page.html")
	env, _, stderr := newTestEnv("", &fileRenderer{})

	code := runMain(context.Background(), []string{"mdbook-graphviz", "preview", "-o", out, "--style", "monokai", filepath.Join(dir, "doc.md")}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}
	if page := readFile(t, out); !strings.Contains(page, "<h1") {
		t.Errorf("page = %q, want rendered heading", page)
	}
}

func TestRunPreview_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"no argument", []string{"mdbook-graphviz", "preview"}, ExitUsage},
		{"not markdown", []string{"mdbook-graphviz", "preview", "notes.txt"}, ExitIO},
		{"missing file", []string{"mdbook-graphviz", "preview", "missing.md"}, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := newTestEnv("", &fileRenderer{})
			if code := runMain(context.Background(), tt.args, env); code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
		})
	}
}
