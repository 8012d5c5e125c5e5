package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func mapGetenv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable parsing
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want envConfig
	}{
		{
			name: "nothing set",
			vars: nil,
			want: envConfig{},
		},
		{
			name: "all set",
			vars: map[string]string{
				"MDBOOK_GRAPHVIZ_CONFIG":  "book",
				"MDBOOK_GRAPHVIZ_COMMAND": "/usr/bin/dot",
				"MDBOOK_GRAPHVIZ_TIMEOUT": "30s",
				"MDBOOK_GRAPHVIZ_WORKERS": "4",
			},
			want: envConfig{ConfigPath: "book", Command: "/usr/bin/dot", Timeout: "30s", Workers: 4},
		},
		{
			name: "malformed workers ignored",
			vars: map[string]string{"MDBOOK_GRAPHVIZ_WORKERS": "many"},
			want: envConfig{},
		},
		{
			name: "negative workers ignored",
			vars: map[string]string{"MDBOOK_GRAPHVIZ_WORKERS": "-2"},
			want: envConfig{},
		},
		{
			name: "timeout kept verbatim for validation",
			vars: map[string]string{"MDBOOK_GRAPHVIZ_TIMEOUT": "soon"},
			want: envConfig{Timeout: "soon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := loadEnvConfig(mapGetenv(tt.vars))
			if *got != tt.want {
				t.Errorf("loadEnvConfig() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestEnvConfig_ToConfig(t *testing.T) {
	t.Parallel()

	e := &envConfig{ConfigPath: "ignored", Command: "dot2", Timeout: "1m", Workers: 2}
	cfg := e.toConfig()

	if cfg.Renderer.Command != "dot2" || cfg.Renderer.Timeout != "1m" || cfg.Workers != 2 {
		t.Errorf("toConfig() = %+v", cfg)
	}
	if cfg.Renderer.Format != "" || cfg.Renderer.MaxAttempts != 0 {
		t.Errorf("toConfig() should leave unset fields zero, got %+v", cfg.Renderer)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	warnUnknownEnvVars([]string{
		"MDBOOK_GRAPHVIZ_WORKERS=4",
		"MDBOOK_GRAPHVIZ_WORKER=4",
		"MDBOOK_GRAPHVIZ_TIMOUT=1s",
		"HOME=/root",
		"MDBOOK_BUILD__BUILD_DIR=out",
	}, logger)

	out := buf.String()
	for _, want := range []string{"MDBOOK_GRAPHVIZ_WORKER\"", "MDBOOK_GRAPHVIZ_TIMOUT"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should warn about %s, got %q", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("got %d warnings, want 2: %q", got, out)
	}
}
