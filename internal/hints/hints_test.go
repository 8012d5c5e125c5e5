package hints

// Notes:
// - ForRendererNotFound tests cannot use t.Parallel() because they modify the
//   package-level IsInContainer variable.

import (
	"strings"
	"testing"
)

func TestForRendererNotFound_Host(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	hint := ForRendererNotFound("dot")

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint = %q, want hint prefix", hint)
	}
	if !strings.Contains(hint, "graphviz.org") {
		t.Error("expected install link outside containers")
	}
	if !strings.Contains(hint, "MDBOOK_GRAPHVIZ_COMMAND") {
		t.Error("expected command override suggestion for default command")
	}
}

func TestForRendererNotFound_Container(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	hint := ForRendererNotFound("dot")

	if !strings.Contains(hint, "apt-get install graphviz") {
		t.Errorf("hint = %q, want package manager suggestion in containers", hint)
	}
}

func TestForRendererNotFound_CustomCommand(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	hint := ForRendererNotFound("/opt/graphviz/bin/dot")

	if !strings.Contains(hint, "/opt/graphviz/bin/dot exists") {
		t.Errorf("hint = %q, want custom command named", hint)
	}
	if strings.Contains(hint, "MDBOOK_GRAPHVIZ_COMMAND") {
		t.Error("override suggestion is redundant when a command was configured")
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"team.yaml", "team.yml", "/home/u/.config/mdbook-graphviz/team.yaml"},
			want:     "or create /home/u/.config/mdbook-graphviz/team.yaml",
		},
		{
			name:     "windows separators",
			searched: []string{`C:\Users\u\AppData\Roaming\mdbook-graphviz\team.yaml`},
			want:     `or create C:\Users\u\AppData\Roaming\mdbook-graphviz\team.yaml`,
		},
		{
			name:     "no user path",
			searched: []string{"team.yaml"},
			want:     "use --config /path/to/file.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if hint := ForConfigNotFound(tt.searched); !strings.Contains(hint, tt.want) {
				t.Errorf("ForConfigNotFound() = %q, want it to contain %q", hint, tt.want)
			}
		})
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hint string
		want string
	}{
		{"render failed", ForRenderFailed(), "offending line"},
		{"timeout", ForTimeout(), "--timeout"},
		{"book config", ForBookConfig(), "[preprocessor.graphviz]"},
		{"output directory", ForOutputDirectory(), "writable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint = %q, want hint prefix", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.want) {
				t.Errorf("hint = %q, want it to contain %q", tt.hint, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
}
