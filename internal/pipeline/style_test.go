package pipeline

import (
	"strings"
	"testing"
)

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	for _, style := range []string{"github", "monokai", "no-such-style"} {
		t.Run(style, func(t *testing.T) {
			t.Parallel()

			css, err := HighlightCSS(style)
			if err != nil {
				t.Fatalf("HighlightCSS() error: %v", err)
			}
			if !strings.Contains(css, ".chroma") {
				t.Errorf("HighlightCSS(%q) has no .chroma rules", style)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before closing head",
			html: "<html><head><title>T</title></head><body></body></html>",
			css:  "p{}",
			want: "<html><head><title>T</title><style>p{}</style></head><body></body></html>",
		},
		{
			name: "after body when no head",
			html: `<body class="x"><p>a</p></body>`,
			css:  "p{}",
			want: `<body class="x"><style>p{}</style><p>a</p></body>`,
		},
		{
			name: "prepended to fragment",
			html: "<p>a</p>",
			css:  "p{}",
			want: "<style>p{}</style><p>a</p>",
		},
		{
			name: "empty css is a no-op",
			html: "<p>a</p>",
			css:  "",
			want: "<p>a</p>",
		},
		{
			name: "closing tag in css is escaped",
			html: "<p>a</p>",
			css:  "</style><script>x</script>",
			want: `<style><\/style><script>x<\/script></style><p>a</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InjectCSS(tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBaseCSS_TargetsDiagrams(t *testing.T) {
	t.Parallel()

	if !strings.Contains(BaseCSS, "img."+DiagramClass) {
		t.Errorf("BaseCSS does not style img.%s", DiagramClass)
	}
}
