// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-mdbook-graphviz/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForRendererNotFound returns hints when the renderer executable cannot be started.
func ForRendererNotFound(command string) string {
	var hints []string

	if IsInContainer() {
		hints = append(hints, "add graphviz to the image (apt-get install graphviz, apk add graphviz)")
	} else {
		hints = append(hints, "install Graphviz from https://graphviz.org/download/")
	}

	if command != "" && command != "dot" {
		hints = append(hints, "check that "+command+" exists and is executable")
	} else {
		hints = append(hints, "or point --command / MDBOOK_GRAPHVIZ_COMMAND at dot")
	}

	return formatHints(hints)
}

// ForRenderFailed returns a hint for diagrams dot rejected.
func ForRenderFailed() string {
	return format("dot's own message above points at the offending line of the block")
}

// ForTimeout returns a hint about increasing timeout for slow renders.
func ForTimeout() string {
	return format("for large graphs, raise --timeout or renderer.timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/mdbook-graphviz/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForBookConfig returns a hint on where book-level settings belong.
func ForBookConfig() string {
	return format("set dot-command, timeout, workers or max-attempts under [preprocessor.graphviz] in book.toml")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// filepathSlash normalizes Windows separators for substring checks.
func filepathSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
