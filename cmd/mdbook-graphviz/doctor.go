package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	graphviz "github.com/alnah/go-mdbook-graphviz"
	"github.com/alnah/go-mdbook-graphviz/internal/config"
	"github.com/alnah/go-mdbook-graphviz/internal/hints"
)

// doctorProbe is the diagram rendered to prove the installation works.
const doctorProbe = "digraph doctor { a -> b }"

// doctorTimeout bounds each external command run by doctor.
const doctorTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Renderer rendererInfo `json:"renderer"`
	Config   configInfo   `json:"config"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// rendererInfo holds Graphviz detection results.
type rendererInfo struct {
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Renders bool   `json:"renders"`
}

// configInfo holds the effective settings.
type configInfo struct {
	Valid   bool   `json:"valid"`
	Timeout string `json:"timeout,omitempty"`
	Workers int    `json:"workers"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	GOMAXPROCS    int    `json:"gomaxprocs"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	flags, _, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return finish(env, err)
	}

	result := runDoctor(ctx, flags, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, flags *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GOMAXPROCS: runtime.GOMAXPROCS(0),
		},
	}

	cfg := checkConfig(result, flags, env)
	checkRenderer(ctx, result, cfg, env)
	checkEnvironment(result, env)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig resolves the configuration, falling back to defaults when it
// is invalid so the renderer can still be checked.
func checkConfig(result *doctorResult, flags *doctorFlags, env *Environment) *config.Config {
	cfg, err := resolveConfig(flags.common, flags.renderer, nil, loadEnvConfig(env.getenv))
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid configuration: %v", err))
		cfg = config.DefaultConfig()
	} else {
		result.Config.Valid = true
	}

	result.Config.Timeout = cfg.Renderer.Timeout
	result.Config.Workers = graphviz.ResolvePoolSize(cfg.Workers)
	return cfg
}

// checkRenderer locates the Graphviz executable, reads its version and
// renders a probe diagram.
func checkRenderer(ctx context.Context, result *doctorResult, cfg *config.Config, env *Environment) {
	command := cfg.Renderer.Command
	result.Renderer.Command = command

	path, err := env.lookPath(command)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found on PATH%s", command, hints.ForRendererNotFound(command)))
		return
	}
	result.Renderer.Found = true
	result.Renderer.Path = path

	if version, err := rendererVersion(ctx, path); err == nil {
		result.Renderer.Version = version
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get %s version: %v", command, err))
	}

	if err := renderProbe(ctx, path, env); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Probe diagram failed to render: %v", err))
		return
	}
	result.Renderer.Renders = true
}

// rendererVersion runs "<path> -V"; dot prints its version on stderr.
func rendererVersion(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "-V").CombinedOutput() // #nosec G204 -- path comes from LookPath
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// renderProbe renders doctorProbe into a temporary directory.
func renderProbe(ctx context.Context, path string, env *Environment) error {
	dir, err := os.MkdirTemp("", "mdbook-graphviz-doctor-")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	var stderr bytes.Buffer
	renderer := env.Renderer
	if renderer == nil {
		renderer = &graphviz.CommandRenderer{
			Command:     path,
			Timeout:     doctorTimeout,
			MaxAttempts: 1,
			Stderr:      &stderr,
		}
	}

	out := filepath.Join(dir, "probe.svg")
	if err := renderer.Render(ctx, doctorProbe, out); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}

	info, err := os.Stat(out)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", out)
	}
	return nil
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	// Detect container (multi-signal approach)
	result.Env.Container, result.Env.ContainerHint = isContainer(env)

	// Detect CI environments
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(env *Environment) (bool, string) {
	// Docker
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := env.getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if env.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	// Check temp directory is writable
	f, err := os.CreateTemp("", "mdbook-graphviz-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdbook-graphviz doctor")
	fmt.Fprintln(w)

	// Renderer section
	fmt.Fprintln(w, "Graphviz")
	if r.Renderer.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Renderer.Path)
		if r.Renderer.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Renderer.Version)
		}
		if r.Renderer.Renders {
			fmt.Fprintln(w, "  [OK] Probe diagram: rendered")
		} else {
			fmt.Fprintln(w, "  [ERROR] Probe diagram: failed")
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] %s not found\n", r.Renderer.Command)
	}
	fmt.Fprintln(w)

	// Config section
	fmt.Fprintln(w, "Configuration")
	if r.Config.Valid {
		fmt.Fprintln(w, "  [OK] Valid")
	} else {
		fmt.Fprintln(w, "  [ERROR] Invalid (defaults shown)")
	}
	if r.Config.Timeout != "" {
		fmt.Fprintf(w, "  [OK] Timeout: %s\n", r.Config.Timeout)
	}
	fmt.Fprintf(w, "  [OK] Workers: %d\n", r.Config.Workers)
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s (GOMAXPROCS=%d)\n", r.Env.OS, r.Env.Arch, r.Env.GOMAXPROCS)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
