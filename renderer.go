package graphviz

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-mdbook-graphviz/internal/process"
)

// Renderer defaults.
const (
	DefaultCommand = "dot"
	DefaultFormat  = "svg"

	// MaxSpawnAttempts is how many times starting the renderer is tried.
	MaxSpawnAttempts = 5
)

// Renderer turns diagram source into an artifact file.
type Renderer interface {
	Render(ctx context.Context, code, outputPath string) error
}

// Compile-time interface implementation check.
var _ Renderer = (*CommandRenderer)(nil)

// SpawnBackoff returns the wait after the given failed start attempt
// (1-based): attempt² × 10ms. With five attempts the waits are 10, 40, 90,
// 160 and 250ms; the last one also precedes reporting exhaustion.
func SpawnBackoff(attempt int) time.Duration {
	return time.Duration(attempt*attempt*10) * time.Millisecond
}

// CommandRenderer renders diagrams by piping them into the Graphviz CLI.
type CommandRenderer struct {
	Command     string        // Executable, default "dot"
	Format      string        // Output format passed as -T<format>, default "svg"
	Timeout     time.Duration // Per-block execution limit, 0 = none
	MaxAttempts int           // Start attempts, default MaxSpawnAttempts
	Stderr      io.Writer     // Receives the renderer's diagnostics, default os.Stderr
	Logger      zerolog.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewCommandRenderer creates a CommandRenderer invoking "dot -Tsvg".
func NewCommandRenderer() *CommandRenderer {
	return &CommandRenderer{
		Command:     DefaultCommand,
		Format:      DefaultFormat,
		MaxAttempts: MaxSpawnAttempts,
		Stderr:      os.Stderr,
		Logger:      zerolog.Nop(),
	}
}

// Args returns the command-line arguments for writing to outputPath.
func (r *CommandRenderer) Args(outputPath string) []string {
	return []string{"-T" + r.format(), "-o", outputPath}
}

// Render writes code to the renderer's stdin and waits for it to write outputPath.
// Partial files may remain on failure.
func (r *CommandRenderer) Render(ctx context.Context, code, outputPath string) error {
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("%w: resolving output path %s: %v", ErrIO, outputPath, err)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd, stdin, err := r.spawn(ctx, absPath)
	if err != nil {
		return err
	}

	_, writeErr := io.WriteString(stdin, code)
	closeErr := stdin.Close()
	if writeErr != nil || closeErr != nil {
		// Reap the child; its exit status is irrelevant once input is lost.
		_ = cmd.Wait()
		if writeErr == nil {
			writeErr = closeErr
		}
		return fmt.Errorf("%w: writing to %s: %v", ErrIO, r.command(), writeErr)
	}

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrRenderFailed, absPath, ctxErr)
		}
		return fmt.Errorf("%w: %s: %v", ErrRenderFailed, absPath, err)
	}

	return nil
}

// spawn starts the renderer, retrying with SpawnBackoff between attempts.
func (r *CommandRenderer) spawn(ctx context.Context, outputPath string) (*exec.Cmd, io.WriteCloser, error) {
	attempts := r.maxAttempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		cmd := exec.CommandContext(ctx, r.command(), r.Args(outputPath)...) // #nosec G204 -- renderer command is operator configuration
		process.Configure(cmd)
		cmd.Stderr = r.stderr()

		stdin, err := cmd.StdinPipe()
		if err == nil {
			if err = cmd.Start(); err == nil {
				return cmd, stdin, nil
			}
		}
		lastErr = err

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}

		delay := SpawnBackoff(attempt)
		r.Logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("failed to start renderer")

		if err := r.wait(ctx, delay); err != nil {
			return nil, nil, err
		}
	}

	return nil, nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrSpawnExhausted, r.command(), attempts, lastErr)
}

func (r *CommandRenderer) wait(ctx context.Context, d time.Duration) error {
	if r.sleep != nil {
		return r.sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *CommandRenderer) command() string {
	if r.Command == "" {
		return DefaultCommand
	}
	return r.Command
}

func (r *CommandRenderer) format() string {
	if r.Format == "" {
		return DefaultFormat
	}
	return r.Format
}

func (r *CommandRenderer) maxAttempts() int {
	if r.MaxAttempts < 1 {
		return MaxSpawnAttempts
	}
	return r.MaxAttempts
}

func (r *CommandRenderer) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}
