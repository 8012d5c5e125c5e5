package main

// Notes:
// - notifyContext: we test cancellation via stop() and parent propagation,
//   not actual OS signal delivery.
// - A canceled run context stands in for a delivered signal.

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("stop cancels context", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		select {
		case <-ctx.Done():
			t.Fatal("context should not be canceled initially")
		default:
		}

		stop()
		<-ctx.Done()
	})

	t.Run("parent cancellation propagates", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		<-ctx.Done()
		if ctx.Err() != context.Canceled {
			t.Errorf("ctx.Err() = %v, want context.Canceled", ctx.Err())
		}
	})
}

func TestRunMain_CanceledRun(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"doc.md": "```dot process\ndigraph {}\n```\n"})
	path := filepath.Join(dir, "doc.md")
	r := &fileRenderer{}
	env, _, stderr := newTestEnv("", r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := runMain(ctx, []string{"mdbook-graphviz", "render", path}, env)

	if code != ExitGeneral {
		t.Errorf("runMain() = %d, want %d\nstderr: %s", code, ExitGeneral, stderr.String())
	}
	if len(r.Paths()) != 0 {
		t.Errorf("rendered %v after cancellation, want nothing", r.Paths())
	}
	if got := readFile(t, path); got != "```dot process\ndigraph {}\n```\n" {
		t.Errorf("file rewritten after cancellation: %q", got)
	}
}
