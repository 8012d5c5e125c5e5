package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args[1] and returns the process exit code.
// mdBook invokes the preprocessor without a command (or with flags only)
// and with "supports <renderer>".
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		return finish(env, runPreprocess(ctx, nil, env))
	}
	if strings.HasPrefix(args[1], "-") {
		return finish(env, runPreprocess(ctx, args[1:], env))
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "supports":
		return finish(env, runSupports(rest, env))
	case "render":
		return finish(env, runRender(ctx, rest, env))
	case "preview":
		return finish(env, runPreview(ctx, rest, env))
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "config":
		return finish(env, runConfig(rest, env))
	case "version":
		fmt.Fprintf(env.Stdout, "mdbook-graphviz %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// finish reports err on stderr and maps it to an exit code.
func finish(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	// Usage was already printed by the flag set.
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return exitCodeFor(err)
}
