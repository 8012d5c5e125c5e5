package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-graphviz [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renders ```dot process fenced blocks to SVG with Graphviz.")
	fmt.Fprintln(w, "Without a command, runs as an mdBook preprocessor: reads the book")
	fmt.Fprintln(w, "JSON on stdin and writes the processed book to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  supports   Report whether an mdBook renderer is supported")
	fmt.Fprintln(w, "  render     Render diagrams in markdown files outside mdBook")
	fmt.Fprintln(w, "  preview    Render one file to a standalone HTML page")
	fmt.Fprintln(w, "  doctor     Check that Graphviz is installed and working")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDBOOK_GRAPHVIZ_CONFIG     Config file name or path")
	fmt.Fprintln(w, "  MDBOOK_GRAPHVIZ_COMMAND    Graphviz executable")
	fmt.Fprintln(w, "  MDBOOK_GRAPHVIZ_TIMEOUT    Per-diagram timeout")
	fmt.Fprintln(w, "  MDBOOK_GRAPHVIZ_WORKERS    Concurrent dot processes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "book.toml:")
	fmt.Fprintln(w, "  [preprocessor.graphviz]")
	fmt.Fprintln(w, "  dot-command = \"dot\"")
	fmt.Fprintln(w, "  timeout = \"30s\"")
	fmt.Fprintln(w, "  workers = 4")
	fmt.Fprintln(w, "  max-attempts = 5")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdbook-graphviz help <command>' for details on a specific command.")
}

// printCommonFlags prints the flags every processing command accepts.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --command <path>      Graphviz executable (default: dot)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-diagram timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent dot processes (0 = auto)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show each rendered diagram")
}

// printSupportsUsage prints usage for the supports command.
func printSupportsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-graphviz supports <renderer>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit 0 if the output works with the named mdBook renderer.")
	fmt.Fprintln(w, "Diagrams become plain image references, so every renderer is.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-graphviz render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render diagrams in markdown files outside mdBook. Each file is a chapter")
	fmt.Fprintln(w, "named after its first # heading. SVGs are written next to the output.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: in place)")
	printCommonFlags(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-graphviz preview <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one file's diagrams and write a standalone HTML page.")
	fmt.Fprintln(w, "The markdown file is not modified.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file (default: <input>.html)")
	fmt.Fprintln(w, "      --style <name>        Code highlighting style (default: github)")
	printCommonFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-graphviz doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that Graphviz is installed, report its version and render a")
	fmt.Fprintln(w, "probe diagram. Exit 1 if any check fails.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print results as JSON")
	printCommonFlags(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-graphviz config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML: defaults, then the config")
	fmt.Fprintln(w, "file, environment and flags. book.toml settings are applied by mdBook runs only.")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for the main program or a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "supports":
		printSupportsUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version", "help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
