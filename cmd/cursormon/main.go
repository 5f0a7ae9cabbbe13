package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/cursormon/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "snapshot":
		os.Exit(runSnapshot(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cursormon <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  watch     Monitor cursor shape and position on a tick loop")
	fmt.Fprintln(w, "  snapshot  Capture the screen with the cursor composited, as PNG")
	fmt.Fprintln(w, "  windows   List X windows available as capture targets")
	fmt.Fprintln(w, "  mcp       MCP server commands")
	fmt.Fprintln(w, "  help      Show this help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'cursormon <command> --help' for command-specific options.")
}

// newLogger builds the process logger: text output on a terminal, JSON
// when piped.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
