package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"minic/internal/config"
	"minic/internal/driver"
	"minic/internal/version"
)

// errDiagnostics ends a command with exit status 1; the diagnostics already
// printed are the report.
var errDiagnostics = errors.New("diagnostics reported")

// main runs the CLI and exits with 0 when clean, 1 when diagnostics were
// reported and 2 on usage or I/O failures.
func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()

	var cleanups []func()
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		applyColorMode(cmd)
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProfiling)
		stopTracing, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopTracing)
		return nil
	}

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDiagnostics):
		return 1
	default:
		fmt.Fprintf(stderr, "minic: %v\n", err)
		return 2
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "minic",
		Short:         "Error-tolerant lexer and parser for a small C subset",
		Long:          `minic tokenizes and parses C-subset sources and reports every lexical and syntax error it can recover from in one run`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newFixCmd())
	root.AddCommand(newCleanCmd())
	root.AddCommand(newLSPCmd())
	root.AddCommand(newVersionCmd())

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("timings", false, "print phase timings to stderr")
	pf.Int("max-diagnostics", driver.DefaultMaxDiagnostics, "maximum number of diagnostics per file (0 = unlimited)")
	pf.String("encoding", "utf-8", "source encoding (utf-8|latin1|auto)")
	pf.Int("jobs", 0, "max parallel workers for directory checks (0=auto)")
	pf.String("config", "", "path to "+config.FileName+" (default: search upwards from the input)")
	pf.Bool("cache", false, "reuse diagnostics of unchanged files from the cache")
	pf.String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/minic)")
	pf.String("ui", "auto", "progress UI for directory checks (auto|on|off)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	return root
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// writerIsTerminal is isTerminal for writers that may not be files.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
