package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minic/internal/diag"
	"minic/internal/driver"
	"minic/internal/source"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.c|dir>",
		Short: "Report lexical and syntax errors",
		Long: `Check lexes and parses a source file, or every matching file below a directory,
and prints all diagnostics. The exit status is 1 when anything was reported.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "short", "output format (short|pretty|json); minic.toml [output].format when unset")
	cmd.Flags().Bool("fix-preview", false, "show the source after each suggested fix (pretty format)")
	cmd.Flags().StringSlice("exclude", nil, "additional glob patterns to skip in directory mode")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	st, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, st.cfg.Output.Format, "short", "pretty", "json")
	if err != nil {
		return err
	}
	preview, err := cmd.Flags().GetBool("fix-preview")
	if err != nil {
		return fmt.Errorf("failed to get fix-preview flag: %w", err)
	}
	exclude, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return fmt.Errorf("failed to get exclude flag: %w", err)
	}
	st.opts.Exclude = append(st.opts.Exclude, exclude...)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		items []diag.Diagnostic
		fs    *source.FileSet
	)
	if info.IsDir() {
		res, err := checkDir(cmd, target, format, st)
		if err != nil {
			return err
		}
		fs = res.FileSet
		// unreadable files carry a LoadFileError diagnostic of their own
		for _, f := range res.Files {
			items = append(items, f.Diagnostics()...)
		}
	} else {
		res, err := driver.AnalyzeFile(cmd.Context(), target, st.opts)
		if err != nil {
			return err
		}
		fs = res.FileSet
		items = res.Diagnostics()
	}

	out := cmd.OutOrStdout()
	if err := writeDiagnostics(out, items, fs, format, prettyOpts(st.colorFor(out), preview)); err != nil {
		return err
	}
	st.printTimings(cmd.ErrOrStderr())
	if len(items) > 0 {
		return errDiagnostics
	}
	return nil
}

func checkDir(cmd *cobra.Command, dir, format string, st *settings) (*driver.DirResult, error) {
	out := cmd.OutOrStdout()
	if format == "json" || !shouldUseTUI(st.ui, out) {
		return driver.AnalyzeDir(cmd.Context(), dir, st.opts)
	}
	return runCheckDirWithUI(cmd.Context(), "Checking "+dir, dir, st.opts, out)
}
