package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"minic/internal/diag"
	"minic/internal/driver"
	"minic/internal/fix"
	"minic/internal/source"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.c|dir>",
		Short: "Apply suggested fixes",
		Long: `Fix runs the checker and applies the edits its diagnostics suggest, such as
inserting a missing ';' or ')'. By default only the first fix is applied.`,
		Args: cobra.ExactArgs(1),
		RunE: runFix,
	}
	cmd.Flags().Bool("all", false, "apply every non-conflicting fix")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("code", "", "apply every fix of one diagnostic code (e.g. SYN2002 or MissingSemicolon)")
	cmd.Flags().Bool("dry-run", false, "print a unified diff instead of writing the files")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	codeName, err := cmd.Flags().GetString("code")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if codeName != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--code cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, DryRun: dryRun}
	switch {
	case codeName != "":
		code, ok := diag.ParseCode(codeName)
		if !ok {
			return fmt.Errorf("unknown diagnostic code %q", codeName)
		}
		opts.Mode = fix.ApplyModeCode
		opts.Code = code
	case applyAll:
		opts.Mode = fix.ApplyModeAll
	}

	st, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	// fixes need fresh spans from the current file contents
	st.opts.Cache = nil

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	var (
		fs    *source.FileSet
		items []diag.Diagnostic
	)
	if info.IsDir() {
		res, err := driver.AnalyzeDir(cmd.Context(), target, st.opts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		fs = res.FileSet
		for _, f := range res.Files {
			items = append(items, f.Diagnostics()...)
		}
	} else {
		res, err := driver.AnalyzeFile(cmd.Context(), target, st.opts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		fs = res.FileSet
		items = res.Diagnostics()
	}

	res, applyErr := fix.Apply(fs, items, opts)
	return reportApplyResult(cmd.OutOrStdout(), res, applyErr, dryRun)
}

func reportApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(out, "  %s:%d:%d: %s (%s)\n", item.Path, item.Pos.Line, item.Pos.Col, item.Title, item.Code.ID())
		}
	}

	if len(res.FileChanges) > 0 {
		if dryRun {
			for _, change := range res.FileChanges {
				diff, err := change.UnifiedDiff()
				if err != nil {
					return err
				}
				fmt.Fprint(out, diff)
			}
		} else {
			fmt.Fprintln(out, "Updated files:")
			for _, change := range res.FileChanges {
				fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
			}
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			fmt.Fprintf(out, "  %s:%d:%d: %s: %s\n", skip.Path, skip.Pos.Line, skip.Pos.Col, skip.Title, skip.Reason)
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) {
			fmt.Fprintln(out, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}
