package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"minic/internal/diagfmt"
	"minic/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.c",
		Short: "Parse a source file and print its syntax tree",
		Long: `Parse builds the syntax tree of a source file, recovering from errors,
and prints it; diagnostics go to stderr`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	st, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, "pretty", "pretty", "json")
	if err != nil {
		return err
	}

	// cached entries hold diagnostics only, never the tree
	st.opts.Cache = nil
	result, err := driver.AnalyzeFile(cmd.Context(), filePath, st.opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	items := result.Diagnostics()
	if len(items) > 0 {
		errOut := cmd.ErrOrStderr()
		diagfmt.Pretty(errOut, items, result.FileSet, prettyOpts(st.colorFor(errOut), false))
	}

	switch format {
	case "json":
		err = diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Builder, result.Tree, result.FileSet)
	default:
		err = diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Builder, result.Tree, result.FileSet)
	}
	if err != nil {
		return err
	}
	st.printTimings(cmd.ErrOrStderr())
	if len(items) > 0 {
		return errDiagnostics
	}
	return nil
}
