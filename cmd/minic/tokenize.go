package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"minic/internal/diagfmt"
	"minic/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.c",
		Short: "Tokenize a source file",
		Long:  `Tokenize prints the token stream of a source file; lexical errors go to stderr`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	st, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, "pretty", "pretty", "json")
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), filePath, st.opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	items := result.Bag.Items()
	if len(items) > 0 {
		errOut := cmd.ErrOrStderr()
		diagfmt.Pretty(errOut, items, result.FileSet, prettyOpts(st.colorFor(errOut), false))
	}

	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens)
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
