package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"minic/internal/lsp"
	"minic/internal/version"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over stdio",
		Long: `Lsp publishes diagnostics for open documents and offers their fixes as
quick fixes. Settings come from the minic.toml found from the working directory`,
		Args: cobra.NoArgs,
		RunE: runLSP,
	}
	cmd.Flags().String("log-file", "", "write server logs to this file instead of stderr")
	cmd.Flags().Int("log-verbosity", 0, "server log verbosity (0 = quiet)")
	return cmd
}

func runLSP(cmd *cobra.Command, _ []string) error {
	st, err := loadSettings(cmd, ".")
	if err != nil {
		return err
	}
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return err
	}
	verbosity, err := cmd.Flags().GetInt("log-verbosity")
	if err != nil {
		return err
	}
	var logPath *string
	if logFile != "" {
		logPath = &logFile
	}
	commonlog.Configure(verbosity, logPath)

	return lsp.NewServer(st.opts, version.Version, verbosity > 1).RunStdio()
}
