package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"minic/internal/driver"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [path]",
		Short: "Remove cached diagnostics",
		Long: `Clean empties the diagnostics cache selected by --cache-dir or by the
[run].cache_dir of the minic.toml found from path`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClean,
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	base := "."
	if len(args) > 0 && args[0] != "" {
		base = args[0]
	}
	st, err := loadSettings(cmd, base)
	if err != nil {
		return err
	}
	cache := st.opts.Cache
	if cache == nil {
		if cache, err = driver.OpenCache(st.cacheDir()); err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}

	if cache.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "cache is empty")
		return nil
	}
	if err := cache.Clear(); err != nil {
		return fmt.Errorf("failed to clear %q: %w", cache.Dir(), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
	return nil
}
