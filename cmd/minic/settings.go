package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"minic/internal/config"
	"minic/internal/driver"
	"minic/internal/observ"
)

// settings is minic.toml merged with the flags given on the command line.
// Flags win over the file; the file wins over built-in defaults.
type settings struct {
	cfg     config.Config
	opts    driver.Options
	timings bool
	ui      uiMode
}

func loadSettings(cmd *cobra.Command, input string) (*settings, error) {
	flags := cmd.Flags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, _, err = config.Discover(input)
	}
	if err != nil {
		return nil, err
	}

	if flags.Changed("max-diagnostics") {
		cfg.Analysis.MaxDiagnostics, _ = flags.GetInt("max-diagnostics")
	}
	if flags.Changed("encoding") {
		cfg.Analysis.Encoding, _ = flags.GetString("encoding")
	}
	if flags.Changed("jobs") {
		cfg.Run.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("color") {
		cfg.Output.Color, _ = flags.GetString("color")
	}
	if flags.Changed("cache") {
		cfg.Run.Cache, _ = flags.GetBool("cache")
	}
	if flags.Changed("cache-dir") {
		cfg.Run.CacheDir, _ = flags.GetString("cache-dir")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := cfg.DriverOptions()
	if err != nil {
		return nil, err
	}
	st := &settings{cfg: cfg, opts: opts}

	if st.timings, err = flags.GetBool("timings"); err != nil {
		return nil, err
	}
	if st.timings {
		st.opts.Timer = observ.NewTimer()
	}

	uiValue, err := flags.GetString("ui")
	if err != nil {
		return nil, err
	}
	if st.ui, err = readUIMode(uiValue); err != nil {
		return nil, err
	}

	if cfg.Run.Cache {
		cache, err := driver.OpenCache(st.cacheDir())
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		st.opts.Cache = cache
	}
	return st, nil
}

// cacheDir resolves [run].cache_dir against the config file's directory.
// An empty result selects the driver's per-user default.
func (s *settings) cacheDir() string {
	dir := s.cfg.Run.CacheDir
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	if root := s.cfg.Root(); root != "" {
		return filepath.Join(root, dir)
	}
	return dir
}

// colorFor decides whether output written to w gets ANSI colors.
func (s *settings) colorFor(w io.Writer) bool {
	return resolveColor(s.cfg.Output.Color, w)
}

func (s *settings) printTimings(w io.Writer) {
	if s.opts.Timer == nil {
		return
	}
	fmt.Fprint(w, s.opts.Timer.Summary())
}

func resolveColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && writerIsTerminal(w)
	}
}

// applyColorMode forces fatih/color's global switch for --color on|off,
// which governs output that is not routed through diagfmt.
func applyColorMode(cmd *cobra.Command) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
}

// outputFormat picks the --format flag when given, else fallback, and checks
// it against allowed.
func outputFormat(cmd *cobra.Command, fallback string, allowed ...string) (string, error) {
	format := fallback
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	format = strings.ToLower(format)
	if !slices.Contains(allowed, format) {
		return "", fmt.Errorf("unsupported format %q (must be %s)", format, strings.Join(allowed, " or "))
	}
	return format, nil
}
