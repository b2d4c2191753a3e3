// Package config loads minic.toml, the per-project settings file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"minic/internal/driver"
	"minic/internal/source"
)

// FileName is the name looked up by Find.
const FileName = "minic.toml"

var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrInvalidValue = errors.New("invalid value")
	ErrInvalidGlob  = errors.New("invalid glob pattern")
	outputFormats   = []string{"short", "pretty", "json"}
	colorModes      = []string{"auto", "on", "off"}
)

// Config mirrors minic.toml. Missing keys keep their Default values.
type Config struct {
	// Path is the file the values were read from; empty for Default.
	Path string `toml:"-"`

	Analysis Analysis `toml:"analysis"`
	Files    Files    `toml:"files"`
	Output   Output   `toml:"output"`
	Run      Run      `toml:"run"`
}

type Analysis struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Encoding       string `toml:"encoding"`
}

type Files struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type Output struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type Run struct {
	Jobs     int    `toml:"jobs"`
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
}

// Default returns the settings used when no minic.toml exists.
func Default() Config {
	return Config{
		Analysis: Analysis{
			MaxDiagnostics: driver.DefaultMaxDiagnostics,
			Encoding:       source.EncodingUTF8.String(),
		},
		Files: Files{
			Include: []string{driver.DefaultInclude},
		},
		Output: Output{
			Format: "short",
			Color:  "auto",
		},
	}
}

// Root returns the directory holding the config file, or "" for Default.
func (c Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Load decodes path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	// an explicit empty include list means "nothing", not the default
	if meta.IsDefined("files", "include") && cfg.Files.Include == nil {
		cfg.Files.Include = []string{}
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds the nearest minic.toml above startDir and loads it. When
// none exists it returns Default and false.
func Discover(startDir string) (Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, false, err
	}
	if !ok {
		return Default(), false, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Analysis.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: [analysis].max_diagnostics must be >= 0, got %d", ErrInvalidValue, c.Analysis.MaxDiagnostics)
	}
	if _, err := source.ParseEncoding(c.Analysis.Encoding); err != nil {
		return fmt.Errorf("%w: [analysis].encoding: %w", ErrInvalidValue, err)
	}
	if !slices.Contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("%w: [output].format %q (expected %s)", ErrInvalidValue, c.Output.Format, strings.Join(outputFormats, "|"))
	}
	if !slices.Contains(colorModes, c.Output.Color) {
		return fmt.Errorf("%w: [output].color %q (expected %s)", ErrInvalidValue, c.Output.Color, strings.Join(colorModes, "|"))
	}
	if c.Run.Jobs < 0 {
		return fmt.Errorf("%w: [run].jobs must be >= 0, got %d", ErrInvalidValue, c.Run.Jobs)
	}
	for _, p := range slices.Concat(c.Files.Include, c.Files.Exclude) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %q", ErrInvalidGlob, p)
		}
	}
	return nil
}

// DriverOptions converts the analysis and file settings. Cache, progress
// and timing are wired by the caller.
func (c Config) DriverOptions() (driver.Options, error) {
	enc, err := source.ParseEncoding(c.Analysis.Encoding)
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.DefaultOptions()
	opts.MaxDiagnostics = c.Analysis.MaxDiagnostics
	opts.Encoding = enc
	opts.Jobs = c.Run.Jobs
	opts.Include = slices.Clone(c.Files.Include)
	opts.Exclude = slices.Clone(c.Files.Exclude)
	return opts, nil
}
