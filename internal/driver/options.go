package driver

import (
	"minic/internal/observ"
	"minic/internal/source"
)

// DefaultMaxDiagnostics bounds error cascades per file.
const DefaultMaxDiagnostics = 100

// Options configure one analysis run. The zero value analyses UTF-8 input
// without a diagnostic cap.
type Options struct {
	// MaxDiagnostics caps the diagnostics kept per file; <= 0 is unlimited.
	MaxDiagnostics int
	Encoding       source.Encoding

	// Directory mode only.
	Jobs     int
	Include  []string // doublestar patterns relative to the root, default **/*.c
	Exclude  []string
	Progress func(ProgressEvent)

	Cache *Cache        // nil disables caching
	Timer *observ.Timer // nil disables phase timing
}

// DefaultOptions returns the settings used by the CLI when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxDiagnostics: DefaultMaxDiagnostics,
		Include:        []string{DefaultInclude},
	}
}

func (o Options) track(name string, fn func() string) {
	if o.Timer == nil {
		fn()
		return
	}
	o.Timer.Track(name, fn)
}

func (o Options) emit(ev ProgressEvent) {
	if o.Progress != nil {
		o.Progress(ev)
	}
}
