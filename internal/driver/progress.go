package driver

// Status is the state of one file in a directory run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone  // analysed without diagnostics
	StatusError // analysed with diagnostics, or failed to load
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "checking"
	case StatusDone:
		return "ok"
	case StatusError:
		return "errors"
	}
	return "unknown"
}

// ProgressEvent reports a state change of one file. Options.Progress
// receives them from worker goroutines.
type ProgressEvent struct {
	Path        string
	Status      Status
	Diagnostics int
	Cached      bool
}
