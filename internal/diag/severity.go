package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevError is a recoverable error; analysis continues.
	SevError Severity = iota + 2
	// SevFatal stops analysis: nothing is recorded after it.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevFatal:
		return "fatal"
	}
	return "unknown"
}
