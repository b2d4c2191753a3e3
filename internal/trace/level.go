package trace

// Level controls tracing verbosity. Each level adds one finer scope.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelPhase               // driver boundaries only
	LevelDetail              // per-file events and passes
	LevelDebug               // everything including declarations
)

func (l Level) String() string { return nameOf(levelNames, l) }

// ParseLevel reads a --trace-level value.
func ParseLevel(s string) (Level, error) {
	return parseName("level", levelNames, s, LevelOff)
}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelPhase:
		return scope == ScopeDriver
	case LevelDetail:
		return scope <= ScopePass
	}
	return true
}
