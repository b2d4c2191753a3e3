package trace

import (
	"fmt"
	"strings"
)

// Flag spellings, indexed by enum value. An empty entry has no spelling.
var (
	levelNames  = []string{"off", "phase", "detail", "debug"}
	kindNames   = []string{"", "begin", "end", "point"}
	scopeNames  = []string{"", "driver", "file", "pass", "node"}
	modeNames   = []string{"", "stream", "ring", "both"}
	formatNames = []string{"auto", "text", "ndjson"}
)

func nameOf[T ~uint8](names []string, v T) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}
	return "unknown"
}

// parseName looks s up case-insensitively; "" selects empty.
func parseName[T ~uint8](what string, names []string, s string, empty T) (T, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return empty, nil
	}
	for i, name := range names {
		if name != "" && name == key {
			return T(i), nil
		}
	}
	var valid []string
	for _, name := range names {
		if name != "" {
			valid = append(valid, name)
		}
	}
	return empty, fmt.Errorf("invalid trace %s: %q (expected: %s)", what, s, strings.Join(valid, "|"))
}
