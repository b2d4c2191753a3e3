package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// uiMode selects the progress view of directory checks.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

// readUIMode parses --ui, ignoring case and surrounding blanks.
func readUIMode(value string) (uiMode, error) {
	mode := uiMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI reports whether the progress view renders to out. Auto needs
// a terminal that is not TERM=dumb.
func shouldUseTUI(mode uiMode, out io.Writer) bool {
	if mode != uiModeAuto {
		return mode == uiModeOn
	}
	return writerIsTerminal(out) && os.Getenv("TERM") != "dumb"
}
