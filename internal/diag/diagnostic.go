package diag

import (
	"minic/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Pos is Primary.Start resolved against the file at report time.
	Pos   source.LineCol
	Notes []Note
	Fixes []Fix
}

// Kind is shorthand for d.Code.Kind().
func (d Diagnostic) Kind() string { return d.Code.Kind() }
