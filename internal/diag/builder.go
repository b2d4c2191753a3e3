package diag

import (
	"slices"

	"minic/internal/source"
)

// New returns a diagnostic without notes or fixes. Pos stays zero until a
// BagReporter resolves it.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// InsertAt is the edit inserting text at the start of sp.
func InsertAt(sp source.Span, text string) FixEdit {
	return FixEdit{Span: source.Span{File: sp.File, Start: sp.Start, End: sp.Start}, NewText: text}
}

// WithNote and WithFix copy on append so derived diagnostics never share
// backing arrays.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(slices.Clip(d.Notes), Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(slices.Clip(d.Fixes), Fix{Title: title, Edits: edits})
	return d
}
