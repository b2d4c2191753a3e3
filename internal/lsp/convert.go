package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"minic/internal/diag"
	"minic/internal/source"
)

const sourceName = "minic"

// uriToPath maps a file:// URI to a local path; other URIs are kept as is.
func uriToPath(uri protocol.DocumentUri) string {
	if strings.HasPrefix(string(uri), "file://") {
		if parsed, err := url.Parse(string(uri)); err == nil {
			return filepath.Clean(parsed.Path)
		}
	}
	return string(uri)
}

// position converts a byte offset into an LSP position: 0-based line and
// UTF-16 code units within the line.
func position(f *source.File, off uint32) protocol.Position {
	lc := f.Position(off)
	if lc.IsZero() {
		return protocol.Position{}
	}
	line := f.GetLine(lc.Line)
	prefix := line[:min(int(lc.Col-1), len(line))]
	units := 0
	for len(prefix) > 0 {
		r, size := utf8.DecodeRuneInString(prefix)
		prefix = prefix[size:]
		if n := utf16.RuneLen(r); n > 0 {
			units += n
		} else {
			units++
		}
	}
	return protocol.Position{Line: protocol.UInteger(lc.Line - 1), Character: protocol.UInteger(units)}
}

func spanRange(f *source.File, sp source.Span) protocol.Range {
	return protocol.Range{Start: position(f, sp.Start), End: position(f, sp.End)}
}

// toProtocol converts diagnostics of f; notes become related information.
func toProtocol(uri protocol.DocumentUri, f *source.File, items []diag.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(items))
	src := sourceName
	for _, d := range items {
		severity := protocol.DiagnosticSeverityError
		pd := protocol.Diagnostic{
			Range:    spanRange(f, d.Primary),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.Code.ID()},
			Source:   &src,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{URI: uri, Range: spanRange(f, n.Span)},
				Message:  n.Msg,
			})
		}
		out = append(out, pd)
	}
	return out
}

// quickFixes returns one code action per fix of the diagnostics touching rng.
func quickFixes(uri protocol.DocumentUri, f *source.File, items []diag.Diagnostic, rng protocol.Range) []protocol.CodeAction {
	var actions []protocol.CodeAction
	kind := protocol.CodeActionKind(protocol.CodeActionKindQuickFix)
	for _, d := range items {
		r := spanRange(f, d.Primary)
		if !overlaps(r, rng) {
			continue
		}
		related := toProtocol(uri, f, []diag.Diagnostic{d})
		for _, fix := range d.Fixes {
			edits := make([]protocol.TextEdit, 0, len(fix.Edits))
			for _, e := range fix.Edits {
				edits = append(edits, protocol.TextEdit{Range: spanRange(f, e.Span), NewText: e.NewText})
			}
			actions = append(actions, protocol.CodeAction{
				Title:       fix.Title,
				Kind:        &kind,
				Diagnostics: related,
				Edit: &protocol.WorkspaceEdit{
					Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: edits},
				},
			})
		}
	}
	return actions
}

func before(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

// overlaps treats both ranges as closed so zero-width diagnostics match a
// cursor placed on them.
func overlaps(a, b protocol.Range) bool {
	return !before(a.End, b.Start) && !before(b.End, a.Start)
}
