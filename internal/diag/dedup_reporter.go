package diag

import "minic/internal/source"

// DedupReporter forwards each distinct report once. Panic-mode recovery may
// stop twice on the same token; only the first report survives. Reports that
// share a span but point at different openers (nested unclosed blocks all end
// at EOF) stay distinct through the note span.
type DedupReporter struct {
	next       Reporter
	seen       map[reportKey]struct{}
	suppressed int
}

type reportKey struct {
	code Code
	span source.Span
	note source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[reportKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil || r.next == nil {
		return
	}
	key := reportKey{code: code, span: primary, msg: msg}
	if len(notes) > 0 {
		key.note = notes[0].Span
	}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}

// Suppressed counts the reports dropped as duplicates.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
