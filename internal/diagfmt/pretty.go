package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"minic/internal/diag"
	"minic/internal/source"
)

const tabWidth = 4

type palette struct {
	path   *color.Color
	err    *color.Color
	fatal  *color.Color
	note   *color.Color
	help   *color.Color
	gutter *color.Color
	caret  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:   color.New(color.Bold),
		err:    color.New(color.FgRed, color.Bold),
		fatal:  color.New(color.FgMagenta, color.Bold),
		note:   color.New(color.FgCyan, color.Bold),
		help:   color.New(color.FgGreen),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
	}
	// the global color.NoColor only reflects stdout; the caller decides
	for _, c := range []*color.Color{p.path, p.err, p.fatal, p.note, p.help, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty renders diagnostics for a terminal, in the order given:
//
//	path:6:15: ERROR SYN2002: expected ';' after declaration
//	   6 |     int x = 10
//	     |               ^
//	  = help: insert ';'
//
// Notes and fixes are printed only when enabled in opts.
func Pretty(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, &items[i], fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sevColor := pal.err
	if d.Severity == diag.SevFatal {
		sevColor = pal.fatal
	}
	sev := sevColor.Sprint(strings.ToUpper(d.Severity.String()))

	f := fileOf(fs, d.Primary)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", sev, d.Code.ID(), d.Message)
		return
	}
	start := f.Position(d.Primary.Start)
	loc := pal.path.Sprintf("%s:%d:%d:", formatPath(f, fs, opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(w, "%s %s %s: %s\n", loc, sev, d.Code.ID(), d.Message)
	writeFrame(w, f, d.Primary, int(opts.Context), opts.Width, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fileOf(fs, n.Span)
			if nf == nil {
				fmt.Fprintf(w, "  = %s %s\n", pal.note.Sprint("note:"), n.Msg)
				continue
			}
			pos := nf.Position(n.Span.Start)
			fmt.Fprintf(w, "  = %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), pos.Line, pos.Col, n.Msg)
			writeFrame(w, nf, n.Span, 0, opts.Width, pal)
		}
	}

	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  = %s %s\n", pal.help.Sprint("help:"), fix.Title)
			if opts.ShowPreview {
				writeFixPreview(w, fs, fix, pal)
			}
		}
	}
}

// writeFrame prints the line holding sp.Start, up to context lines above it,
// and a marker under the span. Spans running past the line are underlined to
// its end; empty spans get a single caret.
func writeFrame(w io.Writer, f *source.File, sp source.Span, context int, width uint8, pal palette) {
	start := f.Position(sp.Start)
	end := f.Position(sp.End)

	first := uint32(1)
	if ctx := uint32(max(context, 0)); start.Line > ctx {
		first = start.Line - ctx
	}
	gw := len(strconv.FormatUint(uint64(start.Line), 10)) + 2
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gw, ln), displayLine(f.GetLine(ln), width))
	}

	line := f.GetLine(start.Line)
	col := clampCol(start.Col, line)
	endCol := len(line)
	if end.Line == start.Line {
		endCol = max(clampCol(end.Col, line), col)
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	n := max(runewidth.StringWidth(expandTabs(line[col:endCol])), 1)
	marker := "^" + strings.Repeat("~", n-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gw, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marker))
}

func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	return fs.Get(sp.File)
}

// clampCol turns a 1-based byte column into an index into line.
func clampCol(col uint32, line string) int {
	c := int(col) - 1
	if c < 0 {
		return 0
	}
	return min(c, len(line))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayLine(line string, width uint8) string {
	s := expandTabs(line)
	if width > 0 {
		s = runewidth.Truncate(s, int(width), "…")
	}
	return s
}

// Short writes the one-line-per-diagnostic listing used by `minic check`.
func Short(w io.Writer, items []diag.Diagnostic, fs *source.FileSet) error {
	ptrs := make([]*diag.Diagnostic, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	_, err := io.WriteString(w, diag.FormatShortDiagnostics(ptrs, fs))
	return err
}
