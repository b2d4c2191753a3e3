package main

import (
	"fmt"
	"io"

	"minic/internal/diag"
	"minic/internal/diagfmt"
	"minic/internal/source"
)

func prettyOpts(useColor, preview bool) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:       useColor,
		Context:     1,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: preview,
	}
}

// writeDiagnostics renders items in one of the check formats.
func writeDiagnostics(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, format string, opts diagfmt.PrettyOpts) error {
	switch format {
	case "short":
		return diagfmt.Short(w, items, fs)
	case "pretty":
		diagfmt.Pretty(w, items, fs, opts)
		return nil
	case "json":
		return diagfmt.JSON(w, items, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
