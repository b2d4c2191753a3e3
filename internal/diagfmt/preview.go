package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"minic/internal/diag"
	"minic/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview returns the lines touched by edit, before and after
// applying it.
func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	f := fileOf(fs, edit.Span)
	if f == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	if edit.Span.End < edit.Span.Start || edit.Span.End > f.Size() {
		return fixEditPreview{}, fmt.Errorf("edit span %s out of range", edit.Span)
	}

	start, end := fs.Resolve(edit.Span)
	blockStart := edit.Span.Start - (start.Col - 1)
	blockEnd := lineEndOffset(f, end.Line)
	if blockEnd < edit.Span.End {
		blockEnd = edit.Span.End
	}

	original := string(f.Content[blockStart:blockEnd])
	relStart := int(edit.Span.Start - blockStart)
	relEnd := int(edit.Span.End - blockStart)
	patched := original[:relStart] + edit.NewText + original[relEnd:]

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(patched),
	}, nil
}

// lineEndOffset is the offset of the '\n' ending line, or the file size for
// the last line.
func lineEndOffset(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := int(line - 1); idx < len(f.LineIdx) {
		return f.LineIdx[idx]
	}
	return f.Size()
}

func splitPreviewLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

func writeFixPreview(w io.Writer, fs *source.FileSet, fix diag.Fix, pal palette) {
	for _, edit := range fix.Edits {
		preview, err := buildFixEditPreview(fs, edit)
		if err != nil {
			fmt.Fprintf(w, "    (preview unavailable: %v)\n", err)
			continue
		}
		for _, line := range preview.before {
			fmt.Fprintf(w, "    %s %s\n", pal.caret.Sprint("-"), expandTabs(line))
		}
		for _, line := range preview.after {
			fmt.Fprintf(w, "    %s %s\n", pal.help.Sprint("+"), expandTabs(line))
		}
	}
}
