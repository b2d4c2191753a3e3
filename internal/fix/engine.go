// Package fix applies the edits suggested by diagnostics back to source files.
package fix

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"minic/internal/diag"
	"minic/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota // first fix in source order
	ApplyModeAll
	ApplyModeCode // every fix of diagnostics carrying ApplyOptions.Code
)

// ApplyOptions configures how fixes are selected and written.
type ApplyOptions struct {
	Mode ApplyMode
	Code diag.Code
	// DryRun computes FileChange.Content without touching the files.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title   string
	Code    diag.Code
	Message string
	Path    string
	Pos     source.LineCol
}

// SkippedFix captures a fix that was not applied and why.
type SkippedFix struct {
	Title  string
	Path   string
	Pos    source.LineCol
	Reason string
}

// FileChange summarises the modifications of one file.
type FileChange struct {
	Path      string
	EditCount int
	Original  []byte
	Content   []byte // the rewritten file as it is (or would be) on disk
}

// UnifiedDiff renders the change as a unified diff with two context lines.
func (c FileChange) UnifiedDiff() (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(c.Original)),
		B:        difflib.SplitLines(string(c.Content)),
		FromFile: "a/" + c.Path,
		ToFile:   "b/" + c.Path,
		Context:  2,
	})
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  *diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts
// and applies them. Fixes whose edits overlap an already accepted edit are
// skipped.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected := selectCandidates(candidates, opts)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	if err := applyCandidates(fs, selected, opts.DryRun, result); err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

func gatherCandidates(diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	order := 0
	for i := range diagnostics {
		d := &diagnostics[i]
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates orders by file, span start, span end and then emission
// order, so inserts at one offset keep the order they were reported in.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) []candidate {
	switch opts.Mode {
	case ApplyModeOnce:
		return candidates[:1]
	case ApplyModeAll:
		return candidates
	case ApplyModeCode:
		var selected []candidate
		for _, cand := range candidates {
			if cand.diag.Code == opts.Code {
				selected = append(selected, cand)
			}
		}
		return selected
	default:
		return nil
	}
}

type pendingEdit struct {
	diag.FixEdit
	seq int
}

func applyCandidates(fs *source.FileSet, selected []candidate, dryRun bool, result *ApplyResult) error {
	accepted := make(map[source.FileID][]pendingEdit)
	var dirty []source.FileID
	seq := 0

	for _, cand := range selected {
		file := fs.Get(cand.diag.Primary.File)
		skip := func(reason string) {
			result.Skipped = append(result.Skipped, SkippedFix{
				Title:  cand.fix.Title,
				Path:   displayPath(fs, file),
				Pos:    file.Position(cand.diag.Primary.Start),
				Reason: reason,
			})
		}

		if reason := checkEdits(fs, cand.fix.Edits, accepted); reason != "" {
			skip(reason)
			continue
		}
		for _, e := range cand.fix.Edits {
			if len(accepted[e.Span.File]) == 0 {
				dirty = append(dirty, e.Span.File)
			}
			accepted[e.Span.File] = append(accepted[e.Span.File], pendingEdit{FixEdit: e, seq: seq})
			seq++
		}
		result.Applied = append(result.Applied, AppliedFix{
			Title:   cand.fix.Title,
			Code:    cand.diag.Code,
			Message: cand.diag.Message,
			Path:    displayPath(fs, file),
			Pos:     file.Position(cand.diag.Primary.Start),
		})
	}

	slices.Sort(dirty)
	for _, id := range dirty {
		file := fs.Get(id)
		content := encodeLike(file, rewrite(file.Content, accepted[id]))
		if !dryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, content, mode); err != nil {
				return fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      displayPath(fs, file),
			EditCount: len(accepted[id]),
			Original:  encodeLike(file, file.Content),
			Content:   content,
		})
	}
	return nil
}

// checkEdits returns why edits cannot be applied, or "".
func checkEdits(fs *source.FileSet, edits []diag.FixEdit, accepted map[source.FileID][]pendingEdit) string {
	for _, e := range edits {
		file := fs.Get(e.Span.File)
		switch {
		case file.Flags&source.FileVirtual != 0:
			return "target file is virtual"
		case file.Flags&source.FileDecodedLatin1 != 0:
			return "target file was transcoded from latin1"
		case e.Span.End < e.Span.Start || int(e.Span.End) > len(file.Content):
			return "edit span out of range"
		}
		for _, prev := range accepted[e.Span.File] {
			if spansConflict(prev.Span, e.Span) {
				return "conflicts with a previously applied edit"
			}
		}
	}
	return ""
}

// spansConflict reports whether two half-open spans overlap. Two inserts
// never conflict; an insert conflicts with a span strictly containing it.
func spansConflict(a, b source.Span) bool {
	if a.Empty() && b.Empty() {
		return false
	}
	if a.Empty() {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Empty() {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// rewrite applies non-overlapping edits given in original offsets.
func rewrite(content []byte, edits []pendingEdit) []byte {
	ordered := slices.Clone(edits)
	// back to front; inserts at one offset keep their acceptance order
	slices.SortStableFunc(ordered, func(a, b pendingEdit) int {
		if a.Span.Start != b.Span.Start {
			return int(b.Span.Start) - int(a.Span.Start)
		}
		return b.seq - a.seq
	})
	out := slices.Clone(content)
	for _, e := range ordered {
		out = slices.Concat(out[:e.Span.Start], []byte(e.NewText), out[e.Span.End:])
	}
	return out
}

// encodeLike restores the CRLF line endings and BOM stripped on load.
func encodeLike(file *source.File, content []byte) []byte {
	if file.Flags&source.FileNormalizedCRLF != 0 {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if file.Flags&source.FileHadBOM != 0 {
		content = append([]byte{0xEF, 0xBB, 0xBF}, content...)
	}
	return content
}

func displayPath(fs *source.FileSet, file *source.File) string {
	if file.Flags&source.FileVirtual != 0 {
		return file.Path
	}
	return file.FormatPath("auto", fs.BaseDir())
}
