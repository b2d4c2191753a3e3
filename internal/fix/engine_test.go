package fix

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"minic/internal/diag"
	"minic/internal/driver"
	"minic/internal/source"
)

const brokenProgram = "int main() {\n    int x = 1\n    foo(1, 2;\n    return x;\n}\n"

func analyzeTemp(t *testing.T, content string) (string, *driver.Result) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.c")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := driver.AnalyzeFile(context.Background(), path, driver.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return path, res
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestApplyAll(t *testing.T) {
	path, res := analyzeTemp(t, brokenProgram)

	result, err := Apply(res.FileSet, res.Diagnostics(), ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Applied) != 2 || len(result.Skipped) != 0 {
		t.Fatalf("applied %d, skipped %+v", len(result.Applied), result.Skipped)
	}
	if result.Applied[0].Title != "insert ';'" || result.Applied[0].Pos != (source.LineCol{Line: 2, Col: 14}) {
		t.Errorf("unexpected first fix: %+v", result.Applied[0])
	}

	want := "int main() {\n    int x = 1;\n    foo(1, 2);\n    return x;\n}\n"
	if diff := cmp.Diff(want, readFile(t, path)); diff != "" {
		t.Errorf("rewritten file mismatch (-want +got):\n%s", diff)
	}
	if len(result.FileChanges) != 1 || result.FileChanges[0].EditCount != 2 {
		t.Errorf("unexpected changes: %+v", result.FileChanges)
	}

	again, err := driver.AnalyzeFile(context.Background(), path, driver.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if again.HasDiagnostics() {
		t.Errorf("fixed file still has diagnostics: %+v", again.Diagnostics())
	}
}

func TestApplyOnceAndByCode(t *testing.T) {
	path, res := analyzeTemp(t, brokenProgram)
	result, err := Apply(res.FileSet, res.Diagnostics(), ApplyOptions{Mode: ApplyModeOnce, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Applied) != 1 || result.Applied[0].Code != diag.SynMissingSemicolon {
		t.Fatalf("once mode should take the first fix: %+v", result.Applied)
	}

	result, err = Apply(res.FileSet, res.Diagnostics(), ApplyOptions{Mode: ApplyModeCode, Code: diag.SynUnclosedParen, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	want := "int main() {\n    int x = 1\n    foo(1, 2);\n    return x;\n}\n"
	if len(result.FileChanges) != 1 || string(result.FileChanges[0].Content) != want {
		t.Errorf("unexpected dry-run content: %+v", result.FileChanges)
	}
	if readFile(t, path) != brokenProgram {
		t.Error("dry run modified the file")
	}
	diff, err := result.FileChanges[0].UnifiedDiff()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"-    foo(1, 2;\n", "+    foo(1, 2);\n", " int main() {\n"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}

	if _, err := Apply(res.FileSet, res.Diagnostics(), ApplyOptions{Mode: ApplyModeCode, Code: diag.SynUnclosedBrace}); !errors.Is(err, ErrNoFixes) {
		t.Errorf("expected ErrNoFixes, got %v", err)
	}
}

func TestApplyRestoresLineEndings(t *testing.T) {
	path, res := analyzeTemp(t, "\ufeffint x = 1\r\nint y;\r\n")
	if _, err := Apply(res.FileSet, res.Diagnostics(), ApplyOptions{Mode: ApplyModeAll}); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "\ufeffint x = 1;\r\nint y;\r\n" {
		t.Errorf("got %q", got)
	}
}

func TestApplySkipsVirtualFiles(t *testing.T) {
	res := driver.AnalyzeSource(context.Background(), "mem.c", []byte("int x = 1\n"), driver.DefaultOptions())
	result, err := Apply(res.FileSet, res.Diagnostics(), ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "target file is virtual" {
		t.Errorf("unexpected skips: %+v", result.Skipped)
	}
}

func TestApplySkipsConflicts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.c")
	if err := os.WriteFile(path, []byte("int abc;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	span := func(start, end uint32) source.Span { return source.Span{File: id, Start: start, End: end} }
	diagnostics := []diag.Diagnostic{
		diag.NewError(diag.SynUnexpectedToken, span(4, 7), "rename").
			WithFix("rename to xyz", diag.FixEdit{Span: span(4, 7), NewText: "xyz"}),
		diag.NewError(diag.SynUnexpectedToken, span(5, 6), "overlap").
			WithFix("replace b", diag.FixEdit{Span: span(5, 6), NewText: "B"}),
		diag.NewError(diag.SynUnexpectedToken, span(7, 7), "insert").
			WithFix("append", diag.FixEdit{Span: span(7, 7), NewText: "_1"}),
	}

	result, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Applied) != 2 || len(result.Skipped) != 1 || result.Skipped[0].Title != "replace b" {
		t.Fatalf("applied %+v skipped %+v", result.Applied, result.Skipped)
	}
	if got := readFile(t, path); got != "int xyz_1;\n" {
		t.Errorf("got %q", got)
	}
}

func TestSpansConflict(t *testing.T) {
	s := func(a, b uint32) source.Span { return source.Span{Start: a, End: b} }
	tests := []struct {
		a, b source.Span
		want bool
	}{
		{s(3, 3), s(3, 3), false},
		{s(3, 3), s(2, 5), true},
		{s(5, 5), s(2, 5), false},
		{s(2, 5), s(4, 8), true},
		{s(2, 5), s(5, 8), false},
	}
	for _, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Errorf("spansConflict(%v, %v) = %v", tt.a, tt.b, got)
		}
	}
}
