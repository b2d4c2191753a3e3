package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"minic/internal/diag"
	"minic/internal/testkit"
	"minic/internal/token"
)

type diagAt struct {
	Kind string
	Line uint32
	Col  uint32
}

func project(diags []diag.Diagnostic) []diagAt {
	out := make([]diagAt, 0, len(diags))
	for _, d := range diags {
		out = append(out, diagAt{Kind: d.Code.Kind(), Line: d.Pos.Line, Col: d.Pos.Col})
	}
	return out
}

func analyzeFixture(t *testing.T, name string) *Result {
	t.Helper()
	res, err := AnalyzeFile(context.Background(), filepath.Join("testdata", name), DefaultOptions())
	if err != nil {
		t.Fatalf("AnalyzeFile(%s): %v", name, err)
	}
	testkit.CheckResult(t, res.File, res.Diagnostics(), res.Builder, res.Tree)
	return res
}

func TestValidFixtures(t *testing.T) {
	for _, name := range []string{"exemplo_simples.c", "test_code.c"} {
		t.Run(name, func(t *testing.T) {
			res := analyzeFixture(t, name)
			if res.HasDiagnostics() {
				t.Fatalf("unexpected diagnostics: %v", project(res.Diagnostics()))
			}
			if res.Fatal {
				t.Fatal("unexpected fatal result")
			}
			if len(res.Builder.Files.Get(res.Tree).Decls) == 0 {
				t.Fatal("expected declarations in the tree")
			}
		})
	}
}

func TestErroneousFixtures(t *testing.T) {
	tests := []struct {
		name  string
		fatal bool
		want  []diagAt
	}{
		{
			name: "exemplo_erros.c",
			want: []diagAt{
				{"MissingSemicolon", 6, 15},
				{"UnclosedParen", 9, 14},
				{"InvalidCharacter", 19, 15},
				{"UnexpectedToken", 19, 15},
				{"UnterminatedString", 22, 17},
				{"UnclosedBrace", 26, 1},
			},
		},
		{
			name:  "test_errors.c",
			fatal: true,
			want: []diagAt{
				{"InvalidCharacter", 7, 12},
				{"UnexpectedToken", 7, 12},
				{"UnterminatedString", 10, 13},
				{"UnterminatedComment", 13, 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := analyzeFixture(t, tt.name)
			if diff := cmp.Diff(tt.want, project(res.Diagnostics())); diff != "" {
				t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
			}
			if res.Fatal != tt.fatal {
				t.Fatalf("Fatal = %v, want %v", res.Fatal, tt.fatal)
			}
		})
	}
}

func TestAnalyzeSourceIsIdempotent(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "exemplo_erros.c"))
	if err != nil {
		t.Fatal(err)
	}
	first := AnalyzeSource(context.Background(), "a.c", content, DefaultOptions())
	second := AnalyzeSource(context.Background(), "a.c", content, DefaultOptions())
	if diff := cmp.Diff(first.Diagnostics(), second.Diagnostics()); diff != "" {
		t.Fatalf("second run differs (-first +second):\n%s", diff)
	}
}

func TestConcurrentRunsAreIndependent(t *testing.T) {
	names := []string{"exemplo_simples.c", "exemplo_erros.c", "test_code.c", "test_errors.c"}
	contents := make([][]byte, len(names))
	want := make([][]diagAt, len(names))
	for i, name := range names {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Fatal(err)
		}
		contents[i] = data
		want[i] = project(AnalyzeSource(context.Background(), name, data, DefaultOptions()).Diagnostics())
	}

	const rounds = 8
	got := make([][]diagAt, rounds*len(names))
	var wg sync.WaitGroup
	for r := range rounds {
		for i := range names {
			wg.Go(func() {
				res := AnalyzeSource(context.Background(), names[i], contents[i], DefaultOptions())
				got[r*len(names)+i] = project(res.Diagnostics())
			})
		}
	}
	wg.Wait()

	for idx, diags := range got {
		if diff := cmp.Diff(want[idx%len(names)], diags); diff != "" {
			t.Fatalf("run %d differs (-want +got):\n%s", idx, diff)
		}
	}
}

func TestAnalyzeSourceNormalisesCRLF(t *testing.T) {
	res := AnalyzeSource(context.Background(), "crlf.c", []byte("int x = 1\r\nint y = 2;\r\n"), DefaultOptions())
	want := []diagAt{{"MissingSemicolon", 1, 10}}
	if diff := cmp.Diff(want, project(res.Diagnostics())); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestMaxDiagnosticsCap(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDiagnostics = 2
	res := AnalyzeSource(context.Background(), "cap.c", []byte(strings.Repeat("int x = = 1;\n", 10)), opts)
	if got := res.Bag.Len(); got != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", got)
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	_, err := AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "nope.c"), DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), "failed to load") {
		t.Fatalf("expected a load error, got %v", err)
	}
}

func TestTokenizeFixture(t *testing.T) {
	res, err := Tokenize(context.Background(), filepath.Join("testdata", "exemplo_simples.c"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected lexer diagnostics: %d", res.Bag.Len())
	}
	var texts []string
	for _, tok := range res.Tokens[:5] {
		texts = append(texts, tok.Text)
	}
	if diff := cmp.Diff([]string{"int", "main", "(", ")", "{"}, texts); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.EOF {
		t.Fatalf("expected EOF at the end, got %v", last.Kind)
	}
	if first := res.Tokens[0]; first.Pos.Line != 4 || first.Pos.Col != 1 {
		t.Fatalf("unexpected first token position %d:%d", first.Pos.Line, first.Pos.Col)
	}
}

func TestUnclosedBracesOnOneLine(t *testing.T) {
	tests := []struct {
		src    string
		opened []uint32 // columns of the '{' left open, deepest first
	}{
		{"int main() { if (x) { while (y) {\n", []uint32{33, 21, 12}},
		{"int main() { {", []uint32{14, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := AnalyzeSource(context.Background(), "braces.c", []byte(tt.src), DefaultOptions())
			var cols []uint32
			for _, d := range res.Diagnostics() {
				if d.Code != diag.SynUnclosedBrace {
					continue
				}
				if len(d.Notes) != 1 {
					t.Fatalf("UnclosedBrace without its opener: %+v", d)
				}
				cols = append(cols, res.File.Position(d.Notes[0].Span.Start).Col)
			}
			if diff := cmp.Diff(tt.opened, cols); diff != "" {
				t.Fatalf("unclosed openers (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCharLiteralMustHoldOneCharacter(t *testing.T) {
	for _, src := range []string{"char c = 'ab';\n", "char c = '';\n", "char c = '\\q';\n"} {
		res := AnalyzeSource(context.Background(), "c.c", []byte(src), DefaultOptions())
		want := []diagAt{{"InvalidCharLiteral", 1, 10}}
		if diff := cmp.Diff(want, project(res.Diagnostics())); diff != "" {
			t.Errorf("%q (-want +got):\n%s", src, diff)
		}
	}
}
