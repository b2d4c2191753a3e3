package diagfmt

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
)

var spanSuffix = regexp.MustCompile(` \[[^\]]*\]$`)

func stripSpans(out string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = spanSuffix.ReplaceAllString(line, "")
	}
	return strings.Join(lines, "\n")
}

func TestFormatASTPretty(t *testing.T) {
	res := analyze(t, "int g = 1;\nint add(int a, int b) {\n    return a + b * 2;\n}\nvoid f(void);\n")
	if res.HasDiagnostics() {
		t.Fatalf("unexpected diagnostics: %+v", res.Diagnostics())
	}

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.Builder, res.Tree, res.FileSet); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"Program test.c",
		"├─ VarDecl int g",
		"│  └─ init: Literal int 1",
		"├─ FunctionDecl int add(int a, int b)",
		"│  ├─ Param int a",
		"│  ├─ Param int b",
		"│  └─ body: Block",
		"│     └─ Return",
		"│        └─ value: Binary '+'",
		"│           ├─ lhs: Ident a",
		"│           └─ rhs: Binary '*'",
		"│              ├─ lhs: Ident b",
		"│              └─ rhs: Literal int 2",
		"└─ FunctionProto void f()",
	}, "\n")
	if got := stripSpans(buf.String()); got != want {
		t.Errorf("tree mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}

	first := strings.SplitN(buf.String(), "\n", 3)[1]
	if !strings.HasSuffix(first, "[1:1-1:11]") {
		t.Errorf("declaration span not printed as line:col: %q", first)
	}
}

func TestFormatASTControlFlow(t *testing.T) {
	src := "void f() {\n" +
		"    for (int i = 0; i < 3; i = i + 1) { g(i, !i); }\n" +
		"    while (x) ;\n" +
		"    if (x) return; else { x = -1; }\n" +
		"}\n"
	res := analyze(t, src)
	if res.HasDiagnostics() {
		t.Fatalf("unexpected diagnostics: %+v", res.Diagnostics())
	}

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.Builder, res.Tree, res.FileSet); err != nil {
		t.Fatal(err)
	}
	out := stripSpans(buf.String())
	for _, want := range []string{
		"For",
		"init: VarDecl int i",
		"cond: Binary '<'",
		"post: Assign",
		"target: Ident i",
		"callee: Ident g",
		"arg[1]: Unary '!'",
		"While",
		"body: Empty",
		"then: Return",
		"else: Block",
		"value: Unary '-'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
}

func TestFormatASTElidesDeepTrees(t *testing.T) {
	res := analyze(t, "int x = "+strings.Repeat("-", 5000)+"1;\n")

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.Builder, res.Tree, res.FileSet); err != nil {
		t.Fatal(err)
	}
	lines := strings.Count(buf.String(), "\n")
	if lines > maxTreeDepth+4 {
		t.Errorf("deep tree printed %d lines", lines)
	}
	if !strings.Contains(buf.String(), elidedKind) {
		t.Error("expected an elision marker")
	}
}

func TestFormatASTJSON(t *testing.T) {
	res := analyze(t, "int main() {\n    return 0;\n}\n")

	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, res.Builder, res.Tree, res.FileSet); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if root.Type != "Program" || len(root.Children) != 1 {
		t.Fatalf("unexpected root: %+v", root)
	}
	fn := root.Children[0]
	if fn.Type != "FunctionDecl" || fn.Text != "int main()" || fn.Span.StartLine != 1 || fn.Span.EndLine != 3 {
		t.Errorf("unexpected function node: %+v", fn)
	}
	body := fn.Children[0]
	if body.Role != "body" || body.Type != "Block" || body.Children[0].Type != "Return" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestFormatASTMissingFile(t *testing.T) {
	res := analyze(t, "int x;")
	if err := FormatASTPretty(&bytes.Buffer{}, res.Builder, res.Tree+7, res.FileSet); err == nil {
		t.Error("expected an error for an unknown file id")
	}
}
