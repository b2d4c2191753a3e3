package testkit

import (
	"strings"
	"testing"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/source"
)

func TestCheckDiagnosticsBounds(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.c", []byte("int x\n")))

	ok := diag.Diagnostic{
		Code:    diag.SynMissingSemicolon,
		Primary: source.Span{File: file.ID, Start: 5, End: 5},
		Pos:     source.LineCol{Line: 1, Col: 6},
	}
	if err := CheckDiagnostics(file, []diag.Diagnostic{ok}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := ok
	bad.Primary.End = 40
	if err := CheckDiagnostics(file, []diag.Diagnostic{bad}); err == nil {
		t.Fatal("expected an out-of-bounds span to fail")
	}

	bad = ok
	bad.Pos.Line = 3
	if err := CheckDiagnostics(file, []diag.Diagnostic{bad}); err == nil || !strings.Contains(err.Error(), "position") {
		t.Fatalf("expected a position error, got %v", err)
	}
}

func TestCheckTreeDetectsSharing(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.c", []byte("int r = a + a;\n")))
	sp := func(start, end uint32) source.Span { return source.Span{File: file.ID, Start: start, End: end} }

	b := ast.NewBuilder(ast.Hints{})
	root := b.NewFile(sp(0, 14))
	a := b.Exprs.NewIdent(sp(8, 9), "a")
	sum := b.Exprs.NewBinary(sp(8, 13), ast.ExprBinaryAdd, a, a)
	b.PushDecl(root, b.Decls.NewVar(sp(0, 14), ast.VarDecl{Name: "r", Init: sum}))

	err := CheckTree(b, root, file)
	if err == nil || !strings.Contains(err.Error(), "two owners") {
		t.Fatalf("expected shared node to be rejected, got %v", err)
	}
}

func TestCheckTreeDetectsEscapingSpan(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.c", []byte("int r = 1;\n")))
	sp := func(start, end uint32) source.Span { return source.Span{File: file.ID, Start: start, End: end} }

	b := ast.NewBuilder(ast.Hints{})
	root := b.NewFile(sp(0, 10))
	lit := b.Exprs.NewLiteral(sp(8, 11), ast.ExprLitInt, "1", "1")
	b.PushDecl(root, b.Decls.NewVar(sp(0, 10), ast.VarDecl{Name: "r", Init: lit}))

	if err := CheckTree(b, root, file); err == nil {
		t.Fatal("expected a child span outside its parent to be rejected")
	}
}
