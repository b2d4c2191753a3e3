package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/lexer"
	"minic/internal/source"
)

type parsed struct {
	builder *ast.Builder
	file    ast.FileID
	bag     *diag.Bag
	result  Result
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) parsed {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(0)
	// same filtering as the driver
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag, File: file})

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	opts.Reporter = reporter

	result := ParseFile(context.Background(), lx, builder, opts)
	return parsed{builder: builder, file: result.File, bag: bag, result: result}
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %d:%d %s", d.Code.ID(), d.Pos.Line, d.Pos.Col, d.Message)
	}
	return strings.Join(lines, "; ")
}

// diagAt is the comparable projection of a diagnostic used by the tests.
type diagAt struct {
	Kind string
	Line uint32
	Col  uint32
}

func project(bag *diag.Bag) []diagAt {
	out := make([]diagAt, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, diagAt{Kind: d.Code.Kind(), Line: d.Pos.Line, Col: d.Pos.Col})
	}
	return out
}

func expectNoDiagnostics(t *testing.T, p parsed) {
	t.Helper()
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
}

func topDecls(p parsed) []ast.DeclID {
	return p.builder.Files.Get(p.file).Decls
}

// funcBody returns the statements of the named function.
func funcBody(t *testing.T, p parsed, name string) []ast.StmtID {
	t.Helper()
	for _, id := range topDecls(p) {
		if p.builder.Decls.Get(id).Name != name {
			continue
		}
		fn, ok := p.builder.Decls.Func(id)
		if !ok {
			t.Fatalf("%s is not a function", name)
		}
		block, ok := p.builder.Stmts.Block(fn.Body)
		if !ok {
			t.Fatalf("%s has no body", name)
		}
		return block.Stmts
	}
	t.Fatalf("function %s not found", name)
	return nil
}

// exprString renders an expression fully parenthesised.
func exprString(b *ast.Builder, id ast.ExprID) string {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return "<nil>"
	}
	switch expr.Kind {
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		return d.Name
	case ast.ExprLit:
		d, _ := b.Exprs.Literal(id)
		return d.Raw
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return "(" + d.Op.String() + exprString(b, d.Operand) + ")"
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return "(" + exprString(b, d.Left) + " " + d.Op.String() + " " + exprString(b, d.Right) + ")"
	case ast.ExprAssign:
		d, _ := b.Exprs.Assign(id)
		return "(" + exprString(b, d.Target) + " = " + exprString(b, d.Value) + ")"
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		args := make([]string, len(d.Args))
		for i, a := range d.Args {
			args[i] = exprString(b, a)
		}
		return exprString(b, d.Callee) + "(" + strings.Join(args, ", ") + ")"
	}
	return "?"
}

// globalInit returns the initializer of the named global variable.
func globalInit(t *testing.T, p parsed, name string) ast.ExprID {
	t.Helper()
	for _, id := range topDecls(p) {
		if v, ok := p.builder.Decls.Var(id); ok && v.Name == name {
			return v.Init
		}
	}
	t.Fatalf("global %s not found", name)
	return ast.NoExprID
}
