package testkit

import (
	"fmt"
	"testing"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/source"
)

// CheckDiagnostics verifies that every diagnostic points inside sf: spans
// are ordered and within the content, and line/column positions exist.
func CheckDiagnostics(sf *source.File, diags []diag.Diagnostic) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size := sf.Size()
	lines := max(sf.LineCount(), 1)
	inBounds := func(sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("span %v points to file %d, want %d", sp, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > size {
			return fmt.Errorf("span %v outside content of %d bytes", sp, size)
		}
		return nil
	}

	for i, d := range diags {
		if err := inBounds(d.Primary); err != nil {
			return fmt.Errorf("diagnostic %d (%s): %w", i, d.Code.ID(), err)
		}
		// a load failure has no position
		if d.Code == diag.IOLoadFileError {
			continue
		}
		if d.Pos.Line < 1 || d.Pos.Line > lines || d.Pos.Col < 1 {
			return fmt.Errorf("diagnostic %d (%s): position %d:%d outside %d lines", i, d.Code.ID(), d.Pos.Line, d.Pos.Col, lines)
		}
		for _, n := range d.Notes {
			if err := inBounds(n.Span); err != nil {
				return fmt.Errorf("diagnostic %d note: %w", i, err)
			}
		}
	}
	return nil
}

// CheckTree walks the tree rooted at fileID and verifies that no node is
// reached twice and that every child span lies inside its parent span.
// Nodes abandoned during error recovery are not reachable and not checked.
func CheckTree(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if f.Span.File != sf.ID || f.Span.End > sf.Size() {
		return fmt.Errorf("file span %v outside file %d", f.Span, sf.ID)
	}

	w := treeWalker{
		b:     b,
		decls: make(map[ast.DeclID]bool),
		stmts: make(map[ast.StmtID]bool),
		exprs: make(map[ast.ExprID]bool),
	}
	for _, id := range f.Decls {
		if err := w.decl(id, f.Span); err != nil {
			return err
		}
	}
	return nil
}

type treeWalker struct {
	b     *ast.Builder
	decls map[ast.DeclID]bool
	stmts map[ast.StmtID]bool
	exprs map[ast.ExprID]bool
}

func contains(parent, child source.Span) bool {
	return child.Start >= parent.Start && child.End <= parent.End
}

func (w *treeWalker) decl(id ast.DeclID, parent source.Span) error {
	if w.decls[id] {
		return fmt.Errorf("decl %d has two owners", id)
	}
	w.decls[id] = true
	d := w.b.Decls.Get(id)
	if d == nil {
		return fmt.Errorf("dangling decl %d", id)
	}
	if !contains(parent, d.Span) {
		return fmt.Errorf("decl %q span %v outside %v", d.Name, d.Span, parent)
	}
	body, init := w.b.DeclChildren(id)
	if body.IsValid() {
		if err := w.stmt(body, d.Span); err != nil {
			return err
		}
	}
	if init.IsValid() {
		return w.expr(init, d.Span)
	}
	return nil
}

func (w *treeWalker) stmt(id ast.StmtID, parent source.Span) error {
	if w.stmts[id] {
		return fmt.Errorf("stmt %d has two owners", id)
	}
	w.stmts[id] = true
	st := w.b.Stmts.Get(id)
	if st == nil {
		return fmt.Errorf("dangling stmt %d", id)
	}
	if !contains(parent, st.Span) {
		return fmt.Errorf("stmt %d span %v outside %v", id, st.Span, parent)
	}
	stmts, exprs := w.b.StmtChildren(id)
	for _, child := range stmts {
		if err := w.stmt(child, st.Span); err != nil {
			return err
		}
	}
	for _, child := range exprs {
		if err := w.expr(child, st.Span); err != nil {
			return err
		}
	}
	return nil
}

// expr walks iteratively; expression nesting is unbounded.
func (w *treeWalker) expr(root ast.ExprID, parent source.Span) error {
	type item struct {
		id     ast.ExprID
		parent source.Span
	}
	stack := []item{{root, parent}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w.exprs[it.id] {
			return fmt.Errorf("expr %d has two owners", it.id)
		}
		w.exprs[it.id] = true
		e := w.b.Exprs.Get(it.id)
		if e == nil {
			return fmt.Errorf("dangling expr %d", it.id)
		}
		if !contains(it.parent, e.Span) {
			return fmt.Errorf("expr %d span %v outside %v", it.id, e.Span, it.parent)
		}
		for _, child := range w.b.ExprChildren(it.id) {
			stack = append(stack, item{child, e.Span})
		}
	}
	return nil
}

// CheckResult runs CheckDiagnostics and, when a tree exists, CheckTree.
func CheckResult(t testing.TB, sf *source.File, diags []diag.Diagnostic, b *ast.Builder, fileID ast.FileID) {
	t.Helper()
	if err := CheckDiagnostics(sf, diags); err != nil {
		t.Fatalf("diagnostic invariant: %v", err)
	}
	if b == nil {
		return
	}
	if err := CheckTree(b, fileID, sf); err != nil {
		t.Fatalf("tree invariant: %v", err)
	}
}
