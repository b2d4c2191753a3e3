package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"minic/internal/ast"
	"minic/internal/source"
)

// maxTreeDepth bounds the printed nesting; deeper subtrees are elided.
const maxTreeDepth = 256

type treeNode struct {
	kind     string
	role     string
	text     string
	span     source.Span
	children []*treeNode
}

func (n *treeNode) add(child *treeNode) {
	if child != nil {
		n.children = append(n.children, child)
	}
}

func (n *treeNode) label(fs *source.FileSet) string {
	var sb strings.Builder
	if n.role != "" {
		sb.WriteString(n.role)
		sb.WriteString(": ")
	}
	sb.WriteString(n.kind)
	if n.text != "" {
		sb.WriteByte(' ')
		sb.WriteString(n.text)
	}
	if n.kind != elidedKind {
		sb.WriteString(" [")
		sb.WriteString(formatSpan(n.span, fs))
		sb.WriteByte(']')
	}
	return sb.String()
}

const elidedKind = "…"

func elided(role string) *treeNode {
	return &treeNode{kind: elidedKind, role: role}
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if f := fileOf(fs, span); f != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("%d..%d", span.Start, span.End)
}

type treeBuilder struct {
	b *ast.Builder
}

func buildFileTreeNode(builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) (*treeNode, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return nil, fmt.Errorf("file %d not found in tree", fileID)
	}
	root := &treeNode{kind: "Program", span: file.Span}
	if f := fileOf(fs, file.Span); f != nil {
		root.text = formatPath(f, fs, PathModeAuto)
	}
	tb := treeBuilder{b: builder}
	for _, id := range file.Decls {
		root.add(tb.decl(id))
	}
	return root, nil
}

func (tb treeBuilder) decl(id ast.DeclID) *treeNode {
	d := tb.b.Decls.Get(id)
	if d == nil {
		return nil
	}
	switch d.Kind {
	case ast.DeclFunc:
		fn, _ := tb.b.Decls.Func(id)
		node := &treeNode{kind: "FunctionDecl", span: d.Span}
		if !fn.Body.IsValid() {
			node.kind = "FunctionProto"
		}
		params := make([]string, 0, len(fn.Params))
		for _, p := range fn.Params {
			params = append(params, strings.TrimSpace(p.Type.String()+" "+p.Name))
		}
		node.text = fmt.Sprintf("%s %s(%s)", fn.Result, d.Name, strings.Join(params, ", "))
		for _, p := range fn.Params {
			node.add(&treeNode{kind: "Param", text: strings.TrimSpace(p.Type.String() + " " + p.Name), span: p.Span})
		}
		if fn.Body.IsValid() {
			node.add(tb.stmt(fn.Body, "body", 1))
		}
		return node
	case ast.DeclVar:
		v, _ := tb.b.Decls.Var(id)
		return tb.varDecl(v, d.Span, "", 0)
	}
	return nil
}

func (tb treeBuilder) varDecl(v *ast.VarDecl, span source.Span, role string, depth int) *treeNode {
	node := &treeNode{kind: "VarDecl", role: role, text: v.Type.String() + " " + v.Name, span: span}
	if v.Init.IsValid() {
		node.add(tb.expr(v.Init, "init", depth+1))
	}
	return node
}

func (tb treeBuilder) stmt(id ast.StmtID, role string, depth int) *treeNode {
	if !id.IsValid() {
		return nil
	}
	if depth > maxTreeDepth {
		return elided(role)
	}
	st := tb.b.Stmts.Get(id)
	if st == nil {
		return nil
	}
	node := &treeNode{role: role, span: st.Span}
	switch st.Kind {
	case ast.StmtBlock:
		node.kind = "Block"
		if blk, ok := tb.b.Stmts.Block(id); ok {
			for _, child := range blk.Stmts {
				node.add(tb.stmt(child, "", depth+1))
			}
		}
	case ast.StmtIf:
		node.kind = "If"
		if s, ok := tb.b.Stmts.If(id); ok {
			node.add(tb.expr(s.Cond, "cond", depth+1))
			node.add(tb.stmt(s.Then, "then", depth+1))
			node.add(tb.stmt(s.Else, "else", depth+1))
		}
	case ast.StmtWhile:
		node.kind = "While"
		if s, ok := tb.b.Stmts.While(id); ok {
			node.add(tb.expr(s.Cond, "cond", depth+1))
			node.add(tb.stmt(s.Body, "body", depth+1))
		}
	case ast.StmtFor:
		node.kind = "For"
		if s, ok := tb.b.Stmts.For(id); ok {
			node.add(tb.stmt(s.Init, "init", depth+1))
			node.add(tb.expr(s.Cond, "cond", depth+1))
			node.add(tb.expr(s.Post, "post", depth+1))
			node.add(tb.stmt(s.Body, "body", depth+1))
		}
	case ast.StmtReturn:
		node.kind = "Return"
		if s, ok := tb.b.Stmts.Return(id); ok {
			node.add(tb.expr(s.Value, "value", depth+1))
		}
	case ast.StmtExpr:
		node.kind = "ExprStmt"
		if s, ok := tb.b.Stmts.Expr(id); ok {
			node.add(tb.expr(s.Expr, "", depth+1))
		}
	case ast.StmtVarDecl:
		if v, ok := tb.b.Stmts.VarDecl(id); ok {
			return tb.varDecl(v, st.Span, role, depth)
		}
		node.kind = "VarDecl"
	case ast.StmtEmpty:
		node.kind = "Empty"
	}
	return node
}

func (tb treeBuilder) expr(id ast.ExprID, role string, depth int) *treeNode {
	if !id.IsValid() {
		return nil
	}
	if depth > maxTreeDepth {
		return elided(role)
	}
	e := tb.b.Exprs.Get(id)
	if e == nil {
		return nil
	}
	node := &treeNode{role: role, span: e.Span}
	switch e.Kind {
	case ast.ExprIdent:
		node.kind = "Ident"
		if data, ok := tb.b.Exprs.Ident(id); ok {
			node.text = data.Name
		}
	case ast.ExprLit:
		node.kind = "Literal"
		if data, ok := tb.b.Exprs.Literal(id); ok {
			node.text = data.Kind.String() + " " + data.Raw
		}
	case ast.ExprBinary:
		node.kind = "Binary"
		if data, ok := tb.b.Exprs.Binary(id); ok {
			node.text = "'" + data.Op.String() + "'"
			node.add(tb.expr(data.Left, "lhs", depth+1))
			node.add(tb.expr(data.Right, "rhs", depth+1))
		}
	case ast.ExprUnary:
		node.kind = "Unary"
		if data, ok := tb.b.Exprs.Unary(id); ok {
			node.text = "'" + data.Op.String() + "'"
			node.add(tb.expr(data.Operand, "", depth+1))
		}
	case ast.ExprAssign:
		node.kind = "Assign"
		if data, ok := tb.b.Exprs.Assign(id); ok {
			node.add(tb.expr(data.Target, "target", depth+1))
			node.add(tb.expr(data.Value, "value", depth+1))
		}
	case ast.ExprCall:
		node.kind = "Call"
		if data, ok := tb.b.Exprs.Call(id); ok {
			node.add(tb.expr(data.Callee, "callee", depth+1))
			for i, arg := range data.Args {
				node.add(tb.expr(arg, fmt.Sprintf("arg[%d]", i), depth+1))
			}
		}
	}
	return node
}

// FormatASTPretty prints the tree of fileID with box-drawing connectors,
// one node per line.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := buildFileTreeNode(builder, fileID, fs)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, root.label(fs)); err != nil {
		return err
	}
	return writeTreeChildren(w, root, "", fs)
}

func writeTreeChildren(w io.Writer, n *treeNode, prefix string, fs *source.FileSet) error {
	for i, child := range n.children {
		branch, next := "├─ ", "│  "
		if i == len(n.children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, child.label(fs)); err != nil {
			return err
		}
		if err := writeTreeChildren(w, child, prefix+next, fs); err != nil {
			return err
		}
	}
	return nil
}

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Role     string          `json:"role,omitempty"`
	Text     string          `json:"text,omitempty"`
	Span     LocationJSON    `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

func (n *treeNode) output(fs *source.FileSet) ASTNodeOutput {
	out := ASTNodeOutput{
		Type: n.kind,
		Role: n.role,
		Text: n.text,
		Span: makeLocation(n.span, fs, PathModeAuto, true),
	}
	for _, child := range n.children {
		out.Children = append(out.Children, child.output(fs))
	}
	return out
}

// FormatASTJSON prints the tree of fileID as nested JSON objects.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := buildFileTreeNode(builder, fileID, fs)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root.output(fs))
}
