package ast

// ExprChildren returns the direct sub-expressions of id in source order.
func (b *Builder) ExprChildren(id ExprID) []ExprID {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return nil
	}
	var out []ExprID
	switch expr.Kind {
	case ExprBinary:
		d, _ := b.Exprs.Binary(id)
		out = append(out, d.Left, d.Right)
	case ExprUnary:
		d, _ := b.Exprs.Unary(id)
		out = append(out, d.Operand)
	case ExprAssign:
		d, _ := b.Exprs.Assign(id)
		out = append(out, d.Target, d.Value)
	case ExprCall:
		d, _ := b.Exprs.Call(id)
		out = append(out, d.Callee)
		out = append(out, d.Args...)
	}
	return validExprs(out)
}

// StmtChildren returns the direct child statements and expressions of id.
func (b *Builder) StmtChildren(id StmtID) (stmts []StmtID, exprs []ExprID) {
	st := b.Stmts.Get(id)
	if st == nil {
		return nil, nil
	}
	switch st.Kind {
	case StmtBlock:
		d, _ := b.Stmts.Block(id)
		stmts = append(stmts, d.Stmts...)
	case StmtIf:
		d, _ := b.Stmts.If(id)
		exprs = append(exprs, d.Cond)
		stmts = append(stmts, d.Then, d.Else)
	case StmtWhile:
		d, _ := b.Stmts.While(id)
		exprs = append(exprs, d.Cond)
		stmts = append(stmts, d.Body)
	case StmtFor:
		d, _ := b.Stmts.For(id)
		stmts = append(stmts, d.Init, d.Body)
		exprs = append(exprs, d.Cond, d.Post)
	case StmtReturn:
		d, _ := b.Stmts.Return(id)
		exprs = append(exprs, d.Value)
	case StmtExpr:
		d, _ := b.Stmts.Expr(id)
		exprs = append(exprs, d.Expr)
	case StmtVarDecl:
		d, _ := b.Stmts.VarDecl(id)
		exprs = append(exprs, d.Init)
	}
	return validStmts(stmts), validExprs(exprs)
}

// DeclChildren returns the body statement and initializer of a declaration.
func (b *Builder) DeclChildren(id DeclID) (StmtID, ExprID) {
	if fn, ok := b.Decls.Func(id); ok {
		return fn.Body, NoExprID
	}
	if v, ok := b.Decls.Var(id); ok {
		return NoStmtID, v.Init
	}
	return NoStmtID, NoExprID
}

func validExprs(ids []ExprID) []ExprID {
	out := ids[:0]
	for _, id := range ids {
		if id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

func validStmts(ids []StmtID) []StmtID {
	out := ids[:0]
	for _, id := range ids {
		if id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}
