package ast

import (
	"minic/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtIf
	StmtWhile
	StmtFor
	StmtReturn
	StmtExpr
	StmtVarDecl
	StmtEmpty
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

// IfStmt has Else == NoStmtID when there is no else branch.
type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

// ForStmt: Init is a StmtVarDecl or StmtExpr; any header part may be absent.
type ForStmt struct {
	Init StmtID
	Cond ExprID
	Post ExprID
	Body StmtID
}

type ReturnStmt struct {
	Value ExprID
}

type ExprStmt struct {
	Expr ExprID
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[BlockStmt]
	Ifs     *Arena[IfStmt]
	Whiles  *Arena[WhileStmt]
	Fors    *Arena[ForStmt]
	Returns *Arena[ReturnStmt]
	Exprs   *Arena[ExprStmt]
	Vars    *Arena[VarDecl]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Blocks:  NewArena[BlockStmt](capHint / 4),
		Ifs:     NewArena[IfStmt](capHint / 8),
		Whiles:  NewArena[WhileStmt](capHint / 8),
		Fors:    NewArena[ForStmt](capHint / 8),
		Returns: NewArena[ReturnStmt](capHint / 8),
		Exprs:   NewArena[ExprStmt](capHint / 2),
		Vars:    NewArena[VarDecl](capHint / 4),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(BlockStmt{Stmts: append([]StmtID(nil), stmts...)}))
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*WhileStmt, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, data ForStmt) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*ForStmt, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnStmt{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewVarDecl(span source.Span, v VarDecl) StmtID {
	return s.new(StmtVarDecl, span, s.Vars.Allocate(v))
}

func (s *Stmts) VarDecl(id StmtID) (*VarDecl, bool) {
	p, ok := s.payload(id, StmtVarDecl)
	if !ok {
		return nil, false
	}
	return s.Vars.Get(p), true
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, 0)
}
