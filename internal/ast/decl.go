package ast

import (
	"minic/internal/source"
)

type DeclKind uint8

const (
	DeclFunc DeclKind = iota
	DeclVar
)

// Decl is a top-level declaration; the payload depends on Kind.
type Decl struct {
	Kind     DeclKind
	Span     source.Span
	Name     string
	NameSpan source.Span
	Payload  PayloadID
}

type Param struct {
	Type     TypeSpec
	Name     string
	NameSpan source.Span
	Span     source.Span
}

// FuncDecl is a function definition, or a prototype when Body is NoStmtID.
type FuncDecl struct {
	Result TypeSpec
	Params []Param
	Body   StmtID
}

// VarDecl is shared by global declarations and local declaration statements.
type VarDecl struct {
	Type     TypeSpec
	Name     string
	NameSpan source.Span
	Init     ExprID
}

type Decls struct {
	Arena *Arena[Decl]
	Funcs *Arena[FuncDecl]
	Vars  *Arena[VarDecl]
}

func NewDecls(capHint uint) *Decls {
	return &Decls{
		Arena: NewArena[Decl](capHint),
		Funcs: NewArena[FuncDecl](capHint),
		Vars:  NewArena[VarDecl](capHint),
	}
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) NewFunc(span source.Span, name string, nameSpan source.Span, result TypeSpec, params []Param, body StmtID) DeclID {
	payload := d.Funcs.Allocate(FuncDecl{
		Result: result,
		Params: append([]Param(nil), params...),
		Body:   body,
	})
	return DeclID(d.Arena.Allocate(Decl{
		Kind:     DeclFunc,
		Span:     span,
		Name:     name,
		NameSpan: nameSpan,
		Payload:  PayloadID(payload),
	}))
}

func (d *Decls) Func(id DeclID) (*FuncDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclFunc {
		return nil, false
	}
	return d.Funcs.Get(uint32(decl.Payload)), true
}

func (d *Decls) NewVar(span source.Span, v VarDecl) DeclID {
	payload := d.Vars.Allocate(v)
	return DeclID(d.Arena.Allocate(Decl{
		Kind:     DeclVar,
		Span:     span,
		Name:     v.Name,
		NameSpan: v.NameSpan,
		Payload:  PayloadID(payload),
	}))
}

func (d *Decls) Var(id DeclID) (*VarDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclVar {
		return nil, false
	}
	return d.Vars.Get(uint32(decl.Payload)), true
}
