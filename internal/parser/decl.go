package parser

import (
	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/token"
)

var baseTypes = map[token.Kind]ast.BaseType{
	token.KwInt:   ast.TypeInt,
	token.KwFloat: ast.TypeFloat,
	token.KwChar:  ast.TypeChar,
	token.KwVoid:  ast.TypeVoid,
}

// parseType parses ('int'|'float'|'char'|'void') '*'*.
func (p *Parser) parseType() (ast.TypeSpec, bool) {
	tok := p.peek()
	base, ok := baseTypes[tok.Kind]
	if !ok {
		p.unexpected(tok, "a type")
		return ast.TypeSpec{}, false
	}
	p.advance()
	spec := ast.TypeSpec{Base: base, Span: tok.Span}
	for p.at(token.Star) {
		star := p.advance()
		spec.Pointers++
		spec.Span = spec.Span.Cover(star.Span)
	}
	return spec, true
}

// parseDeclName expects the declared identifier. A number glued to an
// identifier ("123abc") is reported at the identifier part.
func (p *Parser) parseDeclName() (token.Token, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		return p.advance(), true
	case token.IntLit, token.FloatLit:
		num := p.advance()
		next := p.peek()
		if next.Kind == token.Ident && next.Span.Start == num.Span.End {
			p.report(diag.SynUnexpectedToken, next.Span,
				"unexpected "+describe(next)+" after '"+num.Text+"': identifiers cannot start with a digit")
			return token.Token{}, false
		}
		p.unexpected(num, "an identifier")
		return token.Token{}, false
	}
	p.unexpected(tok, "an identifier")
	return token.Token{}, false
}

// parseDecl parses one top-level declaration: a function definition, a
// prototype or a global variable.
func (p *Parser) parseDecl() (ast.DeclID, bool) {
	typ, ok := p.parseType()
	if !ok {
		return ast.NoDeclID, false
	}
	name, ok := p.parseDeclName()
	if !ok {
		return ast.NoDeclID, false
	}
	if p.at(token.LParen) {
		return p.parseFuncDecl(typ, name)
	}

	v, ok := p.parseVarRest(typ, name)
	if !ok {
		return ast.NoDeclID, false
	}
	span := typ.Span.Cover(p.prev.Span)
	return p.arenas.Decls.NewVar(span, v), true
}

// parseVarRest parses the optional initializer and the ';' of a variable
// declaration whose type and name are already consumed.
func (p *Parser) parseVarRest(typ ast.TypeSpec, name token.Token) (ast.VarDecl, bool) {
	v := ast.VarDecl{Type: typ, Name: name.Text, NameSpan: name.Span}
	if p.at(token.Assign) {
		p.advance()
		init, ok := p.parseExpr()
		if !ok {
			return v, false
		}
		v.Init = init
	}
	if !p.expectSemicolon("declaration") {
		return v, false
	}
	return v, true
}

func (p *Parser) parseFuncDecl(result ast.TypeSpec, name token.Token) (ast.DeclID, bool) {
	p.braceDepth, p.parenDepth = 0, 0

	params, ok := p.parseParams()
	if !ok {
		p.syncParen()
	}
	p.parenDepth = 0

	body := ast.NoStmtID
	switch {
	case p.at(token.LBrace):
		body = p.parseBlock()
	case !p.expectSemicolon("function prototype"):
		return ast.NoDeclID, false
	}

	span := result.Span.Cover(p.prev.Span)
	return p.arenas.Decls.NewFunc(span, name.Text, name.Span, result, params, body), true
}

// parseParams parses '(' [param {',' param} | 'void'] ')'.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	open, _ := p.openParen(p.prev.Text)
	var params []ast.Param

	if p.at(token.RParen) {
		return params, p.closeParen(open)
	}
	for {
		typ, ok := p.parseType()
		if !ok {
			return params, false
		}
		// "(void)" declares no parameters
		if typ.Base == ast.TypeVoid && typ.Pointers == 0 && len(params) == 0 && p.at(token.RParen) {
			return params, p.closeParen(open)
		}
		name, ok := p.parseDeclName()
		if !ok {
			return params, false
		}
		params = append(params, ast.Param{
			Type:     typ,
			Name:     name.Text,
			NameSpan: name.Span,
			Span:     typ.Span.Cover(name.Span),
		})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		return params, p.closeParen(open)
	}
}
