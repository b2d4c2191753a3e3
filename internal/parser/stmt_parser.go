package parser

import (
	"fmt"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/token"
)

// parseBlock parses '{' stmt* '}'. Reaching EOF reports UnclosedBrace at the
// end of input; nested blocks unwind first, so the deepest is reported first.
func (p *Parser) parseBlock() ast.StmtID {
	open := p.advance()
	p.braceDepth++
	defer func() { p.braceDepth-- }()

	var stmts []ast.StmtID
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.RBrace:
			closeTok := p.advance()
			return p.arenas.Stmts.NewBlock(open.Span.Cover(closeTok.Span), stmts)
		case token.EOF:
			p.emit(diag.ReportError(p.opts.Reporter, diag.SynUnclosedBrace, tok.Span,
				fmt.Sprintf("expected '}' to close block opened at line %d", open.Pos.Line)).
				WithNote(open.Span, "'{' opened here"))
			return p.arenas.Stmts.NewBlock(open.Span.Cover(p.prev.Span), stmts)
		}

		before := tok.Span.Start
		if id, ok := p.parseStmt(); ok {
			stmts = append(stmts, id)
		} else {
			p.sync()
		}
		p.ensureProgress(before)
	}
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock(), true
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwInt, token.KwFloat, token.KwChar, token.KwVoid:
		return p.parseVarDeclStmt()
	case token.Semicolon:
		p.advance()
		return p.arenas.Stmts.NewEmpty(tok.Span), true
	case token.KwElse:
		p.unexpected(tok, "a statement ('else' without 'if')")
		return ast.NoStmtID, false
	case token.RBrace:
		// only reachable for a missing if/while/for body
		p.unexpected(tok, "a statement")
		return ast.NoStmtID, false
	default:
		return p.parseExprStmt()
	}
}

// parseBody parses the statement controlled by if/while/for. A broken body is
// synchronised here so the owning statement still lands in the tree.
func (p *Parser) parseBody() ast.StmtID {
	if p.at(token.EOF) {
		p.unexpected(p.peek(), "a statement")
		return ast.NoStmtID
	}
	id, ok := p.parseStmt()
	if !ok {
		p.sync()
		return ast.NoStmtID
	}
	return id
}

func (p *Parser) parseVarDeclStmt() (ast.StmtID, bool) {
	typ, ok := p.parseType()
	if !ok {
		return ast.NoStmtID, false
	}
	name, ok := p.parseDeclName()
	if !ok {
		return ast.NoStmtID, false
	}
	v, ok := p.parseVarRest(typ, name)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVarDecl(typ.Span.Cover(p.prev.Span), v), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()

	value := ast.NoExprID
	if canStartExpr(p.peek().Kind) {
		var ok bool
		value, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectSemicolon("return statement") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(retTok.Span.Cover(p.prev.Span), value), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	exprID, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon("expression") {
		return ast.NoStmtID, false
	}
	exprSpan := p.arenas.Exprs.Get(exprID).Span
	return p.arenas.Stmts.NewExpr(exprSpan.Cover(p.prev.Span), exprID), true
}
