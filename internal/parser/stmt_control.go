package parser

import (
	"minic/internal/ast"
	"minic/internal/token"
)

// parseCondition parses '(' expr ')' after if/while. A broken condition is
// skipped up to its ')' so the body is still parsed.
func (p *Parser) parseCondition(keyword string) (ast.ExprID, bool) {
	depth := p.parenDepth
	defer func() { p.parenDepth = depth }()

	open, ok := p.openParen(keyword)
	if !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		p.syncParen()
		return ast.NoExprID, true
	}
	if !p.closeParen(open) {
		p.syncParen()
	}
	return cond, true
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseCondition("if")
	if !ok {
		return ast.NoStmtID, false
	}
	then := p.parseBody()
	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		els = p.parseBody()
	}
	return p.arenas.Stmts.NewIf(ifTok.Span.Cover(p.prev.Span), cond, then, els), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseCondition("while")
	if !ok {
		return ast.NoStmtID, false
	}
	body := p.parseBody()
	return p.arenas.Stmts.NewWhile(whileTok.Span.Cover(p.prev.Span), cond, body), true
}

// parseForStmt parses 'for' '(' [init] ';' [cond] ';' [post] ')' body where
// init is a declaration or an expression.
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	forTok := p.advance()
	depth := p.parenDepth
	defer func() { p.parenDepth = depth }()

	open, ok := p.openParen("for")
	if !ok {
		return ast.NoStmtID, false
	}

	var data ast.ForStmt
	if !p.parseForHeader(&data) {
		p.syncParen()
	} else if !p.closeParen(open) {
		p.syncParen()
	}

	data.Body = p.parseBody()
	return p.arenas.Stmts.NewFor(forTok.Span.Cover(p.prev.Span), data), true
}

func (p *Parser) parseForHeader(data *ast.ForStmt) bool {
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.atOr(token.KwInt, token.KwFloat, token.KwChar, token.KwVoid):
		init, ok := p.parseVarDeclStmt()
		if !ok {
			return false
		}
		data.Init = init
	default:
		expr, ok := p.parseExpr()
		if !ok || !p.expectSemicolon("for initializer") {
			return false
		}
		data.Init = p.arenas.Stmts.NewExpr(p.arenas.Exprs.Get(expr).Span, expr)
	}

	if !p.at(token.Semicolon) {
		cond, ok := p.parseExpr()
		if !ok {
			return false
		}
		data.Cond = cond
	}
	if !p.expectSemicolon("for condition") {
		return false
	}

	if !p.at(token.RParen) {
		post, ok := p.parseExpr()
		if !ok {
			return false
		}
		data.Post = post
	}
	return true
}
