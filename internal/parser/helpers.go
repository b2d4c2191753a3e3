package parser

import (
	"fmt"

	"minic/internal/diag"
	"minic/internal/source"
	"minic/internal/token"
)

// advance consumes the next token and remembers it.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.prev = tok
	}
	return tok
}

// insertSpan is the zero-width point right after the last consumed token.
func (p *Parser) insertSpan() source.Span {
	return p.prev.Span.ZeroideToEnd()
}

// report emits an error unless the budget is spent or the lexer halted on a
// fatal error.
func (p *Parser) report(code diag.Code, sp source.Span, msg string) bool {
	return p.emit(diag.ReportError(p.opts.Reporter, code, sp, msg))
}

func (p *Parser) emit(b *diag.ReportBuilder) bool {
	if p.opts.Reporter == nil || p.lx.Halted() {
		return false
	}
	p.opts.CurrentErrors++
	if p.opts.Enough() && p.opts.CurrentErrors > p.opts.MaxErrors {
		return false
	}
	b.Emit()
	return true
}

// unexpected reports tok as UnexpectedToken; expected may be empty.
func (p *Parser) unexpected(tok token.Token, expected string) {
	msg := "unexpected " + describe(tok)
	if expected != "" {
		msg += ", expected " + expected
	}
	p.report(diag.SynUnexpectedToken, tok.Span, msg)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	case token.IntLit, token.FloatLit:
		return fmt.Sprintf("number '%s'", tok.Text)
	case token.CharLit:
		return "character literal " + tok.Text
	case token.StringLit:
		return "string literal"
	}
	return fmt.Sprintf("'%s'", tok.Text)
}

// startsStatement reports whether tok can begin a new statement or
// declaration. Identifiers and literals only count when they open a new line.
func (p *Parser) startsStatement(tok token.Token) bool {
	switch tok.Kind {
	case token.EOF, token.LBrace, token.RBrace, token.KwElse:
		return true
	case token.Ident, token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
		token.Minus, token.Bang, token.LParen:
		return tok.Pos.Line > p.prev.Pos.Line
	}
	return isStarterKeyword(tok.Kind)
}

func isStarterKeyword(k token.Kind) bool {
	switch k {
	case token.KwInt, token.KwFloat, token.KwChar, token.KwVoid,
		token.KwIf, token.KwElse, token.KwWhile, token.KwFor, token.KwReturn:
		return true
	}
	return false
}

func canStartExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
		token.LParen, token.Minus, token.Bang:
		return true
	}
	return false
}

// expectSemicolon consumes ';'. When it is missing but the next token starts
// a new statement, MissingSemicolon is reported and nothing is consumed. A
// preceding unterminated literal already swallowed the terminator, so no
// diagnostic is added for it. It returns false when the caller must sync.
func (p *Parser) expectSemicolon(after string) bool {
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	if p.prev.Unterminated() {
		return true
	}
	tok := p.peek()
	if p.startsStatement(tok) {
		at := p.insertSpan()
		p.emit(diag.ReportError(p.opts.Reporter, diag.SynMissingSemicolon, at, "expected ';' after "+after).
			WithFix("insert ';'", diag.InsertAt(at, ";")))
		return true
	}
	p.unexpected(tok, "';' after "+after)
	return false
}

// closeParen consumes the ')' matching open. When the next token is '{', ';',
// '}' or starts a statement, UnclosedParen is reported and the construct is
// treated as closed. It returns false when the caller must sync.
func (p *Parser) closeParen(open token.Token) bool {
	if p.at(token.RParen) {
		p.advance()
		p.parenDepth--
		return true
	}
	tok := p.peek()
	if tok.Kind == token.Semicolon || p.startsStatement(tok) {
		at := p.insertSpan()
		p.emit(diag.ReportError(p.opts.Reporter, diag.SynUnclosedParen, at,
			fmt.Sprintf("expected ')' to close '(' opened at line %d", open.Pos.Line)).
			WithNote(open.Span, "'(' opened here").
			WithFix("insert ')'", diag.InsertAt(at, ")")))
		p.parenDepth--
		return true
	}
	p.unexpected(tok, "')'")
	return false
}

// openParen consumes '(' after a keyword such as 'if'.
func (p *Parser) openParen(after string) (token.Token, bool) {
	if !p.at(token.LParen) {
		p.unexpected(p.peek(), "'(' after '"+after+"'")
		return token.Token{}, false
	}
	p.parenDepth++
	return p.advance(), true
}

// sync implements panic-mode recovery: skip tokens up to a ';' (consumed) or
// up to '{', '}', EOF or a token that starts a statement (not consumed).
// Inside an open parenthesis a ')' also stops. At top level a stray '}' is
// skipped.
func (p *Parser) sync() {
	moved := false
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF, token.LBrace:
			return
		case token.RBrace:
			if p.braceDepth > 0 {
				return
			}
		case token.Semicolon:
			p.advance()
			return
		case token.RParen:
			if p.parenDepth > 0 {
				return
			}
		default:
			if isStarterKeyword(tok.Kind) {
				return
			}
			if moved && canStartExpr(tok.Kind) && tok.Kind != token.LParen && tok.Pos.Line > p.prev.Pos.Line {
				return
			}
		}
		p.advance()
		moved = true
	}
}

// syncParen skips to the ')' closing the current parenthesis (consumed) so
// the construct that owns it can continue. It stops early at '{', '}', ';',
// EOF and statement keywords.
func (p *Parser) syncParen() {
	depth := 0
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF, token.LBrace, token.RBrace, token.Semicolon:
			return
		case token.LParen:
			depth++
		case token.RParen:
			if depth == 0 {
				p.advance()
				p.parenDepth--
				return
			}
			depth--
		default:
			if isStarterKeyword(tok.Kind) {
				return
			}
		}
		p.advance()
	}
}

// ensureProgress consumes one token when a loop iteration starting at
// offset before did not advance.
func (p *Parser) ensureProgress(before uint32) {
	tok := p.peek()
	if tok.Kind != token.EOF && tok.Span.Start == before {
		p.advance()
	}
}
