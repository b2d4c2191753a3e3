package parser

import (
	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/lexer"
	"minic/internal/token"
)

type opKind uint8

const (
	opBinary opKind = iota
	opAssign
	opUnary
	opGroup // an open '(' inside the expression
)

type opEntry struct {
	kind opKind
	tok  token.Token
	prec int
}

// exprState holds the explicit stacks of one expression. Nesting depth only
// grows the slices, never the Go call stack.
type exprState struct {
	operands  []ast.ExprID
	operators []opEntry
	groups    int
}

// parseExpr parses an expression with precedence climbing driven by an
// operator stack. The expression ends at the first token that is neither an
// operator nor a ')' closing one of its own parentheses.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	depth := p.parenDepth
	defer func() { p.parenDepth = depth }()

	st := &exprState{}
	expectOperand := true

	for {
		tok := p.peek()
		if expectOperand {
			switch tok.Kind {
			case token.Minus, token.Bang:
				p.advance()
				st.operators = append(st.operators, opEntry{kind: opUnary, tok: tok, prec: precUnary})
			case token.LParen:
				p.advance()
				st.operators = append(st.operators, opEntry{kind: opGroup, tok: tok})
				st.groups++
				p.parenDepth++
			default:
				id, ok := p.parseOperand()
				if !ok {
					return ast.NoExprID, false
				}
				st.operands = append(st.operands, id)
				expectOperand = false
			}
			continue
		}

		if prec, right := getBinaryOperatorPrec(tok.Kind); prec > 0 {
			p.reduceWhile(st, func(top opEntry) bool {
				return top.prec > prec || (top.prec == prec && !right)
			})
			p.advance()
			kind := opBinary
			if tok.Kind == token.Assign {
				kind = opAssign
			}
			st.operators = append(st.operators, opEntry{kind: kind, tok: tok, prec: prec})
			expectOperand = true
			continue
		}

		if tok.Kind == token.RParen && st.groups > 0 {
			p.advance()
			p.parenDepth--
			p.closeGroup(st)
			continue
		}
		break
	}

	for st.groups > 0 {
		open := p.innermostGroup(st)
		if !p.closeParen(open) {
			return ast.NoExprID, false
		}
		p.closeGroup(st)
	}
	p.reduceWhile(st, func(opEntry) bool { return true })
	return st.operands[len(st.operands)-1], true
}

// parseOperand parses a literal, an identifier or a call.
func (p *Parser) parseOperand() (ast.ExprID, bool) {
	tok := p.peek()
	if kind, ok := literalKinds[tok.Kind]; ok {
		p.advance()
		value := tok.Text
		if kind == ast.ExprLitChar || kind == ast.ExprLitString {
			value = lexer.Unquote(tok.Text)
		}
		return p.arenas.Exprs.NewLiteral(tok.Span, kind, tok.Text, value), true
	}
	if tok.Kind != token.Ident {
		p.unexpected(tok, "an expression")
		return ast.NoExprID, false
	}
	p.advance()
	ident := p.arenas.Exprs.NewIdent(tok.Span, tok.Text)
	if !p.at(token.LParen) {
		return ident, true
	}
	return p.parseCallArgs(ident, tok)
}

// parseCallArgs parses '(' [expr {',' expr}] ')' after a callee. Each
// argument is a separate parseExpr, so recursion follows call nesting only.
func (p *Parser) parseCallArgs(callee ast.ExprID, calleeTok token.Token) (ast.ExprID, bool) {
	depth := p.parenDepth
	defer func() { p.parenDepth = depth }()

	open, _ := p.openParen(calleeTok.Text)
	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if !p.closeParen(open) {
		return ast.NoExprID, false
	}
	span := calleeTok.Span.Cover(p.prev.Span)
	return p.arenas.Exprs.NewCall(span, callee, args), true
}

func (p *Parser) innermostGroup(st *exprState) token.Token {
	for i := len(st.operators) - 1; i >= 0; i-- {
		if st.operators[i].kind == opGroup {
			return st.operators[i].tok
		}
	}
	return token.Token{}
}

// closeGroup reduces everything above the innermost '(' and pops it.
func (p *Parser) closeGroup(st *exprState) {
	p.reduceWhile(st, func(top opEntry) bool { return top.kind != opGroup })
	if n := len(st.operators); n > 0 && st.operators[n-1].kind == opGroup {
		st.operators = st.operators[:n-1]
		st.groups--
	}
}

// reduceWhile pops operators while cond holds for the top of the stack,
// stopping at group markers.
func (p *Parser) reduceWhile(st *exprState, cond func(opEntry) bool) {
	for len(st.operators) > 0 {
		top := st.operators[len(st.operators)-1]
		if top.kind == opGroup || !cond(top) {
			return
		}
		st.operators = st.operators[:len(st.operators)-1]
		p.reduce(st, top)
	}
}

func (p *Parser) reduce(st *exprState, op opEntry) {
	exprs := p.arenas.Exprs
	n := len(st.operands)
	if op.kind == opUnary {
		operand := st.operands[n-1]
		unary := ast.ExprUnaryMinus
		if op.tok.Kind == token.Bang {
			unary = ast.ExprUnaryNot
		}
		span := op.tok.Span.Cover(exprs.Get(operand).Span)
		st.operands[n-1] = exprs.NewUnary(span, unary, operand)
		return
	}

	left, right := st.operands[n-2], st.operands[n-1]
	st.operands = st.operands[:n-2]
	span := exprs.Get(left).Span.Cover(exprs.Get(right).Span)
	if op.kind == opAssign {
		if exprs.Get(left).Kind != ast.ExprIdent {
			p.report(diag.SynUnexpectedToken, op.tok.Span, "unexpected '=': the left side of an assignment must be a variable")
		}
		st.operands = append(st.operands, exprs.NewAssign(span, left, right))
		return
	}
	st.operands = append(st.operands, exprs.NewBinary(span, binaryOps[op.tok.Kind], left, right))
}
