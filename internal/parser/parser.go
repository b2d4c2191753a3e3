package parser

import (
	"context"
	"slices"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/lexer"
	"minic/internal/source"
	"minic/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	// Fatal is set when the lexer stopped on a fatal error; File is partial.
	Fatal bool
}

// Parser holds the state for one file.
type Parser struct {
	lx     *lexer.Lexer
	arenas *ast.Builder
	file   ast.FileID
	opts   Options
	prev   token.Token // last consumed token

	// recovery heuristics; reset per function
	braceDepth int
	parenDepth int
}

// ParseFile parses the whole token stream of lx into arenas. It always
// returns a tree, partial when the input is malformed.
func ParseFile(ctx context.Context, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	f := lx.File()
	start := source.Span{File: f.ID}
	p := Parser{
		lx:     lx,
		arenas: arenas,
		file:   arenas.NewFile(start),
		opts:   opts,
		prev:   token.Token{Kind: token.EOF, Span: start, Pos: source.LineCol{Line: 1, Col: 1}},
	}

	p.parseDecls(ctx)
	return Result{
		File:  p.file,
		Fatal: lx.Halted(),
	}
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseDecls is the top-level loop: declarations until EOF.
func (p *Parser) parseDecls(ctx context.Context) {
	first := p.peek().Span
	for !p.at(token.EOF) && !p.opts.Enough() {
		if ctx.Err() != nil {
			return
		}
		before := p.peek().Span.Start
		if p.atStatementKeyword() {
			p.parseStrayStmt()
		} else if declID, ok := p.parseDecl(); ok {
			p.arenas.PushDecl(p.file, declID)
		} else {
			p.sync()
		}
		p.ensureProgress(before)
	}
	p.arenas.Files.Get(p.file).Span = first.Cover(p.peek().Span)
}

// parseStrayStmt reports a statement outside any function, then parses it
// so its tokens are consumed structurally. The result is discarded.
func (p *Parser) parseStrayStmt() {
	tok := p.peek()
	p.report(diag.SynUnexpectedToken, tok.Span, "unexpected "+describe(tok)+": statements are only allowed inside a function body")
	p.braceDepth, p.parenDepth = 0, 0
	if _, ok := p.parseStmt(); !ok {
		p.sync()
	}
}

func (p *Parser) atStatementKeyword() bool {
	return p.atOr(token.KwIf, token.KwWhile, token.KwFor, token.KwReturn, token.LBrace)
}
