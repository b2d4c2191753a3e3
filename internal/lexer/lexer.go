package lexer

import (
	"minic/internal/source"
	"minic/internal/token"
)

// Lexer turns one file into tokens on demand. It is single-use and not safe
// for concurrent use.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // single token lookahead
	halted bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Halted reports whether a fatal error stopped scanning.
func (lx *Lexer) Halted() bool { return lx.halted }

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()
	if lx.halted || lx.cursor.EOF() {
		return lx.eofToken()
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	tok.Pos = lx.file.Position(tok.Span.Start)
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// eofToken sits at the end of the last line so its position always resolves
// to an existing line.
func (lx *Lexer) eofToken() token.Token {
	end := lx.file.EndOffset()
	sp := source.Span{File: lx.file.ID, Start: end, End: end}
	return token.Token{
		Kind: token.EOF,
		Span: sp,
		Pos:  lx.file.Position(end),
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
