package lexer

import (
	"minic/internal/diag"
)

// skipTrivia drops whitespace, "//" line comments and "/* */" block comments.
// Block comments do not nest. An unclosed block comment is fatal.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isSpace(b):
			lx.cursor.Bump()
		case lx.try2('/', '/'):
			lx.cursor.SkipLine()
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			if !lx.skipBlockComment() {
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) skipBlockComment() bool {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			return true
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	sp.End = sp.Start + 2
	lx.fatal(diag.LexUnterminatedComment, sp, "unterminated comment: '/*' is never closed")
	return false
}
