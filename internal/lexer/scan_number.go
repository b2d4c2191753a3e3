package lexer

import (
	"minic/internal/token"
)

// [0-9]+ or [0-9]+.[0-9]+ without suffixes. A letter right after the digits
// starts a separate identifier token ("123abc" is IntLit + Ident).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emit(token.FloatLit, start)
	}
	return lx.emit(token.IntLit, start)
}
