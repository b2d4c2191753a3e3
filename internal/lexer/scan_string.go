package lexer

import (
	"fmt"
	"unicode/utf8"

	"minic/internal/diag"
	"minic/internal/token"
)

// scanString scans "...". A line break before the closing quote is an
// error: the partial text becomes the token and scanning resumes at the line
// break. Running into the end of input without a line break is fatal.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case '\n':
			tok := lx.emit(token.StringLit, start)
			tok.Flags |= token.FlagUnterminated
			lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
			return tok
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() != '\n' {
				lx.bumpRune()
			}
		default:
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.StringLit, start)
	tok.Flags |= token.FlagUnterminated
	lx.fatal(diag.LexUnterminatedString, tok.Span, "unterminated string literal at end of file")
	return tok
}

// scanChar scans '...'. The literal ends at the next quote on the same line;
// without one it is reported and recovery resumes at the line break. A closed
// literal must hold exactly one character or one known escape.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			tok := lx.emit(token.CharLit, start)
			lx.checkCharBody(tok)
			return tok
		case '\n':
			return lx.unterminatedChar(start)
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() != '\n' {
				lx.bumpRune()
			}
		default:
			lx.bumpRune()
		}
	}
	return lx.unterminatedChar(start)
}

func (lx *Lexer) unterminatedChar(start Mark) token.Token {
	tok := lx.emit(token.CharLit, start)
	tok.Flags |= token.FlagUnterminated
	lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
	return tok
}

func (lx *Lexer) checkCharBody(tok token.Token) {
	body := tok.Text[1 : len(tok.Text)-1]
	switch {
	case body == "":
		lx.errLex(diag.LexInvalidCharLiteral, tok.Span, "empty character literal")
	case body[0] == '\\':
		if _, known := escapes[body[1]]; !known {
			r, _ := utf8.DecodeRuneInString(body[1:])
			lx.errLex(diag.LexInvalidCharLiteral, tok.Span, fmt.Sprintf("unknown escape sequence '\\%c' in character literal", r))
		} else if len(body) > 2 {
			lx.errLex(diag.LexInvalidCharLiteral, tok.Span, "character literal holds more than one character")
		}
	case utf8.RuneCountInString(body) > 1:
		lx.errLex(diag.LexInvalidCharLiteral, tok.Span, "character literal holds more than one character")
	}
}
