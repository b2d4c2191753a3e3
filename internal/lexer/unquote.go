package lexer

import (
	"strings"
)

var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

// Unquote strips the quotes of a string or char literal lexeme and decodes
// its escapes. Unterminated lexemes lack the closing quote; Unquote accepts
// them. Unknown escapes keep the escaped byte.
func Unquote(lexeme string) string {
	if lexeme == "" {
		return ""
	}
	q := lexeme[0]
	body := lexeme[1:]
	if len(body) > 0 && body[len(body)-1] == q && !escapedAt(body, len(body)-1) {
		body = body[:len(body)-1]
	}
	if strings.IndexByte(body, '\\') < 0 {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		if e, ok := escapes[body[i]]; ok {
			b.WriteByte(e)
		} else {
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

// escapedAt reports whether s[i] is preceded by an odd number of backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
