package diag

import (
	"fmt"
	"strings"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                Code = 1000
	LexInvalidCharacter    Code = 1001
	LexUnterminatedChar    Code = 1002
	LexUnterminatedString  Code = 1003
	LexUnterminatedComment Code = 1004
	LexInvalidCharLiteral  Code = 1005

	// Syntax
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynMissingSemicolon Code = 2002
	SynUnclosedParen    Code = 2003
	SynUnclosedBrace    Code = 2004

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexInvalidCharacter:    "Invalid character",
	LexUnterminatedChar:    "Unterminated character literal",
	LexUnterminatedString:  "Unterminated string literal",
	LexUnterminatedComment: "Unterminated block comment",
	LexInvalidCharLiteral:  "Invalid character literal",
	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynMissingSemicolon:    "Missing semicolon",
	SynUnclosedParen:       "Unclosed parenthesis",
	SynUnclosedBrace:       "Unclosed brace",
	IOLoadFileError:        "I/O load file error",
}

// stable kind names used by JSON output and tests
var codeKind = map[Code]string{
	LexInvalidCharacter:    "InvalidCharacter",
	LexUnterminatedChar:    "UnterminatedCharLiteral",
	LexUnterminatedString:  "UnterminatedString",
	LexUnterminatedComment: "UnterminatedComment",
	LexInvalidCharLiteral:  "InvalidCharLiteral",
	SynUnexpectedToken:     "UnexpectedToken",
	SynMissingSemicolon:    "MissingSemicolon",
	SynUnclosedParen:       "UnclosedParen",
	SynUnclosedBrace:       "UnclosedBrace",
	IOLoadFileError:        "LoadFileError",
}

// ID returns the stable identifier, e.g. "LEX1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if s, ok := codeDescription[c]; ok {
		return s
	}
	return codeDescription[UnknownCode]
}

// Kind returns the taxonomy name of the code ("MissingSemicolon").
func (c Code) Kind() string {
	if s, ok := codeKind[c]; ok {
		return s
	}
	return "Unknown"
}

// IsLexical reports whether the code is produced by the lexer.
func (c Code) IsLexical() bool { return c >= LexInfo && c < SynInfo }

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode resolves an ID ("SYN2002") or a kind name ("MissingSemicolon"),
// ignoring case.
func ParseCode(s string) (Code, bool) {
	for c, kind := range codeKind {
		if strings.EqualFold(s, kind) || strings.EqualFold(s, c.ID()) {
			return c, true
		}
	}
	return UnknownCode, false
}
