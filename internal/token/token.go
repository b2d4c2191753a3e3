package token

import (
	"minic/internal/source"
)

// Flags carries per-token recovery markers.
type Flags uint8

const (
	// FlagUnterminated marks a string or char literal whose closing quote was
	// never found; the lexer has already reported it.
	FlagUnterminated Flags = 1 << iota
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Pos   source.LineCol
	Flags Flags
}

// Unterminated reports whether the literal was recovered without its closing quote.
func (t Token) Unterminated() bool { return t.Flags&FlagUnterminated != 0 }

// IsLiteral reports whether the token is a numeric, char or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, CharLit, StringLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	c := t.Kind.Class()
	return c == ClassOperator || c == ClassPunctuation
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.Class() == ClassKeyword }

// IsTypeKeyword reports whether the token can start a type.
func (t Token) IsTypeKeyword() bool {
	switch t.Kind {
	case KwInt, KwFloat, KwChar, KwVoid:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
