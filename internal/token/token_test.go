package token_test

import (
	"testing"

	"minic/internal/source"
	"minic/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"int":    token.KwInt,
		"float":  token.KwFloat,
		"char":   token.KwChar,
		"void":   token.KwVoid,
		"if":     token.KwIf,
		"else":   token.KwElse,
		"while":  token.KwWhile,
		"for":    token.KwFor,
		"return": token.KwReturn,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}

	for _, s := range []string{"Int", "RETURN", "main", "printf", "variavel", "struct"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestClass(t *testing.T) {
	cases := []struct {
		kind token.Kind
		want token.Class
	}{
		{token.Invalid, token.ClassError},
		{token.EOF, token.ClassEOF},
		{token.Ident, token.ClassIdentifier},
		{token.KwInt, token.ClassKeyword},
		{token.KwReturn, token.ClassKeyword},
		{token.IntLit, token.ClassIntLiteral},
		{token.FloatLit, token.ClassFloatLiteral},
		{token.CharLit, token.ClassCharLiteral},
		{token.StringLit, token.ClassStringLiteral},
		{token.Plus, token.ClassOperator},
		{token.OrOr, token.ClassOperator},
		{token.Semicolon, token.ClassPunctuation},
		{token.RBracket, token.ClassPunctuation},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if got := tc.kind.Class(); got != tc.want {
				t.Fatalf("Class() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !tok(token.StringLit).IsLiteral() || tok(token.Ident).IsLiteral() {
		t.Fatal("IsLiteral mismatch")
	}
	if !tok(token.LParen).IsPunctOrOp() || !tok(token.AndAnd).IsPunctOrOp() || tok(token.IntLit).IsPunctOrOp() {
		t.Fatal("IsPunctOrOp mismatch")
	}
	if !tok(token.KwVoid).IsTypeKeyword() || tok(token.KwIf).IsTypeKeyword() {
		t.Fatal("IsTypeKeyword mismatch")
	}
	if !tok(token.Ident).IsIdent() || tok(token.KwFor).IsIdent() {
		t.Fatal("IsIdent mismatch")
	}
	u := tok(token.StringLit)
	u.Flags |= token.FlagUnterminated
	if !u.Unterminated() || tok(token.StringLit).Unterminated() {
		t.Fatal("Unterminated mismatch")
	}
}

func TestSpelling(t *testing.T) {
	for k, want := range map[token.Kind]string{
		token.Semicolon: ";", token.EqEq: "==", token.KwWhile: "while",
		token.Ident: "identifier", token.EOF: "end of file",
	} {
		if got := k.Spelling(); got != want {
			t.Errorf("%v.Spelling() = %q, want %q", k, got, want)
		}
	}
}
