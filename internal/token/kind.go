package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (an unrecognised character).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwInt represents the 'int' keyword.
	KwInt // int
	// KwFloat represents the 'float' keyword.
	KwFloat // float
	// KwChar represents the 'char' keyword.
	KwChar // char
	// KwVoid represents the 'void' keyword.
	KwVoid // void
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwReturn represents the 'return' keyword.
	KwReturn // return

	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// CharLit represents a character literal.
	CharLit
	// StringLit represents a string literal.
	StringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Assign represents the assign operator token.
	Assign // =
	// EqEq represents the eq eq operator token.
	EqEq // ==
	// Bang represents the bang operator token.
	Bang // !
	// BangEq represents the bang eq operator token.
	BangEq // !=
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// AndAnd represents the and and operator token.
	AndAnd // &&
	// OrOr represents the or or operator token.
	OrOr // ||

	// Semicolon represents the semicolon punctuation token.
	Semicolon // ;
	// Comma represents the comma punctuation token.
	Comma // ,
	// LParen represents the left parenthesis punctuation token.
	LParen // (
	// RParen represents the right parenthesis punctuation token.
	RParen // )
	// LBrace represents the left brace punctuation token.
	LBrace // {
	// RBrace represents the right brace punctuation token.
	RBrace // }
	// LBracket represents the left bracket punctuation token.
	LBracket // [
	// RBracket represents the right bracket punctuation token.
	RBracket // ]

	kindCount
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwInt:     "KwInt",
	KwFloat:   "KwFloat",
	KwChar:    "KwChar",
	KwVoid:    "KwVoid",
	KwIf:      "KwIf",
	KwElse:    "KwElse",
	KwWhile:   "KwWhile",
	KwFor:     "KwFor",
	KwReturn:  "KwReturn",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	CharLit:   "CharLit",
	StringLit: "StringLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Assign:    "Assign",
	EqEq:      "EqEq",
	Bang:      "Bang",
	BangEq:    "BangEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	AndAnd:    "AndAnd",
	OrOr:      "OrOr",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
}

// fixed spellings, used in parser messages ("expected ';'")
var kindSpelling = map[Kind]string{
	KwInt: "int", KwFloat: "float", KwChar: "char", KwVoid: "void",
	KwIf: "if", KwElse: "else", KwWhile: "while", KwFor: "for", KwReturn: "return",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Assign: "=", EqEq: "==",
	Bang: "!", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	AndAnd: "&&", OrOr: "||",
	Semicolon: ";", Comma: ",", LParen: "(", RParen: ")",
	LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Spelling returns the fixed source text of keywords and punctuation and a
// descriptive name for the other kinds.
func (k Kind) Spelling() string {
	if s, ok := kindSpelling[k]; ok {
		return s
	}
	switch k {
	case Ident:
		return "identifier"
	case IntLit, FloatLit:
		return "number"
	case CharLit:
		return "character literal"
	case StringLit:
		return "string literal"
	case EOF:
		return "end of file"
	}
	return "invalid token"
}

// Class is the coarse token category printed by token listings.
type Class uint8

const (
	ClassError Class = iota
	ClassEOF
	ClassKeyword
	ClassIdentifier
	ClassIntLiteral
	ClassFloatLiteral
	ClassCharLiteral
	ClassStringLiteral
	ClassOperator
	ClassPunctuation
)

var classNames = [...]string{
	ClassError:         "error-token",
	ClassEOF:           "end-of-input",
	ClassKeyword:       "keyword",
	ClassIdentifier:    "identifier",
	ClassIntLiteral:    "integer-literal",
	ClassFloatLiteral:  "float-literal",
	ClassCharLiteral:   "char-literal",
	ClassStringLiteral: "string-literal",
	ClassOperator:      "operator",
	ClassPunctuation:   "punctuation",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Class maps a kind onto its category.
func (k Kind) Class() Class {
	switch {
	case k == Invalid:
		return ClassError
	case k == EOF:
		return ClassEOF
	case k == Ident:
		return ClassIdentifier
	case k >= KwInt && k <= KwReturn:
		return ClassKeyword
	case k == IntLit:
		return ClassIntLiteral
	case k == FloatLit:
		return ClassFloatLiteral
	case k == CharLit:
		return ClassCharLiteral
	case k == StringLit:
		return ClassStringLiteral
	case k >= Plus && k <= OrOr:
		return ClassOperator
	case k >= Semicolon && k < kindCount:
		return ClassPunctuation
	}
	return ClassError
}
