package token

var keywords = map[string]Kind{
	"int":    KwInt,
	"float":  KwFloat,
	"char":   KwChar,
	"void":   KwVoid,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"for":    KwFor,
	"return": KwReturn,
}

// LookupKeyword returns the keyword kind for ident. Keywords are
// case-sensitive: "Int" is an identifier.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
