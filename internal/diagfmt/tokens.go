package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"minic/internal/token"
)

type TokenOutput struct {
	Kind         string `json:"kind"`
	Class        string `json:"class"`
	Text         string `json:"text,omitempty"`
	Line         uint32 `json:"line"`
	Col          uint32 `json:"col"`
	StartByte    uint32 `json:"start_byte"`
	EndByte      uint32 `json:"end_byte"`
	Unterminated bool   `json:"unterminated,omitempty"`
}

const lexemeWidth = 24

// FormatTokensPretty prints a token table: position, class, kind and lexeme.
// The listing stops after EOF.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	if _, err := fmt.Fprintf(w, "%-9s %-16s %-10s %s\n", "LINE:COL", "CLASS", "KIND", "LEXEME"); err != nil {
		return err
	}
	for _, tok := range tokens {
		pos := fmt.Sprintf("%d:%d", tok.Pos.Line, tok.Pos.Col)
		lexeme := runewidth.Truncate(fmt.Sprintf("%q", tok.Text), lexemeWidth, "…")
		if tok.Kind == token.EOF {
			lexeme = ""
		}
		if _, err := fmt.Fprintf(w, "%-9s %-16s %-10s %s", pos, tok.Kind.Class(), tok.Kind, lexeme); err != nil {
			return err
		}
		if tok.Unterminated() {
			fmt.Fprint(w, " (unterminated)")
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON prints tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:         tok.Kind.String(),
			Class:        tok.Kind.Class().String(),
			Text:         tok.Text,
			Line:         tok.Pos.Line,
			Col:          tok.Pos.Col,
			StartByte:    tok.Span.Start,
			EndByte:      tok.Span.End,
			Unterminated: tok.Unterminated(),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
