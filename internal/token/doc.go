// Package token defines lexical token kinds for the minic analyzer.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Token.Pos is the line/column of the first byte of the token.
//   - Recovered string and char literals carry FlagUnterminated; their Text is
//     the partial lexeme up to the line break.
//   - Type names (int, float, char, void) are keywords; the parser decides
//     whether a keyword starts a type.
package token
