// Package diag defines the diagnostic model shared by the lexer and parser.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: error (analysis continues) or fatal (analysis stops).
//   - Code: compact numeric identifier (see codes.go) with a stable ID such
//     as "LEX1001" and a taxonomy name such as "InvalidCharacter".
//   - Message: human oriented text; keep it short and actionable.
//   - Primary span and Pos: where the problem starts.
//   - Notes: secondary spans, e.g. where an unclosed '(' was opened.
//   - Fixes: optional edits, e.g. inserting a missing ';'.
//
// # Emitting diagnostics
//
// Phases emit through a Reporter. BagReporter appends into a Bag and resolves
// Pos against the file being analysed. A Bag belongs to exactly one run and is
// never shared between goroutines; it keeps discovery order, honours a cap,
// and refuses everything after the first fatal diagnostic.
//
// Rendering lives in internal/diagfmt; golden.go only provides the stable
// one-line forms used by tests and the short CLI output.
package diag
