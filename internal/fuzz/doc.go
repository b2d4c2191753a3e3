// Package fuzztests holds Go fuzz harnesses for the lexer and the parser.
// They feed arbitrary bytes through a FileSet and check that analysis
// terminates, consumes input monotonically and leaves a well-formed tree and
// in-bounds diagnostics.
//
// Run with: go test ./internal/fuzz -fuzz=FuzzParserInvariants
package fuzztests
