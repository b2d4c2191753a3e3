package lexer

import (
	"minic/internal/diag"
	"minic/internal/source"
)

type Options struct {
	Reporter diag.Reporter // may be nil: errors are dropped but lexing continues
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}

// fatal reports and halts the lexer: every later Next returns EOF.
func (lx *Lexer) fatal(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevFatal, sp, msg, nil, nil)
	}
	lx.halted = true
	lx.cursor.SkipToEnd()
}
