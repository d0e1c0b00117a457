package lexer

import (
	"convdup/internal/diag"
	"convdup/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics; nil means they are dropped
	// (scanning continues either way).
	Reporter diag.Reporter
	// KeepComments emits comments as token.Comment instead of trivia.
	KeepComments bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
