package extract

import (
	"convdup/internal/decl"
	"convdup/internal/diag"
	"convdup/internal/token"
)

// directives records macro definitions and returns the tokens that remain
// once every directive line and comment has been dropped.
// A directive starts with '#' at the beginning of a line and runs until the
// next token that starts a line; backslash continuations keep it going.
func (p *parser) directives(toks []token.Token) []token.Token {
	code := make([]token.Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch {
		case tok.Kind == token.EOF:
			return code
		case tok.Kind == token.Comment:
			continue
		case tok.IsPunct("#") && tok.StartsLine():
			end := i + 1
			for end < len(toks) && toks[end].Kind != token.EOF && !toks[end].StartsLine() {
				end++
			}
			p.directive(tok, toks[i+1:end])
			i = end - 1
		default:
			code = append(code, tok)
		}
	}
	return code
}

func (p *parser) directive(hash token.Token, line []token.Token) {
	if len(line) == 0 || line[0].Text != "define" {
		return
	}
	if len(line) < 2 || line[1].Kind != token.Identifier {
		if len(line) < 2 || line[1].Kind != token.Keyword {
			diag.ReportWarning(p.rep, diag.SynDirectiveMissingName, hash.Span.Cover(line[0].Span),
				"#define without a macro name").Emit()
		}
		return
	}
	name := line[1]
	kind := decl.MacroObject
	if len(line) > 2 && line[2].IsPunct("(") && line[2].Adjacent() {
		kind = decl.MacroFunction
	}
	p.emit(name, kind)
}
