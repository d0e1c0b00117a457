package extract

import (
	"fmt"

	"convdup/internal/diag"
	"convdup/internal/token"
)

var closerOf = map[string]string{"(": ")", "[": "]", "{": "}"}

// balance matches brackets and builds p.match. On the first closer that does
// not match, the stream is cut there and truncated is reported.
// Openers still unclosed at the end map to len(toks).
func (p *parser) balance(toks []token.Token) (out []token.Token, truncated bool) {
	p.match = make([]int, len(toks))
	var stack []int
	for i, tok := range toks {
		p.match[i] = -1
		if tok.Kind != token.Punctuation {
			continue
		}
		switch tok.Text {
		case "(", "[", "{":
			stack = append(stack, i)
		case ")", "]", "}":
			if len(stack) == 0 {
				diag.ReportWarning(p.rep, diag.SynUnbalancedDelimiter, tok.Span,
					fmt.Sprintf("unmatched '%s'; declarations after this point are not analysed", tok.Text)).Emit()
				p.closeAll(stack, i)
				return toks[:i], true
			}
			open := stack[len(stack)-1]
			if closerOf[toks[open].Text] != tok.Text {
				diag.ReportWarning(p.rep, diag.SynUnbalancedDelimiter, tok.Span,
					fmt.Sprintf("expected '%s', found '%s'; declarations after this point are not analysed",
						closerOf[toks[open].Text], tok.Text)).
					WithNote(toks[open].Span, "unclosed delimiter opened here").
					Emit()
				p.closeAll(stack, i)
				return toks[:i], true
			}
			stack = stack[:len(stack)-1]
			p.match[open] = i
			p.match[i] = open
		}
	}
	for _, open := range stack {
		diag.ReportWarning(p.rep, diag.SynUnbalancedDelimiter, toks[open].Span,
			fmt.Sprintf("unclosed '%s' at end of file", toks[open].Text)).Emit()
	}
	p.closeAll(stack, len(toks))
	return toks, false
}

func (p *parser) closeAll(stack []int, end int) {
	for _, open := range stack {
		p.match[open] = end
	}
	p.match = p.match[:end]
}
