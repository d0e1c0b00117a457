package lexer

import (
	"fmt"

	"convdup/internal/diag"
	"convdup/internal/token"
)

// scanOperatorOrPunct: жадный разбор: 3-символьные, затем 2, затем 1.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	for _, op := range threeByteOps {
		if lx.cursor.EatSeq(op) {
			return lx.punct(start)
		}
	}
	for _, op := range twoByteOps {
		if lx.cursor.EatSeq(op) {
			return lx.punct(start)
		}
	}

	b := lx.cursor.Peek()
	switch b {
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '&', '|', '^', '~', '?', ':',
		';', ',', '.', '(', ')', '[', ']', '{', '}', '#':
		lx.cursor.Bump()
		return lx.punct(start)
	}

	// неизвестный символ: съедаем целую руну, чтобы не резать UTF-8
	if b >= utf8RuneSelf {
		lx.bumpRune()
	} else {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", lx.text(sp)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

var threeByteOps = [...]string{"<<=", ">>=", "..."}

var twoByteOps = [...]string{
	"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "&=", "^=", "|=", "##",
}

func (lx *Lexer) punct(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Punctuation, Span: sp, Text: lx.text(sp)}
}
