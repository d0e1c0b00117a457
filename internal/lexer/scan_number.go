package lexer

import (
	"convdup/internal/diag"
	"convdup/internal/token"
)

// scanNumber читает preprocessing number: цифра или '.'+цифра, далее
// [0-9A-Za-z_.] и знак сразу после e/E/p/P. Суффиксы (u, l, f) и
// шестнадцатеричные формы покрываются этим же правилом.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == 'e' || b == 'E' || b == 'p' || b == 'P':
			lx.cursor.Bump()
			if s := lx.cursor.Peek(); s == '+' || s == '-' {
				lx.cursor.Bump()
			}
		case isIdentContinueByte(b) || b == '.':
			lx.cursor.Bump()
		case b == '\'':
			// разделитель разрядов C23: 1'000'000
			if isIdentContinueByte(lx.cursor.At(1)) {
				lx.cursor.Bump()
				continue
			}
			return lx.finishNumber(start)
		default:
			return lx.finishNumber(start)
		}
	}
	return lx.finishNumber(start)
}

func (lx *Lexer) finishNumber(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if sp.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, sp, "numeric literal is too long")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	if bad := badNumberSuffix(text); bad != "" {
		lx.errLex(diag.LexBadNumber, sp, "malformed numeric literal "+text)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Literal, Span: sp, Text: text}
}

// badNumberSuffix catches the common "0x" with no digits; everything else
// is left to the compiler.
func badNumberSuffix(text string) string {
	if text == "0x" || text == "0X" || text == "0b" || text == "0B" {
		return text
	}
	return ""
}
