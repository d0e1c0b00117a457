package lexer

import (
	"convdup/internal/diag"
	"convdup/internal/token"
)

// scanIdentOrKeyword читает [A-Za-z_][A-Za-z0-9_]* (плюс Unicode-буквы).
// Префиксы L, u, U, u8 прямо перед кавычкой дают строковый/символьный литерал.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		// не буква: это мусорный байт, пусть разбирается scanOperatorOrPunct
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	lex := lx.text(sp)

	if q := lx.cursor.Peek(); (q == '"' || q == '\'') && isLiteralPrefix(lex) {
		return lx.scanQuoted(start, q)
	}

	if sp.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, sp, "identifier is too long")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lex}
	}
	if token.IsKeyword(lex) {
		return token.Token{Kind: token.Keyword, Span: sp, Text: lex}
	}
	return token.Token{Kind: token.Identifier, Span: sp, Text: lex}
}

func isLiteralPrefix(s string) bool {
	switch s {
	case "L", "u", "U", "u8":
		return true
	}
	return false
}
