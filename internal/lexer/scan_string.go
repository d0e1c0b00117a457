package lexer

import (
	"convdup/internal/diag"
	"convdup/internal/token"
)

// scanQuoted читает "..." или '...' начиная с метки start (там мог быть
// префикс L/u/U/u8). Escape-последовательности не валидируются: '\' просто
// съедает следующий байт. Перевод строки без '\' обрывает литерал.
func (lx *Lexer) scanQuoted(start Mark, quote byte) token.Token {
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Literal, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}

	// курсор стоит на '\n' или на EOF: литерал обрезан, дальше сканируем как обычно
	sp := lx.cursor.SpanFrom(start)
	code, what := diag.LexUnterminatedString, "string"
	if quote == '\'' {
		code, what = diag.LexUnterminatedChar, "character"
	}
	lx.errLex(code, sp, "unterminated "+what+" literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
