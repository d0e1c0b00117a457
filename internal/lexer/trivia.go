package lexer

import (
	"convdup/internal/diag"
	"convdup/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\v', '\f' и одиночный '\r' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - '\' + '\n' -> TriviaContinuation (строка продолжается)
//   - //... до \n -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (без вложенности, как в C)
//
// With KeepComments the first comment is returned as a token instead.
func (lx *Lexer) collectLeadingTrivia() *token.Token {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpaceByte(b) {
			for isSpaceByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '\\' {
			if lx.cursor.EatSeq("\\\n") {
				lx.pushTrivia(token.TriviaContinuation, start)
				continue
			}
			break
		}

		if b == '/' {
			kind, ok := lx.scanComment()
			if !ok {
				break
			}
			if lx.opts.KeepComments {
				sp := lx.cursor.SpanFrom(start)
				return &token.Token{Kind: token.Comment, Span: sp, Text: lx.text(sp)}
			}
			lx.pushTrivia(kind, start)
			continue
		}

		// нет больше trivia
		break
	}
	return nil
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// scanComment consumes "//..." or "/*...*/" and reports which one it was.
// It leaves the cursor untouched when '/' does not open a comment.
func (lx *Lexer) scanComment() (token.TriviaKind, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	switch lx.cursor.Peek() {
	case '/':
		// строчный комментарий продолжается через '\'+'\n', как в C
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			if !lx.cursor.EatSeq("\\\n") {
				lx.cursor.Bump()
			}
		}
		return token.TriviaLineComment, true

	case '*':
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if lx.cursor.EatSeq("*/") {
				return token.TriviaBlockComment, true
			}
			lx.cursor.Bump()
		}
		// незакрытый комментарий поглощает остаток файла
		diag.ReportError(lx.opts.Reporter, diag.LexUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated block comment").
			WithNote(lx.spanAt(start, 2), "comment opened here").
			Emit()
		return token.TriviaBlockComment, true

	default:
		// это не комментарий, вернёмся, пусть сканируется как оператор '/'
		lx.cursor.Reset(start)
		return 0, false
	}
}
