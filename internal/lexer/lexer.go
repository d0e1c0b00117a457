package lexer

import (
	"convdup/internal/source"
	"convdup/internal/token"
)

// Lexer turns one file into tokens. Whitespace, newlines, line
// continuations and comments become the Leading trivia of the next token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	hold   []token.Trivia // trivia перед ещё не прочитанным токеном
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Tokenize returns every token of file, ending with exactly one EOF. It
// depends only on the file content.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next significant token. Once the input is exhausted it
// keeps returning EOF; trailing trivia is not attached to EOF.
func (lx *Lexer) Next() token.Token {
	var tok token.Token
	if comment := lx.collectLeadingTrivia(); comment != nil {
		tok = *comment
	} else if lx.cursor.EOF() {
		lx.hold = nil
		at := lx.cursor.Off
		return token.Token{
			Kind: token.EOF,
			Span: source.Span{File: lx.file.ID, Start: at, End: at},
			Pos:  lx.file.Position(at),
		}
	} else {
		tok = lx.scanToken()
	}
	tok.Pos = lx.file.Position(tok.Span.Start)
	tok.Leading, lx.hold = lx.hold, nil
	return tok
}

func (lx *Lexer) scanToken() token.Token {
	switch ch := lx.cursor.Peek(); {
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		// не-ASCII байт: решение принимает scanIdentOrKeyword по руне
		return lx.scanIdentOrKeyword()
	case isDec(ch), lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"', ch == '\'':
		return lx.scanQuoted(lx.cursor.Mark(), ch)
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
