package token

import (
	"convdup/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Pos     source.LineCol
	Text    string
	Leading []Trivia
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Identifier }

// IsKeyword reports whether the token is the keyword kw.
func (t Token) IsKeyword(kw string) bool { return t.Kind == Keyword && t.Text == kw }

// IsPunct reports whether the token is the punctuation p.
func (t Token) IsPunct(p string) bool { return t.Kind == Punctuation && t.Text == p }

// IsLiteral reports whether the token is a numeric, string or char literal.
func (t Token) IsLiteral() bool { return t.Kind == Literal }

// StartsLine reports whether a newline separates the token from the previous one.
// The first token of a file also starts a line.
func (t Token) StartsLine() bool {
	if t.Span.Start == 0 {
		return true
	}
	for _, tv := range t.Leading {
		if tv.Kind == TriviaNewline || tv.Span.Start == 0 {
			return true
		}
	}
	return false
}

// Adjacent reports whether the token directly follows the previous one
// with no trivia in between.
func (t Token) Adjacent() bool { return len(t.Leading) == 0 }
