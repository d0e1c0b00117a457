package token

import "convdup/internal/source"

// TriviaKind classifies non-significant source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaContinuation is a backslash-newline; it joins physical lines.
	TriviaContinuation
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaContinuation:
		return "Continuation"
	default:
		return "Unknown"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
