// Package token defines lexical token kinds and trivia for C-like sources.
// Invariants:
//   - Token.Text is the verbatim slice of the original source.
//   - Token.Span matches Text exactly (Start..End) and Token.Pos is the
//     1-based line/column of Span.Start.
//   - Whitespace, newlines and line continuations never appear in the token
//     stream; they are attached to the following token as Leading trivia.
//   - Comments are trivia by default and become Comment tokens only when the
//     lexer is asked to keep them.
//   - Preprocessor directive names (define, include, ...) are identifiers;
//     the '#' introducing them is ordinary punctuation.
package token
