package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"convdup/internal/source"
	"convdup/internal/token"
)

// TokenOutput is one token of the `tokenize` listing.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Line    uint32      `json:"line"`
	Col     uint32      `json:"col"`
	EndLine uint32      `json:"end_line"`
	EndCol  uint32      `json:"end_col"`
	Leading []string    `json:"leading,omitempty"`
}

// tokenOutputs converts the stream up to and including EOF.
func tokenOutputs(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		o := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
			Line: tok.Pos.Line,
			Col:  tok.Pos.Col,
		}
		if fs != nil {
			_, end := fs.Resolve(tok.Span)
			o.EndLine, o.EndCol = end.Line, end.Col
		}
		for _, tr := range tok.Leading {
			o.Leading = append(o.Leading, tr.Kind.String())
		}
		out = append(out, o)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty prints one numbered line per token with its range and
// the trivia kinds preceding it.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var b strings.Builder
	for i, o := range tokenOutputs(tokens, fs) {
		fmt.Fprintf(&b, "%3d: %-12s", i+1, o.Kind)
		if o.Text != "" {
			fmt.Fprintf(&b, " %q", o.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", o.Line, o.Col, o.EndLine, o.EndCol)
		if len(o.Leading) > 0 {
			fmt.Fprintf(&b, " (leading: %s)", strings.Join(o.Leading, ", "))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatTokensJSON writes the token list as an indented JSON array. End
// positions need fs; without it they are zero.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenOutputs(tokens, fs))
}
