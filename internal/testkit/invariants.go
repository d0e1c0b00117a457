package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"convdup/internal/decl"
	"convdup/internal/source"
	"convdup/internal/token"
)

// CheckTokenInvariants runs a minimal set of span invariants on a token stream:
// 1) every span points into sf and lies within its content
// 2) trivia and tokens appear in ascending, non-overlapping order
// 3) Text matches the bytes under the span
// 4) the stream ends with exactly one EOF
func CheckTokenInvariants(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		return fmt.Errorf("stream does not end with EOF")
	}

	var cursor uint32
	check := func(what string, sp source.Span, text string) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("%s span %v outside content of %d bytes", what, sp, lenContent)
		}
		if sp.Start < cursor {
			return fmt.Errorf("%s span %v overlaps previous end %d", what, sp, cursor)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != text {
			return fmt.Errorf("%s text %q does not match source %q", what, text, got)
		}
		cursor = sp.End
		return nil
	}

	for i, tok := range toks {
		if tok.Kind == token.EOF && i != len(toks)-1 {
			return fmt.Errorf("EOF at %d before the end of the stream", i)
		}
		for _, tv := range tok.Leading {
			if err := check("trivia "+tv.Kind.String(), tv.Span, tv.Text); err != nil {
				return err
			}
		}
		if err := check("token "+tok.Kind.String(), tok.Span, tok.Text); err != nil {
			return err
		}
	}
	return nil
}

// CheckIdentifierInvariants verifies that every identifier spells exactly
// the bytes under its span, that Pos is where the span starts, and that
// identifiers come in source order.
func CheckIdentifierInvariants(ids []decl.Identifier, fs *source.FileSet, sf *source.File) error {
	if fs == nil || sf == nil {
		return fmt.Errorf("nil file set or file")
	}
	var prev uint32
	for i, id := range ids {
		sp := id.Span
		if sp.File != sf.ID {
			return fmt.Errorf("%s: span file mismatch: got=%d want=%d", id.Name, sp.File, sf.ID)
		}
		if sp.Empty() || int(sp.End) > len(sf.Content) {
			return fmt.Errorf("%s: bad span %v", id.Name, sp)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != id.Name {
			return fmt.Errorf("%s: span covers %q", id.Name, got)
		}
		if start, _ := fs.Resolve(sp); start != id.Pos {
			return fmt.Errorf("%s: Pos %v, span starts at %v", id.Name, id.Pos, start)
		}
		if i > 0 && sp.Start < prev {
			return fmt.Errorf("%s: out of source order", id.Name)
		}
		if id.Kind.String() == "unknown" {
			return fmt.Errorf("%s: unknown kind %d", id.Name, id.Kind)
		}
		prev = sp.Start
	}
	return nil
}
