package decl

import "convdup/internal/source"

// Identifier is one declared name as it appears in the source.
// Name is never normalised.
type Identifier struct {
	Name string
	Kind Kind
	Span source.Span
	Pos  source.LineCol
	// Enclosing names the struct/union/enum the identifier belongs to.
	// Empty outside a type body.
	Enclosing string
}
