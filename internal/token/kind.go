package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown byte, broken literal).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Identifier is a name: [A-Za-z_][A-Za-z0-9_]*.
	Identifier
	// Keyword is a reserved C word (int, struct, typedef, ...).
	Keyword
	// Punctuation covers operators, separators and brackets.
	Punctuation
	// Literal covers numbers, strings and character constants.
	Literal
	// Comment is a line or block comment kept as a token.
	Comment
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case Punctuation:
		return "Punctuation"
	case Literal:
		return "Literal"
	case Comment:
		return "Comment"
	default:
		return "Unknown"
	}
}
