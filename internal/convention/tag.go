package convention

import (
	"fmt"
	"strings"
)

// Tag is the surface naming convention of an identifier.
type Tag uint8

const (
	Unrecognized Tag = iota
	SnakeCase
	CamelCase
	PascalCase
	ScreamingSnake
)

func (t Tag) String() string {
	switch t {
	case SnakeCase:
		return "snake_case"
	case CamelCase:
		return "camelCase"
	case PascalCase:
		return "PascalCase"
	case ScreamingSnake:
		return "SCREAMING_SNAKE"
	default:
		return "unrecognized"
	}
}

// Short returns the lowercase alias accepted by ParseTag.
func (t Tag) Short() string {
	switch t {
	case SnakeCase:
		return "snake"
	case CamelCase:
		return "camel"
	case PascalCase:
		return "pascal"
	case ScreamingSnake:
		return "screaming"
	default:
		return "unrecognized"
	}
}

// ParseTag accepts either the short alias ("camel") or the display name ("camelCase").
func ParseTag(s string) (Tag, error) {
	v := strings.TrimSpace(s)
	for _, t := range []Tag{SnakeCase, CamelCase, PascalCase, ScreamingSnake, Unrecognized} {
		if strings.EqualFold(v, t.Short()) || v == t.String() {
			return t, nil
		}
	}
	switch strings.ToLower(v) {
	case "screaming_snake", "screaming-snake", "upper":
		return ScreamingSnake, nil
	}
	return Unrecognized, fmt.Errorf("unknown naming convention %q", s)
}

// Set is a small bitset of tags.
type Set uint8

func NewSet(tags ...Tag) Set {
	var s Set
	for _, t := range tags {
		s = s.With(t)
	}
	return s
}

func (s Set) With(t Tag) Set { return s | 1<<t }
func (s Set) Has(t Tag) bool { return s&(1<<t) != 0 }
func (s Set) Empty() bool { return s == 0 }

// Len returns the number of distinct tags in the set.
func (s Set) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Tags lists members in Tag order.
func (s Set) Tags() []Tag {
	out := make([]Tag, 0, s.Len())
	for t := Unrecognized; t <= ScreamingSnake; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}
