package group

import (
	"convdup/internal/convention"
	"convdup/internal/decl"
)

// Group is a set of same-kind identifiers sharing a canonical form.
type Group struct {
	Kind decl.Kind
	// Scope is the canonical enclosing type for scoped kinds; empty when global.
	Scope string
	// CanonicalKey is the space-joined word sequence, or the verbatim name
	// when Exact is set.
	CanonicalKey string
	Exact        bool
	Members      []Member
	// Conventions present, in first-seen order.
	Conventions []convention.Tag
	Actionable  bool
	// Nested holds member groups folded in under NestedMerge.
	Nested []Group

	scope key
	key   key
}

// Files lists the distinct files of the members in first-seen order.
func (g *Group) Files() []string {
	var out []string
	seen := make(map[string]struct{}, len(g.Members))
	for _, m := range g.Members {
		if _, ok := seen[m.File]; ok {
			continue
		}
		seen[m.File] = struct{}{}
		out = append(out, m.File)
	}
	return out
}

// Findings counts actionable groups including nested ones.
func Findings(groups []Group) int {
	n := 0
	for i := range groups {
		if groups[i].Actionable {
			n++
		}
		n += Findings(groups[i].Nested)
	}
	return n
}
