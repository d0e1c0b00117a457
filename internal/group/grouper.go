package group

import (
	"convdup/internal/convention"
	"convdup/internal/decl"
)

type partition struct {
	kind  decl.Kind
	scope key
	key   key
}

// Grouper folds members into partitions. Adding members file after file
// gives the cross-file grouping; output order is first-seen order.
type Grouper struct {
	opts    Options
	index   map[partition]int
	parts   [][]Member
	keys    []partition
	members []Member
}

func New(opts Options) *Grouper {
	return &Grouper{
		opts:  opts,
		index: make(map[partition]int),
	}
}

// Add places members into their partitions. Members with an ignored
// convention are dropped.
func (g *Grouper) Add(members ...Member) {
	for _, m := range members {
		if g.opts.Ignored.Has(m.Tag) {
			continue
		}
		pk := partition{kind: m.Kind, key: m.key()}
		if g.opts.EnforceEnclosingScope && m.Kind.Scoped() {
			pk.scope = scopeOf(m.Enclosing)
		}
		idx, ok := g.index[pk]
		if !ok {
			idx = len(g.parts)
			g.index[pk] = idx
			g.parts = append(g.parts, nil)
			g.keys = append(g.keys, pk)
		}
		g.parts[idx] = append(g.parts[idx], m)
		g.members = append(g.members, m)
	}
}

// Merge adds every member of other in other's order.
func (g *Grouper) Merge(other *Grouper) {
	g.Add(other.members...)
}

// Len returns the number of members kept so far.
func (g *Grouper) Len() int { return len(g.members) }

// Groups returns every partition with at least two members.
func (g *Grouper) Groups() []Group {
	minConv := max(g.opts.MinConventions, 1)

	var groups []Group
	for i, pk := range g.keys {
		members := g.parts[i]
		if len(members) < 2 {
			continue
		}
		var set convention.Set
		var tags []convention.Tag
		for _, m := range members {
			if !set.Has(m.Tag) {
				set = set.With(m.Tag)
				tags = append(tags, m.Tag)
			}
		}
		groups = append(groups, Group{
			Kind:         pk.kind,
			Scope:        pk.scope.text,
			CanonicalKey: pk.key.text,
			Exact:        pk.key.exact,
			Members:      append([]Member(nil), members...),
			Conventions:  tags,
			Actionable:   len(tags) >= minConv,
			scope:        pk.scope,
			key:          pk.key,
		})
	}
	if g.opts.Nested == NestedMerge {
		groups = nest(groups)
	}
	return groups
}

// nest moves member groups under the actionable type-name group whose
// canonical key equals their scope.
func nest(groups []Group) []Group {
	owner := make(map[key]int)
	for i := range groups {
		if isTypeKind(groups[i].Kind) && groups[i].Actionable {
			if _, ok := owner[groups[i].key]; !ok {
				owner[groups[i].key] = i
			}
		}
	}
	if len(owner) == 0 {
		return groups
	}

	moved := make([]bool, len(groups))
	for i := range groups {
		if !groups[i].Kind.Scoped() || groups[i].scope == (key{}) {
			continue
		}
		if o, ok := owner[groups[i].scope]; ok {
			groups[o].Nested = append(groups[o].Nested, groups[i])
			moved[i] = true
		}
	}
	out := groups[:0:0]
	for i := range groups {
		if !moved[i] {
			out = append(out, groups[i])
		}
	}
	return out
}

func isTypeKind(k decl.Kind) bool {
	return k == decl.TypedefName || k == decl.StructTypeName || k == decl.EnumTypeName
}
