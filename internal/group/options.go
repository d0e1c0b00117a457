package group

import (
	"fmt"

	"convdup/internal/convention"
)

// NestedPolicy decides what happens to member groups (fields, enum
// constants) whose enclosing type names are themselves a finding.
type NestedPolicy uint8

const (
	// NestedIndependent reports member groups as findings of their own.
	NestedIndependent NestedPolicy = iota
	// NestedMerge attaches them to the type-name group as one combined finding.
	NestedMerge
)

func (p NestedPolicy) String() string {
	if p == NestedMerge {
		return "merge"
	}
	return "independent"
}

func ParseNestedPolicy(s string) (NestedPolicy, error) {
	switch s {
	case "", "independent":
		return NestedIndependent, nil
	case "merge":
		return NestedMerge, nil
	}
	return NestedIndependent, fmt.Errorf("unknown nested policy %q (want independent or merge)", s)
}

// Options controls partitioning and reporting.
type Options struct {
	// EnforceEnclosingScope partitions fields and enum constants by the
	// canonical name of their enclosing type.
	EnforceEnclosingScope bool
	// MinConventions is the number of distinct conventions a group needs to be actionable.
	MinConventions int
	// Ignored conventions are dropped before grouping.
	Ignored convention.Set
	Nested  NestedPolicy
}

func DefaultOptions() Options {
	return Options{EnforceEnclosingScope: true, MinConventions: 2}
}
