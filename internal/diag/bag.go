package diag

import (
	"cmp"
	"slices"
)

// defaultBagLimit applies when NewBag gets a non-positive limit.
const defaultBagLimit = 100

// Bag collects diagnostics up to a limit and counts what it had to drop.
// It is not safe for concurrent use; every file gets its own Bag.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

func NewBag(limit int) *Bag {
	if limit <= 0 {
		limit = defaultBagLimit
	}
	return &Bag{limit: limit}
}

// Add keeps d unless the bag is full; false means d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Force keeps d even when the bag is full and raises the limit to fit.
func (b *Bag) Force(d Diagnostic) {
	b.items = append(b.items, d)
	b.limit = max(b.limit, len(b.items))
}

// Restore replays a saved snapshot (see Items and Dropped) into the bag.
func (b *Bag) Restore(items []Diagnostic, dropped int) {
	for _, d := range items {
		b.Add(d)
	}
	b.dropped += dropped
}

func (b *Bag) Len() int     { return len(b.items) }
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the bag's own slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

func (b *Bag) HasErrors() bool   { return b.atLeast(SevError) }
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

// Merge appends everything from other, growing the limit so nothing from
// other is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.limit = max(b.limit, len(b.items))
	b.dropped += other.dropped
}

// Sort orders diagnostics by file and span, then errors before warnings,
// then by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
