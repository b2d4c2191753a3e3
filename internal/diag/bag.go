package diag

import (
	"fmt"
	"sort"
)

// Bag is the per-run diagnostic sink. Entries keep discovery order; once a
// fatal diagnostic is recorded every later Add is dropped.
type Bag struct {
	items   []Diagnostic
	max     int
	fatal   bool
	dropped int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 16
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// Add appends d unless the cap is reached or a fatal diagnostic was recorded.
// It reports whether d was stored.
func (b *Bag) Add(d Diagnostic) bool {
	if b.fatal || (b.max > 0 && len(b.items) >= b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	if d.Severity == SevFatal {
		b.fatal = true
	}
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors reports whether anything was recorded.
func (b *Bag) HasErrors() bool {
	return len(b.items) > 0
}

// HasFatal reports whether a fatal diagnostic stopped the run.
func (b *Bag) HasFatal() bool {
	return b.fatal
}

// Dropped returns how many diagnostics were rejected by the cap or after a fatal.
func (b *Bag) Dropped() int {
	return b.dropped
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the diagnostics in discovery order. Do not modify the slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Pointers returns pointers into the bag, the shape formatters accept.
func (b *Bag) Pointers() []*Diagnostic {
	out := make([]*Diagnostic, len(b.items))
	for i := range b.items {
		out[i] = &b.items[i]
	}
	return out
}

// Sort orders diagnostics by file, start, end, severity (desc), code.
// Only multi-file listings use it; a single run keeps discovery order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops entries with the same Code and Primary span, keeping the first.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code.ID(), d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}
