package diag

import (
	"cmp"
	"math"
	"slices"
)

// Bag collects diagnostics of one parse, up to a fixed limit.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag creates a bag holding at most limit diagnostics; limit <= 0 means
// math.MaxUint16.
func NewBag(limit int) *Bag {
	if limit <= 0 || limit > math.MaxUint16 {
		limit = math.MaxUint16
	}
	return &Bag{limit: limit}
}

// Add reports false once the limit is reached.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items возвращает внутренний срез, не модифицировать.
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

func (b *Bag) HasErrors() bool   { return b.atLeast(SevError) }
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.Items(), func(d Diagnostic) bool { return d.Severity >= sev })
}

// Verbatim counts the regions reported as left unformatted.
func (b *Bag) Verbatim() int {
	n := 0
	for _, d := range b.Items() {
		if d.Code == SynUnparseable {
			n++
		}
	}
	return n
}

// Sort orders by file, start, end, then errors before warnings, then code.
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
