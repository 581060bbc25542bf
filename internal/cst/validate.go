package cst

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every error returned from Validate.
var ErrMalformed = errors.New("cst: malformed tree")

// Validate checks the structural invariants the formatter depends on:
// ranges inside the source, children ordered, non-overlapping and
// contained in their parent, and no node reused twice.
func Validate(root *Node, srcLen int) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrMalformed)
	}
	seen := make(map[*Node]struct{})
	return validate(root, uint32(srcLen), seen) //nolint:gosec // src length fits the offsets by construction
}

func validate(n *Node, srcLen uint32, seen map[*Node]struct{}) error {
	if _, dup := seen[n]; dup {
		return fmt.Errorf("%w: node %s at %d reused", ErrMalformed, n.Kind, n.Start)
	}
	seen[n] = struct{}{}

	if n.Start > n.End {
		return fmt.Errorf("%w: %s has inverted range %d..%d", ErrMalformed, n.Kind, n.Start, n.End)
	}
	if n.End > srcLen {
		return fmt.Errorf("%w: %s ends at %d past source length %d", ErrMalformed, n.Kind, n.End, srcLen)
	}
	if n.Missing && n.Start != n.End {
		return fmt.Errorf("%w: missing node %s is not zero-width", ErrMalformed, n.Kind)
	}

	prevEnd := n.Start
	for i, c := range n.Children {
		if c == nil {
			return fmt.Errorf("%w: %s has nil child %d", ErrMalformed, n.Kind, i)
		}
		if c.Start < prevEnd {
			return fmt.Errorf("%w: child %d (%s at %d) of %s overlaps previous sibling or starts before parent",
				ErrMalformed, i, c.Kind, c.Start, n.Kind)
		}
		if c.End > n.End {
			return fmt.Errorf("%w: child %d (%s) of %s ends after parent", ErrMalformed, i, c.Kind, n.Kind)
		}
		if err := validate(c, srcLen, seen); err != nil {
			return err
		}
		prevEnd = c.End
	}
	return nil
}
