package format

import (
	"svfmt/internal/cst"
)

// Read returns the exact source text covered by n. Ranges outside src are an
// invariant violation.
func Read(src []byte, n *cst.Node) (string, error) {
	if n == nil {
		return "", invariantf(-1, "read of nil node")
	}
	if n.Start > n.End || int(n.End) > len(src) {
		return "", invariantf(int(n.Start), "node %s range [%d, %d) outside source of %d bytes",
			n.Kind, n.Start, n.End, len(src))
	}
	return string(src[n.Start:n.End]), nil
}
