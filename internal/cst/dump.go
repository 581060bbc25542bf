package cst

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented outline of the tree: named nodes by kind, leaves
// with their quoted text. Used by `svfmt tree`.
func Dump(w io.Writer, root *Node, src []byte) error {
	var err error
	Walk(root, func(n *Node, depth int) bool {
		if err != nil {
			return false
		}
		pad := strings.Repeat("  ", depth)
		switch {
		case n.Missing:
			_, err = fmt.Fprintf(w, "%s(MISSING %s)\n", pad, n.Kind)
		case n.IsLeaf():
			_, err = fmt.Fprintf(w, "%s%s: %s\n", pad, n.Kind, strconv.Quote(n.Text(src)))
		default:
			_, err = fmt.Fprintf(w, "%s%s [%d..%d]\n", pad, n.Kind, n.Start, n.End)
		}
		return true
	})
	return err
}

// Sexp renders the tree as an s-expression of named kinds, handy in tests.
func Sexp(n *Node) string {
	var sb strings.Builder
	sexp(&sb, n)
	return sb.String()
}

func sexp(sb *strings.Builder, n *Node) {
	sb.WriteByte('(')
	sb.WriteString(string(n.Kind))
	for _, c := range n.Children {
		if !c.Named {
			continue
		}
		sb.WriteByte(' ')
		sexp(sb, c)
	}
	sb.WriteByte(')')
}
