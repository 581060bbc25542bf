package format

import (
	"strings"

	"svfmt/internal/cst"
	"svfmt/internal/layout"
)

// scan flattens a tree into emission units: leaves plus subtrees that are
// copied verbatim. ERROR nodes, atomic kinds and nodes whose children leave
// non-whitespace source uncovered are verbatim.
type scan struct {
	src      []byte
	table    *layout.Table
	root     *cst.Node
	units    []*cst.Node // source order, extras included
	verbatim map[*cst.Node]bool
	parent   map[*cst.Node]*cst.Node
	first    map[*cst.Node]*cst.Node // first non-extra unit under a node
	last     map[*cst.Node]*cst.Node
	err      error                   // first failed Read
}

func newScan(root *cst.Node, src []byte, table *layout.Table) *scan {
	s := &scan{
		src:      src,
		table:    table,
		root:     root,
		verbatim: make(map[*cst.Node]bool),
		parent:   make(map[*cst.Node]*cst.Node),
		first:    make(map[*cst.Node]*cst.Node),
		last:     make(map[*cst.Node]*cst.Node),
	}
	s.collect(root)
	return s
}

func (s *scan) collect(n *cst.Node) (first, last *cst.Node) {
	if s.skip(n) {
		return nil, nil
	}
	if n.IsLeaf() || n.IsError() || s.table.Atomic(n.Kind) || s.hasGap(n) {
		if !n.IsLeaf() {
			s.verbatim[n] = true
		}
		s.units = append(s.units, n)
		if n.IsExtra() {
			return nil, nil
		}
		s.first[n], s.last[n] = n, n
		return n, n
	}
	for _, c := range n.Children {
		s.parent[c] = n
		f, l := s.collect(c)
		if f == nil {
			continue
		}
		if first == nil {
			first = f
		}
		last = l
	}
	if first != nil {
		s.first[n], s.last[n] = first, last
	}
	return first, last
}

// skip reports nodes that produce no output.
func (s *scan) skip(n *cst.Node) bool {
	return n.Missing || n.Start == n.End
}

func (s *scan) isUnit(n *cst.Node) bool {
	return n.IsLeaf() || s.verbatim[n]
}

// hasGap reports non-whitespace source inside n that no child covers.
func (s *scan) hasGap(n *cst.Node) bool {
	cursor := n.Start
	for _, c := range n.Children {
		if c.Start > cursor && !isBlank(s.src[cursor:c.Start]) {
			return true
		}
		cursor = max(cursor, c.End)
	}
	return n.End > cursor && !isBlank(s.src[cursor:n.End])
}

// kids returns the children that take part in layout.
func (s *scan) kids(n *cst.Node) []*cst.Node {
	out := make([]*cst.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.IsExtra() || s.skip(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// startOf is the offset of the first emitted non-extra byte of n.
func (s *scan) startOf(n *cst.Node) uint32 {
	if f := s.first[n]; f != nil {
		return f.Start
	}
	return n.Start
}

// text reads n through Read. A failed read returns "" and is kept in s.err.
func (s *scan) text(n *cst.Node) string {
	t, err := Read(s.src, n)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return ""
	}
	return t
}

// unitText is the text of a unit without trailing whitespace.
func (s *scan) unitText(n *cst.Node) string {
	return strings.TrimRight(s.text(n), " \t\n\r\f\v")
}

func isBlank(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r', '\f', '\v':
		default:
			return false
		}
	}
	return true
}

func stripSpace(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r', '\f', '\v':
		default:
			out = append(out, c)
		}
	}
	return out
}

func countNewlines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}
