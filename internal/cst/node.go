package cst

import (
	"svfmt/internal/diag"
)

// Kind is the grammar tag of a node. Named kinds use snake_case grammar names
// (module_declaration, simple_identifier); anonymous tokens use their text
// ("module", "(", "<=").
type Kind string

const (
	KindComment   Kind = "comment"
	KindDirective Kind = "directive"
	KindError     Kind = "ERROR"
)

// Node is one vertex of a concrete syntax tree. Offsets are byte offsets into
// the source the tree was parsed from; End is exclusive.
type Node struct {
	Kind     Kind
	Start    uint32
	End      uint32
	Children []*Node
	Named    bool
	Missing  bool // zero-width token inserted by the parser
}

// Parser turns source bytes into a CST. Syntax problems never fail the
// call: they become ERROR nodes plus diagnostics in the returned bag.
type Parser interface {
	Parse(src []byte) (*Node, *diag.Bag, error)
}

// ParserFunc adapts a plain function to Parser.
type ParserFunc func(src []byte) (*Node, *diag.Bag, error)

func (f ParserFunc) Parse(src []byte) (*Node, *diag.Bag, error) { return f(src) }

func (n *Node) IsLeaf() bool      { return len(n.Children) == 0 }
func (n *Node) IsError() bool     { return n.Kind == KindError }
func (n *Node) IsComment() bool   { return n.Kind == KindComment }
func (n *Node) IsDirective() bool { return n.Kind == KindDirective }

// IsExtra reports comment-like nodes that may appear anywhere in the tree.
func (n *Node) IsExtra() bool { return n.Kind == KindComment || n.Kind == KindDirective }

func (n *Node) Len() uint32 { return n.End - n.Start }

// Text returns the source bytes covered by n.
func (n *Node) Text(src []byte) string {
	if n == nil || int(n.End) > len(src) || n.Start > n.End {
		return ""
	}
	return string(src[n.Start:n.End])
}

// FirstLeaf returns the leftmost non-missing leaf of n, or nil.
func (n *Node) FirstLeaf() *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		if n.Missing {
			return nil
		}
		return n
	}
	for _, c := range n.Children {
		if l := c.FirstLeaf(); l != nil {
			return l
		}
	}
	return nil
}

// LastLeaf returns the rightmost non-missing leaf of n, or nil.
func (n *Node) LastLeaf() *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		if n.Missing {
			return nil
		}
		return n
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if l := n.Children[i].LastLeaf(); l != nil {
			return l
		}
	}
	return nil
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// New builds a named interior node spanning its children.
func New(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind, Named: true, Children: children}
	if len(children) > 0 {
		n.Start = children[0].Start
		n.End = children[len(children)-1].End
	}
	return n
}
