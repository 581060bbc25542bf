package parser

import (
	"sort"

	"svfmt/internal/cst"
	"svfmt/internal/token"
)

// insertExtras places comment and directive leaves into the deepest
// interior node whose range contains them, keeping children ordered.
func insertExtras(root *cst.Node, extras []token.Token, leaf func(token.Token) *cst.Node) {
	for _, tok := range extras {
		insertOne(root, leaf(tok))
	}
}

func insertOne(n, x *cst.Node) {
	for {
		i := sort.Search(len(n.Children), func(i int) bool {
			return n.Children[i].Start >= x.End
		})
		if i > 0 {
			c := n.Children[i-1]
			if !c.IsLeaf() && c.Start <= x.Start && x.End <= c.End {
				n = c
				continue
			}
		}
		n.Children = append(n.Children, nil)
		copy(n.Children[i+1:], n.Children[i:])
		n.Children[i] = x
		return
	}
}
