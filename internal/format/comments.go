package format

import (
	"bytes"
	"sort"
	"strings"

	"svfmt/internal/cst"
	"svfmt/internal/layout"
)

// Side says whether a comment is emitted before or after its anchor.
type Side uint8

const (
	Leading Side = iota + 1
	Trailing
)

func (s Side) String() string {
	switch s {
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	}
	return "none"
}

// Attached is one comment or directive bound to a tree node.
type Attached struct {
	Comment *cst.Node
	Anchor  *cst.Node // nil for comments after the last token
	Side    Side

	BlankLinesBefore int  // blank lines before it in the source, capped
	OwnLine          bool // starts a line in the source
	EndsLine         bool // a line break follows it (line comments always)
	Directive        bool
	BodyIndent       bool // leading on a closer: indented like the body it closes
}

// Attachment maps anchors to their comments. Comments inside verbatim
// regions are part of the region text and are not attached.
type Attachment struct {
	sc       *scan
	all      []*Attached // source order
	leading  map[*cst.Node][]*Attached
	trailing map[*cst.Node][]*Attached
	eof      []*Attached
}

func (a *Attachment) Leading(n *cst.Node) []*Attached  { return a.leading[n] }
func (a *Attachment) Trailing(n *cst.Node) []*Attached { return a.trailing[n] }
func (a *Attachment) EOF() []*Attached                 { return a.eof }
func (a *Attachment) Len() int                         { return len(a.all) }
func (a *Attachment) All() []*Attached                 { return a.all }

// Attach binds every comment and directive of root to exactly one anchor:
//   - same line as the previous token: trailing on that token;
//   - own line before a token: leading on the largest node starting there;
//   - own line before a closer: trailing on the body item it follows, or
//     leading on the closer at body indentation;
//   - after the last token: end of file.
//
// A nil table selects layout.Verilog().
func Attach(root *cst.Node, src []byte, table *layout.Table) *Attachment {
	if table == nil {
		table = layout.Verilog()
	}
	return attach(newScan(root, src, table))
}

func attach(sc *scan) *Attachment {
	a := &Attachment{
		sc:       sc,
		leading:  make(map[*cst.Node][]*Attached),
		trailing: make(map[*cst.Node][]*Attached),
	}
	units := sc.units
	next := make([]*cst.Node, len(units))
	var sem *cst.Node
	for i := len(units) - 1; i >= 0; i-- {
		next[i] = sem
		if !units[i].IsExtra() {
			sem = units[i]
		}
	}

	var prevSem, prevAny *cst.Node
	for i, u := range units {
		if !u.IsExtra() {
			prevSem, prevAny = u, u
			continue
		}
		at := &Attached{Comment: u, Directive: u.IsDirective()}
		if prevAny != nil {
			gap := sc.src[prevAny.End:u.Start]
			at.OwnLine = bytes.IndexByte(gap, '\n') >= 0
			at.BlankLinesBefore = min(max(countNewlines(gap)-1, 0), layout.MaxBlankLines)
		} else {
			at.OwnLine = true
		}
		at.OwnLine = at.OwnLine || at.Directive
		at.EndsLine = at.Directive || strings.HasPrefix(sc.text(u), "//") || endsLine(sc.src, u.End)
		prevAny = u

		sameLine := prevSem != nil && !at.Directive &&
			bytes.IndexByte(sc.src[prevSem.End:u.Start], '\n') < 0
		nextSem := next[i]
		switch {
		case sameLine:
			a.add(at, prevSem, Trailing)
		case nextSem == nil:
			a.eof = append(a.eof, at)
			a.all = append(a.all, at)
		case !sc.table.Closer(nextSem.Kind):
			a.add(at, a.highestStarting(nextSem), Leading)
		default:
			if item := a.bodyItemBefore(prevSem, nextSem); item != nil {
				a.add(at, item, Trailing)
				break
			}
			at.BodyIndent = true
			a.add(at, nextSem, Leading)
		}
	}
	return a
}

func (a *Attachment) add(at *Attached, anchor *cst.Node, side Side) {
	at.Anchor, at.Side = anchor, side
	if side == Leading {
		a.leading[anchor] = append(a.leading[anchor], at)
	} else {
		a.trailing[anchor] = append(a.trailing[anchor], at)
	}
	a.all = append(a.all, at)
}

func (a *Attachment) highestStarting(u *cst.Node) *cst.Node {
	n := u
	for {
		p := a.sc.parent[n]
		if p == nil || p == a.sc.root || a.sc.first[p] != u {
			return n
		}
		n = p
	}
}

func (a *Attachment) highestEnding(u *cst.Node) *cst.Node {
	n := u
	for {
		p := a.sc.parent[n]
		if p == nil || p == a.sc.root || a.sc.last[p] != u {
			return n
		}
		n = p
	}
}

// bodyItemBefore returns the indented sibling of closer that ends at prev,
// or nil when prev ends a header.
func (a *Attachment) bodyItemBefore(prev, closer *cst.Node) *cst.Node {
	if prev == nil {
		return nil
	}
	item := a.highestEnding(prev)
	parent := a.sc.parent[closer]
	if parent == nil || a.sc.parent[item] != parent {
		return nil
	}
	kids := a.sc.kids(parent)
	for i, k := range kids {
		if k != item {
			continue
		}
		prevKind := cst.Kind("")
		if i > 0 {
			prevKind = kids[i-1].Kind
		}
		d := a.sc.table.Decide(layout.Position{
			Kind: k.Kind, Parent: parent.Kind, Prev: prevKind,
			Index: i, Count: len(kids), Wrapped: true,
		})
		if d.BreakBefore && d.IndentDelta > 0 {
			return item
		}
		return nil
	}
	return nil
}

// within returns the attached comments starting in [start, end).
func (a *Attachment) within(start, end uint32) []*Attached {
	i := sort.Search(len(a.all), func(i int) bool { return a.all[i].Comment.Start >= start })
	j := i
	for j < len(a.all) && a.all[j].Comment.Start < end {
		j++
	}
	return a.all[i:j]
}

func endsLine(src []byte, off uint32) bool {
	for _, c := range src[off:] {
		switch c {
		case '\n':
			return true
		case ' ', '\t', '\r', '\f', '\v':
		default:
			return false
		}
	}
	return true
}
