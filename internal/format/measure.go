package format

import (
	"strings"

	"svfmt/internal/cst"
	"svfmt/internal/layout"
)

// unbounded is the width of content that cannot share one line.
const unbounded = 1 << 24

// measure accumulates the single-line width of consecutive subtrees.
type measure struct {
	r     *renderer
	prev  layout.Token
	has   bool
	ctx   cst.Kind
	width int
}

func (m *measure) node(n *cst.Node, pos tokenPos) {
	if m.width >= unbounded {
		return
	}
	r := m.r
	if r.sc.skip(n) {
		return
	}
	if len(r.att.within(n.Start, n.End)) > 0 {
		m.width = unbounded
		return
	}
	if r.sc.isUnit(n) {
		text := r.sc.unitText(n)
		if text == "" || strings.IndexByte(text, '\n') >= 0 {
			m.width = unbounded
			return
		}
		tok := r.token(n, pos, text)
		if m.has && r.table.Space(layout.SpaceQuery{Prev: m.prev, Next: tok, Context: m.ctx}) {
			m.width++
		}
		m.width += displayWidth(text, r.opts.IndentWidth)
		m.prev, m.has = tok, true
		return
	}
	kids := r.sc.kids(n)
	for i, d := range r.decide(n, kids, false) {
		if d.BreakBefore {
			m.width = unbounded
			return
		}
		if i > 0 {
			m.ctx = n.Kind
		}
		m.node(kids[i], posOf(n, kids, i))
	}
}

// flatWidth is the width of n laid out on one line.
func (r *renderer) flatWidth(n *cst.Node, pos tokenPos) int {
	if w, ok := r.widths[n]; ok {
		return w
	}
	m := &measure{r: r}
	m.node(n, pos)
	r.widths[n] = m.width
	return m.width
}

// tailWidth measures the siblings after kids[i] that stay on its line.
func (r *renderer) tailWidth(parent *cst.Node, kids []*cst.Node, decs []layout.Decision, i int) int {
	last, ok := r.lastToken(kids[i], posOf(parent, kids, i))
	m := &measure{r: r, prev: last, has: ok}
	for j := i + 1; j < len(kids); j++ {
		if decs[j].BreakBefore || r.table.Wrappable(kids[j].Kind) {
			break
		}
		m.ctx = parent.Kind
		m.node(kids[j], posOf(parent, kids, j))
	}
	return m.width
}

// shouldWrap decides whether the list n breaks one item per line: always
// when it holds a comment that ends a line, otherwise when it would run past
// MaxLineWidth.
func (r *renderer) shouldWrap(n *cst.Node, pos tokenPos, depth, tail int) bool {
	for _, a := range r.att.within(n.Start, n.End) {
		if a.EndsLine {
			return true
		}
	}
	if r.opts.MaxLineWidth <= 0 {
		return false
	}
	col := r.w.Column()
	lead := 0
	if r.pending || r.w.Len() == 0 {
		col = depth * r.opts.IndentWidth
	} else if first, ok := r.firstToken(n, pos); ok && r.hasPrev &&
		r.table.Space(layout.SpaceQuery{Prev: r.prev, Next: first, Context: r.ctx}) {
		lead = 1
	}
	width := r.flatWidth(n, pos)
	if width >= unbounded || tail >= unbounded {
		return true
	}
	return col+lead+width+tail > r.opts.MaxLineWidth
}

func (r *renderer) firstToken(n *cst.Node, pos tokenPos) (layout.Token, bool) {
	for !r.sc.isUnit(n) {
		kids := r.sc.kids(n)
		if len(kids) == 0 {
			return layout.Token{}, false
		}
		n, pos = kids[0], posOf(n, kids, 0)
	}
	return r.token(n, pos, r.sc.unitText(n)), true
}

func (r *renderer) lastToken(n *cst.Node, pos tokenPos) (layout.Token, bool) {
	for !r.sc.isUnit(n) {
		kids := r.sc.kids(n)
		if len(kids) == 0 {
			return layout.Token{}, false
		}
		i := len(kids) - 1
		n, pos = kids[i], posOf(n, kids, i)
	}
	return r.token(n, pos, r.sc.unitText(n)), true
}
