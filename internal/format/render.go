package format

import (
	"bytes"
	"strconv"

	"svfmt/internal/cst"
	"svfmt/internal/layout"
	"svfmt/internal/trace"
)

type tokenPos struct {
	parent      cst.Kind
	first, last bool
}

type renderer struct {
	src   []byte
	opts  Options
	table *layout.Table
	att   *Attachment
	sc    *scan
	w     *Writer

	prev    layout.Token
	hasPrev bool
	ctx     cst.Kind // lowest common ancestor of prev and the next leaf

	pending      bool
	pendingBlank int
	lastEnd      uint32

	emitted int
	wrapped map[*cst.Node]bool
	widths  map[*cst.Node]int
	span    uint64
}

// Render formats the tree of src. It fails with an *InvariantError when the
// tree does not fit src or when the output would lose a comment or change
// non-whitespace content; src must then be kept as is.
func Render(root *cst.Node, src []byte, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if root == nil {
		return nil, invariantf(-1, "nil tree")
	}
	if err := cst.Validate(root, len(src)); err != nil {
		return nil, &InvariantError{Offset: -1, Msg: err.Error()}
	}

	span := trace.Begin(opts.Tracer, trace.ScopePass, "render", opts.TraceParent)
	att := Attach(root, src, opts.Table)
	r := &renderer{
		src:     src,
		opts:    opts,
		table:   opts.Table,
		att:     att,
		sc:      att.sc,
		w:       NewWriter(len(src)+len(src)/8, opts),
		wrapped: make(map[*cst.Node]bool),
		widths:  make(map[*cst.Node]int),
		span:    span.ID(),
	}
	r.node(root, tokenPos{}, 0)
	r.eof()
	out := r.finish()
	err := r.sc.err
	if err == nil {
		err = r.check(out)
	}

	span.WithExtra("comments", strconv.Itoa(att.Len())).
		WithExtra("verbatim", strconv.Itoa(len(r.sc.verbatim)))
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	span.End("")
	return out, nil
}

func (r *renderer) node(n *cst.Node, pos tokenPos, depth int) {
	r.leading(n, depth)
	switch {
	case r.sc.skip(n):
	case r.sc.isUnit(n):
		r.unit(n, pos, depth)
	default:
		if n.Named {
			trace.Point(r.opts.Tracer, trace.ScopeNode, string(n.Kind), "", r.span)
		}
		r.children(n, depth)
	}
	r.trailing(n, depth)
}

func (r *renderer) children(n *cst.Node, depth int) {
	kids := r.sc.kids(n)
	decs := r.decide(n, kids, r.wrapped[n])
	for i, c := range kids {
		if i > 0 {
			r.ctx = n.Kind
		}
		d := decs[i]
		if d.BreakBefore {
			prev := cst.Kind("")
			if i > 0 {
				prev = kids[i-1].Kind
			}
			r.breakLine(r.table.BlankLines(layout.BlankQuery{
				Parent: n.Kind, Kind: c.Kind, Prev: prev, Index: i,
				Source: r.sourceBlank(r.startWithComments(c)),
			}))
		}
		cd := depth + d.IndentDelta
		pos := posOf(n, kids, i)
		if r.table.Wrappable(c.Kind) {
			r.wrapped[c] = r.shouldWrap(c, pos, cd, r.tailWidth(n, kids, decs, i))
		}
		r.node(c, pos, cd)
		if d.BreakAfter {
			r.breakLine(0)
		}
	}
}

func (r *renderer) decide(n *cst.Node, kids []*cst.Node, wrapped bool) []layout.Decision {
	decs := make([]layout.Decision, len(kids))
	for i, c := range kids {
		prev, joined := cst.Kind(""), false
		if i > 0 {
			prev = kids[i-1].Kind
			joined = bytes.IndexByte(r.src[kids[i-1].End:c.Start], '\n') < 0
		}
		decs[i] = r.table.Decide(layout.Position{
			Kind: c.Kind, Parent: n.Kind, Prev: prev,
			Index: i, Count: len(kids), Wrapped: wrapped, Joined: joined,
		})
	}
	return decs
}

func posOf(parent *cst.Node, kids []*cst.Node, i int) tokenPos {
	return tokenPos{parent: parent.Kind, first: i == 0, last: i == len(kids)-1}
}

func (r *renderer) unit(n *cst.Node, pos tokenPos, depth int) {
	text := r.sc.unitText(n)
	if text == "" {
		// лист из одних пробелов (перевод строки в C-препроцессоре)
		r.breakLine(0)
		return
	}
	r.emit(r.token(n, pos, text), text, depth, n.Start+uint32(len(text)))
}

func (r *renderer) token(n *cst.Node, pos tokenPos, text string) layout.Token {
	return layout.Token{
		Kind:   n.Kind,
		Text:   text,
		Named:  n.Named,
		Parent: pos.parent,
		First:  pos.first,
		Last:   pos.last,
	}
}

func (r *renderer) emit(tok layout.Token, text string, depth int, end uint32) {
	switch {
	case r.pending:
		if r.w.Len() > 0 {
			r.w.Newlines(r.pendingBlank)
		}
		r.pending, r.pendingBlank = false, 0
	case r.hasPrev && r.table.Space(layout.SpaceQuery{Prev: r.prev, Next: tok, Context: r.ctx}):
		r.w.Space()
	}
	r.w.SetIndent(depth)
	r.w.WriteString(text)
	r.prev, r.hasPrev = tok, true
	r.lastEnd = end
}

func (r *renderer) breakLine(blank int) {
	r.pending = true
	r.pendingBlank = max(r.pendingBlank, blank)
}

// sourceBlank counts blank source lines between the last emitted byte and
// off.
func (r *renderer) sourceBlank(off uint32) int {
	if off <= r.lastEnd {
		return 0
	}
	return max(countNewlines(r.src[r.lastEnd:off])-1, 0)
}

func (r *renderer) startWithComments(n *cst.Node) uint32 {
	if lead := r.att.Leading(n); len(lead) > 0 {
		return lead[0].Comment.Start
	}
	return r.sc.startOf(n)
}

func (r *renderer) leading(n *cst.Node, depth int) {
	lead := r.att.Leading(n)
	for i, a := range lead {
		d := depth
		if a.BodyIndent {
			d++
		}
		switch {
		case i == 0:
			r.breakLine(0)
		case a.OwnLine:
			r.breakLine(a.BlankLinesBefore)
		}
		r.comment(a, d)
	}
	if len(lead) > 0 && lead[len(lead)-1].EndsLine {
		r.breakLine(min(r.sourceBlank(r.sc.startOf(n)), layout.MaxBlankLines))
	}
}

func (r *renderer) trailing(n *cst.Node, depth int) {
	for _, a := range r.att.Trailing(n) {
		if a.OwnLine {
			r.breakLine(a.BlankLinesBefore)
		}
		r.comment(a, depth)
	}
}

func (r *renderer) eof() {
	for _, a := range r.att.EOF() {
		if a.OwnLine {
			r.breakLine(a.BlankLinesBefore)
		}
		r.comment(a, 0)
	}
}

func (r *renderer) comment(a *Attached, depth int) {
	c := a.Comment
	text := r.sc.unitText(c)
	r.emit(layout.Token{Kind: c.Kind, Text: text, Named: true}, text, depth, c.Start+uint32(len(text)))
	r.emitted++
	if a.EndsLine || a.Directive {
		r.breakLine(0)
	}
}

func (r *renderer) finish() []byte {
	out := bytes.TrimRight(r.w.Bytes(), " \t\n")
	if len(out) == 0 {
		return []byte{}
	}
	res := make([]byte, len(out)+1)
	copy(res, out)
	res[len(out)] = '\n'
	return res
}

// check verifies that no comment was lost and that only whitespace changed.
func (r *renderer) check(out []byte) error {
	if r.emitted != r.att.Len() {
		return invariantf(-1, "emitted %d of %d comments", r.emitted, r.att.Len())
	}
	want, got := stripSpace(r.src), stripSpace(out)
	if !bytes.Equal(want, got) {
		i := 0
		for i < len(want) && i < len(got) && want[i] == got[i] {
			i++
		}
		return invariantf(-1, "non-whitespace content changed after %d significant bytes", i)
	}
	return nil
}
