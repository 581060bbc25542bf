package layout

import (
	"svfmt/internal/cst"
)

// Token describes one emitted leaf for spacing decisions.
type Token struct {
	Kind   cst.Kind
	Text   string
	Named  bool
	Parent cst.Kind
	First  bool // first child of Parent
	Last   bool // last child of Parent
}

// SpaceQuery asks whether a space separates two adjacent leaves on one line.
// Context is the kind of the lowest common ancestor of Prev and Next.
type SpaceQuery struct {
	Prev    Token
	Next    Token
	Context cst.Kind
}

type spacing struct {
	tightAfter     set // no space after these tokens: ( [ { .
	tightAround    set // no space on either side: :: .
	callNames      set // "(" right after these is a call or port list
	spacedParens   set // parents whose leading "(" keeps a space
	unaryParents   set
	postfixParents set
	rangeParents   set // ":" compact: [7:0]
	spacedColon    set // ":" spaced on both sides: a ? b : c
	compactIn      set // contexts without any inner spaces
	tightSelects   set // "[" parents that attach to the previous name
	castParents    set // no space after the closing ")" of a cast
	macroKind      cst.Kind
	glue           []string // multi-character operators of the grammar
}

// Space reports whether a space separates q.Prev and q.Next.
func (t *Table) Space(q SpaceQuery) bool {
	prev, next := q.Prev, q.Next
	if mustSeparate(prev, next, &t.sp) {
		return true
	}
	if prev.Kind == cst.KindComment || next.Kind == cst.KindComment ||
		prev.Kind == cst.KindDirective || next.Kind == cst.KindDirective {
		return true
	}
	sp := &t.sp
	pt, nt := anonText(prev), anonText(next)

	switch nt {
	case ",", ";", ")", "]", "}":
		return false
	}
	switch pt {
	case ",", ";":
		return true
	}
	if sp.tightAround[cst.Kind(nt)] || sp.tightAround[cst.Kind(pt)] {
		return false
	}
	if sp.compactIn[q.Context] {
		return false
	}
	if sp.tightAfter[cst.Kind(pt)] {
		return false
	}

	if sp.unaryParents[prev.Parent] && prev.First && !prev.Named && !prev.Last {
		return false
	}
	if sp.postfixParents[next.Parent] && next.Last && (nt == "++" || nt == "--") {
		return false
	}
	if pt == ")" && sp.castParents[prev.Parent] && !prev.Last {
		return false
	}

	switch nt {
	case "(":
		if next.First && sp.spacedParens[next.Parent] {
			return true
		}
		return !(sp.callNames[prev.Kind] || sp.unaryParents[prev.Parent] && prev.First && !prev.Named)
	case "[":
		if sp.tightSelects[next.Parent] {
			return !(sp.callNames[prev.Kind] || pt == "]" || pt == ")")
		}
		return pt != "]"
	case "'":
		return false
	case "'{":
		return q.Context != "typed_assignment_pattern"
	case ":", "+:", "-:", ":=":
		if sp.rangeParents[next.Parent] {
			return false
		}
		return sp.spacedColon[next.Parent] || nt == ":="
	}
	switch pt {
	case ":", "+:", "-:":
		return !sp.rangeParents[prev.Parent]
	case "'", "'{":
		return false
	}
	return true
}

func anonText(t Token) string {
	if t.Named {
		return ""
	}
	return t.Text
}

// gluesOperator reports whether a multi-character operator (or a comment
// opener) would form across the seam of a and b.
func gluesOperator(a, b string, multiOps []string) bool {
	left := a[max(0, len(a)-3):]
	right := b[:min(len(b), 3)]
	joined := left + right
	cut := len(left)
	for _, op := range multiOps {
		for i := max(0, cut-len(op)+1); i < cut && i+len(op) <= len(joined); i++ {
			if joined[i:i+len(op)] == op {
				return true
			}
		}
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c == '`' || c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// mustSeparate is the lexical safety rule: it reports whether gluing the two
// texts would change how they lex.
func mustSeparate(prev, next Token, sp *spacing) bool {
	if prev.Text == "" || next.Text == "" {
		return false
	}
	a, b := prev.Text[len(prev.Text)-1], next.Text[0]
	switch {
	case prev.Text[0] == '\\':
		// escaped identifier ends at whitespace
		return true
	case isWordByte(a) && isWordByte(b):
		return true
	case a >= '0' && a <= '9' && b == '\'':
		return true
	case prev.Kind == sp.macroKind && sp.macroKind != "" && b == '(':
		return true
	}
	return gluesOperator(prev.Text, next.Text, sp.glue)
}
