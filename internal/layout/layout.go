package layout

import (
	"svfmt/internal/cst"
)

// MaxBlankLines caps the blank lines kept between two items.
const MaxBlankLines = 1

// Role describes how a parent kind lays out its children.
type Role uint8

const (
	RoleNone Role = iota
	// RoleTop puts every child on its own line (source_file, translation_unit).
	RoleTop
	// RoleBlock keeps the header inline, indents body items and breaks
	// before closers.
	RoleBlock
	// RoleBody indents a non-block body statement (if, loops, always).
	RoleBody
	// RoleList is a wrappable bracketed list.
	RoleList
	// RoleCase indents the statements of a C case label.
	RoleCase
	// RoleDirective is a preprocessor conditional: header inline, items and
	// the terminator each on their own line without extra indentation.
	RoleDirective
)

// Rule is the per-parent entry of a Table. Header is the number of leading
// children that stay inline (opener, header, directive condition).
type Rule struct {
	Role   Role
	Header int
}

// Decision is the layout of one child inside its parent.
type Decision struct {
	IndentDelta int
	BreakBefore bool
	BreakAfter  bool
	// InlineChildren marks atomic kinds: the subtree is emitted as one
	// verbatim unit.
	InlineChildren bool
}

// Position locates a child for Decide.
type Position struct {
	Kind    cst.Kind
	Parent  cst.Kind
	Prev    cst.Kind // previous sibling, "" for the first child
	Index   int
	Count   int
	Wrapped bool // parent is a wrappable list that does not fit on one line
	Joined  bool // no newline between the previous sibling and this child in the source
}

// BlankQuery asks for the blank lines before a child that starts a new line.
type BlankQuery struct {
	Parent cst.Kind
	Kind   cst.Kind
	Prev   cst.Kind
	Index  int
	Source int // blank lines in the source, uncapped
}

type set map[cst.Kind]bool

func setOf(kinds ...cst.Kind) set {
	s := make(set, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

// Table is a versioned set of layout rules for one grammar. Tables are
// immutable after construction and safe for concurrent use.
type Table struct {
	Name    string
	Version string

	rules map[cst.Kind]Rule

	closers    set // tokens that close a block
	labels     set // inline block children besides the header
	statements set
	blocks     set // statements that stay inline as a body
	chained    set // if-statements that stay inline after else
	elseTokens set // else / do-while "while" / C else_clause
	inlineBody set // parents whose body statement always stays inline

	timing        cst.Kind // timing-control statement kind
	timingParents set      // parents keeping a timing-control body inline
	timingInline  set      // bodies kept on the timing control's line

	listOpeners set
	listClosers set

	major      set
	breakAfter set
	atomic     set
	// keepErrorLines keeps block items next to an ERROR sibling on the
	// source line they share with it.
	keepErrorLines bool

	sp spacing
}

func (t *Table) rule(kind cst.Kind) Rule {
	return t.rules[kind]
}

// Role reports the layout role of kind as a parent.
func (t *Table) Role(kind cst.Kind) Role { return t.rule(kind).Role }

func (t *Table) Wrappable(kind cst.Kind) bool { return t.rule(kind).Role == RoleList }
func (t *Table) Atomic(kind cst.Kind) bool    { return t.atomic[kind] }
func (t *Table) Closer(kind cst.Kind) bool    { return t.closers[kind] }
func (t *Table) BreakAfter(kind cst.Kind) bool {
	return t.breakAfter[kind]
}

// Decide returns the layout decision for one child. It depends on kinds and
// positions; source line sharing (Joined) matters only next to ERROR nodes.
func (t *Table) Decide(p Position) Decision {
	d := Decision{
		BreakAfter:     t.breakAfter[p.Kind],
		InlineChildren: t.atomic[p.Kind],
	}
	r := t.rule(p.Parent)
	switch r.Role {
	case RoleTop:
		d.BreakBefore = true

	case RoleBlock:
		switch {
		case p.Index < r.Header, t.labels[p.Kind], p.Kind == ",", p.Kind == ";":
		case t.closers[p.Kind]:
			d.BreakBefore = true
		case t.keepErrorLines && p.Joined && p.Index > r.Header &&
			(p.Kind == cst.KindError || p.Prev == cst.KindError):
			d.IndentDelta = 1
		default:
			d.BreakBefore, d.IndentDelta = true, 1
		}

	case RoleBody:
		switch {
		case p.Index > 0 && t.elseTokens[p.Kind]:
			d.BreakBefore = t.statements[p.Prev] && !t.blocks[p.Prev] && !t.inlineBody[p.Parent]
		case !t.statements[p.Kind], t.blocks[p.Kind], t.inlineBody[p.Parent]:
		case t.chained[p.Kind] && t.elseTokens[p.Prev]:
		case p.Kind == t.timing && t.timingParents[p.Parent]:
		case p.Parent == t.timing && t.timingInline[p.Kind]:
		default:
			d.BreakBefore, d.IndentDelta = true, 1
		}

	case RoleList:
		if !p.Wrapped {
			break
		}
		switch {
		case p.Index == p.Count-1 && t.listClosers[p.Kind]:
			d.BreakBefore = true
		case p.Index <= 1 && t.listOpeners[p.Kind], p.Kind == ",":
		default:
			d.BreakBefore, d.IndentDelta = true, 1
		}

	case RoleCase:
		if t.statements[p.Kind] && !t.blocks[p.Kind] {
			d.BreakBefore, d.IndentDelta = true, 1
		}

	case RoleDirective:
		if p.Index >= r.Header {
			d.BreakBefore = true
		}
	}
	if d.BreakAfter {
		// препроцессорная строка всегда отдельно
		d.BreakBefore = true
	}
	return d
}

// BlankLines returns the blank lines required before a child that starts
// on a new line.
func (t *Table) BlankLines(q BlankQuery) int {
	r := t.rule(q.Parent)
	switch {
	case q.Index == 0, t.closers[q.Kind]:
		return 0
	case r.Role == RoleBlock && (q.Index <= r.Header || t.labels[q.Prev]):
		// первый элемент тела
		return 0
	case t.major[q.Kind] && t.major[q.Prev]:
		return 1
	}
	return min(max(q.Source, 0), MaxBlankLines)
}
