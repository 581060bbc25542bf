package parser

import (
	"svfmt/internal/cst"
	"svfmt/internal/token"
)

// binaryPrec maps binary operators to precedence; higher binds tighter.
var binaryPrec = map[string]int{
	"||": 3,
	"&&": 4,
	"|":  5,
	"^":  6, "^~": 6, "~^": 6,
	"&":  7,
	"==": 8, "!=": 8, "===": 8, "!==": 8, "==?": 8, "!=?": 8,
	"<": 9, "<=": 9, ">": 9, ">=": 9, "inside": 9, "dist": 9,
	"<<": 10, ">>": 10, "<<<": 10, ">>>": 10,
	"+": 11, "-": 11,
	"*": 12, "/": 12, "%": 12,
	"**": 13,
}

var unaryOps = map[string]bool{
	"+": true, "-": true, "!": true, "~": true, "&": true, "~&": true,
	"|": true, "~|": true, "^": true, "~^": true, "^~": true,
}

// parseExpression: implication binds loosest, then ?:, then binary operators.
func (p *Parser) parseExpression() (*cst.Node, bool) {
	if !p.enter() {
		p.leave()
		return nil, false
	}
	defer p.leave()

	lhs, ok := p.parseConditionalExpr()
	if !ok {
		return nil, false
	}
	if p.at("->", "<->", "|->", "|=>") {
		op := p.bump()
		rhs, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		return mk("binary_expression", lhs, op, rhs), true
	}
	return lhs, true
}

func (p *Parser) parseConditionalExpr() (*cst.Node, bool) {
	cond, ok := p.parseBinary(3)
	if !ok {
		return nil, false
	}
	if !p.at("?") {
		return cond, true
	}
	q := p.bump()
	a, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	colon, ok := p.expect(":")
	if !ok {
		return nil, false
	}
	b, ok := p.parseConditionalExpr()
	if !ok {
		return nil, false
	}
	return mk("conditional_expression", cond, q, a, colon, b), true
}

func (p *Parser) binaryOp() (int, bool) {
	tok := p.peek()
	if tok.Kind != token.Op && tok.Kind != token.Keyword {
		return 0, false
	}
	prec, ok := binaryPrec[tok.Text]
	return prec, ok
}

// parseBinary is precedence climbing; ** is right-associative.
func (p *Parser) parseBinary(minPrec int) (*cst.Node, bool) {
	lhs, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		prec, isOp := p.binaryOp()
		if !isOp || prec < minPrec {
			return lhs, true
		}
		op := p.bump()
		if op.Kind == "inside" || op.Kind == "dist" {
			set, ok := p.parseConcatenation()
			if !ok {
				return nil, false
			}
			lhs = mk("inside_expression", lhs, op, set)
			continue
		}
		next := prec + 1
		if op.Kind == "**" {
			next = prec
		}
		rhs, ok := p.parseBinary(next)
		if !ok {
			return nil, false
		}
		lhs = mk("binary_expression", lhs, op, rhs)
	}
}

func (p *Parser) parseUnary() (*cst.Node, bool) {
	tok := p.peek()
	if tok.Kind != token.Op {
		return p.parsePostfix()
	}
	switch {
	case tok.Text == "++" || tok.Text == "--":
		op := p.bump()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return mk("inc_or_dec_expression", op, operand), true
	case unaryOps[tok.Text]:
		op := p.bump()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return mk("unary_expression", op, operand), true
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by selects, member access, scope
// resolution, calls, casts and postfix increments.
func (p *Parser) parsePostfix() (*cst.Node, bool) {
	n, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch {
		case p.at("["):
			sel, ok := p.parseSelect()
			if !ok {
				return nil, false
			}
			n = mk("index_expression", append([]*cst.Node{n}, sel...)...)
		case p.at(".") && (p.peekN(1).IsIdent() || p.peekN(1).Is("new") || p.peekN(1).Kind == token.Keyword):
			n = mk("member_access", n, p.bump(), p.bump())
		case p.at("::") && (p.peekN(1).IsIdent() || p.peekN(1).Is("new")):
			n = mk("scoped_name", n, p.bump(), p.bump())
		case p.at("#") && p.peekN(1).Is("(") && isName(n):
			// C#(8)::member
			save := p.pos
			params, ok := p.parseParameterValueAssignment()
			if !ok || !p.at("::") {
				p.pos = save
				return n, true
			}
			n = mk("class_type", n, params)
		case p.at("(") && isCallable(n):
			args, ok := p.parseArguments()
			if !ok {
				return nil, false
			}
			n = mk("function_call", n, args)
		case p.at("'"):
			tick := p.bump()
			open, ok := p.expect("(")
			if !ok {
				return nil, false
			}
			e, ok := p.parseExpression()
			if !ok {
				return nil, false
			}
			end, ok := p.expect(")")
			if !ok {
				return nil, false
			}
			n = mk("cast", n, tick, open, e, end)
		case p.at("'{"):
			pat, ok := p.parseAssignmentPattern()
			if !ok {
				return nil, false
			}
			n = mk("typed_assignment_pattern", n, pat)
		case p.at("++", "--"):
			n = mk("inc_or_dec_expression", n, p.bump())
		case p.at("with"):
			w, ok := p.parseWithClause()
			if !ok {
				return nil, false
			}
			n = mk("with_expression", n, w)
		default:
			return n, true
		}
	}
}

func isName(n *cst.Node) bool {
	switch n.Kind {
	case "simple_identifier", "scoped_name", "text_macro_usage":
		return true
	}
	return false
}

func isCallable(n *cst.Node) bool {
	switch n.Kind {
	case "simple_identifier", "system_tf_identifier", "scoped_name", "member_access", "super", "this", "type":
		return true
	}
	return false
}

// parseSelect returns "[" ... "]" of a bit, part or multi-index select.
func (p *Parser) parseSelect() ([]*cst.Node, bool) {
	open := p.bump()
	kids := []*cst.Node{open}
	if p.at("*", "$") && p.peekN(1).Is("]") {
		kids = append(kids, p.bump())
	} else {
		for !p.at("]") {
			e, ok := p.parseExpression()
			if !ok {
				return nil, false
			}
			kids = append(kids, e)
			if p.at(":", "+:", "-:") {
				op := p.bump()
				hi, ok := p.parseExpression()
				if !ok {
					return nil, false
				}
				kids = append(kids, op, hi)
			}
			if c := p.accept(","); c != nil {
				// foreach (arr[i, j])
				kids = append(kids, c)
				continue
			}
			break
		}
	}
	end, ok := p.expect("]")
	if !ok {
		return nil, false
	}
	return append(kids, end), true
}

func (p *Parser) parseArguments() (*cst.Node, bool) {
	return p.parseList("list_of_arguments", func() (*cst.Node, bool) {
		if p.at(".") {
			return p.parseNamedArgument("named_argument")
		}
		return p.parseExpressionOrType()
	})
}

// parseExpressionOrType accepts a data type where one may stand in for a
// value: parameter defaults, type arguments and initializers.
func (p *Parser) parseExpressionOrType() (*cst.Node, bool) {
	tok := p.peek()
	if tok.Kind == token.Keyword && token.IsDataTypeKeyword(tok.Text) && tok.Text != "type" && !p.peekN(1).Is("'") {
		dt, ok := p.parseDataType()
		if !ok || dt == nil {
			return nil, false
		}
		return dt, true
	}
	return p.parseExpression()
}

func (p *Parser) parseWithClause() (*cst.Node, bool) {
	w := p.bump()
	if p.at("{") {
		block, ok := p.parseConstraintBlock()
		if !ok {
			return nil, false
		}
		return mk("with_clause", w, block), true
	}
	if p.at("(") && !p.peekN(1).Is(")") {
		// randomize() with (a, b) { ... } и find with (item > 0)
		save := p.pos
		if cond, ok := p.parseParenExpr(); ok && !p.at("{") {
			return mk("with_clause", append([]*cst.Node{w}, cond...)...), true
		}
		p.pos = save
	}
	args, ok := p.parseArguments()
	if !ok {
		return nil, false
	}
	kids := []*cst.Node{w, args}
	if p.at("{") {
		block, ok := p.parseConstraintBlock()
		if !ok {
			return nil, false
		}
		kids = append(kids, block)
	}
	return mk("with_clause", kids...), true
}

func (p *Parser) parsePrimary() (*cst.Node, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Number, token.String, token.Ident, token.SystemIdent, token.MacroUsage:
		return p.bump(), true
	case token.Keyword:
		switch {
		case tok.Text == "new":
			return p.parseNew()
		case tok.Text == "null", tok.Text == "this", tok.Text == "super":
			return p.bump(), true
		case token.IsDataTypeKeyword(tok.Text) && !p.at("struct", "union", "enum"):
			// int'(x), type(x)
			return p.bump(), true
		}
		return nil, false
	case token.Op:
	default:
		return nil, false
	}

	switch tok.Text {
	case "$":
		return p.bump(), true
	case "(":
		open := p.bump()
		e, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		end, ok := p.expect(")")
		if !ok {
			return nil, false
		}
		return mk("parenthesized_expression", open, e, end), true
	case "{":
		return p.parseConcatenation()
	case "'{":
		return p.parseAssignmentPattern()
	}
	return nil, false
}

// parseNew: new | new(args) | new[size] [(init)]
func (p *Parser) parseNew() (*cst.Node, bool) {
	kids := []*cst.Node{p.bump()}
	if p.at("[") {
		sel, ok := p.parseSelect()
		if !ok {
			return nil, false
		}
		kids = append(kids, sel...)
	}
	if p.at("(") {
		args, ok := p.parseArguments()
		if !ok {
			return nil, false
		}
		kids = append(kids, args)
	}
	return mk("new_expression", kids...), true
}

// parseConcatenation handles {a, b}, {n{a}}, {<<8{a}} and inside-sets.
func (p *Parser) parseConcatenation() (*cst.Node, bool) {
	open, ok := p.expect("{")
	if !ok {
		return nil, false
	}
	if p.at("<<", ">>") {
		kids := []*cst.Node{open, p.bump()}
		if !p.at("{") {
			size, ok := p.parseExpressionOrType()
			if !ok {
				return nil, false
			}
			kids = append(kids, size)
		}
		inner, ok := p.parseConcatenation()
		if !ok {
			return nil, false
		}
		end, ok := p.expect("}")
		if !ok {
			return nil, false
		}
		return mk("streaming_concatenation", append(kids, inner, end)...), true
	}
	if end := p.accept("}"); end != nil {
		return mk("concatenation", open, end), true
	}

	first, ok := p.parseConcatItem()
	if !ok {
		return nil, false
	}
	if p.at("{") {
		inner, ok := p.parseConcatenation()
		if !ok {
			return nil, false
		}
		end, ok := p.expect("}")
		if !ok {
			return nil, false
		}
		return mk("multiple_concatenation", open, first, inner, end), true
	}

	kids := []*cst.Node{open, first}
	for {
		c := p.accept(",")
		if c == nil {
			break
		}
		it, ok := p.parseConcatItem()
		if !ok {
			return nil, false
		}
		kids = append(kids, c, it)
	}
	end, ok := p.expect("}")
	if !ok {
		return nil, false
	}
	return mk("concatenation", append(kids, end)...), true
}

func (p *Parser) parseConcatItem() (*cst.Node, bool) {
	var item *cst.Node
	var ok bool
	if p.at("[") {
		item, ok = p.parseDimension("value_range")
	} else {
		item, ok = p.parseExpression()
	}
	if !ok {
		return nil, false
	}
	// dist {0 := 1, [1:3] := 2}
	if p.at(":=") {
		op := p.bump()
		w, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		return mk("dist_item", item, op, w), true
	}
	return item, true
}

// parseAssignmentPattern: '{a, b} | '{default: 0, x: 1} | '{n{a}}
func (p *Parser) parseAssignmentPattern() (*cst.Node, bool) {
	open := p.bump()
	kids := []*cst.Node{open}
	for !p.at("}") {
		var item *cst.Node
		if p.at("default") && p.peekN(1).Is(":") {
			def, colon := p.bump(), p.bump()
			v, ok := p.parseExpression()
			if !ok {
				return nil, false
			}
			item = mk("pattern_key", def, colon, v)
		} else {
			e, ok := p.parseExpressionOrType()
			if !ok {
				return nil, false
			}
			switch {
			case p.at(":"):
				colon := p.bump()
				v, ok := p.parseExpression()
				if !ok {
					return nil, false
				}
				item = mk("pattern_key", e, colon, v)
			case p.at("{"):
				inner, ok := p.parseConcatenation()
				if !ok {
					return nil, false
				}
				item = mk("pattern_replication", e, inner)
			default:
				item = e
			}
		}
		kids = append(kids, item)
		c := p.accept(",")
		if c == nil {
			break
		}
		kids = append(kids, c)
	}
	end, ok := p.expect("}")
	if !ok {
		return nil, false
	}
	return mk("assignment_pattern", append(kids, end)...), true
}
