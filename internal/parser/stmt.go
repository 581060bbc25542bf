package parser

import (
	"svfmt/internal/cst"
	"svfmt/internal/token"
)

// parseSimpleStatement parses assignments and expression statements.
func (p *Parser) parseSimpleStatement() (*cst.Node, bool) {
	save := p.pos
	if lhs, ok := p.parsePostfix(); ok && p.peek().IsAssignOp() {
		op := p.bump()
		kind := cst.Kind("blocking_assignment")
		if op.Kind == "<=" {
			kind = "nonblocking_assignment"
		}
		var timing *cst.Node
		switch {
		case p.at("#", "##"):
			if timing, ok = p.parseDelayControl(); !ok {
				return nil, false
			}
		case p.at("@"):
			if timing, ok = p.parseEventControl(); !ok {
				return nil, false
			}
		}
		rhs, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		semi, ok := p.expect(";")
		if !ok {
			return nil, false
		}
		return mk(kind, lhs, op, timing, rhs, semi), true
	}

	p.pos = save
	expr, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	return mk("expression_statement", expr, semi), true
}

// parseTimingControlStatement: @(...) stmt | #delay stmt
func (p *Parser) parseTimingControlStatement() (*cst.Node, bool) {
	var ctl *cst.Node
	var ok bool
	if p.at("@") {
		ctl, ok = p.parseEventControl()
	} else {
		ctl, ok = p.parseDelayControl()
	}
	if !ok {
		return nil, false
	}
	body, ok := p.parseBodyStatement()
	if !ok {
		return nil, false
	}
	return mk("procedural_timing_control_statement", ctl, body), true
}

// parseEventControl: @* | @(*) | @name | @( event_expression )
func (p *Parser) parseEventControl() (*cst.Node, bool) {
	at := p.bump()
	switch {
	case p.at("*"):
		return mk("event_control", at, p.bump()), true
	case p.atIdent():
		name, ok := p.parsePostfix()
		if !ok {
			return nil, false
		}
		return mk("event_control", at, name), true
	case !p.at("("):
		return nil, false
	}
	open := p.bump()
	var body *cst.Node
	if p.at("*") && p.peekN(1).Is(")") {
		body = p.bump()
	} else {
		var ok bool
		if body, ok = p.parseEventExpression(); !ok {
			return nil, false
		}
	}
	end, ok := p.expect(")")
	if !ok {
		return nil, false
	}
	return mk("event_control", at, open, body, end), true
}

// parseEventExpression: [edge] expr [iff expr] {or|, ...}
func (p *Parser) parseEventExpression() (*cst.Node, bool) {
	var kids []*cst.Node
	for {
		if p.at("posedge", "negedge", "edge") {
			kids = append(kids, p.bump())
		}
		e, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		kids = append(kids, e)
		if iff := p.accept("iff"); iff != nil {
			cond, ok := p.parseExpression()
			if !ok {
				return nil, false
			}
			kids = append(kids, iff, cond)
		}
		if p.at("or", ",") {
			kids = append(kids, p.bump())
			continue
		}
		break
	}
	return mk("event_expression", kids...), true
}

// parseDelayControl: #10 | #(a+b) | #delay | ##1
func (p *Parser) parseDelayControl() (*cst.Node, bool) {
	hash := p.bump()
	switch {
	case p.atKind(token.Number), p.atIdent():
		return mk("delay_control", hash, p.bump()), true
	case p.at("("):
		e, ok := p.parsePrimary()
		if !ok {
			return nil, false
		}
		return mk("delay_control", hash, e), true
	}
	return nil, false
}

func (p *Parser) parseEventTrigger() (*cst.Node, bool) {
	arrow := p.bump()
	name, ok := p.parsePostfix()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	return mk("event_trigger", arrow, name, semi), true
}

func (p *Parser) parseSeqBlock() (*cst.Node, bool) {
	return p.finishBlock("seq_block", []*cst.Node{p.bump(), p.parseBlockLabel()}, "end")
}

func (p *Parser) parseParBlock() (*cst.Node, bool) {
	return p.finishBlock("par_block", []*cst.Node{p.bump(), p.parseBlockLabel()}, "join", "join_any", "join_none")
}

// parseConditional: [unique|priority] if ( expr ) stmt [else stmt]
func (p *Parser) parseConditional(prefix *cst.Node) (*cst.Node, bool) {
	kw, ok := p.expect("if")
	if !ok {
		return nil, false
	}
	cond, ok := p.parseParenExpr()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBodyStatement()
	if !ok {
		return nil, false
	}
	kids := []*cst.Node{prefix, kw}
	kids = append(kids, cond...)
	kids = append(kids, then)
	if els := p.accept("else"); els != nil {
		alt, ok := p.parseBodyStatement()
		if !ok {
			return nil, false
		}
		kids = append(kids, els, alt)
	}
	return mk("conditional_statement", kids...), true
}

// parseParenExpr returns the three nodes of "( expr )".
func (p *Parser) parseParenExpr() ([]*cst.Node, bool) {
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
	return []*cst.Node{open, e, end}, true
}

// parseCase: [unique] case ( expr ) [inside] items endcase
func (p *Parser) parseCase(prefix *cst.Node) (*cst.Node, bool) {
	kw := p.bump()
	cond, ok := p.parseParenExpr()
	if !ok {
		return nil, false
	}
	head := append([]*cst.Node{prefix, kw}, cond...)
	head = append(head, p.accept("inside"))
	kids := []*cst.Node{mk("case_header", head...)}
	for !p.atEOF() && !p.atBlockCloser() {
		kids = append(kids, p.orError(p.parseCaseItem))
	}
	end, ok := p.expect("endcase")
	if !ok {
		return nil, false
	}
	return mk("case_statement", append(kids, end)...), true
}

// parseCaseItem: default [:] stmt | expr {, expr} : stmt
func (p *Parser) parseCaseItem() (*cst.Node, bool) {
	var kids []*cst.Node
	if def := p.accept("default"); def != nil {
		kids = append(kids, def, p.accept(":"))
	} else {
		for {
			var v *cst.Node
			var ok bool
			if p.at("[") {
				v, ok = p.parseDimension("value_range")
			} else {
				v, ok = p.parseExpression()
			}
			if !ok {
				return nil, false
			}
			kids = append(kids, v)
			if c := p.accept(","); c != nil {
				kids = append(kids, c)
				continue
			}
			break
		}
		colon, ok := p.expect(":")
		if !ok {
			return nil, false
		}
		kids = append(kids, colon)
	}
	body, ok := p.parseBodyStatement()
	if !ok {
		return nil, false
	}
	return mk("case_item", append(kids, body)...), true
}

// parseLoop handles for, while, repeat, forever, foreach and do-while.
func (p *Parser) parseLoop() (*cst.Node, bool) {
	kw := p.bump()
	kids := []*cst.Node{kw}
	switch kw.Kind {
	case "forever":
	case "do":
		body, ok := p.parseBodyStatement()
		if !ok {
			return nil, false
		}
		while, ok := p.expect("while")
		if !ok {
			return nil, false
		}
		cond, ok := p.parseParenExpr()
		if !ok {
			return nil, false
		}
		semi, ok := p.expect(";")
		if !ok {
			return nil, false
		}
		kids = append(kids, body, while)
		kids = append(kids, cond...)
		return mk("loop_statement", append(kids, semi)...), true
	case "for":
		head, ok := p.parseForHead()
		if !ok {
			return nil, false
		}
		kids = append(kids, head...)
	case "foreach":
		open, ok := p.expect("(")
		if !ok {
			return nil, false
		}
		arr, ok := p.parsePostfix()
		if !ok {
			return nil, false
		}
		end, ok := p.expect(")")
		if !ok {
			return nil, false
		}
		kids = append(kids, open, arr, end)
	default:
		cond, ok := p.parseParenExpr()
		if !ok {
			return nil, false
		}
		kids = append(kids, cond...)
	}
	body, ok := p.parseBodyStatement()
	if !ok {
		return nil, false
	}
	return mk("loop_statement", append(kids, body)...), true
}

// parseForHead: ( init ; cond ; step )
func (p *Parser) parseForHead() ([]*cst.Node, bool) {
	open, ok := p.expect("(")
	if !ok {
		return nil, false
	}
	kids := []*cst.Node{open}
	if !p.at(";") {
		init, ok := p.parseForList("for_initialization", p.parseForInit)
		if !ok {
			return nil, false
		}
		kids = append(kids, init)
	}
	semi1, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	kids = append(kids, semi1)
	if !p.at(";") {
		cond, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		kids = append(kids, cond)
	}
	semi2, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	kids = append(kids, semi2)
	if !p.at(")") {
		step, ok := p.parseForList("for_step", p.parseForStep)
		if !ok {
			return nil, false
		}
		kids = append(kids, step)
	}
	end, ok := p.expect(")")
	if !ok {
		return nil, false
	}
	return append(kids, end), true
}

func (p *Parser) parseForList(kind cst.Kind, item func() (*cst.Node, bool)) (*cst.Node, bool) {
	var kids []*cst.Node
	for {
		it, ok := item()
		if !ok {
			return nil, false
		}
		kids = append(kids, it)
		if c := p.accept(","); c != nil {
			kids = append(kids, c)
			continue
		}
		return mk(kind, kids...), true
	}
}

// parseForInit: [type | genvar] name = expr
func (p *Parser) parseForInit() (*cst.Node, bool) {
	if p.at("genvar") {
		kw := p.bump()
		v, ok := p.parseVariableDeclAssignment()
		if !ok {
			return nil, false
		}
		return mk("genvar_initialization", kw, v), true
	}
	if p.atKind(token.Keyword) && token.IsDataTypeKeyword(p.peek().Text) {
		dt, ok := p.parseDataType()
		if !ok {
			return nil, false
		}
		v, ok := p.parseVariableDeclAssignment()
		if !ok {
			return nil, false
		}
		return mk("for_variable_declaration", dt, v), true
	}
	return p.parseOperatorAssignment()
}

// parseForStep: i++ | i += 2 | ++i
func (p *Parser) parseForStep() (*cst.Node, bool) {
	save := p.pos
	if n, ok := p.parseOperatorAssignment(); ok {
		return n, true
	}
	p.pos = save
	return p.parseExpression()
}

func (p *Parser) parseOperatorAssignment() (*cst.Node, bool) {
	lhs, ok := p.parsePostfix()
	if !ok || !p.peek().IsAssignOp() {
		return nil, false
	}
	op := p.bump()
	rhs, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	return mk("operator_assignment", lhs, op, rhs), true
}

// parseJump: return [expr]; | break; | continue;
func (p *Parser) parseJump() (*cst.Node, bool) {
	kids := []*cst.Node{p.bump()}
	if kids[0].Kind == "return" && !p.at(";") {
		e, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		kids = append(kids, e)
	}
	semi, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	return mk("jump_statement", append(kids, semi)...), true
}

// parseDisable: disable fork; | disable name;
func (p *Parser) parseDisable() (*cst.Node, bool) {
	kw := p.bump()
	var target *cst.Node
	if p.at("fork") {
		target = p.bump()
	} else {
		var ok bool
		if target, ok = p.parsePostfix(); !ok {
			return nil, false
		}
	}
	semi, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	return mk("disable_statement", kw, target, semi), true
}

// parseWait: wait fork; | wait ( expr ) stmt
func (p *Parser) parseWait() (*cst.Node, bool) {
	kw := p.bump()
	if p.at("fork") {
		fork := p.bump()
		semi, ok := p.expect(";")
		if !ok {
			return nil, false
		}
		return mk("wait_statement", kw, fork, semi), true
	}
	cond, ok := p.parseParenExpr()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBodyStatement()
	if !ok {
		return nil, false
	}
	kids := append([]*cst.Node{kw}, cond...)
	return mk("wait_statement", append(kids, body)...), true
}

// parseAssertion: assert|assume|cover [property|final] ( [@(..)] [disable iff (..)] expr ) action [else action]
func (p *Parser) parseAssertion() (*cst.Node, bool) {
	kids := []*cst.Node{p.bump()}
	kind := cst.Kind("immediate_assertion")
	switch next := p.peekN(1); {
	case p.at("final"):
		kids = append(kids, p.bump())
	case p.atKind(token.Ident) && p.peek().Text == "property":
		// property не зарезервировано лексером
		kind = "concurrent_assertion"
		kids = append(kids, p.bump())
	case p.at("#") && next.Kind == token.Number && next.Text == "0":
		kids = append(kids, p.bump(), p.bump())
	}
	open, ok := p.expect("(")
	if !ok {
		return nil, false
	}
	kids = append(kids, open)
	if p.at("@") {
		ev, ok := p.parseEventControl()
		if !ok {
			return nil, false
		}
		kids = append(kids, ev)
	}
	if p.at("disable") && p.peekN(1).Is("iff") {
		dis, iff := p.bump(), p.bump()
		cond, ok := p.parseParenExpr()
		if !ok {
			return nil, false
		}
		kids = append(kids, mk("disable_iff", append([]*cst.Node{dis, iff}, cond...)...))
	}
	e, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	end, ok := p.expect(")")
	if !ok {
		return nil, false
	}
	kids = append(kids, e, end)

	if semi := p.accept(";"); semi != nil {
		kids = append(kids, mk("null_statement", semi))
	} else if !p.at("else") {
		body, ok := p.parseBodyStatement()
		if !ok {
			return nil, false
		}
		kids = append(kids, body)
	}
	if els := p.accept("else"); els != nil {
		alt, ok := p.parseBodyStatement()
		if !ok {
			return nil, false
		}
		kids = append(kids, els, alt)
	}
	return mk(kind, kids...), true
}
