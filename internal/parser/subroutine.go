package parser

import (
	"svfmt/internal/cst"
)

// parseSubroutine parses a function or task declaration. Extern and pure
// virtual methods have no body and come back as prototypes.
func (p *Parser) parseSubroutine(prefix []*cst.Node) (*cst.Node, bool) {
	proto := false
	for _, q := range prefix {
		if q.Kind == "extern" || q.Kind == "pure" {
			proto = true
		}
	}
	isTask := p.at("task")
	if proto {
		kind := cst.Kind("function_prototype")
		if isTask {
			kind = "task_prototype"
		}
		return p.parseSubroutineHeader(prefix, kind)
	}

	headerKind, declKind, closer := cst.Kind("function_header"), cst.Kind("function_declaration"), "endfunction"
	if isTask {
		headerKind, declKind, closer = "task_header", "task_declaration", "endtask"
	}
	header, ok := p.parseSubroutineHeader(prefix, headerKind)
	if !ok {
		return nil, false
	}
	return p.finishBlock(declKind, []*cst.Node{header}, closer)
}

// parseSubroutineHeader: {qualifier} function|task [lifetime] [type] name [( ports )] ;
func (p *Parser) parseSubroutineHeader(prefix []*cst.Node, kind cst.Kind) (*cst.Node, bool) {
	if !p.at("function", "task") {
		return nil, false
	}
	isFunc := p.at("function")
	kids := append(append([]*cst.Node(nil), prefix...), p.bump(), p.accept("automatic"), p.accept("static"))

	if isFunc && !p.at("new") {
		if v := p.accept("void"); v != nil {
			kids = append(kids, v)
		} else {
			dt, ok := p.parseDataType()
			if !ok {
				return nil, false
			}
			kids = append(kids, dt)
		}
	}

	name, ok := p.parseSubroutineName()
	if !ok {
		return nil, false
	}
	kids = append(kids, name)
	if p.at("(") {
		ports, ok := p.parseList("tf_port_list", func() (*cst.Node, bool) {
			return p.parseAnsiItem("tf_port_item")
		})
		if !ok {
			return nil, false
		}
		kids = append(kids, ports)
	}
	semi, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	return mk(kind, append(kids, semi)...), true
}

// parseSubroutineName: name | new | class::name | class::new
func (p *Parser) parseSubroutineName() (*cst.Node, bool) {
	var name *cst.Node
	switch {
	case p.at("new"):
		name = p.bump()
	case p.atIdent():
		name = p.bump()
	default:
		return nil, false
	}
	for p.at("::") && (p.peekN(1).IsIdent() || p.peekN(1).Is("new")) {
		name = mk("scoped_name", name, p.bump(), p.bump())
	}
	return name, true
}
