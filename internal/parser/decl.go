package parser

import (
	"svfmt/internal/cst"
	"svfmt/internal/token"
)

var netTypes = map[string]bool{
	"wire": true, "tri": true, "tri0": true, "tri1": true, "wand": true, "wor": true,
	"supply0": true, "supply1": true, "triand": true, "trior": true, "trireg": true, "uwire": true,
}

var directions = map[string]bool{"input": true, "output": true, "inout": true, "ref": true}

// parseTypeName: name {:: name}
func (p *Parser) parseTypeName() (*cst.Node, bool) {
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	for p.at("::") && p.peekN(1).IsIdent() {
		name = mk("scoped_name", name, p.bump(), p.bump())
	}
	return name, true
}

// parseDataType parses an optional data type. It returns (nil, true) when
// the type is implicit. A user-defined type is only accepted when an
// identifier follows it, so "a = b" and "a(b)" are not mistaken for types.
func (p *Parser) parseDataType() (*cst.Node, bool) {
	var kids []*cst.Node
loop:
	for {
		tok := p.peek()
		switch {
		case tok.Is("struct"), tok.Is("union"):
			su, ok := p.parseStructUnion()
			if !ok {
				return nil, false
			}
			kids = append(kids, su)
		case tok.Is("enum"):
			en, ok := p.parseEnum()
			if !ok {
				return nil, false
			}
			kids = append(kids, en)
		case tok.Kind == token.Keyword && (token.IsDataTypeKeyword(tok.Text) || netTypes[tok.Text]):
			if tok.Text == "type" && p.peekN(1).Is("(") {
				break loop
			}
			kids = append(kids, p.bump())
		case tok.Is("interface") && len(kids) == 0:
			// virtual interface foo_if vif;
			kids = append(kids, p.bump())
		default:
			break loop
		}
	}

	if len(kids) == 0 || kids[len(kids)-1].Kind == "interface" {
		if p.atIdent() {
			save := p.pos
			if user, ok := p.parseUserType(); ok && p.atIdent() {
				kids = append(kids, user)
			} else {
				p.pos = save
			}
		}
	}

	for p.at("[") {
		dim, ok := p.parseDimension("packed_dimension")
		if !ok {
			return nil, false
		}
		kids = append(kids, dim)
	}
	if len(kids) == 0 {
		return nil, true
	}
	return mk("data_type", kids...), true
}

// parseUserType: name[::name] [#(...)] [dims]
func (p *Parser) parseUserType() (*cst.Node, bool) {
	name, ok := p.parseTypeName()
	if !ok {
		return nil, false
	}
	if !p.at("#") {
		return name, true
	}
	params, ok := p.parseParameterValueAssignment()
	if !ok {
		return nil, false
	}
	return mk("class_type", name, params), true
}

// parseDimension: [ ] | [ * ] | [ $ ] | [ expr ] | [ expr : expr ] | [ expr +: expr ]
func (p *Parser) parseDimension(kind cst.Kind) (*cst.Node, bool) {
	open, ok := p.expect("[")
	if !ok {
		return nil, false
	}
	kids := []*cst.Node{open}
	if p.at("*") && p.peekN(1).Is("]") {
		kids = append(kids, p.bump())
	} else if !p.at("]") {
		lo, ok := p.parseExpressionOrType()
		if !ok {
			return nil, false
		}
		kids = append(kids, lo)
		if p.at(":", "+:", "-:") {
			op := p.bump()
			hi, ok := p.parseExpression()
			if !ok {
				return nil, false
			}
			kids = append(kids, op, hi)
		}
	}
	end, ok := p.expect("]")
	if !ok {
		return nil, false
	}
	return mk(kind, append(kids, end)...), true
}

// parseDeclaration parses data, net, parameter and non-ANSI port
// declarations terminated by ";".
func (p *Parser) parseDeclaration() (*cst.Node, bool) {
	kind := cst.Kind("data_declaration")
	var kids []*cst.Node
	for p.atKind(token.Keyword) && (qualifiers[p.peek().Text] && p.peek().Text != "var" || p.at("interconnect")) {
		tok := p.peek().Text
		switch {
		case tok == "parameter":
			kind = "parameter_declaration"
		case tok == "localparam":
			kind = "local_parameter_declaration"
		case directions[tok]:
			kind = "port_declaration"
		}
		kids = append(kids, p.bump())
	}
	if kind == "data_declaration" && p.atKind(token.Keyword) && netTypes[p.peek().Text] {
		kind = "net_declaration"
	}
	dt, ok := p.parseDataType()
	if !ok {
		return nil, false
	}
	if dt == nil && len(kids) == 0 {
		return nil, false
	}
	kids = append(kids, dt)
	if p.at("#") {
		delay, ok := p.parseDelayControl()
		if !ok {
			return nil, false
		}
		kids = append(kids, delay)
	}
	for {
		v, ok := p.parseVariableDeclAssignment()
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
	semi, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	return mk(kind, append(kids, semi)...), true
}

// parseVariableDeclAssignment: name {dims} [= init]
func (p *Parser) parseVariableDeclAssignment() (*cst.Node, bool) {
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	kids := []*cst.Node{name}
	for p.at("[") {
		dim, ok := p.parseDimension("unpacked_dimension")
		if !ok {
			return nil, false
		}
		kids = append(kids, dim)
	}
	if eq := p.accept("="); eq != nil {
		init, ok := p.parseExpressionOrType()
		if !ok {
			return nil, false
		}
		kids = append(kids, eq, init)
	}
	return mk("variable_decl_assignment", kids...), true
}

// parseParameterPortList: #( parameter W = 8, type T = logic )
func (p *Parser) parseParameterPortList() (*cst.Node, bool) {
	hash, ok := p.expect("#")
	if !ok {
		return nil, false
	}
	list, ok := p.parseList("parameter_port_list", func() (*cst.Node, bool) {
		return p.parseAnsiItem("parameter_port_declaration")
	})
	if !ok {
		return nil, false
	}
	return mk("parameter_port_list", append([]*cst.Node{hash}, list.Children...)...), true
}

// parsePortList parses a module header port list. Lists whose items are all
// bare names stay list_of_ports; anything richer is list_of_port_declarations.
func (p *Parser) parsePortList(kind cst.Kind) (*cst.Node, bool) {
	list, ok := p.parseList(kind, func() (*cst.Node, bool) {
		return p.parseAnsiItem("ansi_port_declaration")
	})
	if !ok {
		return nil, false
	}
	ansi := false
	for _, c := range list.Children {
		if c.Kind == "ansi_port_declaration" && len(c.Children) > 1 {
			ansi = true
		}
	}
	if ansi {
		list.Kind = "list_of_port_declarations"
		return list, true
	}
	for _, c := range list.Children {
		if c.Kind == "ansi_port_declaration" {
			c.Kind = "port"
		}
	}
	return list, true
}

// parseAnsiItem parses one item of a port, parameter or subroutine list:
// {qualifier} [type] name {dims} [= default]
func (p *Parser) parseAnsiItem(kind cst.Kind) (*cst.Node, bool) {
	var kids []*cst.Node
	for p.atKind(token.Keyword) && (qualifiers[p.peek().Text] || p.at("type", "interconnect")) {
		if p.at("type") {
			kids = append(kids, p.bump())
			break
		}
		kids = append(kids, p.bump())
	}
	if p.atIdent() && p.peekN(1).Is(".") && p.peekN(2).IsIdent() && p.peekN(3).IsIdent() {
		// интерфейсный порт: bus_if.master bus
		kids = append(kids, mk("interface_port_header", p.bump(), p.bump(), p.bump()))
	} else {
		dt, ok := p.parseDataType()
		if !ok {
			return nil, false
		}
		kids = append(kids, dt)
	}
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	kids = append(kids, name)
	for p.at("[") {
		dim, ok := p.parseDimension("unpacked_dimension")
		if !ok {
			return nil, false
		}
		kids = append(kids, dim)
	}
	if eq := p.accept("="); eq != nil {
		def, ok := p.parseExpressionOrType()
		if !ok {
			return nil, false
		}
		kids = append(kids, eq, def)
	}
	return mk(kind, kids...), true
}

// parseTypedef: typedef type name {dims}; | typedef class name;
func (p *Parser) parseTypedef() (*cst.Node, bool) {
	kids := []*cst.Node{p.bump()}
	if p.at("class", "struct", "union", "enum", "interface") && p.peekN(1).IsIdent() && p.peekN(2).Is(";") {
		kids = append(kids, p.bump(), p.bump(), p.bump())
		return mk("type_declaration", kids...), true
	}
	if p.atIdent() && p.peekN(1).Is(";") {
		kids = append(kids, p.bump(), p.bump())
		return mk("type_declaration", kids...), true
	}
	dt, ok := p.parseDataType()
	if !ok || dt == nil {
		return nil, false
	}
	v, ok := p.parseVariableDeclAssignment()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	return mk("type_declaration", append(kids, dt, v, semi)...), true
}

// parseStructUnion: struct|union [tagged] [packed [signed|unsigned]] { members }
func (p *Parser) parseStructUnion() (*cst.Node, bool) {
	kids := []*cst.Node{p.bump(), p.accept("tagged")}
	if packed := p.accept("packed"); packed != nil {
		kids = append(kids, packed)
		if p.at("signed", "unsigned") {
			kids = append(kids, p.bump())
		}
	}
	open, ok := p.expect("{")
	if !ok {
		return nil, false
	}
	body, ok := p.finishBlock("struct_body", []*cst.Node{open}, "}")
	if !ok {
		return nil, false
	}
	return mk("struct_union", append(kids, body)...), true
}

// parseEnum: enum [base] { A, B = 2, C[4] }
func (p *Parser) parseEnum() (*cst.Node, bool) {
	kids := []*cst.Node{p.bump()}
	var base []*cst.Node
	for p.atKind(token.Keyword) && token.IsDataTypeKeyword(p.peek().Text) {
		base = append(base, p.bump())
	}
	if len(base) == 0 && p.atIdent() {
		base = append(base, p.bump())
	}
	for p.at("[") {
		dim, ok := p.parseDimension("packed_dimension")
		if !ok {
			return nil, false
		}
		base = append(base, dim)
	}
	if len(base) > 0 {
		kids = append(kids, mk("enum_base_type", base...))
	}
	body, ok := p.parseDelimited("enum_body", "{", "}", p.parseEnumName)
	if !ok {
		return nil, false
	}
	return mk("enum_type", append(kids, body)...), true
}

func (p *Parser) parseEnumName() (*cst.Node, bool) {
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	kids := []*cst.Node{name}
	if p.at("[") {
		dim, ok := p.parseDimension("unpacked_dimension")
		if !ok {
			return nil, false
		}
		kids = append(kids, dim)
	}
	if eq := p.accept("="); eq != nil {
		v, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		kids = append(kids, eq, v)
	}
	return mk("enum_name_declaration", kids...), true
}
