package parser

import (
	"svfmt/internal/cst"
	"svfmt/internal/token"
)

// qualifiers may prefix declarations and subroutines.
var qualifiers = map[string]bool{
	"const": true, "var": true, "static": true, "automatic": true, "rand": true, "randc": true,
	"local": true, "protected": true, "virtual": true, "extern": true, "pure": true,
	"input": true, "output": true, "inout": true, "ref": true,
	"parameter": true, "localparam": true,
}

// parseItem parses any construct that may appear in a body: design units,
// declarations, module items and procedural statements alike.
func (p *Parser) parseItem() (*cst.Node, bool) {
	if !p.enter() {
		p.leave()
		return nil, false
	}
	defer p.leave()

	tok := p.peek()
	if p.atVerbatimBlock() {
		return nil, false
	}
	switch tok.Kind {
	case token.Keyword:
		if n, ok, handled := p.parseKeywordItem(tok.Text); handled {
			return n, ok
		}
	case token.Op:
		switch tok.Text {
		case ";":
			return mk("null_statement", p.bump()), true
		case "@", "#", "##":
			return p.parseTimingControlStatement()
		case "->", "->>":
			return p.parseEventTrigger()
		case "{":
			save := p.pos
			if n, ok := p.parseSimpleStatement(); ok {
				return n, true
			}
			p.pos = save
			return p.parseConstraintBlock()
		}
	case token.Ident, token.MacroUsage:
		return p.parseIdentLed()
	}
	return p.parseSimpleStatement()
}

// parseKeywordItem dispatches on a leading keyword. handled is false when
// the keyword starts an ordinary expression statement.
func (p *Parser) parseKeywordItem(kw string) (n *cst.Node, ok, handled bool) {
	switch kw {
	case "module", "macromodule", "interface", "program", "package":
		n, ok = p.parseDesignUnit()
	case "class":
		n, ok = p.parseClass(nil)
	case "function", "task":
		n, ok = p.parseSubroutine(nil)
	case "always", "always_comb", "always_ff", "always_latch", "initial", "final":
		n, ok = p.parseProcedural()
	case "assign":
		n, ok = p.parseContinuousAssign()
	case "force", "release", "deassign":
		n, ok = p.parseProceduralContinuous()
	case "generate":
		n, ok = p.parseGenerateRegion()
	case "genvar":
		n, ok = p.parseGenvar()
	case "typedef":
		n, ok = p.parseTypedef()
	case "import", "export":
		n, ok = p.parseImportExport()
	case "modport":
		n, ok = p.parseModport()
	case "constraint":
		n, ok = p.parseConstraint(nil)
	case "begin":
		n, ok = p.parseSeqBlock()
	case "fork":
		n, ok = p.parseParBlock()
	case "if":
		n, ok = p.parseConditional(nil)
	case "case", "casex", "casez":
		n, ok = p.parseCase(nil)
	case "unique", "unique0", "priority":
		prefix := p.bump()
		switch {
		case p.at("if"):
			n, ok = p.parseConditional(prefix)
		case p.at("case", "casex", "casez"):
			n, ok = p.parseCase(prefix)
		}
	case "for", "while", "repeat", "forever", "foreach", "do":
		n, ok = p.parseLoop()
	case "return", "break", "continue":
		n, ok = p.parseJump()
	case "disable":
		n, ok = p.parseDisable()
	case "wait":
		n, ok = p.parseWait()
	case "assert", "assume", "cover":
		n, ok = p.parseAssertion()
	case "this", "super", "void", "new":
		return nil, false, false
	default:
		switch {
		case qualifiers[kw]:
			n, ok = p.parseQualified()
		case token.IsDataTypeKeyword(kw):
			n, ok = p.parseDeclaration()
		default:
			return nil, false, false
		}
	}
	return n, ok, true
}

// parseIdentLed resolves identifier-led items: instantiations, declarations
// with user types, labelled statements, assignments and calls.
func (p *Parser) parseIdentLed() (*cst.Node, bool) {
	if p.peekN(1).Is(":") && p.peek().Kind == token.Ident {
		label := mk("statement_label", p.bump(), p.bump())
		body, ok := p.parseBodyStatement()
		if !ok {
			return nil, false
		}
		return mk("labeled_statement", label, body), true
	}

	save := p.pos
	if n, ok := p.parseInstantiationOrDecl(); ok {
		return n, true
	}
	p.pos = save
	if n, ok := p.parseSimpleStatement(); ok {
		return n, true
	}
	p.pos = save
	if p.atKind(token.MacroUsage) {
		return mk("macro_item", p.bump()), true
	}
	return nil, false
}

// parseInstantiationOrDecl: type [#(...)] name [dims] "(" is an instance,
// anything else is tried as a declaration with a user-defined type.
func (p *Parser) parseInstantiationOrDecl() (*cst.Node, bool) {
	save := p.pos
	typeName, ok := p.parseTypeName()
	if !ok {
		return nil, false
	}
	var params *cst.Node
	if p.at("#") {
		if params, ok = p.parseParameterValueAssignment(); !ok {
			return nil, false
		}
	}
	if p.atIdent() && p.looksLikeInstance() {
		return p.parseInstantiation(typeName, params)
	}
	p.pos = save
	return p.parseDeclaration()
}

// looksLikeInstance scans past "name [dims]" and reports whether "(" follows.
func (p *Parser) looksLikeInstance() bool {
	i := 1
	depth := 0
	for {
		tok := p.peekN(i)
		switch {
		case tok.Kind == token.EOF:
			return false
		case tok.Is("["):
			depth++
		case tok.Is("]"):
			depth--
		case depth == 0:
			return tok.Is("(")
		}
		i++
	}
}

func (p *Parser) parseInstantiation(typeName, params *cst.Node) (*cst.Node, bool) {
	kids := []*cst.Node{typeName, params}
	for {
		inst, ok := p.parseHierarchicalInstance()
		if !ok {
			return nil, false
		}
		kids = append(kids, inst)
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
	return mk("module_instantiation", append(kids, semi)...), true
}

func (p *Parser) parseHierarchicalInstance() (*cst.Node, bool) {
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
	conns, ok := p.parsePortConnections()
	if !ok {
		return nil, false
	}
	return mk("hierarchical_instance", append(kids, conns)...), true
}

// parsePortConnections: ( .a(x), .b(), .*, expr )
func (p *Parser) parsePortConnections() (*cst.Node, bool) {
	return p.parseList("list_of_port_connections", func() (*cst.Node, bool) {
		switch {
		case p.at(".*"):
			return mk("named_port_connection", p.bump()), true
		case p.at("."):
			return p.parseNamedArgument("named_port_connection")
		}
		return p.parseExpression()
	})
}

// parseList parses "(" [item {"," item}] ")" into a list node.
func (p *Parser) parseList(kind cst.Kind, item func() (*cst.Node, bool)) (*cst.Node, bool) {
	return p.parseDelimited(kind, "(", ")", item)
}

func (p *Parser) parseDelimited(kind cst.Kind, opener, closer string, item func() (*cst.Node, bool)) (*cst.Node, bool) {
	open, ok := p.expect(opener)
	if !ok {
		return nil, false
	}
	kids := []*cst.Node{open}
	for !p.at(closer) {
		if p.at(",") {
			// пустой элемент: f(a,,b)
			kids = append(kids, p.bump())
			continue
		}
		it, ok := item()
		if !ok {
			return nil, false
		}
		kids = append(kids, it)
		if c := p.accept(","); c != nil {
			kids = append(kids, c)
			continue
		}
		break
	}
	end, ok := p.expect(closer)
	if !ok {
		return nil, false
	}
	return mk(kind, append(kids, end)...), true
}

// parseNamedArgument: .name(expr) | .name() | .name
func (p *Parser) parseNamedArgument(kind cst.Kind) (*cst.Node, bool) {
	dot, ok := p.expect(".")
	if !ok {
		return nil, false
	}
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	if !p.at("(") {
		return mk(kind, dot, name), true
	}
	open := p.bump()
	var value *cst.Node
	if !p.at(")") {
		if value, ok = p.parseExpressionOrType(); !ok {
			return nil, false
		}
	}
	closeParen, ok := p.expect(")")
	if !ok {
		return nil, false
	}
	return mk(kind, dot, name, open, value, closeParen), true
}

// parseParameterValueAssignment: #(args) | #literal
func (p *Parser) parseParameterValueAssignment() (*cst.Node, bool) {
	hash, ok := p.expect("#")
	if !ok {
		return nil, false
	}
	if !p.at("(") {
		if p.atKind(token.Number) || p.atIdent() {
			return mk("parameter_value_assignment", hash, p.bump()), true
		}
		return nil, false
	}
	list, ok := p.parseList("list_of_parameter_assignments", func() (*cst.Node, bool) {
		if p.at(".") {
			return p.parseNamedArgument("named_parameter_assignment")
		}
		return p.parseExpressionOrType()
	})
	if !ok {
		return nil, false
	}
	// "#" и скобки — в одном узле, чтобы список переносился целиком
	return mk("parameter_value_assignment", append([]*cst.Node{hash}, list.Children...)...), true
}

// parseDesignUnit: module/interface/program/package declarations.
func (p *Parser) parseDesignUnit() (*cst.Node, bool) {
	kw := p.peek().Text
	var declKind, headerKind cst.Kind
	var closer string
	switch kw {
	case "module", "macromodule":
		declKind, headerKind, closer = "module_declaration", "module_header", "endmodule"
	case "interface":
		declKind, headerKind, closer = "interface_declaration", "interface_header", "endinterface"
	case "program":
		declKind, headerKind, closer = "program_declaration", "program_header", "endprogram"
	default:
		declKind, headerKind, closer = "package_declaration", "package_header", "endpackage"
	}

	kids := []*cst.Node{p.bump(), p.accept("automatic"), p.accept("static")}
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	kids = append(kids, name)
	for p.at("import") {
		imp, ok := p.parseImportExport()
		if !ok {
			return nil, false
		}
		kids = append(kids, imp)
	}
	if kw != "package" {
		if p.at("#") {
			params, ok := p.parseParameterPortList()
			if !ok {
				return nil, false
			}
			kids = append(kids, params)
		}
		if p.at("(") {
			ports, ok := p.parsePortList("list_of_ports")
			if !ok {
				return nil, false
			}
			kids = append(kids, ports)
		}
	}
	semi, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	header := mk(headerKind, append(kids, semi)...)
	return p.finishBlock(declKind, []*cst.Node{header}, closer)
}

// finishBlock parses body items up to closer and an optional end label.
func (p *Parser) finishBlock(kind cst.Kind, head []*cst.Node, closers ...string) (*cst.Node, bool) {
	kids := head
	for !p.atEOF() && !p.atBlockCloser() {
		kids = append(kids, p.parseItemOrError())
	}
	if !p.at(closers...) {
		return nil, false
	}
	kids = append(kids, p.bump())
	if label := p.parseEndLabel(); label != nil {
		kids = append(kids, label)
	}
	return mk(kind, kids...), true
}

func (p *Parser) parseEndLabel() *cst.Node {
	if p.at(":") && p.peekN(1).IsIdent() {
		return mk("end_label", p.bump(), p.bump())
	}
	return nil
}

func (p *Parser) parseBlockLabel() *cst.Node {
	if p.at(":") && p.peekN(1).IsIdent() {
		return mk("block_label", p.bump(), p.bump())
	}
	return nil
}

// parseClass: [virtual] class [lifetime] name [#(...)] [extends T[(args)]] [implements I, J] ;
func (p *Parser) parseClass(prefix []*cst.Node) (*cst.Node, bool) {
	kids := append(prefix, p.accept("virtual"))
	kw, ok := p.expect("class")
	if !ok {
		return nil, false
	}
	kids = append(kids, kw, p.accept("automatic"), p.accept("static"))
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	kids = append(kids, name)
	if p.at("#") {
		params, ok := p.parseParameterPortList()
		if !ok {
			return nil, false
		}
		kids = append(kids, params)
	}
	if ext := p.accept("extends"); ext != nil {
		base, ok := p.parseClassType()
		if !ok {
			return nil, false
		}
		kids = append(kids, ext, base)
		if p.at("(") {
			args, ok := p.parseArguments()
			if !ok {
				return nil, false
			}
			kids = append(kids, args)
		}
	}
	if impl := p.accept("implements"); impl != nil {
		kids = append(kids, impl)
		for {
			iface, ok := p.parseClassType()
			if !ok {
				return nil, false
			}
			kids = append(kids, iface)
			c := p.accept(",")
			if c == nil {
				break
			}
			kids = append(kids, c)
		}
	}
	semi, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	header := mk("class_header", append(kids, semi)...)
	return p.finishBlock("class_declaration", []*cst.Node{header}, "endclass")
}

// parseClassType: name[::name] [#(...)]
func (p *Parser) parseClassType() (*cst.Node, bool) {
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

func (p *Parser) parseGenerateRegion() (*cst.Node, bool) {
	return p.finishBlock("generate_region", []*cst.Node{p.bump()}, "endgenerate")
}

func (p *Parser) parseGenvar() (*cst.Node, bool) {
	kids := []*cst.Node{p.bump()}
	for {
		name, ok := p.expectIdent()
		if !ok {
			return nil, false
		}
		kids = append(kids, name)
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
	return mk("genvar_declaration", append(kids, semi)...), true
}

// parseProcedural: always*/initial/final statement
func (p *Parser) parseProcedural() (*cst.Node, bool) {
	kw := p.bump()
	kind := cst.Kind("always_construct")
	switch kw.Kind {
	case "initial":
		kind = "initial_construct"
	case "final":
		kind = "final_construct"
	}
	body, ok := p.parseBodyStatement()
	if !ok {
		return nil, false
	}
	return mk(kind, kw, body), true
}

// parseContinuousAssign: assign [#delay] lvalue = expr {, lvalue = expr} ;
func (p *Parser) parseContinuousAssign() (*cst.Node, bool) {
	kids := []*cst.Node{p.bump()}
	if p.at("#") {
		d, ok := p.parseDelayControl()
		if !ok {
			return nil, false
		}
		kids = append(kids, d)
	}
	for {
		lhs, ok := p.parsePostfix()
		if !ok {
			return nil, false
		}
		eq, ok := p.expect("=")
		if !ok {
			return nil, false
		}
		rhs, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		kids = append(kids, mk("net_assignment", lhs, eq, rhs))
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
	return mk("continuous_assign", append(kids, semi)...), true
}

// parseProceduralContinuous: force a = b; release a; deassign a;
func (p *Parser) parseProceduralContinuous() (*cst.Node, bool) {
	kw := p.bump()
	lhs, ok := p.parsePostfix()
	if !ok {
		return nil, false
	}
	kids := []*cst.Node{kw, lhs}
	if kw.Kind == "force" {
		eq, ok := p.expect("=")
		if !ok {
			return nil, false
		}
		rhs, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		kids = append(kids, eq, rhs)
	}
	semi, ok := p.expect(";")
	if !ok {
		return nil, false
	}
	return mk("procedural_continuous_assignment", append(kids, semi)...), true
}

// parseImportExport: import a::*, b::c; | import "DPI-C" ... function proto; | export ...
func (p *Parser) parseImportExport() (*cst.Node, bool) {
	kw := p.bump()
	if p.atKind(token.String) {
		return p.parseDPI(kw)
	}
	kids := []*cst.Node{kw}
	for {
		pkg, ok := p.expectIdent()
		if !ok {
			if !p.at("*") {
				return nil, false
			}
			pkg = p.bump() // export *::*
		}
		sep, ok := p.expect("::")
		if !ok {
			return nil, false
		}
		var item *cst.Node
		switch {
		case p.at("*"), p.atIdent():
			item = p.bump()
		default:
			return nil, false
		}
		kids = append(kids, mk("package_import_item", pkg, sep, item))
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
	kind := cst.Kind("package_import_declaration")
	if kw.Kind == "export" {
		kind = "package_export_declaration"
	}
	return mk(kind, append(kids, semi)...), true
}

func (p *Parser) parseDPI(kw *cst.Node) (*cst.Node, bool) {
	kids := []*cst.Node{kw, p.bump(), p.accept("context"), p.accept("pure")}
	if p.atIdent() && p.peekN(1).Is("=") {
		kids = append(kids, p.bump(), p.bump())
	}
	if !p.at("function", "task") {
		return nil, false
	}
	proto, ok := p.parseSubroutineHeader(nil, "function_prototype")
	if !ok {
		return nil, false
	}
	return mk("dpi_import_export", append(kids, proto)...), true
}

// parseModport: modport name(input a, output b), name2(...);
func (p *Parser) parseModport() (*cst.Node, bool) {
	kids := []*cst.Node{p.bump()}
	for {
		name, ok := p.expectIdent()
		if !ok {
			return nil, false
		}
		ports, ok := p.parseList("modport_port_list", p.parseModportPort)
		if !ok {
			return nil, false
		}
		kids = append(kids, mk("modport_item", name, ports))
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
	return mk("modport_declaration", append(kids, semi)...), true
}

func (p *Parser) parseModportPort() (*cst.Node, bool) {
	var kids []*cst.Node
	for p.atKind(token.Keyword) {
		kids = append(kids, p.bump())
	}
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	return mk("modport_port", append(kids, name)...), true
}

// parseConstraint: [static] constraint name { ... }
func (p *Parser) parseConstraint(prefix []*cst.Node) (*cst.Node, bool) {
	kw, ok := p.expect("constraint")
	if !ok {
		return nil, false
	}
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	kids := append(prefix, kw, name)
	if semi := p.accept(";"); semi != nil {
		return mk("constraint_prototype", append(kids, semi)...), true
	}
	block, ok := p.parseConstraintBlock()
	if !ok {
		return nil, false
	}
	return mk("constraint_declaration", append(kids, block)...), true
}

func (p *Parser) parseConstraintBlock() (*cst.Node, bool) {
	open, ok := p.expect("{")
	if !ok {
		return nil, false
	}
	return p.finishBlock("constraint_block", []*cst.Node{open}, "}")
}

// parseQualified handles qualifier-prefixed subroutines, classes,
// constraints and declarations.
func (p *Parser) parseQualified() (*cst.Node, bool) {
	save := p.pos
	var prefix []*cst.Node
	for p.atKind(token.Keyword) && qualifiers[p.peek().Text] {
		if p.at("virtual") && p.peekN(1).Is("class") {
			break
		}
		prefix = append(prefix, p.bump())
	}
	switch {
	case p.at("function", "task"):
		return p.parseSubroutine(prefix)
	case p.at("class", "virtual"):
		return p.parseClass(prefix)
	case p.at("constraint"):
		return p.parseConstraint(prefix)
	}
	p.pos = save
	return p.parseDeclaration()
}
