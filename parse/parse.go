// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse builds the syntax tree of a program in the Python subset
// accepted by npviz. Syntax errors panic with a value.Error whose text
// begins with file:line.
package parse // import "numpyviz.dev/npviz/parse"

import (
	"fmt"
	"strconv"
	"strings"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/scan"
	"numpyviz.dev/npviz/value"
)

// Parser stores the state for the parser.
type Parser struct {
	conf     *config.Config
	scanner  *scan.Scanner
	tokens   []scan.Token // The current logical line.
	fileName string
	lineNum  int
}

// NewParser returns a new parser that will read from the scanner.
func NewParser(conf *config.Config, fileName string, scanner *scan.Scanner) *Parser {
	return &Parser{
		conf:     conf,
		scanner:  scanner,
		fileName: fileName,
	}
}

// Println prints the args and writes them to the configured output writer.
func (p *Parser) Println(args ...interface{}) {
	fmt.Fprintln(p.conf.Output(), args...)
}

func (p *Parser) next() scan.Token {
	tok := p.peek()
	if tok.Type != scan.EOF {
		p.tokens = p.tokens[1:]
		p.lineNum = tok.Line
	}
	return tok
}

func (p *Parser) peek() scan.Token {
	if len(p.tokens) == 0 {
		return scan.Token{Type: scan.EOF, Line: p.lineNum}
	}
	return p.tokens[0]
}

// peekIs reports whether the next token has the type and text.
func (p *Parser) peekIs(typ scan.Type, text string) bool {
	tok := p.peek()
	return tok.Type == typ && tok.Text == text
}

// keyword reports whether the next token is the keyword, and consumes it if so.
func (p *Parser) keyword(word string) bool {
	if p.peekIs(scan.Identifier, word) {
		p.next()
		return true
	}
	return false
}

// operator reports whether the next token is the operator, and consumes it if so.
func (p *Parser) operator(op string) bool {
	if p.peekIs(scan.Operator, op) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(typ scan.Type, what string) scan.Token {
	tok := p.next()
	if tok.Type != typ {
		p.errorf("expected %s, found %s", what, describe(tok))
	}
	return tok
}

func describe(tok scan.Token) string {
	switch tok.Type {
	case scan.EOF, scan.Newline:
		return "end of statement"
	}
	return strconv.Quote(tok.Text)
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.tokens = nil
	value.Errorf("%s:%d: %s", p.fileName, p.lineNum, fmt.Sprintf(format, args...))
}

// Module parses the whole input.
func (p *Parser) Module() *Module {
	m := &Module{}
	for {
		stmts, ok := p.Line()
		if !ok {
			return m
		}
		m.Stmts = append(m.Stmts, stmts...)
	}
}

// Line reads a logical line of input and returns the statements it holds.
// The boolean is false at EOF.
//
// Line
//
//	statement [';' statement]... [';'] '\n'
func (p *Parser) Line() ([]Stmt, bool) {
	if !p.readTokensToNewline() {
		return nil, false
	}
	var stmts []Stmt
	for p.peek().Type != scan.EOF {
		if s := p.statement(); s != nil {
			stmts = append(stmts, s)
		}
		switch tok := p.next(); tok.Type {
		case scan.EOF:
		case scan.Semicolon:
		default:
			p.errorf("invalid syntax at %s", describe(tok))
		}
	}
	if p.conf.Debug("parse") {
		for _, s := range stmts {
			p.Println(tree(s))
		}
	}
	return stmts, true
}

// readTokensToNewline reads the next logical line into p.tokens.
// The boolean is false at EOF.
func (p *Parser) readTokensToNewline() bool {
	p.tokens = p.tokens[:0]
	for {
		tok := p.scanner.Next()
		switch tok.Type {
		case scan.Error:
			p.lineNum = tok.Line
			p.errorf("%s", tok.Text)
		case scan.Newline:
			if len(p.tokens) > 0 {
				return true
			}
			continue
		case scan.EOF:
			return len(p.tokens) > 0
		}
		p.tokens = append(p.tokens, tok)
		p.lineNum = tok.Line
	}
}

// unsupported lists the statement keywords outside the accepted subset.
var unsupported = map[string]bool{
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true,
	"nonlocal": true, "raise": true, "return": true, "try": true,
	"while": true, "with": true, "yield": true,
}

// reserved lists the words that may not be used as names.
var reserved = map[string]bool{
	"and": true, "as": true, "import": true, "in": true, "is": true,
	"lambda": true, "not": true, "or": true, "pass": true,
}

// statement:
//
//	'import' dotted ['as' name] (',' ...)
//	'pass'
//	exprList ('=' exprList)*
//	target augop exprList
func (p *Parser) statement() Stmt {
	tok := p.peek()
	line := tok.Line
	if tok.Type == scan.Identifier {
		switch {
		case tok.Text == "import":
			p.next()
			return p.importStmt(line)
		case tok.Text == "pass":
			p.next()
			return nil
		case unsupported[tok.Text]:
			p.errorf("unsupported statement: %s", tok.Text)
		}
	}
	x := p.exprList()
	switch tok := p.peek(); tok.Type {
	case scan.Assign:
		targets := []Expr{x}
		for p.peek().Type == scan.Assign {
			p.next()
			targets = append(targets, p.exprList())
		}
		val := targets[len(targets)-1]
		targets = targets[:len(targets)-1]
		for _, t := range targets {
			p.checkTarget(t)
		}
		return &Assign{Targets: targets, Value: val, line: line}
	case scan.AugAssign:
		p.next()
		switch x.(type) {
		case *Name, *Attribute, *Subscript:
		default:
			p.errorf("'%s' is an illegal expression for augmented assignment", x)
		}
		return &AugAssign{Target: x, Op: strings.TrimSuffix(tok.Text, "="), Value: p.exprList(), line: line}
	case scan.Colon:
		p.errorf("annotated assignments are not supported")
	}
	return &ExprStmt{X: x, line: line}
}

// checkTarget verifies that e may appear on the left of an assignment.
func (p *Parser) checkTarget(e Expr) {
	switch e := e.(type) {
	case *Name, *Attribute, *Subscript:
		return
	case *List:
		for _, x := range e.Elems {
			p.checkTarget(x)
		}
		return
	}
	p.errorf("cannot assign to %s", e)
}

func (p *Parser) importStmt(line int) Stmt {
	var mod []string
	for {
		tok := p.expect(scan.Identifier, "module name")
		mod = append(mod, tok.Text)
		if p.peek().Type != scan.Dot {
			break
		}
		p.next()
	}
	s := &Import{Module: strings.Join(mod, "."), Alias: mod[0], line: line}
	if p.keyword("as") {
		s.Alias = p.name()
	}
	if p.peek().Type == scan.Comma {
		p.errorf("only one module may be imported per statement")
	}
	return s
}

// name parses an identifier that is not a keyword.
func (p *Parser) name() string {
	tok := p.expect(scan.Identifier, "name")
	if reserved[tok.Text] || unsupported[tok.Text] {
		p.errorf("invalid syntax at %q", tok.Text)
	}
	return tok.Text
}

// atExprEnd reports whether the next token cannot begin an expression.
func (p *Parser) atExprEnd() bool {
	switch p.peek().Type {
	case scan.EOF, scan.Semicolon, scan.Assign, scan.AugAssign,
		scan.RightParen, scan.RightBrack, scan.RightBrace, scan.Colon:
		return true
	}
	return false
}

// exprList:
//
//	test [',' test]... [',']
//
// With a comma, the result is a tuple.
func (p *Parser) exprList() Expr {
	x := p.test()
	if p.peek().Type != scan.Comma {
		return x
	}
	elems := []Expr{x}
	for p.peek().Type == scan.Comma {
		p.next()
		if p.atExprEnd() {
			break
		}
		elems = append(elems, p.test())
	}
	return &List{Elems: elems, Tuple: true}
}

// test:
//
//	orTest ['if' orTest 'else' test]
func (p *Parser) test() Expr {
	if p.peekIs(scan.Identifier, "lambda") {
		p.errorf("lambda expressions are not supported")
	}
	x := p.orTest()
	if p.keyword("if") {
		cond := p.orTest()
		if !p.keyword("else") {
			p.errorf("expected 'else' after 'if' expression")
		}
		return &IfExp{Body: x, Test: cond, Else: p.test()}
	}
	return x
}

func (p *Parser) orTest() Expr {
	x := p.andTest()
	if !p.peekIs(scan.Identifier, "or") {
		return x
	}
	values := []Expr{x}
	for p.keyword("or") {
		values = append(values, p.andTest())
	}
	return &BoolOp{Op: "or", Values: values}
}

func (p *Parser) andTest() Expr {
	x := p.notTest()
	if !p.peekIs(scan.Identifier, "and") {
		return x
	}
	values := []Expr{x}
	for p.keyword("and") {
		values = append(values, p.notTest())
	}
	return &BoolOp{Op: "and", Values: values}
}

func (p *Parser) notTest() Expr {
	if p.keyword("not") {
		return &Unary{Op: "not", X: p.notTest()}
	}
	return p.comparison()
}

// compareOp consumes and returns a comparison operator, or returns "".
func (p *Parser) compareOp() string {
	tok := p.peek()
	switch {
	case tok.Type == scan.Operator:
		switch tok.Text {
		case "<", ">", "==", ">=", "<=", "!=":
			p.next()
			return tok.Text
		}
	case tok.Type == scan.Identifier && tok.Text == "in":
		p.next()
		return "in"
	case tok.Type == scan.Identifier && tok.Text == "is":
		p.next()
		if p.keyword("not") {
			return "is not"
		}
		return "is"
	case tok.Type == scan.Identifier && tok.Text == "not":
		if len(p.tokens) > 1 && p.tokens[1].Type == scan.Identifier && p.tokens[1].Text == "in" {
			p.next()
			p.next()
			return "not in"
		}
	}
	return ""
}

func (p *Parser) comparison() Expr {
	x := p.binary(precBitOr)
	op := p.compareOp()
	if op == "" {
		return x
	}
	c := &Compare{X: x}
	for ; op != ""; op = p.compareOp() {
		c.Ops = append(c.Ops, op)
		c.Ys = append(c.Ys, p.binary(precBitOr))
	}
	return c
}

// binary parses left-associative binary operators at the precedence
// level and tighter, down to the unary operators.
func (p *Parser) binary(level int) Expr {
	if level == precFactor {
		return p.factor()
	}
	x := p.binary(level + 1)
	for {
		tok := p.peek()
		if tok.Type != scan.Operator || tok.Text == "**" {
			return x
		}
		if lev, ok := binaryPrec[tok.Text]; !ok || lev != level {
			return x
		}
		p.next()
		x = &Binary{Op: tok.Text, X: x, Y: p.binary(level + 1)}
	}
}

// factor:
//
//	('+' | '-' | '~') factor
//	power
func (p *Parser) factor() Expr {
	tok := p.peek()
	if tok.Type == scan.Operator {
		switch tok.Text {
		case "+", "-", "~":
			p.next()
			return &Unary{Op: tok.Text, X: p.factor()}
		}
	}
	return p.power()
}

// power:
//
//	primary ['**' factor]
func (p *Parser) power() Expr {
	x := p.primary()
	if p.operator("**") {
		return &Binary{Op: "**", X: x, Y: p.factor()}
	}
	return x
}

// primary:
//
//	atom trailer...
//
// trailer:
//
//	'.' name
//	'(' arguments ')'
//	'[' subscripts ']'
func (p *Parser) primary() Expr {
	x := p.atom()
	for {
		switch p.peek().Type {
		case scan.Dot:
			p.next()
			x = &Attribute{X: x, Name: p.name()}
		case scan.LeftParen:
			p.next()
			x = p.call(x)
		case scan.LeftBrack:
			p.next()
			x = &Subscript{X: x, Index: p.subscripts()}
			p.expect(scan.RightBrack, "']'")
		default:
			return x
		}
	}
}

// call parses the arguments of a call. The '(' has been consumed.
func (p *Parser) call(fn Expr) Expr {
	c := &Call{Func: fn}
	seen := map[string]bool{}
	for p.peek().Type != scan.RightParen {
		tok := p.peek()
		switch {
		case tok.Type == scan.Operator && (tok.Text == "*" || tok.Text == "**"):
			p.errorf("starred arguments are not supported")
		case tok.Type == scan.Identifier && len(p.tokens) > 1 && p.tokens[1].Type == scan.Assign:
			name := p.name()
			p.next() // '='
			if seen[name] {
				p.errorf("keyword argument repeated: %s", name)
			}
			seen[name] = true
			c.Keywords = append(c.Keywords, Keyword{Name: name, Value: p.test()})
		default:
			if len(c.Keywords) > 0 {
				p.errorf("positional argument follows keyword argument")
			}
			c.Args = append(c.Args, p.test())
		}
		if p.peek().Type != scan.Comma {
			break
		}
		p.next()
	}
	p.expect(scan.RightParen, "')'")
	return c
}

// subscripts parses the index of a subscript. Several indexes form a tuple.
func (p *Parser) subscripts() Expr {
	x := p.subscript()
	if p.peek().Type != scan.Comma {
		return x
	}
	elems := []Expr{x}
	for p.peek().Type == scan.Comma {
		p.next()
		if p.peek().Type == scan.RightBrack {
			break
		}
		elems = append(elems, p.subscript())
	}
	return &List{Elems: elems, Tuple: true}
}

// subscript:
//
//	test
//	[test] ':' [test] [':' [test]]
func (p *Parser) subscript() Expr {
	var lo Expr
	if p.peek().Type != scan.Colon {
		lo = p.test()
		if p.peek().Type != scan.Colon {
			return lo
		}
	}
	p.next() // ':'
	s := &Slice{Lo: lo}
	if !p.sliceEnd() {
		s.Hi = p.test()
	}
	if p.peek().Type == scan.Colon {
		p.next()
		if !p.sliceEnd() {
			s.Step = p.test()
		}
	}
	return s
}

func (p *Parser) sliceEnd() bool {
	switch p.peek().Type {
	case scan.Colon, scan.Comma, scan.RightBrack:
		return true
	}
	return false
}

// atom:
//
//	name
//	number
//	string...
//	'True' | 'False' | 'None'
//	'(' [exprList] ')'
//	'[' [exprList] ']'
//	'{' [dict or set items] '}'
func (p *Parser) atom() Expr {
	tok := p.peek()
	switch tok.Type {
	case scan.Identifier:
		switch tok.Text {
		case "True":
			p.next()
			return &Const{Value: value.Bool(true)}
		case "False":
			p.next()
			return &Const{Value: value.Bool(false)}
		case "None":
			p.next()
			return &Const{Value: value.None{}}
		}
		return &Name{ID: p.name()}
	case scan.Number:
		p.next()
		return p.number(tok.Text)
	case scan.String:
		return p.stringLit()
	case scan.LeftParen:
		p.next()
		if p.peek().Type == scan.RightParen {
			p.next()
			return &List{Tuple: true}
		}
		x := p.exprList()
		p.expect(scan.RightParen, "')'")
		return x
	case scan.LeftBrack:
		p.next()
		l := &List{}
		for p.peek().Type != scan.RightBrack {
			l.Elems = append(l.Elems, p.test())
			if p.peek().Type != scan.Comma {
				break
			}
			p.next()
		}
		p.expect(scan.RightBrack, "']'")
		return l
	case scan.LeftBrace:
		p.next()
		return p.dict()
	}
	p.errorf("invalid syntax at %s", describe(tok))
	return nil
}

// dict parses a dict or set display. The '{' has been consumed.
func (p *Parser) dict() Expr {
	d := &Dict{}
	isDict := false
	for i := 0; p.peek().Type != scan.RightBrace; i++ {
		key := p.test()
		d.Keys = append(d.Keys, key)
		if i == 0 && p.peek().Type == scan.Colon {
			isDict = true
		}
		if isDict {
			p.expect(scan.Colon, "':'")
			d.Values = append(d.Values, p.test())
		}
		if p.peek().Type != scan.Comma {
			break
		}
		p.next()
	}
	p.expect(scan.RightBrace, "'}'")
	if len(d.Keys) == 0 {
		// {} is an empty dict.
		d.Values = []Expr{}
	}
	return d
}

// number parses a numeric literal.
func (p *Parser) number(text string) Expr {
	n := &Number{Text: text}
	digits := text
	if last := text[len(text)-1]; last == 'j' || last == 'J' {
		n.Imag = true
		digits = text[:len(text)-1]
	}
	if !n.Imag && isIntLiteral(digits) {
		if len(digits) > 1 && digits[0] == '0' && isDecimal(digits) && strings.Trim(digits, "0_") != "" {
			p.errorf("leading zeros in decimal integer literals are not permitted")
		}
		i, err := strconv.ParseInt(digits, 0, 64)
		if err != nil {
			p.errorf("invalid integer literal %s", text)
		}
		n.Value = value.Int(i)
		return n
	}
	if strings.HasPrefix(digits, "_") || strings.HasSuffix(digits, "_") || strings.Contains(digits, "__") {
		p.errorf("invalid decimal literal %s", text)
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(digits, "_", ""), 64)
	if err != nil {
		p.errorf("invalid decimal literal %s", text)
	}
	n.Value = value.Float(f)
	return n
}

func isIntLiteral(s string) bool {
	if len(s) > 1 && s[0] == '0' && strings.ContainsAny(s[1:2], "xXoObB") {
		return true
	}
	return !strings.ContainsAny(s, ".eE")
}

func isDecimal(s string) bool {
	return strings.Trim(s, "0123456789_") == ""
}

// stringLit parses one or more adjacent string literals, which are joined.
func (p *Parser) stringLit() Expr {
	s := &Str{}
	var text, val []string
	for i := 0; p.peek().Type == scan.String; i++ {
		tok := p.next()
		v, bytes, format := p.unquote(tok.Text)
		if i > 0 && bytes != s.Bytes {
			p.errorf("cannot mix bytes and nonbytes literals")
		}
		s.Bytes = bytes
		s.Format = s.Format || format
		text = append(text, tok.Text)
		val = append(val, v)
	}
	s.Text = strings.Join(text, " ")
	s.Value = strings.Join(val, "")
	return s
}

// unquote decodes a string literal, reporting whether it had a bytes
// or format prefix.
func (p *Parser) unquote(lit string) (s string, bytes, format bool) {
	q := strings.IndexAny(lit, `'"`)
	prefix := strings.ToLower(lit[:q])
	raw := strings.ContainsRune(prefix, 'r')
	bytes = strings.ContainsRune(prefix, 'b')
	format = strings.ContainsRune(prefix, 'f')
	body := lit[q:]
	n := 1
	if len(body) >= 6 && body[1] == body[0] && body[2] == body[0] {
		n = 3
	}
	body = body[n : len(body)-n]
	if raw {
		return body, bytes, format
	}
	return unescape(body), bytes, format
}

// unescape interprets the backslash escapes of a Python string.
// Unknown escapes are kept as written.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch c = s[i]; c {
		case '\n':
			// Line continuation inside the string.
		case '\\', '\'', '"':
			b.WriteByte(c)
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
			if i+1+width > len(s) {
				b.WriteByte('\\')
				b.WriteByte(c)
				continue
			}
			r, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil {
				b.WriteByte('\\')
				b.WriteByte(c)
				continue
			}
			b.WriteRune(rune(r))
			i += width
		default:
			b.WriteByte('\\')
			b.WriteByte(c)
		}
	}
	return b.String()
}
