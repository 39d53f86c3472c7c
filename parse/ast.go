// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"numpyviz.dev/npviz/value"
)

// Expr is an expression node. String returns the source form.
type Expr interface {
	String() string
	expr()
}

// Stmt is a statement node.
type Stmt interface {
	String() string
	Line() int
	stmt()
}

// Module is a parsed program.
type Module struct {
	Stmts []Stmt
}

type (
	// Name is an identifier.
	Name struct {
		ID string
	}

	// Number is a numeric literal. Value is a value.Int or value.Float;
	// Imag reports a trailing 'j'.
	Number struct {
		Text  string
		Value value.Value
		Imag  bool
	}

	// Str is a string literal, after adjacent literals are joined.
	Str struct {
		Text   string // The source form.
		Value  string
		Bytes  bool // b'...'
		Format bool // f'...'
	}

	// Const is True, False or None.
	Const struct {
		Value value.Value
	}

	// Unary is a prefix operator: - + ~ or not.
	Unary struct {
		Op string
		X  Expr
	}

	// Binary is an infix arithmetic or bitwise operator.
	Binary struct {
		Op   string
		X, Y Expr
	}

	// BoolOp is a chain of and or or.
	BoolOp struct {
		Op     string
		Values []Expr
	}

	// Compare is a chain of comparisons: X Ops[0] Ys[0] Ops[1] Ys[1]...
	Compare struct {
		X   Expr
		Ops []string
		Ys  []Expr
	}

	// IfExp is Body if Test else Else.
	IfExp struct {
		Body, Test, Else Expr
	}

	// List is a list display or a tuple.
	List struct {
		Elems []Expr
		Tuple bool
	}

	// Dict is a dict or set display. Values is nil for a set.
	Dict struct {
		Keys, Values []Expr
	}

	// Attribute is X.Name.
	Attribute struct {
		X    Expr
		Name string
	}

	// Call is Func(Args..., Keywords...).
	Call struct {
		Func     Expr
		Args     []Expr
		Keywords []Keyword
	}

	// Subscript is X[Index].
	Subscript struct {
		X     Expr
		Index Expr
	}

	// Slice is Lo:Hi:Step inside a subscript. Any part may be nil.
	Slice struct {
		Lo, Hi, Step Expr
	}
)

// Keyword is a keyword argument in a call.
type Keyword struct {
	Name  string
	Value Expr
}

func (*Name) expr()      {}
func (*Number) expr()    {}
func (*Str) expr()       {}
func (*Const) expr()     {}
func (*Unary) expr()     {}
func (*Binary) expr()    {}
func (*BoolOp) expr()    {}
func (*Compare) expr()   {}
func (*IfExp) expr()     {}
func (*List) expr()      {}
func (*Dict) expr()      {}
func (*Attribute) expr() {}
func (*Call) expr()      {}
func (*Subscript) expr() {}
func (*Slice) expr()     {}

type (
	// Assign is Targets[0] = Targets[1] = ... = Value.
	Assign struct {
		Targets []Expr
		Value   Expr
		line    int
	}

	// AugAssign is Target Op= Value. Op excludes the '='.
	AugAssign struct {
		Target Expr
		Op     string
		Value  Expr
		line   int
	}

	// ExprStmt is an expression evaluated for its effect.
	ExprStmt struct {
		X    Expr
		line int
	}

	// Import is import Module [as Alias].
	Import struct {
		Module string
		Alias  string // The bound name; the first component of Module if no alias.
		line   int
	}
)

func (*Assign) stmt()    {}
func (*AugAssign) stmt() {}
func (*ExprStmt) stmt()  {}
func (*Import) stmt()    {}

func (s *Assign) Line() int    { return s.line }
func (s *AugAssign) Line() int { return s.line }
func (s *ExprStmt) Line() int  { return s.line }
func (s *Import) Line() int    { return s.line }

// Source forms.

// precedence levels, loosest first.
const (
	precTest = iota
	precOr
	precAnd
	precNot
	precCompare
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precArith
	precTerm
	precFactor
	precPower
	precAtom
)

var binaryPrec = map[string]int{
	"|":  precBitOr,
	"^":  precBitXor,
	"&":  precBitAnd,
	"<<": precShift,
	">>": precShift,
	"+":  precArith,
	"-":  precArith,
	"*":  precTerm,
	"/":  precTerm,
	"//": precTerm,
	"%":  precTerm,
	"@":  precTerm,
	"**": precPower,
}

func prec(e Expr) int {
	switch e := e.(type) {
	case *IfExp:
		return precTest
	case *BoolOp:
		if e.Op == "or" {
			return precOr
		}
		return precAnd
	case *Unary:
		if e.Op == "not" {
			return precNot
		}
		return precFactor
	case *Compare:
		return precCompare
	case *Binary:
		return binaryPrec[e.Op]
	case *List:
		if e.Tuple && len(e.Elems) > 0 {
			return precTest - 1 // Bare tuples always need parentheses.
		}
	}
	return precAtom
}

// wrap returns the source form of e, parenthesized if it binds
// less tightly than the level.
func wrap(e Expr, level int) string {
	if prec(e) < level {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func joinExprs(list []Expr) string {
	strs := make([]string, len(list))
	for i, e := range list {
		strs[i] = wrap(e, precTest)
	}
	return strings.Join(strs, ", ")
}

func (e *Name) String() string   { return e.ID }
func (e *Number) String() string { return e.Text }
func (e *Str) String() string    { return e.Text }
func (e *Const) String() string  { return e.Value.String() }

func (e *Unary) String() string {
	if e.Op == "not" {
		return "not " + wrap(e.X, precNot)
	}
	return e.Op + wrap(e.X, precFactor)
}

func (e *Binary) String() string {
	p := binaryPrec[e.Op]
	left, right := p, p+1
	if e.Op == "**" {
		// Right associative, and the right operand may be a unary.
		left, right = p+1, precFactor
	}
	return wrap(e.X, left) + " " + e.Op + " " + wrap(e.Y, right)
}

func (e *BoolOp) String() string {
	p := prec(e)
	strs := make([]string, len(e.Values))
	for i, v := range e.Values {
		strs[i] = wrap(v, p+1)
	}
	return strings.Join(strs, " "+e.Op+" ")
}

func (e *Compare) String() string {
	var b strings.Builder
	b.WriteString(wrap(e.X, precBitOr))
	for i, op := range e.Ops {
		b.WriteString(" " + op + " ")
		b.WriteString(wrap(e.Ys[i], precBitOr))
	}
	return b.String()
}

func (e *IfExp) String() string {
	return wrap(e.Body, precOr) + " if " + wrap(e.Test, precOr) + " else " + wrap(e.Else, precTest)
}

func (e *List) String() string {
	if !e.Tuple {
		return "[" + joinExprs(e.Elems) + "]"
	}
	switch len(e.Elems) {
	case 0:
		return "()"
	case 1:
		return wrap(e.Elems[0], precTest) + ","
	}
	return joinExprs(e.Elems)
}

func (e *Dict) String() string {
	if e.Values == nil {
		return "{" + joinExprs(e.Keys) + "}"
	}
	strs := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		strs[i] = wrap(k, precTest) + ": " + wrap(e.Values[i], precTest)
	}
	return "{" + strings.Join(strs, ", ") + "}"
}

func (e *Attribute) String() string {
	return wrap(e.X, precAtom) + "." + e.Name
}

func (e *Call) String() string {
	args := make([]string, 0, len(e.Args)+len(e.Keywords))
	for _, a := range e.Args {
		args = append(args, wrap(a, precTest))
	}
	for _, kw := range e.Keywords {
		args = append(args, kw.Name+"="+wrap(kw.Value, precTest))
	}
	return wrap(e.Func, precAtom) + "(" + strings.Join(args, ", ") + ")"
}

func (e *Subscript) String() string {
	index := e.Index.String()
	if l, ok := e.Index.(*List); ok && l.Tuple && len(l.Elems) > 0 {
		index = l.String()
	}
	return wrap(e.X, precAtom) + "[" + index + "]"
}

func (e *Slice) String() string {
	part := func(x Expr) string {
		if x == nil {
			return ""
		}
		return wrap(x, precTest)
	}
	s := part(e.Lo) + ":" + part(e.Hi)
	if e.Step != nil {
		s += ":" + part(e.Step)
	}
	return s
}

func (s *Assign) String() string {
	var b strings.Builder
	for _, t := range s.Targets {
		b.WriteString(t.String())
		b.WriteString(" = ")
	}
	b.WriteString(s.Value.String())
	return b.String()
}

func (s *AugAssign) String() string {
	return s.Target.String() + " " + s.Op + "= " + s.Value.String()
}

func (s *ExprStmt) String() string { return s.X.String() }

func (s *Import) String() string {
	if s.Alias == s.Module {
		return "import " + s.Module
	}
	return "import " + s.Module + " as " + s.Alias
}
