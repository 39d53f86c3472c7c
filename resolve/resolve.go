// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve turns a parsed program into the ordered list of
// operation nodes it computes.
//
// Nodes are emitted in post-order: the operands of a call or operator
// are resolved, emitting their own nodes, before the node of the call
// is appended. Every reference a node holds therefore points at a node
// emitted earlier, and a single forward pass evaluates the list.
//
// Resolution never fails. A syntax shape the resolver does not support
// becomes a value.Unresolved, which a later stage rejects if it is
// handed one.
package resolve // import "numpyviz.dev/npviz/resolve"

import (
	"fmt"
	"math"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/graph"
	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/parse"
	"numpyviz.dev/npviz/value"
)

var binaryOps = map[string]ops.Op{
	"+":  ops.Add,
	"-":  ops.Subtract,
	"*":  ops.Multiply,
	"/":  ops.Divide,
	"//": ops.FloorDivide,
	"%":  ops.Mod,
	"**": ops.Power,
	"@":  ops.Matmul,
}

// constants are the attributes of the numeric library that resolve
// to literal values.
var constants = map[string]value.Value{
	"pi":      value.Float(math.Pi),
	"e":       value.Float(math.E),
	"inf":     value.Float(math.Inf(1)),
	"nan":     value.Float(math.NaN()),
	"newaxis": value.None{},
}

// dtypes maps the spellings of a dtype argument to an array kind.
var dtypes = map[string]value.Kind{
	"bool":    value.BoolKind,
	"bool_":   value.BoolKind,
	"int":     value.IntKind,
	"int32":   value.IntKind,
	"int64":   value.IntKind,
	"float":   value.FloatKind,
	"float32": value.FloatKind,
	"float64": value.FloatKind,
}

// resolver holds the state of one resolution pass.
type resolver struct {
	conf    *config.Config
	reg     *ops.Registry
	aliases map[string]bool
	names   map[string]value.Value
	nodes   []*graph.Node
}

// Resolve returns the operation nodes of the program, in evaluation
// order. Literal arrays are not in the list, although the nodes that
// use them refer to them.
func Resolve(conf *config.Config, reg *ops.Registry, mod *parse.Module) []*graph.Node {
	r := &resolver{
		conf:    conf,
		reg:     reg,
		aliases: make(map[string]bool),
		names:   make(map[string]value.Value),
	}
	for _, alias := range conf.Aliases() {
		r.aliases[alias] = true
	}
	for _, s := range mod.Stmts {
		r.statement(s)
	}
	return r.nodes
}

func (r *resolver) statement(s parse.Stmt) {
	switch s := s.(type) {
	case *parse.Assign:
		v := r.expr(s.Value)
		for _, target := range s.Targets {
			if name, ok := target.(*parse.Name); ok {
				r.names[name.ID] = v
			}
		}
	case *parse.AugAssign:
		v := r.binary(s.Op, s.Target, s.Value)
		if name, ok := s.Target.(*parse.Name); ok {
			r.names[name.ID] = v
		}
	case *parse.ExprStmt:
		r.expr(s.X)
	case *parse.Import:
		if s.Module == "numpy" {
			r.aliases[s.Alias] = true
		}
	}
}

// emit appends an operation node to the output and returns it.
func (r *resolver) emit(op ops.Op, operands []value.Value, kwargs []value.Kwarg) *graph.Node {
	n := graph.NewOperation(op, operands, kwargs)
	r.nodes = append(r.nodes, n)
	if r.conf.Debug("resolve") {
		fmt.Fprintf(r.conf.Output(), "resolve: %d: %s %s %s\n", len(r.nodes)-1, op, value.ListRepr(operands), value.KwargsRepr(kwargs))
	}
	return n
}

func unresolved(kind string, e parse.Expr) value.Unresolved {
	return value.Unresolved{Kind: kind, Text: e.String()}
}

func (r *resolver) expr(e parse.Expr) value.Value {
	switch e := e.(type) {
	case *parse.Name:
		if v, ok := r.names[e.ID]; ok {
			return v
		}
		return value.Name(e.ID)
	case *parse.Number:
		if e.Imag {
			return unresolved("complex", e)
		}
		return e.Value
	case *parse.Str:
		if e.Format {
			return unresolved("f-string", e)
		}
		return value.String(e.Value)
	case *parse.Const:
		return e.Value
	case *parse.Unary:
		return r.unary(e)
	case *parse.Binary:
		if _, ok := binaryOps[e.Op]; !ok {
			return unresolved("binary operator "+e.Op, e)
		}
		return r.binary(e.Op, e.X, e.Y)
	case *parse.List:
		return r.list(e.Elems, e.Tuple)
	case *parse.Attribute:
		return r.attribute(e)
	case *parse.Call:
		return r.call(e)
	case *parse.BoolOp:
		return unresolved("boolean operator", e)
	case *parse.Compare:
		return unresolved("comparison", e)
	case *parse.IfExp:
		return unresolved("conditional", e)
	case *parse.Dict:
		return unresolved("dict", e)
	case *parse.Subscript:
		return unresolved("subscript", e)
	case *parse.Slice:
		return unresolved("slice", e)
	}
	return unresolved("expression", e)
}

func (r *resolver) list(elems []parse.Expr, tuple bool) value.List {
	l := value.List{Elems: make([]value.Value, len(elems)), Tuple: tuple}
	for i, e := range elems {
		l.Elems[i] = r.expr(e)
	}
	return l
}

// unary folds a sign applied to a number and defers any other.
func (r *resolver) unary(e *parse.Unary) value.Value {
	var op ops.Op
	switch e.Op {
	case "-":
		op = ops.Negative
	case "+":
		op = ops.Positive
	default:
		return unresolved("unary operator "+e.Op, e)
	}
	x := r.expr(e.X)
	switch v := x.(type) {
	case value.Int:
		if op == ops.Negative {
			return -v
		}
		return v
	case value.Float:
		if op == ops.Negative {
			return -v
		}
		return v
	case value.Bool:
		i := value.Int(0)
		if v {
			i = 1
		}
		if op == ops.Negative {
			return -i
		}
		return i
	}
	return r.emit(op, []value.Value{x}, nil)
}

// binary resolves x op y. Both operands are resolved, left first,
// before the node is emitted.
func (r *resolver) binary(op string, x, y parse.Expr) value.Value {
	kind, ok := binaryOps[op]
	if !ok {
		return value.Unresolved{Kind: "binary operator " + op, Text: x.String() + " " + op + " " + y.String()}
	}
	vx := r.expr(x)
	vy := r.expr(y)
	return r.emit(kind, []value.Value{vx, vy}, nil)
}

// isAlias reports whether e names the numeric library.
func (r *resolver) isAlias(e parse.Expr) bool {
	name, ok := e.(*parse.Name)
	return ok && r.aliases[name.ID]
}

func (r *resolver) attribute(e *parse.Attribute) value.Value {
	if r.isAlias(e.X) {
		if v, ok := constants[e.Name]; ok {
			return v
		}
		return unresolved("attribute", e)
	}
	if e.Name == "T" {
		x := r.expr(e.X)
		return r.emit(ops.Transpose, []value.Value{x}, nil)
	}
	return unresolved("attribute", e)
}

func (r *resolver) call(e *parse.Call) value.Value {
	fn, ok := e.Func.(*parse.Attribute)
	if !ok {
		return unresolved("call", e)
	}
	if op, ok := r.reg.Lookup(fn.Name); ok {
		// Module-function style: np.op(x, ...).
		if r.isAlias(fn.X) {
			return r.emit(op, r.args(e.Args), r.kwargs(e.Keywords))
		}
		// Fluent style: x.op(...).
		if recv, ok := r.receiver(fn.X); ok {
			def, _ := r.reg.Def(op)
			args := r.args(e.Args)
			if def.Varargs && len(args) > 1 {
				args = []value.Value{value.List{Elems: args, Tuple: true}}
			}
			return r.emit(op, append([]value.Value{recv}, args...), r.kwargs(e.Keywords))
		}
		return unresolved("call", e)
	}
	if fn.Name == "array" {
		return r.array(e)
	}
	return unresolved("call", e)
}

// receiver resolves the receiver of a fluent call. It must be a bound
// name or an expression that yields a node.
func (r *resolver) receiver(e parse.Expr) (value.Value, bool) {
	if name, ok := e.(*parse.Name); ok {
		v, bound := r.names[name.ID]
		return v, bound
	}
	switch e.(type) {
	case *parse.Call, *parse.Binary, *parse.Unary, *parse.Attribute:
		v := r.expr(e)
		_, isNode := v.(*graph.Node)
		return v, isNode
	}
	return nil, false
}

func (r *resolver) args(exprs []parse.Expr) []value.Value {
	args := make([]value.Value, len(exprs))
	for i, e := range exprs {
		args[i] = r.expr(e)
	}
	return args
}

func (r *resolver) kwargs(keywords []parse.Keyword) []value.Kwarg {
	if len(keywords) == 0 {
		return nil
	}
	kwargs := make([]value.Kwarg, len(keywords))
	for i, kw := range keywords {
		kwargs[i] = value.Kwarg{Name: kw.Name, Value: r.expr(kw.Value)}
	}
	return kwargs
}

// array builds the literal array node of np.array(obj). The node is
// not emitted: constructing a literal is not an operation.
func (r *resolver) array(e *parse.Call) value.Value {
	if len(e.Args) == 0 {
		return unresolved("call", e)
	}
	obj := r.expr(e.Args[0])
	kind, hasKind := value.Kind(0), false
	for _, kw := range e.Keywords {
		if kw.Name == "dtype" {
			kind, hasKind = r.dtype(kw.Value)
		}
	}
	if len(e.Args) > 1 {
		kind, hasKind = r.dtype(e.Args[1])
	}
	name := fmt.Sprintf("array_%d", len(r.names))
	return graph.NewArray(name, literal(obj, kind, hasKind))
}

// dtype decodes a dtype argument: float, np.float64, 'int64' and so on.
func (r *resolver) dtype(e parse.Expr) (value.Kind, bool) {
	var s string
	switch e := e.(type) {
	case *parse.Name:
		s = e.ID
	case *parse.Str:
		s = e.Value
	case *parse.Attribute:
		if !r.isAlias(e.X) {
			return 0, false
		}
		s = e.Name
	default:
		return 0, false
	}
	kind, ok := dtypes[s]
	return kind, ok
}

// literal converts the argument of np.array to an array when it is a
// literal. Anything else, such as a list holding a node, is kept as
// written and fails when it is used.
func literal(obj value.Value, kind value.Kind, hasKind bool) (v value.Value) {
	defer func() {
		if err := recover(); err != nil {
			if _, ok := err.(value.Error); !ok {
				panic(err)
			}
			v = obj
		}
	}()
	switch obj.(type) {
	case value.Int, value.Float, value.Bool, value.List, *value.Array:
	default:
		return obj
	}
	a := value.ToArray(obj)
	if hasKind {
		a = a.As(kind)
	}
	return a
}
