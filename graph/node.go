// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph defines the nodes the resolver emits and the evaluator
// computes. A node refers to earlier nodes through its operands, so the
// nodes form a directed acyclic graph whose emission order is already
// a valid evaluation order.
package graph // import "numpyviz.dev/npviz/graph"

import (
	"fmt"

	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/value"
)

// Node is one deferred computation, or a literal array.
//
// A Node is itself a value.Value, so it can appear among the operands,
// keyword values and list elements of another node.
type Node struct {
	Op       ops.Op
	Name     string // Set for literal arrays only.
	Operands []value.Value
	Kwargs   []value.Kwarg

	done   bool
	result value.Value
	args   []value.Value // Operands with every reference replaced by its result.
	kwvals []value.Kwarg
}

// NewOperation returns an unevaluated node computing op.
func NewOperation(op ops.Op, operands []value.Value, kwargs []value.Kwarg) *Node {
	if op == ops.Array {
		panic("graph: literal array built as an operation")
	}
	return &Node{Op: op, Operands: operands, Kwargs: kwargs}
}

// NewArray returns a literal array node named name. Its result is v
// from the start and it is never evaluated.
func NewArray(name string, v value.Value) *Node {
	return &Node{
		Op:     ops.Array,
		Name:   name,
		done:   true,
		result: v,
	}
}

// IsArray reports whether the node is a literal array.
func (n *Node) IsArray() bool {
	return n.Op == ops.Array
}

// Evaluated reports whether the node has a result.
func (n *Node) Evaluated() bool {
	return n.done
}

// Result returns the result of the node, or nil if it has not been
// evaluated.
func (n *Node) Result() value.Value {
	return n.result
}

// Args returns the materialized operands the result was computed from.
// Before evaluation it returns the operands as written.
func (n *Node) Args() []value.Value {
	if n.done && !n.IsArray() {
		return n.args
	}
	return n.Operands
}

// KwargValues is Args for the keyword arguments.
func (n *Node) KwargValues() []value.Kwarg {
	if n.done && !n.IsArray() {
		return n.kwvals
	}
	return n.Kwargs
}

// SetResult records the result of the node together with the
// materialized arguments it was computed from. A result is set
// exactly once; a second call panics.
func (n *Node) SetResult(args []value.Value, kwargs []value.Kwarg, result value.Value) {
	if n.done {
		panic(fmt.Sprintf("graph: result of %s set twice", n))
	}
	n.args = args
	n.kwvals = kwargs
	n.result = result
	n.done = true
}

func (n *Node) String() string {
	if n.IsArray() {
		return fmt.Sprintf("ArrayNode(%s)", n.Name)
	}
	return fmt.Sprintf("OperationNode(%s)", n.Op)
}

func (n *Node) Repr() string {
	return n.String()
}

// Refs returns the nodes the node refers to directly, through its
// operands, its keyword values or lists among them, in order.
func (n *Node) Refs() []*Node {
	var refs []*Node
	var walk func(v value.Value)
	walk = func(v value.Value) {
		switch v := v.(type) {
		case *Node:
			refs = append(refs, v)
		case value.List:
			for _, e := range v.Elems {
				walk(e)
			}
		}
	}
	for _, v := range n.Operands {
		walk(v)
	}
	for _, kw := range n.Kwargs {
		walk(kw.Value)
	}
	return refs
}
