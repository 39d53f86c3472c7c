// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exec evaluates the operation nodes built by the resolver.
package exec // import "numpyviz.dev/npviz/exec"

import (
	"fmt"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/graph"
	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/value"
)

// Evaluator computes nodes with the kernels of a registry.
// It holds no state of its own beyond its configuration.
type Evaluator struct {
	conf *config.Config
	reg  *ops.Registry
}

// New returns an evaluator that looks up kernels in reg.
func New(conf *config.Config, reg *ops.Registry) *Evaluator {
	return &Evaluator{conf: conf, reg: reg}
}

// Evaluate computes every node that has no result yet, in order.
// The nodes must be in the order the resolver emitted them. Evaluation
// stops at the first failure, which is returned; the nodes computed
// before it keep their results.
func (e *Evaluator) Evaluate(nodes []*graph.Node) (err error) {
	defer func() {
		if e.conf.Debug("panic") {
			return
		}
		if r := recover(); r != nil {
			verr, ok := r.(value.Error)
			if !ok {
				panic(r)
			}
			err = verr
		}
	}()
	for _, n := range nodes {
		if !n.Evaluated() {
			e.evaluate(n)
		}
	}
	return nil
}

// evaluate computes one node and records its result.
func (e *Evaluator) evaluate(n *graph.Node) {
	def, err := e.reg.Def(n.Op)
	if err != nil {
		value.Errorf("%v", err)
	}
	args := make([]value.Value, len(n.Operands))
	for i, v := range n.Operands {
		args[i] = unwrap(v)
		checkResolved(n, args[i])
	}
	var kwargs []value.Kwarg
	if len(n.Kwargs) > 0 {
		kwargs = make([]value.Kwarg, len(n.Kwargs))
		for i, kw := range n.Kwargs {
			kwargs[i] = value.Kwarg{Name: kw.Name, Value: unwrap(kw.Value)}
			checkResolved(n, kwargs[i].Value)
		}
	}
	if e.conf.Debug("eval") {
		fmt.Fprintf(e.conf.Output(), "Computing %s with args: %s, %s\n", n.Op, value.ListRepr(args), value.KwargsRepr(kwargs))
	}
	result := value.Round(stack(def.Kernel(args, kwargs)), e.conf.Precision())
	if e.conf.Debug("eval") {
		fmt.Fprintf(e.conf.Output(), "Result: %s\n", result)
	}
	n.SetResult(args, kwargs, result)
}

// unwrap replaces every node reference in v by the node's result.
// Array results are padded to at least two dimensions. The padding is
// a display normalization only: it never changes the number or the
// order of the elements.
func unwrap(v value.Value) value.Value {
	switch v := v.(type) {
	case *graph.Node:
		if !v.Evaluated() {
			value.Errorf("%s used before it was computed", v)
		}
		switch r := v.Result().(type) {
		case *value.Array:
			return value.AtLeast2D(r)
		case value.List:
			// A literal that held references, or a list of arrays.
			return value.AtLeast2D(value.ToArray(results(r)))
		default:
			return r
		}
	case value.List:
		elems := make([]value.Value, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = unwrap(e)
		}
		return value.List{Elems: elems, Tuple: v.Tuple}
	}
	return v
}

// results replaces every node reference in v by the node's result,
// without padding.
func results(v value.Value) value.Value {
	switch v := v.(type) {
	case *graph.Node:
		if !v.Evaluated() {
			value.Errorf("%s used before it was computed", v)
		}
		return results(v.Result())
	case value.List:
		elems := make([]value.Value, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = results(e)
		}
		return value.List{Elems: elems, Tuple: v.Tuple}
	case value.Unresolved:
		value.Errorf("unsupported %s in array literal: %s", v.Kind, v.Text)
	}
	return v
}

// checkResolved fails if v holds syntax the resolver did not support.
func checkResolved(n *graph.Node, v value.Value) {
	switch v := v.(type) {
	case value.Unresolved:
		value.Errorf("%s: unsupported %s in arguments: %s", n.Op, v.Kind, v.Text)
	case value.List:
		for _, e := range v.Elems {
			checkResolved(n, e)
		}
	}
}

// stack joins a list of arrays of one shape into a single array, as
// rounding a list of arrays does. Other values are returned unchanged.
func stack(v value.Value) value.Value {
	list, ok := v.(value.List)
	if !ok {
		return v
	}
	arrays := make([]*value.Array, len(list.Elems))
	for i, e := range list.Elems {
		a, ok := e.(*value.Array)
		if !ok {
			return v
		}
		arrays[i] = a
	}
	if a, ok := value.Stack(arrays); ok {
		return a
	}
	return v
}
