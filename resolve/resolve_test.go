// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/graph"
	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/parse"
	"numpyviz.dev/npviz/scan"
	"numpyviz.dev/npviz/value"
)

func resolveSource(conf *config.Config, src string) []*graph.Node {
	p := parse.NewParser(conf, "test", scan.New(conf, "test", src))
	return Resolve(conf, ops.Standard(), p.Module())
}

// describe prints the nodes compactly: op(operand, ...; kw=value).
func describe(nodes []*graph.Node) string {
	index := make(map[*graph.Node]int)
	for i, n := range nodes {
		index[n] = i
	}
	var show func(v value.Value) string
	show = func(v value.Value) string {
		switch v := v.(type) {
		case *graph.Node:
			if v.IsArray() {
				return fmt.Sprintf("%s=%s", v.Name, v.Result().String())
			}
			if i, ok := index[v]; ok {
				return fmt.Sprintf("#%d", i)
			}
			return "?" + v.String()
		case value.List:
			var s []string
			for _, e := range v.Elems {
				s = append(s, show(e))
			}
			if v.Tuple {
				return "(" + strings.Join(s, " ") + ")"
			}
			return "[" + strings.Join(s, " ") + "]"
		}
		return v.Repr()
	}
	var out []string
	for _, n := range nodes {
		var args []string
		for _, v := range n.Operands {
			args = append(args, show(v))
		}
		for _, kw := range n.Kwargs {
			args = append(args, kw.Name+"="+show(kw.Value))
		}
		out = append(out, fmt.Sprintf("%s(%s)", n.Op, strings.Join(args, ", ")))
	}
	return strings.Join(out, "; ")
}

func TestResolve(t *testing.T) {
	var tests = []struct {
		input string
		want  string
	}{
		// Elementwise add of two literals.
		{"x = np.array([1,2,3]); y = np.array([4,5,6]); z = x + y", "add(array_0=[1 2 3], array_1=[4 5 6])"},
		// Transpose through the T attribute.
		{"a = np.array([[1,2],[3,4]]); b = a.T", "transpose(array_0=[[1 2]\n [3 4]])"},
		// Reshape of an inline literal; the literal is not emitted.
		{"np.reshape(np.array([1,2,3,4]), (2,2))", "reshape(array_0=[1 2 3 4], (2 2))"},
		{"a = 1 + 2", "add(1, 2)"},
		{"a = -1 + +2.5", "add(-1, 2.5)"},
		{"a = -True * 2", "multiply(-1, 2)"},
		{"a = b @ c", "matmul('b', 'c')"},
		{"a = 1 - 2 * 3", "multiply(2, 3); subtract(1, #0)"},
		{"a = 2 ** 3 // 4 % 5 / 6", "power(2, 3); floor_divide(#0, 4); mod(#1, 5); divide(#2, 6)"},
		{"x = np.array([1,2]); y = -x", "negative(array_0=[1 2])"},
		{"x = np.array([1,2]); y = +(x * 2)", "multiply(array_0=[1 2], 2); positive(#0)"},
		{"x = np.array([[1,2]]); s = np.sum(x, axis=0, keepdims=True)", "sum(array_0=[[1 2]], axis=0, keepdims=True)"},
		{"x = np.array([[1,2]]); s = x.sum(axis=1)", "sum(array_0=[[1 2]], axis=1)"},
		{"x = np.array([1,2,3,4]); y = x.reshape(2, 2)", "reshape(array_0=[1 2 3 4], (2 2))"},
		{"x = np.array([1,2,3,4]); y = x.reshape((2, 2))", "reshape(array_0=[1 2 3 4], (2 2))"},
		{"x = np.array([[1,2]]); y = x.transpose(1, 0)", "transpose(array_0=[[1 2]], (1 0))"},
		{"x = np.array([1,2]); y = (x + x).sum()", "add(array_0=[1 2], array_0=[1 2]); sum(#0)"},
		{"x = np.array([[1,2]]); y = x.T.sum()", "transpose(array_0=[[1 2]]); sum(#0)"},
		{"x = np.array([1,2]); y = np.array([3,4]); z = np.concatenate([x, y], axis=0)", "concatenate([array_0=[1 2] array_1=[3 4]], axis=0)"},
		{"x = np.array([1,2]); x += 1; y = x * 2", "add(array_0=[1 2], 1); multiply(#0, 2)"},
		{"import numpy as xp\nx = xp.array([1]); y = xp.exp(x)", "exp(array_0=[1])"},
		{"a = np.sin(np.pi)", "sin(3.141592653589793)"},
		{"a = np.sum(x, axis=k)", "sum('x', axis='k')"},
		{"a = np.array([1, 2], dtype=float); b = a + 1", "add(array_0=[1. 2.], 1)"},
		{"a = np.array([0, 1], np.bool_); b = a + 1", "add(array_0=[False  True], 1)"},
		{"a = b = np.array([1]); c = a + b", "add(array_0=[1], array_0=[1])"},
		{"p = 1; q = 2; r = np.array([5]); s = r * 2", "multiply(array_2=[5], 2)"},
		{"a = np.array([1, 2]); b, c = np.split(a, 2)", "split(array_0=[1 2], 2)"},
		{"np.array([1, 2])", ""},
		{"a = 1\nb = 2", ""},
	}
	var conf config.Config
	for _, test := range tests {
		got := describe(resolveSource(&conf, test.input))
		if got != test.want {
			t.Errorf("%q:\n\texpected %s\n\tgot      %s", test.input, test.want, got)
		}
	}
}

func TestUnresolved(t *testing.T) {
	var tests = []struct {
		input string
		kind  string
		text  string
	}{
		{"a = x[0]; b = np.sum(a)", "subscript", "x[0]"},
		{"a = print(1); b = np.sum(a)", "call", "print(1)"},
		{"a = y.sum(); b = np.sum(a)", "call", "y.sum()"},
		{"a = np.linalg; b = np.sum(a)", "attribute", "np.linalg"},
		{"a = x.shape; b = np.sum(a)", "attribute", "x.shape"},
		{"a = 1j; b = np.sum(a)", "complex", "1j"},
		{"a = x < y; b = np.sum(a)", "comparison", "x < y"},
		{"a = ~x; b = np.sum(a)", "unary operator ~", "~x"},
		{"a = x & y; b = np.sum(a)", "binary operator &", "x & y"},
		{"a = {1: 2}; b = np.sum(a)", "dict", "{1: 2}"},
		{"a = np.foo(1); b = np.sum(a)", "call", "np.foo(1)"},
		{"a = np.array(); b = np.sum(a)", "call", "np.array()"},
	}
	var conf config.Config
	for _, test := range tests {
		nodes := resolveSource(&conf, test.input)
		if len(nodes) != 1 {
			t.Errorf("%q: got %d nodes; want 1", test.input, len(nodes))
			continue
		}
		u, ok := nodes[0].Operands[0].(value.Unresolved)
		if !ok {
			t.Errorf("%q: operand is %T; want value.Unresolved", test.input, nodes[0].Operands[0])
			continue
		}
		if u.Kind != test.kind || u.Text != test.text {
			t.Errorf("%q: got unresolved %q %q; want %q %q", test.input, u.Kind, u.Text, test.kind, test.text)
		}
	}
}

// TestOrder checks that every reference points at an earlier node or
// a literal array, and that a program with N operation expressions
// yields N nodes.
func TestOrder(t *testing.T) {
	var tests = []struct {
		input string
		n     int
	}{
		{"a = np.array([[1,2],[3,4]])\nb = a @ a.T + np.sum(a, axis=0) - a.reshape(4, 1).T.sum()", 8},
		{"a = np.array([1, 2])\nb = np.concatenate([a * 2, a / 2, -a])\nc = np.split(b, 3)", 5},
		{"x = 1 + 2 + 3 + 4 + 5", 4},
		{"a = np.array([1])\nb = np.maximum(np.minimum(a, 3), np.abs(a - 1))", 4},
	}
	var conf config.Config
	for _, test := range tests {
		nodes := resolveSource(&conf, test.input)
		if len(nodes) != test.n {
			t.Errorf("%q: got %d nodes; want %d: %s", test.input, len(nodes), test.n, describe(nodes))
		}
		index := make(map[*graph.Node]int)
		for i, n := range nodes {
			if n.IsArray() {
				t.Errorf("%q: literal array %s emitted", test.input, n.Name)
			}
			for _, ref := range n.Refs() {
				if ref.IsArray() {
					continue
				}
				j, ok := index[ref]
				if !ok || j >= i {
					t.Errorf("%q: node %d refers to a node that is not earlier", test.input, i)
				}
			}
			index[n] = i
		}
	}
}

// TestNoFolding checks that a binary operator on literals always
// yields exactly one node.
func TestNoFolding(t *testing.T) {
	var conf config.Config
	for _, op := range []string{"+", "-", "*", "/", "//", "%", "**", "@"} {
		src := fmt.Sprintf("a = (-2) %s (+3)", op)
		nodes := resolveSource(&conf, src)
		if len(nodes) != 1 {
			t.Errorf("%q: got %d nodes; want 1", src, len(nodes))
			continue
		}
		want, _ := ops.Parse(map[string]string{
			"+": "add", "-": "subtract", "*": "multiply", "/": "divide",
			"//": "floor_divide", "%": "mod", "**": "power", "@": "matmul",
		}[op])
		n := nodes[0]
		if n.Op != want || n.Operands[0] != value.Int(-2) || n.Operands[1] != value.Int(3) {
			t.Errorf("%q: got %s", src, describe(nodes))
		}
	}
}

func TestAliases(t *testing.T) {
	var conf config.Config
	conf.SetAliases("numpy")
	if got := describe(resolveSource(&conf, "numpy.sum(1)")); got != "sum(1)" {
		t.Errorf("configured alias: got %q", got)
	}
	if got := len(resolveSource(&conf, "np.sum(1)")); got != 0 {
		t.Errorf("default alias still applies when configured away: %d nodes", got)
	}
}

func TestDebug(t *testing.T) {
	var conf config.Config
	var buf bytes.Buffer
	conf.SetOutput(&buf)
	conf.SetDebug("resolve", true)
	resolveSource(&conf, "a = 1 + 2")
	if got, want := buf.String(), "resolve: 0: add [1, 2] {}\n"; got != want {
		t.Errorf("debug output: got %q; want %q", got, want)
	}
}
