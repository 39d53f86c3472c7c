// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"strings"
	"testing"

	"numpyviz.dev/npviz/value"
)

func TestNames(t *testing.T) {
	for _, op := range All() {
		got, ok := Parse(op.String())
		if !ok || got != op {
			t.Errorf("Parse(%q) = %s, %t", op.String(), got, ok)
		}
	}
	if _, ok := Parse("array"); ok {
		t.Errorf("array is an operation")
	}
	if _, ok := Parse("arange"); ok {
		t.Errorf("arange is an operation")
	}
	if n := len(All()); n != 75 {
		t.Errorf("vocabulary has %d operations; want 75", n)
	}
}

func TestStandard(t *testing.T) {
	reg := Standard()
	for _, op := range All() {
		def, err := reg.Def(op)
		if err != nil {
			t.Errorf("%s: %v", op, err)
			continue
		}
		if def.Op != op || def.Kernel == nil || def.Name() != op.String() {
			t.Errorf("%s: bad definition %+v", op, def)
		}
	}
	var families = []struct {
		op     Op
		family Family
	}{
		{Add, Elementwise},
		{Round, Elementwise},
		{Heaviside, Elementwise},
		{Negative, NoFamily},
		{LogicalAnd, NoFamily},
		{Equal, NoFamily},
		{Real, NoFamily},
		{Matmul, MatrixProduct},
		{Dot, MatrixProduct},
		{Average, Reduction},
		{Reshape, ReshapeFamily},
		{Flatten, FlattenFamily},
		{Split, SplitFamily},
		{BroadcastTo, BroadcastFamily},
	}
	for _, test := range families {
		def, _ := reg.Def(test.op)
		if def.Family != test.family {
			t.Errorf("%s: family %s; want %s", test.op, def.Family, test.family)
		}
	}
}

func TestNewRegistry(t *testing.T) {
	kernel := func([]value.Value, []value.Kwarg) value.Value { return value.None{} }
	var tests = []struct {
		defs []Def
		err  string
	}{
		{[]Def{{Op: Add, Kernel: kernel}, {Op: Sum, Kernel: kernel}}, ""},
		{[]Def{{Op: Add}}, "add has no kernel"},
		{[]Def{{Op: Add, Kernel: kernel}, {Op: Add, Kernel: kernel}}, "add defined twice"},
		{[]Def{{Op: Array, Kernel: kernel}}, "array is not an operation"},
		{[]Def{{Op: Invalid, Kernel: kernel}}, "invalid is not an operation"},
		{[]Def{{Op: numOps, Kernel: kernel}}, "is not an operation"},
	}
	for i, test := range tests {
		reg, err := NewRegistry(test.defs)
		switch {
		case test.err == "" && err != nil:
			t.Errorf("%d: unexpected error %v", i, err)
		case test.err == "" && reg == nil:
			t.Errorf("%d: nil registry", i)
		case test.err != "" && (err == nil || !strings.Contains(err.Error(), test.err)):
			t.Errorf("%d: expected error %q; got %v", i, test.err, err)
		}
	}
}

func TestLookup(t *testing.T) {
	reg := Standard()
	if op, ok := reg.Lookup("sum"); !ok || op != Sum {
		t.Errorf("Lookup(sum) = %s, %t", op, ok)
	}
	if _, ok := reg.Lookup("sums"); ok {
		t.Errorf("Lookup(sums) succeeded")
	}
	less := reg.Without(Sum)
	if _, ok := less.Lookup("sum"); ok {
		t.Errorf("Lookup(sum) succeeded after Without")
	}
	if _, err := less.Def(Sum); err == nil || err.Error() != "unsupported operation: sum" {
		t.Errorf("Def(sum) after Without: %v", err)
	}
	if _, err := reg.Def(Sum); err != nil {
		t.Errorf("Without modified the original registry: %v", err)
	}
	called := false
	more := reg.With(Sum, func([]value.Value, []value.Kwarg) value.Value {
		called = true
		return value.Int(0)
	})
	def, _ := more.Def(Sum)
	def.Kernel(nil, nil)
	if !called || def.Family != Reduction {
		t.Errorf("With: called %t family %s", called, def.Family)
	}
}

func call(t *testing.T, op Op, args []value.Value, kwargs []value.Kwarg) (v value.Value, err error) {
	t.Helper()
	defer func() {
		if e, ok := recover().(value.Error); ok {
			err = e
		}
	}()
	def, derr := Standard().Def(op)
	if derr != nil {
		t.Fatal(derr)
	}
	return def.Kernel(args, kwargs), nil
}

func ints(shape []int, data ...float64) *value.Array {
	return value.NewArray(shape, data, value.IntKind)
}

func tuple(elems ...value.Value) value.List {
	return value.List{Elems: elems, Tuple: true}
}

func TestKernels(t *testing.T) {
	m := ints([]int{2, 2}, 1, 2, 3, 4)
	var tests = []struct {
		op     Op
		args   []value.Value
		kwargs []value.Kwarg
		want   string
	}{
		{Add, []value.Value{m, value.Int(1)}, nil, "array([[2, 3],\n       [4, 5]])"},
		{Add, []value.Value{value.Int(1)}, []value.Kwarg{{Name: "x2", Value: value.Float(0.5)}}, "array(1.5)"},
		{Sum, []value.Value{m}, []value.Kwarg{{Name: "axis", Value: value.Int(0)}}, "array([4, 6])"},
		{Sum, []value.Value{m, tuple(value.Int(0), value.Int(1))}, nil, "array(10)"},
		{Std, []value.Value{ints([]int{2}, 1, 3)}, []value.Kwarg{{Name: "ddof", Value: value.Int(1)}}, "array(1.41421356)"},
		{Average, []value.Value{ints([]int{2}, 1, 3)}, []value.Kwarg{{Name: "weights", Value: ints([]int{2}, 3, 1)}}, "array(1.5)"},
		{Round, []value.Value{value.Float(2.675), value.Int(1)}, nil, "array(2.7)"},
		{Reshape, []value.Value{m, tuple(value.Int(4))}, nil, "array([1, 2, 3, 4])"},
		{Reshape, []value.Value{m}, []value.Kwarg{{Name: "newshape", Value: value.Int(-1)}}, "array([1, 2, 3, 4])"},
		{Reshape, []value.Value{m, tuple(value.Int(4)), value.String("F")}, nil, "array([1, 3, 2, 4])"},
		{Flatten, []value.Value{m}, nil, "array([1, 2, 3, 4])"},
		{Transpose, []value.Value{m}, nil, "array([[1, 3],\n       [2, 4]])"},
		{Squeeze, []value.Value{ints([]int{1, 2}, 1, 2)}, nil, "array([1, 2])"},
		{ExpandDims, []value.Value{ints([]int{2}, 1, 2), value.Int(0)}, nil, "array([[1, 2]])"},
		{BroadcastTo, []value.Value{value.Int(7), tuple(value.Int(2))}, nil, "array([7, 7])"},
		{Concatenate, []value.Value{value.List{Elems: []value.Value{m, m}}}, []value.Kwarg{{Name: "axis", Value: value.None{}}}, "array([1, 2, 3, 4, 1, 2, 3, 4])"},
		{Split, []value.Value{ints([]int{4}, 1, 2, 3, 4), value.Int(2)}, nil, "[array([1, 2]), array([3, 4])]"},
		{Split, []value.Value{ints([]int{4}, 1, 2, 3, 4), value.List{Elems: []value.Value{value.Int(1)}}}, nil, "[array([1]), array([2, 3, 4])]"},
		{Dot, []value.Value{m, m}, nil, "array([[ 7, 10],\n       [15, 22]])"},
		{Matmul, []value.Value{ints([]int{2}, 1, 2), m}, nil, "array([ 7, 10])"},
		{Less, []value.Value{m, value.Int(3)}, nil, "array([[ True,  True],\n       [False, False]])"},
		{LogicalNot, []value.Value{value.Bool(true)}, nil, "array(False)"},
	}
	for _, test := range tests {
		got, err := call(t, test.op, test.args, test.kwargs)
		if err != nil {
			t.Errorf("%s%s: unexpected error %v", test.op, value.ListRepr(test.args), err)
			continue
		}
		if got.Repr() != test.want {
			t.Errorf("%s%s:\n\texpected %s\n\tgot      %s", test.op, value.ListRepr(test.args), test.want, got.Repr())
		}
	}
}

func TestBind(t *testing.T) {
	m := ints([]int{2}, 1, 2)
	var tests = []struct {
		op     Op
		args   []value.Value
		kwargs []value.Kwarg
		err    string
	}{
		{Sin, []value.Value{m, m}, nil, "sin() takes at most 1 positional arguments (2 given)"},
		{Sum, nil, nil, "sum() missing required argument 'a' (pos 1)"},
		{Sum, []value.Value{m}, []value.Kwarg{{Name: "out", Value: value.None{}}}, "sum() got an unexpected keyword argument 'out'"},
		{Sum, []value.Value{m}, []value.Kwarg{{Name: "a", Value: m}}, "sum() got multiple values for argument 'a'"},
		{Reshape, []value.Value{m}, nil, "reshape() missing required argument 'shape' (pos 2)"},
		{Reshape, []value.Value{m, value.Int(2)}, []value.Kwarg{{Name: "newshape", Value: value.Int(2)}}, "cannot specify 'newshape' and 'shape'"},
		{Reshape, []value.Value{m, value.Int(2), value.String("Z")}, nil, "order must be one of"},
		{Sum, []value.Value{m, value.Float(0.5)}, nil, "axis: 0.5 cannot be interpreted as an integer"},
		{Split, []value.Value{ints([]int{3}, 1, 2, 3), value.Int(2)}, nil, "array split does not result in an equal division"},
		{Concatenate, []value.Value{value.Int(1)}, nil, "expected a sequence of arrays"},
		{Add, []value.Value{value.String("a"), m}, nil, "cannot use 'a' as an array"},
	}
	for _, test := range tests {
		_, err := call(t, test.op, test.args, test.kwargs)
		if err == nil || !strings.Contains(err.Error(), test.err) {
			t.Errorf("%s%s: expected error %q; got %v", test.op, value.ListRepr(test.args), test.err, err)
		}
	}
}
