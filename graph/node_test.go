// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/value"
)

func TestArrayNode(t *testing.T) {
	v := value.List{Elems: []value.Value{value.Int(1), value.Int(2)}}
	n := NewArray("array_0", v)
	if !n.IsArray() || !n.Evaluated() {
		t.Fatalf("array node: IsArray %t Evaluated %t", n.IsArray(), n.Evaluated())
	}
	if n.Result() == nil || n.Result().Repr() != "[1, 2]" {
		t.Errorf("result: got %v", n.Result())
	}
	if got := n.String(); got != "ArrayNode(array_0)" {
		t.Errorf("String: got %q", got)
	}
	if len(n.Args()) != 0 {
		t.Errorf("array node has operands %v", n.Args())
	}
}

func TestSetResult(t *testing.T) {
	a := NewArray("array_0", value.Int(1))
	list := value.List{Elems: []value.Value{a, value.Int(2)}}
	n := NewOperation(ops.Add, []value.Value{a, list}, []value.Kwarg{{Name: "k", Value: a}})
	if n.Evaluated() || n.Result() != nil {
		t.Fatal("new operation node is evaluated")
	}
	if got := n.String(); got != "OperationNode(add)" {
		t.Errorf("String: got %q", got)
	}
	if refs := n.Refs(); len(refs) != 3 {
		t.Errorf("Refs: got %d nodes; want 3", len(refs))
	}
	if n.Args()[0] != a {
		t.Errorf("Args before evaluation should be the operands")
	}
	args := []value.Value{value.Int(1), value.Int(2)}
	n.SetResult(args, nil, value.Int(3))
	if !n.Evaluated() || n.Result() != value.Int(3) {
		t.Errorf("after SetResult: Evaluated %t Result %v", n.Evaluated(), n.Result())
	}
	if n.Args()[0] != value.Int(1) {
		t.Errorf("Args after evaluation should be materialized")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("second SetResult did not panic")
		}
	}()
	n.SetResult(args, nil, value.Int(4))
}

func TestOperationArrayTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("NewOperation(ops.Array) did not panic")
		}
	}()
	NewOperation(ops.Array, nil, nil)
}
