// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"bytes"
	"strings"
	"testing"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/graph"
	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/parse"
	"numpyviz.dev/npviz/resolve"
	"numpyviz.dev/npviz/scan"
	"numpyviz.dev/npviz/value"
)

func nodesOf(conf *config.Config, src string) []*graph.Node {
	p := parse.NewParser(conf, "test", scan.New(conf, "test", src))
	return resolve.Resolve(conf, ops.Standard(), p.Module())
}

// evalSource evaluates the program and returns the str form of each result.
func evalSource(conf *config.Config, reg *ops.Registry, src string) ([]string, error) {
	nodes := nodesOf(conf, src)
	if err := New(conf, reg).Evaluate(nodes); err != nil {
		return nil, err
	}
	var out []string
	for _, n := range nodes {
		out = append(out, n.Result().String())
	}
	return out, nil
}

func TestEvaluate(t *testing.T) {
	var tests = []struct {
		input string
		want  string
	}{
		// Elementwise add of two literals.
		{"x = np.array([1,2,3]); y = np.array([4,5,6]); z = x + y", "[[5 7 9]]"},
		// Transpose through the T attribute.
		{"a = np.array([[1,2],[3,4]]); b = a.T", "[[1 3]\n [2 4]]"},
		// Reshape of an inline literal.
		{"np.reshape(np.array([1,2,3,4]), (2,2))", "[[1 2]\n [3 4]]"},
		{"a = np.array([1, 2]) / 3", "[[0.33 0.67]]"},
		{"a = np.array([2, 4]); b = a ** 70", "[[0 0]]"},
		{"a = np.array([1.125, 2.375]) * 1", "[[1.12 2.38]]"},
		{"a = np.sqrt(np.array([2.0]))", "[[1.41]]"},
		{"a = 1 + 2", "3"},
		{"a = np.array([[1, 2], [3, 4]]); s = a.sum()", "10"},
		{"a = np.array([[1, 2], [3, 4]]); s = np.sum(a, axis=0)", "[4 6]"},
		{"a = np.array([[1, 2], [3, 4]]); s = a.mean(axis=1, keepdims=True)", "[[1.5]\n [3.5]]"},
		{"a = np.array([1, 2, 3, 4]); b = a.reshape(2, 2); c = b @ b", "[[1 2]\n [3 4]] | [[ 7 10]\n [15 22]]"},
		{"a = np.array([[1, 2, 3, 4]]); b = np.split(a, 2, axis=1)", "[[[1 2]]\n\n [[3 4]]]"},
		{"a = np.array([[1, 2, 3, 4]]); b = np.split(a, [1], axis=1)", "[array([[1]]), array([[2, 3, 4]])]"},
		{"a = np.array([1, 2]); b = np.array([3, 4]); c = np.concatenate((a, b), axis=1)", "[[1 2 3 4]]"},
		{"a = np.array([1, 2]); b = -a", "[[-1 -2]]"},
		{"a = np.array([1, 2]); b = a * 2; c = np.array([a, b])", "[[2 4]]"},
		{"a = np.array([1, 2]); b = a * 2; c = a + 1; d = np.sum(np.array([b, c]))", "[[2 4]] | [[2 3]] | 11"},
	}
	var conf config.Config
	for _, test := range tests {
		got, err := evalSource(&conf, ops.Standard(), test.input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.input, err)
			continue
		}
		if s := strings.Join(got, " | "); s != test.want {
			t.Errorf("%q:\n\texpected %s\n\tgot      %s", test.input, test.want, s)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	var tests = []struct {
		input string
		err   string
	}{
		{"a = np.array([[1, 2]]) @ np.array([[1, 2]])", "matmul: Input operand 1 has a mismatch"},
		{"a = np.array([1, 2, 3]).reshape(2, 2)", "cannot reshape array of size 3 into shape (2, 2)"},
		{"a = np.sum(x[0])", "sum: unsupported subscript in arguments: x[0]"},
		{"a = np.sum(np.array([1]), axis=foo)", "axis: 'foo' cannot be interpreted as an integer"},
		{"a = np.sum(np.array([1]), where=True)", "sum() got an unexpected keyword argument 'where'"},
		{"a = np.array([x[0]]); b = a + 1", "unsupported subscript in array literal: x[0]"},
		{"a = np.array([1]) ** -1", "Integers to negative integer powers are not allowed."},
	}
	var conf config.Config
	for _, test := range tests {
		_, err := evalSource(&conf, ops.Standard(), test.input)
		if err == nil {
			t.Errorf("%q: expected error %q; got none", test.input, test.err)
			continue
		}
		if !strings.Contains(err.Error(), test.err) {
			t.Errorf("%q: expected error %q; got %q", test.input, test.err, err)
		}
	}
}

// An operation the registry does not define fails the whole evaluation.
func TestUnsupportedOperation(t *testing.T) {
	var conf config.Config
	nodes := nodesOf(&conf, "a = np.array([1]); b = np.exp(a); c = b + 1; d = np.sum(c)")
	err := New(&conf, ops.Standard().Without(ops.Add)).Evaluate(nodes)
	if err == nil || err.Error() != "unsupported operation: add" {
		t.Fatalf("got error %v; want unsupported operation: add", err)
	}
	if !nodes[0].Evaluated() || nodes[1].Evaluated() || nodes[2].Evaluated() {
		t.Errorf("evaluation did not stop at the failing node")
	}
	bad := []*graph.Node{graph.NewOperation(ops.Invalid, nil, nil)}
	if err := New(&conf, ops.Standard()).Evaluate(bad); err == nil || !strings.Contains(err.Error(), "unsupported operation") {
		t.Errorf("invalid operation: got %v", err)
	}
}

// A second evaluation computes nothing and changes no result.
func TestIdempotent(t *testing.T) {
	var conf config.Config
	calls := 0
	def, err := ops.Standard().Def(ops.Add)
	if err != nil {
		t.Fatal(err)
	}
	reg := ops.Standard().With(ops.Add, func(args []value.Value, kwargs []value.Kwarg) value.Value {
		calls++
		return def.Kernel(args, kwargs)
	})
	nodes := nodesOf(&conf, "a = np.array([1.5, 2]); b = a + a; c = b + 1")
	ev := New(&conf, reg)
	if err := ev.Evaluate(nodes); err != nil {
		t.Fatal(err)
	}
	first := []value.Value{nodes[0].Result(), nodes[1].Result()}
	if err := ev.Evaluate(nodes); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("kernel called %d times; want 2", calls)
	}
	for i, n := range nodes {
		if n.Result() != first[i] {
			t.Errorf("result %d changed on second evaluation", i)
		}
	}
}

// The displayed result is the raw kernel output rounded to the precision.
func TestPrecision(t *testing.T) {
	var conf config.Config
	src := "a = np.array([1.23456, -7.891011]); b = a / 3"
	raw := value.Divide.Apply(value.NewArray([]int{1, 2}, []float64{1.23456, -7.891011}, value.FloatKind), value.Int(3))
	for _, digits := range []int{0, 2, 4} {
		conf.SetPrecision(digits)
		nodes := nodesOf(&conf, src)
		if err := New(&conf, ops.Standard()).Evaluate(nodes); err != nil {
			t.Fatal(err)
		}
		got := nodes[0].Result().(*value.Array)
		want := value.Round(raw, digits).(*value.Array)
		if !got.Equal(want) {
			t.Errorf("precision %d: got %s; want %s", digits, got, want)
		}
	}
}

func TestArgs(t *testing.T) {
	var conf config.Config
	nodes := nodesOf(&conf, "a = np.array([1, 2]); b = np.sum(a, axis=1)")
	if err := New(&conf, ops.Standard()).Evaluate(nodes); err != nil {
		t.Fatal(err)
	}
	n := nodes[0]
	if got := value.ListRepr(n.Args()); got != "[array([[1, 2]])]" {
		t.Errorf("args: got %s", got)
	}
	if got := value.KwargsRepr(n.KwargValues()); got != "{'axis': 1}" {
		t.Errorf("kwargs: got %s", got)
	}
	if _, ok := n.Operands[0].(*graph.Node); !ok {
		t.Errorf("operands lost their node references")
	}
}

func TestDebug(t *testing.T) {
	var conf config.Config
	var buf bytes.Buffer
	conf.SetOutput(&buf)
	conf.SetDebug("eval", true)
	nodes := nodesOf(&conf, "a = 1 + 2")
	if err := New(&conf, ops.Standard()).Evaluate(nodes); err != nil {
		t.Fatal(err)
	}
	want := "Computing add with args: [1, 2], {}\nResult: 3\n"
	if got := buf.String(); got != want {
		t.Errorf("debug output: got %q; want %q", got, want)
	}
}
