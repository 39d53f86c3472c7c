// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"
	"testing"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/scan"
	"numpyviz.dev/npviz/value"
)

var testConf config.Config

// parseTrees parses the input and returns the tree of each statement.
func parseTrees(input string) (trees []string, err error) {
	defer func() {
		if e, ok := recover().(value.Error); ok {
			err = e
		}
	}()
	p := NewParser(&testConf, "test", scan.New(&testConf, "test", input))
	for _, s := range p.Module().Stmts {
		trees = append(trees, tree(s))
	}
	return trees, nil
}

func TestParse(t *testing.T) {
	var tests = []struct {
		input string
		want  string
	}{
		{"a = np.array([1, 2])", "<name a> = (<name np>.array)([<int 1> <int 2>])"},
		{"x = a + b * c", "<name x> = (<name a> + (<name b> * <name c>))"},
		{"x = a - b - c", "<name x> = ((<name a> - <name b>) - <name c>)"},
		{"x = -a ** 2", "<name x> = (- (<name a> ** <int 2>))"},
		{"x = a ** -b ** c", "<name x> = (<name a> ** (- (<name b> ** <name c>)))"},
		{"x = a @ b.T", "<name x> = (<name a> @ (<name b>.T))"},
		{"s = np.sum(a, axis=0, keepdims=True)", "<name s> = (<name np>.sum)(<name a> axis=<int 0> keepdims=<const True>)"},
		{"c = a.reshape(2, 3)", "<name c> = (<name a>.reshape)(<int 2> <int 3>)"},
		{"x = y = 1.5", "<name x> = <name y> = <float 1.5>"},
		{"a, b = np.split(x, 2)", "(<name a> <name b>,) = (<name np>.split)(<name x> <int 2>)"},
		{"a += 1", "<name a> += <int 1>"},
		{"import numpy as xp", "<import numpy as xp>"},
		{"import numpy", "<import numpy as numpy>"},
		{"a = x[0, 1:3]", "<name a> = (<name x>[(<int 0> <<int 1> : <int 3> : <nil>>,)])"},
		{"t = (1,)", "<name t> = (<int 1>,)"},
		{"a = b < c <= d", "<name a> = (<name b> < <name c> <= <name d>)"},
		{"a = not b and c or d", "<name a> = (((not <name b>) and <name c>) or <name d>)"},
		{"a = 'x' \"y\"", `<name a> = <str "xy">`},
		{"a = 0x10 + 1_000", "<name a> = (<int 16> + <int 1000>)"},
		{"a = 1; b = 2", "<name a> = <int 1>\n<name b> = <int 2>"},
		{"np.sum(a)", "(<name np>.sum)(<name a>)"},
		{"pass", ""},
	}
	for _, test := range tests {
		trees, err := parseTrees(test.input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.input, err)
			continue
		}
		if got := strings.Join(trees, "\n"); got != test.want {
			t.Errorf("%q:\n\texpected %s\n\tgot      %s", test.input, test.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	var tests = []struct {
		input string
		err   string
	}{
		{"np.sum(a, axis=0, axis=1)", "test:1: keyword argument repeated: axis"},
		{"np.sum(*a)", "starred arguments are not supported"},
		{"np.sum(axis=0, a)", "positional argument follows keyword argument"},
		{"for i in x: pass", "unsupported statement: for"},
		{"a = 1\ndef f(): pass", "test:2: unsupported statement: def"},
		{"a = (1, 2", "expected ')'"},
		{"1 = a", "cannot assign to 1"},
		{"a = 007", "leading zeros"},
		{"a = 1 2", "invalid syntax"},
		{"  a = 1", "unexpected indent"},
		{"x: int = 1", "annotated assignments are not supported"},
	}
	for _, test := range tests {
		_, err := parseTrees(test.input)
		if err == nil {
			t.Errorf("%q: expected error %q; got none", test.input, test.err)
			continue
		}
		if !strings.Contains(err.Error(), test.err) {
			t.Errorf("%q: expected error %q; got %q", test.input, test.err, err)
		}
	}
}

func TestSourceForm(t *testing.T) {
	var tests = []string{
		"a[0]",
		"a[1:3]",
		"(a + b) * c",
		"a - (b - c)",
		"-a ** 2",
		"(-a) ** 2",
		"f(x, k=1)",
		"{'a': 1}",
		"a if b else c",
		"a.b.c",
	}
	for _, src := range tests {
		p := NewParser(&testConf, "test", scan.New(&testConf, "test", "x = "+src))
		s := p.Module().Stmts[0].(*Assign)
		if got := s.Value.String(); got != src {
			t.Errorf("source form of %q: got %q", src, got)
		}
	}
}
