// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import (
	"strings"
	"testing"

	"numpyviz.dev/npviz/config"
)

var conf config.Config

func scanAll(input string) []Token {
	l := New(&conf, "test", input)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF || tok.Type == Error {
			return toks
		}
	}
}

// summary formats tokens compactly: the text of each token, with
// newlines shown as ";;".
func summary(toks []Token) string {
	var s []string
	for _, tok := range toks {
		switch tok.Type {
		case EOF:
			s = append(s, "EOF")
		case Newline:
			s = append(s, ";;")
		case Error:
			s = append(s, "error: "+tok.Text)
		default:
			s = append(s, tok.Text)
		}
	}
	return strings.Join(s, " ")
}

func TestScan(t *testing.T) {
	var tests = []struct {
		input string
		want  string
	}{
		{"", "EOF"},
		{"a = np.sum(x, axis=0)", "a = np . sum ( x , axis = 0 ) ;; EOF"},
		{"a = 1 # comment\n\n# another\nb = 2\n", "a = 1 ;; b = 2 ;; EOF"},
		{"x = [1,\n  2]\n", "x = [ 1 , 2 ] ;; EOF"},
		{"x = 1 + \\\n  2", "x = 1 + 2 ;; EOF"},
		{"a //= 2; b **= 3", "a //= 2 ; b **= 3 ;; EOF"},
		{"a <= b != c == d", "a <= b != c == d ;; EOF"},
		{"a @ b ** -c", "a @ b ** - c ;; EOF"},
		{"1_000 0x1F 0b10 1.5e-3 .5 2j", "1_000 0x1F 0b10 1.5e-3 .5 2j ;; EOF"},
		{`s = 'it\'s' + r"\n" + b''`, `s = 'it\'s' + r"\n" + b'' ;; EOF`},
		{"a.T", "a . T ;; EOF"},
		{"  a = 1", "error: unexpected indent"},
		{"s = 'abc", "s = error: unterminated string literal"},
		{"x = 1 \\ 2", "x = 1 error: unexpected character after line continuation character"},
		{"x = 12abc", "x = error: invalid number literal: 12a"},
	}
	for _, test := range tests {
		got := summary(scanAll(test.input))
		if got != test.want {
			t.Errorf("%q: expected\n\t%s\ngot\n\t%s", test.input, test.want, got)
		}
	}
}

func TestTypes(t *testing.T) {
	toks := scanAll("b += a[0]")
	want := []Type{Identifier, AugAssign, Identifier, LeftBrack, Number, RightBrack, Newline, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens; got %d: %v", len(want), len(toks), toks)
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("token %d: expected %s; got %s", i, want[i], tok.Type)
		}
	}
}

func TestLines(t *testing.T) {
	toks := scanAll("a = 1\n\nb = (2,\n 3)\nc = 4")
	lines := map[string]int{}
	for _, tok := range toks {
		if tok.Type == Identifier {
			lines[tok.Text] = tok.Line
		}
	}
	for name, line := range map[string]int{"a": 1, "b": 3, "c": 5} {
		if lines[name] != line {
			t.Errorf("%s: expected line %d; got %d", name, line, lines[name])
		}
	}
}
