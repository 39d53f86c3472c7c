// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value implements the values that flow through npviz: n-dimensional
// arrays, the literal values the resolver extracts from source text, and the
// numeric kernels that operate on them.
package value // import "numpyviz.dev/npviz/value"

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is implemented by every operand, keyword value and result.
type Value interface {
	// String returns the display form, as Python's str would print it.
	String() string
	// Repr returns the unambiguous form, as Python's repr would print it.
	Repr() string
}

// Error is the type recovered at the stage boundaries. Kernels and
// argument decoders report failures by panicking with an Error.
type Error string

func (err Error) Error() string {
	return string(err)
}

// Errorf panics with a formatted Error.
func Errorf(format string, args ...interface{}) {
	panic(Error(fmt.Sprintf(format, args...)))
}

// Int is an integer literal.
type Int int64

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Repr() string   { return i.String() }

// Float is a floating-point literal.
type Float float64

func (f Float) String() string { return formatPyFloat(float64(f)) }
func (f Float) Repr() string   { return f.String() }

// Bool is True or False.
type Bool bool

func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

func (b Bool) Repr() string { return b.String() }

// String is a string literal.
type String string

func (s String) String() string { return string(s) }
func (s String) Repr() string   { return pyQuote(string(s)) }

// Name is an identifier that was never bound to a value. It is passed
// through as the bare identifier text.
type Name string

func (n Name) String() string { return string(n) }
func (n Name) Repr() string   { return pyQuote(string(n)) }

// None is Python's None.
type None struct{}

func (None) String() string { return "None" }
func (None) Repr() string   { return "None" }

// List is a list or tuple literal. Its elements may be any Value,
// including references to operation nodes.
type List struct {
	Elems []Value
	Tuple bool
}

func (l List) String() string { return l.Repr() }

func (l List) Repr() string {
	var b strings.Builder
	open, close := "[", "]"
	if l.Tuple {
		open, close = "(", ")"
	}
	b.WriteString(open)
	for i, e := range l.Elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Repr())
	}
	if l.Tuple && len(l.Elems) == 1 {
		b.WriteByte(',')
	}
	b.WriteString(close)
	return b.String()
}

// Unresolved is a syntax shape the resolver does not support. It carries
// the source form so a later stage that is handed one can say what it was.
type Unresolved struct {
	Kind string // The kind of syntax node, such as "subscript".
	Text string // The source form of the expression.
}

func (u Unresolved) String() string { return u.Text }
func (u Unresolved) Repr() string   { return fmt.Sprintf("<unresolved %s %s>", u.Kind, u.Text) }

// Kwarg is one keyword argument. Keyword arguments are kept in a slice
// so they retain the order in which they were written.
type Kwarg struct {
	Name  string
	Value Value
}

// KwargsRepr formats keyword arguments as a Python dict.
func KwargsRepr(kwargs []Kwarg) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, kw := range kwargs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", pyQuote(kw.Name), kw.Value.Repr())
	}
	b.WriteByte('}')
	return b.String()
}

// ListRepr formats a slice of values as a Python list.
func ListRepr(vals []Value) string {
	return List{Elems: vals}.Repr()
}

// pyQuote quotes s the way Python's repr quotes a str.
func pyQuote(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < ' ':
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// formatPyFloat formats x as Python's repr of a float does.
func formatPyFloat(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	if ax := math.Abs(x); ax >= 1e16 || (ax != 0 && ax < 1e-4) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
