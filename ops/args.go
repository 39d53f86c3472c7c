// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"math"

	"numpyviz.dev/npviz/value"
)

// param is one parameter of a kernel. A nil def means the parameter
// is required.
type param struct {
	name string
	def  value.Value
}

func req(name string) param                  { return param{name: name} }
func opt(name string, def value.Value) param { return param{name: name, def: def} }

var none = value.None{}

// bind matches the arguments of a call to the parameters, the way
// Python does, and returns one value per parameter.
func bind(fn string, params []param, args []value.Value, kwargs []value.Kwarg) []value.Value {
	if len(args) > len(params) {
		value.Errorf("%s() takes at most %d positional arguments (%d given)", fn, len(params), len(args))
	}
	vals := make([]value.Value, len(params))
	copy(vals, args)
	for _, kw := range kwargs {
		i := indexOf(params, kw.Name)
		switch {
		case i < 0:
			value.Errorf("%s() got an unexpected keyword argument '%s'", fn, kw.Name)
		case vals[i] != nil:
			value.Errorf("%s() got multiple values for argument '%s'", fn, kw.Name)
		}
		vals[i] = kw.Value
	}
	for i, p := range params {
		if vals[i] != nil {
			continue
		}
		if p.def == nil {
			value.Errorf("%s() missing required argument '%s' (pos %d)", fn, p.name, i+1)
		}
		vals[i] = p.def
	}
	return vals
}

func indexOf(params []param, name string) int {
	for i, p := range params {
		if p.name == name {
			return i
		}
	}
	return -1
}

// Argument decoders. Each converts a materialized argument to the Go
// form a kernel needs, or panics with a value.Error.

func array(v value.Value) *value.Array {
	return value.ToArray(v)
}

// integer decodes a Python integer. Booleans count, as in Python;
// integral arrays with a single element do too.
func integer(what string, v value.Value) int {
	switch v := v.(type) {
	case value.Int:
		return int(v)
	case value.Bool:
		if v {
			return 1
		}
		return 0
	case *value.Array:
		if v.Size() == 1 && v.Kind() != value.FloatKind {
			return int(v.At(0))
		}
	}
	value.Errorf("%s: %s cannot be interpreted as an integer", what, v.Repr())
	return 0
}

// integers decodes an integer or a sequence of integers.
func integers(what string, v value.Value) []int {
	switch v := v.(type) {
	case value.List:
		ints := make([]int, len(v.Elems))
		for i, e := range v.Elems {
			ints[i] = integer(what, e)
		}
		return ints
	case *value.Array:
		if v.Kind() == value.FloatKind {
			value.Errorf("%s: float array cannot be interpreted as integers", what)
		}
		ints := make([]int, v.Size())
		for i := range ints {
			ints[i] = int(v.At(i))
		}
		return ints
	}
	return []int{integer(what, v)}
}

// axes decodes an axis argument: None for every axis, an integer or a
// tuple of integers.
func axes(v value.Value) []int {
	if _, ok := v.(value.None); ok {
		return nil
	}
	return integers("axis", v)
}

func boolean(v value.Value) bool {
	switch v := v.(type) {
	case value.Bool:
		return bool(v)
	case value.Int:
		return v != 0
	case value.Float:
		return v != 0 && !math.IsNaN(float64(v))
	case value.None:
		return false
	}
	value.Errorf("%s cannot be interpreted as a boolean", v.Repr())
	return false
}

// order decodes a memory layout order. 'A' and 'K' mean 'C' for
// arrays that are always contiguous.
func order(v value.Value) byte {
	if _, ok := v.(value.None); ok {
		return 'C'
	}
	s, ok := v.(value.String)
	if ok && len(s) == 1 {
		switch s[0] {
		case 'C', 'c', 'A', 'a', 'K', 'k':
			return 'C'
		case 'F', 'f':
			return 'F'
		}
	}
	value.Errorf("order must be one of 'C', 'F', 'A', or 'K' (got %s)", v.Repr())
	return 0
}

// arrays decodes a sequence of arrays. An array is a sequence of its
// subarrays along the first axis.
func arrays(v value.Value) []*value.Array {
	switch v := v.(type) {
	case value.List:
		as := make([]*value.Array, len(v.Elems))
		for i, e := range v.Elems {
			as[i] = value.ToArray(e)
		}
		return as
	case *value.Array:
		if v.Rank() == 0 {
			value.Errorf("zero-dimensional arrays cannot be concatenated")
		}
		return value.SplitSections(v, v.Shape()[0], 0)
	}
	value.Errorf("expected a sequence of arrays, got %s", v.Repr())
	return nil
}

func isNone(v value.Value) bool {
	_, ok := v.(value.None)
	return ok
}
