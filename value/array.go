// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Kind is the element type of an Array. Kinds are ordered so that the
// larger of two kinds can represent every value of the smaller one.
type Kind int

const (
	BoolKind Kind = iota
	IntKind
	FloatKind
)

func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case IntKind:
		return "int64"
	case FloatKind:
		return "float64"
	}
	return "kind?"
}

// maxKind returns the larger of the two kinds, so the smaller value
// is appropriately up-converted.
func maxKind(k1, k2 Kind) Kind {
	if k1 > k2 {
		return k1
	}
	return k2
}

/*
	np.array([[1, 2, 3], [4, 5, 6]])

	shape [2 3]
	data  [1 2 3 4 5 6]
*/

// Array is an n-dimensional array stored in row-major order.
// Integers and booleans are held as float64 values; the kind
// says how they are printed and promoted. A rank 0 array is a scalar.
type Array struct {
	shape []int
	data  []float64
	kind  Kind
}

// NewArray returns a new array. The number of elements must match the shape.
func NewArray(shape []int, data []float64, kind Kind) *Array {
	for _, d := range shape {
		if d < 0 {
			Errorf("negative dimensions are not allowed")
		}
	}
	if size(shape) != len(data) {
		Errorf("inconsistent shape %s and data size %d for new array", shapeString(shape), len(data))
	}
	return &Array{
		shape: append([]int{}, shape...),
		data:  data,
		kind:  kind,
	}
}

// Scalar returns a rank 0 array holding x.
func Scalar(x float64, kind Kind) *Array {
	return &Array{shape: []int{}, data: []float64{x}, kind: kind}
}

// Shape returns a copy of the shape of the array.
func (a *Array) Shape() []int {
	return append([]int{}, a.shape...)
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// Size returns the number of elements.
func (a *Array) Size() int {
	return len(a.data)
}

// Kind returns the element kind.
func (a *Array) Kind() Kind {
	return a.kind
}

// Data returns a copy of the elements in row-major order.
func (a *Array) Data() []float64 {
	return append([]float64{}, a.data...)
}

// At returns the i'th element in row-major order.
func (a *Array) At(i int) float64 {
	return a.data[i]
}

// Equal reports whether the arrays have the same shape, kind and elements.
func (a *Array) Equal(b *Array) bool {
	if a.kind != b.kind || !sameShape(a.shape, b.shape) {
		return false
	}
	for i, x := range a.data {
		y := b.data[i]
		if x != y && !(math.IsNaN(x) && math.IsNaN(y)) {
			return false
		}
	}
	return true
}

// As returns the array converted to the kind. Conversion to int
// truncates toward zero and conversion to bool tests for non-zero.
func (a *Array) As(kind Kind) *Array {
	if kind == a.kind {
		return a
	}
	data := make([]float64, len(a.data))
	for i, x := range a.data {
		switch kind {
		case BoolKind:
			data[i] = boolFloat(x != 0)
		case IntKind:
			data[i] = math.Trunc(x)
		default:
			data[i] = x
		}
	}
	return &Array{shape: a.shape, data: data, kind: kind}
}

// reshaped returns an array sharing a's data with a new shape.
func (a *Array) reshaped(shape []int) *Array {
	return &Array{shape: shape, data: a.data, kind: a.kind}
}

// ToArray converts a materialized value to an array, as np.asarray would.
// Nested lists must be rectangular.
func ToArray(v Value) *Array {
	switch v := v.(type) {
	case *Array:
		return v
	case Int:
		return Scalar(float64(v), IntKind)
	case Float:
		return Scalar(float64(v), FloatKind)
	case Bool:
		return Scalar(boolFloat(bool(v)), BoolKind)
	case List:
		return fromList(v)
	}
	Errorf("cannot use %s as an array", v.Repr())
	return nil
}

func fromList(l List) *Array {
	if len(l.Elems) == 0 {
		return &Array{shape: []int{0}, kind: FloatKind}
	}
	elems := make([]*Array, len(l.Elems))
	kind := BoolKind
	for i, e := range l.Elems {
		elems[i] = ToArray(e)
		kind = maxKind(kind, elems[i].kind)
	}
	inner := elems[0].shape
	data := make([]float64, 0, len(elems)*size(inner))
	for _, e := range elems {
		if !sameShape(e.shape, inner) {
			Errorf("setting an array element with a sequence: inhomogeneous shape %s and %s", shapeString(inner), shapeString(e.shape))
		}
		data = append(data, e.data...)
	}
	shape := append([]int{len(elems)}, inner...)
	return &Array{shape: shape, data: data, kind: kind}
}

// AtLeast2D pads the shape of v with leading axes of size 1 until it has
// at least two dimensions, as np.atleast_2d does. It is a display
// normalization: the element count and order never change.
// Values other than arrays are returned unchanged.
func AtLeast2D(v Value) Value {
	a, ok := v.(*Array)
	if !ok {
		return v
	}
	switch a.Rank() {
	case 0:
		return a.reshaped([]int{1, 1})
	case 1:
		return a.reshaped([]int{1, a.shape[0]})
	}
	return a
}

// Round rounds every floating-point element of v to the number of
// decimals, rounding halves to even as np.around does. Integer and
// boolean arrays are returned unchanged. Lists are rounded elementwise.
func Round(v Value, decimals int) Value {
	switch v := v.(type) {
	case *Array:
		return roundArray(v, decimals)
	case List:
		elems := make([]Value, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = Round(e, decimals)
		}
		return List{Elems: elems, Tuple: v.Tuple}
	case Float:
		return Float(roundFloat(float64(v), decimals))
	}
	return v
}

func roundArray(a *Array, decimals int) *Array {
	if a.kind != FloatKind {
		return a
	}
	data := make([]float64, len(a.data))
	for i, x := range a.data {
		data[i] = roundFloat(x, decimals)
	}
	return &Array{shape: a.shape, data: data, kind: a.kind}
}

func roundFloat(x float64, decimals int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return scalar.RoundEven(x, decimals)
}

// Stack joins arrays of identical shape along a new leading axis.
// It reports false if the shapes differ or there is nothing to stack.
func Stack(arrays []*Array) (*Array, bool) {
	if len(arrays) == 0 {
		return nil, false
	}
	inner := arrays[0].shape
	kind := BoolKind
	data := make([]float64, 0, len(arrays)*size(inner))
	for _, a := range arrays {
		if !sameShape(a.shape, inner) {
			return nil, false
		}
		kind = maxKind(kind, a.kind)
		data = append(data, a.data...)
	}
	return &Array{shape: append([]int{len(arrays)}, inner...), data: data, kind: kind}, true
}

func boolFloat(t bool) float64 {
	if t {
		return 1
	}
	return 0
}

// size returns the number of elements of an array with the shape.
func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// stridesOf returns the row-major strides, in elements, of the shape.
func stridesOf(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}
	return strides
}

func sameShape(x, y []int) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// normAxis converts a possibly negative axis to an index in [0, rank).
func normAxis(axis, rank int) int {
	if axis < -rank || axis >= rank {
		Errorf("axis %d is out of bounds for array of dimension %d", axis, rank)
	}
	if axis < 0 {
		axis += rank
	}
	return axis
}
