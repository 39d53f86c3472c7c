// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import "math"

// Binary elementwise operators.

// BinaryOp is an elementwise function of two arrays. The operands are
// broadcast against each other before the function is applied.
type BinaryOp struct {
	kind func(k1, k2 Kind) Kind
	fn   func(x, y float64) float64
	// intFn, if set, replaces fn when the result kind is integral.
	intFn func(x, y float64) float64
}

// Apply applies the operator elementwise to x and y.
func (op *BinaryOp) Apply(x, y Value) *Array {
	a, b := ToArray(x), ToArray(y)
	shape := broadcastShapes(a.shape, b.shape)
	a, b = broadcastTo(a, shape), broadcastTo(b, shape)
	kind := op.kind(a.kind, b.kind)
	fn := op.fn
	if op.intFn != nil && kind != FloatKind {
		fn = op.intFn
	}
	data := make([]float64, len(a.data))
	for i := range data {
		data[i] = fn(a.data[i], b.data[i])
	}
	return &Array{shape: shape, data: data, kind: kind}
}

// arithKind returns the larger of the two kinds, but never
// smaller than IntKind.
func arithKind(k1, k2 Kind) Kind {
	return maxKind(maxKind(k1, k2), IntKind)
}

func divKind(Kind, Kind) Kind  { return FloatKind }
func cmpKind(Kind, Kind) Kind  { return BoolKind }
func wideKind(k1, k2 Kind) Kind { return maxKind(k1, k2) }

// pyMod returns x modulo y with the sign of y, as Python and NumPy do.
func pyMod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

// intPow returns x**y for y >= 0, wrapping on overflow as int64 does.
func intPow(x, y int64) int64 {
	r := int64(1)
	for ; y > 0; y >>= 1 {
		if y&1 != 0 {
			r *= x
		}
		x *= x
	}
	return r
}

func truth(x float64) bool { return x != 0 }

var (
	Add, Subtract, Multiply, Divide, FloorDivide, Mod, Power *BinaryOp
	Maximum, Minimum, Heaviside                               *BinaryOp
	Equal, NotEqual, Less, LessEqual, Greater, GreaterEqual   *BinaryOp
	LogicalAnd, LogicalOr, LogicalXor                         *BinaryOp
)

func init() {
	Add = &BinaryOp{
		kind:  arithKind,
		fn:    func(x, y float64) float64 { return x + y },
		intFn: func(x, y float64) float64 { return float64(int64(x) + int64(y)) },
	}
	Subtract = &BinaryOp{
		kind:  arithKind,
		fn:    func(x, y float64) float64 { return x - y },
		intFn: func(x, y float64) float64 { return float64(int64(x) - int64(y)) },
	}
	Multiply = &BinaryOp{
		kind:  arithKind,
		fn:    func(x, y float64) float64 { return x * y },
		intFn: func(x, y float64) float64 { return float64(int64(x) * int64(y)) },
	}
	Divide = &BinaryOp{kind: divKind, fn: func(x, y float64) float64 { return x / y }}

	FloorDivide = &BinaryOp{
		kind: arithKind,
		fn:   func(x, y float64) float64 { return math.Floor(x / y) },
		intFn: func(x, y float64) float64 {
			if y == 0 {
				return 0
			}
			return math.Floor(x / y)
		},
	}

	Mod = &BinaryOp{
		kind: arithKind,
		fn:   pyMod,
		intFn: func(x, y float64) float64 {
			if y == 0 {
				return 0
			}
			return pyMod(x, y)
		},
	}

	Power = &BinaryOp{
		kind: arithKind,
		fn:   math.Pow,
		intFn: func(x, y float64) float64 {
			if y < 0 {
				Errorf("Integers to negative integer powers are not allowed.")
			}
			return float64(intPow(int64(x), int64(y)))
		},
	}

	Maximum = &BinaryOp{
		kind: wideKind,
		fn: func(x, y float64) float64 {
			if math.IsNaN(x) || math.IsNaN(y) {
				return math.NaN()
			}
			return math.Max(x, y)
		},
	}
	Minimum = &BinaryOp{
		kind: wideKind,
		fn: func(x, y float64) float64 {
			if math.IsNaN(x) || math.IsNaN(y) {
				return math.NaN()
			}
			return math.Min(x, y)
		},
	}
	Heaviside = &BinaryOp{
		kind: divKind,
		fn: func(x, y float64) float64 {
			switch {
			case x < 0:
				return 0
			case x > 0:
				return 1
			case x == 0:
				return y
			}
			return x // NaN.
		},
	}

	Equal = &BinaryOp{kind: cmpKind, fn: func(x, y float64) float64 { return boolFloat(x == y) }}
	NotEqual = &BinaryOp{kind: cmpKind, fn: func(x, y float64) float64 { return boolFloat(x != y) }}
	Less = &BinaryOp{kind: cmpKind, fn: func(x, y float64) float64 { return boolFloat(x < y) }}
	LessEqual = &BinaryOp{kind: cmpKind, fn: func(x, y float64) float64 { return boolFloat(x <= y) }}
	Greater = &BinaryOp{kind: cmpKind, fn: func(x, y float64) float64 { return boolFloat(x > y) }}
	GreaterEqual = &BinaryOp{kind: cmpKind, fn: func(x, y float64) float64 { return boolFloat(x >= y) }}

	LogicalAnd = &BinaryOp{kind: cmpKind, fn: func(x, y float64) float64 { return boolFloat(truth(x) && truth(y)) }}
	LogicalOr = &BinaryOp{kind: cmpKind, fn: func(x, y float64) float64 { return boolFloat(truth(x) || truth(y)) }}
	LogicalXor = &BinaryOp{kind: cmpKind, fn: func(x, y float64) float64 { return boolFloat(truth(x) != truth(y)) }}
}

// broadcastShapes returns the shape two operands broadcast to, following
// NumPy's rules: shapes are aligned on the right, and each pair of
// dimensions must be equal or contain a 1.
func broadcastShapes(x, y []int) []int {
	n := max(len(x), len(y))
	shape := make([]int, n)
	for i := 1; i <= n; i++ {
		dx, dy := 1, 1
		if i <= len(x) {
			dx = x[len(x)-i]
		}
		if i <= len(y) {
			dy = y[len(y)-i]
		}
		switch {
		case dx == dy, dy == 1:
			shape[n-i] = dx
		case dx == 1:
			shape[n-i] = dy
		default:
			Errorf("operands could not be broadcast together with shapes %s %s", shapeString(x), shapeString(y))
		}
	}
	return shape
}

// broadcastTo returns a with its elements repeated to fill the shape.
func broadcastTo(a *Array, shape []int) *Array {
	if sameShape(a.shape, shape) {
		return a
	}
	if len(shape) < a.Rank() {
		Errorf("input operand has more dimensions than allowed by the axis remapping")
	}
	off := len(shape) - a.Rank()
	src := stridesOf(a.shape)
	strides := make([]int, len(shape))
	for i := off; i < len(shape); i++ {
		d := a.shape[i-off]
		switch {
		case d == shape[i]:
			strides[i] = src[i-off]
		case d == 1:
			strides[i] = 0
		default:
			Errorf("operands could not be broadcast together with remapped shapes [original->remapped]: %s and requested shape %s",
				shapeString(a.shape), shapeString(shape))
		}
	}
	return gather(a, shape, strides)
}

// gather builds an array of the given shape whose elements are read from
// a's data by walking it with the strides, in elements, one per axis.
// Zero strides repeat elements; permuted strides transpose.
func gather(a *Array, shape, strides []int) *Array {
	data := make([]float64, size(shape))
	idx := make([]int, len(shape))
	pos := 0
	for k := range data {
		data[k] = a.data[pos]
		for d := len(shape) - 1; d >= 0; d-- {
			idx[d]++
			pos += strides[d]
			if idx[d] < shape[d] {
				break
			}
			pos -= strides[d] * idx[d]
			idx[d] = 0
		}
	}
	return &Array{shape: append([]int{}, shape...), data: data, kind: a.kind}
}
