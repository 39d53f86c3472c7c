// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import "math"

// Unary elementwise operators.

// UnaryOp is an elementwise function of one array.
type UnaryOp struct {
	kind func(Kind) Kind
	fn   func(float64) float64
}

// Apply applies the operator to every element of v.
func (op *UnaryOp) Apply(v Value) *Array {
	a := ToArray(v)
	data := make([]float64, len(a.data))
	for i, x := range a.data {
		data[i] = op.fn(x)
	}
	return &Array{shape: a.shape, data: data, kind: op.kind(a.kind)}
}

// Result kinds.

func floatKind(Kind) Kind  { return FloatKind }
func sameKind(k Kind) Kind { return k }
func boolKind(Kind) Kind   { return BoolKind }

// numericKind promotes booleans to integers, as arithmetic does.
func numericKind(k Kind) Kind { return maxKind(k, IntKind) }

func float(fn func(float64) float64) *UnaryOp {
	return &UnaryOp{kind: floatKind, fn: fn}
}

var (
	Sin, Cos, Tan, Arcsin, Arccos, Arctan             *UnaryOp
	Sinh, Cosh, Tanh, Arcsinh, Arccosh, Arctanh       *UnaryOp
	Exp, Expm1, Exp2, Log, Log10, Log2, Log1p         *UnaryOp
	Floor, Ceil, Trunc, Sqrt, Cbrt, Fabs              *UnaryOp
	Real, Imag, Conj, Abs, Angle, Sign, Square        *UnaryOp
	Negative, Positive, LogicalNot                    *UnaryOp
)

func init() {
	Sin = float(math.Sin)
	Cos = float(math.Cos)
	Tan = float(math.Tan)
	Arcsin = float(math.Asin)
	Arccos = float(math.Acos)
	Arctan = float(math.Atan)
	Sinh = float(math.Sinh)
	Cosh = float(math.Cosh)
	Tanh = float(math.Tanh)
	Arcsinh = float(math.Asinh)
	Arccosh = float(math.Acosh)
	Arctanh = float(math.Atanh)

	Exp = float(math.Exp)
	Expm1 = float(math.Expm1)
	Exp2 = float(math.Exp2)
	Log = float(math.Log)
	Log10 = float(math.Log10)
	Log2 = float(math.Log2)
	Log1p = float(math.Log1p)

	Floor = float(math.Floor)
	Ceil = float(math.Ceil)
	Trunc = float(math.Trunc)
	Sqrt = float(math.Sqrt)
	Cbrt = float(math.Cbrt)
	Fabs = float(math.Abs)

	// Arrays are real, so the complex-valued operators are simple.
	Real = &UnaryOp{kind: sameKind, fn: func(x float64) float64 { return x }}
	Imag = &UnaryOp{kind: sameKind, fn: func(float64) float64 { return 0 }}
	Conj = &UnaryOp{kind: sameKind, fn: func(x float64) float64 { return x }}
	Angle = float(func(x float64) float64 { return math.Atan2(0, x) })

	Abs = &UnaryOp{kind: sameKind, fn: math.Abs}
	Sign = &UnaryOp{
		kind: numericKind,
		fn: func(x float64) float64 {
			switch {
			case x < 0:
				return -1
			case x > 0:
				return 1
			}
			return x // Zero or NaN.
		},
	}
	Square = &UnaryOp{kind: numericKind, fn: func(x float64) float64 { return x * x }}
	Negative = &UnaryOp{kind: numericKind, fn: func(x float64) float64 { return -x }}
	Positive = &UnaryOp{kind: numericKind, fn: func(x float64) float64 { return x }}
	LogicalNot = &UnaryOp{kind: boolKind, fn: func(x float64) float64 { return boolFloat(x == 0) }}
}

// Around rounds v to the given number of decimals, as np.round does.
// Unlike Round it also rounds integers when decimals is negative.
func Around(v Value, decimals int) *Array {
	a := ToArray(v)
	if a.kind == BoolKind || (a.kind == IntKind && decimals >= 0) {
		return a
	}
	data := make([]float64, len(a.data))
	for i, x := range a.data {
		data[i] = roundFloat(x, decimals)
	}
	return &Array{shape: a.shape, data: data, kind: a.kind}
}
