// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ops defines the closed vocabulary of operations npviz understands.
// Each operation carries its numeric kernel and the family of renderers
// that can draw it; the pairing is checked once, when a Registry is built.
package ops // import "numpyviz.dev/npviz/ops"

import "fmt"

// Op identifies an operation.
type Op int

const (
	Invalid Op = iota
	Array      // Literal array; never evaluated.

	// Arithmetic.
	Add
	Matmul
	Subtract
	Multiply
	Divide
	FloorDivide
	Mod
	Power
	Negative
	Positive

	// Trigonometric and hyperbolic.
	Sin
	Cos
	Tan
	Arcsin
	Arccos
	Arctan
	Sinh
	Cosh
	Tanh
	Arcsinh
	Arccosh
	Arctanh

	// Exponents and logarithms.
	Exp
	Expm1
	Exp2
	Log
	Log10
	Log2
	Log1p

	// Rounding and parts.
	Round
	Floor
	Ceil
	Trunc
	Real
	Imag
	Conj
	Abs
	Angle

	// Logic and comparison.
	LogicalNot
	LogicalAnd
	LogicalOr
	LogicalXor
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	// Miscellaneous elementwise.
	Sqrt
	Cbrt
	Square
	Fabs
	Sign
	Heaviside
	Maximum
	Minimum

	// Reductions.
	Sum
	Mean
	Max
	Min
	Median
	Std
	Var
	Prod
	Average

	// Structure.
	Concatenate
	Reshape
	Squeeze
	ExpandDims
	Transpose
	Split
	BroadcastTo
	Flatten
	Ravel
	Dot

	numOps
)

var names = [numOps]string{
	Invalid:      "invalid",
	Array:        "array",
	Add:          "add",
	Matmul:       "matmul",
	Subtract:     "subtract",
	Multiply:     "multiply",
	Divide:       "divide",
	FloorDivide:  "floor_divide",
	Mod:          "mod",
	Power:        "power",
	Negative:     "negative",
	Positive:     "positive",
	Sin:          "sin",
	Cos:          "cos",
	Tan:          "tan",
	Arcsin:       "arcsin",
	Arccos:       "arccos",
	Arctan:       "arctan",
	Sinh:         "sinh",
	Cosh:         "cosh",
	Tanh:         "tanh",
	Arcsinh:      "arcsinh",
	Arccosh:      "arccosh",
	Arctanh:      "arctanh",
	Exp:          "exp",
	Expm1:        "expm1",
	Exp2:         "exp2",
	Log:          "log",
	Log10:        "log10",
	Log2:         "log2",
	Log1p:        "log1p",
	Round:        "round",
	Floor:        "floor",
	Ceil:         "ceil",
	Trunc:        "trunc",
	Real:         "real",
	Imag:         "imag",
	Conj:         "conj",
	Abs:          "abs",
	Angle:        "angle",
	LogicalNot:   "logical_not",
	LogicalAnd:   "logical_and",
	LogicalOr:    "logical_or",
	LogicalXor:   "logical_xor",
	Equal:        "equal",
	NotEqual:     "not_equal",
	Less:         "less",
	LessEqual:    "less_equal",
	Greater:      "greater",
	GreaterEqual: "greater_equal",
	Sqrt:         "sqrt",
	Cbrt:         "cbrt",
	Square:       "square",
	Fabs:         "fabs",
	Sign:         "sign",
	Heaviside:    "heaviside",
	Maximum:      "maximum",
	Minimum:      "minimum",
	Sum:          "sum",
	Mean:         "mean",
	Max:          "max",
	Min:          "min",
	Median:       "median",
	Std:          "std",
	Var:          "var",
	Prod:         "prod",
	Average:      "average",
	Concatenate:  "concatenate",
	Reshape:      "reshape",
	Squeeze:      "squeeze",
	ExpandDims:   "expand_dims",
	Transpose:    "transpose",
	Split:        "split",
	BroadcastTo:  "broadcast_to",
	Flatten:      "flatten",
	Ravel:        "ravel",
	Dot:          "dot",
}

var byName = map[string]Op{}

func init() {
	for op := Array; op < numOps; op++ {
		name := names[op]
		if name == "" {
			panic(fmt.Sprintf("ops: operation %d has no name", int(op)))
		}
		if _, dup := byName[name]; dup {
			panic("ops: duplicate operation name " + name)
		}
		byName[name] = op
	}
}

func (op Op) String() string {
	if op < 0 || op >= numOps {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return names[op]
}

// Parse returns the operation with the name. The literal array
// tag is not an operation and is not found.
func Parse(name string) (Op, bool) {
	op, ok := byName[name]
	if op == Array {
		return Invalid, false
	}
	return op, ok
}

// All returns every operation in the vocabulary, in order.
func All() []Op {
	ops := make([]Op, 0, numOps-Add)
	for op := Add; op < numOps; op++ {
		ops = append(ops, op)
	}
	return ops
}

// Family groups operations that are drawn the same way.
type Family int

const (
	NoFamily Family = iota
	Elementwise
	MatrixProduct
	Reduction
	ReshapeFamily
	RavelFamily
	FlattenFamily
	SqueezeFamily
	ExpandDimsFamily
	ConcatenateFamily
	SplitFamily
	TransposeFamily
	BroadcastFamily
)

var familyNames = [...]string{
	NoFamily:          "none",
	Elementwise:       "elementwise",
	MatrixProduct:     "matmul",
	Reduction:         "reduction",
	ReshapeFamily:     "reshape",
	RavelFamily:       "ravel",
	FlattenFamily:     "flatten",
	SqueezeFamily:     "squeeze",
	ExpandDimsFamily:  "expand_dims",
	ConcatenateFamily: "concatenate",
	SplitFamily:       "split",
	TransposeFamily:   "transpose",
	BroadcastFamily:   "broadcast",
}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}
