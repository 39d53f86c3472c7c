// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import "numpyviz.dev/npviz/value"

// Kernel constructors.

func unary(name string, fn *value.UnaryOp) Kernel {
	params := []param{req("x")}
	return func(args []value.Value, kwargs []value.Kwarg) value.Value {
		v := bind(name, params, args, kwargs)
		return fn.Apply(v[0])
	}
}

func binary(name string, fn *value.BinaryOp) Kernel {
	params := []param{req("x1"), req("x2")}
	return func(args []value.Value, kwargs []value.Kwarg) value.Value {
		v := bind(name, params, args, kwargs)
		return fn.Apply(v[0], v[1])
	}
}

type reducer func(a *value.Array, axes []int, keepdims bool) *value.Array

func reduction(name string, fn reducer) Kernel {
	params := []param{req("a"), opt("axis", none), opt("keepdims", value.Bool(false))}
	return func(args []value.Value, kwargs []value.Kwarg) value.Value {
		v := bind(name, params, args, kwargs)
		return fn(array(v[0]), axes(v[1]), boolean(v[2]))
	}
}

type deviation func(a *value.Array, axes []int, keepdims bool, ddof int) *value.Array

func spread(name string, fn deviation) Kernel {
	params := []param{req("a"), opt("axis", none), opt("ddof", value.Int(0)), opt("keepdims", value.Bool(false))}
	return func(args []value.Value, kwargs []value.Kwarg) value.Value {
		v := bind(name, params, args, kwargs)
		return fn(array(v[0]), axes(v[1]), boolean(v[3]), integer("ddof", v[2]))
	}
}

func roundKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	v := bind("round", []param{req("a"), opt("decimals", value.Int(0))}, args, kwargs)
	return value.Around(v[0], integer("decimals", v[1]))
}

func averageKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	params := []param{req("a"), opt("axis", none), opt("weights", none), opt("keepdims", value.Bool(false))}
	v := bind("average", params, args, kwargs)
	var weights *value.Array
	if !isNone(v[2]) {
		weights = array(v[2])
	}
	return value.Average(array(v[0]), axes(v[1]), weights, boolean(v[3]))
}

func concatenateKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	v := bind("concatenate", []param{req("arrays"), opt("axis", value.Int(0))}, args, kwargs)
	if isNone(v[1]) {
		return value.Concatenate(arrays(v[0]), 0, true)
	}
	return value.Concatenate(arrays(v[0]), integer("axis", v[1]), false)
}

func reshapeKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	params := []param{req("a"), opt("shape", none), opt("order", value.String("C")), opt("newshape", none)}
	v := bind("reshape", params, args, kwargs)
	shape := v[1]
	switch {
	case isNone(shape) && isNone(v[3]):
		value.Errorf("reshape() missing required argument 'shape' (pos 2)")
	case isNone(shape):
		shape = v[3]
	case !isNone(v[3]):
		value.Errorf("You cannot specify 'newshape' and 'shape' arguments at the same time.")
	}
	return value.Reshape(array(v[0]), integers("shape", shape), order(v[2]))
}

func ravelKernel(name string) Kernel {
	params := []param{req("a"), opt("order", value.String("C"))}
	return func(args []value.Value, kwargs []value.Kwarg) value.Value {
		v := bind(name, params, args, kwargs)
		return value.Ravel(array(v[0]), order(v[1]))
	}
}

func squeezeKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	v := bind("squeeze", []param{req("a"), opt("axis", none)}, args, kwargs)
	return value.Squeeze(array(v[0]), axes(v[1]))
}

func expandDimsKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	v := bind("expand_dims", []param{req("a"), req("axis")}, args, kwargs)
	return value.ExpandDims(array(v[0]), integers("axis", v[1]))
}

func transposeKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	v := bind("transpose", []param{req("a"), opt("axes", none)}, args, kwargs)
	return value.Transpose(array(v[0]), axes(v[1]))
}

func splitKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	params := []param{req("ary"), req("indices_or_sections"), opt("axis", value.Int(0))}
	v := bind("split", params, args, kwargs)
	a, axis := array(v[0]), integer("axis", v[2])
	var parts []*value.Array
	switch ix := v[1].(type) {
	case value.Int, value.Bool:
		parts = value.SplitSections(a, integer("indices_or_sections", ix), axis)
	default:
		parts = value.SplitIndices(a, integers("indices_or_sections", ix), axis)
	}
	list := value.List{Elems: make([]value.Value, len(parts))}
	for i, p := range parts {
		list.Elems[i] = p
	}
	return list
}

func broadcastToKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	v := bind("broadcast_to", []param{req("array"), req("shape")}, args, kwargs)
	return value.BroadcastTo(array(v[0]), integers("shape", v[1]))
}

func matmulKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	v := bind("matmul", []param{req("x1"), req("x2")}, args, kwargs)
	return value.Matmul(array(v[0]), array(v[1]))
}

func dotKernel(args []value.Value, kwargs []value.Kwarg) value.Value {
	v := bind("dot", []param{req("a"), req("b")}, args, kwargs)
	return value.Dot(array(v[0]), array(v[1]))
}

// standardDefs returns the definition of every operation.
func standardDefs() []Def {
	defs := []Def{
		{Op: Matmul, Kernel: matmulKernel, Family: MatrixProduct},
		{Op: Dot, Kernel: dotKernel, Family: MatrixProduct},
		{Op: Round, Kernel: roundKernel, Family: Elementwise},
		{Op: Negative, Kernel: unary("negative", value.Negative)},
		{Op: Positive, Kernel: unary("positive", value.Positive)},

		{Op: Sum, Kernel: reduction("sum", value.Sum), Family: Reduction},
		{Op: Mean, Kernel: reduction("mean", value.Mean), Family: Reduction},
		{Op: Max, Kernel: reduction("max", value.Max), Family: Reduction},
		{Op: Min, Kernel: reduction("min", value.Min), Family: Reduction},
		{Op: Median, Kernel: reduction("median", value.Median), Family: Reduction},
		{Op: Prod, Kernel: reduction("prod", value.Prod), Family: Reduction},
		{Op: Std, Kernel: spread("std", value.Std), Family: Reduction},
		{Op: Var, Kernel: spread("var", value.Var), Family: Reduction},
		{Op: Average, Kernel: averageKernel, Family: Reduction},

		{Op: Concatenate, Kernel: concatenateKernel, Family: ConcatenateFamily},
		{Op: Reshape, Kernel: reshapeKernel, Family: ReshapeFamily, Varargs: true},
		{Op: Ravel, Kernel: ravelKernel("ravel"), Family: RavelFamily},
		{Op: Flatten, Kernel: ravelKernel("flatten"), Family: FlattenFamily},
		{Op: Squeeze, Kernel: squeezeKernel, Family: SqueezeFamily},
		{Op: ExpandDims, Kernel: expandDimsKernel, Family: ExpandDimsFamily},
		{Op: Transpose, Kernel: transposeKernel, Family: TransposeFamily, Varargs: true},
		{Op: Split, Kernel: splitKernel, Family: SplitFamily},
		{Op: BroadcastTo, Kernel: broadcastToKernel, Family: BroadcastFamily},
	}
	for op, fn := range map[Op]*value.BinaryOp{
		Add:         value.Add,
		Subtract:    value.Subtract,
		Multiply:    value.Multiply,
		Divide:      value.Divide,
		FloorDivide: value.FloorDivide,
		Mod:         value.Mod,
		Power:       value.Power,
		Heaviside:   value.Heaviside,
		Maximum:     value.Maximum,
		Minimum:     value.Minimum,
	} {
		defs = append(defs, Def{Op: op, Kernel: binary(op.String(), fn), Family: Elementwise})
	}
	for op, fn := range map[Op]*value.BinaryOp{
		LogicalAnd:   value.LogicalAnd,
		LogicalOr:    value.LogicalOr,
		LogicalXor:   value.LogicalXor,
		Equal:        value.Equal,
		NotEqual:     value.NotEqual,
		Less:         value.Less,
		LessEqual:    value.LessEqual,
		Greater:      value.Greater,
		GreaterEqual: value.GreaterEqual,
	} {
		defs = append(defs, Def{Op: op, Kernel: binary(op.String(), fn)})
	}
	for op, fn := range map[Op]*value.UnaryOp{
		Sin: value.Sin, Cos: value.Cos, Tan: value.Tan,
		Arcsin: value.Arcsin, Arccos: value.Arccos, Arctan: value.Arctan,
		Sinh: value.Sinh, Cosh: value.Cosh, Tanh: value.Tanh,
		Arcsinh: value.Arcsinh, Arccosh: value.Arccosh, Arctanh: value.Arctanh,
		Exp: value.Exp, Expm1: value.Expm1, Exp2: value.Exp2,
		Log: value.Log, Log10: value.Log10, Log2: value.Log2, Log1p: value.Log1p,
		Floor: value.Floor, Ceil: value.Ceil, Trunc: value.Trunc,
		Sqrt: value.Sqrt, Cbrt: value.Cbrt, Square: value.Square,
		Abs: value.Abs, Fabs: value.Fabs, Sign: value.Sign,
	} {
		defs = append(defs, Def{Op: op, Kernel: unary(op.String(), fn), Family: Elementwise})
	}
	for op, fn := range map[Op]*value.UnaryOp{
		Real: value.Real, Imag: value.Imag, Conj: value.Conj, Angle: value.Angle,
		LogicalNot: value.LogicalNot,
	} {
		defs = append(defs, Def{Op: op, Kernel: unary(op.String(), fn)})
	}
	return defs
}
