// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Reductions. For each of these, axes selects the axes to reduce over;
// nil means every axis. Reduced axes are dropped from the result unless
// keepdims is set, in which case they remain with length 1.

// groups rearranges a so that the elements of each reduction form a
// contiguous run of n elements. It returns the rearranged array and the
// shape of the result.
func groups(a *Array, axes []int, keepdims bool) (t *Array, shape []int, n int) {
	reduced := make([]bool, a.Rank())
	if axes == nil {
		for i := range reduced {
			reduced[i] = true
		}
	}
	for _, ax := range axes {
		ax = normAxis(ax, a.Rank())
		if reduced[ax] {
			Errorf("duplicate value in 'axis'")
		}
		reduced[ax] = true
	}
	var perm []int
	shape = []int{}
	for i, d := range a.shape {
		if !reduced[i] {
			perm = append(perm, i)
			shape = append(shape, d)
		}
	}
	n = 1
	for i, d := range a.shape {
		if reduced[i] {
			perm = append(perm, i)
			n *= d
		}
	}
	if keepdims {
		shape = make([]int, a.Rank())
		for i, d := range a.shape {
			shape[i] = d
			if reduced[i] {
				shape[i] = 1
			}
		}
	}
	return a.permute(perm), shape, n
}

func reduce(a *Array, axes []int, keepdims bool, kind Kind, fn func([]float64) float64) *Array {
	t, shape, n := groups(a, axes, keepdims)
	data := make([]float64, size(shape))
	for i := range data {
		data[i] = fn(t.data[i*n : (i+1)*n])
	}
	return &Array{shape: shape, data: data, kind: kind}
}

func hasNaN(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Sum returns the sum of the elements over the axes.
func Sum(a *Array, axes []int, keepdims bool) *Array {
	return reduce(a, axes, keepdims, numericKind(a.kind), floats.Sum)
}

// Prod returns the product of the elements over the axes.
func Prod(a *Array, axes []int, keepdims bool) *Array {
	return reduce(a, axes, keepdims, numericKind(a.kind), floats.Prod)
}

// Max returns the largest element over the axes. NaNs propagate.
func Max(a *Array, axes []int, keepdims bool) *Array {
	return reduce(a, axes, keepdims, a.kind, func(x []float64) float64 {
		if len(x) == 0 {
			Errorf("zero-size array to reduction operation maximum which has no identity")
		}
		if hasNaN(x) {
			return math.NaN()
		}
		return floats.Max(x)
	})
}

// Min returns the smallest element over the axes. NaNs propagate.
func Min(a *Array, axes []int, keepdims bool) *Array {
	return reduce(a, axes, keepdims, a.kind, func(x []float64) float64 {
		if len(x) == 0 {
			Errorf("zero-size array to reduction operation minimum which has no identity")
		}
		if hasNaN(x) {
			return math.NaN()
		}
		return floats.Min(x)
	})
}

// Mean returns the arithmetic mean over the axes.
func Mean(a *Array, axes []int, keepdims bool) *Array {
	return reduce(a, axes, keepdims, FloatKind, func(x []float64) float64 {
		return stat.Mean(x, nil)
	})
}

// Median returns the median over the axes. The median of an even number
// of elements is the mean of the two middle ones.
func Median(a *Array, axes []int, keepdims bool) *Array {
	return reduce(a, axes, keepdims, FloatKind, func(x []float64) float64 {
		if len(x) == 0 || hasNaN(x) {
			return math.NaN()
		}
		s := append([]float64{}, x...)
		sort.Float64s(s)
		mid := len(s) / 2
		if len(s)%2 == 1 {
			return s[mid]
		}
		return (s[mid-1] + s[mid]) / 2
	})
}

// Var returns the variance over the axes, divided by n-ddof.
func Var(a *Array, axes []int, keepdims bool, ddof int) *Array {
	return reduce(a, axes, keepdims, FloatKind, func(x []float64) float64 {
		return variance(x, ddof)
	})
}

// Std returns the standard deviation over the axes, using Var's divisor.
func Std(a *Array, axes []int, keepdims bool, ddof int) *Array {
	return reduce(a, axes, keepdims, FloatKind, func(x []float64) float64 {
		return math.Sqrt(variance(x, ddof))
	})
}

func variance(x []float64, ddof int) float64 {
	n := float64(len(x))
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.PopVariance(x, nil) * n / math.Max(n-float64(ddof), 0)
}

// Average returns the weighted mean over the axes. If weights is nil it is
// the same as Mean. Weights must have the shape of a, or be one-dimensional
// with the length of the single axis being averaged.
func Average(a *Array, axes []int, weights *Array, keepdims bool) *Array {
	if weights == nil {
		return Mean(a, axes, keepdims)
	}
	w := weights
	if !sameShape(a.shape, w.shape) {
		if axes == nil {
			Errorf("Axis must be specified when shapes of a and weights differ.")
		}
		if len(axes) != 1 || w.Rank() != 1 {
			Errorf("1D weights expected when shapes of a and weights differ.")
		}
		ax := normAxis(axes[0], a.Rank())
		if w.shape[0] != a.shape[ax] {
			Errorf("Length of weights not compatible with specified axis.")
		}
		shape := make([]int, a.Rank())
		for i := range shape {
			shape[i] = 1
		}
		shape[ax] = w.shape[0]
		w = broadcastTo(w.reshaped(shape), a.shape)
	}
	t, shape, n := groups(a, axes, keepdims)
	tw, _, _ := groups(w, axes, keepdims)
	data := make([]float64, size(shape))
	for i := range data {
		x, wx := t.data[i*n:(i+1)*n], tw.data[i*n:(i+1)*n]
		if floats.Sum(wx) == 0 {
			Errorf("Weights sum to zero, can't be normalized")
		}
		data[i] = stat.Mean(x, wx)
	}
	return &Array{shape: shape, data: data, kind: FloatKind}
}
