// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import "gonum.org/v1/gonum/mat"

// mulDense returns the p×q row-major product of the p×k matrix x and
// the k×q matrix y.
func mulDense(p, k, q int, x, y []float64) []float64 {
	out := make([]float64, p*q)
	if p == 0 || q == 0 || k == 0 {
		// mat.Dense has no zero-sized matrices; the product is all zeros.
		return out
	}
	c := mat.NewDense(p, q, out)
	c.Mul(mat.NewDense(p, k, x), mat.NewDense(k, q, y))
	return out
}

// productKind returns the kind of a sum of products. Boolean products
// stay boolean, as a logical or of ands.
func productKind(k1, k2 Kind) Kind {
	if k1 == BoolKind && k2 == BoolKind {
		return BoolKind
	}
	return arithKind(k1, k2)
}

func fixBool(data []float64, kind Kind) {
	if kind != BoolKind {
		return
	}
	for i, x := range data {
		data[i] = boolFloat(x != 0)
	}
}

const matmulSignature = "(n?,k),(k,m?)->(n?,m?)"

// Matmul returns the matrix product of a and b, as np.matmul does.
// One-dimensional operands are promoted to matrices by adding an axis,
// which is removed again from the result. Leading dimensions are batch
// dimensions and are broadcast.
func Matmul(a, b *Array) *Array {
	for i, x := range []*Array{a, b} {
		if x.Rank() == 0 {
			Errorf("matmul: Input operand %d does not have enough dimensions (has 0, gufunc core with signature %s requires 1)", i, matmulSignature)
		}
	}
	aVec, bVec := a.Rank() == 1, b.Rank() == 1
	if aVec {
		a = a.reshaped([]int{1, a.shape[0]})
	}
	if bVec {
		b = b.reshaped([]int{b.shape[0], 1})
	}
	n, k := a.shape[a.Rank()-2], a.shape[a.Rank()-1]
	k2, m := b.shape[b.Rank()-2], b.shape[b.Rank()-1]
	if k != k2 {
		Errorf("matmul: Input operand 1 has a mismatch in its core dimension 0, with gufunc signature %s (size %d is different from %d)", matmulSignature, k2, k)
	}
	batch := broadcastShapes(a.shape[:a.Rank()-2], b.shape[:b.Rank()-2])
	a = broadcastTo(a, append(append([]int{}, batch...), n, k))
	b = broadcastTo(b, append(append([]int{}, batch...), k, m))
	kind := productKind(a.kind, b.kind)
	data := make([]float64, 0, size(batch)*n*m)
	for i := 0; i < size(batch); i++ {
		data = append(data, mulDense(n, k, m, a.data[i*n*k:(i+1)*n*k], b.data[i*k*m:(i+1)*k*m])...)
	}
	fixBool(data, kind)
	shape := append([]int{}, batch...)
	if !aVec {
		shape = append(shape, n)
	}
	if !bVec {
		shape = append(shape, m)
	}
	return &Array{shape: shape, data: data, kind: kind}
}

// Dot returns the dot product of a and b, as np.dot does. For scalars it
// is multiplication, for vectors the inner product and for matrices the
// matrix product. In general it is a sum product over the last axis of a
// and the second-to-last axis of b.
func Dot(a, b *Array) *Array {
	if a.Rank() == 0 || b.Rank() == 0 {
		return Multiply.Apply(a, b)
	}
	ka := a.Rank() - 1
	kb := 0
	if b.Rank() > 1 {
		kb = b.Rank() - 2
	}
	k := a.shape[ka]
	if b.shape[kb] != k {
		Errorf("shapes %s and %s not aligned: %d (dim %d) != %d (dim %d)",
			shapeString(a.shape), shapeString(b.shape), k, ka, b.shape[kb], kb)
	}
	// Bring b's summed axis to the front, so b becomes a k×q matrix.
	perm := []int{kb}
	shape := append([]int{}, a.shape[:ka]...)
	q := 1
	for i, d := range b.shape {
		if i != kb {
			perm = append(perm, i)
			shape = append(shape, d)
			q *= d
		}
	}
	bt := b.permute(perm)
	p := size(a.shape[:ka])
	kind := productKind(a.kind, b.kind)
	data := mulDense(p, k, q, a.data, bt.data)
	fixBool(data, kind)
	return &Array{shape: shape, data: data, kind: kind}
}
