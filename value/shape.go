// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// Shape manipulation. None of these change the elements, only their
// arrangement.

// permute returns a with its axes reordered: axis i of the result is
// axis perm[i] of a.
func (a *Array) permute(perm []int) *Array {
	identity := true
	for i, p := range perm {
		identity = identity && i == p
	}
	if identity {
		return a
	}
	src := stridesOf(a.shape)
	shape := make([]int, len(perm))
	strides := make([]int, len(perm))
	for i, p := range perm {
		shape[i] = a.shape[p]
		strides[i] = src[p]
	}
	return gather(a, shape, strides)
}

func reversedAxes(rank int) []int {
	axes := make([]int, rank)
	for i := range axes {
		axes[i] = rank - 1 - i
	}
	return axes
}

// Transpose permutes the axes of a. If axes is nil the order of the
// axes is reversed.
func Transpose(a *Array, axes []int) *Array {
	if axes == nil {
		return a.permute(reversedAxes(a.Rank()))
	}
	if len(axes) != a.Rank() {
		Errorf("axes don't match array")
	}
	perm := make([]int, len(axes))
	seen := make([]bool, len(axes))
	for i, ax := range axes {
		ax = normAxis(ax, a.Rank())
		if seen[ax] {
			Errorf("repeated axis in transpose")
		}
		seen[ax] = true
		perm[i] = ax
	}
	return a.permute(perm)
}

// Reshape gives a new shape to a. One dimension may be -1, in which case
// it is inferred from the size. Order 'C' reads and writes elements in
// row-major order, 'F' in column-major order.
func Reshape(a *Array, shape []int, order byte) *Array {
	shape = append([]int{}, shape...)
	unknown := -1
	known := 1
	for i, d := range shape {
		switch {
		case d == -1:
			if unknown >= 0 {
				Errorf("can only specify one unknown dimension")
			}
			unknown = i
		case d < 0:
			Errorf("negative dimensions not allowed")
		default:
			known *= d
		}
	}
	if unknown >= 0 {
		if known == 0 || a.Size()%known != 0 {
			Errorf("cannot reshape array of size %d into shape %s", a.Size(), shapeString(shape))
		}
		shape[unknown] = a.Size() / known
	}
	if size(shape) != a.Size() {
		Errorf("cannot reshape array of size %d into shape %s", a.Size(), shapeString(shape))
	}
	switch order {
	case 'C':
		return a.reshaped(shape)
	case 'F':
		rev := make([]int, len(shape))
		for i, d := range shape {
			rev[len(shape)-1-i] = d
		}
		t := Transpose(a, nil).reshaped(rev)
		return Transpose(t, nil)
	}
	Errorf("order must be one of 'C', 'F', 'A', or 'K' (got %q)", string(order))
	return nil
}

// Ravel returns the elements of a as a one-dimensional array.
func Ravel(a *Array, order byte) *Array {
	switch order {
	case 'C':
	case 'F':
		a = Transpose(a, nil)
	default:
		Errorf("order must be one of 'C', 'F', 'A', or 'K' (got %q)", string(order))
	}
	return a.reshaped([]int{a.Size()})
}

// Squeeze removes axes of length one. If axes is nil every such axis
// is removed.
func Squeeze(a *Array, axes []int) *Array {
	drop := make([]bool, a.Rank())
	if axes == nil {
		for i, d := range a.shape {
			drop[i] = d == 1
		}
	}
	for _, ax := range axes {
		ax = normAxis(ax, a.Rank())
		if a.shape[ax] != 1 {
			Errorf("cannot select an axis to squeeze out which has size not equal to one")
		}
		drop[ax] = true
	}
	shape := []int{}
	for i, d := range a.shape {
		if !drop[i] {
			shape = append(shape, d)
		}
	}
	return a.reshaped(shape)
}

// ExpandDims inserts axes of length one. The axes are positions in the
// result.
func ExpandDims(a *Array, axes []int) *Array {
	rank := a.Rank() + len(axes)
	insert := make([]bool, rank)
	for _, ax := range axes {
		ax = normAxis(ax, rank)
		if insert[ax] {
			Errorf("repeated axis")
		}
		insert[ax] = true
	}
	shape := make([]int, 0, rank)
	j := 0
	for i := 0; i < rank; i++ {
		if insert[i] {
			shape = append(shape, 1)
			continue
		}
		shape = append(shape, a.shape[j])
		j++
	}
	return a.reshaped(shape)
}

// BroadcastTo returns a repeated to fill the shape, following the
// broadcasting rules.
func BroadcastTo(a *Array, shape []int) *Array {
	for _, d := range shape {
		if d < 0 {
			Errorf("all elements of broadcast shape must be non-negative")
		}
	}
	return broadcastTo(a, shape)
}

// Concatenate joins the arrays along an existing axis. If flatten is set
// the arrays are first raveled and joined along their only axis.
func Concatenate(arrays []*Array, axis int, flatten bool) *Array {
	if len(arrays) == 0 {
		Errorf("need at least one array to concatenate")
	}
	if flatten {
		flat := make([]*Array, len(arrays))
		for i, a := range arrays {
			flat[i] = Ravel(a, 'C')
		}
		arrays, axis = flat, 0
	}
	first := arrays[0]
	if first.Rank() == 0 {
		Errorf("zero-dimensional arrays cannot be concatenated")
	}
	axis = normAxis(axis, first.Rank())
	kind := BoolKind
	length := 0
	for i, a := range arrays {
		if a.Rank() != first.Rank() {
			Errorf("all the input arrays must have same number of dimensions, but the array at index 0 has %d dimension(s) and the array at index %d has %d dimension(s)",
				first.Rank(), i, a.Rank())
		}
		for d := range a.shape {
			if d != axis && a.shape[d] != first.shape[d] {
				Errorf("all the input array dimensions except for the concatenation axis must match exactly, but along dimension %d, the array at index 0 has size %d and the array at index %d has size %d",
					d, first.shape[d], i, a.shape[d])
			}
		}
		kind = maxKind(kind, a.kind)
		length += a.shape[axis]
	}
	shape := first.Shape()
	shape[axis] = length
	outer := size(shape[:axis])
	data := make([]float64, 0, size(shape))
	for o := 0; o < outer; o++ {
		for _, a := range arrays {
			chunk := a.shape[axis] * size(a.shape[axis+1:])
			data = append(data, a.data[o*chunk:(o+1)*chunk]...)
		}
	}
	return &Array{shape: shape, data: data, kind: kind}
}

// slice returns the elements of a with index in [lo, hi) along the axis.
func (a *Array) slice(axis, lo, hi int) *Array {
	d := a.shape[axis]
	inner := size(a.shape[axis+1:])
	shape := a.Shape()
	shape[axis] = hi - lo
	data := make([]float64, 0, size(shape))
	for o := 0; o < size(a.shape[:axis]); o++ {
		data = append(data, a.data[(o*d+lo)*inner:(o*d+hi)*inner]...)
	}
	return &Array{shape: shape, data: data, kind: a.kind}
}

// SplitSections divides a into n equal parts along the axis.
func SplitSections(a *Array, n, axis int) []*Array {
	if a.Rank() == 0 {
		Errorf("tuple index out of range")
	}
	axis = normAxis(axis, a.Rank())
	if n <= 0 {
		Errorf("number sections must be larger than 0.")
	}
	d := a.shape[axis]
	if d%n != 0 {
		Errorf("array split does not result in an equal division")
	}
	parts := make([]*Array, n)
	step := d / n
	for i := range parts {
		parts[i] = a.slice(axis, i*step, (i+1)*step)
	}
	return parts
}

// SplitIndices divides a along the axis before each of the indices.
// Indices are interpreted as slice bounds: negative ones count from the
// end and all are clamped to the axis.
func SplitIndices(a *Array, indices []int, axis int) []*Array {
	if a.Rank() == 0 {
		Errorf("tuple index out of range")
	}
	axis = normAxis(axis, a.Rank())
	d := a.shape[axis]
	clamp := func(i int) int {
		if i < 0 {
			i += d
		}
		return min(max(i, 0), d)
	}
	bounds := append([]int{0}, indices...)
	bounds = append(bounds, d)
	parts := make([]*Array, len(bounds)-1)
	for i := range parts {
		lo := clamp(bounds[i])
		hi := max(clamp(bounds[i+1]), lo)
		parts[i] = a.slice(axis, lo, hi)
	}
	return parts
}
