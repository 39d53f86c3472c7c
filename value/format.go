// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"strconv"
	"strings"
)

// maxFracDigits is the most fractional digits printed for a float element.
const maxFracDigits = 8

/*
	str(np.array([[1.5, 2.0], [3.25, -4.0]]))

	[[ 1.5   2.  ]
	 [ 3.25 -4.  ]]
*/

// String formats the array as NumPy's str does.
func (a *Array) String() string {
	if a.Rank() == 0 {
		return a.scalarString()
	}
	if a.Size() == 0 {
		return "[]"
	}
	var b strings.Builder
	layout(&b, a.elemStrings(), a.shape, 0, " ", 0)
	return b.String()
}

// Repr formats the array as NumPy's repr does.
func (a *Array) Repr() string {
	if a.Rank() == 0 {
		return "array(" + a.elemStrings()[0] + ")"
	}
	if a.Size() == 0 {
		if a.Rank() == 1 {
			return "array([], dtype=" + a.kind.String() + ")"
		}
		return "array([], shape=" + shapeString(a.shape) + ", dtype=" + a.kind.String() + ")"
	}
	var b strings.Builder
	b.WriteString("array(")
	layout(&b, a.elemStrings(), a.shape, 0, ", ", len("array("))
	b.WriteString(")")
	return b.String()
}

// scalarString formats a rank 0 array the way NumPy prints a scalar.
func (a *Array) scalarString() string {
	x := a.data[0]
	switch a.kind {
	case BoolKind:
		return Bool(x != 0).String()
	case IntKind:
		return strconv.FormatInt(int64(x), 10)
	}
	return formatPyFloat(x)
}

// layout writes the already-formatted elements, nested in brackets
// according to the shape. Sub-arrays are separated by one newline per
// remaining dimension and indented to line up under their opening bracket.
func layout(b *strings.Builder, elems []string, shape []int, depth int, sep string, indent int) {
	b.WriteByte('[')
	if len(shape) == 1 {
		b.WriteString(strings.Join(elems[:shape[0]], sep))
		b.WriteByte(']')
		return
	}
	step := size(shape[1:])
	rowSep := strings.TrimRight(sep, " ") + strings.Repeat("\n", len(shape)-1) + strings.Repeat(" ", indent+depth+1)
	for i := 0; i < shape[0]; i++ {
		if i > 0 {
			b.WriteString(rowSep)
		}
		layout(b, elems[i*step:(i+1)*step], shape[1:], depth+1, sep, indent)
	}
	b.WriteByte(']')
}

// elemStrings formats every element, padded to a common width.
func (a *Array) elemStrings() []string {
	strs := make([]string, len(a.data))
	switch a.kind {
	case BoolKind:
		for i, x := range a.data {
			strs[i] = padLeft(Bool(x != 0).String(), 5)
		}
	case IntKind:
		wid := 0
		for i, x := range a.data {
			strs[i] = strconv.FormatInt(int64(x), 10)
			wid = max(wid, len(strs[i]))
		}
		for i := range strs {
			strs[i] = padLeft(strs[i], wid)
		}
	default:
		formatFloats(strs, a.data)
	}
	return strs
}

// formatFloats formats float elements as NumPy's default "maxprec" mode
// does: each element gets its shortest unique representation with at most
// maxFracDigits fractional digits, integer parts are right-aligned and
// fractional parts are padded on the right with spaces. Exponential
// notation is used when the magnitudes span too wide a range.
func formatFloats(strs []string, data []float64) {
	var minAbs, maxAbs float64
	haveNonZero := false
	for _, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) || x == 0 {
			continue
		}
		ax := math.Abs(x)
		if !haveNonZero {
			minAbs, maxAbs = ax, ax
			haveNonZero = true
			continue
		}
		minAbs = min(minAbs, ax)
		maxAbs = max(maxAbs, ax)
	}
	if haveNonZero && (maxAbs >= 1e8 || minAbs < 1e-4 || maxAbs/minAbs > 1e3) {
		formatExp(strs, data)
		return
	}
	intWid, fracWid := 0, 0
	for i, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > maxFracDigits {
			s = strings.TrimRight(strconv.FormatFloat(x, 'f', maxFracDigits, 64), "0")
		}
		if !strings.ContainsRune(s, '.') {
			s += "."
		}
		strs[i] = s
		ipart, fpart, _ := strings.Cut(s, ".")
		intWid = max(intWid, len(ipart))
		fracWid = max(fracWid, len(fpart))
	}
	wid := specialWidth(data, intWid+1+fracWid)
	for i, x := range data {
		if special, ok := nonFinite(x); ok {
			strs[i] = padLeft(special, wid)
			continue
		}
		ipart, fpart, _ := strings.Cut(strs[i], ".")
		strs[i] = padLeft(padLeft(ipart, intWid)+"."+fpart+strings.Repeat(" ", fracWid-len(fpart)), wid)
	}
}

// formatExp formats float elements in scientific notation. Mantissas are
// padded with zeros to a common number of digits.
func formatExp(strs []string, data []float64) {
	type parts struct{ ipart, fpart, sign, exp string }
	p := make([]parts, len(data))
	intWid, fracWid, expWid := 0, 0, 2
	for i, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		s := strconv.FormatFloat(x, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		if _, frac, _ := strings.Cut(mant, "."); len(frac) > maxFracDigits {
			s = strconv.FormatFloat(x, 'e', maxFracDigits, 64)
			mant, exp, _ = strings.Cut(s, "e")
			if strings.ContainsRune(mant, '.') {
				mant = strings.TrimRight(mant, "0")
			}
		}
		ipart, fpart, _ := strings.Cut(mant, ".")
		p[i] = parts{ipart, fpart, exp[:1], exp[1:]}
		intWid = max(intWid, len(ipart))
		fracWid = max(fracWid, len(fpart))
		expWid = max(expWid, len(exp)-1)
	}
	wid := specialWidth(data, intWid+1+fracWid+2+expWid)
	for i, x := range data {
		if special, ok := nonFinite(x); ok {
			strs[i] = padLeft(special, wid)
			continue
		}
		q := p[i]
		strs[i] = padLeft(padLeft(q.ipart, intWid)+"."+q.fpart+strings.Repeat("0", fracWid-len(q.fpart))+
			"e"+q.sign+strings.Repeat("0", expWid-len(q.exp))+q.exp, wid)
	}
}

// specialWidth returns the width of the widest element, given the
// width of the finite ones.
func specialWidth(data []float64, wid int) int {
	for _, x := range data {
		if special, ok := nonFinite(x); ok {
			wid = max(wid, len(special))
		}
	}
	return wid
}

func nonFinite(x float64) (string, bool) {
	switch {
	case math.IsNaN(x):
		return "nan", true
	case math.IsInf(x, 1):
		return "inf", true
	case math.IsInf(x, -1):
		return "-inf", true
	}
	return "", false
}

func padLeft(s string, wid int) string {
	if len(s) >= wid {
		return s
	}
	return strings.Repeat(" ", wid-len(s)) + s
}

// shapeString formats a shape as a Python tuple.
func shapeString(shape []int) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, d := range shape {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(d))
	}
	if len(shape) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}
