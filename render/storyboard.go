// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/graph"
	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/value"
)

// maxFrames bounds the number of per-element frames in a storyboard.
const maxFrames = 12

// Storyboard renders a node as a plain-text storyboard: the operands,
// one frame per step of the animation and the result. It writes
// Visualization_<index>.txt into the configured video directory.
type Storyboard struct {
	conf *config.Config
	reg  *ops.Registry
}

func NewStoryboard(conf *config.Config, reg *ops.Registry) *Storyboard {
	return &Storyboard{conf: conf, reg: reg}
}

// ArtifactName returns the base name of the artifact for the index,
// without an extension.
func ArtifactName(index int) string {
	return fmt.Sprintf("Visualization_%d", index)
}

func (s *Storyboard) Render(index int, n *graph.Node) (bool, error) {
	if err := CheckOperands(n); err != nil {
		return false, err
	}
	fam := family(s.reg, n)
	if fam == ops.NoFamily {
		return false, nil
	}
	text := Script(index, fam, n)
	dir := s.conf.VideoDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	path := filepath.Join(dir, ArtifactName(index)+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// Script returns the storyboard text for the node.
func Script(index int, fam ops.Family, n *graph.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (%s)\n", ArtifactName(index), n.Op, fam)
	args := n.Args()
	for i, v := range args {
		fmt.Fprintf(&b, "input %d: shape %s\n%s\n", i, formatShape(shapeOf(v)), indent(v.String()))
	}
	for _, kw := range n.KwargValues() {
		fmt.Fprintf(&b, "keyword %s = %s\n", kw.Name, kw.Value.Repr())
	}
	frames := framesFor(fam, n)
	for i, f := range frames {
		fmt.Fprintf(&b, "frame %d: %s\n", i+1, f)
	}
	result := n.Result()
	fmt.Fprintf(&b, "result: shape %s\n%s\n", formatShape(shapeOf(result)), indent(result.String()))
	return b.String()
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}

func framesFor(fam ops.Family, n *graph.Node) []string {
	args := n.Args()
	result := n.Result()
	switch fam {
	case ops.Elementwise:
		return elementFrames(n.Op, args, result)
	case ops.MatrixProduct:
		return productFrames(args, result)
	case ops.Reduction:
		return []string{fmt.Sprintf("%s over %s", n.Op, axisText(n.KwargValues(), args, 1))}
	case ops.ConcatenateFamily:
		count := 0
		if len(args) > 0 {
			if l, ok := args[0].(value.List); ok {
				count = len(l.Elems)
			}
		}
		return []string{fmt.Sprintf("join %d arrays along %s", count, axisText(n.KwargValues(), args, 1))}
	case ops.SplitFamily:
		pieces := 0
		if l, ok := result.(value.List); ok {
			pieces = len(l.Elems)
		} else if s := shapeOf(result); len(s) > 0 {
			pieces = s[0]
		}
		return []string{fmt.Sprintf("cut into %d pieces along %s", pieces, axisText(n.KwargValues(), args, 2))}
	case ops.TransposeFamily:
		return []string{fmt.Sprintf("move axes: shape %s becomes %s", firstShape(args), formatShape(shapeOf(result)))}
	case ops.BroadcastFamily:
		return []string{fmt.Sprintf("stretch shape %s to %s", firstShape(args), formatShape(shapeOf(result)))}
	}
	// The reshaping families.
	return []string{fmt.Sprintf("%s: shape %s becomes %s", n.Op, firstShape(args), formatShape(shapeOf(result)))}
}

func firstShape(args []value.Value) string {
	if len(args) == 0 {
		return "()"
	}
	return formatShape(shapeOf(args[0]))
}

// axisText describes the axis argument, passed by keyword or at
// position pos.
func axisText(kwargs []value.Kwarg, args []value.Value, pos int) string {
	for _, kw := range kwargs {
		if kw.Name == "axis" {
			return "axis " + kw.Value.Repr()
		}
	}
	if pos < len(args) {
		return "axis " + args[pos].Repr()
	}
	return "all axes"
}

// elem returns element i of v, repeating a single element.
func elem(v value.Value, i int) (string, bool) {
	a, ok := v.(*value.Array)
	if !ok {
		switch v.(type) {
		case value.Int, value.Float, value.Bool:
			return v.String(), true
		}
		return "", false
	}
	switch a.Size() {
	case 0:
		return "", false
	case 1:
		i = 0
	}
	if i >= a.Size() {
		return "", false
	}
	return value.Scalar(a.At(i), a.Kind()).String(), true
}

func elementFrames(op ops.Op, args []value.Value, result value.Value) []string {
	r, ok := result.(*value.Array)
	if !ok {
		return nil
	}
	var frames []string
	for i := 0; i < r.Size() && i < maxFrames; i++ {
		var ins []string
		for _, v := range args {
			a, ok := v.(*value.Array)
			if ok && a.Size() != 1 && a.Size() != r.Size() {
				return append(frames, fmt.Sprintf("broadcast the inputs to shape %s, then apply %s to each element", formatShape(r.Shape()), op))
			}
			s, ok := elem(v, i)
			if !ok {
				return frames
			}
			ins = append(ins, s)
		}
		out, _ := elem(r, i)
		frames = append(frames, fmt.Sprintf("%s(%s) = %s", op, strings.Join(ins, ", "), out))
	}
	if r.Size() > maxFrames {
		frames = append(frames, fmt.Sprintf("... %d more elements", r.Size()-maxFrames))
	}
	return frames
}

// productFrames shows each cell of a product of matrices as the dot
// product of a row and a column.
func productFrames(args []value.Value, result value.Value) []string {
	if len(args) != 2 {
		return nil
	}
	x, ok1 := args[0].(*value.Array)
	y, ok2 := args[1].(*value.Array)
	r, ok3 := result.(*value.Array)
	if !ok1 || !ok2 || !ok3 || x.Rank() != 2 || y.Rank() != 2 || r.Rank() != 2 {
		return []string{"multiply the matrices"}
	}
	p, k, q := x.Shape()[0], x.Shape()[1], y.Shape()[1]
	var frames []string
	for i := 0; i < p; i++ {
		for j := 0; j < q; j++ {
			if len(frames) == maxFrames {
				return append(frames, fmt.Sprintf("... %d more cells", p*q-maxFrames))
			}
			terms := make([]string, k)
			for t := 0; t < k; t++ {
				xs, _ := elem(x, i*k+t)
				ys, _ := elem(y, t*q+j)
				terms[t] = xs + "*" + ys
			}
			out, _ := elem(r, i*q+j)
			frames = append(frames, fmt.Sprintf("row %d . column %d = %s = %s", i, j, strings.Join(terms, " + "), out))
		}
	}
	return frames
}
