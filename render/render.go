// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render is the boundary to the renderers that draw evaluated
// operation nodes. A renderer is chosen by the family of the node's
// operation; operations with no family are not drawn, which is an
// expected outcome and not an error.
package render // import "numpyviz.dev/npviz/render"

import (
	"fmt"
	"strconv"
	"strings"

	"numpyviz.dev/npviz/graph"
	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/value"
)

// NotSupported is the message reported for a node no renderer can draw.
const NotSupported = "This operation is not supported for Manim animation."

// Renderer draws an evaluated node. The index is the position of the
// node in the evaluation order and names the artifact. Render reports
// whether it produced an artifact.
type Renderer interface {
	Render(index int, n *graph.Node) (bool, error)
}

// None is a renderer that never draws anything. Operands are still
// checked, so a program fails the same way whichever renderer is used.
type None struct{}

func (None) Render(index int, n *graph.Node) (bool, error) {
	return false, CheckOperands(n)
}

// CheckOperands reports an error if an operand of the evaluated node
// is a value no renderer can draw: a string, a bare name, None or
// unsupported syntax.
func CheckOperands(n *graph.Node) error {
	for _, v := range n.Args() {
		if t := typeName(v); t != "" {
			return fmt.Errorf("Invalid operand type: <class '%s'>", t)
		}
	}
	return nil
}

// typeName returns the Python type name of a value that cannot be
// drawn, or the empty string if it can be.
func typeName(v value.Value) string {
	switch v := v.(type) {
	case value.String, value.Name:
		return "str"
	case value.None:
		return "NoneType"
	case value.Unresolved:
		return v.Kind
	case *graph.Node:
		return "node"
	}
	return ""
}

// family returns the family of the node's operation.
func family(reg *ops.Registry, n *graph.Node) ops.Family {
	def, err := reg.Def(n.Op)
	if err != nil {
		return ops.NoFamily
	}
	return def.Family
}

func shapeOf(v value.Value) []int {
	switch v := v.(type) {
	case *value.Array:
		return v.Shape()
	case value.Int, value.Float, value.Bool:
		return []int{}
	case value.List:
		return []int{len(v.Elems)}
	}
	return nil
}

func formatShape(shape []int) string {
	strs := make([]string, len(shape))
	for i, d := range shape {
		strs[i] = strconv.Itoa(d)
	}
	if len(shape) == 1 {
		return "(" + strs[0] + ",)"
	}
	return "(" + strings.Join(strs, ", ") + ")"
}
